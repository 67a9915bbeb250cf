package bootstrap

import (
	"io"
	"net/http"

	"weather-report/config"
	"weather-report/internal/repositories"
	"weather-report/internal/services/aggregate"
	"weather-report/internal/services/chart"
	"weather-report/internal/services/notify"
	"weather-report/internal/services/weather"
	"weather-report/pkg/observe"
)

// InitLogger builds the application logger. When a Sentry DSN is configured
// error entries are also forwarded there; call the returned hook's Flush
// before exiting.
func InitLogger(cnf *config.Config, out io.Writer) (*observe.Logger, *observe.SentryHook) {
	// the hook decodes JSON entries; console output cannot feed it
	dsn := cnf.Sentry.DSN
	if cnf.Log.Format == "console" {
		dsn = ""
	}
	hook := observe.NewSentryHook(cnf.App.Env, cnf.App.Name, 0, cnf.Sentry.Debug, dsn)

	writers := []io.Writer{out}
	if hook.Enabled() {
		writers = append(writers, hook)
	}

	l := observe.NewLogger(observe.Options{
		AppName: cnf.App.Name,
		AppEnv:  cnf.App.Env,
		Level:   cnf.Log.Level,
		Format:  cnf.Log.Format,
	}, writers...)

	return l, hook
}

func InitReportService(cnf *config.Config, l *observe.Logger) *weather.ReportService {
	repos := repositories.InitWeatherRepositories(cnf, l)

	notifier := notify.NewTelegramNotifier(
		cnf.Telegram,
		l,
		&http.Client{Timeout: cnf.Telegram.Timeout},
	)

	return weather.NewReportService(
		repos,
		aggregate.New(aggregate.GapPolicy(cnf.Report.GapPolicy), l),
		chart.NewRenderer(chart.DefaultWidth, chart.DefaultHeight),
		notifier,
		weather.Options{
			OutputDir:  cnf.Report.OutputDir,
			WindowDays: cnf.OpenMeteo.WindowDays,
		},
		l,
	)
}
