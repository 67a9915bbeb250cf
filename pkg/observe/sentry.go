package observe

import (
	"encoding/json"
	"log"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/pkg/errors"

	"go.uber.org/zap/zapcore"
)

const (
	_sentryMaxErrorDepth        int           = 9
	_sentryFlushTimeout         time.Duration = 5 * time.Second
	_sentryServerRequestTimeout time.Duration = 5 * time.Second
)

// SentryHook is an io.Writer for NewLogger that forwards error-level entries to Sentry.
type SentryHook struct {
	appZone string
	appName string
	enabled bool
}

func NewSentryHook(
	appZone, appName string,
	maxErrorDepth int,
	isDebug bool,
	dsn string,
) *SentryHook {
	h := &SentryHook{
		appZone: appZone,
		appName: appName,
	}
	if dsn == "" {
		return h
	}
	if maxErrorDepth == 0 {
		maxErrorDepth = _sentryMaxErrorDepth
	}
	sentryTransport := sentry.NewHTTPTransport()
	sentryTransport.Timeout = _sentryServerRequestTimeout
	if err := sentry.Init(
		sentry.ClientOptions{
			AttachStacktrace: true,
			Debug:            isDebug,
			Dsn:              dsn,
			Environment:      appZone,
			MaxErrorDepth:    maxErrorDepth,
			ServerName:       appName,
			Transport:        sentryTransport,
		}); err != nil {

		log.Println("Stacktracer init error: ", err.Error())
		return h
	}
	h.enabled = true
	return h
}

func (h *SentryHook) Enabled() bool {
	return h.enabled
}

func (*SentryHook) mapLevel(zl zapcore.Level) sentry.Level {

	switch zl {

	case zapcore.DebugLevel, zapcore.InvalidLevel:
		return sentry.LevelDebug
	case zapcore.InfoLevel:
		return sentry.LevelInfo
	case zapcore.WarnLevel:
		return sentry.LevelWarning
	case zapcore.ErrorLevel:
		return sentry.LevelError
	case zapcore.FatalLevel, zapcore.PanicLevel:
		return sentry.LevelFatal

	}

	return sentry.LevelDebug
}

func (h *SentryHook) Write(p []byte) (n int, err error) {
	if !h.enabled || (h.appZone != "prod" && h.appZone != "dev") {
		return len(p), nil
	}

	type T struct {
		Level      string `json:"level"`
		AppName    string `json:"app_name"`
		AppEnv     string `json:"app_zone"`
		CallerFile string `json:"caller_file"`
		CallerLine int    `json:"caller_line"`
		CallerFunc string `json:"caller_func"`
		Stack      string `json:"stack"`
		Message    string `json:"msg"`
		Error      string `json:"error"`
		Timestamp  string `json:"timestamp"`
	}
	t := T{}
	if err := json.Unmarshal(p, &t); err != nil {
		h.report(errors.Wrap(err, "[SentryHook] json.Unmarshal data"))
		return len(p), nil
	}

	level, err := zapcore.ParseLevel(t.Level)
	if err != nil {
		h.report(errors.Wrap(err, "[SentryHook] parse zap level"))
		return len(p), nil
	}
	if len(t.Message) == 0 {
		return len(p), nil
	}

	switch level {
	case zapcore.ErrorLevel, zapcore.FatalLevel, zapcore.PanicLevel:
		timestamp, _ := time.ParseInLocation(timestampLayout, t.Timestamp, time.UTC)

		event := sentry.NewEvent()
		event.Extra["AppName"] = h.appName
		event.Environment = h.appZone
		event.Level = h.mapLevel(level)
		event.Timestamp = timestamp
		event.Message = t.Message
		event.Extra["Error"] = t.Error
		event.Extra["CallerFile"] = t.CallerFile
		event.Extra["CallerLine"] = t.CallerLine
		event.Extra["CallerFunc"] = t.CallerFunc
		event.Extra["Stack"] = t.Stack
		event.Extra["TimeStamp"] = t.Timestamp
		event.Exception = append(event.Exception, sentry.Exception{
			Type:       t.Message,
			Value:      t.Error,
			Stacktrace: sentry.NewStacktrace(),
		})
		sentry.CaptureEvent(event)
	}

	return len(p), nil
}

// Flush waits for buffered events to reach Sentry.
func (h *SentryHook) Flush() {
	if h.enabled {
		sentry.Flush(_sentryFlushTimeout)
	}
}

func (*SentryHook) report(err error) {
	// the hook is one of the logger's writers, so only log to stderr here
	log.Println(err.Error())
}
