package weather

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"weather-report/internal/models"
	"weather-report/internal/repositories"
	"weather-report/internal/services/chart"
	"weather-report/internal/services/report"
	"weather-report/pkg/observe"
)

const (
	defaultWindowDays = 7
	defaultOutputDir  = "output"

	csvSuffix   = "_weather_report.csv"
	chartSuffix = "_weather_chart.png"
)

type Aggregator interface {
	Aggregate(observations []models.HourlyObservation) ([]models.DailySummary, error)
}

type ChartRenderer interface {
	Render(w io.Writer, title string, days []models.DailySummary) error
}

type Notifier interface {
	Notify(ctx context.Context, caption, imagePath string) (models.DeliveryStatus, error)
}

type Options struct {
	OutputDir  string
	WindowDays int
}

// ReportService runs the resolve, fetch and aggregate pipeline and turns the
// result into report artifacts.
type ReportService struct {
	repos      repositories.WeatherRepositories
	aggregator Aggregator
	charts     ChartRenderer
	notifier   Notifier
	opts       Options
	l          *observe.Logger
}

func NewReportService(
	repos repositories.WeatherRepositories,
	aggregator Aggregator,
	charts ChartRenderer,
	notifier Notifier,
	opts Options,
	l *observe.Logger,
) *ReportService {
	if opts.OutputDir == "" {
		opts.OutputDir = defaultOutputDir
	}
	if opts.WindowDays <= 0 {
		opts.WindowDays = defaultWindowDays
	}

	return &ReportService{
		repos:      repos,
		aggregator: aggregator,
		charts:     charts,
		notifier:   notifier,
		opts:       opts,
		l:          l,
	}
}

// Analyze resolves city, fetches its hourly window and aggregates it.
func (s *ReportService) Analyze(ctx context.Context, city string) (*models.Analysis, error) {
	return s.analyze(ctx, s.runLogger(city), city)
}

func (s *ReportService) analyze(ctx context.Context, l *observe.Logger, city string) (*models.Analysis, error) {
	l.Info("starting analysis")

	loc, err := s.repos.Locations.Resolve(ctx, city)
	if err != nil {
		l.Warning("failed to resolve city", map[string]any{"err": err.Error()})
		return nil, err
	}

	observations, window, err := s.repos.Observations.FetchHourly(ctx, loc)
	if err != nil {
		l.Warning("failed to fetch observations", map[string]any{"err": err.Error()})
		return nil, err
	}

	days, err := s.aggregator.Aggregate(observations)
	if err != nil {
		l.Warning("failed to aggregate observations", map[string]any{"err": err.Error()})
		return nil, errors.Wrapf(err, "aggregate %s", loc.Name)
	}

	l.Info("completed analysis", map[string]any{
		"location":     loc.Name,
		"params":       loc.RequestParams(),
		"observations": len(observations),
		"days":         len(days),
	})

	return &models.Analysis{
		Location: loc,
		Window:   window,
		Days:     days,
	}, nil
}

// WriteCSV writes the daily summaries as CSV.
func (s *ReportService) WriteCSV(w io.Writer, analysis *models.Analysis) error {
	return report.WriteCSV(w, analysis.Days)
}

// WriteChart renders the PNG chart.
func (s *ReportService) WriteChart(w io.Writer, analysis *models.Analysis) error {
	return s.charts.Render(w, chart.Title(analysis.Location.Name, s.opts.WindowDays), analysis.Days)
}

// Generate runs the analysis, prints the summary table to out, writes the
// CSV and chart into the output directory and delivers them. A failed
// delivery is logged and reported in the returned Artifacts only.
func (s *ReportService) Generate(ctx context.Context, city string, out io.Writer) (*models.Artifacts, error) {
	l := s.runLogger(city)

	analysis, err := s.analyze(ctx, l, city)
	if err != nil {
		return nil, err
	}
	name := analysis.Location.Name

	if err := report.WriteTable(out, name, analysis.Days); err != nil {
		return nil, err
	}

	if err := os.MkdirAll(s.opts.OutputDir, 0o755); err != nil {
		return nil, errors.Wrap(err, "failed to create output directory")
	}

	artifacts := &models.Artifacts{
		Analysis:  analysis,
		CSVPath:   s.artifactPath(name, csvSuffix),
		ChartPath: s.artifactPath(name, chartSuffix),
	}

	if err := s.writeFile(artifacts.CSVPath, func(w io.Writer) error { return s.WriteCSV(w, analysis) }); err != nil {
		return nil, err
	}
	l.Info("csv saved", map[string]any{"path": artifacts.CSVPath})

	if err := s.writeFile(artifacts.ChartPath, func(w io.Writer) error { return s.WriteChart(w, analysis) }); err != nil {
		return nil, err
	}
	l.Info("chart saved", map[string]any{"path": artifacts.ChartPath})

	status, err := s.notifier.Notify(ctx, report.Caption(name, analysis.Days), artifacts.ChartPath)
	if err != nil {
		l.Error(err, map[string]any{"stage": "notify"})
	}
	artifacts.Delivery = status

	l.Info("report generated", map[string]any{
		"csv":      artifacts.CSVPath,
		"chart":    artifacts.ChartPath,
		"delivery": string(status),
	})

	return artifacts, nil
}

func (s *ReportService) runLogger(city string) *observe.Logger {
	return s.l.With(map[string]any{
		"run_id": uuid.NewString(),
		"city":   city,
	})
}

func (s *ReportService) artifactPath(name, suffix string) string {
	return filepath.Join(s.opts.OutputDir, FileStem(name)+suffix)
}

// writeFile renders into memory first so a failed render leaves no file.
func (s *ReportService) writeFile(path string, render func(w io.Writer) error) error {
	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		return err
	}

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return errors.Wrapf(err, "failed to write %s", path)
	}
	return nil
}

// FileStem makes a display name safe to use as a file name prefix.
func FileStem(name string) string {
	stem := strings.NewReplacer("/", "_", `\`, "_").Replace(strings.TrimSpace(name))
	if stem == "" || stem == "." || stem == ".." {
		return "unknown"
	}
	return stem
}
