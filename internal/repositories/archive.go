package repositories

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"weather-report/internal/models"
	"weather-report/pkg/observe"
)

const (
	OpenMeteoArchiveURL = "https://archive-api.open-meteo.com/v1/archive"
	DefaultWindowDays   = 7

	archiveStage      = "archive"
	archiveTimeLayout = "2006-01-02T15:04"
)

var hourlyVariables = []string{
	"temperature_2m",
	"relative_humidity_2m",
	"wind_speed_10m",
	"precipitation",
}

type OpenMeteoArchiveRepository struct {
	baseURL    string
	windowDays int
	httpClient HTTPClient
	l          *observe.Logger
	now        func() time.Time
}

func NewOpenMeteoArchiveRepository(baseURL string, windowDays int, l *observe.Logger, httpClient HTTPClient) *OpenMeteoArchiveRepository {
	if baseURL == "" {
		baseURL = OpenMeteoArchiveURL
	}
	if windowDays <= 0 {
		windowDays = DefaultWindowDays
	}

	return &OpenMeteoArchiveRepository{
		baseURL:    baseURL,
		windowDays: windowDays,
		httpClient: httpClient,
		l:          l,
		now:        time.Now,
	}
}

func (o *OpenMeteoArchiveRepository) Name() string {
	return "open-meteo-archive"
}

// ArchiveHourly holds the parallel hourly arrays. Hours the archive has not
// published yet come back as null.
type ArchiveHourly struct {
	Time               []string   `json:"time"`
	Temperature2m      []*float64 `json:"temperature_2m"`
	RelativeHumidity2m []*float64 `json:"relative_humidity_2m"`
	WindSpeed10m       []*float64 `json:"wind_speed_10m"`
	Precipitation      []*float64 `json:"precipitation"`
}

type ArchiveResponse struct {
	Latitude  float64        `json:"latitude"`
	Longitude float64        `json:"longitude"`
	Timezone  string         `json:"timezone"`
	Hourly    *ArchiveHourly `json:"hourly"`
}

// Window returns the windowDays calendar days ending today (inclusive),
// where today is the server's local date.
func (o *OpenMeteoArchiveRepository) Window(tz *time.Location) models.Window {
	y, m, d := o.now().Date()
	end := time.Date(y, m, d, 0, 0, 0, 0, tz)
	start := time.Date(y, m, d-(o.windowDays-1), 0, 0, 0, 0, tz)

	return models.Window{
		Start:    start,
		End:      end,
		Timezone: tz.String(),
	}
}

// FetchHourly requests the hourly window for loc. Timestamps are parsed in
// the location's timezone, the same one the archive localizes them to.
func (o *OpenMeteoArchiveRepository) FetchHourly(ctx context.Context, loc models.Location) ([]models.HourlyObservation, models.Window, error) {
	tz, err := time.LoadLocation(loc.Timezone)
	if err != nil {
		return nil, models.Window{}, &models.FetchError{Stage: archiveStage, Err: fmt.Errorf("unknown timezone %q: %w", loc.Timezone, err)}
	}

	window := o.Window(tz)

	params := url.Values{}
	params.Set("latitude", strconv.FormatFloat(loc.Latitude, 'f', -1, 64))
	params.Set("longitude", strconv.FormatFloat(loc.Longitude, 'f', -1, 64))
	params.Set("start_date", window.Start.Format(models.DateLayout))
	params.Set("end_date", window.End.Format(models.DateLayout))
	params.Set("hourly", strings.Join(hourlyVariables, ","))
	params.Set("timezone", loc.Timezone)

	o.l.Info("making archive API request", map[string]any{
		"repository": o.Name(),
		"params":     loc.RequestParams(),
		"start":      params.Get("start_date"),
		"end":        params.Get("end_date"),
	})

	var response ArchiveResponse
	if err := getJSON(ctx, o.httpClient, o.l, o.Name(), o.baseURL+"?"+params.Encode(), &response); err != nil {
		return nil, window, &models.FetchError{Stage: archiveStage, Err: err}
	}

	if response.Hourly == nil {
		return nil, window, &models.FetchError{Stage: archiveStage, Err: fmt.Errorf("response has no hourly data")}
	}

	observations, dropped, err := hourlyObservations(response.Hourly, tz)
	if err != nil {
		return nil, window, &models.FetchError{Stage: archiveStage, Err: err}
	}

	o.l.Info("parsed archive response", map[string]any{
		"repository": o.Name(),
		"hours":      len(response.Hourly.Time),
		"kept":       len(observations),
		"dropped":    dropped,
	})

	if dropped > 0 {
		o.l.Warning("archive returned hours without data", map[string]any{
			"repository": o.Name(),
			"dropped":    dropped,
		})
	}

	return observations, window, nil
}

// hourlyObservations zips the parallel arrays. An hour is kept only when all
// four variables are present.
func hourlyObservations(hourly *ArchiveHourly, tz *time.Location) ([]models.HourlyObservation, int, error) {
	n := len(hourly.Time)
	columns := []struct {
		name   string
		length int
	}{
		{"temperature_2m", len(hourly.Temperature2m)},
		{"relative_humidity_2m", len(hourly.RelativeHumidity2m)},
		{"wind_speed_10m", len(hourly.WindSpeed10m)},
		{"precipitation", len(hourly.Precipitation)},
	}
	for _, c := range columns {
		if c.length != n {
			return nil, 0, fmt.Errorf("hourly %s has %d values, time has %d", c.name, c.length, n)
		}
	}

	observations := make([]models.HourlyObservation, 0, n)
	dropped := 0

	for i, raw := range hourly.Time {
		ts, err := time.ParseInLocation(archiveTimeLayout, raw, tz)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to parse time %s: %w", raw, err)
		}

		temp, humidity, wind, precip := hourly.Temperature2m[i], hourly.RelativeHumidity2m[i], hourly.WindSpeed10m[i], hourly.Precipitation[i]
		if temp == nil || humidity == nil || wind == nil || precip == nil {
			dropped++
			continue
		}

		observations = append(observations, models.HourlyObservation{
			Time:          ts,
			Temperature:   *temp,
			Humidity:      *humidity,
			WindSpeed:     *wind,
			Precipitation: *precip,
		})
	}

	return observations, dropped, nil
}
