package repositories

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weather-report/internal/models"
	"weather-report/pkg/observe"
)

var berlin = models.Location{
	Name:      "Berlin",
	Latitude:  52.52,
	Longitude: 13.41,
	Timezone:  "Europe/Berlin",
}

func newTestArchiveRepository(baseURL string) *OpenMeteoArchiveRepository {
	repo := NewOpenMeteoArchiveRepository(baseURL, 7, observe.NewZapLogger("test-app"), http.DefaultClient)
	repo.now = func() time.Time {
		return time.Date(2024, time.January, 7, 15, 30, 0, 0, time.Local)
	}
	return repo
}

func TestOpenMeteoArchiveRepository_FetchHourly_Success(t *testing.T) {
	var query url.Values
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"latitude": 52.52, "longitude": 13.419998, "timezone": "Europe/Berlin",
			"hourly": {
				"time": ["2024-01-01T00:00", "2024-01-01T01:00", "2024-01-01T02:00"],
				"temperature_2m": [1.5, 1.2, 0.9],
				"relative_humidity_2m": [88, 90, 91],
				"wind_speed_10m": [12.1, 11.4, 10.8],
				"precipitation": [0.0, 0.2, 0.1]
			}
		}`))
	}))
	defer mockServer.Close()

	repo := newTestArchiveRepository(mockServer.URL)

	observations, window, err := repo.FetchHourly(context.Background(), berlin)
	require.NoError(t, err)

	assert.Equal(t, "52.52", query.Get("latitude"))
	assert.Equal(t, "13.41", query.Get("longitude"))
	assert.Equal(t, "2024-01-01", query.Get("start_date"))
	assert.Equal(t, "2024-01-07", query.Get("end_date"))
	assert.Equal(t, "temperature_2m,relative_humidity_2m,wind_speed_10m,precipitation", query.Get("hourly"))
	assert.Equal(t, "Europe/Berlin", query.Get("timezone"))

	assert.Equal(t, 7, window.Days())
	assert.Equal(t, "Europe/Berlin", window.Timezone)

	require.Len(t, observations, 3)
	tz, _ := time.LoadLocation("Europe/Berlin")
	assert.True(t, observations[1].Time.Equal(time.Date(2024, 1, 1, 1, 0, 0, 0, tz)))
	assert.Equal(t, "Europe/Berlin", observations[1].Time.Location().String())
	assert.Equal(t, models.HourlyObservation{
		Time:          observations[1].Time,
		Temperature:   1.2,
		Humidity:      90,
		WindSpeed:     11.4,
		Precipitation: 0.2,
	}, observations[1])
}

func TestOpenMeteoArchiveRepository_FetchHourly_DropsNullHours(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"hourly": {
			"time": ["2024-01-07T00:00", "2024-01-07T01:00", "2024-01-07T02:00"],
			"temperature_2m": [2.0, null, null],
			"relative_humidity_2m": [80, 81, null],
			"wind_speed_10m": [5.0, 5.5, null],
			"precipitation": [0.0, 0.0, null]
		}}`))
	}))
	defer mockServer.Close()

	observations, _, err := newTestArchiveRepository(mockServer.URL).FetchHourly(context.Background(), berlin)
	require.NoError(t, err)
	require.Len(t, observations, 1)
	assert.Equal(t, 2.0, observations[0].Temperature)
}

func TestOpenMeteoArchiveRepository_FetchHourly_MalformedData(t *testing.T) {
	cases := map[string]string{
		"invalid json":     `invalid json`,
		"no hourly":        `{"latitude": 52.52}`,
		"unequal arrays":   `{"hourly": {"time": ["2024-01-07T00:00"], "temperature_2m": [], "relative_humidity_2m": [1], "wind_speed_10m": [1], "precipitation": [1]}}`,
		"unparsable time":  `{"hourly": {"time": ["yesterday"], "temperature_2m": [1], "relative_humidity_2m": [1], "wind_speed_10m": [1], "precipitation": [1]}}`,
	}

	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(body))
			}))
			defer mockServer.Close()

			_, _, err := newTestArchiveRepository(mockServer.URL).FetchHourly(context.Background(), berlin)
			require.Error(t, err)

			var fetchErr *models.FetchError
			require.True(t, errors.As(err, &fetchErr))
			assert.Equal(t, "archive", fetchErr.Stage)
		})
	}
}

func TestOpenMeteoArchiveRepository_FetchHourly_HTTPError(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer mockServer.Close()

	_, _, err := newTestArchiveRepository(mockServer.URL).FetchHourly(context.Background(), berlin)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP error (status 503)")
}

func TestOpenMeteoArchiveRepository_FetchHourly_UnknownTimezone(t *testing.T) {
	repo := newTestArchiveRepository("http://invalid-url-that-does-not-exist.com")

	loc := berlin
	loc.Timezone = "Mars/Olympus_Mons"

	_, _, err := repo.FetchHourly(context.Background(), loc)
	var fetchErr *models.FetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.Contains(t, err.Error(), "unknown timezone")
}

func TestOpenMeteoArchiveRepository_Window(t *testing.T) {
	repo := newTestArchiveRepository("")
	repo.now = func() time.Time {
		return time.Date(2024, time.March, 2, 23, 59, 0, 0, time.Local)
	}

	window := repo.Window(time.UTC)

	// 2024 is a leap year
	assert.Equal(t, "2024-02-25", window.Start.Format(models.DateLayout))
	assert.Equal(t, "2024-03-02", window.End.Format(models.DateLayout))
	assert.Equal(t, 7, window.Days())
}

func TestOpenMeteoArchiveRepository_Name(t *testing.T) {
	repo := &OpenMeteoArchiveRepository{}
	expected := "open-meteo-archive"
	if name := repo.Name(); name != expected {
		t.Errorf("Expected name to be %s, got %s", expected, name)
	}
}
