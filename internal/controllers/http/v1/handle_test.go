package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weather-report/internal/models"
	"weather-report/pkg/observe"
)

type mockReportService struct {
	analysis *models.Analysis
	err      error
	city     string
}

func (m *mockReportService) Analyze(ctx context.Context, city string) (*models.Analysis, error) {
	m.city = city
	return m.analysis, m.err
}

func (m *mockReportService) WriteCSV(w io.Writer, analysis *models.Analysis) error {
	_, err := io.WriteString(w, "date,temperature\n2024-01-01,13.0\n")
	return err
}

func (m *mockReportService) WriteChart(w io.Writer, analysis *models.Analysis) error {
	_, err := w.Write([]byte("\x89PNG"))
	return err
}

func sampleAnalysis() *models.Analysis {
	trend := 8.0
	return &models.Analysis{
		Location: models.Location{Name: "Berlin", Latitude: 52.52, Longitude: 13.41, Timezone: "UTC"},
		Window: models.Window{
			Start:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			End:      time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
			Timezone: "UTC",
		},
		Days: []models.DailySummary{
			{Date: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), Temperature: 13, TrendLabel: "N/A"},
			{Date: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), Temperature: 21, Trend: &trend, TrendLabel: "+8.0"},
		},
	}
}

func newTestApp(service ReportService) *fiber.App {
	app := fiber.New()
	NewRouter(app, service, observe.NewZapLogger("test-app"))
	return app
}

func TestHandleReport_Success(t *testing.T) {
	service := &mockReportService{analysis: sampleAnalysis()}
	app := newTestApp(service)

	resp, err := app.Test(httptest.NewRequest("GET", "/weather/report?city=Berlin", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "Berlin", service.city)

	var body ReportResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Berlin", body.Location.Name)
	require.Len(t, body.Days, 2)
	assert.Equal(t, "2024-01-01", body.Days[0].Date)
	assert.Nil(t, body.Days[0].TempTrend)
	assert.Equal(t, "N/A", body.Days[0].TempTrendStr)
	require.NotNil(t, body.Days[1].TempTrend)
	assert.Equal(t, 8.0, *body.Days[1].TempTrend)
	assert.Equal(t, "+8.0", body.Days[1].TempTrendStr)
}

func TestHandleReport_MissingCity(t *testing.T) {
	service := &mockReportService{analysis: sampleAnalysis()}
	app := newTestApp(service)

	resp, err := app.Test(httptest.NewRequest("GET", "/weather/report?city=%20", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Empty(t, service.city)

	var body ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Missing required parameter: city", body.Error)
}

func TestHandleReport_ErrorStatuses(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"not found", fmt.Errorf("%w: Atlantis", models.ErrCityNotFound), fiber.StatusNotFound},
		{"fetch", &models.FetchError{Stage: "archive", Err: errors.New("HTTP error (status 503)")}, fiber.StatusBadGateway},
		{"no observations", models.ErrNoObservations, fiber.StatusUnprocessableEntity},
		{"unordered", models.ErrUnordered, fiber.StatusUnprocessableEntity},
		{"empty group", &models.EmptyGroupError{Date: "2024-01-01"}, fiber.StatusUnprocessableEntity},
		{"incomplete", fmt.Errorf("aggregate: %w", &models.IncompleteDayError{Date: "2024-01-01", Missing: []int{3}}), fiber.StatusUnprocessableEntity},
		{"unexpected", errors.New("disk on fire"), fiber.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(&mockReportService{err: tt.err})

			resp, err := app.Test(httptest.NewRequest("GET", "/weather/report?city=Atlantis", nil))
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.status, resp.StatusCode)

			var body ErrorResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.NotEmpty(t, body.Error)
			if tt.status == fiber.StatusInternalServerError {
				assert.Equal(t, "Failed to build weather report", body.Error)
			}
		})
	}
}

func TestHandleReportCSV(t *testing.T) {
	app := newTestApp(&mockReportService{analysis: sampleAnalysis()})

	resp, err := app.Test(httptest.NewRequest("GET", "/weather/report/csv?city=Berlin", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/csv; charset=utf-8", resp.Header.Get(fiber.HeaderContentType))
	assert.Equal(t, `attachment; filename="Berlin_weather_report.csv"`, resp.Header.Get(fiber.HeaderContentDisposition))

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "date,temperature\n2024-01-01,13.0\n", string(body))
}

func TestHandleReportChart(t *testing.T) {
	app := newTestApp(&mockReportService{analysis: sampleAnalysis()})

	resp, err := app.Test(httptest.NewRequest("GET", "/weather/report/chart?city=Berlin", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get(fiber.HeaderContentType))

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, []byte("\x89PNG"), body)
}

func TestSwaggerDoc(t *testing.T) {
	app := newTestApp(&mockReportService{})

	resp, err := app.Test(httptest.NewRequest("GET", "/swagger/doc.json", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var doc map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&doc))
	assert.Contains(t, doc["paths"], "/weather/report")
}
