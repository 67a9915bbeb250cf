package http

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"

	"weather-report/internal/models"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error" example:"Missing required parameter: city"`
}

// ReportResponse documents the analysis payload
type ReportResponse struct {
	Location models.Location   `json:"location"`
	Window   WindowResponse    `json:"window"`
	Days     []SummaryResponse `json:"days"`
}

type WindowResponse struct {
	Start    string `json:"start" example:"2024-01-01T00:00:00+01:00"`
	End      string `json:"end" example:"2024-01-07T00:00:00+01:00"`
	Timezone string `json:"timezone" example:"Europe/Berlin"`
}

type SummaryResponse struct {
	Date          string   `json:"date" example:"2024-01-02"`
	Temperature   float64  `json:"temperature" example:"21"`
	Humidity      float64  `json:"humidity" example:"81.5"`
	WindSpeed     float64  `json:"wind_speed" example:"12.4"`
	Precipitation float64  `json:"precipitation" example:"0.6"`
	TempTrend     *float64 `json:"temp_trend" example:"8"`
	TempTrendStr  string   `json:"temp_trend_str" example:"+8.0"`
}

// GetWeatherReport godoc
// @Summary Get daily weather report
// @Description Resolves the city, fetches the last days of hourly observations and aggregates them per calendar date
// @Tags Weather
// @Accept json
// @Produce json
// @Param city query string true "City name" example(Berlin)
// @Success 200 {object} ReportResponse "Successful response"
// @Failure 400 {object} ErrorResponse "Bad request - missing city"
// @Failure 404 {object} ErrorResponse "City not found"
// @Failure 422 {object} ErrorResponse "Observations could not be aggregated"
// @Failure 502 {object} ErrorResponse "Upstream weather service failed"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /weather/report [get]
// @Example {curl} Example usage:
//
//	curl -X GET "http://localhost:8080/weather/report?city=Berlin"
func (r *routes) handleReport(c *fiber.Ctx) error {
	analysis, err := r.analyze(c)
	if err != nil {
		return r.fail(c, err)
	}

	return c.JSON(analysis)
}

// GetWeatherReportCSV godoc
// @Summary Get daily weather report as CSV
// @Description Same analysis as /weather/report, exported with columns date,temperature,humidity,wind_speed,precipitation,temp_trend
// @Tags Weather
// @Produce text/csv
// @Param city query string true "City name" example(Berlin)
// @Success 200 {string} string "CSV file"
// @Failure 400 {object} ErrorResponse "Bad request - missing city"
// @Failure 404 {object} ErrorResponse "City not found"
// @Failure 422 {object} ErrorResponse "Observations could not be aggregated"
// @Failure 502 {object} ErrorResponse "Upstream weather service failed"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /weather/report/csv [get]
func (r *routes) handleReportCSV(c *fiber.Ctx) error {
	analysis, err := r.analyze(c)
	if err != nil {
		return r.fail(c, err)
	}

	var buf bytes.Buffer
	if err := r.service.WriteCSV(&buf, analysis); err != nil {
		return r.fail(c, err)
	}

	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, attachment(analysis, "_weather_report.csv"))
	return c.Send(buf.Bytes())
}

// GetWeatherReportChart godoc
// @Summary Get weather chart
// @Description Precipitation bars and temperature line for the analysed days
// @Tags Weather
// @Produce image/png
// @Param city query string true "City name" example(Berlin)
// @Success 200 {file} file "PNG image"
// @Failure 400 {object} ErrorResponse "Bad request - missing city"
// @Failure 404 {object} ErrorResponse "City not found"
// @Failure 422 {object} ErrorResponse "Observations could not be aggregated"
// @Failure 502 {object} ErrorResponse "Upstream weather service failed"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /weather/report/chart [get]
func (r *routes) handleReportChart(c *fiber.Ctx) error {
	analysis, err := r.analyze(c)
	if err != nil {
		return r.fail(c, err)
	}

	var buf bytes.Buffer
	if err := r.service.WriteChart(&buf, analysis); err != nil {
		return r.fail(c, err)
	}

	c.Set(fiber.HeaderContentType, "image/png")
	c.Set(fiber.HeaderContentDisposition, attachment(analysis, "_weather_chart.png"))
	return c.Send(buf.Bytes())
}

func (r *routes) analyze(c *fiber.Ctx) (*models.Analysis, error) {
	city := strings.TrimSpace(c.Query("city"))
	if city == "" {
		return nil, models.ErrEmptyCity
	}

	return r.service.Analyze(c.Context(), city)
}

// fail writes the error response matching err.
func (r *routes) fail(c *fiber.Ctx, err error) error {
	status := statusFor(err)

	message := err.Error()
	switch status {
	case fiber.StatusBadRequest:
		message = "Missing required parameter: city"
	case fiber.StatusInternalServerError:
		r.l.Error(err, map[string]any{"path": c.Path(), "city": c.Query("city")})
		message = "Failed to build weather report"
	default:
		r.l.Warning("weather report request failed", map[string]any{
			"path":   c.Path(),
			"city":   c.Query("city"),
			"status": status,
			"err":    err.Error(),
		})
	}

	return c.Status(status).JSON(ErrorResponse{Error: message})
}

func statusFor(err error) int {
	var (
		fetchErr      *models.FetchError
		emptyGroupErr *models.EmptyGroupError
		incompleteErr *models.IncompleteDayError
	)

	switch {
	case errors.Is(err, models.ErrEmptyCity):
		return fiber.StatusBadRequest
	case errors.Is(err, models.ErrCityNotFound):
		return fiber.StatusNotFound
	case errors.As(err, &fetchErr):
		return fiber.StatusBadGateway
	case errors.Is(err, models.ErrNoObservations),
		errors.Is(err, models.ErrUnordered),
		errors.As(err, &emptyGroupErr),
		errors.As(err, &incompleteErr):
		return fiber.StatusUnprocessableEntity
	default:
		return fiber.StatusInternalServerError
	}
}

func attachment(analysis *models.Analysis, suffix string) string {
	name := strings.NewReplacer("/", "_", `\`, "_", `"`, "").Replace(analysis.Location.Name)
	return fmt.Sprintf(`attachment; filename="%s%s"`, name, suffix)
}
