package http

import (
	"context"
	"io"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/swaggo/swag"

	_ "weather-report/docs"
	"weather-report/internal/models"
	"weather-report/pkg/observe"
)

// ReportService is the part of the report pipeline the HTTP surface needs.
type ReportService interface {
	Analyze(ctx context.Context, city string) (*models.Analysis, error)
	WriteCSV(w io.Writer, analysis *models.Analysis) error
	WriteChart(w io.Writer, analysis *models.Analysis) error
}

type routes struct {
	service ReportService
	l       *observe.Logger
}

func NewRouter(
	app *fiber.App,
	reportService ReportService,
	l *observe.Logger,
) {
	r := &routes{
		service: reportService,
		l:       l,
	}

	// Swagger documentation
	app.Get("/swagger/doc.json", func(c *fiber.Ctx) error {
		doc, err := swag.ReadDoc()
		if err != nil {
			return c.Status(fiber.ErrInternalServerError.Code).JSON(ErrorResponse{Error: "Failed to read Swagger documentation"})
		}

		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.SendString(doc)
	})

	app.Get("/swagger/*", swagger.New(swagger.Config{
		URL:         "/swagger/doc.json",
		DeepLinking: true,
	}))

	// API routes
	weather := app.Group("/weather")
	weather.Get("/report", r.handleReport)
	weather.Get("/report/csv", r.handleReportCSV)
	weather.Get("/report/chart", r.handleReportChart)
}
