package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"weather-report/internal/models"
	"weather-report/internal/services/aggregate"
)

var tableHeader = []string{"Date", "Avg Temp", "Trend", "Wind (km/h)", "Rain (mm)"}

// WriteTable prints a heading and a fixed-width daily summary table.
func WriteTable(w io.Writer, city string, days []models.DailySummary) error {
	heading := fmt.Sprintf("--- Daily Summary: %s ---\n", cases.Title(language.English).String(city))
	if _, err := io.WriteString(w, heading); err != nil {
		return fmt.Errorf("failed to write table heading: %w", err)
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader(tableHeader)
	table.SetAutoFormatHeaders(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT,
	})

	for _, d := range days {
		table.Append([]string{
			d.Day(),
			aggregate.FormatNumber(d.Temperature),
			d.TrendLabel,
			aggregate.FormatNumber(d.WindSpeed),
			aggregate.FormatNumber(d.Precipitation),
		})
	}
	table.Render()

	return nil
}

// Caption builds the message text sent along with the chart.
func Caption(city string, days []models.DailySummary) string {
	var b strings.Builder

	fmt.Fprintf(&b, "🌤 **Weather Report for %s**\n\n", city)
	for _, d := range days {
		fmt.Fprintf(&b, "📅 %s: %s°C (%s), 💧 %smm\n",
			d.Day(),
			aggregate.FormatNumber(d.Temperature),
			d.TrendLabel,
			aggregate.FormatNumber(d.Precipitation),
		)
	}

	return b.String()
}
