package report

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/gocarina/gocsv"

	"weather-report/internal/models"
	"weather-report/internal/services/aggregate"
)

// csvRow is one exported day. Numbers are kept as text so they print with
// at least one decimal and the first day's trend stays empty.
type csvRow struct {
	Date          string `csv:"date"`
	Temperature   string `csv:"temperature"`
	Humidity      string `csv:"humidity"`
	WindSpeed     string `csv:"wind_speed"`
	Precipitation string `csv:"precipitation"`
	TempTrend     string `csv:"temp_trend"`
}

// WriteCSV exports every summary field except the trend label.
func WriteCSV(w io.Writer, days []models.DailySummary) error {
	rows := make([]csvRow, 0, len(days))
	for _, d := range days {
		row := csvRow{
			Date:          d.Day(),
			Temperature:   aggregate.FormatNumber(d.Temperature),
			Humidity:      aggregate.FormatNumber(d.Humidity),
			WindSpeed:     aggregate.FormatNumber(d.WindSpeed),
			Precipitation: aggregate.FormatNumber(d.Precipitation),
		}
		if d.Trend != nil {
			row.TempTrend = aggregate.FormatNumber(*d.Trend)
		}
		rows = append(rows, row)
	}

	if err := gocsv.Marshal(rows, w); err != nil {
		return fmt.Errorf("failed to write CSV: %w", err)
	}

	return nil
}

// ReadCSV parses a file produced by WriteCSV. Dates are placed in loc.
func ReadCSV(r io.Reader, loc *time.Location) ([]models.DailySummary, error) {
	var rows []csvRow
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}

	days := make([]models.DailySummary, 0, len(rows))
	for i, row := range rows {
		day, err := row.summary(loc)
		if err != nil {
			return nil, fmt.Errorf("CSV row %d: %w", i+1, err)
		}
		days = append(days, day)
	}

	return days, nil
}

func (row csvRow) summary(loc *time.Location) (models.DailySummary, error) {
	date, err := time.ParseInLocation(models.DateLayout, row.Date, loc)
	if err != nil {
		return models.DailySummary{}, fmt.Errorf("invalid date %q: %w", row.Date, err)
	}

	day := models.DailySummary{Date: date}
	for _, f := range []struct {
		name string
		raw  string
		dst  *float64
	}{
		{"temperature", row.Temperature, &day.Temperature},
		{"humidity", row.Humidity, &day.Humidity},
		{"wind_speed", row.WindSpeed, &day.WindSpeed},
		{"precipitation", row.Precipitation, &day.Precipitation},
	} {
		v, err := strconv.ParseFloat(f.raw, 64)
		if err != nil {
			return models.DailySummary{}, fmt.Errorf("invalid %s %q: %w", f.name, f.raw, err)
		}
		*f.dst = v
	}

	if row.TempTrend != "" {
		trend, err := strconv.ParseFloat(row.TempTrend, 64)
		if err != nil {
			return models.DailySummary{}, fmt.Errorf("invalid temp_trend %q: %w", row.TempTrend, err)
		}
		day.Trend = &trend
	}
	day.TrendLabel = aggregate.FormatTrend(day.Trend)

	return day, nil
}
