package chart

import (
	"errors"
	"fmt"
	"io"
	"math"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"weather-report/internal/models"
)

const (
	DefaultWidth  = 1000
	DefaultHeight = 600
)

var (
	rainColor = drawing.ColorFromHex("4a90e2")
	tempColor = drawing.ColorFromHex("e74c3c")
	gridColor = drawing.ColorFromHex("cccccc")
)

var ErrNoDays = errors.New("nothing to chart")

type Renderer struct {
	width  int
	height int
}

func NewRenderer(width, height int) *Renderer {
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}

	return &Renderer{
		width:  width,
		height: height,
	}
}

func Title(city string, windowDays int) string {
	return fmt.Sprintf("Weather Analysis: %s (Last %d Days)", city, windowDays)
}

// Render draws precipitation bars on the left axis and the temperature line
// on the right axis as a PNG. Output depends only on its arguments.
func (r *Renderer) Render(w io.Writer, title string, days []models.DailySummary) error {
	if len(days) == 0 {
		return ErrNoDays
	}

	xs := make([]float64, len(days))
	temps := make([]float64, len(days))
	rain := make([]float64, len(days))
	// go-chart takes the x range from the tick span, so blank edge ticks
	// keep it non-zero when there is a single day.
	xMin, xMax := -0.5, float64(len(days))-0.5
	ticks := make([]gochart.Tick, 0, len(days)+2)
	ticks = append(ticks, gochart.Tick{Value: xMin})
	for i, d := range days {
		xs[i] = float64(i)
		temps[i] = d.Temperature
		rain[i] = d.Precipitation
		ticks = append(ticks, gochart.Tick{Value: float64(i), Label: d.Day()})
	}
	ticks = append(ticks, gochart.Tick{Value: xMax})

	grid := gochart.Style{
		StrokeColor:     gridColor,
		StrokeWidth:     1,
		StrokeDashArray: []float64{4, 4},
	}

	graph := gochart.Chart{
		Title:  title,
		Width:  r.width,
		Height: r.height,
		TitleStyle: gochart.Style{
			FontSize: 14,
		},
		Background: gochart.Style{
			Padding: gochart.Box{Top: 60, Left: 20, Right: 20, Bottom: 20},
		},
		XAxis: gochart.XAxis{
			Name:           "Date",
			Ticks:          ticks,
			Range:          &gochart.ContinuousRange{Min: xMin, Max: xMax},
			GridMajorStyle: grid,
		},
		YAxis: gochart.YAxis{
			Name:      "Temperature (°C)",
			NameStyle: gochart.Style{FontColor: tempColor},
			Style:     gochart.Style{FontColor: tempColor},
			Range:     temperatureRange(temps),
		},
		YAxisSecondary: gochart.YAxis{
			Name:           "Precipitation (mm)",
			NameStyle:      gochart.Style{FontColor: rainColor},
			Style:          gochart.Style{FontColor: rainColor},
			Range:          precipitationRange(rain),
			GridMajorStyle: grid,
		},
		Series: []gochart.Series{
			gochart.HistogramSeries{
				Name:  "Rain (mm)",
				YAxis: gochart.YAxisSecondary,
				Style: gochart.Style{
					StrokeColor: rainColor.WithAlpha(153),
					FillColor:   rainColor.WithAlpha(153),
				},
				InnerSeries: gochart.ContinuousSeries{
					XValues: xs,
					YValues: rain,
				},
			},
			gochart.ContinuousSeries{
				Name:  "Temp (°C)",
				YAxis: gochart.YAxisPrimary,
				Style: gochart.Style{
					StrokeColor: tempColor,
					StrokeWidth: 3,
					DotColor:    tempColor,
					DotWidth:    5,
				},
				XValues: xs,
				YValues: temps,
			},
		},
	}
	graph.Elements = []gochart.Renderable{gochart.LegendLeft(&graph)}

	if err := graph.Render(gochart.PNG, w); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}

	return nil
}

// temperatureRange pads the values to whole degrees so a flat line still
// has a non-zero range.
func temperatureRange(temps []float64) *gochart.ContinuousRange {
	lo, hi := temps[0], temps[0]
	for _, t := range temps[1:] {
		lo = math.Min(lo, t)
		hi = math.Max(hi, t)
	}

	return &gochart.ContinuousRange{Min: math.Floor(lo) - 1, Max: math.Ceil(hi) + 1}
}

func precipitationRange(rain []float64) *gochart.ContinuousRange {
	hi := 0.0
	for _, r := range rain {
		hi = math.Max(hi, r)
	}

	return &gochart.ContinuousRange{Min: 0, Max: math.Max(hi*1.1, 1)}
}
