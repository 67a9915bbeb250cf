package aggregate

import (
	"fmt"
	"math"
	"time"

	"weather-report/internal/models"
	"weather-report/pkg/observe"
)

// GapPolicy decides what happens to a calendar date that is missing hours.
type GapPolicy string

const (
	// Tolerate averages over whatever hours are present.
	Tolerate GapPolicy = "tolerate"
	// Strict fails with *models.IncompleteDayError.
	Strict GapPolicy = "strict"
	// Drop skips incomplete dates.
	Drop GapPolicy = "drop"
)

type Aggregator struct {
	policy GapPolicy
	l      *observe.Logger
}

func New(policy GapPolicy, l *observe.Logger) *Aggregator {
	if policy == "" {
		policy = Tolerate
	}

	return &Aggregator{
		policy: policy,
		l:      l,
	}
}

type dayGroup struct {
	date         time.Time
	observations []models.HourlyObservation
}

// Aggregate turns chronological hourly observations into one summary per
// calendar date, ascending. Dates are taken from each timestamp in its own
// location.
func (a *Aggregator) Aggregate(observations []models.HourlyObservation) ([]models.DailySummary, error) {
	if err := validateOrder(observations); err != nil {
		return nil, err
	}

	groups := groupByDate(observations)

	summaries := make([]models.DailySummary, 0, len(groups))
	for _, g := range groups {
		missing := missingHours(g)
		if len(missing) > 0 {
			day := g.date.Format(models.DateLayout)
			switch a.policy {
			case Strict:
				return nil, &models.IncompleteDayError{Date: day, Missing: missing}
			case Drop:
				a.l.Warning("dropping incomplete day", map[string]any{
					"date":    day,
					"missing": len(missing),
				})
				continue
			default:
				a.l.Debug("averaging over incomplete day", map[string]any{
					"date":    day,
					"missing": len(missing),
				})
			}
		}

		summary, err := summarize(g)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, summary)
	}

	if len(summaries) == 0 {
		return nil, fmt.Errorf("%w: every day in the window is incomplete", models.ErrNoObservations)
	}

	withTrend(summaries)

	return summaries, nil
}

func validateOrder(observations []models.HourlyObservation) error {
	if len(observations) == 0 {
		return models.ErrNoObservations
	}

	for i := 1; i < len(observations); i++ {
		prev, cur := observations[i-1].Time, observations[i].Time
		if cur.Before(prev) {
			return fmt.Errorf("%w: %s follows %s", models.ErrUnordered,
				cur.Format(time.RFC3339), prev.Format(time.RFC3339))
		}
	}

	return nil
}

// groupByDate splits ordered observations into runs sharing a calendar date.
func groupByDate(observations []models.HourlyObservation) []dayGroup {
	var groups []dayGroup

	for _, o := range observations {
		y, m, d := o.Time.Date()
		date := time.Date(y, m, d, 0, 0, 0, 0, o.Time.Location())

		if n := len(groups); n > 0 && groups[n-1].date.Equal(date) {
			groups[n-1].observations = append(groups[n-1].observations, o)
			continue
		}
		groups = append(groups, dayGroup{date: date, observations: []models.HourlyObservation{o}})
	}

	return groups
}

// missingHours lists the wall-clock hours of the group's date that have no
// observation. Hours skipped by a DST transition are not expected.
func missingHours(g dayGroup) []int {
	present := make(map[int]bool, 24)
	for _, o := range g.observations {
		present[o.Time.Hour()] = true
	}

	y, m, d := g.date.Date()
	var missing []int
	for h := 0; h < 24; h++ {
		if time.Date(y, m, d, h, 0, 0, 0, g.date.Location()).Hour() != h {
			continue
		}
		if !present[h] {
			missing = append(missing, h)
		}
	}

	return missing
}

func summarize(g dayGroup) (models.DailySummary, error) {
	n := len(g.observations)
	if n == 0 {
		return models.DailySummary{}, &models.EmptyGroupError{Date: g.date.Format(models.DateLayout)}
	}

	var temp, humidity, wind, precip float64
	for _, o := range g.observations {
		temp += o.Temperature
		humidity += o.Humidity
		wind += o.WindSpeed
		precip += o.Precipitation
	}

	return models.DailySummary{
		Date:          g.date,
		Temperature:   Round2(temp / float64(n)),
		Humidity:      Round2(humidity / float64(n)),
		WindSpeed:     Round2(wind / float64(n)),
		Precipitation: Round2(precip),
	}, nil
}

// withTrend fills the trend of every summary from the rounded means.
func withTrend(summaries []models.DailySummary) {
	for i := range summaries {
		if i > 0 {
			trend := Round2(summaries[i].Temperature - summaries[i-1].Temperature)
			summaries[i].Trend = &trend
		}
		summaries[i].TrendLabel = FormatTrend(summaries[i].Trend)
	}
}

// Round2 rounds half away from zero to two decimals.
func Round2(v float64) float64 {
	r := math.Round(v*100) / 100
	if r == 0 {
		return 0
	}
	return r
}
