package models

import (
	"encoding/json"
	"time"
)

const DateLayout = "2006-01-02"

type DailySummary struct {
	Date          time.Time `json:"-"`
	Temperature   float64   `json:"temperature" example:"13.25"`
	Humidity      float64   `json:"humidity" example:"81.5"`
	WindSpeed     float64   `json:"wind_speed" example:"12.4"`
	Precipitation float64   `json:"precipitation" example:"0.6"`
	// Trend is nil for the first day of a sequence.
	Trend      *float64 `json:"temp_trend" example:"1.5"`
	TrendLabel string   `json:"temp_trend_str" example:"+1.5"`
}

// Day returns the summary date as YYYY-MM-DD.
func (d DailySummary) Day() string {
	return d.Date.Format(DateLayout)
}

func (d DailySummary) MarshalJSON() ([]byte, error) {
	type summary DailySummary
	return json.Marshal(struct {
		Date string `json:"date"`
		summary
	}{
		Date:    d.Day(),
		summary: summary(d),
	})
}
