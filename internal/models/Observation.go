package models

import "time"

// HourlyObservation is one archive sample. Time is localized to the
// timezone the archive was queried with.
type HourlyObservation struct {
	Time          time.Time `json:"time"`
	Temperature   float64   `json:"temperature"`
	Humidity      float64   `json:"humidity"`
	WindSpeed     float64   `json:"wind_speed"`
	Precipitation float64   `json:"precipitation"`
}

// Window is the inclusive date range the observations were requested for.
type Window struct {
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	Timezone string    `json:"timezone"`
}

// Days returns the number of calendar days covered by the window.
func (w Window) Days() int {
	if w.End.Before(w.Start) {
		return 0
	}
	y1, m1, d1 := w.Start.Date()
	y2, m2, d2 := w.End.Date()
	start := time.Date(y1, m1, d1, 0, 0, 0, 0, time.UTC)
	end := time.Date(y2, m2, d2, 0, 0, 0, 0, time.UTC)
	return int(end.Sub(start).Hours()/24) + 1
}
