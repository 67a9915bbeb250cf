package models

import "fmt"

const DefaultTimezone = "UTC"

type Location struct {
	Name      string  `json:"name" example:"Berlin"`
	Country   string  `json:"country,omitempty" example:"Germany"`
	Admin1    string  `json:"admin1,omitempty" example:"Land Berlin"`
	Latitude  float64 `json:"latitude" example:"52.52437"`
	Longitude float64 `json:"longitude" example:"13.41053"`
	Timezone  string  `json:"timezone" example:"Europe/Berlin"`
}

func (l *Location) RequestParams() string {
	return fmt.Sprintf("lat: %.4f lon: %.4f tz: %s", l.Latitude, l.Longitude, l.Timezone)
}
