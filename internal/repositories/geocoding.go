package repositories

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"weather-report/internal/models"
	"weather-report/pkg/observe"
)

const (
	OpenMeteoGeocodingURL = "https://geocoding-api.open-meteo.com/v1/search"
	geocodingStage        = "geocoding"
)

type OpenMeteoGeocodingRepository struct {
	baseURL    string
	httpClient HTTPClient
	l          *observe.Logger
}

func NewOpenMeteoGeocodingRepository(baseURL string, l *observe.Logger, httpClient HTTPClient) *OpenMeteoGeocodingRepository {
	if baseURL == "" {
		baseURL = OpenMeteoGeocodingURL
	}

	return &OpenMeteoGeocodingRepository{
		baseURL:    baseURL,
		httpClient: httpClient,
		l:          l,
	}
}

func (o *OpenMeteoGeocodingRepository) Name() string {
	return "open-meteo-geocoding"
}

type GeocodingResult struct {
	Name      string  `json:"name"`
	Country   string  `json:"country"`
	Admin1    string  `json:"admin1"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Timezone  string  `json:"timezone"`
}

type GeocodingResponse struct {
	Results []GeocodingResult `json:"results"`
}

// Resolve returns the best geocoding match for city. An empty result set is
// reported as models.ErrCityNotFound, every other failure as *models.FetchError.
func (o *OpenMeteoGeocodingRepository) Resolve(ctx context.Context, city string) (models.Location, error) {
	city = strings.TrimSpace(city)
	if city == "" {
		return models.Location{}, models.ErrEmptyCity
	}

	params := url.Values{}
	params.Set("name", city)
	params.Set("count", "1")
	params.Set("language", "en")
	params.Set("format", "json")

	o.l.Info("making geocoding API request", map[string]any{
		"repository": o.Name(),
		"city":       city,
	})

	var response GeocodingResponse
	if err := getJSON(ctx, o.httpClient, o.l, o.Name(), o.baseURL+"?"+params.Encode(), &response); err != nil {
		return models.Location{}, &models.FetchError{Stage: geocodingStage, Err: err}
	}

	if len(response.Results) == 0 {
		return models.Location{}, fmt.Errorf("%w: %s", models.ErrCityNotFound, city)
	}

	best := response.Results[0]
	loc := models.Location{
		Name:      best.Name,
		Country:   best.Country,
		Admin1:    best.Admin1,
		Latitude:  best.Latitude,
		Longitude: best.Longitude,
		Timezone:  best.Timezone,
	}
	if loc.Timezone == "" {
		loc.Timezone = models.DefaultTimezone
	}
	if loc.Name == "" {
		loc.Name = city
	}

	o.l.Info("resolved location", map[string]any{
		"repository": o.Name(),
		"city":       city,
		"params":     loc.RequestParams(),
	})

	return loc, nil
}
