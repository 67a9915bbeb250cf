package repositories

import (
	"context"
	"net/http"

	"weather-report/config"
	"weather-report/internal/models"
	"weather-report/pkg/observe"
)

// LocationResolver maps a free-text city name to a Location.
type LocationResolver interface {
	Name() string
	Resolve(ctx context.Context, city string) (models.Location, error)
}

// ObservationFetcher retrieves the hourly window for a resolved Location.
type ObservationFetcher interface {
	Name() string
	FetchHourly(ctx context.Context, loc models.Location) ([]models.HourlyObservation, models.Window, error)
}

type WeatherRepositories struct {
	Locations    LocationResolver
	Observations ObservationFetcher
}

func InitWeatherRepositories(cfg *config.Config, l *observe.Logger) WeatherRepositories {
	httpClient := NewBreakerClient(
		"open-meteo",
		&http.Client{Timeout: cfg.OpenMeteo.Timeout},
		cfg.Breaker.MaxFailures,
		cfg.Breaker.Timeout,
		l,
	)

	return WeatherRepositories{
		Locations: NewOpenMeteoGeocodingRepository(cfg.OpenMeteo.GeocodingURL, l, httpClient),
		Observations: NewOpenMeteoArchiveRepository(
			cfg.OpenMeteo.ArchiveURL,
			cfg.OpenMeteo.WindowDays,
			l,
			httpClient,
		),
	}
}
