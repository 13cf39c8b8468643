package weather

import "context"

// Provider abstracts an upstream weather vendor. Implementations own the
// normalization from the vendor's native payloads into the shared snapshot
// types, including the condition-code-to-icon-token mapping.
type Provider interface {
	// FetchCurrent returns normalized current conditions for a coordinate pair.
	FetchCurrent(ctx context.Context, lat, lon float64) (WeatherSnapshot, error)

	// FetchCurrentByCity resolves a city name and returns current conditions.
	FetchCurrentByCity(ctx context.Context, city string) (WeatherSnapshot, error)

	// FetchForecast returns a normalized multi-point forecast.
	FetchForecast(ctx context.Context, lat, lon float64) (ForecastSnapshot, error)

	// SearchCities returns geocoding matches for a free-text query, at most
	// limit results.
	SearchCities(ctx context.Context, query string, limit int) ([]SearchResult, error)
}
