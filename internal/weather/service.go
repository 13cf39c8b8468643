package weather

import (
	"context"
	"log"

	"github.com/supplysight/backend/internal/cache"
)

// MaxSearchResults caps the number of geocoding matches returned to clients.
const MaxSearchResults = 5

// Service is the weather gateway: it serves snapshots from the coordinate
// cache when fresh and falls back to the upstream provider on a miss. The
// cache is best-effort; a miss is never an error.
type Service struct {
	provider Provider

	weatherCache  *cache.Cache[WeatherSnapshot]
	forecastCache *cache.Cache[ForecastSnapshot]
}

// NewService creates a gateway over the given provider and caches.
func NewService(provider Provider, weatherCache *cache.Cache[WeatherSnapshot], forecastCache *cache.Cache[ForecastSnapshot]) *Service {
	return &Service{
		provider:      provider,
		weatherCache:  weatherCache,
		forecastCache: forecastCache,
	}
}

// WeatherCache exposes the current-conditions cache for sweep scheduling.
func (s *Service) WeatherCache() *cache.Cache[WeatherSnapshot] {
	return s.weatherCache
}

// ForecastCache exposes the forecast cache for sweep scheduling.
func (s *Service) ForecastCache() *cache.Cache[ForecastSnapshot] {
	return s.forecastCache
}

// CurrentByCoords returns current conditions for a coordinate pair,
// cache-first.
func (s *Service) CurrentByCoords(ctx context.Context, lat, lon float64) (WeatherSnapshot, error) {
	if snapshot, ok := s.weatherCache.Get(lat, lon); ok {
		return snapshot, nil
	}

	snapshot, err := s.provider.FetchCurrent(ctx, lat, lon)
	if err != nil {
		return WeatherSnapshot{}, err
	}

	s.weatherCache.Set(lat, lon, snapshot)
	return snapshot, nil
}

// CurrentByCity resolves a city name through the provider and returns its
// current conditions. There is no read-side cache lookup because the
// coordinates are unknown until the provider answers; the result is still
// written through under the resolved coordinates so subsequent coordinate
// lookups hit.
func (s *Service) CurrentByCity(ctx context.Context, city string) (WeatherSnapshot, error) {
	snapshot, err := s.provider.FetchCurrentByCity(ctx, city)
	if err != nil {
		return WeatherSnapshot{}, err
	}

	s.weatherCache.Set(snapshot.Location.Lat, snapshot.Location.Lon, snapshot)
	return snapshot, nil
}

// ForecastByCoords returns the multi-point forecast for a coordinate pair,
// cache-first.
func (s *Service) ForecastByCoords(ctx context.Context, lat, lon float64) (ForecastSnapshot, error) {
	if snapshot, ok := s.forecastCache.Get(lat, lon); ok {
		return snapshot, nil
	}

	snapshot, err := s.provider.FetchForecast(ctx, lat, lon)
	if err != nil {
		return ForecastSnapshot{}, err
	}

	s.forecastCache.Set(lat, lon, snapshot)
	return snapshot, nil
}

// SearchCities returns at most MaxSearchResults geocoding matches. Search
// results are not cached.
func (s *Service) SearchCities(ctx context.Context, query string) ([]SearchResult, error) {
	results, err := s.provider.SearchCities(ctx, query, MaxSearchResults)
	if err != nil {
		return nil, err
	}

	if len(results) > MaxSearchResults {
		log.Printf("weather: provider returned %d search results, truncating to %d", len(results), MaxSearchResults)
		results = results[:MaxSearchResults]
	}
	return results, nil
}
