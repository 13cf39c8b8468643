package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"github.com/supplysight/backend/internal/weather"
)

// OpenWeatherProvider implements weather.Provider against the OpenWeatherMap
// API. Outbound calls go through a circuit breaker; there are no retries — a
// failed call fails the request immediately.
type OpenWeatherProvider struct {
	apiKey  string
	baseURL string
	geoURL  string
	client  *http.Client
	circuit *gobreaker.CircuitBreaker
}

// NewOpenWeatherProvider creates a provider using the given HTTP client,
// which should carry the outbound timeout.
func NewOpenWeatherProvider(client *http.Client, apiKey string) *OpenWeatherProvider {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "openweather",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	return &OpenWeatherProvider{
		apiKey:  apiKey,
		baseURL: "https://api.openweathermap.org/data/2.5",
		geoURL:  "https://api.openweathermap.org/geo/1.0",
		client:  client,
		circuit: cb,
	}
}

// SetBaseURLs overrides the upstream endpoints. Intended for tests against a
// local httptest server.
func (p *OpenWeatherProvider) SetBaseURLs(baseURL, geoURL string) {
	p.baseURL = baseURL
	p.geoURL = geoURL
}

// currentPayload mirrors the OpenWeather current-conditions response shape.
type currentPayload struct {
	Coord struct {
		Lat float64 `json:"lat"`
		Lon float64 `json:"lon"`
	} `json:"coord"`
	Weather []struct {
		ID          int    `json:"id"`
		Main        string `json:"main"`
		Description string `json:"description"`
		Icon        string `json:"icon"`
	} `json:"weather"`
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		TempMin   float64 `json:"temp_min"`
		TempMax   float64 `json:"temp_max"`
		Humidity  int     `json:"humidity"`
		Pressure  int     `json:"pressure"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"`
		Deg   int     `json:"deg"`
	} `json:"wind"`
	Visibility int   `json:"visibility"`
	DT         int64 `json:"dt"`
	Sys        struct {
		Country string `json:"country"`
		Sunrise int64  `json:"sunrise"`
		Sunset  int64  `json:"sunset"`
	} `json:"sys"`
	Name string `json:"name"`
}

// forecastPayload mirrors the OpenWeather 5-day forecast response shape.
type forecastPayload struct {
	List []struct {
		DT   int64 `json:"dt"`
		Main struct {
			Temp     float64 `json:"temp"`
			TempMin  float64 `json:"temp_min"`
			TempMax  float64 `json:"temp_max"`
			Humidity int     `json:"humidity"`
		} `json:"main"`
		Weather []struct {
			ID          int    `json:"id"`
			Main        string `json:"main"`
			Description string `json:"description"`
			Icon        string `json:"icon"`
		} `json:"weather"`
		Wind struct {
			Speed float64 `json:"speed"`
		} `json:"wind"`
	} `json:"list"`
	City struct {
		Name    string `json:"name"`
		Country string `json:"country"`
	} `json:"city"`
}

// geoPayload is one entry of the OpenWeather direct-geocoding response.
type geoPayload struct {
	Name    string  `json:"name"`
	Country string  `json:"country"`
	State   string  `json:"state"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

// FetchCurrent returns normalized current conditions for a coordinate pair.
func (p *OpenWeatherProvider) FetchCurrent(ctx context.Context, lat, lon float64) (weather.WeatherSnapshot, error) {
	values := url.Values{}
	values.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	values.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))

	var payload currentPayload
	if err := p.get(ctx, p.baseURL+"/weather", values, &payload); err != nil {
		return weather.WeatherSnapshot{}, err
	}
	return normalizeCurrent(payload, ""), nil
}

// FetchCurrentByCity resolves a city name and returns its current
// conditions. The requested name is kept as the location name, matching what
// the caller searched for rather than the vendor's canonical spelling.
func (p *OpenWeatherProvider) FetchCurrentByCity(ctx context.Context, city string) (weather.WeatherSnapshot, error) {
	values := url.Values{}
	values.Set("q", city)

	var payload currentPayload
	if err := p.get(ctx, p.baseURL+"/weather", values, &payload); err != nil {
		return weather.WeatherSnapshot{}, err
	}
	return normalizeCurrent(payload, city), nil
}

// FetchForecast returns the normalized multi-point forecast.
func (p *OpenWeatherProvider) FetchForecast(ctx context.Context, lat, lon float64) (weather.ForecastSnapshot, error) {
	values := url.Values{}
	values.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	values.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))

	var payload forecastPayload
	if err := p.get(ctx, p.baseURL+"/forecast", values, &payload); err != nil {
		return weather.ForecastSnapshot{}, err
	}

	snapshot := weather.ForecastSnapshot{
		List: make([]weather.ForecastPoint, 0, len(payload.List)),
	}
	snapshot.City.Name = payload.City.Name
	snapshot.City.Country = payload.City.Country

	for _, item := range payload.List {
		point := weather.ForecastPoint{
			DT:        item.DT,
			Temp:      item.Main.Temp,
			TempMin:   item.Main.TempMin,
			TempMax:   item.Main.TempMax,
			Humidity:  item.Main.Humidity,
			WindSpeed: item.Wind.Speed,
		}
		if len(item.Weather) > 0 {
			w := item.Weather[0]
			point.Weather = normalizeCondition(w.ID, w.Main, w.Description, w.Icon)
		}
		snapshot.List = append(snapshot.List, point)
	}
	return snapshot, nil
}

// SearchCities returns up to limit geocoding matches for the query.
func (p *OpenWeatherProvider) SearchCities(ctx context.Context, query string, limit int) ([]weather.SearchResult, error) {
	values := url.Values{}
	values.Set("q", query)
	values.Set("limit", strconv.Itoa(limit))

	var payload []geoPayload
	if err := p.get(ctx, p.geoURL+"/direct", values, &payload); err != nil {
		return nil, err
	}

	results := make([]weather.SearchResult, 0, len(payload))
	for _, item := range payload {
		results = append(results, weather.SearchResult{
			Name:    item.Name,
			Country: item.Country,
			State:   item.State,
			Lat:     item.Lat,
			Lon:     item.Lon,
		})
	}
	return results, nil
}

// get issues one upstream request through the circuit breaker and decodes
// the JSON body into out. All failures are translated into the gateway error
// taxonomy; vendor error shapes never escape this method.
func (p *OpenWeatherProvider) get(ctx context.Context, endpoint string, values url.Values, out any) error {
	if p.apiKey == "" {
		return weather.ErrNotConfigured
	}

	values.Set("appid", p.apiKey)
	values.Set("units", "metric")
	u := fmt.Sprintf("%s?%s", endpoint, values.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", weather.ErrUnavailable, err)
	}

	result, err := p.circuit.Execute(func() (interface{}, error) {
		resp, execErr := p.client.Do(req)
		if execErr != nil {
			return nil, fmt.Errorf("%w: %v", weather.ErrUnavailable, execErr)
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusUnauthorized:
			return nil, weather.ErrUnauthorized
		case resp.StatusCode == http.StatusNotFound:
			return nil, weather.ErrNotFound
		case resp.StatusCode < 200 || resp.StatusCode >= 300:
			return nil, fmt.Errorf("%w: upstream status %d", weather.ErrUnavailable, resp.StatusCode)
		}

		var body json.RawMessage
		if decodeErr := json.NewDecoder(resp.Body).Decode(&body); decodeErr != nil {
			return nil, fmt.Errorf("%w: %v", weather.ErrUnavailable, decodeErr)
		}
		return body, nil
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return fmt.Errorf("%w: circuit open", weather.ErrUnavailable)
		}
		return err
	}

	body, ok := result.(json.RawMessage)
	if !ok {
		return fmt.Errorf("%w: unexpected result type from circuit breaker", weather.ErrUnavailable)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: %v", weather.ErrUnavailable, err)
	}
	return nil
}

// normalizeCurrent maps the vendor payload into a WeatherSnapshot. When
// locationName is non-empty it overrides the vendor's resolved name.
func normalizeCurrent(payload currentPayload, locationName string) weather.WeatherSnapshot {
	name := payload.Name
	if locationName != "" {
		name = locationName
	}

	snapshot := weather.WeatherSnapshot{
		Location: weather.Location{
			Name:    name,
			Country: payload.Sys.Country,
			Lat:     payload.Coord.Lat,
			Lon:     payload.Coord.Lon,
		},
		Current: weather.CurrentConditions{
			Temp:       payload.Main.Temp,
			FeelsLike:  payload.Main.FeelsLike,
			TempMin:    payload.Main.TempMin,
			TempMax:    payload.Main.TempMax,
			Humidity:   payload.Main.Humidity,
			Pressure:   payload.Main.Pressure,
			WindSpeed:  payload.Wind.Speed,
			WindDeg:    payload.Wind.Deg,
			Visibility: payload.Visibility,
			DT:         payload.DT,
		},
		Sys: weather.SunTimes{
			Sunrise: payload.Sys.Sunrise,
			Sunset:  payload.Sys.Sunset,
		},
	}

	if len(payload.Weather) > 0 {
		w := payload.Weather[0]
		snapshot.Current.Weather = normalizeCondition(w.ID, w.Main, w.Description, w.Icon)
	}
	return snapshot
}

// normalizeCondition builds the shared condition record from vendor fields.
// The day/night flag comes from the vendor icon suffix; absent one, day is
// assumed.
func normalizeCondition(id int, main, description, vendorIcon string) weather.Condition {
	night := strings.HasSuffix(vendorIcon, "n")
	return weather.Condition{
		ID:          id,
		Main:        main,
		Description: description,
		Icon:        iconToken(id, night),
	}
}
