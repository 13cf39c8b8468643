package providers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/supplysight/backend/internal/weather"
)

func newTestProvider(t *testing.T, handler http.HandlerFunc) *OpenWeatherProvider {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	p := NewOpenWeatherProvider(&http.Client{Timeout: 5 * time.Second}, "test-key")
	p.SetBaseURLs(srv.URL, srv.URL)
	return p
}

func TestFetchCurrentNormalizesPayload(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("appid") != "test-key" {
			t.Errorf("missing appid query parameter")
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"coord": {"lat": 40.71, "lon": -74.01},
			"weather": [{"id": 803, "main": "Clouds", "description": "broken clouds", "icon": "04n"}],
			"main": {"temp": 21.5, "feels_like": 20.9, "temp_min": 19.0, "temp_max": 23.2, "humidity": 64, "pressure": 1014},
			"wind": {"speed": 3.6, "deg": 220},
			"visibility": 10000,
			"dt": 1700000000,
			"sys": {"country": "US", "sunrise": 1699960000, "sunset": 1699996000},
			"name": "New York"
		}`))
	})

	snap, err := p.FetchCurrent(context.Background(), 40.7128, -74.0060)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if snap.Location.Name != "New York" || snap.Location.Country != "US" {
		t.Errorf("unexpected location: %+v", snap.Location)
	}
	if snap.Current.Temp != 21.5 || snap.Current.Humidity != 64 {
		t.Errorf("unexpected readings: %+v", snap.Current)
	}
	if snap.Current.Weather.Icon != "04n" {
		t.Errorf("expected icon token 04n, got %s", snap.Current.Weather.Icon)
	}
	if snap.Sys.Sunrise != 1699960000 {
		t.Errorf("unexpected sunrise: %d", snap.Sys.Sunrise)
	}
}

func TestFetchCurrentByCityKeepsRequestedName(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"coord": {"lat": 48.85, "lon": 2.35}, "name": "Paris, Île-de-France", "sys": {"country": "FR"}}`))
	})

	snap, err := p.FetchCurrentByCity(context.Background(), "Paris")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if snap.Location.Name != "Paris" {
		t.Errorf("expected the requested name to be kept, got %q", snap.Location.Name)
	}
}

func TestErrorTaxonomy(t *testing.T) {
	cases := []struct {
		status int
		want   error
	}{
		{http.StatusUnauthorized, weather.ErrUnauthorized},
		{http.StatusNotFound, weather.ErrNotFound},
		{http.StatusTooManyRequests, weather.ErrUnavailable},
		{http.StatusInternalServerError, weather.ErrUnavailable},
	}

	for _, tc := range cases {
		p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tc.status)
		})

		_, err := p.FetchCurrent(context.Background(), 40.71, -74.01)
		if !errors.Is(err, tc.want) {
			t.Errorf("status %d: expected %v, got %v", tc.status, tc.want, err)
		}
	}
}

func TestMissingAPIKeyFailsBeforeAnyCall(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	p := NewOpenWeatherProvider(&http.Client{Timeout: time.Second}, "")
	p.SetBaseURLs(srv.URL, srv.URL)

	_, err := p.FetchCurrent(context.Background(), 40.71, -74.01)
	if !errors.Is(err, weather.ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
	if called {
		t.Fatal("no upstream call should happen without a credential")
	}
}

func TestSearchCitiesDecodesMatches(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[
			{"name": "Springfield", "country": "US", "state": "Illinois", "lat": 39.8, "lon": -89.6},
			{"name": "Springfield", "country": "US", "state": "Missouri", "lat": 37.2, "lon": -93.3}
		]`))
	})

	results, err := p.SearchCities(context.Background(), "Springfield", 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].State != "Illinois" {
		t.Errorf("unexpected first result: %+v", results[0])
	}
}
