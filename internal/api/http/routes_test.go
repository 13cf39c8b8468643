package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/supplysight/backend/internal/cache"
	"github.com/supplysight/backend/internal/dashboard"
	"github.com/supplysight/backend/internal/export"
	"github.com/supplysight/backend/internal/store"
	"github.com/supplysight/backend/internal/weather"
)

// fakeProvider serves canned snapshots so handler tests never go upstream.
type fakeProvider struct{}

func (fakeProvider) FetchCurrent(ctx context.Context, lat, lon float64) (weather.WeatherSnapshot, error) {
	return weather.WeatherSnapshot{Location: weather.Location{Name: "Testville", Lat: lat, Lon: lon}}, nil
}

func (fakeProvider) FetchCurrentByCity(ctx context.Context, city string) (weather.WeatherSnapshot, error) {
	return weather.WeatherSnapshot{Location: weather.Location{Name: city}}, nil
}

func (fakeProvider) FetchForecast(ctx context.Context, lat, lon float64) (weather.ForecastSnapshot, error) {
	return weather.ForecastSnapshot{}, nil
}

func (fakeProvider) SearchCities(ctx context.Context, query string, limit int) ([]weather.SearchResult, error) {
	return []weather.SearchResult{{Name: query, Country: "US"}}, nil
}

func newTestApp(memStore *store.MemoryStore) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})

	weatherSvc := weather.NewService(
		fakeProvider{},
		cache.New[weather.WeatherSnapshot](10*time.Minute),
		cache.New[weather.ForecastSnapshot](10*time.Minute),
	)

	RegisterRoutes(app, Deps{
		Weather:   weatherSvc,
		Store:     memStore,
		Dashboard: dashboard.NewService(memStore),
		Export:    export.NewService(0),
	})
	return app
}

func doRequest(t *testing.T, app *fiber.App, method, target string, body []byte) *http.Response {
	t.Helper()

	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, target, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return resp
}

func TestWeatherCurrentRejectsInvalidCoordinates(t *testing.T) {
	app := newTestApp(store.NewMemoryStore())

	for _, target := range []string{
		"/api/weather/current",
		"/api/weather/current?lat=abc&lon=10",
		"/api/weather/current?lat=91&lon=10",
		"/api/weather/current?lat=45&lon=-181",
	} {
		resp := doRequest(t, app, http.MethodGet, target, nil)
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", target, resp.StatusCode)
		}
	}
}

func TestWeatherCurrentReturnsSnapshot(t *testing.T) {
	app := newTestApp(store.NewMemoryStore())

	resp := doRequest(t, app, http.MethodGet, "/api/weather/current?lat=40.7128&lon=-74.0060", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var snap weather.WeatherSnapshot
	if err := json.NewDecoder(resp.Body).Decode(&snap); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if snap.Location.Name != "Testville" {
		t.Errorf("unexpected snapshot: %+v", snap.Location)
	}
}

func TestWeatherSearchRequiresQuery(t *testing.T) {
	app := newTestApp(store.NewMemoryStore())

	resp := doRequest(t, app, http.MethodGet, "/api/weather/search", nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}

	var body struct {
		Message string `json:"message"`
		Errors  []struct {
			Field string `json:"field"`
			Rule  string `json:"rule"`
		} `json:"errors"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Message == "" || len(body.Errors) == 0 {
		t.Fatalf("expected message and field violations, got %+v", body)
	}
}

func TestDashboardKPIs(t *testing.T) {
	memStore := store.NewMemoryStore()
	memStore.CreateProduct(store.Product{Name: "Steel", UnitPrice: 25.50, CurrentStock: 500, MinimumThreshold: 100})
	memStore.CreateProduct(store.Product{Name: "Controller", UnitPrice: 45.00, CurrentStock: 15, MinimumThreshold: 50})
	app := newTestApp(memStore)

	resp := doRequest(t, app, http.MethodGet, "/api/dashboard/kpis", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var kpis dashboard.KPISummary
	if err := json.NewDecoder(resp.Body).Decode(&kpis); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if kpis.TotalInventoryValue != "$0.0M" {
		t.Errorf("expected $0.0M, got %s", kpis.TotalInventoryValue)
	}
	if kpis.StockAlerts != 1 {
		t.Errorf("expected 1 stock alert, got %d", kpis.StockAlerts)
	}
}

func TestCreateSupplierValidatesPayload(t *testing.T) {
	app := newTestApp(store.NewMemoryStore())

	resp := doRequest(t, app, http.MethodPost, "/api/suppliers", []byte(`{"category":"Metals"}`))
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing fields, got %d", resp.StatusCode)
	}

	resp = doRequest(t, app, http.MethodPost, "/api/suppliers", []byte(`{
		"name": "Acme Industrial Supply",
		"category": "Raw Materials",
		"status": "Active",
		"performanceScore": 96.5
	}`))
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}

	var created store.Supplier
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created.ID != 1 {
		t.Errorf("expected assigned ID 1, got %d", created.ID)
	}
}

func TestOrderStatusTransitionEndpoint(t *testing.T) {
	memStore := store.NewMemoryStore()
	app := newTestApp(memStore)

	resp := doRequest(t, app, http.MethodPost, "/api/orders", []byte(`{"orderNumber":"PO-1","totalValue":100}`))
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	var created store.Order
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created.Status != store.OrderPending {
		t.Fatalf("expected default Pending status, got %q", created.Status)
	}

	// Pending cannot jump straight to Completed.
	resp = doRequest(t, app, http.MethodPatch, "/api/orders/1/status", []byte(`{"status":"Completed"}`))
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid transition, got %d", resp.StatusCode)
	}

	resp = doRequest(t, app, http.MethodPatch, "/api/orders/1/status", []byte(`{"status":"In Progress"}`))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	resp = doRequest(t, app, http.MethodPatch, "/api/orders/99/status", []byte(`{"status":"Cancelled"}`))
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown order, got %d", resp.StatusCode)
	}
}

func TestCreateOrderRejectsUnknownStatus(t *testing.T) {
	app := newTestApp(store.NewMemoryStore())

	resp := doRequest(t, app, http.MethodPost, "/api/orders", []byte(`{"orderNumber":"PO-2","status":"Shipped"}`))
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestExportEndpoint(t *testing.T) {
	app := newTestApp(store.NewMemoryStore())

	resp := doRequest(t, app, http.MethodPost, "/api/export", []byte(`{
		"format": "csv",
		"dateRange": "30days",
		"includeData": {"inventory": true, "orders": true, "suppliers": false}
	}`))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var record export.Record
	if err := json.NewDecoder(resp.Body).Decode(&record); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if record.Status != "completed" || record.ID == "" {
		t.Errorf("unexpected export record: %+v", record)
	}

	resp = doRequest(t, app, http.MethodPost, "/api/export", []byte(`{"format":"docx","dateRange":"30days"}`))
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for unsupported format, got %d", resp.StatusCode)
	}
}

func TestRecentActivitiesLimit(t *testing.T) {
	memStore := store.NewMemoryStore()
	for i := 0; i < 25; i++ {
		memStore.LogActivity(store.Activity{Type: "Order", Description: "entry"})
	}
	app := newTestApp(memStore)

	resp := doRequest(t, app, http.MethodGet, "/api/dashboard/activities?limit=5", nil)
	var activities []store.Activity
	if err := json.NewDecoder(resp.Body).Decode(&activities); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(activities) != 5 {
		t.Fatalf("expected 5 activities, got %d", len(activities))
	}

	// Default limit is 20.
	resp = doRequest(t, app, http.MethodGet, "/api/dashboard/activities", nil)
	if err := json.NewDecoder(resp.Body).Decode(&activities); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(activities) != 20 {
		t.Fatalf("expected default limit of 20, got %d", len(activities))
	}
}
