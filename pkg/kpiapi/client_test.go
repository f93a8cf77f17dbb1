package kpiapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	kpiboard "github.com/goliatone/go-kpiboard/components/kpiboard"
)

type recordedRequest struct {
	Method string
	Path   string
	Auth   string
	Body   map[string]any
}

type fakeBackend struct {
	mu        sync.Mutex
	requests  []recordedRequest
	responses map[string]string
	status    map[string]int
}

func newFakeBackend() (*fakeBackend, *httptest.Server) {
	backend := &fakeBackend{
		responses: map[string]string{},
		status:    map[string]int{},
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := recordedRequest{
			Method: r.Method,
			Path:   r.URL.Path,
			Auth:   r.Header.Get("Authorization"),
		}
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err == nil {
			rec.Body = body
		}
		backend.mu.Lock()
		backend.requests = append(backend.requests, rec)
		key := r.Method + " " + r.URL.Path
		response, ok := backend.responses[key]
		status := backend.status[key]
		backend.mu.Unlock()

		if status != 0 {
			w.WriteHeader(status)
			return
		}
		if !ok {
			response = "{}"
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(response))
	}))
	return backend, server
}

func (b *fakeBackend) last() recordedRequest {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.requests[len(b.requests)-1]
}

func newTestClient(t *testing.T, server *httptest.Server) *HTTPClient {
	t.Helper()
	client, err := NewHTTPClient(HTTPConfig{BaseURL: server.URL, APIKey: "secret"})
	if err != nil {
		t.Fatalf("NewHTTPClient returned error: %v", err)
	}
	return client
}

func TestNewHTTPClientRequiresBaseURL(t *testing.T) {
	if _, err := NewHTTPClient(HTTPConfig{}); err == nil {
		t.Fatalf("expected error without base url")
	}
}

func TestHTTPClientFetchBoard(t *testing.T) {
	backend, server := newFakeBackend()
	defer server.Close()
	backend.responses["GET /api/sales/kpis/acme"] = `{
		"selectedKPIs": ["monthlyRecurringRevenue"],
		"kpis": {
			"monthlyRecurringRevenue": [{"month": "Jan", "value": 42000}]
		}
	}`
	client := newTestClient(t, server)

	snapshot, err := client.FetchBoard(context.Background(), "sales", "acme")
	if err != nil {
		t.Fatalf("FetchBoard returned error: %v", err)
	}
	if len(snapshot.SelectedFields) != 1 || snapshot.SelectedFields[0] != "monthlyRecurringRevenue" {
		t.Fatalf("unexpected selection %v", snapshot.SelectedFields)
	}
	series := snapshot.Series["monthlyRecurringRevenue"]
	if len(series.Points) != 1 || series.Points[0]["month"] != "Jan" {
		t.Fatalf("unexpected series %v", series)
	}
	if got := backend.last().Auth; got != "Bearer secret" {
		t.Fatalf("expected bearer auth, got %q", got)
	}
}

func TestHTTPClientSelectAndDeselect(t *testing.T) {
	backend, server := newFakeBackend()
	defer server.Close()
	client := newTestClient(t, server)

	if err := client.SelectKPI(context.Background(), "sales", "acme", "churnRate"); err != nil {
		t.Fatalf("SelectKPI returned error: %v", err)
	}
	req := backend.last()
	if req.Method != http.MethodPut || req.Path != "/api/sales/kpis/acme/select" {
		t.Fatalf("unexpected request %s %s", req.Method, req.Path)
	}
	if req.Body["kpiId"] != "churnRate" {
		t.Fatalf("unexpected payload %v", req.Body)
	}

	if err := client.DeselectKPI(context.Background(), "sales", "acme", "churnRate"); err != nil {
		t.Fatalf("DeselectKPI returned error: %v", err)
	}
	req = backend.last()
	if req.Method != http.MethodDelete || req.Path != "/api/sales/kpis/acme/deselect/churnRate" {
		t.Fatalf("unexpected request %s %s", req.Method, req.Path)
	}
}

func TestHTTPClientFetchLayout(t *testing.T) {
	backend, server := newFakeBackend()
	defer server.Close()
	backend.responses["GET /api/sales/kpis/acme/layout"] = `{
		"layout": {"lg": [{"i": "mrr", "x": 0, "y": 0, "w": 6, "h": 4}]}
	}`
	client := newTestClient(t, server)

	layout, err := client.FetchLayout(context.Background(), "sales", "acme")
	if err != nil {
		t.Fatalf("FetchLayout returned error: %v", err)
	}
	if len(layout[kpiboard.BreakpointLG]) != 1 || layout[kpiboard.BreakpointLG][0].ID != "mrr" {
		t.Fatalf("unexpected layout %v", layout)
	}
}

func TestHTTPClientEmptyLayoutIsNotFound(t *testing.T) {
	_, server := newFakeBackend()
	defer server.Close()
	client := newTestClient(t, server)

	if _, err := client.FetchLayout(context.Background(), "sales", "acme"); !errors.Is(err, kpiboard.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestHTTPClientEmptyChartConfigIsNotFound(t *testing.T) {
	_, server := newFakeBackend()
	defer server.Close()
	client := newTestClient(t, server)

	if _, err := client.FetchChartConfig(context.Background(), "sales", "acme"); !errors.Is(err, kpiboard.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestHTTPClientFetchChartConfig(t *testing.T) {
	backend, server := newFakeBackend()
	defer server.Close()
	backend.responses["GET /api/sales/kpis/acme/chartConfigurations"] = `{
		"chartConfigurations": [{"kpiId": "mrr", "chartType": "PieChart"}]
	}`
	client := newTestClient(t, server)

	cfg, err := client.FetchChartConfig(context.Background(), "sales", "acme")
	if err != nil {
		t.Fatalf("FetchChartConfig returned error: %v", err)
	}
	if cfg["mrr"] != kpiboard.ChartPie {
		t.Fatalf("unexpected config %v", cfg)
	}
}

func TestHTTPClientSaveChartType(t *testing.T) {
	backend, server := newFakeBackend()
	defer server.Close()
	client := newTestClient(t, server)

	if err := client.SaveChartType(context.Background(), "sales", "acme", "mrr", kpiboard.ChartPie); err != nil {
		t.Fatalf("SaveChartType returned error: %v", err)
	}
	req := backend.last()
	if req.Path != "/api/sales/kpis/acme/chartConfiguration/mrr" || req.Body["chartType"] != "PieChart" {
		t.Fatalf("unexpected request %s %v", req.Path, req.Body)
	}
}

func TestHTTPClientMapsNotFoundStatus(t *testing.T) {
	backend, server := newFakeBackend()
	defer server.Close()
	backend.status["GET /api/nope/kpis/acme"] = http.StatusNotFound
	client := newTestClient(t, server)

	if _, err := client.FetchBoard(context.Background(), "nope", "acme"); !errors.Is(err, kpiboard.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestHTTPClientSurfacesRemoteErrors(t *testing.T) {
	backend, server := newFakeBackend()
	defer server.Close()
	backend.status["PUT /api/sales/kpis/acme/select"] = http.StatusBadGateway
	client := newTestClient(t, server)

	if err := client.SelectKPI(context.Background(), "sales", "acme", "mrr"); err == nil {
		t.Fatalf("expected remote error")
	}
}

func TestHTTPClientFetchDepartmentKPIs(t *testing.T) {
	backend, server := newFakeBackend()
	defer server.Close()
	backend.responses["GET /api/finance/kpis/acme"] = `{
		"kpis": {"revenue": [{"month": "Jan", "value": 120000}]}
	}`
	client := newTestClient(t, server)

	payload, err := client.FetchDepartmentKPIs(context.Background(), "finance", "acme")
	if err != nil {
		t.Fatalf("FetchDepartmentKPIs returned error: %v", err)
	}
	if len(payload.Metrics["revenue"]) != 1 {
		t.Fatalf("expected metric map payload, got %+v", payload)
	}
}
