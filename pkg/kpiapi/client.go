package kpiapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	kpiboard "github.com/goliatone/go-kpiboard/components/kpiboard"
)

// HTTPConfig configures the HTTP KPI API client.
type HTTPConfig struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

// HTTPClient talks to the KPI backend's REST endpoints. It implements both
// kpiboard.RemoteStore and kpiboard.OverviewFeed.
type HTTPClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewHTTPClient builds a client for a live KPI backend.
func NewHTTPClient(cfg HTTPConfig) (*HTTPClient, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("kpiapi: base url is required")
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &HTTPClient{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		client:  httpClient,
	}, nil
}

var (
	_ kpiboard.RemoteStore  = (*HTTPClient)(nil)
	_ kpiboard.OverviewFeed = (*HTTPClient)(nil)
)

type boardResponse struct {
	SelectedKPIs []string                    `json:"selectedKPIs"`
	KPIs         map[string][]map[string]any `json:"kpis"`
}

// FetchBoard loads the series and selection for a department board.
func (c *HTTPClient) FetchBoard(ctx context.Context, dept, companyID string) (kpiboard.BoardSnapshot, error) {
	var resp boardResponse
	path := fmt.Sprintf("/api/%s/kpis/%s", dept, companyID)
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return kpiboard.BoardSnapshot{}, err
	}
	series := make(map[string]kpiboard.KpiSeries, len(resp.KPIs))
	for field, rawPoints := range resp.KPIs {
		points := make([]kpiboard.SeriesPoint, len(rawPoints))
		for i, raw := range rawPoints {
			points[i] = kpiboard.SeriesPoint(raw)
		}
		series[field] = kpiboard.KpiSeries{Points: points}
	}
	return kpiboard.BoardSnapshot{
		Series:         series,
		SelectedFields: resp.SelectedKPIs,
	}, nil
}

// SelectKPI adds a backend field to the company's selection.
func (c *HTTPClient) SelectKPI(ctx context.Context, dept, companyID, field string) error {
	path := fmt.Sprintf("/api/%s/kpis/%s/select", dept, companyID)
	return c.do(ctx, http.MethodPut, path, map[string]string{"kpiId": field}, nil)
}

// DeselectKPI removes a backend field from the company's selection.
func (c *HTTPClient) DeselectKPI(ctx context.Context, dept, companyID, field string) error {
	path := fmt.Sprintf("/api/%s/kpis/%s/deselect/%s", dept, companyID, field)
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

type layoutResponse struct {
	Layout kpiboard.GridLayout `json:"layout"`
}

// FetchLayout loads the saved grid layout.
func (c *HTTPClient) FetchLayout(ctx context.Context, dept, companyID string) (kpiboard.GridLayout, error) {
	var resp layoutResponse
	path := fmt.Sprintf("/api/%s/kpis/%s/layout", dept, companyID)
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	if len(resp.Layout) == 0 {
		return nil, kpiboard.ErrNotFound
	}
	return resp.Layout, nil
}

// SaveLayout persists the grid layout.
func (c *HTTPClient) SaveLayout(ctx context.Context, dept, companyID string, layout kpiboard.GridLayout) error {
	path := fmt.Sprintf("/api/%s/kpis/%s/layout", dept, companyID)
	return c.do(ctx, http.MethodPut, path, map[string]any{"layout": layout}, nil)
}

// DeleteLayout removes the saved layout so defaults apply again.
func (c *HTTPClient) DeleteLayout(ctx context.Context, dept, companyID string) error {
	path := fmt.Sprintf("/api/%s/kpis/%s/layout", dept, companyID)
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

type chartConfigEntry struct {
	KpiID     string             `json:"kpiId"`
	ChartType kpiboard.ChartType `json:"chartType"`
}

type chartConfigResponse struct {
	ChartConfigurations []chartConfigEntry `json:"chartConfigurations"`
}

// FetchChartConfig loads saved chart-type choices.
func (c *HTTPClient) FetchChartConfig(ctx context.Context, dept, companyID string) (kpiboard.ChartConfiguration, error) {
	var resp chartConfigResponse
	path := fmt.Sprintf("/api/%s/kpis/%s/chartConfigurations", dept, companyID)
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	if len(resp.ChartConfigurations) == 0 {
		return nil, kpiboard.ErrNotFound
	}
	cfg := make(kpiboard.ChartConfiguration, len(resp.ChartConfigurations))
	for _, entry := range resp.ChartConfigurations {
		cfg[entry.KpiID] = entry.ChartType
	}
	return cfg, nil
}

// SaveChartType persists one KPI's chart-type choice.
func (c *HTTPClient) SaveChartType(ctx context.Context, dept, companyID, kpiID string, chart kpiboard.ChartType) error {
	path := fmt.Sprintf("/api/%s/kpis/%s/chartConfiguration/%s", dept, companyID, kpiID)
	return c.do(ctx, http.MethodPut, path, map[string]string{"chartType": string(chart)}, nil)
}

// SaveChartConfig replaces the whole chart configuration.
func (c *HTTPClient) SaveChartConfig(ctx context.Context, dept, companyID string, cfg kpiboard.ChartConfiguration) error {
	entries := make([]chartConfigEntry, 0, len(cfg))
	for kpiID, chart := range cfg {
		entries = append(entries, chartConfigEntry{KpiID: kpiID, ChartType: chart})
	}
	path := fmt.Sprintf("/api/%s/kpis/%s/chartConfigurations", dept, companyID)
	return c.do(ctx, http.MethodPut, path, map[string]any{"chartConfigurations": entries}, nil)
}

// DeleteChartConfig clears the saved chart configuration.
func (c *HTTPClient) DeleteChartConfig(ctx context.Context, dept, companyID string) error {
	path := fmt.Sprintf("/api/%s/kpis/%s/chartConfigurations", dept, companyID)
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

type overviewResponse struct {
	KPIs json.RawMessage `json:"kpis"`
}

// FetchDepartmentKPIs loads one department's raw KPI payload for the
// overview aggregator, preserving whichever of the two wire shapes the
// backend used.
func (c *HTTPClient) FetchDepartmentKPIs(ctx context.Context, dept, companyID string) (kpiboard.DepartmentPayload, error) {
	var resp overviewResponse
	path := fmt.Sprintf("/api/%s/kpis/%s", dept, companyID)
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return kpiboard.DepartmentPayload{}, err
	}
	return kpiboard.DecodeDepartmentPayload(resp.KPIs), nil
}

func (c *HTTPClient) do(ctx context.Context, method, path string, payload any, target any) error {
	var body []byte
	if payload != nil {
		var err error
		body, err = json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("kpiapi: encode payload: %w", err)
		}
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("kpiapi: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("kpiapi: http request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return kpiboard.ErrNotFound
	}
	if resp.StatusCode >= 300 {
		var buf bytes.Buffer
		_, _ = buf.ReadFrom(resp.Body)
		return fmt.Errorf("kpiapi: remote error %d: %s", resp.StatusCode, buf.String())
	}
	if target == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("kpiapi: decode response: %w", err)
	}
	return nil
}
