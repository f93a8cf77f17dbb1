package kpiapi

import (
	"context"
	"sync"

	kpiboard "github.com/goliatone/go-kpiboard/components/kpiboard"
)

type boardKey struct {
	dept      string
	companyID string
}

// MockData seeds deterministic board snapshots per department for tests or
// local demos.
type MockData struct {
	Boards   map[string]kpiboard.BoardSnapshot
	Payloads map[string]kpiboard.DepartmentPayload
}

// MockClient implements kpiboard.RemoteStore and kpiboard.OverviewFeed with
// in-memory state, behaving like the live backend: selections accumulate,
// layouts and chart configs persist per department and company, and missing
// records surface kpiboard.ErrNotFound.
type MockClient struct {
	mu       sync.RWMutex
	data     MockData
	selected map[boardKey][]string
	layouts  map[boardKey]kpiboard.GridLayout
	charts   map[boardKey]kpiboard.ChartConfiguration
}

// NewMockClient builds a mock KPI backend from the provided fixtures.
func NewMockClient(data MockData) *MockClient {
	return &MockClient{
		data:     data,
		selected: map[boardKey][]string{},
		layouts:  map[boardKey]kpiboard.GridLayout{},
		charts:   map[boardKey]kpiboard.ChartConfiguration{},
	}
}

var (
	_ kpiboard.RemoteStore  = (*MockClient)(nil)
	_ kpiboard.OverviewFeed = (*MockClient)(nil)
)

// FetchBoard returns the seeded snapshot overlaid with the current
// selection.
func (c *MockClient) FetchBoard(_ context.Context, dept, companyID string) (kpiboard.BoardSnapshot, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	snapshot := c.data.Boards[dept]
	if sel, ok := c.selected[boardKey{dept, companyID}]; ok {
		snapshot.SelectedFields = append([]string(nil), sel...)
	}
	return snapshot, nil
}

// SelectKPI records a field in the selection, ignoring duplicates.
func (c *MockClient) SelectKPI(_ context.Context, dept, companyID, field string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := boardKey{dept, companyID}
	for _, existing := range c.selected[key] {
		if existing == field {
			return nil
		}
	}
	c.selected[key] = append(c.selected[key], field)
	return nil
}

// DeselectKPI removes a field from the selection.
func (c *MockClient) DeselectKPI(_ context.Context, dept, companyID, field string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := boardKey{dept, companyID}
	sel := c.selected[key]
	for i, existing := range sel {
		if existing == field {
			c.selected[key] = append(sel[:i], sel[i+1:]...)
			return nil
		}
	}
	return nil
}

// FetchLayout returns the stored layout or ErrNotFound.
func (c *MockClient) FetchLayout(_ context.Context, dept, companyID string) (kpiboard.GridLayout, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	layout, ok := c.layouts[boardKey{dept, companyID}]
	if !ok {
		return nil, kpiboard.ErrNotFound
	}
	return layout.Clone(), nil
}

// SaveLayout stores the layout.
func (c *MockClient) SaveLayout(_ context.Context, dept, companyID string, layout kpiboard.GridLayout) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.layouts[boardKey{dept, companyID}] = layout.Clone()
	return nil
}

// DeleteLayout removes the stored layout.
func (c *MockClient) DeleteLayout(_ context.Context, dept, companyID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.layouts, boardKey{dept, companyID})
	return nil
}

// FetchChartConfig returns the stored chart configuration or ErrNotFound.
func (c *MockClient) FetchChartConfig(_ context.Context, dept, companyID string) (kpiboard.ChartConfiguration, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	cfg, ok := c.charts[boardKey{dept, companyID}]
	if !ok {
		return nil, kpiboard.ErrNotFound
	}
	out := make(kpiboard.ChartConfiguration, len(cfg))
	for k, v := range cfg {
		out[k] = v
	}
	return out, nil
}

// SaveChartType stores one KPI's chart type.
func (c *MockClient) SaveChartType(_ context.Context, dept, companyID, kpiID string, chart kpiboard.ChartType) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := boardKey{dept, companyID}
	cfg, ok := c.charts[key]
	if !ok {
		cfg = kpiboard.ChartConfiguration{}
		c.charts[key] = cfg
	}
	cfg[kpiID] = chart
	return nil
}

// SaveChartConfig replaces the chart configuration wholesale.
func (c *MockClient) SaveChartConfig(_ context.Context, dept, companyID string, cfg kpiboard.ChartConfiguration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	stored := make(kpiboard.ChartConfiguration, len(cfg))
	for k, v := range cfg {
		stored[k] = v
	}
	c.charts[boardKey{dept, companyID}] = stored
	return nil
}

// DeleteChartConfig removes the stored chart configuration.
func (c *MockClient) DeleteChartConfig(_ context.Context, dept, companyID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.charts, boardKey{dept, companyID})
	return nil
}

// FetchDepartmentKPIs returns the seeded raw payload for the department.
func (c *MockClient) FetchDepartmentKPIs(_ context.Context, dept, _ string) (kpiboard.DepartmentPayload, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.data.Payloads[dept], nil
}
