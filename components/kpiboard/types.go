package kpiboard

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound signals an expected-absence condition from a remote store: the
// company has never saved a layout, chart configuration, or board for this
// department. Callers treat it as "use defaults", never as a failure.
var ErrNotFound = errors.New("kpiboard: not found")

// ChartType enumerates the renderable chart styles shared by every department.
type ChartType string

const (
	ChartArea      ChartType = "AreaChart"
	ChartBar       ChartType = "BarChart"
	ChartComposed  ChartType = "ComposedChart"
	ChartLine      ChartType = "LineChart"
	ChartPie       ChartType = "PieChart"
	ChartRadar     ChartType = "RadarChart"
	ChartRadialBar ChartType = "RadialBarChart"
	ChartScatter   ChartType = "ScatterChart"
)

// ChartTypes returns every supported chart type in stable order.
func ChartTypes() []ChartType {
	return []ChartType{
		ChartArea, ChartBar, ChartComposed, ChartLine,
		ChartPie, ChartRadar, ChartRadialBar, ChartScatter,
	}
}

// Valid reports whether t is one of the supported chart types.
func (t ChartType) Valid() bool {
	switch t {
	case ChartArea, ChartBar, ChartComposed, ChartLine,
		ChartPie, ChartRadar, ChartRadialBar, ChartScatter:
		return true
	}
	return false
}

// KpiDefinition is a static catalog entry describing one KPI a department can
// display. Definitions are composition-time data and never mutated.
type KpiDefinition struct {
	ID             string            `json:"id" yaml:"id"`
	DisplayTitle   string            `json:"displayTitle" yaml:"display_title"`
	TitleLocalized map[string]string `json:"titleLocalized,omitempty" yaml:"title_localized,omitempty"`
	// BackendField is the field name the remote API uses when it differs
	// from ID. Empty means the API uses ID as-is.
	BackendField string    `json:"backendField,omitempty" yaml:"backend_field,omitempty"`
	DefaultChart ChartType `json:"defaultChartType" yaml:"default_chart_type"`
	DefaultColor string    `json:"defaultColor,omitempty" yaml:"default_color,omitempty"`
	XKey         string    `json:"xKey" yaml:"x_key"`
	YKey         string    `json:"yKey" yaml:"y_key"`
}

// RemoteField returns the field name used when talking to the remote API.
func (d KpiDefinition) RemoteField() string {
	if d.BackendField != "" {
		return d.BackendField
	}
	return d.ID
}

// SeriesPoint is a single record of a KPI time series: a mapping from field
// name to either a string (categorical axis label) or a number.
type SeriesPoint map[string]any

// KpiSeries is one KPI's time-series payload. Point order is chronological
// and significant; series are replaced wholesale on every load.
type KpiSeries struct {
	Points []SeriesPoint `json:"points"`
}

// Placement positions one KPI card inside the 12-column grid.
type Placement struct {
	ID string `json:"i" yaml:"i"`
	X  int    `json:"x" yaml:"x"`
	Y  int    `json:"y" yaml:"y"`
	W  int    `json:"w" yaml:"w"`
	H  int    `json:"h" yaml:"h"`
}

// GridLayout holds one ordered placement list per responsive breakpoint.
type GridLayout map[string][]Placement

// ChartConfiguration maps a KPI id to the chart type chosen by the user.
// Missing ids fall back to the definition's DefaultChart.
type ChartConfiguration map[string]ChartType

// DepartmentConfig bundles everything that differs between the eight
// department dashboards: the KPI catalog, the authored default placement
// table, and the endpoint slug. Per-department differences are data, not
// code.
type DepartmentConfig struct {
	Slug              string
	Name              string
	Catalog           []KpiDefinition
	DefaultPlacements []Placement
}

// Definition looks up a catalog entry by KPI id.
func (c DepartmentConfig) Definition(id string) (KpiDefinition, bool) {
	for _, def := range c.Catalog {
		if def.ID == id {
			return def, true
		}
	}
	return KpiDefinition{}, false
}

// DefinitionByRemoteField maps a backend field name back to a catalog entry.
func (c DepartmentConfig) DefinitionByRemoteField(field string) (KpiDefinition, bool) {
	for _, def := range c.Catalog {
		if def.RemoteField() == field {
			return def, true
		}
	}
	return KpiDefinition{}, false
}

// DefaultChartConfig builds the chart configuration implied by the catalog.
func (c DepartmentConfig) DefaultChartConfig() ChartConfiguration {
	cfg := make(ChartConfiguration, len(c.Catalog))
	for _, def := range c.Catalog {
		cfg[def.ID] = def.DefaultChart
	}
	return cfg
}

// DefaultLayout expands the authored placement table into the three
// responsive breakpoint variants.
func (c DepartmentConfig) DefaultLayout() GridLayout {
	return ExpandBreakpoints(c.DefaultPlacements)
}

// KnownIDs lists every KPI id in catalog order.
func (c DepartmentConfig) KnownIDs() []string {
	ids := make([]string, len(c.Catalog))
	for i, def := range c.Catalog {
		ids[i] = def.ID
	}
	return ids
}

// BoardSnapshot is the primary payload for a department board: the KPI
// series keyed by remote field name, plus the authoritative selection.
type BoardSnapshot struct {
	Series         map[string]KpiSeries
	SelectedFields []string
}

// SelectionAPI persists which KPIs a company has chosen for a department.
type SelectionAPI interface {
	FetchBoard(ctx context.Context, dept, companyID string) (BoardSnapshot, error)
	SelectKPI(ctx context.Context, dept, companyID, field string) error
	DeselectKPI(ctx context.Context, dept, companyID, field string) error
}

// LayoutAPI persists grid layouts per department and company.
type LayoutAPI interface {
	FetchLayout(ctx context.Context, dept, companyID string) (GridLayout, error)
	SaveLayout(ctx context.Context, dept, companyID string, layout GridLayout) error
	DeleteLayout(ctx context.Context, dept, companyID string) error
}

// ChartConfigAPI persists chart-type choices per department and company.
type ChartConfigAPI interface {
	FetchChartConfig(ctx context.Context, dept, companyID string) (ChartConfiguration, error)
	SaveChartType(ctx context.Context, dept, companyID, kpiID string, chart ChartType) error
	SaveChartConfig(ctx context.Context, dept, companyID string, cfg ChartConfiguration) error
	DeleteChartConfig(ctx context.Context, dept, companyID string) error
}

// RemoteStore is the full persistence surface a Board writes through to.
type RemoteStore interface {
	SelectionAPI
	LayoutAPI
	ChartConfigAPI
}

// OverviewFeed fetches one department's raw KPI payload for the aggregator.
// The payload shape varies per department; normalization is total and never
// rejects a feed.
type OverviewFeed interface {
	FetchDepartmentKPIs(ctx context.Context, dept, companyID string) (DepartmentPayload, error)
}

// LocalCache mirrors browser storage: synchronous, per-key JSON blobs owned
// exclusively by the Board for its department's keys.
type LocalCache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte)
	Delete(key string)
}

// BoardEvent describes a board change that transports might care about.
type BoardEvent struct {
	Department string    `json:"department"`
	CompanyID  string    `json:"companyId"`
	KpiID      string    `json:"kpiId,omitempty"`
	Chart      ChartType `json:"chartType,omitempty"`
	Reason     string    `json:"reason"`
}

// RefreshHook notifies transports (REST/WebSocket) about board changes.
type RefreshHook interface {
	BoardUpdated(ctx context.Context, event BoardEvent) error
}

// BoardState is the transport-friendly view of a hydrated board.
type BoardState struct {
	Department  string             `json:"department"`
	CompanyID   string             `json:"companyId"`
	Selected    []string           `json:"selectedKPIs"`
	Visibility  map[string]bool    `json:"visibility"`
	ChartConfig ChartConfiguration `json:"chartConfigurations"`
	Layout      GridLayout         `json:"layout"`
}

// NormalizedKPI is the common record every department payload is reduced to
// before scoring. Ephemeral: built fresh per aggregation run.
type NormalizedKPI struct {
	ID          string
	Title       string
	Department  string
	Data        []SeriesPoint
	Chart       ChartType
	Color       string
	XKey        string
	YKey        string
	LastUpdated time.Time
}

// ScoredKPI pairs a normalized record with its computed importance score.
type ScoredKPI struct {
	NormalizedKPI
	Score float64
}
