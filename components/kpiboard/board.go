package kpiboard

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"
)

var (
	errMissingRemote    = errors.New("kpiboard: remote store not configured")
	errMissingDept      = errors.New("kpiboard: department config is required")
	errMissingCompany   = errors.New("kpiboard: company id is required")
	errUnknownKPI       = errors.New("kpiboard: unknown kpi id")
	errInvalidChartType = errors.New("kpiboard: invalid chart type")
)

// MutationStatus tags the outcome of an optimistic selection mutation.
type MutationStatus string

const (
	// MutationCommitted means the optimistic change was confirmed remotely.
	MutationCommitted MutationStatus = "committed"
	// MutationRolledBack means the remote write failed and the in-memory
	// change was reverted exactly.
	MutationRolledBack MutationStatus = "rolled-back"
	// MutationNoop means the call had no effect (already selected, already
	// removed, or a mutation for the same id is still pending).
	MutationNoop MutationStatus = "noop"
)

// MutationResult reports how an AddKPI/RemoveKPI call settled.
type MutationResult struct {
	Status MutationStatus
	Err    error
}

// BoardOptions configures a Board. Every collaborator is provided via
// interface so applications can swap implementations.
type BoardOptions struct {
	Department     DepartmentConfig
	CompanyID      string
	Remote         RemoteStore
	Cache          LocalCache
	RefreshHook    RefreshHook
	Telemetry      Telemetry
	DebounceWindow time.Duration
}

// Board manages one department dashboard's KPI selection, chart-type
// choices, and grid layout. The in-memory view updates synchronously so the
// UI stays responsive; the local cache and remote store are kept eventually
// consistent, with the remote as authority and the cache as a fast,
// possibly-stale fallback.
//
// Visibility is derived from the selected set — there is no second
// collection to drift out of lockstep. All mutations route through the
// Board's single mutation path.
type Board struct {
	opts BoardOptions

	mu          sync.Mutex
	hydrated    bool
	series      map[string]KpiSeries
	selected    map[string]struct{}
	pendingSel  map[string]struct{}
	chartConfig ChartConfiguration
	layout      GridLayout

	layoutWriter *coalescingWriter
	chartWriter  *coalescingWriter
}

const layoutWriteKey = "layout"

// NewBoard builds a Board and synchronously primes layout and chart
// configuration from the local cache (or computed defaults), so a first
// paint is possible with zero network latency. Call Hydrate to reconcile
// with the remote store.
func NewBoard(opts BoardOptions) (*Board, error) {
	if opts.Department.Slug == "" {
		return nil, errMissingDept
	}
	if opts.CompanyID == "" {
		return nil, errMissingCompany
	}
	if opts.Remote == nil {
		return nil, errMissingRemote
	}
	if opts.Cache == nil {
		opts.Cache = NewMemoryCache()
	}
	if opts.RefreshHook == nil {
		opts.RefreshHook = noopRefreshHook{}
	}
	opts.Telemetry = normalizeTelemetry(opts.Telemetry)

	b := &Board{
		opts:       opts,
		series:     map[string]KpiSeries{},
		selected:   map[string]struct{}{},
		pendingSel: map[string]struct{}{},
	}

	if layout, ok := cachedLayout(opts.Cache, opts.Department.Slug); ok {
		b.layout = layout
	} else {
		b.layout = opts.Department.DefaultLayout()
	}
	if cfg, ok := cachedChartConfig(opts.Cache, opts.Department.Slug); ok {
		b.chartConfig = mergeChartConfig(opts.Department.DefaultChartConfig(), cfg)
	} else {
		b.chartConfig = opts.Department.DefaultChartConfig()
	}

	b.layoutWriter = newCoalescingWriter(opts.DebounceWindow, b.sendLayout, b.writeFailed("layout"))
	b.chartWriter = newCoalescingWriter(opts.DebounceWindow, b.sendChartType, b.writeFailed("chart_type"))
	return b, nil
}

// Hydrate reconciles the board with the remote store. The primary series +
// selection fetch, the saved layout fetch, and the saved chart-config fetch
// run concurrently; each overwrites in-memory state and the local cache on
// success. Absent or failing layout/chart-config responses keep the current
// local or default values — that is an expected condition, not an error.
// Only a failed primary fetch is returned, since without series there is
// nothing to render.
func (b *Board) Hydrate(ctx context.Context) error {
	var wg sync.WaitGroup
	var primaryErr error

	wg.Add(3)
	go func() {
		defer wg.Done()
		primaryErr = b.hydrateBoard(ctx)
	}()
	go func() {
		defer wg.Done()
		b.hydrateLayout(ctx)
	}()
	go func() {
		defer wg.Done()
		b.hydrateChartConfig(ctx)
	}()
	wg.Wait()

	if primaryErr != nil {
		return fmt.Errorf("kpiboard: hydrate %s board: %w", b.opts.Department.Slug, primaryErr)
	}
	b.mu.Lock()
	b.hydrated = true
	b.mu.Unlock()
	b.notify(ctx, BoardEvent{Reason: "hydrate"})
	return nil
}

func (b *Board) hydrateBoard(ctx context.Context) error {
	snapshot, err := b.opts.Remote.FetchBoard(ctx, b.opts.Department.Slug, b.opts.CompanyID)
	if err != nil {
		return err
	}
	selected := map[string]struct{}{}
	for _, field := range snapshot.SelectedFields {
		if def, ok := b.opts.Department.DefinitionByRemoteField(field); ok {
			selected[def.ID] = struct{}{}
		}
	}
	b.mu.Lock()
	b.series = snapshot.Series
	b.selected = selected
	b.mu.Unlock()
	return nil
}

func (b *Board) hydrateLayout(ctx context.Context) {
	layout, err := b.opts.Remote.FetchLayout(ctx, b.opts.Department.Slug, b.opts.CompanyID)
	if err != nil {
		b.absorbHydrationError(ctx, "layout", err)
		return
	}
	b.mu.Lock()
	b.layout = layout
	b.mu.Unlock()
	cacheLayout(b.opts.Cache, b.opts.Department.Slug, layout)
}

func (b *Board) hydrateChartConfig(ctx context.Context) {
	cfg, err := b.opts.Remote.FetchChartConfig(ctx, b.opts.Department.Slug, b.opts.CompanyID)
	if err != nil {
		b.absorbHydrationError(ctx, "chart_config", err)
		return
	}
	merged := mergeChartConfig(b.opts.Department.DefaultChartConfig(), cfg)
	b.mu.Lock()
	b.chartConfig = merged
	b.mu.Unlock()
	cacheChartConfig(b.opts.Cache, b.opts.Department.Slug, merged)
}

func (b *Board) absorbHydrationError(ctx context.Context, concern string, err error) {
	if errors.Is(err, ErrNotFound) {
		// Never configured for this company: keep defaults silently.
		return
	}
	b.opts.Telemetry.Record(ctx, "kpiboard.hydrate.fallback", map[string]any{
		"department": b.opts.Department.Slug,
		"concern":    concern,
		"error":      err.Error(),
	})
}

// AddKPI selects a KPI: visibility flips on synchronously (optimistic), a
// placement is synthesized for every breakpoint, then the remote select call
// is issued with the department's backend field name. A remote failure rolls
// the selection and placement back exactly. Calling AddKPI for an id that is
// already selected, or whose mutation is still pending, is a no-op.
func (b *Board) AddKPI(ctx context.Context, id string) (MutationResult, error) {
	def, ok := b.opts.Department.Definition(id)
	if !ok {
		return MutationResult{}, fmt.Errorf("%w: %s/%s", errUnknownKPI, b.opts.Department.Slug, id)
	}

	b.mu.Lock()
	if _, dup := b.selected[id]; dup {
		b.mu.Unlock()
		return MutationResult{Status: MutationNoop}, nil
	}
	if _, pending := b.pendingSel[id]; pending {
		b.mu.Unlock()
		return MutationResult{Status: MutationNoop}, nil
	}
	b.pendingSel[id] = struct{}{}
	priorLayout := b.layout
	b.selected[id] = struct{}{}
	b.layout = b.layout.withPlacement(b.opts.Department, id)
	b.mu.Unlock()

	cacheLayout(b.opts.Cache, b.opts.Department.Slug, b.Layout())

	err := b.opts.Remote.SelectKPI(ctx, b.opts.Department.Slug, b.opts.CompanyID, def.RemoteField())

	b.mu.Lock()
	delete(b.pendingSel, id)
	if err != nil {
		delete(b.selected, id)
		b.layout = priorLayout
		b.mu.Unlock()
		cacheLayout(b.opts.Cache, b.opts.Department.Slug, priorLayout)
		b.opts.Telemetry.Record(ctx, "kpiboard.kpi.add_rollback", map[string]any{
			"department": b.opts.Department.Slug,
			"kpi_id":     id,
			"error":      err.Error(),
		})
		return MutationResult{Status: MutationRolledBack, Err: err}, nil
	}
	b.mu.Unlock()

	b.notify(ctx, BoardEvent{KpiID: id, Reason: "select"})
	b.opts.Telemetry.Record(ctx, "kpiboard.kpi.add", map[string]any{
		"department": b.opts.Department.Slug,
		"kpi_id":     id,
	})
	return MutationResult{Status: MutationCommitted}, nil
}

// RemoveKPI deselects a KPI, symmetric to AddKPI: optimistic removal of
// selection and placements, async-safe remote deselect, exact reinsertion on
// failure.
func (b *Board) RemoveKPI(ctx context.Context, id string) (MutationResult, error) {
	def, ok := b.opts.Department.Definition(id)
	if !ok {
		return MutationResult{}, fmt.Errorf("%w: %s/%s", errUnknownKPI, b.opts.Department.Slug, id)
	}

	b.mu.Lock()
	if _, selected := b.selected[id]; !selected {
		b.mu.Unlock()
		return MutationResult{Status: MutationNoop}, nil
	}
	if _, pending := b.pendingSel[id]; pending {
		b.mu.Unlock()
		return MutationResult{Status: MutationNoop}, nil
	}
	b.pendingSel[id] = struct{}{}
	priorLayout := b.layout
	delete(b.selected, id)
	b.layout = b.layout.withoutPlacement(id)
	b.mu.Unlock()

	cacheLayout(b.opts.Cache, b.opts.Department.Slug, b.Layout())

	err := b.opts.Remote.DeselectKPI(ctx, b.opts.Department.Slug, b.opts.CompanyID, def.RemoteField())

	b.mu.Lock()
	delete(b.pendingSel, id)
	if err != nil {
		b.selected[id] = struct{}{}
		b.layout = priorLayout
		b.mu.Unlock()
		cacheLayout(b.opts.Cache, b.opts.Department.Slug, priorLayout)
		b.opts.Telemetry.Record(ctx, "kpiboard.kpi.remove_rollback", map[string]any{
			"department": b.opts.Department.Slug,
			"kpi_id":     id,
			"error":      err.Error(),
		})
		return MutationResult{Status: MutationRolledBack, Err: err}, nil
	}
	b.mu.Unlock()

	b.notify(ctx, BoardEvent{KpiID: id, Reason: "deselect"})
	b.opts.Telemetry.Record(ctx, "kpiboard.kpi.remove", map[string]any{
		"department": b.opts.Department.Slug,
		"kpi_id":     id,
	})
	return MutationResult{Status: MutationCommitted}, nil
}

// SetChartType updates the chart type for a KPI. The in-memory state and the
// local cache update immediately; the remote write is debounced so rapid
// changes collapse to a single write per id carrying the latest value.
func (b *Board) SetChartType(ctx context.Context, id string, chart ChartType) error {
	if _, ok := b.opts.Department.Definition(id); !ok {
		return fmt.Errorf("%w: %s/%s", errUnknownKPI, b.opts.Department.Slug, id)
	}
	if !chart.Valid() {
		return fmt.Errorf("%w: %q", errInvalidChartType, chart)
	}

	b.mu.Lock()
	cfg := make(ChartConfiguration, len(b.chartConfig)+1)
	for k, v := range b.chartConfig {
		cfg[k] = v
	}
	cfg[id] = chart
	b.chartConfig = cfg
	b.mu.Unlock()

	cacheChartConfig(b.opts.Cache, b.opts.Department.Slug, cfg)
	b.chartWriter.Put(id, chart)
	b.notify(ctx, BoardEvent{KpiID: id, Chart: chart, Reason: "chart_type"})
	return nil
}

// SetLayout replaces the grid layout, typically on every drag/resize
// frame-end. The local cache is written on every call so nothing is lost on
// tab close; the remote write is debounced with latest-value coalescing.
func (b *Board) SetLayout(ctx context.Context, layout GridLayout) {
	snapshot := layout.Clone()
	b.mu.Lock()
	b.layout = snapshot
	b.mu.Unlock()

	cacheLayout(b.opts.Cache, b.opts.Department.Slug, snapshot)
	b.layoutWriter.Put(layoutWriteKey, snapshot)
	b.notify(ctx, BoardEvent{Reason: "layout"})
}

// ResetToDefault clears the cached layout and chart configuration,
// recomputes both from the department's authored defaults, and issues the
// two remote deletes. The deletes are independent: failure of one does not
// block or undo the other, and neither failure reverts the local reset,
// which has already taken visible effect. A joined error is returned for
// diagnostics only.
func (b *Board) ResetToDefault(ctx context.Context) error {
	dept := b.opts.Department.Slug
	b.opts.Cache.Delete(LayoutCacheKey(dept))
	b.opts.Cache.Delete(ChartConfigCacheKey(dept))

	b.mu.Lock()
	b.layout = b.opts.Department.DefaultLayout()
	b.chartConfig = b.opts.Department.DefaultChartConfig()
	b.mu.Unlock()

	var layoutErr, chartErr error
	if err := b.opts.Remote.DeleteLayout(ctx, dept, b.opts.CompanyID); err != nil && !errors.Is(err, ErrNotFound) {
		layoutErr = fmt.Errorf("kpiboard: reset layout: %w", err)
		b.opts.Telemetry.Record(ctx, "kpiboard.reset.layout_failed", map[string]any{
			"department": dept, "error": err.Error(),
		})
	}
	if err := b.opts.Remote.DeleteChartConfig(ctx, dept, b.opts.CompanyID); err != nil && !errors.Is(err, ErrNotFound) {
		chartErr = fmt.Errorf("kpiboard: reset chart config: %w", err)
		b.opts.Telemetry.Record(ctx, "kpiboard.reset.chart_config_failed", map[string]any{
			"department": dept, "error": err.Error(),
		})
	}

	b.notify(ctx, BoardEvent{Reason: "reset"})
	return errors.Join(layoutErr, chartErr)
}

// Flush drains pending debounced remote writes. Call on teardown so the last
// state the user left behind reaches the remote store.
func (b *Board) Flush(ctx context.Context) {
	b.layoutWriter.Flush(ctx)
	b.chartWriter.Flush(ctx)
}

// Close flushes pending writes and stops accepting new debounced writes.
func (b *Board) Close(ctx context.Context) {
	b.layoutWriter.Close(ctx)
	b.chartWriter.Close(ctx)
}

// Selected returns the currently selected KPI ids in sorted order.
func (b *Board) Selected() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	ids := make([]string, 0, len(b.selected))
	for id := range b.selected {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Visible reports whether a KPI's card is currently rendered. A KPI is
// visible if and only if it is selected.
func (b *Board) Visible(id string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, ok := b.selected[id]
	return ok
}

// Visibility derives the full id → visible mapping from the selected set.
func (b *Board) Visibility() map[string]bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make(map[string]bool, len(b.opts.Department.Catalog))
	for _, def := range b.opts.Department.Catalog {
		_, ok := b.selected[def.ID]
		out[def.ID] = ok
	}
	return out
}

// ChartTypeFor returns the chart type for a KPI, falling back to the
// catalog default.
func (b *Board) ChartTypeFor(id string) ChartType {
	b.mu.Lock()
	defer b.mu.Unlock()
	if chart, ok := b.chartConfig[id]; ok {
		return chart
	}
	if def, ok := b.opts.Department.Definition(id); ok {
		return def.DefaultChart
	}
	return ChartLine
}

// Layout returns a copy of the current grid layout.
func (b *Board) Layout() GridLayout {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.layout.Clone()
}

// Series returns the fetched series for a KPI id, resolving the backend
// field name through the catalog.
func (b *Board) Series(id string) (KpiSeries, bool) {
	def, ok := b.opts.Department.Definition(id)
	if !ok {
		return KpiSeries{}, false
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	series, ok := b.series[def.RemoteField()]
	return series, ok
}

// State captures the board as a transport-friendly snapshot.
func (b *Board) State() BoardState {
	state := BoardState{
		Department: b.opts.Department.Slug,
		CompanyID:  b.opts.CompanyID,
		Selected:   b.Selected(),
		Visibility: b.Visibility(),
		Layout:     b.Layout(),
	}
	b.mu.Lock()
	cfg := make(ChartConfiguration, len(b.chartConfig))
	for k, v := range b.chartConfig {
		cfg[k] = v
	}
	b.mu.Unlock()
	state.ChartConfig = cfg
	return state
}

// Department exposes the static configuration the board was built with.
func (b *Board) Department() DepartmentConfig {
	return b.opts.Department
}

// CompanyID returns the company the board belongs to.
func (b *Board) CompanyID() string {
	return b.opts.CompanyID
}

func (b *Board) sendLayout(ctx context.Context, _ string, value any) error {
	layout, ok := value.(GridLayout)
	if !ok {
		return fmt.Errorf("kpiboard: unexpected layout payload %T", value)
	}
	return b.opts.Remote.SaveLayout(ctx, b.opts.Department.Slug, b.opts.CompanyID, layout)
}

func (b *Board) sendChartType(ctx context.Context, kpiID string, value any) error {
	chart, ok := value.(ChartType)
	if !ok {
		return fmt.Errorf("kpiboard: unexpected chart type payload %T", value)
	}
	return b.opts.Remote.SaveChartType(ctx, b.opts.Department.Slug, b.opts.CompanyID, kpiID, chart)
}

// writeFailed logs a fire-and-forget persistence failure. Layout and
// chart-type writes are last-writer-wins data; rolling them back mid-drag
// would be more jarring than retaining the local state.
func (b *Board) writeFailed(concern string) func(key string, err error) {
	return func(key string, err error) {
		b.opts.Telemetry.Record(context.Background(), "kpiboard.write.failed", map[string]any{
			"department": b.opts.Department.Slug,
			"concern":    concern,
			"key":        key,
			"error":      err.Error(),
		})
	}
}

func (b *Board) notify(ctx context.Context, event BoardEvent) {
	event.Department = b.opts.Department.Slug
	event.CompanyID = b.opts.CompanyID
	if err := b.opts.RefreshHook.BoardUpdated(ctx, event); err != nil {
		b.opts.Telemetry.Record(ctx, "kpiboard.refresh_hook.error", map[string]any{
			"department": b.opts.Department.Slug,
			"reason":     event.Reason,
			"error":      err.Error(),
		})
	}
}

func mergeChartConfig(defaults, overrides ChartConfiguration) ChartConfiguration {
	merged := make(ChartConfiguration, len(defaults)+len(overrides))
	for k, v := range defaults {
		merged[k] = v
	}
	for k, v := range overrides {
		if v.Valid() {
			merged[k] = v
		}
	}
	return merged
}
