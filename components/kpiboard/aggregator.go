package kpiboard

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"
)

// MaxOverviewKPIs caps the company overview board.
const MaxOverviewKPIs = 12

// Overview departments are polled in this order; it is also the first-pass
// quota order when scores tie.
var overviewDepartments = []string{
	DeptFinance, DeptSales, DeptCustomerGrowth, DeptOperations,
	DeptManufacturing, DeptProduction, DeptMarketing, DeptSaaS,
}

var errMissingFeed = errors.New("kpiboard: overview feed not configured")

// Overview is the synthesized cross-department board: the selected KPIs in
// rank order, a ready-to-render layout, and the departments whose fetch
// failed (their KPIs are simply absent, the overview still renders).
type Overview struct {
	KPIs              []ScoredKPI
	Layout            GridLayout
	FailedDepartments []string
	GeneratedAt       time.Time
}

// AggregatorOptions configures an Aggregator.
type AggregatorOptions struct {
	Feed      OverviewFeed
	Telemetry Telemetry
	// Departments overrides the default department list, mainly for tests.
	Departments []string
	// Now supplies the clock for normalization and recency scoring.
	Now func() time.Time
}

// Aggregator builds the company overview: it fans out one fetch per
// department, normalizes whatever comes back, scores every KPI, and selects
// a department-diverse top set.
type Aggregator struct {
	opts   AggregatorOptions
	scorer Scorer
}

// NewAggregator builds an Aggregator with safe defaults.
func NewAggregator(opts AggregatorOptions) (*Aggregator, error) {
	if opts.Feed == nil {
		return nil, errMissingFeed
	}
	if len(opts.Departments) == 0 {
		opts.Departments = overviewDepartments
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	opts.Telemetry = normalizeTelemetry(opts.Telemetry)
	return &Aggregator{
		opts:   opts,
		scorer: Scorer{Now: opts.Now},
	}, nil
}

// BuildOverview fetches all departments concurrently and assembles the
// overview. A department whose fetch or decode fails contributes nothing
// and is listed in FailedDepartments; only a fully failed board is still a
// valid, empty overview.
func (a *Aggregator) BuildOverview(ctx context.Context, companyID string) (Overview, error) {
	now := a.opts.Now()

	type deptResult struct {
		department string
		kpis       []NormalizedKPI
		err        error
	}

	results := make([]deptResult, len(a.opts.Departments))
	var wg sync.WaitGroup
	for i, dept := range a.opts.Departments {
		wg.Add(1)
		go func(i int, dept string) {
			defer wg.Done()
			kpis, err := a.fetchDepartment(ctx, dept, companyID, now)
			results[i] = deptResult{department: dept, kpis: kpis, err: err}
		}(i, dept)
	}
	wg.Wait()

	var all []ScoredKPI
	var failed []string
	for _, res := range results {
		if res.err != nil {
			failed = append(failed, res.department)
			a.opts.Telemetry.Record(ctx, "kpiboard.overview.department_failed", map[string]any{
				"department": res.department,
				"error":      res.err.Error(),
			})
			continue
		}
		for _, kpi := range res.kpis {
			all = append(all, ScoredKPI{
				NormalizedKPI: kpi,
				Score:         a.scorer.Score(kpi),
			})
		}
	}

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Score > all[j].Score
	})

	selected := selectDiverse(all, len(a.opts.Departments))
	ids := make([]string, 0, len(selected))
	for _, kpi := range selected {
		ids = append(ids, kpi.ID)
	}

	return Overview{
		KPIs:              selected,
		Layout:            OverviewLayout(ids),
		FailedDepartments: failed,
		GeneratedAt:       now,
	}, nil
}

func (a *Aggregator) fetchDepartment(ctx context.Context, department, companyID string, now time.Time) ([]NormalizedKPI, error) {
	payload, err := a.opts.Feed.FetchDepartmentKPIs(ctx, department, companyID)
	if err != nil {
		return nil, err
	}
	return NormalizeDepartment(department, payload, now), nil
}

// selectDiverse picks up to MaxOverviewKPIs from the score-sorted list in
// two passes. The first walks the ranking and takes each department's best
// KPI, stopping once every department is represented; the second fills
// remaining slots with the highest scorers not yet taken. With all
// departments present the overview can never be monopolized by one loud
// department.
func selectDiverse(ranked []ScoredKPI, departmentCount int) []ScoredKPI {
	selected := make([]ScoredKPI, 0, MaxOverviewKPIs)
	taken := make(map[string]struct{}, MaxOverviewKPIs)
	seenDept := make(map[string]struct{}, departmentCount)

	for _, kpi := range ranked {
		if _, ok := seenDept[kpi.Department]; ok {
			continue
		}
		seenDept[kpi.Department] = struct{}{}
		taken[kpi.ID] = struct{}{}
		selected = append(selected, kpi)
		if len(seenDept) >= departmentCount {
			break
		}
	}

	for _, kpi := range ranked {
		if len(selected) >= MaxOverviewKPIs {
			break
		}
		if _, ok := taken[kpi.ID]; ok {
			continue
		}
		taken[kpi.ID] = struct{}{}
		selected = append(selected, kpi)
	}
	return selected
}
