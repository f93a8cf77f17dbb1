package queries

import (
	"context"
	"errors"
	"testing"
	"time"

	kpiboard "github.com/goliatone/go-kpiboard/components/kpiboard"
)

type stubRemote struct{}

func (stubRemote) FetchBoard(context.Context, string, string) (kpiboard.BoardSnapshot, error) {
	return kpiboard.BoardSnapshot{SelectedFields: []string{"monthlyRecurringRevenue"}}, nil
}

func (stubRemote) SelectKPI(context.Context, string, string, string) error   { return nil }
func (stubRemote) DeselectKPI(context.Context, string, string, string) error { return nil }

func (stubRemote) FetchLayout(context.Context, string, string) (kpiboard.GridLayout, error) {
	return nil, kpiboard.ErrNotFound
}

func (stubRemote) SaveLayout(context.Context, string, string, kpiboard.GridLayout) error {
	return nil
}

func (stubRemote) DeleteLayout(context.Context, string, string) error { return nil }

func (stubRemote) FetchChartConfig(context.Context, string, string) (kpiboard.ChartConfiguration, error) {
	return nil, kpiboard.ErrNotFound
}

func (stubRemote) SaveChartType(context.Context, string, string, string, kpiboard.ChartType) error {
	return nil
}

func (stubRemote) SaveChartConfig(context.Context, string, string, kpiboard.ChartConfiguration) error {
	return nil
}

func (stubRemote) DeleteChartConfig(context.Context, string, string) error { return nil }

type stubResolver struct {
	board *kpiboard.Board
	err   error
}

func (s *stubResolver) Board(context.Context, string, string) (*kpiboard.Board, error) {
	return s.board, s.err
}

func newQueryBoard(t *testing.T) *kpiboard.Board {
	t.Helper()
	board, err := kpiboard.NewBoard(kpiboard.BoardOptions{
		Department: kpiboard.DepartmentConfig{
			Slug: "sales",
			Name: "Sales",
			Catalog: []kpiboard.KpiDefinition{
				{ID: "mrr", DisplayTitle: "Monthly Recurring Revenue", BackendField: "monthlyRecurringRevenue", DefaultChart: kpiboard.ChartArea, XKey: "month", YKey: "value"},
			},
			DefaultPlacements: []kpiboard.Placement{{ID: "mrr", X: 0, Y: 0, W: 6, H: 4}},
		},
		CompanyID:      "acme",
		Remote:         stubRemote{},
		DebounceWindow: 5 * time.Millisecond,
	})
	if err != nil {
		t.Fatalf("NewBoard returned error: %v", err)
	}
	if err := board.Hydrate(context.Background()); err != nil {
		t.Fatalf("hydrate: %v", err)
	}
	return board
}

func TestBoardStateQuery(t *testing.T) {
	board := newQueryBoard(t)
	query := NewBoardStateQuery(&stubResolver{board: board})

	state, err := query.Query(context.Background(), BoardStateInput{Department: "sales", CompanyID: "acme"})
	if err != nil {
		t.Fatalf("Query returned error: %v", err)
	}
	if state.Department != "sales" || state.CompanyID != "acme" {
		t.Fatalf("unexpected identity %s/%s", state.Department, state.CompanyID)
	}
	if len(state.Selected) != 1 || state.Selected[0] != "mrr" {
		t.Fatalf("expected hydrated selection, got %v", state.Selected)
	}
	if !state.Visibility["mrr"] {
		t.Fatalf("expected mrr visible")
	}
}

func TestBoardStateQueryResolverFailure(t *testing.T) {
	boom := errors.New("unknown department")
	query := NewBoardStateQuery(&stubResolver{err: boom})
	if _, err := query.Query(context.Background(), BoardStateInput{Department: "nope"}); !errors.Is(err, boom) {
		t.Fatalf("expected resolver error, got %v", err)
	}
}

type stubOverviewBuilder struct {
	overview  kpiboard.Overview
	err       error
	companyID string
}

func (s *stubOverviewBuilder) BuildOverview(_ context.Context, companyID string) (kpiboard.Overview, error) {
	s.companyID = companyID
	return s.overview, s.err
}

func TestOverviewQuery(t *testing.T) {
	builder := &stubOverviewBuilder{overview: kpiboard.Overview{FailedDepartments: []string{"sales"}}}
	query := NewOverviewQuery(builder)

	overview, err := query.Query(context.Background(), OverviewInput{CompanyID: "acme"})
	if err != nil {
		t.Fatalf("Query returned error: %v", err)
	}
	if builder.companyID != "acme" {
		t.Fatalf("expected company forwarded, got %s", builder.companyID)
	}
	if len(overview.FailedDepartments) != 1 {
		t.Fatalf("expected overview passthrough, got %+v", overview)
	}
}
