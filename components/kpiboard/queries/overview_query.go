package queries

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	kpiboard "github.com/goliatone/go-kpiboard/components/kpiboard"
)

// OverviewInput identifies the company whose overview to build.
type OverviewInput struct {
	CompanyID string `json:"companyId"`
}

type overviewBuilder interface {
	BuildOverview(ctx context.Context, companyID string) (kpiboard.Overview, error)
}

// OverviewQuery builds the cross-department overview board.
type OverviewQuery struct {
	aggregator overviewBuilder
}

// NewOverviewQuery builds the query.
func NewOverviewQuery(aggregator overviewBuilder) *OverviewQuery {
	return &OverviewQuery{aggregator: aggregator}
}

var _ gocommand.Querier[OverviewInput, kpiboard.Overview] = (*OverviewQuery)(nil)

// Query assembles the overview for the company.
func (q *OverviewQuery) Query(ctx context.Context, input OverviewInput) (kpiboard.Overview, error) {
	return q.aggregator.BuildOverview(ctx, input.CompanyID)
}
