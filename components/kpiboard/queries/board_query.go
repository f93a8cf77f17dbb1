package queries

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	kpiboard "github.com/goliatone/go-kpiboard/components/kpiboard"
)

// BoardStateInput identifies the board to read.
type BoardStateInput struct {
	Department string `json:"department"`
	CompanyID  string `json:"companyId"`
}

type boardResolver interface {
	Board(ctx context.Context, department, companyID string) (*kpiboard.Board, error)
}

// BoardStateQuery reads the full state snapshot of a department board.
type BoardStateQuery struct {
	resolver boardResolver
}

// NewBoardStateQuery builds the query.
func NewBoardStateQuery(resolver boardResolver) *BoardStateQuery {
	return &BoardStateQuery{resolver: resolver}
}

var _ gocommand.Querier[BoardStateInput, kpiboard.BoardState] = (*BoardStateQuery)(nil)

// Query resolves the board and returns its current state.
func (q *BoardStateQuery) Query(ctx context.Context, input BoardStateInput) (kpiboard.BoardState, error) {
	board, err := q.resolver.Board(ctx, input.Department, input.CompanyID)
	if err != nil {
		return kpiboard.BoardState{}, err
	}
	return board.State(), nil
}
