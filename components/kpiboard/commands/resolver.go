package commands

import (
	"context"

	kpiboard "github.com/goliatone/go-kpiboard/components/kpiboard"
)

// BoardResolver finds (or lazily builds and hydrates) the board for a
// department and company. Transports hold a resolver instead of a board map
// so board lifetimes stay in one place.
type BoardResolver interface {
	Board(ctx context.Context, department, companyID string) (*kpiboard.Board, error)
}
