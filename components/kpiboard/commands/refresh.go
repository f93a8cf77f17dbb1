package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
)

// RefreshBoardInput re-hydrates a board from the remote store.
type RefreshBoardInput struct {
	Department string `json:"department"`
	CompanyID  string `json:"companyId"`
}

// RefreshBoardCommand forces a board to reload series, layout, and chart
// configuration from the remote store.
type RefreshBoardCommand struct {
	resolver  BoardResolver
	telemetry Telemetry
}

// NewRefreshBoardCommand creates a command instance.
func NewRefreshBoardCommand(resolver BoardResolver, telemetry Telemetry) *RefreshBoardCommand {
	return &RefreshBoardCommand{resolver: resolver, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[RefreshBoardInput] = (*RefreshBoardCommand)(nil)

// Execute hydrates the board.
func (c *RefreshBoardCommand) Execute(ctx context.Context, msg RefreshBoardInput) error {
	if c.resolver == nil {
		return errors.New("refresh command requires board resolver")
	}
	board, err := c.resolver.Board(ctx, msg.Department, msg.CompanyID)
	if err != nil {
		return err
	}
	if err := board.Hydrate(ctx); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "kpiboard.command.refresh", map[string]any{
		"department": msg.Department,
		"selected":   len(board.Selected()),
	})
	return nil
}
