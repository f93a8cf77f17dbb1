package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	kpiboard "github.com/goliatone/go-kpiboard/components/kpiboard"
)

// SaveLayoutInput replaces a board's grid layout.
type SaveLayoutInput struct {
	Department string              `json:"department"`
	CompanyID  string              `json:"companyId"`
	Layout     kpiboard.GridLayout `json:"layout"`
}

// SaveLayoutCommand wraps Board.SetLayout with payload validation.
type SaveLayoutCommand struct {
	resolver  BoardResolver
	validator kpiboard.PayloadValidator
	telemetry Telemetry
}

// NewSaveLayoutCommand creates a command instance. A nil validator skips
// validation.
func NewSaveLayoutCommand(resolver BoardResolver, validator kpiboard.PayloadValidator, telemetry Telemetry) *SaveLayoutCommand {
	return &SaveLayoutCommand{
		resolver:  resolver,
		validator: validator,
		telemetry: normalizeTelemetry(telemetry),
	}
}

var _ gocommand.Commander[SaveLayoutInput] = (*SaveLayoutCommand)(nil)

// Execute validates and applies the layout.
func (c *SaveLayoutCommand) Execute(ctx context.Context, msg SaveLayoutInput) error {
	if c.resolver == nil {
		return errors.New("layout command requires board resolver")
	}
	if c.validator != nil {
		if err := c.validator.ValidateLayout(msg.Layout); err != nil {
			return err
		}
	}
	board, err := c.resolver.Board(ctx, msg.Department, msg.CompanyID)
	if err != nil {
		return err
	}
	board.SetLayout(ctx, msg.Layout)
	c.telemetry.Record(ctx, "kpiboard.command.layout", map[string]any{
		"department":  msg.Department,
		"breakpoints": len(msg.Layout),
	})
	return nil
}

// ResetBoardInput restores a board's defaults.
type ResetBoardInput struct {
	Department string `json:"department"`
	CompanyID  string `json:"companyId"`
}

// ResetBoardCommand wraps Board.ResetToDefault.
type ResetBoardCommand struct {
	resolver  BoardResolver
	telemetry Telemetry
}

// NewResetBoardCommand creates a command instance.
func NewResetBoardCommand(resolver BoardResolver, telemetry Telemetry) *ResetBoardCommand {
	return &ResetBoardCommand{resolver: resolver, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[ResetBoardInput] = (*ResetBoardCommand)(nil)

// Execute resets layout and chart configuration to the authored defaults.
func (c *ResetBoardCommand) Execute(ctx context.Context, msg ResetBoardInput) error {
	if c.resolver == nil {
		return errors.New("reset command requires board resolver")
	}
	board, err := c.resolver.Board(ctx, msg.Department, msg.CompanyID)
	if err != nil {
		return err
	}
	if err := board.ResetToDefault(ctx); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "kpiboard.command.reset", map[string]any{
		"department": msg.Department,
	})
	return nil
}
