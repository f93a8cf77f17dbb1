package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	kpiboard "github.com/goliatone/go-kpiboard/components/kpiboard"
)

// SelectKPIInput identifies the KPI a company wants on its board.
type SelectKPIInput struct {
	Department string `json:"department"`
	CompanyID  string `json:"companyId"`
	KpiID      string `json:"kpiId"`
}

// SelectKPICommand wraps Board.AddKPI so transports can add KPIs without
// linking directly against board internals.
type SelectKPICommand struct {
	resolver  BoardResolver
	telemetry Telemetry
}

// NewSelectKPICommand creates a command instance.
func NewSelectKPICommand(resolver BoardResolver, telemetry Telemetry) *SelectKPICommand {
	return &SelectKPICommand{resolver: resolver, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[SelectKPIInput] = (*SelectKPICommand)(nil)

// Execute adds the KPI to the board and surfaces rollback failures.
func (c *SelectKPICommand) Execute(ctx context.Context, msg SelectKPIInput) error {
	if c.resolver == nil {
		return errors.New("select command requires board resolver")
	}
	board, err := c.resolver.Board(ctx, msg.Department, msg.CompanyID)
	if err != nil {
		return err
	}
	result, err := board.AddKPI(ctx, msg.KpiID)
	if err != nil {
		return err
	}
	if result.Status == kpiboard.MutationRolledBack {
		return result.Err
	}
	c.telemetry.Record(ctx, "kpiboard.command.select", map[string]any{
		"department": msg.Department,
		"kpi_id":     msg.KpiID,
		"status":     string(result.Status),
	})
	return nil
}

// DeselectKPIInput identifies the KPI to remove.
type DeselectKPIInput struct {
	Department string `json:"department"`
	CompanyID  string `json:"companyId"`
	KpiID      string `json:"kpiId"`
}

// DeselectKPICommand wraps Board.RemoveKPI.
type DeselectKPICommand struct {
	resolver  BoardResolver
	telemetry Telemetry
}

// NewDeselectKPICommand creates a command instance.
func NewDeselectKPICommand(resolver BoardResolver, telemetry Telemetry) *DeselectKPICommand {
	return &DeselectKPICommand{resolver: resolver, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[DeselectKPIInput] = (*DeselectKPICommand)(nil)

// Execute removes the KPI from the board and surfaces rollback failures.
func (c *DeselectKPICommand) Execute(ctx context.Context, msg DeselectKPIInput) error {
	if c.resolver == nil {
		return errors.New("deselect command requires board resolver")
	}
	board, err := c.resolver.Board(ctx, msg.Department, msg.CompanyID)
	if err != nil {
		return err
	}
	result, err := board.RemoveKPI(ctx, msg.KpiID)
	if err != nil {
		return err
	}
	if result.Status == kpiboard.MutationRolledBack {
		return result.Err
	}
	c.telemetry.Record(ctx, "kpiboard.command.deselect", map[string]any{
		"department": msg.Department,
		"kpi_id":     msg.KpiID,
		"status":     string(result.Status),
	})
	return nil
}
