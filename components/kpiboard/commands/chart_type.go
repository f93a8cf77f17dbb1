package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	kpiboard "github.com/goliatone/go-kpiboard/components/kpiboard"
)

// SetChartTypeInput changes the chart style for one KPI card.
type SetChartTypeInput struct {
	Department string             `json:"department"`
	CompanyID  string             `json:"companyId"`
	KpiID      string             `json:"kpiId"`
	Chart      kpiboard.ChartType `json:"chartType"`
}

// SetChartTypeCommand wraps Board.SetChartType.
type SetChartTypeCommand struct {
	resolver  BoardResolver
	telemetry Telemetry
}

// NewSetChartTypeCommand creates a command instance.
func NewSetChartTypeCommand(resolver BoardResolver, telemetry Telemetry) *SetChartTypeCommand {
	return &SetChartTypeCommand{resolver: resolver, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[SetChartTypeInput] = (*SetChartTypeCommand)(nil)

// Execute applies the chart type.
func (c *SetChartTypeCommand) Execute(ctx context.Context, msg SetChartTypeInput) error {
	if c.resolver == nil {
		return errors.New("chart type command requires board resolver")
	}
	board, err := c.resolver.Board(ctx, msg.Department, msg.CompanyID)
	if err != nil {
		return err
	}
	if err := board.SetChartType(ctx, msg.KpiID, msg.Chart); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "kpiboard.command.chart_type", map[string]any{
		"department": msg.Department,
		"kpi_id":     msg.KpiID,
		"chart":      string(msg.Chart),
	})
	return nil
}
