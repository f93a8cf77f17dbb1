package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	gocommand "github.com/goliatone/go-command"
	kpiboard "github.com/goliatone/go-kpiboard/components/kpiboard"
	"github.com/goliatone/go-kpiboard/components/kpiboard/commands"
	"github.com/goliatone/go-kpiboard/components/kpiboard/queries"
)

// Executor is the surface transports call into. It hides whether commands
// run inline, through a dispatcher, or behind middleware.
type Executor interface {
	Select(ctx context.Context, input commands.SelectKPIInput) error
	Deselect(ctx context.Context, input commands.DeselectKPIInput) error
	SetChartType(ctx context.Context, input commands.SetChartTypeInput) error
	SaveLayout(ctx context.Context, input commands.SaveLayoutInput) error
	Reset(ctx context.Context, input commands.ResetBoardInput) error
	Refresh(ctx context.Context, input commands.RefreshBoardInput) error
	BoardState(ctx context.Context, input queries.BoardStateInput) (kpiboard.BoardState, error)
	Overview(ctx context.Context, input queries.OverviewInput) (kpiboard.Overview, error)
}

// CommandExecutor executes the wired commands and queries inline.
type CommandExecutor struct {
	SelectCmd    gocommand.Commander[commands.SelectKPIInput]
	DeselectCmd  gocommand.Commander[commands.DeselectKPIInput]
	ChartTypeCmd gocommand.Commander[commands.SetChartTypeInput]
	LayoutCmd    gocommand.Commander[commands.SaveLayoutInput]
	ResetCmd     gocommand.Commander[commands.ResetBoardInput]
	RefreshCmd   gocommand.Commander[commands.RefreshBoardInput]
	StateQuery   gocommand.Querier[queries.BoardStateInput, kpiboard.BoardState]
	OverviewQry  gocommand.Querier[queries.OverviewInput, kpiboard.Overview]
}

// NewCommandExecutor wires every command and query against one resolver.
func NewCommandExecutor(resolver commands.BoardResolver, aggregator *kpiboard.Aggregator, validator kpiboard.PayloadValidator, telemetry commands.Telemetry) *CommandExecutor {
	exec := &CommandExecutor{
		SelectCmd:    commands.NewSelectKPICommand(resolver, telemetry),
		DeselectCmd:  commands.NewDeselectKPICommand(resolver, telemetry),
		ChartTypeCmd: commands.NewSetChartTypeCommand(resolver, telemetry),
		LayoutCmd:    commands.NewSaveLayoutCommand(resolver, validator, telemetry),
		ResetCmd:     commands.NewResetBoardCommand(resolver, telemetry),
		RefreshCmd:   commands.NewRefreshBoardCommand(resolver, telemetry),
		StateQuery:   queries.NewBoardStateQuery(resolver),
	}
	if aggregator != nil {
		exec.OverviewQry = queries.NewOverviewQuery(aggregator)
	}
	return exec
}

var _ Executor = (*CommandExecutor)(nil)

func (e *CommandExecutor) Select(ctx context.Context, input commands.SelectKPIInput) error {
	return e.SelectCmd.Execute(ctx, input)
}

func (e *CommandExecutor) Deselect(ctx context.Context, input commands.DeselectKPIInput) error {
	return e.DeselectCmd.Execute(ctx, input)
}

func (e *CommandExecutor) SetChartType(ctx context.Context, input commands.SetChartTypeInput) error {
	return e.ChartTypeCmd.Execute(ctx, input)
}

func (e *CommandExecutor) SaveLayout(ctx context.Context, input commands.SaveLayoutInput) error {
	return e.LayoutCmd.Execute(ctx, input)
}

func (e *CommandExecutor) Reset(ctx context.Context, input commands.ResetBoardInput) error {
	return e.ResetCmd.Execute(ctx, input)
}

func (e *CommandExecutor) Refresh(ctx context.Context, input commands.RefreshBoardInput) error {
	return e.RefreshCmd.Execute(ctx, input)
}

func (e *CommandExecutor) BoardState(ctx context.Context, input queries.BoardStateInput) (kpiboard.BoardState, error) {
	return e.StateQuery.Query(ctx, input)
}

func (e *CommandExecutor) Overview(ctx context.Context, input queries.OverviewInput) (kpiboard.Overview, error) {
	if e.OverviewQry == nil {
		return kpiboard.Overview{}, errors.New("httpapi: overview query not configured")
	}
	return e.OverviewQry.Query(ctx, input)
}

// Handlers exposes plain net/http endpoints backed by an Executor, for
// applications not using go-router.
type Handlers struct {
	API Executor
}

func (h *Handlers) HandleSelectKPI(w http.ResponseWriter, r *http.Request, department, companyID string) {
	var payload struct {
		KpiID string `json:"kpiId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	input := commands.SelectKPIInput{Department: department, CompanyID: companyID, KpiID: payload.KpiID}
	if err := h.API.Select(r.Context(), input); err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handlers) HandleDeselectKPI(w http.ResponseWriter, r *http.Request, department, companyID, kpiID string) {
	input := commands.DeselectKPIInput{Department: department, CompanyID: companyID, KpiID: kpiID}
	if err := h.API.Deselect(r.Context(), input); err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handlers) HandleSaveLayout(w http.ResponseWriter, r *http.Request, department, companyID string) {
	var payload kpiboard.GridLayout
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	input := commands.SaveLayoutInput{Department: department, CompanyID: companyID, Layout: payload}
	if err := h.API.SaveLayout(r.Context(), input); err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handlers) HandleSetChartType(w http.ResponseWriter, r *http.Request, department, companyID, kpiID string) {
	var payload struct {
		ChartType kpiboard.ChartType `json:"chartType"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	input := commands.SetChartTypeInput{Department: department, CompanyID: companyID, KpiID: kpiID, Chart: payload.ChartType}
	if err := h.API.SetChartType(r.Context(), input); err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handlers) HandleResetBoard(w http.ResponseWriter, r *http.Request, department, companyID string) {
	input := commands.ResetBoardInput{Department: department, CompanyID: companyID}
	if err := h.API.Reset(r.Context(), input); err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handlers) HandleBoardState(w http.ResponseWriter, r *http.Request, department, companyID string) {
	state, err := h.API.BoardState(r.Context(), queries.BoardStateInput{Department: department, CompanyID: companyID})
	if err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(state)
}

func (h *Handlers) HandleOverview(w http.ResponseWriter, r *http.Request, companyID string) {
	overview, err := h.API.Overview(r.Context(), queries.OverviewInput{CompanyID: companyID})
	if err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(overview)
}

func statusFor(err error) int {
	if errors.Is(err, kpiboard.ErrNotFound) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}
