package gorouter

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	router "github.com/goliatone/go-router"

	kpiboard "github.com/goliatone/go-kpiboard/components/kpiboard"
	"github.com/goliatone/go-kpiboard/components/kpiboard/commands"
	"github.com/goliatone/go-kpiboard/components/kpiboard/httpapi"
	"github.com/goliatone/go-kpiboard/components/kpiboard/queries"
)

// BoardProvider resolves hydrated boards for the HTML endpoint.
type BoardProvider interface {
	Board(ctx router.Context, department, companyID string) (*kpiboard.Board, error)
}

// Config wires go-router with the KPI board API, controller, and broadcast
// hook.
type Config[T any] struct {
	Router     router.Router[T]
	API        httpapi.Executor
	Controller *kpiboard.Controller
	Boards     BoardProvider
	Broadcast  *kpiboard.BroadcastHook
	BasePath   string
	Routes     RouteConfig
}

// RouteConfig customizes the relative paths used for board endpoints.
type RouteConfig struct {
	Board     string
	Select    string
	Deselect  string
	Layout    string
	ChartType string
	Reset     string
	Overview  string
	HTML      string
	WebSocket string
}

// Register mounts the KPI board routes (JSON, HTML, WebSocket) on a
// go-router router.
func Register[T any](cfg Config[T]) error {
	if cfg.Router == nil {
		return errors.New("gorouter: router is required")
	}
	if cfg.API == nil {
		return errors.New("gorouter: api executor is required")
	}
	routes := defaultRouteConfig(cfg.Routes)
	base := cfg.BasePath
	if base == "" {
		base = "/api"
	}
	group := cfg.Router.Group(base)

	group.Get(routes.Board, router.WrapHandler(func(ctx router.Context) error {
		state, err := cfg.API.BoardState(ctx.Context(), queries.BoardStateInput{
			Department: ctx.Param("department"),
			CompanyID:  ctx.Param("companyId"),
		})
		if err != nil {
			return respondError(ctx, statusFor(err), err)
		}
		return ctx.JSON(http.StatusOK, state)
	}))

	group.Put(routes.Select, router.WrapHandler(func(ctx router.Context) error {
		var payload struct {
			KpiID string `json:"kpiId"`
		}
		if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		input := commands.SelectKPIInput{
			Department: ctx.Param("department"),
			CompanyID:  ctx.Param("companyId"),
			KpiID:      payload.KpiID,
		}
		if err := cfg.API.Select(ctx.Context(), input); err != nil {
			return respondError(ctx, statusFor(err), err)
		}
		return ctx.JSON(http.StatusOK, map[string]string{"status": "selected"})
	}))

	group.Delete(routes.Deselect, router.WrapHandler(func(ctx router.Context) error {
		input := commands.DeselectKPIInput{
			Department: ctx.Param("department"),
			CompanyID:  ctx.Param("companyId"),
			KpiID:      ctx.Param("kpiId"),
		}
		if input.KpiID == "" {
			return respondError(ctx, http.StatusBadRequest, errors.New("kpi id is required"))
		}
		if err := cfg.API.Deselect(ctx.Context(), input); err != nil {
			return respondError(ctx, statusFor(err), err)
		}
		return ctx.JSON(http.StatusOK, map[string]string{"status": "deselected"})
	}))

	group.Put(routes.Layout, router.WrapHandler(func(ctx router.Context) error {
		var layout kpiboard.GridLayout
		if err := json.Unmarshal(ctx.Body(), &layout); err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		input := commands.SaveLayoutInput{
			Department: ctx.Param("department"),
			CompanyID:  ctx.Param("companyId"),
			Layout:     layout,
		}
		if err := cfg.API.SaveLayout(ctx.Context(), input); err != nil {
			return respondError(ctx, statusFor(err), err)
		}
		return ctx.JSON(http.StatusOK, map[string]string{"status": "saved"})
	}))

	group.Put(routes.ChartType, router.WrapHandler(func(ctx router.Context) error {
		var payload struct {
			ChartType kpiboard.ChartType `json:"chartType"`
		}
		if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		input := commands.SetChartTypeInput{
			Department: ctx.Param("department"),
			CompanyID:  ctx.Param("companyId"),
			KpiID:      ctx.Param("kpiId"),
			Chart:      payload.ChartType,
		}
		if err := cfg.API.SetChartType(ctx.Context(), input); err != nil {
			return respondError(ctx, statusFor(err), err)
		}
		return ctx.JSON(http.StatusOK, map[string]string{"status": "saved"})
	}))

	group.Post(routes.Reset, router.WrapHandler(func(ctx router.Context) error {
		input := commands.ResetBoardInput{
			Department: ctx.Param("department"),
			CompanyID:  ctx.Param("companyId"),
		}
		if err := cfg.API.Reset(ctx.Context(), input); err != nil {
			return respondError(ctx, statusFor(err), err)
		}
		return ctx.JSON(http.StatusOK, map[string]string{"status": "reset"})
	}))

	group.Get(routes.Overview, router.WrapHandler(func(ctx router.Context) error {
		overview, err := cfg.API.Overview(ctx.Context(), queries.OverviewInput{
			CompanyID: ctx.Param("companyId"),
		})
		if err != nil {
			return respondError(ctx, statusFor(err), err)
		}
		return ctx.JSON(http.StatusOK, overview)
	}))

	if cfg.Controller != nil && cfg.Boards != nil {
		group.Get(routes.HTML, router.WrapHandler(func(ctx router.Context) error {
			board, err := cfg.Boards.Board(ctx, ctx.Param("department"), ctx.Param("companyId"))
			if err != nil {
				return respondError(ctx, statusFor(err), err)
			}
			var buf bytes.Buffer
			if err := cfg.Controller.RenderBoard(ctx.Context(), board, inferLocale(ctx), &buf); err != nil {
				return respondError(ctx, http.StatusInternalServerError, err)
			}
			ctx.SetHeader("Content-Type", "text/html; charset=utf-8")
			return ctx.Send(buf.Bytes())
		}))
	}

	if cfg.Broadcast != nil {
		registerWebSocket(group, cfg.Broadcast, routes.WebSocket)
	}

	return nil
}

func registerWebSocket[T any](r router.Router[T], hook *kpiboard.BroadcastHook, path string) {
	cfg := router.DefaultWebSocketConfig()
	r.WebSocket(path, cfg, func(ws router.WebSocketContext) error {
		events, cancel := hook.Subscribe()
		defer cancel()
		for {
			select {
			case event, ok := <-events:
				if !ok {
					return nil
				}
				if err := ws.WriteJSON(event); err != nil {
					return err
				}
			case <-ws.Context().Done():
				return ws.Close()
			}
		}
	})
}

func inferLocale(ctx router.Context) string {
	if locale, ok := ctx.Locals("locale").(string); ok && locale != "" {
		return locale
	}
	if locale := strings.TrimSpace(ctx.Query("locale")); locale != "" {
		return strings.ToLower(locale)
	}
	if header := ctx.Header("Accept-Language"); header != "" {
		if lang := parseAcceptLanguage(header); lang != "" {
			return lang
		}
	}
	return ""
}

func parseAcceptLanguage(header string) string {
	for _, token := range strings.Split(header, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		if idx := strings.Index(token, ";"); idx >= 0 {
			token = token[:idx]
		}
		if token != "" {
			return strings.ToLower(token)
		}
	}
	return ""
}

func respondError(ctx router.Context, status int, err error) error {
	return ctx.JSON(status, map[string]string{"error": err.Error()})
}

func statusFor(err error) int {
	if errors.Is(err, kpiboard.ErrNotFound) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func defaultRouteConfig(routes RouteConfig) RouteConfig {
	if routes.Board == "" {
		routes.Board = "/:department/kpis/:companyId"
	}
	if routes.Select == "" {
		routes.Select = "/:department/kpis/:companyId/select"
	}
	if routes.Deselect == "" {
		routes.Deselect = "/:department/kpis/:companyId/deselect/:kpiId"
	}
	if routes.Layout == "" {
		routes.Layout = "/:department/kpis/:companyId/layout"
	}
	if routes.ChartType == "" {
		routes.ChartType = "/:department/kpis/:companyId/chartConfiguration/:kpiId"
	}
	if routes.Reset == "" {
		routes.Reset = "/:department/kpis/:companyId/reset"
	}
	if routes.Overview == "" {
		routes.Overview = "/overview/:companyId"
	}
	if routes.HTML == "" {
		routes.HTML = "/:department/board/:companyId"
	}
	if routes.WebSocket == "" {
		routes.WebSocket = "/board/ws"
	}
	return routes
}
