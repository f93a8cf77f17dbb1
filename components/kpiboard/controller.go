package kpiboard

import (
	"context"
	"fmt"
	htmltemplate "html/template"
	"io"
)

// BoardCard is the view model for one rendered KPI card.
type BoardCard struct {
	ID        string
	Title     string
	ChartHTML htmltemplate.HTML
	Width     int
	Height    int
}

// BoardView is the view model handed to the board template.
type BoardView struct {
	Title    string
	Subtitle string
	Cards    []BoardCard
}

// Controller renders hydrated boards to HTML: selected cards in layout
// order, each with its server-side chart markup.
type Controller struct {
	renderer   Renderer
	charts     *ChartRenderer
	translator TranslationService
}

// ControllerOption customizes a Controller.
type ControllerOption func(*Controller)

// WithControllerCharts injects a chart renderer.
func WithControllerCharts(charts *ChartRenderer) ControllerOption {
	return func(c *Controller) {
		c.charts = charts
	}
}

// WithControllerTranslator injects a translation service for card titles.
func WithControllerTranslator(svc TranslationService) ControllerOption {
	return func(c *Controller) {
		c.translator = svc
	}
}

// NewController wires a template renderer into a controller.
func NewController(renderer Renderer, options ...ControllerOption) (*Controller, error) {
	if renderer == nil {
		return nil, fmt.Errorf("kpiboard: controller requires a renderer")
	}
	c := &Controller{
		renderer: renderer,
		charts:   NewChartRenderer(),
	}
	for _, opt := range options {
		opt(c)
	}
	return c, nil
}

// BuildView assembles the view model for a board: one card per selected KPI
// ordered by its large-breakpoint placement, with chart HTML rendered from
// the hydrated series.
func (c *Controller) BuildView(ctx context.Context, board *Board, locale string) (BoardView, error) {
	dept := board.Department()
	view := BoardView{
		Title:    dept.Name + " Dashboard",
		Subtitle: fmt.Sprintf("Company %s", board.CompanyID()),
	}

	selected := make(map[string]struct{})
	for _, id := range board.Selected() {
		selected[id] = struct{}{}
	}

	layout := board.Layout()
	for _, placement := range layout[BreakpointLG] {
		if _, ok := selected[placement.ID]; !ok {
			continue
		}
		def, ok := dept.Definition(placement.ID)
		if !ok {
			continue
		}
		series, _ := board.Series(placement.ID)
		html, err := c.charts.RenderKPI(def, series, board.ChartTypeFor(placement.ID))
		if err != nil {
			return BoardView{}, fmt.Errorf("kpiboard: render chart %s/%s: %w", dept.Slug, placement.ID, err)
		}
		title := def.TitleForLocale(locale)
		if c.translator != nil {
			key := fmt.Sprintf("kpiboard.%s.%s.title", dept.Slug, def.ID)
			title = translateOrFallback(ctx, c.translator, key, locale, title)
		}
		view.Cards = append(view.Cards, BoardCard{
			ID:        placement.ID,
			Title:     title,
			ChartHTML: htmltemplate.HTML(html),
			Width:     placement.W,
			Height:    placement.H,
		})
	}
	return view, nil
}

// RenderBoard writes the full board page to out.
func (c *Controller) RenderBoard(ctx context.Context, board *Board, locale string, out io.Writer) error {
	view, err := c.BuildView(ctx, board, locale)
	if err != nil {
		return err
	}
	_, err = c.renderer.Render("board", view, out)
	return err
}

// RenderCard writes one KPI card to out, used by partial refreshes.
func (c *Controller) RenderCard(ctx context.Context, board *Board, kpiID, locale string, out io.Writer) error {
	dept := board.Department()
	def, ok := dept.Definition(kpiID)
	if !ok {
		return fmt.Errorf("%w: %s/%s", errUnknownKPI, dept.Slug, kpiID)
	}
	series, _ := board.Series(kpiID)
	html, err := c.charts.RenderKPI(def, series, board.ChartTypeFor(kpiID))
	if err != nil {
		return fmt.Errorf("kpiboard: render chart %s/%s: %w", dept.Slug, kpiID, err)
	}
	card := BoardCard{
		ID:        kpiID,
		Title:     def.TitleForLocale(locale),
		ChartHTML: htmltemplate.HTML(html),
	}
	_, err = c.renderer.Render("card", card, out)
	return err
}
