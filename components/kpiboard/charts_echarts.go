package kpiboard

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

const defaultChartHeight = "360px"

var sharedChartCache = NewChartCache(5 * time.Minute)

// ChartRenderer renders one KPI card's chart as server-side HTML via
// go-echarts.
type ChartRenderer struct {
	cache      RenderCache
	theme      string
	assetsHost string
}

// ChartRendererOption customizes renderer behavior.
type ChartRendererOption func(*ChartRenderer)

// WithRenderCache injects a render cache.
func WithRenderCache(cache RenderCache) ChartRendererOption {
	return func(r *ChartRenderer) {
		r.cache = cache
	}
}

// WithTheme sets the echarts theme (defaults to Westeros).
func WithTheme(theme string) ChartRendererOption {
	return func(r *ChartRenderer) {
		r.theme = theme
	}
}

// WithAssetsHost rewrites the assets host so the ECharts JS loads from a CDN.
func WithAssetsHost(host string) ChartRendererOption {
	return func(r *ChartRenderer) {
		r.assetsHost = host
	}
}

// NewChartRenderer builds a renderer with the shared cache and the default
// theme.
func NewChartRenderer(options ...ChartRendererOption) *ChartRenderer {
	r := &ChartRenderer{
		cache: sharedChartCache,
		theme: types.ThemeWesteros,
	}
	for _, opt := range options {
		opt(r)
	}
	return r
}

// RenderKPI renders one catalog KPI's series with the chosen chart type.
func (r *ChartRenderer) RenderKPI(def KpiDefinition, series KpiSeries, chart ChartType) (string, error) {
	if !chart.Valid() {
		chart = def.DefaultChart
	}
	render := func() (string, error) {
		labels, values := splitSeries(series, def.XKey, def.YKey)
		return r.render(def.DisplayTitle, chart, labels, values)
	}
	if r.cache == nil {
		return render()
	}
	key := fmt.Sprintf("%s:%s:%s:%s", def.ID, chart, r.theme, seriesHash(series))
	return r.cache.GetOrRender(key, render)
}

func (r *ChartRenderer) render(title string, chart ChartType, labels []string, values []float64) (string, error) {
	switch chart {
	case ChartArea:
		return r.renderArea(title, labels, values)
	case ChartBar:
		return r.renderBar(title, labels, values)
	case ChartComposed:
		return r.renderComposed(title, labels, values)
	case ChartLine:
		return r.renderLine(title, labels, values)
	case ChartPie:
		return r.renderPie(title, labels, values)
	case ChartRadar:
		return r.renderRadar(title, labels, values)
	case ChartRadialBar:
		return r.renderRadialBar(title, labels, values)
	case ChartScatter:
		return r.renderScatter(title, labels, values)
	default:
		return "", fmt.Errorf("kpiboard: unsupported chart type: %s", chart)
	}
}

func (r *ChartRenderer) renderLine(title string, labels []string, values []float64) (string, error) {
	line := charts.NewLine()
	line.SetGlobalOptions(r.globalChartOptions(title)...)
	line.SetXAxis(labels)
	line.AddSeries(title, toLineData(values))
	line.SetSeriesOptions(charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}))
	return renderChart(line)
}

func (r *ChartRenderer) renderArea(title string, labels []string, values []float64) (string, error) {
	line := charts.NewLine()
	line.SetGlobalOptions(r.globalChartOptions(title)...)
	line.SetXAxis(labels)
	line.AddSeries(title, toLineData(values))
	line.SetSeriesOptions(
		charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}),
		charts.WithAreaStyleOpts(opts.AreaStyle{Opacity: 0.3}),
	)
	return renderChart(line)
}

func (r *ChartRenderer) renderBar(title string, labels []string, values []float64) (string, error) {
	bar := charts.NewBar()
	bar.SetGlobalOptions(r.globalChartOptions(title)...)
	bar.SetXAxis(labels)
	bar.AddSeries(title, toBarData(values))
	return renderChart(bar)
}

// renderComposed overlays a smoothed line on bars of the same series,
// matching the dual-reading the composed card gives.
func (r *ChartRenderer) renderComposed(title string, labels []string, values []float64) (string, error) {
	bar := charts.NewBar()
	bar.SetGlobalOptions(r.globalChartOptions(title)...)
	bar.SetXAxis(labels)
	bar.AddSeries(title, toBarData(values))

	line := charts.NewLine()
	line.SetXAxis(labels)
	line.AddSeries(title, toLineData(values))
	line.SetSeriesOptions(charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}))

	bar.Overlap(line)
	return renderChart(bar)
}

func (r *ChartRenderer) renderPie(title string, labels []string, values []float64) (string, error) {
	pie := charts.NewPie()
	pie.SetGlobalOptions(r.globalChartOptions(title)...)
	pie.AddSeries(title, toPieData(labels, values))
	return renderChart(pie)
}

// renderRadialBar approximates a radial bar with a rose-type pie, the
// closest echarts primitive.
func (r *ChartRenderer) renderRadialBar(title string, labels []string, values []float64) (string, error) {
	pie := charts.NewPie()
	pie.SetGlobalOptions(r.globalChartOptions(title)...)
	pie.AddSeries(title, toPieData(labels, values))
	pie.SetSeriesOptions(charts.WithPieChartOpts(opts.PieChart{
		RoseType: "radius",
		Radius:   []string{"30%", "75%"},
	}))
	return renderChart(pie)
}

func (r *ChartRenderer) renderRadar(title string, labels []string, values []float64) (string, error) {
	radar := charts.NewRadar()
	indicators := make([]*opts.Indicator, len(labels))
	maxValue := maxOf(values) * 1.2
	for i, label := range labels {
		indicators[i] = &opts.Indicator{Name: label, Max: float32(maxValue)}
	}
	radar.SetGlobalOptions(append(r.globalChartOptions(title),
		charts.WithRadarComponentOpts(opts.RadarComponent{Indicator: indicators}),
	)...)
	radar.AddSeries(title, []opts.RadarData{{Name: title, Value: values}})
	return renderChart(radar)
}

func (r *ChartRenderer) renderScatter(title string, labels []string, values []float64) (string, error) {
	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(r.globalChartOptions(title)...)
	scatter.SetXAxis(labels)
	scatter.AddSeries(title, toScatterData(values))
	return renderChart(scatter)
}

func (r *ChartRenderer) globalChartOptions(title string) []charts.GlobalOpts {
	initOpts := opts.Initialization{
		Theme:  r.theme,
		Width:  "100%",
		Height: defaultChartHeight,
	}
	if r.assetsHost != "" {
		initOpts.AssetsHost = r.assetsHost
	}
	return []charts.GlobalOpts{
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithInitializationOpts(initOpts),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(false)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	}
}

func renderChart(renderable interface{ Render(io.Writer) error }) (string, error) {
	var buf bytes.Buffer
	if err := renderable.Render(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// splitSeries pulls parallel label and value slices out of a KPI series
// using the definition's axis keys, with point-shape fallbacks for payloads
// that use other field names.
func splitSeries(series KpiSeries, xKey, yKey string) ([]string, []float64) {
	labels := make([]string, 0, len(series.Points))
	values := make([]float64, 0, len(series.Points))
	for i, point := range series.Points {
		label, ok := point[xKey].(string)
		if !ok || label == "" {
			label = pointLabel(point, i)
		}
		value, ok := asFloat(point[yKey])
		if !ok {
			value, _ = pointValue(point)
		}
		labels = append(labels, label)
		values = append(values, value)
	}
	return labels, values
}

func pointLabel(point SeriesPoint, index int) string {
	for _, key := range []string{"month", "period", "date", "quarter"} {
		if s, ok := point[key].(string); ok && s != "" {
			return s
		}
	}
	return fmt.Sprintf("Period %d", index+1)
}

func toLineData(values []float64) []opts.LineData {
	data := make([]opts.LineData, len(values))
	for i, v := range values {
		data[i] = opts.LineData{Value: v}
	}
	return data
}

func toBarData(values []float64) []opts.BarData {
	data := make([]opts.BarData, len(values))
	for i, v := range values {
		data[i] = opts.BarData{Value: v}
	}
	return data
}

func toPieData(labels []string, values []float64) []opts.PieData {
	data := make([]opts.PieData, len(values))
	for i, v := range values {
		name := ""
		if i < len(labels) {
			name = labels[i]
		}
		if name == "" {
			name = fmt.Sprintf("Slice %d", i+1)
		}
		data[i] = opts.PieData{Name: name, Value: v}
	}
	return data
}

func toScatterData(values []float64) []opts.ScatterData {
	data := make([]opts.ScatterData, len(values))
	for i, v := range values {
		data[i] = opts.ScatterData{Value: v}
	}
	return data
}

func maxOf(values []float64) float64 {
	max := 1.0
	for _, v := range values {
		if v > max {
			max = v
		}
	}
	return max
}
