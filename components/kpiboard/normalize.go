package kpiboard

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/ettle/strcase"
)

// Defaults applied to normalized KPIs whose payload omits presentation
// hints.
const (
	fallbackChart = ChartLine
	fallbackColor = "#10B981"
	fallbackXKey  = "period"
	fallbackYKey  = "value"
)

// rawKPIObject mirrors the explicit per-KPI payload shape: the department
// API returns a list of already-structured KPI records.
type rawKPIObject struct {
	ID                 string        `json:"_id"`
	Name               string        `json:"name"`
	Title              string        `json:"title"`
	Data               []SeriesPoint `json:"data"`
	PreferredChartType ChartType     `json:"preferredChartType"`
	Color              string        `json:"color"`
	XAxisKey           string        `json:"xAxisKey"`
	YAxisKey           string        `json:"yAxisKey"`
	LastUpdated        string        `json:"lastUpdated"`
	UpdatedAt          string        `json:"updatedAt"`
}

// DepartmentPayload is the decoded `kpis` field of a department KPI
// response. Exactly one of the two shapes is populated.
type DepartmentPayload struct {
	// Objects holds the list-of-records shape.
	Objects []rawKPIObject
	// Metrics holds the map shape: metric name to raw data points.
	Metrics map[string][]any
}

// DecodeDepartmentPayload sniffs the `kpis` field of a department response.
// A JSON array is the list-of-records shape; a JSON object is the metric-map
// shape. Anything else decodes to an empty payload.
func DecodeDepartmentPayload(raw json.RawMessage) DepartmentPayload {
	trimmed := bytes.TrimLeft(raw, " \t\r\n")
	if len(trimmed) == 0 {
		return DepartmentPayload{}
	}
	switch trimmed[0] {
	case '[':
		var objects []rawKPIObject
		if err := json.Unmarshal(raw, &objects); err == nil {
			return DepartmentPayload{Objects: objects}
		}
	case '{':
		var metrics map[string][]any
		if err := json.Unmarshal(raw, &metrics); err == nil {
			return DepartmentPayload{Metrics: metrics}
		}
	}
	return DepartmentPayload{}
}

// NormalizeDepartment flattens one department's KPI payload into the common
// NormalizedKPI shape used by scoring and selection. Both payload shapes
// collapse to the same output; unusable entries are skipped, never fatal.
func NormalizeDepartment(department string, payload DepartmentPayload, now time.Time) []NormalizedKPI {
	if len(payload.Objects) > 0 {
		return normalizeObjects(department, payload.Objects)
	}
	return normalizeMetrics(department, payload.Metrics, now)
}

func normalizeObjects(department string, objects []rawKPIObject) []NormalizedKPI {
	out := make([]NormalizedKPI, 0, len(objects))
	for _, obj := range objects {
		kpi := NormalizedKPI{
			ID:         obj.ID,
			Title:      obj.Title,
			Department: department,
			Data:       obj.Data,
			Chart:      obj.PreferredChartType,
			Color:      obj.Color,
			XKey:       obj.XAxisKey,
			YKey:       obj.YAxisKey,
		}
		if kpi.Title == "" {
			kpi.Title = obj.Name
		}
		if kpi.ID == "" {
			kpi.ID = department + "-" + obj.Name
		}
		if !kpi.Chart.Valid() {
			kpi.Chart = fallbackChart
		}
		if kpi.Color == "" {
			kpi.Color = fallbackColor
		}
		if kpi.XKey == "" {
			kpi.XKey = fallbackXKey
		}
		if kpi.YKey == "" {
			kpi.YKey = fallbackYKey
		}
		kpi.LastUpdated = parseTimestamp(obj.UpdatedAt, obj.LastUpdated)
		if kpi.Data == nil {
			kpi.Data = []SeriesPoint{}
		}
		out = append(out, kpi)
	}
	return out
}

func normalizeMetrics(department string, metrics map[string][]any, now time.Time) []NormalizedKPI {
	out := make([]NormalizedKPI, 0, len(metrics))
	for metricName, raw := range metrics {
		if len(raw) == 0 {
			continue
		}
		points := make([]SeriesPoint, 0, len(raw))
		for i, item := range raw {
			points = append(points, metricPoint(item, i))
		}
		out = append(out, NormalizedKPI{
			ID:          department + "-" + metricName,
			Title:       MetricTitle(metricName),
			Department:  department,
			Data:        points,
			Chart:       fallbackChart,
			Color:       fallbackColor,
			XKey:        fallbackXKey,
			YKey:        fallbackYKey,
			LastUpdated: now,
		})
	}
	return out
}

// metricPoint converts one raw series entry to a {period, value} point. For
// object entries the period comes from the date, month, or quarter field,
// in that order; the value is the "value" field when numeric, otherwise the
// first numeric field in sorted key order. Map iteration order is
// randomized, so the sort keeps the chosen field stable across runs.
func metricPoint(item any, index int) SeriesPoint {
	defaultPeriod := fmt.Sprintf("Period %d", index+1)

	obj, ok := item.(map[string]any)
	if !ok {
		point := SeriesPoint{"period": defaultPeriod}
		if v, numeric := asFloat(item); numeric {
			point["value"] = v
		}
		return point
	}

	period := defaultPeriod
	for _, key := range []string{"date", "month", "quarter"} {
		if s, ok := obj[key].(string); ok && s != "" {
			period = s
			break
		}
	}

	point := SeriesPoint{"period": period}
	if v, numeric := asFloat(obj["value"]); numeric {
		point["value"] = v
		return point
	}
	keys := make([]string, 0, len(obj))
	for key := range obj {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if v, numeric := asFloat(obj[key]); numeric {
			point["value"] = v
			break
		}
	}
	return point
}

// MetricTitle renders a camelCase metric name as a display title, e.g.
// "monthlyRecurringRevenue" becomes "Monthly Recurring Revenue".
func MetricTitle(metricName string) string {
	return strings.TrimSpace(strcase.ToCase(metricName, strcase.TitleCase, ' '))
}

func parseTimestamp(candidates ...string) time.Time {
	for _, c := range candidates {
		if c == "" {
			continue
		}
		if t, err := time.Parse(time.RFC3339, c); err == nil {
			return t
		}
	}
	return time.Time{}
}
