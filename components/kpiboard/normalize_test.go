package kpiboard

import (
	"encoding/json"
	"sort"
	"testing"
	"time"
)

var normalizeNow = time.Date(2026, 2, 10, 9, 0, 0, 0, time.UTC)

func TestDecodeDepartmentPayloadSniffsShapes(t *testing.T) {
	objects := DecodeDepartmentPayload(json.RawMessage(`[{"name":"revenue","data":[]}]`))
	if len(objects.Objects) != 1 || objects.Metrics != nil {
		t.Fatalf("expected object shape, got %+v", objects)
	}

	metrics := DecodeDepartmentPayload(json.RawMessage(`{"revenue":[{"month":"Jan","value":10}]}`))
	if len(metrics.Metrics) != 1 || metrics.Objects != nil {
		t.Fatalf("expected metric shape, got %+v", metrics)
	}

	empty := DecodeDepartmentPayload(json.RawMessage(`"surprise"`))
	if len(empty.Objects) != 0 || len(empty.Metrics) != 0 {
		t.Fatalf("expected empty payload for unknown shape")
	}
}

func TestNormalizeObjectsAppliesFallbacks(t *testing.T) {
	payload := DecodeDepartmentPayload(json.RawMessage(`[
		{"_id":"k1","title":"Revenue","data":[{"month":"Jan","value":10}],
		 "preferredChartType":"BarChart","color":"#123456","xAxisKey":"month","yAxisKey":"value",
		 "updatedAt":"2026-02-01T00:00:00Z"},
		{"name":"margin"}
	]`))
	kpis := NormalizeDepartment("finance", payload, normalizeNow)
	if len(kpis) != 2 {
		t.Fatalf("expected 2 kpis, got %d", len(kpis))
	}

	explicit := kpis[0]
	if explicit.ID != "k1" || explicit.Chart != ChartBar || explicit.Color != "#123456" {
		t.Fatalf("explicit fields should pass through: %+v", explicit)
	}
	if !explicit.LastUpdated.Equal(time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected updatedAt parsed, got %v", explicit.LastUpdated)
	}

	bare := kpis[1]
	if bare.ID != "finance-margin" {
		t.Fatalf("expected synthesized id, got %q", bare.ID)
	}
	if bare.Title != "margin" {
		t.Fatalf("expected name as title fallback, got %q", bare.Title)
	}
	if bare.Chart != ChartLine || bare.Color != "#10B981" || bare.XKey != "period" || bare.YKey != "value" {
		t.Fatalf("expected presentation fallbacks, got %+v", bare)
	}
	if bare.Data == nil || len(bare.Data) != 0 {
		t.Fatalf("expected empty non-nil data")
	}
	if !bare.LastUpdated.IsZero() {
		t.Fatalf("expected zero timestamp without update fields")
	}
}

func TestNormalizeMetricsBuildsTitlesAndPeriods(t *testing.T) {
	payload := DecodeDepartmentPayload(json.RawMessage(`{
		"monthlyRecurringRevenue": [
			{"month":"Jan","value":100},
			{"quarter":"Q2","value":120},
			{"note":"n/a","count":7},
			42
		],
		"emptyMetric": []
	}`))
	kpis := NormalizeDepartment("sales", payload, normalizeNow)
	if len(kpis) != 1 {
		t.Fatalf("empty metrics should be skipped, got %d kpis", len(kpis))
	}

	kpi := kpis[0]
	if kpi.ID != "sales-monthlyRecurringRevenue" {
		t.Fatalf("unexpected id %q", kpi.ID)
	}
	if kpi.Title != "Monthly Recurring Revenue" {
		t.Fatalf("unexpected title %q", kpi.Title)
	}
	if !kpi.LastUpdated.Equal(normalizeNow) {
		t.Fatalf("metric shape should stamp the aggregation time")
	}
	if len(kpi.Data) != 4 {
		t.Fatalf("expected 4 points, got %d", len(kpi.Data))
	}
	if kpi.Data[0]["period"] != "Jan" || kpi.Data[0]["value"] != 100.0 {
		t.Fatalf("unexpected first point %v", kpi.Data[0])
	}
	if kpi.Data[1]["period"] != "Q2" {
		t.Fatalf("expected quarter fallback, got %v", kpi.Data[1])
	}
	if kpi.Data[2]["period"] != "Period 3" || kpi.Data[2]["value"] != 7.0 {
		t.Fatalf("expected synthesized period and first numeric field, got %v", kpi.Data[2])
	}
	if kpi.Data[3]["period"] != "Period 4" || kpi.Data[3]["value"] != 42.0 {
		t.Fatalf("expected bare number handled, got %v", kpi.Data[3])
	}
}

func TestNormalizeMetricsTwoPointSeriesScoresTrend(t *testing.T) {
	// A finance revenue metric with two rising points earns the financial
	// weight plus improvement, volatility, consistency, and freshness.
	payload := DecodeDepartmentPayload(json.RawMessage(`{
		"revenue": [
			{"month":"Jan","value":100},
			{"month":"Feb","value":150}
		]
	}`))
	kpis := NormalizeDepartment("finance", payload, normalizeNow)
	if len(kpis) != 1 {
		t.Fatalf("expected 1 kpi, got %d", len(kpis))
	}
	scorer := Scorer{Now: func() time.Time { return normalizeNow }}
	approx(t, scorer.Score(kpis[0]), 0.2+bonusImproving+bonusVolatile+bonusConsistent+bonusFreshWeek)
}

func TestMetricPointMultipleNumericFieldsStable(t *testing.T) {
	entry := map[string]any{"month": "Jan", "unitsIn": 100.0, "unitsOut": 40.0}
	for i := 0; i < 50; i++ {
		point := metricPoint(entry, 0)
		if point["value"] != 100.0 {
			t.Fatalf("expected first numeric field in sorted key order, got %v", point["value"])
		}
	}
}

func TestMetricTitle(t *testing.T) {
	cases := map[string]string{
		"monthlyRecurringRevenue": "Monthly Recurring Revenue",
		"nps":                     "Nps",
		"grossMargin":             "Gross Margin",
	}
	for in, want := range cases {
		if got := MetricTitle(in); got != want {
			t.Fatalf("MetricTitle(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNormalizeMetricsOrderIndependence(t *testing.T) {
	payload := DepartmentPayload{Metrics: map[string][]any{
		"a": {map[string]any{"value": 1.0}},
		"b": {map[string]any{"value": 2.0}},
	}}
	kpis := NormalizeDepartment("ops", payload, normalizeNow)
	ids := []string{kpis[0].ID, kpis[1].ID}
	sort.Strings(ids)
	if ids[0] != "ops-a" || ids[1] != "ops-b" {
		t.Fatalf("unexpected ids %v", ids)
	}
}
