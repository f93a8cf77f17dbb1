package kpiboard

import (
	"encoding/json"
	"math"
	"sort"
	"strings"
	"time"
)

// Category weights for importance scoring. Each weight is granted when a KPI
// matches that category's keyword set or department; the checks are
// independent, so a KPI matching several categories accumulates all of them.
const (
	weightFinancial     = 0.2
	weightCustomer      = 0.2
	weightOperational   = 0.15
	weightManufacturing = 0.1
	weightProduction    = 0.1
	weightSales         = 0.1
	weightMarketing     = 0.075
	weightSaaS          = 0.075
)

// Trend and recency bonuses layered on top of the category weights.
const (
	bonusImproving      = 0.1
	bonusVolatile       = 0.1
	bonusConsistent     = 0.05
	bonusFreshWeek      = 0.1
	bonusFreshMonth     = 0.05
	volatilityThreshold = 0.1
)

type scoreCategory struct {
	weight     float64
	keywords   []string
	department string
}

// The category table. Department comparisons are exact string matches
// against the lowercased department name, so "customer-growth" only earns
// the customer weight through its title keywords.
var scoreCategories = []scoreCategory{
	{weightFinancial, []string{"revenue", "margin", "cash", "profit", "cost"}, "finance"},
	{weightCustomer, []string{"customer", "satisfaction", "nps", "churn", "retention"}, "customer"},
	{weightOperational, []string{"efficiency", "utilization", "cycle", "fulfillment", "inventory"}, "operations"},
	{weightManufacturing, []string{"oee", "downtime", "maintenance", "defect", "quality"}, "manufacturing"},
	{weightProduction, []string{"production", "yield", "scrap", "rework", "capacity"}, "production"},
	{weightSales, []string{"sales", "pipeline", "deal", "quota", "win rate"}, "sales"},
	{weightMarketing, []string{"marketing", "campaign", "conversion", "traffic", "leads"}, "marketing"},
	{weightSaaS, []string{"arr", "mrr", "cac", "ltv", "active users"}, "saas"},
}

// Scorer computes importance scores for normalized KPIs. Scores are pure
// functions of the KPI plus the injected clock, so identical inputs always
// produce identical scores.
type Scorer struct {
	// Now supplies the current time for recency scoring. Defaults to
	// time.Now.
	Now func() time.Time
}

// Score returns the additive importance score for a KPI.
func (s Scorer) Score(kpi NormalizedKPI) float64 {
	score := s.categoryScore(kpi)
	score += trendScore(kpi.Data)
	score += s.recencyScore(kpi.LastUpdated)
	return score
}

func (s Scorer) categoryScore(kpi NormalizedKPI) float64 {
	title := strings.ToLower(kpi.Title)
	department := strings.ToLower(kpi.Department)

	var score float64
	for _, cat := range scoreCategories {
		if department == cat.department || containsAny(title, cat.keywords) {
			score += cat.weight
		}
	}
	return score
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// trendScore inspects the numeric series. With at least two usable values it
// grants bonuses for improvement (last above first), significant relative
// change versus the first value, and a fully populated series.
func trendScore(points []SeriesPoint) float64 {
	values := numericValues(points)
	if len(values) < 2 {
		return 0
	}

	var score float64
	first, last := values[0], values[len(values)-1]
	if last > first {
		score += bonusImproving
	}

	divisor := first
	if divisor == 0 {
		divisor = 1
	}
	if math.Abs((last-first)/divisor) > volatilityThreshold {
		score += bonusVolatile
	}

	if len(values) == len(points) {
		score += bonusConsistent
	}
	return score
}

func (s Scorer) recencyScore(lastUpdated time.Time) float64 {
	if lastUpdated.IsZero() {
		return 0
	}
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	age := now().Sub(lastUpdated)
	switch {
	case age < 7*24*time.Hour:
		return bonusFreshWeek
	case age < 30*24*time.Hour:
		return bonusFreshMonth
	}
	return 0
}

// numericValues pulls the numeric reading out of each point, skipping points
// with no usable number.
func numericValues(points []SeriesPoint) []float64 {
	out := make([]float64, 0, len(points))
	for _, p := range points {
		if v, ok := pointValue(p); ok {
			out = append(out, v)
		}
	}
	return out
}

// pointValue prefers the "value" field, then the first numeric field in
// sorted key order. Map iteration order is randomized, so the sort keeps
// scores stable across calls on identical input.
func pointValue(p SeriesPoint) (float64, bool) {
	if v, ok := asFloat(p["value"]); ok {
		return v, true
	}
	keys := make([]string, 0, len(p))
	for key := range p {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if v, ok := asFloat(p[key]); ok {
			return v, true
		}
	}
	return 0, false
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}
