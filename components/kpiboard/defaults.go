package kpiboard

// Department slugs as they appear in API paths and cache keys.
const (
	DeptSales          = "sales"
	DeptMarketing      = "marketing"
	DeptFinance        = "finance"
	DeptManufacturing  = "manufacturing"
	DeptProduction     = "production"
	DeptOperations     = "operations"
	DeptCustomerGrowth = "customer-growth"
	DeptSaaS           = "saas"
)

// AllDepartmentSlugs returns every known department slug in stable order.
func AllDepartmentSlugs() []string {
	return []string{
		DeptSales, DeptMarketing, DeptFinance, DeptManufacturing,
		DeptProduction, DeptOperations, DeptCustomerGrowth, DeptSaaS,
	}
}

// DepartmentBySlug returns the built-in configuration for a department.
func DepartmentBySlug(slug string) (DepartmentConfig, bool) {
	for _, cfg := range DefaultDepartmentConfigs() {
		if cfg.Slug == slug {
			return cfg, true
		}
	}
	return DepartmentConfig{}, false
}

// DefaultDepartmentConfigs returns the authored catalogs for all eight
// departments. The catalogs, default chart types, colors, and placement
// tables are product data shared with the rendering layer.
func DefaultDepartmentConfigs() []DepartmentConfig {
	return []DepartmentConfig{
		salesDepartment(),
		marketingDepartment(),
		financeDepartment(),
		manufacturingDepartment(),
		productionDepartment(),
		operationsDepartment(),
		customerGrowthDepartment(),
		saasDepartment(),
	}
}

func salesDepartment() DepartmentConfig {
	return DepartmentConfig{
		Slug: DeptSales,
		Name: "Sales",
		Catalog: []KpiDefinition{
			{ID: "mrr", DisplayTitle: "Monthly Recurring Revenue", BackendField: "monthlyRecurringRevenue", DefaultChart: ChartArea, DefaultColor: "#10B981", XKey: "month", YKey: "value"},
			{ID: "growth", DisplayTitle: "Sales Growth Rate (%)", BackendField: "salesGrowthRate", DefaultChart: ChartLine, DefaultColor: "#8B5CF6", XKey: "month", YKey: "value"},
			{ID: "target", DisplayTitle: "Sales Target Achievement (%)", BackendField: "salesTargetAchievement", DefaultChart: ChartRadialBar, DefaultColor: "#F59E0B", XKey: "month", YKey: "value"},
			{ID: "conversion", DisplayTitle: "Lead-to-Customer Conversion Rate (%)", BackendField: "leadToCustomerConversionRate", DefaultChart: ChartLine, DefaultColor: "#EC4899", XKey: "month", YKey: "value"},
			{ID: "dealSize", DisplayTitle: "Average Deal Size ($)", BackendField: "averageDealSize", DefaultChart: ChartBar, DefaultColor: "#6366F1", XKey: "month", YKey: "value"},
			{ID: "cac", DisplayTitle: "Customer Acquisition Cost ($)", BackendField: "customerAcquisitionCost", DefaultChart: ChartArea, DefaultColor: "#EF4444", XKey: "month", YKey: "value"},
			{ID: "salesCycle", DisplayTitle: "Sales Cycle Length (Days)", BackendField: "salesCycleLength", DefaultChart: ChartRadar, DefaultColor: "#14B8A6", XKey: "month", YKey: "value"},
			{ID: "responseTime", DisplayTitle: "Lead Response Time (Hours)", BackendField: "leadResponseTime", DefaultChart: ChartBar, DefaultColor: "#06B6D4", XKey: "month", YKey: "value"},
			{ID: "churnRate", DisplayTitle: "Churn Rate (%)", BackendField: "churnRate", DefaultChart: ChartLine, DefaultColor: "#F43F5E", XKey: "month", YKey: "value"},
			{ID: "upsellRate", DisplayTitle: "Upsell/Cross-sell Rate (%)", BackendField: "upsellCrossSellRate", DefaultChart: ChartBar, DefaultColor: "#0EA5E9", XKey: "month", YKey: "value"},
		},
		DefaultPlacements: []Placement{
			{ID: "mrr", X: 0, Y: 0, W: 6, H: 4},
			{ID: "growth", X: 6, Y: 0, W: 6, H: 4},
			{ID: "target", X: 0, Y: 4, W: 4, H: 4},
			{ID: "conversion", X: 4, Y: 4, W: 8, H: 4},
			{ID: "dealSize", X: 0, Y: 8, W: 6, H: 4},
			{ID: "cac", X: 6, Y: 8, W: 6, H: 4},
			{ID: "salesCycle", X: 0, Y: 12, W: 6, H: 4},
			{ID: "responseTime", X: 6, Y: 12, W: 6, H: 4},
			{ID: "churnRate", X: 0, Y: 16, W: 6, H: 4},
			{ID: "upsellRate", X: 6, Y: 16, W: 6, H: 4},
		},
	}
}

func marketingDepartment() DepartmentConfig {
	return DepartmentConfig{
		Slug: DeptMarketing,
		Name: "Marketing",
		Catalog: []KpiDefinition{
			{ID: "customerAcquisitionCost", DisplayTitle: "Customer Acquisition Cost ($)", DefaultChart: ChartArea, DefaultColor: "#10B981", XKey: "month", YKey: "value"},
			{ID: "returnOnMarketingInvestment", DisplayTitle: "Return on Marketing Investment (%)", DefaultChart: ChartLine, DefaultColor: "#8B5CF6", XKey: "month", YKey: "value"},
			{ID: "websiteTraffic", DisplayTitle: "Website Traffic", DefaultChart: ChartBar, DefaultColor: "#F59E0B", XKey: "month", YKey: "value"},
			{ID: "conversionRate", DisplayTitle: "Website Conversion Rate (%)", DefaultChart: ChartLine, DefaultColor: "#EC4899", XKey: "month", YKey: "value"},
			{ID: "socialMediaEngagement", DisplayTitle: "Social Media Engagement", DefaultChart: ChartRadar, DefaultColor: "#6366F1", XKey: "month", YKey: "value"},
			{ID: "emailOpenRate", DisplayTitle: "Email Open Rate (%)", DefaultChart: ChartLine, DefaultColor: "#14B8A6", XKey: "month", YKey: "value"},
			{ID: "clickThroughRate", DisplayTitle: "Click Through Rate (%)", DefaultChart: ChartArea, DefaultColor: "#06B6D4", XKey: "month", YKey: "value"},
			{ID: "leadGenerationVolume", DisplayTitle: "Lead Generation Volume", DefaultChart: ChartBar, DefaultColor: "#F43F5E", XKey: "month", YKey: "value"},
			{ID: "marketingQualifiedLeads", DisplayTitle: "Marketing Qualified Leads", DefaultChart: ChartLine, DefaultColor: "#0EA5E9", XKey: "month", YKey: "value"},
			{ID: "campaignROI", DisplayTitle: "Campaign ROI (%)", DefaultChart: ChartPie, DefaultColor: "#8B5CF6", XKey: "month", YKey: "value"},
		},
		DefaultPlacements: []Placement{
			{ID: "customerAcquisitionCost", X: 0, Y: 0, W: 6, H: 4},
			{ID: "returnOnMarketingInvestment", X: 6, Y: 0, W: 6, H: 4},
			{ID: "websiteTraffic", X: 0, Y: 4, W: 6, H: 4},
			{ID: "conversionRate", X: 6, Y: 4, W: 6, H: 4},
			{ID: "socialMediaEngagement", X: 0, Y: 8, W: 4, H: 4},
			{ID: "emailOpenRate", X: 4, Y: 8, W: 8, H: 4},
			{ID: "clickThroughRate", X: 0, Y: 12, W: 6, H: 4},
			{ID: "leadGenerationVolume", X: 6, Y: 12, W: 6, H: 4},
			{ID: "marketingQualifiedLeads", X: 0, Y: 16, W: 6, H: 4},
			{ID: "campaignROI", X: 6, Y: 16, W: 6, H: 4},
		},
	}
}

func financeDepartment() DepartmentConfig {
	return DepartmentConfig{
		Slug: DeptFinance,
		Name: "Finance",
		Catalog: []KpiDefinition{
			{ID: "revenueGrowthRate", DisplayTitle: "Revenue Growth Rate (%)", DefaultChart: ChartLine, DefaultColor: "#10B981", XKey: "month", YKey: "value"},
			{ID: "grossProfitMargin", DisplayTitle: "Gross Profit Margin (%)", DefaultChart: ChartArea, DefaultColor: "#8B5CF6", XKey: "month", YKey: "value"},
			{ID: "netProfitMargin", DisplayTitle: "Net Profit Margin (%)", DefaultChart: ChartLine, DefaultColor: "#F59E0B", XKey: "month", YKey: "value"},
			{ID: "operatingCashFlow", DisplayTitle: "Operating Cash Flow ($)", DefaultChart: ChartBar, DefaultColor: "#EC4899", XKey: "month", YKey: "value"},
			{ID: "burnRate", DisplayTitle: "Monthly Burn Rate ($)", DefaultChart: ChartArea, DefaultColor: "#6366F1", XKey: "month", YKey: "value"},
			{ID: "runway", DisplayTitle: "Cash Runway (Months)", DefaultChart: ChartLine, DefaultColor: "#14B8A6", XKey: "month", YKey: "value"},
			{ID: "ebitda", DisplayTitle: "EBITDA ($)", DefaultChart: ChartBar, DefaultColor: "#06B6D4", XKey: "month", YKey: "value"},
			{ID: "currentRatio", DisplayTitle: "Current Ratio", DefaultChart: ChartLine, DefaultColor: "#F43F5E", XKey: "month", YKey: "value"},
			{ID: "arTurnover", DisplayTitle: "Accounts Receivable Turnover", DefaultChart: ChartBar, DefaultColor: "#0EA5E9", XKey: "month", YKey: "value"},
			{ID: "debtToEquity", DisplayTitle: "Debt to Equity Ratio", DefaultChart: ChartLine, DefaultColor: "#4F46E5", XKey: "month", YKey: "value"},
		},
		DefaultPlacements: twoPerRow(
			"revenueGrowthRate", "grossProfitMargin", "netProfitMargin",
			"operatingCashFlow", "burnRate", "runway", "ebitda",
			"currentRatio", "arTurnover", "debtToEquity",
		),
	}
}

func manufacturingDepartment() DepartmentConfig {
	return DepartmentConfig{
		Slug: DeptManufacturing,
		Name: "Manufacturing",
		Catalog: []KpiDefinition{
			{ID: "productionVolume", DisplayTitle: "Production Volume (Units)", DefaultChart: ChartBar, DefaultColor: "#10B981", XKey: "month", YKey: "value"},
			{ID: "oee", DisplayTitle: "Overall Equipment Effectiveness (%)", DefaultChart: ChartLine, DefaultColor: "#8B5CF6", XKey: "month", YKey: "value"},
			{ID: "cycleTime", DisplayTitle: "Cycle Time (Minutes)", DefaultChart: ChartLine, DefaultColor: "#F59E0B", XKey: "month", YKey: "value"},
			{ID: "downtime", DisplayTitle: "Downtime (Hours)", DefaultChart: ChartArea, DefaultColor: "#EC4899", XKey: "month", YKey: "value"},
			{ID: "yield", DisplayTitle: "Yield (%)", DefaultChart: ChartLine, DefaultColor: "#14B8A6", XKey: "month", YKey: "value"},
			{ID: "scrapRate", DisplayTitle: "Scrap Rate (%)", DefaultChart: ChartArea, DefaultColor: "#F43F5E", XKey: "month", YKey: "value"},
			{ID: "defectDensity", DisplayTitle: "Defect Density (PPM)", DefaultChart: ChartBar, DefaultColor: "#6366F1", XKey: "month", YKey: "value"},
			{ID: "maintenanceCostPerUnit", DisplayTitle: "Maintenance Cost per Unit ($)", DefaultChart: ChartLine, DefaultColor: "#06B6D4", XKey: "month", YKey: "value"},
			{ID: "inventoryTurnover", DisplayTitle: "Inventory Turnover", DefaultChart: ChartBar, DefaultColor: "#0EA5E9", XKey: "month", YKey: "value"},
			{ID: "energyConsumptionPerUnit", DisplayTitle: "Energy Consumption per Unit (kWh)", DefaultChart: ChartArea, DefaultColor: "#A855F7", XKey: "month", YKey: "value"},
		},
		DefaultPlacements: twoPerRow(
			"productionVolume", "oee", "cycleTime", "downtime", "yield",
			"scrapRate", "defectDensity", "maintenanceCostPerUnit",
			"inventoryTurnover", "energyConsumptionPerUnit",
		),
	}
}

func productionDepartment() DepartmentConfig {
	return DepartmentConfig{
		Slug: DeptProduction,
		Name: "Production",
		Catalog: []KpiDefinition{
			{ID: "productionVolume", DisplayTitle: "Production Volume (Units)", DefaultChart: ChartBar, DefaultColor: "#10B981", XKey: "month", YKey: "value"},
			{ID: "productionEfficiency", DisplayTitle: "Production Efficiency (%)", DefaultChart: ChartLine, DefaultColor: "#8B5CF6", XKey: "month", YKey: "value"},
			{ID: "downtime", DisplayTitle: "Downtime (Hours)", DefaultChart: ChartArea, DefaultColor: "#F59E0B", XKey: "month", YKey: "value"},
			{ID: "cycleTime", DisplayTitle: "Cycle Time (Minutes)", DefaultChart: ChartLine, DefaultColor: "#EC4899", XKey: "month", YKey: "value"},
			{ID: "yieldRate", DisplayTitle: "Yield Rate (%)", DefaultChart: ChartLine, DefaultColor: "#14B8A6", XKey: "month", YKey: "value"},
			{ID: "reworkRate", DisplayTitle: "Rework Rate (%)", DefaultChart: ChartArea, DefaultColor: "#6366F1", XKey: "month", YKey: "value"},
			{ID: "scrapRate", DisplayTitle: "Scrap Rate (%)", DefaultChart: ChartArea, DefaultColor: "#F43F5E", XKey: "month", YKey: "value"},
			{ID: "capacityUtilization", DisplayTitle: "Capacity Utilization (%)", DefaultChart: ChartBar, DefaultColor: "#0EA5E9", XKey: "month", YKey: "value"},
			{ID: "oee", DisplayTitle: "Overall Equipment Effectiveness (%)", BackendField: "overallEquipmentEffectiveness", DefaultChart: ChartLine, DefaultColor: "#A855F7", XKey: "month", YKey: "value"},
			{ID: "onTimeProduction", DisplayTitle: "On-Time Production Rate (%)", BackendField: "onTimeProductionRate", DefaultChart: ChartLine, DefaultColor: "#F97316", XKey: "month", YKey: "value"},
		},
		DefaultPlacements: twoPerRow(
			"productionVolume", "productionEfficiency", "downtime",
			"cycleTime", "yieldRate", "reworkRate", "scrapRate",
			"capacityUtilization", "oee", "onTimeProduction",
		),
	}
}

func operationsDepartment() DepartmentConfig {
	return DepartmentConfig{
		Slug: DeptOperations,
		Name: "Operations",
		Catalog: []KpiDefinition{
			{ID: "orderFulfillmentTime", DisplayTitle: "Order Fulfillment Time (Hours)", DefaultChart: ChartLine, DefaultColor: "#10B981", XKey: "month", YKey: "value"},
			{ID: "inventoryTurnover", DisplayTitle: "Inventory Turnover", DefaultChart: ChartBar, DefaultColor: "#8B5CF6", XKey: "month", YKey: "value"},
			{ID: "stockOutRate", DisplayTitle: "Stock-Out Rate (%)", DefaultChart: ChartArea, DefaultColor: "#F59E0B", XKey: "month", YKey: "value"},
			{ID: "orderAccuracyRate", DisplayTitle: "Order Accuracy Rate (%)", DefaultChart: ChartLine, DefaultColor: "#EC4899", XKey: "month", YKey: "value"},
			{ID: "supplyChainCycleTime", DisplayTitle: "Supply Chain Cycle Time (Days)", DefaultChart: ChartLine, DefaultColor: "#6366F1", XKey: "month", YKey: "value"},
			{ID: "warehouseUtilizationRate", DisplayTitle: "Warehouse Utilization Rate (%)", DefaultChart: ChartRadar, DefaultColor: "#14B8A6", XKey: "month", YKey: "value"},
			{ID: "logisticsCostPerUnit", DisplayTitle: "Logistics Cost per Unit ($)", DefaultChart: ChartLine, DefaultColor: "#06B6D4", XKey: "month", YKey: "value"},
			{ID: "returnRate", DisplayTitle: "Return Rate (%)", DefaultChart: ChartArea, DefaultColor: "#F43F5E", XKey: "month", YKey: "value"},
			{ID: "procurementCycleTime", DisplayTitle: "Procurement Cycle Time (Days)", DefaultChart: ChartLine, DefaultColor: "#0EA5E9", XKey: "month", YKey: "value"},
			{ID: "forecastAccuracy", DisplayTitle: "Forecast Accuracy (%)", DefaultChart: ChartLine, DefaultColor: "#A855F7", XKey: "month", YKey: "value"},
		},
		DefaultPlacements: twoPerRow(
			"orderFulfillmentTime", "inventoryTurnover", "stockOutRate",
			"orderAccuracyRate", "supplyChainCycleTime",
			"warehouseUtilizationRate", "logisticsCostPerUnit", "returnRate",
			"procurementCycleTime", "forecastAccuracy",
		),
	}
}

func customerGrowthDepartment() DepartmentConfig {
	return DepartmentConfig{
		Slug: DeptCustomerGrowth,
		Name: "Customer Growth",
		Catalog: []KpiDefinition{
			{ID: "retentionRate", DisplayTitle: "Customer Retention Rate (%)", DefaultChart: ChartLine, DefaultColor: "#10B981", XKey: "month", YKey: "value"},
			{ID: "churnRate", DisplayTitle: "Customer Churn Rate (%)", DefaultChart: ChartLine, DefaultColor: "#EF4444", XKey: "month", YKey: "value"},
			{ID: "nps", DisplayTitle: "Net Promoter Score", DefaultChart: ChartBar, DefaultColor: "#8B5CF6", XKey: "month", YKey: "value"},
			{ID: "customerLifetimeValue", DisplayTitle: "Customer Lifetime Value ($)", DefaultChart: ChartArea, DefaultColor: "#F59E0B", XKey: "month", YKey: "value"},
			{ID: "newCustomers", DisplayTitle: "New Customers", DefaultChart: ChartBar, DefaultColor: "#EC4899", XKey: "month", YKey: "value"},
			{ID: "activationRate", DisplayTitle: "Activation Rate (%)", DefaultChart: ChartLine, DefaultColor: "#6366F1", XKey: "month", YKey: "value"},
			{ID: "dauMauRatio", DisplayTitle: "DAU/MAU Ratio (%)", DefaultChart: ChartArea, DefaultColor: "#14B8A6", XKey: "month", YKey: "value"},
			{ID: "referralRate", DisplayTitle: "Referral Rate (%)", DefaultChart: ChartLine, DefaultColor: "#06B6D4", XKey: "month", YKey: "value"},
			{ID: "expansionRevenue", DisplayTitle: "Expansion Revenue ($)", DefaultChart: ChartBar, DefaultColor: "#0EA5E9", XKey: "month", YKey: "value"},
			{ID: "timeToValue", DisplayTitle: "Time to Value (Days)", DefaultChart: ChartLine, DefaultColor: "#A855F7", XKey: "month", YKey: "value"},
		},
		DefaultPlacements: twoPerRow(
			"retentionRate", "churnRate", "nps", "customerLifetimeValue",
			"newCustomers", "activationRate", "dauMauRatio", "referralRate",
			"expansionRevenue", "timeToValue",
		),
	}
}

func saasDepartment() DepartmentConfig {
	return DepartmentConfig{
		Slug: DeptSaaS,
		Name: "SaaS",
		Catalog: []KpiDefinition{
			{ID: "mrr", DisplayTitle: "Monthly Recurring Revenue", BackendField: "monthlyRecurringRevenue", DefaultChart: ChartArea, DefaultColor: "#10B981", XKey: "month", YKey: "value"},
			{ID: "arr", DisplayTitle: "Annual Recurring Revenue", BackendField: "annualRecurringRevenue", DefaultChart: ChartBar, DefaultColor: "#8B5CF6", XKey: "month", YKey: "value"},
			{ID: "customerChurn", DisplayTitle: "Customer Churn Rate (%)", BackendField: "customerChurnRate", DefaultChart: ChartLine, DefaultColor: "#EF4444", XKey: "month", YKey: "value"},
			{ID: "revenueChurn", DisplayTitle: "Revenue Churn Rate (%)", BackendField: "revenueChurnRate", DefaultChart: ChartLine, DefaultColor: "#F59E0B", XKey: "month", YKey: "value"},
			{ID: "cltv", DisplayTitle: "Customer Lifetime Value ($)", BackendField: "customerLifetimeValue", DefaultChart: ChartBar, DefaultColor: "#6366F1", XKey: "month", YKey: "value"},
			{ID: "cac", DisplayTitle: "Customer Acquisition Cost ($)", BackendField: "customerAcquisitionCost", DefaultChart: ChartArea, DefaultColor: "#EC4899", XKey: "month", YKey: "value"},
			{ID: "cacPayback", DisplayTitle: "CAC Payback Period (Months)", BackendField: "cacPaybackPeriod", DefaultChart: ChartLine, DefaultColor: "#14B8A6", XKey: "month", YKey: "value"},
			{ID: "activeUsers", DisplayTitle: "Active Users (DAU/WAU/MAU)", BackendField: "activeUsers", DefaultChart: ChartComposed, DefaultColor: "#06B6D4", XKey: "month", YKey: "value"},
			{ID: "productUsage", DisplayTitle: "Product Usage Rate (%)", BackendField: "productUsageRate", DefaultChart: ChartBar, DefaultColor: "#0EA5E9", XKey: "month", YKey: "value"},
			{ID: "nrr", DisplayTitle: "Net Revenue Retention (%)", BackendField: "netRevenueRetention", DefaultChart: ChartLine, DefaultColor: "#A855F7", XKey: "month", YKey: "value"},
		},
		DefaultPlacements: twoPerRow(
			"mrr", "arr", "customerChurn", "revenueChurn", "cltv", "cac",
			"cacPayback", "activeUsers", "productUsage", "nrr",
		),
	}
}

// twoPerRow lays cards out two across, six columns each, four rows tall.
func twoPerRow(ids ...string) []Placement {
	out := make([]Placement, 0, len(ids))
	for i, id := range ids {
		out = append(out, Placement{
			ID: id,
			X:  (i % 2) * 6,
			Y:  (i / 2) * 4,
			W:  6,
			H:  4,
		})
	}
	return out
}
