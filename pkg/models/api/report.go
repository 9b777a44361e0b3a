package api

import (
	"time"

	"github.com/shopspring/decimal"
)

// Report is the serialized form of an analysis run. Consumers must not
// assume optional sub-fields are present when a section reported a
// partial or empty result.
type Report struct {
	ID          string    `json:"id"`
	GeneratedAt time.Time `json:"generated_at"`
	Records     int       `json:"records"`

	Financial       FinancialMetrics       `json:"financial_metrics"`
	Customers       CustomerAnalytics      `json:"customer_analytics"`
	Products        ProductAnalytics       `json:"product_analytics"`
	Categories      CategoryAnalytics      `json:"category_analytics"`
	Inventory       InventoryAnalytics     `json:"inventory_analytics"`
	Trends          TrendAnalytics         `json:"trend_analytics"`
	Profitability   ProfitabilityAnalytics `json:"profitability_analytics"`
	Risk            RiskMetrics            `json:"risk_metrics"`
	Operational     OperationalMetrics     `json:"operational_efficiency"`
	Recommendations []string               `json:"recommendations,omitempty"`
}

type FinancialMetrics struct {
	RevenueWithTax    decimal.Decimal `json:"revenue_with_tax"`
	RevenueWithoutTax decimal.Decimal `json:"revenue_without_tax"`
	TaxCollected      decimal.Decimal `json:"tax_collected"`
	TotalCost         decimal.Decimal `json:"total_cost"`
	GrossProfit       decimal.Decimal `json:"gross_profit"`
	GrossMarginPct    float64         `json:"gross_margin_pct"`
	AvgOrderValue     decimal.Decimal `json:"average_order_value"`
	MedianOrderValue  decimal.Decimal `json:"median_order_value"`
	Notes             []string        `json:"notes,omitempty"`
}

type CustomerStats struct {
	Key           string          `json:"key"`
	Name          string          `json:"name"`
	Revenue       decimal.Decimal `json:"revenue"`
	Orders        int             `json:"orders"`
	AvgOrderValue decimal.Decimal `json:"average_order_value"`
	Products      int             `json:"product_diversity"`
	Segment       string          `json:"segment"`
}

type Concentration struct {
	TopN     int             `json:"top_n"`
	Revenue  decimal.Decimal `json:"revenue"`
	SharePct float64         `json:"share_pct"`
}

type CustomerAnalytics struct {
	TopCustomers   []CustomerStats `json:"top_customers"`
	TotalCustomers int             `json:"total_customers"`
	Concentration  []Concentration `json:"concentration"`
	Segments       map[string]int  `json:"segmentation"`
	Notes          []string        `json:"notes,omitempty"`
}

type ProductStats struct {
	Code         string          `json:"code"`
	Name         string          `json:"name"`
	Revenue      decimal.Decimal `json:"revenue"`
	Cost         decimal.Decimal `json:"cost"`
	Profit       decimal.Decimal `json:"profit"`
	MarginPct    float64         `json:"margin_pct"`
	Quantity     decimal.Decimal `json:"quantity"`
	Transactions int             `json:"transactions"`
}

type ProductAnalytics struct {
	TopProducts     []ProductStats `json:"top_products"`
	TotalProducts   int            `json:"total_products"`
	StarProducts    []ProductStats `json:"star_products"`
	Underperformers []ProductStats `json:"underperforming_products"`
	Notes           []string       `json:"notes,omitempty"`
}

type SubcategoryStats struct {
	Name    string          `json:"name"`
	Revenue decimal.Decimal `json:"revenue"`
	Orders  int             `json:"orders"`
}

type CategoryStats struct {
	Name             string             `json:"name"`
	Revenue          decimal.Decimal    `json:"revenue"`
	Cost             decimal.Decimal    `json:"cost"`
	Profit           decimal.Decimal    `json:"profit"`
	MarginPct        float64            `json:"margin_pct"`
	Orders           int                `json:"orders"`
	RiskLevel        string             `json:"risk_level"`
	TopSubcategories []SubcategoryStats `json:"top_subcategories"`
}

type CategoryAnalytics struct {
	Categories      []CategoryStats `json:"category_performance"`
	TotalCategories int             `json:"total_categories"`
	Notes           []string        `json:"notes,omitempty"`
}

type ProductVelocity struct {
	Code         string          `json:"code"`
	Name         string          `json:"name"`
	Transactions int             `json:"velocity"`
	UnitsSold    decimal.Decimal `json:"units_sold"`
}

type InventoryAnalytics struct {
	FastMovers []ProductVelocity `json:"fast_moving_items"`
	SlowMovers []ProductVelocity `json:"slow_moving_items"`
	Notes      []string          `json:"notes,omitempty"`
}

type MonthlyPoint struct {
	Month        string          `json:"month"`
	Revenue      decimal.Decimal `json:"revenue"`
	Transactions int             `json:"transactions"`
}

type CategoryShare struct {
	Category string          `json:"category"`
	Revenue  decimal.Decimal `json:"revenue"`
	SharePct float64         `json:"share_pct"`
}

type TrendAnalytics struct {
	Monthly              []MonthlyPoint  `json:"monthly_trends"`
	CategoryDistribution []CategoryShare `json:"category_distribution"`
	Notes                []string        `json:"notes,omitempty"`
}

type CategoryMargin struct {
	Category  string          `json:"category"`
	Revenue   decimal.Decimal `json:"revenue"`
	Cost      decimal.Decimal `json:"cost"`
	Profit    decimal.Decimal `json:"profit"`
	MarginPct float64         `json:"margin_pct"`
}

type ProfitabilityAnalytics struct {
	ByCategory []CategoryMargin `json:"by_category"`
	Notes      []string         `json:"notes,omitempty"`
}

type RiskMetrics struct {
	CustomerConcentration []Concentration `json:"customer_concentration"`
	CustomerRiskLevel     string          `json:"customer_concentration_risk"`
	TopCategorySharePct   float64         `json:"top_category_share_pct"`
	CategoryRiskLevel     string          `json:"category_concentration_risk"`
	Notes                 []string        `json:"notes,omitempty"`
}

type OperationalMetrics struct {
	TotalLines             int             `json:"total_lines"`
	TotalTransactions      int             `json:"total_transactions"`
	ActiveDays             int             `json:"active_days"`
	TransactionsPerDay     float64         `json:"transactions_per_day"`
	AvgLinesPerTransaction float64         `json:"average_lines_per_transaction"`
	UnitsSold              decimal.Decimal `json:"units_sold"`
	UnitsReturned          decimal.Decimal `json:"units_returned"`
	ReturnRatePct          float64         `json:"return_rate_pct"`
	Notes                  []string        `json:"notes,omitempty"`
}
