package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Report is the merged output of one engine run. Each analyzer owns exactly
// one section; sections are independent and a partial section never blocks
// the rest of the report.
type Report struct {
	ID          uuid.UUID
	GeneratedAt time.Time
	Records     int

	Financial     FinancialMetrics
	Customers     CustomerAnalytics
	Products      ProductAnalytics
	Categories    CategoryAnalytics
	Inventory     InventoryAnalytics
	Trends        TrendAnalytics
	Profitability ProfitabilityAnalytics
	Risk          RiskMetrics
	Operational   OperationalMetrics
}

// FinancialMetrics holds the overall financial KPIs.
type FinancialMetrics struct {
	RevenueWithTax    decimal.Decimal
	RevenueWithoutTax decimal.Decimal
	TaxCollected      decimal.Decimal
	TotalCost         decimal.Decimal
	GrossProfit       decimal.Decimal
	GrossMarginPct    float64
	AvgOrderValue     decimal.Decimal
	MedianOrderValue  decimal.Decimal
	Notes             []string
}

// CustomerStats is the per-customer aggregate with its assigned segment.
type CustomerStats struct {
	Key           string
	Name          string
	Revenue       decimal.Decimal
	Orders        int
	AvgOrderValue decimal.Decimal
	Products      int
	Segment       string
}

// Concentration is the share of total revenue held by the top N customers.
type Concentration struct {
	TopN     int
	Revenue  decimal.Decimal
	SharePct float64
}

type CustomerAnalytics struct {
	TopCustomers   []CustomerStats
	TotalCustomers int
	Concentration  []Concentration
	Segments       map[string]int
	Notes          []string
}

// ProductStats is the per-product aggregate. Quantity is the net of sales
// and returns.
type ProductStats struct {
	Code         string
	Name         string
	Revenue      decimal.Decimal
	Cost         decimal.Decimal
	Profit       decimal.Decimal
	MarginPct    float64
	Quantity     decimal.Decimal
	Transactions int
}

type ProductAnalytics struct {
	TopProducts     []ProductStats
	TotalProducts   int
	StarProducts    []ProductStats
	Underperformers []ProductStats
	Notes           []string
}

type SubcategoryStats struct {
	Name    string
	Revenue decimal.Decimal
	Orders  int
}

type CategoryStats struct {
	Name             string
	Revenue          decimal.Decimal
	Cost             decimal.Decimal
	Profit           decimal.Decimal
	MarginPct        float64
	Orders           int
	RiskLevel        string
	TopSubcategories []SubcategoryStats
}

type CategoryAnalytics struct {
	Categories      []CategoryStats
	TotalCategories int
	Notes           []string
}

// ProductVelocity classifies a product by how often it transacts.
type ProductVelocity struct {
	Code         string
	Name         string
	Transactions int
	UnitsSold    decimal.Decimal
}

type InventoryAnalytics struct {
	FastMovers []ProductVelocity
	SlowMovers []ProductVelocity
	Notes      []string
}

type MonthlyPoint struct {
	Month        string // YYYY-MM
	Revenue      decimal.Decimal
	Transactions int
}

type CategoryShare struct {
	Category string
	Revenue  decimal.Decimal
	SharePct float64
}

type TrendAnalytics struct {
	Monthly              []MonthlyPoint
	CategoryDistribution []CategoryShare
	Notes                []string
}

// CategoryMargin is the category-scoped profitability decomposition. The sum
// of Profit across categories reconciles with FinancialMetrics.GrossProfit.
type CategoryMargin struct {
	Category  string
	Revenue   decimal.Decimal
	Cost      decimal.Decimal
	Profit    decimal.Decimal
	MarginPct float64
}

type ProfitabilityAnalytics struct {
	ByCategory []CategoryMargin
	Notes      []string
}

type RiskMetrics struct {
	CustomerConcentration []Concentration
	CustomerRiskLevel     string
	TopCategorySharePct   float64
	CategoryRiskLevel     string
	Notes                 []string
}

type OperationalMetrics struct {
	TotalLines             int
	TotalTransactions      int
	ActiveDays             int
	TransactionsPerDay     float64
	AvgLinesPerTransaction float64
	UnitsSold              decimal.Decimal
	UnitsReturned          decimal.Decimal
	ReturnRatePct          float64
	Notes                  []string
}
