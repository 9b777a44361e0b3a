package analysis

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/Trujillofa/depotru-database-sub000/pkg/models/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() domain.ThresholdConfig {
	return domain.ThresholdConfig{
		Segments: domain.SegmentTable{Segments: []domain.Segment{
			{Name: "VIP", MinRevenue: 500_000, MinOrders: 5},
			{Name: "High Value", MinRevenue: 200_000},
			{Name: "Frequent", MinOrders: 10},
			{Name: "Regular", MinRevenue: 50_000},
			{Name: "Occasional"},
		}},
		CategoryRisk: domain.TierTable{
			Tiers: []domain.Tier{
				{Name: "LOW", Min: 20},
				{Name: "MEDIUM", Min: 10},
				{Name: "HIGH", Min: 0},
			},
			Fallback: "CRITICAL",
		},
		Concentration: domain.TierTable{
			Tiers: []domain.Tier{
				{Name: "HIGH", Min: 60},
				{Name: "MODERATE", Min: 30},
			},
			Fallback: "LOW",
		},
		StarMarginPct:     30,
		LowMarginPct:      10,
		FastMoverTxCount:  5,
		SlowMoverTxCount:  2,
		TopCustomerCounts: []int{5, 10},
	}
}

type lineSpec struct {
	date     string
	withTax  float64
	net      float64
	cost     float64
	qty      float64
	customer string
	product  string
	category string
	doc      string
}

func makeLine(s lineSpec) domain.NormalizedLine {
	var date time.Time
	if s.date != "" {
		date, _ = time.Parse("2006-01-02", s.date)
	}
	return domain.NormalizedLine{
		Date:              date,
		RevenueWithTax:    decimal.NewFromFloat(s.withTax),
		RevenueWithoutTax: decimal.NewFromFloat(s.net),
		Cost:              decimal.NewFromFloat(s.cost),
		Quantity:          decimal.NewFromFloat(s.qty),
		CustomerKey:       s.customer,
		CustomerName:      s.customer,
		ProductCode:       s.product,
		ProductName:       s.product,
		Category:          s.category,
		Subcategory:       "General",
		DocumentType:      "FV",
		DocumentNumber:    s.doc,
	}
}

func makeLines(specs []lineSpec) []domain.NormalizedLine {
	lines := make([]domain.NormalizedLine, 0, len(specs))
	for _, s := range specs {
		lines = append(lines, makeLine(s))
	}
	return lines
}

func TestEngine_AnalyzeAll_FinancialTotals(t *testing.T) {
	lines := makeLines([]lineSpec{
		{date: "2024-01-10", withTax: 120, net: 100, cost: 60, qty: 2, customer: "C1", product: "P1", category: "Tools", doc: "D1"},
		{date: "2024-01-11", withTax: 110, net: 100, cost: 50, qty: 1, customer: "C2", product: "P2", category: "Tools", doc: "D2"},
		{date: "2024-02-01", withTax: 60, net: 50, cost: 30, qty: 3, customer: "C1", product: "P1", category: "Paint", doc: "D3"},
	})

	report, err := NewEngine().AnalyzeAll(context.Background(), lines, testConfig())
	require.NoError(t, err)

	fin := report.Financial
	assert.True(t, fin.RevenueWithTax.Equal(decimal.NewFromInt(290)), "revenue with tax %s", fin.RevenueWithTax)
	assert.True(t, fin.RevenueWithoutTax.Equal(decimal.NewFromInt(250)), "net revenue %s", fin.RevenueWithoutTax)
	assert.True(t, fin.TaxCollected.Equal(decimal.NewFromInt(40)), "tax %s", fin.TaxCollected)
	assert.True(t, fin.TotalCost.Equal(decimal.NewFromInt(140)), "cost %s", fin.TotalCost)
	assert.True(t, fin.GrossProfit.Equal(decimal.NewFromInt(110)), "profit %s", fin.GrossProfit)
	assert.InDelta(t, 44.0, fin.GrossMarginPct, 1e-9)

	// 290 over 3 lines, rounded to cents; median of 60, 110, 120.
	assert.True(t, fin.AvgOrderValue.Equal(decimal.NewFromFloat(96.67)), "avg order %s", fin.AvgOrderValue)
	assert.True(t, fin.MedianOrderValue.Equal(decimal.NewFromInt(110)), "median %s", fin.MedianOrderValue)

	assert.Equal(t, 3, report.Records)
	assert.Equal(t, 2, report.Customers.TotalCustomers)
	assert.Equal(t, 2, report.Products.TotalProducts)
	assert.Equal(t, 2, report.Categories.TotalCategories)
}

func TestEngine_AnalyzeAll_EmptyInput(t *testing.T) {
	report, err := NewEngine().AnalyzeAll(context.Background(), nil, testConfig())
	require.NoError(t, err)

	assert.Equal(t, 0, report.Records)
	assert.True(t, report.Financial.RevenueWithTax.IsZero())
	assert.True(t, report.Financial.GrossProfit.IsZero())
	assert.Zero(t, report.Financial.GrossMarginPct)
	assert.Contains(t, report.Financial.Notes, "no transactions in the analysis window")

	assert.Equal(t, 0, report.Customers.TotalCustomers)
	assert.Empty(t, report.Customers.TopCustomers)
	assert.Equal(t, 0, report.Products.TotalProducts)
	assert.Empty(t, report.Inventory.FastMovers)
	assert.Empty(t, report.Trends.Monthly)
	assert.Empty(t, report.Profitability.ByCategory)

	// Concentration degrades to the zero default and the lowest risk tier.
	require.Len(t, report.Risk.CustomerConcentration, 2)
	assert.Zero(t, report.Risk.CustomerConcentration[0].SharePct)
	assert.Equal(t, "LOW", report.Risk.CustomerRiskLevel)
	assert.Equal(t, "LOW", report.Risk.CategoryRiskLevel)

	assert.Equal(t, 0, report.Operational.TotalTransactions)
	assert.Zero(t, report.Operational.TransactionsPerDay)
}

func TestEngine_AnalyzeAll_InvalidConfigAborts(t *testing.T) {
	cfg := testConfig()
	cfg.StarMarginPct = 5 // below the low-margin boundary

	_, err := NewEngine().AnalyzeAll(context.Background(), makeLines([]lineSpec{
		{withTax: 10, net: 8, cost: 4, qty: 1, customer: "C1", product: "P1", category: "Tools", doc: "D1"},
	}), cfg)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid threshold config")
}

func TestEngine_AnalyzeAll_DeterministicAcrossInputOrder(t *testing.T) {
	var specs []lineSpec
	for i := 0; i < 40; i++ {
		specs = append(specs, lineSpec{
			date:     fmt.Sprintf("2024-%02d-%02d", i%12+1, i%27+1),
			withTax:  float64(100 + i*7),
			net:      float64(80 + i*6),
			cost:     float64(40 + i*3),
			qty:      float64(i%5 - 1),
			customer: fmt.Sprintf("C%d", i%7),
			product:  fmt.Sprintf("P%d", i%11),
			category: fmt.Sprintf("Cat%d", i%4),
			doc:      fmt.Sprintf("D%d", i%13),
		})
	}
	lines := makeLines(specs)

	reversed := make([]domain.NormalizedLine, len(lines))
	for i, l := range lines {
		reversed[len(lines)-1-i] = l
	}

	engine := NewEngine()
	first, err := engine.AnalyzeAll(context.Background(), lines, testConfig())
	require.NoError(t, err)
	second, err := engine.AnalyzeAll(context.Background(), reversed, testConfig())
	require.NoError(t, err)

	// Run metadata differs per run; every analytical section must not.
	assert.Equal(t, first.Financial, second.Financial)
	assert.Equal(t, first.Customers, second.Customers)
	assert.Equal(t, first.Products, second.Products)
	assert.Equal(t, first.Categories, second.Categories)
	assert.Equal(t, first.Inventory, second.Inventory)
	assert.Equal(t, first.Trends, second.Trends)
	assert.Equal(t, first.Profitability, second.Profitability)
	assert.Equal(t, first.Risk, second.Risk)
	assert.Equal(t, first.Operational, second.Operational)
}

func TestEngine_AnalyzeAll_CategoryProfitReconciles(t *testing.T) {
	lines := makeLines([]lineSpec{
		{date: "2024-01-10", withTax: 119, net: 100, cost: 55, qty: 1, customer: "C1", product: "P1", category: "Tools", doc: "D1"},
		{date: "2024-01-12", withTax: 59.5, net: 50, cost: 20, qty: 2, customer: "C2", product: "P2", category: "Paint", doc: "D2"},
		{date: "2024-01-15", withTax: 238, net: 200, cost: 170, qty: 4, customer: "C3", product: "P3", category: "Plumbing", doc: "D3"},
		{date: "2024-01-20", withTax: -11.9, net: -10, cost: -4, qty: -1, customer: "C2", product: "P2", category: "Paint", doc: "D4"},
	})

	report, err := NewEngine().AnalyzeAll(context.Background(), lines, testConfig())
	require.NoError(t, err)

	var sum decimal.Decimal
	for _, c := range report.Profitability.ByCategory {
		sum = sum.Add(c.Profit)
	}
	assert.True(t, sum.Equal(report.Financial.GrossProfit),
		"category profits %s do not reconcile with gross profit %s", sum, report.Financial.GrossProfit)

	// The category section reads the same aggregates, so it reconciles too.
	sum = decimal.Zero
	for _, c := range report.Categories.Categories {
		sum = sum.Add(c.Profit)
	}
	assert.True(t, sum.Equal(report.Financial.GrossProfit))
}

func TestEngine_AnalyzeAll_CustomerSegmentsAndConcentration(t *testing.T) {
	cfg := testConfig()
	cfg.TopCustomerCounts = []int{1, 5}

	// One customer holds 60% of revenue across 6 orders, the other 40%.
	var specs []lineSpec
	for i := 0; i < 6; i++ {
		specs = append(specs, lineSpec{
			date: "2024-03-01", withTax: 10_000_000, net: 8_500_000, cost: 5_000_000, qty: 1,
			customer: "Constructora Andina", product: "P1", category: "Tools", doc: fmt.Sprintf("A%d", i),
		})
	}
	for i := 0; i < 4; i++ {
		specs = append(specs, lineSpec{
			date: "2024-03-02", withTax: 10_000_000, net: 8_500_000, cost: 5_000_000, qty: 1,
			customer: "Ferreteria Central", product: "P2", category: "Tools", doc: fmt.Sprintf("B%d", i),
		})
	}

	report, err := NewEngine().AnalyzeAll(context.Background(), makeLines(specs), cfg)
	require.NoError(t, err)

	require.Len(t, report.Customers.TopCustomers, 2)
	top := report.Customers.TopCustomers[0]
	assert.Equal(t, "Constructora Andina", top.Key)
	assert.Equal(t, "VIP", top.Segment)
	assert.Equal(t, 6, top.Orders)

	// 40M revenue clears every revenue bound except VIP's order count.
	assert.Equal(t, "High Value", report.Customers.TopCustomers[1].Segment)
	assert.Equal(t, map[string]int{"VIP": 1, "High Value": 1}, report.Customers.Segments)

	require.Len(t, report.Customers.Concentration, 2)
	assert.Equal(t, 1, report.Customers.Concentration[0].TopN)
	assert.InDelta(t, 60.0, report.Customers.Concentration[0].SharePct, 1e-9)
	assert.InDelta(t, 100.0, report.Customers.Concentration[1].SharePct, 1e-9)

	// 60% share sits exactly on the HIGH boundary; lower bounds are inclusive.
	assert.Equal(t, "HIGH", report.Risk.CustomerRiskLevel)
}

func TestEngine_AnalyzeAll_SegmentBoundariesInclusive(t *testing.T) {
	var specs []lineSpec
	for i := 0; i < 5; i++ {
		specs = append(specs, lineSpec{
			date: "2024-05-01", withTax: 100_000, net: 84_000, cost: 50_000, qty: 1,
			customer: "Exact VIP", product: "P1", category: "Tools", doc: fmt.Sprintf("V%d", i),
		})
	}
	report, err := NewEngine().AnalyzeAll(context.Background(), makeLines(specs), testConfig())
	require.NoError(t, err)

	// Revenue 500,000 over 5 orders meets both VIP bounds exactly.
	require.Len(t, report.Customers.TopCustomers, 1)
	assert.Equal(t, "VIP", report.Customers.TopCustomers[0].Segment)
}

func TestEngine_AnalyzeAll_StarsAndUnderperformers(t *testing.T) {
	lines := makeLines([]lineSpec{
		// 50% margin: star.
		{date: "2024-01-01", withTax: 238, net: 200, cost: 100, qty: 2, customer: "C1", product: "STAR", category: "Tools", doc: "D1"},
		// Exactly 30%: inclusive lower bound, still a star.
		{date: "2024-01-02", withTax: 119, net: 100, cost: 70, qty: 1, customer: "C1", product: "EDGE", category: "Tools", doc: "D2"},
		// 5% margin: underperformer.
		{date: "2024-01-03", withTax: 119, net: 100, cost: 95, qty: 1, customer: "C2", product: "WEAK", category: "Paint", doc: "D3"},
		// 20% margin: middle band, neither list.
		{date: "2024-01-04", withTax: 119, net: 100, cost: 80, qty: 1, customer: "C2", product: "MID", category: "Paint", doc: "D4"},
	})

	report, err := NewEngine().AnalyzeAll(context.Background(), lines, testConfig())
	require.NoError(t, err)

	starCodes := make([]string, 0, len(report.Products.StarProducts))
	for _, p := range report.Products.StarProducts {
		starCodes = append(starCodes, p.Code)
	}
	assert.ElementsMatch(t, []string{"STAR", "EDGE"}, starCodes)

	require.Len(t, report.Products.Underperformers, 1)
	assert.Equal(t, "WEAK", report.Products.Underperformers[0].Code)
}

func TestEngine_AnalyzeAll_InventoryVelocity(t *testing.T) {
	var specs []lineSpec
	for i := 0; i < 6; i++ { // 6 tx > fast bound of 5
		specs = append(specs, lineSpec{
			date: "2024-01-05", withTax: 20, net: 17, cost: 10, qty: 1,
			customer: "C1", product: "FAST", category: "Tools", doc: fmt.Sprintf("F%d", i),
		})
	}
	for i := 0; i < 3; i++ { // 3 tx: middle band
		specs = append(specs, lineSpec{
			date: "2024-01-06", withTax: 20, net: 17, cost: 10, qty: 1,
			customer: "C1", product: "MID", category: "Tools", doc: fmt.Sprintf("M%d", i),
		})
	}
	specs = append(specs, lineSpec{ // 1 tx <= slow bound of 2
		date: "2024-01-07", withTax: 20, net: 17, cost: 10, qty: 1,
		customer: "C1", product: "SLOW", category: "Tools", doc: "S0",
	})

	report, err := NewEngine().AnalyzeAll(context.Background(), makeLines(specs), testConfig())
	require.NoError(t, err)

	require.Len(t, report.Inventory.FastMovers, 1)
	assert.Equal(t, "FAST", report.Inventory.FastMovers[0].Code)
	assert.Equal(t, 6, report.Inventory.FastMovers[0].Transactions)

	require.Len(t, report.Inventory.SlowMovers, 1)
	assert.Equal(t, "SLOW", report.Inventory.SlowMovers[0].Code)
}

func TestEngine_AnalyzeAll_TrendsAndOperational(t *testing.T) {
	lines := makeLines([]lineSpec{
		{date: "2024-02-15", withTax: 100, net: 84, cost: 50, qty: 2, customer: "C1", product: "P1", category: "Tools", doc: "D1"},
		{date: "2024-01-10", withTax: 200, net: 168, cost: 90, qty: 4, customer: "C1", product: "P1", category: "Tools", doc: "D2"},
		{date: "2024-01-20", withTax: 50, net: 42, cost: 20, qty: -1, customer: "C2", product: "P2", category: "Paint", doc: "D2"},
		{withTax: 30, net: 25, cost: 10, qty: 1, customer: "C2", product: "P2", category: "Paint", doc: ""},
	})

	report, err := NewEngine().AnalyzeAll(context.Background(), lines, testConfig())
	require.NoError(t, err)

	// Months come back sorted ascending regardless of input order.
	require.Len(t, report.Trends.Monthly, 2)
	assert.Equal(t, "2024-01", report.Trends.Monthly[0].Month)
	assert.Equal(t, 2, report.Trends.Monthly[0].Transactions)
	assert.Equal(t, "2024-02", report.Trends.Monthly[1].Month)
	require.Len(t, report.Trends.Notes, 1)

	op := report.Operational
	assert.Equal(t, 4, op.TotalLines)
	// Two distinct documents plus one undocumented line.
	assert.Equal(t, 3, op.TotalTransactions)
	assert.Equal(t, 3, op.ActiveDays)
	assert.InDelta(t, 1.0, op.TransactionsPerDay, 1e-9)
	assert.True(t, op.UnitsSold.Equal(decimal.NewFromInt(7)), "units sold %s", op.UnitsSold)
	assert.True(t, op.UnitsReturned.Equal(decimal.NewFromInt(1)), "units returned %s", op.UnitsReturned)
	assert.InDelta(t, 100.0/7.0, op.ReturnRatePct, 1e-9)
	assert.NotEmpty(t, op.Notes)
}

func TestEngine_AnalyzeAll_ConcentrationStaysBounded(t *testing.T) {
	// Returns push one customer's revenue negative; shares must stay in
	// [0, 100] anyway.
	lines := makeLines([]lineSpec{
		{date: "2024-01-01", withTax: 100, net: 84, cost: 40, qty: 1, customer: "C1", product: "P1", category: "Tools", doc: "D1"},
		{date: "2024-01-02", withTax: -300, net: -252, cost: -100, qty: -3, customer: "C2", product: "P2", category: "Paint", doc: "D2"},
		{date: "2024-01-03", withTax: 250, net: 210, cost: 90, qty: 2, customer: "C3", product: "P3", category: "Tools", doc: "D3"},
	})

	report, err := NewEngine().AnalyzeAll(context.Background(), lines, testConfig())
	require.NoError(t, err)

	for _, c := range report.Customers.Concentration {
		assert.GreaterOrEqual(t, c.SharePct, 0.0)
		assert.LessOrEqual(t, c.SharePct, 100.0)
	}
	assert.GreaterOrEqual(t, report.Risk.TopCategorySharePct, 0.0)
	assert.LessOrEqual(t, report.Risk.TopCategorySharePct, 100.0)
}
