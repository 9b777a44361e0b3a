package adapters

import (
	"github.com/Trujillofa/depotru-database-sub000/pkg/models/api"
	"github.com/Trujillofa/depotru-database-sub000/pkg/models/domain"
)

func MapReportDomainToAPI(r domain.Report) api.Report {
	return api.Report{
		ID:            r.ID.String(),
		GeneratedAt:   r.GeneratedAt,
		Records:       r.Records,
		Financial:     mapFinancial(r.Financial),
		Customers:     mapCustomers(r.Customers),
		Products:      mapProducts(r.Products),
		Categories:    mapCategories(r.Categories),
		Inventory:     mapInventory(r.Inventory),
		Trends:        mapTrends(r.Trends),
		Profitability: mapProfitability(r.Profitability),
		Risk:          mapRisk(r.Risk),
		Operational:   mapOperational(r.Operational),
	}
}

func mapFinancial(m domain.FinancialMetrics) api.FinancialMetrics {
	return api.FinancialMetrics{
		RevenueWithTax:    m.RevenueWithTax,
		RevenueWithoutTax: m.RevenueWithoutTax,
		TaxCollected:      m.TaxCollected,
		TotalCost:         m.TotalCost,
		GrossProfit:       m.GrossProfit,
		GrossMarginPct:    m.GrossMarginPct,
		AvgOrderValue:     m.AvgOrderValue,
		MedianOrderValue:  m.MedianOrderValue,
		Notes:             m.Notes,
	}
}

func mapCustomers(a domain.CustomerAnalytics) api.CustomerAnalytics {
	res := api.CustomerAnalytics{
		TopCustomers:   make([]api.CustomerStats, 0, len(a.TopCustomers)),
		TotalCustomers: a.TotalCustomers,
		Concentration:  mapConcentrations(a.Concentration),
		Segments:       a.Segments,
		Notes:          a.Notes,
	}
	for _, c := range a.TopCustomers {
		res.TopCustomers = append(res.TopCustomers, api.CustomerStats{
			Key:           c.Key,
			Name:          c.Name,
			Revenue:       c.Revenue,
			Orders:        c.Orders,
			AvgOrderValue: c.AvgOrderValue,
			Products:      c.Products,
			Segment:       c.Segment,
		})
	}
	return res
}

func mapConcentrations(cs []domain.Concentration) []api.Concentration {
	res := make([]api.Concentration, 0, len(cs))
	for _, c := range cs {
		res = append(res, api.Concentration{TopN: c.TopN, Revenue: c.Revenue, SharePct: c.SharePct})
	}
	return res
}

func mapProducts(a domain.ProductAnalytics) api.ProductAnalytics {
	return api.ProductAnalytics{
		TopProducts:     mapProductStats(a.TopProducts),
		TotalProducts:   a.TotalProducts,
		StarProducts:    mapProductStats(a.StarProducts),
		Underperformers: mapProductStats(a.Underperformers),
		Notes:           a.Notes,
	}
}

func mapProductStats(ps []domain.ProductStats) []api.ProductStats {
	res := make([]api.ProductStats, 0, len(ps))
	for _, p := range ps {
		res = append(res, api.ProductStats{
			Code:         p.Code,
			Name:         p.Name,
			Revenue:      p.Revenue,
			Cost:         p.Cost,
			Profit:       p.Profit,
			MarginPct:    p.MarginPct,
			Quantity:     p.Quantity,
			Transactions: p.Transactions,
		})
	}
	return res
}

func mapCategories(a domain.CategoryAnalytics) api.CategoryAnalytics {
	res := api.CategoryAnalytics{
		Categories:      make([]api.CategoryStats, 0, len(a.Categories)),
		TotalCategories: a.TotalCategories,
		Notes:           a.Notes,
	}
	for _, c := range a.Categories {
		subs := make([]api.SubcategoryStats, 0, len(c.TopSubcategories))
		for _, s := range c.TopSubcategories {
			subs = append(subs, api.SubcategoryStats{Name: s.Name, Revenue: s.Revenue, Orders: s.Orders})
		}
		res.Categories = append(res.Categories, api.CategoryStats{
			Name:             c.Name,
			Revenue:          c.Revenue,
			Cost:             c.Cost,
			Profit:           c.Profit,
			MarginPct:        c.MarginPct,
			Orders:           c.Orders,
			RiskLevel:        c.RiskLevel,
			TopSubcategories: subs,
		})
	}
	return res
}

func mapInventory(a domain.InventoryAnalytics) api.InventoryAnalytics {
	return api.InventoryAnalytics{
		FastMovers: mapVelocities(a.FastMovers),
		SlowMovers: mapVelocities(a.SlowMovers),
		Notes:      a.Notes,
	}
}

func mapVelocities(vs []domain.ProductVelocity) []api.ProductVelocity {
	res := make([]api.ProductVelocity, 0, len(vs))
	for _, v := range vs {
		res = append(res, api.ProductVelocity{
			Code:         v.Code,
			Name:         v.Name,
			Transactions: v.Transactions,
			UnitsSold:    v.UnitsSold,
		})
	}
	return res
}

func mapTrends(a domain.TrendAnalytics) api.TrendAnalytics {
	res := api.TrendAnalytics{
		Monthly:              make([]api.MonthlyPoint, 0, len(a.Monthly)),
		CategoryDistribution: make([]api.CategoryShare, 0, len(a.CategoryDistribution)),
		Notes:                a.Notes,
	}
	for _, m := range a.Monthly {
		res.Monthly = append(res.Monthly, api.MonthlyPoint{
			Month:        m.Month,
			Revenue:      m.Revenue,
			Transactions: m.Transactions,
		})
	}
	for _, c := range a.CategoryDistribution {
		res.CategoryDistribution = append(res.CategoryDistribution, api.CategoryShare{
			Category: c.Category,
			Revenue:  c.Revenue,
			SharePct: c.SharePct,
		})
	}
	return res
}

func mapProfitability(a domain.ProfitabilityAnalytics) api.ProfitabilityAnalytics {
	res := api.ProfitabilityAnalytics{
		ByCategory: make([]api.CategoryMargin, 0, len(a.ByCategory)),
		Notes:      a.Notes,
	}
	for _, c := range a.ByCategory {
		res.ByCategory = append(res.ByCategory, api.CategoryMargin{
			Category:  c.Category,
			Revenue:   c.Revenue,
			Cost:      c.Cost,
			Profit:    c.Profit,
			MarginPct: c.MarginPct,
		})
	}
	return res
}

func mapRisk(m domain.RiskMetrics) api.RiskMetrics {
	return api.RiskMetrics{
		CustomerConcentration: mapConcentrations(m.CustomerConcentration),
		CustomerRiskLevel:     m.CustomerRiskLevel,
		TopCategorySharePct:   m.TopCategorySharePct,
		CategoryRiskLevel:     m.CategoryRiskLevel,
		Notes:                 m.Notes,
	}
}

func mapOperational(m domain.OperationalMetrics) api.OperationalMetrics {
	return api.OperationalMetrics{
		TotalLines:             m.TotalLines,
		TotalTransactions:      m.TotalTransactions,
		ActiveDays:             m.ActiveDays,
		TransactionsPerDay:     m.TransactionsPerDay,
		AvgLinesPerTransaction: m.AvgLinesPerTransaction,
		UnitsSold:              m.UnitsSold,
		UnitsReturned:          m.UnitsReturned,
		ReturnRatePct:          m.ReturnRatePct,
		Notes:                  m.Notes,
	}
}
