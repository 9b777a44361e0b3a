package analysis

import (
	"sort"

	"github.com/Trujillofa/depotru-database-sub000/pkg/models/domain"
	"github.com/shopspring/decimal"
)

func analyzeFinancial(idx *index, div DivPolicy) domain.FinancialMetrics {
	m := domain.FinancialMetrics{
		RevenueWithTax:    idx.revenueWithTax,
		RevenueWithoutTax: idx.revenueWithoutTax,
		TaxCollected:      idx.revenueWithTax.Sub(idx.revenueWithoutTax),
		TotalCost:         idx.cost,
		GrossProfit:       idx.revenueWithoutTax.Sub(idx.cost),
		AvgOrderValue:     div.Split(idx.revenueWithTax, idx.lines),
		MedianOrderValue:  medianValue(idx.orderValues, div),
	}
	m.GrossMarginPct = div.Percent(m.GrossProfit, idx.revenueWithoutTax)

	if idx.lines == 0 {
		m.Notes = append(m.Notes, "no transactions in the analysis window")
	}
	return m
}

func medianValue(values []decimal.Decimal, div DivPolicy) decimal.Decimal {
	if len(values) == 0 {
		return decimal.NewFromFloat(div.Default)
	}
	sorted := make([]decimal.Decimal, len(values))
	copy(sorted, values)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].LessThan(sorted[j]) })

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return div.Split(sorted[mid-1].Add(sorted[mid]), 2)
}
