package analysis

import (
	"sort"

	"github.com/Trujillofa/depotru-database-sub000/pkg/models/domain"
)

// analyzeProfitability decomposes the overall margin by category. It reads
// the same category aggregates as analyzeCategories, so the per-category
// profits sum exactly to the financial section's gross profit.
func analyzeProfitability(idx *index, div DivPolicy) domain.ProfitabilityAnalytics {
	byCategory := make([]domain.CategoryMargin, 0, len(idx.categories))
	for name, acc := range idx.categories {
		profit := acc.revenue.Sub(acc.cost)
		byCategory = append(byCategory, domain.CategoryMargin{
			Category:  name,
			Revenue:   acc.revenue,
			Cost:      acc.cost,
			Profit:    profit,
			MarginPct: div.Percent(profit, acc.revenue),
		})
	}
	sort.Slice(byCategory, func(i, j int) bool {
		if byCategory[i].MarginPct != byCategory[j].MarginPct {
			return byCategory[i].MarginPct > byCategory[j].MarginPct
		}
		return byCategory[i].Category < byCategory[j].Category
	})

	return domain.ProfitabilityAnalytics{ByCategory: byCategory}
}
