package analysis

import (
	"sort"

	"github.com/Trujillofa/depotru-database-sub000/pkg/models/domain"
)

const topSubcategoryLimit = 5

func analyzeCategories(idx *index, cfg domain.ThresholdConfig, div DivPolicy) domain.CategoryAnalytics {
	categories := make([]domain.CategoryStats, 0, len(idx.categories))
	for name, acc := range idx.categories {
		profit := acc.revenue.Sub(acc.cost)
		margin := div.Percent(profit, acc.revenue)

		subs := make([]domain.SubcategoryStats, 0, len(acc.subcategories))
		for subName, sub := range acc.subcategories {
			subs = append(subs, domain.SubcategoryStats{
				Name:    subName,
				Revenue: sub.revenue,
				Orders:  sub.orders,
			})
		}
		sort.Slice(subs, func(i, j int) bool {
			if !subs[i].Revenue.Equal(subs[j].Revenue) {
				return subs[i].Revenue.GreaterThan(subs[j].Revenue)
			}
			return subs[i].Name < subs[j].Name
		})

		categories = append(categories, domain.CategoryStats{
			Name:             name,
			Revenue:          acc.revenue,
			Cost:             acc.cost,
			Profit:           profit,
			MarginPct:        margin,
			Orders:           acc.orders,
			RiskLevel:        cfg.CategoryRisk.Classify(margin),
			TopSubcategories: topN(subs, topSubcategoryLimit),
		})
	}

	sort.Slice(categories, func(i, j int) bool {
		if !categories[i].Revenue.Equal(categories[j].Revenue) {
			return categories[i].Revenue.GreaterThan(categories[j].Revenue)
		}
		return categories[i].Name < categories[j].Name
	})

	return domain.CategoryAnalytics{
		Categories:      categories,
		TotalCategories: len(categories),
	}
}
