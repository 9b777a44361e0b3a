package analysis

import (
	"fmt"
	"sort"

	"github.com/Trujillofa/depotru-database-sub000/pkg/models/domain"
)

func analyzeTrends(idx *index, div DivPolicy) domain.TrendAnalytics {
	monthly := make([]domain.MonthlyPoint, 0, len(idx.months))
	for month, acc := range idx.months {
		monthly = append(monthly, domain.MonthlyPoint{
			Month:        month,
			Revenue:      acc.revenue,
			Transactions: acc.tx,
		})
	}
	sort.Slice(monthly, func(i, j int) bool { return monthly[i].Month < monthly[j].Month })

	distribution := make([]domain.CategoryShare, 0, len(idx.categories))
	for name, acc := range idx.categories {
		distribution = append(distribution, domain.CategoryShare{
			Category: name,
			Revenue:  acc.revenueWithTax,
			SharePct: div.Percent(acc.revenueWithTax, idx.revenueWithTax),
		})
	}
	sort.Slice(distribution, func(i, j int) bool {
		if !distribution[i].Revenue.Equal(distribution[j].Revenue) {
			return distribution[i].Revenue.GreaterThan(distribution[j].Revenue)
		}
		return distribution[i].Category < distribution[j].Category
	})

	res := domain.TrendAnalytics{
		Monthly:              monthly,
		CategoryDistribution: distribution,
	}
	if idx.undatedLines > 0 {
		res.Notes = append(res.Notes,
			fmt.Sprintf("%d lines had no parseable date and are missing from the monthly buckets",
				idx.undatedLines))
	}
	return res
}
