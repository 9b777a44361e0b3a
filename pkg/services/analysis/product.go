package analysis

import (
	"sort"

	"github.com/Trujillofa/depotru-database-sub000/pkg/models/domain"
)

const (
	topProductLimit  = 30
	starProductLimit = 10
)

func analyzeProducts(idx *index, cfg domain.ThresholdConfig, div DivPolicy) domain.ProductAnalytics {
	products := make([]domain.ProductStats, 0, len(idx.products))
	for code, acc := range idx.products {
		profit := acc.revenue.Sub(acc.cost)
		products = append(products, domain.ProductStats{
			Code:         code,
			Name:         acc.name,
			Revenue:      acc.revenue,
			Cost:         acc.cost,
			Profit:       profit,
			MarginPct:    div.Percent(profit, acc.revenue),
			Quantity:     acc.quantity,
			Transactions: acc.tx,
		})
	}

	sort.Slice(products, func(i, j int) bool {
		if !products[i].Revenue.Equal(products[j].Revenue) {
			return products[i].Revenue.GreaterThan(products[j].Revenue)
		}
		return products[i].Code < products[j].Code
	})

	// Star and underperformer are independent checks against two boundaries;
	// the middle band is neither. Lower bounds are inclusive.
	var stars, under []domain.ProductStats
	for _, p := range products {
		switch {
		case p.MarginPct >= cfg.StarMarginPct:
			stars = append(stars, p)
		case p.MarginPct < cfg.LowMarginPct:
			under = append(under, p)
		}
	}

	return domain.ProductAnalytics{
		TopProducts:     topN(products, topProductLimit),
		TotalProducts:   len(products),
		StarProducts:    topN(stars, starProductLimit),
		Underperformers: under,
	}
}
