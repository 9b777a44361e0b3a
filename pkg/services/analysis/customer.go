package analysis

import (
	"fmt"
	"sort"

	"github.com/Trujillofa/depotru-database-sub000/pkg/models/domain"
	"github.com/shopspring/decimal"
)

const topCustomerLimit = 20

func analyzeCustomers(idx *index, cfg domain.ThresholdConfig, div DivPolicy) domain.CustomerAnalytics {
	customers := make([]domain.CustomerStats, 0, len(idx.customers))
	var total decimal.Decimal
	for key, acc := range idx.customers {
		customers = append(customers, domain.CustomerStats{
			Key:           key,
			Name:          acc.name,
			Revenue:       acc.revenue,
			Orders:        acc.orders,
			AvgOrderValue: div.Split(acc.revenue, acc.orders),
			Products:      len(acc.products),
			Segment:       cfg.Segments.Classify(acc.revenue.InexactFloat64(), acc.orders),
		})
		total = total.Add(acc.revenue)
	}

	// Descending by revenue; equal revenues order by key so ranked output is
	// reproducible regardless of input order.
	sort.Slice(customers, func(i, j int) bool {
		if !customers[i].Revenue.Equal(customers[j].Revenue) {
			return customers[i].Revenue.GreaterThan(customers[j].Revenue)
		}
		return customers[i].Key < customers[j].Key
	})

	segments := make(map[string]int, len(cfg.Segments.Segments))
	for _, c := range customers {
		segments[c.Segment]++
	}

	res := domain.CustomerAnalytics{
		TopCustomers:   topN(customers, topCustomerLimit),
		TotalCustomers: len(customers),
		Concentration:  concentrations(customers, total, cfg.TopCustomerCounts, div),
		Segments:       segments,
	}
	if idx.unknownCustomerLines > 0 {
		res.Notes = append(res.Notes,
			fmt.Sprintf("%d lines had no customer identity and were aggregated under %q",
				idx.unknownCustomerLines, domain.UnknownKey))
	}
	return res
}

func concentrations(
	customers []domain.CustomerStats,
	total decimal.Decimal,
	counts []int,
	div DivPolicy,
) []domain.Concentration {
	res := make([]domain.Concentration, 0, len(counts))
	for _, n := range counts {
		var top decimal.Decimal
		for i := 0; i < n && i < len(customers); i++ {
			top = top.Add(customers[i].Revenue)
		}
		res = append(res, domain.Concentration{
			TopN:     n,
			Revenue:  top,
			SharePct: clampPct(div.Percent(top, total)),
		})
	}
	return res
}

func topN[T any](items []T, n int) []T {
	if len(items) <= n {
		return items
	}
	return items[:n]
}
