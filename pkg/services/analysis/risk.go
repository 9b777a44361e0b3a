package analysis

import (
	"github.com/Trujillofa/depotru-database-sub000/pkg/models/domain"
	"github.com/shopspring/decimal"
)

// analyzeRisk derives concentration risk from the customer and category
// sections already computed for this run instead of re-sorting the
// aggregates.
func analyzeRisk(
	customers domain.CustomerAnalytics,
	categories domain.CategoryAnalytics,
	cfg domain.ThresholdConfig,
	div DivPolicy,
) domain.RiskMetrics {
	m := domain.RiskMetrics{
		CustomerConcentration: customers.Concentration,
		CustomerRiskLevel:     cfg.Concentration.Fallback,
		CategoryRiskLevel:     cfg.Concentration.Fallback,
	}

	if len(customers.Concentration) > 0 {
		m.CustomerRiskLevel = cfg.Concentration.Classify(customers.Concentration[0].SharePct)
	}
	if customers.TotalCustomers == 0 {
		m.Notes = append(m.Notes, "no customers in the analysis window")
	}

	if len(categories.Categories) > 0 {
		var total decimal.Decimal
		for _, c := range categories.Categories {
			total = total.Add(c.Revenue)
		}
		m.TopCategorySharePct = clampPct(div.Percent(categories.Categories[0].Revenue, total))
		m.CategoryRiskLevel = cfg.Concentration.Classify(m.TopCategorySharePct)
	}

	return m
}
