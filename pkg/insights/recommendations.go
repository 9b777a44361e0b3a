// Package insights derives strategic recommendations from a computed
// report. The rules are deliberately simple and deterministic; they flag
// the findings a reviewer would act on first.
package insights

import (
	"fmt"

	"github.com/Trujillofa/depotru-database-sub000/pkg/models/domain"
)

const healthyMarginPct = 20

// Recommendations inspects the report and returns human-readable findings
// in priority order. An empty slice means nothing needs attention.
func Recommendations(r domain.Report) []string {
	var recs []string

	if r.Records > 0 && r.Financial.GrossMarginPct < healthyMarginPct {
		recs = append(recs, fmt.Sprintf(
			"URGENT: gross profit margin is %.1f%%, review pricing strategy",
			r.Financial.GrossMarginPct))
	}

	var critical int
	for _, c := range r.Categories.Categories {
		if c.Profit.IsNegative() {
			critical++
		}
	}
	if critical > 0 {
		recs = append(recs, fmt.Sprintf(
			"CRITICAL: %d categories sell below cost, review pricing and supplier costs",
			critical))
	}

	if n := len(r.Products.Underperformers); n > 0 {
		recs = append(recs, fmt.Sprintf(
			"%d products have low margins, consider price increases or delisting", n))
	}
	if n := len(r.Products.StarProducts); n > 0 {
		recs = append(recs, fmt.Sprintf(
			"%d star products identified, increase inventory and promotion", n))
	}

	if r.Risk.CustomerRiskLevel == "HIGH" {
		recs = append(recs, fmt.Sprintf(
			"customer concentration is high (top %d hold %.1f%% of revenue), diversify the customer base",
			r.Risk.CustomerConcentration[0].TopN, r.Risk.CustomerConcentration[0].SharePct))
	}

	if n := len(r.Inventory.SlowMovers); n > 0 {
		recs = append(recs, fmt.Sprintf(
			"%d slow-moving products are tying up stock, consider clearance", n))
	}

	return recs
}
