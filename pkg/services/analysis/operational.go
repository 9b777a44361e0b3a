package analysis

import (
	"github.com/Trujillofa/depotru-database-sub000/pkg/models/domain"
	"github.com/shopspring/decimal"
)

func analyzeOperational(idx *index, div DivPolicy) domain.OperationalMetrics {
	tx := idx.transactions()
	m := domain.OperationalMetrics{
		TotalLines:        idx.lines,
		TotalTransactions: tx,
		ActiveDays:        len(idx.days),
		UnitsSold:         idx.unitsSold,
		UnitsReturned:     idx.unitsReturned,
	}

	m.TransactionsPerDay = div.Ratio(decimal.NewFromInt(int64(tx)), decimal.NewFromInt(int64(len(idx.days))))
	m.AvgLinesPerTransaction = div.Ratio(decimal.NewFromInt(int64(idx.lines)), decimal.NewFromInt(int64(tx)))
	// Returned units over gross sold units, both accumulated from the
	// signed per-line quantities.
	m.ReturnRatePct = clampPct(div.Percent(idx.unitsReturned, idx.unitsSold))

	if idx.undocumentedLines > 0 && len(idx.documents) > 0 {
		m.Notes = append(m.Notes,
			"some lines had no document number and were counted as single-line transactions")
	}
	return m
}
