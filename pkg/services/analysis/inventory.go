package analysis

import (
	"sort"

	"github.com/Trujillofa/depotru-database-sub000/pkg/models/domain"
)

const moverLimit = 20

func analyzeInventory(idx *index, cfg domain.ThresholdConfig) domain.InventoryAnalytics {
	var fast, slow []domain.ProductVelocity
	for code, acc := range idx.products {
		v := domain.ProductVelocity{
			Code:         code,
			Name:         acc.name,
			Transactions: acc.tx,
			UnitsSold:    acc.quantity,
		}
		// Fast above the upper count, slow at or below the lower one. The
		// bands cannot overlap: config validation requires fast >= slow+1.
		switch {
		case acc.tx > cfg.FastMoverTxCount:
			fast = append(fast, v)
		case acc.tx <= cfg.SlowMoverTxCount:
			slow = append(slow, v)
		}
	}

	sort.Slice(fast, func(i, j int) bool {
		if fast[i].Transactions != fast[j].Transactions {
			return fast[i].Transactions > fast[j].Transactions
		}
		return fast[i].Code < fast[j].Code
	})
	sort.Slice(slow, func(i, j int) bool {
		if slow[i].Transactions != slow[j].Transactions {
			return slow[i].Transactions < slow[j].Transactions
		}
		return slow[i].Code < slow[j].Code
	})

	return domain.InventoryAnalytics{
		FastMovers: topN(fast, moverLimit),
		SlowMovers: topN(slow, moverLimit),
	}
}
