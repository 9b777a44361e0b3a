// Package analysis is the aggregation engine: it fans a normalized
// transaction stream out to the dimension analyzers and merges their
// results into a single report. The input slice and threshold config are
// read-only for the duration of a run, so the analyzers run concurrently
// without locks; each one owns a disjoint section of the report.
package analysis

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Trujillofa/depotru-database-sub000/pkg/models/domain"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Engine runs every dimension analyzer over a materialized line slice. It
// holds no state between runs and performs no I/O.
type Engine struct{}

func NewEngine() *Engine {
	return &Engine{}
}

// AnalyzeAll validates the configuration, builds the shared aggregate
// index in one pass and produces the merged report. A malformed config is
// the only error: it would make classification non-deterministic, so it
// aborts before any analyzer runs. Data-quality issues surface as section
// notes, never as errors.
func (e *Engine) AnalyzeAll(
	ctx context.Context,
	lines []domain.NormalizedLine,
	cfg domain.ThresholdConfig,
) (domain.Report, error) {
	logger := zerolog.Ctx(ctx)

	if err := cfg.Validate(); err != nil {
		return domain.Report{}, fmt.Errorf("invalid threshold config: %w", err)
	}

	started := time.Now()
	div := DivPolicy{Default: cfg.DivideDefault}
	idx := buildIndex(lines)

	report := domain.Report{
		ID:          uuid.New(),
		GeneratedAt: time.Now().UTC(),
		Records:     len(lines),
	}

	var wg sync.WaitGroup
	run := func(f func()) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			f()
		}()
	}

	run(func() { report.Financial = analyzeFinancial(idx, div) })
	run(func() { report.Customers = analyzeCustomers(idx, cfg, div) })
	run(func() { report.Products = analyzeProducts(idx, cfg, div) })
	run(func() { report.Categories = analyzeCategories(idx, cfg, div) })
	run(func() { report.Inventory = analyzeInventory(idx, cfg) })
	run(func() { report.Trends = analyzeTrends(idx, div) })
	run(func() { report.Profitability = analyzeProfitability(idx, div) })
	run(func() { report.Operational = analyzeOperational(idx, div) })
	wg.Wait()

	// Risk reuses the customer and category sections, so it runs after the
	// fan-in.
	report.Risk = analyzeRisk(report.Customers, report.Categories, cfg, div)

	logger.Debug().
		Int("lines", len(lines)).
		Int("customers", report.Customers.TotalCustomers).
		Int("products", report.Products.TotalProducts).
		Dur("elapsed", time.Since(started)).
		Msg("analysis completed")

	return report, nil
}
