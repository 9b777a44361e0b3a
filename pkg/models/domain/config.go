package domain

import "fmt"

// Segment is one customer tier. A customer qualifies when every bound that
// is set (non-zero) is met, lower bounds inclusive. A segment with no bounds
// is a catch-all.
type Segment struct {
	Name       string
	MinRevenue float64
	MinOrders  int
}

// SegmentTable is an ordered customer segmentation table, highest tier
// first. Classification scans top-down and the first matching segment wins,
// so a customer whose value satisfies several boundaries lands in the
// highest one. The last segment must be a catch-all so that every customer
// maps to exactly one tier.
type SegmentTable struct {
	Segments []Segment
}

func (t SegmentTable) Classify(revenue float64, orders int) string {
	for _, s := range t.Segments {
		if s.MinRevenue > 0 && revenue < s.MinRevenue {
			continue
		}
		if s.MinOrders > 0 && orders < s.MinOrders {
			continue
		}
		return s.Name
	}
	// Unreachable for a validated table.
	return ""
}

func (t SegmentTable) Validate() error {
	if len(t.Segments) == 0 {
		return fmt.Errorf("segment table is empty")
	}
	for i, s := range t.Segments {
		if s.Name == "" {
			return fmt.Errorf("segment %d has no name", i)
		}
		if s.MinRevenue < 0 || s.MinOrders < 0 {
			return fmt.Errorf("segment %q has a negative boundary", s.Name)
		}
		last := i == len(t.Segments)-1
		if catchAll := s.MinRevenue == 0 && s.MinOrders == 0; catchAll != last {
			if catchAll {
				return fmt.Errorf("catch-all segment %q must be last", s.Name)
			}
			return fmt.Errorf("last segment %q must be a catch-all (no boundaries)", s.Name)
		}
	}
	return nil
}

// Tier is one band of a scalar boundary table, lower bound inclusive.
type Tier struct {
	Name string
	Min  float64
}

// TierTable classifies a scalar value against ordered boundaries, highest
// first. The first tier whose lower bound the value meets or exceeds wins;
// values below every boundary fall into Fallback. Bounds must strictly
// decrease so every real input maps to exactly one tier.
type TierTable struct {
	Tiers    []Tier
	Fallback string
}

func (t TierTable) Classify(v float64) string {
	for _, tier := range t.Tiers {
		if v >= tier.Min {
			return tier.Name
		}
	}
	return t.Fallback
}

func (t TierTable) Validate() error {
	if t.Fallback == "" {
		return fmt.Errorf("tier table has no fallback tier")
	}
	for i, tier := range t.Tiers {
		if tier.Name == "" {
			return fmt.Errorf("tier %d has no name", i)
		}
		if i > 0 && tier.Min >= t.Tiers[i-1].Min {
			return fmt.Errorf("tier %q boundary %.2f is not below %q boundary %.2f",
				tier.Name, tier.Min, t.Tiers[i-1].Name, t.Tiers[i-1].Min)
		}
	}
	return nil
}

// ThresholdConfig carries every business-rule boundary the analyzers
// consume. It is supplied once per run and never mutated mid-run; a config
// that fails Validate aborts the run before any analyzer sees a line.
type ThresholdConfig struct {
	Segments      SegmentTable
	CategoryRisk  TierTable
	Concentration TierTable

	StarMarginPct float64
	LowMarginPct  float64

	FastMoverTxCount int
	SlowMoverTxCount int

	TopCustomerCounts []int

	// DivideDefault is the value every ratio in the engine falls back to
	// when its denominator is zero.
	DivideDefault float64
}

func (c ThresholdConfig) Validate() error {
	if err := c.Segments.Validate(); err != nil {
		return fmt.Errorf("customer segments: %w", err)
	}
	if err := c.CategoryRisk.Validate(); err != nil {
		return fmt.Errorf("category risk levels: %w", err)
	}
	if err := c.Concentration.Validate(); err != nil {
		return fmt.Errorf("concentration levels: %w", err)
	}
	if c.StarMarginPct <= c.LowMarginPct {
		return fmt.Errorf("star margin %.2f must be above low margin %.2f",
			c.StarMarginPct, c.LowMarginPct)
	}
	if c.SlowMoverTxCount < 0 {
		return fmt.Errorf("slow mover threshold %d is negative", c.SlowMoverTxCount)
	}
	// Fast and slow bands cannot overlap: a "normal" band of at least zero
	// width requires fast >= slow+1.
	if c.FastMoverTxCount < c.SlowMoverTxCount+1 {
		return fmt.Errorf("fast mover threshold %d must be at least slow mover threshold %d + 1",
			c.FastMoverTxCount, c.SlowMoverTxCount)
	}
	if len(c.TopCustomerCounts) == 0 {
		return fmt.Errorf("no top-customer concentration counts configured")
	}
	for _, n := range c.TopCustomerCounts {
		if n < 1 {
			return fmt.Errorf("top-customer concentration count %d must be positive", n)
		}
	}
	return nil
}
