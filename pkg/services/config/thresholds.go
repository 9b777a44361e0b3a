// Package config loads the business-rule thresholds and the document-type
// exclusion list. Both are resolved once per run and rejected up front when
// malformed; the engine never sees a config it cannot classify with.
package config

import (
	"fmt"

	"github.com/Trujillofa/depotru-database-sub000/pkg/models/domain"
	"github.com/Trujillofa/depotru-database-sub000/pkg/normalize"
	"github.com/spf13/viper"
)

type segmentSpec struct {
	Name       string  `mapstructure:"name"`
	MinRevenue float64 `mapstructure:"min_revenue"`
	MinOrders  int     `mapstructure:"min_orders"`
}

type tierSpec struct {
	Name string  `mapstructure:"name"`
	Min  float64 `mapstructure:"min"`
}

type tierTableSpec struct {
	Tiers    []tierSpec `mapstructure:"tiers"`
	Fallback string     `mapstructure:"fallback"`
}

type fileSpec struct {
	Segments      []segmentSpec `mapstructure:"segments"`
	CategoryRisk  tierTableSpec `mapstructure:"category_risk"`
	Concentration tierTableSpec `mapstructure:"concentration"`

	StarMarginPct float64 `mapstructure:"star_margin_pct"`
	LowMarginPct  float64 `mapstructure:"low_margin_pct"`

	FastMoverTxCount int `mapstructure:"fast_mover_tx_count"`
	SlowMoverTxCount int `mapstructure:"slow_mover_tx_count"`

	TopCustomerCounts []int `mapstructure:"top_customer_counts"`

	DivideDefault float64 `mapstructure:"divide_default"`

	ExcludedDocumentCodes []string `mapstructure:"excluded_document_codes"`
}

// Default mirrors the thresholds the business has run on historically.
func Default() domain.ThresholdConfig {
	return domain.ThresholdConfig{
		Segments: domain.SegmentTable{Segments: []domain.Segment{
			{Name: "VIP", MinRevenue: 500_000, MinOrders: 5},
			{Name: "High Value", MinRevenue: 200_000},
			{Name: "Frequent", MinOrders: 10},
			{Name: "Regular", MinRevenue: 50_000},
			{Name: "Occasional"},
		}},
		CategoryRisk: domain.TierTable{
			Tiers: []domain.Tier{
				{Name: "LOW", Min: 20},
				{Name: "MEDIUM", Min: 10},
				{Name: "HIGH", Min: 0},
			},
			Fallback: "CRITICAL",
		},
		Concentration: domain.TierTable{
			Tiers: []domain.Tier{
				{Name: "HIGH", Min: 60},
				{Name: "MODERATE", Min: 30},
			},
			Fallback: "LOW",
		},
		StarMarginPct:     30,
		LowMarginPct:      10,
		FastMoverTxCount:  5,
		SlowMoverTxCount:  2,
		TopCustomerCounts: []int{5, 10},
		DivideDefault:     0,
	}
}

// DefaultExclusions returns the standard internal document codes.
func DefaultExclusions() domain.ExclusionSet {
	return domain.NewExclusionSet(normalize.DefaultExcludedDocumentCodes...)
}

// Load reads thresholds and exclusions from the given file. Missing keys
// fall back to the defaults; the merged result is validated before it is
// returned so a bad file aborts the run up front.
func Load(path string) (domain.ThresholdConfig, domain.ExclusionSet, error) {
	v := viper.New()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return domain.ThresholdConfig{}, nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var spec fileSpec
	if err := v.Unmarshal(&spec); err != nil {
		return domain.ThresholdConfig{}, nil, fmt.Errorf("failed to parse thresholds config: %w", err)
	}

	cfg := merge(Default(), spec)
	if err := cfg.Validate(); err != nil {
		return domain.ThresholdConfig{}, nil, fmt.Errorf("thresholds config %s: %w", path, err)
	}

	excluded := DefaultExclusions()
	if spec.ExcludedDocumentCodes != nil {
		excluded = domain.NewExclusionSet(spec.ExcludedDocumentCodes...)
	}
	return cfg, excluded, nil
}

func merge(cfg domain.ThresholdConfig, spec fileSpec) domain.ThresholdConfig {
	if len(spec.Segments) > 0 {
		segments := make([]domain.Segment, 0, len(spec.Segments))
		for _, s := range spec.Segments {
			segments = append(segments, domain.Segment{
				Name:       s.Name,
				MinRevenue: s.MinRevenue,
				MinOrders:  s.MinOrders,
			})
		}
		cfg.Segments = domain.SegmentTable{Segments: segments}
	}
	if len(spec.CategoryRisk.Tiers) > 0 {
		cfg.CategoryRisk = toTierTable(spec.CategoryRisk)
	}
	if len(spec.Concentration.Tiers) > 0 {
		cfg.Concentration = toTierTable(spec.Concentration)
	}
	if spec.StarMarginPct != 0 {
		cfg.StarMarginPct = spec.StarMarginPct
	}
	if spec.LowMarginPct != 0 {
		cfg.LowMarginPct = spec.LowMarginPct
	}
	if spec.FastMoverTxCount != 0 {
		cfg.FastMoverTxCount = spec.FastMoverTxCount
	}
	if spec.SlowMoverTxCount != 0 {
		cfg.SlowMoverTxCount = spec.SlowMoverTxCount
	}
	if len(spec.TopCustomerCounts) > 0 {
		cfg.TopCustomerCounts = spec.TopCustomerCounts
	}
	if spec.DivideDefault != 0 {
		cfg.DivideDefault = spec.DivideDefault
	}
	return cfg
}

func toTierTable(spec tierTableSpec) domain.TierTable {
	tiers := make([]domain.Tier, 0, len(spec.Tiers))
	for _, t := range spec.Tiers {
		tiers = append(tiers, domain.Tier{Name: t.Name, Min: t.Min})
	}
	return domain.TierTable{Tiers: tiers, Fallback: spec.Fallback}
}
