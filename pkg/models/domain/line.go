package domain

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// RawRecord is one row of the ERP extract as delivered by the data-access
// layer: loosely typed, string keyed, never mutated by the engine.
type RawRecord map[string]any

// UnknownKey is the identity substituted for a missing customer or product
// so degenerate rows still aggregate instead of failing the run.
const UnknownKey = "Unknown"

// NormalizedLine is a single sales-transaction line after field extraction.
// Quantity keeps its sign: negative quantities are returns and must net
// against sales in every aggregation.
type NormalizedLine struct {
	Date              time.Time
	RevenueWithTax    decimal.Decimal
	RevenueWithoutTax decimal.Decimal
	Cost              decimal.Decimal
	Quantity          decimal.Decimal
	CustomerKey       string
	CustomerName      string
	ProductCode       string
	ProductName       string
	Category          string
	Subcategory       string
	DocumentType      string
	DocumentNumber    string
}

// ExclusionSet holds document-type codes for internal/administrative
// movements. Lines carrying one of these codes never reach an analyzer.
type ExclusionSet map[string]struct{}

// NewExclusionSet builds an exclusion set from a list of document codes.
func NewExclusionSet(codes ...string) ExclusionSet {
	s := make(ExclusionSet, len(codes))
	for _, c := range codes {
		s[c] = struct{}{}
	}
	return s
}

func (s ExclusionSet) Contains(code string) bool {
	_, ok := s[code]
	return ok
}

// Codes returns the set members in lexical order.
func (s ExclusionSet) Codes() []string {
	codes := make([]string, 0, len(s))
	for c := range s {
		codes = append(codes, c)
	}
	sort.Strings(codes)
	return codes
}
