package analysis

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// DivPolicy is the single shared division policy for the engine. Every
// margin, share and ratio routes through it so a zero denominator always
// degrades to the configured default instead of failing the run.
type DivPolicy struct {
	Default float64
}

// Ratio divides two amounts, returning the default when den is zero.
func (p DivPolicy) Ratio(num, den decimal.Decimal) float64 {
	if den.IsZero() {
		return p.Default
	}
	return num.Div(den).InexactFloat64()
}

// Percent is Ratio expressed as a percentage. The multiplication happens
// before the division so clean inputs produce clean percentages.
func (p DivPolicy) Percent(num, den decimal.Decimal) float64 {
	if den.IsZero() {
		return p.Default
	}
	return num.Mul(hundred).Div(den).InexactFloat64()
}

// Split divides an amount over a count, rounded to cents. Used for
// per-order and per-unit money averages.
func (p DivPolicy) Split(num decimal.Decimal, count int) decimal.Decimal {
	if count == 0 {
		return decimal.NewFromFloat(p.Default)
	}
	return num.DivRound(decimal.NewFromInt(int64(count)), 2)
}

// clampPct bounds a percentage to [0, 100]. Concentration shares can drift
// outside the range when net revenues go negative through returns.
func clampPct(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
