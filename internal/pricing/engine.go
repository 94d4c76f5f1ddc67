// Package pricing turns a request configuration into a quoted amount.
//
// Price computes
//
//	base[bracket(dimension)] * materials[material] + sum(options) + surcharges
//
// rounded half-to-even to the nearest 10 euro. The function is total: unknown
// material or option keys contribute nothing, and a kind without a price
// table yields the zero sentinel (the operator quotes those by hand).
package pricing

import (
	"github.com/bouwofferte/quote-service/internal/model"
	"github.com/shopspring/decimal"
)

// Price is pure and deterministic: same configuration and snapshot, same
// amount. It never returns a negative value and never fails.
func Price(kind model.RequestKind, cfg model.Configuration, snap *Snapshot) decimal.Decimal {
	if snap == nil {
		return decimal.Zero
	}
	kp, ok := snap.Kinds[kind]
	if !ok || len(kp.Brackets) == 0 {
		return decimal.Zero
	}

	total := bracketBase(kp.Brackets, cfg.PricingDimension(kind))

	// unknown material keys keep multiplier 1.0: configurator UIs evolve
	// independently of the price table
	if m, ok := kp.Materials[cfg.Material]; ok {
		total = total.Mul(m)
	}

	for _, opt := range cfg.Options {
		if c, ok := kp.Options[opt]; ok {
			total = total.Add(c)
		}
	}

	for field, value := range cfg.Categoricals() {
		if byValue, ok := kp.Surcharge[field]; ok {
			if s, ok := byValue[value]; ok {
				total = total.Add(s)
			}
		}
	}

	if total.IsNegative() {
		return decimal.Zero
	}

	// round to the nearest 10, ties to even, so quotes don't imply
	// centimeter precision
	return total.RoundBank(-1)
}

// bracketBase resolves the smallest bracket whose upper bound covers the
// value. Brackets are half-open (min, max]: a value exactly on a boundary
// stays in the bracket it closes, the next bracket starts strictly above it.
// Values past the last bound use the last bracket.
func bracketBase(brackets []Bracket, value int) decimal.Decimal {
	for _, b := range brackets {
		if value <= b.UpTo {
			return b.Base
		}
	}
	return brackets[len(brackets)-1].Base
}
