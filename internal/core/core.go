// Package core defines the ledger's data model: the Amount type,
// transactions, blocks, and their canonical encodings, hashes,
// signatures, and validity rules.
package core

import (
	"math"

	"github.com/decred/slog"
)

var log = slog.Disabled

// UseLogger sets the package-wide logger.
func UseLogger(logger slog.Logger) {
	log = logger
}

// Amount is a fixed-point monetary value scaled by MicroUnitsPerUnit, so
// that all ledger arithmetic is integer and deterministic across
// platforms rather than relying on floating point.
type Amount int64

// MicroUnitsPerUnit is the number of Amount units in one whole coin.
const MicroUnitsPerUnit = 1_000_000

// Float64 returns the amount as a floating-point number of whole coins,
// for display and for feeding the monetary-policy formulas that are
// specified in floating point.
func (a Amount) Float64() float64 {
	return float64(a) / MicroUnitsPerUnit
}

// AmountFromFloat64 converts a floating-point number of whole coins into
// a fixed-point Amount, rounding to the nearest micro-unit.
func AmountFromFloat64(f float64) Amount {
	return Amount(math.Round(f * MicroUnitsPerUnit))
}
