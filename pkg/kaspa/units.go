// Package kaspa holds the pure helpers shared by everything that touches the
// Kaspa ledger: unit conversion, address validation and transfer-id cleanup.
package kaspa

import "math"

// SompiPerKas is the fixed scale between the display unit (KAS) and the
// integer base unit (sompi) used for all arithmetic.
const SompiPerKas = 100_000_000

// KasToSompi converts a display amount to integer base units. Rounding
// happens once, here; all downstream arithmetic is integer-exact.
func KasToSompi(kas float64) int64 {
	return int64(math.Round(kas * SompiPerKas))
}

// SompiToKas converts base units back to the display unit. The result is for
// presentation only and must never be fed back into amount accounting.
func SompiToKas(sompi int64) float64 {
	return float64(sompi) / SompiPerKas
}
