package errors

import (
	"math"
	"strconv"
)

// MomentTol is the threshold below which a moment denominator is treated as
// numerically negligible.
const MomentTol = 1e-12

// CheckMoment validates the denominator of a moment condition. A NaN, Inf
// or near-zero denominator yields a DegenerateMomentError; anything else
// passes. fold is -1 for a pooled moment.
func CheckMoment(procedure string, denominator float64, repetition, fold int) error {
	if math.IsNaN(denominator) || math.IsInf(denominator, 0) || math.Abs(denominator) <= MomentTol {
		return NewDegenerateMomentError(procedure, repetition, fold, denominator)
	}
	return nil
}

// CheckFinite checks a slice for NaN or Inf entries and returns a ValueError
// naming the first offending index.
func CheckFinite(op string, values []float64) error {
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return NewValueError(op, "non-finite value at index "+strconv.Itoa(i))
		}
	}
	return nil
}
