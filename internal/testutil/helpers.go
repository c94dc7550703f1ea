// Package testutil provides reusable test helper functions for array filter tests.
package testutil

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Default tolerances for various test scenarios.
const (
	DefaultTolerance   = 1e-10
	RoundTripTolerance = 1e-9
	ImagTolerance      = 1e-9
)

// AssertNoNaNOrInf verifies that no elements in the slice are NaN or Inf.
func AssertNoNaNOrInf(t *testing.T, s []float64, msgAndArgs ...any) bool {
	t.Helper()
	for i, v := range s {
		if math.IsNaN(v) {
			return assert.Fail(t, "found NaN", "s[%d] is NaN", i)
		}
		if math.IsInf(v, 0) {
			return assert.Fail(t, "found Inf", "s[%d] is Inf", i)
		}
	}
	return true
}

// AssertFiniteComplex verifies that every element has finite real and imaginary parts.
func AssertFiniteComplex(t *testing.T, s []complex128, msgAndArgs ...any) bool {
	t.Helper()
	for i, v := range s {
		if cmplx.IsNaN(v) || cmplx.IsInf(v) {
			return assert.Fail(t, "found non-finite value", "s[%d] = %v", i, v)
		}
	}
	return true
}

// AssertRelativeError verifies that the relative error between actual and expected is within tolerance.
func AssertRelativeError(t *testing.T, expected, actual, tolerance float64, msgAndArgs ...any) bool {
	t.Helper()
	if expected == 0 {
		return assert.InDelta(t, expected, actual, tolerance, msgAndArgs...)
	}
	relError := math.Abs(actual-expected) / math.Abs(expected)
	return assert.LessOrEqual(t, relError, tolerance,
		"relative error %e exceeds tolerance %e (expected=%g, actual=%g)",
		relError, tolerance, expected, actual)
}

// AssertComplexInDelta verifies |expected - actual| <= delta.
func AssertComplexInDelta(t *testing.T, expected, actual complex128, delta float64, msgAndArgs ...any) bool {
	t.Helper()
	diff := cmplx.Abs(expected - actual)
	if diff > delta {
		return assert.Fail(t, "complex values differ",
			"|%v - %v| = %e exceeds %e", expected, actual, diff, delta)
	}
	return true
}

// AssertComplexSliceInDelta verifies two complex slices agree elementwise within delta.
func AssertComplexSliceInDelta(t *testing.T, expected, actual []complex128, delta float64, msgAndArgs ...any) bool {
	t.Helper()
	if !assert.Len(t, actual, len(expected), msgAndArgs...) {
		return false
	}
	for i := range expected {
		if diff := cmplx.Abs(expected[i] - actual[i]); diff > delta {
			return assert.Fail(t, "complex slices differ",
				"index %d: |%v - %v| = %e exceeds %e", i, expected[i], actual[i], diff, delta)
		}
	}
	return true
}

// AssertInRange verifies that a value is within [min, max].
func AssertInRange(t *testing.T, value, minVal, maxVal float64, msgAndArgs ...any) bool {
	t.Helper()
	if value < minVal || value > maxVal {
		return assert.Fail(t, "value out of range",
			"value %f is outside range [%f, %f]", value, minVal, maxVal)
	}
	return true
}

// ArgMaxAbs returns the index of the element with the largest magnitude.
func ArgMaxAbs(s []float64) int {
	best, idx := -1.0, -1
	for i, v := range s {
		if a := math.Abs(v); a > best {
			best, idx = a, i
		}
	}
	return idx
}

// Column extracts column c of a row-major matrix.
func Column[T any](m [][]T, c int) []T {
	col := make([]T, len(m))
	for i := range m {
		col[i] = m[i][c]
	}
	return col
}
