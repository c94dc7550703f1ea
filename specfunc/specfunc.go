// Package specfunc evaluates the spherical and cylindrical Bessel-family
// functions used by spherical scattering theory.
//
// All functions are elementwise: they take an order and a slice of real
// arguments and return a freshly allocated slice of the same length.
//
// The spherical Bessel function of the first kind has an explicit limit at
// x = 0 (1 for order zero, 0 otherwise). The second-kind function, and every
// function built on it (Hankel functions and their derivatives), is undefined
// at exactly x = 0; the division by zero is carried through as Inf or NaN
// rather than replaced by a value.
package specfunc

import (
	"github.com/tphakala/go-array-sht/internal/mathutil"
)

// SphBesselJ returns the spherical Bessel function of the first kind jₙ(x).
func SphBesselJ(n int, x []float64) []float64 {
	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = mathutil.SphBesselJ(n, v)
	}
	return out
}

// SphBesselY returns the spherical Bessel function of the second kind yₙ(x).
func SphBesselY(n int, x []float64) []float64 {
	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = mathutil.SphBesselY(n, v)
	}
	return out
}

// SphHankel1 returns the spherical Hankel function of the first kind jₙ + i·yₙ.
func SphHankel1(n int, x []float64) []complex128 {
	return combine(SphBesselJ(n, x), SphBesselY(n, x), 1)
}

// SphHankel2 returns the spherical Hankel function of the second kind jₙ − i·yₙ.
func SphHankel2(n int, x []float64) []complex128 {
	return combine(SphBesselJ(n, x), SphBesselY(n, x), -1)
}

// DSphBesselJ returns the first derivative jₙ'(x) from the recurrence
// jₙ' = [n·jₙ₋₁ − (n+1)·jₙ₊₁] / (2n+1).
func DSphBesselJ(n int, x []float64) []float64 {
	return derivative(n, x, mathutil.SphBesselJ)
}

// DSphBesselY returns the first derivative yₙ'(x) using the same recurrence as [DSphBesselJ].
func DSphBesselY(n int, x []float64) []float64 {
	return derivative(n, x, mathutil.SphBesselY)
}

// DSphHankel1 returns the first derivative of the spherical Hankel function of the first kind.
func DSphHankel1(n int, x []float64) []complex128 {
	return combine(DSphBesselJ(n, x), DSphBesselY(n, x), 1)
}

// DSphHankel2 returns the first derivative of the spherical Hankel function of the second kind.
func DSphHankel2(n int, x []float64) []complex128 {
	return combine(DSphBesselJ(n, x), DSphBesselY(n, x), -1)
}

func derivative(n int, x []float64, f func(int, float64) float64) []float64 {
	out := make([]float64, len(x))
	for i, v := range x {
		if n < 0 {
			out[i] = f(n, v) // NaN
			continue
		}
		var prev float64
		if n > 0 {
			prev = f(n-1, v)
		}
		out[i] = mathutil.SphRecurrenceDerivative(n, prev, f(n+1, v))
	}
	return out
}

func combine(re, im []float64, sign float64) []complex128 {
	out := make([]complex128, len(re))
	for i := range re {
		out[i] = complex(re[i], sign*im[i])
	}
	return out
}
