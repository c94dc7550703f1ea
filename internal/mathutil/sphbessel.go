package mathutil

import "math"

// SphBesselJ computes the spherical Bessel function of the first kind jₙ(x).
//
// jₙ(x) = √(π/2x) · J_{n+½}(x). The half-integer cylindrical function is not
// evaluated directly; the equivalent elementary closed forms are generated by
// recurrence instead:
//   - |x| > n: upward recurrence from j₀ = sin x/x and j₁ = sin x/x² − cos x/x
//   - |x| ≤ n: Miller's downward recurrence normalized against j₀ or j₁
//
// At x = 0 the relation is singular and the limit is returned: 1 for n = 0,
// 0 otherwise. Negative orders are outside the domain and yield NaN.
func SphBesselJ(n int, x float64) float64 {
	if n < 0 {
		return math.NaN()
	}
	if x == 0 {
		if n == 0 {
			return 1
		}
		return 0
	}

	ax := math.Abs(x)
	var j float64
	switch {
	case n == 0:
		j = math.Sin(ax) / ax
	case ax > float64(n):
		j = sphBesselJUpward(n, ax)
	default:
		j = sphBesselJMiller(n, ax)
	}

	if x < 0 && n%2 == 1 {
		return -j
	}
	return j
}

func sphBesselJUpward(n int, x float64) float64 {
	s, c := math.Sincos(x)
	jm1 := s / x
	j := s/(x*x) - c/x
	for k := 1; k < n; k++ {
		jm1, j = j, float64(2*k+1)/x*j-jm1
	}
	return j
}

func sphBesselJMiller(n int, x float64) float64 {
	start := n + int(math.Sqrt(millerAccuracy*float64(n))) + millerPadding

	// fk holds f_k, fk1 holds f_{k+1} of an unnormalized solution.
	fk1, fk := 0.0, 1.0
	result := 0.0
	for k := start; k > 0; k-- {
		fk1, fk = fk, float64(2*k+1)/x*fk-fk1
		if math.Abs(fk) > millerRescaleThreshold {
			fk *= millerRescaleFactor
			fk1 *= millerRescaleFactor
			result *= millerRescaleFactor
		}
		if k-1 == n {
			result = fk
		}
	}

	// fk = f₀, fk1 = f₁. Normalize against whichever closed form is larger
	// to stay clear of the zeros of j₀ and j₁.
	s, c := math.Sincos(x)
	j0 := s / x
	j1 := s/(x*x) - c/x
	if math.Abs(j0) >= math.Abs(j1) {
		return result * j0 / fk
	}
	return result * j1 / fk1
}

// SphBesselY computes the spherical Bessel function of the second kind yₙ(x)
// by upward recurrence from y₀ = −cos x/x and y₁ = −cos x/x² − sin x/x.
//
// yₙ is singular at x = 0. No limit is substituted there: the division by zero
// is carried through and the result is −Inf or NaN.
func SphBesselY(n int, x float64) float64 {
	if n < 0 {
		return math.NaN()
	}
	s, c := math.Sincos(x)
	ym1 := -c / x
	if n == 0 {
		return ym1
	}
	y := -c/(x*x) - s/x
	for k := 1; k < n; k++ {
		ym1, y = y, float64(2*k+1)/x*y-ym1
	}
	return y
}

// SphRecurrenceDerivative combines neighbouring orders into the first
// derivative fₙ' = [n·fₙ₋₁ − (n+1)·fₙ₊₁] / (2n+1), valid for any spherical
// Bessel or Hankel family. For n = 0 it reduces to −f₁ and prev is ignored.
func SphRecurrenceDerivative(n int, prev, next float64) float64 {
	if n == 0 {
		return -next
	}
	return (float64(n)*prev - float64(n+1)*next) / float64(2*n+1)
}
