package specfunc

import "math"

// BesselJ returns the cylindrical Bessel function of the first kind Jₙ(x)
// for integer order n.
func BesselJ(n int, x []float64) []float64 {
	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = math.Jn(n, v)
	}
	return out
}

// BesselY returns the cylindrical Bessel function of the second kind Yₙ(x).
// Yₙ(0) is −Inf.
func BesselY(n int, x []float64) []float64 {
	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = math.Yn(n, v)
	}
	return out
}

// DBesselJ returns Jₙ'(x) = [Jₙ₋₁(x) − Jₙ₊₁(x)] / 2.
func DBesselJ(n int, x []float64) []float64 {
	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = (math.Jn(n-1, v) - math.Jn(n+1, v)) / 2
	}
	return out
}

// DBesselY returns Yₙ'(x) = [Yₙ₋₁(x) − Yₙ₊₁(x)] / 2.
func DBesselY(n int, x []float64) []float64 {
	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = (math.Yn(n-1, v) - math.Yn(n+1, v)) / 2
	}
	return out
}

// Hankel2 returns the cylindrical Hankel function of the second kind Jₙ − i·Yₙ.
func Hankel2(n int, x []float64) []complex128 {
	return combine(BesselJ(n, x), BesselY(n, x), -1)
}

// DHankel2 returns the first derivative of [Hankel2].
func DHankel2(n int, x []float64) []complex128 {
	return combine(DBesselJ(n, x), DBesselY(n, x), -1)
}
