// Package harmonics evaluates orthonormal spherical harmonic bases at a set of
// directions.
//
// Channels follow ACN ordering (index n² + n + m) and the orthonormal (N3D / 4π)
// normalization, without the Condon-Shortley phase:
//
//	real:    Yₙᵐ = Nₙ|ᵐ| Pₙ|ᵐ|(cos θ) · {√2 cos(mφ) for m > 0, 1 for m = 0, √2 sin(|m|φ) for m < 0}
//	complex: Yₙᵐ = Nₙ|ᵐ| Pₙ|ᵐ|(cos θ) · e^{imφ}
//
// where θ is the inclination and φ the azimuth.
package harmonics

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/tphakala/go-array-sht/geometry"
)

// Basis selects the real or complex harmonic basis.
type Basis int

const (
	Real Basis = iota
	Complex
)

// Evaluator evaluates a real spherical harmonic basis at a set of directions,
// returning a [len(dirs)][(order+1)²] matrix.
type Evaluator interface {
	Evaluate(order int, dirs []geometry.Direction) ([][]float64, error)
}

// RealEvaluator evaluates the real orthonormal basis of this package.
type RealEvaluator struct{}

// Evaluate implements [Evaluator].
func (RealEvaluator) Evaluate(order int, dirs []geometry.Direction) ([][]float64, error) {
	return EvaluateReal(order, dirs)
}

// NumChannels returns the number of harmonics up to and including order.
func NumChannels(order int) int {
	return (order + 1) * (order + 1)
}

// ACN returns the channel index of degree m within order n.
func ACN(n, m int) int {
	return n*n + n + m
}

// EvaluateReal returns the real basis at dirs, shape [len(dirs)][(order+1)²].
func EvaluateReal(order int, dirs []geometry.Direction) ([][]float64, error) {
	if err := validate(order, dirs); err != nil {
		return nil, err
	}
	out := make([][]float64, len(dirs))
	for i, d := range dirs {
		row := make([]float64, NumChannels(order))
		q := normalizedLegendre(order, math.Cos(d.Inclination()))
		for n := 0; n <= order; n++ {
			row[ACN(n, 0)] = q[n][0]
			for m := 1; m <= n; m++ {
				s, c := math.Sincos(float64(m) * d.Azimuth)
				row[ACN(n, m)] = math.Sqrt2 * q[n][m] * c
				row[ACN(n, -m)] = math.Sqrt2 * q[n][m] * s
			}
		}
		out[i] = row
	}
	return out, nil
}

// EvaluateComplex returns the complex basis at dirs, shape [len(dirs)][(order+1)²].
func EvaluateComplex(order int, dirs []geometry.Direction) ([][]complex128, error) {
	if err := validate(order, dirs); err != nil {
		return nil, err
	}
	out := make([][]complex128, len(dirs))
	for i, d := range dirs {
		row := make([]complex128, NumChannels(order))
		q := normalizedLegendre(order, math.Cos(d.Inclination()))
		for n := 0; n <= order; n++ {
			for m := -n; m <= n; m++ {
				am := m
				if am < 0 {
					am = -am
				}
				row[ACN(n, m)] = complex(q[n][am], 0) * cmplx.Rect(1, float64(m)*d.Azimuth)
			}
		}
		out[i] = row
	}
	return out, nil
}

// LegendreP returns the Legendre polynomials P₀(x)..P_maxOrder(x) using
// Bonnet's recursion.
func LegendreP(maxOrder int, x float64) []float64 {
	if maxOrder < 0 {
		return nil
	}
	p := make([]float64, maxOrder+1)
	p[0] = 1
	if maxOrder == 0 {
		return p
	}
	p[1] = x
	for n := 2; n <= maxOrder; n++ {
		p[n] = (float64(2*n-1)*x*p[n-1] - float64(n-1)*p[n-2]) / float64(n)
	}
	return p
}

// ReplicatePerOrder repeats the value of each order n across its 2n+1 degrees,
// turning a per-order vector of length N+1 into a per-channel vector of
// length (N+1)².
func ReplicatePerOrder(perOrder []complex128) []complex128 {
	out := make([]complex128, 0, NumChannels(len(perOrder)-1))
	for n, v := range perOrder {
		for range 2*n + 1 {
			out = append(out, v)
		}
	}
	return out
}

// normalizedLegendre returns q[n][m] = Nₙᵐ Pₙᵐ(x) for 0 ≤ m ≤ n ≤ order,
// where Nₙᵐ = √((2n+1)/4π · (n−m)!/(n+m)!). The recurrences work on the
// normalized values directly so high orders neither overflow nor underflow
// prematurely.
func normalizedLegendre(order int, x float64) [][]float64 {
	q := make([][]float64, order+1)
	for n := range q {
		q[n] = make([]float64, n+1)
	}
	sinTheta := math.Sqrt(math.Max(0, 1-x*x))

	q[0][0] = 1 / math.Sqrt(4*math.Pi)
	for m := 1; m <= order; m++ {
		q[m][m] = q[m-1][m-1] * math.Sqrt(float64(2*m+1)/float64(2*m)) * sinTheta
	}
	for m := 0; m < order; m++ {
		q[m+1][m] = x * math.Sqrt(float64(2*m+3)) * q[m][m]
	}
	for m := 0; m <= order; m++ {
		for n := m + 2; n <= order; n++ {
			nf, mf := float64(n), float64(m)
			a := math.Sqrt((4*nf*nf - 1) / (nf*nf - mf*mf))
			b := math.Sqrt(((nf-1)*(nf-1) - mf*mf) / (4*(nf-1)*(nf-1) - 1))
			q[n][m] = a * (x*q[n-1][m] - b*q[n-2][m])
		}
	}
	return q
}

func validate(order int, dirs []geometry.Direction) error {
	if order < 0 {
		return fmt.Errorf("harmonic order must be non-negative, got %d", order)
	}
	return geometry.Validate(dirs)
}
