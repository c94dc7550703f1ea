// Package modal computes the modal coefficients bₙ(kR) describing how an open
// or rigid sphere (or cylinder) responds to an incident plane wave, per order
// and frequency.
//
// Results are laid out as [frequency][order]. The degenerate kR = 0 bin is
// never evaluated through the general formula: its limiting values are
// substituted explicitly.
package modal

import (
	"errors"
	"fmt"
	"math"

	"github.com/tphakala/go-array-sht/specfunc"
)

// Boundary selects the boundary condition of the array body.
type Boundary int

const (
	// Open is an acoustically transparent array of omnidirectional capsules.
	Open Boundary = iota

	// Rigid is an array of omnidirectional capsules mounted on a rigid baffle.
	Rigid

	// Directional is an open array of first-order capsules pointing outwards,
	// with pattern a + (1−a)·cos θ. Only defined for spherical arrays.
	Directional
)

// String returns the boundary name.
func (b Boundary) String() string {
	switch b {
	case Open:
		return "open"
	case Rigid:
		return "rigid"
	case Directional:
		return "directional"
	default:
		return fmt.Sprintf("Boundary(%d)", int(b))
	}
}

// ParseBoundary converts a boundary name to a Boundary.
func ParseBoundary(s string) (Boundary, error) {
	switch s {
	case "open":
		return Open, nil
	case "rigid":
		return Rigid, nil
	case "directional":
		return Directional, nil
	}
	return 0, fmt.Errorf("%w: unknown boundary %q", ErrInvalidArgument, s)
}

// ErrInvalidArgument is returned for malformed orders, arguments or boundaries.
var ErrInvalidArgument = errors.New("invalid argument")

const fourPi = 4 * math.Pi

// Sph returns the spherical modal coefficients for orders 0..maxOrder.
//
//	open:        4π iⁿ jₙ(kR)
//	rigid:       4π iⁿ [jₙ(kR) − jₙ'(kR)/hₙ⁽²⁾'(kR) · hₙ⁽²⁾(kR)]
//	directional: 4π iⁿ [a·jₙ(kR) − i(1−a)·jₙ'(kR)]
//
// dirCoef (a) is only used by [Directional] and must lie in [0, 1].
func Sph(maxOrder int, kr []float64, b Boundary, dirCoef float64) ([][]complex128, error) {
	if err := validate(maxOrder, kr); err != nil {
		return nil, err
	}
	if b == Directional && (math.IsNaN(dirCoef) || dirCoef < 0 || dirCoef > 1) {
		return nil, fmt.Errorf("%w: directivity coefficient %v outside [0, 1]", ErrInvalidArgument, dirCoef)
	}

	out := newTable(len(kr), maxOrder)
	for n := 0; n <= maxOrder; n++ {
		in := iPow(n)
		var col []complex128

		switch b {
		case Open:
			col = toComplex(specfunc.SphBesselJ(n, kr))
		case Rigid:
			j := specfunc.SphBesselJ(n, kr)
			dj := specfunc.DSphBesselJ(n, kr)
			h := specfunc.SphHankel2(n, kr)
			dh := specfunc.DSphHankel2(n, kr)
			col = make([]complex128, len(kr))
			for i := range kr {
				col[i] = complex(j[i], 0) - complex(dj[i], 0)/dh[i]*h[i]
			}
		case Directional:
			j := specfunc.SphBesselJ(n, kr)
			dj := specfunc.DSphBesselJ(n, kr)
			col = make([]complex128, len(kr))
			for i := range kr {
				col[i] = complex(dirCoef*j[i], -(1-dirCoef)*dj[i])
			}
		default:
			return nil, fmt.Errorf("%w: unsupported boundary %v", ErrInvalidArgument, b)
		}

		limit := sphZeroLimit(n, b, dirCoef)
		for i, x := range kr {
			if x == 0 {
				out[i][n] = limit
				continue
			}
			out[i][n] = fourPi * in * col[i]
		}
	}
	return out, nil
}

// sphZeroLimit is the kR → 0 limit of the spherical coefficient of order n.
func sphZeroLimit(n int, b Boundary, dirCoef float64) complex128 {
	switch {
	case n == 0 && b == Directional:
		return complex(fourPi*dirCoef, 0)
	case n == 0:
		return fourPi
	case n == 1 && b == Directional:
		// 4π · i · (−i(1−a)) · j₁'(0), with j₁'(0) = 1/3
		return complex(fourPi*(1-dirCoef)/3, 0)
	default:
		return 0
	}
}

// Cyl returns the cylindrical modal coefficients for orders 0..maxOrder.
//
//	open:  iⁿ Jₙ(kR)
//	rigid: iⁿ [Jₙ(kR) − Jₙ'(kR)/Hₙ⁽²⁾'(kR) · Hₙ⁽²⁾(kR)]
func Cyl(maxOrder int, kr []float64, b Boundary) ([][]complex128, error) {
	if err := validate(maxOrder, kr); err != nil {
		return nil, err
	}

	out := newTable(len(kr), maxOrder)
	for n := 0; n <= maxOrder; n++ {
		in := iPow(n)
		j := specfunc.BesselJ(n, kr)
		var col []complex128

		switch b {
		case Open:
			col = toComplex(j)
		case Rigid:
			dj := specfunc.DBesselJ(n, kr)
			h := specfunc.Hankel2(n, kr)
			dh := specfunc.DHankel2(n, kr)
			col = make([]complex128, len(kr))
			for i := range kr {
				col[i] = complex(j[i], 0) - complex(dj[i], 0)/dh[i]*h[i]
			}
		default:
			return nil, fmt.Errorf("%w: unsupported boundary %v for cylindrical arrays", ErrInvalidArgument, b)
		}

		for i, x := range kr {
			switch {
			case x != 0:
				out[i][n] = in * col[i]
			case n == 0:
				out[i][n] = 1
			}
		}
	}
	return out, nil
}

func validate(maxOrder int, kr []float64) error {
	if maxOrder < 0 {
		return fmt.Errorf("%w: order must be non-negative, got %d", ErrInvalidArgument, maxOrder)
	}
	for i, x := range kr {
		if math.IsNaN(x) || math.IsInf(x, 0) || x < 0 {
			return fmt.Errorf("%w: kR[%d] = %v must be finite and non-negative", ErrInvalidArgument, i, x)
		}
	}
	return nil
}

// iPow returns iⁿ exactly.
func iPow(n int) complex128 {
	switch n % 4 {
	case 0:
		return 1
	case 1:
		return 1i
	case 2:
		return -1
	default:
		return -1i
	}
}

func newTable(numFreq, maxOrder int) [][]complex128 {
	backing := make([]complex128, numFreq*(maxOrder+1))
	out := make([][]complex128, numFreq)
	for i := range out {
		out[i] = backing[i*(maxOrder+1) : (i+1)*(maxOrder+1)]
	}
	return out
}

func toComplex(v []float64) []complex128 {
	out := make([]complex128, len(v))
	for i, x := range v {
		out[i] = complex(x, 0)
	}
	return out
}
