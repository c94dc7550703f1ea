// Package filter provides time-domain windows applied to designed impulse
// responses.
package filter

import (
	"fmt"
	"math"

	"github.com/tphakala/go-array-sht/internal/mathutil"
)

const (
	// Window normalization
	windowNormalizationFactor = 2.0

	// Length-1 window value
	singleTapValue = 1.0
)

// KaiserWindow generates a symmetric Kaiser window of the specified length
// and β parameter:
//
//	w[n] = I₀(β·√(1 − ((n − α)/α)²)) / I₀(β),  α = (length−1)/2
//
// The peak value is 1 and w[i] = w[length-1-i].
func KaiserWindow(length int, beta float64) []float64 {
	if length < 1 {
		return []float64{}
	}

	window := make([]float64, length)

	if length == 1 {
		window[0] = singleTapValue
		return window
	}

	alpha := float64(length-1) / windowNormalizationFactor
	i0Beta := mathutil.BesselI0(beta)

	for n := range length {
		x := (float64(n) - alpha) / alpha
		arg := beta * math.Sqrt(math.Max(0, 1.0-x*x))
		window[n] = mathutil.BesselI0(arg) / i0Beta
	}

	return window
}

// CenteredKaiserWindow returns a Kaiser window of even length whose peak sits
// at sample length/2, the zero-time sample of a centered impulse response.
// It is the first length samples of a symmetric window of length+1.
func CenteredKaiserWindow(length int, beta float64) []float64 {
	return KaiserWindow(length+1, beta)[:length]
}

// Taper multiplies every impulse response in irs by the same centered Kaiser
// window derived from attenuationDB. All responses must share one even length.
// attenuationDB ≤ 0 leaves irs untouched.
func Taper(irs [][]float64, attenuationDB float64) error {
	if attenuationDB <= 0 || len(irs) == 0 {
		return nil
	}
	n := len(irs[0])
	if n < 2 || n%2 != 0 {
		return fmt.Errorf("taper length must be even and at least 2, got %d", n)
	}

	window := CenteredKaiserWindow(n, mathutil.KaiserBeta(attenuationDB))
	for i, h := range irs {
		if len(h) != n {
			return fmt.Errorf("impulse response %d has length %d, want %d", i, len(h), n)
		}
		for k, w := range window {
			h[k] *= w
		}
	}
	return nil
}
