package arraysht

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"

	"github.com/tphakala/go-array-sht/harmonics"
	"github.com/tphakala/go-array-sht/internal/filter"
	"github.com/tphakala/go-array-sht/internal/solver"
	"github.com/tphakala/go-array-sht/internal/spectrum"
	"github.com/tphakala/go-array-sht/modal"
	"github.com/tphakala/simd/c128"
	"github.com/tphakala/simd/f64"
	"gonum.org/v1/gonum/mat"
)

// FilterBank holds one equalization filter per transform order, shared by
// all 2n+1 channels of that order.
type FilterBank struct {
	// Order is the effective order after clamping.
	Order int

	// Freq is the half-spectrum response, [FilterLen/2+1][Order+1].
	Freq [][]complex128

	// Time is the centered real impulse response, [FilterLen][Order+1].
	Time [][]float64

	// ImagResidue is the largest imaginary sample discarded during synthesis.
	ImagResidue float64

	// Warnings holds non-fatal conditions such as [*OrderClampedWarning].
	Warnings []error
}

// DCGain returns the sum of the impulse response of order n.
func (fb *FilterBank) DCGain(n int) float64 {
	col := make([]float64, len(fb.Time))
	for i, row := range fb.Time {
		col[i] = row[n]
	}
	return f64.Sum(col)
}

// MatrixFilterBank holds one filter per (channel, microphone) pair.
type MatrixFilterBank struct {
	// Order is the effective order after clamping; there are (Order+1)² channels.
	Order int

	// ArrayOrder is the auxiliary order floor(2·kR_max) of the array model.
	ArrayOrder int

	// Freq is [channel][mic][FilterLen/2+1].
	Freq [][][]complex128

	// Time is [channel][mic][FilterLen].
	Time [][][]float64

	ImagResidue float64
	Warnings    []error
}

// DesignRadialInversion designs per-order filters by Tikhonov-regularized
// inversion of the rigid-sphere modal coefficients:
//
//	H = conj(b) / (|b|² + β²)
//	α = √nMic · 10^(dB/20),  β² = (1 − √(1 − 1/α²)) / (1 + √(1 − 1/α²))
//
// β is evaluated in complex arithmetic so negative thresholds are accepted.
func DesignRadialInversion(cfg TheoryConfig) (*FilterBank, error) {
	return designTheory(&cfg, radialInversion)
}

// DesignSoftLimit designs per-order filters by soft-limiting the direct
// inverse of the rigid-sphere modal coefficients:
//
//	H = (2α/π) · |b| · (1/b) · atan(π/(2α) · |1/b|),  α = √nMic · 10^(dB/20)
//
// Entries with a vanishing coefficient, such as orders ≥ 1 at DC, are zero.
func DesignSoftLimit(cfg TheoryConfig) (*FilterBank, error) {
	return designTheory(&cfg, softLimit)
}

type orderShaper func(b [][]complex128, alpha complex128) [][]complex128

func designTheory(cfg *TheoryConfig, shape orderShaper) (*FilterBank, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	fb := &FilterBank{}
	order, warn := clampOrder(cfg.Order, cfg.NumMics)
	if warn != nil {
		fb.Warnings = append(fb.Warnings, warn)
	}
	fb.Order = order

	kr := spectrum.KR(spectrum.Frequencies(cfg.FilterLen, cfg.SampleRate), cfg.Radius)
	b, err := rigidCoefficients(order, kr)
	if err != nil {
		return nil, err
	}

	alpha := complex(math.Sqrt(float64(cfg.NumMics))*fromDB(cfg.AmpThresholdDB), 0)
	fb.Freq = shape(b, alpha)

	cols := make([][]float64, order+1)
	synth := spectrum.NewSynthesizer(cfg.FilterLen)
	half := make([]complex128, len(kr))
	for n := range cols {
		for k := range half {
			half[k] = fb.Freq[k][n]
		}
		var residue float64
		cols[n], residue = synth.ImpulseResponse(nil, half)
		fb.ImagResidue = math.Max(fb.ImagResidue, residue)
	}
	if err := filter.Taper(cols, cfg.TaperAttenuationDB); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}

	fb.Time = make([][]float64, cfg.FilterLen)
	for i := range fb.Time {
		row := make([]float64, order+1)
		for n := range row {
			row[n] = cols[n][i]
		}
		fb.Time[i] = row
	}

	return fb, nil
}

func radialInversion(b [][]complex128, alpha complex128) [][]complex128 {
	s := cmplx.Sqrt(1 - 1/(alpha*alpha))
	beta2 := (1 - s) / (1 + s)

	out := make([][]complex128, len(b))
	for k, row := range b {
		h := make([]complex128, len(row))
		for n, v := range row {
			mag := cmplx.Abs(v)
			h[n] = cmplx.Conj(v) / (complex(mag*mag, 0) + beta2)
		}
		out[k] = h
	}
	return out
}

func softLimit(b [][]complex128, alpha complex128) [][]complex128 {
	a := real(alpha)
	gain := 2 * a / math.Pi
	slope := math.Pi / (2 * a)

	out := make([][]complex128, len(b))
	for k, row := range b {
		h := make([]complex128, len(row))
		for n, v := range row {
			if v == 0 {
				continue
			}
			inv := 1 / v
			invMag := cmplx.Abs(inv)
			h[n] = complex(gain*cmplx.Abs(v)*math.Atan(slope*invMag), 0) * inv
		}
		out[k] = h
	}
	return out
}

// DesignRegularizedLS designs a full encoding matrix per frequency bin by
// regularized least squares over the actual capsule directions.
//
// The array is modeled up to the auxiliary order floor(2·kR_max) as
// H = √(4π)·Y·diag(b), and each bin solves
//
//	W = Hₜ^H · (H·H^H + β²·I)⁻¹,  β = 1/(2·10^(dB/20))
//
// where Hₜ keeps the (Order+1)² leading columns of H.
func DesignRegularizedLS(cfg LSConfig) (*MatrixFilterBank, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	numMics := len(cfg.MicDirs)
	fb := &MatrixFilterBank{}
	order, warn := clampOrder(cfg.Order, numMics)
	if warn != nil {
		fb.Warnings = append(fb.Warnings, warn)
	}
	fb.Order = order

	kr := spectrum.KR(spectrum.Frequencies(cfg.FilterLen, cfg.SampleRate), cfg.Radius)
	krMax := kr[len(kr)-1]
	arrayOrder := int(math.Floor(lsOrderFactor * krMax))
	if arrayOrder <= minArrayOrder {
		return nil, fmt.Errorf("%w: array order %d from kR_max %.3g, increase radius or sample rate",
			ErrInsufficientResolution, arrayOrder, krMax)
	}
	fb.ArrayOrder = arrayOrder

	numOut := harmonics.NumChannels(order)
	numCoeffs := harmonics.NumChannels(arrayOrder)
	if numOut > numCoeffs {
		return nil, fmt.Errorf("%w: order %d exceeds array order %d, increase radius or sample rate",
			ErrInsufficientResolution, order, arrayOrder)
	}

	eval := cfg.Harmonics
	if eval == nil {
		eval = harmonics.RealEvaluator{}
	}
	y, err := eval.Evaluate(arrayOrder, cfg.MicDirs)
	if err != nil {
		return nil, fmt.Errorf("%w: evaluate harmonics: %w", ErrInvalidArgument, err)
	}
	if len(y) != numMics {
		return nil, fmt.Errorf("%w: harmonics evaluator returned %d rows for %d microphones",
			ErrInvalidArgument, len(y), numMics)
	}
	yc := make([][]complex128, numMics)
	for m, row := range y {
		if len(row) != numCoeffs {
			return nil, fmt.Errorf("%w: harmonics evaluator returned %d channels, want %d",
				ErrInvalidArgument, len(row), numCoeffs)
		}
		yc[m] = make([]complex128, numCoeffs)
		for c, v := range row {
			yc[m][c] = complex(sqrt4Pi*v, 0)
		}
	}

	b, err := rigidCoefficients(arrayOrder, kr)
	if err != nil {
		return nil, err
	}
	bRep := make([][]complex128, len(b))
	for k, row := range b {
		bRep[k] = harmonics.ReplicatePerOrder(row)
	}

	beta := 1 / (lsBetaDivisor * complex(fromDB(cfg.AmpThresholdDB), 0))
	fill := func(bin int, hr, hi *mat.Dense) {
		row := make([]complex128, numCoeffs)
		for m := range numMics {
			c128.Mul(row, yc[m], bRep[bin])
			for c, v := range row {
				hr.Set(m, c, real(v))
				hi.Set(m, c, imag(v))
			}
		}
	}

	w, err := solver.Solve(solver.Params{
		NumBins:        len(kr),
		NumMics:        numMics,
		NumCoeffs:      numCoeffs,
		NumOutputs:     numOut,
		Beta2:          real(beta * beta),
		EnableParallel: cfg.EnableParallel,
	}, fill)
	if err != nil {
		if errors.Is(err, solver.ErrSingular) {
			return nil, fmt.Errorf("%w: %w", ErrNumericalSingularity, err)
		}
		return nil, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}

	fb.Freq = make([][][]complex128, numOut)
	fb.Time = make([][][]float64, numOut)
	irs := make([][]float64, 0, numOut*numMics)
	synth := spectrum.NewSynthesizer(cfg.FilterLen)
	for c := range numOut {
		fb.Freq[c] = make([][]complex128, numMics)
		fb.Time[c] = make([][]float64, numMics)
		for m := range numMics {
			half := make([]complex128, len(kr))
			for k := range half {
				half[k] = w[k][c][m]
			}
			fb.Freq[c][m] = half

			var residue float64
			fb.Time[c][m], residue = synth.ImpulseResponse(nil, half)
			fb.ImagResidue = math.Max(fb.ImagResidue, residue)
			irs = append(irs, fb.Time[c][m])
		}
	}
	if err := filter.Taper(irs, cfg.TaperAttenuationDB); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}

	return fb, nil
}

// rigidCoefficients returns the rigid-sphere modal coefficients scaled by
// 1/(4π), shape [bin][order+1]. The order-0 value at DC is 1.
func rigidCoefficients(order int, kr []float64) ([][]complex128, error) {
	b, err := modal.Sph(order, kr, modal.Rigid, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}
	for _, row := range b {
		for n := range row {
			row[n] /= fourPi
		}
	}
	return b, nil
}

func fromDB(db float64) float64 {
	return math.Pow(10, db/dbFactor)
}
