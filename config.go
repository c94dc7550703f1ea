package arraysht

import (
	"fmt"
	"math"

	"github.com/tphakala/go-array-sht/geometry"
	"github.com/tphakala/go-array-sht/harmonics"
	"github.com/tphakala/go-array-sht/modal"
)

// Direction is a microphone or plane-wave direction in radians.
type Direction = geometry.Direction

// Boundary selects the scattering model of the array surface.
type Boundary = modal.Boundary

// Boundary conditions.
const (
	Open        = modal.Open
	Rigid       = modal.Rigid
	Directional = modal.Directional
)

// TheoryConfig configures the per-order designs, [DesignRadialInversion] and
// [DesignSoftLimit].
type TheoryConfig struct {
	// Radius of the rigid sphere in meters.
	Radius float64

	// NumMics is the capsule count; it bounds the usable order.
	NumMics int

	// Order is the requested transform order (≥ 1).
	Order int

	// FilterLen is the FFT length of the output filters. Must be even.
	FilterLen int

	// SampleRate in Hz.
	SampleRate float64

	// AmpThresholdDB is the maximum allowed filter amplification in dB.
	// Negative values are accepted.
	AmpThresholdDB float64

	// TaperAttenuationDB applies a centered Kaiser window to the impulse
	// responses when positive. Zero disables tapering.
	TaperAttenuationDB float64
}

// Validate checks if the configuration is valid.
func (c *TheoryConfig) Validate() error {
	if err := validateCommon(c.Radius, c.Order, c.FilterLen, c.SampleRate, c.AmpThresholdDB, c.TaperAttenuationDB); err != nil {
		return err
	}
	if c.NumMics < minNumMics {
		return fmt.Errorf("%w: microphone count must be positive, got %d", ErrInvalidArgument, c.NumMics)
	}
	return nil
}

// LSConfig configures [DesignRegularizedLS].
type LSConfig struct {
	Radius float64

	// MicDirs are the capsule directions; their count is the microphone count.
	MicDirs []Direction

	Order              int
	FilterLen          int
	SampleRate         float64
	AmpThresholdDB     float64
	TaperAttenuationDB float64

	// Harmonics evaluates the real orthonormal basis at the capsules.
	// Defaults to [harmonics.RealEvaluator].
	Harmonics harmonics.Evaluator

	// EnableParallel solves frequency bins concurrently.
	EnableParallel bool
}

// Validate checks if the configuration is valid.
func (c *LSConfig) Validate() error {
	if err := validateCommon(c.Radius, c.Order, c.FilterLen, c.SampleRate, c.AmpThresholdDB, c.TaperAttenuationDB); err != nil {
		return err
	}
	if err := geometry.Validate(c.MicDirs); err != nil {
		return fmt.Errorf("%w: microphone directions: %w", ErrInvalidArgument, err)
	}
	return nil
}

// SimConfig configures [SimulateSphArray] and [SimulateCylArray].
type SimConfig struct {
	MicDirs []Direction

	// SrcDirs are the directions of arrival of the incident plane waves.
	SrcDirs []Direction

	Radius float64

	// MaxOrder truncates the plane-wave expansion.
	MaxOrder int

	FilterLen  int
	SampleRate float64
	Boundary   Boundary

	// DirCoef is the capsule directivity for [Directional] spheres:
	// 1 omnidirectional, 0.5 cardioid, 0 figure-of-eight.
	DirCoef float64
}

// Validate checks if the configuration is valid.
func (c *SimConfig) Validate() error {
	if err := validateGrid(c.Radius, c.FilterLen, c.SampleRate); err != nil {
		return err
	}
	if c.MaxOrder < 0 {
		return fmt.Errorf("%w: maximum order must be non-negative, got %d", ErrInvalidArgument, c.MaxOrder)
	}
	if err := geometry.Validate(c.MicDirs); err != nil {
		return fmt.Errorf("%w: microphone directions: %w", ErrInvalidArgument, err)
	}
	if err := geometry.Validate(c.SrcDirs); err != nil {
		return fmt.Errorf("%w: source directions: %w", ErrInvalidArgument, err)
	}
	return nil
}

func validateGrid(radius float64, filterLen int, sampleRate float64) error {
	if !(radius > 0) || math.IsInf(radius, 0) {
		return fmt.Errorf("%w: radius must be positive and finite, got %v", ErrInvalidArgument, radius)
	}
	if filterLen < minFilterLen || filterLen%2 != 0 {
		return fmt.Errorf("%w: filter length must be even and at least %d, got %d", ErrInvalidArgument, minFilterLen, filterLen)
	}
	if !(sampleRate >= 1) || math.IsInf(sampleRate, 0) {
		return fmt.Errorf("%w: sample rate must be positive and finite, got %v", ErrInvalidArgument, sampleRate)
	}
	return nil
}

func validateCommon(radius float64, order, filterLen int, sampleRate, ampDB, taperDB float64) error {
	if err := validateGrid(radius, filterLen, sampleRate); err != nil {
		return err
	}
	if order < minOrder {
		return fmt.Errorf("%w: order must be at least %d, got %d", ErrInvalidArgument, minOrder, order)
	}
	if math.IsNaN(ampDB) || math.IsInf(ampDB, 0) {
		return fmt.Errorf("%w: amplification threshold must be finite, got %v", ErrInvalidArgument, ampDB)
	}
	if math.IsNaN(taperDB) || math.IsInf(taperDB, 0) || taperDB < 0 {
		return fmt.Errorf("%w: taper attenuation must be finite and non-negative, got %v", ErrInvalidArgument, taperDB)
	}
	return nil
}

// clampOrder limits order to floor(√nMic − 1), returning a warning when it
// had to reduce it.
func clampOrder(order, numMics int) (int, *OrderClampedWarning) {
	maxOrder := int(math.Floor(math.Sqrt(float64(numMics)) - 1))
	if order <= maxOrder {
		return order, nil
	}
	return maxOrder, &OrderClampedWarning{Requested: order, Clamped: maxOrder, NumMics: numMics}
}
