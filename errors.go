package arraysht

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument indicates a malformed design or simulation input.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInsufficientResolution indicates the array cannot resolve the
	// harmonic order needed by the least-squares design. Increase the
	// radius or the sample rate.
	ErrInsufficientResolution = errors.New("insufficient array resolution")

	// ErrNumericalSingularity indicates a per-bin system that could not be
	// inverted.
	ErrNumericalSingularity = errors.New("numerically singular system")

	// ErrOrderClamped marks the non-fatal reduction of a requested order to
	// what the microphone count supports.
	ErrOrderClamped = errors.New("order clamped")
)

// OrderClampedWarning reports that the requested transform order exceeded
// floor(√nMic − 1) and was reduced. It is returned in the Warnings of a
// design result, never as an error.
type OrderClampedWarning struct {
	Requested int
	Clamped   int
	NumMics   int
}

func (w *OrderClampedWarning) Error() string {
	return fmt.Sprintf("order %d too high for %d microphones (N ≤ √Q − 1), using %d",
		w.Requested, w.NumMics, w.Clamped)
}

// Unwrap lets errors.Is match [ErrOrderClamped].
func (w *OrderClampedWarning) Unwrap() error {
	return ErrOrderClamped
}
