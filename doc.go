// Package arraysht designs spherical harmonic transform (SHT) filters for
// spherical microphone arrays and simulates array responses to plane waves.
//
// The filters convert raw capsule signals into spherical harmonic (ambisonic)
// signals by equalizing the frequency-dependent modal response of a rigid
// sphere. All designs share a frequency grid of FilterLen/2+1 bins from DC to
// Nyquist and return both the half-spectrum response and a real impulse
// response of FilterLen samples whose zero-time sample sits at FilterLen/2.
//
// # Quick Start
//
// Per-order filters from the array geometry alone:
//
//	fb, err := arraysht.DesignRadialInversion(arraysht.TheoryConfig{
//	    Radius:         0.042,
//	    NumMics:        32,
//	    Order:          4,
//	    FilterLen:      256,
//	    SampleRate:     48000,
//	    AmpThresholdDB: 10,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, w := range fb.Warnings {
//	    log.Printf("warning: %v", w)
//	}
//
// A full encoding matrix from the capsule directions:
//
//	fb, err := arraysht.DesignRegularizedLS(arraysht.LSConfig{
//	    Radius:         0.042,
//	    MicDirs:        geometry.Eigenmike32(),
//	    Order:          4,
//	    FilterLen:      256,
//	    SampleRate:     48000,
//	    AmpThresholdDB: 15,
//	    EnableParallel: true,
//	})
//
// # Design Methods
//
//   - [DesignRadialInversion]: Tikhonov-regularized inversion of the modal
//     coefficient, one filter per order.
//   - [DesignSoftLimit]: the direct inverse passed through an arctangent
//     limiter that saturates at the amplification bound, one filter per order.
//   - [DesignRegularizedLS]: a regularized least-squares encoder solved per
//     frequency bin over the actual capsule directions, one filter per
//     (channel, microphone) pair.
//
// # Order Clamping
//
// A requested order above floor(√nMic − 1) is reduced to that bound. This is
// not an error: the result carries an [*OrderClampedWarning] in its Warnings,
// which matches [ErrOrderClamped] with errors.Is.
//
// # Errors
//
// Invalid inputs fail with [ErrInvalidArgument]. The least-squares design
// fails with [ErrInsufficientResolution] when floor(2·kR_max) ≤ 1 and with
// [ErrNumericalSingularity] when a bin's system cannot be factorized.
//
// # Simulation
//
// [SimulateSphArray] and [SimulateCylArray] compute the pressure at each
// microphone for each incident plane wave from the open, rigid or
// directional modal coefficients of package modal.
//
// # Thread Safety
//
// Every design and simulation call is a pure function of its configuration
// and may run concurrently with other calls. [LSConfig.EnableParallel]
// spreads the per-bin solves of one call across GOMAXPROCS workers.
//
// # Conventions
//
// Directions are (azimuth, elevation) in radians. Harmonic channels use ACN
// ordering with orthonormal (N3D) real spherical harmonics. The speed of
// sound is 343 m/s.
package arraysht
