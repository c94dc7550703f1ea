// Package spectrum builds the frequency grid shared by the filter designers and
// turns half-spectrum frequency responses into real, centered impulse responses.
package spectrum

import (
	"math"

	"github.com/tphakala/simd/f64"
	"gonum.org/v1/gonum/dsp/fourier"
)

// SpeedOfSound is the propagation speed used for kR, in m/s.
const SpeedOfSound = 343.0

// hermitianDivisor gives the number of unique bins of a real spectrum: N/2 + 1.
const hermitianDivisor = 2

// NumBins returns the number of non-negative frequency bins for an even FFT length.
func NumBins(filterLen int) int {
	return filterLen/hermitianDivisor + 1
}

// Frequencies returns filterLen/2+1 uniformly spaced frequencies from 0 Hz to
// the Nyquist frequency.
func Frequencies(filterLen int, sampleRate float64) []float64 {
	f := make([]float64, NumBins(filterLen))
	for k := range f {
		f[k] = float64(k) * sampleRate / float64(filterLen)
	}
	return f
}

// KR returns the wavenumber-radius product 2πfR/c for each frequency.
func KR(freqs []float64, radius float64) []float64 {
	kr := make([]float64, len(freqs))
	for k, f := range freqs {
		kr[k] = 2 * math.Pi * f * radius / SpeedOfSound
	}
	return kr
}

// Synthesizer converts half spectra of a fixed even length into real
// impulse responses and back. It keeps working buffers and is not safe for
// concurrent use.
type Synthesizer struct {
	n     int
	cfft  *fourier.CmplxFFT
	rfft  *fourier.FFT
	scale float64 // 1/n, gonum does not normalize the inverse transform

	full   []complex128
	seq    []complex128
	re     []float64
	im     []float64
	shift  []float64
	coeffs []complex128
}

// NewSynthesizer creates a synthesizer for an even filter length.
func NewSynthesizer(filterLen int) *Synthesizer {
	return &Synthesizer{
		n:      filterLen,
		cfft:   fourier.NewCmplxFFT(filterLen),
		rfft:   fourier.NewFFT(filterLen),
		scale:  1.0 / float64(filterLen),
		full:   make([]complex128, filterLen),
		seq:    make([]complex128, filterLen),
		re:     make([]float64, filterLen),
		im:     make([]float64, filterLen),
		shift:  make([]float64, filterLen),
		coeffs: make([]complex128, NumBins(filterLen)),
	}
}

// Len returns the impulse response length.
func (s *Synthesizer) Len() int {
	return s.n
}

// ImpulseResponse writes the real impulse response of half into dst and
// returns it together with the largest imaginary residue of the inverse
// transform.
//
// The Nyquist bin is forced real, the negative frequencies are filled with the
// reverse conjugate of bins 1..n/2−1, the inverse DFT is taken and its real
// part is shifted by n/2 so the zero-time sample lands at the buffer centre.
// len(half) must be n/2+1. dst is allocated when nil.
func (s *Synthesizer) ImpulseResponse(dst []float64, half []complex128) ([]float64, float64) {
	if dst == nil {
		dst = make([]float64, s.n)
	}
	nh := s.n / hermitianDivisor

	copy(s.full, half[:nh])
	s.full[nh] = complex(real(half[nh]), 0)
	for k := 1; k < nh; k++ {
		s.full[s.n-k] = complex(real(half[k]), -imag(half[k]))
	}

	s.seq = s.cfft.Sequence(s.seq, s.full)

	var residue float64
	for i, v := range s.seq {
		s.re[i] = real(v)
		s.im[i] = imag(v)
	}
	f64.Scale(s.re, s.re, s.scale)
	f64.Scale(s.im, s.im, s.scale)
	for _, v := range s.im {
		residue = math.Max(residue, math.Abs(v))
	}

	copy(dst[nh:], s.re[:nh])
	copy(dst[:nh], s.re[nh:])
	return dst, residue
}

// HalfSpectrum undoes the centering shift of h and returns its forward
// transform, n/2+1 bins. It inverts [Synthesizer.ImpulseResponse] up to the
// imaginary part of the Nyquist bin, which synthesis discards.
func (s *Synthesizer) HalfSpectrum(dst []complex128, h []float64) []complex128 {
	nh := s.n / hermitianDivisor
	copy(s.shift[:nh], h[nh:])
	copy(s.shift[nh:], h[:nh])
	s.coeffs = s.rfft.Coefficients(s.coeffs, s.shift)
	if dst == nil {
		dst = make([]complex128, len(s.coeffs))
	}
	copy(dst, s.coeffs)
	return dst
}
