package arraysht

import (
	"fmt"
	"math"

	"github.com/tphakala/go-array-sht/geometry"
	"github.com/tphakala/go-array-sht/harmonics"
	"github.com/tphakala/go-array-sht/internal/spectrum"
	"github.com/tphakala/go-array-sht/modal"
)

// ArrayResponse is the simulated pressure at every microphone for every
// incident plane wave.
type ArrayResponse struct {
	// Freq is [mic][src][FilterLen/2+1].
	Freq [][][]complex128

	// Time is the centered impulse response, [mic][src][FilterLen].
	Time [][][]float64

	ImagResidue float64
}

// SimulateSphArray simulates microphones on a sphere by the truncated
// plane-wave expansion
//
//	H = Σₙ bₙ(kR) · (2n+1)/(4π) · Pₙ(cos γ)
//
// where γ is the angle between microphone and source. MaxOrder may not exceed
// floor(√max(nMic, nSrc) − 1).
func SimulateSphArray(cfg SimConfig) (*ArrayResponse, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	count := max(len(cfg.MicDirs), len(cfg.SrcDirs))
	maxOrder := int(math.Floor(math.Sqrt(float64(count)) - 1))
	if cfg.MaxOrder > maxOrder {
		return nil, fmt.Errorf("%w: order %d cannot be resolved by %d directions on a sphere (max %d)",
			ErrInvalidArgument, cfg.MaxOrder, count, maxOrder)
	}

	kr := spectrum.KR(spectrum.Frequencies(cfg.FilterLen, cfg.SampleRate), cfg.Radius)
	b, err := modal.Sph(cfg.MaxOrder, kr, cfg.Boundary, cfg.DirCoef)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}

	return simulate(&cfg, b, func(mic, src Direction) []float64 {
		w := harmonics.LegendreP(cfg.MaxOrder, geometry.CosAngle(mic, src))
		for n := range w {
			w[n] *= float64(2*n+1) / fourPi
		}
		return w
	}), nil
}

// SimulateCylArray simulates microphones on a circle around an infinite
// cylinder using only azimuths:
//
//	H = b₀(kR) + 2·Σₙ bₙ(kR) · cos(n·Δφ)
//
// 2·MaxOrder+1 may not exceed max(nMic, nSrc). [Directional] is not
// supported.
func SimulateCylArray(cfg SimConfig) (*ArrayResponse, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	count := max(len(cfg.MicDirs), len(cfg.SrcDirs))
	if 2*cfg.MaxOrder+1 > count {
		return nil, fmt.Errorf("%w: order %d cannot be resolved by %d directions on a circle",
			ErrInvalidArgument, cfg.MaxOrder, count)
	}

	kr := spectrum.KR(spectrum.Frequencies(cfg.FilterLen, cfg.SampleRate), cfg.Radius)
	b, err := modal.Cyl(cfg.MaxOrder, kr, cfg.Boundary)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}

	return simulate(&cfg, b, func(mic, src Direction) []float64 {
		dphi := mic.Azimuth - src.Azimuth
		w := make([]float64, cfg.MaxOrder+1)
		w[0] = 1
		for n := 1; n < len(w); n++ {
			w[n] = 2 * math.Cos(float64(n)*dphi)
		}
		return w
	}), nil
}

// simulate weights the per-order coefficients b [bin][order] for every
// microphone and source and synthesizes the impulse responses.
func simulate(cfg *SimConfig, b [][]complex128, weights func(mic, src Direction) []float64) *ArrayResponse {
	resp := &ArrayResponse{
		Freq: make([][][]complex128, len(cfg.MicDirs)),
		Time: make([][][]float64, len(cfg.MicDirs)),
	}
	synth := spectrum.NewSynthesizer(cfg.FilterLen)

	for m, mic := range cfg.MicDirs {
		resp.Freq[m] = make([][]complex128, len(cfg.SrcDirs))
		resp.Time[m] = make([][]float64, len(cfg.SrcDirs))
		for s, src := range cfg.SrcDirs {
			w := weights(mic, src)
			h := make([]complex128, len(b))
			for k, row := range b {
				var sum complex128
				for n, v := range row {
					sum += v * complex(w[n], 0)
				}
				h[k] = sum
			}
			resp.Freq[m][s] = h

			var residue float64
			resp.Time[m][s], residue = synth.ImpulseResponse(nil, h)
			resp.ImagResidue = math.Max(resp.ImagResidue, residue)
		}
	}
	return resp
}
