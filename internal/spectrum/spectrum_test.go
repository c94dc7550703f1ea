package spectrum

import (
	"math"
	"math/cmplx"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tphakala/go-array-sht/internal/testutil"
)

func TestFrequencies(t *testing.T) {
	f := Frequencies(8, 48000)
	assert.Equal(t, []float64{0, 6000, 12000, 18000, 24000}, f)
	assert.Equal(t, 5, NumBins(8))
}

func TestKR(t *testing.T) {
	kr := KR([]float64{0, 1000, 24000}, 0.042)
	require.Len(t, kr, 3)
	assert.Equal(t, 0.0, kr[0])
	assert.InDelta(t, 2*math.Pi*1000*0.042/343, kr[1], 1e-15)
	assert.Greater(t, kr[2], kr[1])
}

func TestImpulseResponse_FlatIsCenteredDelta(t *testing.T) {
	const n = 16
	s := NewSynthesizer(n)
	half := make([]complex128, NumBins(n))
	for k := range half {
		half[k] = 1
	}

	h, residue := s.ImpulseResponse(nil, half)
	require.Len(t, h, n)
	assert.Less(t, residue, testutil.ImagTolerance)
	for i, v := range h {
		want := 0.0
		if i == n/2 {
			want = 1.0
		}
		assert.InDelta(t, want, v, 1e-14, "sample %d", i)
	}
}

func TestImpulseResponse_DelayMovesPeak(t *testing.T) {
	const (
		n     = 64
		delay = 5
	)
	s := NewSynthesizer(n)
	half := make([]complex128, NumBins(n))
	for k := range half {
		half[k] = cmplx.Rect(1, -2*math.Pi*float64(k*delay)/n)
	}

	h, residue := s.ImpulseResponse(nil, half)
	assert.Less(t, residue, testutil.ImagTolerance)
	assert.Equal(t, n/2+delay, testutil.ArgMaxAbs(h))
	assert.InDelta(t, 1.0, h[n/2+delay], 1e-12)
}

func TestImpulseResponse_NyquistImaginaryDiscarded(t *testing.T) {
	const n = 8
	s := NewSynthesizer(n)
	half := []complex128{1, 0.5 + 0.2i, -0.3i, 0.1, 2 + 7i}
	withReal := append([]complex128(nil), half...)
	withReal[n/2] = 2

	a, resA := s.ImpulseResponse(nil, half)
	b, resB := s.ImpulseResponse(nil, withReal)
	assert.Less(t, resA, testutil.ImagTolerance)
	assert.Less(t, resB, testutil.ImagTolerance)
	assert.InDeltaSlice(t, b, a, 1e-15)
}

func TestImpulseResponse_ComplexDCShowsResidue(t *testing.T) {
	const n = 8
	s := NewSynthesizer(n)
	half := []complex128{1 + 1i, 0, 0, 0, 0}
	_, residue := s.ImpulseResponse(nil, half)
	assert.Greater(t, residue, 0.1)
}

func TestRoundTrip(t *testing.T) {
	const n = 256
	rng := rand.New(rand.NewPCG(1, 2))
	s := NewSynthesizer(n)

	half := make([]complex128, NumBins(n))
	half[0] = complex(rng.NormFloat64(), 0)
	for k := 1; k < len(half); k++ {
		half[k] = complex(rng.NormFloat64(), rng.NormFloat64())
	}

	h, residue := s.ImpulseResponse(nil, half)
	assert.Less(t, residue, testutil.ImagTolerance)
	testutil.AssertNoNaNOrInf(t, h)

	back := s.HalfSpectrum(nil, h)
	want := append([]complex128(nil), half...)
	want[n/2] = complex(real(want[n/2]), 0)
	testutil.AssertComplexSliceInDelta(t, want, back, testutil.RoundTripTolerance)
}

func BenchmarkImpulseResponse(b *testing.B) {
	const n = 1024
	s := NewSynthesizer(n)
	half := make([]complex128, NumBins(n))
	for k := range half {
		half[k] = cmplx.Rect(1, float64(k))
	}
	dst := make([]float64, n)
	for b.Loop() {
		dst, _ = s.ImpulseResponse(dst, half)
	}
}
