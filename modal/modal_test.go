package modal

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tphakala/go-array-sht/internal/testutil"
	"github.com/tphakala/go-array-sht/specfunc"
)

func TestSph_ZeroFrequencyLimits(t *testing.T) {
	for _, b := range []Boundary{Open, Rigid} {
		t.Run(b.String(), func(t *testing.T) {
			bn, err := Sph(4, []float64{0.0}, b, 1)
			require.NoError(t, err)
			require.Len(t, bn, 1)
			require.Len(t, bn[0], 5)

			assert.Equal(t, complex(4*math.Pi, 0), bn[0][0])
			for n := 1; n <= 4; n++ {
				assert.Equal(t, complex(0, 0), bn[0][n], "order %d", n)
			}
		})
	}
}

func TestSph_ZeroLimitIsContinuous(t *testing.T) {
	bn, err := Sph(3, []float64{0, 1e-6}, Rigid, 0)
	require.NoError(t, err)
	testutil.AssertComplexSliceInDelta(t, bn[0], bn[1], 1e-5)
}

func TestSph_Open(t *testing.T) {
	kr := []float64{0.1, 1.0, 4.0, 12.0}
	bn, err := Sph(3, kr, Open, 0)
	require.NoError(t, err)

	in := []complex128{1, 1i, -1, -1i}
	for n := range 4 {
		j := specfunc.SphBesselJ(n, kr)
		for i := range kr {
			want := 4 * math.Pi * in[n] * complex(j[i], 0)
			testutil.AssertComplexInDelta(t, want, bn[i][n], 1e-12)
		}
	}
}

// b₀ / 4π = e^{ix} / (1 + ix) for a rigid sphere.
func TestSph_RigidOrderZeroClosedForm(t *testing.T) {
	kr := []float64{0.05, 0.5, 2.0, 9.0, 18.5}
	bn, err := Sph(0, kr, Rigid, 0)
	require.NoError(t, err)

	for i, x := range kr {
		want := 4 * math.Pi * cmplx.Exp(complex(0, x)) / complex(1, x)
		testutil.AssertComplexInDelta(t, want, bn[i][0], 1e-11)
	}
}

// The Wronskian reduces the rigid coefficient to 4π iⁿ⁻¹ / (x² hₙ⁽²⁾'(x)).
func TestSph_RigidWronskianForm(t *testing.T) {
	kr := []float64{0.3, 1.1, 5.0, 15.0}
	bn, err := Sph(6, kr, Rigid, 0)
	require.NoError(t, err)

	in := []complex128{1, 1i, -1, -1i}
	for n := range 7 {
		dh := specfunc.DSphHankel2(n, kr)
		for i, x := range kr {
			want := 4 * math.Pi * in[n] * -1i / (complex(x*x, 0) * dh[i])
			got := bn[i][n]
			assert.InDelta(t, 0, cmplx.Abs(want-got)/cmplx.Abs(want), 1e-9, "n=%d x=%v", n, x)
		}
	}
}

func TestSph_Directional(t *testing.T) {
	kr := []float64{0, 0.7, 3.0}

	// a = 1 is the open sphere.
	dir, err := Sph(3, kr, Directional, 1)
	require.NoError(t, err)
	open, err := Sph(3, kr, Open, 0)
	require.NoError(t, err)
	for i := range kr {
		testutil.AssertComplexSliceInDelta(t, open[i], dir[i], 1e-12)
	}

	// Cardioid capsules keep a first-order response at DC.
	card, err := Sph(2, []float64{0, 1e-7}, Directional, 0.5)
	require.NoError(t, err)
	assert.InDelta(t, 2*math.Pi, real(card[0][0]), 1e-12)
	assert.InDelta(t, 4*math.Pi*0.5/3, real(card[0][1]), 1e-12)
	testutil.AssertComplexSliceInDelta(t, card[0], card[1], 1e-5)
}

func TestCyl(t *testing.T) {
	kr := []float64{0, 0.4, 2.5, 10.0}

	open, err := Cyl(3, kr, Open)
	require.NoError(t, err)
	assert.Equal(t, complex(1, 0), open[0][0])
	assert.Equal(t, complex(0, 0), open[0][2])
	in := []complex128{1, 1i, -1, -1i}
	for n := range 4 {
		for i := 1; i < len(kr); i++ {
			testutil.AssertComplexInDelta(t, in[n]*complex(math.Jn(n, kr[i]), 0), open[i][n], 1e-14)
		}
	}

	rigid, err := Cyl(3, kr, Rigid)
	require.NoError(t, err)
	assert.Equal(t, complex(1, 0), rigid[0][0])
	for i := 1; i < len(kr); i++ {
		for n := range 4 {
			assert.False(t, cmplx.IsNaN(rigid[i][n]))
		}
	}

	_, err = Cyl(2, kr, Directional)
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestSph_InvalidArguments(t *testing.T) {
	tests := []struct {
		name    string
		order   int
		kr      []float64
		b       Boundary
		dirCoef float64
	}{
		{"negative order", -1, []float64{1}, Rigid, 0},
		{"negative kR", 2, []float64{-0.5}, Rigid, 0},
		{"NaN kR", 2, []float64{math.NaN()}, Open, 0},
		{"unknown boundary", 2, []float64{1}, Boundary(9), 0},
		{"directivity out of range", 2, []float64{1}, Directional, 1.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Sph(tt.order, tt.kr, tt.b, tt.dirCoef)
			require.ErrorIs(t, err, ErrInvalidArgument)
		})
	}
}

func TestParseBoundary(t *testing.T) {
	for _, b := range []Boundary{Open, Rigid, Directional} {
		got, err := ParseBoundary(b.String())
		require.NoError(t, err)
		assert.Equal(t, b, got)
	}
	_, err := ParseBoundary("soft")
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func BenchmarkSph_Rigid(b *testing.B) {
	kr := make([]float64, 129)
	for i := range kr {
		kr[i] = float64(i) * 18.5 / 128
	}
	for b.Loop() {
		_, _ = Sph(36, kr, Rigid, 0)
	}
}
