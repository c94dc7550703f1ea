package solver

import (
	"math/cmplx"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

// randomProblem returns a deterministic complex response per bin.
func randomProblem(bins, mics, coeffs int, seed uint64) [][][]complex128 {
	rng := rand.New(rand.NewPCG(seed, seed+1))
	h := make([][][]complex128, bins)
	for b := range h {
		h[b] = make([][]complex128, mics)
		for m := range h[b] {
			row := make([]complex128, coeffs)
			for c := range row {
				row[c] = complex(rng.NormFloat64(), rng.NormFloat64())
			}
			h[b][m] = row
		}
	}
	return h
}

func fillFrom(h [][][]complex128) FillFunc {
	return func(bin int, hr, hi *mat.Dense) {
		for m, row := range h[bin] {
			for c, v := range row {
				hr.Set(m, c, real(v))
				hi.Set(m, c, imag(v))
			}
		}
	}
}

// residual returns max |W·(H·H^H + β²I) − Hₜ^H|.
func residual(w, h [][]complex128, outputs int, beta2 float64) float64 {
	mics := len(h)
	a := make([][]complex128, mics)
	for i := range a {
		a[i] = make([]complex128, mics)
		for j := range a[i] {
			var s complex128
			for c := range h[i] {
				s += h[i][c] * cmplx.Conj(h[j][c])
			}
			if i == j {
				s += complex(beta2, 0)
			}
			a[i][j] = s
		}
	}

	var worst float64
	for c := range outputs {
		for j := range mics {
			var s complex128
			for i := range mics {
				s += w[c][i] * a[i][j]
			}
			worst = max(worst, cmplx.Abs(s-cmplx.Conj(h[j][c])))
		}
	}
	return worst
}

func TestSolve_SatisfiesNormalEquations(t *testing.T) {
	tests := []struct {
		name    string
		mics    int
		coeffs  int
		outputs int
		beta2   float64
	}{
		{"overdetermined basis", 6, 16, 4, 0.01},
		{"square", 4, 4, 4, 1e-3},
		{"single output", 5, 9, 1, 0.5},
		{"strong regularization", 3, 9, 4, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			const bins = 5
			h := randomProblem(bins, tt.mics, tt.coeffs, 7)
			w, err := Solve(Params{
				NumBins:    bins,
				NumMics:    tt.mics,
				NumCoeffs:  tt.coeffs,
				NumOutputs: tt.outputs,
				Beta2:      tt.beta2,
			}, fillFrom(h))
			require.NoError(t, err)
			require.Len(t, w, bins)

			for b := range bins {
				require.Len(t, w[b], tt.outputs)
				require.Len(t, w[b][0], tt.mics)
				assert.Less(t, residual(w[b], h[b], tt.outputs, tt.beta2), 1e-9, "bin %d", b)
			}
		})
	}
}

func TestSolve_SquareSystemInverts(t *testing.T) {
	const n = 4
	h := randomProblem(1, n, n, 11)
	w, err := Solve(Params{NumBins: 1, NumMics: n, NumCoeffs: n, NumOutputs: n, Beta2: 1e-12}, fillFrom(h))
	require.NoError(t, err)

	// W·H ≈ I
	for r := range n {
		for c := range n {
			var s complex128
			for m := range n {
				s += w[0][r][m] * h[0][m][c]
			}
			want := complex(0, 0)
			if r == c {
				want = 1
			}
			assert.InDelta(t, 0, cmplx.Abs(s-want), 1e-8, "(%d,%d)", r, c)
		}
	}
}

func TestSolve_ParallelMatchesSerial(t *testing.T) {
	const bins = 33
	h := randomProblem(bins, 5, 16, 3)
	p := Params{NumBins: bins, NumMics: 5, NumCoeffs: 16, NumOutputs: 9, Beta2: 0.05}

	serial, err := Solve(p, fillFrom(h))
	require.NoError(t, err)

	p.EnableParallel = true
	parallel, err := Solve(p, fillFrom(h))
	require.NoError(t, err)

	assert.Equal(t, serial, parallel)
}

func TestSolve_SingularSystem(t *testing.T) {
	zero := func(int, *mat.Dense, *mat.Dense) {}
	_, err := Solve(Params{NumBins: 3, NumMics: 2, NumCoeffs: 4, NumOutputs: 1, Beta2: 0}, zero)
	require.ErrorIs(t, err, ErrSingular)

	_, err = Solve(Params{NumBins: 3, NumMics: 2, NumCoeffs: 4, NumOutputs: 1, Beta2: 0, EnableParallel: true}, zero)
	require.ErrorIs(t, err, ErrSingular)
}

func TestParams_Validate(t *testing.T) {
	tests := []struct {
		name string
		p    Params
	}{
		{"no bins", Params{NumMics: 1, NumCoeffs: 1, NumOutputs: 1}},
		{"no mics", Params{NumBins: 1, NumCoeffs: 1, NumOutputs: 1}},
		{"outputs exceed coeffs", Params{NumBins: 1, NumMics: 1, NumCoeffs: 1, NumOutputs: 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.p.Validate())
			_, err := Solve(tt.p, func(int, *mat.Dense, *mat.Dense) {})
			assert.Error(t, err)
		})
	}
}

func BenchmarkSolve(b *testing.B) {
	const bins = 65
	h := randomProblem(bins, 32, 100, 5)
	p := Params{NumBins: bins, NumMics: 32, NumCoeffs: 100, NumOutputs: 25, Beta2: 0.01, EnableParallel: true}
	fill := fillFrom(h)
	for b.Loop() {
		if _, err := Solve(p, fill); err != nil {
			b.Fatal(err)
		}
	}
}
