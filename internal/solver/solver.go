// Package solver computes regularized least-squares encoding matrices
// independently for every frequency bin.
//
// For each bin the full array response H (mics × coefficients) is supplied by
// the caller and the solver returns
//
//	W = Hₜ^H · (H·H^H + β²·I)⁻¹
//
// where Hₜ keeps the first NumOutputs columns of H. The Hermitian system is
// solved through its real symmetric embedding
//
//	[ Re A  −Im A ] [ Re X ]   [ Re Hₜ ]
//	[ Im A   Re A ] [ Im X ] = [ Im Hₜ ]
//
// with a Cholesky factorization, and W = X^H.
package solver

import (
	"errors"
	"fmt"
	"runtime"
	"sync"

	"gonum.org/v1/gonum/mat"
)

// ErrSingular is returned when a bin's system cannot be factorized or is too
// ill-conditioned to solve.
var ErrSingular = errors.New("singular system")

// FillFunc writes the real and imaginary parts of the array response of one
// bin into hr and hi (NumMics × NumCoeffs). It may be called concurrently for
// different bins.
type FillFunc func(bin int, hr, hi *mat.Dense)

// Params describes the per-bin problem.
type Params struct {
	NumBins    int
	NumMics    int
	NumCoeffs  int     // columns of the full array response
	NumOutputs int     // leading columns kept in the encoder, ≤ NumCoeffs
	Beta2      float64 // Tikhonov weight β²

	// EnableParallel distributes bins across GOMAXPROCS workers.
	EnableParallel bool
}

// Validate checks the problem dimensions.
func (p *Params) Validate() error {
	if p.NumBins < 1 || p.NumMics < 1 || p.NumCoeffs < 1 || p.NumOutputs < 1 {
		return fmt.Errorf("dimensions must be positive: bins=%d mics=%d coeffs=%d outputs=%d",
			p.NumBins, p.NumMics, p.NumCoeffs, p.NumOutputs)
	}
	if p.NumOutputs > p.NumCoeffs {
		return fmt.Errorf("outputs %d exceed coefficients %d", p.NumOutputs, p.NumCoeffs)
	}
	return nil
}

// arena holds the pre-allocated matrices one worker reuses for every bin.
type arena struct {
	hr, hi   *mat.Dense // mics × coeffs
	ar, ai   *mat.Dense // mics × mics
	tmp      *mat.Dense // mics × mics
	embedded *mat.SymDense
	rhs      *mat.Dense // 2·mics × outputs
	x        *mat.Dense // 2·mics × outputs
	chol     mat.Cholesky
}

func newArena(p *Params) *arena {
	m := p.NumMics
	return &arena{
		hr:       mat.NewDense(m, p.NumCoeffs, nil),
		hi:       mat.NewDense(m, p.NumCoeffs, nil),
		ar:       mat.NewDense(m, m, nil),
		ai:       mat.NewDense(m, m, nil),
		tmp:      mat.NewDense(m, m, nil),
		embedded: mat.NewSymDense(2*m, nil),
		rhs:      mat.NewDense(2*m, p.NumOutputs, nil),
		x:        mat.NewDense(2*m, p.NumOutputs, nil),
	}
}

// Solve returns the encoder of every bin, shaped [bin][output][mic].
func Solve(p Params, fill FillFunc) ([][][]complex128, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	out := make([][][]complex128, p.NumBins)

	if !p.EnableParallel || p.NumBins == 1 {
		a := newArena(&p)
		for bin := range p.NumBins {
			w, err := a.solveBin(&p, bin, fill)
			if err != nil {
				return nil, err
			}
			out[bin] = w
		}
		return out, nil
	}

	numWorkers := min(runtime.GOMAXPROCS(0), p.NumBins)
	bins := make(chan int, p.NumBins)
	for bin := range p.NumBins {
		bins <- bin
	}
	close(bins)

	var wg sync.WaitGroup
	errChan := make(chan error, numWorkers)

	for range numWorkers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			a := newArena(&p)
			for bin := range bins {
				w, err := a.solveBin(&p, bin, fill)
				if err != nil {
					errChan <- err
					return
				}
				out[bin] = w
			}
		}()
	}

	wg.Wait()
	close(errChan)

	for err := range errChan {
		if err != nil {
			return nil, err
		}
	}

	return out, nil
}

func (a *arena) solveBin(p *Params, bin int, fill FillFunc) ([][]complex128, error) {
	m := p.NumMics
	a.hr.Zero()
	a.hi.Zero()
	fill(bin, a.hr, a.hi)

	// A = H·H^H = (Hr·Hrᵀ + Hi·Hiᵀ) + i(Hi·Hrᵀ − Hr·Hiᵀ)
	a.ar.Mul(a.hr, a.hr.T())
	a.tmp.Mul(a.hi, a.hi.T())
	a.ar.Add(a.ar, a.tmp)
	a.ai.Mul(a.hi, a.hr.T())
	a.tmp.Mul(a.hr, a.hi.T())
	a.ai.Sub(a.ai, a.tmp)

	for i := range m {
		for j := i; j < m; j++ {
			re := a.ar.At(i, j)
			if i == j {
				re += p.Beta2
			}
			im := a.ai.At(i, j)
			a.embedded.SetSym(i, j, re)
			a.embedded.SetSym(m+i, m+j, re)
			// Lower-left block is Im A, upper-right is −Im A = (Im A)ᵀ.
			a.embedded.SetSym(i, m+j, -im)
			if i != j {
				a.embedded.SetSym(j, m+i, im)
			}
		}
	}

	for i := range m {
		for c := range p.NumOutputs {
			a.rhs.Set(i, c, a.hr.At(i, c))
			a.rhs.Set(m+i, c, a.hi.At(i, c))
		}
	}

	if ok := a.chol.Factorize(a.embedded); !ok {
		return nil, fmt.Errorf("bin %d: %w: factorization failed", bin, ErrSingular)
	}
	if err := a.chol.SolveTo(a.x, a.rhs); err != nil {
		return nil, fmt.Errorf("bin %d: %w: %v", bin, ErrSingular, err)
	}

	w := make([][]complex128, p.NumOutputs)
	for c := range w {
		row := make([]complex128, m)
		for i := range row {
			row[i] = complex(a.x.At(i, c), -a.x.At(m+i, c))
		}
		w[c] = row
	}
	return w, nil
}
