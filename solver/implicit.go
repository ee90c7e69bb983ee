/*
Copyright © 2026 the ChemRad authors.
This file is part of ChemRad.

ChemRad is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

ChemRad is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with ChemRad.  If not, see <http://www.gnu.org/licenses/>.
*/

package solver

import (
	"errors"
	"fmt"
	"math"

	"github.com/cenkalti/backoff"
	"github.com/ismmodel/chemrad"
	"gonum.org/v1/gonum/mat"
)

// ErrNoConvergence reports that the Newton iteration failed to converge
// at the current step size. Advance treats it as retryable and shrinks
// the step.
var ErrNoConvergence = errors.New("solver: newton iteration did not converge")

// Options configure the implicit integrator.
type Options struct {
	RelTol        float64 // relative tolerance for the Newton update norm
	AbsTol        float64 // absolute tolerance for the Newton update norm
	MaxNewtonIter int     // Newton iterations per step before giving up
	MaxShrink     uint64  // step-halving retries per macro step before failing
}

// DefaultOptions returns tolerances suitable for the chemical networks
// in this module, whose abundances range down to ~1e-10.
func DefaultOptions() Options {
	return Options{
		RelTol:        1e-6,
		AbsTol:        1e-12,
		MaxNewtonIter: 20,
		MaxShrink:     12,
	}
}

// Implicit advances a chemical network with first-order backward Euler
// steps. Each step solves u - y0 - h*f(t+h, u) = 0 by Newton iteration
// with the network's analytic Jacobian; a step that fails to converge
// is retried at half the step size. An Implicit holds per-solve scratch
// state and must not be shared between goroutines; the engine creates
// one per worker.
type Implicit struct {
	ad  *Adapter
	opt Options

	u, u0, g, del *mat.VecDense
	jf, a         *mat.Dense
	lu            mat.LU
}

// New creates an integrator for net.
func New(net chemrad.Network, opt Options) *Implicit {
	n := net.Len()
	return &Implicit{
		ad:  NewAdapter(net),
		opt: opt,
		u:   mat.NewVecDense(n, nil),
		u0:  mat.NewVecDense(n, nil),
		g:   mat.NewVecDense(n, nil),
		del: mat.NewVecDense(n, nil),
		jf:  mat.NewDense(n, n, nil),
		a:   mat.NewDense(n, n, nil),
	}
}

// Advance integrates y from t0 to t0+dt in place. The interval is
// covered by backward Euler substeps of size h, initially dt; whenever
// a substep fails to converge h is halved and the substep retried,
// with progress already made kept. Rates must already be frozen by
// InitializeNextStep on the underlying network.
func (s *Implicit) Advance(t0, dt float64, y []float64) error {
	if len(y) != s.ad.Len() {
		return fmt.Errorf("solver: state length %d, want %d", len(y), s.ad.Len())
	}
	if dt <= 0 {
		return fmt.Errorf("solver: non-positive time step %g", dt)
	}

	t := t0
	tEnd := t0 + dt
	h := dt
	op := func() error {
		for t < tEnd {
			if t+h > tEnd {
				h = tEnd - t
			}
			if err := s.step(t, h, y); err != nil {
				if errors.Is(err, ErrNoConvergence) {
					h *= 0.5
				}
				return err
			}
			t += h
		}
		return nil
	}
	return backoff.Retry(op,
		backoff.WithMaxRetries(&backoff.ZeroBackOff{}, s.opt.MaxShrink))
}

// step performs one backward Euler step of size h, updating y in place
// on success and leaving it untouched on failure.
func (s *Implicit) step(t, h float64, y []float64) error {
	n := s.ad.Len()
	for i := 0; i < n; i++ {
		s.u0.SetVec(i, y[i])
		s.u.SetVec(i, y[i])
	}
	tNew := t + h

	for iter := 0; iter < s.opt.MaxNewtonIter; iter++ {
		// g(u) = u - u0 - h*f(tNew, u)
		if err := s.ad.RHS(tNew, s.u, s.g); err != nil {
			return backoff.Permanent(err)
		}
		for i := 0; i < n; i++ {
			s.g.SetVec(i, s.u.AtVec(i)-s.u0.AtVec(i)-h*s.g.AtVec(i))
		}

		// A = I - h*J
		if err := s.ad.Jacobian(tNew, s.u, s.jf); err != nil {
			return backoff.Permanent(err)
		}
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				v := -h * s.jf.At(i, j)
				if i == j {
					v += 1
				}
				s.a.Set(i, j, v)
			}
		}

		s.lu.Factorize(s.a)
		if s.lu.Cond() > 1/condTolerance {
			return ErrNoConvergence
		}
		if err := s.lu.SolveVecTo(s.del, false, s.g); err != nil {
			return ErrNoConvergence
		}

		// Weighted root-mean-square norm of the update.
		sum := 0.0
		for i := 0; i < n; i++ {
			ui := s.u.AtVec(i) - s.del.AtVec(i)
			s.u.SetVec(i, ui)
			w := s.opt.RelTol*math.Abs(ui) + s.opt.AbsTol
			r := s.del.AtVec(i) / w
			sum += r * r
		}
		if math.Sqrt(sum/float64(n)) < 1 {
			for i := 0; i < n; i++ {
				y[i] = s.u.AtVec(i)
			}
			return nil
		}
	}
	return ErrNoConvergence
}

// condTolerance rejects Newton matrices too ill-conditioned for the LU
// solve to produce meaningful updates.
const condTolerance = 1e-16
