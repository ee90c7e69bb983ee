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

// Package solver integrates the stiff chemical ODE system of a single
// grid cell over one macro time step. It adapts the chemrad.Network
// slice-based callbacks to gonum vectors and matrices and advances the
// abundances with an implicit backward-Euler scheme whose Newton
// iteration uses the network's analytic Jacobian.
package solver

import (
	"fmt"

	"github.com/ismmodel/chemrad"
	"gonum.org/v1/gonum/mat"
)

// Adapter marshals between the dense linear-algebra types used by the
// integrator and the flat slices the network callbacks operate on. The
// scratch buffers are reused across calls, so an Adapter must not be
// shared between goroutines.
type Adapter struct {
	net chemrad.Network
	n   int

	y, ydot, fy []float64
	jac         [][]float64
}

// NewAdapter wraps a network for use by the integrator.
func NewAdapter(net chemrad.Network) *Adapter {
	n := net.Len()
	jac := make([][]float64, n)
	for i := range jac {
		jac[i] = make([]float64, n)
	}
	return &Adapter{
		net:  net,
		n:    n,
		y:    make([]float64, n),
		ydot: make([]float64, n),
		fy:   make([]float64, n),
		jac:  jac,
	}
}

// Len returns the system dimension.
func (a *Adapter) Len() int { return a.n }

// RHS evaluates dy/dt into ydot. Component ordering follows the
// network's species ordering in both directions.
func (a *Adapter) RHS(t float64, y, ydot *mat.VecDense) error {
	if y.Len() != a.n || ydot.Len() != a.n {
		return fmt.Errorf("solver: vector length %d, want %d", y.Len(), a.n)
	}
	for i := 0; i < a.n; i++ {
		a.y[i] = y.AtVec(i)
	}
	if err := a.net.RHS(t, a.y, a.ydot); err != nil {
		return err
	}
	for i := 0; i < a.n; i++ {
		ydot.SetVec(i, a.ydot[i])
	}
	return nil
}

// Jacobian evaluates the sensitivity matrix d(ydot)/dy into dst, which
// must be n by n. The RHS at y is evaluated first and handed to the
// network, matching the contract of chemrad.Network.Jacobian.
func (a *Adapter) Jacobian(t float64, y *mat.VecDense, dst *mat.Dense) error {
	r, c := dst.Dims()
	if y.Len() != a.n || r != a.n || c != a.n {
		return fmt.Errorf("solver: jacobian shape %dx%d, want %dx%d", r, c, a.n, a.n)
	}
	for i := 0; i < a.n; i++ {
		a.y[i] = y.AtVec(i)
	}
	if err := a.net.RHS(t, a.y, a.fy); err != nil {
		return err
	}
	if err := a.net.Jacobian(t, a.y, a.fy, a.jac); err != nil {
		return err
	}
	for i := 0; i < a.n; i++ {
		for j := 0; j < a.n; j++ {
			dst.Set(i, j, a.jac[i][j])
		}
	}
	return nil
}
