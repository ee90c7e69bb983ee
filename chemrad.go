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

// Package chemrad implements gas-phase/dust chemistry and radiation-moment
// calculations for interstellar-medium simulations. It computes, per grid
// cell, the reaction rates and abundance evolution of a reduced chemical
// network together with the angular and frequency moments of a discretized
// radiation intensity field. Grid construction, transport, and the
// surrounding hydrodynamics are the responsibility of the host simulation.
package chemrad

import (
	"fmt"
	"io"
)

// Version gives the version number.
const Version = "0.3.0"

// Indices of the shielding column densities in PhysicalState.Col.
const (
	ColHTot = iota // total hydrogen nuclei column [cm⁻²]
	ColH2          // H2 column [cm⁻²]
	ColCO          // CO column [cm⁻²]
	ColC           // atomic carbon column [cm⁻²]
	NCol
)

// PhysicalState is a read-only snapshot of the local physical conditions
// in one grid cell, supplied by the host simulation once per macro time
// step. The chemistry engine never mutates it.
type PhysicalState struct {
	NH   float64 // hydrogen nuclei number density [cm⁻³]
	Temp float64 // gas temperature [K]

	// Rad is the incident radiation field in each tracked frequency band,
	// normalized to the Draine (1978) interstellar radiation field.
	Rad []float64

	// Col holds the shielding column densities, indexed by
	// ColHTot, ColH2, ColCO and ColC.
	Col [NCol]float64

	// Xe is the electron abundance snapshot used for grain-assisted
	// recombination rates, which are frozen over the macro step.
	Xe float64

	// BCO is the velocity dispersion used for CO line cooling [cm/s].
	BCO float64
}

// Check returns an error if the state violates the engine preconditions.
// Non-positive density or temperature indicates an upstream hydrodynamic
// error and is reported rather than silently recovered.
func (s *PhysicalState) Check() error {
	if s.NH <= 0 {
		return fmt.Errorf("chemrad: non-positive density %g", s.NH)
	}
	if s.Temp <= 0 {
		return fmt.Errorf("chemrad: non-positive temperature %g", s.Temp)
	}
	return nil
}

// Network is an interface for chemical reaction networks.
type Network interface {
	// Species returns the names of the tracked species, in the order
	// used by the abundance vectors.
	Species() []string

	// Len returns the number of tracked species.
	Len() int

	// InitializeNextStep snapshots the physical state for the upcoming
	// macro step and recomputes all reaction-rate coefficients. It must
	// be called exactly once before any RHS or Jacobian calls for that
	// step. y is the abundance vector at the start of the step.
	InitializeNextStep(state PhysicalState, y []float64) error

	// RHS evaluates the right-hand side of the chemical ODE system,
	// dy/dt = ydot(t, y), at the rates frozen by InitializeNextStep.
	RHS(t float64, y, ydot []float64) error

	// Jacobian evaluates the sensitivity matrix ∂ydot_i/∂y_j at the
	// frozen rates. fy is the RHS evaluated at y, which some entries
	// may reuse. jac must have Len() rows of Len() columns.
	Jacobian(t float64, y, fy []float64, jac [][]float64) error

	// OutputProperties writes a diagnostic dump of the network state
	// (species names, current rates, heating and cooling terms). It is
	// not part of the control path.
	OutputProperties(w io.Writer) error
}

// Cell holds the per-cell state operated on by the chemistry engine.
// Cells are independent units of work: no calculation for one cell
// touches another cell's mutable state.
type Cell struct {
	Row   int           // master cell index
	State PhysicalState // physical conditions for the current macro step
	Abund []float64     // tracked species abundances relative to H nuclei
}

// Domain holds the collection of cells the engine operates on and the
// current macro time step.
type Domain struct {
	Cells []*Cell
	Dt    float64 // seconds

	// Done specifies whether the simulation is finished.
	Done bool
}

// CellManipulator is a function that operates on a single grid cell.
type CellManipulator func(c *Cell, Δt float64)

// DomainManipulator is a function that operates on the entire domain.
type DomainManipulator func(d *Domain) error
