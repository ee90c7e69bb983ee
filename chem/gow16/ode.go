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

package gow16

import (
	"fmt"
	"math"
)

// stoich holds the net production (+) or destruction (−) multiplicity
// of one tracked species in one channel.
type stoich struct {
	s int
	d float64
}

// netStoich computes, once per table, the net signed multiplicity of
// every tracked species in every channel. Ghost species never appear:
// their bookkeeping happens implicitly through the conservation laws in
// Resolve.
func netStoich(channels []Channel) [][]stoich {
	out := make([][]stoich, len(channels))
	for i, ch := range channels {
		m := map[int]float64{}
		for _, s := range ch.In {
			if s < NSpecies {
				m[s]--
			}
		}
		for _, s := range ch.Out {
			if s < NSpecies {
				m[s]++
			}
		}
		for s := 0; s < NSpecies; s++ {
			if d, ok := m[s]; ok && d != 0 {
				out[i] = append(out[i], stoich{s, d})
			}
		}
	}
	return out
}

func (n *Network) errNotReady() error {
	return fmt.Errorf("gow16: RHS/Jacobian called before InitializeNextStep")
}

// RHS evaluates dy/dt at the rate coefficients frozen by
// InitializeNextStep. As a byproduct it accumulates the heating and
// cooling terms, which are valid only because they are evaluated with
// the same rate vector as the abundance derivatives; they are exposed
// through HeatCool after the call.
func (n *Network) RHS(t float64, y, ydot []float64) error {
	if !n.ratesReady {
		return n.errNotReady()
	}
	n.Resolve(y, n.xall)
	for s := range ydot {
		ydot[s] = 0
	}
	for i := range n.channels {
		rate := n.rates[i]
		if rate == 0 {
			continue
		}
		for _, r := range n.channels[i].In {
			rate *= n.xall[r]
		}
		for _, st := range n.deltas[i] {
			ydot[st.s] += st.d * rate
		}
	}

	temp := n.Temperature(y)
	n.hc = n.thermo(y, n.xall, temp)
	if n.cfg.ConstTemp {
		ydot[iE] = 0
	} else {
		ydot[iE] = n.hc.Total()
	}
	return nil
}

// Jacobian evaluates the analytic sensitivity matrix ∂ydot_i/∂y_j at
// the frozen rates. The chain rule through the ghost-species resolver
// is included: perturbing a tracked abundance perturbs its conjugate
// reservoir, which feeds back into every channel with that reservoir as
// a reactant. A reservoir clamped at zero contributes no sensitivity.
// The energy row is differenced numerically since the thermal terms mix
// every channel. jac must be NSpecies rows of NSpecies columns; fy is
// the RHS at y and is used for the energy-row differencing.
func (n *Network) Jacobian(t float64, y, fy []float64, jac [][]float64) error {
	if !n.ratesReady {
		return n.errNotReady()
	}
	n.Resolve(y, n.xall)
	for i := range jac {
		for j := range jac[i] {
			jac[i][j] = 0
		}
	}

	for i := range n.channels {
		k := n.rates[i]
		if k == 0 {
			continue
		}
		in := n.channels[i].In
		for p, rp := range in {
			// ∂rate/∂x_rp = k Π_{q≠p} x_q
			partial := k
			for q, rq := range in {
				if q != p {
					partial *= n.xall[rq]
				}
			}
			if partial == 0 {
				continue
			}
			if rp < NSpecies {
				for _, st := range n.deltas[i] {
					jac[st.s][rp] += st.d * partial
				}
			} else if n.xall[rp] > 0 { // clamped reservoirs are insensitive
				w := &ghostWeights[rp-NSpecies]
				for j := 0; j < NSpecies; j++ {
					if w[j] == 0 {
						continue
					}
					c := -w[j] * partial
					for _, st := range n.deltas[i] {
						jac[st.s][j] += st.d * c
					}
				}
			}
		}
	}

	if !n.cfg.ConstTemp {
		// Energy row by one-sided finite differences.
		for j := 0; j < NSpecies; j++ {
			h := 1e-6 * math.Abs(y[j])
			if h < 1e-30 {
				h = 1e-30
			}
			yj := y[j]
			y[j] = yj + h
			ep := n.dEdt(y)
			y[j] = yj
			jac[iE][j] = (ep - fy[iE]) / h
		}
	}
	return nil
}

// dEdt returns the net heating rate [erg/s per H] at abundance vector y
// with the current frozen rates.
func (n *Network) dEdt(y []float64) float64 {
	n.Resolve(y, n.xall)
	return n.thermo(y, n.xall, n.Temperature(y)).Total()
}

// HeatCool returns the heating and cooling terms accumulated by the
// most recent RHS call.
func (n *Network) HeatCool() HeatCool { return n.hc }
