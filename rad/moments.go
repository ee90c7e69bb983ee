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

package rad

import "math"

// Frequency-integrated moment components stored per cell.
const (
	MomER   = iota // energy density
	MomFR1         // flux, x
	MomFR2         // flux, y
	MomFR3         // flux, z
	MomPR11        // pressure tensor
	MomPR12
	MomPR13
	MomPR21
	MomPR22
	MomPR23
	MomPR31
	MomPR32
	MomPR33
	NMoment
)

const fourPi = 4.0 * math.Pi

// Moment holds the radiation moments of one cell in physical
// normalization.
type Moment struct {
	Er float64
	Fr [3]float64
	Pr [3][3]float64
}

// CalculateMoments integrates the specific intensity over angle and
// frequency into the 13 stored moment components of every cell. The
// accumulators are zeroed first, so repeated calls are idempotent. The
// octant-normalized weights carry a solid-angle factor of 4pi/noct per
// ordinate; an isotropic intensity I therefore yields Er = 4pi*I, zero
// flux and an isotropic pressure tensor Er/3 on the diagonal.
func (r *Radiation) CalculateMoments() {
	scale := fourPi / float64(r.NOct)
	for c := 0; c < r.ncell; c++ {
		var m [NMoment]float64
		for ifr := 0; ifr < r.NFreq; ifr++ {
			wf := r.Wfreq[ifr] * scale
			for n := 0; n < r.NAng; n++ {
				wi := wf * r.Wmu[n] * r.IR.Get(ifr, c, n)
				mx := r.Mu.Get(0, n)
				my := r.Mu.Get(1, n)
				mz := r.Mu.Get(2, n)
				m[MomER] += wi
				m[MomFR1] += wi * mx
				m[MomFR2] += wi * my
				m[MomFR3] += wi * mz
				// Each off-diagonal product is evaluated once and
				// stored in both tensor slots so that the stored
				// tensor is symmetric to the last bit.
				prxy := wi * mx * my
				prxz := wi * mx * mz
				pryz := wi * my * mz
				m[MomPR11] += wi * mx * mx
				m[MomPR12] += prxy
				m[MomPR13] += prxz
				m[MomPR21] += prxy
				m[MomPR22] += wi * my * my
				m[MomPR23] += pryz
				m[MomPR31] += prxz
				m[MomPR32] += pryz
				m[MomPR33] += wi * mz * mz
			}
		}
		for k := 0; k < NMoment; k++ {
			r.Moments.Set(m[k], k, c)
		}
	}
}

// CellMoment returns the stored moments of one cell as a structured
// value. CalculateMoments must have run since the intensity last
// changed for the result to be current.
func (r *Radiation) CellMoment(cell int) Moment {
	var m Moment
	m.Er = r.Moments.Get(MomER, cell)
	for d := 0; d < 3; d++ {
		m.Fr[d] = r.Moments.Get(MomFR1+d, cell)
		for e := 0; e < 3; e++ {
			m.Pr[d][e] = r.Moments.Get(MomPR11+3*d+e, cell)
		}
	}
	return m
}
