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

import "fmt"

// Sweep directions for directionally split transport.
const (
	SweepX = iota + 1
	SweepY
	SweepZ
)

// Integrator advances the specific intensity through the grid. Advance
// performs one transport sweep along the given direction; CopyToOutput
// republishes the intensity into the band-averaged diagnostic array
// after the sweeps of a step complete.
type Integrator interface {
	Advance(direction int) error
	CopyToOutput()
}

// ConstIntegrator holds the radiation field fixed: sweeps leave the
// intensity unchanged and CopyToOutput republishes the current values.
// It serves runs where the radiation field is an external input to the
// chemistry rather than an evolved quantity.
type ConstIntegrator struct {
	Rad *Radiation
}

var _ Integrator = (*ConstIntegrator)(nil)

// NewConstIntegrator wraps an existing radiation state.
func NewConstIntegrator(r *Radiation) (*ConstIntegrator, error) {
	if r == nil {
		return nil, fmt.Errorf("rad: nil radiation state")
	}
	return &ConstIntegrator{Rad: r}, nil
}

// Advance is a no-op; the intensity is externally prescribed.
func (ci *ConstIntegrator) Advance(direction int) error {
	switch direction {
	case SweepX, SweepY, SweepZ:
		return nil
	}
	return fmt.Errorf("rad: unknown sweep direction %d", direction)
}

// CopyToOutput writes the weighted angular mean of the intensity into
// IRAvg for every band and cell.
func (ci *ConstIntegrator) CopyToOutput() {
	r := ci.Rad
	inv := 1.0 / float64(r.NOct)
	for ifr := 0; ifr < r.NFreq; ifr++ {
		for c := 0; c < r.ncell; c++ {
			avg := 0.0
			for n := 0; n < r.NAng; n++ {
				avg += r.Wmu[n] * r.IR.Get(ifr, c, n)
			}
			r.IRAvg.Set(avg*inv, ifr, c)
		}
	}
}
