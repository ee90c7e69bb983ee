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
	"math"
	"testing"

	"github.com/ismmodel/chemrad"
)

func TestChemistryStepAdvancesEveryCell(t *testing.T) {
	const (
		tol    = 1.0e-10
		ncells = 37 // deliberately not a multiple of the worker count
		dt     = 0.5
	)

	step, err := ChemistryStep(func() (chemrad.Network, error) {
		return &linearNetwork{a: [][]float64{{-1}}}, nil
	}, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}

	d := &chemrad.Domain{Dt: dt}
	for i := 0; i < ncells; i++ {
		d.Cells = append(d.Cells, &chemrad.Cell{
			Row:   i,
			State: chemrad.PhysicalState{NH: 1, Temp: 1},
			Abund: []float64{float64(i + 1)},
		})
	}
	if err := step(d); err != nil {
		t.Fatal(err)
	}

	// Backward Euler on y' = -y: every cell shrinks by 1/(1+dt).
	for i, c := range d.Cells {
		want := float64(i+1) / (1 + dt)
		if math.Abs(c.Abund[0]-want) > tol*want {
			t.Errorf("cell %d abundance = %g, want %g", i, c.Abund[0], want)
		}
	}
}

func TestChemistryStepPropagatesErrors(t *testing.T) {
	wantErr := errors.New("network construction failed")
	if _, err := ChemistryStep(func() (chemrad.Network, error) {
		return nil, wantErr
	}, DefaultOptions()); !errors.Is(err, wantErr) {
		t.Errorf("got error %v, want %v", err, wantErr)
	}

	step, err := ChemistryStep(func() (chemrad.Network, error) {
		return &failingNetwork{linearNetwork: linearNetwork{a: [][]float64{{0}}}}, nil
	}, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	d := &chemrad.Domain{
		Dt: 1,
		Cells: []*chemrad.Cell{{
			State: chemrad.PhysicalState{NH: 1, Temp: 1},
			Abund: []float64{1},
		}},
	}
	if err := step(d); !errors.Is(err, errBroken) {
		t.Errorf("got error %v, want %v", err, errBroken)
	}
}
