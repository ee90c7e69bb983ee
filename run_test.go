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

package chemrad

import (
	"bytes"
	"io"
	"strings"
	"testing"
)

func testDomain(ncells int) *Domain {
	d := &Domain{Dt: 1}
	for i := 0; i < ncells; i++ {
		d.Cells = append(d.Cells, &Cell{
			Row:   i,
			State: PhysicalState{NH: 100, Temp: 50},
			Abund: []float64{float64(i), 2 * float64(i)},
		})
	}
	return d
}

func TestCalculationsVisitsEveryCellOnce(t *testing.T) {
	const ncells = 101 // deliberately not a multiple of the worker count

	d := testDomain(ncells)
	visits := make([]int, ncells)
	calc := Calculations(func(c *Cell, Δt float64) {
		visits[c.Row]++ // cells are striped, so no two workers share one
		if Δt != d.Dt {
			t.Errorf("cell %d got Δt = %g, want %g", c.Row, Δt, d.Dt)
		}
	})
	if err := calc(d); err != nil {
		t.Fatal(err)
	}
	for i, v := range visits {
		if v != 1 {
			t.Errorf("cell %d visited %d times, want 1", i, v)
		}
	}
}

func TestCalculationsAppliesCalculatorsInOrder(t *testing.T) {
	d := testDomain(8)
	calc := Calculations(
		func(c *Cell, Δt float64) { c.Abund[0] += 1 },
		func(c *Cell, Δt float64) { c.Abund[0] *= 2 },
	)
	if err := calc(d); err != nil {
		t.Fatal(err)
	}
	for i, c := range d.Cells {
		want := (float64(i) + 1) * 2
		if c.Abund[0] != want {
			t.Errorf("cell %d = %g, want %g", i, c.Abund[0], want)
		}
	}
}

func TestRunStopsAfterSteps(t *testing.T) {
	const numSteps = 7

	d := testDomain(4)
	steps := 0
	count := func(d *Domain) error { steps++; return nil }
	if err := d.Run(count, StepsCompletedCheck(numSteps)); err != nil {
		t.Fatal(err)
	}
	if steps != numSteps {
		t.Errorf("ran %d steps, want %d", steps, numSteps)
	}
	if !d.Done {
		t.Error("Done flag not set after run")
	}
}

func TestPhysicalStateCheck(t *testing.T) {
	good := PhysicalState{NH: 1, Temp: 10}
	if err := good.Check(); err != nil {
		t.Error(err)
	}
	for _, bad := range []PhysicalState{
		{NH: 0, Temp: 10},
		{NH: -1, Temp: 10},
		{NH: 1, Temp: 0},
		{NH: 1, Temp: -5},
	} {
		if err := bad.Check(); err == nil {
			t.Errorf("expected error for state %+v", bad)
		}
	}
}

// statNetwork provides species names for SummaryStatistics.
type statNetwork struct{}

func (statNetwork) Species() []string { return []string{"H2", "CO"} }
func (statNetwork) Len() int          { return 2 }
func (statNetwork) InitializeNextStep(PhysicalState, []float64) error {
	return nil
}
func (statNetwork) RHS(t float64, y, ydot []float64) error { return nil }
func (statNetwork) Jacobian(t float64, y, fy []float64, jac [][]float64) error {
	return nil
}
func (statNetwork) OutputProperties(w io.Writer) error { return nil }

func TestSummaryStatistics(t *testing.T) {
	d := testDomain(5) // abundances 0..4 and 0..8 by twos

	var buf bytes.Buffer
	if err := d.SummaryStatistics(statNetwork{}, &buf); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "H2") || !strings.Contains(out, "CO") {
		t.Errorf("summary missing species names:\n%s", out)
	}
	// Mean of 0..4 is 2.
	if !strings.Contains(out, "2.000000e+00") {
		t.Errorf("summary missing expected mean:\n%s", out)
	}
}
