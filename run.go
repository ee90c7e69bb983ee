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
	"fmt"
	"io"
	"runtime"
	"sync"

	"github.com/GaryBoone/GoStats/stats"
)

// Calculations returns a function that concurrently runs a series of
// calculations on all of the grid cells in the domain. Each cell is
// visited by exactly one worker per invocation, so the calculators may
// freely mutate the cell they are given.
func Calculations(calculators ...CellManipulator) DomainManipulator {
	return func(d *Domain) error {
		nprocs := runtime.GOMAXPROCS(0) // number of processors
		var wg sync.WaitGroup
		wg.Add(nprocs)
		for pp := 0; pp < nprocs; pp++ {
			go func(pp int) {
				defer wg.Done()
				for ii := pp; ii < len(d.Cells); ii += nprocs {
					c := d.Cells[ii]
					for _, f := range calculators {
						f(c, d.Dt)
					}
				}
			}(pp)
		}
		wg.Wait()
		return nil
	}
}

// StepsCompletedCheck returns a function that sets the Done flag after
// numSteps macro steps have been run.
func StepsCompletedCheck(numSteps int) DomainManipulator {
	step := 0
	return func(d *Domain) error {
		step++
		if step >= numSteps {
			d.Done = true
		}
		return nil
	}
}

// Run advances the domain by repeatedly applying the given manipulators
// in order until one of them sets the Done flag.
func (d *Domain) Run(funcs ...DomainManipulator) error {
	for !d.Done {
		for _, f := range funcs {
			if err := f(d); err != nil {
				return err
			}
		}
	}
	return nil
}

// SummaryStatistics writes the mean and sample standard deviation of
// every tracked species abundance across the domain, for post-hoc
// inspection of a run.
func (d *Domain) SummaryStatistics(n Network, w io.Writer) error {
	names := n.Species()
	for i, name := range names {
		var s stats.Stats
		for _, c := range d.Cells {
			s.Update(c.Abund[i])
		}
		if _, err := fmt.Fprintf(w, "%8s: mean %.6e stddev %.6e\n",
			name, s.Mean(), s.SampleStandardDeviation()); err != nil {
			return err
		}
	}
	return nil
}
