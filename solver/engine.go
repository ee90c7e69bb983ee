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
	"fmt"
	"runtime"
	"sync"

	"github.com/ismmodel/chemrad"
)

// ChemistryStep returns a domain manipulator that advances the
// chemistry of every cell by the domain time step. Networks hold
// per-step rate state, so each worker owns a private network and
// integrator created through newNet; cells are striped across workers
// and each cell is visited exactly once per invocation.
func ChemistryStep(newNet func() (chemrad.Network, error), opt Options) (chemrad.DomainManipulator, error) {
	nprocs := runtime.GOMAXPROCS(0)
	nets := make([]chemrad.Network, nprocs)
	sols := make([]*Implicit, nprocs)
	for pp := 0; pp < nprocs; pp++ {
		net, err := newNet()
		if err != nil {
			return nil, err
		}
		nets[pp] = net
		sols[pp] = New(net, opt)
	}

	return func(d *chemrad.Domain) error {
		var wg sync.WaitGroup
		wg.Add(nprocs)
		errs := make([]error, nprocs)
		for pp := 0; pp < nprocs; pp++ {
			go func(pp int) {
				defer wg.Done()
				net, sol := nets[pp], sols[pp]
				for ii := pp; ii < len(d.Cells); ii += nprocs {
					c := d.Cells[ii]
					if err := net.InitializeNextStep(c.State, c.Abund); err != nil {
						errs[pp] = fmt.Errorf("cell %d: %w", c.Row, err)
						return
					}
					if err := sol.Advance(0, d.Dt, c.Abund); err != nil {
						errs[pp] = fmt.Errorf("cell %d: %w", c.Row, err)
						return
					}
				}
			}(pp)
		}
		wg.Wait()
		for _, err := range errs {
			if err != nil {
				return err
			}
		}
		return nil
	}, nil
}
