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
	"io"
)

var kindNames = map[Kind]string{
	CosmicRay: "cosmic-ray",
	TwoBody:   "two-body",
	Photo:     "photo",
	Grain:     "grain",
}

// OutputProperties writes a text dump of the network configuration and
// the current frozen rates and thermal terms, for post-hoc inspection.
// It is not part of the control path.
func (n *Network) OutputProperties(w io.Writer) error {
	names := n.AllSpecies()
	if _, err := fmt.Fprintf(w, "GOW16 network: %d species + %d ghosts, %d channels\n",
		NSpecies, NGhost, len(n.channels)); err != nil {
		return err
	}
	fmt.Fprintf(w, "parameters: Zdg=%g xHe=%g xC=%g xO=%g xSi=%g crRate=%g\n",
		n.cfg.Zdg, n.cfg.XHe, n.xC, n.xO, n.xSi, n.cfg.CRRate)
	if n.ratesReady {
		fmt.Fprintf(w, "snapshot: nH=%g cm^-3, T=%g K, psi=%g\n",
			n.nH, n.tempInit, n.psiGr)
	}
	for i, ch := range n.channels {
		fmt.Fprintf(w, "%10s ", kindNames[ch.Kind])
		for j, s := range ch.In {
			if j > 0 {
				fmt.Fprint(w, " + ")
			}
			fmt.Fprint(w, names[s])
		}
		fmt.Fprint(w, " -> ")
		for j, s := range ch.Out {
			if j > 0 {
				fmt.Fprint(w, " + ")
			}
			fmt.Fprint(w, names[s])
		}
		if n.ratesReady {
			fmt.Fprintf(w, "  k=%.4e", n.rates[i])
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	if n.ratesReady {
		h := n.hc
		fmt.Fprintf(w, "heating: CR=%.3e PE=%.3e H2gr=%.3e H2pump=%.3e H2diss=%.3e\n",
			h.CR, h.PE, h.H2Grain, h.H2Pump, h.H2Diss)
		_, err := fmt.Fprintf(w, "cooling: CII=%.3e CI=%.3e OI=%.3e Lya=%.3e CO=%.3e Rec=%.3e H2coll=%.3e HIion=%.3e\n",
			h.CII, h.CI, h.OI, h.Lya, h.CO, h.Rec, h.H2Coll, h.HIIon)
		return err
	}
	return nil
}
