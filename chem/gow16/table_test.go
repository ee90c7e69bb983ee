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
	"math"
	"testing"
)

// Elemental and charge composition of every species in the extended
// abundance vector, used to verify that the reaction table together
// with the conservation-law bookkeeping conserves every element.
var composition = map[int]struct {
	h, he, c, o, si, q float64
}{
	iHeP:  {he: 1, q: 1},
	iOHx:  {h: 1, o: 1},
	iCHx:  {h: 1, c: 1},
	iCO:   {c: 1, o: 1},
	iCP:   {c: 1, q: 1},
	iHCOP: {h: 1, c: 1, o: 1, q: 1},
	iH2:   {h: 2},
	iHP:   {h: 1, q: 1},
	iH3P:  {h: 3, q: 1},
	iH2P:  {h: 2, q: 1},
	iOP:   {o: 1, q: 1},
	iSiP:  {si: 1, q: 1},
	igSi:  {si: 1},
	igC:   {c: 1},
	igO:   {o: 1},
	igHe:  {he: 1},
	igE:   {q: -1},
	igH:   {h: 1},
}

// elementChange returns the net change of each conserved quantity per
// unit reaction of channel ch: the contribution of the tracked-species
// stoichiometry plus the implicit reservoir adjustments the
// conservation laws will apply when the reservoirs are re-derived.
func elementChange(deltas []stoich) (h, he, c, o, si, q float64) {
	// Reservoir response to the tracked changes.
	ghost := make([]float64, NGhost)
	for g := 0; g < NGhost; g++ {
		for _, st := range deltas {
			ghost[g] -= ghostWeights[g][st.s] * st.d
		}
	}
	for _, st := range deltas {
		e := composition[st.s]
		h += e.h * st.d
		he += e.he * st.d
		c += e.c * st.d
		o += e.o * st.d
		si += e.si * st.d
		q += e.q * st.d
	}
	for g := 0; g < NGhost; g++ {
		e := composition[NSpecies+g]
		h += e.h * ghost[g]
		he += e.he * ghost[g]
		c += e.c * ghost[g]
		o += e.o * ghost[g]
		si += e.si * ghost[g]
		q += e.q * ghost[g]
	}
	return
}

func TestReactionTableConservesElements(t *testing.T) {
	const tol = 1.0e-12

	channels := reactionTable()
	if len(channels) != nChannel {
		t.Fatalf("reaction table has %d channels, want %d", len(channels), nChannel)
	}
	deltas := netStoich(channels)
	for i := range channels {
		h, he, c, o, si, q := elementChange(deltas[i])
		for _, v := range []struct {
			name string
			val  float64
		}{
			{"H", h}, {"He", he}, {"C", c}, {"O", o}, {"Si", si}, {"charge", q},
		} {
			if math.Abs(v.val) > tol {
				t.Errorf("channel %d does not conserve %s: net change %g",
					i, v.name, v.val)
			}
		}
	}
}

func TestReactionTableNeverTouchesEnergy(t *testing.T) {
	for i, ch := range reactionTable() {
		for _, s := range append(append([]int{}, ch.In...), ch.Out...) {
			if s == iE {
				t.Errorf("channel %d lists the internal energy as a reactant or product", i)
			}
		}
	}
}

func TestNamedChannelIndices(t *testing.T) {
	channels := reactionTable()

	// The rate engine addresses these channels by index; a reordered
	// table must fail here rather than silently misassign rates.
	checks := []struct {
		idx  int
		kind Kind
		in0  int
	}{
		{icrH2, CosmicRay, iH2},
		{icrHe, CosmicRay, igHe},
		{icrH, CosmicRay, igH},
		{i2CPH2, TwoBody, iCP},
		{i2CPRec, TwoBody, iCP},
		{i2HPRec, TwoBody, iHP},
		{i2H2DisH, TwoBody, iH2},
		{i2H2Dis2, TwoBody, iH2},
		{iphH2, Photo, iH2},
		{iphCO, Photo, iCO},
		{iphC, Photo, igC},
		{igrH2, Grain, igH},
		{igrHP, Grain, iHP},
	}
	for _, ck := range checks {
		ch := channels[ck.idx]
		if ch.Kind != ck.kind {
			t.Errorf("channel %d kind = %v, want %v", ck.idx, ch.Kind, ck.kind)
		}
		if ch.In[0] != ck.in0 {
			t.Errorf("channel %d first reactant = %d, want %d", ck.idx, ch.In[0], ck.in0)
		}
	}

	// Collisional channels must carry the temperature gate.
	for _, idx := range []int{i2H2DisH, i2H2Dis2, i2HIIon} {
		if channels[idx].MinTemp != tempColl {
			t.Errorf("channel %d minimum temperature = %g, want %g",
				idx, channels[idx].MinTemp, tempColl)
		}
	}
}

func TestSpecialFormsAssigned(t *testing.T) {
	channels := reactionTable()
	want := map[int]Special{
		i2CPH2:   SpecialCHx,
		i2CPOH:   SpecialCPOH,
		i2CPRec:  SpecialCPRec,
		i2HPRec:  SpecialHPRecB,
		i2H2Dis2: SpecialH2Coll,
	}
	for idx, sp := range want {
		if channels[idx].Special != sp {
			t.Errorf("channel %d special form = %v, want %v",
				idx, channels[idx].Special, sp)
		}
	}
}
