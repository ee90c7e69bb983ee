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

	"github.com/ismmodel/chemrad"
)

// avPerColumn converts total hydrogen column density to visual
// extinction at solar dust abundance: A_V = N_H Z'_d / 1.87e21 cm⁻².
const avPerColumn = 1.0 / 1.87e21

// updateRates recomputes the frozen rate coefficient for every channel
// from the physical-state snapshot. Density is folded into the two-body
// and grain coefficients, so every channel rate is
// rates[ch] · Π x(reactant) in units of s⁻¹ per hydrogen nucleus.
// The temperature is clamped to [TempMinRates, TempMaxRates] before
// evaluating any fit; the clamp prevents overflow of the power-law and
// exponential terms and is used for rate evaluation only.
func (n *Network) updateRates(state chemrad.PhysicalState, xe float64) {
	temp := state.Temp
	if temp < n.cfg.TempMinRates {
		temp = n.cfg.TempMinRates
	} else if temp > n.cfg.TempMaxRates {
		temp = n.cfg.TempMaxRates
	}

	av := state.Col[chemrad.ColHTot] * n.cfg.Zdg * avPerColumn
	crScale := n.cfg.CRRate
	if n.cfg.CRShielding {
		crScale *= crAttenuation(state.Col[chemrad.ColHTot])
	}

	// Grain charging parameter ψ = G √T / n_e, with the photoelectric
	// band in Habing units (1 Draine = 1.7 Habing).
	ne := n.nH * xe
	psi := 1.7 * state.Rad[IndexGPE] * math.Sqrt(temp) / (ne + small)
	n.psiGr = psi

	for i := range n.channels {
		ch := &n.channels[i]
		var k float64
		switch ch.Kind {
		case CosmicRay:
			k = ch.Base * crScale

		case TwoBody:
			if ch.MinTemp > 0 && temp < ch.MinTemp {
				k = 0
				break
			}
			switch ch.Special {
			case SpecialCHx:
				k = kCHxForm(temp)
			case SpecialCPOH:
				k = 9.15e-10 * (0.62 + 45.41/math.Sqrt(temp))
			case SpecialCPRec:
				k = kCPlusRec(temp)
			case SpecialHPRecB:
				k = kHPlusRecB(temp)
			case SpecialH2Coll:
				k = kH2CollDiss(temp)
			default:
				k = ch.Base * math.Pow(temp/300.0, ch.TExp)
				if ch.ETemp != 0 {
					k *= math.Exp(-ch.ETemp / temp)
				}
			}
			k *= n.nH

		case Photo:
			shield := math.Exp(-ch.AvFac * av)
			switch i {
			case iphH2:
				shield *= shieldH2(state.Col[chemrad.ColH2])
			case iphCO:
				shield *= shieldCO(state.Col[chemrad.ColCO], state.Col[chemrad.ColH2])
			case iphC:
				shield *= shieldC(state.Col[chemrad.ColC], state.Col[chemrad.ColH2])
			}
			k = ch.Base * state.Rad[ch.Band] * shield

		case Grain:
			if ch.GrainFit == nil {
				// H2 formation on dust.
				k = ch.Base * n.cfg.Zdg
			} else {
				k = grainRec(ch.GrainFit, temp, psi) * n.cfg.Zdg
			}
			k *= n.nH
		}
		n.rates[i] = k
	}
}

// crAttenuation approximates the attenuation of the cosmic-ray
// ionization rate with total hydrogen column (Neufeld & Wolfire 2017).
func crAttenuation(colHTot float64) float64 {
	const n0 = 1.0e20 // cm⁻², column below which attenuation is negligible
	if colHTot <= n0 {
		return 1
	}
	return math.Pow(colHTot/n0, -0.385)
}

// kCHxForm is the CH-forming channel C+ + H2 -> CHx + H: a four-term
// exponential correction on a weak power law, fit to the rate
// compilation used by Gong, Ostriker & Wolfire (2016).
func kCHxForm(temp float64) float64 {
	var s float64
	for i := range cKCHx {
		s += cKCHx[i] * math.Exp(-tiKCHx[i]/temp)
	}
	return aKCHx * math.Pow(temp/300.0, nKCHx) * s
}

// kCPlusRec is the radiative plus dielectronic recombination rate for
// C+ + e (Badnell 2003, 2006 fits).
func kCPlusRec(temp float64) float64 {
	const (
		a  = 2.995e-9
		t0 = 6.670e-3
		t1 = 1.943e6
	)
	b := 0.7849 + 0.1597*math.Exp(-49550.0/temp)
	rr := a / (math.Sqrt(temp/t0) *
		math.Pow(1+math.Sqrt(temp/t0), 1-b) *
		math.Pow(1+math.Sqrt(temp/t1), 1+b))
	dr := math.Pow(temp, -1.5) * (6.346e-9*math.Exp(-12.17/temp) +
		9.793e-9*math.Exp(-73.8/temp) +
		1.634e-6*math.Exp(-15230.0/temp))
	return rr + dr
}

// kHPlusRecB is the case-B radiative recombination rate for H+ + e
// (Ferland et al. 1992 fit).
func kHPlusRecB(temp float64) float64 {
	return 2.753e-14 * math.Pow(315614.0/temp, 1.5) *
		math.Pow(1+math.Pow(115188.0/temp, 0.407), -2.242)
}

// kH2CollDiss is the collisional dissociation rate of H2 by H2
// (Martin, Schwarz & Mandy 1996 fit, low-density limit).
func kH2CollDiss(temp float64) float64 {
	return 5.996e-30 * math.Pow(temp, 4.1881) /
		math.Pow(1+6.761e-6*temp, 5.6881) *
		math.Exp(-54657.4/temp)
}

// grainRec evaluates the Weingartner & Draine (2001) grain-assisted
// recombination fit for one ion, per unit dust abundance.
func grainRec(c []float64, temp, psi float64) float64 {
	if psi < small {
		psi = small
	}
	return 1.0e-14 * c[0] /
		(1 + c[1]*math.Pow(psi, c[2])*
			(1+c[3]*math.Pow(temp, c[4])*math.Pow(psi, -c[5]-c[6]*math.Log(temp))))
}

// Rates returns a copy of the frozen rate-coefficient vector, one entry
// per reaction channel, as computed by the last InitializeNextStep.
func (n *Network) Rates() []float64 {
	out := make([]float64, len(n.rates))
	copy(out, n.rates)
	return out
}

// Channels returns the shared read-only reaction table.
func (n *Network) Channels() []Channel { return n.channels }
