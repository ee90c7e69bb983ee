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

// erg per electron volt
const eV = 1.602176634e-12

// HeatCool holds the per-process heating and cooling rates, all in
// erg s⁻¹ per hydrogen nucleus. They are accumulated as a byproduct of
// RHS evaluation with the same frozen rate vector as the abundance
// derivatives.
type HeatCool struct {
	// heating
	CR      float64 // cosmic-ray ionization
	PE      float64 // photoelectric effect on dust
	H2Grain float64 // H2 formation on dust
	H2Pump  float64 // H2 UV pumping
	H2Diss  float64 // H2 photodissociation

	// cooling
	CII     float64 // C+ fine structure, 158 μm
	CI      float64 // C fine structure
	OI      float64 // O fine structure, 63 μm
	Lya     float64 // Lyman-α
	CO      float64 // CO rotational lines
	Rec     float64 // electron recombination on dust
	H2Coll  float64 // collisional dissociation of H2
	HIIon   float64 // collisional ionization of H
	H2Rovib float64 // H2 rovibrational lines (optional)
}

// Heating returns the sum of the heating terms.
func (h HeatCool) Heating() float64 {
	return h.CR + h.PE + h.H2Grain + h.H2Pump + h.H2Diss
}

// Cooling returns the sum of the cooling terms.
func (h HeatCool) Cooling() float64 {
	return h.CII + h.CI + h.OI + h.Lya + h.CO + h.Rec +
		h.H2Coll + h.HIIon + h.H2Rovib
}

// Total returns net heating minus cooling [erg/s per H].
func (h HeatCool) Total() float64 { return h.Heating() - h.Cooling() }

// thermo evaluates the heating and cooling terms at abundance vector y
// (with resolved reservoirs xall) and gas temperature temp, using the
// frozen rate coefficients. Heating is switched off above TempMaxHeat
// and cooling below TempMinCool.
func (n *Network) thermo(y, xall []float64, temp float64) HeatCool {
	var h HeatCool
	nH := n.nH
	xe := xall[igE]
	xHI := xall[igH]
	gpe := n.state.Rad[IndexGPE]

	if temp <= n.cfg.TempMaxHeat {
		// 10 eV deposited per cosmic-ray ionization.
		h.CR = 10 * eV * (n.rates[icrH2]*y[iH2] +
			n.rates[icrHe]*xall[igHe] + n.rates[icrH]*xHI)

		// Photoelectric heating on dust, Wolfire et al. (2003)
		// Equations 19-20, with ψ frozen at the step snapshot.
		psi := n.psiGr + small
		eps := 4.9e-2/(1+math.Pow(psi/963.0, 0.73)) +
			3.7e-2*math.Pow(temp/1e4, 0.7)/(1+psi/2500.0)
		h.PE = 1.3e-24 * eps * 1.7 * gpe * n.cfg.Zdg

		// 0.2 of the 4.48 eV binding energy deposited per H2 formed
		// on dust (Hollenbach & McKee 1979).
		h.H2Grain = 0.2 * 4.48 * eV * n.rates[igrH2] * xHI

		// ~9 pumping events per photodissociation, each depositing
		// ~2 eV when collisional de-excitation wins over fluorescence.
		fdep := 1.0 / (1.0 + 2.6e3/nH)
		h.H2Pump = 9.0 * 2.0 * eV * fdep * n.rates[iphH2] * y[iH2]

		// 0.4 eV kinetic energy per photodissociation.
		h.H2Diss = 0.4 * eV * n.rates[iphH2] * y[iH2]
	}

	if temp >= n.cfg.TempMinCool {
		// Optically thin fine-structure cooling as effective two-level
		// systems; upward collision rates per partner from the fits
		// compiled in Draine (2011).
		h.CII = lineCool(temp, 91.21, y[iCP], nH,
			8.0e-10*math.Pow(temp/100, 0.07)*xHI+
				8.6e-6/math.Sqrt(temp)*xe)
		h.CI = lineCool(temp, 24.0, xall[igC], nH,
			1.0e-10*math.Pow(temp/100, 0.5)*xHI)
		h.OI = lineCool(temp, 228.0, xall[igO], nH,
			4.2e-10*math.Pow(temp/100, 0.57)*xHI)

		// Lyman-α (Spitzer 1978).
		h.Lya = 7.3e-19 * xe * xHI * math.Exp(-118400.0/temp) * nH

		// CO rotational cooling: low-density fit suppressed by the
		// effective optical depth N_CO/b, approximating the LVG
		// tables used by Gong, Ostriker & Wolfire (2016).
		b := n.state.BCO
		if b < 1.0e3 {
			b = 1.0e3 // cm/s floor on the linewidth
		}
		nEff := n.state.Col[chemrad.ColCO] * 1.0e5 / b
		h.CO = y[iCO] * nH * 2.0e-26 * math.Pow(temp/10.0, 1.5) /
			(1 + math.Pow(nEff/3.3e15, 0.6))

		// Electron recombination on dust, Wolfire et al. (2003)
		// Equation 21.
		psi := n.psiGr + small
		beta := 0.74 / math.Pow(temp, 0.068)
		h.Rec = 4.65e-30 * math.Pow(temp, 0.94) * math.Pow(psi, beta) *
			xe * n.cfg.Zdg * nH

		// 4.48 eV removed per collisional dissociation of H2.
		rDiss := n.rates[i2H2DisH]*y[iH2]*xHI +
			n.rates[i2H2Dis2]*y[iH2]*y[iH2]
		h.H2Coll = 4.48 * eV * rDiss

		// 13.6 eV removed per collisional ionization of H.
		h.HIIon = 13.6 * eV * n.rates[i2HIIon] * xHI * xe

		if n.cfg.H2RovibCooling {
			// Crude low-density limit of the Glover & Abel (2008)
			// H2 cooling function.
			h.H2Rovib = y[iH2] * xHI * nH * 1.0e-27 *
				math.Sqrt(temp) * math.Exp(-512.0/temp)
		}
	}
	return h
}

// lineCool returns the optically thin cooling rate [erg/s per H] of an
// effective two-level system with excitation temperature tx [K],
// abundance x of the cooling species, and total upward collision rate
// coefficient q [cm³/s] already folded with the partner abundances.
func lineCool(temp, tx, x, nH, q float64) float64 {
	return kBoltz * tx * x * nH * q * math.Exp(-tx/temp)
}
