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

// Package gow16 implements the reduced interstellar-medium chemical
// network of Gong, Ostriker and Wolfire (2016), ApJ 822, 65. It tracks
// 12 gas-phase species plus the specific internal energy, derives six
// conserved reservoir ("ghost") species from elemental and charge
// conservation, and provides the right-hand side and analytic Jacobian
// callbacks required by an implicit stiff ODE solver, together with the
// heating and cooling terms needed for energy feedback.
package gow16

import (
	"fmt"

	"github.com/ismmodel/chemrad"
)

// Indices of the tracked species in the abundance vector. The last
// entry, iE, is the specific internal energy per hydrogen nucleus
// [erg], integrated alongside the abundances so that heating and
// cooling feed back on the temperature.
const (
	iHeP = iota // He+
	iOHx        // OH and H2O lumped
	iCHx        // CH and CH2 lumped
	iCO
	iCP   // C+
	iHCOP // HCO+
	iH2
	iHP  // H+
	iH3P // H3+
	iH2P // H2+
	iOP  // O+
	iSiP // Si+
	iE   // internal energy per H [erg]

	// NSpecies is the number of tracked ODE state variables.
	NSpecies
)

// Indices of the ghost species in the extended abundance vector
// returned by Resolve. Ghosts are derived from conservation laws and
// are never integrated directly.
const (
	igSi = NSpecies + iota // atomic Si reservoir
	igC                    // atomic C reservoir
	igO                    // atomic O reservoir
	igHe                   // atomic He reservoir
	igE                    // free electrons, from charge conservation
	igH                    // atomic H reservoir

	nAll // tracked + ghost
)

// NGhost is the number of derived reservoir species.
const NGhost = nAll - NSpecies

var speciesNames = []string{"He+", "OHx", "CHx", "CO", "C+", "HCO+",
	"H2", "H+", "H3+", "H2+", "O+", "Si+", "E"}

var ghostNames = []string{"*Si", "*C", "*O", "*He", "*e", "*H"}

// Config holds the network parameters. The zero value is not usable;
// start from DefaultConfig.
type Config struct {
	// Zdg is the dust and metal abundance relative to solar
	// (the dust-to-gas ratio scale).
	Zdg float64

	// Gas-phase elemental abundances per hydrogen nucleus at Zdg = 1.
	XHe float64
	XC  float64
	XO  float64
	XSi float64

	// CRRate is the primary cosmic-ray ionization rate per hydrogen
	// nucleus [s⁻¹].
	CRRate float64

	// CRShielding enables attenuation of cosmic-ray rates with the
	// total hydrogen column.
	CRShielding bool

	// ConstTemp freezes the temperature at its InitializeNextStep
	// value: the energy equation right-hand side is set to zero.
	ConstTemp bool

	// H2RovibCooling enables rovibrational line cooling by H2.
	H2RovibCooling bool

	// Temperature clamps applied when evaluating rate fits. Values
	// outside this range use the clamped temperature for rate
	// evaluation only; the reported temperature is unchanged.
	TempMinRates float64
	TempMaxRates float64

	// Heating and cooling are switched off outside this range.
	TempMaxHeat float64
	TempMinCool float64
}

// DefaultConfig returns the standard GOW16 parameter set for solar
// neighborhood conditions.
func DefaultConfig() Config {
	return Config{
		Zdg:          1.0,
		XHe:          0.1,
		XC:           1.6e-4,
		XO:           3.2e-4,
		XSi:          1.7e-6,
		CRRate:       2.0e-16,
		TempMinRates: 1.0,
		TempMaxRates: 1.0e9,
		TempMaxHeat:  1.0e5,
		TempMinCool:  1.0,
	}
}

// Network implements the chemrad.Network interface for the GOW16
// chemistry. A Network carries per-step mutable state (the frozen rate
// coefficients and physical-state snapshot) and therefore must not be
// shared between concurrently integrated cells; create one instance per
// worker.
type Network struct {
	cfg Config

	// elemental abundances scaled by Zdg
	xC, xO, xSi float64

	channels []Channel  // shared, read-only reaction table
	deltas   [][]stoich // net tracked-species multiplicity per channel

	// per-step state, set by InitializeNextStep
	ratesReady bool
	nH         float64
	tempInit   float64
	rates      []float64 // frozen rate coefficients, one per channel
	state      chemrad.PhysicalState
	psiGr      float64 // grain charging parameter at the snapshot

	hc HeatCool // heating/cooling terms from the last RHS call

	// scratch space
	xall []float64
	fwd  []float64
}

var _ chemrad.Network = (*Network)(nil)

// NewNetwork builds a GOW16 network with the given configuration. The
// reaction table is constructed once and is immutable afterward.
func NewNetwork(cfg Config) (*Network, error) {
	if cfg.Zdg <= 0 {
		return nil, fmt.Errorf("gow16: non-positive dust-to-gas ratio %g", cfg.Zdg)
	}
	if cfg.TempMinRates <= 0 || cfg.TempMaxRates <= cfg.TempMinRates {
		return nil, fmt.Errorf("gow16: invalid rate temperature clamps [%g, %g]",
			cfg.TempMinRates, cfg.TempMaxRates)
	}
	n := &Network{
		cfg:      cfg,
		xC:       cfg.XC * cfg.Zdg,
		xO:       cfg.XO * cfg.Zdg,
		xSi:      cfg.XSi * cfg.Zdg,
		channels: reactionTable(),
		xall:     make([]float64, nAll),
		fwd:      make([]float64, NSpecies),
	}
	n.deltas = netStoich(n.channels)
	n.rates = make([]float64, len(n.channels))
	return n, nil
}

// Species returns the tracked species names.
func (n *Network) Species() []string {
	out := make([]string, len(speciesNames))
	copy(out, speciesNames)
	return out
}

// AllSpecies returns the tracked species names followed by the ghost
// species names.
func (n *Network) AllSpecies() []string {
	out := make([]string, 0, nAll)
	out = append(out, speciesNames...)
	out = append(out, ghostNames...)
	return out
}

// Len returns the number of tracked ODE state variables.
func (n *Network) Len() int { return NSpecies }

// ghostWeights maps each ghost species to the stoichiometric weights of
// the tracked species that consume its reservoir. Ghost abundance is
// total − Σ weight·y, except for electrons where the "total" is zero
// and the weights are positive cation charges.
var ghostWeights = [NGhost][NSpecies]float64{
	igSi - NSpecies: {iSiP: 1},
	igC - NSpecies:  {iCHx: 1, iCO: 1, iCP: 1, iHCOP: 1},
	igO - NSpecies:  {iOHx: 1, iCO: 1, iHCOP: 1, iOP: 1},
	igHe - NSpecies: {iHeP: 1},
	igE - NSpecies: {iHeP: -1, iCP: -1, iHCOP: -1, iHP: -1,
		iH3P: -1, iH2P: -1, iOP: -1, iSiP: -1},
	igH - NSpecies: {iOHx: 1, iCHx: 1, iHCOP: 1, iH2: 2,
		iHP: 1, iH3P: 3, iH2P: 2},
}

// ghostTotal returns the conserved elemental total for ghost index g
// (in [NSpecies, nAll)).
func (n *Network) ghostTotal(g int) float64 {
	switch g {
	case igSi:
		return n.xSi
	case igC:
		return n.xC
	case igO:
		return n.xO
	case igHe:
		return n.cfg.XHe
	case igE:
		return 0 // electrons come entirely from the tracked cations
	case igH:
		return 1
	}
	return 0
}

// Resolve computes the extended abundance vector: the tracked
// abundances followed by the ghost reservoir abundances derived from
// elemental and charge conservation. If transient solver iterates push
// a reservoir negative it is clamped to zero, a deliberate physical
// floor rather than an error. The result is written into xall, which
// must have length NSpecies+NGhost.
func (n *Network) Resolve(y []float64, xall []float64) {
	copy(xall[:NSpecies], y[:NSpecies])
	for g := NSpecies; g < nAll; g++ {
		v := n.ghostTotal(g)
		w := &ghostWeights[g-NSpecies]
		for s := 0; s < NSpecies; s++ {
			v -= w[s] * y[s]
		}
		if v < 0 {
			v = 0
		}
		xall[g] = v
	}
}

// InitializeNextStep snapshots the physical conditions for the coming
// macro step and freezes the reaction-rate coefficients. Rates are not
// recomputed during the solver's sub-iterations; this trades some
// accuracy for solver stability and is the documented approximation of
// the scheme, not an oversight.
func (n *Network) InitializeNextStep(state chemrad.PhysicalState, y []float64) error {
	if err := state.Check(); err != nil {
		return err
	}
	if len(state.Rad) < nFreq {
		return fmt.Errorf("gow16: radiation field has %d bands, need %d",
			len(state.Rad), nFreq)
	}
	n.state = state
	n.nH = state.NH
	n.tempInit = state.Temp

	xe := state.Xe
	if y != nil {
		n.Resolve(y, n.xall)
		xe = n.xall[igE]
	}
	n.updateRates(state, xe)
	n.ratesReady = true
	return nil
}

// Temperature returns the gas temperature implied by the abundance
// vector. In constant-temperature mode this is the InitializeNextStep
// snapshot; otherwise it is derived from the internal energy assuming
// an ideal monatomic-dominated gas:
//
//	T = E / (1.5 kB (1.1 + x_e − x_H2))
//
// where 1.1 counts hydrogen nuclei plus helium per H.
func (n *Network) Temperature(y []float64) float64 {
	if n.cfg.ConstTemp {
		return n.tempInit
	}
	n.Resolve(y, n.xall)
	npart := 1.1 + n.xall[igE] - y[iH2]
	if npart < small {
		npart = small
	}
	t := y[iE] / (1.5 * kBoltz * npart)
	if t < small {
		t = small
	}
	return t
}

// Indices exported for callers assembling abundance vectors.
const (
	IndexH2  = iH2
	IndexCO  = iCO
	IndexCP  = iCP
	IndexHP  = iHP
	IndexSiP = iSiP
	IndexE   = iE
)

// TotalCarbon returns the metallicity-scaled gas-phase carbon abundance
// per hydrogen nucleus.
func (n *Network) TotalCarbon() float64 { return n.xC }

// TotalOxygen returns the metallicity-scaled gas-phase oxygen abundance
// per hydrogen nucleus.
func (n *Network) TotalOxygen() float64 { return n.xO }

// TotalSilicon returns the metallicity-scaled gas-phase silicon
// abundance per hydrogen nucleus.
func (n *Network) TotalSilicon() float64 { return n.xSi }

// EnergyFromTemperature returns the specific internal energy per
// hydrogen nucleus that corresponds to temperature temp for the
// composition y, inverting the relation used by Temperature.
func (n *Network) EnergyFromTemperature(temp float64, y []float64) float64 {
	n.Resolve(y, n.xall)
	npart := 1.1 + n.xall[igE] - y[iH2]
	if npart < small {
		npart = small
	}
	return 1.5 * kBoltz * npart * temp
}

// a small number to avoid divide by zero
const small = 1e-50

// kBoltz is the Boltzmann constant [erg/K].
const kBoltz = 1.380649e-16
