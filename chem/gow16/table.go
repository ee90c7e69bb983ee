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

// Kind labels the rate-law category of a reaction channel.
type Kind int

const (
	// CosmicRay channels scale with the cosmic-ray ionization rate.
	CosmicRay Kind = iota
	// TwoBody channels follow k = Base (T/300K)^TExp exp(−ETemp/T),
	// unless a Special form overrides the fit.
	TwoBody
	// Photo channels scale with the radiation intensity in Band,
	// attenuated by dust extinction and molecular self-shielding.
	Photo
	// Grain channels are grain-surface processes; recombination
	// channels use the Weingartner & Draine (2001) charging fits.
	Grain
)

// Special identifies channels whose rate coefficient does not follow
// the tabulated power-law/Arrhenius form.
type Special int

const (
	NoSpecial Special = iota
	// SpecialCHx is the four-term exponential correction used for the
	// CH-forming radiative association channel.
	SpecialCHx
	// SpecialCPRec is the Badnell radiative plus dielectronic
	// recombination fit for C+ + e.
	SpecialCPRec
	// SpecialHPRecB is the case-B radiative recombination fit for
	// H+ + e (Ferland et al. 1992).
	SpecialHPRecB
	// SpecialH2Coll is the Martin, Schwarz & Mandy (1996) fit for
	// collisional dissociation of H2 by H2.
	SpecialH2Coll
	// SpecialCPOH is the temperature-dependent capture-rate form for
	// C+ + OH.
	SpecialCPOH
)

// Channel describes one elementary reaction. In lists the reactant
// indices into the extended (tracked+ghost) abundance vector; repeated
// entries denote stoichiometric multiplicity. Out lists the products
// the same way. Ghost reactants enter the rate as multipliers; ghost
// products are bookkept implicitly through the conservation laws.
// Channels are immutable and shared read-only across all cells.
type Channel struct {
	Kind    Kind
	In      []int
	Out     []int
	Base    float64 // base rate coefficient
	TExp    float64 // temperature exponent, (T/300K)^TExp
	ETemp   float64 // Arrhenius activation temperature [K]
	AvFac   float64 // photo: exponent factor in exp(−AvFac·A_V)
	Band    int     // photo: radiation-field band index
	MinTemp float64 // rate is zero below this temperature
	Special Special

	// Grain recombination: 7-term Weingartner & Draine (2001) fit
	// coefficients, nil for non-recombination grain channels.
	GrainFit []float64
}

// Positions of the named channel groups in the reaction table.
const (
	nCR    = 7
	n2Body = 31
	nPhoto = 6
	nGrain = 5

	offCR    = 0
	off2Body = offCR + nCR
	offPhoto = off2Body + n2Body
	offGrain = offPhoto + nPhoto
	nChannel = offGrain + nGrain
)

// Frequency bands: one per photo channel, then the photoelectric
// (FUV continuum) band and the cosmic-ray "band" used by the radiation
// module for bookkeeping.
const (
	nFreq    = nPhoto + 2
	IndexGPE = nPhoto     // photoelectric band
	IndexCR  = nPhoto + 1 // cosmic-ray band
)

// NFreq returns the number of radiation-field bands the network reads.
func NFreq() int { return nFreq }

// Named channel indices used by the rate engine and the thermal terms.
const (
	icrH2 = offCR + 0 // cr + H2 -> H2+ + e
	icrHe = offCR + 1 // cr + He -> He+ + e
	icrH  = offCR + 2 // cr + H -> H+ + e

	i2H3PC   = off2Body + 0  // H3+ + C -> CHx + H2
	i2CPH2   = off2Body + 5  // C+ + H2 -> CHx + H
	i2CPOH   = off2Body + 6  // C+ + OHx -> HCO+
	i2CPRec  = off2Body + 11 // C+ + e -> C
	i2HPRec  = off2Body + 14 // H+ + e -> H
	i2H2DisH = off2Body + 15 // H2 + H -> 3H
	i2H2Dis2 = off2Body + 16 // H2 + H2 -> H2 + 2H
	i2HIIon  = off2Body + 17 // H + e -> H+ + 2e

	iphC   = offPhoto + 0
	iphCHx = offPhoto + 1
	iphCO  = offPhoto + 2
	iphOHx = offPhoto + 3
	iphH2  = offPhoto + 4
	iphSi  = offPhoto + 5

	igrH2  = offGrain + 0 // H + H + gr -> H2
	igrHP  = offGrain + 1
	igrCP  = offGrain + 2
	igrHeP = offGrain + 3
	igrSiP = offGrain + 4
)

// tempColl is the temperature above which collisional dissociation of
// H2 and collisional ionization of H become significant (k ≳ 1e-30);
// those channels are zeroed below it.
const tempColl = 7.0e2

// Weingartner & Draine (2001) Table 2 grain recombination fit
// coefficients (see also Draine, "Physics of the Interstellar and
// Intergalactic Medium", Table 14.9).
var (
	cHP  = []float64{12.25, 8.074e-6, 1.378, 5.087e2, 1.586e-2, 0.4723, 1.102e-5}
	cCP  = []float64{45.58, 6.089e-3, 1.128, 4.331e2, 4.845e-2, 0.8120, 1.333e-4}
	cHeP = []float64{5.572, 3.185e-7, 1.512, 5.115e3, 3.903e-7, 0.4956, 5.494e-7}
	cSiP = []float64{2.166, 5.678e-8, 1.874, 4.375e4, 1.635e-6, 0.8964, 7.538e-5}
)

// Four-term correction for the CH-forming channel C+ + H2 -> CHx + H.
var (
	aKCHx  = 1.04e-9
	nKCHx  = -2.31e-3
	cKCHx  = []float64{3.4e-8, 6.97e-9, 1.31e-7, 1.51e-4}
	tiKCHx = []float64{7.62, 1.38, 2.66e1, 8.11e3}
)

// reactionTable builds the GOW16 channel list. Rate coefficients follow
// Gong, Ostriker & Wolfire (2016) Table 1 and the references therein;
// cosmic-ray bases are relative to the primary ionization rate, photo
// bases are for the unshielded Draine (1978) field.
func reactionTable() []Channel {
	t := make([]Channel, 0, nChannel)

	// Cosmic-ray ionization and cosmic-ray-induced photoreactions.
	t = append(t,
		Channel{Kind: CosmicRay, In: []int{iH2}, Out: []int{iH2P, igE}, Base: 2.0},
		Channel{Kind: CosmicRay, In: []int{igHe}, Out: []int{iHeP, igE}, Base: 1.1},
		Channel{Kind: CosmicRay, In: []int{igH}, Out: []int{iHP, igE}, Base: 1.0},
		Channel{Kind: CosmicRay, In: []int{igC}, Out: []int{iCP, igE}, Base: 1.02e3},
		Channel{Kind: CosmicRay, In: []int{iCO}, Out: []int{igC, igO}, Base: 2.1e2},
		Channel{Kind: CosmicRay, In: []int{igSi}, Out: []int{iSiP, igE}, Base: 8.4e3},
		Channel{Kind: CosmicRay, In: []int{iH2}, Out: []int{iHP, igH, igE}, Base: 0.22},
	)

	// Two-body reactions, k = Base (T/300)^TExp exp(−ETemp/T) unless
	// Special. TExp and ETemp of zero denote a constant coefficient.
	t = append(t,
		Channel{Kind: TwoBody, In: []int{iH3P, igC}, Out: []int{iCHx, iH2}, Base: 2.0e-9}, // 0
		Channel{Kind: TwoBody, In: []int{iH3P, igO}, Out: []int{iOHx, iH2}, Base: 1.99e-9, TExp: -0.190},
		Channel{Kind: TwoBody, In: []int{iH3P, iCO}, Out: []int{iHCOP, iH2}, Base: 1.7e-9},
		Channel{Kind: TwoBody, In: []int{iHeP, iH2}, Out: []int{iHP, igHe, igH}, Base: 1.26e-13, ETemp: 22.5},
		Channel{Kind: TwoBody, In: []int{iHeP, iCO}, Out: []int{iCP, igO, igHe}, Base: 1.6e-9},
		Channel{Kind: TwoBody, In: []int{iCP, iH2}, Out: []int{iCHx, igH}, Special: SpecialCHx}, // 5
		Channel{Kind: TwoBody, In: []int{iCP, iOHx}, Out: []int{iHCOP}, Special: SpecialCPOH},
		Channel{Kind: TwoBody, In: []int{iCHx, igO}, Out: []int{iCO, igH}, Base: 7.7e-11},
		Channel{Kind: TwoBody, In: []int{iOHx, igC}, Out: []int{iCO, igH}, Base: 7.95e-10, TExp: -0.339},
		Channel{Kind: TwoBody, In: []int{iHeP, igE}, Out: []int{igHe}, Base: 1.0e-11, TExp: -0.5},
		Channel{Kind: TwoBody, In: []int{iH3P, igE}, Out: []int{iH2, igH}, Base: 4.54e-7, TExp: -0.52}, // 10
		Channel{Kind: TwoBody, In: []int{iCP, igE}, Out: []int{igC}, Special: SpecialCPRec},
		Channel{Kind: TwoBody, In: []int{iHCOP, igE}, Out: []int{iCO, igH}, Base: 1.06e-5, TExp: -0.64},
		Channel{Kind: TwoBody, In: []int{iH2P, iH2}, Out: []int{iH3P, igH}, Base: 1.76e-9, TExp: 0.042},
		Channel{Kind: TwoBody, In: []int{iHP, igE}, Out: []int{igH}, Special: SpecialHPRecB},
		Channel{Kind: TwoBody, In: []int{iH2, igH}, Out: []int{igH, igH, igH}, // 15
			Base: 3.52e-9, ETemp: 4.39e4, MinTemp: tempColl},
		Channel{Kind: TwoBody, In: []int{iH2, iH2}, Out: []int{iH2, igH, igH},
			Special: SpecialH2Coll, MinTemp: tempColl},
		Channel{Kind: TwoBody, In: []int{igH, igE}, Out: []int{iHP, igE, igE},
			Base: 1.013e-9, TExp: 0.5, ETemp: 1.57821e5, MinTemp: tempColl},
		Channel{Kind: TwoBody, In: []int{iHeP, iH2}, Out: []int{iH2P, igHe}, Base: 7.2e-15},
		Channel{Kind: TwoBody, In: []int{iCHx, igH}, Out: []int{iH2, igC}, Base: 1.31e-10, ETemp: 80.0},
		Channel{Kind: TwoBody, In: []int{iOHx, igH}, Out: []int{igO, iH2}, // 20
			Base: 6.99e-14, TExp: 2.8, ETemp: 1.95e3},
		Channel{Kind: TwoBody, In: []int{igO, iHP}, Out: []int{iOP, igH}, Base: 6.86e-10, TExp: 0.26, ETemp: 224.3},
		Channel{Kind: TwoBody, In: []int{iOP, igH}, Out: []int{igO, iHP}, Base: 5.66e-10, TExp: 0.36, ETemp: -8.6},
		Channel{Kind: TwoBody, In: []int{iOP, iH2}, Out: []int{iOHx, igH}, Base: 1.6e-9},
		Channel{Kind: TwoBody, In: []int{iSiP, igE}, Out: []int{igSi}, Base: 1.46e-10, TExp: -0.62},
		Channel{Kind: TwoBody, In: []int{igC, iH2}, Out: []int{iCHx, igH}, Base: 1.0e-17}, // 25
		Channel{Kind: TwoBody, In: []int{iH2P, igH}, Out: []int{iHP, iH2}, Base: 6.4e-10},
		Channel{Kind: TwoBody, In: []int{iHP, iH2}, Out: []int{iH2P, igH},
			Base: 1.0e-9, ETemp: 2.12e4, MinTemp: tempColl},
		Channel{Kind: TwoBody, In: []int{iHeP, iCHx}, Out: []int{iCP, igHe, igH}, Base: 1.1e-9},
		Channel{Kind: TwoBody, In: []int{iCP, igSi}, Out: []int{iSiP, igC}, Base: 2.1e-9},
		Channel{Kind: TwoBody, In: []int{iHeP, iOHx}, Out: []int{iOP, igHe, igH}, Base: 1.1e-9}, // 30
	)

	// Photoreactions. Base is the unshielded rate in the Draine (1978)
	// field [s⁻¹]; AvFac the dust-extinction exponent factor.
	t = append(t,
		Channel{Kind: Photo, In: []int{igC}, Out: []int{iCP, igE}, Base: 3.5e-10, AvFac: 3.76, Band: 0},
		Channel{Kind: Photo, In: []int{iCHx}, Out: []int{igC, igH}, Base: 9.1e-10, AvFac: 2.12, Band: 1},
		Channel{Kind: Photo, In: []int{iCO}, Out: []int{igC, igO}, Base: 2.6e-10, AvFac: 3.88, Band: 2},
		Channel{Kind: Photo, In: []int{iOHx}, Out: []int{igO, igH}, Base: 3.8e-10, AvFac: 2.66, Band: 3},
		Channel{Kind: Photo, In: []int{iH2}, Out: []int{igH, igH}, Base: 5.7e-11, AvFac: 3.74, Band: 4},
		Channel{Kind: Photo, In: []int{igSi}, Out: []int{iSiP, igE}, Base: 4.5e-9, AvFac: 2.61, Band: 5},
	)

	// Grain-assisted reactions: H2 formation on dust and grain-surface
	// recombination of the major ions.
	t = append(t,
		Channel{Kind: Grain, In: []int{igH}, Out: []int{iH2}, Base: 3.0e-17},
		Channel{Kind: Grain, In: []int{iHP}, Out: []int{igH}, GrainFit: cHP},
		Channel{Kind: Grain, In: []int{iCP}, Out: []int{igC}, GrainFit: cCP},
		Channel{Kind: Grain, In: []int{iHeP}, Out: []int{igHe}, GrainFit: cHeP},
		Channel{Kind: Grain, In: []int{iSiP}, Out: []int{igSi}, GrainFit: cSiP},
	)

	return t
}
