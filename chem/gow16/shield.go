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

import "math"

// shieldH2 is the H2 self-shielding factor of Draine & Bertoldi (1996)
// Equation 37, evaluated for a Doppler parameter b5 = 3 km/s.
func shieldH2(colH2 float64) float64 {
	const b5 = 3.0
	x := colH2 / 5.0e14
	return 0.965/((1+x/b5)*(1+x/b5)) +
		0.035/math.Sqrt(1+x)*math.Exp(-8.5e-4*math.Sqrt(1+x))
}

// CO self-shielding factors tabulated against log10 of the CO and H2
// columns, after Visser, van Dishoeck & Black (2009). The two
// dependences are applied as a separable product, which reproduces the
// full table to within the accuracy of the reduced network.
var (
	logNCOShield = []float64{0, 13, 14, 15, 16, 17, 18, 19}
	thetaCO      = []float64{1.0, 0.9495, 0.7046, 0.4015, 0.09964,
		0.01567, 0.003162, 0.0004839}

	logNH2Shield = []float64{0, 19, 20, 21, 22, 23}
	thetaH2ofCO  = []float64{1.0, 0.8176, 0.5778, 0.3260, 0.1196, 0.0510}
)

// shieldCO is the shielding factor for CO photodissociation by CO
// self-shielding and by H2 line overlap.
func shieldCO(colCO, colH2 float64) float64 {
	return interpLog(logNCOShield, thetaCO, colCO) *
		interpLog(logNH2Shield, thetaH2ofCO, colH2)
}

// shieldC is the shielding factor for photoionization of atomic carbon
// by C self-shielding and H2 line absorption (Tielens & Hollenbach
// 1985; see also Wolfire et al. 2010 Equation A6).
func shieldC(colC, colH2 float64) float64 {
	rH2 := 2.8e-22 * colH2
	return math.Exp(-1.6e-17*colC) * math.Exp(-rH2) / (1 + rH2*1.0e-1)
}

// interpLog linearly interpolates theta against log10(col) on the grid
// xs, clamping outside the tabulated range. xs must be increasing and
// theta decreasing; a zero or negative column returns theta[0].
func interpLog(xs, theta []float64, col float64) float64 {
	if col <= 1 {
		return theta[0]
	}
	lx := math.Log10(col)
	if lx <= xs[0] {
		return theta[0]
	}
	if lx >= xs[len(xs)-1] {
		return theta[len(theta)-1]
	}
	i := 1
	for lx > xs[i] {
		i++
	}
	f := (lx - xs[i-1]) / (xs[i] - xs[i-1])
	return theta[i-1]*(1-f) + theta[i]*f
}
