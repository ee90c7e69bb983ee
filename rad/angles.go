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

package rad

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/integrate/quad"
)

// octantSigns maps octant index to the signs applied to the first-octant
// direction cosines. The z>0 octants come first so that 1D and 2D grids
// use prefixes of the 3D ordering.
var octantSigns = [8][3]float64{
	{1, 1, 1}, {-1, 1, 1}, {1, -1, 1}, {-1, -1, 1},
	{1, 1, -1}, {-1, 1, -1}, {1, -1, -1}, {-1, -1, -1},
}

// angularGrid builds the ordinate directions and weights for the given
// dimensionality, resolution and scheme. In 2D and 3D the directions
// are unit vectors; a 1D grid stores only the resolved mu_x cosine and
// leaves the unresolved components zero. The weights within each
// octant sum to 1. The first-octant set is
// constructed once and mirrored into the remaining octants so that the
// quadrature is symmetric under coordinate reflections.
func angularGrid(ndim, nmu, angleFlag int) (mu [][3]float64, w []float64, noct int, err error) {
	if nmu < 1 {
		return nil, nil, 0, fmt.Errorf("rad: angular resolution %d < 1", nmu)
	}
	switch ndim {
	case 1:
		noct = 2
	case 2:
		noct = 4
	case 3:
		noct = 8
	default:
		return nil, nil, 0, fmt.Errorf("rad: dimensionality %d not in 1..3", ndim)
	}

	var oct [][3]float64
	var octW []float64
	switch {
	case ndim == 1:
		// A 1D grid only resolves mu_x; the scheme flag is ignored.
		oct, octW = polarGauss(nmu)
	case angleFlag == AngleTriangular:
		oct, octW = triangularOctant(nmu)
	case angleFlag == AngleProduct:
		if ndim == 2 {
			oct, octW = productOctant2D(nmu)
		} else {
			if nmu%2 != 0 {
				return nil, nil, 0, fmt.Errorf(
					"rad: 3D product quadrature needs even resolution, got %d", nmu)
			}
			oct, octW = productOctant3D(nmu)
		}
	default:
		return nil, nil, 0, fmt.Errorf("rad: unknown angular scheme %d", angleFlag)
	}

	nAngOct := len(oct)
	mu = make([][3]float64, nAngOct*noct)
	w = make([]float64, nAngOct*noct)
	for o := 0; o < noct; o++ {
		s := octantSigns[o]
		for m, d := range oct {
			n := o*nAngOct + m
			mu[n] = [3]float64{s[0] * d[0], s[1] * d[1], s[2] * d[2]}
			w[n] = octW[m]
		}
	}
	return mu, w, noct, nil
}

// polarGauss places nmu Gauss-Legendre nodes on mu in (0, 1). The node
// weights already sum to 1 since they integrate d(mu) over a unit
// interval.
func polarGauss(nmu int) ([][3]float64, []float64) {
	x := make([]float64, nmu)
	wt := make([]float64, nmu)
	quad.Legendre{}.FixedLocations(x, wt, 0, 1)
	oct := make([][3]float64, nmu)
	for i := range x {
		oct[i] = [3]float64{x[i], 0, 0}
	}
	return oct, wt
}

// triangularOctant builds the symmetric triangular quadrature of Bruls
// et al. (1999). The squared cosines sit on nmu equally spaced levels
// starting at 1/(3(2nmu-1)) with spacing 2/(2nmu-1); an ordinate is
// placed at every triple of level indices (i, j, k) with
// i+j+k = nmu+2, which makes each cosine component sum to 1 in
// quadrature and leaves the set invariant under axis permutation. Each
// ordinate weight is the mean of its three ring weights, normalized to
// unit octant sum.
func triangularOctant(nmu int) ([][3]float64, []float64) {
	delta := 2.0 / float64(2*nmu-1)
	mu2 := make([]float64, nmu)
	muLev := make([]float64, nmu)
	mu2[0] = 1.0 / (3.0 * float64(2*nmu-1))
	for i := 0; i < nmu; i++ {
		if i > 0 {
			mu2[i] = mu2[i-1] + delta
		}
		muLev[i] = math.Sqrt(mu2[i])
	}

	// Ring weights: W_j^2 grows linearly from 4*mu2[0] with the level
	// spacing; the ring weight is the difference of successive W.
	ring := make([]float64, nmu)
	prevW := 0.0
	for j := 0; j < nmu; j++ {
		wj := math.Sqrt(4.0*mu2[0] + float64(j)*delta)
		ring[j] = wj - prevW
		prevW = wj
	}

	var oct [][3]float64
	var wt []float64
	sum := 0.0
	for i := 0; i < nmu; i++ {
		for j := 0; j < nmu-i; j++ {
			k := nmu - 1 - i - j
			oct = append(oct, [3]float64{muLev[i], muLev[j], muLev[k]})
			pw := (ring[i] + ring[j] + ring[k]) / 3.0
			wt = append(wt, pw)
			sum += pw
		}
	}
	for i := range wt {
		wt[i] /= sum
	}
	return oct, wt
}

// productOctant2D places nmu ordinates on a single cone with
// mu_z^2 = 1/3 and uniform azimuthal midpoints, so that the quadrature
// integrates every squared cosine to exactly 1/3 at any resolution.
func productOctant2D(nmu int) ([][3]float64, []float64) {
	muZ := 1.0 / math.Sqrt(3.0)
	sinZ := math.Sqrt(2.0 / 3.0)
	oct := make([][3]float64, nmu)
	wt := make([]float64, nmu)
	for k := 0; k < nmu; k++ {
		phi := (float64(k) + 0.5) * math.Pi / 2.0 / float64(nmu)
		oct[k] = [3]float64{sinZ * math.Cos(phi), sinZ * math.Sin(phi), muZ}
		wt[k] = 1.0 / float64(nmu)
	}
	return oct, wt
}

// productOctant3D builds the product of nmu polar Gauss-Legendre nodes
// on mu_z in (0, 1) with nmu/2 uniform azimuthal midpoints,
// nmu*nmu/2 ordinates per octant in total. nmu must be even.
func productOctant3D(nmu int) ([][3]float64, []float64) {
	x := make([]float64, nmu)
	gw := make([]float64, nmu)
	quad.Legendre{}.FixedLocations(x, gw, 0, 1)

	nazim := nmu / 2
	oct := make([][3]float64, 0, nmu*nazim)
	wt := make([]float64, 0, nmu*nazim)
	for i := 0; i < nmu; i++ {
		muZ := x[i]
		sinZ := math.Sqrt(1.0 - muZ*muZ)
		for k := 0; k < nazim; k++ {
			phi := (float64(k) + 0.5) * math.Pi / 2.0 / float64(nazim)
			oct = append(oct, [3]float64{sinZ * math.Cos(phi), sinZ * math.Sin(phi), muZ})
			wt = append(wt, gw[i]/float64(nazim))
		}
	}
	return oct, wt
}
