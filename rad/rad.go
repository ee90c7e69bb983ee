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

// Package rad implements the discrete-ordinates representation of the
// radiation field: construction of the angular quadrature and frequency
// weights, storage of the per-cell specific intensity, and integration
// of the intensity into energy-density, flux and pressure-tensor
// moments. Transport of the intensity between cells is an extension
// point (Integrator); the default implementation leaves the field
// unchanged.
package rad

import (
	"fmt"

	"github.com/ctessum/sparse"
	"github.com/ismmodel/chemrad"
)

// Angular quadrature schemes.
const (
	// AngleTriangular arranges nmu(nmu+1)/2 ordinates per octant on
	// the triangular levels of Bruls et al. (1999).
	AngleTriangular = 0
	// AngleProduct builds a product grid of polar Gauss-Legendre
	// nodes and uniform azimuthal midpoints.
	AngleProduct = 10
)

// Config holds the radiation-field configuration. The quadrature set it
// describes is built once at initialization and is immutable afterward;
// a malformed configuration is therefore a fatal initialization error.
type Config struct {
	NDim      int // spatial dimensionality: 1, 2 or 3
	NMu       int // angular resolution parameter
	AngleFlag int // AngleTriangular or AngleProduct

	NFreq int // number of frequency bands

	// FreqWeights are the per-band integration weights. If nil, the
	// bands are weighted uniformly. Must sum to 1.
	FreqWeights []float64

	Prat          float64 // radiation pressure parameter P_r/P_g
	Crat          float64 // dimensionless speed of light c/a
	ReducedFactor float64 // reduced speed-of-light factor, 1 for none
}

// OpacityFunc computes the scattering and absorption coefficients of a
// cell in one frequency band. The surrounding simulation enrolls its
// own; the default leaves the initial opacities unchanged.
type OpacityFunc func(state chemrad.PhysicalState, band int) (sigmaS, sigmaA float64)

// Radiation holds the discrete-ordinates state for a set of grid cells.
// The quadrature arrays (Mu, Wmu, Wfreq) are shared read-only by all
// cells; the intensity and opacity arrays are mutable per-cell state.
type Radiation struct {
	Config

	NOct    int // number of octants
	NAngOct int // ordinates per octant
	NAng    int // total ordinates, NAngOct*NOct

	// Mu holds the direction cosines, shape (3, NAng).
	Mu *sparse.DenseArray
	// Wmu holds the ordinate weights, normalized so that the weights
	// within each octant sum to 1.
	Wmu []float64
	// Wfreq holds the frequency-band weights, summing to 1.
	Wfreq []float64

	// IR is the specific intensity, shape (NFreq, ncell, NAng).
	IR *sparse.DenseArray
	// IRAvg is the band-averaged intensity diagnostic republished by
	// Integrator.CopyToOutput, shape (NFreq, ncell).
	IRAvg *sparse.DenseArray

	// SigmaS and SigmaA are the scattering and absorption
	// coefficients, shape (NFreq, ncell).
	SigmaS *sparse.DenseArray
	SigmaA *sparse.DenseArray

	// Moments holds the 13 frequency-integrated moments per cell,
	// shape (NMoment, ncell).
	Moments *sparse.DenseArray

	ReducedC float64 // effective propagation speed, Crat*ReducedFactor

	ncell   int
	opacity OpacityFunc
}

// New builds the radiation state for ncells grid cells. The angular
// quadrature and frequency weights are constructed here, once; errors
// are fatal since the quadrature cannot be rebuilt mid-run.
func New(cfg Config, ncells int) (*Radiation, error) {
	if ncells <= 0 {
		return nil, fmt.Errorf("rad: non-positive cell count %d", ncells)
	}
	if cfg.NFreq <= 0 {
		return nil, fmt.Errorf("rad: non-positive frequency band count %d", cfg.NFreq)
	}
	if cfg.ReducedFactor == 0 {
		cfg.ReducedFactor = 1
	}

	mu, wmu, noct, err := angularGrid(cfg.NDim, cfg.NMu, cfg.AngleFlag)
	if err != nil {
		return nil, err
	}
	wfreq, err := frequencyGrid(cfg.NFreq, cfg.FreqWeights)
	if err != nil {
		return nil, err
	}

	nang := len(wmu)
	r := &Radiation{
		Config:   cfg,
		NOct:     noct,
		NAngOct:  nang / noct,
		NAng:     nang,
		Mu:       sparse.ZerosDense(3, nang),
		Wmu:      wmu,
		Wfreq:    wfreq,
		IR:       sparse.ZerosDense(cfg.NFreq, ncells, nang),
		IRAvg:    sparse.ZerosDense(cfg.NFreq, ncells),
		SigmaS:   sparse.ZerosDense(cfg.NFreq, ncells),
		SigmaA:   sparse.ZerosDense(cfg.NFreq, ncells),
		Moments:  sparse.ZerosDense(NMoment, ncells),
		ReducedC: cfg.Crat * cfg.ReducedFactor,
		ncell:    ncells,
		opacity:  nil,
	}
	for n := 0; n < nang; n++ {
		for d := 0; d < 3; d++ {
			r.Mu.Set(mu[n][d], d, n)
		}
	}
	return r, nil
}

// NCells returns the number of grid cells this radiation state covers.
func (r *Radiation) NCells() int { return r.ncell }

// EnrollOpacityFunction registers the opacity function supplied by the
// surrounding simulation. Passing nil restores the default behavior of
// leaving the opacities at their current values.
func (r *Radiation) EnrollOpacityFunction(f OpacityFunc) { r.opacity = f }

// UpdateOpacity applies the enrolled opacity function to every cell and
// band. With no enrolled function the opacities keep their initial
// values.
func (r *Radiation) UpdateOpacity(states []chemrad.PhysicalState) error {
	if r.opacity == nil {
		return nil
	}
	if len(states) != r.ncell {
		return fmt.Errorf("rad: got %d states for %d cells", len(states), r.ncell)
	}
	for ifr := 0; ifr < r.NFreq; ifr++ {
		for c, s := range states {
			ss, sa := r.opacity(s, ifr)
			r.SigmaS.Set(ss, ifr, c)
			r.SigmaA.Set(sa, ifr, c)
		}
	}
	return nil
}

// SetIntensity sets the intensity along every direction of one cell and
// band to the same value.
func (r *Radiation) SetIntensity(val float64, band, cell int) {
	for n := 0; n < r.NAng; n++ {
		r.IR.Set(val, band, cell, n)
	}
}

// frequencyGrid builds the frequency-band weights.
func frequencyGrid(nfreq int, weights []float64) ([]float64, error) {
	w := make([]float64, nfreq)
	if weights == nil {
		for i := range w {
			w[i] = 1.0 / float64(nfreq)
		}
		return w, nil
	}
	if len(weights) != nfreq {
		return nil, fmt.Errorf("rad: %d frequency weights for %d bands",
			len(weights), nfreq)
	}
	sum := 0.0
	for i, v := range weights {
		if v <= 0 {
			return nil, fmt.Errorf("rad: non-positive frequency weight %g", v)
		}
		w[i] = v
		sum += v
	}
	if diff := sum - 1; diff > 1e-10 || diff < -1e-10 {
		return nil, fmt.Errorf("rad: frequency weights sum to %g, want 1", sum)
	}
	return w, nil
}
