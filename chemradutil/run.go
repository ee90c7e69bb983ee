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

package chemradutil

import (
	"fmt"
	"io"
	"time"

	"github.com/ismmodel/chemrad"
	"github.com/ismmodel/chemrad/chem/gow16"
	"github.com/ismmodel/chemrad/rad"
	"github.com/ismmodel/chemrad/solver"
	"github.com/lnashier/viper"
	"github.com/sirupsen/logrus"
)

// Run evolves the chemistry of a uniform domain per the configuration
// and writes summary statistics of the final abundances to w.
func Run(cfg *viper.Viper, w io.Writer) error {
	units, err := codeUnits(cfg)
	if err != nil {
		return err
	}
	netCfg, err := networkConfig(cfg)
	if err != nil {
		return err
	}
	radCfg, err := radConfig(cfg)
	if err != nil {
		return err
	}

	ncells := cfg.GetInt("NumCells")
	if ncells <= 0 {
		return fmt.Errorf("chemrad: non-positive cell count %d", ncells)
	}
	numSteps := cfg.GetInt("NumSteps")
	if numSteps <= 0 {
		return fmt.Errorf("chemrad: non-positive step count %d", numSteps)
	}
	dt, err := units.TimeToSeconds(cfg.GetFloat64("Dt"))
	if err != nil {
		return err
	}

	// The radiation field is held constant over the run; its
	// band-averaged intensities feed the photochemistry of every cell.
	r, err := rad.New(radCfg, ncells)
	if err != nil {
		return err
	}
	draine := cfg.GetFloat64("State.Radiation")
	for ifr := 0; ifr < r.NFreq; ifr++ {
		for c := 0; c < ncells; c++ {
			r.SetIntensity(draine, ifr, c)
		}
	}
	integrator, err := rad.NewConstIntegrator(r)
	if err != nil {
		return err
	}
	integrator.CopyToOutput()
	r.CalculateMoments()

	state := chemrad.PhysicalState{
		NH:   units.DensityToNH(cfg.GetFloat64("State.NH")),
		Temp: cfg.GetFloat64("State.Temp"),
		Rad:  make([]float64, gow16.NFreq()),
	}
	for ifr := range state.Rad {
		b := ifr
		if b >= r.NFreq {
			b = r.NFreq - 1
		}
		state.Rad[ifr] = r.IRAvg.Get(b, 0)
	}
	if err := state.Check(); err != nil {
		return err
	}

	diag, err := gow16.NewNetwork(netCfg)
	if err != nil {
		return err
	}
	d := &chemrad.Domain{
		Cells: make([]*chemrad.Cell, ncells),
		Dt:    dt,
	}
	for i := range d.Cells {
		d.Cells[i] = &chemrad.Cell{
			Row:   i,
			State: state,
			Abund: initialAbundances(diag, state),
		}
	}

	chemStep, err := solver.ChemistryStep(func() (chemrad.Network, error) {
		return gow16.NewNetwork(netCfg)
	}, solverOptions(cfg))
	if err != nil {
		return err
	}

	log := logrus.WithFields(logrus.Fields{
		"cells": ncells,
		"steps": numSteps,
		"dt_s":  dt,
	})
	log.Info("starting run")
	start := time.Now()

	step := 0
	progress := func(d *chemrad.Domain) error {
		step++
		log.WithField("step", step).Debug("macro step complete")
		return nil
	}
	if err := d.Run(chemStep, progress, chemrad.StepsCompletedCheck(numSteps)); err != nil {
		return err
	}
	log.WithField("elapsed", time.Since(start)).Info("run finished")

	if err := d.SummaryStatistics(diag, w); err != nil {
		return err
	}
	// Dump the rates and thermal terms at the final state of cell 0.
	if err := diag.InitializeNextStep(d.Cells[0].State, d.Cells[0].Abund); err != nil {
		return err
	}
	return diag.OutputProperties(w)
}

// initialAbundances builds the starting composition: fully atomic
// neutral hydrogen with singly ionized carbon and silicon, and the
// internal energy matching the configured temperature.
func initialAbundances(n *gow16.Network, state chemrad.PhysicalState) []float64 {
	y := make([]float64, n.Len())
	y[gow16.IndexCP] = n.TotalCarbon()
	y[gow16.IndexSiP] = n.TotalSilicon()
	y[gow16.IndexE] = n.EnergyFromTemperature(state.Temp, y)
	return y
}

// Quadrature builds the configured angular quadrature and writes every
// ordinate with its weight, plus the moments of an isotropic unit
// intensity field.
func Quadrature(cfg *viper.Viper, w io.Writer) error {
	radCfg, err := radConfig(cfg)
	if err != nil {
		return err
	}
	r, err := rad.New(radCfg, 1)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "octants %d, rays per octant %d, bands %d\n",
		r.NOct, r.NAngOct, r.NFreq)
	for n := 0; n < r.NAng; n++ {
		fmt.Fprintf(w, "%4d: mu = (%+.6f, %+.6f, %+.6f) w = %.6f\n",
			n, r.Mu.Get(0, n), r.Mu.Get(1, n), r.Mu.Get(2, n), r.Wmu[n])
	}
	for ifr := 0; ifr < r.NFreq; ifr++ {
		r.SetIntensity(1, ifr, 0)
	}
	r.CalculateMoments()
	m := r.CellMoment(0)
	fmt.Fprintf(w, "isotropic unit field: Er = %.6f\n", m.Er)
	fmt.Fprintf(w, "  Fr = (%+.2e, %+.2e, %+.2e)\n", m.Fr[0], m.Fr[1], m.Fr[2])
	for i := 0; i < 3; i++ {
		fmt.Fprintf(w, "  Pr = (%+.6f, %+.6f, %+.6f)\n",
			m.Pr[i][0], m.Pr[i][1], m.Pr[i][2])
	}
	return nil
}
