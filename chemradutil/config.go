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
	"os"

	"github.com/BurntSushi/toml"
	"github.com/ctessum/unit"
	"github.com/ismmodel/chemrad/chem/gow16"
	"github.com/ismmodel/chemrad/rad"
	"github.com/ismmodel/chemrad/solver"
	"github.com/lnashier/viper"
	"github.com/spf13/cast"
)

// CodeUnits converts between the host simulation's code units and the
// cgs quantities the engine works in. The three base factors come from
// the configuration; derived factors are built with dimensional
// bookkeeping so mismatched conversions fail loudly.
type CodeUnits struct {
	Length   *unit.Unit // length of one code unit
	Velocity *unit.Unit // velocity of one code unit
	Density  *unit.Unit // hydrogen nuclei per cm3 of one code unit
}

// codeUnits builds the conversion factors from the configuration.
// Lengths and velocities are stored internally in SI and converted at
// the accessors.
func codeUnits(cfg *viper.Viper) (*CodeUnits, error) {
	l := cfg.GetFloat64("Units.LengthCm")
	v := cfg.GetFloat64("Units.VelocityCmS")
	d := cfg.GetFloat64("Units.DensityNH")
	if l <= 0 || v <= 0 || d <= 0 {
		return nil, fmt.Errorf("chemrad: non-positive code unit (length %g, velocity %g, density %g)", l, v, d)
	}
	return &CodeUnits{
		Length:   unit.New(l*1e-2, unit.Meter),
		Velocity: unit.New(v*1e-2, unit.MeterPerSecond),
		Density:  unit.New(d, unit.Dimensions{unit.LengthDim: -3}),
	}, nil
}

// Time returns the duration of one code time unit.
func (u *CodeUnits) Time() *unit.Unit {
	return unit.Div(u.Length, u.Velocity)
}

// TimeToSeconds converts a time step in code units to seconds.
func (u *CodeUnits) TimeToSeconds(dt float64) (float64, error) {
	t := unit.Mul(unit.New(dt, unit.Dimless), u.Time())
	if err := t.Check(unit.Second); err != nil {
		return 0, err
	}
	return t.Value(), nil
}

// DensityToNH converts a density in code units to hydrogen nuclei per
// cm3.
func (u *CodeUnits) DensityToNH(rho float64) float64 {
	return unit.Mul(unit.New(rho, unit.Dimless), u.Density).Value()
}

// ColumnToCGS converts a column density in code units (code density
// times code length) to cm-2.
func (u *CodeUnits) ColumnToCGS(col float64) float64 {
	c := unit.Mul(unit.New(col, unit.Dimless), u.Density, u.Length)
	// Density carries cm-3, length carries m; fold the residual
	// meter-to-centimeter factor in here.
	return c.Value() * 1e2
}

// networkConfig assembles the chemistry configuration from the viper
// settings.
func networkConfig(cfg *viper.Viper) (gow16.Config, error) {
	c := gow16.DefaultConfig()
	c.Zdg = cfg.GetFloat64("Chemistry.Zdg")
	c.XHe = cfg.GetFloat64("Chemistry.XHe")
	c.XC = cfg.GetFloat64("Chemistry.XC")
	c.XO = cfg.GetFloat64("Chemistry.XO")
	c.XSi = cfg.GetFloat64("Chemistry.XSi")
	c.CRRate = cfg.GetFloat64("Chemistry.CRRate")
	c.CRShielding = cfg.GetBool("Chemistry.CRShielding")
	c.ConstTemp = cfg.GetBool("Chemistry.ConstTemp")
	c.H2RovibCooling = cfg.GetBool("Chemistry.H2RovibCooling")
	if c.Zdg <= 0 {
		return c, fmt.Errorf("chemrad: non-positive dust-to-gas ratio %g", c.Zdg)
	}
	return c, nil
}

// radConfig assembles the radiation configuration from the viper
// settings.
func radConfig(cfg *viper.Viper) (rad.Config, error) {
	var fw []float64
	for _, w := range cfg.GetStringSlice("Rad.FreqWeights") {
		v, err := cast.ToFloat64E(w)
		if err != nil {
			return rad.Config{}, fmt.Errorf("chemrad: reading 'Rad.FreqWeights': %v", err)
		}
		fw = append(fw, v)
	}
	return rad.Config{
		NDim:          cfg.GetInt("Rad.NDim"),
		NMu:           cfg.GetInt("Rad.NMu"),
		AngleFlag:     cfg.GetInt("Rad.AngleFlag"),
		NFreq:         cfg.GetInt("Rad.NFreq"),
		FreqWeights:   fw,
		Prat:          cfg.GetFloat64("Rad.Prat"),
		Crat:          cfg.GetFloat64("Rad.Crat"),
		ReducedFactor: cfg.GetFloat64("Rad.ReducedFactor"),
	}, nil
}

// solverOptions assembles the integrator options from the viper
// settings.
func solverOptions(cfg *viper.Viper) solver.Options {
	o := solver.DefaultOptions()
	if v := cfg.GetFloat64("Solver.RelTol"); v > 0 {
		o.RelTol = v
	}
	if v := cfg.GetFloat64("Solver.AbsTol"); v > 0 {
		o.AbsTol = v
	}
	if v := cfg.GetInt("Solver.MaxNewtonIter"); v > 0 {
		o.MaxNewtonIter = v
	}
	if v := cfg.GetInt("Solver.MaxShrink"); v > 0 {
		o.MaxShrink = uint64(v)
	}
	return o
}

// WriteDefaultConfig writes a configuration file holding the current
// settings of every option, for editing and reuse with --config.
func WriteDefaultConfig(cfg *viper.Viper, path string) error {
	out := make(map[string]interface{})
	for _, option := range options {
		// Values bound to flags come back from Get as strings; fetch
		// each through the getter matching the option's type so that
		// floats and booleans round-trip through TOML.
		var val interface{}
		switch option.defaultVal.(type) {
		case float64:
			val = cfg.GetFloat64(option.name)
		case bool:
			val = cfg.GetBool(option.name)
		case int:
			val = cfg.GetInt(option.name)
		case []string:
			val = cfg.GetStringSlice(option.name)
		default:
			val = cfg.GetString(option.name)
		}
		setNested(out, option.name, val)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("chemrad: creating configuration file: %v", err)
	}
	defer f.Close()
	if err := toml.NewEncoder(f).Encode(out); err != nil {
		return fmt.Errorf("chemrad: writing configuration file: %v", err)
	}
	return nil
}

// setNested stores a dotted option name as nested maps so the TOML
// encoder emits sections.
func setNested(m map[string]interface{}, name string, val interface{}) {
	for {
		i := -1
		for j, r := range name {
			if r == '.' {
				i = j
				break
			}
		}
		if i < 0 {
			m[name] = val
			return
		}
		sub, ok := m[name[:i]].(map[string]interface{})
		if !ok {
			sub = make(map[string]interface{})
			m[name[:i]] = sub
		}
		m = sub
		name = name[i+1:]
	}
}
