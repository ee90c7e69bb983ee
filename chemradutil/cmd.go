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

// Package chemradutil holds the configuration handling and commands of
// the chemrad command-line tool.
package chemradutil

import (
	"fmt"
	"os"

	"github.com/ismmodel/chemrad"
	"github.com/lnashier/viper"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Cfg holds configuration information.
var Cfg *viper.Viper

var options []struct {
	name, usage, shorthand string
	defaultVal             interface{}
	flagsets               []*pflag.FlagSet
}

func init() {
	// Options are the configuration options available to chemrad.
	options = []struct {
		name, usage, shorthand string
		defaultVal             interface{}
		flagsets               []*pflag.FlagSet
	}{
		{
			name: "config",
			usage: `
              config specifies the configuration file location.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "verbose",
			usage: `
              verbose enables debug-level log output.`,
			shorthand:  "v",
			defaultVal: false,
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "NumSteps",
			usage: `
              NumSteps is the number of macro time steps to run.`,
			defaultVal: 1,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "NumCells",
			usage: `
              NumCells is the number of grid cells in the test domain.`,
			defaultVal: 64,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "Dt",
			usage: `
              Dt is the macro time step in code time units.`,
			defaultVal: 1.0,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "OutputFile",
			usage: `
              OutputFile is the path of the run summary output. The default
              writes to standard output.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "Units.LengthCm",
			usage: `
              Units.LengthCm is the length of one code unit in centimeters.
              The default is one parsec.`,
			defaultVal: 3.0857e18,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "Units.VelocityCmS",
			usage: `
              Units.VelocityCmS is the velocity of one code unit in
              centimeters per second. The default is one kilometer per second.`,
			defaultVal: 1.0e5,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "Units.DensityNH",
			usage: `
              Units.DensityNH is the hydrogen nuclei number density of one
              code unit in particles per cubic centimeter.`,
			defaultVal: 1.0,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "Chemistry.Zdg",
			usage: `
              Chemistry.Zdg is the dust and metal abundance relative to the
              solar neighborhood.`,
			defaultVal: 1.0,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "Chemistry.XHe",
			usage: `
              Chemistry.XHe is the helium abundance per hydrogen nucleus.`,
			defaultVal: 0.1,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "Chemistry.XC",
			usage: `
              Chemistry.XC is the total carbon abundance per hydrogen
              nucleus at solar metallicity.`,
			defaultVal: 1.6e-4,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "Chemistry.XO",
			usage: `
              Chemistry.XO is the total oxygen abundance per hydrogen
              nucleus at solar metallicity.`,
			defaultVal: 3.2e-4,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "Chemistry.XSi",
			usage: `
              Chemistry.XSi is the total silicon abundance per hydrogen
              nucleus at solar metallicity.`,
			defaultVal: 1.7e-6,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "Chemistry.CRRate",
			usage: `
              Chemistry.CRRate is the unattenuated cosmic-ray ionization
              rate per hydrogen atom in 1/s.`,
			defaultVal: 2.0e-16,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "Chemistry.CRShielding",
			usage: `
              Chemistry.CRShielding enables attenuation of the cosmic-ray
              ionization rate with the total hydrogen column.`,
			defaultVal: false,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "Chemistry.ConstTemp",
			usage: `
              Chemistry.ConstTemp holds the gas temperature fixed instead of
              evolving the internal energy with the heating and cooling
              terms.`,
			defaultVal: false,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "Chemistry.H2RovibCooling",
			usage: `
              Chemistry.H2RovibCooling enables H2 rovibrational line
              cooling.`,
			defaultVal: true,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "State.NH",
			usage: `
              State.NH is the hydrogen nuclei number density of the test
              domain in code density units.`,
			defaultVal: 100.0,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "State.Temp",
			usage: `
              State.Temp is the initial gas temperature in Kelvin.`,
			defaultVal: 50.0,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "State.Radiation",
			usage: `
              State.Radiation is the incident radiation field in every band
              relative to the Draine (1978) field.`,
			defaultVal: 1.0,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "Rad.NDim",
			usage: `
              Rad.NDim is the spatial dimensionality of the angular grid
              (1, 2 or 3).`,
			defaultVal: 3,
			flagsets:   []*pflag.FlagSet{runCmd.Flags(), quadCmd.Flags()},
		},
		{
			name: "Rad.NMu",
			usage: `
              Rad.NMu is the angular resolution parameter. The triangular
              scheme places NMu(NMu+1)/2 rays per octant; the product scheme
              in 3D needs an even value and places NMu*NMu/2 rays per octant.`,
			defaultVal: 4,
			flagsets:   []*pflag.FlagSet{runCmd.Flags(), quadCmd.Flags()},
		},
		{
			name: "Rad.AngleFlag",
			usage: `
              Rad.AngleFlag selects the angular quadrature scheme:
              0 for triangular, 10 for product.`,
			defaultVal: 0,
			flagsets:   []*pflag.FlagSet{runCmd.Flags(), quadCmd.Flags()},
		},
		{
			name: "Rad.NFreq",
			usage: `
              Rad.NFreq is the number of frequency bands.`,
			defaultVal: 8,
			flagsets:   []*pflag.FlagSet{runCmd.Flags(), quadCmd.Flags()},
		},
		{
			name: "Rad.FreqWeights",
			usage: `
              Rad.FreqWeights lists the per-band integration weights. An
              empty list weights the bands uniformly.`,
			defaultVal: []string{},
			flagsets:   []*pflag.FlagSet{runCmd.Flags(), quadCmd.Flags()},
		},
		{
			name: "Rad.Prat",
			usage: `
              Rad.Prat is the ratio of radiation to gas pressure in code
              units.`,
			defaultVal: 1.0,
			flagsets:   []*pflag.FlagSet{runCmd.Flags(), quadCmd.Flags()},
		},
		{
			name: "Rad.Crat",
			usage: `
              Rad.Crat is the dimensionless speed of light in code units.`,
			defaultVal: 10.0,
			flagsets:   []*pflag.FlagSet{runCmd.Flags(), quadCmd.Flags()},
		},
		{
			name: "Rad.ReducedFactor",
			usage: `
              Rad.ReducedFactor reduces the effective propagation speed for
              the reduced speed-of-light approximation. 1 disables the
              reduction.`,
			defaultVal: 1.0,
			flagsets:   []*pflag.FlagSet{runCmd.Flags(), quadCmd.Flags()},
		},
		{
			name: "Solver.RelTol",
			usage: `
              Solver.RelTol is the relative tolerance of the Newton
              iteration.`,
			defaultVal: 1.0e-6,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "Solver.AbsTol",
			usage: `
              Solver.AbsTol is the absolute tolerance of the Newton
              iteration.`,
			defaultVal: 1.0e-12,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "Solver.MaxNewtonIter",
			usage: `
              Solver.MaxNewtonIter is the number of Newton iterations per
              substep before the step is shrunk.`,
			defaultVal: 20,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "Solver.MaxShrink",
			usage: `
              Solver.MaxShrink is the number of step-halving retries per
              macro step before the run fails.`,
			defaultVal: 12,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
	}

	Cfg = viper.New()

	// Set the prefix for configuration environment variables.
	Cfg.SetEnvPrefix("CHEMRAD")

	for _, option := range options {
		for i, set := range option.flagsets {
			if i != 0 { // We don't want to create the same flag twice.
				set.AddFlag(option.flagsets[0].Lookup(option.name))
				continue
			}
			switch option.defaultVal.(type) {
			case string:
				if option.shorthand == "" {
					set.String(option.name, option.defaultVal.(string), option.usage)
				} else {
					set.StringP(option.name, option.shorthand, option.defaultVal.(string), option.usage)
				}
			case []string:
				if option.shorthand == "" {
					set.StringSlice(option.name, option.defaultVal.([]string), option.usage)
				} else {
					set.StringSliceP(option.name, option.shorthand, option.defaultVal.([]string), option.usage)
				}
			case bool:
				if option.shorthand == "" {
					set.Bool(option.name, option.defaultVal.(bool), option.usage)
				} else {
					set.BoolP(option.name, option.shorthand, option.defaultVal.(bool), option.usage)
				}
			case int:
				if option.shorthand == "" {
					set.Int(option.name, option.defaultVal.(int), option.usage)
				} else {
					set.IntP(option.name, option.shorthand, option.defaultVal.(int), option.usage)
				}
			case float64:
				if option.shorthand == "" {
					set.Float64(option.name, option.defaultVal.(float64), option.usage)
				} else {
					set.Float64P(option.name, option.shorthand, option.defaultVal.(float64), option.usage)
				}
			default:
				panic("invalid argument type")
			}
			Cfg.BindPFlag(option.name, set.Lookup(option.name))
		}
	}
}

func init() {
	// Link the commands together.
	Root.AddCommand(versionCmd)
	Root.AddCommand(runCmd)
	Root.AddCommand(quadCmd)
	Root.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
}

// setConfig finds and reads in the configuration file, if there is one,
// and applies the log level.
func setConfig() error {
	if Cfg.GetBool("verbose") {
		logrus.SetLevel(logrus.DebugLevel)
	}
	if cfgpath := Cfg.GetString("config"); cfgpath != "" {
		Cfg.SetConfigFile(cfgpath)
		if err := Cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("chemrad: problem reading configuration file: %v", err)
		}
	}
	return nil
}

// Root is the main command.
var Root = &cobra.Command{
	Use:   "chemrad",
	Short: "An interstellar chemistry and radiation engine.",
	Long: `ChemRad computes interstellar gas-phase and dust chemistry together
with the angular and frequency moments of a discretized radiation field.
Use the subcommands specified below to access the model functionality.

Configuration can be changed by using a configuration file (and providing
the path to the file using the --config flag), by using command-line
arguments, or by setting environment variables in the format 'CHEMRAD_var'
where 'var' is the name of the variable to be set.`,
	DisableAutoGenTag: true,
	PersistentPreRunE: func(*cobra.Command, []string) error { return setConfig() },
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  "version prints the version number of this version of ChemRad.",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("ChemRad v%s\n", chemrad.Version)
	},
	DisableAutoGenTag: true,
}

// runCmd evolves the chemistry of a uniform test domain.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the chemistry on a uniform domain.",
	Long: `run evolves the chemical abundances and gas temperature of a uniform
domain of grid cells over the configured number of macro time steps and
writes summary statistics of the final abundances.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := os.Stdout
		if path := Cfg.GetString("OutputFile"); path != "" {
			f, err := os.Create(path)
			if err != nil {
				return fmt.Errorf("chemrad: creating output file: %v", err)
			}
			defer f.Close()
			out = f
		}
		return Run(Cfg, out)
	},
	DisableAutoGenTag: true,
}

// quadCmd builds the angular quadrature and prints its properties.
var quadCmd = &cobra.Command{
	Use:   "quad",
	Short: "Print the angular quadrature.",
	Long: `quad constructs the configured angular quadrature and prints every
ordinate direction and weight together with the moments of an isotropic
unit intensity field, for checking a quadrature configuration before a
run.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return Quadrature(Cfg, cmd.OutOrStdout())
	},
	DisableAutoGenTag: true,
}

var configCmd = &cobra.Command{
	Use:               "config",
	Short:             "Configuration file utilities.",
	Long:              "config groups utilities that work with configuration files.",
	DisableAutoGenTag: true,
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a default configuration file.",
	Long: `init writes a configuration file holding the default value of every
option to the given path (default chemrad.toml), ready for editing and
use with the --config flag.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := "chemrad.toml"
		if len(args) > 0 {
			path = args[0]
		}
		if err := WriteDefaultConfig(Cfg, path); err != nil {
			return err
		}
		logrus.WithField("path", path).Info("wrote configuration file")
		return nil
	},
	DisableAutoGenTag: true,
}
