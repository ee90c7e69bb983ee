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
	"bytes"
	"math"
	"path/filepath"
	"strings"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/ismmodel/chemrad/rad"
)

func TestConfigDefaults(t *testing.T) {
	rc, err := radConfig(Cfg)
	if err != nil {
		t.Fatal(err)
	}
	if rc.NDim != 3 || rc.NMu != 4 || rc.AngleFlag != rad.AngleTriangular {
		t.Errorf("unexpected default angular grid: %+v", rc)
	}
	if rc.NFreq != 8 {
		t.Errorf("default band count = %d, want 8", rc.NFreq)
	}
	if rc.FreqWeights != nil {
		t.Errorf("default frequency weights = %v, want nil (uniform)", rc.FreqWeights)
	}

	nc, err := networkConfig(Cfg)
	if err != nil {
		t.Fatal(err)
	}
	if nc.Zdg != 1.0 || nc.XC != 1.6e-4 || nc.CRRate != 2.0e-16 {
		t.Errorf("unexpected default chemistry parameters: %+v", nc)
	}

	so := solverOptions(Cfg)
	if so.RelTol != 1.0e-6 || so.MaxNewtonIter != 20 || so.MaxShrink != 12 {
		t.Errorf("unexpected default solver options: %+v", so)
	}
}

func TestCodeUnitConversions(t *testing.T) {
	const tol = 1.0e-12

	units, err := codeUnits(Cfg)
	if err != nil {
		t.Fatal(err)
	}
	// Default code units: 1 pc, 1 km/s, 1 cm⁻³. The time unit is then
	// pc / (km/s) ≈ 0.98 Myr.
	wantTime := 3.0857e18 / 1.0e5
	got, err := units.TimeToSeconds(2)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(got-2*wantTime) > tol*got {
		t.Errorf("2 code time units = %g s, want %g", got, 2*wantTime)
	}

	if v := units.DensityToNH(3); math.Abs(v-3) > tol*v {
		t.Errorf("density conversion = %g, want 3", v)
	}

	wantCol := 5.0 * 3.0857e18 // one code density over one code length
	if v := units.ColumnToCGS(5); math.Abs(v-wantCol) > tol*v {
		t.Errorf("column conversion = %g, want %g", v, wantCol)
	}
}

func TestWriteDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chemrad.toml")
	if err := WriteDefaultConfig(Cfg, path); err != nil {
		t.Fatal(err)
	}
	var conf map[string]interface{}
	if _, err := toml.DecodeFile(path, &conf); err != nil {
		t.Fatal(err)
	}
	chem, ok := conf["Chemistry"].(map[string]interface{})
	if !ok {
		t.Fatalf("configuration file missing [Chemistry] section: %v", conf)
	}
	if zdg, ok := chem["Zdg"].(float64); !ok || zdg != 1.0 {
		t.Errorf("Chemistry.Zdg = %v, want 1.0", chem["Zdg"])
	}
	if ct, ok := chem["ConstTemp"].(bool); !ok || ct {
		t.Errorf("Chemistry.ConstTemp = %v, want false", chem["ConstTemp"])
	}
	if nc, ok := conf["NumCells"].(int64); !ok || nc != 64 {
		t.Errorf("NumCells = %v, want 64", conf["NumCells"])
	}
	if _, ok := conf["Rad"].(map[string]interface{}); !ok {
		t.Error("configuration file missing [Rad] section")
	}
}

func TestQuadratureCommandOutput(t *testing.T) {
	var buf bytes.Buffer
	if err := Quadrature(Cfg, &buf); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "octants 8") {
		t.Errorf("quadrature dump missing octant count:\n%s", out)
	}
	// Er of an isotropic unit field is 4π ≈ 12.566.
	if !strings.Contains(out, "Er = 12.566") {
		t.Errorf("quadrature dump missing isotropic energy density:\n%s", out)
	}
}

func TestRunSmallDomain(t *testing.T) {
	if testing.Short() {
		t.Skip("chemistry run in short mode")
	}

	// Narrow the default run to a quick fixed-temperature case.
	Cfg.Set("NumCells", 3)
	Cfg.Set("NumSteps", 2)
	Cfg.Set("Dt", 1.0e-4) // about 3e9 s
	Cfg.Set("Chemistry.ConstTemp", true)
	defer func() {
		Cfg.Set("NumCells", 64)
		Cfg.Set("NumSteps", 1)
		Cfg.Set("Dt", 1.0)
		Cfg.Set("Chemistry.ConstTemp", false)
	}()

	var buf bytes.Buffer
	if err := Run(Cfg, &buf); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"H2", "C+", "mean"} {
		if !strings.Contains(out, want) {
			t.Errorf("run summary missing %q:\n%s", want, out)
		}
	}
}

func TestRootCommandWiring(t *testing.T) {
	names := map[string]bool{}
	for _, c := range Root.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"run", "quad", "version", "config"} {
		if !names[want] {
			t.Errorf("root command missing subcommand %q", want)
		}
	}
}

func TestVersionCommand(t *testing.T) {
	var buf bytes.Buffer
	Root.SetOut(&buf)
	Root.SetArgs([]string{"version"})
	if err := Root.Execute(); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "ChemRad v") {
		t.Errorf("version output = %q", buf.String())
	}
}
