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
	"testing"

	"github.com/GaryBoone/GoStats/stats"
	"github.com/ismmodel/chemrad"
)

func TestRatesPositiveAndFinite(t *testing.T) {
	n, err := NewNetwork(DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	y := testAbundances(n)
	if err := n.InitializeNextStep(testState(), y); err != nil {
		t.Fatal(err)
	}
	for i, k := range n.Rates() {
		if math.IsNaN(k) || math.IsInf(k, 0) {
			t.Errorf("channel %d rate = %g", i, k)
		}
		// Only temperature-gated collisional channels may vanish in
		// 50 K gas.
		gated := n.Channels()[i].MinTemp > 0
		if k < 0 || (k == 0 && !gated) {
			t.Errorf("channel %d rate = %g, want > 0", i, k)
		}
	}
}

func TestCollisionalChannelsGatedAtLowTemperature(t *testing.T) {
	n, err := NewNetwork(DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	y := testAbundances(n)
	cold := testState() // 50 K, below the 700 K collisional gate
	if err := n.InitializeNextStep(cold, y); err != nil {
		t.Fatal(err)
	}
	rates := n.Rates()
	for _, idx := range []int{i2H2DisH, i2H2Dis2, i2HIIon} {
		if rates[idx] != 0 {
			t.Errorf("channel %d rate = %g in cold gas, want 0", idx, rates[idx])
		}
	}

	hot := testState()
	hot.Temp = 5000.0
	if err := n.InitializeNextStep(hot, y); err != nil {
		t.Fatal(err)
	}
	rates = n.Rates()
	for _, idx := range []int{i2H2DisH, i2H2Dis2, i2HIIon} {
		if rates[idx] <= 0 {
			t.Errorf("channel %d rate = %g in hot gas, want > 0", idx, rates[idx])
		}
	}
}

func TestRateTemperatureClamp(t *testing.T) {
	n, err := NewNetwork(DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	y := testAbundances(n)

	// Below the clamp the rate fits must be evaluated at the clamp
	// temperature, so the rates at 0.1 K and at the minimum match.
	floor := testState()
	floor.Temp = DefaultConfig().TempMinRates
	if err := n.InitializeNextStep(floor, y); err != nil {
		t.Fatal(err)
	}
	want := n.Rates()

	sub := testState()
	sub.Temp = 0.1
	if err := n.InitializeNextStep(sub, y); err != nil {
		t.Fatal(err)
	}
	got := n.Rates()
	for i := range got {
		if got[i] != want[i] {
			t.Errorf("channel %d: rate %g below clamp, want %g", i, got[i], want[i])
		}
	}
}

// TestRecombinationPowerLaw fits log k against log T for H+ radiative
// recombination; the slope must recover the known near-power-law
// scaling of the case-B fit.
func TestRecombinationPowerLaw(t *testing.T) {
	var logT, logK []float64
	for temp := 10.0; temp <= 1000.0; temp *= 1.2 {
		logT = append(logT, math.Log10(temp))
		logK = append(logK, math.Log10(kHPlusRecB(temp)))
	}
	slope, _, rsq, _, _, _ := stats.LinearRegression(logT, logK)
	if slope > -0.4 || slope < -0.9 {
		t.Errorf("H+ recombination slope = %g, want roughly -0.6", slope)
	}
	if rsq < 0.99 {
		t.Errorf("H+ recombination fit r² = %g, want near-power-law", rsq)
	}
}

func TestGrainRecombinationDecreasesWithCharging(t *testing.T) {
	// Stronger grain charging (larger ψ) suppresses recombination.
	k1 := grainRec(cHP, 100.0, 1.0)
	k2 := grainRec(cHP, 100.0, 1.0e4)
	if k2 >= k1 {
		t.Errorf("grain recombination %g at ψ=1e4 not below %g at ψ=1", k2, k1)
	}
}

func TestCosmicRayAttenuation(t *testing.T) {
	if v := crAttenuation(1.0e19); v != 1 {
		t.Errorf("attenuation below threshold = %g, want 1", v)
	}
	v1 := crAttenuation(1.0e21)
	v2 := crAttenuation(1.0e22)
	if !(v1 < 1 && v2 < v1) {
		t.Errorf("attenuation not decreasing: %g, %g", v1, v2)
	}
}

func TestPhotoRatesRespondToShielding(t *testing.T) {
	n, err := NewNetwork(DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	y := testAbundances(n)

	thin := testState()
	if err := n.InitializeNextStep(thin, y); err != nil {
		t.Fatal(err)
	}
	unshielded := n.Rates()

	thick := testState()
	thick.Col = [chemrad.NCol]float64{1.0e21, 1.0e20, 1.0e16, 1.0e16}
	if err := n.InitializeNextStep(thick, y); err != nil {
		t.Fatal(err)
	}
	shielded := n.Rates()

	for _, idx := range []int{iphC, iphCHx, iphCO, iphOHx, iphH2, iphSi} {
		if shielded[idx] >= unshielded[idx] {
			t.Errorf("photo channel %d: shielded rate %g not below unshielded %g",
				idx, shielded[idx], unshielded[idx])
		}
	}
}

func TestShieldingFactors(t *testing.T) {
	// Self-shielding factors lie in (0, 1] and decrease with column.
	prev := 1.0
	for _, col := range []float64{0, 1.0e14, 1.0e16, 1.0e18, 1.0e21} {
		f := shieldH2(col)
		if f <= 0 || f > 1+1e-12 {
			t.Errorf("H2 shielding at %g = %g, want in (0, 1]", col, f)
		}
		if f > prev+1e-12 {
			t.Errorf("H2 shielding not decreasing at column %g", col)
		}
		prev = f
	}

	if f := shieldCO(0, 0); f != 1 {
		t.Errorf("CO shielding with zero columns = %g, want 1", f)
	}
	f1 := shieldCO(1.0e15, 0)
	f2 := shieldCO(1.0e17, 0)
	if !(f1 < 1 && f2 < f1) {
		t.Errorf("CO self-shielding not decreasing: %g, %g", f1, f2)
	}
	f3 := shieldCO(1.0e15, 1.0e21)
	if f3 >= f1 {
		t.Errorf("CO shielding by H2 absent: %g, want < %g", f3, f1)
	}

	if f := shieldC(1.0e17, 1.0e21); f >= shieldC(0, 0) {
		t.Errorf("C shielding not decreasing: %g", f)
	}
}

func TestInterpLogEndpoints(t *testing.T) {
	const tol = 1.0e-12

	if v := interpLog(logNCOShield, thetaCO, 0); v != thetaCO[0] {
		t.Errorf("zero column = %g, want %g", v, thetaCO[0])
	}
	if v := interpLog(logNCOShield, thetaCO, 1.0e25); v != thetaCO[len(thetaCO)-1] {
		t.Errorf("huge column = %g, want %g", v, thetaCO[len(thetaCO)-1])
	}
	// Exact grid point.
	if v := interpLog(logNCOShield, thetaCO, 1.0e15); math.Abs(v-thetaCO[3]) > tol {
		t.Errorf("grid point = %g, want %g", v, thetaCO[3])
	}
}
