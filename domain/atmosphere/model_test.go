package atmosphere

import (
	"math"
	"testing"

	"senscalc/domain/core"
	"senscalc/domain/obs"
	"senscalc/domain/units"
)

func f64(v float64) *float64 { return &v }

func TestAirmass_ExactlyOneAtZenith(t *testing.T) {
	a, err := Airmass(90)
	if err != nil {
		t.Fatalf("Airmass(90) failed: %v", err)
	}
	if a != 1.0 {
		t.Errorf("Airmass(90) = %v, want exactly 1", a)
	}
}

func TestAirmass_PlaneParallel(t *testing.T) {
	a, err := Airmass(30)
	if err != nil {
		t.Fatalf("Airmass(30) failed: %v", err)
	}
	// 1/sin(30°) = 2
	if math.Abs(a-2.0) > 1e-12 {
		t.Errorf("Airmass(30) = %v, want 2", a)
	}
}

func TestAirmass_RejectsImpossibleGeometry(t *testing.T) {
	for _, elev := range []float64{0, -5, 90.001, 180} {
		if _, err := Airmass(elev); !core.IsGeometryError(err) {
			t.Errorf("Airmass(%g): expected geometry error, got %v", elev, err)
		}
	}
}

func TestZenithOpacity_GridPointIsExact(t *testing.T) {
	// 230 GHz at 1 mm PWV is a tabulated point; no interpolation
	// error is acceptable there.
	tau, err := ZenithOpacity(units.GHzToHz(230), 1.0)
	if err != nil {
		t.Fatalf("ZenithOpacity failed: %v", err)
	}
	if math.Abs(tau-0.070) > 1e-12 {
		t.Errorf("tau(230 GHz, 1 mm) = %v, want 0.070", tau)
	}
}

func TestZenithOpacity_InterpolatesBetweenPWVColumns(t *testing.T) {
	// Halfway between the 1 mm and 2 mm columns at a tabulated
	// frequency the opacity is the arithmetic mean of the two columns.
	tau, err := ZenithOpacity(units.GHzToHz(230), 1.5)
	if err != nil {
		t.Fatalf("ZenithOpacity failed: %v", err)
	}
	want := (0.070 + 0.120) / 2
	if math.Abs(tau-want) > 1e-12 {
		t.Errorf("tau(230 GHz, 1.5 mm) = %v, want %v", tau, want)
	}
}

func TestZenithOpacity_MonotonicInPWV(t *testing.T) {
	freqs := []float64{100, 230, 345, 650}
	for _, f := range freqs {
		prev := -1.0
		for _, pwv := range []float64{0.5, 1, 2, 4, 8} {
			tau, err := ZenithOpacity(units.GHzToHz(f), pwv)
			if err != nil {
				t.Fatalf("ZenithOpacity(%g GHz, %g mm) failed: %v", f, pwv, err)
			}
			if tau <= prev {
				t.Errorf("tau(%g GHz) not increasing with PWV: tau(%g mm)=%v after %v", f, pwv, tau, prev)
			}
			prev = tau
		}
	}
}

func TestZenithOpacity_ClampsAtPWVEdges(t *testing.T) {
	lo, err := ZenithOpacity(units.GHzToHz(230), 0.1)
	if err != nil {
		t.Fatalf("ZenithOpacity failed: %v", err)
	}
	edge, _ := ZenithOpacity(units.GHzToHz(230), 0.5)
	if lo != edge {
		t.Errorf("PWV below the table must clamp to the driest column: got %v, want %v", lo, edge)
	}

	hi, err := ZenithOpacity(units.GHzToHz(230), 20)
	if err != nil {
		t.Fatalf("ZenithOpacity failed: %v", err)
	}
	edge, _ = ZenithOpacity(units.GHzToHz(230), 8)
	if hi != edge {
		t.Errorf("PWV above the table must clamp to the wettest column: got %v, want %v", hi, edge)
	}
}

func TestZenithOpacity_RejectsFrequencyOutsideTable(t *testing.T) {
	min, max := FrequencyRangeGHz()
	for _, f := range []float64{min - 1, max + 1} {
		if _, err := ZenithOpacity(units.GHzToHz(f), 1.0); !core.IsDomainError(err) {
			t.Errorf("ZenithOpacity(%g GHz): expected domain error, got %v", f, err)
		}
	}
}

func TestPWVForPercentile_MonotonicAndBounded(t *testing.T) {
	prev := 0.0
	for _, p := range []float64{10, 25, 50, 75, 90} {
		pwv, err := PWVForPercentile(p)
		if err != nil {
			t.Fatalf("PWVForPercentile(%g) failed: %v", p, err)
		}
		if pwv <= prev {
			t.Errorf("PWV not increasing with percentile: p=%g gave %v after %v", p, pwv, prev)
		}
		prev = pwv
	}

	for _, p := range []float64{0, -1, 101} {
		if _, err := PWVForPercentile(p); !core.IsDomainError(err) {
			t.Errorf("PWVForPercentile(%g): expected domain error, got %v", p, err)
		}
	}
}

func TestEvaluate_ZeroOpacityIsExact(t *testing.T) {
	cond := obs.AtmosphericConditions{ZenithOpacity: f64(0), AmbientTempK: 270}
	res, err := Evaluate(units.GHzToHz(230), 45, cond)
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	if res.Transmission != 1.0 {
		t.Errorf("transmission = %v, want exactly 1 at zero opacity", res.Transmission)
	}
	if res.SkyTempK != 0.0 {
		t.Errorf("sky temperature = %v, want exactly 0 at zero opacity", res.SkyTempK)
	}
}

func TestEvaluate_DirectOpacityBypassesTable(t *testing.T) {
	// A direct zenith opacity works even at a frequency the table does
	// not cover.
	cond := obs.AtmosphericConditions{ZenithOpacity: f64(0.1), AmbientTempK: 270}
	res, err := Evaluate(units.GHzToHz(1000), 90, cond)
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	want := math.Exp(-0.1)
	if math.Abs(res.Transmission-want) > 1e-12 {
		t.Errorf("transmission = %v, want %v", res.Transmission, want)
	}
	if res.PWVmm != 0 {
		t.Errorf("PWV must stay zero for a direct opacity, got %v", res.PWVmm)
	}
}

func TestEvaluate_LineOfSightScalesWithAirmass(t *testing.T) {
	cond := obs.AtmosphericConditions{ZenithOpacity: f64(0.2), AmbientTempK: 270}
	res, err := Evaluate(units.GHzToHz(230), 30, cond)
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	if math.Abs(res.LineOfSightTau-0.4) > 1e-12 {
		t.Errorf("line-of-sight tau = %v, want 0.4 at airmass 2", res.LineOfSightTau)
	}
	wantSky := 270 * (1 - math.Exp(-0.4))
	if math.Abs(res.SkyTempK-wantSky) > 1e-9 {
		t.Errorf("sky temperature = %v, want %v", res.SkyTempK, wantSky)
	}
}

func TestEvaluate_WeatherPercentileResolvesPWV(t *testing.T) {
	cond := obs.AtmosphericConditions{WeatherPercentile: f64(50), AmbientTempK: 270}
	res, err := Evaluate(units.GHzToHz(230), 60, cond)
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	if res.PWVmm <= 0 {
		t.Errorf("resolved PWV must be positive, got %v", res.PWVmm)
	}
	if res.ZenithTau <= 0 {
		t.Errorf("zenith tau must be positive, got %v", res.ZenithTau)
	}
}

func TestEvaluate_OpaqueSkyIsRejected(t *testing.T) {
	// tau·airmass far beyond exp underflow
	cond := obs.AtmosphericConditions{ZenithOpacity: f64(800), AmbientTempK: 270}
	if _, err := Evaluate(units.GHzToHz(230), 90, cond); !core.IsDomainError(err) {
		t.Errorf("expected domain error for a numerically opaque sky, got %v", err)
	}
}

func TestEvaluate_GeometryErrorsPropagate(t *testing.T) {
	cond := obs.AtmosphericConditions{ZenithOpacity: f64(0.1), AmbientTempK: 270}
	if _, err := Evaluate(units.GHzToHz(230), -10, cond); !core.IsGeometryError(err) {
		t.Errorf("expected geometry error, got %v", err)
	}
}

func TestEvaluate_RequiresAWaterInput(t *testing.T) {
	cond := obs.AtmosphericConditions{AmbientTempK: 270}
	if _, err := Evaluate(units.GHzToHz(230), 45, cond); !core.IsDomainError(err) {
		t.Errorf("expected domain error with no water input, got %v", err)
	}
}
