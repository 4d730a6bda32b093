// Package atmosphere models the sky above the telescope: zenith
// opacity as a function of observing frequency and precipitable water
// vapour, airmass from elevation, and the resulting transmission and
// sky brightness temperature.
package atmosphere

import (
	"math"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/interp"

	"senscalc/domain/core"
	"senscalc/domain/obs"
	"senscalc/domain/units"
)

// Result is what the noise budget consumes: the line-of-sight numbers
// for one observation.
type Result struct {
	// AirmassValue is the path length relative to zenith.
	AirmassValue float64
	// ZenithTau is the zenith opacity at the observing frequency.
	ZenithTau float64
	// LineOfSightTau is ZenithTau scaled by airmass.
	LineOfSightTau float64
	// Transmission is exp(-LineOfSightTau), in (0, 1].
	Transmission float64
	// SkyTempK is the atmospheric brightness temperature,
	// T_amb·(1 - Transmission).
	SkyTempK float64
	// PWVmm is the water-vapour column the opacity was derived from.
	// Zero when the caller supplied the zenith opacity directly.
	PWVmm float64
}

// tauInterpolators holds one fitted frequency interpolator per PWV
// column. Built once at package initialisation; read-only afterwards.
var tauInterpolators []interp.PiecewiseLinear

func init() {
	tauInterpolators = make([]interp.PiecewiseLinear, len(pwvGridMM))
	for j := range pwvGridMM {
		ys := make([]float64, len(freqGridGHz))
		for i := range freqGridGHz {
			ys[i] = zenithTauTable[i][j]
		}
		if err := tauInterpolators[j].Fit(freqGridGHz, ys); err != nil {
			// The grids are compile-time constants with strictly
			// increasing abscissae; a fit failure is a programming
			// error in table.go.
			panic(err)
		}
	}
}

// FrequencyRangeGHz returns the tabulated frequency coverage.
func FrequencyRangeGHz() (min, max float64) {
	return freqGridGHz[0], freqGridGHz[len(freqGridGHz)-1]
}

// Airmass converts an elevation in degrees to airmass using the
// plane-parallel approximation 1/sin(elev). Elevation must lie in
// (0°, 90°]; outside that the airmass is undefined or the geometry is
// impossible, and core.ErrInvalidGeometry is returned.
func Airmass(elevationDeg float64) (float64, error) {
	if elevationDeg <= 0 {
		return 0, core.NewGeometryError("elevation", elevationDeg, "airmass undefined at or below the horizon")
	}
	if elevationDeg > 90 {
		return 0, core.NewGeometryError("elevation", elevationDeg, "elevation cannot exceed zenith")
	}
	if elevationDeg == 90 {
		// Exact unity at zenith; avoids sin(π/2) rounding.
		return 1, nil
	}
	return 1 / math.Sin(units.DegToRad(elevationDeg)), nil
}

// PWVForPercentile maps a weather percentile in (0, 100] onto the site
// PWV climatology.
func PWVForPercentile(percentile float64) (float64, error) {
	if percentile <= 0 || percentile > 100 {
		return 0, core.NewDomainError("weather percentile", percentile, "(0, 100]")
	}
	pwv, err := stats.Percentile(pwvClimatologyMM, percentile)
	if err != nil {
		return 0, core.NewDomainError("weather percentile", percentile, "climatology lookup")
	}
	return pwv, nil
}

// ZenithOpacity interpolates the zenith opacity at the observing
// frequency for a given PWV column. Frequency is interpolated
// piecewise-linearly along the table rows; PWV linearly between the
// two bracketing columns, clamped to the tabulated PWV range.
func ZenithOpacity(freqHz, pwvMM float64) (float64, error) {
	fGHz := units.HzToGHz(freqHz)
	if fGHz < freqGridGHz[0] || fGHz > freqGridGHz[len(freqGridGHz)-1] {
		return 0, core.NewDomainError("frequency", fGHz,
			"tabulated atmospheric range (GHz)")
	}
	if pwvMM < 0 {
		return 0, core.NewDomainError("pwv", pwvMM, "pwv >= 0")
	}

	if pwvMM <= pwvGridMM[0] {
		return tauInterpolators[0].Predict(fGHz), nil
	}
	last := len(pwvGridMM) - 1
	if pwvMM >= pwvGridMM[last] {
		return tauInterpolators[last].Predict(fGHz), nil
	}

	j := 0
	for pwvGridMM[j+1] < pwvMM {
		j++
	}
	lo := tauInterpolators[j].Predict(fGHz)
	hi := tauInterpolators[j+1].Predict(fGHz)
	frac := (pwvMM - pwvGridMM[j]) / (pwvGridMM[j+1] - pwvGridMM[j])
	return lo + frac*(hi-lo), nil
}

// Evaluate produces the complete atmospheric result for one
// observation: airmass from elevation, zenith opacity from whichever
// water/opacity input the conditions carry, then transmission and sky
// brightness. A zero opacity yields a transmission of exactly 1 and a
// zero sky contribution.
func Evaluate(freqHz, elevationDeg float64, cond obs.AtmosphericConditions) (Result, error) {
	airmass, err := Airmass(elevationDeg)
	if err != nil {
		return Result{}, err
	}

	var res Result
	res.AirmassValue = airmass

	switch {
	case cond.ZenithOpacity != nil:
		if *cond.ZenithOpacity < 0 {
			return Result{}, core.NewDomainError("zenith opacity", *cond.ZenithOpacity, "opacity >= 0")
		}
		res.ZenithTau = *cond.ZenithOpacity
	case cond.PWVmm != nil:
		tau, err := ZenithOpacity(freqHz, *cond.PWVmm)
		if err != nil {
			return Result{}, err
		}
		res.ZenithTau = tau
		res.PWVmm = *cond.PWVmm
	case cond.WeatherPercentile != nil:
		pwv, err := PWVForPercentile(*cond.WeatherPercentile)
		if err != nil {
			return Result{}, err
		}
		tau, err := ZenithOpacity(freqHz, pwv)
		if err != nil {
			return Result{}, err
		}
		res.ZenithTau = tau
		res.PWVmm = pwv
	default:
		return Result{}, core.NewDomainError("atmospheric conditions", 0,
			"one of weather percentile, pwv or zenith opacity must be set")
	}

	res.LineOfSightTau = res.ZenithTau * airmass
	if res.ZenithTau == 0 {
		// Exact boundary: fully transparent sky, no brightness
		// contribution, no rounding through Exp.
		res.Transmission = 1
		res.SkyTempK = 0
		return res, nil
	}

	res.Transmission = math.Exp(-res.LineOfSightTau)
	if res.Transmission <= 0 {
		// exp underflows to +0 for a line-of-sight opacity beyond
		// ~745; the sky is numerically opaque and every downstream
		// division would blow up.
		return Result{}, core.NewDomainError("transmission", res.Transmission, "transmission > 0")
	}
	res.SkyTempK = cond.AmbientTempK * (1 - res.Transmission)
	return res, nil
}
