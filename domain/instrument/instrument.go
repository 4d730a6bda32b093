// Package instrument models the telescope and receiver: the aperture
// efficiency including surface accuracy, the radiometer efficiency
// chain, and the receiver noise contribution.
package instrument

import (
	"math"

	"senscalc/domain/core"
	"senscalc/domain/obs"
	"senscalc/domain/units"
)

// Result carries the instrument-side inputs to the noise budget.
type Result struct {
	// ApertureEfficiency is the frequency-dependent product
	// η_ill·η_spill·η_block·η_Ruze, in (0, 1].
	ApertureEfficiency float64
	// RuzeFactor is the surface-accuracy term of the aperture
	// efficiency, kept itemized for diagnostics.
	RuzeFactor float64
	// EfficiencyChain is the product of the radiometer loss factors
	// η_pol·η_q·η_r applied to the final noise level.
	EfficiencyChain float64
	// ReceiverTempK is the receiver noise temperature in K.
	ReceiverTempK float64
	// DishAreaM2 is the geometric collecting area π·r².
	DishAreaM2 float64
}

// efficiencyTerm pairs a loss factor with its name for range checks.
type efficiencyTerm struct {
	name  string
	value float64
}

// checkEfficiencies rejects any factor outside (0, 1].
func checkEfficiencies(terms []efficiencyTerm) error {
	for _, t := range terms {
		if t.value <= 0 || t.value > 1 {
			return core.NewEfficiencyError(t.name, t.value)
		}
	}
	return nil
}

// product reduces an ordered list of independent multiplicative loss
// factors. The factors are physically independent, so the product is
// commutative; the order is only the order the terms were declared in.
func product(terms []efficiencyTerm) float64 {
	p := 1.0
	for _, t := range terms {
		p *= t.value
	}
	return p
}

// Ruze returns the surface-accuracy efficiency exp(-(4πσ/λ)²) for a
// surface RMS in microns at the observing frequency. A perfect surface
// (σ=0) returns exactly 1.
func Ruze(freqHz, surfaceRMSMicron float64) float64 {
	if surfaceRMSMicron == 0 {
		return 1
	}
	sigma := units.MicronToM(surfaceRMSMicron)
	x := 4 * math.Pi * sigma / units.Wavelength(freqHz)
	return math.Exp(-x * x)
}

// Evaluate validates the specification and derives the aggregate
// instrument figures at the observing frequency.
func Evaluate(freqHz float64, spec obs.InstrumentSpecification) (Result, error) {
	apertureTerms := []efficiencyTerm{
		{"eta_illumination", spec.EtaIllumination},
		{"eta_spillover", spec.EtaSpillover},
		{"eta_blockage", spec.EtaBlockage},
	}
	chainTerms := []efficiencyTerm{
		{"eta_polarization", spec.EtaPolarization},
		{"eta_quantization", spec.EtaQuantization},
		{"eta_radiative", spec.EtaRadiative},
	}
	if err := checkEfficiencies(apertureTerms); err != nil {
		return Result{}, err
	}
	if err := checkEfficiencies(chainTerms); err != nil {
		return Result{}, err
	}

	if spec.DishRadiusM <= 0 {
		return Result{}, core.NewDomainError("dish radius", spec.DishRadiusM, "radius > 0")
	}
	if spec.SurfaceRMSMicron < 0 {
		return Result{}, core.NewDomainError("surface rms", spec.SurfaceRMSMicron, "rms >= 0")
	}
	if spec.ReceiverTempK < 0 {
		return Result{}, core.NewDomainError("receiver temperature", spec.ReceiverTempK, "T_rx >= 0")
	}

	ruze := Ruze(freqHz, spec.SurfaceRMSMicron)
	res := Result{
		ApertureEfficiency: product(apertureTerms) * ruze,
		RuzeFactor:         ruze,
		EfficiencyChain:    product(chainTerms),
		ReceiverTempK:      spec.ReceiverTempK,
		DishAreaM2:         math.Pi * spec.DishRadiusM * spec.DishRadiusM,
	}
	return res, nil
}
