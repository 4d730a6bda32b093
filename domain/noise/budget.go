// Package noise combines the atmospheric and instrumental results into
// a single noise-equivalent figure: the system temperature referred
// above the atmosphere and the system equivalent flux density.
package noise

import (
	"math"

	"senscalc/domain/atmosphere"
	"senscalc/domain/core"
	"senscalc/domain/instrument"
	"senscalc/domain/obs"
	"senscalc/domain/units"
)

// BudgetResult is the itemized noise budget for one observation. The
// contributions are retained for diagnostic display; they are not
// re-derivable from the scalar SEFD alone.
type BudgetResult struct {
	// SystemTempK is the aggregate system temperature in K, referred
	// above the atmosphere. Never below ReceiverContribK.
	SystemTempK float64

	// Itemized temperature contributions, in K.
	ReceiverContribK   float64
	CMBContribK        float64
	AtmosphereContribK float64

	// SEFD is the system equivalent flux density in W·m⁻²·Hz⁻¹.
	SEFD float64

	// ModePenalty is the multiplicative noise penalty of the observing
	// mode (1 for total power, √2 for differenced modes).
	ModePenalty float64

	// PolarizationGain is √n_pol, the noise reduction from combining
	// polarizations.
	PolarizationGain float64

	// Instrument diagnostics carried through for display.
	ApertureEfficiency float64
	RuzeFactor         float64
	EfficiencyChain    float64
	DishAreaM2         float64

	// Atmosphere diagnostics carried through for display.
	Airmass        float64
	ZenithTau      float64
	LineOfSightTau float64
	Transmission   float64
	SkyTempK       float64
	PWVmm          float64
}

// Combine builds the noise budget from the two model results. The
// atmospheric contribution is referred above the atmosphere, so the
// sky brightness is divided by the transmission; the receiver and CMB
// terms add directly. The observing mode fixes the differencing
// penalty; polarizationCount must be 1 or 2.
func Combine(atm atmosphere.Result, inst instrument.Result, mode obs.Mode, polarizationCount int) (BudgetResult, error) {
	penalty, err := mode.NoisePenalty()
	if err != nil {
		return BudgetResult{}, err
	}
	if polarizationCount != 1 && polarizationCount != 2 {
		return BudgetResult{}, core.NewDomainError("polarization count", float64(polarizationCount), "n_pol in {1, 2}")
	}
	if atm.Transmission <= 0 {
		return BudgetResult{}, core.NewDomainError("transmission", atm.Transmission, "transmission > 0")
	}

	res := BudgetResult{
		ReceiverContribK:   inst.ReceiverTempK,
		CMBContribK:        units.TCMB,
		AtmosphereContribK: atm.SkyTempK / atm.Transmission,

		ModePenalty:      penalty,
		PolarizationGain: math.Sqrt(float64(polarizationCount)),

		ApertureEfficiency: inst.ApertureEfficiency,
		RuzeFactor:         inst.RuzeFactor,
		EfficiencyChain:    inst.EfficiencyChain,
		DishAreaM2:         inst.DishAreaM2,

		Airmass:        atm.AirmassValue,
		ZenithTau:      atm.ZenithTau,
		LineOfSightTau: atm.LineOfSightTau,
		Transmission:   atm.Transmission,
		SkyTempK:       atm.SkyTempK,
		PWVmm:          atm.PWVmm,
	}

	// Each contribution is non-negative, so the system temperature is
	// monotonically non-decreasing in every term and never falls below
	// the receiver contribution alone.
	res.SystemTempK = res.ReceiverContribK + res.CMBContribK + res.AtmosphereContribK
	res.SEFD = SEFD(res.SystemTempK, inst.DishAreaM2, inst.ApertureEfficiency)
	return res, nil
}

// SEFD returns the system equivalent flux density 2·k_B·T_sys/(η_a·A)
// in W·m⁻²·Hz⁻¹ for a system temperature in K, a geometric collecting
// area in m² and an aperture efficiency.
func SEFD(systemTempK, areaM2, apertureEfficiency float64) float64 {
	return 2 * units.Boltzmann * systemTempK / (apertureEfficiency * areaM2)
}
