package models

import "senscalc/domain/atmosphere"

// ParameterInfo describes one user-facing parameter for form
// rendering: default value, display unit, and the allowed range.
type ParameterInfo struct {
	Name         string  `json:"name"`
	DefaultValue float64 `json:"default_value"`
	Unit         string  `json:"unit"`
	Min          float64 `json:"min"`
	Max          float64 `json:"max"`
}

// ParameterValuesUnits returns the parameter catalogue served to the
// web form (defaults, units and allowed ranges).
func ParameterValuesUnits() []ParameterInfo {
	fMin, fMax := atmosphere.FrequencyRangeGHz()
	return []ParameterInfo{
		{Name: "t_int", DefaultValue: DefaultTIntS, Unit: "s", Min: 0, Max: 1e8},
		{Name: "sensitivity", DefaultValue: 0, Unit: "mJy", Min: 0, Max: 1e6},
		{Name: "obs_freq", DefaultValue: DefaultObsFreqGHz, Unit: "GHz", Min: fMin, Max: fMax},
		{Name: "bandwidth", DefaultValue: DefaultBandwidthGHz, Unit: "GHz", Min: 0, Max: 100},
		{Name: "elevation", DefaultValue: DefaultElevationDeg, Unit: "deg", Min: 0, Max: 90},
		{Name: "n_pol", DefaultValue: DefaultNPol, Unit: "", Min: 1, Max: 2},
		{Name: "weather", DefaultValue: DefaultWeather, Unit: "percentile", Min: 0, Max: 100},
		{Name: "t_amb", DefaultValue: DefaultTAmbK, Unit: "K", Min: 0, Max: 400},
		{Name: "t_rx", DefaultValue: DefaultTRxK, Unit: "K", Min: 0, Max: 1000},
		{Name: "dish_radius", DefaultValue: DefaultDishRadiusM, Unit: "m", Min: 0, Max: 100},
		{Name: "surface_rms", DefaultValue: DefaultSurfaceRMSUm, Unit: "micron", Min: 0, Max: 1000},
		{Name: "eta_ill", DefaultValue: DefaultEtaIll, Unit: "", Min: 0, Max: 1},
		{Name: "eta_spill", DefaultValue: DefaultEtaSpill, Unit: "", Min: 0, Max: 1},
		{Name: "eta_block", DefaultValue: DefaultEtaBlock, Unit: "", Min: 0, Max: 1},
		{Name: "eta_pol", DefaultValue: DefaultEtaPol, Unit: "", Min: 0, Max: 1},
		{Name: "eta_q", DefaultValue: DefaultEtaQ, Unit: "", Min: 0, Max: 1},
		{Name: "eta_r", DefaultValue: DefaultEtaR, Unit: "", Min: 0, Max: 1},
	}
}
