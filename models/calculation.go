// Package models defines the boundary records of the calculator: the
// JSON request accepted by the web layer and CLI, the flat result
// record they render, and the history row the optional database
// stores. Values here carry user units (GHz, mJy, degrees); the
// conversion to the engine's SI value objects happens in ToDomain and
// nowhere else.
package models

import (
	"time"

	"senscalc/domain/obs"
	"senscalc/domain/units"
)

// CalculationRequest is the single structured request of the engine
// boundary. Pointer fields distinguish "omitted, use the default"
// from an explicit zero. Exactly one of TIntS and SensitivityMJy may
// end up set after defaulting; the validation layer enforces it.
type CalculationRequest struct {
	TIntS          *float64 `json:"t_int_s,omitempty"`
	SensitivityMJy *float64 `json:"sensitivity_mjy,omitempty"`

	ObsFreqGHz   *float64 `json:"obs_freq_ghz,omitempty"`
	BandwidthGHz *float64 `json:"bandwidth_ghz,omitempty"`
	ElevationDeg *float64 `json:"elevation_deg,omitempty"`
	NPol         *int     `json:"n_pol,omitempty"`
	Mode         string   `json:"mode,omitempty"`

	Weather       *float64 `json:"weather,omitempty"`
	PWVmm         *float64 `json:"pwv_mm,omitempty"`
	ZenithOpacity *float64 `json:"zenith_opacity,omitempty"`
	TAmbK         *float64 `json:"t_amb_k,omitempty"`

	TRxK          *float64 `json:"t_rx_k,omitempty"`
	DishRadiusM   *float64 `json:"dish_radius_m,omitempty"`
	SurfaceRMSUm  *float64 `json:"surface_rms_um,omitempty"`
	EtaIll        *float64 `json:"eta_ill,omitempty"`
	EtaSpill      *float64 `json:"eta_spill,omitempty"`
	EtaBlock      *float64 `json:"eta_block,omitempty"`
	EtaPol        *float64 `json:"eta_pol,omitempty"`
	EtaQ          *float64 `json:"eta_q,omitempty"`
	EtaR          *float64 `json:"eta_r,omitempty"`
}

// Default parameter values, matching the instrument documentation the
// form is prefilled from.
const (
	DefaultTIntS        = 70.0
	DefaultBandwidthGHz = 7.5
	DefaultObsFreqGHz   = 100.0
	DefaultNPol         = 2
	DefaultWeather      = 50.0
	DefaultElevationDeg = 30.0

	DefaultTAmbK        = 270.0
	DefaultTRxK         = 50.0
	DefaultDishRadiusM  = 25.0
	DefaultSurfaceRMSUm = 25.0

	DefaultEtaIll   = 0.80
	DefaultEtaSpill = 0.95
	DefaultEtaBlock = 0.94
	DefaultEtaPol   = 0.99
	DefaultEtaQ     = 0.96
	DefaultEtaR     = 1.0
)

// DefaultMode is the observing mode assumed when the request omits one.
var DefaultMode = obs.ModeTotalPowerContinuum

func orDefault(v *float64, def float64) float64 {
	if v != nil {
		return *v
	}
	return def
}

// ApplyDefaults fills every omitted field with its default. The
// solved-for pair is special: when neither t_int nor sensitivity is
// given, the default integration time is assumed and sensitivity is
// solved for; when one is given, the other stays absent.
func (r CalculationRequest) ApplyDefaults() CalculationRequest {
	out := r

	if out.TIntS == nil && out.SensitivityMJy == nil {
		d := DefaultTIntS
		out.TIntS = &d
	}

	if out.ObsFreqGHz == nil {
		d := DefaultObsFreqGHz
		out.ObsFreqGHz = &d
	}
	if out.BandwidthGHz == nil {
		d := DefaultBandwidthGHz
		out.BandwidthGHz = &d
	}
	if out.ElevationDeg == nil {
		d := DefaultElevationDeg
		out.ElevationDeg = &d
	}
	if out.NPol == nil {
		d := DefaultNPol
		out.NPol = &d
	}
	if out.Mode == "" {
		out.Mode = string(DefaultMode)
	}

	// Weather defaults only when no other water/opacity input is set.
	if out.Weather == nil && out.PWVmm == nil && out.ZenithOpacity == nil {
		d := DefaultWeather
		out.Weather = &d
	}
	if out.TAmbK == nil {
		d := DefaultTAmbK
		out.TAmbK = &d
	}

	if out.TRxK == nil {
		d := DefaultTRxK
		out.TRxK = &d
	}
	if out.DishRadiusM == nil {
		d := DefaultDishRadiusM
		out.DishRadiusM = &d
	}
	if out.SurfaceRMSUm == nil {
		d := DefaultSurfaceRMSUm
		out.SurfaceRMSUm = &d
	}
	out.EtaIll = ptrOr(out.EtaIll, DefaultEtaIll)
	out.EtaSpill = ptrOr(out.EtaSpill, DefaultEtaSpill)
	out.EtaBlock = ptrOr(out.EtaBlock, DefaultEtaBlock)
	out.EtaPol = ptrOr(out.EtaPol, DefaultEtaPol)
	out.EtaQ = ptrOr(out.EtaQ, DefaultEtaQ)
	out.EtaR = ptrOr(out.EtaR, DefaultEtaR)

	return out
}

func ptrOr(v *float64, def float64) *float64 {
	if v != nil {
		return v
	}
	return &def
}

// ToDomain converts the defaulted request into the engine's SI value
// objects. No range checking happens here; that is the validation
// layer's job.
func (r CalculationRequest) ToDomain() (obs.ObservationParameters, obs.AtmosphericConditions, obs.InstrumentSpecification) {
	req := r.ApplyDefaults()

	params := obs.ObservationParameters{
		FrequencyHz:       units.GHzToHz(*req.ObsFreqGHz),
		ElevationDeg:      *req.ElevationDeg,
		BandwidthHz:       units.GHzToHz(*req.BandwidthGHz),
		PolarizationCount: *req.NPol,
		Mode:              obs.Mode(req.Mode),
	}
	if req.TIntS != nil {
		params.IntegrationTimeS = *req.TIntS
	}
	if req.SensitivityMJy != nil {
		params.TargetSensitivityJy = units.MJyToJy(*req.SensitivityMJy)
	}

	cond := obs.AtmosphericConditions{
		WeatherPercentile: req.Weather,
		PWVmm:             req.PWVmm,
		ZenithOpacity:     req.ZenithOpacity,
		AmbientTempK:      *req.TAmbK,
	}

	spec := obs.InstrumentSpecification{
		DishRadiusM:      *req.DishRadiusM,
		SurfaceRMSMicron: *req.SurfaceRMSUm,
		ReceiverTempK:    *req.TRxK,
		EtaIllumination:  *req.EtaIll,
		EtaSpillover:     *req.EtaSpill,
		EtaBlockage:      *req.EtaBlock,
		EtaPolarization:  *req.EtaPol,
		EtaQuantization:  *req.EtaQ,
		EtaRadiative:     *req.EtaR,
	}

	return params, cond, spec
}

// Solved-quantity tags of a CalculationResult.
const (
	SolvedSensitivity     = "sensitivity"
	SolvedIntegrationTime = "integration_time"
)

// CalculationResult is the flat boundary record: the solved scalar
// with its unit and tag, the effective inputs, and the itemized noise
// budget. Deliberately flat so it renders straight into a form.
type CalculationResult struct {
	ID     string  `json:"id"`
	Solved string  `json:"solved"`
	Value  float64 `json:"value"`
	Unit   string  `json:"unit"`

	SensitivityMJy     float64 `json:"sensitivity_mjy"`
	IntegrationTimeS   float64 `json:"t_int_s"`

	ObsFreqGHz   float64 `json:"obs_freq_ghz"`
	BandwidthGHz float64 `json:"bandwidth_ghz"`
	ElevationDeg float64 `json:"elevation_deg"`
	NPol         int     `json:"n_pol"`
	Mode         string  `json:"mode"`

	SystemTempK        float64 `json:"t_sys_k"`
	ReceiverContribK   float64 `json:"t_rx_contrib_k"`
	CMBContribK        float64 `json:"t_cmb_contrib_k"`
	AtmosphereContribK float64 `json:"t_atm_contrib_k"`
	SEFDJy             float64 `json:"sefd_jy"`

	ApertureEff     float64 `json:"eta_aperture"`
	RuzeFactor      float64 `json:"eta_ruze"`
	EfficiencyChain float64 `json:"eta_chain"`
	ModePenalty     float64 `json:"mode_penalty"`

	Airmass        float64 `json:"airmass"`
	ZenithTau      float64 `json:"zenith_tau"`
	LineOfSightTau float64 `json:"line_of_sight_tau"`
	Transmission   float64 `json:"transmission"`
	SkyTempK       float64 `json:"t_sky_k"`
	PWVmm          float64 `json:"pwv_mm"`

	CreatedAt time.Time `json:"created_at"`
}

// CalculationRecord is the persisted history row for one calculation.
type CalculationRecord struct {
	ID             string    `db:"id"`
	Solved         string    `db:"solved"`
	Value          float64   `db:"value"`
	Unit           string    `db:"unit"`
	ObsFreqGHz     float64   `db:"obs_freq_ghz"`
	BandwidthGHz   float64   `db:"bandwidth_ghz"`
	ElevationDeg   float64   `db:"elevation_deg"`
	NPol           int       `db:"n_pol"`
	Mode           string    `db:"mode"`
	SystemTempK    float64   `db:"t_sys_k"`
	SEFDJy         float64   `db:"sefd_jy"`
	Transmission   float64   `db:"transmission"`
	CreatedAt      time.Time `db:"created_at"`
}

// Record converts a result into its history row.
func (r CalculationResult) Record() CalculationRecord {
	return CalculationRecord{
		ID:           r.ID,
		Solved:       r.Solved,
		Value:        r.Value,
		Unit:         r.Unit,
		ObsFreqGHz:   r.ObsFreqGHz,
		BandwidthGHz: r.BandwidthGHz,
		ElevationDeg: r.ElevationDeg,
		NPol:         r.NPol,
		Mode:         r.Mode,
		SystemTempK:  r.SystemTempK,
		SEFDJy:       r.SEFDJy,
		Transmission: r.Transmission,
		CreatedAt:    r.CreatedAt,
	}
}
