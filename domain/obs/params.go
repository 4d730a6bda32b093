// Package obs defines the immutable value objects describing one
// calculation request: what is observed, under which sky, with which
// instrument, in which mode. Objects are constructed once per request
// and never mutated; nothing here persists across requests.
package obs

// ObservationParameters describes the observation itself. All fields
// are SI: frequency and bandwidth in Hz, elevation in degrees,
// integration time in seconds, target sensitivity in Jansky.
//
// Exactly one of IntegrationTimeS and TargetSensitivityJy is the
// unknown being solved for; the validation layer enforces that the
// other is set (> 0) and the unknown is zero.
type ObservationParameters struct {
	FrequencyHz       float64
	ElevationDeg      float64
	BandwidthHz       float64
	PolarizationCount int

	IntegrationTimeS    float64
	TargetSensitivityJy float64

	Mode Mode
}

// SolvesForTime reports whether the integration time is the unknown.
func (p ObservationParameters) SolvesForTime() bool {
	return p.TargetSensitivityJy > 0
}

// AtmosphericConditions describes the sky above the telescope. Exactly
// one of the three water/opacity fields must be set:
//
//   - WeatherPercentile: percentile of the site PWV climatology
//     (0–100], mapped to a PWV column before the opacity lookup;
//   - PWVmm: precipitable water vapour in millimetres;
//   - ZenithOpacity: the zenith opacity at the observing frequency,
//     bypassing the frequency/PWV table entirely.
//
// Pointers distinguish "absent" from an explicit zero (a zenith
// opacity of 0 is a legal, perfectly transparent sky).
type AtmosphericConditions struct {
	WeatherPercentile *float64
	PWVmm             *float64
	ZenithOpacity     *float64

	AmbientTempK float64
}

// InstrumentSpecification describes the telescope and receiver.
// Efficiency factors are independent multiplicative losses, each in
// (0, 1]; their composition is a commutative product, so the field
// order here implies no sequential dependency.
type InstrumentSpecification struct {
	DishRadiusM      float64
	SurfaceRMSMicron float64

	ReceiverTempK float64

	EtaIllumination float64
	EtaSpillover    float64
	EtaBlockage     float64
	EtaPolarization float64
	EtaQuantization float64
	EtaRadiative    float64
}
