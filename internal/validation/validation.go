// Package validation holds the stateless input checks that run before
// any model is invoked. Checks are pure range/structure checks on the
// request value objects; the first violated constraint is returned and
// no partial computation is attempted on invalid input.
//
// Physically-impossible parameters that have their own error kinds are
// deliberately left to the models that own them: elevation bounds are
// enforced by the atmosphere model (INVALID_GEOMETRY) and efficiency
// bounds by the instrument model (INVALID_EFFICIENCY).
package validation

import (
	"fmt"

	"senscalc/domain/core"
	"senscalc/domain/obs"
)

// Error is a structured validation failure: which field, which
// constraint it violated, and the offending value.
type Error struct {
	Field      string
	Constraint string
	Value      float64
}

func (e *Error) Error() string {
	return fmt.Sprintf("validation failed for %s: %g violates %s", e.Field, e.Value, e.Constraint)
}

// Unwrap ties the structured error into the domain error kinds.
func (e *Error) Unwrap() error { return core.ErrValidation }

// FieldName reports the offending input field for boundary error
// payloads.
func (e *Error) FieldName() string { return e.Field }

func fail(field, constraint string, value float64) error {
	return &Error{Field: field, Constraint: constraint, Value: value}
}

// CheckObservation validates the observation parameters, including
// the exactly-one-unknown rule for {integration time, sensitivity}.
func CheckObservation(p obs.ObservationParameters) error {
	if p.FrequencyHz <= 0 {
		return fail("frequency", "frequency > 0", p.FrequencyHz)
	}
	if p.BandwidthHz <= 0 {
		return fail("bandwidth", "bandwidth > 0", p.BandwidthHz)
	}
	if p.PolarizationCount != 1 && p.PolarizationCount != 2 {
		return fail("n_pol", "n_pol in {1, 2}", float64(p.PolarizationCount))
	}
	if p.IntegrationTimeS < 0 {
		return fail("t_int", "t_int >= 0", p.IntegrationTimeS)
	}
	if p.TargetSensitivityJy < 0 {
		return fail("sensitivity", "sensitivity >= 0", p.TargetSensitivityJy)
	}
	hasTime := p.IntegrationTimeS > 0
	hasSens := p.TargetSensitivityJy > 0
	if hasTime == hasSens {
		// Both set or both absent: the duality has no unknown to
		// solve for.
		return fail("t_int/sensitivity", "exactly one of t_int and sensitivity must be set", 0)
	}
	if _, err := obs.ParseMode(string(p.Mode)); err != nil {
		return err
	}
	return nil
}

// CheckAtmosphere validates the atmospheric conditions structure.
func CheckAtmosphere(c obs.AtmosphericConditions) error {
	if c.AmbientTempK <= 0 {
		return fail("ambient_temperature", "T_amb > 0", c.AmbientTempK)
	}
	set := 0
	if c.WeatherPercentile != nil {
		set++
		if *c.WeatherPercentile <= 0 || *c.WeatherPercentile > 100 {
			return fail("weather", "percentile in (0, 100]", *c.WeatherPercentile)
		}
	}
	if c.PWVmm != nil {
		set++
		if *c.PWVmm < 0 {
			return fail("pwv", "pwv >= 0", *c.PWVmm)
		}
	}
	if c.ZenithOpacity != nil {
		set++
		if *c.ZenithOpacity < 0 {
			return fail("zenith_opacity", "opacity >= 0", *c.ZenithOpacity)
		}
	}
	if set != 1 {
		return fail("weather/pwv/zenith_opacity",
			"exactly one of weather percentile, pwv and zenith opacity must be set", float64(set))
	}
	return nil
}

// CheckInstrument validates the structural instrument fields. The
// efficiency factors themselves are checked by the instrument model so
// that bound violations carry the INVALID_EFFICIENCY kind.
func CheckInstrument(s obs.InstrumentSpecification) error {
	if s.DishRadiusM <= 0 {
		return fail("dish_radius", "radius > 0", s.DishRadiusM)
	}
	if s.SurfaceRMSMicron < 0 {
		return fail("surface_rms", "rms >= 0", s.SurfaceRMSMicron)
	}
	if s.ReceiverTempK < 0 {
		return fail("receiver_temperature", "T_rx >= 0", s.ReceiverTempK)
	}
	return nil
}

// CheckRequest runs every check in order and returns the first
// violation.
func CheckRequest(p obs.ObservationParameters, c obs.AtmosphericConditions, s obs.InstrumentSpecification) error {
	if err := CheckObservation(p); err != nil {
		return err
	}
	if err := CheckAtmosphere(c); err != nil {
		return err
	}
	return CheckInstrument(s)
}
