package obs

import (
	"math"

	"senscalc/domain/core"
)

// Mode is the closed enumeration of supported observing modes. The
// combination rules in the noise budget switch on this tag; anything
// outside the set is rejected with core.ErrUnsupportedMode rather than
// silently falling through.
type Mode string

const (
	// ModeTotalPowerContinuum is a single-beam broadband measurement.
	ModeTotalPowerContinuum Mode = "total_power_continuum"

	// ModeTotalPowerSpectral is a single-beam measurement of one
	// spectral channel; the bandwidth parameter is the channel width.
	ModeTotalPowerSpectral Mode = "total_power_spectral"

	// ModeOnOffContinuum differences an on-source and an off-source
	// broadband measurement.
	ModeOnOffContinuum Mode = "on_off_continuum"

	// ModeOnOffSpectral differences on/off spectral-channel
	// measurements.
	ModeOnOffSpectral Mode = "on_off_spectral"
)

// differencedPenalty is the exact multiplicative noise penalty for
// modes that subtract two independently noisy measurements.
var differencedPenalty = math.Sqrt2

// ParseMode validates a mode tag against the closed set.
func ParseMode(tag string) (Mode, error) {
	switch Mode(tag) {
	case ModeTotalPowerContinuum, ModeTotalPowerSpectral,
		ModeOnOffContinuum, ModeOnOffSpectral:
		return Mode(tag), nil
	}
	return "", core.NewModeError(tag)
}

// NoisePenalty returns the multiplicative factor applied to the final
// noise level relative to an ideal total-power measurement.
func (m Mode) NoisePenalty() (float64, error) {
	switch m {
	case ModeTotalPowerContinuum, ModeTotalPowerSpectral:
		return 1.0, nil
	case ModeOnOffContinuum, ModeOnOffSpectral:
		return differencedPenalty, nil
	}
	return 0, core.NewModeError(string(m))
}

// IsDifferenced reports whether the mode subtracts two measurements.
func (m Mode) IsDifferenced() bool {
	return m == ModeOnOffContinuum || m == ModeOnOffSpectral
}

// String returns the wire tag.
func (m Mode) String() string { return string(m) }
