// Package units holds the physical constants and unit conversions used
// by the calculator. All engine code works in SI base units (Hz, s, K,
// m, W·m⁻²·Hz⁻¹); anything user-facing (GHz, mJy, degrees) is converted
// at the boundary and nowhere else.
package units

import "math"

// Physical constants (CODATA 2018 where applicable).
const (
	// Boltzmann is the Boltzmann constant in J/K.
	Boltzmann = 1.380649e-23

	// TCMB is the cosmic microwave background temperature in K.
	TCMB = 2.73

	// Jansky is one Jansky expressed in W·m⁻²·Hz⁻¹.
	Jansky = 1e-26
)

// Frequency conversions.
const (
	GHz = 1e9 // Hz per GHz
	MHz = 1e6 // Hz per MHz
)

// GHzToHz converts a frequency in GHz to Hz.
func GHzToHz(f float64) float64 { return f * GHz }

// HzToGHz converts a frequency in Hz to GHz.
func HzToGHz(f float64) float64 { return f / GHz }

// JyToSI converts a flux density in Jansky to W·m⁻²·Hz⁻¹.
func JyToSI(s float64) float64 { return s * Jansky }

// SIToJy converts a flux density in W·m⁻²·Hz⁻¹ to Jansky.
func SIToJy(s float64) float64 { return s / Jansky }

// MJyToJy converts millijansky to Jansky.
func MJyToJy(s float64) float64 { return s / 1e3 }

// JyToMJy converts Jansky to millijansky.
func JyToMJy(s float64) float64 { return s * 1e3 }

// DegToRad converts degrees to radians.
func DegToRad(d float64) float64 { return d * math.Pi / 180 }

// RadToDeg converts radians to degrees.
func RadToDeg(r float64) float64 { return r * 180 / math.Pi }

// MicronToM converts microns to metres.
func MicronToM(um float64) float64 { return um * 1e-6 }

// Wavelength returns the wavelength in metres for a frequency in Hz.
func Wavelength(freqHz float64) float64 {
	return speedOfLight / freqHz
}

// speedOfLight in m/s.
const speedOfLight = 2.99792458e8
