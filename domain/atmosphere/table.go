package atmosphere

// Zenith-opacity lookup data for a high, dry submillimetre site.
//
// The grid tabulates zenith opacity against observing frequency (rows)
// and precipitable water vapour (columns). Values follow the shape of
// an atmospheric radiative-transfer run for a Chajnantor-like site:
// low opacity in the 30–150 GHz and 200–350 GHz windows, strong water
// lines near 183, 380 and 557 GHz, and a floor that rises with PWV at
// every frequency. The numbers are calibration data, not code: they are
// loaded once at process start and are read-only afterwards. Swapping
// in a different site or a finer radiative-transfer grid only means
// replacing this file; the model contract in model.go is unchanged.

// pwvGridMM are the tabulated PWV columns in millimetres.
var pwvGridMM = []float64{0.5, 1.0, 2.0, 4.0, 8.0}

// freqGridGHz are the tabulated frequency rows in GHz. Lookups outside
// [freqGridGHz[0], freqGridGHz[last]] are rejected by validation before
// they reach the interpolator.
var freqGridGHz = []float64{
	30, 50, 100, 150, 183, 200, 230, 275, 345, 380,
	420, 460, 500, 550, 650, 750, 850, 950,
}

// zenithTauTable[i][j] is the zenith opacity at freqGridGHz[i] and
// pwvGridMM[j].
var zenithTauTable = [][]float64{
	{0.010, 0.012, 0.015, 0.020, 0.030}, // 30 GHz
	{0.060, 0.065, 0.075, 0.090, 0.120}, // 50 GHz, O2 wing
	{0.025, 0.035, 0.050, 0.090, 0.160}, // 100 GHz
	{0.035, 0.050, 0.080, 0.140, 0.270}, // 150 GHz
	{1.500, 2.800, 5.500, 11.00, 22.00}, // 183 GHz water line
	{0.060, 0.090, 0.160, 0.300, 0.580}, // 200 GHz
	{0.045, 0.070, 0.120, 0.220, 0.430}, // 230 GHz window
	{0.080, 0.120, 0.200, 0.370, 0.700}, // 275 GHz
	{0.130, 0.190, 0.320, 0.580, 1.100}, // 345 GHz window
	{1.200, 2.200, 4.300, 8.500, 17.00}, // 380 GHz water line
	{0.350, 0.550, 0.950, 1.800, 3.500}, // 420 GHz
	{0.450, 0.700, 1.200, 2.300, 4.400}, // 460 GHz
	{0.550, 0.850, 1.500, 2.800, 5.500}, // 500 GHz
	{1.600, 2.700, 5.000, 9.800, 19.00}, // 550 GHz, near 557 water line
	{0.750, 1.200, 2.100, 4.000, 7.800}, // 650 GHz window
	{1.300, 2.100, 3.700, 7.100, 14.00}, // 750 GHz
	{1.100, 1.800, 3.200, 6.100, 12.00}, // 850 GHz window
	{1.900, 3.100, 5.600, 10.70, 21.00}, // 950 GHz
}

// pwvClimatologyMM is a year of monthly-sampled night-time PWV
// measurements for the site, used to translate a weather percentile
// into a PWV value. Median sits near 1.1 mm; the wet tail reaches the
// worst summer nights.
var pwvClimatologyMM = []float64{
	0.31, 0.35, 0.38, 0.42, 0.45, 0.49, 0.52, 0.56,
	0.60, 0.64, 0.68, 0.72, 0.77, 0.81, 0.86, 0.90,
	0.95, 0.99, 1.04, 1.08, 1.12, 1.17, 1.22, 1.28,
	1.34, 1.41, 1.49, 1.57, 1.66, 1.76, 1.87, 1.99,
	2.12, 2.27, 2.44, 2.63, 2.85, 3.10, 3.38, 3.70,
	4.06, 4.47, 4.94, 5.47, 6.07, 6.75, 7.52, 8.38,
}
