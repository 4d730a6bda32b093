// Command cli runs a single sensitivity/integration-time calculation
// from a YAML input file and prints the result. Parameters follow the
// form <name>: {value: <number>, unit: <unit>}; anything omitted takes
// the documented default.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"senscalc/adapters/excel"
	"senscalc/app"
	"senscalc/internal"
	"senscalc/models"
)

// yamlValue is one parameter entry in the input file.
type yamlValue struct {
	Value float64 `yaml:"value"`
	Unit  string  `yaml:"unit"`
}

func main() {
	inputPath := flag.String("input", "user_inputs.yaml", "YAML input file")
	logPath := flag.String("log", "", "optional file to dump the full parameter log to")
	reportPath := flag.String("report", "", "optional xlsx report output path")
	flag.Parse()

	logger := internal.NewDefaultLogger()

	req, err := loadRequest(*inputPath)
	if err != nil {
		log.Fatalf("Failed to read %s: %v", *inputPath, err)
	}

	calc := app.NewCalculatorService(logger, nil, nil)
	res, err := calc.Solve(context.Background(), req)
	if err != nil {
		log.Fatalf("Calculation failed: %v", err)
	}

	fmt.Println("-----------")
	if res.Solved == models.SolvedSensitivity {
		fmt.Printf("Sensitivity: %.4f mJy for an integration time of %.2f s\n",
			res.Value, res.IntegrationTimeS)
	} else {
		fmt.Printf("Integration time: %.2f s to obtain a sensitivity of %.4f mJy\n",
			res.Value, res.SensitivityMJy)
	}
	fmt.Printf("T_sys: %.2f K   SEFD: %.4e Jy   transmission: %.4f\n",
		res.SystemTempK, res.SEFDJy, res.Transmission)
	fmt.Println("-----------")

	if *logPath != "" {
		if err := writeParamLog(*logPath, res); err != nil {
			log.Fatalf("Failed to write parameter log: %v", err)
		}
		logger.Info("parameter log written to %s", *logPath)
	}

	if *reportPath != "" {
		data, err := excel.NewReportWriter().WriteResult(*res)
		if err != nil {
			log.Fatalf("Failed to render report: %v", err)
		}
		if err := os.WriteFile(*reportPath, data, 0o644); err != nil {
			log.Fatalf("Failed to write report: %v", err)
		}
		logger.Info("report written to %s", *reportPath)
	}
}

// loadRequest reads the YAML parameter file into a boundary request.
func loadRequest(path string) (models.CalculationRequest, error) {
	var req models.CalculationRequest

	raw, err := os.ReadFile(path)
	if err != nil {
		return req, err
	}
	entries := map[string]yamlValue{}
	if err := yaml.Unmarshal(raw, &entries); err != nil {
		return req, err
	}

	for name, entry := range entries {
		if err := applyEntry(&req, name, entry); err != nil {
			return req, err
		}
	}
	return req, nil
}

func applyEntry(req *models.CalculationRequest, name string, entry yamlValue) error {
	v := entry.Value
	switch name {
	case "t_int":
		s, err := toSeconds(v, entry.Unit)
		if err != nil {
			return err
		}
		req.TIntS = &s
	case "sensitivity":
		mjy, err := toMJy(v, entry.Unit)
		if err != nil {
			return err
		}
		if mjy > 0 {
			req.SensitivityMJy = &mjy
		}
	case "obs_freq":
		ghz, err := toGHz(v, entry.Unit)
		if err != nil {
			return err
		}
		req.ObsFreqGHz = &ghz
	case "bandwidth":
		ghz, err := toGHz(v, entry.Unit)
		if err != nil {
			return err
		}
		req.BandwidthGHz = &ghz
	case "elevation":
		req.ElevationDeg = &v
	case "n_pol":
		n := int(v)
		req.NPol = &n
	case "weather":
		req.Weather = &v
	case "pwv":
		req.PWVmm = &v
	case "zenith_opacity":
		req.ZenithOpacity = &v
	case "t_amb":
		req.TAmbK = &v
	case "t_rx":
		req.TRxK = &v
	case "dish_radius":
		req.DishRadiusM = &v
	case "surface_rms":
		req.SurfaceRMSUm = &v
	case "eta_ill":
		req.EtaIll = &v
	case "eta_spill":
		req.EtaSpill = &v
	case "eta_block":
		req.EtaBlock = &v
	case "eta_pol":
		req.EtaPol = &v
	case "eta_q":
		req.EtaQ = &v
	case "eta_r":
		req.EtaR = &v
	default:
		return fmt.Errorf("unknown parameter %q", name)
	}
	return nil
}

func toSeconds(v float64, unit string) (float64, error) {
	switch unit {
	case "", "s":
		return v, nil
	case "min":
		return v * 60, nil
	case "h":
		return v * 3600, nil
	}
	return 0, fmt.Errorf("unsupported time unit %q", unit)
}

func toGHz(v float64, unit string) (float64, error) {
	switch unit {
	case "", "GHz":
		return v, nil
	case "MHz":
		return v / 1e3, nil
	case "Hz":
		return v / 1e9, nil
	}
	return 0, fmt.Errorf("unsupported frequency unit %q", unit)
}

func toMJy(v float64, unit string) (float64, error) {
	switch unit {
	case "", "mJy":
		return v, nil
	case "Jy":
		return v * 1e3, nil
	case "uJy":
		return v / 1e3, nil
	}
	return 0, fmt.Errorf("unsupported flux unit %q", unit)
}

// writeParamLog dumps every result field as "name = value" lines,
// sorted for stable diffs between runs.
func writeParamLog(path string, res *models.CalculationResult) error {
	lines := map[string]string{
		"id":                res.ID,
		"solved":            res.Solved,
		"value":             fmt.Sprintf("%g %s", res.Value, res.Unit),
		"sensitivity":       fmt.Sprintf("%g mJy", res.SensitivityMJy),
		"t_int":             fmt.Sprintf("%g s", res.IntegrationTimeS),
		"obs_freq":          fmt.Sprintf("%g GHz", res.ObsFreqGHz),
		"bandwidth":         fmt.Sprintf("%g GHz", res.BandwidthGHz),
		"elevation":         fmt.Sprintf("%g deg", res.ElevationDeg),
		"n_pol":             fmt.Sprintf("%d", res.NPol),
		"mode":              res.Mode,
		"t_sys":             fmt.Sprintf("%g K", res.SystemTempK),
		"t_rx_contrib":      fmt.Sprintf("%g K", res.ReceiverContribK),
		"t_cmb_contrib":     fmt.Sprintf("%g K", res.CMBContribK),
		"t_atm_contrib":     fmt.Sprintf("%g K", res.AtmosphereContribK),
		"sefd":              fmt.Sprintf("%g Jy", res.SEFDJy),
		"eta_aperture":      fmt.Sprintf("%g", res.ApertureEff),
		"eta_ruze":          fmt.Sprintf("%g", res.RuzeFactor),
		"eta_chain":         fmt.Sprintf("%g", res.EfficiencyChain),
		"mode_penalty":      fmt.Sprintf("%g", res.ModePenalty),
		"airmass":           fmt.Sprintf("%g", res.Airmass),
		"zenith_tau":        fmt.Sprintf("%g", res.ZenithTau),
		"line_of_sight_tau": fmt.Sprintf("%g", res.LineOfSightTau),
		"transmission":      fmt.Sprintf("%g", res.Transmission),
		"t_sky":             fmt.Sprintf("%g K", res.SkyTempK),
		"pwv":               fmt.Sprintf("%g mm", res.PWVmm),
	}

	names := make([]string, 0, len(lines))
	for name := range lines {
		names = append(names, name)
	}
	sort.Strings(names)

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	for _, name := range names {
		if _, err := fmt.Fprintf(f, "%-18s = %s\n", name, lines[name]); err != nil {
			return err
		}
	}
	return nil
}
