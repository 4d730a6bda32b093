// Package excel renders calculation results into spreadsheet reports
// for download from the web UI or the CLI.
package excel

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"senscalc/models"
	"senscalc/ports"
)

// ReportWriterImpl writes one calculation per workbook: the solved
// quantity up top, then the effective inputs, then the itemized noise
// budget.
type ReportWriterImpl struct{}

// NewReportWriter creates an xlsx report writer.
func NewReportWriter() ports.ReportWriter {
	return &ReportWriterImpl{}
}

const sheet = "Calculation"

type reportRow struct {
	label string
	value interface{}
	unit  string
}

// WriteResult renders the result into an xlsx workbook and returns its
// bytes.
func (w *ReportWriterImpl) WriteResult(res models.CalculationResult) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create report sheet: %w", err)
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to drop default sheet: %w", err)
	}

	rows := []reportRow{
		{"Calculation ID", res.ID, ""},
		{"Solved quantity", res.Solved, ""},
		{"Result", res.Value, res.Unit},
		{"", nil, ""},
		{"Sensitivity", res.SensitivityMJy, "mJy"},
		{"Integration time", res.IntegrationTimeS, "s"},
		{"Observing frequency", res.ObsFreqGHz, "GHz"},
		{"Bandwidth", res.BandwidthGHz, "GHz"},
		{"Elevation", res.ElevationDeg, "deg"},
		{"Polarizations", res.NPol, ""},
		{"Observing mode", res.Mode, ""},
		{"", nil, ""},
		{"System temperature", res.SystemTempK, "K"},
		{"  receiver contribution", res.ReceiverContribK, "K"},
		{"  CMB contribution", res.CMBContribK, "K"},
		{"  atmosphere contribution", res.AtmosphereContribK, "K"},
		{"SEFD", res.SEFDJy, "Jy"},
		{"Aperture efficiency", res.ApertureEff, ""},
		{"  surface (Ruze) factor", res.RuzeFactor, ""},
		{"Efficiency chain", res.EfficiencyChain, ""},
		{"Mode noise penalty", res.ModePenalty, ""},
		{"Airmass", res.Airmass, ""},
		{"Zenith opacity", res.ZenithTau, ""},
		{"Line-of-sight opacity", res.LineOfSightTau, ""},
		{"Transmission", res.Transmission, ""},
		{"Sky brightness temperature", res.SkyTempK, "K"},
		{"PWV", res.PWVmm, "mm"},
		{"", nil, ""},
		{"Generated", res.CreatedAt.Format("2006-01-02 15:04:05 MST"), ""},
	}

	for i, row := range rows {
		n := i + 1
		if err := f.SetCellValue(sheet, fmt.Sprintf("A%d", n), row.label); err != nil {
			return nil, err
		}
		if row.value != nil {
			if err := f.SetCellValue(sheet, fmt.Sprintf("B%d", n), row.value); err != nil {
				return nil, err
			}
		}
		if row.unit != "" {
			if err := f.SetCellValue(sheet, fmt.Sprintf("C%d", n), row.unit); err != nil {
				return nil, err
			}
		}
	}

	if err := f.SetColWidth(sheet, "A", "A", 30); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(sheet, "B", "C", 16); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize report: %w", err)
	}
	return buf.Bytes(), nil
}
