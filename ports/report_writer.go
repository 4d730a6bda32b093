package ports

import "senscalc/models"

// ReportWriter renders a calculation result into a downloadable
// document (spreadsheet report).
type ReportWriter interface {
	WriteResult(res models.CalculationResult) ([]byte, error)
}
