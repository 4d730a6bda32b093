package ports

import (
	"context"

	"senscalc/models"
)

// CalculationHistoryRepository persists calculation records for the
// web layer. The engine itself never touches it; history is a feature
// of the surrounding service and is optional at runtime.
type CalculationHistoryRepository interface {
	Save(ctx context.Context, rec models.CalculationRecord) error
	GetByID(ctx context.Context, id string) (*models.CalculationRecord, error)
	ListRecent(ctx context.Context, limit int) ([]models.CalculationRecord, error)
}
