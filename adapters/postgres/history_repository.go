// Package postgres persists calculation history for the web layer.
package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"senscalc/domain/core"
	"senscalc/models"
	"senscalc/ports"
)

// HistoryRepositoryImpl implements CalculationHistoryRepository for PostgreSQL
type HistoryRepositoryImpl struct {
	db *sqlx.DB
}

// NewHistoryRepository creates a new PostgreSQL history repository
func NewHistoryRepository(db *sqlx.DB) ports.CalculationHistoryRepository {
	return &HistoryRepositoryImpl{db: db}
}

// EnsureSchema creates the calculations table if it does not exist.
func EnsureSchema(db *sqlx.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS calculations (
			id             UUID PRIMARY KEY,
			solved         TEXT NOT NULL,
			value          DOUBLE PRECISION NOT NULL,
			unit           TEXT NOT NULL,
			obs_freq_ghz   DOUBLE PRECISION NOT NULL,
			bandwidth_ghz  DOUBLE PRECISION NOT NULL,
			elevation_deg  DOUBLE PRECISION NOT NULL,
			n_pol          INTEGER NOT NULL,
			mode           TEXT NOT NULL,
			t_sys_k        DOUBLE PRECISION NOT NULL,
			sefd_jy        DOUBLE PRECISION NOT NULL,
			transmission   DOUBLE PRECISION NOT NULL,
			created_at     TIMESTAMPTZ NOT NULL
		)
	`)
	return err
}

// Save inserts one calculation record.
func (r *HistoryRepositoryImpl) Save(ctx context.Context, rec models.CalculationRecord) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO calculations (id, solved, value, unit, obs_freq_ghz, bandwidth_ghz, elevation_deg, n_pol, mode, t_sys_k, sefd_jy, transmission, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`, rec.ID, rec.Solved, rec.Value, rec.Unit, rec.ObsFreqGHz, rec.BandwidthGHz, rec.ElevationDeg, rec.NPol, rec.Mode, rec.SystemTempK, rec.SEFDJy, rec.Transmission, rec.CreatedAt)
	return err
}

// GetByID retrieves a calculation record by its ID.
func (r *HistoryRepositoryImpl) GetByID(ctx context.Context, id string) (*models.CalculationRecord, error) {
	var rec models.CalculationRecord
	err := r.db.GetContext(ctx, &rec, `
		SELECT id, solved, value, unit, obs_freq_ghz, bandwidth_ghz, elevation_deg, n_pol, mode, t_sys_k, sefd_jy, transmission, created_at
		FROM calculations
		WHERE id = $1
	`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, core.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// ListRecent returns the most recent calculations, newest first.
func (r *HistoryRepositoryImpl) ListRecent(ctx context.Context, limit int) ([]models.CalculationRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	recs := []models.CalculationRecord{}
	err := r.db.SelectContext(ctx, &recs, `
		SELECT id, solved, value, unit, obs_freq_ghz, bandwidth_ghz, elevation_deg, n_pol, mode, t_sys_k, sefd_jy, transmission, created_at
		FROM calculations
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	return recs, nil
}
