package repository

import (
	"context"
	"database/sql"

	"parkmonitor/internal/models"
)

// IndicatorRepository persists indicator definitions.
type IndicatorRepository struct {
	db *sql.DB
}

// NewIndicatorRepository returns repository.
func NewIndicatorRepository(db *sql.DB) *IndicatorRepository {
	return &IndicatorRepository{db: db}
}

const indicatorColumns = `id, name, unit, upper_threshold, lower_threshold, frequency, created_at, updated_at`

// Create inserts a new indicator.
func (r *IndicatorRepository) Create(ctx context.Context, ind *models.Indicator) error {
	const query = `
		INSERT INTO indicators (id, name, unit, upper_threshold, lower_threshold, frequency, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING created_at, updated_at
	`
	return r.db.QueryRowContext(ctx, query,
		ind.ID,
		ind.Name,
		ind.Unit,
		ind.UpperThreshold,
		ind.LowerThreshold,
		ind.Frequency,
	).Scan(&ind.CreatedAt, &ind.UpdatedAt)
}

// GetByID returns one indicator or sql.ErrNoRows.
func (r *IndicatorRepository) GetByID(ctx context.Context, id string) (*models.Indicator, error) {
	const query = `
		SELECT ` + indicatorColumns + `
		FROM indicators
		WHERE id = $1
	`
	var ind models.Indicator
	if err := scanIndicator(r.db.QueryRowContext(ctx, query, id), &ind); err != nil {
		return nil, err
	}
	return &ind, nil
}

// List returns indicators newest-first with offset pagination.
func (r *IndicatorRepository) List(ctx context.Context, offset, limit int) ([]models.Indicator, error) {
	const query = `
		SELECT ` + indicatorColumns + `
		FROM indicators
		ORDER BY created_at DESC, id
		OFFSET $1 LIMIT $2
	`
	rows, err := r.db.QueryContext(ctx, query, offset, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var indicators []models.Indicator
	for rows.Next() {
		var ind models.Indicator
		if err := scanIndicator(rows, &ind); err != nil {
			return nil, err
		}
		indicators = append(indicators, ind)
	}
	return indicators, rows.Err()
}

// Update applies the non-nil fields of upd and bumps updated_at. Returns
// sql.ErrNoRows when the indicator does not exist.
func (r *IndicatorRepository) Update(ctx context.Context, id string, upd models.IndicatorUpdate) (*models.Indicator, error) {
	const query = `
		UPDATE indicators SET
			name = COALESCE($2, name),
			unit = COALESCE($3, unit),
			upper_threshold = COALESCE($4, upper_threshold),
			lower_threshold = COALESCE($5, lower_threshold),
			frequency = COALESCE($6, frequency),
			updated_at = NOW()
		WHERE id = $1
		RETURNING ` + indicatorColumns + `
	`
	var ind models.Indicator
	err := scanIndicator(r.db.QueryRowContext(ctx, query,
		id,
		upd.Name,
		upd.Unit,
		upd.UpperThreshold,
		upd.LowerThreshold,
		upd.Frequency,
	), &ind)
	if err != nil {
		return nil, err
	}
	return &ind, nil
}

// Delete removes an indicator. Returns sql.ErrNoRows when absent.
func (r *IndicatorRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM indicators WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanIndicator(row rowScanner, ind *models.Indicator) error {
	return row.Scan(
		&ind.ID,
		&ind.Name,
		&ind.Unit,
		&ind.UpperThreshold,
		&ind.LowerThreshold,
		&ind.Frequency,
		&ind.CreatedAt,
		&ind.UpdatedAt,
	)
}
