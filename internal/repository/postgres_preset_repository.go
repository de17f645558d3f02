package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/stwalsh4118/rentbuy/internal/database"
	"github.com/stwalsh4118/rentbuy/internal/models"
)

const presetColumns = `
			id,
			name,
			home_price,
			property_tax_rate,
			assessed_value_growth_rate,
			hoa_monthly,
			home_appreciation_rate,
			current_rent,
			rent_inflation_rate,
			sort_order`

// postgresPresetRepository reads presets from the regional_presets table.
type postgresPresetRepository struct {
	db *database.Database
}

// NewPostgresPresetRepository creates a PresetRepository backed by PostgreSQL.
func NewPostgresPresetRepository(db *database.Database) PresetRepository {
	return &postgresPresetRepository{
		db: db,
	}
}

// List returns every preset ordered by sort_order.
func (r *postgresPresetRepository) List(ctx context.Context) ([]models.RegionalPreset, error) {
	query := `SELECT` + presetColumns + `
		FROM regional_presets
		ORDER BY sort_order, id`

	rows, err := r.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query presets: %w", err)
	}
	defer rows.Close()

	results := []models.RegionalPreset{}
	for rows.Next() {
		p, err := scanPreset(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan preset row: %w", err)
		}
		results = append(results, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating preset rows: %w", err)
	}

	return results, nil
}

// FindByID returns one preset or nil, nil when the id is unknown.
func (r *postgresPresetRepository) FindByID(ctx context.Context, id string) (*models.RegionalPreset, error) {
	query := `SELECT` + presetColumns + `
		FROM regional_presets
		WHERE id = $1`

	p, err := scanPreset(r.db.Pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query preset %q: %w", id, err)
	}

	return &p, nil
}

func (r *postgresPresetRepository) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}

// rowScanner is satisfied by pgx.Row, pgx.Rows, *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanPreset(row rowScanner) (models.RegionalPreset, error) {
	var p models.RegionalPreset
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.HomePrice,
		&p.PropertyTaxRate,
		&p.AssessedValueGrowthRate,
		&p.HOAMonthly,
		&p.HomeAppreciationRate,
		&p.CurrentRent,
		&p.RentInflationRate,
		&p.SortOrder,
	)
	return p, err
}
