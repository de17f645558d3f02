package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/stwalsh4118/rentbuy/internal/database"
	"github.com/stwalsh4118/rentbuy/internal/models"
)

// sqlitePresetRepository reads presets from a local SQLite database.
type sqlitePresetRepository struct {
	db *database.SQLite
}

// NewSQLitePresetRepository creates a PresetRepository backed by SQLite.
func NewSQLitePresetRepository(db *database.SQLite) PresetRepository {
	return &sqlitePresetRepository{
		db: db,
	}
}

func (r *sqlitePresetRepository) List(ctx context.Context) ([]models.RegionalPreset, error) {
	query := `SELECT` + presetColumns + `
		FROM regional_presets
		ORDER BY sort_order, id`

	rows, err := r.db.DB.QueryContext(ctx, query)
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

func (r *sqlitePresetRepository) FindByID(ctx context.Context, id string) (*models.RegionalPreset, error) {
	query := `SELECT` + presetColumns + `
		FROM regional_presets
		WHERE id = ?`

	p, err := scanPreset(r.db.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query preset %q: %w", id, err)
	}

	return &p, nil
}

func (r *sqlitePresetRepository) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}
