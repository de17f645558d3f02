package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/stwalsh4118/rentbuy/internal/database"
	"github.com/stwalsh4118/rentbuy/internal/models"
)

const postgresPresetTable = `
	CREATE TABLE IF NOT EXISTS regional_presets (
		id                         TEXT PRIMARY KEY,
		name                       TEXT NOT NULL,
		home_price                 DOUBLE PRECISION NOT NULL CHECK (home_price > 0),
		property_tax_rate          DOUBLE PRECISION NOT NULL,
		assessed_value_growth_rate DOUBLE PRECISION NOT NULL,
		hoa_monthly                DOUBLE PRECISION NOT NULL DEFAULT 0,
		home_appreciation_rate     DOUBLE PRECISION NOT NULL,
		current_rent               DOUBLE PRECISION NOT NULL CHECK (current_rent > 0),
		rent_inflation_rate        DOUBLE PRECISION NOT NULL,
		sort_order                 INTEGER NOT NULL DEFAULT 0
	)`

const sqlitePresetTable = `
	CREATE TABLE IF NOT EXISTS regional_presets (
		id                         TEXT PRIMARY KEY,
		name                       TEXT NOT NULL,
		home_price                 REAL NOT NULL CHECK (home_price > 0),
		property_tax_rate          REAL NOT NULL,
		assessed_value_growth_rate REAL NOT NULL,
		hoa_monthly                REAL NOT NULL DEFAULT 0,
		home_appreciation_rate     REAL NOT NULL,
		current_rent               REAL NOT NULL CHECK (current_rent > 0),
		rent_inflation_rate        REAL NOT NULL,
		sort_order                 INTEGER NOT NULL DEFAULT 0
	)`

var presetCopyColumns = []string{
	"id", "name", "home_price", "property_tax_rate", "assessed_value_growth_rate",
	"hoa_monthly", "home_appreciation_rate", "current_rent", "rent_inflation_rate", "sort_order",
}

// EnsurePostgresSchema creates the regional_presets table if needed and
// seeds it when it holds no rows. Returns the number of rows inserted.
func EnsurePostgresSchema(ctx context.Context, db *database.Database, seed []models.RegionalPreset) (int, error) {
	if _, err := db.Pool.Exec(ctx, postgresPresetTable); err != nil {
		return 0, fmt.Errorf("failed to create regional_presets: %w", err)
	}

	var count int
	if err := db.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM regional_presets`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count presets: %w", err)
	}
	if count > 0 || len(seed) == 0 {
		return 0, nil
	}

	rows := make([][]any, 0, len(seed))
	for _, p := range seed {
		rows = append(rows, presetValues(p))
	}

	n, err := db.Pool.CopyFrom(ctx, pgx.Identifier{models.RegionalPreset{}.TableName()}, presetCopyColumns, pgx.CopyFromRows(rows))
	if err != nil {
		return 0, fmt.Errorf("failed to seed presets: %w", err)
	}
	return int(n), nil
}

// EnsureSQLiteSchema creates the regional_presets table if needed and
// seeds it when it holds no rows. Returns the number of rows inserted.
func EnsureSQLiteSchema(ctx context.Context, db *database.SQLite, seed []models.RegionalPreset) (n int, err error) {
	if _, err := db.DB.ExecContext(ctx, sqlitePresetTable); err != nil {
		return 0, fmt.Errorf("failed to create regional_presets: %w", err)
	}

	var count int
	if err := db.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM regional_presets`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count presets: %w", err)
	}
	if count > 0 || len(seed) == 0 {
		return 0, nil
	}

	tx, err := db.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin seed transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO regional_presets (`+presetColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare seed insert: %w", err)
	}
	defer stmt.Close()

	for _, p := range seed {
		if _, err = stmt.ExecContext(ctx, presetValues(p)...); err != nil {
			return 0, fmt.Errorf("failed to seed preset %q: %w", p.ID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit seed: %w", err)
	}
	return len(seed), nil
}

func presetValues(p models.RegionalPreset) []any {
	return []any{
		p.ID,
		p.Name,
		p.HomePrice,
		p.PropertyTaxRate,
		p.AssessedValueGrowthRate,
		p.HOAMonthly,
		p.HomeAppreciationRate,
		p.CurrentRent,
		p.RentInflationRate,
		p.SortOrder,
	}
}
