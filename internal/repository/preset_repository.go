package repository

import (
	"context"

	"github.com/stwalsh4118/rentbuy/internal/models"
)

// PresetRepository defines the interface for regional preset data access.
type PresetRepository interface {
	// List returns all presets in their stored order.
	// Returns an empty slice if there are none (not an error).
	List(ctx context.Context) ([]models.RegionalPreset, error)

	// FindByID returns the preset with the given id.
	// Returns nil, nil if no preset is found (not an error).
	// Returns error only for actual storage failures.
	FindByID(ctx context.Context, id string) (*models.RegionalPreset, error)

	// Ping reports whether the backing store is reachable.
	Ping(ctx context.Context) error
}

// memoryPresetRepository serves presets held in memory.
type memoryPresetRepository struct {
	presets []models.RegionalPreset
	byID    map[string]int
}

// NewMemoryPresetRepository creates a PresetRepository over a fixed list.
// The list is copied; later changes by the caller are not visible.
func NewMemoryPresetRepository(presets []models.RegionalPreset) PresetRepository {
	list := make([]models.RegionalPreset, len(presets))
	copy(list, presets)

	byID := make(map[string]int, len(list))
	for i, p := range list {
		byID[p.ID] = i
	}

	return &memoryPresetRepository{
		presets: list,
		byID:    byID,
	}
}

func (r *memoryPresetRepository) List(ctx context.Context) ([]models.RegionalPreset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]models.RegionalPreset, len(r.presets))
	copy(out, r.presets)
	return out, nil
}

func (r *memoryPresetRepository) FindByID(ctx context.Context, id string) (*models.RegionalPreset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	i, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	p := r.presets[i]
	return &p, nil
}

func (r *memoryPresetRepository) Ping(ctx context.Context) error {
	return ctx.Err()
}
