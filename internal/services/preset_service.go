package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/stwalsh4118/rentbuy/internal/logger"
	"github.com/stwalsh4118/rentbuy/internal/models"
	"github.com/stwalsh4118/rentbuy/internal/repository"
)

// Service-level errors
var (
	ErrPresetNotFound          = errors.New("preset not found")
	ErrPresetSourceUnavailable = errors.New("preset source unavailable")
	ErrInvalidScenario         = errors.New("invalid scenario")
)

// PresetService defines the interface for regional preset operations.
type PresetService interface {
	// List returns all presets in display order.
	// Returns ErrPresetSourceUnavailable when the store cannot be read.
	List(ctx context.Context) ([]models.RegionalPreset, error)

	// Get returns the preset with the given id.
	// Returns ErrPresetNotFound if no preset has that id.
	// Returns ErrPresetSourceUnavailable when the store cannot be read.
	Get(ctx context.Context, id string) (*models.RegionalPreset, error)
}

// presetService is the concrete implementation of PresetService.
type presetService struct {
	repo repository.PresetRepository
	log  *logger.Logger
}

// NewPresetService creates a new instance of PresetService.
func NewPresetService(repo repository.PresetRepository, log *logger.Logger) PresetService {
	return &presetService{
		repo: repo,
		log:  log,
	}
}

func (s *presetService) List(ctx context.Context) ([]models.RegionalPreset, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		s.log.Error("Failed to list presets", err, nil)
		return nil, fmt.Errorf("%w: %w", ErrPresetSourceUnavailable, err)
	}

	s.log.Debug("Listed presets", map[string]interface{}{
		"count": len(list),
	})

	return list, nil
}

func (s *presetService) Get(ctx context.Context, id string) (*models.RegionalPreset, error) {
	preset, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to query preset", err, map[string]interface{}{
			"preset_id": id,
		})
		return nil, fmt.Errorf("%w: %w", ErrPresetSourceUnavailable, err)
	}

	// Repository returns nil, nil when no preset found - transform to domain error
	if preset == nil {
		s.log.Debug("Preset not found", map[string]interface{}{
			"preset_id": id,
		})
		return nil, fmt.Errorf("%w: %q", ErrPresetNotFound, id)
	}

	return preset, nil
}
