package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/stwalsh4118/rentbuy/internal/logger"
	"github.com/stwalsh4118/rentbuy/internal/models"
	"github.com/stwalsh4118/rentbuy/internal/presets"
	"github.com/stwalsh4118/rentbuy/internal/simulator"
)

// ScenarioService defines the interface for running rent vs buy projections.
type ScenarioService interface {
	// Defaults returns the baseline scenario inputs.
	Defaults() simulator.ScenarioInputs

	// Simulate resolves the request into concrete inputs and projects them.
	// Returns ErrPresetNotFound if the request names an unknown preset.
	// Returns ErrInvalidScenario, wrapping validator.ValidationErrors, when
	// the resolved inputs are out of range.
	Simulate(ctx context.Context, req ScenarioRequest) (*ScenarioResult, error)
}

// scenarioService is the concrete implementation of ScenarioService.
type scenarioService struct {
	presets  PresetService
	validate *validator.Validate
	simulate func(simulator.ScenarioInputs) simulator.ScenarioOutputs
	log      *logger.Logger
}

// scenarioValidator is shared by every ScenarioService; validator.Validate
// is safe for concurrent use once configured.
var scenarioValidator = NewValidator()

// NewScenarioService creates a new instance of ScenarioService.
func NewScenarioService(presetService PresetService, log *logger.Logger) ScenarioService {
	return &scenarioService{
		presets:  presetService,
		validate: scenarioValidator,
		simulate: simulator.Simulate,
		log:      log,
	}
}

// NewValidator returns a validator that reports fields by their JSON names
// and understands the "finite" tag used on ScenarioInputs.
// It panics if the custom rule cannot be registered.
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	err := v.RegisterValidation("finite", func(fl validator.FieldLevel) bool {
		f := fl.Field()
		switch f.Kind() {
		case reflect.Float32, reflect.Float64:
			return !math.IsInf(f.Float(), 0) && !math.IsNaN(f.Float())
		default:
			return true
		}
	})
	if err != nil {
		panic(fmt.Sprintf("services: register finite validation: %v", err))
	}
	return v
}

func (s *scenarioService) Defaults() simulator.ScenarioInputs {
	return presets.DefaultInputs()
}

func (s *scenarioService) Simulate(ctx context.Context, req ScenarioRequest) (*ScenarioResult, error) {
	inputs := presets.DefaultInputs()

	var preset *models.RegionalPreset
	if req.PresetID != "" {
		p, err := s.presets.Get(ctx, req.PresetID)
		if err != nil {
			return nil, err
		}
		preset = p
		inputs = p.ApplyTo(inputs)
	}

	inputs = req.ScenarioOverrides.ApplyTo(inputs)

	if err := s.validate.Struct(inputs); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			s.log.Warn("Scenario inputs failed validation", map[string]interface{}{
				"preset_id": req.PresetID,
				"fields":    len(verrs),
			})
			return nil, fmt.Errorf("%w: %w", ErrInvalidScenario, verrs)
		}
		return nil, fmt.Errorf("failed to validate scenario: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	outputs := s.simulate(inputs)
	if !outputs.Finite() {
		s.log.Warn("Scenario projection is not finite", map[string]interface{}{
			"preset_id":     req.PresetID,
			"horizon_years": inputs.TimeHorizonYears,
		})
		return nil, fmt.Errorf("%w: projection overflowed for these inputs", ErrInvalidScenario)
	}

	fields := map[string]interface{}{
		"preset_id":      req.PresetID,
		"horizon_years":  inputs.TimeHorizonYears,
		"winner":         outputs.Winner,
		"net_difference": math.Round(outputs.NetDifference),
	}
	if outputs.BreakEvenYear != nil {
		fields["break_even_year"] = *outputs.BreakEvenYear
	}
	s.log.Info("Scenario simulated", fields)

	return &ScenarioResult{
		Preset:  preset,
		Inputs:  inputs,
		Outputs: outputs,
	}, nil
}
