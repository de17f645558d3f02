package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	apierrors "github.com/stwalsh4118/rentbuy/internal/errors"
	"github.com/stwalsh4118/rentbuy/internal/middleware"
	"github.com/stwalsh4118/rentbuy/internal/models"
	"github.com/stwalsh4118/rentbuy/internal/services"
	"github.com/stwalsh4118/rentbuy/internal/simulator"
)

// ScenarioHandler handles scenario simulation requests.
type ScenarioHandler struct {
	service services.ScenarioService
}

// NewScenarioHandler creates a new ScenarioHandler instance.
func NewScenarioHandler(service services.ScenarioService) *ScenarioHandler {
	return &ScenarioHandler{
		service: service,
	}
}

// DefaultsResponse represents the response for the defaults endpoint.
type DefaultsResponse struct {
	Inputs simulator.ScenarioInputs `json:"inputs"`
}

// SimulateResponse represents the response for the simulate endpoint.
type SimulateResponse struct {
	Preset  *models.RegionalPreset    `json:"preset,omitempty"`
	Inputs  simulator.ScenarioInputs  `json:"inputs"`
	Outputs simulator.ScenarioOutputs `json:"outputs"`
	Verdict Verdict                   `json:"verdict"`
}

// Verdict summarizes the comparison for display.
type Verdict struct {
	Winner        simulator.Winner `json:"winner"`
	BuyWins       bool             `json:"buy_wins"`
	RentWins      bool             `json:"rent_wins"`
	IsTie         bool             `json:"is_tie"`
	NetDifference float64          `json:"net_difference"`
	BreakEvenYear *int             `json:"break_even_year"`
}

// Defaults handles GET /api/v1/scenarios/defaults.
func (h *ScenarioHandler) Defaults(c *gin.Context) {
	c.JSON(http.StatusOK, DefaultsResponse{
		Inputs: h.service.Defaults(),
	})
}

// Simulate handles POST /api/v1/scenarios/simulate.
// An empty body simulates the default scenario.
func (h *ScenarioHandler) Simulate(c *gin.Context) {
	var req services.ScenarioRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		apierrors.BadRequest(c, "Request body must be a JSON scenario", map[string]interface{}{
			"reason": err.Error(),
		})
		return
	}

	if log := middleware.GetLogger(c); log != nil {
		log.Debug("Processing simulate request", map[string]interface{}{
			"preset_id": req.PresetID,
		})
	}

	result, err := h.service.Simulate(c.Request.Context(), req)
	if err != nil {
		var verrs validator.ValidationErrors
		switch {
		case errors.As(err, &verrs):
			apierrors.ValidationError(c, verrs)
		case errors.Is(err, services.ErrPresetNotFound):
			apierrors.BadRequest(c, "Unknown preset", map[string]interface{}{
				"preset_id": req.PresetID,
			})
		case errors.Is(err, services.ErrInvalidScenario):
			apierrors.BadRequest(c, "Scenario cannot be projected", map[string]interface{}{
				"reason": "inputs produce results outside the representable range",
			})
		case errors.Is(err, services.ErrPresetSourceUnavailable):
			apierrors.ServiceUnavailable(c, "Preset store is unavailable", err)
		default:
			apierrors.InternalServerError(c, "Failed to run simulation", err)
		}
		return
	}

	c.JSON(http.StatusOK, SimulateResponse{
		Preset:  result.Preset,
		Inputs:  result.Inputs,
		Outputs: result.Outputs,
		Verdict: verdictOf(result.Outputs),
	})
}

func verdictOf(out simulator.ScenarioOutputs) Verdict {
	return Verdict{
		Winner:        out.Winner,
		BuyWins:       out.Winner == simulator.WinnerBuy,
		RentWins:      out.Winner == simulator.WinnerRent,
		IsTie:         out.Winner == simulator.WinnerTie,
		NetDifference: out.NetDifference,
		BreakEvenYear: out.BreakEvenYear,
	}
}
