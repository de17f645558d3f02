package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	apierrors "github.com/stwalsh4118/rentbuy/internal/errors"
	"github.com/stwalsh4118/rentbuy/internal/models"
	"github.com/stwalsh4118/rentbuy/internal/services"
)

// PresetHandler handles regional preset requests.
type PresetHandler struct {
	service services.PresetService
}

// NewPresetHandler creates a new PresetHandler instance.
func NewPresetHandler(service services.PresetService) *PresetHandler {
	return &PresetHandler{
		service: service,
	}
}

// PresetListResponse represents the response for the preset list endpoint.
type PresetListResponse struct {
	Presets []models.RegionalPreset `json:"presets"`
	Count   int                     `json:"count"`
}

// PresetResponse represents the response for a single preset.
type PresetResponse struct {
	Preset models.RegionalPreset `json:"preset"`
}

// List handles GET /api/v1/presets.
func (h *PresetHandler) List(c *gin.Context) {
	list, err := h.service.List(c.Request.Context())
	if err != nil {
		respondPresetError(c, err)
		return
	}

	c.JSON(http.StatusOK, PresetListResponse{
		Presets: list,
		Count:   len(list),
	})
}

// Get handles GET /api/v1/presets/:id.
func (h *PresetHandler) Get(c *gin.Context) {
	preset, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondPresetError(c, err)
		return
	}

	c.JSON(http.StatusOK, PresetResponse{Preset: *preset})
}

// respondPresetError maps preset lookup failures to HTTP responses.
func respondPresetError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrPresetNotFound):
		apierrors.NotFound(c, "No preset exists with this id")
	case errors.Is(err, services.ErrPresetSourceUnavailable):
		apierrors.ServiceUnavailable(c, "Preset store is unavailable", err)
	default:
		apierrors.InternalServerError(c, "Failed to load presets", err)
	}
}
