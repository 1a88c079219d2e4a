package v1

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nulzo/virtual-router-api/internal/core/domain"
	"github.com/nulzo/virtual-router-api/internal/core/services"
	"github.com/nulzo/virtual-router-api/internal/server/validator"
	"github.com/nulzo/virtual-router-api/pkg/api"
)

// ConfigHandler covers the global routing flag and whole-document
// export/import/reset.
type ConfigHandler struct {
	service *services.FallbackService
}

func NewConfigHandler(service *services.FallbackService) *ConfigHandler {
	return &ConfigHandler{service: service}
}

// GetEnabled reports the global routing flag.
//
// GET /config/enabled
func (h *ConfigHandler) GetEnabled(c *gin.Context) {
	c.JSON(http.StatusOK, api.EnabledResponse{Enabled: h.service.Enabled()})
}

// SetEnabled flips the global routing flag.
//
// PUT /config/enabled
func (h *ConfigHandler) SetEnabled(c *gin.Context) {
	var req api.SetEnabledRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(domain.ValidationError(validator.ParseValidationError(err)))
		return
	}

	h.service.SetEnabled(c.Request.Context(), *req.Enabled)
	c.JSON(http.StatusOK, api.EnabledResponse{Enabled: *req.Enabled})
}

// Export renders the full configuration as canonical JSON.
//
// GET /config/export
func (h *ConfigHandler) Export(c *gin.Context) {
	doc, err := h.service.ExportConfiguration()
	if err != nil {
		c.Error(err)
		return
	}
	c.Data(http.StatusOK, "application/json", []byte(doc))
}

// Import replaces the full configuration from a JSON document. The request
// body IS the document; a rejected payload leaves the current state intact.
//
// PUT /config/import
func (h *ConfigHandler) Import(c *gin.Context) {
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.Error(domain.BadRequestError("failed to read request body"))
		return
	}

	if err := h.service.ImportConfiguration(c.Request.Context(), string(payload)); err != nil {
		c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Reset replaces the configuration with an empty, disabled one.
//
// POST /config/reset
func (h *ConfigHandler) Reset(c *gin.Context) {
	if err := h.service.ResetToDefaults(c.Request.Context()); err != nil {
		c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}
