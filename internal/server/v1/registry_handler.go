package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nulzo/virtual-router-api/internal/core/domain"
	"github.com/nulzo/virtual-router-api/internal/core/services"
	"github.com/nulzo/virtual-router-api/internal/server/validator"
	"github.com/nulzo/virtual-router-api/pkg/api"
)

// RegistryHandler exposes CRUD over virtual models and their fallback chains.
type RegistryHandler struct {
	service *services.FallbackService
}

func NewRegistryHandler(service *services.FallbackService) *RegistryHandler {
	return &RegistryHandler{service: service}
}

// List returns every registered virtual model.
//
// GET /virtual-models
func (h *RegistryHandler) List(c *gin.Context) {
	models := h.service.ListVirtualModels()
	c.JSON(http.StatusOK, gin.H{
		"object": "list",
		"data":   models,
	})
}

// Get returns one virtual model by id.
//
// GET /virtual-models/:id
func (h *RegistryHandler) Get(c *gin.Context) {
	model, err := h.service.GetVirtualModel(c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, model)
}

// Create registers a new, empty virtual model.
//
// POST /virtual-models
func (h *RegistryHandler) Create(c *gin.Context) {
	var req api.CreateVirtualModelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(domain.ValidationError(validator.ParseValidationError(err)))
		return
	}

	model, err := h.service.AddVirtualModel(c.Request.Context(), req.Name)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, model)
}

// Delete removes a virtual model and its cached route state.
//
// DELETE /virtual-models/:id
func (h *RegistryHandler) Delete(c *gin.Context) {
	if err := h.service.RemoveVirtualModel(c.Request.Context(), c.Param("id")); err != nil {
		c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Rename changes a virtual model's alias.
//
// PATCH /virtual-models/:id/name
func (h *RegistryHandler) Rename(c *gin.Context) {
	var req api.RenameVirtualModelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(domain.ValidationError(validator.ParseValidationError(err)))
		return
	}

	model, err := h.service.RenameVirtualModel(c.Request.Context(), c.Param("id"), req.Name)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, model)
}

// Toggle flips a virtual model's enabled flag.
//
// POST /virtual-models/:id/toggle
func (h *RegistryHandler) Toggle(c *gin.Context) {
	enabled, err := h.service.ToggleVirtualModel(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, api.EnabledResponse{Enabled: enabled})
}

// SetEnabled sets a virtual model's enabled flag explicitly.
//
// PUT /virtual-models/:id/enabled
func (h *RegistryHandler) SetEnabled(c *gin.Context) {
	var req api.SetEnabledRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(domain.ValidationError(validator.ParseValidationError(err)))
		return
	}

	if err := h.service.SetVirtualModelEnabled(c.Request.Context(), c.Param("id"), *req.Enabled); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, api.EnabledResponse{Enabled: *req.Enabled})
}

// AddEntry appends a backend candidate to the end of a fallback chain.
//
// POST /virtual-models/:id/entries
func (h *RegistryHandler) AddEntry(c *gin.Context) {
	var req api.AddFallbackEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(domain.ValidationError(validator.ParseValidationError(err)))
		return
	}

	entry, err := h.service.AddFallbackEntry(c.Request.Context(), c.Param("id"), domain.Provider(req.Provider), req.ModelID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// RemoveEntry deletes one chain entry; the remainder is renumbered.
//
// DELETE /virtual-models/:id/entries/:entryId
func (h *RegistryHandler) RemoveEntry(c *gin.Context) {
	if err := h.service.RemoveFallbackEntry(c.Request.Context(), c.Param("id"), c.Param("entryId")); err != nil {
		c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}

// MoveEntry repositions a chain entry by index.
//
// POST /virtual-models/:id/entries/move
func (h *RegistryHandler) MoveEntry(c *gin.Context) {
	var req api.MoveFallbackEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(domain.ValidationError(validator.ParseValidationError(err)))
		return
	}

	if err := h.service.MoveFallbackEntry(c.Request.Context(), c.Param("id"), *req.FromIndex, *req.ToIndex); err != nil {
		c.Error(err)
		return
	}

	model, err := h.service.GetVirtualModel(c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, model)
}
