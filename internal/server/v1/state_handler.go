package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nulzo/virtual-router-api/internal/core/domain"
	"github.com/nulzo/virtual-router-api/internal/core/services"
)

// StateHandler exposes the route-state cache for inspection and manual
// invalidation.
type StateHandler struct {
	service *services.FallbackService
}

func NewStateHandler(service *services.FallbackService) *StateHandler {
	return &StateHandler{service: service}
}

// List returns every cached route state.
//
// GET /route-states
func (h *StateHandler) List(c *gin.Context) {
	states, err := h.service.GetAllRouteStates(c.Request.Context())
	if err != nil {
		c.Error(domain.InternalError("failed to read route states", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"object": "list",
		"data":   states,
	})
}

// Get returns the cached route state for one virtual model name.
//
// GET /route-states/:name
func (h *StateHandler) Get(c *gin.Context) {
	name := c.Param("name")
	state, ok := h.service.GetRouteState(c.Request.Context(), name)
	if !ok {
		c.Error(domain.NotFoundError("no route state cached for '" + name + "'"))
		return
	}
	c.JSON(http.StatusOK, state)
}

// Clear drops the cached route state for one virtual model name.
//
// DELETE /route-states/:name
func (h *StateHandler) Clear(c *gin.Context) {
	if err := h.service.ClearRouteState(c.Request.Context(), c.Param("name")); err != nil {
		c.Error(domain.InternalError("failed to clear route state", err))
		return
	}
	c.Status(http.StatusNoContent)
}

// ClearAll drops every cached route state.
//
// DELETE /route-states
func (h *StateHandler) ClearAll(c *gin.Context) {
	if err := h.service.ClearAllRouteStates(c.Request.Context()); err != nil {
		c.Error(domain.InternalError("failed to clear route states", err))
		return
	}
	c.Status(http.StatusNoContent)
}
