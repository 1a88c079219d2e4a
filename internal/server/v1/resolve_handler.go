package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nulzo/virtual-router-api/internal/core/domain"
	"github.com/nulzo/virtual-router-api/internal/core/ports"
	"github.com/nulzo/virtual-router-api/internal/core/services"
	"github.com/nulzo/virtual-router-api/internal/server/validator"
	"github.com/nulzo/virtual-router-api/pkg/api"
)

type ResolveHandler struct {
	service *services.FallbackService
	checker ports.QuotaChecker
}

func NewResolveHandler(service *services.FallbackService, checker ports.QuotaChecker) *ResolveHandler {
	return &ResolveHandler{service: service, checker: checker}
}

// Resolve maps a model name to a concrete backend.
//
// POST /resolve
//
// A name that is not an enabled virtual model is returned verbatim with
// virtual=false; callers never need to know in advance which names are
// aliases. An exhausted chain is a 503 so clients can back off.
func (h *ResolveHandler) Resolve(c *gin.Context) {
	var req api.ResolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(domain.ValidationError(validator.ParseValidationError(err)))
		return
	}

	res, err := h.service.Resolve(c.Request.Context(), req.Model, h.checker)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotAVirtualModel):
			c.JSON(http.StatusOK, api.PassthroughResponse(req.Model))
		case errors.Is(err, domain.ErrNoRouteAvailable):
			c.JSON(http.StatusServiceUnavailable, domain.NewProblem(
				http.StatusServiceUnavailable,
				"No Route Available",
				"every fallback entry for this virtual model is out of capacity",
				domain.WithExtension("model", req.Model),
			))
		default:
			c.Error(err)
		}
		return
	}

	c.JSON(http.StatusOK, api.ResolvedResponse(res))
}
