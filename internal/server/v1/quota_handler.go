package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nulzo/virtual-router-api/internal/core/domain"
	"github.com/nulzo/virtual-router-api/internal/quota"
	"github.com/nulzo/virtual-router-api/internal/server/validator"
	"github.com/nulzo/virtual-router-api/pkg/api"
)

// QuotaHandler lets operators flip the static capacity table at runtime,
// mostly for exercising fallback chains without waiting on a real outage.
type QuotaHandler struct {
	table *quota.Table
}

func NewQuotaHandler(table *quota.Table) *QuotaHandler {
	return &QuotaHandler{table: table}
}

// Set overrides availability for one backend.
//
// PUT /quota/:provider/:model
func (h *QuotaHandler) Set(c *gin.Context) {
	provider := domain.Provider(c.Param("provider"))
	if !provider.Valid() {
		c.Error(domain.BadRequestError("unknown provider '" + c.Param("provider") + "'"))
		return
	}

	var req api.SetQuotaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(domain.ValidationError(validator.ParseValidationError(err)))
		return
	}

	h.table.Set(provider, c.Param("model"), *req.Available)
	c.JSON(http.StatusOK, gin.H{
		"provider":  provider,
		"model":     c.Param("model"),
		"available": *req.Available,
	})
}

// Get reports the current capacity flag for one backend.
//
// GET /quota/:provider/:model
func (h *QuotaHandler) Get(c *gin.Context) {
	provider := domain.Provider(c.Param("provider"))
	if !provider.Valid() {
		c.Error(domain.BadRequestError("unknown provider '" + c.Param("provider") + "'"))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"provider":  provider,
		"model":     c.Param("model"),
		"available": h.table.Available(provider, c.Param("model")),
	})
}
