package v1

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/nulzo/virtual-router-api/internal/core/domain"
	"github.com/nulzo/virtual-router-api/internal/store"
)

// AuditHandler reads the resolution log. repo may be nil when auditing is
// disabled in config.
type AuditHandler struct {
	repo store.Repository
}

func NewAuditHandler(repo store.Repository) *AuditHandler {
	return &AuditHandler{repo: repo}
}

// Recent returns the latest resolution records, optionally filtered by
// virtual model name.
//
// GET /audit/resolutions?name=&limit=
func (h *AuditHandler) Recent(c *gin.Context) {
	if h.repo == nil {
		c.Error(domain.NewProblem(http.StatusServiceUnavailable, "Audit Disabled", "resolution auditing is disabled"))
		return
	}

	limit := 50
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 1000 {
			c.Error(domain.BadRequestError("limit must be an integer between 1 and 1000"))
			return
		}
		limit = parsed
	}

	records, err := h.repo.Resolutions().GetRecent(c.Request.Context(), c.Query("name"), limit)
	if err != nil {
		c.Error(domain.InternalError("failed to query resolution log", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"object": "list",
		"data":   records,
	})
}

// DailyStats returns per-day resolution aggregates.
//
// GET /audit/stats?days=
func (h *AuditHandler) DailyStats(c *gin.Context) {
	if h.repo == nil {
		c.Error(domain.NewProblem(http.StatusServiceUnavailable, "Audit Disabled", "resolution auditing is disabled"))
		return
	}

	days := 7
	if raw := c.Query("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 365 {
			c.Error(domain.BadRequestError("days must be an integer between 1 and 365"))
			return
		}
		days = parsed
	}

	stats, err := h.repo.Resolutions().GetDailyStats(c.Request.Context(), days)
	if err != nil {
		c.Error(domain.InternalError("failed to query resolution stats", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"object": "list",
		"data":   stats,
	})
}
