package store

import (
	"context"

	"github.com/nulzo/virtual-router-api/internal/core/ports"
)

// Repository is the main contract for the audit data layer.
type Repository interface {
	Resolutions() ResolutionRepository

	Close() error
}

// ResolutionRepository persists resolver outcomes for later inspection.
// It is strictly advisory; routing decisions never depend on it.
type ResolutionRepository interface {
	// Log stores a completed resolution.
	Log(ctx context.Context, rec *ports.ResolutionRecord) error
	// GetRecent returns the last N records for a virtual model name, or for
	// all models when name is empty.
	GetRecent(ctx context.Context, name string, limit int) ([]ports.ResolutionRecord, error)
	// GetDailyStats returns aggregated outcomes grouped by day.
	GetDailyStats(ctx context.Context, days int) ([]DailyStats, error)
}

// DailyStats is one day of aggregated resolution outcomes.
type DailyStats struct {
	Date             string  `db:"date"`
	TotalResolutions int64   `db:"total_resolutions"`
	Exhausted        int64   `db:"exhausted"`
	CacheHits        int64   `db:"cache_hits"`
	AvgLatencyMS     float64 `db:"avg_latency"`
}
