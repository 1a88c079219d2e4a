package ports

import (
	"context"
	"time"

	"github.com/nulzo/virtual-router-api/internal/core/domain"
)

// ConfigStore persists the fallback configuration document. Save failures
// are surfaced but never roll back the in-memory state, which stays
// authoritative.
type ConfigStore interface {
	// Save writes the full configuration atomically.
	Save(ctx context.Context, cfg domain.FallbackConfig) error

	// Load reads the configuration. Returns (cfg, false, nil) with defaults
	// when no document exists yet.
	Load(ctx context.Context) (domain.FallbackConfig, bool, error)
}

// ResolutionRecord is one audited resolver outcome.
type ResolutionRecord struct {
	ID               string    `db:"id"`
	VirtualModelName string    `db:"virtual_model_name"`
	Provider         string    `db:"provider"`
	ModelID          string    `db:"model_id"`
	FallbackIndex    int       `db:"fallback_index"`
	Outcome          string    `db:"outcome"` // resolved, exhausted, cached
	ChecksPerformed  int       `db:"checks_performed"`
	LatencyMS        int64     `db:"latency_ms"`
	CreatedAt        time.Time `db:"created_at"`
}

// ResolutionSink receives resolver outcomes for auditing. Implementations
// must not block the caller.
type ResolutionSink interface {
	Record(rec *ResolutionRecord)
}
