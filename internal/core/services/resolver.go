package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/nulzo/virtual-router-api/internal/core/domain"
	"github.com/nulzo/virtual-router-api/internal/core/ports"
	"go.uber.org/zap"
)

// Audit outcome labels.
const (
	outcomeResolved  = "resolved"
	outcomeCached    = "cached"
	outcomeExhausted = "exhausted"
)

// Resolve maps a virtual model name to the first backend in its fallback
// chain that currently has capacity.
//
// Returns domain.ErrNotAVirtualModel when routing is globally disabled, the
// name is unknown, or the matched model is disabled: the caller should then
// treat the name as a literal model. Returns domain.ErrNoRouteAvailable
// when every entry was checked without success.
//
// Entries are checked strictly one at a time in priority order. A checker
// may reserve capacity as a side effect, so there is deliberately no
// fan-out. The configuration lock is never held across a checker call.
func (s *FallbackService) Resolve(ctx context.Context, name string, check ports.QuotaChecker) (*domain.Resolution, error) {
	start := time.Now()

	s.mu.RLock()
	version := s.version
	globalEnabled := s.cfg.Enabled
	var model domain.VirtualModel
	m, found := s.cfg.FindByName(name)
	if found {
		model = m.Clone()
	}
	s.mu.RUnlock()

	if !globalEnabled || !found || !model.Enabled {
		return nil, domain.ErrNotAVirtualModel
	}

	entries := model.SortedEntries()

	// Fast path: reuse the last successful resolution if the configuration
	// has not changed since it was captured.
	if state, ok := s.cache.Get(ctx, model.Name); ok {
		if state.ConfigVersion == version && state.TotalEntries == len(entries) {
			res := &domain.Resolution{
				Provider:         state.Provider,
				ModelID:          state.ModelID,
				VirtualModelName: model.Name,
				FallbackIndex:    state.EntryIndex,
			}
			s.record(res, outcomeCached, 0, start)
			return res, nil
		}
		// Stale capture; force a fresh resolution.
		if err := s.cache.Clear(ctx, model.Name); err != nil {
			s.logger.Warn("Failed to drop stale route state", zap.String("name", model.Name), zap.Error(err))
		}
	}

	checks := 0
	for i, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		available, err := check(ctx, entry.Provider, entry.ModelID)
		checks++
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			// A failing checker counts as "no capacity" for this entry.
			s.logger.Warn("Quota check failed",
				zap.String("virtual_model", model.Name),
				zap.String("provider", string(entry.Provider)),
				zap.String("model", entry.ModelID),
				zap.Error(err),
			)
			continue
		}
		if !available {
			continue
		}

		s.storeRouteState(ctx, domain.RouteState{
			VirtualModelName: model.Name,
			Provider:         entry.Provider,
			ModelID:          entry.ModelID,
			EntryIndex:       i,
			TotalEntries:     len(entries),
			ConfigVersion:    version,
			UpdatedAt:        time.Now().UTC(),
		}, version)

		res := &domain.Resolution{
			Provider:         entry.Provider,
			ModelID:          entry.ModelID,
			VirtualModelName: model.Name,
			FallbackIndex:    i,
		}
		s.record(res, outcomeResolved, checks, start)
		return res, nil
	}

	s.record(&domain.Resolution{VirtualModelName: model.Name, FallbackIndex: -1}, outcomeExhausted, checks, start)
	return nil, domain.ErrNoRouteAvailable
}

// storeRouteState upserts a route state unless the configuration moved on
// while the quota checks ran. A lost race here is harmless: the version
// comparison on the read side treats the entry as stale.
func (s *FallbackService) storeRouteState(ctx context.Context, state domain.RouteState, capturedVersion uint64) {
	s.mu.RLock()
	current := s.version
	s.mu.RUnlock()

	if current != capturedVersion {
		return
	}
	if err := s.cache.Put(ctx, state); err != nil {
		s.logger.Warn("Failed to cache route state", zap.String("name", state.VirtualModelName), zap.Error(err))
	}
}

func (s *FallbackService) record(res *domain.Resolution, outcome string, checks int, start time.Time) {
	if s.sink == nil {
		return
	}
	s.sink.Record(&ports.ResolutionRecord{
		ID:               uuid.New().String(),
		VirtualModelName: res.VirtualModelName,
		Provider:         string(res.Provider),
		ModelID:          res.ModelID,
		FallbackIndex:    res.FallbackIndex,
		Outcome:          outcome,
		ChecksPerformed:  checks,
		LatencyMS:        time.Since(start).Milliseconds(),
		CreatedAt:        time.Now().UTC(),
	})
}
