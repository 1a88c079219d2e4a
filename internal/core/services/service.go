package services

import (
	"context"
	"sync"

	"github.com/nulzo/virtual-router-api/internal/core/domain"
	"github.com/nulzo/virtual-router-api/internal/core/ports"
	"go.uber.org/zap"
)

// FallbackService is the single owner of the fallback configuration and the
// route-state cache. All mutations run under a single writer lock so
// priority renumbering is never observed half-applied; the lock is held
// only around data-structure access, never across quota checks or disk I/O.
type FallbackService struct {
	logger *zap.Logger
	store  ports.ConfigStore
	cache  ports.RouteStateCache
	sink   ports.ResolutionSink

	mu      sync.RWMutex
	cfg     domain.FallbackConfig
	version uint64
}

// NewFallbackService loads the persisted configuration (falling back to
// defaults when none exists or the document is invalid) and returns a ready
// service. sink may be nil to disable resolution auditing.
func NewFallbackService(logger *zap.Logger, store ports.ConfigStore, cache ports.RouteStateCache, sink ports.ResolutionSink) *FallbackService {
	s := &FallbackService{
		logger: logger,
		store:  store,
		cache:  cache,
		sink:   sink,
		cfg:    domain.DefaultFallbackConfig(),
	}

	// The version counter is process-local and restarts at zero, so route
	// states surviving in a shared backend (redis) could eventually collide
	// with a recycled counter value. Start from an empty cache instead.
	if err := cache.ClearAll(context.Background()); err != nil {
		logger.Warn("Failed to flush route states at startup", zap.Error(err))
	}

	cfg, found, err := store.Load(context.Background())
	if err != nil {
		logger.Error("Failed to load fallback configuration, starting from defaults", zap.Error(err))
		return s
	}
	if !found {
		return s
	}

	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		logger.Error("Persisted fallback configuration is invalid, starting from defaults", zap.Error(err))
		return s
	}

	s.cfg = cfg
	return s
}

// Enabled reports the global routing flag.
func (s *FallbackService) Enabled() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg.Enabled
}

// SetEnabled flips the global routing flag.
func (s *FallbackService) SetEnabled(ctx context.Context, enabled bool) {
	s.mu.Lock()
	if s.cfg.Enabled == enabled {
		s.mu.Unlock()
		return
	}
	s.cfg.Enabled = enabled
	s.version++
	snapshot := s.cfg.Clone()
	s.mu.Unlock()

	s.persist(ctx, snapshot)
}

// Version returns the configuration version counter. Every applied mutation
// bumps it; cached route states captured under an older version are stale.
func (s *FallbackService) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// mutate applies a command to the configuration under the writer lock and,
// on success, bumps the version and persists the new document outside the
// lock. Persistence failures are logged; the in-memory state stays
// authoritative.
func (s *FallbackService) mutate(ctx context.Context, apply func(cfg *domain.FallbackConfig) error) error {
	s.mu.Lock()
	if err := apply(&s.cfg); err != nil {
		s.mu.Unlock()
		return err
	}
	s.version++
	snapshot := s.cfg.Clone()
	s.mu.Unlock()

	s.persist(ctx, snapshot)
	return nil
}

func (s *FallbackService) persist(ctx context.Context, snapshot domain.FallbackConfig) {
	if err := s.store.Save(ctx, snapshot); err != nil {
		s.logger.Error("Failed to persist fallback configuration", zap.Error(err))
	}
}

// GetRouteState returns the cached route state for a virtual model name.
func (s *FallbackService) GetRouteState(ctx context.Context, name string) (*domain.RouteState, bool) {
	return s.cache.Get(ctx, name)
}

// GetAllRouteStates returns every cached route state.
func (s *FallbackService) GetAllRouteStates(ctx context.Context) ([]domain.RouteState, error) {
	return s.cache.All(ctx)
}

// ClearRouteState drops the cached route state for one virtual model.
func (s *FallbackService) ClearRouteState(ctx context.Context, name string) error {
	return s.cache.Clear(ctx, name)
}

// ClearAllRouteStates drops every cached route state.
func (s *FallbackService) ClearAllRouteStates(ctx context.Context) error {
	return s.cache.ClearAll(ctx)
}
