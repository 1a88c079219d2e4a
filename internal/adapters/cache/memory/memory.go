package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/nulzo/virtual-router-api/internal/core/domain"
	"github.com/nulzo/virtual-router-api/internal/core/ports"
)

// RouteStateCache is the default, in-process route-state store. Entries are
// keyed by virtual model name, case-insensitively, to match registry name
// lookups.
type RouteStateCache struct {
	states map[string]domain.RouteState
	mu     sync.RWMutex
}

func NewRouteStateCache() ports.RouteStateCache {
	return &RouteStateCache{
		states: make(map[string]domain.RouteState),
	}
}

func (c *RouteStateCache) Get(ctx context.Context, name string) (*domain.RouteState, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	state, ok := c.states[strings.ToLower(name)]
	if !ok {
		return nil, false
	}
	return &state, true
}

func (c *RouteStateCache) Put(ctx context.Context, state domain.RouteState) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.states[strings.ToLower(state.VirtualModelName)] = state
	return nil
}

func (c *RouteStateCache) Clear(ctx context.Context, name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.states, strings.ToLower(name))
	return nil
}

func (c *RouteStateCache) ClearAll(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.states = make(map[string]domain.RouteState)
	return nil
}

func (c *RouteStateCache) All(ctx context.Context) ([]domain.RouteState, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]domain.RouteState, 0, len(c.states))
	for _, state := range c.states {
		out = append(out, state)
	}
	return out, nil
}
