package ports

import (
	"context"

	"github.com/nulzo/virtual-router-api/internal/core/domain"
)

// RouteStateCache stores the last successful resolution per virtual model.
// The cache is advisory: entries are validated against the live
// configuration before use, so a lost or shared cache can only cost extra
// quota checks, never a wrong route.
type RouteStateCache interface {
	// Get returns the cached state for a virtual model name, if any.
	Get(ctx context.Context, name string) (*domain.RouteState, bool)

	// Put stores or replaces the state for its virtual model name.
	Put(ctx context.Context, state domain.RouteState) error

	// Clear drops the state for one virtual model name.
	Clear(ctx context.Context, name string) error

	// ClearAll drops every cached state.
	ClearAll(ctx context.Context) error

	// All returns every cached state.
	All(ctx context.Context) ([]domain.RouteState, error)
}
