package ports

import (
	"context"

	"github.com/nulzo/virtual-router-api/internal/core/domain"
)

// QuotaChecker reports whether a backend currently has available capacity.
// It is supplied by the out-of-scope quota subsystem and treated as an
// opaque predicate. Implementations may block; the resolver never holds a
// lock across a call and always evaluates entries one at a time, because a
// checker may reserve capacity as a side effect.
type QuotaChecker func(ctx context.Context, provider domain.Provider, modelID string) (bool, error)
