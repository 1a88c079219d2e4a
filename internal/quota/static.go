// Package quota supplies the capacity predicate at the process boundary.
// The routing core treats the checker as opaque; the real quota scrapers
// live outside this repository and are swapped in by the embedding process.
package quota

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/nulzo/virtual-router-api/internal/core/domain"
	"github.com/nulzo/virtual-router-api/internal/core/ports"
)

// Table is a static, mutable capacity table keyed by "provider/model".
// Backends absent from the table report the configured default.
type Table struct {
	mu               sync.RWMutex
	backends         map[string]bool
	defaultAvailable bool
}

func NewTable(defaultAvailable bool, backends map[string]bool) *Table {
	t := &Table{
		backends:         make(map[string]bool, len(backends)),
		defaultAvailable: defaultAvailable,
	}
	for k, v := range backends {
		t.backends[strings.ToLower(k)] = v
	}
	return t
}

func key(provider domain.Provider, modelID string) string {
	return strings.ToLower(fmt.Sprintf("%s/%s", provider, modelID))
}

// Set overrides availability for one backend.
func (t *Table) Set(provider domain.Provider, modelID string, available bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.backends[key(provider, modelID)] = available
}

// Available reports the current capacity flag for a backend.
func (t *Table) Available(provider domain.Provider, modelID string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if v, ok := t.backends[key(provider, modelID)]; ok {
		return v
	}
	return t.defaultAvailable
}

// Checker adapts the table to the resolver's quota checker signature.
func (t *Table) Checker() ports.QuotaChecker {
	return func(ctx context.Context, provider domain.Provider, modelID string) (bool, error) {
		if err := ctx.Err(); err != nil {
			return false, err
		}
		return t.Available(provider, modelID), nil
	}
}
