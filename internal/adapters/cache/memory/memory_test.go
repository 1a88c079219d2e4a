package memory

import (
	"context"
	"testing"
	"time"

	"github.com/nulzo/virtual-router-api/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleState(name string) domain.RouteState {
	return domain.RouteState{
		VirtualModelName: name,
		Provider:         domain.ProviderClaude,
		ModelID:          "claude-sonnet-4-5",
		EntryIndex:       0,
		TotalEntries:     3,
		ConfigVersion:    7,
		UpdatedAt:        time.Now().UTC(),
	}
}

func TestRouteStateCache_PutGet(t *testing.T) {
	cache := NewRouteStateCache()
	ctx := context.Background()

	require.NoError(t, cache.Put(ctx, sampleState("Smart-Model")))

	// Lookups are case-insensitive, matching registry name resolution.
	state, ok := cache.Get(ctx, "smart-model")
	require.True(t, ok)
	assert.Equal(t, uint64(7), state.ConfigVersion)

	_, ok = cache.Get(ctx, "other")
	assert.False(t, ok)
}

func TestRouteStateCache_GetReturnsCopy(t *testing.T) {
	cache := NewRouteStateCache()
	ctx := context.Background()

	require.NoError(t, cache.Put(ctx, sampleState("smart-model")))

	state, ok := cache.Get(ctx, "smart-model")
	require.True(t, ok)
	state.ModelID = "mutated"

	fresh, ok := cache.Get(ctx, "smart-model")
	require.True(t, ok)
	assert.Equal(t, "claude-sonnet-4-5", fresh.ModelID)
}

func TestRouteStateCache_Clear(t *testing.T) {
	cache := NewRouteStateCache()
	ctx := context.Background()

	require.NoError(t, cache.Put(ctx, sampleState("smart-model")))
	require.NoError(t, cache.Clear(ctx, "SMART-MODEL"))

	_, ok := cache.Get(ctx, "smart-model")
	assert.False(t, ok)

	// Clearing an absent entry is not an error.
	assert.NoError(t, cache.Clear(ctx, "absent"))
}

func TestRouteStateCache_ClearAllAndAll(t *testing.T) {
	cache := NewRouteStateCache()
	ctx := context.Background()

	require.NoError(t, cache.Put(ctx, sampleState("a")))
	require.NoError(t, cache.Put(ctx, sampleState("b")))

	states, err := cache.All(ctx)
	require.NoError(t, err)
	assert.Len(t, states, 2)

	require.NoError(t, cache.ClearAll(ctx))
	states, err = cache.All(ctx)
	require.NoError(t, err)
	assert.Empty(t, states)
}
