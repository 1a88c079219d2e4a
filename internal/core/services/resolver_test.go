package services

import (
	"context"
	"errors"
	"testing"

	"github.com/nulzo/virtual-router-api/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seedChain registers an enabled virtual model with a claude -> gemini ->
// ollama chain and turns routing on.
func seedChain(t *testing.T, svc *FallbackService) *domain.VirtualModel {
	t.Helper()
	ctx := context.Background()

	svc.SetEnabled(ctx, true)
	m, err := svc.AddVirtualModel(ctx, "smart-model")
	require.NoError(t, err)

	for _, spec := range []struct {
		provider domain.Provider
		model    string
	}{
		{domain.ProviderClaude, "claude-sonnet-4-5"},
		{domain.ProviderGemini, "gemini-2.5-pro"},
		{domain.ProviderOllama, "qwen3:8b"},
	} {
		_, err := svc.AddFallbackEntry(ctx, m.ID, spec.provider, spec.model)
		require.NoError(t, err)
	}
	return m
}

func TestResolve_PrimaryAvailable(t *testing.T) {
	svc, _, sink := newTestService(t)
	seedChain(t, svc)

	check, calls := availabilityChecker(map[string]bool{"claude/claude-sonnet-4-5": true})

	res, err := svc.Resolve(context.Background(), "smart-model", check)
	require.NoError(t, err)
	assert.Equal(t, domain.ProviderClaude, res.Provider)
	assert.Equal(t, "claude-sonnet-4-5", res.ModelID)
	assert.Equal(t, 0, res.FallbackIndex)
	assert.Equal(t, 1, *calls)

	records := sink.all()
	require.Len(t, records, 1)
	assert.Equal(t, "resolved", records[0].Outcome)
	assert.Equal(t, 1, records[0].ChecksPerformed)
}

func TestResolve_FallsThroughToSecondary(t *testing.T) {
	svc, _, _ := newTestService(t)
	seedChain(t, svc)

	check, calls := availabilityChecker(map[string]bool{"gemini/gemini-2.5-pro": true})

	res, err := svc.Resolve(context.Background(), "smart-model", check)
	require.NoError(t, err)
	assert.Equal(t, domain.ProviderGemini, res.Provider)
	assert.Equal(t, 1, res.FallbackIndex)
	assert.Equal(t, 2, *calls)
}

func TestResolve_CaseInsensitiveName(t *testing.T) {
	svc, _, _ := newTestService(t)
	seedChain(t, svc)

	check, _ := availabilityChecker(map[string]bool{"claude/claude-sonnet-4-5": true})

	res, err := svc.Resolve(context.Background(), "SMART-Model", check)
	require.NoError(t, err)
	assert.Equal(t, "smart-model", res.VirtualModelName)
}

func TestResolve_Exhausted(t *testing.T) {
	svc, _, sink := newTestService(t)
	seedChain(t, svc)

	check, calls := availabilityChecker(nil)

	_, err := svc.Resolve(context.Background(), "smart-model", check)
	require.ErrorIs(t, err, domain.ErrNoRouteAvailable)
	assert.Equal(t, 3, *calls)

	records := sink.all()
	require.Len(t, records, 1)
	assert.Equal(t, "exhausted", records[0].Outcome)
	assert.Equal(t, -1, records[0].FallbackIndex)
}

func TestResolve_NotAVirtualModel(t *testing.T) {
	svc, _, _ := newTestService(t)
	m := seedChain(t, svc)
	ctx := context.Background()
	check, calls := availabilityChecker(map[string]bool{"claude/claude-sonnet-4-5": true})

	// Unknown name.
	_, err := svc.Resolve(ctx, "literal-model", check)
	assert.ErrorIs(t, err, domain.ErrNotAVirtualModel)

	// Model disabled.
	_, err = svc.ToggleVirtualModel(ctx, m.ID)
	require.NoError(t, err)
	_, err = svc.Resolve(ctx, "smart-model", check)
	assert.ErrorIs(t, err, domain.ErrNotAVirtualModel)
	_, err = svc.ToggleVirtualModel(ctx, m.ID)
	require.NoError(t, err)

	// Routing globally disabled.
	svc.SetEnabled(ctx, false)
	_, err = svc.Resolve(ctx, "smart-model", check)
	assert.ErrorIs(t, err, domain.ErrNotAVirtualModel)

	// None of those paths may touch the checker.
	assert.Equal(t, 0, *calls)
}

func TestResolve_CachedFastPathSkipsChecker(t *testing.T) {
	svc, _, sink := newTestService(t)
	seedChain(t, svc)
	ctx := context.Background()

	check, calls := availabilityChecker(map[string]bool{"claude/claude-sonnet-4-5": true})

	_, err := svc.Resolve(ctx, "smart-model", check)
	require.NoError(t, err)
	assert.Equal(t, 1, *calls)

	res, err := svc.Resolve(ctx, "smart-model", check)
	require.NoError(t, err)
	assert.Equal(t, domain.ProviderClaude, res.Provider)
	assert.Equal(t, 1, *calls, "cached resolution must not re-check quota")

	records := sink.all()
	require.Len(t, records, 2)
	assert.Equal(t, "cached", records[1].Outcome)
	assert.Equal(t, 0, records[1].ChecksPerformed)
}

func TestResolve_MutationInvalidatesCache(t *testing.T) {
	svc, _, _ := newTestService(t)
	m := seedChain(t, svc)
	ctx := context.Background()

	check, calls := availabilityChecker(map[string]bool{
		"claude/claude-sonnet-4-5": true,
		"codex/gpt-5":              true,
	})

	_, err := svc.Resolve(ctx, "smart-model", check)
	require.NoError(t, err)
	callsAfterFirst := *calls

	// Any configuration change bumps the version and voids the capture.
	_, err = svc.AddFallbackEntry(ctx, m.ID, domain.ProviderCodex, "gpt-5")
	require.NoError(t, err)

	_, err = svc.Resolve(ctx, "smart-model", check)
	require.NoError(t, err)
	assert.Greater(t, *calls, callsAfterFirst, "stale capture must force a fresh resolution")
}

func TestResolve_CheckerErrorTreatedAsUnavailable(t *testing.T) {
	svc, _, _ := newTestService(t)
	seedChain(t, svc)

	check := func(ctx context.Context, provider domain.Provider, modelID string) (bool, error) {
		if provider == domain.ProviderClaude {
			return false, errors.New("scraper timeout")
		}
		return provider == domain.ProviderGemini, nil
	}

	res, err := svc.Resolve(context.Background(), "smart-model", check)
	require.NoError(t, err)
	assert.Equal(t, domain.ProviderGemini, res.Provider)
	assert.Equal(t, 1, res.FallbackIndex)
}

func TestResolve_ContextCancellation(t *testing.T) {
	svc, _, _ := newTestService(t)
	seedChain(t, svc)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	check, calls := availabilityChecker(map[string]bool{"claude/claude-sonnet-4-5": true})
	_, err := svc.Resolve(ctx, "smart-model", check)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, *calls)
}

func TestResolve_RemovedModelClearsRouteState(t *testing.T) {
	svc, _, _ := newTestService(t)
	m := seedChain(t, svc)
	ctx := context.Background()

	check, _ := availabilityChecker(map[string]bool{"claude/claude-sonnet-4-5": true})
	_, err := svc.Resolve(ctx, "smart-model", check)
	require.NoError(t, err)

	_, ok := svc.GetRouteState(ctx, "smart-model")
	assert.True(t, ok)

	require.NoError(t, svc.RemoveVirtualModel(ctx, m.ID))
	_, ok = svc.GetRouteState(ctx, "smart-model")
	assert.False(t, ok)
}
