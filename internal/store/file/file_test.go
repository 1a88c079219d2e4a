package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/nulzo/virtual-router-api/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigStore_LoadMissingFile(t *testing.T) {
	store := NewConfigStore(filepath.Join(t.TempDir(), "absent.json"))

	cfg, found, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.False(t, found)
	assert.False(t, cfg.Enabled)
	assert.Empty(t, cfg.VirtualModels)
}

func TestConfigStore_SaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "fallback_config.json")
	store := NewConfigStore(path)
	ctx := context.Background()

	m := domain.NewVirtualModel("smart-model")
	m.Entries = []domain.FallbackEntry{
		{ID: "e1", Provider: domain.ProviderClaude, ModelID: "claude-sonnet-4-5", Priority: 0},
		{ID: "e2", Provider: domain.ProviderGemini, ModelID: "gemini-2.5-pro", Priority: 1},
	}
	cfg := domain.FallbackConfig{Enabled: true, VirtualModels: []domain.VirtualModel{m}}

	require.NoError(t, store.Save(ctx, cfg))

	loaded, found, err := store.Load(ctx)
	require.NoError(t, err)
	assert.True(t, found)
	assert.True(t, loaded.Enabled)
	require.Len(t, loaded.VirtualModels, 1)
	assert.Equal(t, m.ID, loaded.VirtualModels[0].ID)
	require.Len(t, loaded.VirtualModels[0].Entries, 2)
	assert.Equal(t, "gemini-2.5-pro", loaded.VirtualModels[0].Entries[1].ModelID)
}

func TestConfigStore_SaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fallback_config.json")
	store := NewConfigStore(path)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, store.Save(ctx, domain.DefaultFallbackConfig()))
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "fallback_config.json", entries[0].Name())
}

func TestConfigStore_LoadCorruptFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fallback_config.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0600))

	store := NewConfigStore(path)
	_, _, err := store.Load(context.Background())
	assert.Error(t, err)
}

func TestConfigStore_SaveOverwritesAtomically(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fallback_config.json")
	store := NewConfigStore(path)
	ctx := context.Background()

	first := domain.FallbackConfig{Enabled: true, VirtualModels: []domain.VirtualModel{domain.NewVirtualModel("a")}}
	require.NoError(t, store.Save(ctx, first))

	second := domain.FallbackConfig{Enabled: false, VirtualModels: []domain.VirtualModel{domain.NewVirtualModel("b")}}
	require.NoError(t, store.Save(ctx, second))

	loaded, found, err := store.Load(ctx)
	require.NoError(t, err)
	assert.True(t, found)
	require.Len(t, loaded.VirtualModels, 1)
	assert.Equal(t, "b", loaded.VirtualModels[0].Name)
}
