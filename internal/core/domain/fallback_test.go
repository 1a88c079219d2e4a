package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewVirtualModel(t *testing.T) {
	m := NewVirtualModel("smart-model")

	assert.NotEmpty(t, m.ID)
	assert.Equal(t, "smart-model", m.Name)
	assert.True(t, m.Enabled)
	assert.NotNil(t, m.Entries)
	assert.Empty(t, m.Entries)
}

func TestVirtualModel_Clone_Independent(t *testing.T) {
	m := NewVirtualModel("smart-model")
	m.Entries = []FallbackEntry{
		{ID: "e1", Provider: ProviderClaude, ModelID: "claude-sonnet-4-5", Priority: 0},
	}

	clone := m.Clone()
	clone.Entries[0].ModelID = "mutated"
	clone.Name = "other"

	assert.Equal(t, "claude-sonnet-4-5", m.Entries[0].ModelID)
	assert.Equal(t, "smart-model", m.Name)
}

func TestVirtualModel_SortedEntries(t *testing.T) {
	m := VirtualModel{
		Entries: []FallbackEntry{
			{ID: "e2", Provider: ProviderGemini, ModelID: "gemini-2.5-pro", Priority: 1},
			{ID: "e1", Provider: ProviderClaude, ModelID: "claude-sonnet-4-5", Priority: 0},
			{ID: "e3", Provider: ProviderOllama, ModelID: "qwen3:8b", Priority: 2},
		},
	}

	sorted := m.SortedEntries()
	assert.Equal(t, []string{"e1", "e2", "e3"}, []string{sorted[0].ID, sorted[1].ID, sorted[2].ID})

	// Original order untouched.
	assert.Equal(t, "e2", m.Entries[0].ID)
}

func TestVirtualModel_Renumber(t *testing.T) {
	m := VirtualModel{
		Entries: []FallbackEntry{
			{ID: "e1", Priority: 7},
			{ID: "e2", Priority: 2},
			{ID: "e3", Priority: 2},
		},
	}

	m.Renumber()

	// Gaps collapse; ties keep their relative order.
	assert.Equal(t, "e2", m.Entries[0].ID)
	assert.Equal(t, "e3", m.Entries[1].ID)
	assert.Equal(t, "e1", m.Entries[2].ID)
	for i, e := range m.Entries {
		assert.Equal(t, i, e.Priority)
	}
}

func TestFallbackConfig_FindByName_CaseInsensitive(t *testing.T) {
	cfg := FallbackConfig{
		VirtualModels: []VirtualModel{{ID: "m1", Name: "Smart-Model"}},
	}

	m, ok := cfg.FindByName("smart-model")
	assert.True(t, ok)
	assert.Equal(t, "m1", m.ID)

	_, ok = cfg.FindByName("unknown")
	assert.False(t, ok)
}

func TestProvider_Valid(t *testing.T) {
	for _, p := range Providers() {
		assert.True(t, p.Valid(), string(p))
	}
	assert.False(t, Provider("openai").Valid())
	assert.False(t, Provider("").Valid())
}
