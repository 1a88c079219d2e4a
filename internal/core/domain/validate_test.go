package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize_RepairsUntrustedInput(t *testing.T) {
	cfg := FallbackConfig{
		VirtualModels: []VirtualModel{
			{
				Name: "smart-model",
				Entries: []FallbackEntry{
					{Provider: ProviderGemini, ModelID: "gemini-2.5-pro", Priority: 10},
					{Provider: ProviderClaude, ModelID: "claude-sonnet-4-5", Priority: 3},
				},
			},
		},
	}

	cfg.Normalize()

	m := cfg.VirtualModels[0]
	assert.NotEmpty(t, m.ID)
	for _, e := range m.Entries {
		assert.NotEmpty(t, e.ID)
	}

	// Priorities collapse to 0..n-1, order implied by the supplied values.
	assert.Equal(t, "claude-sonnet-4-5", m.Entries[0].ModelID)
	assert.Equal(t, 0, m.Entries[0].Priority)
	assert.Equal(t, "gemini-2.5-pro", m.Entries[1].ModelID)
	assert.Equal(t, 1, m.Entries[1].Priority)

	assert.NoError(t, cfg.Validate())
}

func TestNormalize_NilSlices(t *testing.T) {
	cfg := FallbackConfig{}
	cfg.Normalize()
	assert.NotNil(t, cfg.VirtualModels)
}

func TestValidate_DuplicateNameCaseInsensitive(t *testing.T) {
	cfg := FallbackConfig{
		VirtualModels: []VirtualModel{
			NewVirtualModel("Smart-Model"),
			NewVirtualModel("smart-model"),
		},
	}

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate virtual model name")
}

func TestValidate_UnknownProvider(t *testing.T) {
	m := NewVirtualModel("smart-model")
	m.Entries = []FallbackEntry{{ID: "e1", Provider: "openai", ModelID: "gpt-5", Priority: 0}}
	cfg := FallbackConfig{VirtualModels: []VirtualModel{m}}

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown provider")
}

func TestValidate_EmptyModelID(t *testing.T) {
	m := NewVirtualModel("smart-model")
	m.Entries = []FallbackEntry{{ID: "e1", Provider: ProviderClaude, ModelID: "  ", Priority: 0}}
	cfg := FallbackConfig{VirtualModels: []VirtualModel{m}}

	assert.Error(t, cfg.Validate())
}

func TestValidate_NonContiguousPriority(t *testing.T) {
	m := NewVirtualModel("smart-model")
	m.Entries = []FallbackEntry{
		{ID: "e1", Provider: ProviderClaude, ModelID: "claude-sonnet-4-5", Priority: 0},
		{ID: "e2", Provider: ProviderGemini, ModelID: "gemini-2.5-pro", Priority: 2},
	}
	cfg := FallbackConfig{VirtualModels: []VirtualModel{m}}

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "non-contiguous priority")
}

func TestValidate_EmptyName(t *testing.T) {
	cfg := FallbackConfig{VirtualModels: []VirtualModel{NewVirtualModel("  ")}}
	assert.Error(t, cfg.Validate())
}
