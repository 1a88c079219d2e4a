package domain

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Provider identifies a concrete backend CLI/provider. The set is fixed;
// the routing core validates membership only, never provider semantics.
type Provider string

const (
	ProviderClaude  Provider = "claude"
	ProviderGemini  Provider = "gemini"
	ProviderCodex   Provider = "codex"
	ProviderCopilot Provider = "copilot"
	ProviderOllama  Provider = "ollama"
)

// Providers returns the full provider set in stable order.
func Providers() []Provider {
	return []Provider{
		ProviderClaude,
		ProviderGemini,
		ProviderCodex,
		ProviderCopilot,
		ProviderOllama,
	}
}

// Valid reports whether p is a member of the fixed provider set.
func (p Provider) Valid() bool {
	switch p {
	case ProviderClaude, ProviderGemini, ProviderCodex, ProviderCopilot, ProviderOllama:
		return true
	}
	return false
}

// FallbackEntry is one (provider, model) candidate within a virtual model's
// chain. Priority doubles as list position and is kept contiguous 0..n-1.
type FallbackEntry struct {
	ID       string   `json:"id"`
	Provider Provider `json:"provider"`
	ModelID  string   `json:"modelId"`
	Priority int      `json:"priority"`
}

// VirtualModel is a caller-facing model name backed by an ordered fallback
// chain rather than a single concrete backend.
type VirtualModel struct {
	ID      string          `json:"id"`
	Name    string          `json:"name"`
	Enabled bool            `json:"isEnabled"`
	Entries []FallbackEntry `json:"fallbackEntries"`
}

// NewVirtualModel creates an empty, enabled virtual model.
func NewVirtualModel(name string) VirtualModel {
	return VirtualModel{
		ID:      uuid.New().String(),
		Name:    name,
		Enabled: true,
		Entries: []FallbackEntry{},
	}
}

// Clone returns a deep copy. Mutations on the copy never leak into the
// registry's authoritative state.
func (m VirtualModel) Clone() VirtualModel {
	out := m
	out.Entries = make([]FallbackEntry, len(m.Entries))
	copy(out.Entries, m.Entries)
	return out
}

// SortedEntries returns the entries ordered ascending by priority.
func (m VirtualModel) SortedEntries() []FallbackEntry {
	entries := make([]FallbackEntry, len(m.Entries))
	copy(entries, m.Entries)
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Priority < entries[j].Priority
	})
	return entries
}

// Renumber restores the contiguous 0..n-1 priority invariant, preserving
// the relative order implied by the current priority values.
func (m *VirtualModel) Renumber() {
	sort.SliceStable(m.Entries, func(i, j int) bool {
		return m.Entries[i].Priority < m.Entries[j].Priority
	})
	for i := range m.Entries {
		m.Entries[i].Priority = i
	}
}

// FallbackConfig is the sole persisted aggregate of the routing subsystem.
type FallbackConfig struct {
	Enabled       bool           `json:"isEnabled"`
	VirtualModels []VirtualModel `json:"virtualModels"`
}

// DefaultFallbackConfig returns the reset state: no models, globally off.
func DefaultFallbackConfig() FallbackConfig {
	return FallbackConfig{
		Enabled:       false,
		VirtualModels: []VirtualModel{},
	}
}

// Clone returns a deep copy of the configuration.
func (c FallbackConfig) Clone() FallbackConfig {
	out := c
	out.VirtualModels = make([]VirtualModel, len(c.VirtualModels))
	for i, m := range c.VirtualModels {
		out.VirtualModels[i] = m.Clone()
	}
	return out
}

// FindByName returns the virtual model matching name (case-insensitive).
func (c FallbackConfig) FindByName(name string) (*VirtualModel, bool) {
	for i := range c.VirtualModels {
		if strings.EqualFold(c.VirtualModels[i].Name, name) {
			return &c.VirtualModels[i], true
		}
	}
	return nil, false
}

// FindByID returns the virtual model with the given id.
func (c FallbackConfig) FindByID(id string) (*VirtualModel, bool) {
	for i := range c.VirtualModels {
		if c.VirtualModels[i].ID == id {
			return &c.VirtualModels[i], true
		}
	}
	return nil, false
}

// RouteState caches the currently-active fallback entry for a virtual
// model. It is advisory and lives only in the route-state cache: losing it
// costs extra quota checks, never a wrong route.
type RouteState struct {
	VirtualModelName string    `json:"virtualModelName"`
	Provider         Provider  `json:"provider"`
	ModelID          string    `json:"modelId"`
	EntryIndex       int       `json:"currentEntryIndex"`
	TotalEntries     int       `json:"totalEntriesAtCapture"`
	ConfigVersion    uint64    `json:"configVersion"`
	UpdatedAt        time.Time `json:"lastUpdated"`
}

// Resolution is the per-call outcome of resolving a virtual model name to a
// concrete backend.
type Resolution struct {
	Provider         Provider `json:"provider"`
	ModelID          string   `json:"modelId"`
	VirtualModelName string   `json:"virtualModelName"`
	FallbackIndex    int      `json:"fallbackIndex"`
}
