package domain

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Normalize repairs an untrusted configuration in place so it satisfies the
// registry invariants: ids are assigned where missing, entry priorities are
// renumbered to a contiguous 0..n-1 sequence (stable relative to the
// supplied priority values), and a nil model list becomes an empty one.
// Structural problems that cannot be repaired are left for Validate.
func (c *FallbackConfig) Normalize() {
	if c.VirtualModels == nil {
		c.VirtualModels = []VirtualModel{}
	}
	for i := range c.VirtualModels {
		m := &c.VirtualModels[i]
		if m.ID == "" {
			m.ID = uuid.New().String()
		}
		if m.Entries == nil {
			m.Entries = []FallbackEntry{}
		}
		for j := range m.Entries {
			if m.Entries[j].ID == "" {
				m.Entries[j].ID = uuid.New().String()
			}
		}
		m.Renumber()
	}
}

// Validate checks the registry invariants on a configuration. It assumes
// Normalize has run, so priority gaps at this point indicate a bug rather
// than untrusted input.
func (c FallbackConfig) Validate() error {
	seenNames := make(map[string]string, len(c.VirtualModels))
	seenIDs := make(map[string]bool, len(c.VirtualModels))

	for _, m := range c.VirtualModels {
		if strings.TrimSpace(m.Name) == "" {
			return fmt.Errorf("virtual model %q has an empty name", m.ID)
		}
		lower := strings.ToLower(m.Name)
		if other, dup := seenNames[lower]; dup {
			return fmt.Errorf("duplicate virtual model name %q (also used by %q)", m.Name, other)
		}
		seenNames[lower] = m.Name

		if seenIDs[m.ID] {
			return fmt.Errorf("duplicate virtual model id %q", m.ID)
		}
		seenIDs[m.ID] = true

		if err := m.validateEntries(); err != nil {
			return fmt.Errorf("virtual model %q: %w", m.Name, err)
		}
	}
	return nil
}

func (m VirtualModel) validateEntries() error {
	seen := make(map[string]bool, len(m.Entries))
	for i, e := range m.Entries {
		if !e.Provider.Valid() {
			return fmt.Errorf("entry %d: unknown provider %q", i, e.Provider)
		}
		if strings.TrimSpace(e.ModelID) == "" {
			return fmt.Errorf("entry %d: empty model id", i)
		}
		if seen[e.ID] {
			return fmt.Errorf("entry %d: duplicate entry id %q", i, e.ID)
		}
		seen[e.ID] = true
		if e.Priority != i {
			return fmt.Errorf("entry %d: non-contiguous priority %d", i, e.Priority)
		}
	}
	return nil
}
