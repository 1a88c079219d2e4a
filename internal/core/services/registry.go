package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/nulzo/virtual-router-api/internal/core/domain"
	"go.uber.org/zap"
)

// ListVirtualModels returns a deep copy of every registered virtual model.
func (s *FallbackService) ListVirtualModels() []domain.VirtualModel {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.VirtualModel, len(s.cfg.VirtualModels))
	for i, m := range s.cfg.VirtualModels {
		out[i] = m.Clone()
	}
	return out
}

// GetVirtualModel returns a copy of the virtual model with the given id.
func (s *FallbackService) GetVirtualModel(id string) (*domain.VirtualModel, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.cfg.FindByID(id)
	if !ok {
		return nil, domain.NotFoundError(fmt.Sprintf("virtual model '%s' not found", id))
	}
	clone := m.Clone()
	return &clone, nil
}

// AddVirtualModel creates an empty, enabled virtual model. Names are unique
// case-insensitively.
func (s *FallbackService) AddVirtualModel(ctx context.Context, name string) (*domain.VirtualModel, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.BadRequestError("virtual model name must not be empty")
	}

	var created domain.VirtualModel
	err := s.mutate(ctx, func(cfg *domain.FallbackConfig) error {
		if existing, ok := cfg.FindByName(name); ok {
			return domain.ConflictError(fmt.Sprintf("virtual model name '%s' already in use", existing.Name))
		}
		created = domain.NewVirtualModel(name)
		cfg.VirtualModels = append(cfg.VirtualModels, created)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Virtual model created", zap.String("id", created.ID), zap.String("name", created.Name))
	return &created, nil
}

// RemoveVirtualModel deletes a virtual model and its cached route state.
func (s *FallbackService) RemoveVirtualModel(ctx context.Context, id string) error {
	var removedName string
	err := s.mutate(ctx, func(cfg *domain.FallbackConfig) error {
		for i := range cfg.VirtualModels {
			if cfg.VirtualModels[i].ID == id {
				removedName = cfg.VirtualModels[i].Name
				cfg.VirtualModels = append(cfg.VirtualModels[:i], cfg.VirtualModels[i+1:]...)
				return nil
			}
		}
		return domain.NotFoundError(fmt.Sprintf("virtual model '%s' not found", id))
	})
	if err != nil {
		return err
	}

	if err := s.cache.Clear(ctx, removedName); err != nil {
		s.logger.Warn("Failed to clear route state", zap.String("name", removedName), zap.Error(err))
	}
	s.logger.Info("Virtual model removed", zap.String("id", id), zap.String("name", removedName))
	return nil
}

// RenameVirtualModel changes a model's name. Renaming to a name owned by a
// different model fails with a conflict; renaming to the current name is a
// no-op success.
func (s *FallbackService) RenameVirtualModel(ctx context.Context, id, newName string) (*domain.VirtualModel, error) {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return nil, domain.BadRequestError("virtual model name must not be empty")
	}

	// No-op rename short-circuits before any version bump or persist.
	s.mu.RLock()
	if m, ok := s.cfg.FindByID(id); ok && m.Name == newName {
		clone := m.Clone()
		s.mu.RUnlock()
		return &clone, nil
	}
	s.mu.RUnlock()

	var renamed domain.VirtualModel
	var oldName string
	err := s.mutate(ctx, func(cfg *domain.FallbackConfig) error {
		m, ok := cfg.FindByID(id)
		if !ok {
			return domain.NotFoundError(fmt.Sprintf("virtual model '%s' not found", id))
		}
		if other, ok := cfg.FindByName(newName); ok && other.ID != id {
			return domain.ConflictError(fmt.Sprintf("virtual model name '%s' already in use", other.Name))
		}
		oldName = m.Name
		m.Name = newName
		renamed = m.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}

	// The cached state is keyed by the old name and would otherwise linger
	// as an orphan.
	if err := s.cache.Clear(ctx, oldName); err != nil {
		s.logger.Warn("Failed to clear route state", zap.String("name", oldName), zap.Error(err))
	}
	s.logger.Info("Virtual model renamed",
		zap.String("id", id),
		zap.String("from", oldName),
		zap.String("to", newName),
	)
	return &renamed, nil
}

// ToggleVirtualModel flips a model's enabled flag and returns the new value.
func (s *FallbackService) ToggleVirtualModel(ctx context.Context, id string) (bool, error) {
	var enabled bool
	err := s.mutate(ctx, func(cfg *domain.FallbackConfig) error {
		m, ok := cfg.FindByID(id)
		if !ok {
			return domain.NotFoundError(fmt.Sprintf("virtual model '%s' not found", id))
		}
		m.Enabled = !m.Enabled
		enabled = m.Enabled
		return nil
	})
	return enabled, err
}

// SetVirtualModelEnabled sets a model's enabled flag explicitly.
func (s *FallbackService) SetVirtualModelEnabled(ctx context.Context, id string, enabled bool) error {
	return s.mutate(ctx, func(cfg *domain.FallbackConfig) error {
		m, ok := cfg.FindByID(id)
		if !ok {
			return domain.NotFoundError(fmt.Sprintf("virtual model '%s' not found", id))
		}
		m.Enabled = enabled
		return nil
	})
}

// AddFallbackEntry appends a backend candidate to a virtual model's chain
// at the lowest priority (end of the list).
func (s *FallbackService) AddFallbackEntry(ctx context.Context, modelID string, provider domain.Provider, backendModelID string) (*domain.FallbackEntry, error) {
	if !provider.Valid() {
		return nil, domain.BadRequestError(fmt.Sprintf("unknown provider '%s'", provider))
	}
	backendModelID = strings.TrimSpace(backendModelID)
	if backendModelID == "" {
		return nil, domain.BadRequestError("backend model id must not be empty")
	}

	var created domain.FallbackEntry
	err := s.mutate(ctx, func(cfg *domain.FallbackConfig) error {
		m, ok := cfg.FindByID(modelID)
		if !ok {
			return domain.NotFoundError(fmt.Sprintf("virtual model '%s' not found", modelID))
		}
		created = domain.FallbackEntry{
			ID:       uuid.New().String(),
			Provider: provider,
			ModelID:  backendModelID,
			Priority: len(m.Entries),
		}
		m.Entries = append(m.Entries, created)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// RemoveFallbackEntry deletes one entry and renumbers the remainder back to
// a contiguous 0..n-1 sequence.
func (s *FallbackService) RemoveFallbackEntry(ctx context.Context, modelID, entryID string) error {
	return s.mutate(ctx, func(cfg *domain.FallbackConfig) error {
		m, ok := cfg.FindByID(modelID)
		if !ok {
			return domain.NotFoundError(fmt.Sprintf("virtual model '%s' not found", modelID))
		}
		for i := range m.Entries {
			if m.Entries[i].ID == entryID {
				m.Entries = append(m.Entries[:i], m.Entries[i+1:]...)
				m.Renumber()
				return nil
			}
		}
		return domain.NotFoundError(fmt.Sprintf("fallback entry '%s' not found", entryID))
	})
}

// MoveFallbackEntry repositions an entry from one index to another and
// renumbers the whole chain.
func (s *FallbackService) MoveFallbackEntry(ctx context.Context, modelID string, from, to int) error {
	// A same-position move short-circuits before any version bump or
	// persist, so cached route states stay valid.
	s.mu.RLock()
	if m, ok := s.cfg.FindByID(modelID); ok && from == to && from >= 0 && from < len(m.Entries) {
		s.mu.RUnlock()
		return nil
	}
	s.mu.RUnlock()

	return s.mutate(ctx, func(cfg *domain.FallbackConfig) error {
		m, ok := cfg.FindByID(modelID)
		if !ok {
			return domain.NotFoundError(fmt.Sprintf("virtual model '%s' not found", modelID))
		}
		n := len(m.Entries)
		if from < 0 || from >= n || to < 0 || to >= n {
			return domain.InvalidIndexError(fmt.Sprintf("move indexes out of range: from=%d to=%d size=%d", from, to, n))
		}

		m.Renumber() // entries indexable by position
		moved := m.Entries[from]
		m.Entries = append(m.Entries[:from], m.Entries[from+1:]...)
		m.Entries = append(m.Entries[:to], append([]domain.FallbackEntry{moved}, m.Entries[to:]...)...)
		for i := range m.Entries {
			m.Entries[i].Priority = i
		}
		return nil
	})
}
