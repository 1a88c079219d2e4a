package services

import (
	"context"
	"encoding/json"
	"sort"
	"strings"

	"github.com/nulzo/virtual-router-api/internal/core/domain"
	"go.uber.org/zap"
)

// ExportConfiguration renders the full configuration as canonical,
// pretty-printed JSON: virtual models sorted by name (case-insensitive),
// entries in priority order. Two exports of the same state are
// byte-identical.
func (s *FallbackService) ExportConfiguration() (string, error) {
	s.mu.RLock()
	snapshot := s.cfg.Clone()
	s.mu.RUnlock()

	sort.SliceStable(snapshot.VirtualModels, func(i, j int) bool {
		return strings.ToLower(snapshot.VirtualModels[i].Name) < strings.ToLower(snapshot.VirtualModels[j].Name)
	})
	for i := range snapshot.VirtualModels {
		snapshot.VirtualModels[i].Renumber()
	}

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return "", domain.InternalError("failed to encode configuration", err)
	}
	return string(data), nil
}

// ImportConfiguration validates a configuration document and replaces the
// whole in-memory state atomically. On any parse or validation failure the
// existing configuration is left untouched. Caller-supplied priorities are
// not trusted: entries are renumbered to restore the contiguous invariant.
func (s *FallbackService) ImportConfiguration(ctx context.Context, payload string) error {
	var incoming domain.FallbackConfig
	if err := json.Unmarshal([]byte(payload), &incoming); err != nil {
		return domain.ImportParseError("configuration payload is not valid JSON", err)
	}

	incoming.Normalize()
	if err := incoming.Validate(); err != nil {
		return domain.ImportParseError("configuration payload failed validation: "+err.Error(), err)
	}

	s.mu.Lock()
	s.cfg = incoming
	s.version++
	snapshot := s.cfg.Clone()
	s.mu.Unlock()

	if err := s.cache.ClearAll(ctx); err != nil {
		s.logger.Warn("Failed to clear route states after import", zap.Error(err))
	}
	s.persist(ctx, snapshot)

	s.logger.Info("Configuration imported", zap.Int("virtual_models", len(snapshot.VirtualModels)))
	return nil
}

// ResetToDefaults replaces the configuration with an empty, disabled one.
func (s *FallbackService) ResetToDefaults(ctx context.Context) error {
	s.mu.Lock()
	s.cfg = domain.DefaultFallbackConfig()
	s.version++
	snapshot := s.cfg.Clone()
	s.mu.Unlock()

	if err := s.cache.ClearAll(ctx); err != nil {
		s.logger.Warn("Failed to clear route states after reset", zap.Error(err))
	}
	s.persist(ctx, snapshot)
	return nil
}
