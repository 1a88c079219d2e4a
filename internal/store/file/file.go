package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/nulzo/virtual-router-api/internal/core/domain"
	"github.com/nulzo/virtual-router-api/internal/core/ports"
)

// ConfigStore persists the fallback configuration as a single JSON document
// using the rename-swap pattern: write a temp file, fsync, then atomically
// rename over the target. A crash mid-save can never leave a truncated or
// half-written document behind.
type ConfigStore struct {
	path string
}

func NewConfigStore(path string) ports.ConfigStore {
	return &ConfigStore{path: path}
}

func (s *ConfigStore) Load(ctx context.Context) (domain.FallbackConfig, bool, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.DefaultFallbackConfig(), false, nil
		}
		return domain.DefaultFallbackConfig(), false, fmt.Errorf("failed to read %s: %w", s.path, err)
	}

	var cfg domain.FallbackConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return domain.DefaultFallbackConfig(), false, fmt.Errorf("failed to decode %s: %w", s.path, err)
	}
	return cfg, true, nil
}

func (s *ConfigStore) Save(ctx context.Context, cfg domain.FallbackConfig) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode configuration: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	tempPath := fmt.Sprintf("%s.tmp.%s", s.path, uuid.New().String())
	tempFile, err := os.OpenFile(tempPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
	if err != nil {
		return fmt.Errorf("failed to create temp file %s: %w", tempPath, err)
	}

	cleanupTemp := true
	defer func() {
		if cleanupTemp {
			os.Remove(tempPath)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		tempFile.Close()
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tempFile.Sync(); err != nil {
		tempFile.Close()
		return fmt.Errorf("failed to fsync temp file: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	// Atomic on the same filesystem; readers see the old document or the
	// new one, never a mix.
	if err := os.Rename(tempPath, s.path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", s.path, err)
	}
	cleanupTemp = false

	// Best effort: make the rename durable across a crash.
	if d, err := os.Open(dir); err == nil {
		_ = d.Sync()
		_ = d.Close()
	}

	return nil
}
