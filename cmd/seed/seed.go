// Command seed writes a starter fallback configuration so a fresh install
// has something to route against.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/nulzo/virtual-router-api/internal/core/domain"
	"github.com/nulzo/virtual-router-api/internal/store/file"
)

func main() {
	path := flag.String("path", "fallback_config.json", "Target configuration file")
	flag.Parse()

	store := file.NewConfigStore(*path)
	ctx := context.Background()

	if _, found, err := store.Load(ctx); err != nil {
		log.Fatalf("Failed to read %s: %v", *path, err)
	} else if found {
		log.Fatalf("%s already exists, refusing to overwrite", *path)
	}

	cfg := domain.DefaultFallbackConfig()
	cfg.Enabled = true

	smart := domain.NewVirtualModel("smart-model")
	smart.Entries = []domain.FallbackEntry{
		{Provider: domain.ProviderClaude, ModelID: "claude-sonnet-4-5"},
		{Provider: domain.ProviderGemini, ModelID: "gemini-2.5-pro"},
		{Provider: domain.ProviderCodex, ModelID: "gpt-5"},
	}

	fast := domain.NewVirtualModel("fast-model")
	fast.Entries = []domain.FallbackEntry{
		{Provider: domain.ProviderGemini, ModelID: "gemini-2.5-flash"},
		{Provider: domain.ProviderOllama, ModelID: "qwen3:8b"},
	}

	cfg.VirtualModels = []domain.VirtualModel{smart, fast}
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Seed configuration is invalid: %v", err)
	}

	if err := store.Save(ctx, cfg); err != nil {
		log.Fatalf("Failed to write %s: %v", *path, err)
	}

	fmt.Printf("Seeded %s with %d virtual models\n", *path, len(cfg.VirtualModels))
	for _, m := range cfg.VirtualModels {
		fmt.Printf("  %s (%d entries)\n", m.Name, len(m.Entries))
	}
}
