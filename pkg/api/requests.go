package api

// CreateVirtualModelRequest registers a new, empty virtual model.
type CreateVirtualModelRequest struct {
	// Human-facing alias, unique case-insensitively (e.g. "smart-model")
	Name string `json:"name" binding:"required"`
}

// RenameVirtualModelRequest changes a virtual model's alias.
type RenameVirtualModelRequest struct {
	Name string `json:"name" binding:"required"`
}

// SetEnabledRequest flips an enabled flag (global or per model). Pointer so
// an explicit `false` survives binding.
type SetEnabledRequest struct {
	Enabled *bool `json:"isEnabled" binding:"required"`
}

// AddFallbackEntryRequest appends a backend candidate to a chain.
type AddFallbackEntryRequest struct {
	Provider string `json:"provider" binding:"required,oneof=claude gemini codex copilot ollama"`
	ModelID  string `json:"modelId" binding:"required"`
}

// MoveFallbackEntryRequest repositions a chain entry by index.
type MoveFallbackEntryRequest struct {
	FromIndex *int `json:"fromIndex" binding:"required"`
	ToIndex   *int `json:"toIndex" binding:"required"`
}

// ResolveRequest asks the router which backend should serve a model name.
type ResolveRequest struct {
	Model string `json:"model" binding:"required"`
}

// SetQuotaRequest overrides the static capacity flag for one backend.
type SetQuotaRequest struct {
	Available *bool `json:"available" binding:"required"`
}
