package api

import "github.com/nulzo/virtual-router-api/internal/core/domain"

// ResolveResponse is the routing verdict for one model name.
//
// Virtual=false means the name did not match an enabled virtual model and the
// caller should use it verbatim; the routing fields are omitted in that case.
type ResolveResponse struct {
	Virtual          bool   `json:"virtual"`
	Model            string `json:"model"`
	Provider         string `json:"provider,omitempty"`
	VirtualModelName string `json:"virtualModelName,omitempty"`
	FallbackIndex    int    `json:"fallbackIndex,omitempty"`
}

// PassthroughResponse builds the verdict for a literal model name.
func PassthroughResponse(model string) ResolveResponse {
	return ResolveResponse{Virtual: false, Model: model}
}

// ResolvedResponse builds the verdict for a successful chain resolution.
func ResolvedResponse(res *domain.Resolution) ResolveResponse {
	return ResolveResponse{
		Virtual:          true,
		Model:            res.ModelID,
		Provider:         string(res.Provider),
		VirtualModelName: res.VirtualModelName,
		FallbackIndex:    res.FallbackIndex,
	}
}

// EnabledResponse reports an enabled flag.
type EnabledResponse struct {
	Enabled bool `json:"isEnabled"`
}

// NewError builds a minimal RFC 9457 problem body for errors raised outside
// the service layer.
func NewError(status int, title, detail string) *domain.Problem {
	return domain.NewProblem(status, title, detail)
}
