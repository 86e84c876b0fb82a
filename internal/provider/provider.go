// Package provider implements the outbound LLM backend clients.
// It uses the Adapter pattern: each client normalizes its native response
// into the canonical choices[0].message.content shape, so the response
// normalizer never needs provider-specific logic.
package provider

import (
	"context"
	"fmt"

	"github.com/edulab/agent-gateway/internal/domain"
)

// RawResponse is the opaque JSON body returned by a provider. Its field
// layout is not contractually fixed; only the normalizer interprets it.
type RawResponse []byte

// ResponseFormat requests structured output from providers that support it.
type ResponseFormat struct {
	Type string `json:"type"`
}

// JSONObjectFormat asks the provider for a JSON-object reply.
var JSONObjectFormat = &ResponseFormat{Type: "json_object"}

// CompletionRequest is the provider-agnostic completion request.
type CompletionRequest struct {
	Model          string
	Messages       []domain.ChatMessage
	Temperature    *float64
	ResponseFormat *ResponseFormat
}

// Client defines the interface for LLM backend clients.
// Complete performs a single attempt with no internal retry.
type Client interface {
	// Complete sends the messages and returns the raw provider reply.
	// Transport failures, non-2xx statuses, and non-JSON bodies are
	// reported as *Error.
	Complete(ctx context.Context, req CompletionRequest) (RawResponse, error)

	// Name returns the provider's identifier string.
	Name() string
}

// Error reports that a provider could not serve a request: network failure,
// non-2xx status, or an unparseable response body.
type Error struct {
	Provider string
	Status   int // HTTP status, 0 for transport-level failures
	Err      error
}

func (e *Error) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("provider %s unavailable [%d]: %v", e.Provider, e.Status, e.Err)
	}
	return fmt.Sprintf("provider %s unavailable: %v", e.Provider, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
