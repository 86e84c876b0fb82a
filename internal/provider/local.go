// Package provider implements the outbound LLM backend clients.
package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/edulab/agent-gateway/internal/domain"
)

const (
	// DefaultLocalEndpoint is the default local inference chat endpoint.
	DefaultLocalEndpoint = "http://localhost:11434/api/chat"

	// DefaultTimeout is the default HTTP client timeout for outbound calls.
	DefaultTimeout = 30 * time.Second
)

// Local talks to a local inference server (Ollama chat protocol).
// The native reply nests the answer at the top level as {message:{role,content}};
// Local reshapes it into the canonical choices form before returning, so the
// normalizer stays provider-agnostic.
type Local struct {
	endpoint   string
	httpClient *http.Client
}

// LocalOption is a functional option for configuring Local.
type LocalOption func(*Local)

// WithLocalHTTPClient sets a custom HTTP client.
func WithLocalHTTPClient(client *http.Client) LocalOption {
	return func(l *Local) {
		l.httpClient = client
	}
}

// WithLocalTimeout sets the HTTP client timeout.
func WithLocalTimeout(timeout time.Duration) LocalOption {
	return func(l *Local) {
		l.httpClient.Timeout = timeout
	}
}

// NewLocal creates a Local client posting to the given chat endpoint.
// An empty endpoint falls back to DefaultLocalEndpoint.
func NewLocal(endpoint string, opts ...LocalOption) *Local {
	l := &Local{
		endpoint: strings.TrimSuffix(endpoint, "/"),
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
	}
	if l.endpoint == "" {
		l.endpoint = DefaultLocalEndpoint
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Name returns the provider identifier.
func (l *Local) Name() string {
	return "local"
}

// localChatRequest is the Ollama chat request body.
type localChatRequest struct {
	Model    string              `json:"model"`
	Messages []CompletionMessage `json:"messages"`
	Stream   bool                `json:"stream"`
}

// localChatResponse is the Ollama chat response body.
type localChatResponse struct {
	Message CompletionMessage `json:"message"`
}

// Complete posts the messages to the local chat endpoint and returns the
// reply reshaped into the canonical choices envelope.
func (l *Local) Complete(ctx context.Context, req CompletionRequest) (RawResponse, error) {
	body, err := json.Marshal(localChatRequest{
		Model:    req.Model,
		Messages: toWireMessages(req.Messages),
		Stream:   false,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal local request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, l.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create http request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := l.httpClient.Do(httpReq)
	if err != nil {
		return nil, &Error{Provider: l.Name(), Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Provider: l.Name(), Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &Error{
			Provider: l.Name(),
			Status:   resp.StatusCode,
			Err:      fmt.Errorf("unexpected status %s: %s", resp.Status, truncateBody(respBody)),
		}
	}

	var native localChatResponse
	if err := json.Unmarshal(respBody, &native); err != nil {
		return nil, &Error{
			Provider: l.Name(),
			Status:   resp.StatusCode,
			Err:      fmt.Errorf("response body is not valid JSON: %w", err),
		}
	}

	// Reshape the top-level message into the canonical envelope.
	canonical, err := json.Marshal(CompletionResponse{
		Object: "chat.completion",
		Model:  req.Model,
		Choices: []CompletionChoice{
			{
				Index: 0,
				Message: CompletionMessage{
					Role:    string(domain.RoleAssistant),
					Content: native.Message.Content,
				},
				FinishReason: "stop",
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal canonical response: %w", err)
	}

	return canonical, nil
}

// toWireMessages converts domain messages to the wire representation.
func toWireMessages(messages []domain.ChatMessage) []CompletionMessage {
	wire := make([]CompletionMessage, len(messages))
	for i, m := range messages {
		wire[i] = CompletionMessage{
			Role:    string(m.Role),
			Content: m.Content,
		}
	}
	return wire
}

// truncateBody shortens an error body for inclusion in error messages.
func truncateBody(body []byte) string {
	const maxLen = 200
	s := strings.TrimSpace(string(body))
	if len(s) > maxLen {
		return s[:maxLen] + "..."
	}
	return s
}
