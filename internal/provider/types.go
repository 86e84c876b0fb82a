// Package provider implements the outbound LLM backend clients.
package provider

// Wire types for the canonical completions shape. The cloud provider speaks
// this format natively; the local adapter synthesizes it from the Ollama
// chat protocol so downstream normalization has a single input shape.

// CompletionMessage is a single role/content message on the wire.
type CompletionMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// CompletionChoice is one generated completion.
type CompletionChoice struct {
	Index        int               `json:"index"`
	Message      CompletionMessage `json:"message"`
	FinishReason string            `json:"finish_reason,omitempty"`
}

// CompletionResponse is the canonical completions response envelope.
type CompletionResponse struct {
	ID      string             `json:"id,omitempty"`
	Object  string             `json:"object,omitempty"`
	Created int64              `json:"created,omitempty"`
	Model   string             `json:"model,omitempty"`
	Choices []CompletionChoice `json:"choices"`
}

// completionRequest is the request body for completions-style endpoints.
type completionRequest struct {
	Model          string              `json:"model"`
	Messages       []CompletionMessage `json:"messages"`
	Temperature    *float64            `json:"temperature,omitempty"`
	ResponseFormat *ResponseFormat     `json:"response_format,omitempty"`
}
