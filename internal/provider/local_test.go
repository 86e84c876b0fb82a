package provider

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/edulab/agent-gateway/internal/domain"
)

func TestLocal_ReshapesIntoCanonicalEnvelope(t *testing.T) {
	var gotBody localChatRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Fatalf("failed to decode request body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"model": gotBody.Model,
			"message": map[string]any{
				"role":    "assistant",
				"content": "Halo! Ada yang bisa dibantu?",
			},
			"done": true,
		})
	}))
	defer server.Close()

	client := NewLocal(server.URL)

	raw, err := client.Complete(context.Background(), CompletionRequest{
		Model: "llama3.2",
		Messages: []domain.ChatMessage{
			{Role: domain.RoleSystem, Content: "Kamu adalah tutor."},
			{Role: domain.RoleUser, Content: "Apa itu fotosintesis?"},
		},
	})
	if err != nil {
		t.Fatalf("Complete() unexpected error: %v", err)
	}

	// Outbound body follows the Ollama chat protocol.
	if gotBody.Model != "llama3.2" {
		t.Errorf("request model = %q, want llama3.2", gotBody.Model)
	}
	if gotBody.Stream {
		t.Error("request stream = true, want false")
	}
	if len(gotBody.Messages) != 2 || gotBody.Messages[0].Role != "system" {
		t.Errorf("request messages = %+v, want system+user", gotBody.Messages)
	}

	// The returned raw body is the canonical choices envelope.
	var canonical CompletionResponse
	if err := json.Unmarshal(raw, &canonical); err != nil {
		t.Fatalf("raw response is not valid JSON: %v", err)
	}
	if len(canonical.Choices) != 1 {
		t.Fatalf("len(Choices) = %d, want 1", len(canonical.Choices))
	}
	if canonical.Choices[0].Message.Content != "Halo! Ada yang bisa dibantu?" {
		t.Errorf("Choices[0].Message.Content = %q, unexpected", canonical.Choices[0].Message.Content)
	}
	if canonical.Choices[0].Message.Role != "assistant" {
		t.Errorf("Choices[0].Message.Role = %q, want assistant", canonical.Choices[0].Message.Role)
	}
}

func TestLocal_NonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer server.Close()

	client := NewLocal(server.URL)

	_, err := client.Complete(context.Background(), CompletionRequest{
		Model:    "missing-model",
		Messages: []domain.ChatMessage{{Role: domain.RoleUser, Content: "hi"}},
	})

	var provErr *Error
	if !errors.As(err, &provErr) {
		t.Fatalf("Complete() error = %v, want *provider.Error", err)
	}
	if provErr.Status != http.StatusNotFound {
		t.Errorf("Error.Status = %d, want 404", provErr.Status)
	}
	if provErr.Provider != "local" {
		t.Errorf("Error.Provider = %q, want local", provErr.Provider)
	}
}

func TestLocal_NonJSONBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json at all"))
	}))
	defer server.Close()

	client := NewLocal(server.URL)

	_, err := client.Complete(context.Background(), CompletionRequest{
		Model:    "llama3.2",
		Messages: []domain.ChatMessage{{Role: domain.RoleUser, Content: "hi"}},
	})

	var provErr *Error
	if !errors.As(err, &provErr) {
		t.Fatalf("Complete() error = %v, want *provider.Error", err)
	}
}

func TestLocal_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused from here on

	client := NewLocal(server.URL)

	_, err := client.Complete(context.Background(), CompletionRequest{
		Model:    "llama3.2",
		Messages: []domain.ChatMessage{{Role: domain.RoleUser, Content: "hi"}},
	})

	var provErr *Error
	if !errors.As(err, &provErr) {
		t.Fatalf("Complete() error = %v, want *provider.Error", err)
	}
	if provErr.Status != 0 {
		t.Errorf("Error.Status = %d, want 0 for transport failure", provErr.Status)
	}
}

func TestNewLocal_DefaultEndpoint(t *testing.T) {
	client := NewLocal("")
	if client.endpoint != DefaultLocalEndpoint {
		t.Errorf("endpoint = %q, want %q", client.endpoint, DefaultLocalEndpoint)
	}
}
