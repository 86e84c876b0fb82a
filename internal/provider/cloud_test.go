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

func TestCloud_SendsAuthAndAttributionHeaders(t *testing.T) {
	var gotAuth, gotReferer, gotTitle string
	var gotBody completionRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotReferer = r.Header.Get("HTTP-Referer")
		gotTitle = r.Header.Get("X-Title")
		json.NewDecoder(r.Body).Decode(&gotBody)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []any{
				map[string]any{"message": map[string]any{"role": "assistant", "content": "ok"}},
			},
		})
	}))
	defer server.Close()

	temp := 0.6
	client := NewCloud("sk-or-test-key",
		WithCloudBaseURL(server.URL),
		WithReferer("http://localhost"),
		WithTitle("Agent Gateway"),
	)

	raw, err := client.Complete(context.Background(), CompletionRequest{
		Model:          "arcee-ai/trinity-mini:free",
		Messages:       []domain.ChatMessage{{Role: domain.RoleUser, Content: "hi"}},
		Temperature:    &temp,
		ResponseFormat: JSONObjectFormat,
	})
	if err != nil {
		t.Fatalf("Complete() unexpected error: %v", err)
	}

	if gotAuth != "Bearer sk-or-test-key" {
		t.Errorf("Authorization = %q, want bearer key", gotAuth)
	}
	if gotReferer != "http://localhost" {
		t.Errorf("HTTP-Referer = %q, want http://localhost", gotReferer)
	}
	if gotTitle != "Agent Gateway" {
		t.Errorf("X-Title = %q, want Agent Gateway", gotTitle)
	}

	if gotBody.Model != "arcee-ai/trinity-mini:free" {
		t.Errorf("request model = %q, unexpected", gotBody.Model)
	}
	if gotBody.Temperature == nil || *gotBody.Temperature != 0.6 {
		t.Error("request temperature not forwarded")
	}
	if gotBody.ResponseFormat == nil || gotBody.ResponseFormat.Type != "json_object" {
		t.Error("request response_format not forwarded")
	}

	// Body is passed through untouched.
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("raw response is not valid JSON: %v", err)
	}
	if _, ok := doc["choices"]; !ok {
		t.Error("raw response missing choices")
	}
}

func TestCloud_OmitsOptionalFields(t *testing.T) {
	var rawBody map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&rawBody)
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer server.Close()

	client := NewCloud("key", WithCloudBaseURL(server.URL))

	_, err := client.Complete(context.Background(), CompletionRequest{
		Model:    "m",
		Messages: []domain.ChatMessage{{Role: domain.RoleUser, Content: "hi"}},
	})
	if err != nil {
		t.Fatalf("Complete() unexpected error: %v", err)
	}

	if _, present := rawBody["temperature"]; present {
		t.Error("temperature should be omitted when unset")
	}
	if _, present := rawBody["response_format"]; present {
		t.Error("response_format should be omitted when unset")
	}
}

func TestCloud_NonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"message":"invalid api key"}}`))
	}))
	defer server.Close()

	client := NewCloud("bad-key", WithCloudBaseURL(server.URL))

	_, err := client.Complete(context.Background(), CompletionRequest{
		Model:    "m",
		Messages: []domain.ChatMessage{{Role: domain.RoleUser, Content: "hi"}},
	})

	var provErr *Error
	if !errors.As(err, &provErr) {
		t.Fatalf("Complete() error = %v, want *provider.Error", err)
	}
	if provErr.Status != http.StatusUnauthorized {
		t.Errorf("Error.Status = %d, want 401", provErr.Status)
	}
}

func TestCloud_NonJSONBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>upstream timeout</html>"))
	}))
	defer server.Close()

	client := NewCloud("key", WithCloudBaseURL(server.URL))

	_, err := client.Complete(context.Background(), CompletionRequest{
		Model:    "m",
		Messages: []domain.ChatMessage{{Role: domain.RoleUser, Content: "hi"}},
	})

	var provErr *Error
	if !errors.As(err, &provErr) {
		t.Fatalf("Complete() error = %v, want *provider.Error", err)
	}
}
