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
)

// DefaultCloudBaseURL is the default cloud completions endpoint.
const DefaultCloudBaseURL = "https://openrouter.ai/api/v1/chat/completions"

// Cloud talks to an OpenAI-compatible cloud completions endpoint with a
// bearer API key. The returned body already follows the variable
// choices[...] structure, so it is passed through untouched.
type Cloud struct {
	apiKey     string
	baseURL    string
	referer    string
	title      string
	httpClient *http.Client
}

// CloudOption is a functional option for configuring Cloud.
type CloudOption func(*Cloud)

// WithCloudBaseURL sets a custom completions endpoint.
func WithCloudBaseURL(url string) CloudOption {
	return func(c *Cloud) {
		if url != "" {
			c.baseURL = strings.TrimSuffix(url, "/")
		}
	}
}

// WithReferer sets the HTTP-Referer header sent to the provider.
func WithReferer(referer string) CloudOption {
	return func(c *Cloud) {
		c.referer = referer
	}
}

// WithTitle sets the X-Title header sent to the provider.
func WithTitle(title string) CloudOption {
	return func(c *Cloud) {
		c.title = title
	}
}

// WithCloudHTTPClient sets a custom HTTP client.
func WithCloudHTTPClient(client *http.Client) CloudOption {
	return func(c *Cloud) {
		c.httpClient = client
	}
}

// NewCloud creates a Cloud client with the given API key.
func NewCloud(apiKey string, opts ...CloudOption) *Cloud {
	c := &Cloud{
		apiKey:  apiKey,
		baseURL: DefaultCloudBaseURL,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Name returns the provider identifier.
func (c *Cloud) Name() string {
	return "cloud"
}

// Complete posts the completion request and returns the raw JSON body.
func (c *Cloud) Complete(ctx context.Context, req CompletionRequest) (RawResponse, error) {
	body, err := json.Marshal(completionRequest{
		Model:          req.Model,
		Messages:       toWireMessages(req.Messages),
		Temperature:    req.Temperature,
		ResponseFormat: req.ResponseFormat,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal cloud request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create http request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	if c.referer != "" {
		httpReq.Header.Set("HTTP-Referer", c.referer)
	}
	if c.title != "" {
		httpReq.Header.Set("X-Title", c.title)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &Error{Provider: c.Name(), Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Provider: c.Name(), Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &Error{
			Provider: c.Name(),
			Status:   resp.StatusCode,
			Err:      fmt.Errorf("unexpected status %s: %s", resp.Status, truncateBody(respBody)),
		}
	}

	if !json.Valid(respBody) {
		return nil, &Error{
			Provider: c.Name(),
			Status:   resp.StatusCode,
			Err:      fmt.Errorf("response body is not valid JSON"),
		}
	}

	return respBody, nil
}
