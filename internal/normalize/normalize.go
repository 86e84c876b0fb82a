// Package normalize extracts canonical replies from raw provider responses.
//
// Different providers, and different response-format modes of the same
// provider, place the answer in different fields. The extraction here is an
// ordered fallback chain over the choices[0] element, tolerant of any
// malformed shape: it reports a typed error instead of panicking.
package normalize

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/edulab/agent-gateway/internal/domain"
)

var (
	// ErrEmptyReply means the provider replied but no text could be located.
	ErrEmptyReply = errors.New("provider reply contains no text")

	// ErrMalformedResponse means the response body shape is unrecognizable.
	ErrMalformedResponse = errors.New("provider response is malformed")

	// ErrMalformedJSON means the analysis text is not valid JSON.
	ErrMalformedJSON = errors.New("analysis text is not valid JSON")
)

// ExtractText locates the human-readable reply inside a raw provider
// response. The fallback chain is a strict priority order; each step is
// tried exhaustively before the next:
//
//  1. choices[0].message.content
//  2. choices[0].text
//  3. choices[0].response as a string
//  4. choices[0].response[0] when response is an array
//
// The first non-empty match wins and is returned trimmed. A missing or
// empty choices array, or any structural miss, yields ErrEmptyReply.
func ExtractText(raw []byte) (string, error) {
	first, err := firstChoice(raw)
	if err != nil {
		return "", err
	}

	if msg, ok := first["message"].(map[string]any); ok {
		if text, ok := nonEmptyString(msg["content"]); ok {
			return text, nil
		}
	}

	if text, ok := nonEmptyString(first["text"]); ok {
		return text, nil
	}

	switch resp := first["response"].(type) {
	case string:
		if text, ok := nonEmptyString(resp); ok {
			return text, nil
		}
	case []any:
		if len(resp) > 0 {
			if text, ok := nonEmptyString(resp[0]); ok {
				return text, nil
			}
		}
	}

	return "", ErrEmptyReply
}

// ExtractAnalysis pulls choices[0].message.content out of a raw provider
// response, parses it as JSON, and validates it against the analysis
// schema. Numeric strings are coerced to integers where safe; everything
// else is strict. Failure modes, in order: ErrEmptyReply (no content),
// ErrMalformedJSON (content does not parse), *domain.SchemaError (parsed
// value violates the schema).
func ExtractAnalysis(raw []byte) (domain.Analysis, error) {
	first, err := firstChoice(raw)
	if err != nil {
		return domain.Analysis{}, err
	}

	msg, ok := first["message"].(map[string]any)
	if !ok {
		return domain.Analysis{}, ErrEmptyReply
	}
	content, ok := nonEmptyString(msg["content"])
	if !ok {
		return domain.Analysis{}, ErrEmptyReply
	}

	if !json.Valid([]byte(content)) {
		return domain.Analysis{}, ErrMalformedJSON
	}

	var doc analysisDoc
	if err := json.Unmarshal([]byte(content), &doc); err != nil {
		// Valid JSON that does not fit the document structure at all
		// (e.g. students as a string) is a schema problem, not a parse one.
		return domain.Analysis{}, &domain.SchemaError{
			Field:  "document",
			Reason: err.Error(),
		}
	}

	analysis := doc.toDomain()
	if err := analysis.Validate(); err != nil {
		return domain.Analysis{}, err
	}

	return analysis, nil
}

// firstChoice parses the raw body and returns choices[0] as a generic map.
func firstChoice(raw []byte) (map[string]any, error) {
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, ErrMalformedResponse
	}

	choices, ok := doc["choices"].([]any)
	if !ok || len(choices) == 0 {
		return nil, ErrEmptyReply
	}

	first, ok := choices[0].(map[string]any)
	if !ok {
		return nil, ErrEmptyReply
	}

	return first, nil
}

// nonEmptyString returns v trimmed when it is a string with visible content.
func nonEmptyString(v any) (string, bool) {
	s, ok := v.(string)
	if !ok {
		return "", false
	}
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return "", false
	}
	return trimmed, true
}
