// Package prompt builds the ordered message sequence sent to a provider.
package prompt

import (
	"log/slog"

	"github.com/edulab/agent-gateway/internal/domain"
)

// Builder maps personas to their system prompt templates and produces the
// role-tagged message list for a single chat turn.
type Builder struct {
	prompts  map[domain.Persona]string
	fallback domain.Persona
	logger   *slog.Logger
}

// BuilderOption is a functional option for configuring Builder.
type BuilderOption func(*Builder)

// WithFallback sets the persona used when an unknown persona is requested.
func WithFallback(p domain.Persona) BuilderOption {
	return func(b *Builder) {
		b.fallback = p
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) BuilderOption {
	return func(b *Builder) {
		b.logger = logger
	}
}

// NewBuilder creates a Builder from a persona→prompt map.
// The map is copied; later mutation of the argument has no effect.
func NewBuilder(prompts map[domain.Persona]string, opts ...BuilderOption) *Builder {
	b := &Builder{
		prompts:  make(map[domain.Persona]string, len(prompts)),
		fallback: domain.PersonaTutor,
		logger:   slog.Default(),
	}
	for k, v := range prompts {
		b.prompts[k] = v
	}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

// Build returns the message sequence for one chat turn: an optional system
// message first, then the user message verbatim.
//
// An unknown persona falls back to the tutor-style prompt. The fallback is
// deliberate graceful degradation, logged so operators can spot clients
// sending bad persona values.
func (b *Builder) Build(persona domain.Persona, userMessage string) []domain.ChatMessage {
	system, ok := b.prompts[persona]
	if !ok {
		b.logger.Warn("unknown persona, falling back",
			slog.String("persona", string(persona)),
			slog.String("fallback", string(b.fallback)),
		)
		system = b.prompts[b.fallback]
	}

	messages := make([]domain.ChatMessage, 0, 2)
	if system != "" {
		messages = append(messages, domain.ChatMessage{
			Role:    domain.RoleSystem,
			Content: system,
		})
	}
	messages = append(messages, domain.ChatMessage{
		Role:    domain.RoleUser,
		Content: userMessage,
	})

	return messages
}

// Known reports whether a persona has a configured prompt.
func (b *Builder) Known(persona domain.Persona) bool {
	_, ok := b.prompts[persona]
	return ok
}
