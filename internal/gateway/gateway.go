// Package gateway orchestrates one chat or analysis turn:
// prompt building, provider dispatch, and response normalization.
package gateway

import (
	"context"
	"errors"
	"log/slog"

	"github.com/edulab/agent-gateway/internal/domain"
	"github.com/edulab/agent-gateway/internal/normalize"
	"github.com/edulab/agent-gateway/internal/prompt"
	"github.com/edulab/agent-gateway/internal/provider"
	"github.com/edulab/agent-gateway/internal/security"
	"github.com/edulab/agent-gateway/internal/ui"
)

// Route binds a persona to a provider client and model options.
type Route struct {
	Client      provider.Client
	Model       string
	Temperature *float64
}

// ChatGateway handles a single chat turn. It holds no mutable state across
// requests; concurrent use is safe.
type ChatGateway struct {
	builder *prompt.Builder
	routes  map[domain.Persona]Route
	def     domain.Persona
	logger  *slog.Logger
}

// ChatGatewayOption is a functional option for configuring ChatGateway.
type ChatGatewayOption func(*ChatGateway)

// WithChatLogger sets a custom logger.
func WithChatLogger(logger *slog.Logger) ChatGatewayOption {
	return func(g *ChatGateway) {
		g.logger = logger
	}
}

// NewChatGateway creates a ChatGateway with the given persona routes.
// Personas without a route use the default persona's route.
func NewChatGateway(builder *prompt.Builder, routes map[domain.Persona]Route, opts ...ChatGatewayOption) *ChatGateway {
	g := &ChatGateway{
		builder: builder,
		routes:  routes,
		def:     domain.PersonaTutor,
		logger:  slog.Default(),
	}

	for _, opt := range opts {
		opt(g)
	}

	return g
}

// Chat runs one request through the pipeline and always returns a reply:
// provider and normalization failures degrade to a placeholder warning text
// instead of an error, so the HTTP boundary never surfaces a stack trace.
// Diagnostic detail goes to the log only.
//
// The inbound context is propagated to the outbound call, so a dropped
// client connection cancels the in-flight provider request.
func (g *ChatGateway) Chat(ctx context.Context, req domain.ChatRequest) domain.ChatReply {
	persona := req.Persona
	if persona == "" {
		persona = g.def
	}

	route, ok := g.routes[persona]
	if !ok {
		route = g.routes[g.def]
	}
	if route.Client == nil {
		g.logger.Error("no provider route configured",
			slog.String("persona", string(persona)),
		)
		return domain.ChatReply{Role: domain.RoleAssistant, Text: MsgProviderUnavailable}
	}

	messages := g.builder.Build(persona, req.Message)

	g.logger.Debug("dispatching",
		slog.String("persona", string(persona)),
		slog.String("provider", route.Client.Name()),
		slog.String("model", route.Model),
	)

	raw, err := route.Client.Complete(ctx, provider.CompletionRequest{
		Model:       route.Model,
		Messages:    messages,
		Temperature: route.Temperature,
	})
	if err != nil {
		g.logger.Error("provider dispatch failed",
			slog.String("persona", string(persona)),
			slog.String("provider", route.Client.Name()),
			slog.String("error", err.Error()),
		)
		ui.PrintFallback("provider " + route.Client.Name() + " unavailable, returning placeholder reply")
		return domain.ChatReply{Role: domain.RoleAssistant, Text: UserMessage(err)}
	}

	text, err := normalize.ExtractText(raw)
	if err != nil {
		g.logger.Warn("normalization failed",
			slog.String("persona", string(persona)),
			slog.String("provider", route.Client.Name()),
			slog.String("error", err.Error()),
			slog.String("raw", security.Redact(string(raw))),
		)
		ui.PrintFallback("could not normalize " + route.Client.Name() + " reply, returning placeholder")
		return domain.ChatReply{Role: domain.RoleAssistant, Text: UserMessage(err)}
	}

	return domain.ChatReply{Role: domain.RoleAssistant, Text: text}
}

// Placeholder warning texts returned to the user in place of errors.
const (
	MsgProviderUnavailable = "⚠️ The AI service is currently unreachable. Please try again later."
	MsgEmptyReply          = "⚠️ The AI did not return any text."
	MsgMalformedResponse   = "⚠️ Failed to parse the AI response."
	MsgMalformedJSON       = "⚠️ The AI did not return valid JSON."
	MsgSchemaViolation     = "⚠️ The AI evaluation did not match the expected format."
)

// IsPlaceholder reports whether a reply text is one of the degraded
// placeholder warnings rather than real provider output. The HTTP layer
// uses it to keep failure replies out of the response cache.
func IsPlaceholder(text string) bool {
	switch text {
	case MsgProviderUnavailable, MsgEmptyReply, MsgMalformedResponse, MsgMalformedJSON, MsgSchemaViolation:
		return true
	default:
		return false
	}
}

// UserMessage maps an error from the pipeline to its user-visible
// placeholder text. Unknown errors map to the malformed-response text.
func UserMessage(err error) string {
	var provErr *provider.Error
	var schemaErr *domain.SchemaError

	switch {
	case errors.As(err, &provErr):
		return MsgProviderUnavailable
	case errors.Is(err, normalize.ErrEmptyReply):
		return MsgEmptyReply
	case errors.Is(err, normalize.ErrMalformedJSON):
		return MsgMalformedJSON
	case errors.As(err, &schemaErr):
		return MsgSchemaViolation
	default:
		return MsgMalformedResponse
	}
}
