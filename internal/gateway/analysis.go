// Package gateway orchestrates one chat or analysis turn.
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
)

// AnalysisGateway runs the academic-evaluation variant of the pipeline:
// it requests JSON-structured output and validates it against the
// analysis schema. Stateless; concurrent use is safe.
type AnalysisGateway struct {
	builder *prompt.Builder
	route   Route
	logger  *slog.Logger
}

// AnalysisGatewayOption is a functional option for configuring AnalysisGateway.
type AnalysisGatewayOption func(*AnalysisGateway)

// WithAnalysisLogger sets a custom logger.
func WithAnalysisLogger(logger *slog.Logger) AnalysisGatewayOption {
	return func(g *AnalysisGateway) {
		g.logger = logger
	}
}

// NewAnalysisGateway creates an AnalysisGateway using the given route.
func NewAnalysisGateway(builder *prompt.Builder, route Route, opts ...AnalysisGatewayOption) *AnalysisGateway {
	g := &AnalysisGateway{
		builder: builder,
		route:   route,
		logger:  slog.Default(),
	}

	for _, opt := range opts {
		opt(g)
	}

	return g
}

// Evaluate asks the evaluator persona for a structured class analysis of
// the given free-form text. Unlike Chat, failures are returned as errors;
// the HTTP handler maps them to a user-visible message via UserMessage
// while keeping the HTTP status successful.
func (g *AnalysisGateway) Evaluate(ctx context.Context, text string) (domain.Analysis, error) {
	if g.route.Client == nil {
		g.logger.Error("no provider route configured",
			slog.String("persona", string(domain.PersonaAcademicEvaluator)),
		)
		return domain.Analysis{}, &provider.Error{
			Provider: "none",
			Err:      errors.New("no provider route configured"),
		}
	}

	messages := g.builder.Build(domain.PersonaAcademicEvaluator, text)

	g.logger.Debug("dispatching",
		slog.String("persona", string(domain.PersonaAcademicEvaluator)),
		slog.String("provider", g.route.Client.Name()),
		slog.String("model", g.route.Model),
	)

	raw, err := g.route.Client.Complete(ctx, provider.CompletionRequest{
		Model:          g.route.Model,
		Messages:       messages,
		Temperature:    g.route.Temperature,
		ResponseFormat: provider.JSONObjectFormat,
	})
	if err != nil {
		g.logger.Error("provider dispatch failed",
			slog.String("provider", g.route.Client.Name()),
			slog.String("error", err.Error()),
		)
		return domain.Analysis{}, err
	}

	analysis, err := normalize.ExtractAnalysis(raw)
	if err != nil {
		g.logger.Warn("analysis normalization failed",
			slog.String("provider", g.route.Client.Name()),
			slog.String("error", err.Error()),
			slog.String("raw", security.Redact(string(raw))),
		)
		return domain.Analysis{}, err
	}

	return analysis, nil
}
