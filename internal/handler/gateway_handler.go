// Package handler provides the HTTP handlers for the agent gateway.
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/edulab/agent-gateway/internal/directory"
	"github.com/edulab/agent-gateway/internal/domain"
	"github.com/edulab/agent-gateway/internal/gateway"
	"github.com/edulab/agent-gateway/internal/ui"
)

// GatewayHandler wires the chat and analysis gateways and the student
// directory to the HTTP surface.
type GatewayHandler struct {
	chat     *gateway.ChatGateway
	analysis *gateway.AnalysisGateway
	students *directory.Directory
	cache    *ReplyCache
	logger   *slog.Logger
}

// GatewayHandlerOption is a functional option for configuring GatewayHandler.
type GatewayHandlerOption func(*GatewayHandler)

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) GatewayHandlerOption {
	return func(h *GatewayHandler) {
		h.logger = logger
	}
}

// WithReplyCache attaches a reply cache whose stats show up in /health.
func WithReplyCache(cache *ReplyCache) GatewayHandlerOption {
	return func(h *GatewayHandler) {
		h.cache = cache
	}
}

// NewGatewayHandler creates a GatewayHandler.
func NewGatewayHandler(
	chat *gateway.ChatGateway,
	analysis *gateway.AnalysisGateway,
	students *directory.Directory,
	opts ...GatewayHandlerOption,
) *GatewayHandler {
	h := &GatewayHandler{
		chat:     chat,
		analysis: analysis,
		students: students,
		logger:   slog.Default(),
	}

	for _, opt := range opts {
		opt(h)
	}

	return h
}

// chatRequestBody is the POST /chat request body.
type chatRequestBody struct {
	Message string `json:"message" binding:"required"`
	Persona string `json:"persona"`
}

// valuationRequestBody is the POST /valuation request body.
type valuationRequestBody struct {
	Text string `json:"text" binding:"required"`
}

// HandleChat handles POST /chat.
// Body: {message, persona?} → {role:"assistant", response}.
// Pipeline failures degrade to a placeholder reply with status 200.
func (h *GatewayHandler) HandleChat(c *gin.Context) {
	var body chatRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "message is required"})
		return
	}

	reply := h.chat.Chat(c.Request.Context(), domain.ChatRequest{
		Message: body.Message,
		Persona: domain.Persona(body.Persona),
	})

	// Degraded placeholder replies must not be cached: the provider may
	// recover long before the cache TTL expires.
	if gateway.IsPlaceholder(reply.Text) {
		c.Set("reply_degraded", true)
	}

	promptTokens := EstimateTokens(body.Message)
	replyTokens := EstimateTokens(reply.Text)
	RecordUsage(promptTokens, replyTokens)
	ui.PrintUsage(promptTokens, replyTokens, body.Persona)

	h.logger.Info("chat served",
		slog.String("persona", body.Persona),
		slog.Int("prompt_tokens", promptTokens),
		slog.Int("reply_tokens", replyTokens),
	)

	c.JSON(http.StatusOK, reply)
}

// HandleValuation handles POST /valuation.
// Body: {text} → {valuation: <JSON string>} on success, {error: text} on
// any pipeline failure. The status stays 200 either way: an evaluative UI
// should render a warning, not an internal-server error.
func (h *GatewayHandler) HandleValuation(c *gin.Context) {
	var body valuationRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "text is required"})
		return
	}

	analysis, err := h.analysis.Evaluate(c.Request.Context(), body.Text)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"error": gateway.UserMessage(err)})
		return
	}

	// The client contract carries the analysis as a JSON text value.
	encoded, err := json.Marshal(analysis)
	if err != nil {
		h.logger.Error("failed to encode analysis", slog.String("error", err.Error()))
		c.JSON(http.StatusOK, gin.H{"error": gateway.MsgMalformedResponse})
		return
	}

	c.JSON(http.StatusOK, gin.H{"valuation": string(encoded)})
}

// HandleStudents handles GET /students.
func (h *GatewayHandler) HandleStudents(c *gin.Context) {
	c.JSON(http.StatusOK, h.students.List())
}

// HandleStudentByID handles GET /students/:id.
func (h *GatewayHandler) HandleStudentByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid student id"})
		return
	}

	student, ok := h.students.Get(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "student not found"})
		return
	}

	c.JSON(http.StatusOK, student)
}

// HandleRoot handles GET /.
// Liveness probe kept compatible with the original frontend.
func (h *GatewayHandler) HandleRoot(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "Backend running"})
}

// HandleHealth handles GET /health.
// Returns gateway health plus cache and usage statistics.
func (h *GatewayHandler) HandleHealth(c *gin.Context) {
	resp := gin.H{
		"status":   "healthy",
		"students": len(h.students.List()),
	}

	if h.cache != nil {
		hits, misses, size := h.cache.Stats()
		resp["cache"] = gin.H{
			"hits":    hits,
			"misses":  misses,
			"entries": size,
		}
	}

	promptTokens, replyTokens := UsageTotals()
	resp["usage"] = gin.H{
		"prompt_tokens": promptTokens,
		"reply_tokens":  replyTokens,
	}

	c.JSON(http.StatusOK, resp)
}
