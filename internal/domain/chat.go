// Package domain contains the core business entities and value objects.
// These structs are framework-agnostic and represent the heart of the application.
package domain

// Role identifies the author of a chat message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Persona selects a system prompt and provider route for a chat interaction.
type Persona string

const (
	// PersonaSalesContent generates short persuasive marketing copy.
	PersonaSalesContent Persona = "sales-content"

	// PersonaTutor answers general education questions. It is also the
	// fallback when an unknown persona is requested.
	PersonaTutor Persona = "tutor"

	// PersonaAcademicEvaluator produces the structured class analysis.
	PersonaAcademicEvaluator Persona = "academic-evaluator"
)

// ChatMessage is a single role-tagged message in a conversation.
// Order is meaningful: a system message, if present, must come first.
type ChatMessage struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is a single inbound chat turn.
type ChatRequest struct {
	// Message is the user's text. Must be non-empty.
	Message string `json:"message"`

	// Persona selects the system prompt and provider route.
	Persona Persona `json:"persona,omitempty"`
}

// ChatReply is the normalized assistant reply returned to the client.
// It is produced exactly once per request and never partially filled.
type ChatReply struct {
	Role Role   `json:"role"`
	Text string `json:"response"`
}
