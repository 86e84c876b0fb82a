package prompt

import (
	"testing"

	"github.com/edulab/agent-gateway/internal/domain"
)

func testPrompts() map[domain.Persona]string {
	return map[domain.Persona]string{
		domain.PersonaTutor:        "You are a friendly tutor.",
		domain.PersonaSalesContent: "You write persuasive sales copy.",
	}
}

func TestBuild_SystemFirstUserVerbatim(t *testing.T) {
	b := NewBuilder(testPrompts())

	messages := b.Build(domain.PersonaSalesContent, "  promo for new course  ")

	if len(messages) != 2 {
		t.Fatalf("len(messages) = %d, want 2", len(messages))
	}
	if messages[0].Role != domain.RoleSystem {
		t.Errorf("messages[0].Role = %s, want system", messages[0].Role)
	}
	if messages[0].Content != "You write persuasive sales copy." {
		t.Errorf("messages[0].Content = %q, unexpected system prompt", messages[0].Content)
	}
	if messages[1].Role != domain.RoleUser {
		t.Errorf("messages[1].Role = %s, want user", messages[1].Role)
	}
	// User message passes through verbatim, whitespace included.
	if messages[1].Content != "  promo for new course  " {
		t.Errorf("messages[1].Content = %q, want the input verbatim", messages[1].Content)
	}
}

func TestBuild_UnknownPersonaFallsBack(t *testing.T) {
	b := NewBuilder(testPrompts())

	messages := b.Build(domain.Persona("pirate"), "hello")

	if len(messages) != 2 {
		t.Fatalf("len(messages) = %d, want 2", len(messages))
	}
	if messages[0].Content != "You are a friendly tutor." {
		t.Errorf("fallback system prompt = %q, want the tutor prompt", messages[0].Content)
	}
}

func TestBuild_EmptyPromptOmitsSystemMessage(t *testing.T) {
	b := NewBuilder(map[domain.Persona]string{
		domain.PersonaTutor: "",
	})

	messages := b.Build(domain.PersonaTutor, "just a question")

	if len(messages) != 1 {
		t.Fatalf("len(messages) = %d, want 1 (no system message)", len(messages))
	}
	if messages[0].Role != domain.RoleUser {
		t.Errorf("messages[0].Role = %s, want user", messages[0].Role)
	}
}

func TestBuild_CustomFallback(t *testing.T) {
	b := NewBuilder(testPrompts(), WithFallback(domain.PersonaSalesContent))

	messages := b.Build(domain.Persona("nope"), "hi")

	if messages[0].Content != "You write persuasive sales copy." {
		t.Errorf("fallback prompt = %q, want the sales prompt", messages[0].Content)
	}
}

func TestKnown(t *testing.T) {
	b := NewBuilder(testPrompts())

	if !b.Known(domain.PersonaTutor) {
		t.Error("Known(tutor) = false, want true")
	}
	if b.Known(domain.Persona("pirate")) {
		t.Error("Known(pirate) = true, want false")
	}
}
