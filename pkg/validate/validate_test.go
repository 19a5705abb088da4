package validate

import (
	"strings"
	"testing"
)

type editorPayload struct {
	Name string `json:"name" validate:"required,min=3,max=80"`
	Slug string `json:"slug" validate:"required"`
}

type loginPayload struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func TestCheck_Valid(t *testing.T) {
	t.Parallel()

	if msgs := Check(editorPayload{Name: "Tech", Slug: "tech"}); len(msgs) != 0 {
		t.Fatalf("expected no messages, got %v", msgs)
	}
}

func TestCheck_RequiredMessage(t *testing.T) {
	t.Parallel()

	msgs := Check(editorPayload{Slug: "tech"})
	if len(msgs) != 1 {
		t.Fatalf("expected 1 message, got %v", msgs)
	}
	if msgs[0] != "O campo name é obrigatório." {
		t.Fatalf("unexpected message: %q", msgs[0])
	}
}

func TestCheck_CollectsAllFields(t *testing.T) {
	t.Parallel()

	// one field failing must not suppress the other
	msgs := Check(editorPayload{})
	if len(msgs) != 2 {
		t.Fatalf("expected 2 messages, got %v", msgs)
	}
	if msgs[0] != "O campo name é obrigatório." {
		t.Fatalf("field order broken, first message: %q", msgs[0])
	}
	if msgs[1] != "O campo slug é obrigatório." {
		t.Fatalf("second message: %q", msgs[1])
	}
}

func TestCheck_MinLength(t *testing.T) {
	t.Parallel()

	msgs := Check(editorPayload{Name: "ab", Slug: "ab"})
	if len(msgs) != 1 {
		t.Fatalf("expected 1 message, got %v", msgs)
	}
	if !strings.Contains(msgs[0], "name") || !strings.Contains(msgs[0], "3") {
		t.Fatalf("min message should name the field and the bound: %q", msgs[0])
	}
}

func TestCheck_EmailFormat(t *testing.T) {
	t.Parallel()

	msgs := Check(loginPayload{Email: "not-an-email", Password: "x"})
	if len(msgs) != 1 || msgs[0] != "E-mail inválido" {
		t.Fatalf("unexpected messages: %v", msgs)
	}
}
