package account

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/mslima/blog-core-go/internal/auth"
)

func newTestHandler(t *testing.T) (*Handler, *Service) {
	t.Helper()
	store := newFakeStore()
	tokens := auth.NewTokenService("test-secret", time.Hour)
	svc := NewService(store, tokens, &fakeMailer{}, newFakeImageStore(), zap.NewNop().Sugar())
	return NewHandler(svc, zap.NewNop().Sugar()), svc
}

func postJSON(t *testing.T, h http.HandlerFunc, target string, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func TestRegisterHandler(t *testing.T) {
	t.Parallel()

	h, _ := newTestHandler(t)
	rec := postJSON(t, h.Register, "/v1/accounts", `{"name":"Alice","email":"alice@example.com"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d want 200, body %s", rec.Code, rec.Body)
	}

	var body struct {
		Data RegistrationResult `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Data.User != "alice@example.com" || body.Data.Password == "" {
		t.Fatalf("unexpected registration result: %+v", body.Data)
	}
}

func TestRegisterHandler_Validation(t *testing.T) {
	t.Parallel()

	h, _ := newTestHandler(t)
	rec := postJSON(t, h.Register, "/v1/accounts", `{"email":"not-an-email"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d want 400", rec.Code)
	}

	var body struct {
		Errors []string `json:"errors"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	// both fields reported, missing name does not suppress the email check
	if len(body.Errors) != 2 {
		t.Fatalf("expected 2 validation messages, got %v", body.Errors)
	}
	if body.Errors[0] != "O campo name é obrigatório." || body.Errors[1] != "E-mail inválido" {
		t.Fatalf("unexpected messages: %v", body.Errors)
	}
}

func TestRegisterHandler_DuplicateEmail(t *testing.T) {
	t.Parallel()

	h, _ := newTestHandler(t)
	payload := `{"name":"Alice","email":"alice@example.com"}`
	if rec := postJSON(t, h.Register, "/v1/accounts", payload); rec.Code != http.StatusOK {
		t.Fatalf("first register: got %d", rec.Code)
	}
	rec := postJSON(t, h.Register, "/v1/accounts", payload)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d want 400", rec.Code)
	}
	if !bytes.Contains(rec.Body.Bytes(), []byte("Este E-mail já está cadastrado")) {
		t.Fatalf("expected duplicate message, body %s", rec.Body)
	}
}

func TestLoginHandler_IdenticalBodiesForBothFailures(t *testing.T) {
	t.Parallel()

	h, svc := newTestHandler(t)
	if _, err := svc.Register(context.Background(), "Alice", "alice@example.com"); err != nil {
		t.Fatalf("Register error: %v", err)
	}

	unknown := postJSON(t, h.Login, "/v1/accounts/login",
		`{"email":"ghost@example.com","password":"whatever"}`)
	wrongPw := postJSON(t, h.Login, "/v1/accounts/login",
		`{"email":"alice@example.com","password":"wrong"}`)

	if unknown.Code != http.StatusUnauthorized || wrongPw.Code != http.StatusUnauthorized {
		t.Fatalf("statuses: %d / %d, want 401 both", unknown.Code, wrongPw.Code)
	}
	if !bytes.Equal(unknown.Body.Bytes(), wrongPw.Body.Bytes()) {
		t.Fatalf("bodies differ:\n%s\n%s", unknown.Body, wrongPw.Body)
	}
}

func TestLoginHandler_Success(t *testing.T) {
	t.Parallel()

	h, svc := newTestHandler(t)
	res, err := svc.Register(context.Background(), "Alice", "alice@example.com")
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}

	rec := postJSON(t, h.Login, "/v1/accounts/login",
		`{"email":"alice@example.com","password":`+mustJSON(t, res.Password)+`}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, body %s", rec.Code, rec.Body)
	}

	var body struct {
		Data string `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Data == "" {
		t.Fatalf("expected token in data")
	}
}

func TestUploadImageHandler_NoClaims(t *testing.T) {
	t.Parallel()

	h, _ := newTestHandler(t)
	rec := postJSON(t, h.UploadImage, "/v1/accounts/upload-image", `{"base64Image":"aGVsbG8="}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status: got %d want 401", rec.Code)
	}
}

func mustJSON(t *testing.T, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return string(b)
}
