package category

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
)

// mux mirrors how the router mounts the handler, so path values resolve.
func newTestMux(t *testing.T) (*http.ServeMux, *fakeStore) {
	t.Helper()
	store := newFakeStore()
	h := NewHandler(NewService(store, time.Hour), zap.NewNop().Sugar())

	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/categories", h.List)
	mux.HandleFunc("GET /v1/categories/{id}", h.Get)
	mux.HandleFunc("POST /v1/categories", h.Create)
	mux.HandleFunc("PUT /v1/categories/{id}", h.Update)
	mux.HandleFunc("DELETE /v1/categories/{id}", h.Delete)
	return mux, store
}

func do(t *testing.T, mux *http.ServeMux, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func TestCreateAndGet(t *testing.T) {
	t.Parallel()

	mux, _ := newTestMux(t)
	rec := do(t, mux, http.MethodPost, "/v1/categories", `{"name":"Tech","slug":"TECH"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status: got %d, body %s", rec.Code, rec.Body)
	}
	if loc := rec.Header().Get("Location"); loc != "v1/categories/1" {
		t.Fatalf("location header: %q", loc)
	}

	rec = do(t, mux, http.MethodGet, "/v1/categories/1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("get status: got %d", rec.Code)
	}
	var body struct {
		Data struct {
			ID   int64  `json:"id"`
			Name string `json:"name"`
			Slug string `json:"slug"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Data.Name != "Tech" || body.Data.Slug != "tech" {
		t.Fatalf("unexpected category: %+v", body.Data)
	}
}

func TestCreate_NameTooShort(t *testing.T) {
	t.Parallel()

	mux, _ := newTestMux(t)
	rec := do(t, mux, http.MethodPost, "/v1/categories", `{"name":"ab","slug":"ab"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d want 400", rec.Code)
	}
	var body struct {
		Errors []string `json:"errors"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Errors) == 0 {
		t.Fatalf("expected validation errors")
	}
}

func TestGet_NotFound(t *testing.T) {
	t.Parallel()

	mux, _ := newTestMux(t)
	rec := do(t, mux, http.MethodGet, "/v1/categories/42", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status: got %d want 404", rec.Code)
	}
	if !bytes.Contains(rec.Body.Bytes(), []byte("Categoria não encontrada.")) {
		t.Fatalf("expected not-found message, body %s", rec.Body)
	}
}

func TestUpdate_NotFound(t *testing.T) {
	t.Parallel()

	mux, _ := newTestMux(t)
	rec := do(t, mux, http.MethodPut, "/v1/categories/42", `{"name":"Valid Name","slug":"valid"}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status: got %d want 404", rec.Code)
	}
	if !bytes.Contains(rec.Body.Bytes(), []byte("Categoria não encontrada.")) {
		t.Fatalf("expected not-found message, body %s", rec.Body)
	}
}

func TestDelete(t *testing.T) {
	t.Parallel()

	mux, store := newTestMux(t)
	if rec := do(t, mux, http.MethodPost, "/v1/categories", `{"name":"Tech","slug":"tech"}`); rec.Code != http.StatusCreated {
		t.Fatalf("create status: %d", rec.Code)
	}

	rec := do(t, mux, http.MethodDelete, "/v1/categories/1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("delete status: got %d", rec.Code)
	}
	if len(store.categories) != 0 {
		t.Fatalf("category not removed")
	}

	rec = do(t, mux, http.MethodDelete, "/v1/categories/1", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("second delete: got %d want 404", rec.Code)
	}
}

func TestList_EmptyTableKeepsDataKey(t *testing.T) {
	t.Parallel()

	mux, _ := newTestMux(t)
	rec := do(t, mux, http.MethodGet, "/v1/categories", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d", rec.Code)
	}
	var body map[string]json.RawMessage
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	raw, ok := body["data"]
	if !ok {
		t.Fatalf("empty listing dropped the data key: %q", rec.Body.String())
	}
	if string(raw) != "[]" {
		t.Fatalf("data: got %s want []", raw)
	}
}

func TestList_ErrorIsGeneric(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	store.listErr = errTest
	h := NewHandler(NewService(store, time.Hour), zap.NewNop().Sugar())

	rec := httptest.NewRecorder()
	h.List(rec, httptest.NewRequest(http.MethodGet, "/v1/categories", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status: got %d want 500", rec.Code)
	}
	if bytes.Contains(rec.Body.Bytes(), []byte(errTest.Error())) {
		t.Fatalf("internal error text leaked: %s", rec.Body)
	}
	if !bytes.Contains(rec.Body.Bytes(), []byte("Erro interno no servidor ao processar a requisição.")) {
		t.Fatalf("expected generic message, body %s", rec.Body)
	}
}
