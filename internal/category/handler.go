package category

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/mslima/blog-core-go/pkg/result"
	"github.com/mslima/blog-core-go/pkg/validate"
)

const (
	msgNotFound     = "Categoria não encontrada."
	msgInternal     = "Erro interno no servidor ao processar a requisição."
	msgCreateFailed = "Erro interno no servidor ao processar nova categoria."
	msgUpdateFailed = "Não foi possível atualizar a categoria."
	msgDeleteFailed = "Não foi possível excluir a categoria."
)

// Handler exposes the category CRUD endpoints.
type Handler struct {
	svc    *Service
	logger *zap.SugaredLogger
}

func NewHandler(svc *Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

// EditorCategoryRequest is the payload for create and update.
type EditorCategoryRequest struct {
	Name string `json:"name" validate:"required,min=3,max=80"`
	Slug string `json:"slug" validate:"required"`
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	out, err := h.svc.List(r.Context())
	if err != nil {
		h.logger.Errorw("category list failed", "err", err)
		result.WriteFail(w, http.StatusInternalServerError, msgInternal)
		return
	}
	result.WriteOk(w, out)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		result.WriteFail(w, http.StatusNotFound, msgNotFound)
		return
	}
	c, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if err == ErrNotFound {
			result.WriteFail(w, http.StatusNotFound, msgNotFound)
			return
		}
		h.logger.Errorw("category get failed", "id", id, "err", err)
		result.WriteFail(w, http.StatusInternalServerError, msgInternal)
		return
	}
	result.WriteOk(w, c)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req EditorCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		result.WriteFail(w, http.StatusBadRequest, "Requisição inválida")
		return
	}
	if msgs := validate.Check(req); len(msgs) > 0 {
		result.WriteFail(w, http.StatusBadRequest, msgs...)
		return
	}
	c, err := h.svc.Create(r.Context(), req.Name, req.Slug)
	if err != nil {
		h.logger.Errorw("category create failed", "err", err)
		result.WriteFail(w, http.StatusInternalServerError, msgCreateFailed)
		return
	}
	w.Header().Set("Location", fmt.Sprintf("v1/categories/%d", c.ID))
	result.Write(w, http.StatusCreated, result.Ok(c))
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		result.WriteFail(w, http.StatusNotFound, msgNotFound)
		return
	}
	var req EditorCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		result.WriteFail(w, http.StatusBadRequest, "Requisição inválida")
		return
	}
	if msgs := validate.Check(req); len(msgs) > 0 {
		result.WriteFail(w, http.StatusBadRequest, msgs...)
		return
	}
	c, err := h.svc.Update(r.Context(), id, req.Name, req.Slug)
	if err != nil {
		if err == ErrNotFound {
			result.WriteFail(w, http.StatusNotFound, msgNotFound)
			return
		}
		h.logger.Errorw("category update failed", "id", id, "err", err)
		result.WriteFail(w, http.StatusInternalServerError, msgUpdateFailed)
		return
	}
	result.WriteOk(w, c)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		result.WriteFail(w, http.StatusNotFound, msgNotFound)
		return
	}
	c, err := h.svc.Delete(r.Context(), id)
	if err != nil {
		if err == ErrNotFound {
			result.WriteFail(w, http.StatusNotFound, msgNotFound)
			return
		}
		h.logger.Errorw("category delete failed", "id", id, "err", err)
		result.WriteFail(w, http.StatusInternalServerError, msgDeleteFailed)
		return
	}
	result.WriteOk(w, c)
}

func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
