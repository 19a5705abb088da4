package account

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/mslima/blog-core-go/internal/auth"
	"github.com/mslima/blog-core-go/pkg/result"
	"github.com/mslima/blog-core-go/pkg/validate"
)

const msgInternal = "Erro interno no servidor ao processar a requisição"

// Handler exposes HTTP endpoints for account operations.
type Handler struct {
	svc    *Service
	logger *zap.SugaredLogger
}

func NewHandler(svc *Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

// RegisterRequest is the payload for POST /v1/accounts. The password is
// generated server-side, never supplied.
type RegisterRequest struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		result.WriteFail(w, http.StatusBadRequest, "Requisição inválida")
		return
	}
	if msgs := validate.Check(req); len(msgs) > 0 {
		result.WriteFail(w, http.StatusBadRequest, msgs...)
		return
	}
	res, err := h.svc.Register(r.Context(), req.Name, req.Email)
	if err != nil {
		if err == ErrDuplicateEmail {
			result.WriteFail(w, http.StatusBadRequest, "Este E-mail já está cadastrado")
			return
		}
		h.logger.Errorw("register failed", "err", err)
		result.WriteFail(w, http.StatusInternalServerError, msgInternal)
		return
	}
	result.WriteOk(w, res)
}

// LoginRequest is the payload for POST /v1/accounts/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		result.WriteFail(w, http.StatusBadRequest, "Requisição inválida")
		return
	}
	if msgs := validate.Check(req); len(msgs) > 0 {
		result.WriteFail(w, http.StatusBadRequest, msgs...)
		return
	}
	token, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if err == ErrBadCredentials {
			result.WriteFail(w, http.StatusUnauthorized, auth.MsgBadCredentials)
			return
		}
		h.logger.Errorw("login failed", "err", err)
		result.WriteFail(w, http.StatusInternalServerError, msgInternal)
		return
	}
	result.WriteOk(w, token)
}

// UploadImageRequest carries the base64-encoded image, with or without a
// data-URI prefix.
type UploadImageRequest struct {
	Base64Image string `json:"base64Image" validate:"required"`
}

func (h *Handler) UploadImage(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFrom(r.Context())
	if !ok {
		result.WriteFail(w, http.StatusUnauthorized, auth.MsgBadCredentials)
		return
	}
	var req UploadImageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		result.WriteFail(w, http.StatusBadRequest, "Requisição inválida")
		return
	}
	if msgs := validate.Check(req); len(msgs) > 0 {
		result.WriteFail(w, http.StatusBadRequest, msgs...)
		return
	}
	if err := h.svc.UploadImage(r.Context(), claims.Name, req.Base64Image); err != nil {
		switch err {
		case ErrNotFound:
			result.WriteFail(w, http.StatusNotFound, "Usuário não encontrado")
		default:
			h.logger.Errorw("image upload failed", "err", err)
			result.WriteFail(w, http.StatusInternalServerError, msgInternal)
		}
		return
	}
	result.WriteOk[any](w, nil)
}
