package licencias

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"licsim/internal/app/apiresp"

	"github.com/go-chi/chi/v5"
)

type catalogService interface {
	Effective(ctx context.Context) ([]LicenseType, error)
	Edit(ctx context.Context, id string, lt LicenseType) (*LicenseType, error)
	Reset(ctx context.Context) error
}

type Handler struct {
	svc catalogService
}

func NewHandler(svc catalogService) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	types, err := h.svc.Effective(r.Context())
	if err != nil {
		apiresp.WriteError(w, r, http.StatusInternalServerError, "internal error")
		return
	}
	apiresp.WriteData(w, r, http.StatusOK, types)
}

func (h *Handler) Edit(w http.ResponseWriter, r *http.Request) {
	var lt LicenseType
	if err := json.NewDecoder(r.Body).Decode(&lt); err != nil {
		apiresp.WriteError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := h.svc.Edit(r.Context(), chi.URLParam(r, "id"), lt)
	if err != nil {
		switch {
		case errors.Is(err, ErrTypeNotFound):
			apiresp.WriteError(w, r, http.StatusNotFound, "tipo de licencia no encontrado")
		case errors.Is(err, ErrInvalidType):
			apiresp.WriteError(w, r, http.StatusBadRequest, err.Error())
		default:
			apiresp.WriteError(w, r, http.StatusInternalServerError, "internal error")
		}
		return
	}
	apiresp.WriteData(w, r, http.StatusOK, updated)
}

func (h *Handler) Reset(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Reset(r.Context()); err != nil {
		apiresp.WriteError(w, r, http.StatusInternalServerError, "internal error")
		return
	}
	apiresp.WriteData(w, r, http.StatusOK, map[string]string{"status": "reset"})
}
