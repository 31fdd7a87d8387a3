package auth

import (
	"encoding/json"
	"errors"
	"net/http"

	"licsim/internal/app/apiresp"
)

type Handler struct {
	mgr *Manager
}

type adminLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func NewHandler(mgr *Manager) *Handler {
	return &Handler{mgr: mgr}
}

func (h *Handler) AdminLogin(w http.ResponseWriter, r *http.Request) {
	var req adminLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apiresp.WriteError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.mgr.LoginAdmin(w, r, req.Username, req.Password); err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			apiresp.WriteError(w, r, http.StatusUnauthorized, "usuario o contraseña incorrectos")
			return
		}
		apiresp.WriteError(w, r, http.StatusInternalServerError, "internal error")
		return
	}
	apiresp.WriteData(w, r, http.StatusOK, map[string]string{"status": "logged_in"})
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.mgr.Logout(w, r); err != nil {
		apiresp.WriteError(w, r, http.StatusInternalServerError, "internal error")
		return
	}
	apiresp.WriteData(w, r, http.StatusOK, map[string]string{"status": "logged_out"})
}
