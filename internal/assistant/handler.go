package assistant

import (
	"encoding/json"
	"net/http"

	"licsim/internal/app/apiresp"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

type draftRequest struct {
	Question      string `json:"question"`
	CorrectOption string `json:"correctOption"`
}

func (h *Handler) DraftExplanation(w http.ResponseWriter, r *http.Request) {
	var req draftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apiresp.WriteError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	draft, err := h.svc.DraftExplanation(r.Context(), req.Question, req.CorrectOption)
	if err != nil {
		apiresp.WriteError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	apiresp.WriteData(w, r, http.StatusOK, draft)
}
