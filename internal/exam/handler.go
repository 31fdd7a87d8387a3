package exam

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"licsim/internal/app/apiresp"
	"licsim/internal/auth"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	svc  examService
	bank questionBank
}

type examService interface {
	StartSession(ctx context.Context, tramiteID string) (*SessionView, error)
	GetSession(ctx context.Context, tramiteID, sessionID string) (*SessionView, error)
	SaveAnswer(ctx context.Context, tramiteID, sessionID, questionID string, selected int) error
	Submit(ctx context.Context, tramiteID, sessionID string) (*Result, error)
	SessionResult(ctx context.Context, tramiteID, sessionID string) (*Result, error)
}

type questionBank interface {
	Effective(ctx context.Context) ([]Question, error)
	Add(ctx context.Context, q Question) (*Question, error)
	Edit(ctx context.Context, id string, q Question) (*Question, error)
	Delete(ctx context.Context, id string) error
	Reset(ctx context.Context) error
}

type saveAnswerRequest struct {
	SelectedAnswer int `json:"selectedAnswer"`
}

func NewHandler(svc examService, bank questionBank) *Handler {
	return &Handler{svc: svc, bank: bank}
}

func (h *Handler) Start(w http.ResponseWriter, r *http.Request) {
	tramiteID, ok := auth.CurrentTramiteID(r.Context())
	if !ok {
		apiresp.WriteError(w, r, http.StatusUnauthorized, "unauthorized")
		return
	}

	view, err := h.svc.StartSession(r.Context(), tramiteID)
	if err != nil {
		switch {
		case errors.Is(err, ErrCaseNotFound):
			apiresp.WriteError(w, r, http.StatusNotFound, "trámite no encontrado")
		case errors.Is(err, ErrExamNotAllowed):
			apiresp.WriteError(w, r, http.StatusConflict, "el trámite no permite presentar el examen en su estado actual")
		default:
			apiresp.WriteError(w, r, http.StatusInternalServerError, "internal error")
		}
		return
	}
	apiresp.WriteData(w, r, http.StatusCreated, view)
}

func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	tramiteID, ok := auth.CurrentTramiteID(r.Context())
	if !ok {
		apiresp.WriteError(w, r, http.StatusUnauthorized, "unauthorized")
		return
	}

	view, err := h.svc.GetSession(r.Context(), tramiteID, chi.URLParam(r, "id"))
	if err != nil {
		switch {
		case errors.Is(err, ErrSessionNotFound):
			apiresp.WriteError(w, r, http.StatusNotFound, "sesión de examen no encontrada")
		default:
			apiresp.WriteError(w, r, http.StatusInternalServerError, "internal error")
		}
		return
	}
	apiresp.WriteData(w, r, http.StatusOK, view)
}

func (h *Handler) SaveAnswer(w http.ResponseWriter, r *http.Request) {
	tramiteID, ok := auth.CurrentTramiteID(r.Context())
	if !ok {
		apiresp.WriteError(w, r, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req saveAnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apiresp.WriteError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	err := h.svc.SaveAnswer(r.Context(), tramiteID, chi.URLParam(r, "id"), chi.URLParam(r, "questionID"), req.SelectedAnswer)
	if err != nil {
		switch {
		case errors.Is(err, ErrSessionNotFound):
			apiresp.WriteError(w, r, http.StatusNotFound, "sesión de examen no encontrada")
		case errors.Is(err, ErrQuestionNotInSession):
			apiresp.WriteError(w, r, http.StatusNotFound, "la pregunta no pertenece a esta sesión")
		case errors.Is(err, ErrSessionNotEditable):
			apiresp.WriteError(w, r, http.StatusConflict, "la sesión ya no admite respuestas")
		case errors.Is(err, ErrInvalidInput):
			apiresp.WriteError(w, r, http.StatusBadRequest, err.Error())
		default:
			apiresp.WriteError(w, r, http.StatusInternalServerError, "internal error")
		}
		return
	}
	apiresp.WriteData(w, r, http.StatusOK, map[string]string{"status": "saved"})
}

func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	tramiteID, ok := auth.CurrentTramiteID(r.Context())
	if !ok {
		apiresp.WriteError(w, r, http.StatusUnauthorized, "unauthorized")
		return
	}

	result, err := h.svc.Submit(r.Context(), tramiteID, chi.URLParam(r, "id"))
	if err != nil {
		switch {
		case errors.Is(err, ErrSessionNotFound):
			apiresp.WriteError(w, r, http.StatusNotFound, "sesión de examen no encontrada")
		default:
			apiresp.WriteError(w, r, http.StatusInternalServerError, "internal error")
		}
		return
	}
	apiresp.WriteData(w, r, http.StatusOK, result)
}

func (h *Handler) Result(w http.ResponseWriter, r *http.Request) {
	tramiteID, ok := auth.CurrentTramiteID(r.Context())
	if !ok {
		apiresp.WriteError(w, r, http.StatusUnauthorized, "unauthorized")
		return
	}

	result, err := h.svc.SessionResult(r.Context(), tramiteID, chi.URLParam(r, "id"))
	if err != nil {
		switch {
		case errors.Is(err, ErrSessionNotFound):
			apiresp.WriteError(w, r, http.StatusNotFound, "sesión de examen no encontrada")
		case errors.Is(err, ErrSessionNotFinal):
			apiresp.WriteError(w, r, http.StatusConflict, "la sesión sigue en curso")
		default:
			apiresp.WriteError(w, r, http.StatusInternalServerError, "internal error")
		}
		return
	}
	apiresp.WriteData(w, r, http.StatusOK, result)
}

// Admin question bank endpoints.

func (h *Handler) ListQuestions(w http.ResponseWriter, r *http.Request) {
	questions, err := h.bank.Effective(r.Context())
	if err != nil {
		apiresp.WriteError(w, r, http.StatusInternalServerError, "internal error")
		return
	}
	apiresp.WriteData(w, r, http.StatusOK, questions)
}

func (h *Handler) AddQuestion(w http.ResponseWriter, r *http.Request) {
	var q Question
	if err := json.NewDecoder(r.Body).Decode(&q); err != nil {
		apiresp.WriteError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.bank.Add(r.Context(), q)
	if err != nil {
		if errors.Is(err, ErrInvalidQuestion) {
			apiresp.WriteError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		apiresp.WriteError(w, r, http.StatusInternalServerError, "internal error")
		return
	}
	apiresp.WriteData(w, r, http.StatusCreated, created)
}

func (h *Handler) EditQuestion(w http.ResponseWriter, r *http.Request) {
	var q Question
	if err := json.NewDecoder(r.Body).Decode(&q); err != nil {
		apiresp.WriteError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := h.bank.Edit(r.Context(), chi.URLParam(r, "id"), q)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidQuestion):
			apiresp.WriteError(w, r, http.StatusBadRequest, err.Error())
		case errors.Is(err, ErrQuestionNotFound):
			apiresp.WriteError(w, r, http.StatusNotFound, "pregunta no encontrada")
		default:
			apiresp.WriteError(w, r, http.StatusInternalServerError, "internal error")
		}
		return
	}
	apiresp.WriteData(w, r, http.StatusOK, updated)
}

func (h *Handler) DeleteQuestion(w http.ResponseWriter, r *http.Request) {
	if err := h.bank.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		switch {
		case errors.Is(err, ErrQuestionNotFound):
			apiresp.WriteError(w, r, http.StatusNotFound, "pregunta no encontrada")
		default:
			apiresp.WriteError(w, r, http.StatusInternalServerError, "internal error")
		}
		return
	}
	apiresp.WriteData(w, r, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *Handler) ResetQuestions(w http.ResponseWriter, r *http.Request) {
	if err := h.bank.Reset(r.Context()); err != nil {
		apiresp.WriteError(w, r, http.StatusInternalServerError, "internal error")
		return
	}
	apiresp.WriteData(w, r, http.StatusOK, map[string]string{"status": "reset"})
}
