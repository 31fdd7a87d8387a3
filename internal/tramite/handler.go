package tramite

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"licsim/internal/app/apiresp"
	"licsim/internal/auth"
	"licsim/internal/store"

	"github.com/go-chi/chi/v5"
)

type caseService interface {
	CreateCase(ctx context.Context, data PersonalData) (*Tramite, error)
	GetCase(ctx context.Context, tramiteID string, pool store.Pool) (*Tramite, error)
	StepAccess(ctx context.Context, tramiteID string, targetStep int) (bool, int, error)
	SelectLicenseType(ctx context.Context, tramiteID, licenseType string) (*Tramite, error)
	Availability(ctx context.Context) ([]store.Slot, error)
	BookAppointment(ctx context.Context, tramiteID, date, timeSlot string) (*Tramite, error)
	RecordSimulatorResult(ctx context.Context, tramiteID string, res SimulatorResult) (*Tramite, error)
	FinalizeCase(ctx context.Context, tramiteID string) (*Tramite, error)
	Search(ctx context.Context, query string) (*Tramite, error)
	List(ctx context.Context) ([]Tramite, error)
}

type Handler struct {
	svc caseService
	mgr *auth.Manager
}

func NewHandler(svc caseService, mgr *auth.Manager) *Handler {
	return &Handler{svc: svc, mgr: mgr}
}

type selectLicenseRequest struct {
	LicenseType string `json:"licenseType"`
}

type bookAppointmentRequest struct {
	Date string `json:"date"`
	Time string `json:"time"`
}

type stepAccessResponse struct {
	Allowed     bool `json:"allowed"`
	NearestStep int  `json:"nearestStep"`
}

type slotConflictPayload struct {
	Disponibilidad []store.Slot `json:"disponibilidad"`
}

// Create opens a new case from the personal-data form and binds the
// browser session to it.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var data PersonalData
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		apiresp.WriteError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	t, err := h.svc.CreateCase(r.Context(), data)
	if err != nil {
		if errors.Is(err, ErrInvalidInput) {
			apiresp.WriteError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		apiresp.WriteError(w, r, http.StatusBadGateway, "registro de casos no disponible")
		return
	}

	if err := h.mgr.BindTramite(w, r, t.ID); err != nil {
		apiresp.WriteError(w, r, http.StatusInternalServerError, "internal error")
		return
	}
	apiresp.WriteData(w, r, http.StatusCreated, t)
}

// Current returns the case bound to the browser session.
func (h *Handler) Current(w http.ResponseWriter, r *http.Request) {
	tramiteID, ok := auth.CurrentTramiteID(r.Context())
	if !ok {
		apiresp.WriteError(w, r, http.StatusUnauthorized, "unauthorized")
		return
	}

	t, err := h.svc.GetCase(r.Context(), tramiteID, store.PoolCitizen)
	if err != nil {
		h.writeCaseError(w, r, err)
		return
	}
	apiresp.WriteData(w, r, http.StatusOK, t)
}

// StepAccess answers the wizard guard for one step. Out-of-range or
// locked steps are a 200 with allowed=false; the frontend redirects to
// nearestStep without surfacing an error.
func (h *Handler) StepAccess(w http.ResponseWriter, r *http.Request) {
	tramiteID, _ := auth.CurrentTramiteID(r.Context())

	step, err := strconv.Atoi(chi.URLParam(r, "step"))
	if err != nil {
		apiresp.WriteError(w, r, http.StatusBadRequest, "paso inválido")
		return
	}

	allowed, nearest, err := h.svc.StepAccess(r.Context(), tramiteID, step)
	if err != nil {
		apiresp.WriteError(w, r, http.StatusBadGateway, "registro de casos no disponible")
		return
	}
	apiresp.WriteData(w, r, http.StatusOK, stepAccessResponse{Allowed: allowed, NearestStep: nearest})
}

func (h *Handler) SelectLicenseType(w http.ResponseWriter, r *http.Request) {
	tramiteID, ok := auth.CurrentTramiteID(r.Context())
	if !ok {
		apiresp.WriteError(w, r, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req selectLicenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apiresp.WriteError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	t, err := h.svc.SelectLicenseType(r.Context(), tramiteID, req.LicenseType)
	if err != nil {
		if errors.Is(err, ErrInvalidLicenseType) {
			apiresp.WriteError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		h.writeCaseError(w, r, err)
		return
	}
	apiresp.WriteData(w, r, http.StatusOK, t)
}

func (h *Handler) Availability(w http.ResponseWriter, r *http.Request) {
	slots, err := h.svc.Availability(r.Context())
	if err != nil {
		apiresp.WriteError(w, r, http.StatusBadGateway, "registro de casos no disponible")
		return
	}
	apiresp.WriteData(w, r, http.StatusOK, slots)
}

// BookAppointment reserves a slot. A lost race on the slot answers 409
// with the refreshed availability so the citizen picks again without an
// extra round trip.
func (h *Handler) BookAppointment(w http.ResponseWriter, r *http.Request) {
	tramiteID, ok := auth.CurrentTramiteID(r.Context())
	if !ok {
		apiresp.WriteError(w, r, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req bookAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apiresp.WriteError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	t, err := h.svc.BookAppointment(r.Context(), tramiteID, req.Date, req.Time)
	if err != nil {
		switch {
		case errors.Is(err, ErrSlotTaken):
			slots, availErr := h.svc.Availability(r.Context())
			if availErr != nil {
				slots = nil
			}
			apiresp.WriteErrorData(w, r, http.StatusConflict, "el horario ya fue ocupado", slotConflictPayload{Disponibilidad: slots})
		case errors.Is(err, ErrInvalidInput):
			apiresp.WriteError(w, r, http.StatusBadRequest, err.Error())
		case errors.Is(err, ErrStepNotAllowed):
			apiresp.WriteError(w, r, http.StatusConflict, "el trámite no permite agendar cita en su estado actual")
		default:
			h.writeCaseError(w, r, err)
		}
		return
	}
	apiresp.WriteData(w, r, http.StatusCreated, t)
}

// Search looks up a case by trámite id or appointment code. Public, no
// session required.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	t, err := h.svc.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		if errors.Is(err, ErrInvalidInput) {
			apiresp.WriteError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		h.writeCaseError(w, r, err)
		return
	}
	apiresp.WriteData(w, r, http.StatusOK, t)
}

// Admin case endpoints.

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	cases, err := h.svc.List(r.Context())
	if err != nil {
		apiresp.WriteError(w, r, http.StatusBadGateway, "registro de casos no disponible")
		return
	}
	apiresp.WriteData(w, r, http.StatusOK, cases)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	t, err := h.svc.GetCase(r.Context(), chi.URLParam(r, "id"), store.PoolAdmin)
	if err != nil {
		h.writeCaseError(w, r, err)
		return
	}
	apiresp.WriteData(w, r, http.StatusOK, t)
}

func (h *Handler) RecordSimulatorResult(w http.ResponseWriter, r *http.Request) {
	var res SimulatorResult
	if err := json.NewDecoder(r.Body).Decode(&res); err != nil {
		apiresp.WriteError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	t, err := h.svc.RecordSimulatorResult(r.Context(), chi.URLParam(r, "id"), res)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			apiresp.WriteError(w, r, http.StatusBadRequest, err.Error())
		case errors.Is(err, ErrStepNotAllowed):
			apiresp.WriteError(w, r, http.StatusConflict, "el trámite no tiene cita de simulador")
		default:
			h.writeCaseError(w, r, err)
		}
		return
	}
	apiresp.WriteData(w, r, http.StatusOK, t)
}

func (h *Handler) Finalize(w http.ResponseWriter, r *http.Request) {
	t, err := h.svc.FinalizeCase(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, ErrStepNotAllowed) {
			apiresp.WriteError(w, r, http.StatusConflict, "el trámite no ha completado el simulador")
			return
		}
		h.writeCaseError(w, r, err)
		return
	}
	apiresp.WriteData(w, r, http.StatusOK, t)
}

func (h *Handler) writeCaseError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, ErrNotFound) {
		apiresp.WriteError(w, r, http.StatusNotFound, "trámite no encontrado")
		return
	}
	apiresp.WriteError(w, r, http.StatusBadGateway, "registro de casos no disponible")
}
