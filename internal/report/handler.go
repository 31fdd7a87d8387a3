package report

import (
	"fmt"
	"net/http"
	"time"

	"licsim/internal/app/apiresp"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.svc.BuildSummary(r.Context())
	if err != nil {
		apiresp.WriteError(w, r, http.StatusBadGateway, "registro de casos no disponible")
		return
	}
	apiresp.WriteData(w, r, http.StatusOK, summary)
}

func (h *Handler) ExportExcel(w http.ResponseWriter, r *http.Request) {
	f, err := h.svc.ExportExcel(r.Context())
	if err != nil {
		apiresp.WriteError(w, r, http.StatusBadGateway, "registro de casos no disponible")
		return
	}
	defer f.Close()

	filename := fmt.Sprintf("tramites-%s.xlsx", time.Now().UTC().Format("20060102-150405"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if err := f.Write(w); err != nil {
		return
	}
}
