// Package report aggregates cases for the admin dashboard and exports
// them as a spreadsheet.
package report

import (
	"context"
	"fmt"
	"strings"

	"licsim/internal/tramite"

	"github.com/xuri/excelize/v2"
)

type caseLister interface {
	List(ctx context.Context) ([]tramite.Tramite, error)
}

type Service struct {
	cases caseLister
}

func NewService(cases caseLister) *Service {
	return &Service{cases: cases}
}

// Summary is the admin dashboard aggregate over every case.
type Summary struct {
	Total              int            `json:"total"`
	ByStatus           map[string]int `json:"byStatus"`
	ExamTaken          int            `json:"examTaken"`
	ExamPassed         int            `json:"examPassed"`
	ExamPassRate       float64        `json:"examPassRate"`
	AppointmentsBooked int            `json:"appointmentsBooked"`
	SimulatorCompleted int            `json:"simulatorCompleted"`
}

func (s *Service) BuildSummary(ctx context.Context) (*Summary, error) {
	cases, err := s.cases.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list cases: %w", err)
	}

	sum := &Summary{ByStatus: map[string]int{}}
	for i := range cases {
		t := &cases[i]
		sum.Total++
		sum.ByStatus[t.Status]++
		if t.ExamResult != nil {
			sum.ExamTaken++
			if t.ExamResult.Passed {
				sum.ExamPassed++
			}
		}
		if t.Appointment != nil {
			sum.AppointmentsBooked++
		}
		if t.SimulatorResult != nil {
			sum.SimulatorCompleted++
		}
	}
	if sum.ExamTaken > 0 {
		sum.ExamPassRate = float64(sum.ExamPassed) / float64(sum.ExamTaken) * 100
	}
	return sum, nil
}

const exportSheet = "Tramites"

// ExportExcel renders every case as one spreadsheet row. The caller owns
// closing the file.
func (s *Service) ExportExcel(ctx context.Context) (*excelize.File, error) {
	cases, err := s.cases.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list cases: %w", err)
	}

	f := excelize.NewFile()
	f.SetSheetName(f.GetSheetName(0), exportSheet)

	headers := []string{
		"Trámite", "Nombre", "CURP", "Tipo de licencia", "Paso", "Estado",
		"Examen", "Calificación examen", "Cita", "Código de cita",
		"Simulador", "Calificación simulador",
	}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(exportSheet, cell, h); err != nil {
			return nil, err
		}
	}

	for row, t := range cases {
		values := []interface{}{
			t.ID,
			fullName(&t),
			t.PersonalData.CURP,
			t.LicenseType,
			t.CurrentStep,
			t.Status,
			examVerdict(&t),
			examScore(&t),
			appointmentCell(&t),
			appointmentCode(&t),
			simulatorVerdict(&t),
			simulatorScore(&t),
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(exportSheet, cell, v); err != nil {
				return nil, err
			}
		}
	}
	return f, nil
}

func fullName(t *tramite.Tramite) string {
	parts := []string{t.PersonalData.Nombre, t.PersonalData.ApellidoPaterno, t.PersonalData.ApellidoMaterno}
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, " ")
}

func examVerdict(t *tramite.Tramite) string {
	if t.ExamResult == nil {
		return "pendiente"
	}
	if t.ExamResult.Passed {
		return "aprobado"
	}
	return "reprobado"
}

func examScore(t *tramite.Tramite) interface{} {
	if t.ExamResult == nil {
		return ""
	}
	return t.ExamResult.Score
}

func appointmentCell(t *tramite.Tramite) string {
	if t.Appointment == nil {
		return ""
	}
	return t.Appointment.Date + " " + t.Appointment.Time
}

func appointmentCode(t *tramite.Tramite) string {
	if t.Appointment == nil {
		return ""
	}
	return t.Appointment.Code
}

func simulatorVerdict(t *tramite.Tramite) string {
	if t.SimulatorResult == nil {
		return "pendiente"
	}
	if t.SimulatorResult.Passed {
		return "aprobado"
	}
	return "reprobado"
}

func simulatorScore(t *tramite.Tramite) interface{} {
	if t.SimulatorResult == nil {
		return ""
	}
	return t.SimulatorResult.Score
}
