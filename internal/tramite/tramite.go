// Package tramite models a driving-license simulator case: the personal
// data block, the staged progress toward the simulator appointment, and
// the guard that decides which step a citizen may reach.
package tramite

import (
	"time"

	"licsim/internal/exam"
)

// Ordered steps of a case.
const (
	StepDatosPersonales = 1
	StepTipoLicencia    = 2
	StepExamen          = 3
	StepCita            = 4
	StepSimulador       = 5
	StepResultados      = 6
)

// Status labels annotate the outcome of a stage; the guard inspects
// CurrentStep and the stage sub-objects, never the label.
const (
	StatusIniciado            = "iniciado"
	StatusTipoSeleccionado    = "tipo-seleccionado"
	StatusExamenAprobado      = "examen-aprobado"
	StatusExamenReprobado     = "examen-reprobado"
	StatusCitaAgendada        = "cita-agendada"
	StatusSimuladorCompletado = "simulador-completado"
	StatusFinalizado          = "finalizado"
)

// PersonalData is the citizen-submitted identification block.
type PersonalData struct {
	Nombre          string `json:"nombre"`
	ApellidoPaterno string `json:"apellidoPaterno"`
	ApellidoMaterno string `json:"apellidoMaterno"`
	FechaNacimiento string `json:"fechaNacimiento"`
	CURP            string `json:"curp"`
	Email           string `json:"email"`
	Telefono        string `json:"telefono"`
	Direccion       string `json:"direccion"`
}

// Appointment is a booked simulator slot.
type Appointment struct {
	Date string `json:"date"`
	Time string `json:"time"`
	Code string `json:"code"`
}

// SimulatorResult is recorded by an administrator after the citizen
// drives the simulator.
type SimulatorResult struct {
	Passed      bool      `json:"passed"`
	Score       int       `json:"score"`
	Feedback    []string  `json:"feedback"`
	CompletedAt time.Time `json:"completedAt"`
}

// Tramite is the full case. Optional stages are nil until reached.
type Tramite struct {
	ID              string           `json:"id"`
	PersonalData    PersonalData     `json:"personalData"`
	LicenseType     string           `json:"licenseType,omitempty"`
	ExamResult      *exam.Result     `json:"examResult,omitempty"`
	Appointment     *Appointment     `json:"appointment,omitempty"`
	SimulatorResult *SimulatorResult `json:"simulatorResult,omitempty"`
	CurrentStep     int              `json:"currentStep"`
	Status          string           `json:"status"`
	CreatedAt       time.Time        `json:"createdAt"`
	UpdatedAt       time.Time        `json:"updatedAt"`
}
