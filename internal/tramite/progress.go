package tramite

import (
	"time"

	"licsim/internal/exam"
)

// CanProceed reports whether the case may reach targetStep. It is a pure
// predicate over the recorded progress; handlers never re-derive step
// eligibility on their own.
//
// A nil case can only reach the first two steps. Step 4 stays locked
// behind a passing exam: a failed result keeps the citizen at the exam
// until a retake passes. Step 6 is looser than step 5 on purpose, so
// results stay visible once booking happened.
func CanProceed(t *Tramite, targetStep int) bool {
	if targetStep <= StepTipoLicencia {
		return true
	}
	if t == nil {
		return false
	}

	switch targetStep {
	case StepExamen:
		return t.CurrentStep >= StepExamen && t.LicenseType != ""
	case StepCita:
		return t.CurrentStep >= StepExamen && t.ExamResult != nil && t.ExamResult.Passed
	case StepSimulador:
		return t.CurrentStep >= StepCita && t.Appointment != nil
	case StepResultados:
		return t.CurrentStep >= StepCita
	default:
		return false
	}
}

// NearestStep walks back from targetStep to the highest step the case
// can actually reach. Out-of-order access is not an error; the caller
// redirects here silently.
func NearestStep(t *Tramite, targetStep int) int {
	if targetStep > StepResultados {
		targetStep = StepResultados
	}
	for step := targetStep; step > StepDatosPersonales; step-- {
		if CanProceed(t, step) {
			return step
		}
	}
	return StepDatosPersonales
}

// advanceTo raises CurrentStep, never lowering it.
func (t *Tramite) advanceTo(step int) {
	if step > t.CurrentStep {
		t.CurrentStep = step
	}
}

// SelectLicenseType records the chosen type and opens the exam step.
func (t *Tramite) SelectLicenseType(licenseType string, now time.Time) {
	t.LicenseType = licenseType
	t.advanceTo(StepExamen)
	t.Status = StatusTipoSeleccionado
	t.UpdatedAt = now
}

// RecordExamResult stores the graded exam. Passing opens the booking
// step; failing keeps the citizen at the exam for a retake.
func (t *Tramite) RecordExamResult(result *exam.Result, now time.Time) {
	t.ExamResult = result
	if result != nil && result.Passed {
		t.advanceTo(StepCita)
		t.Status = StatusExamenAprobado
	} else {
		t.Status = StatusExamenReprobado
	}
	t.UpdatedAt = now
}

// RecordAppointment stores a booked slot and moves to the simulator stage.
func (t *Tramite) RecordAppointment(app Appointment, now time.Time) {
	t.Appointment = &app
	t.advanceTo(StepSimulador)
	t.Status = StatusCitaAgendada
	t.UpdatedAt = now
}

// RecordSimulatorResult is an admin action after the simulator run.
func (t *Tramite) RecordSimulatorResult(res SimulatorResult, now time.Time) {
	t.SimulatorResult = &res
	t.advanceTo(StepResultados)
	t.Status = StatusSimuladorCompletado
	t.UpdatedAt = now
}

// Finalize closes the case. Cases are never deleted; this is terminal.
func (t *Tramite) Finalize(now time.Time) {
	t.Status = StatusFinalizado
	t.UpdatedAt = now
}
