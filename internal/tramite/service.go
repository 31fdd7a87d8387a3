package tramite

import (
	"context"
	cryptorand "crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"licsim/internal/auth"
	"licsim/internal/exam"
	"licsim/internal/store"
)

var (
	ErrInvalidInput       = errors.New("datos inválidos")
	ErrInvalidLicenseType = errors.New("tipo de licencia inválido")
	ErrStepNotAllowed     = errors.New("paso no disponible para el trámite")
)

// Service owns the case lifecycle: creation, transitions, the step
// guard, and the registry round-trips. It also feeds the exam flow with
// permission checks and receives graded results back.
type Service struct {
	registry Registry
	mailer   auth.AppointmentMailer
}

func NewService(registry Registry, mailer auth.AppointmentMailer) *Service {
	return &Service{registry: registry, mailer: mailer}
}

// CreateCase validates the personal-data form and opens a new case at
// step 2. Field errors never reach the registry.
func (s *Service) CreateCase(ctx context.Context, data PersonalData) (*Tramite, error) {
	if err := ValidatePersonalData(&data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	now := time.Now().UTC()
	t := &Tramite{
		PersonalData: data,
		CurrentStep:  StepTipoLicencia,
		Status:       StatusIniciado,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	return s.registry.Create(ctx, t)
}

func (s *Service) GetCase(ctx context.Context, tramiteID string, pool store.Pool) (*Tramite, error) {
	return s.registry.Get(ctx, tramiteID, pool)
}

// StepAccess answers the guard question for one step. Disallowed steps
// are not errors; the response carries the nearest step to land on.
func (s *Service) StepAccess(ctx context.Context, tramiteID string, targetStep int) (allowed bool, nearest int, err error) {
	t, err := s.registry.Get(ctx, tramiteID, store.PoolCitizen)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return false, 0, err
	}
	return CanProceed(t, targetStep), NearestStep(t, targetStep), nil
}

// SelectLicenseType records the citizen's choice. Unlike the exam's
// permissive fallback, picking a type is strict: only the four known
// types are accepted.
func (s *Service) SelectLicenseType(ctx context.Context, tramiteID, licenseType string) (*Tramite, error) {
	licenseType = strings.ToLower(strings.TrimSpace(licenseType))
	if !knownLicenseType(licenseType) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidLicenseType, licenseType)
	}

	t, err := s.registry.Get(ctx, tramiteID, store.PoolCitizen)
	if err != nil {
		return nil, err
	}

	t.SelectLicenseType(licenseType, time.Now().UTC())
	return s.registry.Update(ctx, t, store.PoolCitizen)
}

// BeginExam gates exam start for a case and yields its license type.
// A case that already passed does not retake; a failed result keeps the
// step open.
func (s *Service) BeginExam(ctx context.Context, tramiteID string) (string, error) {
	t, err := s.registry.Get(ctx, tramiteID, store.PoolCitizen)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", exam.ErrCaseNotFound
		}
		return "", err
	}
	if !CanProceed(t, StepExamen) {
		return "", exam.ErrExamNotAllowed
	}
	if t.ExamResult != nil && t.ExamResult.Passed {
		return "", exam.ErrExamNotAllowed
	}
	return t.LicenseType, nil
}

// CompleteExam records a graded exam on the case and pushes it to the
// registry.
func (s *Service) CompleteExam(ctx context.Context, tramiteID string, result *exam.Result) error {
	t, err := s.registry.Get(ctx, tramiteID, store.PoolCitizen)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return exam.ErrCaseNotFound
		}
		return err
	}

	t.RecordExamResult(result, time.Now().UTC())
	if _, err := s.registry.Update(ctx, t, store.PoolCitizen); err != nil {
		return err
	}
	return nil
}

func (s *Service) Availability(ctx context.Context) ([]store.Slot, error) {
	return s.registry.Availability(ctx)
}

// BookAppointment reserves a simulator slot. The appointment code is
// minted here so the search-by-code endpoint has a stable format. On a
// slot conflict the caller re-fetches availability; the confirmation
// email is best effort and never fails the booking.
func (s *Service) BookAppointment(ctx context.Context, tramiteID, date, timeSlot string) (*Tramite, error) {
	if strings.TrimSpace(date) == "" || strings.TrimSpace(timeSlot) == "" {
		return nil, fmt.Errorf("%w: fecha y horario son obligatorios", ErrInvalidInput)
	}

	t, err := s.registry.Get(ctx, tramiteID, store.PoolCitizen)
	if err != nil {
		return nil, err
	}
	if !CanProceed(t, StepCita) {
		return nil, ErrStepNotAllowed
	}

	code, err := appointmentCode()
	if err != nil {
		return nil, fmt.Errorf("generar código de cita: %w", err)
	}

	booked, err := s.registry.BookSlot(ctx, tramiteID, date, timeSlot, code)
	if err != nil {
		return nil, err
	}

	if s.mailer != nil && booked.PersonalData.Email != "" {
		if err := s.mailer.SendAppointmentConfirmation(ctx, booked.PersonalData.Email, booked.ID, date, timeSlot, code); err != nil {
			log.Printf("appointment confirmation email failed tramite=%s err=%v", booked.ID, err)
		}
	}
	return booked, nil
}

// RecordSimulatorResult is the admin operation after the simulator run.
func (s *Service) RecordSimulatorResult(ctx context.Context, tramiteID string, res SimulatorResult) (*Tramite, error) {
	if res.Score < 0 || res.Score > 100 {
		return nil, fmt.Errorf("%w: calificación fuera de rango", ErrInvalidInput)
	}

	t, err := s.registry.Get(ctx, tramiteID, store.PoolAdmin)
	if err != nil {
		return nil, err
	}
	if !CanProceed(t, StepSimulador) {
		return nil, ErrStepNotAllowed
	}

	if res.CompletedAt.IsZero() {
		res.CompletedAt = time.Now().UTC()
	}
	t.RecordSimulatorResult(res, time.Now().UTC())
	return s.registry.Update(ctx, t, store.PoolAdmin)
}

// FinalizeCase closes a case whose simulator stage is complete.
func (s *Service) FinalizeCase(ctx context.Context, tramiteID string) (*Tramite, error) {
	t, err := s.registry.Get(ctx, tramiteID, store.PoolAdmin)
	if err != nil {
		return nil, err
	}
	if t.SimulatorResult == nil {
		return nil, ErrStepNotAllowed
	}

	t.Finalize(time.Now().UTC())
	return s.registry.Update(ctx, t, store.PoolAdmin)
}

// Search finds a case by trámite id or appointment code.
func (s *Service) Search(ctx context.Context, query string) (*Tramite, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: consulta vacía", ErrInvalidInput)
	}
	return s.registry.Search(ctx, query)
}

func (s *Service) List(ctx context.Context) ([]Tramite, error) {
	return s.registry.List(ctx)
}

func knownLicenseType(v string) bool {
	for _, lt := range exam.LicenseCategories() {
		if v == lt {
			return true
		}
	}
	return false
}

// appointmentCode mints a SIM-XXXXXXXX code from a random nibble string.
func appointmentCode() (string, error) {
	buf := make([]byte, 4)
	if _, err := cryptorand.Read(buf); err != nil {
		return "", err
	}
	return "SIM-" + strings.ToUpper(hex.EncodeToString(buf)), nil
}
