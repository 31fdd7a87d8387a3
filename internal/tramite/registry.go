package tramite

import (
	"context"
	"errors"
	"fmt"
	"time"

	"licsim/internal/exam"
	"licsim/internal/store"
)

var (
	ErrNotFound  = errors.New("trámite no encontrado")
	ErrSlotTaken = errors.New("horario de cita ocupado")
)

// Registry is the portal's view of the central case store. The real
// implementation talks REST to the registry; tests swap in a fake.
type Registry interface {
	Create(ctx context.Context, t *Tramite) (*Tramite, error)
	Get(ctx context.Context, tramiteID string, pool store.Pool) (*Tramite, error)
	Update(ctx context.Context, t *Tramite, pool store.Pool) (*Tramite, error)
	List(ctx context.Context) ([]Tramite, error)
	Search(ctx context.Context, query string) (*Tramite, error)
	Availability(ctx context.Context) ([]store.Slot, error)
	BookSlot(ctx context.Context, tramiteID, date, timeSlot, code string) (*Tramite, error)
}

type restRegistry struct {
	client *store.Client
}

func NewRegistry(client *store.Client) Registry {
	return &restRegistry{client: client}
}

func (r *restRegistry) Create(ctx context.Context, t *Tramite) (*Tramite, error) {
	rec, err := r.client.CreateCase(ctx, toRecord(t))
	if err != nil {
		return nil, mapStoreError(err)
	}
	return fromRecord(rec), nil
}

func (r *restRegistry) Get(ctx context.Context, tramiteID string, pool store.Pool) (*Tramite, error) {
	rec, err := r.client.GetCase(ctx, tramiteID, pool)
	if err != nil {
		return nil, mapStoreError(err)
	}
	return fromRecord(rec), nil
}

func (r *restRegistry) Update(ctx context.Context, t *Tramite, pool store.Pool) (*Tramite, error) {
	rec, err := r.client.UpdateCase(ctx, t.ID, toRecord(t), pool)
	if err != nil {
		return nil, mapStoreError(err)
	}
	return fromRecord(rec), nil
}

func (r *restRegistry) List(ctx context.Context) ([]Tramite, error) {
	recs, err := r.client.ListCases(ctx)
	if err != nil {
		return nil, mapStoreError(err)
	}
	out := make([]Tramite, 0, len(recs))
	for i := range recs {
		out = append(out, *fromRecord(&recs[i]))
	}
	return out, nil
}

func (r *restRegistry) Search(ctx context.Context, query string) (*Tramite, error) {
	rec, err := r.client.SearchCase(ctx, query)
	if err != nil {
		return nil, mapStoreError(err)
	}
	return fromRecord(rec), nil
}

func (r *restRegistry) Availability(ctx context.Context) ([]store.Slot, error) {
	slots, err := r.client.Availability(ctx)
	if err != nil {
		return nil, mapStoreError(err)
	}
	return slots, nil
}

func (r *restRegistry) BookSlot(ctx context.Context, tramiteID, date, timeSlot, code string) (*Tramite, error) {
	rec, err := r.client.BookSlot(ctx, tramiteID, date, timeSlot, code)
	if err != nil {
		return nil, mapStoreError(err)
	}
	return fromRecord(rec), nil
}

func mapStoreError(err error) error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, store.ErrSlotTaken):
		return ErrSlotTaken
	default:
		return fmt.Errorf("registro de casos: %w", err)
	}
}

// toRecord flattens the rich case into the registry's wire schema. The
// registry only keeps the exam verdict and score; the full answer
// detail stays local to the portal.
func toRecord(t *Tramite) store.CaseRecord {
	rec := store.CaseRecord{
		TramiteID:       t.ID,
		Nombre:          t.PersonalData.Nombre,
		ApellidoPaterno: t.PersonalData.ApellidoPaterno,
		ApellidoMaterno: t.PersonalData.ApellidoMaterno,
		FechaNacimiento: t.PersonalData.FechaNacimiento,
		CURP:            t.PersonalData.CURP,
		Email:           t.PersonalData.Email,
		Telefono:        t.PersonalData.Telefono,
		Direccion:       t.PersonalData.Direccion,
		LicenseType:     t.LicenseType,
		CurrentStep:     t.CurrentStep,
		Status:          t.Status,
	}
	if !t.CreatedAt.IsZero() {
		rec.CreatedAt = t.CreatedAt.UTC().Format(time.RFC3339)
	}
	if !t.UpdatedAt.IsZero() {
		rec.UpdatedAt = t.UpdatedAt.UTC().Format(time.RFC3339)
	}
	if t.ExamResult != nil {
		passed := t.ExamResult.Passed
		score := t.ExamResult.Score
		rec.ExamPassed = &passed
		rec.ExamScore = &score
	}
	if t.Appointment != nil {
		rec.AppointmentDate = t.Appointment.Date
		rec.AppointmentTime = t.Appointment.Time
		rec.AppointmentCode = t.Appointment.Code
	}
	if t.SimulatorResult != nil {
		passed := t.SimulatorResult.Passed
		score := t.SimulatorResult.Score
		rec.SimulatorPassed = &passed
		rec.SimulatorScore = &score
		rec.SimulatorFeedback = t.SimulatorResult.Feedback
		rec.SimulatorCompletedAt = t.SimulatorResult.CompletedAt.UTC().Format(time.RFC3339)
	}
	return rec
}

func fromRecord(rec *store.CaseRecord) *Tramite {
	t := &Tramite{
		ID: rec.TramiteID,
		PersonalData: PersonalData{
			Nombre:          rec.Nombre,
			ApellidoPaterno: rec.ApellidoPaterno,
			ApellidoMaterno: rec.ApellidoMaterno,
			FechaNacimiento: rec.FechaNacimiento,
			CURP:            rec.CURP,
			Email:           rec.Email,
			Telefono:        rec.Telefono,
			Direccion:       rec.Direccion,
		},
		LicenseType: rec.LicenseType,
		CurrentStep: rec.CurrentStep,
		Status:      rec.Status,
		CreatedAt:   parseTime(rec.CreatedAt),
		UpdatedAt:   parseTime(rec.UpdatedAt),
	}
	if rec.ExamPassed != nil {
		t.ExamResult = &exam.Result{Passed: *rec.ExamPassed}
		if rec.ExamScore != nil {
			t.ExamResult.Score = *rec.ExamScore
		}
	}
	if rec.AppointmentDate != "" || rec.AppointmentCode != "" {
		t.Appointment = &Appointment{
			Date: rec.AppointmentDate,
			Time: rec.AppointmentTime,
			Code: rec.AppointmentCode,
		}
	}
	if rec.SimulatorPassed != nil {
		t.SimulatorResult = &SimulatorResult{
			Passed:      *rec.SimulatorPassed,
			Feedback:    rec.SimulatorFeedback,
			CompletedAt: parseTime(rec.SimulatorCompletedAt),
		}
		if rec.SimulatorScore != nil {
			t.SimulatorResult.Score = *rec.SimulatorScore
		}
	}
	return t
}

func parseTime(v string) time.Time {
	if v == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return time.Time{}
	}
	return t
}
