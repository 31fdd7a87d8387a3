package exam

import (
	"context"
	"database/sql"
	"errors"
	"math/rand"
	"testing"
	"time"

	"licsim/internal/db"
	"licsim/internal/overlay"
)

type fakeRegistry struct {
	licenseType  string
	beginErr     error
	completeErrs int
	completed    []*Result
}

func (f *fakeRegistry) BeginExam(ctx context.Context, tramiteID string) (string, error) {
	if f.beginErr != nil {
		return "", f.beginErr
	}
	return f.licenseType, nil
}

func (f *fakeRegistry) CompleteExam(ctx context.Context, tramiteID string, result *Result) error {
	if f.completeErrs > 0 {
		f.completeErrs--
		return errors.New("registry unavailable")
	}
	f.completed = append(f.completed, result)
	return nil
}

func newTestService(t *testing.T, reg *fakeRegistry) (*Service, *sql.DB) {
	t.Helper()
	conn, err := db.Open(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	if err := db.Migrate(context.Background(), conn); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	bank := NewBank(Catalog(), overlay.NewStore(conn))
	selector := NewSelector(rand.New(rand.NewSource(42)))
	return NewService(conn, bank, selector, reg, 30), conn
}

func forceExpire(t *testing.T, conn *sql.DB, sessionID string) {
	t.Helper()
	_, err := conn.ExecContext(context.Background(), `
		UPDATE exam_sessions SET expires_at = ? WHERE id = ?
	`, time.Now().UTC().Add(-time.Minute), sessionID)
	if err != nil {
		t.Fatalf("force expire: %v", err)
	}
}

func TestStartSessionDrawsAndResumes(t *testing.T) {
	reg := &fakeRegistry{licenseType: CategoryMotocicleta}
	svc, _ := newTestService(t, reg)
	ctx := context.Background()

	view, err := svc.StartSession(ctx, "tr-1")
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if view.Status != statusInProgress {
		t.Fatalf("status = %s", view.Status)
	}
	if len(view.Questions) != DefaultExamSize {
		t.Fatalf("questions = %d, want %d", len(view.Questions), DefaultExamSize)
	}
	if view.RemainingSecs <= 0 {
		t.Fatal("expected positive remaining time")
	}

	again, err := svc.StartSession(ctx, "tr-1")
	if err != nil {
		t.Fatalf("restart: %v", err)
	}
	if again.ID != view.ID {
		t.Fatalf("expected resume of session %s, got new session %s", view.ID, again.ID)
	}
}

func TestStartSessionPropagatesGuard(t *testing.T) {
	reg := &fakeRegistry{beginErr: ErrExamNotAllowed}
	svc, _ := newTestService(t, reg)

	if _, err := svc.StartSession(context.Background(), "tr-1"); !errors.Is(err, ErrExamNotAllowed) {
		t.Fatalf("err = %v, want ErrExamNotAllowed", err)
	}
}

func TestSubmitGradesAndPushesResult(t *testing.T) {
	reg := &fakeRegistry{licenseType: CategoryParticular}
	svc, _ := newTestService(t, reg)
	ctx := context.Background()

	view, err := svc.StartSession(ctx, "tr-1")
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	for _, q := range view.Questions {
		if err := svc.SaveAnswer(ctx, "tr-1", view.ID, q.ID, 0); err != nil {
			t.Fatalf("save answer: %v", err)
		}
	}

	result, err := svc.Submit(ctx, "tr-1", view.ID)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if result.TotalQuestions != len(view.Questions) {
		t.Fatalf("total = %d, want %d", result.TotalQuestions, len(view.Questions))
	}
	if len(reg.completed) != 1 {
		t.Fatalf("registry pushes = %d, want 1", len(reg.completed))
	}

	// Re-submitting a final session returns the stored result, no second push.
	again, err := svc.Submit(ctx, "tr-1", view.ID)
	if err != nil {
		t.Fatalf("resubmit: %v", err)
	}
	if again.Score != result.Score {
		t.Fatalf("score changed on resubmit: %d vs %d", again.Score, result.Score)
	}
	if len(reg.completed) != 1 {
		t.Fatalf("registry pushes = %d after resubmit, want still 1", len(reg.completed))
	}
}

func TestSubmitRedrivesFailedRegistryPush(t *testing.T) {
	reg := &fakeRegistry{licenseType: CategoryParticular, completeErrs: 1}
	svc, _ := newTestService(t, reg)
	ctx := context.Background()

	view, err := svc.StartSession(ctx, "tr-1")
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := svc.SaveAnswer(ctx, "tr-1", view.ID, view.Questions[0].ID, 0); err != nil {
		t.Fatalf("save answer: %v", err)
	}

	if _, err := svc.Submit(ctx, "tr-1", view.ID); err == nil {
		t.Fatal("submit must fail while the registry is down")
	}
	if len(reg.completed) != 0 {
		t.Fatalf("registry pushes = %d before recovery, want 0", len(reg.completed))
	}

	// The session is final locally; the retry must not regrade but must
	// deliver the stored result to the registry.
	result, err := svc.Submit(ctx, "tr-1", view.ID)
	if err != nil {
		t.Fatalf("retry submit: %v", err)
	}
	if result == nil || result.TotalQuestions != len(view.Questions) {
		t.Fatalf("retry result = %+v", result)
	}
	if len(reg.completed) != 1 {
		t.Fatalf("registry pushes = %d after retry, want 1", len(reg.completed))
	}

	if _, err := svc.Submit(ctx, "tr-1", view.ID); err != nil {
		t.Fatalf("third submit: %v", err)
	}
	if len(reg.completed) != 1 {
		t.Fatalf("registry pushes = %d after third submit, want still 1", len(reg.completed))
	}
}

func TestSessionResultRedrivesFailedExpiryPush(t *testing.T) {
	reg := &fakeRegistry{licenseType: CategoryCarga, completeErrs: 1}
	svc, conn := newTestService(t, reg)
	ctx := context.Background()

	view, err := svc.StartSession(ctx, "tr-1")
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	forceExpire(t, conn, view.ID)

	if _, err := svc.GetSession(ctx, "tr-1", view.ID); err == nil {
		t.Fatal("forced finalization must surface the failed push")
	}

	result, err := svc.SessionResult(ctx, "tr-1", view.ID)
	if err != nil {
		t.Fatalf("result after recovery: %v", err)
	}
	if result == nil {
		t.Fatal("expected stored result")
	}
	if len(reg.completed) != 1 {
		t.Fatalf("registry pushes = %d, want 1", len(reg.completed))
	}
}

func TestSaveAnswerValidation(t *testing.T) {
	reg := &fakeRegistry{licenseType: CategoryParticular}
	svc, _ := newTestService(t, reg)
	ctx := context.Background()

	view, err := svc.StartSession(ctx, "tr-1")
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	if err := svc.SaveAnswer(ctx, "tr-1", view.ID, view.Questions[0].ID, 4); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("out-of-range err = %v, want ErrInvalidInput", err)
	}
	if err := svc.SaveAnswer(ctx, "tr-1", view.ID, "no-such-question", 1); !errors.Is(err, ErrQuestionNotInSession) {
		t.Fatalf("foreign question err = %v, want ErrQuestionNotInSession", err)
	}
	if err := svc.SaveAnswer(ctx, "tr-2", view.ID, view.Questions[0].ID, 1); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("foreign case err = %v, want ErrSessionNotFound", err)
	}

	if _, err := svc.Submit(ctx, "tr-1", view.ID); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if err := svc.SaveAnswer(ctx, "tr-1", view.ID, view.Questions[0].ID, 1); !errors.Is(err, ErrSessionNotEditable) {
		t.Fatalf("post-submit err = %v, want ErrSessionNotEditable", err)
	}
}

func TestExpiredSessionIsForceSubmitted(t *testing.T) {
	reg := &fakeRegistry{licenseType: CategoryCarga}
	svc, conn := newTestService(t, reg)
	ctx := context.Background()

	view, err := svc.StartSession(ctx, "tr-1")
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := svc.SaveAnswer(ctx, "tr-1", view.ID, view.Questions[0].ID, 0); err != nil {
		t.Fatalf("save answer: %v", err)
	}

	forceExpire(t, conn, view.ID)

	got, err := svc.GetSession(ctx, "tr-1", view.ID)
	if err != nil {
		t.Fatalf("get after expiry: %v", err)
	}
	if got.Status != statusExpired {
		t.Fatalf("status = %s, want expired", got.Status)
	}
	if len(reg.completed) != 1 {
		t.Fatalf("registry pushes = %d, want 1 (forced submission)", len(reg.completed))
	}

	result, err := svc.SessionResult(ctx, "tr-1", view.ID)
	if err != nil {
		t.Fatalf("result: %v", err)
	}
	if result.TotalQuestions != len(view.Questions) {
		t.Fatal("expired session must grade against the full drawn set")
	}
}

func TestSessionResultWhileRunning(t *testing.T) {
	reg := &fakeRegistry{licenseType: CategoryPublico}
	svc, _ := newTestService(t, reg)
	ctx := context.Background()

	view, err := svc.StartSession(ctx, "tr-1")
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := svc.SessionResult(ctx, "tr-1", view.ID); !errors.Is(err, ErrSessionNotFinal) {
		t.Fatalf("err = %v, want ErrSessionNotFinal", err)
	}
}

func TestRetakeAfterFinalizedSession(t *testing.T) {
	reg := &fakeRegistry{licenseType: CategoryParticular}
	svc, _ := newTestService(t, reg)
	ctx := context.Background()

	first, err := svc.StartSession(ctx, "tr-1")
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := svc.Submit(ctx, "tr-1", first.ID); err != nil {
		t.Fatalf("submit: %v", err)
	}

	second, err := svc.StartSession(ctx, "tr-1")
	if err != nil {
		t.Fatalf("retake: %v", err)
	}
	if second.ID == first.ID {
		t.Fatal("expected a fresh session for the retake")
	}
	if second.Status != statusInProgress {
		t.Fatalf("status = %s", second.Status)
	}
}
