package exam

import (
	"context"
	cryptorand "crypto/rand"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

var (
	ErrSessionNotFound      = errors.New("exam session not found")
	ErrSessionNotEditable   = errors.New("exam session is not editable")
	ErrSessionNotFinal      = errors.New("exam session not final")
	ErrQuestionNotInSession = errors.New("question not in exam session")
	ErrInvalidInput         = errors.New("invalid input")
	ErrExamNotAllowed       = errors.New("exam not allowed for case")
	ErrCaseNotFound         = errors.New("case not found")
)

// Session statuses.
const (
	statusInProgress = "in_progress"
	statusSubmitted  = "submitted"
	statusExpired    = "expired"
)

// CaseRegistry is the slice of the case service the exam flow needs: a
// guard check that also yields the license type when a case may sit the
// exam, and a push of the graded result back to the case.
type CaseRegistry interface {
	BeginExam(ctx context.Context, tramiteID string) (licenseType string, err error)
	CompleteExam(ctx context.Context, tramiteID string, result *Result) error
}

// Service runs timed exam sessions. The drawn questions are snapshotted
// into the session row at start, so later bank edits never change a
// session in flight, and grading always runs against the exact set served.
type Service struct {
	db          *sql.DB
	bank        *Bank
	selector    *Selector
	cases       CaseRegistry
	examMinutes int
}

func NewService(db *sql.DB, bank *Bank, selector *Selector, cases CaseRegistry, examMinutes int) *Service {
	if examMinutes <= 0 {
		examMinutes = 30
	}
	return &Service{db: db, bank: bank, selector: selector, cases: cases, examMinutes: examMinutes}
}

// SessionQuestion is a question as served to the citizen: no correct
// answer, no explanation.
type SessionQuestion struct {
	ID         string   `json:"id"`
	Text       string   `json:"text"`
	Options    []string `json:"options"`
	Category   string   `json:"category"`
	Difficulty string   `json:"difficulty"`
}

// SessionView is the citizen-facing state of a session.
type SessionView struct {
	ID            string            `json:"id"`
	TramiteID     string            `json:"tramiteId"`
	LicenseType   string            `json:"licenseType"`
	Status        string            `json:"status"`
	StartedAt     time.Time         `json:"startedAt"`
	ExpiresAt     time.Time         `json:"expiresAt"`
	RemainingSecs int64             `json:"remainingSecs"`
	Questions     []SessionQuestion `json:"questions"`
	Answers       map[string]int    `json:"answers"`
}

type sessionRow struct {
	ID           string
	TramiteID    string
	LicenseType  string
	Status       string
	StartedAt    time.Time
	ExpiresAt    time.Time
	SubmittedAt  sql.NullTime
	Questions    []Question
	Result       *Result
	ResultPushed bool
}

// StartSession resumes the case's in-progress session if one is still
// running, otherwise asks the case registry for permission, draws a fresh
// exam from the effective pool and opens a new session.
func (s *Service) StartSession(ctx context.Context, tramiteID string) (*SessionView, error) {
	row, err := s.latestSessionForCase(ctx, tramiteID)
	if err != nil && !errors.Is(err, ErrSessionNotFound) {
		return nil, err
	}
	if row != nil && row.Status == statusInProgress {
		if time.Now().Before(row.ExpiresAt) {
			return s.viewFromRow(ctx, row)
		}
		if _, err := s.finalize(ctx, row.ID, statusExpired); err != nil {
			return nil, err
		}
	}

	licenseType, err := s.cases.BeginExam(ctx, tramiteID)
	if err != nil {
		return nil, err
	}

	pool, err := s.bank.Effective(ctx)
	if err != nil {
		return nil, err
	}
	questions := s.selector.SelectExam(pool, licenseType, DefaultExamSize)
	snapshot, err := json.Marshal(questions)
	if err != nil {
		return nil, fmt.Errorf("encode question snapshot: %w", err)
	}

	id, err := randomToken("ses-", 8)
	if err != nil {
		return nil, fmt.Errorf("generate session id: %w", err)
	}

	now := time.Now().UTC()
	expires := now.Add(time.Duration(s.examMinutes) * time.Minute)
	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO exam_sessions (id, tramite_id, license_type, questions, status, started_at, expires_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, id, tramiteID, NormalizeLicenseType(licenseType), snapshot, statusInProgress, now, expires); err != nil {
		return nil, fmt.Errorf("insert exam session: %w", err)
	}

	created, err := s.loadSessionRow(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	return s.viewFromRow(ctx, created)
}

// GetSession returns the current state of the case's session. Reading an
// expired in-progress session forces its submission first, with whatever
// answers were recorded.
func (s *Service) GetSession(ctx context.Context, tramiteID, sessionID string) (*SessionView, error) {
	row, err := s.ownedSession(ctx, tramiteID, sessionID)
	if err != nil {
		return nil, err
	}
	if row.Status == statusInProgress && time.Now().After(row.ExpiresAt) {
		if row, err = s.finalize(ctx, row.ID, statusExpired); err != nil {
			return nil, err
		}
	}
	if err := s.ensurePushed(ctx, row); err != nil {
		return nil, err
	}
	return s.viewFromRow(ctx, row)
}

// SaveAnswer records one selection, last write wins per question.
func (s *Service) SaveAnswer(ctx context.Context, tramiteID, sessionID, questionID string, selected int) error {
	if selected < 0 || selected > 3 {
		return fmt.Errorf("%w: selected answer %d out of range", ErrInvalidInput, selected)
	}

	row, err := s.ownedSession(ctx, tramiteID, sessionID)
	if err != nil {
		return err
	}
	if row.Status != statusInProgress {
		return ErrSessionNotEditable
	}
	if time.Now().After(row.ExpiresAt) {
		_, _ = s.finalize(ctx, row.ID, statusExpired)
		return ErrSessionNotEditable
	}

	found := false
	for _, q := range row.Questions {
		if q.ID == questionID {
			found = true
			break
		}
	}
	if !found {
		return ErrQuestionNotInSession
	}

	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO exam_answers (session_id, question_id, selected, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (session_id, question_id)
		DO UPDATE SET selected = excluded.selected, updated_at = excluded.updated_at
	`, sessionID, questionID, selected, time.Now().UTC()); err != nil {
		return fmt.Errorf("upsert answer: %w", err)
	}
	return nil
}

// Submit grades the session and pushes the result to the case registry.
// Submitting an already-final session returns the stored result unchanged.
func (s *Service) Submit(ctx context.Context, tramiteID, sessionID string) (*Result, error) {
	row, err := s.ownedSession(ctx, tramiteID, sessionID)
	if err != nil {
		return nil, err
	}
	row, err = s.finalize(ctx, row.ID, statusSubmitted)
	if err != nil {
		return nil, err
	}
	return row.Result, nil
}

// SessionResult returns the graded result, forcing submission of an
// expired session first. A session still in progress has no result yet.
func (s *Service) SessionResult(ctx context.Context, tramiteID, sessionID string) (*Result, error) {
	row, err := s.ownedSession(ctx, tramiteID, sessionID)
	if err != nil {
		return nil, err
	}
	if row.Status == statusInProgress {
		if time.Now().Before(row.ExpiresAt) {
			return nil, ErrSessionNotFinal
		}
		if row, err = s.finalize(ctx, row.ID, statusExpired); err != nil {
			return nil, err
		}
	}
	if err := s.ensurePushed(ctx, row); err != nil {
		return nil, err
	}
	return row.Result, nil
}

// finalize grades an in-progress session inside a transaction and then
// pushes the result to the case registry. Finalizing a session that is
// already final returns the stored row, re-driving the registry push if
// an earlier one failed after the local commit.
func (s *Service) finalize(ctx context.Context, sessionID, finalStatus string) (*sessionRow, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin finalize tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	row, err := s.loadSessionRow(ctx, tx, sessionID)
	if err != nil {
		return nil, err
	}
	if row.Status != statusInProgress {
		if err := tx.Commit(); err != nil {
			return nil, fmt.Errorf("commit finalize noop: %w", err)
		}
		if err := s.ensurePushed(ctx, row); err != nil {
			return nil, err
		}
		return row, nil
	}

	answers, err := s.loadAnswers(ctx, tx, sessionID)
	if err != nil {
		return nil, err
	}

	result, err := GradeExam(answers, row.Questions)
	if err != nil {
		return nil, fmt.Errorf("grade session %s: %w", sessionID, err)
	}
	resultJSON, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("encode result: %w", err)
	}

	now := time.Now().UTC()
	if _, err := tx.ExecContext(ctx, `
		UPDATE exam_sessions
		SET status = ?, submitted_at = ?, result = ?
		WHERE id = ?
	`, finalStatus, now, resultJSON, sessionID); err != nil {
		return nil, fmt.Errorf("update session final: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit finalize: %w", err)
	}

	row.Status = finalStatus
	row.SubmittedAt = sql.NullTime{Time: now, Valid: true}
	row.Result = result

	if err := s.pushResult(ctx, row); err != nil {
		return nil, err
	}
	return row, nil
}

// pushResult hands the graded result to the case registry and records
// the handoff. The session is already final locally; a failed push
// leaves result_pushed at 0 so the next read of the session retries.
func (s *Service) pushResult(ctx context.Context, row *sessionRow) error {
	if err := s.cases.CompleteExam(ctx, row.TramiteID, row.Result); err != nil {
		return fmt.Errorf("push exam result to case %s: %w", row.TramiteID, err)
	}
	if _, err := s.db.ExecContext(ctx, `
		UPDATE exam_sessions SET result_pushed = 1 WHERE id = ?
	`, row.ID); err != nil {
		return fmt.Errorf("mark result pushed: %w", err)
	}
	row.ResultPushed = true
	return nil
}

// ensurePushed re-drives a registry push that failed after the local
// finalize commit.
func (s *Service) ensurePushed(ctx context.Context, row *sessionRow) error {
	if row.Status == statusInProgress || row.Result == nil || row.ResultPushed {
		return nil
	}
	return s.pushResult(ctx, row)
}

func (s *Service) ownedSession(ctx context.Context, tramiteID, sessionID string) (*sessionRow, error) {
	row, err := s.loadSessionRow(ctx, s.db, sessionID)
	if err != nil {
		return nil, err
	}
	if row.TramiteID != tramiteID {
		return nil, ErrSessionNotFound
	}
	return row, nil
}

func (s *Service) latestSessionForCase(ctx context.Context, tramiteID string) (*sessionRow, error) {
	var id string
	err := s.db.QueryRowContext(ctx, `
		SELECT id
		FROM exam_sessions
		WHERE tramite_id = ?
		ORDER BY started_at DESC
		LIMIT 1
	`, tramiteID).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("query latest session: %w", err)
	}
	return s.loadSessionRow(ctx, s.db, id)
}

func (s *Service) loadSessionRow(ctx context.Context, q queryable, sessionID string) (*sessionRow, error) {
	row := &sessionRow{}
	var (
		questionsJSON []byte
		resultJSON    sql.NullString
	)
	err := q.QueryRowContext(ctx, `
		SELECT id, tramite_id, license_type, questions, status, started_at, expires_at, submitted_at, result, result_pushed
		FROM exam_sessions
		WHERE id = ?
	`, sessionID).Scan(
		&row.ID,
		&row.TramiteID,
		&row.LicenseType,
		&questionsJSON,
		&row.Status,
		&row.StartedAt,
		&row.ExpiresAt,
		&row.SubmittedAt,
		&resultJSON,
		&row.ResultPushed,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("load session: %w", err)
	}

	if err := json.Unmarshal(questionsJSON, &row.Questions); err != nil {
		return nil, fmt.Errorf("decode question snapshot: %w", err)
	}
	if resultJSON.Valid && resultJSON.String != "" {
		row.Result = &Result{}
		if err := json.Unmarshal([]byte(resultJSON.String), row.Result); err != nil {
			return nil, fmt.Errorf("decode result: %w", err)
		}
	}
	return row, nil
}

func (s *Service) loadAnswers(ctx context.Context, q queryable, sessionID string) ([]Answer, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT question_id, selected
		FROM exam_answers
		WHERE session_id = ?
		ORDER BY updated_at ASC, question_id ASC
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("query answers: %w", err)
	}
	defer rows.Close()

	out := make([]Answer, 0)
	for rows.Next() {
		var a Answer
		if err := rows.Scan(&a.QuestionID, &a.SelectedAnswer); err != nil {
			return nil, fmt.Errorf("scan answer: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate answers: %w", err)
	}
	return out, nil
}

func (s *Service) viewFromRow(ctx context.Context, row *sessionRow) (*SessionView, error) {
	answers, err := s.loadAnswers(ctx, s.db, row.ID)
	if err != nil {
		return nil, err
	}

	view := &SessionView{
		ID:            row.ID,
		TramiteID:     row.TramiteID,
		LicenseType:   row.LicenseType,
		Status:        row.Status,
		StartedAt:     row.StartedAt,
		ExpiresAt:     row.ExpiresAt,
		RemainingSecs: remainingSeconds(row.Status, row.ExpiresAt),
		Questions:     make([]SessionQuestion, 0, len(row.Questions)),
		Answers:       make(map[string]int, len(answers)),
	}
	for _, q := range row.Questions {
		view.Questions = append(view.Questions, SessionQuestion{
			ID:         q.ID,
			Text:       q.Text,
			Options:    q.Options,
			Category:   q.Category,
			Difficulty: q.Difficulty,
		})
	}
	for _, a := range answers {
		view.Answers[a.QuestionID] = a.SelectedAnswer
	}
	return view, nil
}

type queryable interface {
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
}

func remainingSeconds(status string, expiresAt time.Time) int64 {
	if status != statusInProgress {
		return 0
	}
	remaining := time.Until(expiresAt)
	if remaining <= 0 {
		return 0
	}
	return int64(remaining.Seconds())
}

func randomToken(prefix string, nBytes int) (string, error) {
	buf := make([]byte, nBytes)
	if _, err := cryptorand.Read(buf); err != nil {
		return "", err
	}
	return prefix + hex.EncodeToString(buf), nil
}
