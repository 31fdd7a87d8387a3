package exam

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"licsim/internal/overlay"
)

var (
	ErrQuestionNotFound = errors.New("question not found")
	ErrInvalidQuestion  = errors.New("invalid question")
)

// Bank is the effective question pool: the static catalog with the admin
// overlay merged on top. The catalog is never mutated; every admin change
// lands in the mutation log and a reset restores the shipped pool.
type Bank struct {
	base    []Question
	overlay *overlay.Store
}

func NewBank(base []Question, ov *overlay.Store) *Bank {
	return &Bank{base: base, overlay: ov}
}

// Effective merges the overlay onto the base pool: soft-deleted ids are
// dropped, edited entries replace their base row in place, added entries
// append in insertion order.
func (b *Bank) Effective(ctx context.Context) ([]Question, error) {
	log, err := b.overlay.Load(ctx, overlay.BucketQuestions)
	if err != nil {
		return nil, err
	}

	out := make([]Question, 0, len(b.base)+len(log.Added))
	for _, q := range b.base {
		if log.Deleted[q.ID] {
			continue
		}
		if payload, ok := log.Edits[q.ID]; ok {
			var edited Question
			if err := json.Unmarshal(payload, &edited); err != nil {
				return nil, fmt.Errorf("decode edited question %s: %w", q.ID, err)
			}
			out = append(out, edited)
			continue
		}
		out = append(out, q)
	}
	for _, payload := range log.Added {
		var added Question
		if err := json.Unmarshal(payload, &added); err != nil {
			return nil, fmt.Errorf("decode added question: %w", err)
		}
		out = append(out, added)
	}
	return out, nil
}

// Add validates and appends a new question to the pool. A blank id gets a
// generated one. Catalog ids are reserved even while soft-deleted: an add
// under one would both clear the delete marker and append, putting the id
// in the pool twice.
func (b *Bank) Add(ctx context.Context, q Question) (*Question, error) {
	q.ID = strings.TrimSpace(q.ID)
	if q.ID == "" {
		id, err := randomToken("adm-", 4)
		if err != nil {
			return nil, fmt.Errorf("generate question id: %w", err)
		}
		q.ID = id
	}

	if err := validateQuestion(q); err != nil {
		return nil, err
	}

	if b.inBase(q.ID) {
		return nil, fmt.Errorf("%w: id %s belongs to the catalog", ErrInvalidQuestion, q.ID)
	}
	effective, err := b.Effective(ctx)
	if err != nil {
		return nil, err
	}
	for _, existing := range effective {
		if existing.ID == q.ID {
			return nil, fmt.Errorf("%w: duplicate id %s", ErrInvalidQuestion, q.ID)
		}
	}

	payload, err := json.Marshal(q)
	if err != nil {
		return nil, fmt.Errorf("encode question: %w", err)
	}
	if err := b.overlay.Put(ctx, overlay.BucketQuestions, q.ID, overlay.OpAdd, payload); err != nil {
		return nil, err
	}
	return &q, nil
}

// Edit replaces an effective question by id. The id itself is immutable.
func (b *Bank) Edit(ctx context.Context, id string, q Question) (*Question, error) {
	q.ID = id
	if err := validateQuestion(q); err != nil {
		return nil, err
	}

	op, _, err := b.overlay.Get(ctx, overlay.BucketQuestions, id)
	if err != nil {
		return nil, err
	}
	if op == overlay.OpDelete {
		return nil, ErrQuestionNotFound
	}

	payload, err := json.Marshal(q)
	if err != nil {
		return nil, fmt.Errorf("encode question: %w", err)
	}

	// An admin-added question stays an add so a later delete removes it
	// outright instead of leaving a dangling soft-delete marker.
	if op == overlay.OpAdd {
		if err := b.overlay.Put(ctx, overlay.BucketQuestions, id, overlay.OpAdd, payload); err != nil {
			return nil, err
		}
		return &q, nil
	}

	if !b.inBase(id) {
		return nil, ErrQuestionNotFound
	}
	if err := b.overlay.Put(ctx, overlay.BucketQuestions, id, overlay.OpEdit, payload); err != nil {
		return nil, err
	}
	return &q, nil
}

// Delete removes a question from the effective pool. Catalog questions are
// soft-deleted (the base row is untouched); admin-added questions lose
// their log row entirely.
func (b *Bank) Delete(ctx context.Context, id string) error {
	op, _, err := b.overlay.Get(ctx, overlay.BucketQuestions, id)
	if err != nil {
		return err
	}

	switch {
	case op == overlay.OpDelete:
		return ErrQuestionNotFound
	case op == overlay.OpAdd:
		return b.overlay.Remove(ctx, overlay.BucketQuestions, id)
	case b.inBase(id):
		return b.overlay.MarkDeleted(ctx, overlay.BucketQuestions, id)
	default:
		return ErrQuestionNotFound
	}
}

// Reset discards every admin customization and restores the shipped catalog.
func (b *Bank) Reset(ctx context.Context) error {
	return b.overlay.Reset(ctx, overlay.BucketQuestions)
}

func (b *Bank) inBase(id string) bool {
	for _, q := range b.base {
		if q.ID == id {
			return true
		}
	}
	return false
}

func validateQuestion(q Question) error {
	if strings.TrimSpace(q.Text) == "" {
		return fmt.Errorf("%w: empty text", ErrInvalidQuestion)
	}
	if len(q.Options) != 4 {
		return fmt.Errorf("%w: want 4 options, got %d", ErrInvalidQuestion, len(q.Options))
	}
	for i, opt := range q.Options {
		if strings.TrimSpace(opt) == "" {
			return fmt.Errorf("%w: option %d is empty", ErrInvalidQuestion, i)
		}
	}
	if q.CorrectAnswer < 0 || q.CorrectAnswer > 3 {
		return fmt.Errorf("%w: correct answer index %d out of range", ErrInvalidQuestion, q.CorrectAnswer)
	}
	if !KnownCategory(q.Category) {
		return fmt.Errorf("%w: unknown category %q", ErrInvalidQuestion, q.Category)
	}
	if !KnownDifficulty(q.Difficulty) {
		return fmt.Errorf("%w: unknown difficulty %q", ErrInvalidQuestion, q.Difficulty)
	}
	return nil
}
