package exam

import (
	"context"
	"errors"
	"testing"

	"licsim/internal/db"
	"licsim/internal/overlay"
)

func newTestBank(t *testing.T) *Bank {
	t.Helper()
	conn, err := db.Open(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	if err := db.Migrate(context.Background(), conn); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return NewBank(Catalog(), overlay.NewStore(conn))
}

func validTestQuestion(id string) Question {
	return Question{
		ID:            id,
		Text:          "¿Pregunta de prueba?",
		Options:       []string{"a", "b", "c", "d"},
		CorrectAnswer: 1,
		Explanation:   "porque sí",
		Category:      CategoryGeneral,
		Difficulty:    DifficultyMedio,
	}
}

func TestCatalogCopiesAreIsolated(t *testing.T) {
	first := Catalog()
	first[0].Options[0] = "manipulado"
	first[0].Text = "manipulado"

	second := Catalog()
	if second[0].Options[0] == "manipulado" || second[0].Text == "manipulado" {
		t.Fatal("mutating a returned catalog copy must not reach the base pool")
	}
}

func TestBankAddAppendsToEffectivePool(t *testing.T) {
	b := newTestBank(t)
	ctx := context.Background()
	baseLen := len(Catalog())

	added, err := b.Add(ctx, validTestQuestion("extra-1"))
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if added.ID != "extra-1" {
		t.Fatalf("id = %s", added.ID)
	}

	pool, err := b.Effective(ctx)
	if err != nil {
		t.Fatalf("effective: %v", err)
	}
	if len(pool) != baseLen+1 {
		t.Fatalf("pool = %d, want %d", len(pool), baseLen+1)
	}
	if pool[len(pool)-1].ID != "extra-1" {
		t.Fatal("added question must append after the base pool")
	}
}

func TestBankAddGeneratesIDAndRejectsDuplicates(t *testing.T) {
	b := newTestBank(t)
	ctx := context.Background()

	q := validTestQuestion("")
	added, err := b.Add(ctx, q)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if added.ID == "" {
		t.Fatal("expected a generated id")
	}

	if _, err := b.Add(ctx, validTestQuestion("gen-001")); !errors.Is(err, ErrInvalidQuestion) {
		t.Fatalf("duplicate id err = %v, want ErrInvalidQuestion", err)
	}
}

func TestBankAddCannotResurrectDeletedCatalogQuestion(t *testing.T) {
	b := newTestBank(t)
	ctx := context.Background()
	baseLen := len(Catalog())

	if err := b.Delete(ctx, "gen-001"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := b.Add(ctx, validTestQuestion("gen-001")); !errors.Is(err, ErrInvalidQuestion) {
		t.Fatalf("add over deleted catalog id err = %v, want ErrInvalidQuestion", err)
	}

	pool, err := b.Effective(ctx)
	if err != nil {
		t.Fatalf("effective: %v", err)
	}
	if len(pool) != baseLen-1 {
		t.Fatalf("pool = %d, want %d (deletion must survive the rejected add)", len(pool), baseLen-1)
	}
	seen := map[string]int{}
	for _, q := range pool {
		seen[q.ID]++
		if seen[q.ID] > 1 {
			t.Fatalf("id %s appears %d times in effective pool", q.ID, seen[q.ID])
		}
	}
	if seen["gen-001"] != 0 {
		t.Fatal("gen-001 must stay deleted")
	}
}

func TestBankValidatesInvariants(t *testing.T) {
	b := newTestBank(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*Question)
	}{
		{name: "three options", mutate: func(q *Question) { q.Options = q.Options[:3] }},
		{name: "correct index out of range", mutate: func(q *Question) { q.CorrectAnswer = 4 }},
		{name: "negative correct index", mutate: func(q *Question) { q.CorrectAnswer = -1 }},
		{name: "unknown category", mutate: func(q *Question) { q.Category = "nautica" }},
		{name: "unknown difficulty", mutate: func(q *Question) { q.Difficulty = "facil" }},
		{name: "empty text", mutate: func(q *Question) { q.Text = "  " }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			q := validTestQuestion("x-1")
			tc.mutate(&q)
			if _, err := b.Add(ctx, q); !errors.Is(err, ErrInvalidQuestion) {
				t.Fatalf("err = %v, want ErrInvalidQuestion", err)
			}
		})
	}
}

func TestBankEditReplacesBaseQuestionInPlace(t *testing.T) {
	b := newTestBank(t)
	ctx := context.Background()

	edited := validTestQuestion("gen-001")
	edited.Text = "texto corregido"
	if _, err := b.Edit(ctx, "gen-001", edited); err != nil {
		t.Fatalf("edit: %v", err)
	}

	pool, err := b.Effective(ctx)
	if err != nil {
		t.Fatalf("effective: %v", err)
	}
	if pool[0].ID != "gen-001" || pool[0].Text != "texto corregido" {
		t.Fatalf("pool[0] = %s %q, want edited gen-001 in original position", pool[0].ID, pool[0].Text)
	}
}

func TestBankDeleteSoftDeletesBaseAndDropsAdded(t *testing.T) {
	b := newTestBank(t)
	ctx := context.Background()
	baseLen := len(Catalog())

	if err := b.Delete(ctx, "gen-001"); err != nil {
		t.Fatalf("delete base: %v", err)
	}
	if _, err := b.Add(ctx, validTestQuestion("extra-1")); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := b.Delete(ctx, "extra-1"); err != nil {
		t.Fatalf("delete added: %v", err)
	}

	pool, err := b.Effective(ctx)
	if err != nil {
		t.Fatalf("effective: %v", err)
	}
	if len(pool) != baseLen-1 {
		t.Fatalf("pool = %d, want %d", len(pool), baseLen-1)
	}
	for _, q := range pool {
		if q.ID == "gen-001" || q.ID == "extra-1" {
			t.Fatalf("deleted question %s still effective", q.ID)
		}
	}

	if err := b.Delete(ctx, "gen-001"); !errors.Is(err, ErrQuestionNotFound) {
		t.Fatalf("double delete err = %v, want ErrQuestionNotFound", err)
	}
	if err := b.Delete(ctx, "no-such"); !errors.Is(err, ErrQuestionNotFound) {
		t.Fatalf("unknown delete err = %v, want ErrQuestionNotFound", err)
	}
}

func TestBankResetRestoresCatalog(t *testing.T) {
	b := newTestBank(t)
	ctx := context.Background()
	baseLen := len(Catalog())

	if err := b.Delete(ctx, "gen-001"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := b.Add(ctx, validTestQuestion("extra-1")); err != nil {
		t.Fatalf("add: %v", err)
	}

	if err := b.Reset(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}

	pool, err := b.Effective(ctx)
	if err != nil {
		t.Fatalf("effective: %v", err)
	}
	if len(pool) != baseLen {
		t.Fatalf("pool = %d after reset, want %d", len(pool), baseLen)
	}
	if pool[0].ID != "gen-001" {
		t.Fatal("reset must restore the shipped catalog order")
	}
}
