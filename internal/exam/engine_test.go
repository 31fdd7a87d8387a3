package exam

import (
	"errors"
	"math/rand"
	"testing"
)

func testPool(generalN, specificN int, specificCat string) []Question {
	pool := make([]Question, 0, generalN+specificN)
	for i := 0; i < generalN; i++ {
		pool = append(pool, Question{
			ID:            "gen-" + string(rune('a'+i)),
			Text:          "general",
			Options:       []string{"a", "b", "c", "d"},
			CorrectAnswer: 0,
			Category:      CategoryGeneral,
			Difficulty:    DifficultyMedio,
		})
	}
	for i := 0; i < specificN; i++ {
		pool = append(pool, Question{
			ID:            specificCat + "-" + string(rune('a'+i)),
			Text:          "specific",
			Options:       []string{"a", "b", "c", "d"},
			CorrectAnswer: 1,
			Category:      specificCat,
			Difficulty:    DifficultyMedio,
		})
	}
	return pool
}

func TestSelectExamComposition(t *testing.T) {
	sel := NewSelector(rand.New(rand.NewSource(42)))
	pool := testPool(20, 10, CategoryMotocicleta)

	got := sel.SelectExam(pool, CategoryMotocicleta, 20)
	if len(got) != 20 {
		t.Fatalf("len = %d, want 20", len(got))
	}

	general, specific := 0, 0
	seen := map[string]bool{}
	for _, q := range got {
		if seen[q.ID] {
			t.Fatalf("duplicate question %s", q.ID)
		}
		seen[q.ID] = true
		switch q.Category {
		case CategoryGeneral:
			general++
		case CategoryMotocicleta:
			specific++
		default:
			t.Fatalf("unexpected category %s for license motocicleta", q.Category)
		}
	}
	if general != 12 || specific != 8 {
		t.Fatalf("split = %d general / %d specific, want 12/8", general, specific)
	}
}

func TestSelectExamShortPoolNoPadding(t *testing.T) {
	sel := NewSelector(rand.New(rand.NewSource(1)))
	pool := testPool(5, 3, CategoryCarga)

	got := sel.SelectExam(pool, CategoryCarga, 20)
	if len(got) != 8 {
		t.Fatalf("len = %d, want 8 (5 general + 3 specific, no padding)", len(got))
	}
}

func TestSelectExamUnknownLicenseFallsBackToParticular(t *testing.T) {
	sel := NewSelector(rand.New(rand.NewSource(7)))
	pool := testPool(12, 8, CategoryParticular)

	got := sel.SelectExam(pool, "chofer", 20)
	if len(got) != 20 {
		t.Fatalf("len = %d, want 20", len(got))
	}
	for _, q := range got {
		if q.Category != CategoryGeneral && q.Category != CategoryParticular {
			t.Fatalf("unexpected category %s", q.Category)
		}
	}
}

func TestSelectExamDeterministicWithSeed(t *testing.T) {
	pool := testPool(20, 10, CategoryPublico)

	a := NewSelector(rand.New(rand.NewSource(99))).SelectExam(pool, CategoryPublico, 20)
	b := NewSelector(rand.New(rand.NewSource(99))).SelectExam(pool, CategoryPublico, 20)

	if len(a) != len(b) {
		t.Fatalf("lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].ID != b[i].ID {
			t.Fatalf("position %d differs: %s vs %s", i, a[i].ID, b[i].ID)
		}
	}
}

func TestGradeExamPassBoundary(t *testing.T) {
	tests := []struct {
		name       string
		total      int
		correct    int
		wantScore  int
		wantPassed bool
	}{
		{name: "16 of 20 passes at exactly 80", total: 20, correct: 16, wantScore: 80, wantPassed: true},
		{name: "15 of 19 rounds to 79 and fails", total: 19, correct: 15, wantScore: 79, wantPassed: false},
		{name: "perfect score", total: 20, correct: 20, wantScore: 100, wantPassed: true},
		{name: "nothing answered", total: 20, correct: 0, wantScore: 0, wantPassed: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			questions := make([]Question, tc.total)
			answers := make([]Answer, 0, tc.correct)
			for i := range questions {
				id := "q-" + string(rune('a'+i%26)) + string(rune('a'+i/26))
				questions[i] = Question{ID: id, CorrectAnswer: 2, Options: []string{"a", "b", "c", "d"}}
				if i < tc.correct {
					answers = append(answers, Answer{QuestionID: id, SelectedAnswer: 2})
				}
			}

			result, err := GradeExam(answers, questions)
			if err != nil {
				t.Fatalf("grade: %v", err)
			}
			if result.Score != tc.wantScore {
				t.Fatalf("score = %d, want %d", result.Score, tc.wantScore)
			}
			if result.Passed != tc.wantPassed {
				t.Fatalf("passed = %v, want %v", result.Passed, tc.wantPassed)
			}
			if result.TotalQuestions != tc.total {
				t.Fatalf("total = %d, want %d", result.TotalQuestions, tc.total)
			}
			if result.CorrectAnswers != tc.correct {
				t.Fatalf("correct = %d, want %d", result.CorrectAnswers, tc.correct)
			}
		})
	}
}

func TestGradeExamLastWriteWins(t *testing.T) {
	questions := []Question{
		{ID: "q-1", CorrectAnswer: 1, Options: []string{"a", "b", "c", "d"}},
		{ID: "q-2", CorrectAnswer: 3, Options: []string{"a", "b", "c", "d"}},
	}
	answers := []Answer{
		{QuestionID: "q-1", SelectedAnswer: 0},
		{QuestionID: "q-2", SelectedAnswer: 3},
		{QuestionID: "q-1", SelectedAnswer: 1},
	}

	result, err := GradeExam(answers, questions)
	if err != nil {
		t.Fatalf("grade: %v", err)
	}
	if result.CorrectAnswers != 2 {
		t.Fatalf("correct = %d, want 2 (the revised q-1 answer must count)", result.CorrectAnswers)
	}
	if len(result.Details) != 2 {
		t.Fatalf("details = %d, want 2 (no duplicate rows)", len(result.Details))
	}
}

func TestGradeExamUnansweredStayInDenominator(t *testing.T) {
	questions := []Question{
		{ID: "q-1", CorrectAnswer: 0, Options: []string{"a", "b", "c", "d"}},
		{ID: "q-2", CorrectAnswer: 0, Options: []string{"a", "b", "c", "d"}},
		{ID: "q-3", CorrectAnswer: 0, Options: []string{"a", "b", "c", "d"}},
		{ID: "q-4", CorrectAnswer: 0, Options: []string{"a", "b", "c", "d"}},
	}
	answers := []Answer{
		{QuestionID: "q-1", SelectedAnswer: 0},
		{QuestionID: "q-2", SelectedAnswer: 1},
	}

	result, err := GradeExam(answers, questions)
	if err != nil {
		t.Fatalf("grade: %v", err)
	}
	if result.Score != 25 {
		t.Fatalf("score = %d, want 25 (1 of 4)", result.Score)
	}
	if result.IncorrectAnswers != 1 {
		t.Fatalf("incorrect = %d, want 1 (unanswered are not incorrect)", result.IncorrectAnswers)
	}
	if len(result.Details) != 2 {
		t.Fatalf("details = %d, want rows only for answered questions", len(result.Details))
	}
}

func TestGradeExamRejectsForeignAnswer(t *testing.T) {
	questions := []Question{{ID: "q-1", CorrectAnswer: 0, Options: []string{"a", "b", "c", "d"}}}
	answers := []Answer{{QuestionID: "q-999", SelectedAnswer: 0}}

	_, err := GradeExam(answers, questions)
	if !errors.Is(err, ErrAnswerWithoutQuestion) {
		t.Fatalf("err = %v, want ErrAnswerWithoutQuestion", err)
	}
}
