package exam

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"
)

const (
	// DefaultExamSize is the number of questions in a standard theory exam.
	DefaultExamSize = 20

	// PassingScore is the fixed domain-wide passing threshold, in percent.
	PassingScore = 80

	// generalShare is the fraction of an exam drawn from the general pool.
	generalShare = 0.6
)

var ErrAnswerWithoutQuestion = errors.New("answer references question not in exam")

// Selector assembles randomized exams from an effective question pool.
// The random source is injectable so tests can seed it; production uses
// an unseeded time-based source.
type Selector struct {
	rng *rand.Rand
}

func NewSelector(rng *rand.Rand) *Selector {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Selector{rng: rng}
}

// NormalizeLicenseType coerces unknown categories to particular. This is a
// defined fallback policy, not an error path.
func NormalizeLicenseType(licenseType string) string {
	switch licenseType {
	case CategoryMotocicleta, CategoryParticular, CategoryPublico, CategoryCarga:
		return licenseType
	default:
		return CategoryParticular
	}
}

// SelectExam draws up to count questions for the given license type:
// ceil(count*0.6) from the general pool and the remainder from the
// type-specific pool, each drawn without replacement, then reshuffled
// together so the two groups do not appear in a predictable order.
// A pool shorter than its quota yields fewer questions; no padding.
func (s *Selector) SelectExam(pool []Question, licenseType string, count int) []Question {
	if count <= 0 {
		count = DefaultExamSize
	}
	licenseType = NormalizeLicenseType(licenseType)

	general := make([]Question, 0, len(pool))
	specific := make([]Question, 0, len(pool))
	for _, q := range pool {
		switch q.Category {
		case CategoryGeneral:
			general = append(general, q)
		case licenseType:
			specific = append(specific, q)
		}
	}

	generalCount := int(math.Ceil(float64(count) * generalShare))
	specificCount := count - generalCount

	selected := s.draw(general, generalCount)
	selected = append(selected, s.draw(specific, specificCount)...)
	s.shuffle(selected)
	return selected
}

func (s *Selector) draw(pool []Question, n int) []Question {
	shuffled := make([]Question, len(pool))
	copy(shuffled, pool)
	s.shuffle(shuffled)
	if n > len(shuffled) {
		n = len(shuffled)
	}
	return shuffled[:n]
}

// shuffle is an in-place Fisher-Yates shuffle.
func (s *Selector) shuffle(qs []Question) {
	for i := len(qs) - 1; i > 0; i-- {
		j := s.rng.Intn(i + 1)
		qs[i], qs[j] = qs[j], qs[i]
	}
}

// GradeExam scores answers against the exact question set they were drawn
// from. The same question answered twice resolves last-write-wins. An answer
// whose question id is not in the set is a caller contract violation and
// fails loudly. Unanswered questions stay in the denominator but produce no
// detail row and do not count as incorrect.
func GradeExam(answers []Answer, questions []Question) (*Result, error) {
	byID := make(map[string]Question, len(questions))
	for _, q := range questions {
		byID[q.ID] = q
	}

	final := make(map[string]int, len(answers))
	order := make([]string, 0, len(answers))
	for _, a := range answers {
		if _, seen := final[a.QuestionID]; !seen {
			order = append(order, a.QuestionID)
		}
		final[a.QuestionID] = a.SelectedAnswer
	}

	result := &Result{
		TotalQuestions: len(questions),
		Details:        make([]AnswerDetail, 0, len(order)),
	}
	for _, id := range order {
		q, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrAnswerWithoutQuestion, id)
		}
		selected := final[id]
		isCorrect := selected == q.CorrectAnswer
		if isCorrect {
			result.CorrectAnswers++
		} else {
			result.IncorrectAnswers++
		}
		result.Details = append(result.Details, AnswerDetail{
			Question:       q,
			SelectedAnswer: selected,
			IsCorrect:      isCorrect,
		})
	}

	if result.TotalQuestions > 0 {
		result.Score = int(math.Round(float64(result.CorrectAnswers) / float64(result.TotalQuestions) * 100))
	}
	result.Passed = result.Score >= PassingScore
	return result, nil
}
