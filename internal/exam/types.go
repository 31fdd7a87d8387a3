package exam

// Question categories. CategoryGeneral questions appear in every exam; the
// remaining four mirror the license types a citizen can apply for.
const (
	CategoryGeneral     = "general"
	CategoryMotocicleta = "motocicleta"
	CategoryParticular  = "particular"
	CategoryPublico     = "publico"
	CategoryCarga       = "carga"
)

const (
	DifficultyMedio    = "medio"
	DifficultyAvanzado = "avanzado"
)

// Question is a multiple-choice theory question with exactly four options.
type Question struct {
	ID            string   `json:"id"`
	Text          string   `json:"text"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
	Explanation   string   `json:"explanation"`
	Category      string   `json:"category"`
	Difficulty    string   `json:"difficulty"`
}

// Answer is one selection made by the citizen during an exam session.
type Answer struct {
	QuestionID     string `json:"questionId"`
	SelectedAnswer int    `json:"selectedAnswer"`
}

// AnswerDetail carries the graded outcome for one answered question,
// used by the post-exam review screen.
type AnswerDetail struct {
	Question       Question `json:"question"`
	SelectedAnswer int      `json:"selectedAnswer"`
	IsCorrect      bool     `json:"isCorrect"`
}

// Result is the graded outcome of a full exam. Immutable once computed.
type Result struct {
	TotalQuestions   int            `json:"totalQuestions"`
	CorrectAnswers   int            `json:"correctAnswers"`
	IncorrectAnswers int            `json:"incorrectAnswers"`
	Score            int            `json:"score"`
	Passed           bool           `json:"passed"`
	Details          []AnswerDetail `json:"details"`
}

// LicenseCategories lists the four bookable license types, in catalog order.
func LicenseCategories() []string {
	return []string{CategoryMotocicleta, CategoryParticular, CategoryPublico, CategoryCarga}
}

// KnownCategory reports whether v is a valid question category,
// including the shared general pool.
func KnownCategory(v string) bool {
	switch v {
	case CategoryGeneral, CategoryMotocicleta, CategoryParticular, CategoryPublico, CategoryCarga:
		return true
	}
	return false
}

// KnownDifficulty reports whether v is a valid difficulty label.
func KnownDifficulty(v string) bool {
	return v == DifficultyMedio || v == DifficultyAvanzado
}
