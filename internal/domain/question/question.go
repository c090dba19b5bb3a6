package question

import "errors"

// AlternativeCount is the number of wrong answers every question carries.
// Together with the correct answer a question is always shown as 4 options.
const AlternativeCount = 3

// Question is a single multiple-choice question. All fields are trimmed
// and non-empty by the time a Question exists; instances are never mutated
// after creation.
type Question struct {
	Chapter       string
	Text          string
	Reasoning     string
	CorrectAnswer string
	Alternatives  []string // exactly AlternativeCount entries
}

// New validates the fields and builds a Question. The caller is expected to
// have trimmed the inputs already; New rejects empty fields rather than
// fixing them up.
func New(chapter, text, reasoning, correctAnswer string, alternatives []string) (Question, error) {
	if chapter == "" {
		return Question{}, errors.New("question chapter cannot be empty")
	}
	if text == "" {
		return Question{}, errors.New("question text cannot be empty")
	}
	if reasoning == "" {
		return Question{}, errors.New("question reasoning cannot be empty")
	}
	if correctAnswer == "" {
		return Question{}, errors.New("question correct answer cannot be empty")
	}
	if len(alternatives) != AlternativeCount {
		return Question{}, errors.New("question must have exactly 3 alternatives")
	}
	for _, alt := range alternatives {
		if alt == "" {
			return Question{}, errors.New("question alternatives cannot be empty")
		}
	}

	alts := make([]string, AlternativeCount)
	copy(alts, alternatives)

	return Question{
		Chapter:       chapter,
		Text:          text,
		Reasoning:     reasoning,
		CorrectAnswer: correctAnswer,
		Alternatives:  alts,
	}, nil
}
