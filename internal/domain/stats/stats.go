// Package stats tracks the running score of one quiz session.
package stats

import "github.com/quizmaster/backend/internal/domain/question"

// ChapterStat counts how a single chapter performed within a session.
type ChapterStat struct {
	Asked   int
	Correct int
}

// Missed records one incorrectly answered question. Position is the
// 1-based number of the question within the session.
type Missed struct {
	Question   question.Question
	UserAnswer string
	Position   int
}

// Accumulator collects score bookkeeping for the session in progress.
// It is reset when a new session starts, so missed questions are only
// retained until the next start.
type Accumulator struct {
	ClassName        string
	SelectedChapters []string
	TotalQuestions   int
	CorrectAnswers   int
	ChapterStats     map[string]*ChapterStat
	MissedQuestions  []Missed
}

// New returns an accumulator ready for a session of the given class and
// chapter selection.
func New(className string, selectedChapters []string) *Accumulator {
	chapters := make([]string, len(selectedChapters))
	copy(chapters, selectedChapters)

	return &Accumulator{
		ClassName:        className,
		SelectedChapters: chapters,
		ChapterStats:     make(map[string]*ChapterStat),
	}
}

// Submit scores one answer. Correctness is exact string equality with the
// question's correct answer: case-sensitive, whitespace-sensitive, no
// normalization. Every call counts the question; wrong answers are also
// appended to MissedQuestions.
func (a *Accumulator) Submit(q question.Question, userAnswer string, position int) bool {
	isCorrect := userAnswer == q.CorrectAnswer

	a.TotalQuestions++
	if isCorrect {
		a.CorrectAnswers++
	} else {
		a.MissedQuestions = append(a.MissedQuestions, Missed{
			Question:   q,
			UserAnswer: userAnswer,
			Position:   position,
		})
	}

	cs, ok := a.ChapterStats[q.Chapter]
	if !ok {
		cs = &ChapterStat{}
		a.ChapterStats[q.Chapter] = cs
	}
	cs.Asked++
	if isCorrect {
		cs.Correct++
	}

	return isCorrect
}
