// Package session implements the quiz-session state machine: question
// selection, navigation, answer recording, and submission into the score
// accumulator.
package session

import (
	"errors"
	"math/rand"

	"github.com/quizmaster/backend/internal/domain/question"
	"github.com/quizmaster/backend/internal/domain/stats"
	"github.com/quizmaster/backend/internal/id"
)

var (
	// ErrNoQuestions means the selected chapters contain no questions.
	ErrNoQuestions = errors.New("no questions available for selected chapters")
	// ErrInvalidCount means the requested question count is outside
	// [1, number of available questions].
	ErrInvalidCount = errors.New("requested question count out of range")
	// ErrCompleted means the session was already submitted.
	ErrCompleted = errors.New("session already completed")
)

// Unanswered is the sentinel stored for questions the user has not
// answered yet. Display options are never empty strings, so it cannot
// collide with a real answer.
const Unanswered = ""

// Session is one quiz attempt. The question sequence is fixed at start;
// navigation and answer recording mutate Position and answers until
// Submit makes the session terminal.
type Session struct {
	ID               string
	ClassName        string
	SelectedChapters []string
	Questions        []question.Question
	Position         int
	Completed        bool

	answers []string
	// optionOrder caches the shuffled 4-option display list per question
	// position. Built lazily on first view, then reused so navigating
	// back and forth shows a stable order.
	optionOrder map[int][]string
}

// Start selects count questions at random, without replacement, from the
// union of the selected chapters' questions in pool. The returned session
// begins at position 0 with every question unanswered.
func Start(pool *question.Pool, className string, selectedChapters []string, count int) (*Session, error) {
	union := pool.Union(selectedChapters)
	if len(union) == 0 {
		return nil, ErrNoQuestions
	}
	if count < 1 || count > len(union) {
		return nil, ErrInvalidCount
	}

	rand.Shuffle(len(union), func(i, j int) {
		union[i], union[j] = union[j], union[i]
	})
	selected := union[:count]

	chapters := make([]string, len(selectedChapters))
	copy(chapters, selectedChapters)

	return &Session{
		ID:               id.GenerateID(),
		ClassName:        className,
		SelectedChapters: chapters,
		Questions:        selected,
		answers:          make([]string, count),
		optionOrder:      make(map[int][]string),
	}, nil
}

// Current returns the question at the current position.
func (s *Session) Current() question.Question {
	return s.Questions[s.Position]
}

// Next advances the position, stopping at the last question.
func (s *Session) Next() {
	if s.Position < len(s.Questions)-1 {
		s.Position++
	}
}

// Previous moves the position back, stopping at the first question.
func (s *Session) Previous() {
	if s.Position > 0 {
		s.Position--
	}
}

// RecordAnswer stores the user's answer for the question at pos,
// overwriting any earlier answer for that slot.
func (s *Session) RecordAnswer(pos int, answer string) error {
	if s.Completed {
		return ErrCompleted
	}
	if pos < 0 || pos >= len(s.Questions) {
		return errors.New("question position out of range")
	}
	s.answers[pos] = answer
	return nil
}

// Answer returns the recorded answer for pos, or Unanswered.
func (s *Session) Answer(pos int) string {
	if pos < 0 || pos >= len(s.answers) {
		return Unanswered
	}
	return s.answers[pos]
}

// Options returns the display list for the question at pos: its three
// alternatives plus the correct answer, shuffled once on first access
// and cached for the lifetime of the session.
func (s *Session) Options(pos int) []string {
	if cached, ok := s.optionOrder[pos]; ok {
		out := make([]string, len(cached))
		copy(out, cached)
		return out
	}

	q := s.Questions[pos]
	options := make([]string, 0, len(q.Alternatives)+1)
	options = append(options, q.Alternatives...)
	options = append(options, q.CorrectAnswer)
	rand.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})

	s.optionOrder[pos] = options

	out := make([]string, len(options))
	copy(out, options)
	return out
}

// Progress reports the 1-based current question number and the total.
func (s *Session) Progress() (current, total int) {
	return s.Position + 1, len(s.Questions)
}

// Submit scores every answered question in position order (1-based) into
// acc and marks the session completed. Unanswered questions are skipped
// entirely: they are neither counted nor treated as wrong. A session can
// only be submitted once.
func (s *Session) Submit(acc *stats.Accumulator) error {
	if s.Completed {
		return ErrCompleted
	}

	for i, q := range s.Questions {
		if s.answers[i] == Unanswered {
			continue
		}
		acc.Submit(q, s.answers[i], i+1)
	}

	s.Completed = true
	return nil
}
