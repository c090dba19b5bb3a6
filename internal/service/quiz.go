// Package service wires the quiz domain together: the store-backed class
// registry, the single active session, its score accumulator, and the
// history ledger. Handlers talk to QuizService instead of reaching into
// domain packages directly.
package service

import (
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/quizmaster/backend/internal/domain/history"
	"github.com/quizmaster/backend/internal/domain/question"
	"github.com/quizmaster/backend/internal/domain/session"
	"github.com/quizmaster/backend/internal/domain/stats"
	"github.com/quizmaster/backend/internal/loader"
	"github.com/quizmaster/backend/internal/store"
)

var (
	// ErrNoActiveSession means no session has been started, or the last
	// one was already submitted.
	ErrNoActiveSession = errors.New("no active session")
)

// Direction is a navigation request within the active session.
type Direction string

const (
	DirectionNext     Direction = "next"
	DirectionPrevious Direction = "previous"
)

// QuizService holds the application state explicitly: one active session
// and its accumulator at a time, on top of the store. The mutex serializes
// HTTP handlers; the application model itself is one interactive user.
type QuizService struct {
	store  *store.SQLiteStore
	logger *slog.Logger

	mu      sync.Mutex
	session *session.Session
	current *stats.Accumulator
	// lastStats keeps the most recent session's accumulator so missed
	// questions can be reviewed and exported until the next start.
	lastStats *stats.Accumulator
}

// NewQuizService creates a QuizService with empty registries.
func NewQuizService(s *store.SQLiteStore, logger *slog.Logger) *QuizService {
	return &QuizService{
		store:  s,
		logger: logger,
	}
}

// LoadSource parses a question file and registers its pool under
// className, replacing any previous pool for that class. A failed load
// leaves previously loaded classes untouched.
func (qs *QuizService) LoadSource(className, filename string, r io.Reader) (loader.Report, error) {
	pool, report, err := loader.Load(filename, r)
	if err != nil {
		return report, err
	}

	if err := qs.store.SaveClass(className, pool); err != nil {
		return report, err
	}

	qs.logger.Info("class loaded",
		"class", className,
		"questions", report.Loaded,
		"chapters", len(pool.Chapters()),
		"skipped_rows", report.SkippedRows,
	)
	return report, nil
}

// ListClasses returns loaded class names in load order.
func (qs *QuizService) ListClasses() ([]string, error) {
	return qs.store.ListClasses()
}

// ListChapters returns a class's chapter names in first-seen order.
func (qs *QuizService) ListChapters(className string) ([]string, error) {
	pool, err := qs.store.GetPool(className)
	if err != nil {
		return nil, err
	}
	return pool.Chapters(), nil
}

// ListQuestions returns every question of a class, chapter by chapter.
func (qs *QuizService) ListQuestions(className string) ([]question.Question, error) {
	pool, err := qs.store.GetPool(className)
	if err != nil {
		return nil, err
	}

	var out []question.Question
	for _, ch := range pool.Chapters() {
		out = append(out, pool.Questions(ch)...)
	}
	return out, nil
}

// StartSession begins a new quiz over the selected chapters of a class.
// The previous session, if any, is discarded; its stats survive as "last
// session" until this start resets them. A failed start leaves no partial
// session behind.
func (qs *QuizService) StartSession(className string, chapters []string, count int) (*session.Session, error) {
	pool, err := qs.store.GetPool(className)
	if err != nil {
		return nil, err
	}

	sess, err := session.Start(pool, className, chapters, count)
	if err != nil {
		return nil, err
	}

	qs.mu.Lock()
	qs.session = sess
	qs.current = stats.New(className, chapters)
	qs.lastStats = qs.current
	qs.mu.Unlock()

	qs.logger.Info("session started",
		"session_id", sess.ID,
		"class", className,
		"questions", len(sess.Questions),
	)
	return sess, nil
}

// CurrentQuestion describes the question at the session's position,
// ready for display.
type CurrentQuestion struct {
	Position int
	Total    int
	Chapter  string
	Text     string
	Options  []string
	Answer   string // recorded answer, empty if unanswered
}

// GetCurrentQuestion returns the active session's current question with
// its cached display-option order and progress.
func (qs *QuizService) GetCurrentQuestion() (CurrentQuestion, error) {
	qs.mu.Lock()
	defer qs.mu.Unlock()

	sess, err := qs.activeSession()
	if err != nil {
		return CurrentQuestion{}, err
	}

	q := sess.Current()
	current, total := sess.Progress()
	return CurrentQuestion{
		Position: current,
		Total:    total,
		Chapter:  q.Chapter,
		Text:     q.Text,
		Options:  sess.Options(sess.Position),
		Answer:   sess.Answer(sess.Position),
	}, nil
}

// RecordAnswer stores the user's answer for the current question.
func (qs *QuizService) RecordAnswer(answer string) error {
	qs.mu.Lock()
	defer qs.mu.Unlock()

	sess, err := qs.activeSession()
	if err != nil {
		return err
	}
	if answer == "" {
		return errors.New("answer cannot be empty")
	}
	return sess.RecordAnswer(sess.Position, answer)
}

// Navigate moves the active session forward or back.
func (qs *QuizService) Navigate(dir Direction) error {
	qs.mu.Lock()
	defer qs.mu.Unlock()

	sess, err := qs.activeSession()
	if err != nil {
		return err
	}

	switch dir {
	case DirectionNext:
		sess.Next()
	case DirectionPrevious:
		sess.Previous()
	default:
		return errors.New("direction must be next or previous")
	}
	return nil
}

// SubmitSession scores every answered question, archives the result into
// the history ledger, and ends the session. Sessions where nothing was
// answered leave no history entry.
func (qs *QuizService) SubmitSession() (history.Entry, bool, error) {
	qs.mu.Lock()
	defer qs.mu.Unlock()

	sess, err := qs.activeSession()
	if err != nil {
		return history.Entry{}, false, err
	}

	if err := sess.Submit(qs.current); err != nil {
		return history.Entry{}, false, err
	}

	entry, ok := history.NewEntry(qs.current, time.Now())
	if ok {
		if err := qs.store.SaveHistoryEntry(entry); err != nil {
			return history.Entry{}, false, err
		}
	}

	qs.logger.Info("session submitted",
		"session_id", sess.ID,
		"answered", qs.current.TotalQuestions,
		"correct", qs.current.CorrectAnswers,
		"recorded", ok,
	)

	qs.session = nil
	qs.current = nil
	return entry, ok, nil
}

// HistoryTable returns the rendered ledger rows.
func (qs *QuizService) HistoryTable() ([][]string, error) {
	entries, err := qs.store.ListHistory()
	if err != nil {
		return nil, err
	}
	return history.Table(entries), nil
}

// HistorySummary aggregates the whole ledger.
func (qs *QuizService) HistorySummary() (history.Summary, error) {
	entries, err := qs.store.ListHistory()
	if err != nil {
		return history.Summary{}, err
	}
	return history.Summarize(entries), nil
}

// ExportHistoryCSV writes the history CSV export to w.
func (qs *QuizService) ExportHistoryCSV(w io.Writer) error {
	entries, err := qs.store.ListHistory()
	if err != nil {
		return err
	}
	return history.WriteCSV(w, entries)
}

// MissedQuestions returns the missed questions of the most recent
// session. They are reset when a new session starts.
func (qs *QuizService) MissedQuestions() []stats.Missed {
	qs.mu.Lock()
	defer qs.mu.Unlock()

	if qs.lastStats == nil {
		return nil
	}
	out := make([]stats.Missed, len(qs.lastStats.MissedQuestions))
	copy(out, qs.lastStats.MissedQuestions)
	return out
}

// MissedQuestionsTable renders the most recent session's missed questions.
func (qs *QuizService) MissedQuestionsTable() [][]string {
	return history.MissedTable(qs.MissedQuestions())
}

// ExportMissedCSV writes the missed-questions CSV export to w.
func (qs *QuizService) ExportMissedCSV(w io.Writer) error {
	return history.WriteMissedCSV(w, qs.MissedQuestions())
}

// activeSession must be called with the mutex held.
func (qs *QuizService) activeSession() (*session.Session, error) {
	if qs.session == nil || qs.session.Completed {
		return nil, ErrNoActiveSession
	}
	return qs.session, nil
}
