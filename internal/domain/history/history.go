// Package history snapshots completed sessions and renders them for
// display and CSV export.
package history

import (
	"fmt"
	"strings"
	"time"

	"github.com/quizmaster/backend/internal/domain/stats"
)

// Entry is an immutable record of one completed, non-empty session.
type Entry struct {
	Timestamp        time.Time
	ClassName        string
	TotalQuestions   int
	CorrectAnswers   int
	Percentage       float64
	MissedQuestions  int
	ChapterStats     map[string]stats.ChapterStat
	SelectedChapters []string
}

// NewEntry snapshots an accumulator. It returns false, and no entry, when
// nothing was answered: a session with zero scored questions is not
// recorded and its percentage is never computed.
func NewEntry(acc *stats.Accumulator, now time.Time) (Entry, bool) {
	if acc.TotalQuestions == 0 {
		return Entry{}, false
	}

	chapterStats := make(map[string]stats.ChapterStat, len(acc.ChapterStats))
	for ch, cs := range acc.ChapterStats {
		chapterStats[ch] = *cs
	}
	chapters := make([]string, len(acc.SelectedChapters))
	copy(chapters, acc.SelectedChapters)

	return Entry{
		Timestamp:        now,
		ClassName:        acc.ClassName,
		TotalQuestions:   acc.TotalQuestions,
		CorrectAnswers:   acc.CorrectAnswers,
		Percentage:       float64(acc.CorrectAnswers) / float64(acc.TotalQuestions) * 100,
		MissedQuestions:  len(acc.MissedQuestions),
		ChapterStats:     chapterStats,
		SelectedChapters: chapters,
	}, true
}

// Header is the column layout shared by the history table and its CSV
// export.
var Header = []string{
	"Date",
	"Class",
	"Total Questions",
	"Correct Answers",
	"Percentage",
	"Missed Questions",
	"Chapters",
}

// Row renders one entry in Header order: timestamp as YYYY-MM-DD HH:MM,
// percentage with one decimal and a trailing %, chapters joined by ", ".
func (e Entry) Row() []string {
	return []string{
		e.Timestamp.Format("2006-01-02 15:04"),
		e.ClassName,
		fmt.Sprintf("%d", e.TotalQuestions),
		fmt.Sprintf("%d", e.CorrectAnswers),
		fmt.Sprintf("%.1f%%", e.Percentage),
		fmt.Sprintf("%d", e.MissedQuestions),
		strings.Join(e.SelectedChapters, ", "),
	}
}

// Table renders all entries as rows, one per entry, in ledger order.
func Table(entries []Entry) [][]string {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, e.Row())
	}
	return rows
}

// Summary aggregates the whole ledger for the history overview.
type Summary struct {
	TotalQuizzes   int
	TotalQuestions int
	AverageScore   float64 // sum of correct over sum of total, as a percentage
	BestScore      float64
}

// Summarize computes aggregate metrics across all entries. The zero
// Summary is returned for an empty ledger.
func Summarize(entries []Entry) Summary {
	var s Summary
	s.TotalQuizzes = len(entries)

	correct := 0
	for _, e := range entries {
		s.TotalQuestions += e.TotalQuestions
		correct += e.CorrectAnswers
		if e.Percentage > s.BestScore {
			s.BestScore = e.Percentage
		}
	}
	if s.TotalQuestions > 0 {
		s.AverageScore = float64(correct) / float64(s.TotalQuestions) * 100
	}
	return s
}
