package history

import (
	"encoding/csv"
	"io"

	"github.com/quizmaster/backend/internal/domain/stats"
)

// WriteCSV writes the history export: the shared Header followed by one
// row per entry, with standard CSV quoting. The columns match Table
// byte for byte.
func WriteCSV(w io.Writer, entries []Entry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}
	for _, e := range entries {
		if err := cw.Write(e.Row()); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// MissedHeader is the column layout of the missed-questions table and
// its CSV export.
var MissedHeader = []string{
	"Chapter",
	"Question",
	"Your Answer",
	"Correct Answer",
	"Reasoning",
}

// MissedRow renders one missed question in MissedHeader order.
func MissedRow(m stats.Missed) []string {
	return []string{
		m.Question.Chapter,
		m.Question.Text,
		m.UserAnswer,
		m.Question.CorrectAnswer,
		m.Question.Reasoning,
	}
}

// MissedTable renders the missed questions of the most recent session.
func MissedTable(missed []stats.Missed) [][]string {
	rows := make([][]string, 0, len(missed))
	for _, m := range missed {
		rows = append(rows, MissedRow(m))
	}
	return rows
}

// WriteMissedCSV writes the missed-questions export for the most recent
// session.
func WriteMissedCSV(w io.Writer, missed []stats.Missed) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(MissedHeader); err != nil {
		return err
	}
	for _, m := range missed {
		if err := cw.Write(MissedRow(m)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
