// Package loader turns tabular question sources (CSV or XLSX) into a
// validated question pool. Loading is best-effort at the row level: rows
// with missing required fields are dropped, not fatal.
package loader

import (
	"encoding/csv"
	"io"
	"path/filepath"
	"strings"

	"github.com/quizmaster/backend/internal/domain/question"
)

// RequiredColumns are the header names every source must carry, matched
// exactly. Column order is irrelevant and extra columns are ignored.
var RequiredColumns = []string{
	"Chapter",
	"Question Text",
	"Reasoning",
	"Correct_Answer",
	"Alternative_1",
	"Alternative_2",
	"Alternative_3",
}

// Report carries load diagnostics that do not affect the pass/fail outcome.
type Report struct {
	Loaded      int // questions that made it into the pool
	SkippedRows int // non-empty rows dropped for missing required fields
}

// Load dispatches on the file extension: ".xlsx" sources go through
// excelize, everything else is treated as CSV.
func Load(filename string, r io.Reader) (*question.Pool, Report, error) {
	if strings.EqualFold(filepath.Ext(filename), ".xlsx") {
		return LoadXLSX(r)
	}
	return LoadCSV(r)
}

// LoadCSV parses a CSV source with a header row into a question pool.
// It fails with *SchemaError when required columns are absent, with
// *SourceError on malformed CSV, and with ErrNoQuestions when no row
// survives validation.
func LoadCSV(r io.Reader) (*question.Pool, Report, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // ragged rows are a row-level concern, not fatal

	header, err := cr.Read()
	if err != nil {
		return nil, Report{}, &SourceError{Cause: err}
	}

	cols, err := mapColumns(header)
	if err != nil {
		return nil, Report{}, err
	}

	var rows [][]string
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, Report{}, &SourceError{Cause: err}
		}
		rows = append(rows, record)
	}

	return buildPool(rows, cols)
}

// mapColumns resolves each required column name to its index in the header.
func mapColumns(header []string) (map[string]int, error) {
	found := make([]string, 0, len(header))
	index := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		found = append(found, name)
		if _, ok := index[name]; !ok {
			index[name] = i
		}
	}

	cols := make(map[string]int, len(RequiredColumns))
	var missing []string
	for _, name := range RequiredColumns {
		i, ok := index[name]
		if !ok {
			missing = append(missing, name)
			continue
		}
		cols[name] = i
	}
	if len(missing) > 0 {
		return nil, &SchemaError{Missing: missing, Found: found}
	}
	return cols, nil
}

// buildPool applies the row policy: fully-empty rows vanish silently,
// rows with any blank required field are counted as skipped, everything
// else is trimmed and grouped by chapter in first-seen order.
func buildPool(rows [][]string, cols map[string]int) (*question.Pool, Report, error) {
	pool := question.NewPool()
	var report Report

	for _, row := range rows {
		if isEmptyRow(row) {
			continue
		}

		values := make(map[string]string, len(RequiredColumns))
		complete := true
		for name, i := range cols {
			var v string
			if i < len(row) {
				v = strings.TrimSpace(row[i])
			}
			if v == "" {
				complete = false
				break
			}
			values[name] = v
		}
		if !complete {
			report.SkippedRows++
			continue
		}

		q, err := question.New(
			values["Chapter"],
			values["Question Text"],
			values["Reasoning"],
			values["Correct_Answer"],
			[]string{values["Alternative_1"], values["Alternative_2"], values["Alternative_3"]},
		)
		if err != nil {
			report.SkippedRows++
			continue
		}

		pool.Add(q)
		report.Loaded++
	}

	if report.Loaded == 0 {
		return nil, report, ErrNoQuestions
	}
	return pool, report, nil
}

func isEmptyRow(row []string) bool {
	for _, field := range row {
		if strings.TrimSpace(field) != "" {
			return false
		}
	}
	return true
}
