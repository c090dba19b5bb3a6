package loader

import (
	"errors"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/quizmaster/backend/internal/domain/question"
)

// LoadXLSX parses the first sheet of an Excel workbook using the same
// header requirements and row policy as LoadCSV.
func LoadXLSX(r io.Reader) (*question.Pool, Report, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, Report{}, &SourceError{Cause: err}
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, Report{}, &SourceError{Cause: errors.New("workbook has no sheets")}
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, Report{}, &SourceError{Cause: err}
	}
	if len(rows) == 0 {
		return nil, Report{}, &SourceError{Cause: errors.New("sheet has no header row")}
	}

	cols, err := mapColumns(rows[0])
	if err != nil {
		return nil, Report{}, err
	}

	return buildPool(rows[1:], cols)
}
