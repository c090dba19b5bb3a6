package loader

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoQuestions is returned when the source parsed structurally but not a
// single row survived validation.
var ErrNoQuestions = errors.New("no valid questions found")

// SchemaError reports a header that is missing required columns. Found
// carries the columns that were actually present so the operator can see
// what the file looks like.
type SchemaError struct {
	Missing []string
	Found   []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("source missing required columns %s, found: %s",
		strings.Join(e.Missing, ", "), strings.Join(e.Found, ", "))
}

// SourceError wraps a structural parse failure (unreadable or corrupt input).
type SourceError struct {
	Cause error
}

func (e *SourceError) Error() string {
	return "failed to read question source: " + e.Cause.Error()
}

func (e *SourceError) Unwrap() error {
	return e.Cause
}
