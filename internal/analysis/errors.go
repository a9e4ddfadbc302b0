package analysis

import (
	"errors"
	"fmt"
)

// ErrFileNotFound indicates the source table does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrEmptySource indicates the source has no header row.
var ErrEmptySource = errors.New("no columns to parse from file")

// ColumnNotFoundError reports a requested column that the table does not have.
type ColumnNotFoundError struct {
	Column string
	Table  string
}

func (e *ColumnNotFoundError) Error() string {
	if e.Table != "" {
		return fmt.Sprintf("column '%s' not found in %s", e.Column, e.Table)
	}
	return fmt.Sprintf("column '%s' not found", e.Column)
}

// NonNumericColumnError reports a numeric reduction over a text column.
type NonNumericColumnError struct {
	Column  string
	Reducer Reducer
}

func (e *NonNumericColumnError) Error() string {
	return fmt.Sprintf("cannot compute %s of non-numeric column '%s'", e.Reducer, e.Column)
}
