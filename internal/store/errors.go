package store

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInputNotFound is returned when an input image or CSV path does not
	// exist.
	ErrInputNotFound = errors.New("input not found")

	// ErrSchema is matched by every *SchemaError.
	ErrSchema = errors.New("csv schema error")
)

// SchemaError reports required columns missing from a CSV header.
type SchemaError struct {
	Table   string
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s csv is missing required column(s): %s", e.Table, strings.Join(e.Missing, ", "))
}

// Is lets errors.Is(err, ErrSchema) match.
func (e *SchemaError) Is(target error) bool {
	return target == ErrSchema
}

// RowError describes a data row that was skipped while reading.
type RowError struct {
	// Line is the 1-based line number in the input, header included.
	Line   int
	Column string
	Err    error
}

func (e *RowError) Error() string {
	if e.Column == "" {
		return fmt.Sprintf("line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("line %d: column %s: %v", e.Line, e.Column, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}
