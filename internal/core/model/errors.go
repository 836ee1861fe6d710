package model

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when an entity is required to exist and does not.
	ErrNotFound = errors.New("entity was not found")

	// ErrDuplicateID is returned when a registration reuses an identifier that is already taken.
	ErrDuplicateID = errors.New("user id already exists")
)

// ValidationError reports a malformed user input. Nothing is persisted when it is returned.
type ValidationError struct {
	// Field is the name of the offending input field.
	Field string

	// Reason describes the violated constraint.
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// InvalidDateError reports a (year, month, day) triple whose components are numeric
// but do not form a real calendar date.
type InvalidDateError struct {
	Year  int
	Month int
	Day   int
}

func (e *InvalidDateError) Error() string {
	return fmt.Sprintf("%04d-%02d-%02d is not a valid calendar date", e.Year, e.Month, e.Day)
}

// StorageCorruptError reports a persisted table that failed to parse. The operation
// that hit it must abort without rewriting anything.
type StorageCorruptError struct {
	// Path is the location of the corrupt table.
	Path string

	// Line is the 1-based row number of the offending record. Zero when the failure
	// is not attributable to a single row.
	Line int

	// Err is the underlying parse failure.
	Err error
}

func (e *StorageCorruptError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("corrupt table %s at line %d: %v", e.Path, e.Line, e.Err)
	}
	return fmt.Sprintf("corrupt table %s: %v", e.Path, e.Err)
}

func (e *StorageCorruptError) Unwrap() error {
	return e.Err
}
