package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/rbroggi/shifttracker/internal/core/model"
)

// Repository is the interface for the persistence layer. Implementations use
// whole-table semantics: every read re-reads durable storage and every write
// rewrites the full table (last-writer-wins, no partial-write recovery). Access is
// assumed single-process; concurrent processes would corrupt data.
type Repository interface {
	// UserExists reports whether the id appears in the users table. Comparison is
	// exact: no case folding, no whitespace trimming.
	UserExists(ctx context.Context, id string) (bool, error)

	// SaveUser durably appends the user. Uniqueness of the id is the caller's
	// responsibility; the store does not re-check it.
	SaveUser(ctx context.Context, user *model.User) error

	// SaveShift durably appends the shift record.
	SaveShift(ctx context.Context, shift *model.ShiftRecord) error

	// ListShifts returns the records matching the query parameters, preserving the
	// stored order.
	ListShifts(ctx context.Context, query ListShiftsQuery) (*ListShiftsResult, error)

	// DeleteShift removes and returns the record matching the query parameters. It
	// returns model.ErrNotFound if no record matches.
	DeleteShift(ctx context.Context, query DeleteShiftQuery) (*model.ShiftRecord, error)

	// OverwriteShifts replaces the entire shifts table with the given rows.
	OverwriteShifts(ctx context.Context, shifts []model.ShiftRecord) error
}

// ListShiftsQuery gathers the parameters of the ListShifts query.
type ListShiftsQuery struct {
	// UserID is the owning user id to filter by. Zero-value will be ignored as filter.
	UserID string
}

// ListShiftsResult gathers the result.
type ListShiftsResult struct {
	// Shifts are the records matching the query parameters.
	Shifts []model.ShiftRecord
}

// DeleteShiftQuery gathers the parameters of the DeleteShift operation.
type DeleteShiftQuery struct {
	// ID is the stable identity of the record to be deleted.
	ID uuid.UUID

	// UserID, when non-empty, restricts the deletion to records owned by that user.
	UserID string
}
