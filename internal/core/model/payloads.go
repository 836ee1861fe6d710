package model

import "github.com/google/uuid"

// RegisterUserArgs contain the arguments of the Register method.
type RegisterUserArgs struct {
	// Name is the user first name.
	Name string

	// Surname is the user family name.
	Surname string

	// ID is the unique identifier the user wants to register.
	ID string
}

// RegisterUserResponse contains the response of the Register method.
type RegisterUserResponse struct {
	// User
	User User
}

// LoginArgs contain the arguments of the Login method.
type LoginArgs struct {
	// ID is the identifier to open a session for.
	ID string
}

// LoginResponse contains the session opened by a successful Login.
type LoginResponse struct {
	// Session carries the logged-in identifier.
	Session Session
}

// CreateShiftArgs contain the raw form input of the CreateShift method. All fields are
// textual; validation and derivation happen inside the use-case before anything is stored.
type CreateShiftArgs struct {
	// Session identifies the user the shift belongs to.
	Session Session

	// Year, Month and Day are the calendar-date components as entered.
	Year  string
	Month string
	Day   string

	// Start and End are the shift boundaries in HH:MM form.
	Start string
	End   string
}

// CreateShiftResponse contains the persisted record of a successful CreateShift.
type CreateShiftResponse struct {
	// Shift
	Shift ShiftRecord
}

// ListShiftsArgs contain the arguments for the ListShifts use-case.
type ListShiftsArgs struct {
	// Session identifies the user whose records to list.
	Session Session
}

// ListShiftsResponse contains the records matching the ListShifts query, in file order.
type ListShiftsResponse struct {
	// Shifts are the user's records, oldest first.
	Shifts []ShiftRecord
}

// DeleteShiftArgs contains the arguments for deleting a shift record.
type DeleteShiftArgs struct {
	// Session identifies the user the record belongs to.
	Session Session

	// ID is the stable identity of the record to delete.
	ID uuid.UUID
}
