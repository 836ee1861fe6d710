package model

import (
	"fmt"
	"math"
	"strconv"
	"time"
	"unicode"

	"github.com/google/uuid"
)

// User represents a registered user.
type User struct {
	// Name is the user first name. Non-empty, letters only.
	Name string `json:"name"`

	// Surname is the user family name. Non-empty, letters only.
	Surname string `json:"surname"`

	// ID is the unique identifier chosen at registration. It is the primary key of
	// the users table; comparison is exact (case- and whitespace-sensitive).
	ID string `json:"id"`
}

// Session carries the identity of a logged-in user. It is passed explicitly to the
// shift operations instead of living in process-wide state.
type Session struct {
	// UserID is the identifier the session was opened for.
	UserID string
}

// ShiftRecord is one shift worked by a user on a single calendar day.
type ShiftRecord struct {
	// ID is the stable identity of the record, assigned at creation. Deletion
	// addresses records by this ID, never by row position.
	ID uuid.UUID `json:"id"`

	// UserID references the owning user. The store does not enforce the reference.
	UserID string `json:"user_id"`

	// Date is the calendar day the shift was worked.
	Date Date `json:"date"`

	// Start is the shift start time of day.
	Start TimeOfDay `json:"start"`

	// End is the shift end time of day. Always after Start: shifts do not cross midnight.
	End TimeOfDay `json:"end"`

	// Hours is the derived shift duration, (End - Start) in hours rounded to two decimals.
	Hours float64 `json:"hours"`
}

// Date is a calendar date.
type Date struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Day   int `json:"day"`
}

// ParseDate builds a Date from raw textual components. An empty, non-numeric or
// non-positive component yields a ValidationError; numeric components that do not
// form a real calendar date yield an InvalidDateError.
func ParseDate(yearStr, monthStr, dayStr string) (Date, error) {
	year, err := dateComponent("year", yearStr)
	if err != nil {
		return Date{}, err
	}
	month, err := dateComponent("month", monthStr)
	if err != nil {
		return Date{}, err
	}
	day, err := dateComponent("day", dayStr)
	if err != nil {
		return Date{}, err
	}

	// time.Date normalizes out-of-range components (month 13 becomes January of the
	// next year) instead of failing, so a round-trip comparison detects them.
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || t.Month() != time.Month(month) || t.Day() != day {
		return Date{}, &InvalidDateError{Year: year, Month: month, Day: day}
	}

	return Date{Year: year, Month: month, Day: day}, nil
}

func dateComponent(field, s string) (int, error) {
	if s == "" {
		return 0, &ValidationError{Field: field, Reason: "must not be empty"}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, &ValidationError{Field: field, Reason: "must be a number"}
	}
	if n <= 0 {
		return 0, &ValidationError{Field: field, Reason: "must be positive"}
	}
	return n, nil
}

// String renders the date in the YYYY-MM-DD form used by the persisted tables.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// TimeOfDay is a wall-clock time with minute precision.
type TimeOfDay struct {
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

// ParseTimeOfDay parses the strict HH:MM form: exactly two digits per field, hour
// 0-23, minute 0-59. Shapes like "9:5" are rejected so that stored times stay canonical.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	if len(s) != 5 || s[2] != ':' {
		return TimeOfDay{}, &ValidationError{Field: "time", Reason: "must be in HH:MM form"}
	}
	hour, err := timeComponent(s[:2])
	if err != nil {
		return TimeOfDay{}, &ValidationError{Field: "time", Reason: "must be in HH:MM form"}
	}
	minute, err := timeComponent(s[3:])
	if err != nil {
		return TimeOfDay{}, &ValidationError{Field: "time", Reason: "must be in HH:MM form"}
	}
	if hour > 23 {
		return TimeOfDay{}, &ValidationError{Field: "time", Reason: "hour must be between 00 and 23"}
	}
	if minute > 59 {
		return TimeOfDay{}, &ValidationError{Field: "time", Reason: "minute must be between 00 and 59"}
	}
	return TimeOfDay{Hour: hour, Minute: minute}, nil
}

func timeComponent(s string) (int, error) {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return 0, fmt.Errorf("non-digit in time component %q", s)
		}
	}
	return strconv.Atoi(s)
}

// Before reports whether t is strictly earlier in the day than other.
func (t TimeOfDay) Before(other TimeOfDay) bool {
	if t.Hour != other.Hour {
		return t.Hour < other.Hour
	}
	return t.Minute < other.Minute
}

// String renders the time in the HH:MM form used by the persisted tables.
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// ShiftHours computes the duration between start and end on the given calendar day,
// in hours rounded to two decimal places. Both instants land on the same day, so the
// caller must have rejected end <= start already.
func ShiftHours(date Date, start, end TimeOfDay) float64 {
	day := time.Date(date.Year, time.Month(date.Month), date.Day, 0, 0, 0, 0, time.UTC)
	from := day.Add(time.Duration(start.Hour)*time.Hour + time.Duration(start.Minute)*time.Minute)
	to := day.Add(time.Duration(end.Hour)*time.Hour + time.Duration(end.Minute)*time.Minute)
	return math.Round(to.Sub(from).Hours()*100) / 100
}

// ChangeEvent collects a change to a persisted entity. Exactly one entity kind is set;
// a nil Before means a creation, a nil After means a deletion.
type ChangeEvent struct {
	// ID is the event id.
	ID string `json:"id"`

	// UserBefore/UserAfter are set when the event concerns a user.
	UserBefore *User `json:"user_before,omitempty"`
	UserAfter  *User `json:"user_after,omitempty"`

	// ShiftBefore/ShiftAfter are set when the event concerns a shift record.
	ShiftBefore *ShiftRecord `json:"shift_before,omitempty"`
	ShiftAfter  *ShiftRecord `json:"shift_after,omitempty"`
}
