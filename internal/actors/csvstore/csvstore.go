// Package csvstore persists users and shift records as two CSV files with
// whole-table semantics: every read re-reads the file, every write rewrites it in
// full. Writes are last-writer-wins with no partial-write recovery. The store assumes
// it is the only process touching the files; concurrent processes would corrupt data.
// A mutex still serializes in-process use.
package csvstore

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rbroggi/shifttracker/internal/core/model"
	"github.com/rbroggi/shifttracker/internal/core/ports"
)

const (
	usersFile  = "users_db.csv"
	shiftsFile = "shift_db.csv"

	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// Column order and naming are the file contract. Entry id is the stable record
// identity appended after the original five shift columns.
var (
	usersHeader  = []string{"Name", "Surname", "User id"}
	shiftsHeader = []string{"User id", "Date", "Start time", "End time", "No of hours", "Entry id"}
)

// Store is a CSV-file adapter for persistence.
type Store struct {
	usersPath  string
	shiftsPath string
	mu         sync.Mutex
}

// StoreArgs are the mandatory arguments for the creation of a Store.
type StoreArgs struct {
	// Dir is the data directory holding the two tables.
	Dir string
}

// NewStore creates a new Store. The data directory and the two table files are
// created with headers if absent.
func NewStore(args StoreArgs) (*Store, error) {
	if args.Dir == "" {
		return nil, errors.New("empty data directory")
	}
	if err := os.MkdirAll(args.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("error creating data directory: %w", err)
	}
	s := &Store{
		usersPath:  filepath.Join(args.Dir, usersFile),
		shiftsPath: filepath.Join(args.Dir, shiftsFile),
	}
	if err := ensureTable(s.usersPath, usersHeader); err != nil {
		return nil, err
	}
	if err := ensureTable(s.shiftsPath, shiftsHeader); err != nil {
		return nil, err
	}
	return s, nil
}

// UserExists reports whether the id appears in the users table. The table is read
// fresh from disk; comparison is exact.
func (s *Store) UserExists(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.loadUsers()
	if err != nil {
		return false, err
	}
	for _, u := range users {
		if u.ID == id {
			return true, nil
		}
	}
	return false, nil
}

// SaveUser appends the user and rewrites the whole users table. The caller is
// responsible for having checked id uniqueness.
func (s *Store) SaveUser(ctx context.Context, user *model.User) error {
	if user == nil {
		return errors.New("nil user passed to save method")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.loadUsers()
	if err != nil {
		return err
	}
	users = append(users, *user)
	return s.writeUsers(users)
}

// SaveShift appends the record and rewrites the whole shifts table.
func (s *Store) SaveShift(ctx context.Context, shift *model.ShiftRecord) error {
	if shift == nil {
		return errors.New("nil shift passed to save method")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	shifts, err := s.loadShifts()
	if err != nil {
		return err
	}
	shifts = append(shifts, *shift)
	return s.writeShifts(shifts)
}

// ListShifts returns the records matching the query, preserving file order.
func (s *Store) ListShifts(ctx context.Context, query ports.ListShiftsQuery) (*ports.ListShiftsResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	shifts, err := s.loadShifts()
	if err != nil {
		return nil, err
	}

	matching := make([]model.ShiftRecord, 0, len(shifts))
	for _, shift := range shifts {
		if query.UserID != "" && shift.UserID != query.UserID {
			continue
		}
		matching = append(matching, shift)
	}
	return &ports.ListShiftsResult{Shifts: matching}, nil
}

// DeleteShift removes the record matching the query and rewrites the whole shifts
// table. It returns model.ErrNotFound if no record matches.
func (s *Store) DeleteShift(ctx context.Context, query ports.DeleteShiftQuery) (*model.ShiftRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	shifts, err := s.loadShifts()
	if err != nil {
		return nil, err
	}

	for i, shift := range shifts {
		if shift.ID != query.ID {
			continue
		}
		if query.UserID != "" && shift.UserID != query.UserID {
			continue
		}
		deleted := shift
		shifts = append(shifts[:i], shifts[i+1:]...)
		if err := s.writeShifts(shifts); err != nil {
			return nil, err
		}
		return &deleted, nil
	}
	return nil, model.ErrNotFound
}

// OverwriteShifts replaces the entire shifts table with the given rows.
func (s *Store) OverwriteShifts(ctx context.Context, shifts []model.ShiftRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.writeShifts(shifts)
}

func (s *Store) loadUsers() ([]model.User, error) {
	rows, err := readTable(s.usersPath, usersHeader)
	if err != nil {
		return nil, err
	}
	users := make([]model.User, 0, len(rows))
	for _, row := range rows {
		users = append(users, model.User{Name: row[0], Surname: row[1], ID: row[2]})
	}
	return users, nil
}

func (s *Store) writeUsers(users []model.User) error {
	rows := make([][]string, 0, len(users))
	for _, u := range users {
		rows = append(rows, []string{u.Name, u.Surname, u.ID})
	}
	return writeTable(s.usersPath, usersHeader, rows)
}

func (s *Store) loadShifts() ([]model.ShiftRecord, error) {
	rows, err := readTable(s.shiftsPath, shiftsHeader)
	if err != nil {
		return nil, err
	}
	shifts := make([]model.ShiftRecord, 0, len(rows))
	for i, row := range rows {
		shift, err := rowToShift(row)
		if err != nil {
			// header is line 1, first data row line 2
			return nil, &model.StorageCorruptError{Path: s.shiftsPath, Line: i + 2, Err: err}
		}
		shifts = append(shifts, shift)
	}
	return shifts, nil
}

func (s *Store) writeShifts(shifts []model.ShiftRecord) error {
	rows := make([][]string, 0, len(shifts))
	for _, shift := range shifts {
		rows = append(rows, shiftToRow(shift))
	}
	return writeTable(s.shiftsPath, shiftsHeader, rows)
}

func rowToShift(row []string) (model.ShiftRecord, error) {
	date, err := time.Parse(dateLayout, row[1])
	if err != nil {
		return model.ShiftRecord{}, fmt.Errorf("bad date %q: %w", row[1], err)
	}
	start, err := time.Parse(timeLayout, row[2])
	if err != nil {
		return model.ShiftRecord{}, fmt.Errorf("bad start time %q: %w", row[2], err)
	}
	end, err := time.Parse(timeLayout, row[3])
	if err != nil {
		return model.ShiftRecord{}, fmt.Errorf("bad end time %q: %w", row[3], err)
	}
	hours, err := strconv.ParseFloat(row[4], 64)
	if err != nil {
		return model.ShiftRecord{}, fmt.Errorf("bad hours %q: %w", row[4], err)
	}
	id, err := uuid.Parse(row[5])
	if err != nil {
		return model.ShiftRecord{}, fmt.Errorf("bad entry id %q: %w", row[5], err)
	}

	return model.ShiftRecord{
		ID:     id,
		UserID: row[0],
		Date:   model.Date{Year: date.Year(), Month: int(date.Month()), Day: date.Day()},
		Start:  model.TimeOfDay{Hour: start.Hour(), Minute: start.Minute()},
		End:    model.TimeOfDay{Hour: end.Hour(), Minute: end.Minute()},
		Hours:  hours,
	}, nil
}

func shiftToRow(shift model.ShiftRecord) []string {
	return []string{
		shift.UserID,
		shift.Date.String(),
		shift.Start.String(),
		shift.End.String(),
		strconv.FormatFloat(shift.Hours, 'f', 2, 64),
		shift.ID.String(),
	}
}

func ensureTable(path string, header []string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("error checking table %s: %w", path, err)
	}
	return writeTable(path, header, nil)
}

func readTable(path string, header []string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening table %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = len(header)
	records, err := r.ReadAll()
	if err != nil {
		line := 0
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			line = parseErr.Line
		}
		return nil, &model.StorageCorruptError{Path: path, Line: line, Err: err}
	}
	if len(records) == 0 {
		return nil, &model.StorageCorruptError{Path: path, Err: errors.New("missing header row")}
	}
	if !equalHeader(records[0], header) {
		return nil, &model.StorageCorruptError{Path: path, Line: 1, Err: fmt.Errorf("unexpected header %v", records[0])}
	}
	return records[1:], nil
}

func writeTable(path string, header []string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error rewriting table %s: %w", path, err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		f.Close()
		return fmt.Errorf("error writing header of %s: %w", path, err)
	}
	if err := w.WriteAll(rows); err != nil {
		f.Close()
		return fmt.Errorf("error writing rows of %s: %w", path, err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("error flushing table %s: %w", path, err)
	}
	return f.Close()
}

func equalHeader(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range want {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}
