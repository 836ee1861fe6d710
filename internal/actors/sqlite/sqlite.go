// Package sqlite is an embedded-SQLite adapter for persistence. It implements the
// same repository port as the CSV store, proving that callers are insulated from the
// storage engine. Insertion order is preserved via rowid.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // sqlite driver

	"github.com/rbroggi/shifttracker/internal/core/model"
	"github.com/rbroggi/shifttracker/internal/core/ports"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// Store is an embedded-SQLite adapter for persistence.
type Store struct {
	path string
	db   *sql.DB
}

// StoreArgs are the mandatory arguments for the creation of a Store.
type StoreArgs struct {
	// Path is the location of the database file. It is created if absent.
	Path string
}

// NewStore creates a new Store and bootstraps its tables.
func NewStore(args StoreArgs) (*Store, error) {
	if args.Path == "" {
		return nil, errors.New("empty database path")
	}
	db, err := initDatabase(args.Path)
	if err != nil {
		return nil, err
	}
	return &Store{path: args.Path, db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// UserExists reports whether the id appears in the users table. Comparison is exact.
func (s *Store) UserExists(ctx context.Context, id string) (bool, error) {
	const q = `SELECT COUNT(*) FROM users WHERE user_id = ?`

	var count int
	if err := s.db.QueryRowContext(ctx, q, id).Scan(&count); err != nil {
		return false, fmt.Errorf("error querying users: %w", err)
	}
	return count > 0, nil
}

// SaveUser durably saves the user. The caller is responsible for having checked id
// uniqueness; a primary-key conflict here still fails rather than overwriting.
func (s *Store) SaveUser(ctx context.Context, user *model.User) error {
	if user == nil {
		return errors.New("nil user passed to save method")
	}

	const q = `INSERT INTO users (name, surname, user_id) VALUES (?, ?, ?)`

	if _, err := s.db.ExecContext(ctx, q, user.Name, user.Surname, user.ID); err != nil {
		return fmt.Errorf("error inserting user: %w", err)
	}
	return nil
}

// SaveShift durably saves the shift record.
func (s *Store) SaveShift(ctx context.Context, shift *model.ShiftRecord) error {
	if shift == nil {
		return errors.New("nil shift passed to save method")
	}

	const q = `INSERT INTO shifts (id, user_id, date, start_time, end_time, hours) VALUES (?, ?, ?, ?, ?, ?)`

	row := shiftToRow(shift)
	if _, err := s.db.ExecContext(ctx, q, row.ID, row.UserID, row.Date, row.StartTime, row.EndTime, row.Hours); err != nil {
		return fmt.Errorf("error inserting shift: %w", err)
	}
	return nil
}

// ListShifts returns the records matching the query parameters in insertion order.
func (s *Store) ListShifts(ctx context.Context, query ports.ListShiftsQuery) (*ports.ListShiftsResult, error) {
	q := `SELECT id, user_id, date, start_time, end_time, hours FROM shifts`

	var args []any

	if query.UserID != "" {
		q += ` WHERE user_id = ?`

		args = append(args, query.UserID)
	}

	q += ` ORDER BY rowid ASC`

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying shifts: %w", err)
	}

	defer rows.Close()

	shifts := []model.ShiftRecord{}

	for rows.Next() {
		shift, err := rowToShift(s.path, rows)
		if err != nil {
			return nil, err
		}

		shifts = append(shifts, shift)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating shifts: %w", err)
	}

	return &ports.ListShiftsResult{Shifts: shifts}, nil
}

// DeleteShift removes and returns the record matching the query parameters. It
// returns model.ErrNotFound if no record matches.
func (s *Store) DeleteShift(ctx context.Context, query ports.DeleteShiftQuery) (*model.ShiftRecord, error) {
	q := `SELECT id, user_id, date, start_time, end_time, hours FROM shifts WHERE id = ?`
	args := []any{query.ID.String()}

	if query.UserID != "" {
		q += ` AND user_id = ?`

		args = append(args, query.UserID)
	}

	row := s.db.QueryRowContext(ctx, q, args...)
	shift, err := rowToShift(s.path, row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrNotFound
	} else if err != nil {
		return nil, err
	}

	const del = `DELETE FROM shifts WHERE id = ?`

	if _, err := s.db.ExecContext(ctx, del, query.ID.String()); err != nil {
		return nil, fmt.Errorf("error deleting shift: %w", err)
	}
	return &shift, nil
}

// OverwriteShifts replaces the entire shifts table with the given rows.
func (s *Store) OverwriteShifts(ctx context.Context, shifts []model.ShiftRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error starting overwrite: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM shifts`); err != nil {
		return fmt.Errorf("error clearing shifts: %w", err)
	}

	const q = `INSERT INTO shifts (id, user_id, date, start_time, end_time, hours) VALUES (?, ?, ?, ?, ?, ?)`

	for _, shift := range shifts {
		row := shiftToRow(&shift)
		if _, err := tx.ExecContext(ctx, q, row.ID, row.UserID, row.Date, row.StartTime, row.EndTime, row.Hours); err != nil {
			return fmt.Errorf("error inserting shift: %w", err)
		}
	}

	return tx.Commit()
}

type shiftRow struct {
	ID        string
	UserID    string
	Date      string
	StartTime string
	EndTime   string
	Hours     string
}

func shiftToRow(shift *model.ShiftRecord) shiftRow {
	return shiftRow{
		ID:        shift.ID.String(),
		UserID:    shift.UserID,
		Date:      shift.Date.String(),
		StartTime: shift.Start.String(),
		EndTime:   shift.End.String(),
		Hours:     strconv.FormatFloat(shift.Hours, 'f', 2, 64),
	}
}

type scannable interface {
	Scan(dest ...any) error
}

func rowToShift(path string, row scannable) (model.ShiftRecord, error) {
	var item shiftRow
	if err := row.Scan(&item.ID, &item.UserID, &item.Date, &item.StartTime, &item.EndTime, &item.Hours); err != nil {
		return model.ShiftRecord{}, err
	}

	id, err := uuid.Parse(item.ID)
	if err != nil {
		return model.ShiftRecord{}, &model.StorageCorruptError{Path: path, Err: fmt.Errorf("bad entry id %q: %w", item.ID, err)}
	}
	date, err := time.Parse(dateLayout, item.Date)
	if err != nil {
		return model.ShiftRecord{}, &model.StorageCorruptError{Path: path, Err: fmt.Errorf("bad date %q: %w", item.Date, err)}
	}
	start, err := time.Parse(timeLayout, item.StartTime)
	if err != nil {
		return model.ShiftRecord{}, &model.StorageCorruptError{Path: path, Err: fmt.Errorf("bad start time %q: %w", item.StartTime, err)}
	}
	end, err := time.Parse(timeLayout, item.EndTime)
	if err != nil {
		return model.ShiftRecord{}, &model.StorageCorruptError{Path: path, Err: fmt.Errorf("bad end time %q: %w", item.EndTime, err)}
	}
	hours, err := strconv.ParseFloat(item.Hours, 64)
	if err != nil {
		return model.ShiftRecord{}, &model.StorageCorruptError{Path: path, Err: fmt.Errorf("bad hours %q: %w", item.Hours, err)}
	}

	return model.ShiftRecord{
		ID:     id,
		UserID: item.UserID,
		Date:   model.Date{Year: date.Year(), Month: int(date.Month()), Day: date.Day()},
		Start:  model.TimeOfDay{Hour: start.Hour(), Minute: start.Minute()},
		End:    model.TimeOfDay{Hour: end.Hour(), Minute: end.Minute()},
		Hours:  hours,
	}, nil
}

func initDatabase(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	const schema = `
	CREATE TABLE IF NOT EXISTS users (
		name TEXT NOT NULL,
		surname TEXT NOT NULL,
		user_id TEXT PRIMARY KEY
	);
	CREATE TABLE IF NOT EXISTS shifts (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		date TEXT NOT NULL,
		start_time TEXT NOT NULL,
		end_time TEXT NOT NULL,
		hours TEXT NOT NULL
	);`

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("error bootstrapping schema: %w", err)
	}
	return db, nil
}
