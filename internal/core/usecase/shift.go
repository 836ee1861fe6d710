package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rbroggi/shifttracker/internal/core/model"
	"github.com/rbroggi/shifttracker/internal/core/ports"
)

// ShiftServiceArgs contains the arguments for the ShiftService.
type ShiftServiceArgs struct {
	// Repository is the repository for persistence operations.
	Repository ports.Repository

	// Changes receives an event for every committed record change. Optional.
	Changes ports.ChangeHandler
}

// ShiftServiceOptArgs are the optional arguments for building a ShiftService.
type ShiftServiceOptArgs = func(*ShiftService)

// WithIDFunc can be used to override the record id generator. Useful for testing.
func WithIDFunc(idFunc func() uuid.UUID) ShiftServiceOptArgs {
	return func(s *ShiftService) {
		s.idFunc = idFunc
	}
}

// NewShiftService creates a new ShiftService.
func NewShiftService(args ShiftServiceArgs, optArgs ...ShiftServiceOptArgs) *ShiftService {
	s := &ShiftService{repository: args.Repository, changes: args.Changes, idFunc: uuid.New}
	for _, opt := range optArgs {
		opt(s)
	}
	return s
}

// ShiftService gathers the functionality around the shift-record lifecycle.
type ShiftService struct {
	repository ports.Repository
	changes    ports.ChangeHandler
	idFunc     func() uuid.UUID
}

// CreateShift validates the raw form input, derives the duration and persists the
// record. Validation completes entirely before the store is touched: a rejected entry
// leaves no trace. A shift must start and end on the same calendar day, so an end time
// at or before the start time fails validation.
func (s *ShiftService) CreateShift(ctx context.Context, args model.CreateShiftArgs) (*model.CreateShiftResponse, error) {
	if args.Session.UserID == "" {
		return nil, &model.ValidationError{Field: "user id", Reason: "must not be empty"}
	}

	date, err := model.ParseDate(args.Year, args.Month, args.Day)
	if err != nil {
		return nil, err
	}
	start, err := model.ParseTimeOfDay(args.Start)
	if err != nil {
		return nil, &model.ValidationError{Field: "start time", Reason: err.Error()}
	}
	end, err := model.ParseTimeOfDay(args.End)
	if err != nil {
		return nil, &model.ValidationError{Field: "end time", Reason: err.Error()}
	}
	if !start.Before(end) {
		return nil, &model.ValidationError{Field: "end time", Reason: "must be after the start time"}
	}

	shift := &model.ShiftRecord{
		ID:     s.idFunc(),
		UserID: args.Session.UserID,
		Date:   date,
		Start:  start,
		End:    end,
		Hours:  model.ShiftHours(date, start, end),
	}
	if err := s.repository.SaveShift(ctx, shift); err != nil {
		return nil, fmt.Errorf("error saving shift in repository: %w", err)
	}

	if s.changes != nil {
		event := model.ChangeEvent{ID: uuid.NewString(), ShiftAfter: shift}
		if err := s.changes.Handle(ctx, event); err != nil {
			return nil, fmt.Errorf("error handling shift change event: %w", err)
		}
	}

	return &model.CreateShiftResponse{Shift: *shift}, nil
}

// ListShifts lists the session user's records in stored order. Every call re-reads
// durable storage.
func (s *ShiftService) ListShifts(ctx context.Context, args model.ListShiftsArgs) (*model.ListShiftsResponse, error) {
	if args.Session.UserID == "" {
		return nil, &model.ValidationError{Field: "user id", Reason: "must not be empty"}
	}

	res, err := s.repository.ListShifts(ctx, ports.ListShiftsQuery{UserID: args.Session.UserID})
	if err != nil {
		return nil, fmt.Errorf("error listing shifts on the repository: %w", err)
	}

	return &model.ListShiftsResponse{Shifts: res.Shifts}, nil
}

// DeleteShift deletes the record matching the input arguments. It returns
// model.ErrNotFound when the record is gone already (e.g. a stale selection).
func (s *ShiftService) DeleteShift(ctx context.Context, args model.DeleteShiftArgs) error {
	deleted, err := s.repository.DeleteShift(ctx, ports.DeleteShiftQuery{
		ID:     args.ID,
		UserID: args.Session.UserID,
	})
	if err != nil {
		return fmt.Errorf("error deleting shift from repository: %w", err)
	}

	if s.changes != nil {
		event := model.ChangeEvent{ID: uuid.NewString(), ShiftBefore: deleted}
		if err := s.changes.Handle(ctx, event); err != nil {
			return fmt.Errorf("error handling shift change event: %w", err)
		}
	}

	return nil
}
