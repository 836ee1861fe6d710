package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/rbroggi/shifttracker/internal/core/model"
	"github.com/rbroggi/shifttracker/internal/core/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedID = uuid.MustParse("7b7a897e-22ab-4a25-9a7a-3b9a0f6cb9f3")

func fixedIDFunc() uuid.UUID {
	return fixedID
}

func TestShiftServiceCreateShift(t *testing.T) {
	validArgs := model.CreateShiftArgs{
		Session: model.Session{UserID: "jd77"},
		Year:    "2024",
		Month:   "3",
		Day:     "1",
		Start:   "09:00",
		End:     "17:30",
	}

	tests := []struct {
		name          string
		args          model.CreateShiftArgs
		expected      model.ShiftRecord
		expectedError func(t *testing.T, err error)
	}{
		{
			name: "valid entry derives hours and gets an id",
			args: validArgs,
			expected: model.ShiftRecord{
				ID:     fixedID,
				UserID: "jd77",
				Date:   model.Date{Year: 2024, Month: 3, Day: 1},
				Start:  model.TimeOfDay{Hour: 9},
				End:    model.TimeOfDay{Hour: 17, Minute: 30},
				Hours:  8.5,
			},
		},
		{
			name: "missing session",
			args: func() model.CreateShiftArgs { a := validArgs; a.Session = model.Session{}; return a }(),
			expectedError: func(t *testing.T, err error) {
				var validationErr *model.ValidationError
				require.ErrorAs(t, err, &validationErr)
			},
		},
		{
			name: "invalid date",
			args: func() model.CreateShiftArgs { a := validArgs; a.Month = "13"; return a }(),
			expectedError: func(t *testing.T, err error) {
				var invalidDateErr *model.InvalidDateError
				require.ErrorAs(t, err, &invalidDateErr)
			},
		},
		{
			name: "malformed start time",
			args: func() model.CreateShiftArgs { a := validArgs; a.Start = "9:5"; return a }(),
			expectedError: func(t *testing.T, err error) {
				var validationErr *model.ValidationError
				require.ErrorAs(t, err, &validationErr)
				assert.Equal(t, "start time", validationErr.Field)
			},
		},
		{
			name: "end time out of range",
			args: func() model.CreateShiftArgs { a := validArgs; a.End = "25:00"; return a }(),
			expectedError: func(t *testing.T, err error) {
				var validationErr *model.ValidationError
				require.ErrorAs(t, err, &validationErr)
				assert.Equal(t, "end time", validationErr.Field)
			},
		},
		{
			name: "end before start is rejected",
			args: func() model.CreateShiftArgs { a := validArgs; a.Start = "17:30"; a.End = "09:00"; return a }(),
			expectedError: func(t *testing.T, err error) {
				var validationErr *model.ValidationError
				require.ErrorAs(t, err, &validationErr)
				assert.Equal(t, "end time", validationErr.Field)
			},
		},
		{
			name: "end equal to start is rejected",
			args: func() model.CreateShiftArgs { a := validArgs; a.End = a.Start; return a }(),
			expectedError: func(t *testing.T, err error) {
				var validationErr *model.ValidationError
				require.ErrorAs(t, err, &validationErr)
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			repository := &MockRepository{}
			changes := &MockChangeHandler{}
			service := NewShiftService(ShiftServiceArgs{Repository: repository, Changes: changes}, WithIDFunc(fixedIDFunc))
			res, err := service.CreateShift(context.Background(), test.args)
			if test.expectedError != nil {
				test.expectedError(t, err)
				// validation happens entirely before the store is touched
				assert.Empty(t, repository.SavedShifts)
				assert.Empty(t, changes.Events)
				return
			}
			require.NoError(t, err)
			require.Len(t, repository.SavedShifts, 1)
			assert.Equal(t, test.expected, repository.SavedShifts[0])
			assert.Equal(t, test.expected, res.Shift)
			require.Len(t, changes.Events, 1)
			require.NotNil(t, changes.Events[0].ShiftAfter)
			assert.Equal(t, test.expected, *changes.Events[0].ShiftAfter)
		})
	}
}

func TestShiftServiceCreateShiftRepositoryFailure(t *testing.T) {
	repositoryError := errors.New("disk full")
	repository := &MockRepository{SaveShiftErr: repositoryError}
	service := NewShiftService(ShiftServiceArgs{Repository: repository})

	_, err := service.CreateShift(context.Background(), model.CreateShiftArgs{
		Session: model.Session{UserID: "jd77"},
		Year:    "2024", Month: "3", Day: "1",
		Start: "09:00", End: "17:30",
	})
	assert.ErrorIs(t, err, repositoryError)
}

func TestShiftServiceListShifts(t *testing.T) {
	stored := []model.ShiftRecord{
		{ID: uuid.New(), UserID: "jd77", Date: model.Date{Year: 2024, Month: 3, Day: 1}, Start: model.TimeOfDay{Hour: 9}, End: model.TimeOfDay{Hour: 17}, Hours: 8},
	}
	repository := &MockRepository{ListShiftsResult: &ports.ListShiftsResult{Shifts: stored}}
	service := NewShiftService(ShiftServiceArgs{Repository: repository})

	res, err := service.ListShifts(context.Background(), model.ListShiftsArgs{Session: model.Session{UserID: "jd77"}})
	require.NoError(t, err)
	assert.Equal(t, stored, res.Shifts)

	_, err = service.ListShifts(context.Background(), model.ListShiftsArgs{})
	var validationErr *model.ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestShiftServiceDeleteShift(t *testing.T) {
	deleted := &model.ShiftRecord{ID: fixedID, UserID: "jd77", Hours: 8}

	t.Run("existing record is deleted and informed", func(t *testing.T) {
		repository := &MockRepository{DeleteShiftResult: deleted}
		changes := &MockChangeHandler{}
		service := NewShiftService(ShiftServiceArgs{Repository: repository, Changes: changes})

		err := service.DeleteShift(context.Background(), model.DeleteShiftArgs{
			Session: model.Session{UserID: "jd77"},
			ID:      fixedID,
		})
		require.NoError(t, err)
		require.NotNil(t, repository.DeleteShiftQuery)
		assert.Equal(t, fixedID, repository.DeleteShiftQuery.ID)
		assert.Equal(t, "jd77", repository.DeleteShiftQuery.UserID)
		require.Len(t, changes.Events, 1)
		require.NotNil(t, changes.Events[0].ShiftBefore)
		assert.Equal(t, *deleted, *changes.Events[0].ShiftBefore)
		assert.Nil(t, changes.Events[0].ShiftAfter)
	})

	t.Run("stale selection surfaces as not found", func(t *testing.T) {
		repository := &MockRepository{DeleteShiftErr: model.ErrNotFound}
		service := NewShiftService(ShiftServiceArgs{Repository: repository})

		err := service.DeleteShift(context.Background(), model.DeleteShiftArgs{
			Session: model.Session{UserID: "jd77"},
			ID:      fixedID,
		})
		assert.ErrorIs(t, err, model.ErrNotFound)
	})
}
