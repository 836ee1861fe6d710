package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/rbroggi/shifttracker/internal/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockSender is a mock implementation of the Sender interface.
type MockSender struct {
	t              *testing.T
	called         bool
	EventAssertion func(t *testing.T, event model.ChangeEvent)
	SendError      error
}

func (m *MockSender) Send(ctx context.Context, event model.ChangeEvent) error {
	m.called = true
	if m.EventAssertion != nil {
		m.EventAssertion(m.t, event)
	}
	return m.SendError
}

func TestInformer_Handle(t *testing.T) {
	sendingError := errors.New("sending error")
	tests := []struct {
		name            string
		event           model.ChangeEvent
		eventAssertion  func(t *testing.T, event model.ChangeEvent)
		sendError       error
		callsSendMethod bool
		expectedError   func(t *testing.T, err error)
	}{
		{
			name: "user registration",
			event: model.ChangeEvent{
				ID:        "1",
				UserAfter: &model.User{Name: "Jane", Surname: "Doe", ID: "jd77"},
			},
			eventAssertion: func(t *testing.T, event model.ChangeEvent) {
				require.Nil(t, event.UserBefore)
				require.NotNil(t, event.UserAfter)
				require.Equal(t, "1", event.ID)
				require.Equal(t, "jd77", event.UserAfter.ID)
			},
			callsSendMethod: true,
		},
		{
			name: "shift creation",
			event: model.ChangeEvent{
				ID:         "2",
				ShiftAfter: &model.ShiftRecord{UserID: "jd77", Hours: 8.5},
			},
			eventAssertion: func(t *testing.T, event model.ChangeEvent) {
				require.Nil(t, event.ShiftBefore)
				require.NotNil(t, event.ShiftAfter)
				require.Equal(t, "jd77", event.ShiftAfter.UserID)
			},
			callsSendMethod: true,
		},
		{
			name: "shift deletion",
			event: model.ChangeEvent{
				ID:          "3",
				ShiftBefore: &model.ShiftRecord{UserID: "jd77", Hours: 8.5},
			},
			eventAssertion: func(t *testing.T, event model.ChangeEvent) {
				require.Nil(t, event.ShiftAfter)
				require.NotNil(t, event.ShiftBefore)
			},
			callsSendMethod: true,
		},
		{
			name:            "empty event is not recorded",
			event:           model.ChangeEvent{ID: "4"},
			callsSendMethod: false,
		},
		{
			name: "identical before and after is not recorded",
			event: model.ChangeEvent{
				ID:          "5",
				ShiftBefore: &model.ShiftRecord{UserID: "jd77", Hours: 8.5},
				ShiftAfter:  &model.ShiftRecord{UserID: "jd77", Hours: 8.5},
			},
			callsSendMethod: false,
		},
		{
			name: "error in sending event triggers error in handler",
			event: model.ChangeEvent{
				ID:        "6",
				UserAfter: &model.User{Name: "Jane", Surname: "Doe", ID: "jd77"},
			},
			sendError:       sendingError,
			callsSendMethod: true,
			expectedError: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, sendingError)
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			sender := &MockSender{
				t:              t,
				EventAssertion: test.eventAssertion,
				SendError:      test.sendError,
			}
			informer := NewInformer(sender)
			err := informer.Handle(context.Background(), test.event)
			if test.expectedError != nil {
				test.expectedError(t, err)
			}
			require.Equal(t, test.callsSendMethod, sender.called)
		})
	}
}
