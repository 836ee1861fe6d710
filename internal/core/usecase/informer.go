package usecase

import (
	"context"
	"fmt"

	"github.com/rbroggi/shifttracker/internal/core/model"
	"github.com/rbroggi/shifttracker/internal/core/ports"
)

// NewInformer builds a new informer.
func NewInformer(sender ports.Sender) *Informer {
	return &Informer{sender: sender}
}

// Informer forwards committed changes to the audit trail. It 'informs' about user and
// shift-record changes.
type Informer struct {
	sender ports.Sender
}

func (i *Informer) Handle(ctx context.Context, event model.ChangeEvent) error {

	// nothing changed, nothing to record
	if usersAreEqual(event.UserBefore, event.UserAfter) && shiftsAreEqual(event.ShiftBefore, event.ShiftAfter) {
		return nil
	}

	if err := i.sender.Send(ctx, event); err != nil {
		return fmt.Errorf("error sending change event ID [%s]: %w", event.ID, err)
	}

	return nil
}

func usersAreEqual(before *model.User, after *model.User) bool {
	if before == nil && after == nil {
		return true
	}
	if before == nil || after == nil {
		return false
	}
	return *before == *after
}

func shiftsAreEqual(before *model.ShiftRecord, after *model.ShiftRecord) bool {
	if before == nil && after == nil {
		return true
	}
	if before == nil || after == nil {
		return false
	}
	return *before == *after
}
