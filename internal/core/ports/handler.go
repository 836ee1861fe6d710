package ports

import (
	"context"

	"github.com/rbroggi/shifttracker/internal/core/model"
)

// ChangeHandler handles incoming ChangeEvents.
type ChangeHandler interface {
	// Handle will receive an incoming change event and handle it.
	Handle(ctx context.Context, event model.ChangeEvent) error
}
