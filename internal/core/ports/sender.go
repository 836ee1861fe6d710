package ports

import (
	"context"

	"github.com/rbroggi/shifttracker/internal/core/model"
)

// Sender is the port for recording outbound change events.
type Sender interface {
	// Send records change-event data.
	Send(ctx context.Context, event model.ChangeEvent) error
}
