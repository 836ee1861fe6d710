// Package audit records change events to an append-only JSONL file, one JSON object
// per committed change.
package audit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/rbroggi/shifttracker/internal/core/model"
)

// TrailOptArgs are the optional arguments for building a Trail.
type TrailOptArgs = func(*Trail)

// WithNowFunc can be used to override the nowFunc. Useful for testing.
func WithNowFunc(nowFunc func() time.Time) TrailOptArgs {
	return func(t *Trail) {
		t.nowFunc = nowFunc
	}
}

// NewTrail creates a new trail appending to the file at path.
func NewTrail(path string, optArgs ...TrailOptArgs) (*Trail, error) {
	if path == "" {
		return nil, errors.New("empty audit trail path")
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("error opening audit trail: %w", err)
	}
	t := &Trail{file: f, nowFunc: func() time.Time { return time.Now().UTC() }}
	for _, opt := range optArgs {
		opt(t)
	}
	return t, nil
}

// Trail is the file-backed recorder of change events.
type Trail struct {
	file    *os.File
	nowFunc func() time.Time
	mu      sync.Mutex
}

type entry struct {
	RecordedAt time.Time         `json:"recorded_at"`
	Event      model.ChangeEvent `json:"event"`
}

// Send appends one event as a single JSON line.
func (t *Trail) Send(ctx context.Context, event model.ChangeEvent) error {
	data, err := json.Marshal(entry{RecordedAt: t.nowFunc(), Event: event})
	if err != nil {
		return fmt.Errorf("error marshaling change event: %w", err)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if _, err := t.file.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("error appending to audit trail: %w", err)
	}
	return nil
}

// Close releases the underlying file.
func (t *Trail) Close() error {
	return t.file.Close()
}
