package order

import (
	"errors"
	"time"

	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

// ErrHistoryEntryIsNotConstructed is returned when using an improperly initialized HistoryEntry.
var ErrHistoryEntryIsNotConstructed = errors.New("HistoryEntry must be created via NewHistoryEntry constructor")

// HistoryEntry is one record in an order's append-only status log: which
// status was entered, when, by whom, and an optional note. The log is never
// truncated or reordered; its last entry always equals the order's current
// status.
type HistoryEntry struct {
	status    Status
	timestamp time.Time
	actor     Actor
	note      string
	guard     guard.ConstructorGuard
}

// NewHistoryEntry creates a history entry for the given status change.
func NewHistoryEntry(status Status, timestamp time.Time, actor Actor, note string) (HistoryEntry, error) {
	if err := status.Validate(); err != nil {
		return HistoryEntry{}, err
	}
	if timestamp.IsZero() {
		return HistoryEntry{}, errs.NewValueIsRequiredError("timestamp")
	}
	if err := actor.Validate(); err != nil {
		return HistoryEntry{}, err
	}

	return HistoryEntry{
		status:    status,
		timestamp: timestamp,
		actor:     actor,
		note:      note,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate checks the entry was created through its constructor.
func (e HistoryEntry) Validate() error {
	return e.guard.Validate(ErrHistoryEntryIsNotConstructed)
}

// Status returns the status entered by this transition.
func (e HistoryEntry) Status() Status {
	return e.status
}

// Timestamp returns when the transition happened.
func (e HistoryEntry) Timestamp() time.Time {
	return e.timestamp
}

// Actor returns who performed the transition.
func (e HistoryEntry) Actor() Actor {
	return e.actor
}

// Note returns the optional transition note.
func (e HistoryEntry) Note() string {
	return e.note
}
