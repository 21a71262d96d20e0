package events

import (
	"context"
	"time"
)

const (
	TypeReservationCreated   = "reservation.created"
	TypeReservationCancelled = "reservation.cancelled"
)

// Header keys shared with downstream consumers.
const (
	HeaderEventID   = "event-id"
	HeaderEventType = "event-type"
	HeaderSource    = "source"
	HeaderTimestamp = "timestamp"
)

// ReservationEvent is the integration record other services consume
// when a stay is booked or cancelled. Dates travel as ISO calendar-date
// strings, same as the HTTP surface.
type ReservationEvent struct {
	Type          string    `json:"type"`
	ReservationID string    `json:"reservation_id"`
	SuiteID       string    `json:"suite_id"`
	CustomerID    string    `json:"customer_id"`
	EntryDate     string    `json:"entry_date"`
	ReleaseDate   string    `json:"release_date"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// Publisher emits reservation lifecycle events. Publishing is
// best-effort: the booking has already been persisted when an event
// goes out, so failures are logged by the caller, never surfaced.
type Publisher interface {
	Publish(ctx context.Context, event ReservationEvent) error
	Close() error
}

// NoopPublisher is used when no brokers are configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, ReservationEvent) error { return nil }
func (NoopPublisher) Close() error                                    { return nil }
