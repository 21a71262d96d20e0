package model

import (
	"time"

	"suitestay/pkg/daterange"
)

// Reservation is the persisted record of a stay. Dates are stored as
// their own fields, not as an embedded range, so the document shape
// matches what the booking form has always written.
type Reservation struct {
	ID          string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	SuiteID     string    `json:"suite_id" bson:"suite_id" validate:"required,mongodb"`
	CustomerID  string    `json:"customer_id" bson:"customer_id" validate:"required"`
	EntryDate   time.Time `json:"entry_date" bson:"entry_date" validate:"required"`
	ReleaseDate time.Time `json:"release_date" bson:"release_date" validate:"required,gtfield=EntryDate"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
}

// Range rebuilds the reservation's date range. Persisted reservations
// were validated on the way in, so the two fields always form a legal
// span.
func (r *Reservation) Range() daterange.DateRange {
	return daterange.DateRange{Entry: r.EntryDate, Release: r.ReleaseDate}
}

// BookingRequest is the inbound booking payload. The customer id comes
// from the authenticated principal, never from the body.
type BookingRequest struct {
	SuiteID     string `json:"suite_id"`
	EntryDate   string `json:"entry_date"`
	ReleaseDate string `json:"release_date"`
}
