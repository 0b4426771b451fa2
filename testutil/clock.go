package testutil

import (
	"time"

	"github.com/openlending/lending-reservations-go/lending"
)

// FixedClock is a lending.Clock pinned to one date, so lifecycle rules can be
// tested deterministically.
type FixedClock struct {
	Date lending.ReservationDate
}

// NewFixedClock pins the clock to the given date, normalized to a date-only value.
func NewFixedClock(t time.Time) FixedClock {
	return FixedClock{Date: lending.ToReservationDate(t)}
}

// Today returns the pinned date.
func (c FixedClock) Today() lending.ReservationDate {
	return c.Date
}
