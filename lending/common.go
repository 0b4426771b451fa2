package lending

import (
	"time"
)

// Instead of implementing full value objects, alias types and helper functions are used here ...

// MemberCodeString represents a member identifier, assigned by the institution.
type MemberCodeString = string

// ISBNString represents a book identifier (standardized catalog number).
type ISBNString = string

// ReservationDate represents a calendar date relevant to a reservation.
type ReservationDate = time.Time

// ToReservationDate normalizes a time to a date-only value (UTC midnight).
// All lifecycle rules compare calendar dates, never clock times.
func ToReservationDate(t time.Time) ReservationDate {
	u := t.UTC()

	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// Clock supplies the current date to the lifecycle rules.
// Injecting it keeps "today" out of the global clock so tests can fix it.
type Clock interface {
	Today() ReservationDate
}

// SystemClock is the production Clock, backed by time.Now.
type SystemClock struct{}

// Today returns the current calendar date in UTC.
func (SystemClock) Today() ReservationDate {
	return ToReservationDate(time.Now())
}
