package lending

import (
	"github.com/google/uuid"
)

// Reservation is a time-bounded claim by one member on one book.
// The ID is assigned by the reservation store on first save and is immutable
// afterwards. Member and Book are snapshots of the referenced records.
//
// There is no status field: a reservation is active while its end date is on
// or after the current date and overdue once the end date has passed. Removal
// from the store (explicit cancellation or the expiry sweep) is the terminal
// state.
type Reservation struct {
	ID        uuid.UUID       `json:"id"`
	Member    Member          `json:"member"`
	Book      Book            `json:"book"`
	StartDate ReservationDate `json:"start_date"`
	EndDate   ReservationDate `json:"end_date"`
}

// IsActive reports whether the reservation is still running on the given day.
func (r Reservation) IsActive(today ReservationDate) bool {
	return !r.EndDate.Before(today)
}

// IsOverdue reports whether the reservation's term has lapsed on the given day.
func (r Reservation) IsOverdue(today ReservationDate) bool {
	return r.EndDate.Before(today)
}
