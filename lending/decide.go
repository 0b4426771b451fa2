package lending

import (
	"fmt"
	"time"
)

const (
	// MaxActiveReservationsPerMember is the quota of simultaneous active
	// reservations permitted per member.
	MaxActiveReservationsPerMember = 3

	// ReservationWindowMonths bounds how far past the start date a
	// reservation may end.
	ReservationWindowMonths = 4
)

// CheckAvailability verifies that the book can currently be reserved.
//
// Business rule:
//
//	GIVEN: A book from the catalog store
//	WHEN: A reservation for it is requested
//	ERROR: ErrBookUnavailable if its availability flag is false
func CheckAvailability(book Book) error {
	if !book.Available {
		return fmt.Errorf("%w: %s", ErrBookUnavailable, book.ISBN)
	}

	return nil
}

// CheckQuota verifies that the member is below the reservation quota.
// activeCount is the member's count of currently-active reservations,
// computed fresh at call time.
//
// Business rule:
//
//	GIVEN: A member and their current active reservation count
//	WHEN: A new reservation is requested
//	ERROR: ErrQuotaExceeded if the count has reached the quota of 3
func CheckQuota(member Member, activeCount int) error {
	if activeCount >= MaxActiveReservationsPerMember {
		return fmt.Errorf("%w: member %s has %d (limit %d)",
			ErrQuotaExceeded, member.Code, activeCount, MaxActiveReservationsPerMember)
	}

	return nil
}

// ValidateReservationWindow verifies the requested end date against the start
// date, which is always "today".
//
// Business rules:
//
//	GIVEN: A start date and a requested end date
//	WHEN: A new reservation is requested
//	ERROR: ErrInvalidDateRange if the end date is not strictly after the start date
//	ERROR: ErrInvalidDateRange if the end date is more than 4 months after the start date
func ValidateReservationWindow(start, end ReservationDate) error {
	if !end.After(start) {
		return fmt.Errorf("%w: end date %s must be after start date %s",
			ErrInvalidDateRange, formatDate(end), formatDate(start))
	}

	latest := addMonthsClamped(start, ReservationWindowMonths)
	if end.After(latest) {
		return fmt.Errorf("%w: end date %s exceeds %s (start date plus %d months)",
			ErrInvalidDateRange, formatDate(end), formatDate(latest), ReservationWindowMonths)
	}

	return nil
}

// addMonthsClamped adds months with calendar semantics: when the start day
// does not exist in the target month, the result clamps to that month's last
// day. Oct 31 plus 4 months is Feb 28, not Mar 3 as time.AddDate would yield.
func addMonthsClamped(d ReservationDate, months int) ReservationDate {
	year, month, day := d.Date()

	firstOfTarget := time.Date(year, month+time.Month(months), 1, 0, 0, 0, 0, time.UTC)
	lastDay := firstOfTarget.AddDate(0, 1, -1).Day()

	if day > lastDay {
		day = lastDay
	}

	return time.Date(firstOfTarget.Year(), firstOfTarget.Month(), day, 0, 0, 0, 0, time.UTC)
}

func formatDate(d ReservationDate) string {
	return d.Format("2006-01-02")
}
