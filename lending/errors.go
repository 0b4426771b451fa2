package lending

import "errors"

// Business rule violations surfaced to callers. All are recoverable-by-caller
// conditions; the engine wraps them with the offending identifier so a
// transport layer can render a user-facing message and map each kind to a
// stable status. Match with errors.Is.
var (
	ErrMemberNotFound          = errors.New("member not found")
	ErrBookNotFound            = errors.New("book not found")
	ErrBookUnavailable         = errors.New("book is not available")
	ErrQuotaExceeded           = errors.New("member has reached the maximum number of active reservations")
	ErrInvalidDateRange        = errors.New("invalid reservation date range")
	ErrReservationNotFound     = errors.New("reservation not found")
	ErrReservationAlreadyEnded = errors.New("a reservation that has already ended cannot be canceled")
)

// Construction errors for the Engine.
var (
	ErrNilStores             = errors.New("nil stores supplied")
	ErrNilUnitOfWork         = errors.New("nil unit of work supplied")
	ErrNilNotificationSender = errors.New("nil notification sender supplied")
	ErrNilClock              = errors.New("nil clock supplied")
)
