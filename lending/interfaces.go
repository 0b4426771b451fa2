package lending

import (
	"context"

	"github.com/google/uuid"
)

// MemberStore holds Member records keyed by their code.
// Lookups return an error wrapping ErrMemberNotFound when the record is absent.
type MemberStore interface {
	FindByCode(ctx context.Context, code MemberCodeString) (Member, error)
	SearchByName(ctx context.Context, name string) ([]Member, error)
	Save(ctx context.Context, member Member) error
	Delete(ctx context.Context, code MemberCodeString) error
}

// BookStore holds Book records keyed by their ISBN.
// Lookups return an error wrapping ErrBookNotFound when the record is absent.
// Save persists availability flag changes.
type BookStore interface {
	FindByISBN(ctx context.Context, isbn ISBNString) (Book, error)
	SearchByTitle(ctx context.Context, title string) ([]Book, error)
	Save(ctx context.Context, book Book) error
	Delete(ctx context.Context, isbn ISBNString) error
}

// ReservationStore persists Reservation records.
// Save assigns the identifier on first save. Date-filtered queries return an
// empty slice, never an error, when nothing matches.
type ReservationStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (Reservation, error)
	Save(ctx context.Context, reservation Reservation) (Reservation, error)
	Delete(ctx context.Context, reservation Reservation) error
	CountActiveForMember(ctx context.Context, code MemberCodeString, today ReservationDate) (int, error)
	FindEndingOnOrAfter(ctx context.Context, date ReservationDate) ([]Reservation, error)
	FindEndingBefore(ctx context.Context, date ReservationDate) ([]Reservation, error)
	FindForMember(ctx context.Context, code MemberCodeString) ([]Reservation, error)
	FindForMemberEndingOnOrAfter(ctx context.Context, code MemberCodeString, date ReservationDate) ([]Reservation, error)
}

// Stores bundles the three collaborator stores the engine works against.
type Stores interface {
	Members() MemberStore
	Books() BookStore
	Reservations() ReservationStore
}

// UnitOfWork runs fn against a transactional view of the stores.
// Either every write made through tx is applied, or none is. The engine uses
// it for cancellation, whose availability write and reservation delete must
// not be applied independently.
type UnitOfWork interface {
	Execute(ctx context.Context, fn func(tx Stores) error) error
}

// NotificationSender delivers a message to a member's contact address.
// Delivery is fire-and-forget: the engine logs failures but does not retry
// and does not require a delivery confirmation.
type NotificationSender interface {
	Send(ctx context.Context, recipient, subject, body string) error
}

// Logger interface for operational logging, warnings, and error reporting.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}
