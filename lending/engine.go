package lending

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

const (
	logMsgReservationCreated  = "reservation created"
	logMsgReservationCanceled = "reservation canceled"
	logMsgReminderSendFailed  = "failed to send overdue reminder"
	logMsgRemindersSent       = "overdue reminders sent"
	logMsgExpiredPurged       = "expired reservations purged"
	logAttrReservationID      = "reservation_id"
	logAttrMemberCode         = "member_code"
	logAttrISBN               = "isbn"
	logAttrEndDate            = "end_date"
	logAttrRecipient          = "recipient"
	logAttrError              = "error"
	logAttrCount              = "count"
)

// Engine orchestrates the reservation lifecycle against the member, book and
// reservation stores and the notification sender. It holds no state of its
// own; every rule is evaluated fresh against the stores at call time.
type Engine struct {
	stores Stores
	uow    UnitOfWork
	sender NotificationSender
	clock  Clock
	logger Logger
}

// Option defines a functional option for configuring an Engine.
type Option func(*Engine) error

// WithClock sets the date source for the Engine. Defaults to SystemClock.
func WithClock(clock Clock) Option {
	return func(e *Engine) error {
		if clock == nil {
			return ErrNilClock
		}

		e.clock = clock

		return nil
	}
}

// WithLogger sets the logger for the Engine.
func WithLogger(logger Logger) Option {
	return func(e *Engine) error {
		e.logger = logger
		return nil
	}
}

// NewEngine creates an Engine with the given collaborators and optional
// configuration.
func NewEngine(stores Stores, uow UnitOfWork, sender NotificationSender, options ...Option) (Engine, error) {
	if stores == nil {
		return Engine{}, ErrNilStores
	}

	if uow == nil {
		return Engine{}, ErrNilUnitOfWork
	}

	if sender == nil {
		return Engine{}, ErrNilNotificationSender
	}

	e := Engine{
		stores: stores,
		uow:    uow,
		sender: sender,
		clock:  SystemClock{},
	}

	for _, option := range options {
		if err := option(&e); err != nil {
			return Engine{}, err
		}
	}

	return e, nil
}

// CreateReservation reserves the book identified by isbn for the member
// identified by memberCode, starting today and ending on endDate.
//
// Preconditions are evaluated in order, each short-circuiting the rest:
// member exists, book exists, book is available, member is below the quota,
// end date falls inside the allowed window. The availability flag is not
// flipped by creation; it is owned by the borrow/return desk flow.
//
// The quota check is count-then-create and is not atomic against concurrent
// requests for the same member.
func (e Engine) CreateReservation(
	ctx context.Context,
	memberCode MemberCodeString,
	isbn ISBNString,
	endDate ReservationDate,
) (Reservation, error) {

	today := e.clock.Today()

	member, err := e.stores.Members().FindByCode(ctx, memberCode)
	if err != nil {
		return Reservation{}, err
	}

	book, err := e.stores.Books().FindByISBN(ctx, isbn)
	if err != nil {
		return Reservation{}, err
	}

	if availabilityErr := CheckAvailability(book); availabilityErr != nil {
		return Reservation{}, availabilityErr
	}

	activeCount, err := e.stores.Reservations().CountActiveForMember(ctx, member.Code, today)
	if err != nil {
		return Reservation{}, err
	}

	if quotaErr := CheckQuota(member, activeCount); quotaErr != nil {
		return Reservation{}, quotaErr
	}

	end := ToReservationDate(endDate)
	if windowErr := ValidateReservationWindow(today, end); windowErr != nil {
		return Reservation{}, windowErr
	}

	reservation := Reservation{
		Member:    member,
		Book:      book,
		StartDate: today,
		EndDate:   end,
	}

	saved, err := e.stores.Reservations().Save(ctx, reservation)
	if err != nil {
		return Reservation{}, err
	}

	if e.logger != nil {
		e.logger.Info(logMsgReservationCreated,
			logAttrReservationID, saved.ID.String(),
			logAttrMemberCode, member.Code,
			logAttrISBN, book.ISBN,
			logAttrEndDate, formatDate(end))
	}

	return saved, nil
}

// CancelReservation removes the reservation identified by id and restores the
// referenced book's availability. A reservation whose term has already lapsed
// cannot be canceled; it is removed by PurgeExpiredReservations instead.
//
// The availability write and the delete run inside one unit of work so a
// failure midway leaves both stores unchanged.
func (e Engine) CancelReservation(ctx context.Context, id uuid.UUID) error {
	today := e.clock.Today()

	reservation, err := e.stores.Reservations().FindByID(ctx, id)
	if err != nil {
		return err
	}

	if reservation.IsOverdue(today) {
		return fmt.Errorf("%w: reservation %s ended on %s",
			ErrReservationAlreadyEnded, reservation.ID, formatDate(reservation.EndDate))
	}

	err = e.uow.Execute(ctx, func(tx Stores) error {
		// The current catalog record, not the creation-time snapshot. Only the
		// availability flag belongs to this flow; all other book fields may
		// have been edited while the reservation ran.
		book, findErr := tx.Books().FindByISBN(ctx, reservation.Book.ISBN)
		if findErr != nil {
			return findErr
		}

		book.Available = true

		if saveErr := tx.Books().Save(ctx, book); saveErr != nil {
			return saveErr
		}

		return tx.Reservations().Delete(ctx, reservation)
	})
	if err != nil {
		return err
	}

	if e.logger != nil {
		e.logger.Info(logMsgReservationCanceled,
			logAttrReservationID, reservation.ID.String(),
			logAttrISBN, reservation.Book.ISBN)
	}

	return nil
}

// ActiveReservations lists all reservations whose end date is on or after
// today. An empty result is a valid outcome, not an error.
func (e Engine) ActiveReservations(ctx context.Context) ([]Reservation, error) {
	return e.stores.Reservations().FindEndingOnOrAfter(ctx, e.clock.Today())
}

// ActiveReservationsForMember lists the member's reservations whose end date
// is on or after today. The member must exist.
func (e Engine) ActiveReservationsForMember(ctx context.Context, memberCode MemberCodeString) ([]Reservation, error) {
	member, err := e.stores.Members().FindByCode(ctx, memberCode)
	if err != nil {
		return nil, err
	}

	return e.stores.Reservations().FindForMemberEndingOnOrAfter(ctx, member.Code, e.clock.Today())
}

// ReservationHistoryForMember lists every reservation ever recorded for the
// member, active and ended alike. The member must exist.
func (e Engine) ReservationHistoryForMember(ctx context.Context, memberCode MemberCodeString) ([]Reservation, error) {
	member, err := e.stores.Members().FindByCode(ctx, memberCode)
	if err != nil {
		return nil, err
	}

	return e.stores.Reservations().FindForMember(ctx, member.Code)
}

// SendOverdueReminders sends exactly one notification per member having at
// least one overdue reservation, enumerating that member's overdue books.
// The operation is read-only with respect to persisted state. Send failures
// are logged and skipped; the returned count is the number of notifications
// actually handed to the sender.
func (e Engine) SendOverdueReminders(ctx context.Context) (int, error) {
	today := e.clock.Today()

	overdue, err := e.overdueAsOf(ctx, today)
	if err != nil {
		return 0, err
	}

	sent := 0

	for _, group := range GroupOverdueByMember(overdue) {
		member := group[0].Member
		body := ComposeOverdueReminder(member, group)

		if sendErr := e.sender.Send(ctx, member.Email, OverdueReminderSubject, body); sendErr != nil {
			if e.logger != nil {
				e.logger.Warn(logMsgReminderSendFailed,
					logAttrMemberCode, member.Code,
					logAttrRecipient, member.Email,
					logAttrError, sendErr.Error())
			}

			continue
		}

		sent++
	}

	if e.logger != nil {
		e.logger.Info(logMsgRemindersSent, logAttrCount, sent)
	}

	return sent, nil
}

// PurgeExpiredReservations deletes every reservation whose end date is
// strictly before today and returns the number of deleted records.
// Reservations ending today or later are left untouched.
func (e Engine) PurgeExpiredReservations(ctx context.Context) (int, error) {
	today := e.clock.Today()

	expired, err := e.overdueAsOf(ctx, today)
	if err != nil {
		return 0, err
	}

	deleted := 0

	for _, reservation := range expired {
		if deleteErr := e.stores.Reservations().Delete(ctx, reservation); deleteErr != nil {
			return deleted, deleteErr
		}

		deleted++
	}

	if e.logger != nil {
		e.logger.Info(logMsgExpiredPurged, logAttrCount, deleted)
	}

	return deleted, nil
}

// overdueAsOf is the single overdue selection shared by the reminder batch
// and the expiry sweep, so both operate on the same predicate and the same
// sampled date within one run.
func (e Engine) overdueAsOf(ctx context.Context, today ReservationDate) ([]Reservation, error) {
	return e.stores.Reservations().FindEndingBefore(ctx, today)
}
