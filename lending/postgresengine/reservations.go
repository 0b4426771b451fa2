package postgresengine

import (
	"context"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"

	"github.com/openlending/lending-reservations-go/lending"
	"github.com/openlending/lending-reservations-go/lending/postgresengine/internal/adapters"
)

type reservationStore struct {
	s *Stores
}

// FindByID retrieves one reservation, including its member and book snapshots.
func (r reservationStore) FindByID(ctx context.Context, id uuid.UUID) (lending.Reservation, error) {
	reservations, err := r.query(ctx, "find reservation by id",
		r.selectJoined().Where(goqu.I("r."+colID).Eq(goqu.L(castUUID, id.String()))))
	if err != nil {
		return lending.Reservation{}, err
	}

	if len(reservations) == 0 {
		return lending.Reservation{}, fmt.Errorf("%w: %s", lending.ErrReservationNotFound, id)
	}

	return reservations[0], nil
}

// Save persists the reservation. The identifier is assigned on first save;
// later saves replace the whole record.
func (r reservationStore) Save(ctx context.Context, reservation lending.Reservation) (lending.Reservation, error) {
	if reservation.ID == uuid.Nil {
		reservation.ID = uuid.New()
		return reservation, r.insert(ctx, reservation)
	}

	return reservation, r.update(ctx, reservation)
}

func (r reservationStore) insert(ctx context.Context, reservation lending.Reservation) error {
	query, _, err := r.s.dialect().
		Insert(r.s.resvTable).
		Rows(r.record(reservation)).
		ToSQL()
	if err != nil {
		r.s.logError(logMsgBuildQueryFailed, logAttrError, err.Error())
		return err
	}

	r.s.logDebug(logMsgSQLExecuted+"insert reservation", logAttrQuery, query)

	if _, execErr := r.s.db.Exec(ctx, query); execErr != nil {
		r.s.logError(logMsgDBExecFailed, logAttrError, execErr.Error())
		return execErr
	}

	return nil
}

func (r reservationStore) update(ctx context.Context, reservation lending.Reservation) error {
	query, _, err := r.s.dialect().
		Update(r.s.resvTable).
		Set(r.record(reservation)).
		Where(goqu.C(colID).Eq(goqu.L(castUUID, reservation.ID.String()))).
		ToSQL()
	if err != nil {
		r.s.logError(logMsgBuildQueryFailed, logAttrError, err.Error())
		return err
	}

	r.s.logDebug(logMsgSQLExecuted+"update reservation", logAttrQuery, query)

	result, err := r.s.db.Exec(ctx, query)
	if err != nil {
		r.s.logError(logMsgDBExecFailed, logAttrError, err.Error())
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if affected == 0 {
		return fmt.Errorf("%w: %s", lending.ErrReservationNotFound, reservation.ID)
	}

	return nil
}

func (r reservationStore) record(reservation lending.Reservation) goqu.Record {
	return goqu.Record{
		colID:         goqu.L(castUUID, reservation.ID.String()),
		colMemberCode: reservation.Member.Code,
		colISBN:       reservation.Book.ISBN,
		colStartDate:  goqu.L(castDate, formatDate(reservation.StartDate)),
		colEndDate:    goqu.L(castDate, formatDate(reservation.EndDate)),
	}
}

// Delete removes the reservation. Removal is the terminal state of the
// reservation lifecycle.
func (r reservationStore) Delete(ctx context.Context, reservation lending.Reservation) error {
	query, _, err := r.s.dialect().
		Delete(r.s.resvTable).
		Where(goqu.C(colID).Eq(goqu.L(castUUID, reservation.ID.String()))).
		ToSQL()
	if err != nil {
		r.s.logError(logMsgBuildQueryFailed, logAttrError, err.Error())
		return err
	}

	r.s.logDebug(logMsgSQLExecuted+"delete reservation", logAttrQuery, query)

	result, err := r.s.db.Exec(ctx, query)
	if err != nil {
		r.s.logError(logMsgDBExecFailed, logAttrError, err.Error())
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if affected == 0 {
		return fmt.Errorf("%w: %s", lending.ErrReservationNotFound, reservation.ID)
	}

	return nil
}

// CountActiveForMember counts the member's reservations with an end date on
// or after today. The count is computed fresh on every call.
func (r reservationStore) CountActiveForMember(
	ctx context.Context,
	code lending.MemberCodeString,
	today lending.ReservationDate,
) (int, error) {

	query, _, err := r.s.dialect().
		From(r.s.resvTable).
		Select(goqu.COUNT(goqu.Star())).
		Where(
			goqu.C(colMemberCode).Eq(code),
			goqu.C(colEndDate).Gte(goqu.L(castDate, formatDate(today))),
		).
		ToSQL()
	if err != nil {
		r.s.logError(logMsgBuildQueryFailed, logAttrError, err.Error())
		return 0, err
	}

	r.s.logDebug(logMsgSQLExecuted+"count active reservations", logAttrQuery, query)

	rows, err := r.s.db.Query(ctx, query)
	if err != nil {
		r.s.logError(logMsgDBQueryFailed, logAttrError, err.Error())
		return 0, err
	}
	defer r.s.closeRows(rows)

	var count int64

	if rows.Next() {
		if scanErr := rows.Scan(&count); scanErr != nil {
			r.s.logError(logMsgScanRowFailed, logAttrError, scanErr.Error())
			return 0, scanErr
		}
	}

	return int(count), nil
}

// FindEndingOnOrAfter lists reservations whose end date is on or after the
// given date ("active" as of that date).
func (r reservationStore) FindEndingOnOrAfter(ctx context.Context, date lending.ReservationDate) ([]lending.Reservation, error) {
	return r.query(ctx, "find reservations ending on or after",
		r.selectJoined().Where(goqu.I("r."+colEndDate).Gte(goqu.L(castDate, formatDate(date)))))
}

// FindEndingBefore lists reservations whose end date is strictly before the
// given date ("overdue" as of that date).
func (r reservationStore) FindEndingBefore(ctx context.Context, date lending.ReservationDate) ([]lending.Reservation, error) {
	return r.query(ctx, "find reservations ending before",
		r.selectJoined().Where(goqu.I("r."+colEndDate).Lt(goqu.L(castDate, formatDate(date)))))
}

// FindForMember lists every reservation recorded for the member.
func (r reservationStore) FindForMember(ctx context.Context, code lending.MemberCodeString) ([]lending.Reservation, error) {
	return r.query(ctx, "find reservations for member",
		r.selectJoined().Where(goqu.I("r."+colMemberCode).Eq(code)))
}

// FindForMemberEndingOnOrAfter lists the member's reservations whose end date
// is on or after the given date.
func (r reservationStore) FindForMemberEndingOnOrAfter(
	ctx context.Context,
	code lending.MemberCodeString,
	date lending.ReservationDate,
) ([]lending.Reservation, error) {

	return r.query(ctx, "find active reservations for member",
		r.selectJoined().Where(
			goqu.I("r."+colMemberCode).Eq(code),
			goqu.I("r."+colEndDate).Gte(goqu.L(castDate, formatDate(date))),
		))
}

// selectJoined builds the select joining the member and book snapshots onto
// each reservation row.
func (r reservationStore) selectJoined() *goqu.SelectDataset {
	return r.s.dialect().
		From(goqu.T(r.s.resvTable).As("r")).
		Join(
			goqu.T(r.s.memberTable).As("m"),
			goqu.On(goqu.I("r."+colMemberCode).Eq(goqu.I("m."+colCode))),
		).
		Join(
			goqu.T(r.s.bookTable).As("b"),
			goqu.On(goqu.I("r."+colISBN).Eq(goqu.I("b."+colISBN))),
		).
		Select(
			goqu.I("r."+colID), goqu.I("r."+colStartDate), goqu.I("r."+colEndDate),
			goqu.I("m."+colCode), goqu.I("m."+colFirstName), goqu.I("m."+colLastName),
			goqu.I("m."+colBirthDate), goqu.I("m."+colCivility), goqu.I("m."+colEmail),
			goqu.I("b."+colISBN), goqu.I("b."+colTitle), goqu.I("b."+colAuthor),
			goqu.I("b."+colPublisher), goqu.I("b."+colFormat), goqu.I("b."+colAvailable),
		).
		Order(goqu.I("r."+colStartDate).Asc(), goqu.I("r."+colID).Asc())
}

func (r reservationStore) query(ctx context.Context, action string, dataset *goqu.SelectDataset) ([]lending.Reservation, error) {
	query, _, err := dataset.ToSQL()
	if err != nil {
		r.s.logError(logMsgBuildQueryFailed, logAttrError, err.Error())
		return nil, err
	}

	r.s.logDebug(logMsgSQLExecuted+action, logAttrQuery, query)

	rows, err := r.s.db.Query(ctx, query)
	if err != nil {
		r.s.logError(logMsgDBQueryFailed, logAttrError, err.Error())
		return nil, err
	}
	defer r.s.closeRows(rows)

	reservations := make([]lending.Reservation, 0)

	for rows.Next() {
		reservation, scanErr := scanReservation(rows)
		if scanErr != nil {
			r.s.logError(logMsgScanRowFailed, logAttrError, scanErr.Error())
			return nil, scanErr
		}

		reservations = append(reservations, reservation)
	}

	return reservations, nil
}

func scanReservation(rows adapters.DBRows) (lending.Reservation, error) {
	var reservation lending.Reservation
	var id, civility, format string
	var start, end time.Time

	if err := rows.Scan(
		&id, &start, &end,
		&reservation.Member.Code, &reservation.Member.FirstName, &reservation.Member.LastName,
		&reservation.Member.BirthDate, &civility, &reservation.Member.Email,
		&reservation.Book.ISBN, &reservation.Book.Title, &reservation.Book.Author,
		&reservation.Book.Publisher, &format, &reservation.Book.Available,
	); err != nil {
		return lending.Reservation{}, err
	}

	parsed, err := uuid.Parse(id)
	if err != nil {
		return lending.Reservation{}, err
	}

	reservation.ID = parsed
	reservation.Member.Civility = lending.Civility(civility)
	reservation.Book.Format = lending.Format(format)
	reservation.StartDate = lending.ToReservationDate(start)
	reservation.EndDate = lending.ToReservationDate(end)

	return reservation, nil
}

func formatDate(d lending.ReservationDate) string {
	return d.Format("2006-01-02")
}
