package postgresengine_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openlending/lending-reservations-go/lending"
	"github.com/openlending/lending-reservations-go/lending/postgresengine"
)

func Test_NewStoresFromPGXPool_ReturnsError_WhenPoolIsNil(t *testing.T) {
	// act
	stores, err := postgresengine.NewStoresFromPGXPool(nil)

	// assert
	assert.ErrorIs(t, err, postgresengine.ErrNilDatabaseConnection)
	assert.Nil(t, stores)
}

func Test_NewStoresFromSQLDB_ReturnsError_WhenDBIsNil(t *testing.T) {
	// act
	stores, err := postgresengine.NewStoresFromSQLDB(nil)

	// assert
	assert.ErrorIs(t, err, postgresengine.ErrNilDatabaseConnection)
	assert.Nil(t, stores)
}

func Test_NewStoresFromSQLX_ReturnsError_WhenDBIsNil(t *testing.T) {
	// act
	stores, err := postgresengine.NewStoresFromSQLX(nil)

	// assert
	assert.ErrorIs(t, err, postgresengine.ErrNilDatabaseConnection)
	assert.Nil(t, stores)
}

func Test_NewStores_ReturnsError_WhenTableNameIsEmpty(t *testing.T) {
	// arrange
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	// act
	stores, storesErr := postgresengine.NewStoresFromSQLDB(db,
		postgresengine.WithTableNames("members", "", "reservations"))

	// assert
	assert.ErrorIs(t, storesErr, postgresengine.ErrEmptyTableName)
	assert.Nil(t, stores)
}

func Test_MemberStore_FindByCode_ReturnsMember_WhenRowExists(t *testing.T) {
	// arrange
	stores, mock := givenStores(t)

	mock.ExpectQuery(`FROM "members" WHERE \("code" = 'M-001'\)`).
		WillReturnRows(sqlmock.
			NewRows([]string{"code", "first_name", "last_name", "birth_date", "civility", "email"}).
			AddRow("M-001", "Ada", "Lovelace", "1815-12-10", "MRS", "ada@example.com"))

	// act
	member, err := stores.Members().FindByCode(context.Background(), "M-001")

	// assert
	require.NoError(t, err)
	assert.Equal(t, "M-001", member.Code)
	assert.Equal(t, "Ada", member.FirstName)
	assert.Equal(t, lending.CivilityMrs, member.Civility)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func Test_MemberStore_FindByCode_ReturnsNotFound_WhenNoRowExists(t *testing.T) {
	// arrange
	stores, mock := givenStores(t)

	mock.ExpectQuery(`FROM "members" WHERE \("code" = 'M-404'\)`).
		WillReturnRows(sqlmock.
			NewRows([]string{"code", "first_name", "last_name", "birth_date", "civility", "email"}))

	// act
	_, err := stores.Members().FindByCode(context.Background(), "M-404")

	// assert
	assert.ErrorIs(t, err, lending.ErrMemberNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func Test_MemberStore_Delete_ReturnsNotFound_WhenNoRowIsAffected(t *testing.T) {
	// arrange
	stores, mock := givenStores(t)

	mock.ExpectExec(`DELETE FROM "members" WHERE \("code" = 'M-404'\)`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	// act
	err := stores.Members().Delete(context.Background(), "M-404")

	// assert
	assert.ErrorIs(t, err, lending.ErrMemberNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func Test_BookStore_Save_UpsertsTheRecord(t *testing.T) {
	// arrange
	stores, mock := givenStores(t)

	mock.ExpectExec(`INSERT INTO "books" .* ON CONFLICT \("isbn"\) DO UPDATE`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	// act
	err := stores.Books().Save(context.Background(), lending.Book{
		ISBN:      "978-0134190440",
		Title:     "The Go Programming Language",
		Author:    "Donovan, Kernighan",
		Publisher: "Addison-Wesley",
		Format:    lending.FormatPaperback,
		Available: true,
	})

	// assert
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func Test_BookStore_SearchByTitle_ReturnsMatchingBooks(t *testing.T) {
	// arrange
	stores, mock := givenStores(t)

	mock.ExpectQuery(`FROM "books" WHERE \("title" ILIKE '%go%'\)`).
		WillReturnRows(sqlmock.
			NewRows([]string{"isbn", "title", "author", "publisher", "format", "available"}).
			AddRow("978-0134190440", "The Go Programming Language", "Donovan, Kernighan", "Addison-Wesley", "PAPERBACK", true))

	// act
	books, err := stores.Books().SearchByTitle(context.Background(), "go")

	// assert
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, lending.FormatPaperback, books[0].Format)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func Test_ReservationStore_Save_AssignsAnID_WhenReservationIsNew(t *testing.T) {
	// arrange
	stores, mock := givenStores(t)

	mock.ExpectExec(`INSERT INTO "reservations"`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	reservation := lending.Reservation{
		Member:    lending.Member{Code: "M-001"},
		Book:      lending.Book{ISBN: "978-0134190440"},
		StartDate: lending.ToReservationDate(time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC)),
		EndDate:   lending.ToReservationDate(time.Date(2026, time.April, 15, 0, 0, 0, 0, time.UTC)),
	}

	// act
	saved, err := stores.Reservations().Save(context.Background(), reservation)

	// assert
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, saved.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func Test_ReservationStore_Save_ReturnsNotFound_WhenUpdateAffectsNoRow(t *testing.T) {
	// arrange
	stores, mock := givenStores(t)

	mock.ExpectExec(`UPDATE "reservations" SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	reservation := lending.Reservation{
		ID:        uuid.New(),
		Member:    lending.Member{Code: "M-001"},
		Book:      lending.Book{ISBN: "978-0134190440"},
		StartDate: lending.ToReservationDate(time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC)),
		EndDate:   lending.ToReservationDate(time.Date(2026, time.April, 15, 0, 0, 0, 0, time.UTC)),
	}

	// act
	_, err := stores.Reservations().Save(context.Background(), reservation)

	// assert
	assert.ErrorIs(t, err, lending.ErrReservationNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func Test_ReservationStore_CountActiveForMember_ReturnsTheCount(t *testing.T) {
	// arrange
	stores, mock := givenStores(t)
	today := lending.ToReservationDate(time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC))

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM "reservations" WHERE \(\("member_code" = 'M-001'\) AND \("end_date" >= '2026-03-15'::date\)\)`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	// act
	count, err := stores.Reservations().CountActiveForMember(context.Background(), "M-001", today)

	// assert
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func Test_ReservationStore_FindByID_ReturnsJoinedSnapshots(t *testing.T) {
	// arrange
	stores, mock := givenStores(t)
	id := uuid.New()

	mock.ExpectQuery(`FROM "reservations" AS "r" INNER JOIN "members" AS "m"`).
		WillReturnRows(givenReservationRows(id))

	// act
	reservation, err := stores.Reservations().FindByID(context.Background(), id)

	// assert
	require.NoError(t, err)
	assert.Equal(t, id, reservation.ID)
	assert.Equal(t, "Ada", reservation.Member.FirstName)
	assert.Equal(t, "The Go Programming Language", reservation.Book.Title)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func Test_ReservationStore_FindByID_ReturnsNotFound_WhenNoRowExists(t *testing.T) {
	// arrange
	stores, mock := givenStores(t)

	mock.ExpectQuery(`FROM "reservations" AS "r" INNER JOIN "members" AS "m"`).
		WillReturnRows(givenEmptyReservationRows())

	// act
	_, err := stores.Reservations().FindByID(context.Background(), uuid.New())

	// assert
	assert.ErrorIs(t, err, lending.ErrReservationNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func Test_Stores_Execute_CommitsTheTransaction_WhenFnSucceeds(t *testing.T) {
	// arrange
	stores, mock := givenStores(t)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "books"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM "reservations"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	reservation := lending.Reservation{
		ID:   uuid.New(),
		Book: lending.Book{ISBN: "978-0134190440", Available: true},
	}

	// act
	err := stores.Execute(context.Background(), func(tx lending.Stores) error {
		if saveErr := tx.Books().Save(context.Background(), reservation.Book); saveErr != nil {
			return saveErr
		}

		return tx.Reservations().Delete(context.Background(), reservation)
	})

	// assert
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func Test_Stores_Execute_RollsBackTheTransaction_WhenFnFails(t *testing.T) {
	// arrange
	stores, mock := givenStores(t)
	failure := errors.New("boom")

	mock.ExpectBegin()
	mock.ExpectRollback()

	// act
	err := stores.Execute(context.Background(), func(_ lending.Stores) error {
		return failure
	})

	// assert
	assert.ErrorIs(t, err, failure)
	assert.NoError(t, mock.ExpectationsWereMet())
}

/*** Test helpers ***/

func givenStores(t *testing.T) (*postgresengine.Stores, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	stores, err := postgresengine.NewStoresFromSQLDB(db)
	require.NoError(t, err)

	return stores, mock
}

func reservationColumns() []string {
	return []string{
		"id", "start_date", "end_date",
		"code", "first_name", "last_name", "birth_date", "civility", "email",
		"isbn", "title", "author", "publisher", "format", "available",
	}
}

func givenReservationRows(id uuid.UUID) *sqlmock.Rows {
	return sqlmock.NewRows(reservationColumns()).
		AddRow(
			id.String(),
			time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC),
			time.Date(2026, time.April, 15, 0, 0, 0, 0, time.UTC),
			"M-001", "Ada", "Lovelace", "1815-12-10", "MRS", "ada@example.com",
			"978-0134190440", "The Go Programming Language", "Donovan, Kernighan",
			"Addison-Wesley", "PAPERBACK", true,
		)
}

func givenEmptyReservationRows() *sqlmock.Rows {
	return sqlmock.NewRows(reservationColumns())
}
