package postgresengine_test

import (
	"database/sql"
	"os"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openlending/lending-reservations-go/lending"
	"github.com/openlending/lending-reservations-go/lending/postgresengine"
)

// Integration tests against a real Postgres, one per database adapter.
// They are skipped unless DATABASE_URL is set; a .env file in the working
// directory is honored for local runs.

func Test_Integration_SQLDB_ReservationRoundTrip(t *testing.T) {
	// setup
	dsn := integrationDSN(t)

	db, err := sql.Open("postgres", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	stores, err := postgresengine.NewStoresFromSQLDB(db,
		postgresengine.WithTableNames("it_members", "it_books", "it_reservations"))
	require.NoError(t, err)

	runReservationRoundTrip(t, stores)
}

func Test_Integration_SQLX_ReservationRoundTrip(t *testing.T) {
	// setup
	dsn := integrationDSN(t)

	db, err := sqlx.Connect("postgres", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	stores, err := postgresengine.NewStoresFromSQLX(db,
		postgresengine.WithTableNames("it_members", "it_books", "it_reservations"))
	require.NoError(t, err)

	runReservationRoundTrip(t, stores)
}

func integrationDSN(t *testing.T) string {
	t.Helper()

	_ = godotenv.Load()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set, skipping Postgres integration test")
	}

	return dsn
}

func runReservationRoundTrip(t *testing.T, stores *postgresengine.Stores) {
	t.Helper()
	ctx := t.Context()

	require.NoError(t, stores.EnsureSchema(ctx))

	member := lending.Member{
		Code:      "IT-M-001",
		FirstName: "Ada",
		LastName:  "Lovelace",
		BirthDate: "1815-12-10",
		Civility:  lending.CivilityMrs,
		Email:     "ada@example.com",
	}
	book := lending.Book{
		ISBN:      "IT-978-0134190440",
		Title:     "The Go Programming Language",
		Author:    "Donovan, Kernighan",
		Publisher: "Addison-Wesley",
		Format:    lending.FormatPaperback,
		Available: true,
	}

	require.NoError(t, stores.Members().Save(ctx, member))
	require.NoError(t, stores.Books().Save(ctx, book))

	today := lending.ToReservationDate(time.Now())

	saved, err := stores.Reservations().Save(ctx, lending.Reservation{
		Member:    member,
		Book:      book,
		StartDate: today,
		EndDate:   today.AddDate(0, 1, 0),
	})
	require.NoError(t, err)

	loaded, err := stores.Reservations().FindByID(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, member.Code, loaded.Member.Code)
	assert.Equal(t, book.ISBN, loaded.Book.ISBN)
	assert.True(t, loaded.IsActive(today))

	count, err := stores.Reservations().CountActiveForMember(ctx, member.Code, today)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, count, 1)

	// cleanup in FK order
	require.NoError(t, stores.Reservations().Delete(ctx, loaded))
	require.NoError(t, stores.Books().Delete(ctx, book.ISBN))
	require.NoError(t, stores.Members().Delete(ctx, member.Code))
}
