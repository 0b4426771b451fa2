package postgresengine

import (
	"context"
	"database/sql"
	"errors"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // driver import
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"

	"github.com/openlending/lending-reservations-go/lending"
	"github.com/openlending/lending-reservations-go/lending/postgresengine/internal/adapters"
)

const (
	defaultMemberTableName      = "members"
	defaultBookTableName        = "books"
	defaultReservationTableName = "reservations"

	dialectPostgres = "postgres"

	colCode       = "code"
	colFirstName  = "first_name"
	colLastName   = "last_name"
	colBirthDate  = "birth_date"
	colCivility   = "civility"
	colEmail      = "email"
	colISBN       = "isbn"
	colTitle      = "title"
	colAuthor     = "author"
	colPublisher  = "publisher"
	colFormat     = "format"
	colAvailable  = "available"
	colID         = "id"
	colMemberCode = "member_code"
	colStartDate  = "start_date"
	colEndDate    = "end_date"

	castUUID = "?::uuid"
	castDate = "?::date"

	logMsgBuildQueryFailed = "failed to build query"
	logMsgDBQueryFailed    = "database query execution failed"
	logMsgDBExecFailed     = "database execution failed"
	logMsgCloseRowsFailed  = "failed to close database rows"
	logMsgScanRowFailed    = "failed to scan database row"
	logMsgSQLExecuted      = "executed sql for: "
	logAttrError           = "error"
	logAttrQuery           = "query"
)

// Construction errors.
var (
	ErrNilDatabaseConnection = errors.New("nil database connection supplied")
	ErrEmptyTableName        = errors.New("empty table name supplied")
)

// Stores implements lending.Stores and lending.UnitOfWork on PostgreSQL.
// It leverages a database adapter and supports customizable logging and
// table name configuration.
type Stores struct {
	db          adapters.DBAdapter
	memberTable string
	bookTable   string
	resvTable   string
	logger      lending.Logger
}

// NewStoresFromPGXPool creates Stores using a pgx pool with optional configuration.
func NewStoresFromPGXPool(pool *pgxpool.Pool, options ...Option) (*Stores, error) {
	if pool == nil {
		return nil, ErrNilDatabaseConnection
	}

	return newStores(adapters.NewPGXAdapter(pool), options...)
}

// NewStoresFromSQLDB creates Stores using a sql.DB with optional configuration.
func NewStoresFromSQLDB(db *sql.DB, options ...Option) (*Stores, error) {
	if db == nil {
		return nil, ErrNilDatabaseConnection
	}

	return newStores(adapters.NewSQLAdapter(db), options...)
}

// NewStoresFromSQLX creates Stores using a sqlx.DB with optional configuration.
func NewStoresFromSQLX(db *sqlx.DB, options ...Option) (*Stores, error) {
	if db == nil {
		return nil, ErrNilDatabaseConnection
	}

	return newStores(adapters.NewSQLXAdapter(db), options...)
}

func newStores(db adapters.DBAdapter, options ...Option) (*Stores, error) {
	s := &Stores{
		db:          db,
		memberTable: defaultMemberTableName,
		bookTable:   defaultBookTableName,
		resvTable:   defaultReservationTableName,
	}

	for _, option := range options {
		if err := option(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Members returns the member store view.
func (s *Stores) Members() lending.MemberStore {
	return memberStore{s}
}

// Books returns the book store view.
func (s *Stores) Books() lending.BookStore {
	return bookStore{s}
}

// Reservations returns the reservation store view.
func (s *Stores) Reservations() lending.ReservationStore {
	return reservationStore{s}
}

// Execute implements lending.UnitOfWork. It runs fn against a transactional
// view of the stores; the transaction is rolled back when fn returns an error
// and committed otherwise.
func (s *Stores) Execute(ctx context.Context, fn func(tx lending.Stores) error) error {
	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}

	txStores := &Stores{
		db:          tx,
		memberTable: s.memberTable,
		bookTable:   s.bookTable,
		resvTable:   s.resvTable,
		logger:      s.logger,
	}

	if fnErr := fn(txStores); fnErr != nil {
		if rollbackErr := tx.Rollback(); rollbackErr != nil {
			s.logError("failed to rollback transaction", logAttrError, rollbackErr.Error())
		}

		return fnErr
	}

	return tx.Commit()
}

func (s *Stores) dialect() goqu.DialectWrapper {
	return goqu.Dialect(dialectPostgres)
}

func (s *Stores) closeRows(rows adapters.DBRows) {
	if err := rows.Close(); err != nil {
		s.logError(logMsgCloseRowsFailed, logAttrError, err.Error())
	}
}

func (s *Stores) logDebug(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}

func (s *Stores) logError(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Error(msg, args...)
	}
}
