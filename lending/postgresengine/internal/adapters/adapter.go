package adapters

import (
	"context"
	"errors"
)

// ErrNestedTransaction is returned when BeginTx is called on an open transaction.
var ErrNestedTransaction = errors.New("nested transactions are not supported")

// DBAdapter defines the interface for database operations needed by the lending stores.
type DBAdapter interface {
	Query(ctx context.Context, query string) (DBRows, error)
	Exec(ctx context.Context, query string) (DBResult, error)
	BeginTx(ctx context.Context) (DBTx, error)
}

// DBTx is a transactional view of the database. It executes statements like a
// DBAdapter and is finished with exactly one Commit or Rollback.
// BeginTx on a DBTx is not supported; nested transactions are not needed here.
type DBTx interface {
	DBAdapter
	Commit() error
	Rollback() error
}

// DBRows defines the interface for query result rows.
type DBRows interface {
	Next() bool
	Scan(dest ...any) error
	Close() error
}

// DBResult defines the interface for execution results.
type DBResult interface {
	RowsAffected() (int64, error)
}
