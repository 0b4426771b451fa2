// Package postgresengine implements the lending store contracts on
// PostgreSQL.
//
// SQL statements are built with goqu and executed through a database adapter,
// so the stores work with a pgxpool.Pool, a sql.DB, or a sqlx.DB connection.
// The Stores type implements both lending.Stores and lending.UnitOfWork; the
// unit of work runs against a single database transaction, which is what
// makes reservation cancellation's two writes atomic.
package postgresengine
