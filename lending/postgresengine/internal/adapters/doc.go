// Package adapters provides database adapter implementations for the
// PostgreSQL lending stores.
//
// This package implements the adapter pattern to support multiple PostgreSQL
// database libraries: pgx.Pool, sql.DB, and sqlx.DB. All adapters provide
// equivalent functionality through a common DBAdapter interface, including
// transactions for the cancellation unit of work, allowing the stores to work
// with any supported connection type.
package adapters
