package postgresengine

import (
	"github.com/openlending/lending-reservations-go/lending"
)

// Option defines a functional option for configuring Stores.
type Option func(*Stores) error

// WithTableNames sets the table names for the three stores.
func WithTableNames(members, books, reservations string) Option {
	return func(s *Stores) error {
		if members == "" || books == "" || reservations == "" {
			return ErrEmptyTableName
		}

		s.memberTable = members
		s.bookTable = books
		s.resvTable = reservations

		return nil
	}
}

// WithLogger sets the logger for the Stores.
//
// Debug level: SQL statements (development use)
// Error level: failures that cause operation failures.
func WithLogger(logger lending.Logger) Option {
	return func(s *Stores) error {
		s.logger = logger
		return nil
	}
}
