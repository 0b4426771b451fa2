// Package lending implements the reservation lifecycle engine for a lending
// library: creating, canceling, listing and expiring reservations of books
// held by registered members, plus the overdue-reminder batch.
//
// The package follows a core/shell split: the business rules are pure
// functions (decide.go, reminder.go) and the Engine orchestrates them against
// narrow store contracts (interfaces.go). Persistence, transport and mail
// delivery are collaborators injected into the Engine; see the postgresengine,
// httpapi and mailer packages for implementations.
//
// A reservation has no stored status field. Whether it is active or overdue
// is derived by comparing its end date to the current date, which is supplied
// by an injected Clock so tests can run against fixed dates.
package lending
