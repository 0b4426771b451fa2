// Package mailer provides notification sender implementations for the
// lending engine.
//
// LogSender writes outgoing mail to the configured logger, which is the
// right choice for development and demo setups without an SMTP relay.
// AsyncSender wraps any sender with a worker pool so that slow deliveries
// do not block the reminder batch.
package mailer
