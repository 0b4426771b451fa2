package testutil

import (
	"context"
	"sync"
)

// SentMail captures one notification handed to a RecordingSender.
type SentMail struct {
	Recipient string
	Subject   string
	Body      string
}

// RecordingSender is a lending.NotificationSender that records every message.
type RecordingSender struct {
	mu   sync.Mutex
	sent []SentMail
}

// Send records the message and reports success.
func (s *RecordingSender) Send(_ context.Context, recipient, subject, body string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sent = append(s.sent, SentMail{Recipient: recipient, Subject: subject, Body: body})

	return nil
}

// Sent returns a copy of the recorded messages.
func (s *RecordingSender) Sent() []SentMail {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]SentMail, len(s.sent))
	copy(out, s.sent)

	return out
}

// FailingSender is a lending.NotificationSender that always fails with Err.
type FailingSender struct {
	Err error
}

// Send always returns the configured error.
func (s FailingSender) Send(_ context.Context, _, _, _ string) error {
	return s.Err
}
