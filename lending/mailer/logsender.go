package mailer

import (
	"context"
	"errors"

	"github.com/openlending/lending-reservations-go/lending"
)

const (
	logMsgMailSent = "mail sent"

	logAttrRecipient = "recipient"
	logAttrSubject   = "subject"
	logAttrBody      = "body"
)

// ErrNilLogger occurs when a LogSender is created without a logger.
var ErrNilLogger = errors.New("nil logger supplied")

// LogSender implements lending.NotificationSender by writing each mail to
// the logger instead of delivering it.
type LogSender struct {
	logger lending.Logger
}

// NewLogSender creates a LogSender writing to the supplied logger.
func NewLogSender(logger lending.Logger) (*LogSender, error) {
	if logger == nil {
		return nil, ErrNilLogger
	}

	return &LogSender{logger: logger}, nil
}

// Send logs the mail at info level and always succeeds.
func (s *LogSender) Send(_ context.Context, recipient, subject, body string) error {
	s.logger.Info(logMsgMailSent,
		logAttrRecipient, recipient,
		logAttrSubject, subject,
		logAttrBody, body,
	)

	return nil
}
