package mailer_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openlending/lending-reservations-go/lending/mailer"
	"github.com/openlending/lending-reservations-go/testutil"
)

func Test_NewLogSender_ReturnsError_WhenLoggerIsNil(t *testing.T) {
	// act
	sender, err := mailer.NewLogSender(nil)

	// assert
	assert.ErrorIs(t, err, mailer.ErrNilLogger)
	assert.Nil(t, sender)
}

func Test_LogSender_Send_LogsTheMail(t *testing.T) {
	// arrange
	logger := &recordingLogger{}
	sender, err := mailer.NewLogSender(logger)
	require.NoError(t, err)

	// act
	sendErr := sender.Send(context.Background(), "ada@example.com", "Hello", "A body")

	// assert
	assert.NoError(t, sendErr)
	require.Len(t, logger.entries(), 1)
	assert.Equal(t, "mail sent", logger.entries()[0].msg)
	assert.Contains(t, logger.entries()[0].args, "ada@example.com")
}

func Test_NewAsyncSender_ReturnsError_WhenInnerSenderIsNil(t *testing.T) {
	// act
	sender, err := mailer.NewAsyncSender(nil)

	// assert
	assert.ErrorIs(t, err, mailer.ErrNilInnerSender)
	assert.Nil(t, sender)
}

func Test_NewAsyncSender_ReturnsError_WhenWorkerCountIsInvalid(t *testing.T) {
	// act
	sender, err := mailer.NewAsyncSender(&testutil.RecordingSender{}, mailer.WithWorkerCount(0))

	// assert
	assert.ErrorIs(t, err, mailer.ErrInvalidWorkers)
	assert.Nil(t, sender)
}

func Test_AsyncSender_Send_DeliversThroughTheInnerSender(t *testing.T) {
	// arrange
	inner := &testutil.RecordingSender{}
	sender, err := mailer.NewAsyncSender(inner, mailer.WithWorkerCount(1))
	require.NoError(t, err)

	// act
	require.NoError(t, sender.Send(context.Background(), "ada@example.com", "Hello", "A body"))
	require.NoError(t, sender.Shutdown(context.Background()))

	// assert
	sent := inner.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, "ada@example.com", sent[0].Recipient)
	assert.Equal(t, "Hello", sent[0].Subject)
}

func Test_AsyncSender_Send_ReturnsError_AfterShutdown(t *testing.T) {
	// arrange
	sender, err := mailer.NewAsyncSender(&testutil.RecordingSender{})
	require.NoError(t, err)
	require.NoError(t, sender.Shutdown(context.Background()))

	// act
	sendErr := sender.Send(context.Background(), "ada@example.com", "Hello", "A body")

	// assert
	assert.ErrorIs(t, sendErr, mailer.ErrSenderClosed)
}

func Test_AsyncSender_Shutdown_DrainsQueuedMail(t *testing.T) {
	// arrange
	inner := &testutil.RecordingSender{}
	sender, err := mailer.NewAsyncSender(inner, mailer.WithWorkerCount(1), mailer.WithQueueSize(8))
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		require.NoError(t, sender.Send(context.Background(), "ada@example.com", "Hello", "A body"))
	}

	// act
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, sender.Shutdown(ctx))

	// assert
	assert.Len(t, inner.Sent(), 5)
}

func Test_AsyncSender_LogsDeliveryFailures_AndKeepsWorking(t *testing.T) {
	// arrange
	logger := &recordingLogger{}
	inner := &testutil.FailingSender{Err: errors.New("relay down")}
	sender, err := mailer.NewAsyncSender(inner,
		mailer.WithWorkerCount(1), mailer.WithAsyncLogger(logger))
	require.NoError(t, err)

	// act
	require.NoError(t, sender.Send(context.Background(), "ada@example.com", "Hello", "A body"))
	require.NoError(t, sender.Shutdown(context.Background()))

	// assert
	require.Len(t, logger.entries(), 1)
	assert.Equal(t, "async mail delivery failed", logger.entries()[0].msg)
}

/*** Test helpers ***/

type logEntry struct {
	msg  string
	args []any
}

type recordingLogger struct {
	mu  sync.Mutex
	log []logEntry
}

func (l *recordingLogger) record(msg string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.log = append(l.log, logEntry{msg: msg, args: args})
}

func (l *recordingLogger) entries() []logEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	return append([]logEntry(nil), l.log...)
}

func (l *recordingLogger) Debug(msg string, args ...any) { l.record(msg, args...) }
func (l *recordingLogger) Info(msg string, args ...any)  { l.record(msg, args...) }
func (l *recordingLogger) Warn(msg string, args ...any)  { l.record(msg, args...) }
func (l *recordingLogger) Error(msg string, args ...any) { l.record(msg, args...) }
