package mailer

import (
	"context"
	"errors"
	"sync"

	"github.com/openlending/lending-reservations-go/lending"
)

const (
	defaultWorkerCount = 2
	defaultQueueSize   = 64

	logMsgAsyncDeliveryFailed = "async mail delivery failed"
)

// Construction and lifecycle errors.
var (
	ErrNilInnerSender   = errors.New("nil inner sender supplied")
	ErrInvalidWorkers   = errors.New("worker count must be at least 1")
	ErrInvalidQueueSize = errors.New("queue size must be at least 1")
	ErrSenderClosed     = errors.New("sender is closed")
)

type mail struct {
	recipient string
	subject   string
	body      string
}

// AsyncSender decouples mail delivery from the caller with a bounded queue
// and a fixed pool of delivery workers. Delivery failures are logged, never
// surfaced to the enqueuing caller.
type AsyncSender struct {
	inner   lending.NotificationSender
	logger  lending.Logger
	queue   chan mail
	closed  chan struct{}
	once    sync.Once
	workers sync.WaitGroup
}

// AsyncOption defines a functional option for configuring AsyncSender.
type AsyncOption func(*asyncConfig) error

type asyncConfig struct {
	workerCount int
	queueSize   int
	logger      lending.Logger
}

// WithWorkerCount sets the number of delivery workers.
func WithWorkerCount(count int) AsyncOption {
	return func(c *asyncConfig) error {
		if count < 1 {
			return ErrInvalidWorkers
		}

		c.workerCount = count

		return nil
	}
}

// WithQueueSize sets the capacity of the delivery queue.
func WithQueueSize(size int) AsyncOption {
	return func(c *asyncConfig) error {
		if size < 1 {
			return ErrInvalidQueueSize
		}

		c.queueSize = size

		return nil
	}
}

// WithAsyncLogger sets the logger used to report delivery failures.
func WithAsyncLogger(logger lending.Logger) AsyncOption {
	return func(c *asyncConfig) error {
		c.logger = logger
		return nil
	}
}

// NewAsyncSender creates an AsyncSender delivering through inner and starts
// its worker pool.
func NewAsyncSender(inner lending.NotificationSender, options ...AsyncOption) (*AsyncSender, error) {
	if inner == nil {
		return nil, ErrNilInnerSender
	}

	config := asyncConfig{
		workerCount: defaultWorkerCount,
		queueSize:   defaultQueueSize,
	}

	for _, option := range options {
		if err := option(&config); err != nil {
			return nil, err
		}
	}

	s := &AsyncSender{
		inner:  inner,
		logger: config.logger,
		queue:  make(chan mail, config.queueSize),
		closed: make(chan struct{}),
	}

	s.workers.Add(config.workerCount)
	for i := 0; i < config.workerCount; i++ {
		go s.work()
	}

	return s, nil
}

// Send enqueues the mail for delivery. It blocks while the queue is full and
// returns ErrSenderClosed after Shutdown.
func (s *AsyncSender) Send(ctx context.Context, recipient, subject, body string) error {
	select {
	case <-s.closed:
		return ErrSenderClosed
	default:
	}

	select {
	case s.queue <- mail{recipient: recipient, subject: subject, body: body}:
		return nil
	case <-s.closed:
		return ErrSenderClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Shutdown stops accepting mail, drains the queue, and waits for the workers
// to finish or for ctx to expire.
func (s *AsyncSender) Shutdown(ctx context.Context) error {
	s.once.Do(func() {
		close(s.closed)
		close(s.queue)
	})

	done := make(chan struct{})

	go func() {
		s.workers.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *AsyncSender) work() {
	defer s.workers.Done()

	for m := range s.queue {
		// The enqueuing request is long gone, delivery runs on its own context.
		if err := s.inner.Send(context.Background(), m.recipient, m.subject, m.body); err != nil {
			if s.logger != nil {
				s.logger.Error(logMsgAsyncDeliveryFailed,
					logAttrRecipient, m.recipient,
					"error", err.Error(),
				)
			}
		}
	}
}
