package event

import (
	"context"
	"sync"
	"time"

	"github.com/mintforge/packvault/internal/logger"
	"github.com/mintforge/packvault/internal/worker"
)

// ResilientConfig configures the ResilientPublisher
type ResilientConfig struct {
	MaxRetries int
	RetryDelay time.Duration
	DeadLetter *DeadLetterWriter // nil disables dead-lettering

	// RetryPool bounds concurrent retry loops. nil falls back to one
	// goroutine per failed event.
	RetryPool *worker.Pool

	// OnDeadLetter is called after an event is dead-lettered.
	OnDeadLetter func(Event)
}

// ResilientPublisher wraps an Event Bus to add retry logic and dead-letter
// queuing. Publishing never blocks the caller's response and never fails the
// operation that produced the event.
type ResilientPublisher struct {
	inner  Bus
	config ResilientConfig
	wg     sync.WaitGroup
}

// NewResilientPublisher creates a new ResilientPublisher
func NewResilientPublisher(inner Bus, config ResilientConfig) *ResilientPublisher {
	if config.MaxRetries <= 0 {
		config.MaxRetries = RetryMaxAttempts
	}
	if config.RetryDelay <= 0 {
		config.RetryDelay = RetryInitialDelay
	}
	return &ResilientPublisher{inner: inner, config: config}
}

// Publish attempts to publish an event. If it fails, it initiates a
// background retry loop. It returns nil to the caller as soon as the event
// is accepted for processing, decoupling the caller from the retry
// mechanism.
func (p *ResilientPublisher) Publish(ctx context.Context, event Event) error {
	err := p.inner.Publish(ctx, event)
	if err == nil {
		return nil
	}

	logger.Warn(LogMsgEventPublishFailed,
		"event_type", event.Type,
		"event_key", event.Key,
		"error", err,
		"retries", p.config.MaxRetries)

	p.wg.Add(1)
	if p.config.RetryPool != nil && p.config.RetryPool.TryEnqueue(&retryJob{publisher: p, event: event}) {
		return nil
	}
	go p.retryLoop(event)

	return nil
}

// retryJob runs one event's retry loop on the shared worker pool.
type retryJob struct {
	publisher *ResilientPublisher
	event     Event
}

func (j *retryJob) Process(context.Context) error {
	j.publisher.retryLoop(j.event)
	return nil
}

// PublishWithRetry is Publish under its historical name; services call it
// after commit.
func (p *ResilientPublisher) PublishWithRetry(ctx context.Context, event Event) {
	_ = p.Publish(ctx, event)
}

func (p *ResilientPublisher) retryLoop(event Event) {
	defer p.wg.Done()

	// Detached context: the original request context is likely cancelled by
	// the time retries run.
	ctx := context.Background()

	var lastErr error
	for attempt := 1; attempt <= p.config.MaxRetries; attempt++ {
		time.Sleep(CalculateRetryDelay(p.config.RetryDelay, attempt))

		lastErr = p.inner.Publish(ctx, event)
		if lastErr == nil {
			logger.Info(LogMsgEventRetrySucceeded,
				"event_type", event.Type,
				"attempt", attempt)
			return
		}

		logger.Warn(LogMsgEventRetryFailed,
			"event_type", event.Type,
			"attempt", attempt,
			"error", lastErr)
	}

	logger.Warn(LogMsgEventRetryExhausted, "event_type", event.Type, "event_key", event.Key)

	if p.config.DeadLetter != nil {
		if err := p.config.DeadLetter.Write(event, p.config.MaxRetries, lastErr); err != nil {
			logger.Error(LogMsgDeadLetterWriteFailed, "error", err)
		} else if p.config.OnDeadLetter != nil {
			p.config.OnDeadLetter(event)
		}
	}
}

// Subscribe delegates to the inner bus
func (p *ResilientPublisher) Subscribe(eventType Type, handler Handler) {
	p.inner.Subscribe(eventType, handler)
}

// Drain waits for in-flight retry loops to finish. Called during shutdown.
func (p *ResilientPublisher) Drain() {
	p.wg.Wait()
}
