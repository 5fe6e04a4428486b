package event

import (
	"context"
	"sync"
	"time"

	"github.com/osse101/modstanding/internal/logger"
)

type retryEntry struct {
	event     Event
	attempt   int
	nextRetry time.Time
	lastErr   error
}

// ResilientPublisher wraps a Bus with asynchronous retries and a dead-letter file.
// Delivery is at-least-once: a retried event is redelivered to every subscriber.
type ResilientPublisher struct {
	bus        Bus
	retryQueue chan retryEntry
	maxRetries int
	retryDelay time.Duration
	deadLetter *DeadLetterWriter
	shutdown   chan struct{}
	closeOnce  sync.Once
	wg         sync.WaitGroup
}

// NewResilientPublisher creates a publisher and starts its retry worker
func NewResilientPublisher(bus Bus, maxRetries int, retryDelay time.Duration, deadLetterPath string) (*ResilientPublisher, error) {
	dl, err := NewDeadLetterWriter(deadLetterPath)
	if err != nil {
		return nil, err
	}

	rp := &ResilientPublisher{
		bus:        bus,
		retryQueue: make(chan retryEntry, RetryQueueBufferSize),
		maxRetries: maxRetries,
		retryDelay: retryDelay,
		deadLetter: dl,
		shutdown:   make(chan struct{}),
	}

	rp.wg.Add(1)
	go rp.retryWorker()

	return rp, nil
}

// PublishWithRetry publishes synchronously once and queues the event for retry on failure.
// It never returns an error; callers treat publishing as fire-and-forget.
func (rp *ResilientPublisher) PublishWithRetry(ctx context.Context, evt Event) {
	err := rp.bus.Publish(ctx, evt)
	if err == nil {
		return
	}

	log := logger.FromContext(ctx)
	log.Warn(LogMsgEventPublishFailed, "event_type", evt.Type, "error", err)

	rp.enqueue(retryEntry{
		event:     evt,
		attempt:   1,
		nextRetry: time.Now().Add(CalculateRetryDelay(rp.retryDelay, 1)),
		lastErr:   err,
	})
}

// Subscribe delegates to the wrapped bus
func (rp *ResilientPublisher) Subscribe(eventType Type, handler Handler) {
	rp.bus.Subscribe(eventType, handler)
}

func (rp *ResilientPublisher) enqueue(entry retryEntry) {
	select {
	case <-rp.shutdown:
		rp.writeDeadLetter(entry)
		return
	default:
	}

	select {
	case rp.retryQueue <- entry:
	default:
		logger.FromContext(context.Background()).Error(LogMsgRetryQueueFull, "event_type", entry.event.Type)
		rp.writeDeadLetter(entry)
	}
}

func (rp *ResilientPublisher) retryWorker() {
	defer rp.wg.Done()

	for {
		select {
		case <-rp.shutdown:
			rp.drain()
			return
		case entry := <-rp.retryQueue:
			if wait := time.Until(entry.nextRetry); wait > 0 {
				timer := time.NewTimer(wait)
				select {
				case <-timer.C:
				case <-rp.shutdown:
					timer.Stop()
					rp.finalAttempt(entry)
					rp.drain()
					return
				}
			}
			rp.attempt(entry)
		}
	}
}

func (rp *ResilientPublisher) attempt(entry retryEntry) {
	log := logger.FromContext(context.Background())

	err := rp.bus.Publish(context.Background(), entry.event)
	if err == nil {
		log.Info(LogMsgEventRetrySucceeded, "event_type", entry.event.Type, "attempt", entry.attempt)
		return
	}

	entry.lastErr = err
	if entry.attempt >= rp.maxRetries {
		log.Error(LogMsgEventRetryExhausted, "event_type", entry.event.Type, "attempts", entry.attempt, "error", err)
		rp.writeDeadLetter(entry)
		return
	}

	entry.attempt++
	entry.nextRetry = time.Now().Add(CalculateRetryDelay(rp.retryDelay, entry.attempt))
	log.Warn(LogMsgEventRetryFailed, "event_type", entry.event.Type, "attempt", entry.attempt-1, "error", err)
	rp.enqueue(entry)
}

// finalAttempt tries once more during shutdown and dead-letters on failure
func (rp *ResilientPublisher) finalAttempt(entry retryEntry) {
	if err := rp.bus.Publish(context.Background(), entry.event); err != nil {
		entry.lastErr = err
		rp.writeDeadLetter(entry)
	}
}

func (rp *ResilientPublisher) drain() {
	drained := 0
	for {
		select {
		case entry := <-rp.retryQueue:
			rp.finalAttempt(entry)
			drained++
		default:
			if drained > 0 {
				logger.FromContext(context.Background()).Info(LogMsgQueueDrainedShutdown, "count", drained)
			}
			return
		}
	}
}

func (rp *ResilientPublisher) writeDeadLetter(entry retryEntry) {
	if rp.deadLetter == nil {
		return
	}
	if err := rp.deadLetter.Write(entry.event, entry.attempt, entry.lastErr); err != nil {
		logger.FromContext(context.Background()).Error(LogMsgDeadLetterWriteFailed, "event_type", entry.event.Type, "error", err)
	}
}

// Shutdown stops the retry worker, draining pending retries, and closes the dead-letter file
func (rp *ResilientPublisher) Shutdown(ctx context.Context) error {
	rp.closeOnce.Do(func() { close(rp.shutdown) })

	done := make(chan struct{})
	go func() {
		rp.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		logger.FromContext(ctx).Warn(LogMsgShutdownTimeout)
		return ctx.Err()
	}

	if rp.deadLetter != nil {
		return rp.deadLetter.Close()
	}
	return nil
}
