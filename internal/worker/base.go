package worker

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/modstanding/internal/logger"
)

// timerKey maps a record id to a timer key. Ids that are not UUIDs get a
// stable name-based UUID so any string id can be scheduled.
func timerKey(id string) uuid.UUID {
	if parsed, err := uuid.Parse(id); err == nil {
		return parsed
	}
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(id))
}

// BaseWorker provides common functionality for background workers that manage timers
type BaseWorker struct {
	mu       sync.Mutex
	timers   map[uuid.UUID]*time.Timer
	shutdown chan struct{}
	closed   bool
	wg       sync.WaitGroup
}

func (w *BaseWorker) init() {
	if w.timers == nil {
		w.timers = make(map[uuid.UUID]*time.Timer)
	}
	if w.shutdown == nil {
		w.shutdown = make(chan struct{})
	}
}

// schedule replaces any pending timer for id with one that runs fn after d.
// It reports false once the worker is shutting down.
func (w *BaseWorker) schedule(id uuid.UUID, d time.Duration, fn func()) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return false
	}
	if existing, ok := w.timers[id]; ok {
		existing.Stop()
	}
	var timer *time.Timer
	timer = time.AfterFunc(d, func() {
		w.mu.Lock()
		// a replaced timer must not run or unregister its successor
		if w.closed || w.timers[id] != timer {
			w.mu.Unlock()
			return
		}
		delete(w.timers, id)
		w.wg.Add(1)
		w.mu.Unlock()

		defer w.wg.Done()
		fn()
	})
	w.timers[id] = timer
	return true
}

func (w *BaseWorker) stopTimer(id uuid.UUID) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	timer, ok := w.timers[id]
	if ok {
		timer.Stop()
		delete(w.timers, id)
	}
	return ok
}

func (w *BaseWorker) pending() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.timers)
}

func (w *BaseWorker) shutdownInternal(ctx context.Context, workerName string) error {
	log := logger.FromContext(ctx)
	log.Info("Shutting down " + workerName)

	w.mu.Lock()
	if !w.closed {
		w.closed = true
		close(w.shutdown)
	}
	for id, timer := range w.timers {
		timer.Stop()
		log.Debug("Cancelled pending "+workerName+" timer", "timer_id", id)
	}
	w.timers = make(map[uuid.UUID]*time.Timer)
	w.mu.Unlock()

	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		log.Info(workerName + " shutdown complete")
		return nil
	case <-ctx.Done():
		log.Warn(workerName + " shutdown timeout")
		return ctx.Err()
	}
}
