package worker

import (
	"context"
	"fmt"

	"github.com/osse101/modstanding/internal/domain"
	"github.com/osse101/modstanding/internal/event"
	"github.com/osse101/modstanding/internal/logger"
)

// Recomputer re-derives a player's standing and publishes tier changes
type Recomputer interface {
	Recompute(ctx context.Context, playerID string) (domain.StatusAggregate, error)
}

// StandingRecomputeJob recomputes one player's standing from their full history
type StandingRecomputeJob struct {
	Standing Recomputer
	PlayerID string
}

// Process implements Job
func (j StandingRecomputeJob) Process(ctx context.Context) error {
	if _, err := j.Standing.Recompute(ctx, j.PlayerID); err != nil {
		return fmt.Errorf(ErrMsgRecompute, j.PlayerID, err)
	}
	return nil
}

// RecomputeDispatcher turns mutation events into recompute jobs on a pool.
// Recomputation always starts from the stored history, so duplicate or
// reordered events only cost an extra recompute.
type RecomputeDispatcher struct {
	pool     *Pool
	standing Recomputer
}

// NewRecomputeDispatcher creates a dispatcher feeding pool
func NewRecomputeDispatcher(pool *Pool, standing Recomputer) *RecomputeDispatcher {
	return &RecomputeDispatcher{pool: pool, standing: standing}
}

// Subscribe registers the dispatcher for every mutation event type
func (d *RecomputeDispatcher) Subscribe(bus event.Bus) {
	for _, t := range event.MutationTypes() {
		bus.Subscribe(t, d.HandleEvent)
	}
}

// HandleEvent enqueues a recompute for the event's player. It never fails the publish.
func (d *RecomputeDispatcher) HandleEvent(ctx context.Context, evt event.Event) error {
	playerID := evt.PlayerID()
	if playerID == "" {
		logger.FromContext(ctx).Warn(LogMsgRecomputeNoPlayer, "event_type", evt.Type)
		return nil
	}
	if d.pool.Enqueue(StandingRecomputeJob{Standing: d.standing, PlayerID: playerID}) {
		logger.FromContext(ctx).Debug(LogMsgRecomputeQueued, logger.AttrKeyPlayerID, playerID, "event_type", evt.Type)
	}
	return nil
}
