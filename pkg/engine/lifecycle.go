package engine

import (
	"context"
	"fmt"

	"github.com/streamkas/streamkas/pkg/models"
)

// Start begins (or resumes) ticking. Legal from pending, paused and error.
// The first tick fires one full interval after now; the cadence is strictly
// periodic from this moment.
func (e *Engine) Start(ctx context.Context, id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	s, ok := e.streams[id]
	if !ok {
		return ErrStreamNotFound
	}

	switch s.Status {
	case models.StreamPending, models.StreamPaused, models.StreamError:
		// legal
	default:
		return fmt.Errorf("%w: cannot start a %s stream", ErrIllegalTransition, s.Status)
	}

	now := e.clock.Now()
	s.StartedAt = &now
	s.Status = models.StreamActive
	s.ErrorMessage = ""

	// The new tick chain carries this generation; a tick still in flight
	// from before the transition resolves under a stale one.
	e.gen[id]++
	gen := e.gen[id]
	e.timers[id] = e.clock.AfterFunc(s.Interval, func() { e.tick(id, gen) })

	e.logger.Info("stream started", "stream_id", id, "interval", s.Interval.String())
	e.updateActiveGaugeLocked()
	e.notifyLocked(s, "status", "started_at", "error_message")
	return e.persistLocked(ctx)
}

// Pause stops ticking and folds the current run segment into the elapsed
// accounting. Legal only from active. The pending tick timer is invalidated
// synchronously, so a tick that is already in flight becomes a no-op when
// it observes the new status.
func (e *Engine) Pause(ctx context.Context, id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	s, ok := e.streams[id]
	if !ok {
		return ErrStreamNotFound
	}
	if s.Status != models.StreamActive {
		return fmt.Errorf("%w: cannot pause a %s stream", ErrIllegalTransition, s.Status)
	}

	e.gen[id]++
	e.stopTickLocked(id)

	now := e.clock.Now()
	if s.StartedAt != nil {
		s.ElapsedBeforePause += now.Sub(*s.StartedAt)
	}
	s.StartedAt = nil
	s.Status = models.StreamPaused

	e.logger.Info("stream paused", "stream_id", id, "elapsed", s.ElapsedBeforePause.String())
	e.updateActiveGaugeLocked()
	e.notifyLocked(s, "status", "started_at", "elapsed_before_pause")
	return e.persistLocked(ctx)
}

// Cancel terminates the stream. Legal from any non-terminal status. Already
// sent amounts are not rolled back; pending ticks and verification polls
// are invalidated synchronously.
func (e *Engine) Cancel(ctx context.Context, id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	s, ok := e.streams[id]
	if !ok {
		return ErrStreamNotFound
	}
	if s.Status.Terminal() {
		return fmt.Errorf("%w: stream is already %s", ErrIllegalTransition, s.Status)
	}

	e.gen[id]++
	e.stopTickLocked(id)
	e.stopPollsLocked(s)

	now := e.clock.Now()
	if s.Status == models.StreamActive && s.StartedAt != nil {
		s.ElapsedBeforePause += now.Sub(*s.StartedAt)
	}
	s.StartedAt = nil
	s.Status = models.StreamCancelled

	e.logger.Info("stream cancelled", "stream_id", id, "amount_sent", s.AmountSent)
	e.updateActiveGaugeLocked()
	e.notifyLocked(s, "status", "started_at", "elapsed_before_pause")
	return e.persistLocked(ctx)
}

// Remove deletes a stream from the collection and the store. Only terminal
// streams may be removed.
func (e *Engine) Remove(ctx context.Context, id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	s, ok := e.streams[id]
	if !ok {
		return ErrStreamNotFound
	}
	if !s.Status.Terminal() {
		return ErrStreamNotRemovable
	}

	e.stopPollsLocked(s)
	delete(e.streams, id)
	delete(e.gen, id)
	for i, existing := range e.order {
		if existing == id {
			e.order = append(e.order[:i], e.order[i+1:]...)
			break
		}
	}

	e.logger.Info("stream removed", "stream_id", id)
	return e.persistLocked(ctx)
}

func (e *Engine) stopTickLocked(id string) {
	if timer, ok := e.timers[id]; ok {
		timer.Stop()
		delete(e.timers, id)
	}
}

func (e *Engine) stopPollsLocked(s *models.Stream) {
	for _, tx := range s.History {
		if timer, ok := e.polls[tx.TxID]; ok {
			timer.Stop()
			delete(e.polls, tx.TxID)
		}
	}
}
