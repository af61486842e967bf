package engine

import (
	"github.com/streamkas/streamkas/pkg/models"
)

// tick issues one scheduled payment. It runs as a deferred callback on the
// clock; the next tick is only scheduled after this one fully resolves, so
// a generation never has two transfers in flight. gen identifies the tick
// chain: only the chain whose generation is current may schedule work.
func (e *Engine) tick(id string, gen uint64) {
	e.mu.Lock()
	s, ok := e.streams[id]
	if !ok || s.Status != models.StreamActive || e.gen[id] != gen {
		// A lifecycle transition won the race; that transition already
		// owns the timer bookkeeping.
		e.mu.Unlock()
		return
	}

	amount := s.FlowRate
	if s.NumPayments-s.PaymentsMade() <= 1 {
		// Final payment absorbs the integer-division remainder so the sum
		// of parts equals the declared total exactly.
		amount = s.TotalAmount - s.AmountSent
	}
	recipient := s.Recipient
	e.mu.Unlock()

	txID, err := e.wallet.Send(e.ctx, recipient, amount, 0)

	e.mu.Lock()
	defer e.mu.Unlock()

	s, ok = e.streams[id]
	if !ok || s.Status != models.StreamActive {
		// The stream was paused or cancelled while the transfer was in
		// flight. Per the at-least-once model, the send itself is not
		// undone; startup reconciliation picks up anything the ledger
		// accepted that we no longer track.
		if ok && err == nil {
			e.logger.Warn("transfer resolved after stream left active state",
				"stream_id", id, "tx_id", txID, "status", s.Status)
		}
		return
	}

	// Still active, but a pause/resume may have happened while the send
	// was in flight. The resumed run owns the timer chain then: this tick
	// records its transfer but must not schedule a successor.
	stale := e.gen[id] != gen

	if err != nil {
		if stale {
			// The payment was never recorded, so the current chain simply
			// retries it on its own cadence.
			e.logger.Warn("transfer failed after stream was resumed", "stream_id", id, "error", err)
			return
		}
		e.stopTickLocked(id)
		now := e.clock.Now()
		if s.StartedAt != nil {
			s.ElapsedBeforePause += now.Sub(*s.StartedAt)
		}
		s.StartedAt = nil
		s.Status = models.StreamError
		s.ErrorMessage = err.Error()
		e.metrics.TransferFailed()
		e.updateActiveGaugeLocked()
		e.logger.Error("transfer failed", "stream_id", id, "error", err)
		e.notifyLocked(s, "status", "error_message", "started_at", "elapsed_before_pause")
		if err := e.persistLocked(e.ctx); err != nil {
			e.logger.Error("failed to persist after transfer failure", "stream_id", id, "error", err)
		}
		return
	}

	now := e.clock.Now()
	s.History = append(s.History, models.StreamTransaction{
		TxID:          txID,
		Amount:        amount,
		Timestamp:     now,
		OnChainStatus: models.TxUnverified,
	})
	s.AmountSent += amount
	e.metrics.TransferSent(amount)

	changed := []string{"amount_sent", "tx_history"}
	if s.AmountSent >= s.TotalAmount || s.PaymentsMade() >= s.NumPayments {
		e.stopTickLocked(id)
		if s.StartedAt != nil {
			s.ElapsedBeforePause += now.Sub(*s.StartedAt)
		}
		s.StartedAt = nil
		s.Status = models.StreamCompleted
		changed = append(changed, "status", "started_at", "elapsed_before_pause")
		e.metrics.StreamCompleted()
		e.updateActiveGaugeLocked()
		e.logger.Info("stream completed", "stream_id", id, "amount_sent", s.AmountSent, "payments", s.PaymentsMade())
	} else if !stale {
		e.timers[id] = e.clock.AfterFunc(s.Interval, func() { e.tick(id, gen) })
	}

	e.schedulePollLocked(id, txID, 0, e.verifyDelay)

	e.notifyLocked(s, changed...)
	if err := e.persistLocked(e.ctx); err != nil {
		e.logger.Error("failed to persist after transfer", "stream_id", id, "error", err)
	}
}
