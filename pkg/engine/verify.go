package engine

import (
	"context"
	"time"

	"github.com/streamkas/streamkas/pkg/models"
	"github.com/streamkas/streamkas/pkg/verifier"
)

// schedulePollLocked registers the next verification poll for a transaction.
// Callers hold mu. At most one poll per transaction is outstanding: the
// entry in e.polls is the single handle for it.
func (e *Engine) schedulePollLocked(streamID, txID string, attempt int, delay time.Duration) {
	e.polls[txID] = e.clock.AfterFunc(delay, func() {
		e.pollTransaction(streamID, txID, attempt)
	})
}

// pollTransaction asks the ledger about one transfer and updates its
// on-chain status. Retries with a doubling delay up to verifyAttempts; a
// transfer the ledger never reports is left as not_found permanently.
// Verification is informational only and never touches amountSent.
func (e *Engine) pollTransaction(streamID, txID string, attempt int) {
	e.mu.Lock()
	s, tx := e.findTransactionLocked(streamID, txID)
	if s == nil || tx == nil || s.Status == models.StreamCancelled {
		delete(e.polls, txID)
		e.mu.Unlock()
		return
	}
	if tx.OnChainStatus == models.TxUnverified {
		tx.OnChainStatus = models.TxVerifying
		e.notifyLocked(s, "tx_history")
	}
	e.mu.Unlock()

	result, err := e.verifier.Status(e.ctx, txID)

	e.mu.Lock()
	defer e.mu.Unlock()

	s, tx = e.findTransactionLocked(streamID, txID)
	if s == nil || tx == nil || s.Status == models.StreamCancelled {
		delete(e.polls, txID)
		return
	}

	if err == nil && result == verifier.Accepted {
		delete(e.polls, txID)
		tx.OnChainStatus = models.TxAccepted
		e.metrics.VerificationResult("accepted")
		e.logger.Info("transfer accepted on chain", "stream_id", streamID, "tx_id", txID)
		e.notifyLocked(s, "tx_history")
		if err := e.persistLocked(e.ctx); err != nil {
			e.logger.Error("failed to persist after verification", "stream_id", streamID, "error", err)
		}
		return
	}

	if err != nil {
		e.logger.Warn("verification poll failed", "stream_id", streamID, "tx_id", txID, "attempt", attempt, "error", err)
	}

	if attempt+1 >= e.verifyAttempts {
		delete(e.polls, txID)
		tx.OnChainStatus = models.TxNotFound
		e.metrics.VerificationResult("not_found")
		e.logger.Warn("transfer never confirmed on chain", "stream_id", streamID, "tx_id", txID, "attempts", attempt+1)
		e.notifyLocked(s, "tx_history")
		if err := e.persistLocked(e.ctx); err != nil {
			e.logger.Error("failed to persist after verification", "stream_id", streamID, "error", err)
		}
		return
	}

	e.schedulePollLocked(streamID, txID, attempt+1, e.verifyDelay<<uint(attempt+1))
}

// Reconcile re-polls every transaction the last run left unverified. Run
// once at startup, after Restore: it recovers the record of transfers that
// were sent but whose confirmation the process never saw.
func (e *Engine) Reconcile(ctx context.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()

	pending := 0
	for _, id := range e.order {
		s := e.streams[id]
		if s.Status == models.StreamCancelled {
			continue
		}
		for i := range s.History {
			tx := &s.History[i]
			if tx.OnChainStatus == models.TxUnverified || tx.OnChainStatus == models.TxVerifying {
				e.schedulePollLocked(s.Id, tx.TxID, 0, e.verifyDelay)
				pending++
			}
		}
	}

	if pending > 0 {
		e.logger.Info("reconciling unverified transfers", "count", pending)
	}
}

func (e *Engine) findTransactionLocked(streamID, txID string) (*models.Stream, *models.StreamTransaction) {
	s, ok := e.streams[streamID]
	if !ok {
		return nil, nil
	}
	for i := range s.History {
		if s.History[i].TxID == txID {
			return s, &s.History[i]
		}
	}
	return s, nil
}
