// Package mapping converts between domain models and API wire types.
package mapping

import (
	"time"

	"github.com/streamkas/streamkas/pkg/api"
	"github.com/streamkas/streamkas/pkg/models"
)

// ToApiStream converts a domain Stream model to an API Stream model.
// Elapsed is computed against now so callers see live progress.
func ToApiStream(s *models.Stream, now time.Time) *api.Stream {
	out := &api.Stream{
		Id:              s.Id,
		Sender:          s.Sender,
		Recipient:       s.Recipient,
		Status:          string(s.Status),
		TotalAmount:     s.TotalAmount,
		AmountSent:      s.AmountSent,
		FlowRate:        s.FlowRate,
		IntervalSeconds: int64(s.Interval / time.Second),
		DurationSeconds: int64(s.Duration / time.Second),
		NumPayments:     s.NumPayments,
		PaymentsMade:    s.PaymentsMade(),
		ElapsedSeconds:  s.Elapsed(now).Seconds(),
		ErrorMessage:    s.ErrorMessage,
		Color:           s.Color,
		CreatedAt:       s.CreatedAt,
		Transactions:    make([]api.StreamTransaction, 0, len(s.History)),
	}
	for _, tx := range s.History {
		out.Transactions = append(out.Transactions, ToApiStreamTransaction(tx))
	}
	return out
}

// ToApiStreamTransaction converts a domain StreamTransaction to its API form.
func ToApiStreamTransaction(tx models.StreamTransaction) api.StreamTransaction {
	return api.StreamTransaction{
		TxID:          tx.TxID,
		Amount:        tx.Amount,
		Timestamp:     tx.Timestamp,
		OnChainStatus: string(tx.OnChainStatus),
	}
}

// ToApiRecentTransaction converts an annotated transfer to its API form.
func ToApiRecentTransaction(tx models.RecentTransaction) api.RecentTransaction {
	return api.RecentTransaction{
		StreamTransaction: ToApiStreamTransaction(tx.StreamTransaction),
		StreamID:          tx.StreamID,
		StreamColor:       tx.StreamColor,
	}
}

// ToDomainStreamConfig converts an API NewStream to a domain StreamConfig.
func ToDomainStreamConfig(in *api.NewStream) models.StreamConfig {
	return models.StreamConfig{
		Recipient:       in.Recipient,
		TotalAmountKas:  in.TotalAmountKas,
		DurationMinutes: in.DurationMinutes,
		IntervalSeconds: in.IntervalSeconds,
	}
}

// ToApiStats converts the aggregate stats block.
func ToApiStats(stats models.StreamStats) *api.Stats {
	return &api.Stats{
		TotalStreams:      stats.TotalStreams,
		ActiveStreams:     stats.ActiveStreams,
		TotalSompiSent:    stats.TotalSompiSent,
		TotalTransactions: stats.TotalTransactions,
		CurrentFlowRate:   stats.CurrentFlowRate,
	}
}

// ToApiBalance converts a wallet balance.
func ToApiBalance(b models.Balance) *api.Balance {
	return &api.Balance{
		Confirmed:   b.Confirmed,
		Unconfirmed: b.Unconfirmed,
		Total:       b.Total,
	}
}
