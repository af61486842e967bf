package models

import (
	"time"
)

// StreamStatus defines the possible lifecycle states of a payment stream.
type StreamStatus string

const (
	StreamPending   StreamStatus = "pending"
	StreamActive    StreamStatus = "active"
	StreamPaused    StreamStatus = "paused"
	StreamCancelled StreamStatus = "cancelled"
	StreamCompleted StreamStatus = "completed"
	StreamError     StreamStatus = "error"
)

// Terminal reports whether the status is final. Terminal streams never tick
// again and are the only ones eligible for removal.
func (s StreamStatus) Terminal() bool {
	return s == StreamCompleted || s == StreamCancelled
}

// OnChainStatus tracks what the ledger knows about an issued transfer.
// It is informational only and never feeds back into amount accounting.
type OnChainStatus string

const (
	TxUnverified OnChainStatus = "unverified"
	TxVerifying  OnChainStatus = "verifying"
	TxAccepted   OnChainStatus = "accepted"
	TxNotFound   OnChainStatus = "not_found"
)

// StreamTransaction is one issued transfer belonging to a stream.
type StreamTransaction struct {
	TxID          string        `json:"tx_id" dynamodbav:"tx_id"`
	Amount        int64         `json:"amount" dynamodbav:"amount"` // sompi
	Timestamp     time.Time     `json:"timestamp" dynamodbav:"timestamp"`
	OnChainStatus OnChainStatus `json:"on_chain_status" dynamodbav:"on_chain_status"`
}

// Stream is one payment commitment: TotalAmount sompi flowing to Recipient
// in NumPayments transfers of FlowRate each, Interval apart, with the final
// transfer absorbing the integer-division remainder.
type Stream struct {
	Id        string    `json:"id" dynamodbav:"id"`
	Sender    string    `json:"sender" dynamodbav:"sender"`
	Recipient string    `json:"recipient" dynamodbav:"recipient"`
	CreatedAt time.Time `json:"created_at" dynamodbav:"created_at"`

	TotalAmount int64         `json:"total_amount" dynamodbav:"total_amount"` // sompi
	AmountSent  int64         `json:"amount_sent" dynamodbav:"amount_sent"`  // sompi
	FlowRate    int64         `json:"flow_rate" dynamodbav:"flow_rate"`      // sompi per tick
	Interval    time.Duration `json:"interval" dynamodbav:"interval"`
	Duration    time.Duration `json:"duration" dynamodbav:"duration"`
	NumPayments int64         `json:"num_payments" dynamodbav:"num_payments"`

	ElapsedBeforePause time.Duration `json:"elapsed_before_pause" dynamodbav:"elapsed_before_pause"`
	StartedAt          *time.Time    `json:"started_at,omitempty" dynamodbav:"started_at,omitempty"`

	Status       StreamStatus        `json:"status" dynamodbav:"status"`
	ErrorMessage string              `json:"error_message,omitempty" dynamodbav:"error_message,omitempty"`
	History      []StreamTransaction `json:"tx_history" dynamodbav:"tx_history"`

	// Color is presentation-only, assigned from a fixed palette at creation.
	Color string `json:"color" dynamodbav:"color"`
}

// Elapsed returns how long the stream has been actively running, excluding
// paused time. For an active stream the current run segment is included.
func (s *Stream) Elapsed(now time.Time) time.Duration {
	elapsed := s.ElapsedBeforePause
	if s.Status == StreamActive && s.StartedAt != nil {
		elapsed += now.Sub(*s.StartedAt)
	}
	return elapsed
}

// PaymentsMade is the number of transfers actually issued so far.
func (s *Stream) PaymentsMade() int64 {
	return int64(len(s.History))
}

// StreamConfig is the user-supplied configuration for a new stream,
// expressed in human-facing units.
type StreamConfig struct {
	Recipient       string
	TotalAmountKas  float64
	DurationMinutes float64
	IntervalSeconds int64
}

// StreamStats is the derived dashboard block over the whole collection.
type StreamStats struct {
	ActiveStreams     int     `json:"active_streams"`
	TotalStreams      int     `json:"total_streams"`
	TotalSompiSent    int64   `json:"total_sompi_sent"`
	TotalTransactions int     `json:"total_transactions"`
	CurrentFlowRate   float64 `json:"current_flow_rate"` // sompi per second across active streams
}

// RecentTransaction is a stream transaction annotated with its parent
// stream for flattened, newest-first listings.
type RecentTransaction struct {
	StreamTransaction
	StreamID    string `json:"stream_id"`
	StreamColor string `json:"stream_color"`
}

// Balance mirrors the wallet's view of spendable funds, in sompi.
type Balance struct {
	Confirmed   int64 `json:"confirmed"`
	Unconfirmed int64 `json:"unconfirmed"`
	Total       int64 `json:"total"`
}
