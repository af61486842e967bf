// Package api defines the wire types served by the HTTP layer. Durations
// cross the wire as plain numbers (minutes and seconds), amounts as sompi
// except where a field is explicitly named in KAS.
package api

import "time"

// NewStream is the request body for creating a stream.
type NewStream struct {
	Recipient       string  `json:"recipient"`
	TotalAmountKas  float64 `json:"total_amount_kas"`
	DurationMinutes float64 `json:"duration_minutes"`
	IntervalSeconds int64   `json:"interval_seconds"`
}

// Stream is the API view of a payment stream.
type Stream struct {
	Id              string              `json:"id"`
	Sender          string              `json:"sender,omitempty"`
	Recipient       string              `json:"recipient"`
	Status          string              `json:"status"`
	TotalAmount     int64               `json:"total_amount"`
	AmountSent      int64               `json:"amount_sent"`
	FlowRate        int64               `json:"flow_rate"`
	IntervalSeconds int64               `json:"interval_seconds"`
	DurationSeconds int64               `json:"duration_seconds"`
	NumPayments     int64               `json:"num_payments"`
	PaymentsMade    int64               `json:"payments_made"`
	ElapsedSeconds  float64             `json:"elapsed_seconds"`
	ErrorMessage    string              `json:"error_message,omitempty"`
	Color           string              `json:"color,omitempty"`
	CreatedAt       time.Time           `json:"created_at"`
	Transactions    []StreamTransaction `json:"transactions"`
}

// StreamTransaction is one issued transfer.
type StreamTransaction struct {
	TxID          string    `json:"tx_id"`
	Amount        int64     `json:"amount"`
	Timestamp     time.Time `json:"timestamp"`
	OnChainStatus string    `json:"on_chain_status"`
}

// RecentTransaction is a transfer annotated with its parent stream.
type RecentTransaction struct {
	StreamTransaction
	StreamID    string `json:"stream_id"`
	StreamColor string `json:"stream_color,omitempty"`
}

// Stats is the aggregate dashboard block.
type Stats struct {
	TotalStreams      int     `json:"total_streams"`
	ActiveStreams     int     `json:"active_streams"`
	TotalSompiSent    int64   `json:"total_sompi_sent"`
	TotalTransactions int     `json:"total_transactions"`
	CurrentFlowRate   float64 `json:"current_flow_rate"`
}

// Balance is the wallet balance in sompi.
type Balance struct {
	Confirmed   int64 `json:"confirmed"`
	Unconfirmed int64 `json:"unconfirmed"`
	Total       int64 `json:"total"`
}

// ParseRequest is the body for the natural-language parse endpoint.
type ParseRequest struct {
	Input string `json:"input"`
}

// PayrollRequest creates one stream per entry, atomically.
type PayrollRequest struct {
	Entries []NewStream `json:"entries"`
}

// Error is the uniform error envelope.
type Error struct {
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}
