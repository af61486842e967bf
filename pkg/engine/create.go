package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/streamkas/streamkas/pkg/kaspa"
	"github.com/streamkas/streamkas/pkg/models"
)

// streamColors is the palette streams cycle through. Presentation only.
var streamColors = []string{
	"#49EACB", "#7C3AED", "#F59E0B", "#10B981", "#3B82F6", "#EC4899",
}

// Create validates config, checks the wallet balance against the requested
// total, and admits a new pending stream into the collection. No transfer
// is issued until Start.
func (e *Engine) Create(ctx context.Context, config models.StreamConfig) (*models.Stream, error) {
	stream, err := buildStream(config)
	if err != nil {
		return nil, err
	}

	balance, err := e.wallet.Balance(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read wallet balance: %w", err)
	}
	if balance.Total < stream.TotalAmount {
		return nil, ErrInsufficientFunds
	}

	if sender, err := e.wallet.Address(ctx); err == nil {
		stream.Sender = sender
	} else {
		e.logger.Warn("could not resolve sender address", "error", err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.admitLocked(stream)
	e.metrics.StreamCreated()

	if err := e.persistLocked(ctx); err != nil {
		return stream, err
	}
	return stream, nil
}

// CreateBatch admits several streams at once (the payroll flow). Every
// config is validated and the combined total is checked against the balance
// before any stream is admitted, so a batch is all-or-nothing.
func (e *Engine) CreateBatch(ctx context.Context, configs []models.StreamConfig) ([]*models.Stream, error) {
	if len(configs) == 0 {
		return nil, &ValidationError{Field: "recipients", Reason: "batch is empty"}
	}

	streams := make([]*models.Stream, 0, len(configs))
	var combined int64
	for _, config := range configs {
		stream, err := buildStream(config)
		if err != nil {
			return nil, err
		}
		streams = append(streams, stream)
		combined += stream.TotalAmount
	}

	balance, err := e.wallet.Balance(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read wallet balance: %w", err)
	}
	if balance.Total < combined {
		return nil, ErrInsufficientFunds
	}

	sender, err := e.wallet.Address(ctx)
	if err != nil {
		e.logger.Warn("could not resolve sender address", "error", err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	for _, stream := range streams {
		stream.Sender = sender
		e.admitLocked(stream)
		e.metrics.StreamCreated()
	}

	if err := e.persistLocked(ctx); err != nil {
		return streams, err
	}
	return streams, nil
}

func (e *Engine) admitLocked(stream *models.Stream) {
	stream.CreatedAt = e.clock.Now()
	stream.Color = streamColors[len(e.order)%len(streamColors)]
	e.streams[stream.Id] = stream
	e.order = append(e.order, stream.Id)
}

// buildStream turns a user config into a pending stream, or fails with a
// ValidationError. The flow rate uses integer division; the remainder is
// absorbed by the final payment at tick time so the parts always sum to the
// declared total.
func buildStream(config models.StreamConfig) (*models.Stream, error) {
	if config.Recipient == "" {
		return nil, &ValidationError{Field: "recipient", Reason: "must not be empty"}
	}
	if !kaspa.IsValidAddress(config.Recipient) {
		return nil, &ValidationError{Field: "recipient", Reason: "not a valid Kaspa address"}
	}
	if config.TotalAmountKas <= 0 {
		return nil, &ValidationError{Field: "total_amount_kas", Reason: "must be greater than zero"}
	}
	if config.DurationMinutes <= 0 {
		return nil, &ValidationError{Field: "duration_minutes", Reason: "must be greater than zero"}
	}
	if config.IntervalSeconds <= 0 {
		return nil, &ValidationError{Field: "interval_seconds", Reason: "must be greater than zero"}
	}

	durationSeconds := int64(config.DurationMinutes * 60)
	numPayments := durationSeconds / config.IntervalSeconds
	if numPayments < 1 {
		return nil, &ValidationError{Field: "duration_minutes", Reason: "duration shorter than one interval"}
	}

	total := kaspa.KasToSompi(config.TotalAmountKas)
	if total < numPayments {
		return nil, &ValidationError{Field: "total_amount_kas", Reason: "less than one sompi per payment"}
	}

	return &models.Stream{
		Id:          uuid.New().String(),
		Recipient:   config.Recipient,
		TotalAmount: total,
		FlowRate:    total / numPayments,
		Interval:    time.Duration(config.IntervalSeconds) * time.Second,
		Duration:    time.Duration(durationSeconds) * time.Second,
		NumPayments: numPayments,
		Status:      models.StreamPending,
		History:     []models.StreamTransaction{},
	}, nil
}
