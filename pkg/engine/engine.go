// Package engine owns the lifecycle and scheduling of every payment stream:
// creation, start/pause/resume/cancel, tick-driven transfer issuance,
// post-transfer verification polling and persistence hand-off.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/streamkas/streamkas/pkg/clock"
	"github.com/streamkas/streamkas/pkg/metrics"
	"github.com/streamkas/streamkas/pkg/models"
	"github.com/streamkas/streamkas/pkg/storage"
	"github.com/streamkas/streamkas/pkg/verifier"
	"github.com/streamkas/streamkas/pkg/wallet"
)

// StreamUpdate notifies the engine's owner of a field-level mutation.
// Stream is a post-mutation copy; Changed names the fields that moved.
type StreamUpdate struct {
	StreamID string
	Changed  []string
	Stream   models.Stream
}

// UpdateFunc receives stream mutations. It is invoked synchronously inside
// the operation or tick that produced the change and must not call back
// into the engine.
type UpdateFunc func(update StreamUpdate)

// Config wires the engine's collaborators. Wallet, Verifier and Store are
// required; the rest default sensibly.
type Config struct {
	Wallet   wallet.Gateway
	Verifier verifier.Service
	Store    storage.StreamStore
	Clock    clock.Clock
	Logger   *slog.Logger
	Metrics  *metrics.Engine
	OnUpdate UpdateFunc

	// VerifyAttempts bounds how many times one transaction is polled before
	// it is left as not_found. VerifyDelay is the delay before the first
	// poll; it doubles on every retry.
	VerifyAttempts int
	VerifyDelay    time.Duration
}

const (
	defaultVerifyAttempts = 5
	defaultVerifyDelay    = 5 * time.Second
)

// Engine is the stream execution core. All state is guarded by mu; ticks and
// verification polls are deferred callbacks on the clock, never long-lived
// goroutines, so at most one transfer per stream is in flight at any time.
type Engine struct {
	wallet   wallet.Gateway
	verifier verifier.Service
	store    storage.StreamStore
	clock    clock.Clock
	logger   *slog.Logger
	metrics  *metrics.Engine
	onUpdate UpdateFunc

	verifyAttempts int
	verifyDelay    time.Duration

	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	streams map[string]*models.Stream
	order   []string
	timers  map[string]clock.Timer // stream id -> pending tick
	polls   map[string]clock.Timer // tx id -> pending verification poll

	// gen counts lifecycle transitions per stream. Each tick chain carries
	// the generation it was started under; a tick that resolves under a
	// newer generation must not reschedule, so a pause/resume while a
	// transfer is in flight can never leave two live timer chains.
	gen map[string]uint64
}

// New creates an Engine from cfg.
func New(cfg Config) *Engine {
	if cfg.Clock == nil {
		cfg.Clock = clock.NewSystem()
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.VerifyAttempts <= 0 {
		cfg.VerifyAttempts = defaultVerifyAttempts
	}
	if cfg.VerifyDelay <= 0 {
		cfg.VerifyDelay = defaultVerifyDelay
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Engine{
		wallet:         cfg.Wallet,
		verifier:       cfg.Verifier,
		store:          cfg.Store,
		clock:          cfg.Clock,
		logger:         cfg.Logger,
		metrics:        cfg.Metrics,
		onUpdate:       cfg.OnUpdate,
		verifyAttempts: cfg.VerifyAttempts,
		verifyDelay:    cfg.VerifyDelay,
		ctx:            ctx,
		cancel:         cancel,
		streams:        make(map[string]*models.Stream),
		timers:         make(map[string]clock.Timer),
		polls:          make(map[string]clock.Timer),
		gen:            make(map[string]uint64),
	}
}

// Restore loads the persisted stream set into the engine. Streams persisted
// as active are demoted to paused: their timers did not survive the restart
// and resuming payments is the user's call.
func (e *Engine) Restore(ctx context.Context) error {
	streams, err := e.store.LoadStreams(ctx)
	if err != nil {
		return fmt.Errorf("failed to load streams: %w", err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	for i := range streams {
		s := streams[i]
		if s.Status == models.StreamActive {
			s.Status = models.StreamPaused
			s.StartedAt = nil
		}
		e.streams[s.Id] = &s
		e.order = append(e.order, s.Id)
	}

	e.logger.Info("restored streams", "count", len(streams))
	return nil
}

// Close cancels every pending timer and verification poll. In-flight
// gateway calls see their context cancelled. The engine must not be used
// afterwards.
func (e *Engine) Close() {
	e.cancel()

	e.mu.Lock()
	defer e.mu.Unlock()

	for id, timer := range e.timers {
		timer.Stop()
		delete(e.timers, id)
	}
	for txID, timer := range e.polls {
		timer.Stop()
		delete(e.polls, txID)
	}
}

// Get returns a copy of the stream with the given id.
func (e *Engine) Get(id string) (*models.Stream, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	s, ok := e.streams[id]
	if !ok {
		return nil, ErrStreamNotFound
	}
	copied := copyStream(s)
	return &copied, nil
}

// List returns copies of all streams in creation order.
func (e *Engine) List() []models.Stream {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]models.Stream, 0, len(e.order))
	for _, id := range e.order {
		out = append(out, copyStream(e.streams[id]))
	}
	return out
}

// persistLocked writes the full snapshot. Callers hold mu. A failed write
// never rolls back in-memory state.
func (e *Engine) persistLocked(ctx context.Context) error {
	snapshot := make([]models.Stream, 0, len(e.order))
	for _, id := range e.order {
		snapshot = append(snapshot, copyStream(e.streams[id]))
	}

	if err := e.store.SaveStreams(ctx, snapshot); err != nil {
		e.logger.Error("snapshot write failed", "error", err)
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	return nil
}

// notifyLocked delivers a mutation to the engine's owner. Callers hold mu.
func (e *Engine) notifyLocked(s *models.Stream, changed ...string) {
	if e.onUpdate == nil {
		return
	}
	e.onUpdate(StreamUpdate{
		StreamID: s.Id,
		Changed:  changed,
		Stream:   copyStream(s),
	})
}

func (e *Engine) updateActiveGaugeLocked() {
	n := 0
	for _, s := range e.streams {
		if s.Status == models.StreamActive {
			n++
		}
	}
	e.metrics.SetActiveStreams(n)
}

func copyStream(s *models.Stream) models.Stream {
	copied := *s
	if s.StartedAt != nil {
		startedAt := *s.StartedAt
		copied.StartedAt = &startedAt
	}
	if s.History != nil {
		copied.History = make([]models.StreamTransaction, len(s.History))
		copy(copied.History, s.History)
	}
	return copied
}
