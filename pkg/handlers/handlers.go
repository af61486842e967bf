// Package handlers exposes the stream engine over HTTP.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/streamkas/streamkas/pkg/api"
	"github.com/streamkas/streamkas/pkg/clock"
	"github.com/streamkas/streamkas/pkg/engine"
	"github.com/streamkas/streamkas/pkg/mapping"
	"github.com/streamkas/streamkas/pkg/models"
	"github.com/streamkas/streamkas/pkg/nlp"
	"github.com/streamkas/streamkas/pkg/price"
	"github.com/streamkas/streamkas/pkg/wallet"
)

// StreamService is the slice of the engine the HTTP layer needs.
type StreamService interface {
	Create(ctx context.Context, config models.StreamConfig) (*models.Stream, error)
	CreateBatch(ctx context.Context, configs []models.StreamConfig) ([]*models.Stream, error)
	Get(id string) (*models.Stream, error)
	List() []models.Stream
	Start(ctx context.Context, id string) error
	Pause(ctx context.Context, id string) error
	Cancel(ctx context.Context, id string) error
	Remove(ctx context.Context, id string) error
	Stats() models.StreamStats
	RecentTransactions(limit int) []models.RecentTransaction
}

// Make sure the engine satisfies the service surface.
var _ StreamService = (*engine.Engine)(nil)

// ApiHandler holds the application's dependencies behind the HTTP routes.
type ApiHandler struct {
	Streams StreamService
	Wallet  wallet.Gateway
	Price   price.Service
	Clock   clock.Clock
}

// NewApiHandler creates a new ApiHandler.
func NewApiHandler(streams StreamService, gateway wallet.Gateway, prices price.Service, clk clock.Clock) *ApiHandler {
	if clk == nil {
		clk = clock.NewSystem()
	}
	return &ApiHandler{Streams: streams, Wallet: gateway, Price: prices, Clock: clk}
}

// Register mounts every route on r.
func (h *ApiHandler) Register(r chi.Router) {
	r.Route("/streams", func(r chi.Router) {
		r.Post("/", h.CreateStream)
		r.Get("/", h.ListStreams)
		r.Post("/parse", h.ParseCommand)
		r.Route("/{streamId}", func(r chi.Router) {
			r.Get("/", h.GetStream)
			r.Delete("/", h.RemoveStream)
			r.Post("/start", h.StartStream)
			r.Post("/pause", h.PauseStream)
			r.Post("/cancel", h.CancelStream)
		})
	})
	r.Post("/payroll", h.CreatePayroll)
	r.Get("/stats", h.GetStats)
	r.Get("/transactions/recent", h.GetRecentTransactions)
	r.Get("/balance", h.GetBalance)
	r.Get("/price", h.GetPrice)
	r.Get("/healthz", h.Healthz)
}

// CreateStream handles the logic for admitting a new stream.
func (h *ApiHandler) CreateStream(w http.ResponseWriter, r *http.Request) {
	// Decode the request body.
	var newStream api.NewStream
	if err := json.NewDecoder(r.Body).Decode(&newStream); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	// Call the engine to admit the stream.
	config := mapping.ToDomainStreamConfig(&newStream)
	stream, err := h.Streams.Create(r.Context(), config)
	if err != nil && !errors.Is(err, engine.ErrPersistence) {
		writeStreamError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, mapping.ToApiStream(stream, h.Clock.Now()))
}

// CreatePayroll admits a batch of streams atomically: either every entry is
// accepted or none are.
func (h *ApiHandler) CreatePayroll(w http.ResponseWriter, r *http.Request) {
	var req api.PayrollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	if len(req.Entries) == 0 {
		http.Error(w, "Payroll needs at least one entry", http.StatusBadRequest)
		return
	}

	configs := make([]models.StreamConfig, len(req.Entries))
	for i := range req.Entries {
		configs[i] = mapping.ToDomainStreamConfig(&req.Entries[i])
	}

	streams, err := h.Streams.CreateBatch(r.Context(), configs)
	if err != nil && !errors.Is(err, engine.ErrPersistence) {
		writeStreamError(w, err)
		return
	}

	now := h.Clock.Now()
	out := make([]*api.Stream, len(streams))
	for i, s := range streams {
		out[i] = mapping.ToApiStream(s, now)
	}
	writeJSON(w, http.StatusCreated, out)
}

// ListStreams returns every stream in creation order.
func (h *ApiHandler) ListStreams(w http.ResponseWriter, r *http.Request) {
	streams := h.Streams.List()
	now := h.Clock.Now()

	out := make([]*api.Stream, len(streams))
	for i := range streams {
		out[i] = mapping.ToApiStream(&streams[i], now)
	}
	writeJSON(w, http.StatusOK, out)
}

// GetStream returns one stream by its id.
func (h *ApiHandler) GetStream(w http.ResponseWriter, r *http.Request) {
	stream, err := h.Streams.Get(chi.URLParam(r, "streamId"))
	if err != nil {
		writeStreamError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mapping.ToApiStream(stream, h.Clock.Now()))
}

// StartStream starts or resumes a stream.
func (h *ApiHandler) StartStream(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.Streams.Start)
}

// PauseStream pauses an active stream.
func (h *ApiHandler) PauseStream(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.Streams.Pause)
}

// CancelStream cancels a stream in any non-terminal state.
func (h *ApiHandler) CancelStream(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.Streams.Cancel)
}

// transition applies a lifecycle operation and responds with the updated
// stream.
func (h *ApiHandler) transition(w http.ResponseWriter, r *http.Request, op func(context.Context, string) error) {
	id := chi.URLParam(r, "streamId")
	if err := op(r.Context(), id); err != nil && !errors.Is(err, engine.ErrPersistence) {
		writeStreamError(w, err)
		return
	}

	stream, err := h.Streams.Get(id)
	if err != nil {
		writeStreamError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mapping.ToApiStream(stream, h.Clock.Now()))
}

// RemoveStream deletes a terminal stream from the collection.
func (h *ApiHandler) RemoveStream(w http.ResponseWriter, r *http.Request) {
	err := h.Streams.Remove(r.Context(), chi.URLParam(r, "streamId"))
	if err != nil && !errors.Is(err, engine.ErrPersistence) {
		writeStreamError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetStats returns the aggregate dashboard block.
func (h *ApiHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, mapping.ToApiStats(h.Streams.Stats()))
}

// GetRecentTransactions returns the newest transfers across all streams.
// An optional ?limit= caps the result; the default is 50.
func (h *ApiHandler) GetRecentTransactions(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			http.Error(w, "Invalid limit parameter", http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	recent := h.Streams.RecentTransactions(limit)
	out := make([]api.RecentTransaction, len(recent))
	for i, tx := range recent {
		out[i] = mapping.ToApiRecentTransaction(tx)
	}
	writeJSON(w, http.StatusOK, out)
}

// GetBalance returns the wallet balance.
func (h *ApiHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	balance, err := h.Wallet.Balance(r.Context())
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to fetch balance: %v", err), http.StatusBadGateway)
		return
	}
	writeJSON(w, http.StatusOK, mapping.ToApiBalance(balance))
}

// GetPrice returns the current KAS/USD quote.
func (h *ApiHandler) GetPrice(w http.ResponseWriter, r *http.Request) {
	quote, err := h.Price.Current(r.Context())
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to fetch price: %v", err), http.StatusBadGateway)
		return
	}
	writeJSON(w, http.StatusOK, quote)
}

// ParseCommand runs the natural-language parser over a free-form command.
func (h *ApiHandler) ParseCommand(w http.ResponseWriter, r *http.Request) {
	var req api.ParseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, nlp.Parse(req.Input))
}

// Healthz reports liveness.
func (h *ApiHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// writeStreamError translates engine errors into HTTP statuses.
func writeStreamError(w http.ResponseWriter, err error) {
	var validation *engine.ValidationError
	switch {
	case errors.As(err, &validation):
		writeJSON(w, http.StatusBadRequest, api.Error{Message: validation.Reason, Field: validation.Field})
	case errors.Is(err, engine.ErrStreamNotFound):
		writeJSON(w, http.StatusNotFound, api.Error{Message: "Stream not found"})
	case errors.Is(err, engine.ErrInsufficientFunds):
		writeJSON(w, http.StatusUnprocessableEntity, api.Error{Message: "Insufficient funds"})
	case errors.Is(err, engine.ErrIllegalTransition):
		writeJSON(w, http.StatusConflict, api.Error{Message: err.Error()})
	case errors.Is(err, engine.ErrStreamNotRemovable):
		writeJSON(w, http.StatusConflict, api.Error{Message: "Only finished streams can be removed"})
	default:
		writeJSON(w, http.StatusInternalServerError, api.Error{Message: err.Error()})
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}
