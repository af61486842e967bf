package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/streamkas/streamkas/pkg/api"
	"github.com/streamkas/streamkas/pkg/clock"
	"github.com/streamkas/streamkas/pkg/engine"
	"github.com/streamkas/streamkas/pkg/handlers/mocks"
	"github.com/streamkas/streamkas/pkg/models"
	"github.com/streamkas/streamkas/pkg/price"
	wmocks "github.com/streamkas/streamkas/pkg/wallet/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// stubPrice is a fixed-quote price service.
type stubPrice struct {
	quote price.Quote
	err   error
}

func (s stubPrice) Current(ctx context.Context) (price.Quote, error) {
	return s.quote, s.err
}

func newRouter(streams *mocks.StreamService, gateway *wmocks.Gateway, prices price.Service) chi.Router {
	h := NewApiHandler(streams, gateway, prices, clock.NewFake(time.Now()))
	r := chi.NewRouter()
	h.Register(r)
	return r
}

func sampleStream() *models.Stream {
	return &models.Stream{
		Id:          "stream-1",
		Recipient:   "kaspatest:qz0s22ece8ej08hcqp0wxkg2v5kjqmzjvm0vxyz0",
		Status:      models.StreamPending,
		TotalAmount: 100,
		FlowRate:    25,
		Interval:    15 * time.Second,
		Duration:    time.Minute,
		NumPayments: 4,
		Color:       "#70C7BA",
		CreatedAt:   time.Now(),
	}
}

func TestCreateStream(t *testing.T) {
	newStream := api.NewStream{
		Recipient:       "kaspatest:qz0s22ece8ej08hcqp0wxkg2v5kjqmzjvm0vxyz0",
		TotalAmountKas:  1,
		DurationMinutes: 1,
		IntervalSeconds: 15,
	}

	t.Run("Success", func(t *testing.T) {
		// Arrange
		mockStreams := new(mocks.StreamService)
		mockStreams.On("Create", mock.Anything, mock.Anything).Return(sampleStream(), nil)

		router := newRouter(mockStreams, new(wmocks.Gateway), stubPrice{})

		body, _ := json.Marshal(newStream)
		req := httptest.NewRequest(http.MethodPost, "/streams", bytes.NewReader(body))
		rr := httptest.NewRecorder()

		// Act
		router.ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusCreated, rr.Code)

		var returned api.Stream
		json.Unmarshal(rr.Body.Bytes(), &returned)
		assert.Equal(t, "stream-1", returned.Id)
		assert.Equal(t, int64(4), returned.NumPayments)
		assert.Equal(t, int64(15), returned.IntervalSeconds)
		assert.Equal(t, "pending", returned.Status)

		mockStreams.AssertExpectations(t)
	})

	t.Run("Validation Error", func(t *testing.T) {
		mockStreams := new(mocks.StreamService)
		mockStreams.On("Create", mock.Anything, mock.Anything).
			Return(nil, &engine.ValidationError{Field: "interval_seconds", Reason: "must be positive"})

		router := newRouter(mockStreams, new(wmocks.Gateway), stubPrice{})

		body, _ := json.Marshal(newStream)
		req := httptest.NewRequest(http.MethodPost, "/streams", bytes.NewReader(body))
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)

		var returned api.Error
		json.Unmarshal(rr.Body.Bytes(), &returned)
		assert.Equal(t, "interval_seconds", returned.Field)
		assert.Equal(t, "must be positive", returned.Message)
	})

	t.Run("Insufficient Funds", func(t *testing.T) {
		mockStreams := new(mocks.StreamService)
		mockStreams.On("Create", mock.Anything, mock.Anything).Return(nil, engine.ErrInsufficientFunds)

		router := newRouter(mockStreams, new(wmocks.Gateway), stubPrice{})

		body, _ := json.Marshal(newStream)
		req := httptest.NewRequest(http.MethodPost, "/streams", bytes.NewReader(body))
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
		assert.Contains(t, rr.Body.String(), "Insufficient funds")
	})

	t.Run("Bad Request - Invalid JSON", func(t *testing.T) {
		router := newRouter(new(mocks.StreamService), new(wmocks.Gateway), stubPrice{})

		req := httptest.NewRequest(http.MethodPost, "/streams", strings.NewReader("not-json"))
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		// The engine is never called for a malformed body.
	})
}

func TestGetStream(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockStreams := new(mocks.StreamService)
		mockStreams.On("Get", "stream-1").Return(sampleStream(), nil)

		router := newRouter(mockStreams, new(wmocks.Gateway), stubPrice{})

		req := httptest.NewRequest(http.MethodGet, "/streams/stream-1", nil)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var returned api.Stream
		json.Unmarshal(rr.Body.Bytes(), &returned)
		assert.Equal(t, "stream-1", returned.Id)
	})

	t.Run("Not Found", func(t *testing.T) {
		mockStreams := new(mocks.StreamService)
		mockStreams.On("Get", "missing").Return(nil, engine.ErrStreamNotFound)

		router := newRouter(mockStreams, new(wmocks.Gateway), stubPrice{})

		req := httptest.NewRequest(http.MethodGet, "/streams/missing", nil)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestLifecycleEndpoints(t *testing.T) {
	t.Run("Start Success", func(t *testing.T) {
		mockStreams := new(mocks.StreamService)
		mockStreams.On("Start", mock.Anything, "stream-1").Return(nil)
		active := sampleStream()
		active.Status = models.StreamActive
		mockStreams.On("Get", "stream-1").Return(active, nil)

		router := newRouter(mockStreams, new(wmocks.Gateway), stubPrice{})

		req := httptest.NewRequest(http.MethodPost, "/streams/stream-1/start", nil)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var returned api.Stream
		json.Unmarshal(rr.Body.Bytes(), &returned)
		assert.Equal(t, "active", returned.Status)
		mockStreams.AssertExpectations(t)
	})

	t.Run("Illegal Transition", func(t *testing.T) {
		mockStreams := new(mocks.StreamService)
		mockStreams.On("Pause", mock.Anything, "stream-1").Return(engine.ErrIllegalTransition)

		router := newRouter(mockStreams, new(wmocks.Gateway), stubPrice{})

		req := httptest.NewRequest(http.MethodPost, "/streams/stream-1/pause", nil)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusConflict, rr.Code)
	})

	t.Run("Cancel Missing Stream", func(t *testing.T) {
		mockStreams := new(mocks.StreamService)
		mockStreams.On("Cancel", mock.Anything, "missing").Return(engine.ErrStreamNotFound)

		router := newRouter(mockStreams, new(wmocks.Gateway), stubPrice{})

		req := httptest.NewRequest(http.MethodPost, "/streams/missing/cancel", nil)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestRemoveStream(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockStreams := new(mocks.StreamService)
		mockStreams.On("Remove", mock.Anything, "stream-1").Return(nil)

		router := newRouter(mockStreams, new(wmocks.Gateway), stubPrice{})

		req := httptest.NewRequest(http.MethodDelete, "/streams/stream-1", nil)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNoContent, rr.Code)
	})

	t.Run("Not Removable", func(t *testing.T) {
		mockStreams := new(mocks.StreamService)
		mockStreams.On("Remove", mock.Anything, "stream-1").Return(engine.ErrStreamNotRemovable)

		router := newRouter(mockStreams, new(wmocks.Gateway), stubPrice{})

		req := httptest.NewRequest(http.MethodDelete, "/streams/stream-1", nil)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusConflict, rr.Code)
	})
}

func TestGetStats(t *testing.T) {
	mockStreams := new(mocks.StreamService)
	mockStreams.On("Stats").Return(models.StreamStats{
		TotalStreams:      3,
		ActiveStreams:     1,
		TotalSompiSent:    250,
		TotalTransactions: 10,
		CurrentFlowRate:   1.5,
	})

	router := newRouter(mockStreams, new(wmocks.Gateway), stubPrice{})

	req := httptest.NewRequest(http.MethodGet, "/stats", nil)
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var returned api.Stats
	json.Unmarshal(rr.Body.Bytes(), &returned)
	assert.Equal(t, 3, returned.TotalStreams)
	assert.Equal(t, int64(250), returned.TotalSompiSent)
	assert.Equal(t, 1.5, returned.CurrentFlowRate)
}

func TestGetRecentTransactions(t *testing.T) {
	t.Run("With Limit", func(t *testing.T) {
		mockStreams := new(mocks.StreamService)
		mockStreams.On("RecentTransactions", 5).Return([]models.RecentTransaction{
			{
				StreamTransaction: models.StreamTransaction{TxID: "aa", Amount: 25, OnChainStatus: models.TxAccepted},
				StreamID:          "stream-1",
				StreamColor:       "#70C7BA",
			},
		})

		router := newRouter(mockStreams, new(wmocks.Gateway), stubPrice{})

		req := httptest.NewRequest(http.MethodGet, "/transactions/recent?limit=5", nil)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var returned []api.RecentTransaction
		json.Unmarshal(rr.Body.Bytes(), &returned)
		assert.Len(t, returned, 1)
		assert.Equal(t, "stream-1", returned[0].StreamID)
		assert.Equal(t, "accepted", returned[0].OnChainStatus)
	})

	t.Run("Invalid Limit", func(t *testing.T) {
		router := newRouter(new(mocks.StreamService), new(wmocks.Gateway), stubPrice{})

		req := httptest.NewRequest(http.MethodGet, "/transactions/recent?limit=abc", nil)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestGetBalance(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockGateway := new(wmocks.Gateway)
		mockGateway.On("Balance", mock.Anything).Return(models.Balance{Confirmed: 900, Unconfirmed: 100, Total: 1000}, nil)

		router := newRouter(new(mocks.StreamService), mockGateway, stubPrice{})

		req := httptest.NewRequest(http.MethodGet, "/balance", nil)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var returned api.Balance
		json.Unmarshal(rr.Body.Bytes(), &returned)
		assert.Equal(t, int64(1000), returned.Total)
	})

	t.Run("Gateway Down", func(t *testing.T) {
		mockGateway := new(wmocks.Gateway)
		mockGateway.On("Balance", mock.Anything).Return(models.Balance{}, errors.New("bridge unreachable"))

		router := newRouter(new(mocks.StreamService), mockGateway, stubPrice{})

		req := httptest.NewRequest(http.MethodGet, "/balance", nil)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadGateway, rr.Code)
	})
}

func TestGetPrice(t *testing.T) {
	router := newRouter(new(mocks.StreamService), new(wmocks.Gateway), stubPrice{
		quote: price.Quote{USD: 0.12, Change24h: 3.4},
	})

	req := httptest.NewRequest(http.MethodGet, "/price", nil)
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var returned price.Quote
	json.Unmarshal(rr.Body.Bytes(), &returned)
	assert.Equal(t, 0.12, returned.USD)
}

func TestParseCommand(t *testing.T) {
	router := newRouter(new(mocks.StreamService), new(wmocks.Gateway), stubPrice{})

	body, _ := json.Marshal(api.ParseRequest{
		Input: "stream 50 KAS to kaspatest:qz0s22ece8ej08hcqp0wxkg2v5kjqmzjvm0vxyz0 over 30 minutes",
	})
	req := httptest.NewRequest(http.MethodPost, "/streams/parse", bytes.NewReader(body))
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"is_valid":true`)
}

func TestCreatePayroll(t *testing.T) {
	entry := api.NewStream{
		Recipient:       "kaspatest:qz0s22ece8ej08hcqp0wxkg2v5kjqmzjvm0vxyz0",
		TotalAmountKas:  1,
		DurationMinutes: 1,
		IntervalSeconds: 15,
	}

	t.Run("Success", func(t *testing.T) {
		mockStreams := new(mocks.StreamService)
		mockStreams.On("CreateBatch", mock.Anything, mock.Anything).
			Return([]*models.Stream{sampleStream(), sampleStream()}, nil)

		router := newRouter(mockStreams, new(wmocks.Gateway), stubPrice{})

		body, _ := json.Marshal(api.PayrollRequest{Entries: []api.NewStream{entry, entry}})
		req := httptest.NewRequest(http.MethodPost, "/payroll", bytes.NewReader(body))
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)

		var returned []api.Stream
		json.Unmarshal(rr.Body.Bytes(), &returned)
		assert.Len(t, returned, 2)
	})

	t.Run("Empty Batch", func(t *testing.T) {
		router := newRouter(new(mocks.StreamService), new(wmocks.Gateway), stubPrice{})

		body, _ := json.Marshal(api.PayrollRequest{})
		req := httptest.NewRequest(http.MethodPost, "/payroll", bytes.NewReader(body))
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("One Bad Entry Rejects All", func(t *testing.T) {
		mockStreams := new(mocks.StreamService)
		mockStreams.On("CreateBatch", mock.Anything, mock.Anything).
			Return(nil, &engine.ValidationError{Field: "recipient", Reason: "not a valid kaspa address"})

		router := newRouter(mockStreams, new(wmocks.Gateway), stubPrice{})

		body, _ := json.Marshal(api.PayrollRequest{Entries: []api.NewStream{entry}})
		req := httptest.NewRequest(http.MethodPost, "/payroll", bytes.NewReader(body))
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "recipient")
	})
}
