// Package price fetches the KAS/USD spot price from CoinGecko with a short
// in-process cache.
package price

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/streamkas/streamkas/pkg/clock"
)

const (
	defaultBaseURL = "https://api.coingecko.com/api/v3"
	cacheTTL       = 60 * time.Second
)

// ErrUnavailable is returned when no fresh price can be fetched and no
// earlier price is cached to fall back on.
var ErrUnavailable = errors.New("price unavailable")

// Quote is one KAS/USD observation.
type Quote struct {
	USD       float64   `json:"usd"`
	Change24h float64   `json:"usd_24h_change"`
	FetchedAt time.Time `json:"fetched_at"`
	Stale     bool      `json:"stale"`
}

// Service returns the current KAS price.
type Service interface {
	Current(ctx context.Context) (Quote, error)
}

// Client fetches from CoinGecko and serves cached quotes for up to a minute.
// When CoinGecko is unreachable the last known quote is served marked stale.
type Client struct {
	baseURL    string
	httpClient *http.Client
	clock      clock.Clock
	logger     *slog.Logger

	mu     sync.Mutex
	cached *Quote
}

var _ Service = (*Client)(nil)

// NewClient creates a Client against baseURL, or CoinGecko's public API
// when baseURL is empty.
func NewClient(baseURL string, clk clock.Clock, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if clk == nil {
		clk = clock.NewSystem()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		clock:      clk,
		logger:     logger,
	}
}

// Current returns the cached quote when it is younger than a minute,
// otherwise refetches. A fetch failure falls back to the last cached quote.
func (c *Client) Current(ctx context.Context) (Quote, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock.Now()
	if c.cached != nil && now.Sub(c.cached.FetchedAt) < cacheTTL {
		return *c.cached, nil
	}

	quote, err := c.fetch(ctx)
	if err != nil {
		if c.cached != nil {
			c.logger.Warn("price fetch failed, serving stale quote", "error", err, "age", now.Sub(c.cached.FetchedAt))
			stale := *c.cached
			stale.Stale = true
			return stale, nil
		}
		return Quote{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	quote.FetchedAt = now
	c.cached = &quote
	return quote, nil
}

func (c *Client) fetch(ctx context.Context) (Quote, error) {
	url := c.baseURL + "/simple/price?ids=kaspa&vs_currencies=usd&include_24hr_change=true"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Quote{}, fmt.Errorf("failed to build price request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Quote{}, fmt.Errorf("price request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Quote{}, fmt.Errorf("price request returned status %d", resp.StatusCode)
	}

	var payload map[string]struct {
		USD       float64 `json:"usd"`
		Change24h float64 `json:"usd_24h_change"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Quote{}, fmt.Errorf("failed to decode price response: %w", err)
	}

	entry, ok := payload["kaspa"]
	if !ok {
		return Quote{}, errors.New("price response missing kaspa entry")
	}

	return Quote{USD: entry.USD, Change24h: entry.Change24h}, nil
}
