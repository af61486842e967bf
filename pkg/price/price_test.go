package price

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/streamkas/streamkas/pkg/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCurrent(t *testing.T) {
	t.Run("Fetches And Caches", func(t *testing.T) {
		hits := 0
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hits++
			assert.Equal(t, "/simple/price", r.URL.Path)
			w.Write([]byte(`{"kaspa":{"usd":0.1234,"usd_24h_change":-2.5}}`))
		}))
		defer server.Close()

		fake := clock.NewFake(time.Now())
		client := NewClient(server.URL, fake, nil)

		quote, err := client.Current(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 0.1234, quote.USD)
		assert.Equal(t, -2.5, quote.Change24h)
		assert.False(t, quote.Stale)

		// Within the TTL the cached quote is served without a request.
		fake.Advance(59 * time.Second)
		_, err = client.Current(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 1, hits)

		// Past the TTL the quote is refetched.
		fake.Advance(2 * time.Second)
		_, err = client.Current(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 2, hits)
	})

	t.Run("Serves Stale On Failure", func(t *testing.T) {
		healthy := true
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !healthy {
				w.WriteHeader(http.StatusBadGateway)
				return
			}
			w.Write([]byte(`{"kaspa":{"usd":0.1,"usd_24h_change":0}}`))
		}))
		defer server.Close()

		fake := clock.NewFake(time.Now())
		client := NewClient(server.URL, fake, nil)

		_, err := client.Current(context.Background())
		require.NoError(t, err)

		healthy = false
		fake.Advance(5 * time.Minute)

		quote, err := client.Current(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 0.1, quote.USD)
		assert.True(t, quote.Stale)
	})

	t.Run("Unavailable Without Cache", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer server.Close()

		client := NewClient(server.URL, clock.NewFake(time.Now()), nil)

		_, err := client.Current(context.Background())
		assert.ErrorIs(t, err, ErrUnavailable)
	})
}
