package wallet

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/streamkas/streamkas/pkg/kaspa"
	"github.com/streamkas/streamkas/pkg/models"
)

// BridgeClient implements Gateway against an HTTP wallet bridge (a thin
// sidecar in front of the kasware extension API). The bridge has been
// observed to return transfer ids wrapped in JSON envelopes, so every send
// response goes through kaspa.NormalizeTxID before it is trusted.
type BridgeClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewBridgeClient creates a BridgeClient for the given base URL.
func NewBridgeClient(baseURL string) *BridgeClient {
	return &BridgeClient{
		BaseURL: baseURL,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Make sure we conform to the interface
var _ Gateway = (*BridgeClient)(nil)

type sendRequest struct {
	ToAddress   string `json:"to_address"`
	Amount      int64  `json:"amount"`
	PriorityFee int64  `json:"priority_fee,omitempty"`
}

// Send issues a transfer through the bridge and returns the normalized
// transfer id.
func (c *BridgeClient) Send(ctx context.Context, toAddress string, amount int64, priorityFee int64) (string, error) {
	body, err := json.Marshal(sendRequest{ToAddress: toAddress, Amount: amount, PriorityFee: priorityFee})
	if err != nil {
		return "", fmt.Errorf("failed to marshal send request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/send", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build send request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("wallet bridge unreachable: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read send response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("wallet bridge rejected send: %s: %s", resp.Status, bytes.TrimSpace(raw))
	}

	txID := kaspa.NormalizeTxID(string(raw))
	if txID == "" {
		return "", fmt.Errorf("wallet bridge returned an empty transfer id")
	}

	return txID, nil
}

// Balance reads the wallet's spendable funds, in sompi.
func (c *BridgeClient) Balance(ctx context.Context) (models.Balance, error) {
	var balance models.Balance
	if err := c.getJSON(ctx, "/balance", &balance); err != nil {
		return models.Balance{}, err
	}
	return balance, nil
}

// Address returns the connected account's address.
func (c *BridgeClient) Address(ctx context.Context) (string, error) {
	var payload struct {
		Address string `json:"address"`
	}
	if err := c.getJSON(ctx, "/address", &payload); err != nil {
		return "", err
	}
	return payload.Address, nil
}

func (c *BridgeClient) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to build request for %s: %w", path, err)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("wallet bridge unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("wallet bridge returned %s for %s", resp.Status, path)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response for %s: %w", path, err)
	}

	return nil
}
