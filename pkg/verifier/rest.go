package verifier

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// RESTClient implements Service against a Kaspa REST API node
// (api.kaspa.org or a testnet equivalent).
type RESTClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewRESTClient creates a RESTClient for the given API base URL.
func NewRESTClient(baseURL string) *RESTClient {
	return &RESTClient{
		BaseURL: baseURL,
		HTTPClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// Make sure we conform to the interface
var _ Service = (*RESTClient)(nil)

type transactionResponse struct {
	TransactionID string `json:"transaction_id"`
	IsAccepted    bool   `json:"is_accepted"`
}

// Status looks the transfer up on the ledger. A 404 maps to NotFound; a
// known transaction that is not yet accepted maps to Pending.
func (c *RESTClient) Status(ctx context.Context, txID string) (Result, error) {
	url := fmt.Sprintf("%s/transactions/%s", c.BaseURL, txID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return NotFound, fmt.Errorf("failed to build transaction lookup: %w", err)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return NotFound, fmt.Errorf("ledger API unreachable: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// fall through to decode
	case http.StatusNotFound:
		return NotFound, nil
	default:
		return NotFound, fmt.Errorf("ledger API returned %s for transaction %s", resp.Status, txID)
	}

	var tx transactionResponse
	if err := json.NewDecoder(resp.Body).Decode(&tx); err != nil {
		return NotFound, fmt.Errorf("failed to decode transaction %s: %w", txID, err)
	}

	if tx.IsAccepted {
		return Accepted, nil
	}
	return Pending, nil
}
