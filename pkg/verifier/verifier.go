// Package verifier reconciles issued transfers against the ledger.
package verifier

import "context"

// Result is the ledger's view of one transfer.
type Result string

const (
	Accepted Result = "accepted"
	Pending  Result = "pending"
	NotFound Result = "not_found"
)

// Service defines the interface for checking whether a transfer landed
// on the ledger.
type Service interface {
	// Status reports the ledger's view of the transfer with the given id.
	// NotFound is a valid answer, not an error: freshly issued transfers
	// routinely take a few polls to appear.
	Status(ctx context.Context, txID string) (Result, error)
}
