// Package wallet defines the transfer gateway boundary: the one component
// allowed to move funds and read balances.
package wallet

import (
	"context"

	"github.com/streamkas/streamkas/pkg/models"
)

// Gateway defines the interface for the component that issues transfers and
// reports spendable funds.
type Gateway interface {
	// Send transfers amount sompi to toAddress and returns the ledger's
	// transfer identifier, normalized to a bare string. priorityFee of 0
	// means no priority.
	Send(ctx context.Context, toAddress string, amount int64, priorityFee int64) (string, error)

	// Balance returns the wallet's confirmed/unconfirmed/total funds.
	Balance(ctx context.Context) (models.Balance, error)

	// Address returns the connected account's own address.
	Address(ctx context.Context) (string, error)
}
