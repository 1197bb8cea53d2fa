// Package txlistener waits for submitted transactions to reach a definitive
// status. A transaction is considered complete only once the node reports a
// receipt; a reverted receipt is surfaced as an error carrying the revert
// reason when the node supplies one, never as a successful result.
package txlistener

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"

	contracttypes "github.com/credit-cooperative/credit-coop-sdk/pkg/types"
)

var (
	// ErrTimeout is returned when the transaction is not mined within the timeout period
	ErrTimeout = errors.New("transaction receipt timeout")

	// ErrTransactionReverted is returned when the mined transaction has status 0 (reverted)
	ErrTransactionReverted = errors.New("transaction reverted")
)

// TxListener waits for transactions to be mined on the blockchain
type TxListener struct {
	client       *ethclient.Client
	PollInterval time.Duration
	Timeout      time.Duration
}

// Option is a functional option for configuring TxListener
type Option func(*TxListener)

// WithPollInterval sets the polling interval for checking transaction receipts
func WithPollInterval(interval time.Duration) Option {
	return func(tl *TxListener) {
		tl.PollInterval = interval
	}
}

// WithTimeout sets the maximum time to wait for transaction confirmation
func WithTimeout(timeout time.Duration) Option {
	return func(tl *TxListener) {
		tl.Timeout = timeout
	}
}

// NewTxListener creates a new transaction listener with the given client and options
// Default configuration: 2s poll interval, 5min timeout
func NewTxListener(client *ethclient.Client, opts ...Option) *TxListener {
	tl := &TxListener{
		client:       client,
		PollInterval: 2 * time.Second,
		Timeout:      5 * time.Minute,
	}

	for _, opt := range opts {
		opt(tl)
	}
	return tl
}

// WaitForTransaction waits for a transaction to be mined and returns its
// receipt. A receipt with reverted status is returned alongside an
// ErrTransactionReverted error that includes the node-supplied revert
// reason when available.
func (tl *TxListener) WaitForTransaction(txHash common.Hash) (*contracttypes.TxReceipt, error) {
	ctx, cancel := context.WithTimeout(context.Background(), tl.Timeout)
	defer cancel()

	ticker := time.NewTicker(tl.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: transaction %s not mined within %v", ErrTimeout, txHash.Hex(), tl.Timeout)

		case <-ticker.C:
			receipt, err := tl.getReceipt(txHash)
			if err != nil {
				// Receipt not found yet, keep polling.
				if errors.Is(err, ethereum.NotFound) {
					continue
				}
				return nil, fmt.Errorf("failed to get receipt for transaction %s: %w", txHash.Hex(), err)
			}

			if !receipt.Succeeded() {
				if receipt.RevertReason != "" {
					return receipt, fmt.Errorf("%w: transaction %s: %s", ErrTransactionReverted, txHash.Hex(), receipt.RevertReason)
				}
				return receipt, fmt.Errorf("%w: transaction %s status is 0x0", ErrTransactionReverted, txHash.Hex())
			}

			return receipt, nil
		}
	}
}

// getReceipt retrieves the transaction receipt from the blockchain
func (tl *TxListener) getReceipt(txHash common.Hash) (*contracttypes.TxReceipt, error) {
	var receipt *contracttypes.TxReceipt

	err := tl.client.Client().CallContext(context.Background(), &receipt, "eth_getTransactionReceipt", txHash)
	if err == nil && receipt == nil {
		return nil, ethereum.NotFound
	}

	return receipt, err
}
