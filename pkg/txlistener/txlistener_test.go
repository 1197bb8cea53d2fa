package txlistener

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/stretchr/testify/assert"

	"github.com/credit-cooperative/credit-coop-sdk/internal/testrpc"
)

func newListener(t *testing.T, node *testrpc.Server) *TxListener {
	t.Helper()

	client, err := ethclient.Dial(node.URL())
	if err != nil {
		t.Fatal(err)
	}

	return NewTxListener(client,
		WithPollInterval(10*time.Millisecond),
		WithTimeout(500*time.Millisecond),
	)
}

func TestWaitForTransaction(t *testing.T) {

	txHash := common.HexToHash("0x" + strings.Repeat("ab", 32))

	t.Run("successful transaction", func(t *testing.T) {
		node := testrpc.New()
		defer node.Close()

		node.Handle("eth_getTransactionReceipt", func(params []json.RawMessage) (interface{}, *testrpc.RPCError) {
			return testrpc.Receipt(txHash.Hex(), "0x1", ""), nil
		})

		receipt, err := newListener(t, node).WaitForTransaction(txHash)
		assert.NoError(t, err)
		assert.True(t, receipt.Succeeded())
		assert.Equal(t, txHash, receipt.TxHash)
	})

	t.Run("keeps polling until mined", func(t *testing.T) {
		node := testrpc.New()
		defer node.Close()

		node.Handle("eth_getTransactionReceipt", func(params []json.RawMessage) (interface{}, *testrpc.RPCError) {
			if node.Calls("eth_getTransactionReceipt") < 3 {
				return nil, nil // not mined yet
			}
			return testrpc.Receipt(txHash.Hex(), "0x1", ""), nil
		})

		receipt, err := newListener(t, node).WaitForTransaction(txHash)
		assert.NoError(t, err)
		assert.True(t, receipt.Succeeded())
		assert.GreaterOrEqual(t, node.Calls("eth_getTransactionReceipt"), 3)
	})

	t.Run("reverted transaction carries reason", func(t *testing.T) {
		node := testrpc.New()
		defer node.Close()

		node.Handle("eth_getTransactionReceipt", func(params []json.RawMessage) (interface{}, *testrpc.RPCError) {
			return testrpc.Receipt(txHash.Hex(), "0x0", "Line: insufficient liquidity"), nil
		})

		receipt, err := newListener(t, node).WaitForTransaction(txHash)
		assert.True(t, errors.Is(err, ErrTransactionReverted))
		assert.Contains(t, err.Error(), "Line: insufficient liquidity")
		assert.False(t, receipt.Succeeded())
		assert.Equal(t, "Line: insufficient liquidity", receipt.RevertReason)
	})

	t.Run("never mined times out", func(t *testing.T) {
		node := testrpc.New()
		defer node.Close()

		node.Handle("eth_getTransactionReceipt", func(params []json.RawMessage) (interface{}, *testrpc.RPCError) {
			return nil, nil
		})

		_, err := newListener(t, node).WaitForTransaction(txHash)
		assert.True(t, errors.Is(err, ErrTimeout))
	})
}
