package creditline

import (
	"crypto/ecdsa"

	"github.com/ethereum/go-ethereum/common"

	"github.com/credit-cooperative/credit-coop-sdk/pkg/types"
)

// ContractClient is the ABI-level client the line facade drives.
type ContractClient interface {
	// Call executes a read-only contract method (does not create a transaction)
	Call(from *common.Address, method string, args ...interface{}) ([]interface{}, error)

	// Send packs, signs and submits a state-changing transaction
	Send(from *common.Address, privateKey *ecdsa.PrivateKey, method string, args ...interface{}) (common.Hash, error)

	// DecodeEvents decodes this contract's events from a receipt
	DecodeEvents(receipt *types.TxReceipt) ([]*types.EventInfo, error)

	// ContractAddress returns the contract address this client is bound to
	ContractAddress() *common.Address
}

// TxListener blocks until a submitted transaction reaches definitive status.
type TxListener interface {
	WaitForTransaction(txHash common.Hash) (*types.TxReceipt, error)
}
