// Package contractclient is a thin ABI-level client for a single deployed
// contract: it packs typed arguments, issues eth_call queries, and builds,
// signs and submits EIP-1559 transactions. Argument or result shapes that
// do not match the bound interface description fail at pack/unpack time and
// are never silently coerced.
package contractclient

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"

	contracttypes "github.com/credit-cooperative/credit-coop-sdk/pkg/types"
)

type ContractClient struct {
	contractAddress common.Address
	abi             *abi.ABI
	client          *ethclient.Client
	chainId         *big.Int
	defaultGasLimit *big.Int
}

// Option is a functional option for configuring ContractClient
type Option func(*ContractClient)

// WithDefaultGasLimit sets the gas limit used when estimation fails.
func WithDefaultGasLimit(gasLimit *big.Int) Option {
	return func(cc *ContractClient) {
		cc.defaultGasLimit = gasLimit
	}
}

// WithChainID pins the chain id instead of querying the node for it.
func WithChainID(chainId *big.Int) Option {
	return func(cc *ContractClient) {
		cc.chainId = chainId
	}
}

func NewContractClient(client *ethclient.Client, contractAddress common.Address, abi *abi.ABI, opts ...Option) *ContractClient {
	cc := &ContractClient{
		contractAddress: contractAddress,
		abi:             abi,
		client:          client,
	}

	for _, opt := range opts {
		opt(cc)
	}

	return cc
}

// Call executes a read-only contract method against current remote state
// and returns the unpacked result tuple. It has no side effect and is safe
// to issue concurrently; each call carries its own buffers.
func (cm *ContractClient) Call(from *common.Address, method string, args ...interface{}) ([]interface{}, error) {
	if from == nil {
		from = &common.Address{}
	}
	packed, err := cm.abi.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("%s call: abi pack error: %w", method, err)
	}

	raw, err := cm.client.CallContract(context.Background(), ethereum.CallMsg{
		From: *from,
		To:   &cm.contractAddress,
		Data: packed,
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("%s call: %w", method, err)
	}

	rtn, err := cm.abi.Unpack(method, raw)
	if err != nil {
		return nil, fmt.Errorf("%s call: abi unpack error: %w", method, err)
	}

	return rtn, nil
}

// Send packs, signs and submits a state-changing transaction and returns
// its hash. It does not wait for the transaction to be mined; pair it with
// a txlistener for confirmation. A failed submission is surfaced once and
// never resubmitted here.
func (cm *ContractClient) Send(from *common.Address, privateKey *ecdsa.PrivateKey, method string, args ...interface{}) (common.Hash, error) {
	if from == nil {
		from = &common.Address{}
	}
	packed, err := cm.abi.Pack(method, args...)
	if err != nil {
		return common.Hash{}, fmt.Errorf("%s send: abi pack error: %w", method, err)
	}

	chainId, err := cm.resolveChainID()
	if err != nil {
		return common.Hash{}, fmt.Errorf("%s send: chain id error: %w", method, err)
	}

	nonce, err := cm.client.PendingNonceAt(context.Background(), *from)
	if err != nil {
		return common.Hash{}, fmt.Errorf("%s send: pending nonce error: %w", method, err)
	}

	gasPrice, err := cm.client.SuggestGasPrice(context.Background())
	if err != nil {
		return common.Hash{}, fmt.Errorf("%s send: suggest gas price error: %w", method, err)
	}

	gasLimit, err := cm.client.EstimateGas(context.Background(), ethereum.CallMsg{
		From: *from,
		To:   &cm.contractAddress,
		Data: packed,
	})
	if err != nil {
		if cm.defaultGasLimit == nil {
			return common.Hash{}, fmt.Errorf("%s send: estimate gas error: %w", method, err)
		}
		gasLimit = cm.defaultGasLimit.Uint64()
	}

	// EIP-1559: base fee is burned, the tip goes to the validator.
	gasTipCap := big.NewInt(1500000000)                             // 1.5 Gwei
	gasFeeCap := new(big.Int).Add(gasPrice, big.NewInt(2000000000)) // base fee + 2 Gwei

	tx := types.NewTx(&types.DynamicFeeTx{
		ChainID:   chainId,
		Nonce:     nonce,
		GasTipCap: gasTipCap,
		GasFeeCap: gasFeeCap,
		Gas:       gasLimit,
		To:        &cm.contractAddress,
		Data:      packed,
	})

	signedTx, err := types.SignTx(tx, types.LatestSignerForChainID(chainId), privateKey)
	if err != nil {
		return common.Hash{}, fmt.Errorf("%s send: sign error: %w", method, err)
	}

	err = cm.client.SendTransaction(context.Background(), signedTx)
	if err != nil {
		return common.Hash{}, fmt.Errorf("%s send: %w", method, err)
	}

	return signedTx.Hash(), nil
}

// resolveChainID returns the pinned chain id or queries the node once and
// caches the answer for subsequent sends.
func (cm *ContractClient) resolveChainID() (*big.Int, error) {
	if cm.chainId != nil {
		return cm.chainId, nil
	}

	chainId, err := cm.client.ChainID(context.Background())
	if err != nil {
		return nil, err
	}
	cm.chainId = chainId

	return chainId, nil
}

// DecodeEvents decodes the receipt logs emitted by this contract into
// EventInfo values. Logs emitted by other contracts in the same
// transaction are skipped.
func (cm *ContractClient) DecodeEvents(receipt *contracttypes.TxReceipt) ([]*contracttypes.EventInfo, error) {
	events := make([]*contracttypes.EventInfo, 0, len(receipt.Logs))
	for _, log := range receipt.Logs {
		if log.Address != cm.contractAddress || len(log.Topics) == 0 {
			continue
		}

		var abiEvent *abi.Event
		for _, event := range cm.abi.Events {
			if event.ID == log.Topics[0] {
				abiEvent = &event
				break
			}
		}
		if abiEvent == nil {
			continue
		}

		paramMap := make(map[string]interface{})
		if err := abiEvent.Inputs.UnpackIntoMap(paramMap, log.Data); err != nil {
			return nil, fmt.Errorf("decode %s event data: %w", abiEvent.Name, err)
		}

		indexed := make([]abi.Argument, 0, len(log.Topics)-1)
		for _, input := range abiEvent.Inputs {
			if input.Indexed && len(indexed) < len(log.Topics)-1 {
				indexed = append(indexed, input)
			}
		}
		if err := abi.ParseTopicsIntoMap(paramMap, indexed, log.Topics[1:]); err != nil {
			return nil, fmt.Errorf("decode %s event topics: %w", abiEvent.Name, err)
		}

		events = append(events, &contracttypes.EventInfo{
			Address:   log.Address,
			EventName: abiEvent.Name,
			Index:     log.Index,
			Parameter: paramMap,
		})
	}

	return events, nil
}

func (cm *ContractClient) ContractAddress() *common.Address {
	return &cm.contractAddress
}
