package types

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// TxReceipt mirrors the eth_getTransactionReceipt response, including the
// optional revertReason field some nodes attach to failed transactions.
type TxReceipt struct {
	BlockHash         common.Hash  `json:"blockHash"`
	BlockNumber       string       `json:"blockNumber"`
	ContractAddress   string       `json:"contractAddress"`
	CumulativeGasUsed string       `json:"cumulativeGasUsed"`
	EffectiveGasPrice string       `json:"effectiveGasPrice"`
	From              string       `json:"from"`
	GasUsed           string       `json:"gasUsed"`
	Logs              []*types.Log `json:"logs"`
	Bloom             types.Bloom  `json:"logsBloom"`
	RevertReason      string       `json:"revertReason"`
	Status            string       `json:"status"`
	To                string       `json:"to"`
	TxHash            common.Hash  `json:"transactionHash" gencodec:"required"`
	TransactionIndex  string       `json:"transactionIndex"`
	Type              string       `json:"type"`
}

// Succeeded reports whether the receipt marks the transaction as executed
// without revert.
func (r *TxReceipt) Succeeded() bool {
	return r.Status == "0x1"
}

// EventInfo is a contract event decoded from a receipt log.
type EventInfo struct {
	Address   common.Address         `json:"address"`
	EventName string                 `json:"event"`
	Index     uint                   `json:"index"`
	Parameter map[string]interface{} `json:"parameter"`
}
