package testrpc

import (
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// Receipt builds an eth_getTransactionReceipt result object. revertReason
// is attached only when non-empty, mirroring nodes that expose it.
func Receipt(txHash string, status string, revertReason string) map[string]interface{} {
	receipt := map[string]interface{}{
		"blockHash":         "0x" + strings.Repeat("11", 32),
		"blockNumber":       "0x10",
		"contractAddress":   "",
		"cumulativeGasUsed": "0x5208",
		"effectiveGasPrice": "0x3b9aca00",
		"from":              "0x" + strings.Repeat("22", 20),
		"gasUsed":           "0x5208",
		"logs":              []interface{}{},
		"logsBloom":         "0x" + strings.Repeat("00", 256),
		"status":            status,
		"to":                "0x" + strings.Repeat("33", 20),
		"transactionHash":   txHash,
		"transactionIndex":  "0x0",
		"type":              "0x2",
	}
	if revertReason != "" {
		receipt["revertReason"] = revertReason
	}
	return receipt
}

// RevertData ABI-encodes an Error(string) revert payload the way nodes
// attach it to the data field of a reverted call's error.
func RevertData(reason string) string {
	strT, _ := abi.NewType("string", "", nil)
	enc, _ := abi.Arguments{{Type: strT}}.Pack(reason)
	return "0x08c379a0" + common.Bytes2Hex(enc)
}
