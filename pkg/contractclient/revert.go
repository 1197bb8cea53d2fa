package contractclient

import (
	"errors"

	"github.com/ethereum/go-ethereum/accounts/abi"

	"github.com/credit-cooperative/credit-coop-sdk/pkg/util"
)

// dataError is the interface geth RPC errors implement when the node
// attaches a data payload, e.g. the ABI-encoded revert output of an
// eth_call or eth_estimateGas that reverted.
type dataError interface {
	Error() string
	ErrorData() interface{}
}

// RevertReason extracts the Error(string) revert reason from an RPC error,
// if the node attached one. The second return is false when the error
// carries no decodable reason.
func RevertReason(err error) (string, bool) {
	if err == nil {
		return "", false
	}

	var de dataError
	if !errors.As(err, &de) {
		return "", false
	}

	hexData, ok := de.ErrorData().(string)
	if !ok {
		return "", false
	}

	reason, uerr := abi.UnpackRevert(util.Hex2Bytes(hexData))
	if uerr != nil {
		return "", false
	}

	return reason, true
}
