package util

import (
	"fmt"
	"math/big"

	"github.com/credit-cooperative/credit-coop-sdk/pkg/types"
)

// ValidateAmount checks that a token amount intended for a state-changing
// call is present and strictly positive. Amounts are in the token's
// smallest indivisible unit; no scaling is applied here or anywhere else.
func ValidateAmount(amount *big.Int) error {
	if amount == nil {
		return fmt.Errorf("amount must not be nil")
	}
	if amount.Sign() <= 0 {
		return fmt.Errorf("amount must be > 0, got %s", amount.String())
	}

	return nil
}

// ValidatePositionID checks that a position reference is present and
// non-negative. Whether the position actually exists is decided remotely.
func ValidatePositionID(id *big.Int) error {
	if id == nil {
		return fmt.Errorf("position id must not be nil")
	}
	if id.Sign() < 0 {
		return fmt.Errorf("position id must be >= 0, got %s", id.String())
	}

	return nil
}

// ExtractGasCost extracts the gas cost in wei (GasUsed * EffectiveGasPrice)
// from a transaction receipt.
func ExtractGasCost(receipt *types.TxReceipt) (*big.Int, error) {
	if receipt == nil {
		return nil, fmt.Errorf("receipt is nil")
	}

	gasUsed := new(big.Int)
	if _, ok := gasUsed.SetString(receipt.GasUsed, 0); !ok {
		return nil, fmt.Errorf("failed to parse GasUsed: %s", receipt.GasUsed)
	}

	gasPrice := new(big.Int)
	if _, ok := gasPrice.SetString(receipt.EffectiveGasPrice, 0); !ok {
		return nil, fmt.Errorf("failed to parse EffectiveGasPrice: %s", receipt.EffectiveGasPrice)
	}

	return new(big.Int).Mul(gasUsed, gasPrice), nil
}
