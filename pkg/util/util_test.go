package util

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/credit-cooperative/credit-coop-sdk/pkg/types"
)

func TestParseABI(t *testing.T) {

	t.Run("valid ABI", func(t *testing.T) {
		data := []byte(`[{"type":"function","name":"available","stateMutability":"view",
			"inputs":[{"name":"id","type":"uint256"}],
			"outputs":[{"name":"","type":"uint256"},{"name":"","type":"uint256"}]}]`)

		parsed, err := ParseABI(data)
		assert.NoError(t, err)
		assert.Contains(t, parsed.Methods, "available")
		assert.Len(t, parsed.Methods["available"].Outputs, 2)
	})

	t.Run("malformed JSON", func(t *testing.T) {
		_, err := ParseABI([]byte(`{"not":"an abi"`))
		assert.Error(t, err)
	})
}

func TestValidateAmount(t *testing.T) {
	assert.NoError(t, ValidateAmount(big.NewInt(1)))
	assert.Error(t, ValidateAmount(nil))
	assert.Error(t, ValidateAmount(big.NewInt(0)))
	assert.Error(t, ValidateAmount(big.NewInt(-5)))
}

func TestValidatePositionID(t *testing.T) {
	assert.NoError(t, ValidatePositionID(big.NewInt(0)))
	assert.NoError(t, ValidatePositionID(big.NewInt(42)))
	assert.Error(t, ValidatePositionID(nil))
	assert.Error(t, ValidatePositionID(big.NewInt(-1)))
}

func TestExtractGasCost(t *testing.T) {

	t.Run("computes used * price", func(t *testing.T) {
		receipt := &types.TxReceipt{GasUsed: "0x5208", EffectiveGasPrice: "0x3b9aca00"}

		cost, err := ExtractGasCost(receipt)
		assert.NoError(t, err)
		// 21000 * 1 Gwei
		assert.Equal(t, "21000000000000", cost.String())
	})

	t.Run("nil receipt", func(t *testing.T) {
		_, err := ExtractGasCost(nil)
		assert.Error(t, err)
	})

	t.Run("unparsable fields", func(t *testing.T) {
		_, err := ExtractGasCost(&types.TxReceipt{GasUsed: "garbage", EffectiveGasPrice: "0x1"})
		assert.Error(t, err)
	})
}

func TestHex2Bytes(t *testing.T) {
	assert.Equal(t, []byte{0xab, 0xcd}, Hex2Bytes("0xabcd"))
	assert.Equal(t, []byte{0xab, 0xcd}, Hex2Bytes("abcd"))
}
