package util

import (
	"bytes"
	"fmt"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// ParseABI parses a plain ABI JSON document (the bare array form) into a
// bound interface description.
func ParseABI(data []byte) (*abi.ABI, error) {
	parsed, err := abi.JSON(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse ABI: %w", err)
	}

	return &parsed, nil
}
