package creditline

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// LineStatus is the lifecycle status reported by the line contract.
type LineStatus uint8

const (
	StatusUninitialized LineStatus = iota
	StatusActive
	StatusLiquidatable
	StatusRepaid
	StatusInsolvent
)

func (s LineStatus) String() string {
	switch s {
	case StatusUninitialized:
		return "UNINITIALIZED"
	case StatusActive:
		return "ACTIVE"
	case StatusLiquidatable:
		return "LIQUIDATABLE"
	case StatusRepaid:
		return "REPAID"
	case StatusInsolvent:
		return "INSOLVENT"
	default:
		return "UNKNOWN"
	}
}

// Position is a point-in-time view of a single credit tranche, decoded from
// the credits(id) tuple. It is never cached; every accessor re-fetches.
type Position struct {
	ID                 *big.Int
	Deposit            *big.Int
	Principal          *big.Int
	InterestAccrued    *big.Int
	InterestRepaid     *big.Int
	Decimals           uint8
	Token              common.Address
	IsOpen             bool
	IsRestricted       bool
	EarlyWithdrawalFee uint16
	Deadline           *big.Int
}

// Liquidity is the derived pair decoded from a single available(id) read.
type Liquidity struct {
	AvailableToBorrow *big.Int
	ClaimableInterest *big.Int
}

// FeeSchedule is the line's fee configuration in basis points.
type FeeSchedule struct {
	OriginationFee uint16
	ServicingFee   uint16
	SwapFee        uint16
}

// Counts is the position bookkeeping pair reported by counts().
type Counts struct {
	Total *big.Int
	Open  *big.Int
}
