// Package creditline is a typed client for a deployed Secured Line of
// Credit contract. It translates domain calls into contract invocations,
// decodes raw result tuples into snapshot types and normalizes
// submission/confirmation semantics. All credit accounting lives in the
// contract; the client holds no mutable cross-call state and every read
// resolves against current remote state.
package creditline

import (
	"crypto/ecdsa"
	_ "embed"
	"errors"
	"fmt"
	"math/big"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/rs/zerolog"

	"github.com/credit-cooperative/credit-coop-sdk/config"
	"github.com/credit-cooperative/credit-coop-sdk/pkg/contractclient"
	"github.com/credit-cooperative/credit-coop-sdk/pkg/txlistener"
	"github.com/credit-cooperative/credit-coop-sdk/pkg/util"
)

//go:embed abi/SecuredLine.json
var securedLineABI []byte

// SecuredLine is bound to exactly one network, one signer and one deployed
// line contract. Instances are safe for concurrent read use; concurrent
// writes from the same signer share only the signing identity, and nonce
// ordering between them is the node's responsibility, not the client's.
type SecuredLine struct {
	network    *config.NetworkProfile
	privateKey *ecdsa.PrivateKey
	signerAddr common.Address
	cc         ContractClient
	tl         TxListener
	lg         zerolog.Logger
}

// Option is a functional option for configuring SecuredLine.
type Option func(*options)

type options struct {
	gasLimit     *big.Int
	listenerOpts []txlistener.Option
	logger       *zerolog.Logger
}

// WithDefaultGasLimit sets a fallback gas limit used when estimation fails.
func WithDefaultGasLimit(gasLimit *big.Int) Option {
	return func(o *options) {
		o.gasLimit = gasLimit
	}
}

// WithConfirmOptions overrides the receipt poll interval / timeout.
func WithConfirmOptions(opts ...txlistener.Option) Option {
	return func(o *options) {
		o.listenerOpts = append(o.listenerOpts, opts...)
	}
}

// WithLogger replaces the default logger.
func WithLogger(lg zerolog.Logger) Option {
	return func(o *options) {
		o.logger = &lg
	}
}

// New binds a line client to a network profile, signing key and deployed
// contract address. rpcURL overrides the profile's default endpoint when
// non-empty. Construction makes no network call beyond what the transport
// itself requires; connections are dialed lazily.
func New(network string, privateKeyHex string, contractAddr string, rpcURL string, opts ...Option) (*SecuredLine, error) {
	profile, err := config.Network(network)
	if err != nil {
		return nil, &ConfigurationError{Field: "network", Err: err}
	}

	privateKey, err := crypto.HexToECDSA(strings.TrimPrefix(privateKeyHex, "0x"))
	if err != nil {
		return nil, &ConfigurationError{Field: "key", Err: err}
	}
	publicKey, ok := privateKey.Public().(*ecdsa.PublicKey)
	if !ok {
		return nil, &ConfigurationError{Field: "key", Err: errors.New("cannot derive ECDSA public key")}
	}
	signerAddr := crypto.PubkeyToAddress(*publicKey)

	if !common.IsHexAddress(contractAddr) {
		return nil, &ConfigurationError{Field: "contract", Err: fmt.Errorf("malformed address %q", contractAddr)}
	}

	if rpcURL == "" {
		rpcURL = profile.RPCURL
	}
	client, err := ethclient.Dial(rpcURL)
	if err != nil {
		return nil, &ConfigurationError{Field: "rpc-url", Err: err}
	}

	abi, err := util.ParseABI(securedLineABI)
	if err != nil {
		return nil, fmt.Errorf("failed to parse line ABI: %w", err)
	}

	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	ccOpts := []contractclient.Option{contractclient.WithChainID(profile.ChainID)}
	if o.gasLimit != nil {
		ccOpts = append(ccOpts, contractclient.WithDefaultGasLimit(o.gasLimit))
	}

	lg := zerolog.New(os.Stdout).With().Str("Module", "SecuredLine").Str("Network", profile.Name).Timestamp().Logger()
	if o.logger != nil {
		lg = *o.logger
	}

	return &SecuredLine{
		network:    profile,
		privateKey: privateKey,
		signerAddr: signerAddr,
		cc:         contractclient.NewContractClient(client, common.HexToAddress(contractAddr), abi, ccOpts...),
		tl:         txlistener.NewTxListener(client, o.listenerOpts...),
		lg:         lg,
	}, nil
}

// NewFromConfig binds a line client from a loaded configuration file. The
// config's log level, when set, replaces the default logger level.
func NewFromConfig(conf *config.Config, opts ...Option) (*SecuredLine, error) {
	line, err := New(conf.Network, conf.Key, conf.Contract, conf.RPCURL, opts...)
	if err != nil {
		return nil, err
	}

	if conf.Log != "" {
		level, err := conf.LogLevel()
		if err != nil {
			return nil, &ConfigurationError{Field: "log", Err: err}
		}
		line.lg = line.lg.Level(level)
	}

	return line, nil
}

// Network returns the name of the network profile this client is bound to.
func (l *SecuredLine) Network() string {
	return l.network.Name
}

// SignerAddress returns the address derived from the bound signing key. It
// is the default recipient for draw-downs.
func (l *SecuredLine) SignerAddress() common.Address {
	return l.signerAddr
}

// ContractAddress returns the bound deployment address.
func (l *SecuredLine) ContractAddress() common.Address {
	return *l.cc.ContractAddress()
}

// Status reads the line's lifecycle status.
func (l *SecuredLine) Status() (LineStatus, error) {
	result, err := l.cc.Call(nil, "status")
	if err != nil {
		return StatusUninitialized, l.queryError("status", err)
	}

	return LineStatus(result[0].(uint8)), nil
}

// Fees reads the line's fee schedule.
func (l *SecuredLine) Fees() (*FeeSchedule, error) {
	result, err := l.cc.Call(nil, "fees")
	if err != nil {
		return nil, l.queryError("fees", err)
	}

	return &FeeSchedule{
		OriginationFee: result[0].(uint16),
		ServicingFee:   result[1].(uint16),
		SwapFee:        result[2].(uint16),
	}, nil
}

// Counts reads the total and open position counts.
func (l *SecuredLine) Counts() (*Counts, error) {
	result, err := l.cc.Call(nil, "counts")
	if err != nil {
		return nil, l.queryError("counts", err)
	}

	return &Counts{
		Total: result[0].(*big.Int),
		Open:  result[1].(*big.Int),
	}, nil
}

// Credit reads a point-in-time snapshot of one position. Validity of the
// id is decided remotely; an unknown id surfaces as the contract's own
// revert reason.
func (l *SecuredLine) Credit(id *big.Int) (*Position, error) {
	if err := util.ValidatePositionID(id); err != nil {
		return nil, l.queryError("credits", err)
	}

	result, err := l.cc.Call(nil, "credits", id)
	if err != nil {
		return nil, l.queryError("credits", err)
	}

	// Field order matches the credits(id) ABI outputs.
	return &Position{
		ID:                 id,
		Deposit:            result[0].(*big.Int),
		Principal:          result[1].(*big.Int),
		InterestAccrued:    result[2].(*big.Int),
		InterestRepaid:     result[3].(*big.Int),
		Decimals:           result[4].(uint8),
		Token:              result[5].(common.Address),
		IsOpen:             result[6].(bool),
		IsRestricted:       result[7].(bool),
		EarlyWithdrawalFee: result[8].(uint16),
		Deadline:           result[9].(*big.Int),
	}, nil
}

// Available reads the raw availability pair for a position: the amount
// still borrowable and the interest claimable by the lender.
func (l *SecuredLine) Available(id *big.Int) (*big.Int, *big.Int, error) {
	if err := util.ValidatePositionID(id); err != nil {
		return nil, nil, l.queryError("available", err)
	}

	result, err := l.cc.Call(nil, "available", id)
	if err != nil {
		return nil, nil, l.queryError("available", err)
	}

	return result[0].(*big.Int), result[1].(*big.Int), nil
}

// PositionLiquidity reads the liquidity snapshot for a position. It is
// backed by the same available(id) call as Available, so the two read
// paths cannot diverge for a given remote state.
func (l *SecuredLine) PositionLiquidity(id *big.Int) (*Liquidity, error) {
	availableToBorrow, claimableInterest, err := l.Available(id)
	if err != nil {
		return nil, err
	}

	return &Liquidity{
		AvailableToBorrow: availableToBorrow,
		ClaimableInterest: claimableInterest,
	}, nil
}

// Borrow draws down amount (in the token's smallest unit) against a
// position. A nil recipient defaults to the signer's own address. The call
// blocks until the transaction reaches definitive status and returns its
// hash only after the receipt reports success. A reverted execution is
// surfaced once as *WriteRejectedError and never resubmitted.
func (l *SecuredLine) Borrow(id *big.Int, amount *big.Int, to *common.Address) (common.Hash, error) {
	if err := util.ValidatePositionID(id); err != nil {
		return common.Hash{}, &SubmissionError{Op: "borrow", Err: err}
	}
	if err := util.ValidateAmount(amount); err != nil {
		return common.Hash{}, &SubmissionError{Op: "borrow", Err: err}
	}
	if to == nil {
		to = &l.signerAddr
	}

	return l.submit("borrow", id, amount, *to)
}

// DepositAndRepay repays amount of the line's outstanding debt, interest
// first. The repayment token must have been approved to the line contract
// beforehand.
func (l *SecuredLine) DepositAndRepay(amount *big.Int) (common.Hash, error) {
	if err := util.ValidateAmount(amount); err != nil {
		return common.Hash{}, &SubmissionError{Op: "depositAndRepay", Err: err}
	}

	return l.submit("depositAndRepay", amount)
}

// Withdraw pulls amount of deposit and/or earned interest out of a
// position. Only the position's lender may withdraw; the contract enforces
// this.
func (l *SecuredLine) Withdraw(id *big.Int, amount *big.Int) (common.Hash, error) {
	if err := util.ValidatePositionID(id); err != nil {
		return common.Hash{}, &SubmissionError{Op: "withdraw", Err: err}
	}
	if err := util.ValidateAmount(amount); err != nil {
		return common.Hash{}, &SubmissionError{Op: "withdraw", Err: err}
	}

	return l.submit("withdraw", id, amount)
}

// Close closes a fully repaid position.
func (l *SecuredLine) Close(id *big.Int) (common.Hash, error) {
	if err := util.ValidatePositionID(id); err != nil {
		return common.Hash{}, &SubmissionError{Op: "close", Err: err}
	}

	return l.submit("close", id)
}

// submit signs and dispatches one state-changing call, then blocks until
// the receipt is definitive. A revert at dispatch time (the node's gas
// estimation executes the call) or at mining time maps to
// *WriteRejectedError carrying the contract's reason verbatim. A
// confirmation timeout returns the transaction hash alongside a
// *ConfirmationTimeoutError so the caller can keep watching the
// submission, which cannot be withdrawn.
func (l *SecuredLine) submit(method string, args ...interface{}) (common.Hash, error) {
	txHash, err := l.cc.Send(&l.signerAddr, l.privateKey, method, args...)
	if err != nil {
		if reason, ok := contractclient.RevertReason(err); ok {
			return common.Hash{}, &WriteRejectedError{Op: method, Reason: reason, Err: err}
		}
		return common.Hash{}, &SubmissionError{Op: method, Err: err}
	}

	l.lg.Info().Str("method", method).Str("txHash", txHash.Hex()).Msg("Transaction submitted")

	receipt, err := l.tl.WaitForTransaction(txHash)
	if err != nil {
		if errors.Is(err, txlistener.ErrTransactionReverted) {
			rejected := &WriteRejectedError{Op: method, TxHash: txHash, Err: err}
			if receipt != nil {
				rejected.Reason = receipt.RevertReason
			}
			return common.Hash{}, rejected
		}
		if errors.Is(err, txlistener.ErrTimeout) {
			return txHash, &ConfirmationTimeoutError{Op: method, TxHash: txHash, Err: err}
		}
		return txHash, fmt.Errorf("%s confirmation: %w", method, err)
	}

	confirmed := l.lg.Info().Str("method", method).Str("txHash", txHash.Hex())
	if gasCost, gerr := util.ExtractGasCost(receipt); gerr == nil {
		confirmed = confirmed.Str("gasCostWei", gasCost.String())
	}
	confirmed.Msg("Transaction confirmed")

	if l.lg.GetLevel() <= zerolog.DebugLevel {
		if events, derr := l.cc.DecodeEvents(receipt); derr == nil {
			for _, ev := range events {
				l.lg.Debug().Str("event", ev.EventName).Interface("params", ev.Parameter).Msg("Contract event")
			}
		}
	}

	return txHash, nil
}

// queryError wraps a failed read, preserving the contract's revert reason
// when the node attached one.
func (l *SecuredLine) queryError(op string, err error) error {
	reason, _ := contractclient.RevertReason(err)
	return &RemoteQueryError{Op: op, Reason: reason, Err: err}
}
