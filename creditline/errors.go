package creditline

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// ConfigurationError reports invalid construction input: an unknown network
// name, a malformed private key or contract address. It is surfaced
// immediately and never retried.
type ConfigurationError struct {
	Field string
	Err   error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration: %s: %v", e.Field, e.Err)
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// SubmissionError reports that a write request could not even be dispatched
// to the remote network: a pack, signing, nonce, gas or connectivity
// failure before the contract processed anything. Dispatch is single
// attempt; resubmitting a financial state change could duplicate its
// economic effect, so retry policy is left to the caller.
type SubmissionError struct {
	Op  string
	Err error
}

func (e *SubmissionError) Error() string {
	return fmt.Sprintf("%s: submission failed: %v", e.Op, e.Err)
}

func (e *SubmissionError) Unwrap() error { return e.Err }

// WriteRejectedError reports that the contract executed and reverted a
// state-changing request. Reason carries the remote-supplied revert reason
// verbatim when the node provides one; callers key business decisions off
// that text. Never retried automatically.
type WriteRejectedError struct {
	Op     string
	TxHash common.Hash
	Reason string
	Err    error
}

func (e *WriteRejectedError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s: rejected by contract: %s", e.Op, e.Reason)
	}
	return fmt.Sprintf("%s: rejected by contract: %v", e.Op, e.Err)
}

func (e *WriteRejectedError) Unwrap() error { return e.Err }

// ConfirmationTimeoutError reports that a write was dispatched but no
// receipt appeared within the confirmation timeout. The submission cannot
// be withdrawn; TxHash lets the caller keep watching it.
type ConfirmationTimeoutError struct {
	Op     string
	TxHash common.Hash
	Err    error
}

func (e *ConfirmationTimeoutError) Error() string {
	return fmt.Sprintf("%s: transaction %s not confirmed: %v", e.Op, e.TxHash.Hex(), e.Err)
}

func (e *ConfirmationTimeoutError) Unwrap() error { return e.Err }

// RemoteQueryError reports that a read-only call failed, either at the
// transport level or because the contract reverted its evaluation. Reads
// are side-effect free and safe for the caller to retry; the SDK itself is
// single attempt.
type RemoteQueryError struct {
	Op     string
	Reason string
	Err    error
}

func (e *RemoteQueryError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s: query failed: %s", e.Op, e.Reason)
	}
	return fmt.Sprintf("%s: query failed: %v", e.Op, e.Err)
}

func (e *RemoteQueryError) Unwrap() error { return e.Err }
