package types

import (
	"errors"
	"fmt"
	"math/big"
)

// Process exit codes. These are scraped by user scripts and must not
// change.
const (
	ExitOK          = 0
	ExitUsage       = 99
	ExitDeclined    = 100
	ExitRuntimeFail = 200
)

// ErrUserDeclined is returned when the user answers "n" at a
// confirmation prompt. It is a soft termination, not a failure.
var ErrUserDeclined = errors.New("user declined")

// ErrNotImplemented marks a path that must fail explicitly rather than
// degrade silently.
var ErrNotImplemented = errors.New("not implemented")

// ConfigError is a fatal configuration problem detected before any
// network call.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid configuration: %s: %s", e.Field, e.Reason)
}

// InsufficientBalanceError reports that the trading account cannot fund
// the order.
type InsufficientBalanceError struct {
	Token    string
	Required *big.Int
	Actual   *big.Int
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient balance of %s: need %s, have %s", e.Token, e.Required, e.Actual)
}

// APIError is a non-2xx response from the order book or the Safe
// transaction service.
type APIError struct {
	Service string
	Status  int
	Body    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s API error (status %d): %s", e.Service, e.Status, e.Body)
}

// StuckTransactionError reports a broadcast transaction that did not
// reach the requested confirmation depth within the wait deadline. The
// transaction may still mine later; re-running is safe because the
// planner re-checks on-chain state.
type StuckTransactionError struct {
	TxHash string
}

func (e *StuckTransactionError) Error() string {
	return fmt.Sprintf("transaction %s not confirmed before deadline", e.TxHash)
}

// ExitCode maps an error from the submission flow to the process exit
// code contract.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, ErrUserDeclined):
		return ExitDeclined
	default:
		return ExitRuntimeFail
	}
}
