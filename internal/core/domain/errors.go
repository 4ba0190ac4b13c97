package domain

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by the core services is an *Error
// matching exactly one of them with errors.Is.
var (
	// ErrValidation is returned for bad caller input, never retried.
	ErrValidation = errors.New("validation error")
	// ErrInsufficientFunds is returned when no utxo set can fund the tx.
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrRetrieval is returned when the indexer, the token classifier or the
	// full node fail to answer.
	ErrRetrieval = errors.New("retrieval error")
	// ErrStaleUtxo is returned when every selection candidate turned out to
	// be already spent.
	ErrStaleUtxo = errors.New("stale utxo")
	// ErrProtocol is returned for token protocol violations like mixing
	// token classes or malformed token ids.
	ErrProtocol = errors.New("protocol error")
	// ErrBroadcast is returned when the network rejects a tx.
	ErrBroadcast = errors.New("broadcast error")
)

var (
	// ErrWalletNotFound ...
	ErrWalletNotFound = errors.New("wallet not found")
	// ErrWalletAlreadyExists ...
	ErrWalletAlreadyExists = errors.New("wallet already exists")
	// ErrNullWalletName ...
	ErrNullWalletName = errors.New("wallet name must not be null")
	// ErrInvalidWalletName ...
	ErrInvalidWalletName = errors.New(
		"wallet name must contain only letters, digits, '-' and '_'",
	)
	// ErrNullMnemonic ...
	ErrNullMnemonic = errors.New("mnemonic must not be null")
	// ErrInvalidNetwork ...
	ErrInvalidNetwork = fmt.Errorf(
		"network must be either '%s' or '%s'", MainNet, TestNet,
	)
)

// Stages of a wallet operation, used as stable message prefix.
const (
	StageRefresh   = "refresh"
	StageSelect    = "select"
	StageLedger    = "ledger"
	StageBuild     = "build"
	StageSign      = "sign"
	StageBroadcast = "broadcast"
	StageStore     = "store"
)

// Error is the error type of the wallet core. Kind is one of the kinds
// above, Stage the step of the operation that failed and Err the cause.
type Error struct {
	Kind  error
	Stage string
	Err   error
}

// NewError ...
func NewError(kind error, stage string, err error) *Error {
	return &Error{Kind: kind, Stage: stage, Err: err}
}

// Errorf returns an *Error whose cause is built from format and args.
func Errorf(kind error, stage, format string, args ...interface{}) *Error {
	return NewError(kind, stage, fmt.Errorf(format, args...))
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("[%s] %s", e.Stage, e.Kind)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Stage, e.Kind, e.Err)
}

// Is makes errors.Is match the error kind.
func (e *Error) Is(target error) bool {
	return target == e.Kind
}

func (e *Error) Unwrap() error {
	return e.Err
}
