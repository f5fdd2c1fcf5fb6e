// Package ledgererrors collects the sentinel errors returned by every
// ledger-core contract, grouped by the component that raises them, in
// the style used by the rest of the module: plain package-level
// errors.New values wrapped with fmt.Errorf at the call site so callers
// can still errors.Is against the sentinel.
package ledgererrors

import "errors"

// Transaction validation errors.
var (
	ErrBadSignature           = errors.New("transaction signature does not verify against sender key")
	ErrNonPositiveAmount      = errors.New("transaction amount must be greater than zero")
	ErrNegativeFee            = errors.New("transaction fee cannot be negative")
	ErrSelfTransferDisallowed = errors.New("sender and recipient must differ unless the transaction is a universal dividend")
)

// Block validation errors.
var (
	ErrWrongPreviousHash        = errors.New("block previous hash does not match the prior block")
	ErrWrongHeight              = errors.New("block height does not follow the prior block")
	ErrMerkleMismatch           = errors.New("block merkle root does not match its transactions")
	ErrInvalidQuorum            = errors.New("block does not carry enough validator signatures for quorum")
	ErrInvalidValidatorSignature = errors.New("a validator signature on the block does not verify")
	ErrDuplicateValidatorSignature = errors.New("validator signature already present for this key")
	ErrInvalidTransactionInBlock = errors.New("block contains an individually invalid transaction")
)

// Ledger apply errors.
var (
	ErrInsufficientBalance = errors.New("sender balance does not cover amount plus fee")
	ErrGenesisAlreadyExists = errors.New("genesis block already created")
	ErrNoPreviousBlock      = errors.New("no previous block to build from")
)

// Mempool errors.
var (
	ErrInvalidTransaction = errors.New("transaction failed validity checks")
	ErrAlreadyExists      = errors.New("transaction already present in mempool")
)

// Bridge errors.
var (
	ErrInsufficientReserves = errors.New("trade would exhaust pool reserves")
	ErrAmountTooSmall       = errors.New("trade amount must be greater than zero")
)

// Rate limit errors.
var (
	ErrDailyLimitExceeded   = errors.New("daily volume limit exceeded")
	ErrMonthlyLimitExceeded = errors.New("monthly volume limit exceeded")
)

// Merkle / proof errors.
var (
	ErrLeafIndexOutOfRange = errors.New("leaf index out of range for proof generation")
)
