package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrInternal indicates an unexpected failure that should not leak details to callers.
var ErrInternal = errors.New("internal error")

// ErrUnauthorized indicates missing or invalid credentials.
var ErrUnauthorized = errors.New("unauthorized")

// Ledger errors. Every one of them aborts the whole money movement.
var (
	// ErrInvalidAmount: amount <= 0, more than two decimals, or above the per-movement ceiling.
	ErrInvalidAmount = fmt.Errorf("%w: invalid amount", ErrValidation)
	// ErrUnsupportedCurrency: a currency code outside the enumerated set.
	ErrUnsupportedCurrency = fmt.Errorf("%w: unsupported currency", ErrValidation)

	ErrAccountNotProvisioned  = errors.New("account not provisioned")
	ErrInsufficientFunds      = errors.New("insufficient funds")
	ErrRecipientNotFound      = errors.New("recipient not found")
	ErrSelfTransferNotAllowed = errors.New("cannot transfer to yourself")
	ErrConversionFailed       = errors.New("currency conversion failed")

	// ErrInvariantViolation signals a bug: an entity would have been built in an invalid state.
	ErrInvariantViolation = errors.New("ledger invariant violation")
)

// AppError carries an HTTP-ish status code alongside a wrapped cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError builds an AppError. err may be nil.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewValidationError wraps ErrValidation with a message.
func NewValidationError(message string) *AppError {
	return &AppError{Code: 400, Message: message, Err: ErrValidation}
}
