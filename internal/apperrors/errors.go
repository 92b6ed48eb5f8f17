package apperrors

import (
	"errors"
	"fmt"
)

// Sentinel errors for the ledger core. Handlers and tests match on these
// with errors.Is, so every rejected operation carries a stable cause.
var (
	// ErrNotFound indicates that a requested resource could not be found.
	ErrNotFound = errors.New("resource not found")

	// ErrValidation indicates that input data failed validation checks
	// before any storage was touched.
	ErrValidation = errors.New("validation error")

	// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
	ErrDuplicate = errors.New("resource already exists")

	// ErrForbidden indicates the actor is not allowed to act on the resource.
	ErrForbidden = errors.New("forbidden")

	// ErrConflict indicates an optimistic-version race on a holding.
	// It is retryable from a fresh read.
	ErrConflict = errors.New("version conflict")

	// ErrInsufficientFunds is a business rejection: the debit would take the
	// holding balance below zero.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrCurrencyMismatch indicates the two legs of a transfer hold
	// different currencies; there is no implicit conversion.
	ErrCurrencyMismatch = errors.New("currency mismatch")

	// ErrSelfTransfer indicates source and destination are the same holding.
	ErrSelfTransfer = errors.New("cannot transfer to the same holding")

	// ErrAlreadyDecided indicates a loan decision was attempted on a loan
	// that already left the PENDING state.
	ErrAlreadyDecided = errors.New("loan already decided")

	// ErrContention indicates all conflict retries were exhausted.
	ErrContention = errors.New("operation contended, retries exhausted")

	// ErrInvalidInvestmentType indicates an investment type outside the
	// closed enumeration.
	ErrInvalidInvestmentType = errors.New("invalid investment type")
)

// AppError wraps an underlying failure with an HTTP-ish code and a message.
// Code 500 entries represent storage faults: the surrounding transaction was
// rolled back in full and nothing was applied.
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

// NewAppError creates a new AppError with the given code, message and cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewStorageFault wraps a durability failure. Always fatal to the operation.
func NewStorageFault(message string, err error) *AppError {
	return &AppError{Code: 500, Message: message, Err: err}
}

// IsStorageFault reports whether err is a 5xx-class AppError.
func IsStorageFault(err error) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code >= 500
	}
	return false
}
