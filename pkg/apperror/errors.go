package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes surfaced to callers of the ledger core.
const (
	CodeInvalidEntry        = "INVALID_ENTRY"
	CodeInvalidMerchant     = "INVALID_MERCHANT"
	CodeInvalidCustomer     = "INVALID_CUSTOMER"
	CodeInsufficientBalance = "INSUFFICIENT_BALANCE"
	CodeSameStoreBlocked    = "SAME_STORE_BLOCKED"
	CodeLimitExceeded       = "LIMIT_EXCEEDED"
	CodeActorNotFound       = "ACTOR_NOT_FOUND"
	CodeWalletNotFound      = "WALLET_NOT_FOUND"
	CodeWalletExists        = "WALLET_EXISTS"
	CodeRateLimited         = "RATE_LIMITED"
	CodeInternal            = "SYS_001"
)

// AppError is a structured error that maps to HTTP responses.
type AppError struct {
	Code       string `json:"error_code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"` // Wrapped internal error (not exposed to client)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError.
func New(code string, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// HasCode reports whether err carries an AppError with the given code anywhere in its chain.
func HasCode(err error, code string) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// CodeOf returns the AppError code in err's chain, or CodeInternal.
func CodeOf(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeInternal
}

// ---- Ledger validation ----

func ErrInvalidEntry(message string) *AppError {
	return New(CodeInvalidEntry, message, http.StatusBadRequest)
}

func ErrInvalidMerchant(message string) *AppError {
	return New(CodeInvalidMerchant, message, http.StatusBadRequest)
}

func ErrInvalidCustomer(message string) *AppError {
	return New(CodeInvalidCustomer, message, http.StatusBadRequest)
}

// ---- Business rules ----

func ErrInsufficientBalance() *AppError {
	return New(CodeInsufficientBalance, "Insufficient points balance", http.StatusPaymentRequired)
}

// ErrSameStoreBlocked carries the explanatory reason shown to the customer.
func ErrSameStoreBlocked(reason string) *AppError {
	return New(CodeSameStoreBlocked, reason, http.StatusForbidden)
}

func ErrLimitExceeded(message string) *AppError {
	return New(CodeLimitExceeded, message, http.StatusUnprocessableEntity)
}

// ---- Data integrity ----

func ErrActorNotFound() *AppError {
	return New(CodeActorNotFound, "Actor not found", http.StatusNotFound)
}

func ErrWalletNotFound() *AppError {
	return New(CodeWalletNotFound, "Wallet not found", http.StatusNotFound)
}

func ErrWalletExists() *AppError {
	return New(CodeWalletExists, "Wallet already exists for actor", http.StatusConflict)
}

// ---- Rate limiting ----

func ErrRateLimitExceeded() *AppError {
	return New(CodeRateLimited, "Rate limit exceeded", http.StatusTooManyRequests)
}

// ---- System & Infrastructure ----

func ErrDatabaseError(err error) *AppError {
	return Wrap(CodeInternal, "Internal database error", http.StatusInternalServerError, err)
}

// InternalError wraps an internal error as a SYS_001 error.
func InternalError(err error) *AppError {
	return Wrap(CodeInternal, "Internal server error", http.StatusInternalServerError, err)
}

// Validation returns an INVALID_ENTRY error for malformed request input.
func Validation(message string) *AppError {
	return ErrInvalidEntry(message)
}
