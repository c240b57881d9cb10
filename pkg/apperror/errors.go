package apperror

import (
	"fmt"
	"net/http"
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

// ---- Wallet & Ledger Business Logic (WAL) ----

func ErrWalletNotFound() *AppError {
	return New("WAL_001", "Wallet not found", http.StatusNotFound)
}

func ErrInsufficientFunds() *AppError {
	return New("WAL_002", "Insufficient balance in wallet", http.StatusPaymentRequired)
}

func ErrUnknownCategory(category string) *AppError {
	return New("WAL_003", fmt.Sprintf("Unknown service category %q", category), http.StatusBadRequest)
}

func ErrConcurrentModification(err error) *AppError {
	return Wrap("WAL_004", "Wallet was modified concurrently, retry the request", http.StatusConflict, err)
}

func ErrInvalidAmountVector(reason string) *AppError {
	return New("WAL_005", fmt.Sprintf("Invalid amount vector: %s", reason), http.StatusBadRequest)
}

func ErrWalletNotActive() *AppError {
	return New("WAL_006", "Wallet is not active", http.StatusUnprocessableEntity)
}

// ---- Journal (LED) ----

// ErrJournalWriteFailed marks a payment whose balances committed but whose
// journal entries could not all be written. It never fails the payment; the
// engine emits it on the reconciliation log line and flags the result as
// journal-degraded.
func ErrJournalWriteFailed(err error) *AppError {
	return Wrap("LED_001", "Payment committed but journal write failed", http.StatusOK, err)
}

// ---- Provisioning & Transfers (PRV) ----

func ErrGatewayFailure(err error) *AppError {
	return Wrap("PRV_002", "Payment-rail gateway request failed", http.StatusBadGateway, err)
}

// ---- Request lifecycle (REQ) ----

func ErrCancelled() *AppError {
	return New("REQ_001", "Request cancelled before any mutation", http.StatusBadRequest)
}

func ErrDuplicateRequest() *AppError {
	return New("REQ_002", "Duplicate request for this idempotency key", http.StatusConflict)
}

// ---- System & Infrastructure (SYS) ----

// InternalError wraps an internal error as a SYS_001 error.
func InternalError(err error) *AppError {
	return Wrap("SYS_001", "Internal server error", http.StatusInternalServerError, err)
}

func ErrStorage(err error) *AppError {
	return Wrap("SYS_002", "Storage layer failure", http.StatusInternalServerError, err)
}

// Validation returns a generic request-validation error.
func Validation(message string) *AppError {
	return New("WAL_005", message, http.StatusBadRequest)
}
