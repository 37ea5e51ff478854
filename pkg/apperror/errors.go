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

// ---- Ledger & Balance Integrity (LED) ----

func ErrInsufficientFunds() *AppError {
	return New("LED_001", "Insufficient available funds", http.StatusPaymentRequired)
}

func ErrInvalidAmount() *AppError {
	return New("LED_002", "Amount must be a positive integer in minor units", http.StatusBadRequest)
}

func ErrDuplicateCausation() *AppError {
	return New("LED_003", "Causation ID has already been processed", http.StatusConflict)
}

func ErrNotFound(entity string) *AppError {
	return New("LED_004", fmt.Sprintf("%s not found", entity), http.StatusNotFound)
}

func ErrCurrencyMismatch() *AppError {
	return New("LED_005", "Currency does not match wallet currency", http.StatusBadRequest)
}

// ---- Milestone & Onboarding Transitions (MIL) ----

func ErrForbiddenTransition(detail string) *AppError {
	return New("MIL_001", fmt.Sprintf("Transition not allowed: %s", detail), http.StatusForbidden)
}

// ---- Payout Gating (PAYOUT) ----

// ErrPayoutNotReady signals the receiving creator has not completed payout
// onboarding. Callers record a deferred state instead of failing the
// financial effect.
func ErrPayoutNotReady() *AppError {
	return New("PAYOUT_001", "Creator payout onboarding is not approved", http.StatusConflict)
}

// ---- Payout Gateway (GWY) ----

func ErrGatewayUnavailable(err error) *AppError {
	return Wrap("GWY_001", "Payout provider is unavailable", http.StatusBadGateway, err)
}

func ErrInvalidSignature() *AppError {
	return New("GWY_002", "Invalid webhook signature", http.StatusUnauthorized)
}

// ---- Reconciliation (REC) ----

func ErrStalledNeedsOperator(subjectID string) *AppError {
	return New("REC_001", fmt.Sprintf("Reconciliation stalled for %s, operator action required", subjectID), http.StatusInternalServerError)
}

// ---- System & Infrastructure (SYS) ----

func ErrRateLimitExceeded() *AppError {
	return New("SYS_002", "Rate limit exceeded", http.StatusTooManyRequests)
}

func ErrDatabaseError(err error) *AppError {
	return Wrap("SYS_001", "Internal database error", http.StatusInternalServerError, err)
}

// InternalError wraps an internal error as a SYS_001 error.
func InternalError(err error) *AppError {
	return Wrap("SYS_001", "Internal server error", http.StatusInternalServerError, err)
}

// Validation returns a VAL_001 validation error with a caller-supplied message.
func Validation(message string) *AppError {
	return New("VAL_001", message, http.StatusBadRequest)
}
