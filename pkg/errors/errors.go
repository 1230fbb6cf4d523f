package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Standard sentinel errors for common cases.
var (
	ErrNotFound          = errors.New("resource not found")
	ErrAlreadyExists     = errors.New("resource already exists")
	ErrInvalidInput      = errors.New("invalid input")
	ErrInternal          = errors.New("internal error")
	ErrConflict          = errors.New("conflict")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrStockExceeded     = errors.New("stock exceeded")
	ErrEmptyCart         = errors.New("cart is empty")
	ErrStoreWrite        = errors.New("store write failure")
)

// AppError represents a structured application error with HTTP status mapping.
type AppError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"-"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NotFound creates a 404 error.
func NotFound(resource, id string) *AppError {
	return &AppError{
		Code:    "NOT_FOUND",
		Message: fmt.Sprintf("%s with id %s not found", resource, id),
		Status:  http.StatusNotFound,
		Err:     ErrNotFound,
	}
}

// InvalidInput creates a 400 error.
func InvalidInput(message string) *AppError {
	return &AppError{
		Code:    "INVALID_INPUT",
		Message: message,
		Status:  http.StatusBadRequest,
		Err:     ErrInvalidInput,
	}
}

// Conflict creates a 409 error.
func Conflict(message string) *AppError {
	return &AppError{
		Code:    "CONFLICT",
		Message: message,
		Status:  http.StatusConflict,
		Err:     ErrConflict,
	}
}

// Internal creates a 500 error.
func Internal(err error) *AppError {
	return &AppError{
		Code:    "INTERNAL_ERROR",
		Message: "an internal error occurred",
		Status:  http.StatusInternalServerError,
		Err:     err,
	}
}

// InsufficientStock creates a 422 error for a sale line that exceeds current stock.
func InsufficientStock(medicineID string, requested, available int) *AppError {
	return &AppError{
		Code:    "INSUFFICIENT_STOCK",
		Message: fmt.Sprintf("medicine %s: requested %d, available %d", medicineID, requested, available),
		Status:  http.StatusUnprocessableEntity,
		Err:     ErrInsufficientStock,
	}
}

// StockExceeded creates a 409 error for a cart mutation that exceeds current stock.
func StockExceeded(medicineID string, requested, available int) *AppError {
	return &AppError{
		Code:    "STOCK_EXCEEDED",
		Message: fmt.Sprintf("medicine %s: cart quantity %d exceeds available stock %d", medicineID, requested, available),
		Status:  http.StatusConflict,
		Err:     ErrStockExceeded,
	}
}

// EmptyCart creates a 400 error for a checkout against an empty cart.
func EmptyCart(sessionID string) *AppError {
	return &AppError{
		Code:    "EMPTY_CART",
		Message: fmt.Sprintf("cart for session %s is empty", sessionID),
		Status:  http.StatusBadRequest,
		Err:     ErrEmptyCart,
	}
}

// StoreWrite creates a 502 error for a persistence write rejected by the store.
// Kept distinct from validation errors so callers can tell an unhealthy store
// apart from bad input, even if a UI collapses both into one notice.
func StoreWrite(err error) *AppError {
	return &AppError{
		Code:    "STORE_WRITE_FAILURE",
		Message: "the underlying store rejected the write",
		Status:  http.StatusBadGateway,
		Err:     fmt.Errorf("%w: %w", ErrStoreWrite, err),
	}
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) error {
	return fmt.Errorf("%s: %w", message, err)
}

// HTTPStatus returns the HTTP status code for the given error.
func HTTPStatus(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Status
	}

	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrAlreadyExists), errors.Is(err, ErrConflict), errors.Is(err, ErrStockExceeded):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrEmptyCart):
		return http.StatusBadRequest
	case errors.Is(err, ErrInsufficientStock):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrStoreWrite):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
