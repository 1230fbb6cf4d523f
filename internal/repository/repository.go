package repository

import (
	"context"

	"github.com/medikart/PharmacyGo/internal/domain"
)

// MedicineRepository defines the interface for catalog persistence operations.
type MedicineRepository interface {
	// List returns the whole catalog, newest first.
	List(ctx context.Context) ([]domain.Medicine, error)

	// GetByID retrieves a medicine by its unique identifier.
	GetByID(ctx context.Context, id string) (*domain.Medicine, error)

	// Create inserts a new medicine and returns the stored row.
	Create(ctx context.Context, medicine *domain.Medicine) (*domain.Medicine, error)

	// Replace overwrites every mutable field of an existing medicine.
	// Fields absent from the input are cleared, not preserved.
	Replace(ctx context.Context, medicine *domain.Medicine) (*domain.Medicine, error)

	// Delete removes a medicine by ID.
	Delete(ctx context.Context, id string) error

	// DecrementIfSufficient atomically decrements stock by qty when at least
	// qty units are on hand, returning the remaining quantity. It returns
	// ErrNotFound for an unknown ID and an insufficient-stock error when the
	// guard fails; stock is never driven negative.
	DecrementIfSufficient(ctx context.Context, id string, qty int) (remaining int, err error)

	// DecrementAllIfSufficient applies DecrementIfSufficient to every line
	// inside a single transaction. Any failure rolls the whole batch back.
	DecrementAllIfSufficient(ctx context.Context, lines []domain.SaleLine) ([]domain.SaleResultLine, error)
}

// CartRepository defines the interface for cart persistence operations.
type CartRepository interface {
	// Get retrieves a cart by its session ID.
	Get(ctx context.Context, sessionID string) (*domain.Cart, error)

	// Save persists a cart, overwriting any existing cart for the session.
	Save(ctx context.Context, cart *domain.Cart) error

	// Delete removes a cart by session ID.
	Delete(ctx context.Context, sessionID string) error
}
