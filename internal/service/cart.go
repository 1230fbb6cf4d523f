package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/medikart/PharmacyGo/internal/domain"
	"github.com/medikart/PharmacyGo/internal/repository"
	apperrors "github.com/medikart/PharmacyGo/pkg/errors"
)

// AddItemInput holds the parameters for adding a medicine to the cart.
type AddItemInput struct {
	MedicineID string `json:"medicine_id" validate:"required,uuid"`
	Quantity   int    `json:"quantity" validate:"required,gte=1"`
}

// SetQuantityInput holds the parameters for setting a cart line quantity.
type SetQuantityInput struct {
	Quantity int `json:"quantity"`
}

// CheckoutInput carries the customer details attached to a checkout. Both
// fields pass through to the sale unvalidated.
type CheckoutInput struct {
	CustomerName  string `json:"customer_name"`
	CustomerPhone string `json:"customer_phone"`
}

// CartService implements the per-session cart. The cart is never
// authoritative for stock: every mutation re-checks the catalog, and checkout
// hands the snapshot to the sale processor.
type CartService struct {
	carts   repository.CartRepository
	catalog repository.MedicineRepository
	sales   *SaleService
	logger  *slog.Logger
}

// NewCartService creates a new cart service.
func NewCartService(carts repository.CartRepository, catalog repository.MedicineRepository, sales *SaleService, logger *slog.Logger) *CartService {
	return &CartService{
		carts:   carts,
		catalog: catalog,
		sales:   sales,
		logger:  logger,
	}
}

// Get retrieves the cart for a session. A session with no stored cart gets
// an empty one.
func (s *CartService) Get(ctx context.Context, sessionID string) (*domain.Cart, error) {
	if sessionID == "" {
		return nil, apperrors.InvalidInput("session id is required")
	}

	cart, err := s.carts.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return s.newEmptyCart(sessionID), nil
		}
		return nil, fmt.Errorf("get cart: %w", err)
	}

	return cart, nil
}

// AddItem adds a medicine to the session's cart, snapshotting name, brand,
// and price from the catalog. Adding a medicine already in the cart merges
// quantities; the merged quantity must not exceed current stock, otherwise
// the cart is left unchanged.
func (s *CartService) AddItem(ctx context.Context, sessionID string, input AddItemInput) (*domain.Cart, error) {
	if sessionID == "" {
		return nil, apperrors.InvalidInput("session id is required")
	}
	if input.MedicineID == "" {
		return nil, apperrors.InvalidInput("medicine id is required")
	}
	if input.Quantity < 1 {
		return nil, apperrors.InvalidInput("quantity must be at least 1")
	}

	medicine, err := s.catalog.GetByID(ctx, input.MedicineID)
	if err != nil {
		return nil, err
	}

	cart, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	requested := input.Quantity
	if i := cart.FindItemIndex(input.MedicineID); i >= 0 {
		requested += cart.Items[i].Quantity
	}
	if requested > medicine.Quantity {
		return nil, apperrors.StockExceeded(input.MedicineID, requested, medicine.Quantity)
	}

	if i := cart.FindItemIndex(input.MedicineID); i >= 0 {
		cart.Items[i].Quantity = requested
	} else {
		cart.Items = append(cart.Items, domain.CartItem{
			MedicineID: medicine.ID,
			Name:       medicine.Name,
			Brand:      medicine.Brand,
			PriceCents: medicine.PriceCents,
			Quantity:   input.Quantity,
		})
	}

	if err := s.save(ctx, cart); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "cart item added",
		slog.String("session_id", sessionID),
		slog.String("medicine_id", input.MedicineID),
		slog.Int("quantity", input.Quantity),
	)

	return cart, nil
}

// RemoveItem deletes a line from the cart. Removing a line that is not there
// is a no-op.
func (s *CartService) RemoveItem(ctx context.Context, sessionID, medicineID string) (*domain.Cart, error) {
	if sessionID == "" {
		return nil, apperrors.InvalidInput("session id is required")
	}

	cart, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	i := cart.FindItemIndex(medicineID)
	if i < 0 {
		return cart, nil
	}

	cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)
	if err := s.save(ctx, cart); err != nil {
		return nil, err
	}

	return cart, nil
}

// SetQuantity sets the quantity of a cart line. A quantity of zero or less
// removes the line; otherwise the new quantity must not exceed current stock.
func (s *CartService) SetQuantity(ctx context.Context, sessionID, medicineID string, quantity int) (*domain.Cart, error) {
	if sessionID == "" {
		return nil, apperrors.InvalidInput("session id is required")
	}

	if quantity <= 0 {
		return s.RemoveItem(ctx, sessionID, medicineID)
	}

	medicine, err := s.catalog.GetByID(ctx, medicineID)
	if err != nil {
		return nil, err
	}
	if quantity > medicine.Quantity {
		return nil, apperrors.StockExceeded(medicineID, quantity, medicine.Quantity)
	}

	cart, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	i := cart.FindItemIndex(medicineID)
	if i < 0 {
		return nil, apperrors.NotFound("cart item", medicineID)
	}
	cart.Items[i].Quantity = quantity

	if err := s.save(ctx, cart); err != nil {
		return nil, err
	}

	return cart, nil
}

// Clear removes the session's cart entirely.
func (s *CartService) Clear(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return apperrors.InvalidInput("session id is required")
	}
	if err := s.carts.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}

// Checkout snapshots the cart into a sale request, runs the sale processor,
// and clears the cart only after the sale succeeds. A failed sale leaves the
// cart as it was.
func (s *CartService) Checkout(ctx context.Context, sessionID string, input CheckoutInput) (*domain.SaleSummary, error) {
	if sessionID == "" {
		return nil, apperrors.InvalidInput("session id is required")
	}

	cart, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if cart.IsEmpty() {
		return nil, apperrors.EmptyCart(sessionID)
	}

	req := domain.SaleRequest{
		Lines:         make([]domain.SaleLine, len(cart.Items)),
		CustomerName:  input.CustomerName,
		CustomerPhone: input.CustomerPhone,
	}
	for i, item := range cart.Items {
		req.Lines[i] = domain.SaleLine{
			MedicineID: item.MedicineID,
			Quantity:   item.Quantity,
			PriceCents: item.PriceCents,
		}
	}

	summary, err := s.sales.Process(ctx, req)
	if err != nil {
		return nil, err
	}

	if err := s.carts.Delete(ctx, sessionID); err != nil {
		// The sale is committed; a stale cart is the lesser problem.
		s.logger.WarnContext(ctx, "failed to clear cart after checkout",
			slog.String("session_id", sessionID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "checkout completed",
		slog.String("session_id", sessionID),
		slog.String("sale_id", summary.SaleID),
	)

	return summary, nil
}

func (s *CartService) newEmptyCart(sessionID string) *domain.Cart {
	now := time.Now().UTC()
	return &domain.Cart{
		SessionID: sessionID,
		Items:     []domain.CartItem{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (s *CartService) save(ctx context.Context, cart *domain.Cart) error {
	cart.UpdatedAt = time.Now().UTC()
	if err := s.carts.Save(ctx, cart); err != nil {
		return fmt.Errorf("save cart: %w", err)
	}
	return nil
}
