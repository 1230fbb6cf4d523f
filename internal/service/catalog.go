package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/medikart/PharmacyGo/internal/domain"
	"github.com/medikart/PharmacyGo/internal/event"
	"github.com/medikart/PharmacyGo/internal/repository"
	apperrors "github.com/medikart/PharmacyGo/pkg/errors"
)

// MedicineInput holds the fields a client may set on a medicine. It is used
// for both create and replace; on replace, absent fields clear the stored
// values rather than preserving them.
type MedicineInput struct {
	Name       string `json:"name" validate:"required,min=1,max=200"`
	Brand      string `json:"brand" validate:"max=200"`
	Category   string `json:"category" validate:"max=100"`
	Quantity   int    `json:"quantity" validate:"gte=0"`
	PriceCents int64  `json:"price_cents" validate:"gte=0"`
	ExpiryDate string `json:"expiry_date" validate:"omitempty,datetime=2006-01-02"`
}

// CatalogService implements the business logic for the medicine catalog.
type CatalogService struct {
	repo     repository.MedicineRepository
	producer *event.Producer
	logger   *slog.Logger
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(repo repository.MedicineRepository, producer *event.Producer, logger *slog.Logger) *CatalogService {
	return &CatalogService{
		repo:     repo,
		producer: producer,
		logger:   logger,
	}
}

// List returns the whole catalog.
func (s *CatalogService) List(ctx context.Context) ([]domain.Medicine, error) {
	medicines, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list catalog: %w", err)
	}
	return medicines, nil
}

// Get returns a single medicine by ID.
func (s *CatalogService) Get(ctx context.Context, id string) (*domain.Medicine, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("medicine id is required")
	}
	return s.repo.GetByID(ctx, id)
}

// Create validates the input and inserts a new medicine with a fresh ID.
func (s *CatalogService) Create(ctx context.Context, input MedicineInput) (*domain.Medicine, error) {
	medicine, err := medicineFromInput(input)
	if err != nil {
		return nil, err
	}
	medicine.ID = uuid.New().String()

	created, err := s.repo.Create(ctx, medicine)
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "medicine created",
		slog.String("medicine_id", created.ID),
		slog.String("name", created.Name),
	)

	if err := s.producer.PublishMedicineUpdated(ctx, created, event.ActionCreated); err != nil {
		s.logger.WarnContext(ctx, "failed to publish medicine event", slog.String("error", err.Error()))
	}

	return created, nil
}

// Replace overwrites every mutable field of an existing medicine with the
// input. The stored record ends up exactly as the input describes it.
func (s *CatalogService) Replace(ctx context.Context, id string, input MedicineInput) (*domain.Medicine, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("medicine id is required")
	}

	medicine, err := medicineFromInput(input)
	if err != nil {
		return nil, err
	}
	medicine.ID = id

	replaced, err := s.repo.Replace(ctx, medicine)
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "medicine replaced", slog.String("medicine_id", id))

	if err := s.producer.PublishMedicineUpdated(ctx, replaced, event.ActionReplaced); err != nil {
		s.logger.WarnContext(ctx, "failed to publish medicine event", slog.String("error", err.Error()))
	}

	return replaced, nil
}

// Delete removes a medicine from the catalog.
func (s *CatalogService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("medicine id is required")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "medicine deleted", slog.String("medicine_id", id))

	if err := s.producer.PublishMedicineUpdated(ctx, &domain.Medicine{ID: id}, event.ActionDeleted); err != nil {
		s.logger.WarnContext(ctx, "failed to publish medicine event", slog.String("error", err.Error()))
	}

	return nil
}

func medicineFromInput(input MedicineInput) (*domain.Medicine, error) {
	if input.Name == "" {
		return nil, apperrors.InvalidInput("name is required")
	}
	if input.Quantity < 0 {
		return nil, apperrors.InvalidInput("quantity must not be negative")
	}
	if input.PriceCents < 0 {
		return nil, apperrors.InvalidInput("price must not be negative")
	}

	medicine := &domain.Medicine{
		Name:       input.Name,
		Brand:      input.Brand,
		Category:   input.Category,
		Quantity:   input.Quantity,
		PriceCents: input.PriceCents,
	}

	if input.ExpiryDate != "" {
		expiry, err := time.Parse("2006-01-02", input.ExpiryDate)
		if err != nil {
			return nil, apperrors.InvalidInput("expiry_date must be formatted as YYYY-MM-DD")
		}
		medicine.ExpiryDate = &expiry
	}

	return medicine, nil
}
