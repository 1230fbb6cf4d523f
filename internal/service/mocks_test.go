package service

import (
	"context"
	"io"
	"log/slog"

	"github.com/stretchr/testify/mock"

	"github.com/medikart/PharmacyGo/internal/domain"
	"github.com/medikart/PharmacyGo/internal/event"
)

// --- Mock catalog repository ---

type mockMedicineRepository struct {
	mock.Mock
}

func (m *mockMedicineRepository) List(ctx context.Context) ([]domain.Medicine, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Medicine), args.Error(1)
}

func (m *mockMedicineRepository) GetByID(ctx context.Context, id string) (*domain.Medicine, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Medicine), args.Error(1)
}

func (m *mockMedicineRepository) Create(ctx context.Context, medicine *domain.Medicine) (*domain.Medicine, error) {
	args := m.Called(ctx, medicine)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Medicine), args.Error(1)
}

func (m *mockMedicineRepository) Replace(ctx context.Context, medicine *domain.Medicine) (*domain.Medicine, error) {
	args := m.Called(ctx, medicine)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Medicine), args.Error(1)
}

func (m *mockMedicineRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockMedicineRepository) DecrementIfSufficient(ctx context.Context, id string, qty int) (int, error) {
	args := m.Called(ctx, id, qty)
	return args.Int(0), args.Error(1)
}

func (m *mockMedicineRepository) DecrementAllIfSufficient(ctx context.Context, lines []domain.SaleLine) ([]domain.SaleResultLine, error) {
	args := m.Called(ctx, lines)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SaleResultLine), args.Error(1)
}

// --- Mock cart repository ---

type mockCartRepository struct {
	mock.Mock
}

func (m *mockCartRepository) Get(ctx context.Context, sessionID string) (*domain.Cart, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Cart), args.Error(1)
}

func (m *mockCartRepository) Save(ctx context.Context, cart *domain.Cart) error {
	args := m.Called(ctx, cart)
	return args.Error(0)
}

func (m *mockCartRepository) Delete(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

// --- Helpers ---

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

// newTestProducer returns a producer with no Kafka writer; publishes become no-ops.
func newTestProducer() *event.Producer {
	return event.NewProducer(nil, newTestLogger())
}
