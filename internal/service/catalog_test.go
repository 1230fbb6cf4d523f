package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/medikart/PharmacyGo/internal/domain"
	apperrors "github.com/medikart/PharmacyGo/pkg/errors"
)

func newTestCatalog(repo *mockMedicineRepository) *CatalogService {
	return NewCatalogService(repo, newTestProducer(), newTestLogger())
}

func TestCatalogService_List(t *testing.T) {
	repo := new(mockMedicineRepository)
	svc := newTestCatalog(repo)
	ctx := context.Background()

	repo.On("List", ctx).Return([]domain.Medicine{{ID: "a", Name: "Paracetamol"}}, nil)

	medicines, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, medicines, 1)
	repo.AssertExpectations(t)
}

func TestCatalogService_Get_NotFound(t *testing.T) {
	repo := new(mockMedicineRepository)
	svc := newTestCatalog(repo)
	ctx := context.Background()

	repo.On("GetByID", ctx, "missing").Return(nil, apperrors.NotFound("medicine", "missing"))

	_, err := svc.Get(ctx, "missing")
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}

func TestCatalogService_Create(t *testing.T) {
	repo := new(mockMedicineRepository)
	svc := newTestCatalog(repo)
	ctx := context.Background()

	repo.On("Create", ctx, mock.MatchedBy(func(m *domain.Medicine) bool {
		return m.ID != "" && m.Name == "Paracetamol" && m.PriceCents == 1000
	})).Return(&domain.Medicine{ID: "new-id", Name: "Paracetamol", PriceCents: 1000}, nil)

	created, err := svc.Create(ctx, MedicineInput{Name: "Paracetamol", Quantity: 5, PriceCents: 1000})
	require.NoError(t, err)
	assert.Equal(t, "new-id", created.ID)
	repo.AssertExpectations(t)
}

func TestCatalogService_Create_ParsesExpiryDate(t *testing.T) {
	repo := new(mockMedicineRepository)
	svc := newTestCatalog(repo)
	ctx := context.Background()

	want := time.Date(2027, 6, 30, 0, 0, 0, 0, time.UTC)
	repo.On("Create", ctx, mock.MatchedBy(func(m *domain.Medicine) bool {
		return m.ExpiryDate != nil && m.ExpiryDate.Equal(want)
	})).Return(&domain.Medicine{ID: "x"}, nil)

	_, err := svc.Create(ctx, MedicineInput{Name: "Aspirin", ExpiryDate: "2027-06-30"})
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestCatalogService_Create_Validation(t *testing.T) {
	repo := new(mockMedicineRepository)
	svc := newTestCatalog(repo)
	ctx := context.Background()

	tests := []struct {
		name  string
		input MedicineInput
	}{
		{"empty name", MedicineInput{Quantity: 1}},
		{"negative quantity", MedicineInput{Name: "X", Quantity: -1}},
		{"negative price", MedicineInput{Name: "X", PriceCents: -5}},
		{"bad expiry format", MedicineInput{Name: "X", ExpiryDate: "30/06/2027"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tt.input)
			assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))
		})
	}
	repo.AssertNotCalled(t, "Create")
}

func TestCatalogService_Replace_FullReplacement(t *testing.T) {
	repo := new(mockMedicineRepository)
	svc := newTestCatalog(repo)
	ctx := context.Background()

	// Absent brand and expiry clear the stored values.
	repo.On("Replace", ctx, mock.MatchedBy(func(m *domain.Medicine) bool {
		return m.ID == "abc" && m.Brand == "" && m.ExpiryDate == nil
	})).Return(&domain.Medicine{ID: "abc", Name: "Renamed"}, nil)

	replaced, err := svc.Replace(ctx, "abc", MedicineInput{Name: "Renamed", Quantity: 2})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", replaced.Name)
	repo.AssertExpectations(t)
}

func TestCatalogService_Replace_NotFound(t *testing.T) {
	repo := new(mockMedicineRepository)
	svc := newTestCatalog(repo)
	ctx := context.Background()

	repo.On("Replace", ctx, mock.Anything).Return(nil, apperrors.NotFound("medicine", "missing"))

	_, err := svc.Replace(ctx, "missing", MedicineInput{Name: "X"})
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}

func TestCatalogService_Delete(t *testing.T) {
	repo := new(mockMedicineRepository)
	svc := newTestCatalog(repo)
	ctx := context.Background()

	repo.On("Delete", ctx, "abc").Return(nil)

	require.NoError(t, svc.Delete(ctx, "abc"))
	repo.AssertExpectations(t)
}

func TestCatalogService_Delete_NotFound(t *testing.T) {
	repo := new(mockMedicineRepository)
	svc := newTestCatalog(repo)
	ctx := context.Background()

	repo.On("Delete", ctx, "missing").Return(apperrors.NotFound("medicine", "missing"))

	err := svc.Delete(ctx, "missing")
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}
