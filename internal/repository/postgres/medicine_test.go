package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medikart/PharmacyGo/internal/domain"
	"github.com/medikart/PharmacyGo/pkg/database"
	apperrors "github.com/medikart/PharmacyGo/pkg/errors"
)

func setupRepo(t *testing.T) (*MedicineRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := database.NewMockPool()
	require.NoError(t, err)
	repo := NewMedicineRepository(mock)
	return repo, mock
}

var medicineCols = []string{
	"id", "name", "brand", "category", "quantity",
	"price_cents", "expiry_date", "created_at", "updated_at",
}

func sampleMedicine() domain.Medicine {
	expiry := time.Date(2027, 6, 30, 0, 0, 0, 0, time.UTC)
	return domain.Medicine{
		ID:         "8b9f6f2e-3f7e-4a4f-9d22-51a13f1a2b01",
		Name:       "Paracetamol",
		Brand:      "Acme",
		Category:   domain.CategoryPainRelief,
		Quantity:   25,
		PriceCents: 1000,
		ExpiryDate: &expiry,
		CreatedAt:  time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		UpdatedAt:  time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func medicineRow(m domain.Medicine) *pgxmock.Rows {
	return pgxmock.NewRows(medicineCols).
		AddRow(m.ID, m.Name, m.Brand, m.Category, m.Quantity,
			m.PriceCents, m.ExpiryDate, m.CreatedAt, m.UpdatedAt)
}

func TestMedicineRepository_List(t *testing.T) {
	repo, mock := setupRepo(t)
	defer mock.Close()

	m := sampleMedicine()
	mock.ExpectQuery("SELECT .+ FROM medicines ORDER BY created_at DESC").
		WillReturnRows(medicineRow(m))

	result, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, m.ID, result[0].ID)
	assert.Equal(t, m.Quantity, result[0].Quantity)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMedicineRepository_List_Empty(t *testing.T) {
	repo, mock := setupRepo(t)
	defer mock.Close()

	mock.ExpectQuery("SELECT .+ FROM medicines ORDER BY created_at DESC").
		WillReturnRows(pgxmock.NewRows(medicineCols))

	result, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, result)
	assert.Empty(t, result)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMedicineRepository_GetByID(t *testing.T) {
	repo, mock := setupRepo(t)
	defer mock.Close()

	m := sampleMedicine()
	mock.ExpectQuery("SELECT .+ FROM medicines WHERE id").
		WithArgs(m.ID).
		WillReturnRows(medicineRow(m))

	result, err := repo.GetByID(context.Background(), m.ID)
	require.NoError(t, err)
	assert.Equal(t, m.Name, result.Name)
	assert.Equal(t, m.PriceCents, result.PriceCents)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMedicineRepository_GetByID_NotFound(t *testing.T) {
	repo, mock := setupRepo(t)
	defer mock.Close()

	mock.ExpectQuery("SELECT .+ FROM medicines WHERE id").
		WithArgs("missing").
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "missing")
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMedicineRepository_Create(t *testing.T) {
	repo, mock := setupRepo(t)
	defer mock.Close()

	m := sampleMedicine()
	mock.ExpectQuery("INSERT INTO medicines").
		WithArgs(m.ID, m.Name, m.Brand, m.Category, m.Quantity,
			m.PriceCents, m.ExpiryDate, pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnRows(medicineRow(m))

	result, err := repo.Create(context.Background(), &m)
	require.NoError(t, err)
	assert.Equal(t, m.ID, result.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMedicineRepository_Create_StoreFailure(t *testing.T) {
	repo, mock := setupRepo(t)
	defer mock.Close()

	m := sampleMedicine()
	mock.ExpectQuery("INSERT INTO medicines").
		WithArgs(m.ID, m.Name, m.Brand, m.Category, m.Quantity,
			m.PriceCents, m.ExpiryDate, pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(errors.New("connection reset"))

	_, err := repo.Create(context.Background(), &m)
	assert.True(t, errors.Is(err, apperrors.ErrStoreWrite))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMedicineRepository_Replace(t *testing.T) {
	repo, mock := setupRepo(t)
	defer mock.Close()

	m := sampleMedicine()
	// Replace clears fields absent from the input.
	m.Brand = ""
	m.ExpiryDate = nil

	mock.ExpectQuery("UPDATE medicines SET").
		WithArgs(m.ID, m.Name, m.Brand, m.Category, m.Quantity,
			m.PriceCents, m.ExpiryDate, pgxmock.AnyArg()).
		WillReturnRows(medicineRow(m))

	result, err := repo.Replace(context.Background(), &m)
	require.NoError(t, err)
	assert.Empty(t, result.Brand)
	assert.Nil(t, result.ExpiryDate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMedicineRepository_Replace_NotFound(t *testing.T) {
	repo, mock := setupRepo(t)
	defer mock.Close()

	m := sampleMedicine()
	mock.ExpectQuery("UPDATE medicines SET").
		WithArgs(m.ID, m.Name, m.Brand, m.Category, m.Quantity,
			m.PriceCents, m.ExpiryDate, pgxmock.AnyArg()).
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.Replace(context.Background(), &m)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMedicineRepository_Delete(t *testing.T) {
	repo, mock := setupRepo(t)
	defer mock.Close()

	mock.ExpectExec("DELETE FROM medicines WHERE id").
		WithArgs("abc").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	require.NoError(t, repo.Delete(context.Background(), "abc"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMedicineRepository_Delete_NotFound(t *testing.T) {
	repo, mock := setupRepo(t)
	defer mock.Close()

	mock.ExpectExec("DELETE FROM medicines WHERE id").
		WithArgs("missing").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err := repo.Delete(context.Background(), "missing")
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMedicineRepository_DecrementIfSufficient(t *testing.T) {
	repo, mock := setupRepo(t)
	defer mock.Close()

	mock.ExpectQuery("UPDATE medicines SET quantity = quantity").
		WithArgs("abc", 5, pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"quantity"}).AddRow(0))

	remaining, err := repo.DecrementIfSufficient(context.Background(), "abc", 5)
	require.NoError(t, err)
	assert.Equal(t, 0, remaining)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMedicineRepository_DecrementIfSufficient_Insufficient(t *testing.T) {
	repo, mock := setupRepo(t)
	defer mock.Close()

	mock.ExpectQuery("UPDATE medicines SET quantity = quantity").
		WithArgs("abc", 5, pgxmock.AnyArg()).
		WillReturnError(pgx.ErrNoRows)
	mock.ExpectQuery("SELECT quantity FROM medicines WHERE id").
		WithArgs("abc").
		WillReturnRows(pgxmock.NewRows([]string{"quantity"}).AddRow(3))

	_, err := repo.DecrementIfSufficient(context.Background(), "abc", 5)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrInsufficientStock))

	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Contains(t, appErr.Message, "available 3")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMedicineRepository_DecrementIfSufficient_NotFound(t *testing.T) {
	repo, mock := setupRepo(t)
	defer mock.Close()

	mock.ExpectQuery("UPDATE medicines SET quantity = quantity").
		WithArgs("missing", 1, pgxmock.AnyArg()).
		WillReturnError(pgx.ErrNoRows)
	mock.ExpectQuery("SELECT quantity FROM medicines WHERE id").
		WithArgs("missing").
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.DecrementIfSufficient(context.Background(), "missing", 1)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMedicineRepository_DecrementAllIfSufficient(t *testing.T) {
	repo, mock := setupRepo(t)
	defer mock.Close()

	lines := []domain.SaleLine{
		{MedicineID: "a", Quantity: 2, PriceCents: 500},
		{MedicineID: "b", Quantity: 1, PriceCents: 750},
	}

	mock.ExpectBegin()
	mock.ExpectQuery("UPDATE medicines SET quantity = quantity").
		WithArgs("a", 2, pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"quantity"}).AddRow(8))
	mock.ExpectQuery("UPDATE medicines SET quantity = quantity").
		WithArgs("b", 1, pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"quantity"}).AddRow(0))
	mock.ExpectCommit()

	results, err := repo.DecrementAllIfSufficient(context.Background(), lines)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, 8, results[0].Remaining)
	assert.Equal(t, 0, results[1].Remaining)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMedicineRepository_DecrementAllIfSufficient_RollsBackOnFailure(t *testing.T) {
	repo, mock := setupRepo(t)
	defer mock.Close()

	lines := []domain.SaleLine{
		{MedicineID: "a", Quantity: 2, PriceCents: 500},
		{MedicineID: "b", Quantity: 9, PriceCents: 750},
	}

	mock.ExpectBegin()
	mock.ExpectQuery("UPDATE medicines SET quantity = quantity").
		WithArgs("a", 2, pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"quantity"}).AddRow(8))
	mock.ExpectQuery("UPDATE medicines SET quantity = quantity").
		WithArgs("b", 9, pgxmock.AnyArg()).
		WillReturnError(pgx.ErrNoRows)
	mock.ExpectQuery("SELECT quantity FROM medicines WHERE id").
		WithArgs("b").
		WillReturnRows(pgxmock.NewRows([]string{"quantity"}).AddRow(4))
	mock.ExpectRollback()

	_, err := repo.DecrementAllIfSufficient(context.Background(), lines)
	assert.True(t, errors.Is(err, apperrors.ErrInsufficientStock))
	assert.NoError(t, mock.ExpectationsWereMet())
}
