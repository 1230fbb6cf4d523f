package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/medikart/PharmacyGo/internal/domain"
	"github.com/medikart/PharmacyGo/pkg/database"
	apperrors "github.com/medikart/PharmacyGo/pkg/errors"
)

const medicineColumns = "id, name, brand, category, quantity, price_cents, expiry_date, created_at, updated_at"

// MedicineRepository implements repository.MedicineRepository using PostgreSQL.
type MedicineRepository struct {
	pool database.DBTX
}

// NewMedicineRepository creates a new PostgreSQL-backed medicine repository.
func NewMedicineRepository(pool database.DBTX) *MedicineRepository {
	return &MedicineRepository{pool: pool}
}

func scanMedicine(row pgx.Row) (*domain.Medicine, error) {
	var m domain.Medicine
	err := row.Scan(
		&m.ID,
		&m.Name,
		&m.Brand,
		&m.Category,
		&m.Quantity,
		&m.PriceCents,
		&m.ExpiryDate,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// List returns the whole catalog, newest first.
func (r *MedicineRepository) List(ctx context.Context) ([]domain.Medicine, error) {
	query := `
		SELECT ` + medicineColumns + `
		FROM medicines
		ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list medicines: %w", err)
	}
	defer rows.Close()

	medicines := make([]domain.Medicine, 0)
	for rows.Next() {
		m, err := scanMedicine(rows)
		if err != nil {
			return nil, fmt.Errorf("scan medicine: %w", err)
		}
		medicines = append(medicines, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate medicines: %w", err)
	}

	return medicines, nil
}

// GetByID retrieves a medicine by ID.
func (r *MedicineRepository) GetByID(ctx context.Context, id string) (*domain.Medicine, error) {
	query := `
		SELECT ` + medicineColumns + `
		FROM medicines
		WHERE id = $1`

	m, err := scanMedicine(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("medicine", id)
		}
		return nil, fmt.Errorf("get medicine: %w", err)
	}

	return m, nil
}

// Create inserts a new medicine and returns the stored row.
func (r *MedicineRepository) Create(ctx context.Context, medicine *domain.Medicine) (*domain.Medicine, error) {
	query := `
		INSERT INTO medicines (id, name, brand, category, quantity, price_cents, expiry_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + medicineColumns

	now := time.Now().UTC()
	m, err := scanMedicine(r.pool.QueryRow(ctx, query,
		medicine.ID,
		medicine.Name,
		medicine.Brand,
		medicine.Category,
		medicine.Quantity,
		medicine.PriceCents,
		medicine.ExpiryDate,
		now,
		now,
	))
	if err != nil {
		return nil, apperrors.StoreWrite(fmt.Errorf("create medicine: %w", err))
	}

	return m, nil
}

// Replace overwrites every mutable field of an existing medicine. Fields
// absent from the input are cleared, not preserved.
func (r *MedicineRepository) Replace(ctx context.Context, medicine *domain.Medicine) (*domain.Medicine, error) {
	query := `
		UPDATE medicines
		SET name = $2, brand = $3, category = $4, quantity = $5, price_cents = $6, expiry_date = $7, updated_at = $8
		WHERE id = $1
		RETURNING ` + medicineColumns

	m, err := scanMedicine(r.pool.QueryRow(ctx, query,
		medicine.ID,
		medicine.Name,
		medicine.Brand,
		medicine.Category,
		medicine.Quantity,
		medicine.PriceCents,
		medicine.ExpiryDate,
		time.Now().UTC(),
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("medicine", medicine.ID)
		}
		return nil, apperrors.StoreWrite(fmt.Errorf("replace medicine: %w", err))
	}

	return m, nil
}

// Delete removes a medicine by ID.
func (r *MedicineRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM medicines WHERE id = $1`, id)
	if err != nil {
		return apperrors.StoreWrite(fmt.Errorf("delete medicine: %w", err))
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFound("medicine", id)
	}
	return nil
}

// decrementQuery applies the conditional decrement in a single statement so
// there is no read-then-write window and quantity can never go negative.
const decrementQuery = `
	UPDATE medicines
	SET quantity = quantity - $2, updated_at = $3
	WHERE id = $1 AND quantity >= $2
	RETURNING quantity`

// DecrementIfSufficient atomically decrements stock when enough is on hand.
func (r *MedicineRepository) DecrementIfSufficient(ctx context.Context, id string, qty int) (int, error) {
	return decrementOne(ctx, r.pool, id, qty)
}

// DecrementAllIfSufficient applies the conditional decrement to every line
// inside a single transaction; any failure rolls the whole batch back.
func (r *MedicineRepository) DecrementAllIfSufficient(ctx context.Context, lines []domain.SaleLine) ([]domain.SaleResultLine, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, apperrors.StoreWrite(fmt.Errorf("begin transaction: %w", err))
	}
	defer func() { _ = tx.Rollback(ctx) }()

	results := make([]domain.SaleResultLine, 0, len(lines))
	for _, line := range lines {
		remaining, err := decrementOne(ctx, tx, line.MedicineID, line.Quantity)
		if err != nil {
			return nil, err
		}
		results = append(results, domain.SaleResultLine{
			MedicineID: line.MedicineID,
			Quantity:   line.Quantity,
			PriceCents: line.PriceCents,
			Remaining:  remaining,
		})
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, apperrors.StoreWrite(fmt.Errorf("commit sale: %w", err))
	}

	return results, nil
}

type queryRower interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func decrementOne(ctx context.Context, q queryRower, id string, qty int) (int, error) {
	var remaining int
	err := q.QueryRow(ctx, decrementQuery, id, qty, time.Now().UTC()).Scan(&remaining)
	if err == nil {
		return remaining, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, apperrors.StoreWrite(fmt.Errorf("decrement medicine %s: %w", id, err))
	}

	// The guard rejected the update; tell an unknown ID apart from a
	// shortage by reading the current quantity.
	var available int
	err = q.QueryRow(ctx, `SELECT quantity FROM medicines WHERE id = $1`, id).Scan(&available)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, apperrors.NotFound("medicine", id)
	}
	if err != nil {
		return 0, fmt.Errorf("check medicine stock %s: %w", id, err)
	}

	return 0, apperrors.InsufficientStock(id, qty, available)
}
