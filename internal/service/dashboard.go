package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/medikart/PharmacyGo/internal/domain"
	"github.com/medikart/PharmacyGo/internal/repository"
)

// MaxLowStockListing caps the low-stock medicines shown on the dashboard.
// The count always reflects the full set.
const MaxLowStockListing = 5

// DashboardStats is the aggregate view over a catalog snapshot.
type DashboardStats struct {
	TotalMedicines      int               `json:"total_medicines"`
	TotalStock          int               `json:"total_stock"`
	LowStockCount       int               `json:"low_stock_count"`
	LowStockMedicines   []domain.Medicine `json:"low_stock_medicines"`
	ExpiringSoon        []domain.Medicine `json:"expiring_soon"`
	InventoryValueCents int64             `json:"inventory_value_cents"`
}

// DashboardService computes inventory metrics over a catalog snapshot.
type DashboardService struct {
	repo          repository.MedicineRepository
	logger        *slog.Logger
	lowThreshold  int
	expiryHorizon time.Duration
	now           func() time.Time
}

// NewDashboardService creates a new dashboard service.
func NewDashboardService(repo repository.MedicineRepository, logger *slog.Logger, lowThreshold int, expiryHorizon time.Duration) *DashboardService {
	if lowThreshold <= 0 {
		lowThreshold = domain.DefaultLowStockThreshold
	}
	if expiryHorizon <= 0 {
		expiryHorizon = domain.DefaultExpiryHorizon
	}
	return &DashboardService{
		repo:          repo,
		logger:        logger,
		lowThreshold:  lowThreshold,
		expiryHorizon: expiryHorizon,
		now:           time.Now,
	}
}

// LowStockThreshold returns the configured low-stock threshold.
func (s *DashboardService) LowStockThreshold() int {
	return s.lowThreshold
}

// Stats fetches the catalog snapshot and derives all dashboard metrics from
// it. The functions are pure, so the same snapshot always produces the same
// stats regardless of row order.
func (s *DashboardService) Stats(ctx context.Context) (*DashboardStats, error) {
	medicines, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard snapshot: %w", err)
	}

	low := domain.LowStock(medicines, s.lowThreshold)

	listing := low
	if len(listing) > MaxLowStockListing {
		listing = listing[:MaxLowStockListing]
	}

	stats := &DashboardStats{
		TotalMedicines:      len(medicines),
		TotalStock:          domain.TotalStock(medicines),
		LowStockCount:       len(low),
		LowStockMedicines:   listing,
		ExpiringSoon:        domain.ExpiringSoon(medicines, s.now(), s.expiryHorizon),
		InventoryValueCents: domain.InventoryValueCents(medicines),
	}

	s.logger.DebugContext(ctx, "dashboard stats computed",
		slog.Int("total_medicines", stats.TotalMedicines),
		slog.Int("low_stock_count", stats.LowStockCount),
	)

	return stats, nil
}
