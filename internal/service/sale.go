package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/medikart/PharmacyGo/internal/domain"
	"github.com/medikart/PharmacyGo/internal/event"
	"github.com/medikart/PharmacyGo/internal/repository"
	apperrors "github.com/medikart/PharmacyGo/pkg/errors"
)

// SaleService processes sale transactions against the catalog.
type SaleService struct {
	repo         repository.MedicineRepository
	producer     *event.Producer
	logger       *slog.Logger
	commitMode   string
	lowThreshold int
}

// NewSaleService creates a new sale processor. commitMode selects between
// sequential (per-line best effort, the legacy behavior) and atomic
// (all-or-nothing in one transaction).
func NewSaleService(repo repository.MedicineRepository, producer *event.Producer, logger *slog.Logger, commitMode string, lowThreshold int) *SaleService {
	if commitMode != domain.CommitModeAtomic {
		commitMode = domain.CommitModeSequential
	}
	if lowThreshold <= 0 {
		lowThreshold = domain.DefaultLowStockThreshold
	}
	return &SaleService{
		repo:         repo,
		producer:     producer,
		logger:       logger,
		commitMode:   commitMode,
		lowThreshold: lowThreshold,
	}
}

// CommitMode returns the configured commit mode.
func (s *SaleService) CommitMode() string {
	return s.commitMode
}

// Process applies the sale to the catalog and returns a summary with totals
// computed from the captured prices, never re-fetched.
//
// In sequential mode, lines are applied in request order and processing stops
// at the first failure; already-applied lines stay applied and nothing is
// rolled back, so a re-submitted request decrements them again. In atomic
// mode, any failure rolls the whole sale back.
func (s *SaleService) Process(ctx context.Context, req domain.SaleRequest) (*domain.SaleSummary, error) {
	if err := validateSaleRequest(req); err != nil {
		return nil, err
	}

	var (
		results []domain.SaleResultLine
		err     error
	)
	if s.commitMode == domain.CommitModeAtomic {
		results, err = s.repo.DecrementAllIfSufficient(ctx, req.Lines)
	} else {
		results, err = s.applySequential(ctx, req.Lines)
	}
	if err != nil {
		return nil, err
	}

	summary := &domain.SaleSummary{
		SaleID:     uuid.New().String(),
		TotalItems: req.TotalItems(),
		TotalCents: req.TotalCents(),
		Lines:      results,
		CommitMode: s.commitMode,
	}

	s.logger.InfoContext(ctx, "sale completed",
		slog.String("sale_id", summary.SaleID),
		slog.Int("total_items", summary.TotalItems),
		slog.Int64("total_cents", summary.TotalCents),
		slog.String("commit_mode", summary.CommitMode),
	)

	if err := s.producer.PublishSaleCompleted(ctx, summary, req.CustomerName, req.CustomerPhone); err != nil {
		s.logger.WarnContext(ctx, "failed to publish sale event", slog.String("error", err.Error()))
	}

	for _, line := range results {
		if line.Remaining < s.lowThreshold {
			if err := s.producer.PublishLowStock(ctx, line.MedicineID, line.Remaining, s.lowThreshold); err != nil {
				s.logger.WarnContext(ctx, "failed to publish low stock event",
					slog.String("medicine_id", line.MedicineID),
					slog.String("error", err.Error()),
				)
			}
		}
	}

	return summary, nil
}

// applySequential decrements line by line in request order. The first failure
// stops processing; earlier decrements are already committed.
func (s *SaleService) applySequential(ctx context.Context, lines []domain.SaleLine) ([]domain.SaleResultLine, error) {
	results := make([]domain.SaleResultLine, 0, len(lines))
	for i, line := range lines {
		remaining, err := s.repo.DecrementIfSufficient(ctx, line.MedicineID, line.Quantity)
		if err != nil {
			s.logger.WarnContext(ctx, "sale stopped mid-request",
				slog.Int("applied_lines", i),
				slog.String("failed_medicine_id", line.MedicineID),
				slog.String("error", err.Error()),
			)
			return nil, err
		}
		results = append(results, domain.SaleResultLine{
			MedicineID: line.MedicineID,
			Quantity:   line.Quantity,
			PriceCents: line.PriceCents,
			Remaining:  remaining,
		})
	}
	return results, nil
}

func validateSaleRequest(req domain.SaleRequest) error {
	if len(req.Lines) == 0 {
		return apperrors.InvalidInput("sale must have at least one line")
	}
	for _, line := range req.Lines {
		if line.MedicineID == "" {
			return apperrors.InvalidInput("medicine id is required on every line")
		}
		if line.Quantity < 1 {
			return apperrors.InvalidInput("quantity must be at least 1 on every line")
		}
		if line.PriceCents < 0 {
			return apperrors.InvalidInput("price must not be negative")
		}
	}
	return nil
}
