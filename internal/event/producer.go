package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/medikart/PharmacyGo/internal/domain"
	pkgkafka "github.com/medikart/PharmacyGo/pkg/kafka"
	"github.com/medikart/PharmacyGo/pkg/logger"
)

// Kafka topics for pharmacy domain events.
const (
	TopicSaleCompleted  = "pharmacy.sale.completed"
	TopicLowStock       = "pharmacy.inventory.low_stock"
	TopicMedicineUpdate = "pharmacy.medicine.updated"
)

// Aggregate type constants.
const (
	AggregateTypeSale     = "sale"
	AggregateTypeMedicine = "medicine"
)

// Source identifier for events originating from this service.
const Source = "pharmacy-server"

// SaleCompletedData is the payload for a sale.completed event.
type SaleCompletedData struct {
	SaleID        string                  `json:"sale_id"`
	TotalItems    int                     `json:"total_items"`
	TotalCents    int64                   `json:"total_cents"`
	CommitMode    string                  `json:"commit_mode"`
	Lines         []domain.SaleResultLine `json:"lines"`
	CustomerName  string                  `json:"customer_name,omitempty"`
	CustomerPhone string                  `json:"customer_phone,omitempty"`
}

// LowStockData is the payload for an inventory.low_stock event.
type LowStockData struct {
	MedicineID string `json:"medicine_id"`
	Remaining  int    `json:"remaining"`
	Threshold  int    `json:"threshold"`
}

// MedicineUpdatedData is the payload for a medicine.updated event.
type MedicineUpdatedData struct {
	Medicine *domain.Medicine `json:"medicine"`
	Action   string           `json:"action"`
}

// Medicine update actions.
const (
	ActionCreated  = "created"
	ActionReplaced = "replaced"
	ActionDeleted  = "deleted"
)

// Producer publishes pharmacy domain events to Kafka. A nil Producer is
// valid and publishes nothing, so wiring can omit Kafka entirely.
type Producer struct {
	kafka  *pkgkafka.Producer
	logger *slog.Logger
}

// NewProducer creates a new event producer.
func NewProducer(kafka *pkgkafka.Producer, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  kafka,
		logger: logger,
	}
}

// PublishSaleCompleted publishes a sale.completed event.
func (p *Producer) PublishSaleCompleted(ctx context.Context, summary *domain.SaleSummary, customerName, customerPhone string) error {
	if p == nil || p.kafka == nil {
		return nil
	}

	data := SaleCompletedData{
		SaleID:        summary.SaleID,
		TotalItems:    summary.TotalItems,
		TotalCents:    summary.TotalCents,
		CommitMode:    summary.CommitMode,
		Lines:         summary.Lines,
		CustomerName:  customerName,
		CustomerPhone: customerPhone,
	}

	return p.publish(ctx, TopicSaleCompleted, summary.SaleID, AggregateTypeSale, data)
}

// PublishLowStock publishes an inventory.low_stock event.
func (p *Producer) PublishLowStock(ctx context.Context, medicineID string, remaining, threshold int) error {
	if p == nil || p.kafka == nil {
		return nil
	}

	data := LowStockData{
		MedicineID: medicineID,
		Remaining:  remaining,
		Threshold:  threshold,
	}

	return p.publish(ctx, TopicLowStock, medicineID, AggregateTypeMedicine, data)
}

// PublishMedicineUpdated publishes a medicine.updated event for catalog changes.
func (p *Producer) PublishMedicineUpdated(ctx context.Context, medicine *domain.Medicine, action string) error {
	if p == nil || p.kafka == nil {
		return nil
	}

	data := MedicineUpdatedData{
		Medicine: medicine,
		Action:   action,
	}

	return p.publish(ctx, TopicMedicineUpdate, medicine.ID, AggregateTypeMedicine, data)
}

func (p *Producer) publish(ctx context.Context, topic, aggregateID, aggregateType string, data any) error {
	evt, err := pkgkafka.NewEvent(topic, aggregateID, aggregateType, Source, data)
	if err != nil {
		return fmt.Errorf("build event: %w", err)
	}

	if id := logger.CorrelationIDFromContext(ctx); id != "" {
		evt.WithCorrelationID(id)
	}

	if err := p.kafka.Publish(ctx, topic, evt); err != nil {
		return fmt.Errorf("publish %s: %w", topic, err)
	}

	p.logger.DebugContext(ctx, "domain event published",
		slog.String("topic", topic),
		slog.String("aggregate_id", aggregateID),
	)

	return nil
}
