package catalog

import (
	"github.com/comercio/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeProduct = "Product"

// Event type constants
const (
	EventTypeProductCreated      = "ProductCreated"
	EventTypeProductStockChanged = "ProductStockChanged"
)

// StockChangeReason explains what moved the stock
type StockChangeReason string

const (
	StockChangeReceive StockChangeReason = "receive" // Purchase order received
	StockChangeDeduct  StockChangeReason = "deduct"  // Sale confirmed
)

// ProductCreatedEvent is published when a new product is created
type ProductCreatedEvent struct {
	shared.BaseDomainEvent
	Name       string            `json:"name"`
	Unit       ProductUnit       `json:"unit"`
	SourceType ProductSourceType `json:"source_type"`
}

// NewProductCreatedEvent creates a new ProductCreatedEvent
func NewProductCreatedEvent(p *Product) *ProductCreatedEvent {
	return &ProductCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductCreated, AggregateTypeProduct, p.ID, p.TenantID),
		Name:            p.Name,
		Unit:            p.Unit,
		SourceType:      p.SourceType,
	}
}

// ProductStockChangedEvent is published when product stock moves
type ProductStockChangedEvent struct {
	shared.BaseDomainEvent
	Name     string            `json:"name"`
	OldStock int64             `json:"old_stock"`
	NewStock int64             `json:"new_stock"`
	Reason   StockChangeReason `json:"reason"`
}

// NewProductStockChangedEvent creates a new ProductStockChangedEvent
func NewProductStockChangedEvent(p *Product, oldStock, newStock int64, reason StockChangeReason) *ProductStockChangedEvent {
	return &ProductStockChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductStockChanged, AggregateTypeProduct, p.ID, p.TenantID),
		Name:            p.Name,
		OldStock:        oldStock,
		NewStock:        newStock,
		Reason:          reason,
	}
}
