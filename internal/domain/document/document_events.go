package document

import (
	"github.com/comercio/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Aggregate type constants
const (
	AggregateTypeQuote         = "Quote"
	AggregateTypeSale          = "Sale"
	AggregateTypePurchaseOrder = "PurchaseOrder"
)

// Event type constants
const (
	EventTypeQuoteCreated  = "QuoteCreated"
	EventTypeQuoteAccepted = "QuoteAccepted"
	EventTypeQuoteRejected = "QuoteRejected"
	EventTypeQuoteExpired  = "QuoteExpired"

	EventTypeSaleCreated   = "SaleCreated"
	EventTypeSaleConfirmed = "SaleConfirmed"
	EventTypeSaleCancelled = "SaleCancelled"

	EventTypePurchaseOrderCreated   = "PurchaseOrderCreated"
	EventTypePurchaseOrderConfirmed = "PurchaseOrderConfirmed"
	EventTypePurchaseOrderReceived  = "PurchaseOrderReceived"
	EventTypePurchaseOrderCancelled = "PurchaseOrderCancelled"
)

// QuoteCreatedEvent is published when a new quote is created
type QuoteCreatedEvent struct {
	shared.BaseDomainEvent
	Code       string    `json:"code"`
	CustomerID uuid.UUID `json:"customer_id"`
}

// NewQuoteCreatedEvent creates a new QuoteCreatedEvent
func NewQuoteCreatedEvent(q *Quote) *QuoteCreatedEvent {
	return &QuoteCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeQuoteCreated, AggregateTypeQuote, q.ID, q.TenantID),
		Code:            q.Code,
		CustomerID:      q.CustomerID,
	}
}

// QuoteAcceptedEvent is published when a quote is accepted
type QuoteAcceptedEvent struct {
	shared.BaseDomainEvent
	Code       string          `json:"code"`
	CustomerID uuid.UUID       `json:"customer_id"`
	Total      decimal.Decimal `json:"total"`
}

// NewQuoteAcceptedEvent creates a new QuoteAcceptedEvent
func NewQuoteAcceptedEvent(q *Quote) *QuoteAcceptedEvent {
	return &QuoteAcceptedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeQuoteAccepted, AggregateTypeQuote, q.ID, q.TenantID),
		Code:            q.Code,
		CustomerID:      q.CustomerID,
		Total:           q.Totals.Total,
	}
}

// QuoteRejectedEvent is published when a quote is rejected
type QuoteRejectedEvent struct {
	shared.BaseDomainEvent
	Code string `json:"code"`
}

// NewQuoteRejectedEvent creates a new QuoteRejectedEvent
func NewQuoteRejectedEvent(q *Quote) *QuoteRejectedEvent {
	return &QuoteRejectedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeQuoteRejected, AggregateTypeQuote, q.ID, q.TenantID),
		Code:            q.Code,
	}
}

// QuoteExpiredEvent is published when a quote expires
type QuoteExpiredEvent struct {
	shared.BaseDomainEvent
	Code string `json:"code"`
}

// NewQuoteExpiredEvent creates a new QuoteExpiredEvent
func NewQuoteExpiredEvent(q *Quote) *QuoteExpiredEvent {
	return &QuoteExpiredEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeQuoteExpired, AggregateTypeQuote, q.ID, q.TenantID),
		Code:            q.Code,
	}
}

// SaleCreatedEvent is published when a new sale is created
type SaleCreatedEvent struct {
	shared.BaseDomainEvent
	Code       string     `json:"code"`
	CustomerID uuid.UUID  `json:"customer_id"`
	SourceKind SourceKind `json:"source_kind,omitempty"`
}

// NewSaleCreatedEvent creates a new SaleCreatedEvent
func NewSaleCreatedEvent(s *Sale) *SaleCreatedEvent {
	return &SaleCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSaleCreated, AggregateTypeSale, s.ID, s.TenantID),
		Code:            s.Code,
		CustomerID:      s.CustomerID,
		SourceKind:      s.Source.Kind,
	}
}

// SaleConfirmedEvent is published when a sale is confirmed
type SaleConfirmedEvent struct {
	shared.BaseDomainEvent
	Code       string          `json:"code"`
	CustomerID uuid.UUID       `json:"customer_id"`
	Total      decimal.Decimal `json:"total"`
}

// NewSaleConfirmedEvent creates a new SaleConfirmedEvent
func NewSaleConfirmedEvent(s *Sale) *SaleConfirmedEvent {
	return &SaleConfirmedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSaleConfirmed, AggregateTypeSale, s.ID, s.TenantID),
		Code:            s.Code,
		CustomerID:      s.CustomerID,
		Total:           s.Totals.Total,
	}
}

// SaleCancelledEvent is published when a sale is cancelled
type SaleCancelledEvent struct {
	shared.BaseDomainEvent
	Code string `json:"code"`
}

// NewSaleCancelledEvent creates a new SaleCancelledEvent
func NewSaleCancelledEvent(s *Sale) *SaleCancelledEvent {
	return &SaleCancelledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSaleCancelled, AggregateTypeSale, s.ID, s.TenantID),
		Code:            s.Code,
	}
}

// PurchaseOrderCreatedEvent is published when a new purchase order is created
type PurchaseOrderCreatedEvent struct {
	shared.BaseDomainEvent
	Code       string     `json:"code"`
	ProviderID uuid.UUID  `json:"provider_id"`
	SourceKind SourceKind `json:"source_kind,omitempty"`
}

// NewPurchaseOrderCreatedEvent creates a new PurchaseOrderCreatedEvent
func NewPurchaseOrderCreatedEvent(po *PurchaseOrder) *PurchaseOrderCreatedEvent {
	return &PurchaseOrderCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePurchaseOrderCreated, AggregateTypePurchaseOrder, po.ID, po.TenantID),
		Code:            po.Code,
		ProviderID:      po.ProviderID,
		SourceKind:      po.Source.Kind,
	}
}

// PurchaseOrderConfirmedEvent is published when a purchase order is confirmed
type PurchaseOrderConfirmedEvent struct {
	shared.BaseDomainEvent
	Code       string    `json:"code"`
	ProviderID uuid.UUID `json:"provider_id"`
}

// NewPurchaseOrderConfirmedEvent creates a new PurchaseOrderConfirmedEvent
func NewPurchaseOrderConfirmedEvent(po *PurchaseOrder) *PurchaseOrderConfirmedEvent {
	return &PurchaseOrderConfirmedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePurchaseOrderConfirmed, AggregateTypePurchaseOrder, po.ID, po.TenantID),
		Code:            po.Code,
		ProviderID:      po.ProviderID,
	}
}

// PurchaseOrderReceivedEvent is published when a purchase order is received
type PurchaseOrderReceivedEvent struct {
	shared.BaseDomainEvent
	Code       string    `json:"code"`
	ProviderID uuid.UUID `json:"provider_id"`
}

// NewPurchaseOrderReceivedEvent creates a new PurchaseOrderReceivedEvent
func NewPurchaseOrderReceivedEvent(po *PurchaseOrder) *PurchaseOrderReceivedEvent {
	return &PurchaseOrderReceivedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePurchaseOrderReceived, AggregateTypePurchaseOrder, po.ID, po.TenantID),
		Code:            po.Code,
		ProviderID:      po.ProviderID,
	}
}

// PurchaseOrderCancelledEvent is published when a purchase order is cancelled
type PurchaseOrderCancelledEvent struct {
	shared.BaseDomainEvent
	Code string `json:"code"`
}

// NewPurchaseOrderCancelledEvent creates a new PurchaseOrderCancelledEvent
func NewPurchaseOrderCancelledEvent(po *PurchaseOrder) *PurchaseOrderCancelledEvent {
	return &PurchaseOrderCancelledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePurchaseOrderCancelled, AggregateTypePurchaseOrder, po.ID, po.TenantID),
		Code:            po.Code,
	}
}
