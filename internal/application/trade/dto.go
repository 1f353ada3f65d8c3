package trade

import (
	"time"

	"github.com/comercio/backend/internal/domain/document"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ==================== Shared item DTOs ====================

// ItemInput represents one line in a create or update request. The product
// name is resolved server-side from the catalog.
type ItemInput struct {
	ProductID uuid.UUID       `json:"product_id"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// ItemResponse represents one line of a document
type ItemResponse struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Total       decimal.Decimal `json:"total"`
}

// TotalsResponse carries the derived monetary fields
type TotalsResponse struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
}

// SourceResponse describes a document's provenance
type SourceResponse struct {
	Kind string     `json:"kind,omitempty"`
	ID   *uuid.UUID `json:"id,omitempty"`
}

// ==================== Quote DTOs ====================

// CreateQuoteRequest represents a request to create a quote
type CreateQuoteRequest struct {
	CustomerID     uuid.UUID   `json:"customer_id"`
	SellerID       uuid.UUID   `json:"seller_id"`
	IssueDate      time.Time   `json:"issue_date"`
	ExpirationDate *time.Time  `json:"expiration_date"`
	DestinationID  *uuid.UUID  `json:"destination_id"`
	Notes          string      `json:"notes"`
	Items          []ItemInput `json:"items"`
}

// UpdateQuoteRequest represents a request to update a pending quote. Items,
// when present, replace the quote's lines entirely.
type UpdateQuoteRequest struct {
	ExpirationDate *time.Time  `json:"expiration_date"`
	DestinationID  *uuid.UUID  `json:"destination_id"`
	Notes          *string     `json:"notes"`
	Items          []ItemInput `json:"items"`
}

// QuoteResponse represents a quote
type QuoteResponse struct {
	ID             uuid.UUID      `json:"id"`
	Code           string         `json:"code"`
	Status         string         `json:"status"`
	StatusLabel    string         `json:"status_label"`
	StatusBadge    string         `json:"status_badge"`
	CustomerID     uuid.UUID      `json:"customer_id"`
	CustomerName   string         `json:"customer_name"`
	SellerID       uuid.UUID      `json:"seller_id"`
	IssueDate      time.Time      `json:"issue_date"`
	ExpirationDate *time.Time     `json:"expiration_date,omitempty"`
	Notes          string         `json:"notes,omitempty"`
	Items          []ItemResponse `json:"items"`
	Totals         TotalsResponse `json:"totals"`
	CreatedAt      time.Time      `json:"created_at"`
}

// QuotePrefillResponse carries the recovered historical context used to
// prefill a new quote form for a customer
type QuotePrefillResponse struct {
	LastNotes    string                     `json:"last_notes"`
	LatestPrices map[string]decimal.Decimal `json:"latest_prices"`
}

// ==================== Sale DTOs ====================

// CreateSaleRequest represents a request to create a sale by hand
type CreateSaleRequest struct {
	CustomerID    uuid.UUID   `json:"customer_id"`
	SellerID      uuid.UUID   `json:"seller_id"`
	IssueDate     time.Time   `json:"issue_date"`
	DestinationID *uuid.UUID  `json:"destination_id"`
	Notes         string      `json:"notes"`
	Items         []ItemInput `json:"items"`
}

// UpdateSaleRequest represents a request to update a pending sale
type UpdateSaleRequest struct {
	DestinationID *uuid.UUID  `json:"destination_id"`
	Notes         *string     `json:"notes"`
	Items         []ItemInput `json:"items"`
}

// SaleResponse represents a sale
type SaleResponse struct {
	ID           uuid.UUID      `json:"id"`
	Code         string         `json:"code"`
	Status       string         `json:"status"`
	StatusLabel  string         `json:"status_label"`
	StatusBadge  string         `json:"status_badge"`
	CustomerID   uuid.UUID      `json:"customer_id"`
	CustomerName string         `json:"customer_name"`
	SellerID     uuid.UUID      `json:"seller_id"`
	IssueDate    time.Time      `json:"issue_date"`
	Notes        string         `json:"notes,omitempty"`
	Source       SourceResponse `json:"source"`
	Items        []ItemResponse `json:"items"`
	Totals       TotalsResponse `json:"totals"`
	CreatedAt    time.Time      `json:"created_at"`
}

// ==================== Purchase order DTOs ====================

// CreatePurchaseOrderRequest represents a request to create a purchase
// order by hand
type CreatePurchaseOrderRequest struct {
	ProviderID      uuid.UUID   `json:"provider_id"`
	CustomerID      *uuid.UUID  `json:"customer_id"`
	IssueDate       time.Time   `json:"issue_date"`
	ExpectedDate    *time.Time  `json:"expected_date"`
	DestinationID   *uuid.UUID  `json:"destination_id"`
	DeliveryAddress string      `json:"delivery_address"`
	Notes           string      `json:"notes"`
	Items           []ItemInput `json:"items"`
}

// UpdatePurchaseOrderRequest represents a request to update a draft order
type UpdatePurchaseOrderRequest struct {
	ExpectedDate    *time.Time  `json:"expected_date"`
	DestinationID   *uuid.UUID  `json:"destination_id"`
	DeliveryAddress *string     `json:"delivery_address"`
	Notes           *string     `json:"notes"`
	Items           []ItemInput `json:"items"`
}

// PurchaseOrderResponse represents a purchase order
type PurchaseOrderResponse struct {
	ID              uuid.UUID      `json:"id"`
	Code            string         `json:"code"`
	Status          string         `json:"status"`
	StatusLabel     string         `json:"status_label"`
	StatusBadge     string         `json:"status_badge"`
	ProviderID      uuid.UUID      `json:"provider_id"`
	ProviderName    string         `json:"provider_name"`
	CustomerID      *uuid.UUID     `json:"customer_id,omitempty"`
	DeliveryAddress string         `json:"delivery_address,omitempty"`
	IssueDate       time.Time      `json:"issue_date"`
	ExpectedDate    *time.Time     `json:"expected_date,omitempty"`
	Notes           string         `json:"notes,omitempty"`
	Source          SourceResponse `json:"source"`
	Items           []ItemResponse `json:"items"`
	Totals          TotalsResponse `json:"totals"`
	CreatedAt       time.Time      `json:"created_at"`
}

// ==================== Mappers ====================

func toSourceResponse(ref document.SourceRef) SourceResponse {
	return SourceResponse{Kind: string(ref.Kind), ID: ref.ID}
}

func toTotalsResponse(t document.Totals) TotalsResponse {
	return TotalsResponse{Subtotal: t.Subtotal, Tax: t.Tax, Total: t.Total}
}

// ToQuoteResponse maps a quote aggregate to its response
func ToQuoteResponse(q *document.Quote) QuoteResponse {
	items := make([]ItemResponse, len(q.Items))
	for i, item := range q.Items {
		items[i] = ItemResponse{
			ID:          item.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Total:       item.Total,
		}
	}
	return QuoteResponse{
		ID:             q.ID,
		Code:           q.Code,
		Status:         q.Status.String(),
		StatusLabel:    q.Status.Label(),
		StatusBadge:    q.Status.BadgeClass(),
		CustomerID:     q.CustomerID,
		CustomerName:   q.CustomerName,
		SellerID:       q.SellerID,
		IssueDate:      q.IssueDate,
		ExpirationDate: q.ExpirationDate,
		Notes:          q.Notes,
		Items:          items,
		Totals:         toTotalsResponse(q.Totals),
		CreatedAt:      q.CreatedAt,
	}
}

// ToSaleResponse maps a sale aggregate to its response
func ToSaleResponse(s *document.Sale) SaleResponse {
	items := make([]ItemResponse, len(s.Items))
	for i, item := range s.Items {
		items[i] = ItemResponse{
			ID:          item.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Total:       item.Total,
		}
	}
	return SaleResponse{
		ID:           s.ID,
		Code:         s.Code,
		Status:       s.Status.String(),
		StatusLabel:  s.Status.Label(),
		StatusBadge:  s.Status.BadgeClass(),
		CustomerID:   s.CustomerID,
		CustomerName: s.CustomerName,
		SellerID:     s.SellerID,
		IssueDate:    s.IssueDate,
		Notes:        s.Notes,
		Source:       toSourceResponse(s.Source),
		Items:        items,
		Totals:       toTotalsResponse(s.Totals),
		CreatedAt:    s.CreatedAt,
	}
}

// ToPurchaseOrderResponse maps a purchase order aggregate to its response
func ToPurchaseOrderResponse(po *document.PurchaseOrder) PurchaseOrderResponse {
	items := make([]ItemResponse, len(po.Items))
	for i, item := range po.Items {
		items[i] = ItemResponse{
			ID:          item.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Total:       item.Total,
		}
	}
	return PurchaseOrderResponse{
		ID:              po.ID,
		Code:            po.Code,
		Status:          po.Status.String(),
		StatusLabel:     po.Status.Label(),
		StatusBadge:     po.Status.BadgeClass(),
		ProviderID:      po.ProviderID,
		ProviderName:    po.ProviderName,
		CustomerID:      po.CustomerID,
		DeliveryAddress: po.DeliveryAddress,
		IssueDate:       po.IssueDate,
		ExpectedDate:    po.ExpectedDate,
		Notes:           po.Notes,
		Source:          toSourceResponse(po.Source),
		Items:           items,
		Totals:          toTotalsResponse(po.Totals),
		CreatedAt:       po.CreatedAt,
	}
}

// ToPurchaseOrderResponses maps a slice of purchase orders
func ToPurchaseOrderResponses(orders []*document.PurchaseOrder) []PurchaseOrderResponse {
	responses := make([]PurchaseOrderResponse, len(orders))
	for i, po := range orders {
		responses[i] = ToPurchaseOrderResponse(po)
	}
	return responses
}
