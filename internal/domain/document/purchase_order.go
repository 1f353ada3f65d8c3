package document

import (
	"fmt"
	"time"

	"github.com/comercio/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PurchaseOrderStatus represents the status of a purchase order
type PurchaseOrderStatus string

const (
	PurchaseOrderStatusDraft     PurchaseOrderStatus = "draft"
	PurchaseOrderStatusConfirmed PurchaseOrderStatus = "confirmed"
	PurchaseOrderStatusReceived  PurchaseOrderStatus = "received"
	PurchaseOrderStatusCancelled PurchaseOrderStatus = "cancelled"
)

// IsValid checks if the status is a valid PurchaseOrderStatus
func (s PurchaseOrderStatus) IsValid() bool {
	switch s {
	case PurchaseOrderStatusDraft, PurchaseOrderStatusConfirmed, PurchaseOrderStatusReceived, PurchaseOrderStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of PurchaseOrderStatus
func (s PurchaseOrderStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s PurchaseOrderStatus) CanTransitionTo(target PurchaseOrderStatus) bool {
	switch s {
	case PurchaseOrderStatusDraft:
		return target == PurchaseOrderStatusConfirmed || target == PurchaseOrderStatusCancelled
	case PurchaseOrderStatusConfirmed:
		return target == PurchaseOrderStatusReceived || target == PurchaseOrderStatusCancelled
	case PurchaseOrderStatusReceived, PurchaseOrderStatusCancelled:
		return false // Terminal states
	}
	return false
}

// Label returns the presentation label of the status
func (s PurchaseOrderStatus) Label() string {
	switch s {
	case PurchaseOrderStatusDraft:
		return "Borrador"
	case PurchaseOrderStatusConfirmed:
		return "Confirmada"
	case PurchaseOrderStatusReceived:
		return "Recibida"
	case PurchaseOrderStatusCancelled:
		return "Cancelada"
	}
	return string(s)
}

// BadgeClass returns the presentation badge class of the status
func (s PurchaseOrderStatus) BadgeClass() string {
	switch s {
	case PurchaseOrderStatusConfirmed:
		return "badge-info"
	case PurchaseOrderStatusReceived:
		return "badge-success"
	case PurchaseOrderStatusCancelled:
		return "badge-destructive"
	default:
		return "badge-secondary"
	}
}

// PurchaseOrder is a purchase order aggregate addressed to a single
// provider. Receiving it increments stock for every line. Orders generated
// from a sale keep the customer reference so later orders for the same
// customer can recover their notes.
type PurchaseOrder struct {
	shared.TenantAggregateRoot
	Code            string              `gorm:"type:varchar(50);not null;uniqueIndex:idx_purchase_orders_tenant_code,priority:2"`
	Status          PurchaseOrderStatus `gorm:"type:varchar(20);not null;default:'draft'"`
	ProviderID      uuid.UUID           `gorm:"type:uuid;not null;index"`
	ProviderName    string              `gorm:"type:varchar(200);not null"`
	CustomerID      *uuid.UUID          `gorm:"type:uuid;index"`
	DestinationID   *uuid.UUID          `gorm:"type:uuid"`
	DeliveryAddress string              `gorm:"type:text"`
	IssueDate       time.Time           `gorm:"type:date;not null"`
	ExpectedDate    *time.Time          `gorm:"type:date"`
	Notes           string              `gorm:"type:text"`
	Source          SourceRef           `gorm:"embedded"`
	Items           []PurchaseOrderItem `gorm:"foreignKey:PurchaseOrderID;constraint:OnDelete:CASCADE"`
	Totals          Totals              `gorm:"embedded"`
	ConfirmedAt     *time.Time
	ReceivedAt      *time.Time
	CancelledAt     *time.Time
}

// TableName returns the table name for GORM
func (PurchaseOrder) TableName() string {
	return "purchase_orders"
}

// NewPurchaseOrder creates a draft purchase order
func NewPurchaseOrder(tenantID uuid.UUID, code string, providerID uuid.UUID, providerName string, createdBy uuid.UUID, issueDate time.Time, source SourceRef) (*PurchaseOrder, error) {
	if code == "" {
		return nil, shared.NewValidationError("INVALID_CODE", "Purchase order code cannot be empty")
	}
	if providerID == uuid.Nil {
		return nil, shared.NewValidationError("INVALID_PROVIDER", "Provider ID cannot be empty")
	}
	if issueDate.IsZero() {
		return nil, shared.NewValidationError("INVALID_ISSUE_DATE", "Issue date cannot be empty")
	}
	if source.Kind != SourceKindNone && source.Kind != SourceKindSale {
		return nil, shared.NewValidationError("INVALID_SOURCE", "A purchase order can only originate from a sale")
	}

	po := &PurchaseOrder{
		TenantAggregateRoot: shared.NewTenantAggregateRootWithCreator(tenantID, createdBy),
		Code:                code,
		Status:              PurchaseOrderStatusDraft,
		ProviderID:          providerID,
		ProviderName:        providerName,
		IssueDate:           issueDate,
		Source:              source,
		Items:               make([]PurchaseOrderItem, 0),
		Totals:              ZeroTotals(),
	}

	po.AddDomainEvent(NewPurchaseOrderCreatedEvent(po))

	return po, nil
}

// AddItem adds a line to the order. Only allowed while draft; a product
// appears at most once per order.
func (po *PurchaseOrder) AddItem(productID uuid.UUID, productName string, quantity int64, unitPrice decimal.Decimal) error {
	if !po.CanEdit() {
		return shared.NewPreconditionError("NOT_EDITABLE", "Only draft purchase orders can be modified")
	}
	for _, item := range po.Items {
		if item.ProductID == productID {
			return shared.NewValidationError("DUPLICATE_PRODUCT", "Product already exists in purchase order, update quantity instead")
		}
	}

	line, err := NewLineItem(productID, productName, quantity, unitPrice)
	if err != nil {
		return err
	}

	now := time.Now()
	po.Items = append(po.Items, PurchaseOrderItem{
		ID:              uuid.New(),
		PurchaseOrderID: po.ID,
		LineItem:        line,
		CreatedAt:       now,
		UpdatedAt:       now,
	})
	po.RecomputeTotals()
	po.Touch()

	return nil
}

// UpdateItemQuantity updates the quantity of an existing line
func (po *PurchaseOrder) UpdateItemQuantity(itemID uuid.UUID, quantity int64) error {
	if !po.CanEdit() {
		return shared.NewPreconditionError("NOT_EDITABLE", "Only draft purchase orders can be modified")
	}
	for idx := range po.Items {
		if po.Items[idx].ID == itemID {
			if err := po.Items[idx].SetQuantity(quantity); err != nil {
				return err
			}
			po.Items[idx].UpdatedAt = time.Now()
			po.RecomputeTotals()
			po.Touch()
			return nil
		}
	}
	return shared.NewValidationError("ITEM_NOT_FOUND", "Purchase order item not found")
}

// RemoveItem removes a line from the order
func (po *PurchaseOrder) RemoveItem(itemID uuid.UUID) error {
	if !po.CanEdit() {
		return shared.NewPreconditionError("NOT_EDITABLE", "Only draft purchase orders can be modified")
	}
	for idx, item := range po.Items {
		if item.ID == itemID {
			po.Items = append(po.Items[:idx], po.Items[idx+1:]...)
			po.RecomputeTotals()
			po.Touch()
			return nil
		}
	}
	return shared.NewValidationError("ITEM_NOT_FOUND", "Purchase order item not found")
}

// RecomputeTotals re-derives subtotal/tax/total from the current lines.
// Idempotent; called by every item mutation and before every save.
func (po *PurchaseOrder) RecomputeTotals() {
	po.Totals = recomputeTotals(purchaseOrderLines(po.Items))
}

// CanEdit reports whether items and header fields may still change
func (po *PurchaseOrder) CanEdit() bool {
	return po.Status == PurchaseOrderStatusDraft
}

// CanDelete reports whether the order may be destroyed
func (po *PurchaseOrder) CanDelete() bool {
	return po.Status == PurchaseOrderStatusDraft
}

// CanConfirm reports whether Confirm would pass its guard
func (po *PurchaseOrder) CanConfirm() bool {
	return po.Status == PurchaseOrderStatusDraft && len(po.Items) > 0
}

// Confirm transitions the order to confirmed
func (po *PurchaseOrder) Confirm() error {
	if !po.Status.CanTransitionTo(PurchaseOrderStatusConfirmed) {
		return shared.NewPreconditionError("INVALID_STATE", fmt.Sprintf("Cannot confirm purchase order in %s status", po.Status))
	}
	if len(po.Items) == 0 {
		return shared.NewPreconditionError("NO_ITEMS", "Cannot confirm purchase order without items")
	}

	now := time.Now()
	po.Status = PurchaseOrderStatusConfirmed
	po.ConfirmedAt = &now
	po.Touch()

	po.AddDomainEvent(NewPurchaseOrderConfirmedEvent(po))

	return nil
}

// Receive transitions the order to received. The caller applies the stock
// increments inside the same transaction.
func (po *PurchaseOrder) Receive() error {
	if !po.Status.CanTransitionTo(PurchaseOrderStatusReceived) {
		return shared.NewPreconditionError("INVALID_STATE", fmt.Sprintf("Cannot receive purchase order in %s status", po.Status))
	}

	now := time.Now()
	po.Status = PurchaseOrderStatusReceived
	po.ReceivedAt = &now
	po.Touch()

	po.AddDomainEvent(NewPurchaseOrderReceivedEvent(po))

	return nil
}

// Cancel transitions the order to cancelled, allowed from draft or confirmed
func (po *PurchaseOrder) Cancel() error {
	if !po.Status.CanTransitionTo(PurchaseOrderStatusCancelled) {
		return shared.NewPreconditionError("INVALID_STATE", fmt.Sprintf("Cannot cancel purchase order in %s status", po.Status))
	}

	now := time.Now()
	po.Status = PurchaseOrderStatusCancelled
	po.CancelledAt = &now
	po.Touch()

	po.AddDomainEvent(NewPurchaseOrderCancelledEvent(po))

	return nil
}

// ItemCount returns the number of lines
func (po *PurchaseOrder) ItemCount() int {
	return len(po.Items)
}

func purchaseOrderLines(items []PurchaseOrderItem) []LineItem {
	lines := make([]LineItem, len(items))
	for i, item := range items {
		lines[i] = item.LineItem
	}
	return lines
}
