package document

import (
	"fmt"
	"time"

	"github.com/comercio/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SaleStatus represents the status of a sale
type SaleStatus string

const (
	SaleStatusPending   SaleStatus = "pending"
	SaleStatusConfirmed SaleStatus = "confirmed"
	SaleStatusCancelled SaleStatus = "cancelled"
)

// IsValid checks if the status is a valid SaleStatus
func (s SaleStatus) IsValid() bool {
	switch s {
	case SaleStatusPending, SaleStatusConfirmed, SaleStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of SaleStatus
func (s SaleStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status.
// Confirmed sales stay confirmed; they can still generate purchase orders
// but can no longer be cancelled.
func (s SaleStatus) CanTransitionTo(target SaleStatus) bool {
	if s != SaleStatusPending {
		return false
	}
	return target == SaleStatusConfirmed || target == SaleStatusCancelled
}

// Label returns the presentation label of the status
func (s SaleStatus) Label() string {
	switch s {
	case SaleStatusPending:
		return "Pendiente"
	case SaleStatusConfirmed:
		return "Confirmada"
	case SaleStatusCancelled:
		return "Cancelada"
	}
	return string(s)
}

// BadgeClass returns the presentation badge class of the status
func (s SaleStatus) BadgeClass() string {
	switch s {
	case SaleStatusConfirmed:
		return "badge-success"
	case SaleStatusCancelled:
		return "badge-destructive"
	default:
		return "badge-secondary"
	}
}

// Sale is a sale aggregate. Confirmation triggers stock reconciliation when
// the tenant tracks stock; a confirmed sale may later be expanded into
// per-provider purchase orders.
type Sale struct {
	shared.TenantAggregateRoot
	Code          string     `gorm:"type:varchar(50);not null;uniqueIndex:idx_sales_tenant_code,priority:2"`
	Status        SaleStatus `gorm:"type:varchar(20);not null;default:'pending'"`
	CustomerID    uuid.UUID  `gorm:"type:uuid;not null;index"`
	CustomerName  string     `gorm:"type:varchar(200);not null"`
	SellerID      uuid.UUID  `gorm:"type:uuid;not null"`
	DestinationID *uuid.UUID `gorm:"type:uuid"`
	IssueDate     time.Time  `gorm:"type:date;not null"`
	Notes         string     `gorm:"type:text"`
	Source        SourceRef  `gorm:"embedded"`
	Items         []SaleItem `gorm:"foreignKey:SaleID;constraint:OnDelete:CASCADE"`
	Totals        Totals     `gorm:"embedded"`
	ConfirmedAt   *time.Time
	CancelledAt   *time.Time
}

// TableName returns the table name for GORM
func (Sale) TableName() string {
	return "sales"
}

// NewSale creates a pending sale
func NewSale(tenantID uuid.UUID, code string, customerID uuid.UUID, customerName string, sellerID, createdBy uuid.UUID, issueDate time.Time, source SourceRef) (*Sale, error) {
	if code == "" {
		return nil, shared.NewValidationError("INVALID_CODE", "Sale code cannot be empty")
	}
	if customerID == uuid.Nil {
		return nil, shared.NewValidationError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}
	if sellerID == uuid.Nil {
		return nil, shared.NewValidationError("INVALID_SELLER", "Seller ID cannot be empty")
	}
	if issueDate.IsZero() {
		return nil, shared.NewValidationError("INVALID_ISSUE_DATE", "Issue date cannot be empty")
	}
	if source.Kind != SourceKindNone && source.Kind != SourceKindQuote {
		return nil, shared.NewValidationError("INVALID_SOURCE", "A sale can only originate from a quote")
	}

	sale := &Sale{
		TenantAggregateRoot: shared.NewTenantAggregateRootWithCreator(tenantID, createdBy),
		Code:                code,
		Status:              SaleStatusPending,
		CustomerID:          customerID,
		CustomerName:        customerName,
		SellerID:            sellerID,
		IssueDate:           issueDate,
		Source:              source,
		Items:               make([]SaleItem, 0),
		Totals:              ZeroTotals(),
	}

	sale.AddDomainEvent(NewSaleCreatedEvent(sale))

	return sale, nil
}

// AddItem adds a line to the sale. Only allowed while pending; a product
// appears at most once per sale.
func (s *Sale) AddItem(productID uuid.UUID, productName string, quantity int64, unitPrice decimal.Decimal) error {
	if !s.CanEdit() {
		return shared.NewPreconditionError("NOT_EDITABLE", "Only pending sales can be modified")
	}
	for _, item := range s.Items {
		if item.ProductID == productID {
			return shared.NewValidationError("DUPLICATE_PRODUCT", "Product already exists in sale, update quantity instead")
		}
	}

	line, err := NewLineItem(productID, productName, quantity, unitPrice)
	if err != nil {
		return err
	}

	now := time.Now()
	s.Items = append(s.Items, SaleItem{
		ID:        uuid.New(),
		SaleID:    s.ID,
		LineItem:  line,
		CreatedAt: now,
		UpdatedAt: now,
	})
	s.RecomputeTotals()
	s.Touch()

	return nil
}

// UpdateItemQuantity updates the quantity of an existing line
func (s *Sale) UpdateItemQuantity(itemID uuid.UUID, quantity int64) error {
	if !s.CanEdit() {
		return shared.NewPreconditionError("NOT_EDITABLE", "Only pending sales can be modified")
	}
	for idx := range s.Items {
		if s.Items[idx].ID == itemID {
			if err := s.Items[idx].SetQuantity(quantity); err != nil {
				return err
			}
			s.Items[idx].UpdatedAt = time.Now()
			s.RecomputeTotals()
			s.Touch()
			return nil
		}
	}
	return shared.NewValidationError("ITEM_NOT_FOUND", "Sale item not found")
}

// RemoveItem removes a line from the sale
func (s *Sale) RemoveItem(itemID uuid.UUID) error {
	if !s.CanEdit() {
		return shared.NewPreconditionError("NOT_EDITABLE", "Only pending sales can be modified")
	}
	for idx, item := range s.Items {
		if item.ID == itemID {
			s.Items = append(s.Items[:idx], s.Items[idx+1:]...)
			s.RecomputeTotals()
			s.Touch()
			return nil
		}
	}
	return shared.NewValidationError("ITEM_NOT_FOUND", "Sale item not found")
}

// RecomputeTotals re-derives subtotal/tax/total from the current lines.
// Idempotent; called by every item mutation and before every save.
func (s *Sale) RecomputeTotals() {
	s.Totals = recomputeTotals(saleLines(s.Items))
}

// CanEdit reports whether items and header fields may still change
func (s *Sale) CanEdit() bool {
	return s.Status == SaleStatusPending
}

// CanDelete reports whether the sale may be destroyed
func (s *Sale) CanDelete() bool {
	return s.Status == SaleStatusPending
}

// CanConfirm reports whether Confirm would pass its guard
func (s *Sale) CanConfirm() bool {
	return s.Status == SaleStatusPending && len(s.Items) > 0
}

// Confirm transitions the sale to confirmed. Stock reconciliation is applied
// by the caller inside the same transaction when the tenant tracks stock.
func (s *Sale) Confirm() error {
	if !s.Status.CanTransitionTo(SaleStatusConfirmed) {
		return shared.NewPreconditionError("INVALID_STATE", fmt.Sprintf("Cannot confirm sale in %s status", s.Status))
	}
	if len(s.Items) == 0 {
		return shared.NewPreconditionError("NO_ITEMS", "Cannot confirm sale without items")
	}

	now := time.Now()
	s.Status = SaleStatusConfirmed
	s.ConfirmedAt = &now
	s.Touch()

	s.AddDomainEvent(NewSaleConfirmedEvent(s))

	return nil
}

// Cancel transitions the sale to cancelled. Only pending sales can be
// cancelled; confirmed sales have already moved stock.
func (s *Sale) Cancel() error {
	if !s.Status.CanTransitionTo(SaleStatusCancelled) {
		return shared.NewPreconditionError("INVALID_STATE", fmt.Sprintf("Cannot cancel sale in %s status", s.Status))
	}

	now := time.Now()
	s.Status = SaleStatusCancelled
	s.CancelledAt = &now
	s.Touch()

	s.AddDomainEvent(NewSaleCancelledEvent(s))

	return nil
}

// IsConfirmed reports whether the sale has been confirmed
func (s *Sale) IsConfirmed() bool {
	return s.Status == SaleStatusConfirmed
}

// ItemCount returns the number of lines
func (s *Sale) ItemCount() int {
	return len(s.Items)
}

func saleLines(items []SaleItem) []LineItem {
	lines := make([]LineItem, len(items))
	for i, item := range items {
		lines[i] = item.LineItem
	}
	return lines
}
