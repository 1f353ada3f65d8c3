package document

import (
	"fmt"
	"time"

	"github.com/comercio/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// QuoteStatus represents the status of a customer quote
type QuoteStatus string

const (
	QuoteStatusPending  QuoteStatus = "pending"
	QuoteStatusAccepted QuoteStatus = "accepted"
	QuoteStatusRejected QuoteStatus = "rejected"
	QuoteStatusExpired  QuoteStatus = "expired"
)

// IsValid checks if the status is a valid QuoteStatus
func (s QuoteStatus) IsValid() bool {
	switch s {
	case QuoteStatusPending, QuoteStatusAccepted, QuoteStatusRejected, QuoteStatusExpired:
		return true
	}
	return false
}

// String returns the string representation of QuoteStatus
func (s QuoteStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status.
// Pending is the only non-terminal state.
func (s QuoteStatus) CanTransitionTo(target QuoteStatus) bool {
	if s != QuoteStatusPending {
		return false
	}
	switch target {
	case QuoteStatusAccepted, QuoteStatusRejected, QuoteStatusExpired:
		return true
	}
	return false
}

// Label returns the presentation label of the status
func (s QuoteStatus) Label() string {
	switch s {
	case QuoteStatusPending:
		return "Pendiente"
	case QuoteStatusAccepted:
		return "Aceptada"
	case QuoteStatusRejected:
		return "Rechazada"
	case QuoteStatusExpired:
		return "Expirada"
	}
	return string(s)
}

// BadgeClass returns the presentation badge class of the status
func (s QuoteStatus) BadgeClass() string {
	switch s {
	case QuoteStatusAccepted:
		return "badge-success"
	case QuoteStatusRejected:
		return "badge-destructive"
	case QuoteStatusExpired:
		return "badge-info"
	default:
		return "badge-secondary"
	}
}

// Quote is a customer quote aggregate. Accepting a pending quote spawns a
// sale mirroring its items; rejection and expiration are terminal with no
// side effects.
type Quote struct {
	shared.TenantAggregateRoot
	Code           string      `gorm:"type:varchar(50);not null;uniqueIndex:idx_quotes_tenant_code,priority:2"`
	Status         QuoteStatus `gorm:"type:varchar(20);not null;default:'pending'"`
	CustomerID     uuid.UUID   `gorm:"type:uuid;not null;index"`
	CustomerName   string      `gorm:"type:varchar(200);not null"`
	SellerID       uuid.UUID   `gorm:"type:uuid;not null"`
	DestinationID  *uuid.UUID  `gorm:"type:uuid"`
	IssueDate      time.Time   `gorm:"type:date;not null"`
	ExpirationDate *time.Time  `gorm:"type:date"`
	Notes          string      `gorm:"type:text"`
	Items          []QuoteItem `gorm:"foreignKey:QuoteID;constraint:OnDelete:CASCADE"`
	Totals         Totals      `gorm:"embedded"`
	AcceptedAt     *time.Time
	RejectedAt     *time.Time
	ExpiredAt      *time.Time
}

// TableName returns the table name for GORM
func (Quote) TableName() string {
	return "quotes"
}

// NewQuote creates a pending quote. The code comes from the code generator;
// items are added afterwards.
func NewQuote(tenantID uuid.UUID, code string, customerID uuid.UUID, customerName string, sellerID, createdBy uuid.UUID, issueDate time.Time) (*Quote, error) {
	if code == "" {
		return nil, shared.NewValidationError("INVALID_CODE", "Quote code cannot be empty")
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

	quote := &Quote{
		TenantAggregateRoot: shared.NewTenantAggregateRootWithCreator(tenantID, createdBy),
		Code:                code,
		Status:              QuoteStatusPending,
		CustomerID:          customerID,
		CustomerName:        customerName,
		SellerID:            sellerID,
		IssueDate:           issueDate,
		Items:               make([]QuoteItem, 0),
		Totals:              ZeroTotals(),
	}

	quote.AddDomainEvent(NewQuoteCreatedEvent(quote))

	return quote, nil
}

// AddItem adds a line to the quote. Only allowed while pending; a product
// appears at most once per quote.
func (q *Quote) AddItem(productID uuid.UUID, productName string, quantity int64, unitPrice decimal.Decimal) error {
	if !q.CanEdit() {
		return shared.NewPreconditionError("NOT_EDITABLE", "Only pending quotes can be modified")
	}
	for _, item := range q.Items {
		if item.ProductID == productID {
			return shared.NewValidationError("DUPLICATE_PRODUCT", "Product already exists in quote, update quantity instead")
		}
	}

	line, err := NewLineItem(productID, productName, quantity, unitPrice)
	if err != nil {
		return err
	}

	now := time.Now()
	q.Items = append(q.Items, QuoteItem{
		ID:        uuid.New(),
		QuoteID:   q.ID,
		LineItem:  line,
		CreatedAt: now,
		UpdatedAt: now,
	})
	q.RecomputeTotals()
	q.Touch()

	return nil
}

// UpdateItemQuantity updates the quantity of an existing line
func (q *Quote) UpdateItemQuantity(itemID uuid.UUID, quantity int64) error {
	if !q.CanEdit() {
		return shared.NewPreconditionError("NOT_EDITABLE", "Only pending quotes can be modified")
	}
	for idx := range q.Items {
		if q.Items[idx].ID == itemID {
			if err := q.Items[idx].SetQuantity(quantity); err != nil {
				return err
			}
			q.Items[idx].UpdatedAt = time.Now()
			q.RecomputeTotals()
			q.Touch()
			return nil
		}
	}
	return shared.NewValidationError("ITEM_NOT_FOUND", "Quote item not found")
}

// UpdateItemPrice updates the unit price of an existing line
func (q *Quote) UpdateItemPrice(itemID uuid.UUID, unitPrice decimal.Decimal) error {
	if !q.CanEdit() {
		return shared.NewPreconditionError("NOT_EDITABLE", "Only pending quotes can be modified")
	}
	for idx := range q.Items {
		if q.Items[idx].ID == itemID {
			if err := q.Items[idx].SetUnitPrice(unitPrice); err != nil {
				return err
			}
			q.Items[idx].UpdatedAt = time.Now()
			q.RecomputeTotals()
			q.Touch()
			return nil
		}
	}
	return shared.NewValidationError("ITEM_NOT_FOUND", "Quote item not found")
}

// RemoveItem removes a line from the quote
func (q *Quote) RemoveItem(itemID uuid.UUID) error {
	if !q.CanEdit() {
		return shared.NewPreconditionError("NOT_EDITABLE", "Only pending quotes can be modified")
	}
	for idx, item := range q.Items {
		if item.ID == itemID {
			q.Items = append(q.Items[:idx], q.Items[idx+1:]...)
			q.RecomputeTotals()
			q.Touch()
			return nil
		}
	}
	return shared.NewValidationError("ITEM_NOT_FOUND", "Quote item not found")
}

// RecomputeTotals re-derives subtotal/tax/total from the current lines.
// Idempotent; called by every item mutation and before every save.
func (q *Quote) RecomputeTotals() {
	q.Totals = recomputeTotals(quoteLines(q.Items))
}

// CanEdit reports whether items and header fields may still change
func (q *Quote) CanEdit() bool {
	return q.Status == QuoteStatusPending
}

// CanDelete reports whether the quote may be destroyed
func (q *Quote) CanDelete() bool {
	return q.Status == QuoteStatusPending
}

// CanAccept reports whether Accept would pass its guard
func (q *Quote) CanAccept() bool {
	return q.Status == QuoteStatusPending && len(q.Items) > 0
}

// Accept transitions the quote to accepted. The caller is responsible for
// creating the mirrored sale inside the same transaction.
func (q *Quote) Accept() error {
	if !q.Status.CanTransitionTo(QuoteStatusAccepted) {
		return shared.NewPreconditionError("INVALID_STATE", fmt.Sprintf("Cannot accept quote in %s status", q.Status))
	}
	if len(q.Items) == 0 {
		return shared.NewPreconditionError("NO_ITEMS", "Cannot accept quote without items")
	}

	now := time.Now()
	q.Status = QuoteStatusAccepted
	q.AcceptedAt = &now
	q.Touch()

	q.AddDomainEvent(NewQuoteAcceptedEvent(q))

	return nil
}

// Reject transitions the quote to rejected
func (q *Quote) Reject() error {
	if !q.Status.CanTransitionTo(QuoteStatusRejected) {
		return shared.NewPreconditionError("INVALID_STATE", fmt.Sprintf("Cannot reject quote in %s status", q.Status))
	}

	now := time.Now()
	q.Status = QuoteStatusRejected
	q.RejectedAt = &now
	q.Touch()

	q.AddDomainEvent(NewQuoteRejectedEvent(q))

	return nil
}

// Expire transitions the quote to expired
func (q *Quote) Expire() error {
	if !q.Status.CanTransitionTo(QuoteStatusExpired) {
		return shared.NewPreconditionError("INVALID_STATE", fmt.Sprintf("Cannot expire quote in %s status", q.Status))
	}

	now := time.Now()
	q.Status = QuoteStatusExpired
	q.ExpiredAt = &now
	q.Touch()

	q.AddDomainEvent(NewQuoteExpiredEvent(q))

	return nil
}

// GetItemByProduct returns the line referencing a product, or nil
func (q *Quote) GetItemByProduct(productID uuid.UUID) *QuoteItem {
	for idx := range q.Items {
		if q.Items[idx].ProductID == productID {
			return &q.Items[idx]
		}
	}
	return nil
}

// ItemCount returns the number of lines
func (q *Quote) ItemCount() int {
	return len(q.Items)
}

func quoteLines(items []QuoteItem) []LineItem {
	lines := make([]LineItem, len(items))
	for i, item := range items {
		lines[i] = item.LineItem
	}
	return lines
}
