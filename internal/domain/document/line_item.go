package document

import (
	"time"

	"github.com/comercio/backend/internal/domain/shared"
	"github.com/comercio/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LineItem is the shared shape of a document line: a product reference, a
// positive integer quantity, a non-negative tax-inclusive unit price, and
// the derived line total. Each document type wraps it with its parent key.
type LineItem struct {
	ProductID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductName string          `gorm:"type:varchar(200);not null"`
	Quantity    int64           `gorm:"not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Total       decimal.Decimal `gorm:"type:decimal(18,2);not null"`
}

// NewLineItem validates and builds a line
func NewLineItem(productID uuid.UUID, productName string, quantity int64, unitPrice decimal.Decimal) (LineItem, error) {
	if productID == uuid.Nil {
		return LineItem{}, shared.NewValidationError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if productName == "" {
		return LineItem{}, shared.NewValidationError("INVALID_PRODUCT_NAME", "Product name cannot be empty")
	}
	if quantity <= 0 {
		return LineItem{}, shared.NewValidationError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return LineItem{}, shared.NewValidationError("INVALID_PRICE", "Unit price cannot be negative")
	}

	item := LineItem{
		ProductID:   productID,
		ProductName: productName,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
	}
	item.recalculate()
	return item, nil
}

// SetQuantity replaces the quantity and re-derives the line total
func (i *LineItem) SetQuantity(quantity int64) error {
	if quantity <= 0 {
		return shared.NewValidationError("INVALID_QUANTITY", "Quantity must be positive")
	}
	i.Quantity = quantity
	i.recalculate()
	return nil
}

// SetUnitPrice replaces the unit price and re-derives the line total
func (i *LineItem) SetUnitPrice(unitPrice decimal.Decimal) error {
	if unitPrice.IsNegative() {
		return shared.NewValidationError("INVALID_PRICE", "Unit price cannot be negative")
	}
	i.UnitPrice = unitPrice
	i.recalculate()
	return nil
}

func (i *LineItem) recalculate() {
	i.Total = i.UnitPrice.Mul(decimal.NewFromInt(i.Quantity))
}

// Totals holds the derived monetary fields of a document. Total is the
// tax-inclusive sum of line totals; Subtotal and Tax are always re-derived
// from it through the tax engine, never stored independently.
type Totals struct {
	Subtotal decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Tax      decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Total    decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
}

// ZeroTotals returns all-zero totals
func ZeroTotals() Totals {
	return Totals{Subtotal: decimal.Zero, Tax: decimal.Zero, Total: decimal.Zero}
}

// recomputeTotals derives Totals from a set of line items. Idempotent.
func recomputeTotals(lines []LineItem) Totals {
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.Total)
	}
	b := valueobject.BreakdownOf(total)
	return Totals{Subtotal: b.Subtotal, Tax: b.Tax, Total: b.Total}
}

// QuoteItem is a line item owned by a quote
type QuoteItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	QuoteID   uuid.UUID `gorm:"type:uuid;not null;index"`
	LineItem  `gorm:"embedded"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (QuoteItem) TableName() string {
	return "quote_items"
}

// SaleItem is a line item owned by a sale
type SaleItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	SaleID    uuid.UUID `gorm:"type:uuid;not null;index"`
	LineItem  `gorm:"embedded"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (SaleItem) TableName() string {
	return "sale_items"
}

// PurchaseOrderItem is a line item owned by a purchase order
type PurchaseOrderItem struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	PurchaseOrderID uuid.UUID `gorm:"type:uuid;not null;index"`
	LineItem        `gorm:"embedded"`
	CreatedAt       time.Time `gorm:"not null"`
	UpdatedAt       time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (PurchaseOrderItem) TableName() string {
	return "purchase_order_items"
}
