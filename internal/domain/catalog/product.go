package catalog

import (
	"strings"

	"github.com/comercio/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductUnit represents the unit of measure a product is sold in
type ProductUnit string

const (
	UnitKilogram   ProductUnit = "kg"
	UnitGram       ProductUnit = "g"
	UnitLiter      ProductUnit = "lt"
	UnitMilliliter ProductUnit = "ml"
	UnitPiece      ProductUnit = "un"
	UnitHundred    ProductUnit = "cl"
)

// IsValid checks if the unit is a known value
func (u ProductUnit) IsValid() bool {
	switch u {
	case UnitKilogram, UnitGram, UnitLiter, UnitMilliliter, UnitPiece, UnitHundred:
		return true
	}
	return false
}

// ProductSourceType represents where a product comes from
type ProductSourceType string

const (
	SourceTypePurchased    ProductSourceType = "purchased"    // Bought from a provider
	SourceTypeManufactured ProductSourceType = "manufactured" // Produced in-house
)

// IsValid checks if the source type is a known value
func (s ProductSourceType) IsValid() bool {
	switch s {
	case SourceTypePurchased, SourceTypeManufactured:
		return true
	}
	return false
}

// ProductStatus represents the status of a product
type ProductStatus string

const (
	ProductStatusActive       ProductStatus = "active"
	ProductStatusInactive     ProductStatus = "inactive"
	ProductStatusDiscontinued ProductStatus = "discontinued"
)

// IsValid checks if the status is a known value
func (s ProductStatus) IsValid() bool {
	switch s {
	case ProductStatusActive, ProductStatusInactive, ProductStatusDiscontinued:
		return true
	}
	return false
}

// Product is the catalog aggregate. Stock is an integer count in the
// product's unit; prices are tax-inclusive. Purchased products must carry
// the provider that purchase orders for them are addressed to.
type Product struct {
	shared.TenantAggregateRoot
	SKU             string            `gorm:"type:varchar(50);index"`
	Name            string            `gorm:"type:varchar(200);not null"`
	Description     string            `gorm:"type:text"`
	Unit            ProductUnit       `gorm:"type:varchar(10);not null;default:'un'"`
	SourceType      ProductSourceType `gorm:"type:varchar(20);not null;default:'purchased'"`
	ProviderID      *uuid.UUID        `gorm:"type:uuid;index"`
	Stock           int64             `gorm:"not null;default:0"`
	BuyPrice        decimal.Decimal   `gorm:"type:decimal(18,2);not null;default:0"`
	SellCashPrice   decimal.Decimal   `gorm:"type:decimal(18,2);not null;default:0"`
	SellCreditPrice decimal.Decimal   `gorm:"type:decimal(18,2);not null;default:0"`
	UnitsPerPackage int               `gorm:"not null;default:1"`
	Status          ProductStatus     `gorm:"type:varchar(20);not null;default:'active'"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a product scoped to an enterprise. Purchased products
// require a provider.
func NewProduct(tenantID uuid.UUID, name string, unit ProductUnit, sourceType ProductSourceType, providerID *uuid.UUID) (*Product, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewValidationError("INVALID_NAME", "Product name cannot be empty")
	}
	if !unit.IsValid() {
		return nil, shared.NewValidationError("INVALID_UNIT", "Unknown product unit")
	}
	if !sourceType.IsValid() {
		return nil, shared.NewValidationError("INVALID_SOURCE_TYPE", "Unknown product source type")
	}
	if sourceType == SourceTypePurchased && providerID == nil {
		return nil, shared.NewValidationError("PROVIDER_REQUIRED", "Purchased products require a provider")
	}

	product := &Product{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                name,
		Unit:                unit,
		SourceType:          sourceType,
		ProviderID:          providerID,
		BuyPrice:            decimal.Zero,
		SellCashPrice:       decimal.Zero,
		SellCreditPrice:     decimal.Zero,
		UnitsPerPackage:     1,
		Status:              ProductStatusActive,
	}

	product.AddDomainEvent(NewProductCreatedEvent(product))

	return product, nil
}

// Update changes the product's descriptive fields
func (p *Product) Update(name, description string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewValidationError("INVALID_NAME", "Product name cannot be empty")
	}
	p.Name = name
	p.Description = description
	p.Touch()
	p.IncrementVersion()
	return nil
}

// SetPrices replaces the product's price list. Prices are tax-inclusive and
// cannot be negative.
func (p *Product) SetPrices(buy, sellCash, sellCredit decimal.Decimal) error {
	if buy.IsNegative() || sellCash.IsNegative() || sellCredit.IsNegative() {
		return shared.NewValidationError("INVALID_PRICE", "Prices cannot be negative")
	}

	p.BuyPrice = buy
	p.SellCashPrice = sellCash
	p.SellCreditPrice = sellCredit
	p.Touch()
	p.IncrementVersion()

	return nil
}

// SetPackaging sets the number of sellable units per package
func (p *Product) SetPackaging(unitsPerPackage int) error {
	if unitsPerPackage < 1 {
		return shared.NewValidationError("INVALID_PACKAGING", "Units per package must be at least 1")
	}
	p.UnitsPerPackage = unitsPerPackage
	p.Touch()
	p.IncrementVersion()
	return nil
}

// ReceiveStock increments stock when a purchase order is received
func (p *Product) ReceiveStock(quantity int64) error {
	if quantity <= 0 {
		return shared.NewValidationError("INVALID_QUANTITY", "Received quantity must be positive")
	}

	oldStock := p.Stock
	p.Stock += quantity
	p.Touch()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductStockChangedEvent(p, oldStock, p.Stock, StockChangeReceive))

	return nil
}

// DeductStock decrements stock when a sale is confirmed. The result is
// clamped at zero: selling more than is on hand leaves the count at zero
// rather than failing or going negative.
func (p *Product) DeductStock(quantity int64) error {
	if quantity <= 0 {
		return shared.NewValidationError("INVALID_QUANTITY", "Deducted quantity must be positive")
	}

	oldStock := p.Stock
	p.Stock -= quantity
	if p.Stock < 0 {
		p.Stock = 0
	}
	p.Touch()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductStockChangedEvent(p, oldStock, p.Stock, StockChangeDeduct))

	return nil
}

// ChangeStatus moves the product to a new status
func (p *Product) ChangeStatus(status ProductStatus) error {
	if !status.IsValid() {
		return shared.NewValidationError("INVALID_STATUS", "Unknown product status")
	}
	if p.Status == ProductStatusDiscontinued {
		return shared.NewPreconditionError("PRODUCT_DISCONTINUED", "Discontinued products cannot change status")
	}

	p.Status = status
	p.Touch()
	p.IncrementVersion()

	return nil
}

// IsActive reports whether the product can appear on new documents
func (p *Product) IsActive() bool {
	return p.Status == ProductStatusActive
}

// HasProvider reports whether a purchase order can be generated for the
// product
func (p *Product) HasProvider() bool {
	return p.ProviderID != nil
}
