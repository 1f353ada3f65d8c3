package catalog

import (
	"time"

	"github.com/comercio/backend/internal/domain/catalog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateProductRequest represents a request to create a product
type CreateProductRequest struct {
	SKU             string          `json:"sku"`
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	Unit            string          `json:"unit"`
	SourceType      string          `json:"source_type"`
	ProviderID      *uuid.UUID      `json:"provider_id"`
	BuyPrice        decimal.Decimal `json:"buy_price"`
	SellCashPrice   decimal.Decimal `json:"sell_cash_price"`
	SellCreditPrice decimal.Decimal `json:"sell_credit_price"`
	UnitsPerPackage *int            `json:"units_per_package"`
}

// UpdateProductRequest represents a request to update a product. Nil fields
// are left untouched.
type UpdateProductRequest struct {
	Name            *string          `json:"name"`
	Description     *string          `json:"description"`
	BuyPrice        *decimal.Decimal `json:"buy_price"`
	SellCashPrice   *decimal.Decimal `json:"sell_cash_price"`
	SellCreditPrice *decimal.Decimal `json:"sell_credit_price"`
	UnitsPerPackage *int             `json:"units_per_package"`
	Status          *string          `json:"status"`
}

// ProductResponse represents a product
type ProductResponse struct {
	ID              uuid.UUID       `json:"id"`
	SKU             string          `json:"sku,omitempty"`
	Name            string          `json:"name"`
	Description     string          `json:"description,omitempty"`
	Unit            string          `json:"unit"`
	SourceType      string          `json:"source_type"`
	ProviderID      *uuid.UUID      `json:"provider_id,omitempty"`
	Stock           int64           `json:"stock"`
	BuyPrice        decimal.Decimal `json:"buy_price"`
	SellCashPrice   decimal.Decimal `json:"sell_cash_price"`
	SellCreditPrice decimal.Decimal `json:"sell_credit_price"`
	UnitsPerPackage int             `json:"units_per_package"`
	Status          string          `json:"status"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// ToProductResponse converts a product aggregate to a response DTO
func ToProductResponse(p *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:              p.ID,
		SKU:             p.SKU,
		Name:            p.Name,
		Description:     p.Description,
		Unit:            string(p.Unit),
		SourceType:      string(p.SourceType),
		ProviderID:      p.ProviderID,
		Stock:           p.Stock,
		BuyPrice:        p.BuyPrice,
		SellCashPrice:   p.SellCashPrice,
		SellCreditPrice: p.SellCreditPrice,
		UnitsPerPackage: p.UnitsPerPackage,
		Status:          string(p.Status),
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}
