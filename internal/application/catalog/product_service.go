package catalog

import (
	"context"
	"errors"

	"github.com/comercio/backend/internal/domain/catalog"
	"github.com/comercio/backend/internal/domain/partner"
	"github.com/comercio/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ProductService handles product business operations
type ProductService struct {
	productRepo  catalog.ProductRepository
	providerRepo partner.ProviderRepository
}

// NewProductService creates a new ProductService
func NewProductService(productRepo catalog.ProductRepository, providerRepo partner.ProviderRepository) *ProductService {
	return &ProductService{productRepo: productRepo, providerRepo: providerRepo}
}

// Create creates a new product
func (s *ProductService) Create(ctx context.Context, tenantID uuid.UUID, req CreateProductRequest) (*ProductResponse, error) {
	if req.SKU != "" {
		_, err := s.productRepo.FindBySKU(ctx, tenantID, req.SKU)
		if err == nil {
			return nil, shared.NewConsistencyError("DUPLICATE_SKU", "A product with this SKU already exists")
		}
		if !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
	}

	if req.ProviderID != nil {
		if _, err := s.providerRepo.FindByID(ctx, tenantID, *req.ProviderID); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewConsistencyError("PROVIDER_NOT_FOUND", "Provider does not exist for this enterprise")
			}
			return nil, err
		}
	}

	product, err := catalog.NewProduct(tenantID, req.Name, catalog.ProductUnit(req.Unit), catalog.ProductSourceType(req.SourceType), req.ProviderID)
	if err != nil {
		return nil, err
	}
	product.SKU = req.SKU
	product.Description = req.Description

	if err := product.SetPrices(req.BuyPrice, req.SellCashPrice, req.SellCreditPrice); err != nil {
		return nil, err
	}
	if req.UnitsPerPackage != nil {
		if err := product.SetPackaging(*req.UnitsPerPackage); err != nil {
			return nil, err
		}
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// GetByID retrieves a product by ID
func (s *ProductService) GetByID(ctx context.Context, tenantID, productID uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, tenantID, productID)
	if err != nil {
		return nil, err
	}
	response := ToProductResponse(product)
	return &response, nil
}

// List retrieves products of a tenant
func (s *ProductService) List(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]ProductResponse, int64, error) {
	products, err := s.productRepo.FindAll(ctx, tenantID, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.productRepo.Count(ctx, tenantID, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]ProductResponse, len(products))
	for i := range products {
		responses[i] = ToProductResponse(&products[i])
	}
	return responses, total, nil
}

// ListByProvider retrieves the products supplied by a provider
func (s *ProductService) ListByProvider(ctx context.Context, tenantID, providerID uuid.UUID) ([]ProductResponse, error) {
	products, err := s.productRepo.FindByProvider(ctx, tenantID, providerID)
	if err != nil {
		return nil, err
	}
	responses := make([]ProductResponse, len(products))
	for i := range products {
		responses[i] = ToProductResponse(&products[i])
	}
	return responses, nil
}

// Update applies partial changes to a product
func (s *ProductService) Update(ctx context.Context, tenantID, productID uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, tenantID, productID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil || req.Description != nil {
		name := product.Name
		description := product.Description
		if req.Name != nil {
			name = *req.Name
		}
		if req.Description != nil {
			description = *req.Description
		}
		if err := product.Update(name, description); err != nil {
			return nil, err
		}
	}

	if req.BuyPrice != nil || req.SellCashPrice != nil || req.SellCreditPrice != nil {
		buy := product.BuyPrice
		sellCash := product.SellCashPrice
		sellCredit := product.SellCreditPrice
		if req.BuyPrice != nil {
			buy = *req.BuyPrice
		}
		if req.SellCashPrice != nil {
			sellCash = *req.SellCashPrice
		}
		if req.SellCreditPrice != nil {
			sellCredit = *req.SellCreditPrice
		}
		if err := product.SetPrices(buy, sellCash, sellCredit); err != nil {
			return nil, err
		}
	}

	if req.UnitsPerPackage != nil {
		if err := product.SetPackaging(*req.UnitsPerPackage); err != nil {
			return nil, err
		}
	}

	if req.Status != nil {
		if err := product.ChangeStatus(catalog.ProductStatus(*req.Status)); err != nil {
			return nil, err
		}
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}
