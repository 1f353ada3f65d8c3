package catalog

import (
	"context"
	"testing"

	"github.com/comercio/backend/internal/domain/catalog"
	"github.com/comercio/backend/internal/domain/partner"
	"github.com/comercio/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProductRepo struct {
	rows []*catalog.Product
}

func (r *stubProductRepo) FindByID(_ context.Context, tenantID, id uuid.UUID) (*catalog.Product, error) {
	for _, p := range r.rows {
		if p.TenantID == tenantID && p.ID == id {
			return p, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *stubProductRepo) FindByIDs(_ context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]catalog.Product, error) {
	wanted := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	var out []catalog.Product
	for _, p := range r.rows {
		if p.TenantID == tenantID && wanted[p.ID] {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *stubProductRepo) FindBySKU(_ context.Context, tenantID uuid.UUID, sku string) (*catalog.Product, error) {
	for _, p := range r.rows {
		if p.TenantID == tenantID && p.SKU == sku {
			return p, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *stubProductRepo) FindAll(_ context.Context, tenantID uuid.UUID, _ shared.Filter) ([]catalog.Product, error) {
	var out []catalog.Product
	for _, p := range r.rows {
		if p.TenantID == tenantID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *stubProductRepo) FindByProvider(_ context.Context, tenantID, providerID uuid.UUID) ([]catalog.Product, error) {
	var out []catalog.Product
	for _, p := range r.rows {
		if p.TenantID == tenantID && p.ProviderID != nil && *p.ProviderID == providerID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *stubProductRepo) Save(_ context.Context, product *catalog.Product) error {
	for i, p := range r.rows {
		if p.ID == product.ID {
			r.rows[i] = product
			return nil
		}
	}
	r.rows = append(r.rows, product)
	return nil
}

func (r *stubProductRepo) SaveWithLock(_ context.Context, product *catalog.Product, expectedVersion int) error {
	for i, p := range r.rows {
		if p.ID == product.ID {
			if p.Version != expectedVersion {
				return shared.ErrConcurrencyConflict
			}
			r.rows[i] = product
			return nil
		}
	}
	return shared.ErrNotFound
}

func (r *stubProductRepo) Count(_ context.Context, tenantID uuid.UUID, _ shared.Filter) (int64, error) {
	var n int64
	for _, p := range r.rows {
		if p.TenantID == tenantID {
			n++
		}
	}
	return n, nil
}

type stubProviderRepo struct {
	rows []*partner.Provider
}

func (r *stubProviderRepo) FindByID(_ context.Context, tenantID, id uuid.UUID) (*partner.Provider, error) {
	for _, p := range r.rows {
		if p.TenantID == tenantID && p.ID == id {
			return p, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *stubProviderRepo) FindByIDs(_ context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]partner.Provider, error) {
	return nil, nil
}

func (r *stubProviderRepo) FindByTaxID(_ context.Context, tenantID uuid.UUID, taxID string) (*partner.Provider, error) {
	for _, p := range r.rows {
		if p.TenantID == tenantID && p.TaxID == taxID {
			return p, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *stubProviderRepo) FindAll(_ context.Context, tenantID uuid.UUID, _ shared.Filter) ([]partner.Provider, error) {
	return nil, nil
}

func (r *stubProviderRepo) Save(_ context.Context, provider *partner.Provider) error {
	r.rows = append(r.rows, provider)
	return nil
}

func newProductService() (*ProductService, *stubProductRepo, *stubProviderRepo) {
	products := &stubProductRepo{}
	providers := &stubProviderRepo{}
	return NewProductService(products, providers), products, providers
}

func TestProductService_Create(t *testing.T) {
	svc, _, providers := newProductService()
	tenantID := uuid.New()

	provider, err := partner.NewProvider(tenantID, "20123456789", "Distribuidora Norte")
	require.NoError(t, err)
	require.NoError(t, providers.Save(context.Background(), provider))

	units := 6
	resp, err := svc.Create(context.Background(), tenantID, CreateProductRequest{
		SKU:             "ARR-5KG",
		Name:            "Arroz extra 5kg",
		Unit:            "un",
		SourceType:      "purchased",
		ProviderID:      &provider.ID,
		BuyPrice:        decimal.RequireFromString("20.00"),
		SellCashPrice:   decimal.RequireFromString("29.50"),
		SellCreditPrice: decimal.RequireFromString("31.00"),
		UnitsPerPackage: &units,
	})
	require.NoError(t, err)

	assert.Equal(t, "Arroz extra 5kg", resp.Name)
	assert.Equal(t, "active", resp.Status)
	assert.Equal(t, int64(0), resp.Stock)
	assert.Equal(t, 6, resp.UnitsPerPackage)
	require.NotNil(t, resp.ProviderID)
	assert.Equal(t, provider.ID, *resp.ProviderID)
}

func TestProductService_Create_DuplicateSKU(t *testing.T) {
	svc, _, _ := newProductService()
	tenantID := uuid.New()

	req := CreateProductRequest{
		SKU:        "PAN-001",
		Name:       "Pan artesanal",
		Unit:       "un",
		SourceType: "manufactured",
	}
	_, err := svc.Create(context.Background(), tenantID, req)
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), tenantID, req)
	require.Error(t, err)
	assert.True(t, shared.IsKind(err, shared.KindConsistency))
}

func TestProductService_Create_PurchasedRequiresProvider(t *testing.T) {
	svc, _, _ := newProductService()

	_, err := svc.Create(context.Background(), uuid.New(), CreateProductRequest{
		Name:       "Arroz extra 5kg",
		Unit:       "un",
		SourceType: "purchased",
	})
	require.Error(t, err)
	assert.True(t, shared.IsKind(err, shared.KindValidation))
}

func TestProductService_Create_UnknownProvider(t *testing.T) {
	svc, _, _ := newProductService()
	ghost := uuid.New()

	_, err := svc.Create(context.Background(), uuid.New(), CreateProductRequest{
		Name:       "Arroz extra 5kg",
		Unit:       "un",
		SourceType: "purchased",
		ProviderID: &ghost,
	})
	require.Error(t, err)
	assert.True(t, shared.IsKind(err, shared.KindConsistency))
}

func TestProductService_Update(t *testing.T) {
	svc, _, _ := newProductService()
	tenantID := uuid.New()

	created, err := svc.Create(context.Background(), tenantID, CreateProductRequest{
		Name:       "Pan artesanal",
		Unit:       "un",
		SourceType: "manufactured",
	})
	require.NoError(t, err)

	name := "Pan artesanal grande"
	buy := decimal.RequireFromString("1.20")
	status := "inactive"
	updated, err := svc.Update(context.Background(), tenantID, created.ID, UpdateProductRequest{
		Name:     &name,
		BuyPrice: &buy,
		Status:   &status,
	})
	require.NoError(t, err)

	assert.Equal(t, name, updated.Name)
	assert.True(t, updated.BuyPrice.Equal(buy))
	assert.Equal(t, "inactive", updated.Status)
	// Untouched prices survive a partial update.
	assert.True(t, updated.SellCashPrice.Equal(created.SellCashPrice))
}

func TestProductService_Update_NegativePrice(t *testing.T) {
	svc, _, _ := newProductService()
	tenantID := uuid.New()

	created, err := svc.Create(context.Background(), tenantID, CreateProductRequest{
		Name:       "Pan artesanal",
		Unit:       "un",
		SourceType: "manufactured",
	})
	require.NoError(t, err)

	bad := decimal.RequireFromString("-1.00")
	_, err = svc.Update(context.Background(), tenantID, created.ID, UpdateProductRequest{BuyPrice: &bad})
	require.Error(t, err)
	assert.True(t, shared.IsKind(err, shared.KindValidation))
}
