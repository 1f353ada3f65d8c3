package trade

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/comercio/backend/internal/domain/catalog"
	"github.com/comercio/backend/internal/domain/document"
	"github.com/comercio/backend/internal/domain/identity"
	"github.com/comercio/backend/internal/domain/partner"
	"github.com/comercio/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func seedEnterprise(t *testing.T, f *tradeFixture, useStock, dropshipping bool) uuid.UUID {
	t.Helper()
	enterprise, err := identity.NewEnterprise("20123456789", "Comercial Andina SAC", "andina")
	require.NoError(t, err)
	enterprise.UpdateSettings(identity.EnterpriseSettings{UseStock: useStock, DropshippingEnabled: dropshipping})
	enterprise.ClearDomainEvents()
	require.NoError(t, f.enterprises.Save(context.Background(), enterprise))
	return enterprise.ID
}

func seedCustomer(t *testing.T, f *tradeFixture, tenantID uuid.UUID, name string) *partner.Customer {
	t.Helper()
	customer, err := partner.NewCustomer(tenantID, name, partner.TaxIDTypeDNI, "45678912")
	require.NoError(t, err)
	customer.Address = "Av. Arequipa 1234, Lima"
	customer.ClearDomainEvents()
	require.NoError(t, f.customers.Save(context.Background(), customer))
	return customer
}

func seedProvider(t *testing.T, f *tradeFixture, tenantID uuid.UUID, name string) *partner.Provider {
	t.Helper()
	provider, err := partner.NewProvider(tenantID, "20987654321", name)
	require.NoError(t, err)
	provider.ClearDomainEvents()
	require.NoError(t, f.providers.Save(context.Background(), provider))
	return provider
}

func seedProduct(t *testing.T, f *tradeFixture, tenantID uuid.UUID, name string, providerID *uuid.UUID, buyPrice string, stock int64) *catalog.Product {
	t.Helper()
	// Purchased products require a provider; seed provider-less ones as
	// manufactured.
	sourceType := catalog.SourceTypePurchased
	if providerID == nil {
		sourceType = catalog.SourceTypeManufactured
	}
	product, err := catalog.NewProduct(tenantID, name, catalog.UnitPiece, sourceType, providerID)
	require.NoError(t, err)
	require.NoError(t, product.SetPrices(dec(buyPrice), dec(buyPrice).Mul(dec("1.5")), dec(buyPrice).Mul(dec("1.6"))))
	if stock > 0 {
		require.NoError(t, product.ReceiveStock(stock))
	}
	product.ClearDomainEvents()
	require.NoError(t, f.products.Save(context.Background(), product))
	return product
}

func createQuote(t *testing.T, f *tradeFixture, tenantID uuid.UUID, customer *partner.Customer, items []ItemInput) *QuoteResponse {
	t.Helper()
	svc := NewQuoteService(f.scope)
	resp, err := svc.Create(context.Background(), tenantID, uuid.New(), CreateQuoteRequest{
		CustomerID: customer.ID,
		SellerID:   uuid.New(),
		IssueDate:  time.Now(),
		Items:      items,
	})
	require.NoError(t, err)
	return resp
}

func TestQuoteService_Create(t *testing.T) {
	f := newTradeFixture()
	tenantID := seedEnterprise(t, f, false, false)
	customer := seedCustomer(t, f, tenantID, "Bodega San Martin")
	product := seedProduct(t, f, tenantID, "Arroz extra 5kg", nil, "20.00", 0)

	svc := NewQuoteService(f.scope)
	resp, err := svc.Create(context.Background(), tenantID, uuid.New(), CreateQuoteRequest{
		CustomerID: customer.ID,
		SellerID:   uuid.New(),
		IssueDate:  time.Now(),
		Notes:      "Entrega en tienda",
		Items: []ItemInput{
			{ProductID: product.ID, Quantity: 4, UnitPrice: dec("29.50")},
		},
	})
	require.NoError(t, err)

	year := time.Now().Year()
	assert.Equal(t, fmt.Sprintf("COT-0001-%d", year), resp.Code)
	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, "Pendiente", resp.StatusLabel)
	assert.Equal(t, customer.Name, resp.CustomerName)
	require.Len(t, resp.Items, 1)
	assert.True(t, resp.Items[0].Total.Equal(dec("118.00")))
	assert.True(t, resp.Totals.Total.Equal(dec("118.00")))
	assert.True(t, resp.Totals.Subtotal.Equal(dec("100.00")))
	assert.True(t, resp.Totals.Tax.Equal(dec("18.00")))
	assert.True(t, resp.Totals.Subtotal.Add(resp.Totals.Tax).Equal(resp.Totals.Total))
}

func TestQuoteService_Create_SequentialCodes(t *testing.T) {
	f := newTradeFixture()
	tenantID := seedEnterprise(t, f, false, false)
	customer := seedCustomer(t, f, tenantID, "Bodega San Martin")
	product := seedProduct(t, f, tenantID, "Arroz extra 5kg", nil, "20.00", 0)

	items := []ItemInput{{ProductID: product.ID, Quantity: 1, UnitPrice: dec("10.00")}}
	first := createQuote(t, f, tenantID, customer, items)
	second := createQuote(t, f, tenantID, customer, items)

	year := time.Now().Year()
	assert.Equal(t, fmt.Sprintf("COT-0001-%d", year), first.Code)
	assert.Equal(t, fmt.Sprintf("COT-0002-%d", year), second.Code)
}

func TestQuoteService_Create_UnknownProduct(t *testing.T) {
	f := newTradeFixture()
	tenantID := seedEnterprise(t, f, false, false)
	customer := seedCustomer(t, f, tenantID, "Bodega San Martin")

	svc := NewQuoteService(f.scope)
	_, err := svc.Create(context.Background(), tenantID, uuid.New(), CreateQuoteRequest{
		CustomerID: customer.ID,
		SellerID:   uuid.New(),
		IssueDate:  time.Now(),
		Items: []ItemInput{
			{ProductID: uuid.New(), Quantity: 1, UnitPrice: dec("10.00")},
		},
	})
	require.Error(t, err)
	assert.True(t, shared.IsKind(err, shared.KindConsistency))
}

func TestQuoteService_Update_ReplacesItems(t *testing.T) {
	f := newTradeFixture()
	tenantID := seedEnterprise(t, f, false, false)
	customer := seedCustomer(t, f, tenantID, "Bodega San Martin")
	first := seedProduct(t, f, tenantID, "Arroz extra 5kg", nil, "20.00", 0)
	second := seedProduct(t, f, tenantID, "Aceite vegetal 1L", nil, "8.00", 0)

	quote := createQuote(t, f, tenantID, customer, []ItemInput{
		{ProductID: first.ID, Quantity: 2, UnitPrice: dec("29.50")},
	})

	svc := NewQuoteService(f.scope)
	updated, err := svc.Update(context.Background(), tenantID, quote.ID, UpdateQuoteRequest{
		Items: []ItemInput{
			{ProductID: second.ID, Quantity: 3, UnitPrice: dec("11.80")},
		},
	})
	require.NoError(t, err)

	require.Len(t, updated.Items, 1)
	assert.Equal(t, second.ID, updated.Items[0].ProductID)
	assert.True(t, updated.Totals.Total.Equal(dec("35.40")))
}

func TestQuoteService_Update_RejectedNotEditable(t *testing.T) {
	f := newTradeFixture()
	tenantID := seedEnterprise(t, f, false, false)
	customer := seedCustomer(t, f, tenantID, "Bodega San Martin")
	product := seedProduct(t, f, tenantID, "Arroz extra 5kg", nil, "20.00", 0)

	quote := createQuote(t, f, tenantID, customer, []ItemInput{
		{ProductID: product.ID, Quantity: 1, UnitPrice: dec("10.00")},
	})

	svc := NewQuoteService(f.scope)
	require.NoError(t, svc.Reject(context.Background(), tenantID, quote.ID))

	notes := "cambio"
	_, err := svc.Update(context.Background(), tenantID, quote.ID, UpdateQuoteRequest{Notes: &notes})
	require.Error(t, err)
	assert.True(t, shared.IsKind(err, shared.KindPrecondition))
}

func TestQuoteService_Accept_GeneratesSale(t *testing.T) {
	f := newTradeFixture()
	tenantID := seedEnterprise(t, f, false, false)
	customer := seedCustomer(t, f, tenantID, "Bodega San Martin")
	product := seedProduct(t, f, tenantID, "Arroz extra 5kg", nil, "20.00", 0)

	quote := createQuote(t, f, tenantID, customer, []ItemInput{
		{ProductID: product.ID, Quantity: 4, UnitPrice: dec("29.50")},
	})

	svc := NewQuoteService(f.scope)
	sale, err := svc.Accept(context.Background(), tenantID, quote.ID)
	require.NoError(t, err)

	year := time.Now().Year()
	assert.Equal(t, fmt.Sprintf("VTA-0001-%d", year), sale.Code)
	assert.Equal(t, "pending", sale.Status)
	assert.Equal(t, customer.ID, sale.CustomerID)
	assert.Equal(t, string(document.SourceKindQuote), sale.Source.Kind)
	require.NotNil(t, sale.Source.ID)
	assert.Equal(t, quote.ID, *sale.Source.ID)

	// The sale mirrors the quote lines at the quoted prices.
	require.Len(t, sale.Items, 1)
	assert.Equal(t, product.ID, sale.Items[0].ProductID)
	assert.Equal(t, int64(4), sale.Items[0].Quantity)
	assert.True(t, sale.Items[0].UnitPrice.Equal(dec("29.50")))
	assert.True(t, sale.Totals.Total.Equal(quote.Totals.Total))

	stored, err := f.quotes.FindByID(context.Background(), tenantID, quote.ID)
	require.NoError(t, err)
	assert.Equal(t, document.QuoteStatusAccepted, stored.Status)
	assert.NotNil(t, stored.AcceptedAt)
}

func TestQuoteService_Accept_Twice(t *testing.T) {
	f := newTradeFixture()
	tenantID := seedEnterprise(t, f, false, false)
	customer := seedCustomer(t, f, tenantID, "Bodega San Martin")
	product := seedProduct(t, f, tenantID, "Arroz extra 5kg", nil, "20.00", 0)

	quote := createQuote(t, f, tenantID, customer, []ItemInput{
		{ProductID: product.ID, Quantity: 1, UnitPrice: dec("10.00")},
	})

	svc := NewQuoteService(f.scope)
	_, err := svc.Accept(context.Background(), tenantID, quote.ID)
	require.NoError(t, err)

	_, err = svc.Accept(context.Background(), tenantID, quote.ID)
	require.Error(t, err)
	assert.Len(t, f.sales.rows, 1)
}

func TestQuoteService_Delete_OnlyPending(t *testing.T) {
	f := newTradeFixture()
	tenantID := seedEnterprise(t, f, false, false)
	customer := seedCustomer(t, f, tenantID, "Bodega San Martin")
	product := seedProduct(t, f, tenantID, "Arroz extra 5kg", nil, "20.00", 0)

	svc := NewQuoteService(f.scope)

	quote := createQuote(t, f, tenantID, customer, []ItemInput{
		{ProductID: product.ID, Quantity: 1, UnitPrice: dec("10.00")},
	})
	require.NoError(t, svc.Delete(context.Background(), tenantID, quote.ID))
	_, err := f.quotes.FindByID(context.Background(), tenantID, quote.ID)
	assert.True(t, errors.Is(err, shared.ErrNotFound))

	accepted := createQuote(t, f, tenantID, customer, []ItemInput{
		{ProductID: product.ID, Quantity: 1, UnitPrice: dec("10.00")},
	})
	_, err = svc.Accept(context.Background(), tenantID, accepted.ID)
	require.NoError(t, err)

	err = svc.Delete(context.Background(), tenantID, accepted.ID)
	require.Error(t, err)
	assert.True(t, shared.IsKind(err, shared.KindPrecondition))
}

func TestQuoteService_CrossTenantLookup(t *testing.T) {
	f := newTradeFixture()
	tenantID := seedEnterprise(t, f, false, false)
	customer := seedCustomer(t, f, tenantID, "Bodega San Martin")
	product := seedProduct(t, f, tenantID, "Arroz extra 5kg", nil, "20.00", 0)

	quote := createQuote(t, f, tenantID, customer, []ItemInput{
		{ProductID: product.ID, Quantity: 1, UnitPrice: dec("10.00")},
	})

	svc := NewQuoteService(f.scope)
	_, err := svc.GetByID(context.Background(), uuid.New(), quote.ID)
	assert.True(t, errors.Is(err, shared.ErrNotFound))
}

func TestQuoteService_Prefill(t *testing.T) {
	f := newTradeFixture()
	tenantID := seedEnterprise(t, f, false, false)
	customer := seedCustomer(t, f, tenantID, "Bodega San Martin")
	rice := seedProduct(t, f, tenantID, "Arroz extra 5kg", nil, "20.00", 0)
	oil := seedProduct(t, f, tenantID, "Aceite vegetal 1L", nil, "8.00", 0)

	svc := NewQuoteService(f.scope)

	createQuote(t, f, tenantID, customer, []ItemInput{
		{ProductID: rice.ID, Quantity: 2, UnitPrice: dec("28.00")},
		{ProductID: oil.ID, Quantity: 1, UnitPrice: dec("11.00")},
	})

	second := NewQuoteService(f.scope)
	resp, err := second.Create(context.Background(), tenantID, uuid.New(), CreateQuoteRequest{
		CustomerID: customer.ID,
		SellerID:   uuid.New(),
		IssueDate:  time.Now(),
		Notes:      "Pago contra entrega",
		Items: []ItemInput{
			{ProductID: rice.ID, Quantity: 3, UnitPrice: dec("29.50")},
		},
	})
	require.NoError(t, err)

	// A later rejected quote must not bleed into the recovered context.
	rejected := createQuote(t, f, tenantID, customer, []ItemInput{
		{ProductID: rice.ID, Quantity: 1, UnitPrice: dec("99.00")},
	})
	require.NoError(t, svc.Reject(context.Background(), tenantID, rejected.ID))

	prefill, err := svc.Prefill(context.Background(), tenantID, customer.ID)
	require.NoError(t, err)

	assert.Equal(t, resp.Notes, prefill.LastNotes)
	require.Len(t, prefill.LatestPrices, 2)
	assert.True(t, prefill.LatestPrices[rice.ID.String()].Equal(dec("29.50")))
	assert.True(t, prefill.LatestPrices[oil.ID.String()].Equal(dec("11.00")))
}

func TestQuoteService_Prefill_NoHistory(t *testing.T) {
	f := newTradeFixture()
	tenantID := seedEnterprise(t, f, false, false)
	customer := seedCustomer(t, f, tenantID, "Bodega San Martin")

	svc := NewQuoteService(f.scope)
	prefill, err := svc.Prefill(context.Background(), tenantID, customer.ID)
	require.NoError(t, err)

	assert.Empty(t, prefill.LastNotes)
	assert.Empty(t, prefill.LatestPrices)
}
