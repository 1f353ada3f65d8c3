package document

import (
	"testing"
	"time"

	"github.com/comercio/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestQuote(t *testing.T) *Quote {
	t.Helper()
	quote, err := NewQuote(uuid.New(), "COT-0001-2026", uuid.New(), "Juan Perez", uuid.New(), uuid.New(), time.Now())
	require.NoError(t, err)
	quote.ClearDomainEvents()
	return quote
}

func TestNewQuote(t *testing.T) {
	tenantID := uuid.New()
	customerID := uuid.New()
	sellerID := uuid.New()
	createdBy := uuid.New()

	t.Run("valid quote", func(t *testing.T) {
		quote, err := NewQuote(tenantID, "COT-0001-2026", customerID, "Juan Perez", sellerID, createdBy, time.Now())
		require.NoError(t, err)
		assert.Equal(t, QuoteStatusPending, quote.Status)
		assert.Equal(t, tenantID, quote.TenantID)
		require.NotNil(t, quote.CreatedBy)
		assert.Equal(t, createdBy, *quote.CreatedBy)
		assert.True(t, quote.Totals.Total.IsZero())
		require.Len(t, quote.DomainEvents(), 1)
		assert.Equal(t, EventTypeQuoteCreated, quote.DomainEvents()[0].EventType())
	})

	t.Run("empty code", func(t *testing.T) {
		_, err := NewQuote(tenantID, "", customerID, "Juan Perez", sellerID, createdBy, time.Now())
		assert.Error(t, err)
	})

	t.Run("nil customer", func(t *testing.T) {
		_, err := NewQuote(tenantID, "COT-0001-2026", uuid.Nil, "Juan Perez", sellerID, createdBy, time.Now())
		assert.Error(t, err)
	})

	t.Run("zero issue date", func(t *testing.T) {
		_, err := NewQuote(tenantID, "COT-0001-2026", customerID, "Juan Perez", sellerID, createdBy, time.Time{})
		assert.Error(t, err)
	})
}

func TestQuoteItems(t *testing.T) {
	quote := newTestQuote(t)
	productA := uuid.New()
	productB := uuid.New()

	require.NoError(t, quote.AddItem(productA, "Producto A", 2, decimal.NewFromInt(10)))
	require.NoError(t, quote.AddItem(productB, "Producto B", 1, decimal.NewFromInt(20)))

	assert.Equal(t, 2, quote.ItemCount())
	assert.True(t, quote.Totals.Total.Equal(decimal.NewFromInt(40)))
	assert.True(t, quote.Totals.Subtotal.Equal(decimal.RequireFromString("33.90")))
	assert.True(t, quote.Totals.Tax.Equal(decimal.RequireFromString("6.10")))

	t.Run("duplicate product rejected", func(t *testing.T) {
		err := quote.AddItem(productA, "Producto A", 1, decimal.NewFromInt(10))
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "DUPLICATE_PRODUCT", domainErr.Code)
	})

	t.Run("quantity update recomputes totals", func(t *testing.T) {
		item := quote.GetItemByProduct(productA)
		require.NotNil(t, item)
		require.NoError(t, quote.UpdateItemQuantity(item.ID, 3))
		assert.True(t, quote.Totals.Total.Equal(decimal.NewFromInt(50)))
	})

	t.Run("price update recomputes totals", func(t *testing.T) {
		item := quote.GetItemByProduct(productB)
		require.NotNil(t, item)
		require.NoError(t, quote.UpdateItemPrice(item.ID, decimal.NewFromInt(30)))
		assert.True(t, quote.Totals.Total.Equal(decimal.NewFromInt(60)))
	})

	t.Run("remove recomputes totals", func(t *testing.T) {
		item := quote.GetItemByProduct(productB)
		require.NotNil(t, item)
		require.NoError(t, quote.RemoveItem(item.ID))
		assert.Equal(t, 1, quote.ItemCount())
		assert.True(t, quote.Totals.Total.Equal(decimal.NewFromInt(30)))
	})

	t.Run("unknown item", func(t *testing.T) {
		assert.Error(t, quote.RemoveItem(uuid.New()))
		assert.Error(t, quote.UpdateItemQuantity(uuid.New(), 2))
	})
}

func TestQuoteTransitions(t *testing.T) {
	t.Run("accept requires items", func(t *testing.T) {
		quote := newTestQuote(t)
		err := quote.Accept()
		require.Error(t, err)
		assert.True(t, shared.IsKind(err, shared.KindPrecondition))
		assert.Equal(t, QuoteStatusPending, quote.Status)
	})

	t.Run("accept", func(t *testing.T) {
		quote := newTestQuote(t)
		require.NoError(t, quote.AddItem(uuid.New(), "Producto A", 1, decimal.NewFromInt(10)))

		require.NoError(t, quote.Accept())
		assert.Equal(t, QuoteStatusAccepted, quote.Status)
		assert.NotNil(t, quote.AcceptedAt)
		assert.False(t, quote.CanEdit())
		assert.False(t, quote.CanDelete())

		// Second accept fails and changes nothing
		err := quote.Accept()
		assert.True(t, shared.IsKind(err, shared.KindPrecondition))
		assert.Equal(t, QuoteStatusAccepted, quote.Status)
	})

	t.Run("reject", func(t *testing.T) {
		quote := newTestQuote(t)
		require.NoError(t, quote.Reject())
		assert.Equal(t, QuoteStatusRejected, quote.Status)

		assert.Error(t, quote.Accept())
		assert.Error(t, quote.Expire())
	})

	t.Run("expire", func(t *testing.T) {
		quote := newTestQuote(t)
		require.NoError(t, quote.Expire())
		assert.Equal(t, QuoteStatusExpired, quote.Status)
		assert.Error(t, quote.Expire())
	})

	t.Run("no edits after transition", func(t *testing.T) {
		quote := newTestQuote(t)
		require.NoError(t, quote.AddItem(uuid.New(), "Producto A", 1, decimal.NewFromInt(10)))
		require.NoError(t, quote.Accept())

		err := quote.AddItem(uuid.New(), "Producto B", 1, decimal.NewFromInt(20))
		assert.True(t, shared.IsKind(err, shared.KindPrecondition))
	})
}

func TestQuoteStatusMetadata(t *testing.T) {
	tests := []struct {
		status QuoteStatus
		label  string
		badge  string
	}{
		{QuoteStatusPending, "Pendiente", "badge-secondary"},
		{QuoteStatusAccepted, "Aceptada", "badge-success"},
		{QuoteStatusRejected, "Rechazada", "badge-destructive"},
		{QuoteStatusExpired, "Expirada", "badge-info"},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.True(t, tt.status.IsValid())
			assert.Equal(t, tt.label, tt.status.Label())
			assert.Equal(t, tt.badge, tt.status.BadgeClass())
		})
	}

	assert.False(t, QuoteStatus("draft").IsValid())
}
