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

func newTestPurchaseOrder(t *testing.T, source SourceRef) *PurchaseOrder {
	t.Helper()
	po, err := NewPurchaseOrder(uuid.New(), "OC-0001-2026", uuid.New(), "Distribuidora Norte E.I.R.L.", uuid.New(), time.Now(), source)
	require.NoError(t, err)
	po.ClearDomainEvents()
	return po
}

func TestNewPurchaseOrder(t *testing.T) {
	t.Run("manual order", func(t *testing.T) {
		po := newTestPurchaseOrder(t, NoSource())
		assert.Equal(t, PurchaseOrderStatusDraft, po.Status)
		assert.False(t, po.Source.IsSet())
	})

	t.Run("order generated from a sale", func(t *testing.T) {
		saleID := uuid.New()
		po := newTestPurchaseOrder(t, FromSale(saleID))
		require.True(t, po.Source.IsSet())
		assert.Equal(t, SourceKindSale, po.Source.Kind)
		assert.Equal(t, saleID, *po.Source.ID)
	})

	t.Run("order cannot originate from a quote", func(t *testing.T) {
		_, err := NewPurchaseOrder(uuid.New(), "OC-0001-2026", uuid.New(), "Proveedor", uuid.New(), time.Now(), FromQuote(uuid.New()))
		assert.Error(t, err)
	})

	t.Run("nil provider", func(t *testing.T) {
		_, err := NewPurchaseOrder(uuid.New(), "OC-0001-2026", uuid.Nil, "Proveedor", uuid.New(), time.Now(), NoSource())
		assert.Error(t, err)
	})
}

func TestPurchaseOrderLifecycle(t *testing.T) {
	t.Run("full path draft to received", func(t *testing.T) {
		po := newTestPurchaseOrder(t, NoSource())
		require.NoError(t, po.AddItem(uuid.New(), "Arroz Extra 5kg", 5, decimal.NewFromInt(18)))

		require.NoError(t, po.Confirm())
		assert.Equal(t, PurchaseOrderStatusConfirmed, po.Status)
		assert.False(t, po.CanEdit())

		require.NoError(t, po.Receive())
		assert.Equal(t, PurchaseOrderStatusReceived, po.Status)
		assert.NotNil(t, po.ReceivedAt)

		// Terminal: nothing moves anymore
		assert.Error(t, po.Receive())
		assert.Error(t, po.Cancel())
		assert.Error(t, po.Confirm())
	})

	t.Run("confirm requires items", func(t *testing.T) {
		po := newTestPurchaseOrder(t, NoSource())
		err := po.Confirm()
		assert.True(t, shared.IsKind(err, shared.KindPrecondition))
	})

	t.Run("receive requires confirmed", func(t *testing.T) {
		po := newTestPurchaseOrder(t, NoSource())
		require.NoError(t, po.AddItem(uuid.New(), "Arroz Extra 5kg", 5, decimal.NewFromInt(18)))
		err := po.Receive()
		assert.True(t, shared.IsKind(err, shared.KindPrecondition))
		assert.Equal(t, PurchaseOrderStatusDraft, po.Status)
	})

	t.Run("cancel from draft", func(t *testing.T) {
		po := newTestPurchaseOrder(t, NoSource())
		require.NoError(t, po.Cancel())
		assert.Equal(t, PurchaseOrderStatusCancelled, po.Status)
	})

	t.Run("cancel from confirmed", func(t *testing.T) {
		po := newTestPurchaseOrder(t, NoSource())
		require.NoError(t, po.AddItem(uuid.New(), "Arroz Extra 5kg", 5, decimal.NewFromInt(18)))
		require.NoError(t, po.Confirm())
		require.NoError(t, po.Cancel())
		assert.Equal(t, PurchaseOrderStatusCancelled, po.Status)
		assert.Error(t, po.Cancel())
	})
}

func TestPurchaseOrderItems(t *testing.T) {
	po := newTestPurchaseOrder(t, NoSource())
	productID := uuid.New()

	require.NoError(t, po.AddItem(productID, "Arroz Extra 5kg", 10, decimal.RequireFromString("18.50")))
	assert.True(t, po.Totals.Total.Equal(decimal.RequireFromString("185.00")))
	assert.True(t, po.Totals.Subtotal.Add(po.Totals.Tax).Equal(po.Totals.Total))

	err := po.AddItem(productID, "Arroz Extra 5kg", 2, decimal.NewFromInt(18))
	require.Error(t, err)

	item := po.Items[0]
	require.NoError(t, po.UpdateItemQuantity(item.ID, 4))
	assert.True(t, po.Totals.Total.Equal(decimal.RequireFromString("74.00")))

	require.NoError(t, po.RemoveItem(item.ID))
	assert.Equal(t, 0, po.ItemCount())
	assert.True(t, po.Totals.Total.IsZero())
}

func TestPurchaseOrderStatusMetadata(t *testing.T) {
	assert.Equal(t, "Borrador", PurchaseOrderStatusDraft.Label())
	assert.Equal(t, "Confirmada", PurchaseOrderStatusConfirmed.Label())
	assert.Equal(t, "Recibida", PurchaseOrderStatusReceived.Label())
	assert.Equal(t, "Cancelada", PurchaseOrderStatusCancelled.Label())
	assert.Equal(t, "badge-info", PurchaseOrderStatusConfirmed.BadgeClass())
	assert.Equal(t, "badge-success", PurchaseOrderStatusReceived.BadgeClass())
}

func TestSourceRef(t *testing.T) {
	assert.False(t, NoSource().IsSet())
	assert.True(t, FromQuote(uuid.New()).IsSet())
	assert.True(t, FromSale(uuid.New()).IsSet())
}
