package persistence

import (
	"context"

	"github.com/comercio/backend/internal/application/trade"
	"github.com/comercio/backend/internal/domain/catalog"
	"github.com/comercio/backend/internal/domain/document"
	"github.com/comercio/backend/internal/domain/identity"
	"github.com/comercio/backend/internal/domain/partner"
	"gorm.io/gorm"
)

// GormTransactionScope runs trade use cases inside a single database
// transaction. Every repository handed to the callback is bound to the
// same *gorm.DB transaction, so an error from the callback rolls back
// all writes at once.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs fn inside a transaction, committing on nil and rolling
// back on error
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos trade.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(newTxRepositories(tx))
	})
}

// txRepositories wires the gorm repositories over one shared transaction
type txRepositories struct {
	quotes         *GormQuoteRepository
	sales          *GormSaleRepository
	purchaseOrders *GormPurchaseOrderRepository
	products       *GormProductRepository
	customers      *GormCustomerRepository
	providers      *GormProviderRepository
	enterprises    *GormEnterpriseRepository
}

func newTxRepositories(tx *gorm.DB) *txRepositories {
	return &txRepositories{
		quotes:         NewGormQuoteRepository(tx),
		sales:          NewGormSaleRepository(tx),
		purchaseOrders: NewGormPurchaseOrderRepository(tx),
		products:       NewGormProductRepository(tx),
		customers:      NewGormCustomerRepository(tx),
		providers:      NewGormProviderRepository(tx),
		enterprises:    NewGormEnterpriseRepository(tx),
	}
}

func (r *txRepositories) Quotes() document.QuoteRepository { return r.quotes }

func (r *txRepositories) Sales() document.SaleRepository { return r.sales }

func (r *txRepositories) PurchaseOrders() document.PurchaseOrderRepository {
	return r.purchaseOrders
}

func (r *txRepositories) Products() catalog.ProductRepository { return r.products }

func (r *txRepositories) Customers() partner.CustomerRepository { return r.customers }

func (r *txRepositories) Providers() partner.ProviderRepository { return r.providers }

func (r *txRepositories) Enterprises() identity.EnterpriseRepository { return r.enterprises }

// Ensure the gorm scope satisfies the application contracts
var _ trade.TransactionScope = (*GormTransactionScope)(nil)
var _ trade.TransactionalRepositories = (*txRepositories)(nil)
