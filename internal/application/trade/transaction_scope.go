package trade

import (
	"context"

	"github.com/comercio/backend/internal/domain/catalog"
	"github.com/comercio/backend/internal/domain/document"
	"github.com/comercio/backend/internal/domain/identity"
	"github.com/comercio/backend/internal/domain/partner"
)

// TransactionScope provides transactional access to the repositories a
// document operation touches. Every transition (accept, confirm, receive,
// cancel, generate-purchase-orders) runs inside one Execute call: all of
// its writes commit together or none do.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	// If the function succeeds, the transaction is committed.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the trade repositories within
// a transaction. All repositories returned share the same underlying
// database transaction.
type TransactionalRepositories interface {
	// Quotes returns the quote repository scoped to the current transaction
	Quotes() document.QuoteRepository
	// Sales returns the sale repository scoped to the current transaction
	Sales() document.SaleRepository
	// PurchaseOrders returns the purchase order repository scoped to the
	// current transaction
	PurchaseOrders() document.PurchaseOrderRepository
	// Products returns the product repository scoped to the current
	// transaction
	Products() catalog.ProductRepository
	// Customers returns the customer repository scoped to the current
	// transaction
	Customers() partner.CustomerRepository
	// Providers returns the provider repository scoped to the current
	// transaction
	Providers() partner.ProviderRepository
	// Enterprises returns the enterprise repository scoped to the current
	// transaction
	Enterprises() identity.EnterpriseRepository
}

// NoOpTransactionScope is a transaction scope that doesn't actually use
// transactions. Useful for testing with in-memory repositories.
type NoOpTransactionScope struct {
	quotes         document.QuoteRepository
	sales          document.SaleRepository
	purchaseOrders document.PurchaseOrderRepository
	products       catalog.ProductRepository
	customers      partner.CustomerRepository
	providers      partner.ProviderRepository
	enterprises    identity.EnterpriseRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope over the given
// repositories
func NewNoOpTransactionScope(
	quotes document.QuoteRepository,
	sales document.SaleRepository,
	purchaseOrders document.PurchaseOrderRepository,
	products catalog.ProductRepository,
	customers partner.CustomerRepository,
	providers partner.ProviderRepository,
	enterprises identity.EnterpriseRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		quotes:         quotes,
		sales:          sales,
		purchaseOrders: purchaseOrders,
		products:       products,
		customers:      customers,
		providers:      providers,
		enterprises:    enterprises,
	}
}

// Execute runs the function without a real transaction
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// Quotes returns the quote repository
func (s *NoOpTransactionScope) Quotes() document.QuoteRepository { return s.quotes }

// Sales returns the sale repository
func (s *NoOpTransactionScope) Sales() document.SaleRepository { return s.sales }

// PurchaseOrders returns the purchase order repository
func (s *NoOpTransactionScope) PurchaseOrders() document.PurchaseOrderRepository {
	return s.purchaseOrders
}

// Products returns the product repository
func (s *NoOpTransactionScope) Products() catalog.ProductRepository { return s.products }

// Customers returns the customer repository
func (s *NoOpTransactionScope) Customers() partner.CustomerRepository { return s.customers }

// Providers returns the provider repository
func (s *NoOpTransactionScope) Providers() partner.ProviderRepository { return s.providers }

// Enterprises returns the enterprise repository
func (s *NoOpTransactionScope) Enterprises() identity.EnterpriseRepository { return s.enterprises }

// Ensure NoOpTransactionScope implements both interfaces
var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
