package trade

import (
	"context"

	"github.com/comercio/backend/internal/domain/document"
	"github.com/comercio/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// QuoteService handles quote business operations
type QuoteService struct {
	scope          TransactionScope
	eventPublisher shared.EventPublisher
}

// NewQuoteService creates a new QuoteService
func NewQuoteService(scope TransactionScope) *QuoteService {
	return &QuoteService{scope: scope}
}

// SetEventPublisher sets the publisher used to dispatch domain events after
// commit
func (s *QuoteService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create creates a pending quote with its items
func (s *QuoteService) Create(ctx context.Context, tenantID, createdBy uuid.UUID, req CreateQuoteRequest) (*QuoteResponse, error) {
	var (
		response QuoteResponse
		events   []shared.DomainEvent
	)

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		customer, err := repos.Customers().FindByID(ctx, tenantID, req.CustomerID)
		if err != nil {
			return err
		}

		products, err := resolveProducts(ctx, repos.Products(), tenantID, req.Items)
		if err != nil {
			return err
		}

		return retryOnDuplicateCode(func() error {
			code, err := repos.Quotes().NextCode(ctx, tenantID)
			if err != nil {
				return err
			}

			quote, err := document.NewQuote(tenantID, code, customer.ID, customer.Name, req.SellerID, createdBy, req.IssueDate)
			if err != nil {
				return err
			}
			quote.ExpirationDate = req.ExpirationDate
			quote.DestinationID = req.DestinationID
			quote.Notes = req.Notes

			for _, input := range req.Items {
				product := products[input.ProductID]
				if err := quote.AddItem(product.ID, product.Name, input.Quantity, input.UnitPrice); err != nil {
					return err
				}
			}

			quote.RecomputeTotals()
			if err := repos.Quotes().Save(ctx, quote); err != nil {
				return err
			}

			events = quote.DomainEvents()
			quote.ClearDomainEvents()
			response = ToQuoteResponse(quote)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	publishEvents(ctx, s.eventPublisher, events)
	return &response, nil
}

// GetByID retrieves a quote by ID
func (s *QuoteService) GetByID(ctx context.Context, tenantID, quoteID uuid.UUID) (*QuoteResponse, error) {
	var response QuoteResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		quote, err := repos.Quotes().FindByID(ctx, tenantID, quoteID)
		if err != nil {
			return err
		}
		response = ToQuoteResponse(quote)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &response, nil
}

// List retrieves quotes of a tenant
func (s *QuoteService) List(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]QuoteResponse, int64, error) {
	var (
		responses []QuoteResponse
		total     int64
	)
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		quotes, err := repos.Quotes().FindAll(ctx, tenantID, filter)
		if err != nil {
			return err
		}
		total, err = repos.Quotes().Count(ctx, tenantID, filter)
		if err != nil {
			return err
		}
		responses = make([]QuoteResponse, len(quotes))
		for i := range quotes {
			responses[i] = ToQuoteResponse(&quotes[i])
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	return responses, total, nil
}

// Update updates a pending quote. When items are provided they replace the
// quote's lines entirely.
func (s *QuoteService) Update(ctx context.Context, tenantID, quoteID uuid.UUID, req UpdateQuoteRequest) (*QuoteResponse, error) {
	var response QuoteResponse

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		quote, err := repos.Quotes().FindByID(ctx, tenantID, quoteID)
		if err != nil {
			return err
		}
		if !quote.CanEdit() {
			return shared.NewPreconditionError("NOT_EDITABLE", "Only pending quotes can be modified")
		}

		if req.ExpirationDate != nil {
			quote.ExpirationDate = req.ExpirationDate
		}
		if req.DestinationID != nil {
			quote.DestinationID = req.DestinationID
		}
		if req.Notes != nil {
			quote.Notes = *req.Notes
		}

		if req.Items != nil {
			products, err := resolveProducts(ctx, repos.Products(), tenantID, req.Items)
			if err != nil {
				return err
			}
			for len(quote.Items) > 0 {
				if err := quote.RemoveItem(quote.Items[0].ID); err != nil {
					return err
				}
			}
			for _, input := range req.Items {
				product := products[input.ProductID]
				if err := quote.AddItem(product.ID, product.Name, input.Quantity, input.UnitPrice); err != nil {
					return err
				}
			}
		}

		quote.RecomputeTotals()
		quote.Touch()
		expected := quote.Version
		quote.IncrementVersion()
		if err := repos.Quotes().SaveWithLock(ctx, quote, expected); err != nil {
			return err
		}

		response = ToQuoteResponse(quote)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &response, nil
}

// Delete destroys a pending quote
func (s *QuoteService) Delete(ctx context.Context, tenantID, quoteID uuid.UUID) error {
	return s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		quote, err := repos.Quotes().FindByID(ctx, tenantID, quoteID)
		if err != nil {
			return err
		}
		if !quote.CanDelete() {
			return shared.NewPreconditionError("NOT_DELETABLE", "Only pending quotes can be deleted")
		}
		return repos.Quotes().Delete(ctx, tenantID, quoteID)
	})
}

// Accept accepts a pending quote and, in the same transaction, creates the
// sale that mirrors it: same customer, seller, creator, and destination,
// one sale line per quote line with the quoted price. Any failure rolls the
// whole acceptance back.
func (s *QuoteService) Accept(ctx context.Context, tenantID, quoteID uuid.UUID) (*SaleResponse, error) {
	var (
		response SaleResponse
		events   []shared.DomainEvent
	)

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		quote, err := repos.Quotes().FindByID(ctx, tenantID, quoteID)
		if err != nil {
			return err
		}

		if err := quote.Accept(); err != nil {
			return err
		}

		var sale *document.Sale
		err = retryOnDuplicateCode(func() error {
			code, err := repos.Sales().NextCode(ctx, tenantID)
			if err != nil {
				return err
			}

			createdBy := quote.SellerID
			if quote.CreatedBy != nil {
				createdBy = *quote.CreatedBy
			}
			sale, err = document.NewSale(tenantID, code, quote.CustomerID, quote.CustomerName, quote.SellerID, createdBy, quote.IssueDate, document.FromQuote(quote.ID))
			if err != nil {
				return err
			}
			sale.DestinationID = quote.DestinationID
			sale.Notes = quote.Notes

			for _, item := range quote.Items {
				if err := sale.AddItem(item.ProductID, item.ProductName, item.Quantity, item.UnitPrice); err != nil {
					return err
				}
			}

			sale.RecomputeTotals()
			return repos.Sales().Save(ctx, sale)
		})
		if err != nil {
			return err
		}

		expected := quote.Version
		quote.IncrementVersion()
		if err := repos.Quotes().SaveWithLock(ctx, quote, expected); err != nil {
			return err
		}

		events = append(quote.DomainEvents(), sale.DomainEvents()...)
		quote.ClearDomainEvents()
		sale.ClearDomainEvents()
		response = ToSaleResponse(sale)
		return nil
	})
	if err != nil {
		return nil, err
	}

	publishEvents(ctx, s.eventPublisher, events)
	return &response, nil
}

// Reject rejects a pending quote
func (s *QuoteService) Reject(ctx context.Context, tenantID, quoteID uuid.UUID) error {
	return s.transition(ctx, tenantID, quoteID, (*document.Quote).Reject)
}

// Expire expires a pending quote
func (s *QuoteService) Expire(ctx context.Context, tenantID, quoteID uuid.UUID) error {
	return s.transition(ctx, tenantID, quoteID, (*document.Quote).Expire)
}

func (s *QuoteService) transition(ctx context.Context, tenantID, quoteID uuid.UUID, op func(*document.Quote) error) error {
	var events []shared.DomainEvent

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		quote, err := repos.Quotes().FindByID(ctx, tenantID, quoteID)
		if err != nil {
			return err
		}
		if err := op(quote); err != nil {
			return err
		}
		expected := quote.Version
		quote.IncrementVersion()
		if err := repos.Quotes().SaveWithLock(ctx, quote, expected); err != nil {
			return err
		}
		events = quote.DomainEvents()
		quote.ClearDomainEvents()
		return nil
	})
	if err != nil {
		return err
	}

	publishEvents(ctx, s.eventPublisher, events)
	return nil
}

// Prefill recovers the historical context used to prefill a new quote for a
// customer: the notes of their most recent non-rejected quote and, per
// product, the last observed unit price across all their non-rejected
// quotes. Read-only; empty history yields empty results.
func (s *QuoteService) Prefill(ctx context.Context, tenantID, customerID uuid.UUID) (*QuotePrefillResponse, error) {
	response := QuotePrefillResponse{LatestPrices: map[string]decimal.Decimal{}}

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		notes, err := repos.Quotes().LastNotesForCustomer(ctx, tenantID, customerID)
		if err != nil {
			return err
		}
		response.LastNotes = notes

		prices, err := repos.Quotes().LatestPricesForCustomer(ctx, tenantID, customerID)
		if err != nil {
			return err
		}
		for _, price := range prices {
			response.LatestPrices[price.ProductID.String()] = price.UnitPrice
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &response, nil
}
