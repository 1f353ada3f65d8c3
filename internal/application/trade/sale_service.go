package trade

import (
	"context"
	"fmt"
	"time"

	"github.com/comercio/backend/internal/domain/catalog"
	"github.com/comercio/backend/internal/domain/document"
	"github.com/comercio/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// SaleService handles sale business operations
type SaleService struct {
	scope          TransactionScope
	eventPublisher shared.EventPublisher
}

// NewSaleService creates a new SaleService
func NewSaleService(scope TransactionScope) *SaleService {
	return &SaleService{scope: scope}
}

// SetEventPublisher sets the publisher used to dispatch domain events after
// commit
func (s *SaleService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create creates a pending sale with its items
func (s *SaleService) Create(ctx context.Context, tenantID, createdBy uuid.UUID, req CreateSaleRequest) (*SaleResponse, error) {
	var (
		response SaleResponse
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
			code, err := repos.Sales().NextCode(ctx, tenantID)
			if err != nil {
				return err
			}

			sale, err := document.NewSale(tenantID, code, customer.ID, customer.Name, req.SellerID, createdBy, req.IssueDate, document.NoSource())
			if err != nil {
				return err
			}
			sale.DestinationID = req.DestinationID
			sale.Notes = req.Notes

			for _, input := range req.Items {
				product := products[input.ProductID]
				if err := sale.AddItem(product.ID, product.Name, input.Quantity, input.UnitPrice); err != nil {
					return err
				}
			}

			sale.RecomputeTotals()
			if err := repos.Sales().Save(ctx, sale); err != nil {
				return err
			}

			events = sale.DomainEvents()
			sale.ClearDomainEvents()
			response = ToSaleResponse(sale)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	publishEvents(ctx, s.eventPublisher, events)
	return &response, nil
}

// GetByID retrieves a sale by ID
func (s *SaleService) GetByID(ctx context.Context, tenantID, saleID uuid.UUID) (*SaleResponse, error) {
	var response SaleResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		sale, err := repos.Sales().FindByID(ctx, tenantID, saleID)
		if err != nil {
			return err
		}
		response = ToSaleResponse(sale)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &response, nil
}

// List retrieves sales of a tenant
func (s *SaleService) List(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]SaleResponse, int64, error) {
	var (
		responses []SaleResponse
		total     int64
	)
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		sales, err := repos.Sales().FindAll(ctx, tenantID, filter)
		if err != nil {
			return err
		}
		total, err = repos.Sales().Count(ctx, tenantID, filter)
		if err != nil {
			return err
		}
		responses = make([]SaleResponse, len(sales))
		for i := range sales {
			responses[i] = ToSaleResponse(&sales[i])
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	return responses, total, nil
}

// Update updates a pending sale. When items are provided they replace the
// sale's lines entirely.
func (s *SaleService) Update(ctx context.Context, tenantID, saleID uuid.UUID, req UpdateSaleRequest) (*SaleResponse, error) {
	var response SaleResponse

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		sale, err := repos.Sales().FindByID(ctx, tenantID, saleID)
		if err != nil {
			return err
		}
		if !sale.CanEdit() {
			return shared.NewPreconditionError("NOT_EDITABLE", "Only pending sales can be modified")
		}

		if req.DestinationID != nil {
			sale.DestinationID = req.DestinationID
		}
		if req.Notes != nil {
			sale.Notes = *req.Notes
		}

		if req.Items != nil {
			products, err := resolveProducts(ctx, repos.Products(), tenantID, req.Items)
			if err != nil {
				return err
			}
			for len(sale.Items) > 0 {
				if err := sale.RemoveItem(sale.Items[0].ID); err != nil {
					return err
				}
			}
			for _, input := range req.Items {
				product := products[input.ProductID]
				if err := sale.AddItem(product.ID, product.Name, input.Quantity, input.UnitPrice); err != nil {
					return err
				}
			}
		}

		sale.RecomputeTotals()
		sale.Touch()
		expected := sale.Version
		sale.IncrementVersion()
		if err := repos.Sales().SaveWithLock(ctx, sale, expected); err != nil {
			return err
		}

		response = ToSaleResponse(sale)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &response, nil
}

// Delete destroys a pending sale
func (s *SaleService) Delete(ctx context.Context, tenantID, saleID uuid.UUID) error {
	return s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		sale, err := repos.Sales().FindByID(ctx, tenantID, saleID)
		if err != nil {
			return err
		}
		if !sale.CanDelete() {
			return shared.NewPreconditionError("NOT_DELETABLE", "Only pending sales can be deleted")
		}
		return repos.Sales().Delete(ctx, tenantID, saleID)
	})
}

// Confirm confirms a pending sale. When the enterprise tracks stock, each
// item's product stock is decreased by the item quantity, clamped at zero,
// in the same transaction; version-checked saves surface concurrent writers
// as a conflict and roll the confirmation back.
func (s *SaleService) Confirm(ctx context.Context, tenantID, saleID uuid.UUID) error {
	var events []shared.DomainEvent

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		sale, err := repos.Sales().FindByID(ctx, tenantID, saleID)
		if err != nil {
			return err
		}

		if err := sale.Confirm(); err != nil {
			return err
		}

		enterprise, err := repos.Enterprises().FindByID(ctx, tenantID)
		if err != nil {
			return err
		}

		if enterprise.Settings.UseStock {
			for _, item := range sale.Items {
				product, err := repos.Products().FindByID(ctx, tenantID, item.ProductID)
				if err != nil {
					return err
				}
				expected := product.Version
				if err := product.DeductStock(item.Quantity); err != nil {
					return err
				}
				if err := repos.Products().SaveWithLock(ctx, product, expected); err != nil {
					return err
				}
				events = append(events, product.DomainEvents()...)
				product.ClearDomainEvents()
			}
		}

		expected := sale.Version
		sale.IncrementVersion()
		if err := repos.Sales().SaveWithLock(ctx, sale, expected); err != nil {
			return err
		}

		events = append(events, sale.DomainEvents()...)
		sale.ClearDomainEvents()
		return nil
	})
	if err != nil {
		return err
	}

	publishEvents(ctx, s.eventPublisher, events)
	return nil
}

// Cancel cancels a pending sale
func (s *SaleService) Cancel(ctx context.Context, tenantID, saleID uuid.UUID) error {
	var events []shared.DomainEvent

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		sale, err := repos.Sales().FindByID(ctx, tenantID, saleID)
		if err != nil {
			return err
		}
		if err := sale.Cancel(); err != nil {
			return err
		}
		expected := sale.Version
		sale.IncrementVersion()
		if err := repos.Sales().SaveWithLock(ctx, sale, expected); err != nil {
			return err
		}
		events = sale.DomainEvents()
		sale.ClearDomainEvents()
		return nil
	})
	if err != nil {
		return err
	}

	publishEvents(ctx, s.eventPublisher, events)
	return nil
}

// GeneratePurchaseOrders expands a confirmed sale into one draft purchase
// order per distinct provider of its items. Preconditions: the sale is
// confirmed, nothing has been generated from it yet, and the enterprise has
// dropshipping enabled. Every item's product must have a provider;
// otherwise the operation aborts naming all offending products. Items are
// priced at the product's current buy price, not the sale's price.
// All-or-nothing: either every provider's order is created or none are.
func (s *SaleService) GeneratePurchaseOrders(ctx context.Context, tenantID, saleID, createdBy uuid.UUID) ([]PurchaseOrderResponse, error) {
	var (
		responses []PurchaseOrderResponse
		events    []shared.DomainEvent
	)

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		sale, err := repos.Sales().FindByID(ctx, tenantID, saleID)
		if err != nil {
			return err
		}

		if !sale.IsConfirmed() {
			return shared.NewPreconditionError("SALE_NOT_CONFIRMED", "Only confirmed sales can generate purchase orders")
		}

		exists, err := repos.PurchaseOrders().ExistsBySource(ctx, tenantID, document.FromSale(sale.ID))
		if err != nil {
			return err
		}
		if exists {
			return shared.NewPreconditionError("ALREADY_GENERATED", "Purchase orders were already generated from this sale")
		}

		enterprise, err := repos.Enterprises().FindByID(ctx, tenantID)
		if err != nil {
			return err
		}
		if !enterprise.Settings.DropshippingEnabled {
			return shared.NewPreconditionError("DROPSHIPPING_DISABLED", "Enterprise does not allow generating purchase orders from sales")
		}

		groups, err := s.partitionByProvider(ctx, repos, tenantID, sale)
		if err != nil {
			return err
		}

		customer, err := repos.Customers().FindByIDWithUbigeo(ctx, tenantID, sale.CustomerID)
		if err != nil {
			return err
		}

		notes, err := repos.PurchaseOrders().LastNotesForCustomer(ctx, tenantID, sale.CustomerID)
		if err != nil {
			return err
		}
		if notes == "" {
			notes = fmt.Sprintf("OC generada desde venta %s - Cliente: %s", sale.Code, customer.Name)
		}

		today := time.Now()
		for _, group := range groups {
			err := retryOnDuplicateCode(func() error {
				code, err := repos.PurchaseOrders().NextCode(ctx, tenantID)
				if err != nil {
					return err
				}

				po, err := document.NewPurchaseOrder(tenantID, code, group.provider.ID, group.provider.Name, createdBy, today, document.FromSale(sale.ID))
				if err != nil {
					return err
				}
				customerID := sale.CustomerID
				po.CustomerID = &customerID
				po.DestinationID = customer.UbigeoID
				po.DeliveryAddress = customer.DeliveryAddress()
				po.Notes = notes

				for _, line := range group.lines {
					if err := po.AddItem(line.product.ID, line.product.Name, line.quantity, line.product.BuyPrice); err != nil {
						return err
					}
				}

				po.RecomputeTotals()
				if err := repos.PurchaseOrders().Save(ctx, po); err != nil {
					return err
				}

				events = append(events, po.DomainEvents()...)
				po.ClearDomainEvents()
				responses = append(responses, ToPurchaseOrderResponse(po))
				return nil
			})
			if err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	publishEvents(ctx, s.eventPublisher, events)
	return responses, nil
}

type providerGroup struct {
	provider providerRef
	lines    []groupedLine
}

type groupedLine struct {
	product  catalog.Product
	quantity int64
}

// partitionByProvider loads the sale items' products and groups them by
// provider in first-appearance order. Products without a provider abort the
// whole operation; the error lists every offending product name.
func (s *SaleService) partitionByProvider(ctx context.Context, repos TransactionalRepositories, tenantID uuid.UUID, sale *document.Sale) ([]providerGroup, error) {
	itemInputs := make([]ItemInput, len(sale.Items))
	for i, item := range sale.Items {
		itemInputs[i] = ItemInput{ProductID: item.ProductID}
	}
	products, err := resolveProducts(ctx, repos.Products(), tenantID, itemInputs)
	if err != nil {
		return nil, err
	}

	var missing []string
	for _, item := range sale.Items {
		product := products[item.ProductID]
		if !product.HasProvider() {
			missing = append(missing, product.Name)
		}
	}
	if len(missing) > 0 {
		return nil, shared.NewConsistencyError("PROVIDER_MISSING", "Some products have no assigned provider", missing...)
	}

	providerIDs := make([]uuid.UUID, 0)
	linesByProvider := make(map[uuid.UUID][]groupedLine)
	for _, item := range sale.Items {
		product := products[item.ProductID]
		providerID := *product.ProviderID
		if _, ok := linesByProvider[providerID]; !ok {
			providerIDs = append(providerIDs, providerID)
		}
		linesByProvider[providerID] = append(linesByProvider[providerID], groupedLine{product: product, quantity: item.Quantity})
	}

	providers, err := repos.Providers().FindByIDs(ctx, tenantID, providerIDs)
	if err != nil {
		return nil, err
	}
	providersByID := make(map[uuid.UUID]providerRef, len(providers))
	for _, p := range providers {
		providersByID[p.ID] = providerRef{ID: p.ID, Name: p.Name}
	}

	groups := make([]providerGroup, 0, len(providerIDs))
	for _, providerID := range providerIDs {
		provider, ok := providersByID[providerID]
		if !ok {
			return nil, shared.NewConsistencyError("PROVIDER_NOT_FOUND", "Provider does not exist for this enterprise")
		}
		groups = append(groups, providerGroup{provider: provider, lines: linesByProvider[providerID]})
	}
	return groups, nil
}

// providerRef is the slim provider view carried through PO generation
type providerRef struct {
	ID   uuid.UUID
	Name string
}
