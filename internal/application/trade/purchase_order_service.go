package trade

import (
	"context"

	"github.com/comercio/backend/internal/domain/document"
	"github.com/comercio/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// PurchaseOrderService handles purchase order business operations
type PurchaseOrderService struct {
	scope          TransactionScope
	eventPublisher shared.EventPublisher
}

// NewPurchaseOrderService creates a new PurchaseOrderService
func NewPurchaseOrderService(scope TransactionScope) *PurchaseOrderService {
	return &PurchaseOrderService{scope: scope}
}

// SetEventPublisher sets the publisher used to dispatch domain events after
// commit
func (s *PurchaseOrderService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create creates a draft purchase order with its items
func (s *PurchaseOrderService) Create(ctx context.Context, tenantID, createdBy uuid.UUID, req CreatePurchaseOrderRequest) (*PurchaseOrderResponse, error) {
	var (
		response PurchaseOrderResponse
		events   []shared.DomainEvent
	)

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		provider, err := repos.Providers().FindByID(ctx, tenantID, req.ProviderID)
		if err != nil {
			return err
		}

		products, err := resolveProducts(ctx, repos.Products(), tenantID, req.Items)
		if err != nil {
			return err
		}

		return retryOnDuplicateCode(func() error {
			code, err := repos.PurchaseOrders().NextCode(ctx, tenantID)
			if err != nil {
				return err
			}

			po, err := document.NewPurchaseOrder(tenantID, code, provider.ID, provider.Name, createdBy, req.IssueDate, document.NoSource())
			if err != nil {
				return err
			}
			po.CustomerID = req.CustomerID
			po.DestinationID = req.DestinationID
			po.DeliveryAddress = req.DeliveryAddress
			po.ExpectedDate = req.ExpectedDate
			po.Notes = req.Notes

			for _, input := range req.Items {
				product := products[input.ProductID]
				if err := po.AddItem(product.ID, product.Name, input.Quantity, input.UnitPrice); err != nil {
					return err
				}
			}

			po.RecomputeTotals()
			if err := repos.PurchaseOrders().Save(ctx, po); err != nil {
				return err
			}

			events = po.DomainEvents()
			po.ClearDomainEvents()
			response = ToPurchaseOrderResponse(po)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	publishEvents(ctx, s.eventPublisher, events)
	return &response, nil
}

// GetByID retrieves a purchase order by ID
func (s *PurchaseOrderService) GetByID(ctx context.Context, tenantID, orderID uuid.UUID) (*PurchaseOrderResponse, error) {
	var response PurchaseOrderResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		po, err := repos.PurchaseOrders().FindByID(ctx, tenantID, orderID)
		if err != nil {
			return err
		}
		response = ToPurchaseOrderResponse(po)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &response, nil
}

// List retrieves purchase orders of a tenant
func (s *PurchaseOrderService) List(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]PurchaseOrderResponse, int64, error) {
	var (
		responses []PurchaseOrderResponse
		total     int64
	)
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		orders, err := repos.PurchaseOrders().FindAll(ctx, tenantID, filter)
		if err != nil {
			return err
		}
		total, err = repos.PurchaseOrders().Count(ctx, tenantID, filter)
		if err != nil {
			return err
		}
		responses = make([]PurchaseOrderResponse, len(orders))
		for i := range orders {
			responses[i] = ToPurchaseOrderResponse(&orders[i])
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	return responses, total, nil
}

// Update updates a draft purchase order. When items are provided they
// replace the order's lines entirely.
func (s *PurchaseOrderService) Update(ctx context.Context, tenantID, orderID uuid.UUID, req UpdatePurchaseOrderRequest) (*PurchaseOrderResponse, error) {
	var response PurchaseOrderResponse

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		po, err := repos.PurchaseOrders().FindByID(ctx, tenantID, orderID)
		if err != nil {
			return err
		}
		if !po.CanEdit() {
			return shared.NewPreconditionError("NOT_EDITABLE", "Only draft purchase orders can be modified")
		}

		if req.DestinationID != nil {
			po.DestinationID = req.DestinationID
		}
		if req.DeliveryAddress != nil {
			po.DeliveryAddress = *req.DeliveryAddress
		}
		if req.ExpectedDate != nil {
			po.ExpectedDate = req.ExpectedDate
		}
		if req.Notes != nil {
			po.Notes = *req.Notes
		}

		if req.Items != nil {
			products, err := resolveProducts(ctx, repos.Products(), tenantID, req.Items)
			if err != nil {
				return err
			}
			for len(po.Items) > 0 {
				if err := po.RemoveItem(po.Items[0].ID); err != nil {
					return err
				}
			}
			for _, input := range req.Items {
				product := products[input.ProductID]
				if err := po.AddItem(product.ID, product.Name, input.Quantity, input.UnitPrice); err != nil {
					return err
				}
			}
		}

		po.RecomputeTotals()
		po.Touch()
		expected := po.Version
		po.IncrementVersion()
		if err := repos.PurchaseOrders().SaveWithLock(ctx, po, expected); err != nil {
			return err
		}

		response = ToPurchaseOrderResponse(po)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &response, nil
}

// Delete destroys a draft purchase order
func (s *PurchaseOrderService) Delete(ctx context.Context, tenantID, orderID uuid.UUID) error {
	return s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		po, err := repos.PurchaseOrders().FindByID(ctx, tenantID, orderID)
		if err != nil {
			return err
		}
		if !po.CanDelete() {
			return shared.NewPreconditionError("NOT_DELETABLE", "Only draft purchase orders can be deleted")
		}
		return repos.PurchaseOrders().Delete(ctx, tenantID, orderID)
	})
}

// Confirm confirms a draft purchase order
func (s *PurchaseOrderService) Confirm(ctx context.Context, tenantID, orderID uuid.UUID) error {
	return s.transition(ctx, tenantID, orderID, func(po *document.PurchaseOrder) error {
		return po.Confirm()
	})
}

// Receive marks a confirmed purchase order as received. Each item's product
// stock is increased by the item quantity in the same transaction; incoming
// goods are always recorded, the use_stock setting only gates whether sales
// draw inventory down.
func (s *PurchaseOrderService) Receive(ctx context.Context, tenantID, orderID uuid.UUID) error {
	var events []shared.DomainEvent

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		po, err := repos.PurchaseOrders().FindByID(ctx, tenantID, orderID)
		if err != nil {
			return err
		}

		if err := po.Receive(); err != nil {
			return err
		}

		for _, item := range po.Items {
			product, err := repos.Products().FindByID(ctx, tenantID, item.ProductID)
			if err != nil {
				return err
			}
			expected := product.Version
			if err := product.ReceiveStock(item.Quantity); err != nil {
				return err
			}
			if err := repos.Products().SaveWithLock(ctx, product, expected); err != nil {
				return err
			}
			events = append(events, product.DomainEvents()...)
			product.ClearDomainEvents()
		}

		expected := po.Version
		po.IncrementVersion()
		if err := repos.PurchaseOrders().SaveWithLock(ctx, po, expected); err != nil {
			return err
		}

		events = append(events, po.DomainEvents()...)
		po.ClearDomainEvents()
		return nil
	})
	if err != nil {
		return err
	}

	publishEvents(ctx, s.eventPublisher, events)
	return nil
}

// Cancel cancels a draft or confirmed purchase order
func (s *PurchaseOrderService) Cancel(ctx context.Context, tenantID, orderID uuid.UUID) error {
	return s.transition(ctx, tenantID, orderID, func(po *document.PurchaseOrder) error {
		return po.Cancel()
	})
}

func (s *PurchaseOrderService) transition(ctx context.Context, tenantID, orderID uuid.UUID, op func(*document.PurchaseOrder) error) error {
	var events []shared.DomainEvent

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		po, err := repos.PurchaseOrders().FindByID(ctx, tenantID, orderID)
		if err != nil {
			return err
		}
		if err := op(po); err != nil {
			return err
		}
		expected := po.Version
		po.IncrementVersion()
		if err := repos.PurchaseOrders().SaveWithLock(ctx, po, expected); err != nil {
			return err
		}
		events = po.DomainEvents()
		po.ClearDomainEvents()
		return nil
	})
	if err != nil {
		return err
	}

	publishEvents(ctx, s.eventPublisher, events)
	return nil
}
