package partner

import (
	"context"
	"errors"

	"github.com/comercio/backend/internal/domain/partner"
	"github.com/comercio/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// CustomerService handles customer business operations
type CustomerService struct {
	customerRepo partner.CustomerRepository
	ubigeoRepo   partner.UbigeoRepository
}

// NewCustomerService creates a new CustomerService
func NewCustomerService(customerRepo partner.CustomerRepository, ubigeoRepo partner.UbigeoRepository) *CustomerService {
	return &CustomerService{customerRepo: customerRepo, ubigeoRepo: ubigeoRepo}
}

// Create creates a new customer
func (s *CustomerService) Create(ctx context.Context, tenantID uuid.UUID, req CreateCustomerRequest) (*CustomerResponse, error) {
	customer, err := partner.NewCustomer(tenantID, req.Name, partner.TaxIDType(req.TaxIDType), req.TaxID)
	if err != nil {
		return nil, err
	}

	customer.ContactName = req.ContactName
	customer.Phone = req.Phone
	customer.Email = req.Email
	customer.Address = req.Address
	customer.Notes = req.Notes

	if req.UbigeoID != nil {
		if err := s.assignUbigeo(ctx, customer, *req.UbigeoID); err != nil {
			return nil, err
		}
	}

	if req.CreditLimit != nil || req.PaymentTerms != nil {
		limit := customer.CreditLimit
		terms := customer.PaymentTerms
		if req.CreditLimit != nil {
			limit = *req.CreditLimit
		}
		if req.PaymentTerms != nil {
			terms = *req.PaymentTerms
		}
		if err := customer.SetCreditTerms(limit, terms); err != nil {
			return nil, err
		}
	}

	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}

	response := ToCustomerResponse(customer)
	return &response, nil
}

// GetByID retrieves a customer by ID, ubigeo included
func (s *CustomerService) GetByID(ctx context.Context, tenantID, customerID uuid.UUID) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByIDWithUbigeo(ctx, tenantID, customerID)
	if err != nil {
		return nil, err
	}
	response := ToCustomerResponse(customer)
	return &response, nil
}

// List retrieves customers of a tenant
func (s *CustomerService) List(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]CustomerResponse, int64, error) {
	customers, err := s.customerRepo.FindAll(ctx, tenantID, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.customerRepo.Count(ctx, tenantID, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]CustomerResponse, len(customers))
	for i := range customers {
		responses[i] = ToCustomerResponse(&customers[i])
	}
	return responses, total, nil
}

// Update applies partial changes to a customer
func (s *CustomerService) Update(ctx context.Context, tenantID, customerID uuid.UUID, req UpdateCustomerRequest) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByIDWithUbigeo(ctx, tenantID, customerID)
	if err != nil {
		return nil, err
	}

	name := customer.Name
	contactName := customer.ContactName
	phone := customer.Phone
	email := customer.Email
	address := customer.Address
	if req.Name != nil {
		name = *req.Name
	}
	if req.ContactName != nil {
		contactName = *req.ContactName
	}
	if req.Phone != nil {
		phone = *req.Phone
	}
	if req.Email != nil {
		email = *req.Email
	}
	if req.Address != nil {
		address = *req.Address
	}
	if err := customer.Update(name, contactName, phone, email, address); err != nil {
		return nil, err
	}

	if req.Notes != nil {
		customer.Notes = *req.Notes
	}

	if req.UbigeoID != nil {
		if err := s.assignUbigeo(ctx, customer, *req.UbigeoID); err != nil {
			return nil, err
		}
	}

	if req.CreditLimit != nil || req.PaymentTerms != nil {
		limit := customer.CreditLimit
		terms := customer.PaymentTerms
		if req.CreditLimit != nil {
			limit = *req.CreditLimit
		}
		if req.PaymentTerms != nil {
			terms = *req.PaymentTerms
		}
		if err := customer.SetCreditTerms(limit, terms); err != nil {
			return nil, err
		}
	}

	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}

	response := ToCustomerResponse(customer)
	return &response, nil
}

// Deactivate marks a customer as inactive
func (s *CustomerService) Deactivate(ctx context.Context, tenantID, customerID uuid.UUID) error {
	customer, err := s.customerRepo.FindByID(ctx, tenantID, customerID)
	if err != nil {
		return err
	}
	customer.Deactivate()
	return s.customerRepo.Save(ctx, customer)
}

func (s *CustomerService) assignUbigeo(ctx context.Context, customer *partner.Customer, ubigeoID uuid.UUID) error {
	ubigeo, err := s.ubigeoRepo.FindByID(ctx, ubigeoID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewConsistencyError("UBIGEO_NOT_FOUND", "Destination does not exist")
		}
		return err
	}
	customer.AssignUbigeo(ubigeo.ID)
	customer.Ubigeo = ubigeo
	return nil
}
