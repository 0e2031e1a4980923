package party

import (
	"context"

	"github.com/bookstore/backend/internal/domain/party"
	"github.com/bookstore/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// CustomerService handles customer registration and lookup
type CustomerService struct {
	customerRepo party.CustomerRepository
}

// NewCustomerService creates a new CustomerService
func NewCustomerService(customerRepo party.CustomerRepository) *CustomerService {
	return &CustomerService{customerRepo: customerRepo}
}

// Create validates and stores a new customer. Emails are unique.
func (s *CustomerService) Create(ctx context.Context, req CreateCustomerRequest) (*CustomerResponse, error) {
	customer, err := party.NewCustomer(req.Name, req.Email, req.PhoneNumber)
	if err != nil {
		return nil, err
	}
	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}

	logger.L(ctx).Info("customer created", zap.Uint64("customer_id", customer.ID))
	return ToCustomerResponse(customer), nil
}

// GetByID retrieves a customer by ID
func (s *CustomerService) GetByID(ctx context.Context, id uint64) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToCustomerResponse(customer), nil
}
