package party

import (
	"time"

	"github.com/bookstore/backend/internal/domain/party"
)

// CreateCustomerRequest represents a request to register a customer.
// Email and phone format rules live in the domain constructor.
type CreateCustomerRequest struct {
	Name        string `json:"name" binding:"max=200"`
	Email       string `json:"email" binding:"required,max=200"`
	PhoneNumber string `json:"phone_number" binding:"required,max=20"`
}

// CustomerResponse represents a customer in API responses
type CustomerResponse struct {
	ID          uint64    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	PhoneNumber string    `json:"phone_number"`
	CreatedAt   time.Time `json:"created_at"`
}

// ToCustomerResponse converts a domain customer to a response
func ToCustomerResponse(c *party.Customer) *CustomerResponse {
	return &CustomerResponse{
		ID:          c.ID,
		Name:        c.Name,
		Email:       c.Email,
		PhoneNumber: c.PhoneNumber,
		CreatedAt:   c.CreatedAt,
	}
}
