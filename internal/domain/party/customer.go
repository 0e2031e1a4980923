package party

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/bookstore/backend/internal/domain/shared"
)

const (
	maxCustomerNameLength  = 200
	maxCustomerEmailLength = 200
)

// Customer is a buyer that transactions are recorded against.
// Construction validates email and phone; an invalid customer is never built.
type Customer struct {
	shared.BaseEntity
	Name        string
	Email       string
	PhoneNumber string
}

// NewCustomer creates a new validated customer
func NewCustomer(name, email, phoneNumber string) (*Customer, error) {
	if utf8.RuneCountInString(name) > maxCustomerNameLength {
		return nil, shared.NewValidationError("INVALID_NAME", "Customer name cannot exceed 200 characters")
	}
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if err := validatePhone(phoneNumber); err != nil {
		return nil, err
	}

	return &Customer{
		BaseEntity:  shared.NewBaseEntity(),
		Name:        name,
		Email:       email,
		PhoneNumber: phoneNumber,
	}, nil
}

// validateEmail only requires an @; anything stricter would reject
// addresses the ledger has always accepted.
func validateEmail(email string) error {
	if utf8.RuneCountInString(email) > maxCustomerEmailLength {
		return shared.NewValidationError("INVALID_EMAIL", "Email cannot exceed 200 characters")
	}
	if !strings.Contains(email, "@") {
		return shared.NewValidationError("INVALID_EMAIL", "Email must contain @")
	}
	return nil
}

// validatePhone accepts numbers starting with 8 or +7. A +-prefixed number
// must be all digits after the plus.
func validatePhone(phone string) error {
	if !strings.HasPrefix(phone, "8") && !strings.HasPrefix(phone, "+7") {
		return shared.NewValidationError("INVALID_PHONE", "Phone number must start with 8 or +7")
	}
	if rest, ok := strings.CutPrefix(phone, "+"); ok && !isDigits(rest) {
		return shared.NewValidationError("INVALID_PHONE", "Phone number must contain only digits after +")
	}
	return nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// CustomerRepository defines the interface for customer persistence
type CustomerRepository interface {
	// FindByID finds a customer by its ID
	FindByID(ctx context.Context, id uint64) (*Customer, error)

	// FindByEmail finds a customer by its unique email
	FindByEmail(ctx context.Context, email string) (*Customer, error)

	// Exists reports whether a customer with the given ID exists
	Exists(ctx context.Context, id uint64) (bool, error)

	// Save creates a customer and assigns its ID
	Save(ctx context.Context, customer *Customer) error
}
