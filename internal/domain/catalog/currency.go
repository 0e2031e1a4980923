package catalog

import (
	"strings"
	"unicode/utf8"

	"github.com/bookstore/backend/internal/domain/shared"
)

const (
	maxCurrencyNameLength        = 5
	maxCurrencyDescriptionLength = 10
	maxCurrencyCodeLength        = 10
)

// Currency is a unit of account referenced by books and transactions.
// Neither owns it.
type Currency struct {
	shared.BaseEntity
	Code        string
	Name        string
	Description string
}

// NewCurrency creates a new currency.
// An empty code defaults to the upper-cased name of this instance.
func NewCurrency(name, description, code string) (*Currency, error) {
	name = strings.TrimSpace(name)
	if err := validateCurrencyName(name); err != nil {
		return nil, err
	}
	if utf8.RuneCountInString(description) > maxCurrencyDescriptionLength {
		return nil, shared.NewValidationError("INVALID_DESCRIPTION", "Currency description cannot exceed 10 characters")
	}

	code = strings.TrimSpace(code)
	if code == "" {
		code = strings.ToUpper(name)
	}
	if utf8.RuneCountInString(code) > maxCurrencyCodeLength {
		return nil, shared.NewValidationError("INVALID_CODE", "Currency code cannot exceed 10 characters")
	}

	return &Currency{
		BaseEntity:  shared.NewBaseEntity(),
		Code:        code,
		Name:        name,
		Description: description,
	}, nil
}

func validateCurrencyName(name string) error {
	if name == "" {
		return shared.NewValidationError("INVALID_NAME", "Currency name cannot be empty")
	}
	if utf8.RuneCountInString(name) > maxCurrencyNameLength {
		return shared.NewValidationError("INVALID_NAME", "Currency name cannot exceed 5 characters")
	}
	return nil
}
