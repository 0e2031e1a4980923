package catalog

import (
	"strings"
	"unicode/utf8"

	"github.com/bookstore/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

const maxISBNLength = 13

// Books is a catalog entry that can be purchased in a transaction.
// Cost is kept as an exact decimal; totals are rounded only when aggregated.
type Books struct {
	shared.BaseEntity
	ISBN        string
	CategoryID  uint64
	Cost        decimal.Decimal
	CurrencyID  uint64
	Description string
}

// NewBook creates a new book in the given category and currency.
// An empty description is filled in from the ISBN of this instance.
func NewBook(isbn string, categoryID uint64, cost decimal.Decimal, currencyID uint64, description string) (*Books, error) {
	isbn = strings.TrimSpace(isbn)
	if err := validateISBN(isbn); err != nil {
		return nil, err
	}
	if categoryID == 0 {
		return nil, shared.NewValidationError("INVALID_CATEGORY", "Category is required")
	}
	if currencyID == 0 {
		return nil, shared.NewValidationError("INVALID_CURRENCY", "Currency is required")
	}
	if cost.IsNegative() {
		return nil, shared.NewValidationError("INVALID_COST", "Cost cannot be negative")
	}
	if description == "" {
		description = "ISBN " + isbn
	}

	return &Books{
		BaseEntity:  shared.NewBaseEntity(),
		ISBN:        isbn,
		CategoryID:  categoryID,
		Cost:        cost,
		CurrencyID:  currencyID,
		Description: description,
	}, nil
}

func validateISBN(isbn string) error {
	if isbn == "" {
		return shared.NewValidationError("INVALID_ISBN", "ISBN cannot be empty")
	}
	if utf8.RuneCountInString(isbn) > maxISBNLength {
		return shared.NewValidationError("INVALID_ISBN", "ISBN cannot exceed 13 characters")
	}
	return nil
}

// BookView is a book together with its derived category name
type BookView struct {
	Books
	CategoryName string
}
