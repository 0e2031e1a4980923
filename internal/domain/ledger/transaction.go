package ledger

import (
	"slices"
	"time"

	"github.com/bookstore/backend/internal/domain/catalog"
	"github.com/bookstore/backend/internal/domain/shared"
	"github.com/bookstore/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// Transaction records a customer buying an ordered list of books in a currency.
// It is identified by Hash, never updated, and never deleted.
type Transaction struct {
	Hash       string
	CustomerID uint64
	CurrencyID uint64
	Date       time.Time
	Books      []catalog.Books
}

// NewTransaction builds an unsaved transaction dated now.
// The book list is copied so later changes by the caller do not affect it.
func NewTransaction(hasher *Hasher, customerID, currencyID uint64, books []catalog.Books) (*Transaction, error) {
	if customerID == 0 {
		return nil, shared.NewValidationError("INVALID_CUSTOMER", "Customer is required")
	}
	if currencyID == 0 {
		return nil, shared.NewValidationError("INVALID_CURRENCY", "Currency is required")
	}

	hash, err := hasher.Compute(books)
	if err != nil {
		return nil, err
	}

	return &Transaction{
		Hash:       hash,
		CustomerID: customerID,
		CurrencyID: currencyID,
		Date:       time.Now(),
		Books:      slices.Clone(books),
	}, nil
}

// BookIDs returns the book ids in display order
func (t *Transaction) BookIDs() []uint64 {
	ids := make([]uint64, len(t.Books))
	for i := range t.Books {
		ids[i] = t.Books[i].ID
	}
	return ids
}

// TotalCost sums the costs of the books currently loaded on the transaction
// and rounds half to even to two places. It is computed on every call and
// never stored.
func (t *Transaction) TotalCost() decimal.Decimal {
	costs := make([]decimal.Decimal, len(t.Books))
	for i := range t.Books {
		costs[i] = t.Books[i].Cost
	}
	return valueobject.Sum(costs...)
}
