package ledger

import (
	"context"

	"github.com/bookstore/backend/internal/domain/shared"
)

// TransactionRepository defines the interface for transaction persistence
type TransactionRepository interface {
	// FindByHash loads a transaction and its books in display order.
	// Returns shared.ErrNotFound if no transaction has the hash.
	FindByHash(ctx context.Context, hash string) (*Transaction, error)

	// Create stores the transaction row and its book associations atomically.
	// Returns shared.ErrAlreadyExists if the hash is already stored.
	Create(ctx context.Context, tx *Transaction) error

	// FindByCustomer lists a customer's transactions, newest first
	FindByCustomer(ctx context.Context, customerID uint64, filter shared.Filter) ([]Transaction, error)

	// CountByCustomer counts a customer's transactions
	CountByCustomer(ctx context.Context, customerID uint64) (int64, error)
}
