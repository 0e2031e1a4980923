package catalog

import (
	"context"

	"github.com/bookstore/backend/internal/domain/shared"
)

// CurrencyRepository defines the interface for currency persistence
type CurrencyRepository interface {
	// FindByID finds a currency by its ID
	FindByID(ctx context.Context, id uint64) (*Currency, error)

	// Save creates a currency and assigns its ID
	Save(ctx context.Context, currency *Currency) error

	// Exists reports whether a currency with the given ID exists
	Exists(ctx context.Context, id uint64) (bool, error)
}

// CategoryRepository defines the interface for category persistence
type CategoryRepository interface {
	// FindByID finds a category by its ID
	FindByID(ctx context.Context, id uint64) (*Category, error)

	// FindByName finds a category by its unique name
	FindByName(ctx context.Context, name string) (*Category, error)

	// FindByIDs loads the categories with the given IDs; missing IDs are skipped
	FindByIDs(ctx context.Context, ids []uint64) ([]Category, error)

	// FindAll finds all categories matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Category, error)

	// Count counts categories matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// Save creates a category and assigns its ID
	Save(ctx context.Context, category *Category) error
}

// BookRepository defines the interface for book persistence
type BookRepository interface {
	// FindByID finds a book by its ID
	FindByID(ctx context.Context, id uint64) (*Books, error)

	// FindByIDs loads books preserving the order and duplicates of ids.
	// Returns shared.ErrNotFound if any id does not exist.
	FindByIDs(ctx context.Context, ids []uint64) ([]Books, error)

	// FindByISBN finds a book by its unique ISBN
	FindByISBN(ctx context.Context, isbn string) (*Books, error)

	// FindAll finds all books matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Books, error)

	// Count counts books matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// Save creates a book and assigns its ID
	Save(ctx context.Context, book *Books) error
}
