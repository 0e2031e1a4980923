package persistence

import (
	"context"
	"fmt"

	"github.com/bookstore/backend/internal/domain/catalog"
	"github.com/bookstore/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SeedResult holds the ids of the demo rows
type SeedResult struct {
	CurrencyID  uint64
	CategoryIDs []uint64
	BookIDs     []uint64
	Skipped     bool
}

var demoCategories = []string{"horrors", "business", "comix"}

var demoBooks = []struct {
	isbn     string
	category int
	cost     string
}{
	{"01-0101-0111", 0, "500"},
	{"01-0101-0110", 1, "200.2"},
	{"01-0101-0119", 2, "3000.2"},
}

// SeedDemoData inserts the demo catalog (three categories, the rub currency
// and three books) in one database transaction. It does nothing when any
// category already exists.
func SeedDemoData(ctx context.Context, db *gorm.DB) (*SeedResult, error) {
	result := &SeedResult{}

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		categories := NewGormCategoryRepository(tx)
		existing, err := categories.Count(ctx, shared.DefaultFilter())
		if err != nil {
			return err
		}
		if existing > 0 {
			result.Skipped = true
			return nil
		}

		rub, err := catalog.NewCurrency("rub", "Рубли", "")
		if err != nil {
			return err
		}
		if err := NewGormCurrencyRepository(tx).Save(ctx, rub); err != nil {
			return err
		}
		result.CurrencyID = rub.ID

		for _, name := range demoCategories {
			category, err := catalog.NewCategory(name)
			if err != nil {
				return err
			}
			if err := categories.Save(ctx, category); err != nil {
				return err
			}
			result.CategoryIDs = append(result.CategoryIDs, category.ID)
		}

		books := NewGormBookRepository(tx)
		for _, b := range demoBooks {
			book, err := catalog.NewBook(b.isbn, result.CategoryIDs[b.category], decimal.RequireFromString(b.cost), rub.ID, "")
			if err != nil {
				return err
			}
			if err := books.Save(ctx, book); err != nil {
				return err
			}
			result.BookIDs = append(result.BookIDs, book.ID)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("seed demo data: %w", err)
	}
	return result, nil
}
