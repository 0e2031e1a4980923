package persistence

import (
	"context"
	"fmt"

	"github.com/bookstore/backend/internal/domain/catalog"
	"github.com/bookstore/backend/internal/domain/ledger"
	"github.com/bookstore/backend/internal/domain/shared"
	"github.com/bookstore/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormTransactionRepository implements TransactionRepository using GORM
type GormTransactionRepository struct {
	db *gorm.DB
}

// NewGormTransactionRepository creates a new GormTransactionRepository
func NewGormTransactionRepository(db *gorm.DB) *GormTransactionRepository {
	return &GormTransactionRepository{db: db}
}

// FindByHash loads a transaction and its books in display order
func (r *GormTransactionRepository) FindByHash(ctx context.Context, hash string) (*ledger.Transaction, error) {
	db := r.db.WithContext(ctx)

	var model models.TransactionModel
	if err := db.Where("transaction_hash = ?", hash).First(&model).Error; err != nil {
		if isNotFound(err) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}

	books, err := r.loadBooks(db, hash)
	if err != nil {
		return nil, err
	}
	return model.ToDomain(books), nil
}

// Create stores the transaction row and its book associations atomically
func (r *GormTransactionRepository) Create(ctx context.Context, tx *ledger.Transaction) error {
	model := models.TransactionModelFromDomain(tx)
	links := models.BookTransactionModelsFromDomain(tx)

	err := r.db.WithContext(ctx).Transaction(func(db *gorm.DB) error {
		if err := db.Create(model).Error; err != nil {
			return err
		}
		return db.Create(&links).Error
	})
	if err != nil {
		if isUniqueViolation(err) {
			return shared.ErrAlreadyExists
		}
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

// FindByCustomer lists a customer's transactions, newest first by default
func (r *GormTransactionRepository) FindByCustomer(ctx context.Context, customerID uint64, filter shared.Filter) ([]ledger.Transaction, error) {
	db := r.db.WithContext(ctx)

	if filter.OrderBy == "" {
		filter.OrderBy = "date"
		filter.OrderDir = "desc"
	}

	var rows []models.TransactionModel
	query := applyPageAndOrder(db.Where("customer_id = ?", customerID), filter, TransactionSortFields, "date")
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	transactions := make([]ledger.Transaction, len(rows))
	for i := range rows {
		books, err := r.loadBooks(db, rows[i].TransactionHash)
		if err != nil {
			return nil, err
		}
		transactions[i] = *rows[i].ToDomain(books)
	}
	return transactions, nil
}

// CountByCustomer counts a customer's transactions
func (r *GormTransactionRepository) CountByCustomer(ctx context.Context, customerID uint64) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.TransactionModel{}).
		Where("customer_id = ?", customerID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// loadBooks reads the current books of a transaction in association order.
// Costs come from the books table, so they reflect the catalog as of now.
func (r *GormTransactionRepository) loadBooks(db *gorm.DB, hash string) ([]catalog.Books, error) {
	var rows []models.BookModel
	if err := db.Table("books_transactions").
		Select("books.*").
		Joins("JOIN books ON books.id = books_transactions.book_id").
		Where("books_transactions.transaction_hash = ?", hash).
		Order("books_transactions.position ASC").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load transaction books: %w", err)
	}

	books := make([]catalog.Books, len(rows))
	for i := range rows {
		books[i] = *rows[i].ToDomain()
	}
	return books, nil
}

// Ensure GormTransactionRepository implements TransactionRepository
var _ ledger.TransactionRepository = (*GormTransactionRepository)(nil)
