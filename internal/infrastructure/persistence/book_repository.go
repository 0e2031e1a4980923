package persistence

import (
	"context"
	"fmt"
	"strings"

	"github.com/bookstore/backend/internal/domain/catalog"
	"github.com/bookstore/backend/internal/domain/shared"
	"github.com/bookstore/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormBookRepository implements BookRepository using GORM
type GormBookRepository struct {
	db *gorm.DB
}

// NewGormBookRepository creates a new GormBookRepository
func NewGormBookRepository(db *gorm.DB) *GormBookRepository {
	return &GormBookRepository{db: db}
}

// FindByID finds a book by its ID
func (r *GormBookRepository) FindByID(ctx context.Context, id uint64) (*catalog.Books, error) {
	var model models.BookModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if isNotFound(err) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDs loads books preserving the order and duplicates of ids
func (r *GormBookRepository) FindByIDs(ctx context.Context, ids []uint64) ([]catalog.Books, error) {
	if len(ids) == 0 {
		return []catalog.Books{}, nil
	}

	unique := make([]uint64, 0, len(ids))
	seen := make(map[uint64]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			unique = append(unique, id)
		}
	}

	var rows []models.BookModel
	if err := r.db.WithContext(ctx).Where("id IN ?", unique).Find(&rows).Error; err != nil {
		return nil, err
	}

	byID := make(map[uint64]*models.BookModel, len(rows))
	for i := range rows {
		byID[rows[i].ID] = &rows[i]
	}

	books := make([]catalog.Books, len(ids))
	for i, id := range ids {
		row, ok := byID[id]
		if !ok {
			return nil, shared.NewNotFoundError("BOOK_NOT_FOUND", fmt.Sprintf("Book %d not found", id))
		}
		books[i] = *row.ToDomain()
	}
	return books, nil
}

// FindByISBN finds a book by its unique ISBN
func (r *GormBookRepository) FindByISBN(ctx context.Context, isbn string) (*catalog.Books, error) {
	var model models.BookModel
	if err := r.db.WithContext(ctx).Where("isbn = ?", isbn).First(&model).Error; err != nil {
		if isNotFound(err) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all books matching the filter
func (r *GormBookRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Books, error) {
	var rows []models.BookModel
	query := r.applySearch(r.db.WithContext(ctx).Model(&models.BookModel{}), filter)
	query = applyPageAndOrder(query, filter, BookSortFields, "id")

	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	books := make([]catalog.Books, len(rows))
	for i := range rows {
		books[i] = *rows[i].ToDomain()
	}
	return books, nil
}

// Count counts books matching the filter
func (r *GormBookRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applySearch(r.db.WithContext(ctx).Model(&models.BookModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates a book and assigns its ID
func (r *GormBookRepository) Save(ctx context.Context, book *catalog.Books) error {
	model := models.BookModelFromDomain(book)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if isUniqueViolation(err) {
			return shared.NewConflictError("ISBN_EXISTS", fmt.Sprintf("Book with ISBN %s already exists", book.ISBN))
		}
		return fmt.Errorf("failed to save book: %w", err)
	}
	book.BaseEntity = model.BaseModel.ToDomain()
	return nil
}

func (r *GormBookRepository) applySearch(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(isbn) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	}
	return query
}

// Ensure GormBookRepository implements BookRepository
var _ catalog.BookRepository = (*GormBookRepository)(nil)
