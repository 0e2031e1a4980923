package catalog

import (
	"context"
	"errors"

	"github.com/bookstore/backend/internal/domain/catalog"
	"github.com/bookstore/backend/internal/domain/shared"
	"github.com/bookstore/backend/internal/infrastructure/logger"
	"github.com/bookstore/backend/internal/infrastructure/telemetry"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CatalogService handles currencies, categories and books
type CatalogService struct {
	currencyRepo catalog.CurrencyRepository
	categoryRepo catalog.CategoryRepository
	bookRepo     catalog.BookRepository
}

// NewCatalogService creates a new CatalogService
func NewCatalogService(
	currencyRepo catalog.CurrencyRepository,
	categoryRepo catalog.CategoryRepository,
	bookRepo catalog.BookRepository,
) *CatalogService {
	return &CatalogService{
		currencyRepo: currencyRepo,
		categoryRepo: categoryRepo,
		bookRepo:     bookRepo,
	}
}

// CreateCurrency creates a new currency
func (s *CatalogService) CreateCurrency(ctx context.Context, req CreateCurrencyRequest) (*CurrencyResponse, error) {
	currency, err := catalog.NewCurrency(req.Name, req.Description, req.Code)
	if err != nil {
		return nil, err
	}
	if err := s.currencyRepo.Save(ctx, currency); err != nil {
		return nil, err
	}
	return ToCurrencyResponse(currency), nil
}

// GetCurrency retrieves a currency by ID
func (s *CatalogService) GetCurrency(ctx context.Context, id uint64) (*CurrencyResponse, error) {
	currency, err := s.currencyRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToCurrencyResponse(currency), nil
}

// CreateCategory creates a new category; names are unique
func (s *CatalogService) CreateCategory(ctx context.Context, req CreateCategoryRequest) (*CategoryResponse, error) {
	category, err := catalog.NewCategory(req.Name)
	if err != nil {
		return nil, err
	}
	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}
	return ToCategoryResponse(category), nil
}

// GetCategory retrieves a category by ID
func (s *CatalogService) GetCategory(ctx context.Context, id uint64) (*CategoryResponse, error) {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToCategoryResponse(category), nil
}

// ListCategories lists categories with the total match count
func (s *CatalogService) ListCategories(ctx context.Context, filter ListFilter) ([]CategoryResponse, int64, error) {
	domainFilter := filter.ToDomainFilter()

	categories, err := s.categoryRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.categoryRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	items := make([]CategoryResponse, len(categories))
	for i := range categories {
		items[i] = *ToCategoryResponse(&categories[i])
	}
	return items, total, nil
}

// AddBook resolves the category by name and stores a new book in it.
// An unknown category is a NotFound error and nothing is stored.
func (s *CatalogService) AddBook(ctx context.Context, req AddBookRequest) (*BookResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "catalog", "add_book",
		telemetry.WithAttribute(telemetry.SpanAttrISBN, req.ISBN),
		telemetry.WithAttribute(telemetry.SpanAttrCategoryName, req.CategoryName),
	)
	defer span.End()

	category, err := s.categoryRepo.FindByName(ctx, req.CategoryName)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	book, err := s.createBook(ctx, req.ISBN, category.ID, req.Cost, req.CurrencyID, req.Description)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	logger.L(ctx).Info("book added",
		zap.Uint64("book_id", book.ID),
		zap.String("isbn", book.ISBN),
		zap.String("category", category.Name),
	)
	return ToBookResponse(book, category.Name), nil
}

// CreateBook stores a new book in a category given by ID
func (s *CatalogService) CreateBook(ctx context.Context, req CreateBookRequest) (*BookResponse, error) {
	category, err := s.categoryRepo.FindByID(ctx, req.CategoryID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewNotFoundError("CATEGORY_NOT_FOUND", "Category not found")
		}
		return nil, err
	}
	book, err := s.createBook(ctx, req.ISBN, category.ID, req.Cost, req.CurrencyID, req.Description)
	if err != nil {
		return nil, err
	}
	return ToBookResponse(book, category.Name), nil
}

func (s *CatalogService) createBook(ctx context.Context, isbn string, categoryID uint64, cost *decimal.Decimal, currencyID uint64, description string) (*catalog.Books, error) {
	if cost == nil {
		return nil, shared.NewValidationError("INVALID_COST", "Cost is required")
	}
	exists, err := s.currencyRepo.Exists(ctx, currencyID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, shared.NewNotFoundError("CURRENCY_NOT_FOUND", "Currency not found")
	}

	book, err := catalog.NewBook(isbn, categoryID, *cost, currencyID, description)
	if err != nil {
		return nil, err
	}
	if err := s.bookRepo.Save(ctx, book); err != nil {
		return nil, err
	}
	return book, nil
}

// GetBook retrieves a book with its derived category name
func (s *CatalogService) GetBook(ctx context.Context, id uint64) (*BookResponse, error) {
	view, err := s.GetBookView(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToBookResponse(&view.Books, view.CategoryName), nil
}

// GetBookView loads a book and resolves its category name.
// A book whose category is gone yields NotFound.
func (s *CatalogService) GetBookView(ctx context.Context, id uint64) (*catalog.BookView, error) {
	book, err := s.bookRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	category, err := s.categoryRepo.FindByID(ctx, book.CategoryID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewNotFoundError("CATEGORY_NOT_FOUND", "Category not found")
		}
		return nil, err
	}
	return &catalog.BookView{Books: *book, CategoryName: category.Name}, nil
}

// ListBooks lists books with the total match count
func (s *CatalogService) ListBooks(ctx context.Context, filter ListFilter) ([]BookResponse, int64, error) {
	domainFilter := filter.ToDomainFilter()

	books, err := s.bookRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.bookRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	names, err := s.categoryNames(ctx, books)
	if err != nil {
		return nil, 0, err
	}

	items := make([]BookResponse, len(books))
	for i := range books {
		items[i] = *ToBookResponse(&books[i], names[books[i].CategoryID])
	}
	return items, total, nil
}

// categoryNames resolves the category names of a page of books in one query
func (s *CatalogService) categoryNames(ctx context.Context, books []catalog.Books) (map[uint64]string, error) {
	ids := make([]uint64, 0, len(books))
	seen := make(map[uint64]struct{}, len(books))
	for i := range books {
		if _, ok := seen[books[i].CategoryID]; !ok {
			seen[books[i].CategoryID] = struct{}{}
			ids = append(ids, books[i].CategoryID)
		}
	}
	names := make(map[uint64]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}

	categories, err := s.categoryRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range categories {
		names[categories[i].ID] = categories[i].Name
	}
	return names, nil
}
