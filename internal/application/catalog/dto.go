package catalog

import (
	"time"

	"github.com/bookstore/backend/internal/domain/catalog"
	"github.com/bookstore/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// CreateCurrencyRequest represents a request to create a currency
type CreateCurrencyRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=5"`
	Description string `json:"description" binding:"max=10"`
	Code        string `json:"code" binding:"max=10"`
}

// CurrencyResponse represents a currency in API responses
type CurrencyResponse struct {
	ID          uint64    `json:"id"`
	Code        string    `json:"code"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreateCategoryRequest represents a request to create a category
type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required,min=1,max=200"`
}

// CategoryResponse represents a category in API responses
type CategoryResponse struct {
	ID        uint64    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// AddBookRequest adds a book to a category given by name
type AddBookRequest struct {
	ISBN         string           `json:"isbn" binding:"required,min=1,max=13"`
	CategoryName string           `json:"category" binding:"required,min=1,max=200"`
	Cost         *decimal.Decimal `json:"cost" binding:"required"`
	CurrencyID   uint64           `json:"currency_id" binding:"required"`
	Description  string           `json:"description" binding:"max=2000"`
}

// CreateBookRequest adds a book to a category given by id.
// CategoryID comes from the request path.
type CreateBookRequest struct {
	ISBN        string           `json:"isbn" binding:"required,min=1,max=13"`
	CategoryID  uint64           `json:"-"`
	Cost        *decimal.Decimal `json:"cost" binding:"required"`
	CurrencyID  uint64           `json:"currency_id" binding:"required"`
	Description string           `json:"description" binding:"max=2000"`
}

// BookResponse represents a book in API responses
type BookResponse struct {
	ID           uint64          `json:"id"`
	ISBN         string          `json:"isbn"`
	CategoryID   uint64          `json:"category_id"`
	CategoryName string          `json:"category,omitempty"`
	Cost         decimal.Decimal `json:"cost"`
	CurrencyID   uint64          `json:"currency_id"`
	Description  string          `json:"description"`
	CreatedAt    time.Time       `json:"created_at"`
}

// ListFilter holds paging, search and sort options for list endpoints
type ListFilter struct {
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	Search   string `form:"search" binding:"max=100"`
	SortBy   string `form:"sort_by"`
	SortDesc bool   `form:"sort_desc"`
}

// ToDomainFilter converts the request filter into a repository filter
func (f ListFilter) ToDomainFilter() shared.Filter {
	filter := shared.DefaultFilter()
	if f.Page > 0 {
		filter.Page = f.Page
	}
	if f.PageSize > 0 {
		filter.PageSize = f.PageSize
	}
	filter.Search = f.Search
	if f.SortBy != "" {
		filter.OrderBy = f.SortBy
	}
	if f.SortDesc {
		filter.OrderDir = "desc"
	}
	return filter
}

// ToCurrencyResponse converts a domain currency to a response
func ToCurrencyResponse(c *catalog.Currency) *CurrencyResponse {
	return &CurrencyResponse{
		ID:          c.ID,
		Code:        c.Code,
		Name:        c.Name,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
	}
}

// ToCategoryResponse converts a domain category to a response
func ToCategoryResponse(c *catalog.Category) *CategoryResponse {
	return &CategoryResponse{
		ID:        c.ID,
		Name:      c.Name,
		CreatedAt: c.CreatedAt,
	}
}

// ToBookResponse converts a domain book to a response; categoryName may be empty
func ToBookResponse(b *catalog.Books, categoryName string) *BookResponse {
	return &BookResponse{
		ID:           b.ID,
		ISBN:         b.ISBN,
		CategoryID:   b.CategoryID,
		CategoryName: categoryName,
		Cost:         b.Cost,
		CurrencyID:   b.CurrencyID,
		Description:  b.Description,
		CreatedAt:    b.CreatedAt,
	}
}
