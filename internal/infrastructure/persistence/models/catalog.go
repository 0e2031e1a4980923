package models

import (
	"github.com/bookstore/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// CurrencyModel is the persistence model for the Currency domain entity.
type CurrencyModel struct {
	BaseModel
	Code        string `gorm:"type:varchar(10);not null"`
	Name        string `gorm:"type:varchar(5);not null"`
	Description string `gorm:"type:varchar(10)"`
}

// TableName returns the table name for GORM
func (CurrencyModel) TableName() string {
	return "currency"
}

// ToDomain converts the persistence model to a domain Currency entity.
func (m *CurrencyModel) ToDomain() *catalog.Currency {
	return &catalog.Currency{
		BaseEntity:  m.BaseModel.ToDomain(),
		Code:        m.Code,
		Name:        m.Name,
		Description: m.Description,
	}
}

// FromDomain populates the persistence model from a domain Currency entity.
func (m *CurrencyModel) FromDomain(c *catalog.Currency) {
	m.FromDomainBaseEntity(c.BaseEntity)
	m.Code = c.Code
	m.Name = c.Name
	m.Description = c.Description
}

// CurrencyModelFromDomain creates a new persistence model from domain Currency.
func CurrencyModelFromDomain(c *catalog.Currency) *CurrencyModel {
	m := &CurrencyModel{}
	m.FromDomain(c)
	return m
}

// CategoryModel is the persistence model for the Category domain entity.
type CategoryModel struct {
	BaseModel
	Name string `gorm:"type:varchar(200);not null;uniqueIndex:idx_category_name"`
}

// TableName returns the table name for GORM
func (CategoryModel) TableName() string {
	return "category"
}

// ToDomain converts the persistence model to a domain Category entity.
func (m *CategoryModel) ToDomain() *catalog.Category {
	return &catalog.Category{
		BaseEntity: m.BaseModel.ToDomain(),
		Name:       m.Name,
	}
}

// FromDomain populates the persistence model from a domain Category entity.
func (m *CategoryModel) FromDomain(c *catalog.Category) {
	m.FromDomainBaseEntity(c.BaseEntity)
	m.Name = c.Name
}

// CategoryModelFromDomain creates a new persistence model from domain Category.
func CategoryModelFromDomain(c *catalog.Category) *CategoryModel {
	m := &CategoryModel{}
	m.FromDomain(c)
	return m
}

// BookModel is the persistence model for the Books domain entity.
type BookModel struct {
	BaseModel
	ISBN        string          `gorm:"column:isbn;type:varchar(13);not null;uniqueIndex:idx_books_isbn"`
	CategoryID  uint64          `gorm:"not null;index"`
	Cost        decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	CurrencyID  uint64          `gorm:"not null;index"`
	Description string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (BookModel) TableName() string {
	return "books"
}

// ToDomain converts the persistence model to a domain Books entity.
func (m *BookModel) ToDomain() *catalog.Books {
	return &catalog.Books{
		BaseEntity:  m.BaseModel.ToDomain(),
		ISBN:        m.ISBN,
		CategoryID:  m.CategoryID,
		Cost:        m.Cost,
		CurrencyID:  m.CurrencyID,
		Description: m.Description,
	}
}

// FromDomain populates the persistence model from a domain Books entity.
func (m *BookModel) FromDomain(b *catalog.Books) {
	m.FromDomainBaseEntity(b.BaseEntity)
	m.ISBN = b.ISBN
	m.CategoryID = b.CategoryID
	m.Cost = b.Cost
	m.CurrencyID = b.CurrencyID
	m.Description = b.Description
}

// BookModelFromDomain creates a new persistence model from domain Books.
func BookModelFromDomain(b *catalog.Books) *BookModel {
	m := &BookModel{}
	m.FromDomain(b)
	return m
}
