package models

import (
	"time"

	"github.com/bookstore/backend/internal/domain/shared"
)

// BaseModel provides common persistence fields for catalog and party models.
// It maps to the domain's BaseEntity.
type BaseModel struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// ToDomain converts BaseModel to domain BaseEntity
func (m *BaseModel) ToDomain() shared.BaseEntity {
	return shared.BaseEntity{
		ID:        m.ID,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// FromDomainBaseEntity populates BaseModel from domain BaseEntity
func (m *BaseModel) FromDomainBaseEntity(e shared.BaseEntity) {
	m.ID = e.ID
	m.CreatedAt = e.CreatedAt
	m.UpdatedAt = e.UpdatedAt
}

// All returns every persistence model, in dependency order, for schema setup
// on drivers that are not managed by SQL migrations.
func All() []any {
	return []any{
		&CurrencyModel{},
		&CategoryModel{},
		&BookModel{},
		&CustomerModel{},
		&TransactionModel{},
		&BookTransactionModel{},
	}
}
