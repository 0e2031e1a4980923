package shared

import (
	"time"
)

// BaseEntity provides common fields for all entities.
// ID is assigned by the store; zero means the entity has not been saved yet.
type BaseEntity struct {
	ID        uint64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsPersisted reports whether the entity has a store-assigned ID
func (e *BaseEntity) IsPersisted() bool {
	return e.ID != 0
}

// NewBaseEntity creates a new unsaved base entity
func NewBaseEntity() BaseEntity {
	now := time.Now()
	return BaseEntity{
		CreatedAt: now,
		UpdatedAt: now,
	}
}
