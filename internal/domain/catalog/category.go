package catalog

import (
	"strings"
	"unicode/utf8"

	"github.com/bookstore/backend/internal/domain/shared"
)

const maxCategoryNameLength = 200

// Category groups books. Names are unique across the catalog and are the
// key AddBook resolves against.
type Category struct {
	shared.BaseEntity
	Name string
}

// NewCategory creates a new category
func NewCategory(name string) (*Category, error) {
	name = strings.TrimSpace(name)
	if err := validateCategoryName(name); err != nil {
		return nil, err
	}

	return &Category{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
	}, nil
}

func validateCategoryName(name string) error {
	if name == "" {
		return shared.NewValidationError("INVALID_NAME", "Category name cannot be empty")
	}
	if utf8.RuneCountInString(name) > maxCategoryNameLength {
		return shared.NewValidationError("INVALID_NAME", "Category name cannot exceed 200 characters")
	}
	return nil
}
