package catalog

import (
	"errors"
	"strings"
	"testing"

	"github.com/bookstore/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCurrency(t *testing.T) {
	t.Run("creates currency with valid inputs", func(t *testing.T) {
		currency, err := NewCurrency("rub", "Рубли", "643")
		require.NoError(t, err)
		assert.Equal(t, "rub", currency.Name)
		assert.Equal(t, "Рубли", currency.Description)
		assert.Equal(t, "643", currency.Code)
		assert.False(t, currency.IsPersisted())
	})

	t.Run("defaults code per instance", func(t *testing.T) {
		rub, err := NewCurrency("rub", "", "")
		require.NoError(t, err)
		usd, err := NewCurrency("usd", "", "")
		require.NoError(t, err)
		assert.Equal(t, "RUB", rub.Code)
		assert.Equal(t, "USD", usd.Code)
	})

	t.Run("fails with empty name", func(t *testing.T) {
		_, err := NewCurrency("  ", "", "")
		require.Error(t, err)
		assert.True(t, errors.Is(err, shared.ErrValidation))
	})

	t.Run("fails with long name", func(t *testing.T) {
		_, err := NewCurrency("rubles", "", "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "5 characters")
	})

	t.Run("fails with long description", func(t *testing.T) {
		_, err := NewCurrency("rub", "Russian rouble", "")
		require.Error(t, err)
		assert.True(t, errors.Is(err, shared.ErrValidation))
	})
}

func TestNewCategory(t *testing.T) {
	t.Run("creates category", func(t *testing.T) {
		category, err := NewCategory(" horrors ")
		require.NoError(t, err)
		assert.Equal(t, "horrors", category.Name)
	})

	t.Run("fails with empty name", func(t *testing.T) {
		_, err := NewCategory("")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot be empty")
	})

	t.Run("fails with long name", func(t *testing.T) {
		_, err := NewCategory(strings.Repeat("x", 201))
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, "INVALID_NAME", domainErr.Code)
	})
}

func TestNewBook(t *testing.T) {
	cost := decimal.RequireFromString("200.2")

	t.Run("creates book", func(t *testing.T) {
		book, err := NewBook("01-0101-0110", 2, cost, 1, "thriller")
		require.NoError(t, err)
		assert.Equal(t, "01-0101-0110", book.ISBN)
		assert.Equal(t, uint64(2), book.CategoryID)
		assert.Equal(t, uint64(1), book.CurrencyID)
		assert.True(t, book.Cost.Equal(cost))
		assert.Equal(t, "thriller", book.Description)
		assert.Zero(t, book.ID)
	})

	t.Run("description defaults per instance", func(t *testing.T) {
		a, err := NewBook("111", 1, cost, 1, "")
		require.NoError(t, err)
		b, err := NewBook("222", 1, cost, 1, "")
		require.NoError(t, err)
		assert.Equal(t, "ISBN 111", a.Description)
		assert.Equal(t, "ISBN 222", b.Description)
	})

	tests := []struct {
		name       string
		isbn       string
		categoryID uint64
		currencyID uint64
		cost       decimal.Decimal
		code       string
	}{
		{"empty isbn", "", 1, 1, cost, "INVALID_ISBN"},
		{"long isbn", "01234567890123", 1, 1, cost, "INVALID_ISBN"},
		{"missing category", "123", 0, 1, cost, "INVALID_CATEGORY"},
		{"missing currency", "123", 1, 0, cost, "INVALID_CURRENCY"},
		{"negative cost", "123", 1, 1, decimal.NewFromInt(-1), "INVALID_COST"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewBook(tt.isbn, tt.categoryID, tt.cost, tt.currencyID, "")
			require.Error(t, err)
			var domainErr *shared.DomainError
			require.True(t, errors.As(err, &domainErr))
			assert.Equal(t, tt.code, domainErr.Code)
			assert.True(t, errors.Is(err, shared.ErrValidation))
		})
	}
}
