package models

import (
	"testing"
	"time"

	"github.com/bookstore/backend/internal/domain/catalog"
	"github.com/bookstore/backend/internal/domain/ledger"
	"github.com/bookstore/backend/internal/domain/party"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookModel_RoundTrip(t *testing.T) {
	book, err := catalog.NewBook("01-0101-0111", 1, decimal.RequireFromString("500"), 2, "")
	require.NoError(t, err)
	book.ID = 7

	model := BookModelFromDomain(book)
	assert.Equal(t, uint64(7), model.ID)
	assert.Equal(t, "01-0101-0111", model.ISBN)

	back := model.ToDomain()
	assert.Equal(t, book.ISBN, back.ISBN)
	assert.Equal(t, book.CategoryID, back.CategoryID)
	assert.Equal(t, book.CurrencyID, back.CurrencyID)
	assert.True(t, book.Cost.Equal(back.Cost))
	assert.Equal(t, book.Description, back.Description)
	assert.Equal(t, book.CreatedAt, back.CreatedAt)
}

func TestCustomerModel_RoundTrip(t *testing.T) {
	customer, err := party.NewCustomer("Ivan", "ivan@example.com", "+79001234567")
	require.NoError(t, err)

	back := CustomerModelFromDomain(customer).ToDomain()
	assert.Equal(t, customer.Name, back.Name)
	assert.Equal(t, customer.Email, back.Email)
	assert.Equal(t, customer.PhoneNumber, back.PhoneNumber)
}

func TestBookTransactionModelsFromDomain(t *testing.T) {
	books := make([]catalog.Books, 3)
	for i, id := range []uint64{5, 3, 5} {
		books[i].ID = id
	}
	tx := &ledger.Transaction{Hash: "abc", CustomerID: 1, CurrencyID: 1, Date: time.Now(), Books: books}

	links := BookTransactionModelsFromDomain(tx)
	require.Len(t, links, 3)
	for i, link := range links {
		assert.Equal(t, "abc", link.TransactionHash)
		assert.Equal(t, i, link.Position)
	}
	assert.Equal(t, uint64(5), links[0].BookID)
	assert.Equal(t, uint64(3), links[1].BookID)
	assert.Equal(t, uint64(5), links[2].BookID)

	model := TransactionModelFromDomain(tx)
	assert.Equal(t, "abc", model.TransactionHash)
	assert.Equal(t, tx.Date, model.ToDomain(books).Date)
}

func TestTableNames(t *testing.T) {
	assert.Equal(t, "currency", CurrencyModel{}.TableName())
	assert.Equal(t, "category", CategoryModel{}.TableName())
	assert.Equal(t, "books", BookModel{}.TableName())
	assert.Equal(t, "customer", CustomerModel{}.TableName())
	assert.Equal(t, "transaction", TransactionModel{}.TableName())
	assert.Equal(t, "books_transactions", BookTransactionModel{}.TableName())
	assert.Len(t, All(), 6)
}
