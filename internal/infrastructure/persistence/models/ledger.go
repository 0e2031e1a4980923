package models

import (
	"time"

	"github.com/bookstore/backend/internal/domain/catalog"
	"github.com/bookstore/backend/internal/domain/ledger"
)

// TransactionModel is the persistence model for the Transaction aggregate.
// The hash is the primary key, so a second insert of the same book sequence
// fails with a unique violation.
type TransactionModel struct {
	TransactionHash string    `gorm:"column:transaction_hash;type:varchar(128);primaryKey"`
	CustomerID      uint64    `gorm:"not null;index"`
	CurrencyID      uint64    `gorm:"not null"`
	Date            time.Time `gorm:"column:date;not null"`
	CreatedAt       time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (TransactionModel) TableName() string {
	return "transaction"
}

// ToDomain converts the persistence model to a domain Transaction.
// Books are loaded separately in association order.
func (m *TransactionModel) ToDomain(books []catalog.Books) *ledger.Transaction {
	return &ledger.Transaction{
		Hash:       m.TransactionHash,
		CustomerID: m.CustomerID,
		CurrencyID: m.CurrencyID,
		Date:       m.Date,
		Books:      books,
	}
}

// FromDomain populates the persistence model from a domain Transaction.
func (m *TransactionModel) FromDomain(t *ledger.Transaction) {
	m.TransactionHash = t.Hash
	m.CustomerID = t.CustomerID
	m.CurrencyID = t.CurrencyID
	m.Date = t.Date
}

// TransactionModelFromDomain creates a new persistence model from domain Transaction.
func TransactionModelFromDomain(t *ledger.Transaction) *TransactionModel {
	m := &TransactionModel{}
	m.FromDomain(t)
	return m
}

// BookTransactionModel is one row of the books_transactions association.
// Position keeps the caller's order and allows the same book more than once.
type BookTransactionModel struct {
	TransactionHash string `gorm:"column:transaction_hash;type:varchar(128);primaryKey"`
	Position        int    `gorm:"primaryKey;autoIncrement:false"`
	BookID          uint64 `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (BookTransactionModel) TableName() string {
	return "books_transactions"
}

// BookTransactionModelsFromDomain builds the association rows for a transaction.
func BookTransactionModelsFromDomain(t *ledger.Transaction) []BookTransactionModel {
	links := make([]BookTransactionModel, len(t.Books))
	for i := range t.Books {
		links[i] = BookTransactionModel{
			TransactionHash: t.Hash,
			Position:        i,
			BookID:          t.Books[i].ID,
		}
	}
	return links
}
