package ledger

import (
	"time"

	"github.com/bookstore/backend/internal/domain/ledger"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest records a purchase of an ordered list of books.
// Book ids may repeat; their order determines the transaction hash.
type CreateTransactionRequest struct {
	CustomerID uint64   `json:"customer_id" binding:"required"`
	CurrencyID uint64   `json:"currency_id" binding:"required"`
	BookIDs    []uint64 `json:"book_ids" binding:"required,min=1,max=1000"`
}

// TransactionBook is one purchased book line, in display order
type TransactionBook struct {
	ID          uint64          `json:"id"`
	ISBN        string          `json:"isbn"`
	Cost        decimal.Decimal `json:"cost"`
	Description string          `json:"description"`
}

// TransactionResponse represents a transaction in API responses.
// TotalCost is recomputed from current book costs on every read.
type TransactionResponse struct {
	TransactionHash string            `json:"transaction_hash"`
	CustomerID      uint64            `json:"customer_id"`
	CurrencyID      uint64            `json:"currency_id"`
	Date            time.Time         `json:"date"`
	Books           []TransactionBook `json:"books"`
	TotalCost       string            `json:"total_cost"`
}

// TotalCostResponse carries only the aggregated cost of a transaction
type TotalCostResponse struct {
	TransactionHash string `json:"transaction_hash"`
	TotalCost       string `json:"total_cost"`
}

// ToTransactionResponse converts a domain transaction to a response
func ToTransactionResponse(tx *ledger.Transaction) *TransactionResponse {
	books := make([]TransactionBook, len(tx.Books))
	for i := range tx.Books {
		books[i] = TransactionBook{
			ID:          tx.Books[i].ID,
			ISBN:        tx.Books[i].ISBN,
			Cost:        tx.Books[i].Cost,
			Description: tx.Books[i].Description,
		}
	}
	return &TransactionResponse{
		TransactionHash: tx.Hash,
		CustomerID:      tx.CustomerID,
		CurrencyID:      tx.CurrencyID,
		Date:            tx.Date,
		Books:           books,
		TotalCost:       tx.TotalCost().StringFixed(2),
	}
}
