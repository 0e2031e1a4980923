package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bookstore/backend/internal/domain/catalog"
	"github.com/bookstore/backend/internal/domain/ledger"
	"github.com/bookstore/backend/internal/domain/party"
	"github.com/bookstore/backend/internal/domain/shared"
	"github.com/bookstore/backend/internal/infrastructure/logger"
	"github.com/bookstore/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// LedgerService creates and reads transactions
type LedgerService struct {
	txRepo       ledger.TransactionRepository
	bookRepo     catalog.BookRepository
	customerRepo party.CustomerRepository
	currencyRepo catalog.CurrencyRepository
	hasher       *ledger.Hasher
	locker       shared.HashLocker
	metrics      *telemetry.LedgerMetrics
}

// NewLedgerService creates a new LedgerService
func NewLedgerService(
	txRepo ledger.TransactionRepository,
	bookRepo catalog.BookRepository,
	customerRepo party.CustomerRepository,
	currencyRepo catalog.CurrencyRepository,
	hasher *ledger.Hasher,
	locker shared.HashLocker,
) *LedgerService {
	if hasher == nil {
		hasher = ledger.DefaultHasher()
	}
	return &LedgerService{
		txRepo:       txRepo,
		bookRepo:     bookRepo,
		customerRepo: customerRepo,
		currencyRepo: currencyRepo,
		hasher:       hasher,
		locker:       locker,
	}
}

// SetMetrics sets the metrics recorder (optional)
func (s *LedgerService) SetMetrics(m *telemetry.LedgerMetrics) {
	s.metrics = m
}

// CreateTransaction returns the transaction identified by the ordered book list,
// creating it if it does not exist yet. created reports whether this call stored it.
//
// An existing transaction is returned unchanged, whatever customer or currency
// the caller passed. Concurrent callers with the same books are serialized by
// the hash lock; a unique violation from a creator on another instance is
// recovered by re-reading the stored row.
func (s *LedgerService) CreateTransaction(ctx context.Context, req CreateTransactionRequest) (resp *TransactionResponse, created bool, err error) {
	start := time.Now()
	outcome := telemetry.OutcomeFailed
	defer func() {
		s.metrics.ObserveCreate(outcome, time.Since(start))
	}()

	ctx, span := telemetry.StartServiceSpan(ctx, "ledger", "create_transaction",
		telemetry.WithAttribute(telemetry.SpanAttrCustomerID, req.CustomerID),
		telemetry.WithAttribute(telemetry.SpanAttrCurrencyID, req.CurrencyID),
		telemetry.WithAttribute(telemetry.SpanAttrBookCount, len(req.BookIDs)),
		telemetry.WithAttribute(telemetry.SpanAttrHashAlgorithm, string(s.hasher.Algorithm())),
	)
	defer func() {
		telemetry.RecordError(span, err)
		span.End()
	}()

	books, err := s.resolveBooks(ctx, req.BookIDs)
	if err != nil {
		return nil, false, err
	}
	hash, err := s.hasher.Compute(books)
	if err != nil {
		return nil, false, err
	}
	ctx = logger.WithTransactionHash(ctx, hash)
	telemetry.SetAttributes(span, telemetry.SpanAttrTransactionHash, hash)

	lockStart := time.Now()
	release, err := s.locker.Acquire(ctx, hash)
	if err != nil {
		return nil, false, fmt.Errorf("lock transaction %s: %w", hash, err)
	}
	defer release()
	s.metrics.ObserveLockWait(time.Since(lockStart))

	existing, err := s.txRepo.FindByHash(ctx, hash)
	switch {
	case err == nil:
		outcome = telemetry.OutcomeReplayed
		telemetry.SetAttributes(span, telemetry.SpanAttrReplayed, true)
		logger.L(ctx).Info("transaction replayed")
		return ToTransactionResponse(existing), false, nil
	case !errors.Is(err, shared.ErrNotFound):
		return nil, false, err
	}

	if err := s.ensureParties(ctx, req.CustomerID, req.CurrencyID); err != nil {
		return nil, false, err
	}

	tx, err := ledger.NewTransaction(s.hasher, req.CustomerID, req.CurrencyID, books)
	if err != nil {
		return nil, false, err
	}

	if err := s.txRepo.Create(ctx, tx); err != nil {
		if !errors.Is(err, shared.ErrAlreadyExists) {
			return nil, false, err
		}
		stored, findErr := s.txRepo.FindByHash(ctx, hash)
		if findErr != nil {
			return nil, false, fmt.Errorf("re-read transaction after conflict: %w", findErr)
		}
		outcome = telemetry.OutcomeConflictRecovered
		telemetry.AddEvent(span, "hash_conflict_recovered")
		logger.L(ctx).Warn("hash conflict recovered")
		return ToTransactionResponse(stored), false, nil
	}

	outcome = telemetry.OutcomeCreated
	s.metrics.ObserveBooks(len(tx.Books))
	logger.L(ctx).Info("transaction created",
		zap.Uint64("customer_id", tx.CustomerID),
		zap.Uint64("currency_id", tx.CurrencyID),
		zap.Int("books", len(tx.Books)),
		zap.String("total_cost", tx.TotalCost().StringFixed(2)),
	)
	return ToTransactionResponse(tx), true, nil
}

// resolveBooks loads the books in caller order. A zero id can never name a
// stored book and is reported as a type mismatch before touching the store.
func (s *LedgerService) resolveBooks(ctx context.Context, ids []uint64) ([]catalog.Books, error) {
	if len(ids) == 0 {
		return nil, shared.NewValidationError("EMPTY_BOOK_LIST", "Transaction must contain at least one book")
	}
	for i, id := range ids {
		if id == 0 {
			return nil, shared.NewTypeMismatchError("NOT_A_BOOK", fmt.Sprintf("Element %d is not a stored book", i))
		}
	}
	return s.bookRepo.FindByIDs(ctx, ids)
}

func (s *LedgerService) ensureParties(ctx context.Context, customerID, currencyID uint64) error {
	exists, err := s.customerRepo.Exists(ctx, customerID)
	if err != nil {
		return err
	}
	if !exists {
		return shared.NewNotFoundError("CUSTOMER_NOT_FOUND", "Customer not found")
	}

	exists, err = s.currencyRepo.Exists(ctx, currencyID)
	if err != nil {
		return err
	}
	if !exists {
		return shared.NewNotFoundError("CURRENCY_NOT_FOUND", "Currency not found")
	}
	return nil
}

// GetTransaction loads a transaction with its books in display order
func (s *LedgerService) GetTransaction(ctx context.Context, hash string) (*TransactionResponse, error) {
	tx, err := s.txRepo.FindByHash(ctx, hash)
	if err != nil {
		return nil, err
	}
	return ToTransactionResponse(tx), nil
}

// TotalCost re-reads the transaction's books and sums their current costs
func (s *LedgerService) TotalCost(ctx context.Context, hash string) (*TotalCostResponse, error) {
	tx, err := s.txRepo.FindByHash(ctx, hash)
	if err != nil {
		return nil, err
	}
	return &TotalCostResponse{
		TransactionHash: tx.Hash,
		TotalCost:       tx.TotalCost().StringFixed(2),
	}, nil
}

// ListByCustomer lists a customer's transactions, newest first
func (s *LedgerService) ListByCustomer(ctx context.Context, customerID uint64, filter shared.Filter) ([]TransactionResponse, int64, error) {
	exists, err := s.customerRepo.Exists(ctx, customerID)
	if err != nil {
		return nil, 0, err
	}
	if !exists {
		return nil, 0, shared.NewNotFoundError("CUSTOMER_NOT_FOUND", "Customer not found")
	}

	txs, err := s.txRepo.FindByCustomer(ctx, customerID, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.txRepo.CountByCustomer(ctx, customerID)
	if err != nil {
		return nil, 0, err
	}

	items := make([]TransactionResponse, len(txs))
	for i := range txs {
		items[i] = *ToTransactionResponse(&txs[i])
	}
	return items, total, nil
}
