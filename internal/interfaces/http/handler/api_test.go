package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	catalogapp "github.com/bookstore/backend/internal/application/catalog"
	ledgerapp "github.com/bookstore/backend/internal/application/ledger"
	partyapp "github.com/bookstore/backend/internal/application/party"
	"github.com/bookstore/backend/internal/domain/ledger"
	"github.com/bookstore/backend/internal/infrastructure/cache"
	"github.com/bookstore/backend/internal/infrastructure/config"
	"github.com/bookstore/backend/internal/infrastructure/persistence"
	"github.com/bookstore/backend/internal/interfaces/http/middleware"
	"github.com/bookstore/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testAPI struct {
	engine *gin.Engine
	seed   *persistence.SeedResult
}

// newTestAPI wires the real services over an in-memory SQLite database
// seeded with the demo catalog
func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	middleware.SetupValidator()

	db, err := persistence.NewDatabase(&config.DatabaseConfig{
		Driver:     config.DriverSQLite,
		SQLitePath: ":memory:",
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, db.AutoMigrate())

	seed, err := persistence.SeedDemoData(context.Background(), db.DB)
	require.NoError(t, err)

	currencyRepo := persistence.NewGormCurrencyRepository(db.DB)
	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	bookRepo := persistence.NewGormBookRepository(db.DB)
	customerRepo := persistence.NewGormCustomerRepository(db.DB)
	txRepo := persistence.NewGormTransactionRepository(db.DB)

	ledgerService := ledgerapp.NewLedgerService(txRepo, bookRepo, customerRepo, currencyRepo,
		ledger.DefaultHasher(), cache.NewInMemoryHashLocker(time.Second))

	engine := gin.New()
	engine.Use(middleware.RequestID())
	engine.GET("/health", NewHealthHandler(db).Check)

	r := router.NewRouter(engine)
	r.Register(NewCatalogHandler(catalogapp.NewCatalogService(currencyRepo, categoryRepo, bookRepo)).Routes())
	r.Register(NewCustomerHandler(partyapp.NewCustomerService(customerRepo), ledgerService).Routes())
	r.Register(NewLedgerHandler(ledgerService).Routes())
	r.Setup()

	return &testAPI{engine: engine, seed: seed}
}

func (a *testAPI) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)
	return w
}

// data decodes the success envelope into out
func data(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	var envelope struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.True(t, envelope.Success, w.Body.String())
	require.NoError(t, json.Unmarshal(envelope.Data, out))
}

func (a *testAPI) createCustomer(t *testing.T, email string) uint64 {
	t.Helper()
	w := a.do(t, http.MethodPost, "/api/v1/party/customers", map[string]string{
		"name": "Ivan", "email": email, "phone_number": "+79001234567",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var customer partyapp.CustomerResponse
	data(t, w, &customer)
	return customer.ID
}

func TestAPI_Transactions(t *testing.T) {
	api := newTestAPI(t)
	customerID := api.createCustomer(t, "ivan@example.com")
	books := api.seed.BookIDs

	create := func(ids ...uint64) *httptest.ResponseRecorder {
		return api.do(t, http.MethodPost, "/api/v1/ledger/transactions", map[string]any{
			"customer_id": customerID,
			"currency_id": api.seed.CurrencyID,
			"book_ids":    ids,
		})
	}

	w := create(books[0], books[1], books[2])
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var first ledgerapp.TransactionResponse
	data(t, w, &first)
	assert.Equal(t, "3700.40", first.TotalCost)
	assert.Len(t, first.Books, 3)

	t.Run("same books replay with 200", func(t *testing.T) {
		w := create(books[0], books[1], books[2])
		require.Equal(t, http.StatusOK, w.Code)
		var again ledgerapp.TransactionResponse
		data(t, w, &again)
		assert.Equal(t, first.TransactionHash, again.TransactionHash)
	})

	t.Run("reversed order is a different transaction", func(t *testing.T) {
		w := create(books[2], books[1], books[0])
		require.Equal(t, http.StatusCreated, w.Code)
		var reversed ledgerapp.TransactionResponse
		data(t, w, &reversed)
		assert.NotEqual(t, first.TransactionHash, reversed.TransactionHash)
	})

	t.Run("get and total by hash", func(t *testing.T) {
		w := api.do(t, http.MethodGet, "/api/v1/ledger/transactions/"+first.TransactionHash, nil)
		require.Equal(t, http.StatusOK, w.Code)

		w = api.do(t, http.MethodGet, "/api/v1/ledger/transactions/"+first.TransactionHash+"/total", nil)
		require.Equal(t, http.StatusOK, w.Code)
		var total ledgerapp.TotalCostResponse
		data(t, w, &total)
		assert.Equal(t, "3700.40", total.TotalCost)
	})

	t.Run("customer transactions are listed", func(t *testing.T) {
		w := api.do(t, http.MethodGet, "/api/v1/party/customers/"+itoa(customerID)+"/transactions", nil)
		require.Equal(t, http.StatusOK, w.Code)
		var list []ledgerapp.TransactionResponse
		data(t, w, &list)
		assert.Len(t, list, 2)
	})

	t.Run("unknown hash is 404", func(t *testing.T) {
		w := api.do(t, http.MethodGet, "/api/v1/ledger/transactions/deadbeef", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"error":"Not found"}`, w.Body.String())
	})

	t.Run("unknown book is 404", func(t *testing.T) {
		w := create(books[0], 999)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("zero book id is a type mismatch", func(t *testing.T) {
		w := create(books[0], 0)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("empty book list is rejected", func(t *testing.T) {
		w := create()
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown customer is 404", func(t *testing.T) {
		w := api.do(t, http.MethodPost, "/api/v1/ledger/transactions", map[string]any{
			"customer_id": customerID + 100,
			"currency_id": api.seed.CurrencyID,
			"book_ids":    []uint64{books[1]},
		})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestAPI_Catalog(t *testing.T) {
	api := newTestAPI(t)

	t.Run("add book by category name", func(t *testing.T) {
		w := api.do(t, http.MethodPost, "/api/v1/catalog/books", map[string]any{
			"isbn":        "01-0101-0200",
			"category":    "comix",
			"cost":        "12.5",
			"currency_id": api.seed.CurrencyID,
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		var book catalogapp.BookResponse
		data(t, w, &book)
		assert.Equal(t, "comix", book.CategoryName)

		w = api.do(t, http.MethodGet, "/api/v1/catalog/books/"+itoa(book.ID), nil)
		require.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("add book by category id", func(t *testing.T) {
		path := "/api/v1/catalog/categories/" + itoa(api.seed.CategoryIDs[1]) + "/books"
		w := api.do(t, http.MethodPost, path, map[string]any{
			"isbn":        "01-0101-0210",
			"cost":        "7.25",
			"currency_id": api.seed.CurrencyID,
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		var book catalogapp.BookResponse
		data(t, w, &book)
		assert.Equal(t, api.seed.CategoryIDs[1], book.CategoryID)
		assert.Equal(t, "business", book.CategoryName)

		w = api.do(t, http.MethodPost, "/api/v1/catalog/categories/9999/books", map[string]any{
			"isbn":        "01-0101-0211",
			"cost":        "1",
			"currency_id": api.seed.CurrencyID,
		})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("listed books carry their category name", func(t *testing.T) {
		w := api.do(t, http.MethodGet, "/api/v1/catalog/books?page_size=100", nil)
		require.Equal(t, http.StatusOK, w.Code)
		var list []catalogapp.BookResponse
		data(t, w, &list)
		require.NotEmpty(t, list)
		for _, book := range list {
			assert.NotEmpty(t, book.CategoryName, "book %d", book.ID)
		}
	})

	t.Run("unknown category is 404", func(t *testing.T) {
		w := api.do(t, http.MethodPost, "/api/v1/catalog/books", map[string]any{
			"isbn":        "01-0101-0201",
			"category":    "poetry",
			"cost":        "1",
			"currency_id": api.seed.CurrencyID,
		})
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"error":"Not found"}`, w.Body.String())

		w = api.do(t, http.MethodGet, "/api/v1/catalog/books?search=01-0101-0201", nil)
		var list []catalogapp.BookResponse
		data(t, w, &list)
		assert.Empty(t, list)
	})

	t.Run("duplicate category is a conflict", func(t *testing.T) {
		w := api.do(t, http.MethodPost, "/api/v1/catalog/categories", map[string]string{"name": "horrors"})
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("categories are listed with meta", func(t *testing.T) {
		w := api.do(t, http.MethodGet, "/api/v1/catalog/categories?page_size=2", nil)
		require.Equal(t, http.StatusOK, w.Code)
		var resp struct {
			Meta struct {
				Total      int64 `json:"total"`
				TotalPages int   `json:"total_pages"`
			} `json:"meta"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, int64(3), resp.Meta.Total)
		assert.Equal(t, 2, resp.Meta.TotalPages)
	})

	t.Run("currency round trip", func(t *testing.T) {
		w := api.do(t, http.MethodPost, "/api/v1/catalog/currencies", map[string]string{"name": "usd"})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		var currency catalogapp.CurrencyResponse
		data(t, w, &currency)
		assert.Equal(t, "USD", currency.Code)

		w = api.do(t, http.MethodGet, "/api/v1/catalog/currencies/"+itoa(currency.ID), nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("non-numeric id is 404", func(t *testing.T) {
		w := api.do(t, http.MethodGet, "/api/v1/catalog/books/abc", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"error":"Not found"}`, w.Body.String())
	})
}

func TestAPI_Customers(t *testing.T) {
	api := newTestAPI(t)

	t.Run("invalid phone is a validation error", func(t *testing.T) {
		w := api.do(t, http.MethodPost, "/api/v1/party/customers", map[string]string{
			"email": "a@b.c", "phone_number": "+7abc",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("duplicate email is a conflict", func(t *testing.T) {
		api.createCustomer(t, "dup@example.com")
		w := api.do(t, http.MethodPost, "/api/v1/party/customers", map[string]string{
			"email": "dup@example.com", "phone_number": "89001234567",
		})
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("unknown customer is 404", func(t *testing.T) {
		w := api.do(t, http.MethodGet, "/api/v1/party/customers/12345", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)

		w = api.do(t, http.MethodGet, "/api/v1/party/customers/12345/transactions", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestAPI_NoRouteAndHealth(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(t, http.MethodGet, "/does/not/exist", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Not found"}`, w.Body.String())

	w = api.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"healthy"`)
}
