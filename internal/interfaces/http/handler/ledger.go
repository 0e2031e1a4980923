package handler

import (
	ledgerapp "github.com/bookstore/backend/internal/application/ledger"
	"github.com/bookstore/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
)

// LedgerHandler handles transaction endpoints
type LedgerHandler struct {
	BaseHandler
	ledgerService *ledgerapp.LedgerService
}

// NewLedgerHandler creates a new LedgerHandler
func NewLedgerHandler(ledgerService *ledgerapp.LedgerService) *LedgerHandler {
	return &LedgerHandler{ledgerService: ledgerService}
}

// Routes returns the ledger route group
func (h *LedgerHandler) Routes() *router.DomainGroup {
	g := router.NewDomainGroup("ledger", "/ledger")
	g.POST("/transactions", h.Create)
	g.GET("/transactions/:hash", h.Get)
	g.GET("/transactions/:hash/total", h.TotalCost)
	return g
}

// Create handles POST /ledger/transactions.
// Responds 201 when the transaction was stored by this request and 200 when
// an identical book list had already been recorded.
func (h *LedgerHandler) Create(c *gin.Context) {
	var req ledgerapp.CreateTransactionRequest
	if !h.BindJSON(c, &req) {
		return
	}

	tx, created, err := h.ledgerService.CreateTransaction(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if created {
		h.Created(c, tx)
		return
	}
	h.Success(c, tx)
}

// Get handles GET /ledger/transactions/:hash
func (h *LedgerHandler) Get(c *gin.Context) {
	tx, err := h.ledgerService.GetTransaction(c.Request.Context(), c.Param("hash"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, tx)
}

// TotalCost handles GET /ledger/transactions/:hash/total
func (h *LedgerHandler) TotalCost(c *gin.Context) {
	total, err := h.ledgerService.TotalCost(c.Request.Context(), c.Param("hash"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, total)
}
