package handler

import (
	ledgerapp "github.com/bookstore/backend/internal/application/ledger"
	partyapp "github.com/bookstore/backend/internal/application/party"
	"github.com/bookstore/backend/internal/interfaces/http/dto"
	"github.com/bookstore/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
)

// CustomerHandler handles customer endpoints
type CustomerHandler struct {
	BaseHandler
	customerService *partyapp.CustomerService
	ledgerService   *ledgerapp.LedgerService
}

// NewCustomerHandler creates a new CustomerHandler
func NewCustomerHandler(customerService *partyapp.CustomerService, ledgerService *ledgerapp.LedgerService) *CustomerHandler {
	return &CustomerHandler{
		customerService: customerService,
		ledgerService:   ledgerService,
	}
}

// Routes returns the party route group
func (h *CustomerHandler) Routes() *router.DomainGroup {
	g := router.NewDomainGroup("party", "/party")
	g.POST("/customers", h.Create)
	g.GET("/customers/:id", h.GetByID)
	g.GET("/customers/:id/transactions", h.ListTransactions)
	return g
}

// Create handles POST /party/customers
func (h *CustomerHandler) Create(c *gin.Context) {
	var req partyapp.CreateCustomerRequest
	if !h.BindJSON(c, &req) {
		return
	}

	customer, err := h.customerService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, customer)
}

// GetByID handles GET /party/customers/:id
func (h *CustomerHandler) GetByID(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	customer, err := h.customerService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, customer)
}

// ListTransactions handles GET /party/customers/:id/transactions, newest first
func (h *CustomerHandler) ListTransactions(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	var page dto.PageRequest
	if !h.BindQuery(c, &page) {
		return
	}

	filter := page.ToFilter()
	transactions, total, err := h.ledgerService.ListByCustomer(c.Request.Context(), id, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, transactions, total, filter.Page, filter.PageSize)
}
