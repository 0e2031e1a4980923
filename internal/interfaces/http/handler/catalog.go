package handler

import (
	catalogapp "github.com/bookstore/backend/internal/application/catalog"
	"github.com/bookstore/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
)

// CatalogHandler handles currency, category and book endpoints
type CatalogHandler struct {
	BaseHandler
	catalogService *catalogapp.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(catalogService *catalogapp.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// Routes returns the catalog route group
func (h *CatalogHandler) Routes() *router.DomainGroup {
	g := router.NewDomainGroup("catalog", "/catalog")
	g.POST("/currencies", h.CreateCurrency)
	g.GET("/currencies/:id", h.GetCurrency)
	g.POST("/categories", h.CreateCategory)
	g.GET("/categories", h.ListCategories)
	g.GET("/categories/:id", h.GetCategory)
	g.POST("/categories/:id/books", h.CreateBook)
	g.POST("/books", h.AddBook)
	g.GET("/books", h.ListBooks)
	g.GET("/books/:id", h.GetBook)
	return g
}

// CreateCurrency handles POST /catalog/currencies
func (h *CatalogHandler) CreateCurrency(c *gin.Context) {
	var req catalogapp.CreateCurrencyRequest
	if !h.BindJSON(c, &req) {
		return
	}

	currency, err := h.catalogService.CreateCurrency(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, currency)
}

// GetCurrency handles GET /catalog/currencies/:id
func (h *CatalogHandler) GetCurrency(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	currency, err := h.catalogService.GetCurrency(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, currency)
}

// CreateCategory handles POST /catalog/categories
func (h *CatalogHandler) CreateCategory(c *gin.Context) {
	var req catalogapp.CreateCategoryRequest
	if !h.BindJSON(c, &req) {
		return
	}

	category, err := h.catalogService.CreateCategory(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, category)
}

// ListCategories handles GET /catalog/categories
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	var filter catalogapp.ListFilter
	if !h.BindQuery(c, &filter) {
		return
	}

	categories, total, err := h.catalogService.ListCategories(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	page := filter.ToDomainFilter()
	h.SuccessWithMeta(c, categories, total, page.Page, page.PageSize)
}

// GetCategory handles GET /catalog/categories/:id
func (h *CatalogHandler) GetCategory(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	category, err := h.catalogService.GetCategory(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, category)
}

// AddBook handles POST /catalog/books. The category is given by name.
func (h *CatalogHandler) AddBook(c *gin.Context) {
	var req catalogapp.AddBookRequest
	if !h.BindJSON(c, &req) {
		return
	}

	book, err := h.catalogService.AddBook(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, book)
}

// CreateBook handles POST /catalog/categories/:id/books
func (h *CatalogHandler) CreateBook(c *gin.Context) {
	categoryID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	var req catalogapp.CreateBookRequest
	if !h.BindJSON(c, &req) {
		return
	}
	req.CategoryID = categoryID

	book, err := h.catalogService.CreateBook(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, book)
}

// ListBooks handles GET /catalog/books
func (h *CatalogHandler) ListBooks(c *gin.Context) {
	var filter catalogapp.ListFilter
	if !h.BindQuery(c, &filter) {
		return
	}

	books, total, err := h.catalogService.ListBooks(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	page := filter.ToDomainFilter()
	h.SuccessWithMeta(c, books, total, page.Page, page.PageSize)
}

// GetBook handles GET /catalog/books/:id
func (h *CatalogHandler) GetBook(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	book, err := h.catalogService.GetBook(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, book)
}
