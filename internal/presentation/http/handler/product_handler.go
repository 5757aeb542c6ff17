package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/nexuspdv/pdv-api/internal/application/service"
	"github.com/nexuspdv/pdv-api/internal/domain/enum"
	"github.com/nexuspdv/pdv-api/internal/domain/repository"
	"github.com/nexuspdv/pdv-api/internal/presentation/http/dto/request"
	"github.com/nexuspdv/pdv-api/internal/presentation/http/dto/response"
	"github.com/nexuspdv/pdv-api/pkg/pagination"
)

// ProductHandler handles catalog HTTP requests
type ProductHandler struct {
	catalogService *service.CatalogService
	stockService   *service.StockService
}

// NewProductHandler creates a new product handler
func NewProductHandler(catalogService *service.CatalogService, stockService *service.StockService) *ProductHandler {
	return &ProductHandler{
		catalogService: catalogService,
		stockService:   stockService,
	}
}

// List handles listing catalog entries
func (h *ProductHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	params := &repository.ProductFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    page,
			PerPage: perPage,
		},
		Search:    c.Query("search"),
		Category:  c.Query("category"),
		LowStock:  c.Query("low_stock") == "true",
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
	}

	switch c.Query("type") {
	case "PRODUCT":
		t := enum.ProductTypeProduct
		params.Type = &t
	case "SERVICE":
		t := enum.ProductTypeService
		params.Type = &t
	}

	result, err := h.catalogService.ListProducts(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Products retrieved successfully", result)
}

// ListServices handles listing service-type entries only
func (h *ProductHandler) ListServices(c *gin.Context) {
	services, err := h.catalogService.ListServices(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Services retrieved successfully", services)
}

// GetLowStock handles listing products at or below minimum stock
func (h *ProductHandler) GetLowStock(c *gin.Context) {
	products, err := h.catalogService.GetLowStock(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Low stock products retrieved successfully", products)
}

// Get handles getting a single catalog entry
func (h *ProductHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	product, err := h.catalogService.GetProduct(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product retrieved successfully", product)
}

// GetByBarcode handles barcode scanner lookups
func (h *ProductHandler) GetByBarcode(c *gin.Context) {
	product, err := h.catalogService.GetProductByBarcode(c.Request.Context(), c.Param("barcode"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product retrieved successfully", product)
}

// Create handles creating a catalog entry
func (h *ProductHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	product, err := h.catalogService.CreateProduct(c.Request.Context(), *userID, &service.ProductInput{
		SKU:      req.SKU,
		Barcode:  req.Barcode,
		Name:     req.Name,
		Category: req.Category,
		Unit:     req.Unit,
		Price:    req.Price,
		Cost:     req.Cost,
		Stock:    req.Stock,
		MinStock: req.MinStock,
		Type:     req.Type,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Product created successfully", product)
}

// Update handles updating a catalog entry
func (h *ProductHandler) Update(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	var req request.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	product, err := h.catalogService.UpdateProduct(c.Request.Context(), *userID, id, &service.ProductInput{
		SKU:      req.SKU,
		Barcode:  req.Barcode,
		Name:     req.Name,
		Category: req.Category,
		Unit:     req.Unit,
		Price:    req.Price,
		Cost:     req.Cost,
		Stock:    req.Stock,
		MinStock: req.MinStock,
		Type:     req.Type,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product updated successfully", product)
}

// Delete handles removing a catalog entry
func (h *ProductHandler) Delete(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	if err := h.catalogService.DeleteProduct(c.Request.Context(), *userID, id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product deleted successfully", nil)
}

// AdjustStock handles manual stock adjustments
func (h *ProductHandler) AdjustStock(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	var req request.AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	product, err := h.stockService.Adjust(c.Request.Context(), *userID, &service.AdjustStockInput{
		ProductID: id,
		Delta:     req.Delta,
		Reason:    req.Reason,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Stock adjusted successfully", product)
}
