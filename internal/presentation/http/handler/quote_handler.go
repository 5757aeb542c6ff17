package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/nexuspdv/pdv-api/internal/application/service"
	"github.com/nexuspdv/pdv-api/internal/domain/repository"
	"github.com/nexuspdv/pdv-api/internal/presentation/http/dto/request"
	"github.com/nexuspdv/pdv-api/internal/presentation/http/dto/response"
	"github.com/nexuspdv/pdv-api/pkg/pagination"
)

// QuoteHandler handles quote HTTP requests
type QuoteHandler struct {
	quoteService *service.QuoteService
}

// NewQuoteHandler creates a new quote handler
func NewQuoteHandler(quoteService *service.QuoteService) *QuoteHandler {
	return &QuoteHandler{quoteService: quoteService}
}

// Create handles creating a quote
func (h *QuoteHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.CreateQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	items := make([]service.QuoteItemInput, len(req.Items))
	for i, item := range req.Items {
		items[i] = service.QuoteItemInput{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		}
	}

	var expiresAt time.Time
	if req.ExpiresAt != nil {
		expiresAt = *req.ExpiresAt
	}

	quote, err := h.quoteService.Create(c.Request.Context(), &service.CreateQuoteInput{
		UserID:     *userID,
		CustomerID: req.CustomerID,
		ExpiresAt:  expiresAt,
		Notes:      req.Notes,
		Items:      items,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Quote created successfully", quote)
}

// List handles listing quotes newest-first
func (h *QuoteHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	params := &repository.QuoteFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    page,
			PerPage: perPage,
		},
		Search: c.Query("search"),
	}

	if customerIDStr := c.Query("customer_id"); customerIDStr != "" {
		if customerID, err := uuid.Parse(customerIDStr); err == nil {
			params.CustomerID = &customerID
		}
	}

	result, err := h.quoteService.ListQuotes(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Quotes retrieved successfully", result)
}

// Get handles getting a single quote
func (h *QuoteHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid quote ID")
		return
	}

	quote, err := h.quoteService.GetQuote(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Quote retrieved successfully", quote)
}

// UpdateStatus handles moving a quote through its lifecycle
func (h *QuoteHandler) UpdateStatus(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid quote ID")
		return
	}

	var req request.UpdateQuoteStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	quote, err := h.quoteService.SetStatus(c.Request.Context(), *userID, id, req.Status)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Quote status updated successfully", quote)
}

// Convert handles turning a quote into a sale
func (h *QuoteHandler) Convert(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid quote ID")
		return
	}

	var req request.ConvertQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	sale, err := h.quoteService.Convert(c.Request.Context(), id, &service.ConvertQuoteInput{
		UserID:          *userID,
		PaymentMethod:   req.PaymentMethod,
		PaymentReceived: req.PaymentReceived,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Quote converted successfully", sale)
}
