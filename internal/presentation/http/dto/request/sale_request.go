package request

import (
	"time"

	"github.com/google/uuid"
	"github.com/nexuspdv/pdv-api/internal/domain/enum"
)

// SaleItemRequest represents a cart line in a sale request
type SaleItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,min=1"`
	Discount  float64   `json:"discount" binding:"min=0"`
}

// CommitSaleRequest represents a sale commit request
type CommitSaleRequest struct {
	CustomerID      *uuid.UUID         `json:"customer_id"`
	PaymentMethod   enum.PaymentMethod `json:"payment_method"`
	PaymentReceived float64            `json:"payment_received" binding:"min=0"`
	Items           []SaleItemRequest  `json:"items" binding:"required,min=1"`
}

// QuoteItemRequest represents a cart line in a quote request
type QuoteItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,min=1"`
}

// CreateQuoteRequest represents a quote creation request
type CreateQuoteRequest struct {
	CustomerID *uuid.UUID         `json:"customer_id"`
	ExpiresAt  *time.Time         `json:"expires_at"`
	Notes      *string            `json:"notes"`
	Items      []QuoteItemRequest `json:"items" binding:"required,min=1"`
}

// UpdateQuoteStatusRequest represents a quote status change request
type UpdateQuoteStatusRequest struct {
	Status enum.QuoteStatus `json:"status"`
}

// ConvertQuoteRequest represents a quote conversion request
type ConvertQuoteRequest struct {
	PaymentMethod   enum.PaymentMethod `json:"payment_method"`
	PaymentReceived float64            `json:"payment_received" binding:"min=0"`
}
