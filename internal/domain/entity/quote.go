package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/nexuspdv/pdv-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Quote is a non-binding price proposal that can later be converted into
// a sale. Its items never touch stock until conversion.
type Quote struct {
	ID           uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	Reference    string           `gorm:"size:100;uniqueIndex;not null" json:"reference"`
	UserID       uuid.UUID        `gorm:"type:uuid;not null;index" json:"user_id"`
	CustomerID   *uuid.UUID       `gorm:"type:uuid;index" json:"customer_id,omitempty"`
	CustomerName string           `gorm:"size:255" json:"customer_name"` // Cached for display
	ExpiresAt    time.Time        `json:"expires_at"`
	Subtotal     int64            `gorm:"default:0" json:"-"` // Stored in cents
	Total        int64            `gorm:"default:0" json:"-"` // Stored in cents
	Status       enum.QuoteStatus `gorm:"default:0" json:"status"`
	Notes        *string          `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt    time.Time        `gorm:"index" json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`

	// Relationships
	User     User        `gorm:"foreignKey:UserID" json:"-"`
	Customer *Customer   `gorm:"foreignKey:CustomerID" json:"-"`
	Items    []QuoteItem `gorm:"foreignKey:QuoteID" json:"items,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (q Quote) MarshalJSON() ([]byte, error) {
	type Alias Quote
	return json.Marshal(&struct {
		Alias
		Subtotal float64 `json:"subtotal"`
		Total    float64 `json:"total"`
	}{
		Alias:    Alias(q),
		Subtotal: float64(q.Subtotal) / 100,
		Total:    float64(q.Total) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new quote
func (q *Quote) BeforeCreate(tx *gorm.DB) error {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Quote model
func (Quote) TableName() string {
	return "quotes"
}

// IsExpired reports whether the quote passed its expiration date
func (q *Quote) IsExpired() bool {
	return !q.ExpiresAt.IsZero() && time.Now().After(q.ExpiresAt)
}

// QuoteItem is a cart line frozen into a quote
type QuoteItem struct {
	ID        uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	QuoteID   uuid.UUID        `gorm:"type:uuid;not null;index" json:"quote_id"`
	ProductID uuid.UUID        `gorm:"type:uuid;not null;index" json:"product_id"`
	SKU       string           `gorm:"size:100" json:"sku"`
	Name      string           `gorm:"size:255" json:"name"`
	Category  string           `gorm:"size:255" json:"category"`
	Unit      string           `gorm:"size:50" json:"unit"`
	Type      enum.ProductType `gorm:"default:0" json:"type"`
	Price     int64            `gorm:"not null" json:"-"` // Stored in cents
	Cost      int64            `gorm:"default:0" json:"-"` // Stored in cents
	Quantity  int              `gorm:"not null" json:"quantity"`
	Discount  int64            `gorm:"default:0" json:"-"` // Absolute value in cents
	CreatedAt time.Time        `json:"created_at"`

	// Relationships
	Quote Quote `gorm:"foreignKey:QuoteID" json:"-"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (qi QuoteItem) MarshalJSON() ([]byte, error) {
	type Alias QuoteItem
	return json.Marshal(&struct {
		Alias
		Price    float64 `json:"price"`
		Cost     float64 `json:"cost"`
		Discount float64 `json:"discount"`
	}{
		Alias:    Alias(qi),
		Price:    float64(qi.Price) / 100,
		Cost:     float64(qi.Cost) / 100,
		Discount: float64(qi.Discount) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new quote item
func (qi *QuoteItem) BeforeCreate(tx *gorm.DB) error {
	if qi.ID == uuid.Nil {
		qi.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the QuoteItem model
func (QuoteItem) TableName() string {
	return "quote_items"
}
