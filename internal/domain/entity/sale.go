package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/nexuspdv/pdv-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Sale is the immutable record of a completed register transaction.
// Item rows carry product values frozen at sale time, so later catalog
// edits never rewrite sales history.
type Sale struct {
	ID              uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	ReceiptNo       string             `gorm:"size:100;uniqueIndex;not null" json:"receipt_no"`
	UserID          uuid.UUID          `gorm:"type:uuid;not null;index" json:"user_id"`
	CustomerID      *uuid.UUID         `gorm:"type:uuid;index" json:"customer_id,omitempty"`
	Subtotal        int64              `gorm:"default:0" json:"-"` // Stored in cents
	DiscountTotal   int64              `gorm:"default:0" json:"-"` // Stored in cents
	Total           int64              `gorm:"default:0" json:"-"` // Stored in cents
	PaymentMethod   enum.PaymentMethod `gorm:"default:0" json:"payment_method"`
	PaymentReceived int64              `gorm:"default:0" json:"-"` // Stored in cents
	Change          int64              `gorm:"default:0" json:"-"` // Stored in cents
	Status          enum.SaleStatus    `gorm:"default:0" json:"status"`
	CreatedAt       time.Time          `gorm:"index" json:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at"`

	// Relationships
	User     User       `gorm:"foreignKey:UserID" json:"-"`
	Customer *Customer  `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Items    []SaleItem `gorm:"foreignKey:SaleID" json:"items,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (s Sale) MarshalJSON() ([]byte, error) {
	type Alias Sale
	return json.Marshal(&struct {
		Alias
		Subtotal        float64 `json:"subtotal"`
		DiscountTotal   float64 `json:"discount_total"`
		Total           float64 `json:"total"`
		PaymentReceived float64 `json:"payment_received"`
		Change          float64 `json:"change"`
	}{
		Alias:           Alias(s),
		Subtotal:        float64(s.Subtotal) / 100,
		DiscountTotal:   float64(s.DiscountTotal) / 100,
		Total:           float64(s.Total) / 100,
		PaymentReceived: float64(s.PaymentReceived) / 100,
		Change:          float64(s.Change) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new sale
func (s *Sale) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Sale model
func (Sale) TableName() string {
	return "sales"
}

// GetTotalDecimal returns the total as a decimal
func (s *Sale) GetTotalDecimal() float64 {
	return float64(s.Total) / 100
}

// SaleItem is a cart line frozen into a sale
type SaleItem struct {
	ID        uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	SaleID    uuid.UUID        `gorm:"type:uuid;not null;index" json:"sale_id"`
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
	Sale Sale `gorm:"foreignKey:SaleID" json:"-"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (si SaleItem) MarshalJSON() ([]byte, error) {
	type Alias SaleItem
	return json.Marshal(&struct {
		Alias
		Price    float64 `json:"price"`
		Cost     float64 `json:"cost"`
		Discount float64 `json:"discount"`
	}{
		Alias:    Alias(si),
		Price:    float64(si.Price) / 100,
		Cost:     float64(si.Cost) / 100,
		Discount: float64(si.Discount) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new sale item
func (si *SaleItem) BeforeCreate(tx *gorm.DB) error {
	if si.ID == uuid.Nil {
		si.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the SaleItem model
func (SaleItem) TableName() string {
	return "sale_items"
}

// LineTotal returns price × quantity − discount in cents, floored at zero
func (si *SaleItem) LineTotal() int64 {
	total := si.Price*int64(si.Quantity) - si.Discount
	if total < 0 {
		return 0
	}
	return total
}
