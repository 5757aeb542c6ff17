package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/nexuspdv/pdv-api/internal/domain/enum"
	"gorm.io/gorm"
)

// ServiceStock is the sentinel stock level carried by SERVICE entries.
// Services are never decremented; the value only keeps them sellable.
const ServiceStock = 9999

// Product represents a sellable unit in the catalog, either a stocked
// product or a service
type Product struct {
	ID        uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	SKU       string           `gorm:"size:100;uniqueIndex;not null" json:"sku"`
	Barcode   string           `gorm:"size:100" json:"barcode"`
	Name      string           `gorm:"size:255;not null" json:"name"`
	Category  string           `gorm:"size:255" json:"category"`
	Unit      string           `gorm:"size:50" json:"unit"`
	Price     int64            `gorm:"default:0" json:"-"` // Stored in cents
	Cost      int64            `gorm:"default:0" json:"-"` // Stored in cents
	Stock     int              `gorm:"default:0" json:"stock"`
	MinStock  int              `gorm:"default:0" json:"min_stock"`
	Type      enum.ProductType `gorm:"default:0" json:"type"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
	DeletedAt gorm.DeletedAt   `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new product
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Product model
func (Product) TableName() string {
	return "products"
}

// IsService reports whether the entry is a service (never stock-adjusted)
func (p *Product) IsService() bool {
	return p.Type == enum.ProductTypeService
}

// IsLowStock reports whether a stocked product is at or below its minimum
func (p *Product) IsLowStock() bool {
	return p.Type == enum.ProductTypeProduct && p.Stock <= p.MinStock
}

// GetPriceDecimal returns the selling price as a decimal (for display)
func (p *Product) GetPriceDecimal() float64 {
	return float64(p.Price) / 100
}

// GetCostDecimal returns the cost as a decimal (for display)
func (p *Product) GetCostDecimal() float64 {
	return float64(p.Cost) / 100
}

// SetPriceFromDecimal sets the selling price from a decimal value
func (p *Product) SetPriceFromDecimal(price float64) {
	p.Price = int64(price*100 + 0.5)
}

// SetCostFromDecimal sets the cost from a decimal value
func (p *Product) SetCostFromDecimal(cost float64) {
	p.Cost = int64(cost*100 + 0.5)
}

// productJSON mirrors Product with decimal prices for the API surface
type productJSON struct {
	ID        uuid.UUID        `json:"id"`
	SKU       string           `json:"sku"`
	Barcode   string           `json:"barcode"`
	Name      string           `json:"name"`
	Category  string           `json:"category"`
	Unit      string           `json:"unit"`
	Price     float64          `json:"price"`
	Cost      float64          `json:"cost"`
	Stock     int              `json:"stock"`
	MinStock  int              `json:"min_stock"`
	Type      enum.ProductType `json:"type"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// MarshalJSON converts Product to JSON with decimal prices
func (p Product) MarshalJSON() ([]byte, error) {
	return json.Marshal(productJSON{
		ID:        p.ID,
		SKU:       p.SKU,
		Barcode:   p.Barcode,
		Name:      p.Name,
		Category:  p.Category,
		Unit:      p.Unit,
		Price:     p.GetPriceDecimal(),
		Cost:      p.GetCostDecimal(),
		Stock:     p.Stock,
		MinStock:  p.MinStock,
		Type:      p.Type,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	})
}

// UnmarshalJSON restores a Product from its JSON form, converting decimal
// prices back to cents so a marshal/unmarshal round trip is lossless
func (p *Product) UnmarshalJSON(data []byte) error {
	var pj productJSON
	if err := json.Unmarshal(data, &pj); err != nil {
		return err
	}
	p.ID = pj.ID
	p.SKU = pj.SKU
	p.Barcode = pj.Barcode
	p.Name = pj.Name
	p.Category = pj.Category
	p.Unit = pj.Unit
	p.SetPriceFromDecimal(pj.Price)
	p.SetCostFromDecimal(pj.Cost)
	p.Stock = pj.Stock
	p.MinStock = pj.MinStock
	p.Type = pj.Type
	p.CreatedAt = pj.CreatedAt
	p.UpdatedAt = pj.UpdatedAt
	return nil
}
