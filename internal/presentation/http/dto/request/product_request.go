package request

import "github.com/nexuspdv/pdv-api/internal/domain/enum"

// ProductRequest represents a product create/update request
type ProductRequest struct {
	SKU      string           `json:"sku" binding:"required,max=100"`
	Barcode  string           `json:"barcode" binding:"omitempty,max=100"`
	Name     string           `json:"name" binding:"required,min=2,max=255"`
	Category string           `json:"category" binding:"omitempty,max=255"`
	Unit     string           `json:"unit" binding:"omitempty,max=50"`
	Price    float64          `json:"price" binding:"min=0"`
	Cost     float64          `json:"cost" binding:"min=0"`
	Stock    int              `json:"stock" binding:"min=0"`
	MinStock int              `json:"min_stock" binding:"min=0"`
	Type     enum.ProductType `json:"type"`
}

// AdjustStockRequest represents a manual stock adjustment request
type AdjustStockRequest struct {
	Delta  int    `json:"delta" binding:"required"`
	Reason string `json:"reason" binding:"omitempty,max=255"`
}

// ProductFilterRequest represents product filter parameters
type ProductFilterRequest struct {
	Search    string `form:"search"`
	Category  string `form:"category"`
	Type      string `form:"type"`
	LowStock  bool   `form:"low_stock"`
	SortBy    string `form:"sort_by"`
	SortOrder string `form:"sort_order"`
	Page      int    `form:"page"`
	PerPage   int    `form:"per_page"`
}
