package request

// CustomerRequest represents a customer create/update request
type CustomerRequest struct {
	Name     string  `json:"name" binding:"required,min=2,max=255"`
	Email    *string `json:"email" binding:"omitempty,email"`
	Phone    *string `json:"phone" binding:"omitempty,max=50"`
	Document *string `json:"document" binding:"omitempty,max=50"`
}

// UpdateSettingsRequest represents a store configuration update request
type UpdateSettingsRequest struct {
	StoreName          string `json:"store_name" binding:"required,min=1,max=255"`
	MaxDiscountPercent int    `json:"max_discount_percent" binding:"min=0,max=100"`
}
