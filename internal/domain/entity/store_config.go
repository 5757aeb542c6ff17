package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Default store configuration values applied on first boot
const (
	DefaultStoreName          = "Meu Comércio PDV"
	DefaultMaxDiscountPercent = 10
)

// StoreConfig is the single-row store configuration. The row is created
// with defaults on first boot and updated in place afterwards.
type StoreConfig struct {
	ID                 uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	StoreName          string    `gorm:"size:255;not null" json:"store_name"`
	MaxDiscountPercent int       `gorm:"default:10" json:"max_discount_percent"` // 0-100
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating the config row
func (sc *StoreConfig) BeforeCreate(tx *gorm.DB) error {
	if sc.ID == uuid.Nil {
		sc.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the StoreConfig model
func (StoreConfig) TableName() string {
	return "store_configs"
}
