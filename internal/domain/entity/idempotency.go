package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// IdempotencyKey stores a cached response for a previously seen
// Idempotency-Key header so retried mutations are not applied twice
type IdempotencyKey struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Key          string    `gorm:"size:255;uniqueIndex;not null" json:"key"`
	UserID       uuid.UUID `gorm:"type:uuid;index" json:"user_id"`
	Endpoint     string    `gorm:"size:255" json:"endpoint"`
	ResponseCode int       `json:"response_code"`
	ResponseBody string    `gorm:"type:text" json:"response_body"`
	CreatedAt    time.Time `json:"created_at"`
	ExpiresAt    time.Time `gorm:"index" json:"expires_at"`
}

// BeforeCreate generates a UUID before creating a new idempotency key
func (ik *IdempotencyKey) BeforeCreate(tx *gorm.DB) error {
	if ik.ID == uuid.Nil {
		ik.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the IdempotencyKey model
func (IdempotencyKey) TableName() string {
	return "idempotency_keys"
}

// IsExpired checks if the idempotency key has expired
func (ik *IdempotencyKey) IsExpired() bool {
	return time.Now().After(ik.ExpiresAt)
}
