package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/nexuspdv/pdv-api/internal/domain/enum"
	"gorm.io/gorm"
)

// User represents an operator of the store
type User struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name      string         `gorm:"size:255;not null" json:"name"`
	Email     string         `gorm:"size:255;unique;not null" json:"email"`
	Password  string         `gorm:"size:255" json:"-"`
	Role      enum.Role      `gorm:"default:2" json:"role"`
	Avatar    *string        `gorm:"size:255" json:"avatar,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Sales  []Sale  `gorm:"foreignKey:UserID" json:"-"`
	Quotes []Quote `gorm:"foreignKey:UserID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new user
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the User model
func (User) TableName() string {
	return "users"
}

// HasRole checks if the user has one of the given roles
func (u *User) HasRole(roles ...enum.Role) bool {
	for _, r := range roles {
		if u.Role == r {
			return true
		}
	}
	return false
}
