package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Audit action vocabulary. Entries always carry one of these tags.
const (
	AuditActionLogin         = "LOGIN"
	AuditActionLogout        = "LOGOUT"
	AuditActionProductCreate = "PRODUCT_CREATE"
	AuditActionProductUpdate = "PRODUCT_UPDATE"
	AuditActionProductDelete = "PRODUCT_DELETE"
	AuditActionStockAdd      = "STOCK_ADD"
	AuditActionStockRemove   = "STOCK_REMOVE"
	AuditActionSaleCreated   = "SALE_CREATED"
	AuditActionSaleCancelled = "SALE_CANCELLED"
	AuditActionQuoteCreated  = "QUOTE_CREATED"
	AuditActionQuoteStatus   = "QUOTE_STATUS"
	AuditActionConfigUpdate  = "CONFIG_UPDATE"
)

// Audit module tags
const (
	AuditModuleAuth     = "AUTH"
	AuditModulePOS      = "POS"
	AuditModuleCatalog  = "CATALOG"
	AuditModuleStock    = "STOCK"
	AuditModuleQuotes   = "QUOTES"
	AuditModuleSettings = "SETTINGS"
)

// AuditLog is an append-only record of a state-changing action.
// Rows are never updated or deleted; UserID is stored as given even if
// the user has since been removed.
type AuditLog struct {
	ID        uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	UserID    uuid.UUID  `gorm:"type:uuid;index" json:"user_id"`
	Action    string     `gorm:"size:50;index;not null" json:"action"`
	Details   string     `gorm:"type:text" json:"details"`
	Module    string     `gorm:"size:50;index" json:"module"`
	EntityID  *uuid.UUID `gorm:"type:uuid;index" json:"entity_id,omitempty"`
	CreatedAt time.Time  `gorm:"index" json:"created_at"`
}

// BeforeCreate generates a UUID before creating a new audit entry
func (a *AuditLog) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the AuditLog model
func (AuditLog) TableName() string {
	return "audit_logs"
}
