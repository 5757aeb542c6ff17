package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/nexuspdv/pdv-api/internal/domain/entity"
	"github.com/nexuspdv/pdv-api/pkg/pagination"
)

// AuditLogRepository defines the interface for the append-only audit trail.
// Entries are only ever created and read, never updated or deleted.
type AuditLogRepository interface {
	Create(ctx context.Context, log *entity.AuditLog) error
	// List returns entries newest-first
	List(ctx context.Context, params *AuditFilterParams) ([]entity.AuditLog, int64, error)
	// ListByEntity returns every entry touching the given entity, newest-first
	ListByEntity(ctx context.Context, entityID uuid.UUID) ([]entity.AuditLog, error)
}

// AuditFilterParams contains filtering parameters for audit queries
type AuditFilterParams struct {
	Pagination *pagination.PaginationParams
	UserID     *uuid.UUID
	Action     string
	Module     string
	From       *time.Time
	To         *time.Time
}
