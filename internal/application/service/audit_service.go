package service

import (
	"context"
	"log"

	"github.com/google/uuid"
	"github.com/nexuspdv/pdv-api/internal/domain/entity"
	"github.com/nexuspdv/pdv-api/internal/domain/repository"
	"github.com/nexuspdv/pdv-api/pkg/pagination"
)

// AuditService records and reads the append-only audit trail
type AuditService struct {
	auditRepo repository.AuditLogRepository
}

// NewAuditService creates a new audit service
func NewAuditService(auditRepo repository.AuditLogRepository) *AuditService {
	return &AuditService{auditRepo: auditRepo}
}

// Record appends an audit entry. A failed write never blocks the action
// that triggered it; the failure is only logged.
func (s *AuditService) Record(ctx context.Context, userID uuid.UUID, action, details, module string, entityID *uuid.UUID) {
	entry := &entity.AuditLog{
		UserID:   userID,
		Action:   action,
		Details:  details,
		Module:   module,
		EntityID: entityID,
	}
	if err := s.auditRepo.Create(ctx, entry); err != nil {
		log.Printf("Warning: failed to write audit entry %s: %v", action, err)
	}
}

// List returns audit entries newest-first with filtering
func (s *AuditService) List(ctx context.Context, params *repository.AuditFilterParams) (*pagination.PaginatedResult[entity.AuditLog], error) {
	logs, total, err := s.auditRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(logs, pag), nil
}

// History returns every audit entry touching the given entity, newest-first
func (s *AuditService) History(ctx context.Context, entityID uuid.UUID) ([]entity.AuditLog, error) {
	return s.auditRepo.ListByEntity(ctx, entityID)
}
