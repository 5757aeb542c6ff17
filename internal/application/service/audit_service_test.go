package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/nexuspdv/pdv-api/internal/domain/entity"
	"github.com/nexuspdv/pdv-api/internal/domain/repository"
	"github.com/nexuspdv/pdv-api/pkg/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuditTrailIsNewestFirst(t *testing.T) {
	auditRepo := newFakeAuditRepo()
	svc := NewAuditService(auditRepo)
	userID := uuid.New()
	productID := uuid.New()

	svc.Record(context.Background(), userID, entity.AuditActionProductCreate, "Produto criado", entity.AuditModuleCatalog, &productID)
	svc.Record(context.Background(), userID, entity.AuditActionStockAdd, "Entrada de 5 unidades", entity.AuditModuleStock, &productID)

	result, err := svc.List(context.Background(), &repository.AuditFilterParams{
		Pagination: pagination.DefaultPagination(),
	})
	require.NoError(t, err)
	require.Len(t, result.Items, 2)
	assert.Equal(t, entity.AuditActionStockAdd, result.Items[0].Action)
	assert.Equal(t, entity.AuditActionProductCreate, result.Items[1].Action)

	history, err := svc.History(context.Background(), productID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, entity.AuditActionStockAdd, history[0].Action)
	assert.Equal(t, entity.AuditActionProductCreate, history[1].Action)
}

func TestRecordKeepsUserIDOfRemovedUsers(t *testing.T) {
	auditRepo := newFakeAuditRepo()
	svc := NewAuditService(auditRepo)

	// The trail stores the acting user's id as given, even when no such
	// user exists anymore
	ghostID := uuid.New()
	svc.Record(context.Background(), ghostID, entity.AuditActionLogout, "Sessão encerrada", entity.AuditModuleAuth, nil)

	entries := auditRepo.byAction(entity.AuditActionLogout)
	require.Len(t, entries, 1)
	assert.Equal(t, ghostID, entries[0].UserID)
}
