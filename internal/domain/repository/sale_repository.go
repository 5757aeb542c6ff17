package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/nexuspdv/pdv-api/internal/domain/entity"
	"github.com/nexuspdv/pdv-api/internal/domain/enum"
	"github.com/nexuspdv/pdv-api/pkg/pagination"
)

// SaleRepository defines the interface for sale data operations
type SaleRepository interface {
	// Create persists a sale together with its items in one transaction
	Create(ctx context.Context, sale *entity.Sale) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Sale, error)
	// GetWithItems retrieves a sale with its item rows preloaded
	GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Sale, error)
	// List returns sales newest-first
	List(ctx context.Context, params *SaleFilterParams) ([]entity.Sale, int64, error)
	// ListAll returns every sale with items preloaded, newest-first (for metrics)
	ListAll(ctx context.Context) ([]entity.Sale, error)
	ListSince(ctx context.Context, since time.Time) ([]entity.Sale, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enum.SaleStatus) error
	Count(ctx context.Context) (int64, error)
}

// SaleFilterParams contains filtering parameters for sale queries
type SaleFilterParams struct {
	Pagination *pagination.PaginationParams
	UserID     *uuid.UUID
	CustomerID *uuid.UUID
	Status     *enum.SaleStatus
	From       *time.Time
	To         *time.Time
}
