package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/nexuspdv/pdv-api/internal/domain/entity"
	"github.com/nexuspdv/pdv-api/internal/domain/enum"
	"github.com/nexuspdv/pdv-api/pkg/pagination"
)

// QuoteRepository defines the interface for quote data operations
type QuoteRepository interface {
	// Create persists a quote together with its items in one transaction
	Create(ctx context.Context, quote *entity.Quote) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Quote, error)
	// GetWithItems retrieves a quote with its item rows preloaded
	GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Quote, error)
	// List returns quotes newest-first
	List(ctx context.Context, params *QuoteFilterParams) ([]entity.Quote, int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enum.QuoteStatus) error
	Count(ctx context.Context) (int64, error)
}

// QuoteFilterParams contains filtering parameters for quote queries
type QuoteFilterParams struct {
	Pagination *pagination.PaginationParams
	UserID     *uuid.UUID
	CustomerID *uuid.UUID
	Status     *enum.QuoteStatus
	Search     string // Matches reference or cached customer name
}
