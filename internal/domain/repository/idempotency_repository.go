package repository

import (
	"context"

	"github.com/nexuspdv/pdv-api/internal/domain/entity"
)

// IdempotencyRepository defines the interface for idempotency key storage
type IdempotencyRepository interface {
	Create(ctx context.Context, key *entity.IdempotencyKey) error
	GetByKey(ctx context.Context, key string) (*entity.IdempotencyKey, error)
	DeleteExpired(ctx context.Context) error
}
