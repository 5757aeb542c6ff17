package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/nexuspdv/pdv-api/internal/domain/entity"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	CreateBatch(ctx context.Context, users []entity.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	List(ctx context.Context) ([]entity.User, error)
	Count(ctx context.Context) (int64, error)
}
