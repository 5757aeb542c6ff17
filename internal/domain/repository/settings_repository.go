package repository

import (
	"context"

	"github.com/nexuspdv/pdv-api/internal/domain/entity"
)

// SettingsRepository defines the interface for the single-row store configuration
type SettingsRepository interface {
	// Get returns the config row, or (nil, nil) when none exists yet
	Get(ctx context.Context) (*entity.StoreConfig, error)
	// Save creates or updates the config row
	Save(ctx context.Context, config *entity.StoreConfig) error
}
