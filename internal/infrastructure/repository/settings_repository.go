package repository

import (
	"context"
	"errors"

	"github.com/nexuspdv/pdv-api/internal/domain/entity"
	domainRepo "github.com/nexuspdv/pdv-api/internal/domain/repository"
	"gorm.io/gorm"
)

type settingsRepository struct {
	db *gorm.DB
}

// NewSettingsRepository creates a new settings repository
func NewSettingsRepository(db *gorm.DB) domainRepo.SettingsRepository {
	return &settingsRepository{db: db}
}

func (r *settingsRepository) Get(ctx context.Context) (*entity.StoreConfig, error) {
	var config entity.StoreConfig
	err := r.db.WithContext(ctx).First(&config).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &config, err
}

func (r *settingsRepository) Save(ctx context.Context, config *entity.StoreConfig) error {
	return r.db.WithContext(ctx).Save(config).Error
}
