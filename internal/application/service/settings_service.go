package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/nexuspdv/pdv-api/internal/domain/entity"
	"github.com/nexuspdv/pdv-api/internal/domain/repository"
	"github.com/nexuspdv/pdv-api/pkg/apperror"
)

// SettingsService manages the single-row store configuration
type SettingsService struct {
	settingsRepo repository.SettingsRepository
	audit        *AuditService
}

// NewSettingsService creates a new settings service
func NewSettingsService(settingsRepo repository.SettingsRepository, audit *AuditService) *SettingsService {
	return &SettingsService{
		settingsRepo: settingsRepo,
		audit:        audit,
	}
}

// UpdateSettingsInput represents the update settings input
type UpdateSettingsInput struct {
	StoreName          string
	MaxDiscountPercent int
}

// Get returns the store configuration, falling back to defaults when the
// row does not exist yet
func (s *SettingsService) Get(ctx context.Context) (*entity.StoreConfig, error) {
	config, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if config == nil {
		return &entity.StoreConfig{
			StoreName:          entity.DefaultStoreName,
			MaxDiscountPercent: entity.DefaultMaxDiscountPercent,
		}, nil
	}
	return config, nil
}

// Update validates and persists the store configuration
func (s *SettingsService) Update(ctx context.Context, userID uuid.UUID, input *UpdateSettingsInput) (*entity.StoreConfig, error) {
	if input.StoreName == "" {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "store_name", Message: "Store name is required"},
		})
	}
	if input.MaxDiscountPercent < 0 || input.MaxDiscountPercent > 100 {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "max_discount_percent", Message: "Discount limit must be between 0 and 100"},
		})
	}

	config, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if config == nil {
		config = &entity.StoreConfig{}
	}

	config.StoreName = input.StoreName
	config.MaxDiscountPercent = input.MaxDiscountPercent

	if err := s.settingsRepo.Save(ctx, config); err != nil {
		return nil, err
	}

	details := fmt.Sprintf("Configurações atualizadas: %s, desconto máximo %d%%",
		config.StoreName, config.MaxDiscountPercent)
	s.audit.Record(ctx, userID, entity.AuditActionConfigUpdate, details, entity.AuditModuleSettings, &config.ID)

	return config, nil
}
