package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/nexuspdv/pdv-api/internal/domain/entity"
	"github.com/nexuspdv/pdv-api/internal/domain/repository"
	"github.com/nexuspdv/pdv-api/pkg/apperror"
)

// StockService handles manual stock movements outside of sales
type StockService struct {
	productRepo repository.ProductRepository
	audit       *AuditService
}

// NewStockService creates a new stock service
func NewStockService(productRepo repository.ProductRepository, audit *AuditService) *StockService {
	return &StockService{
		productRepo: productRepo,
		audit:       audit,
	}
}

// AdjustStockInput represents a manual stock adjustment
type AdjustStockInput struct {
	ProductID uuid.UUID
	Delta     int // Signed: positive receives stock, negative removes it
	Reason    string
}

// Adjust applies a signed stock delta to a product. Adjustments against
// services are a complete no-op: stock is untouched and nothing is audited.
// Stock never goes below zero.
func (s *StockService) Adjust(ctx context.Context, userID uuid.UUID, input *AdjustStockInput) (*entity.Product, error) {
	if input.Delta == 0 {
		return nil, apperror.NewBadRequestError("Adjustment quantity cannot be zero")
	}

	product, err := s.productRepo.GetByID(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}

	if product.IsService() {
		return product, nil
	}

	ok, err := s.productRepo.AtomicAdjustStock(ctx, product.ID, input.Delta)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperror.ErrInsufficientStock
	}

	product.Stock += input.Delta

	var details string
	action := entity.AuditActionStockAdd
	if input.Delta > 0 {
		details = fmt.Sprintf("Entrada de %d %s em %s (%s)", input.Delta, product.Unit, product.Name, product.SKU)
	} else {
		action = entity.AuditActionStockRemove
		details = fmt.Sprintf("Saída de %d %s em %s (%s)", -input.Delta, product.Unit, product.Name, product.SKU)
	}
	if input.Reason != "" {
		details += " - " + input.Reason
	}
	s.audit.Record(ctx, userID, action, details, entity.AuditModuleStock, &product.ID)

	return product, nil
}
