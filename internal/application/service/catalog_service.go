package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/nexuspdv/pdv-api/internal/domain/entity"
	"github.com/nexuspdv/pdv-api/internal/domain/enum"
	"github.com/nexuspdv/pdv-api/internal/domain/repository"
	"github.com/nexuspdv/pdv-api/pkg/apperror"
	"github.com/nexuspdv/pdv-api/pkg/pagination"
)

// CatalogService handles products and services in the catalog
type CatalogService struct {
	productRepo repository.ProductRepository
	audit       *AuditService
}

// NewCatalogService creates a new catalog service
func NewCatalogService(productRepo repository.ProductRepository, audit *AuditService) *CatalogService {
	return &CatalogService{
		productRepo: productRepo,
		audit:       audit,
	}
}

// ProductInput represents the create/update product input. Monetary values
// are decimals and converted to cents on write.
type ProductInput struct {
	SKU      string
	Barcode  string
	Name     string
	Category string
	Unit     string
	Price    float64
	Cost     float64
	Stock    int
	MinStock int
	Type     enum.ProductType
}

func validateProductInput(input *ProductInput) error {
	var fieldErrors []apperror.FieldError

	if input.Name == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "name", Message: "Name is required"})
	}
	if input.SKU == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "sku", Message: "SKU is required"})
	}
	if input.Cost < 0 {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "cost", Message: "Cost cannot be negative"})
	}
	if input.Price < input.Cost {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "price", Message: "Price cannot be below cost"})
	}
	if input.Stock < 0 {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "stock", Message: "Stock cannot be negative"})
	}
	if input.MinStock < 0 {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "min_stock", Message: "Minimum stock cannot be negative"})
	}

	if len(fieldErrors) > 0 {
		return apperror.NewValidationError(fieldErrors)
	}
	return nil
}

// CreateProduct creates a new catalog entry and records it in the audit trail
func (s *CatalogService) CreateProduct(ctx context.Context, userID uuid.UUID, input *ProductInput) (*entity.Product, error) {
	if err := validateProductInput(input); err != nil {
		return nil, err
	}

	existing, err := s.productRepo.GetBySKU(ctx, input.SKU)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError(fmt.Sprintf("SKU %s already exists", input.SKU))
	}

	product := &entity.Product{
		SKU:      input.SKU,
		Barcode:  input.Barcode,
		Name:     input.Name,
		Category: input.Category,
		Unit:     input.Unit,
		Stock:    input.Stock,
		MinStock: input.MinStock,
		Type:     input.Type,
	}
	product.SetPriceFromDecimal(input.Price)
	product.SetCostFromDecimal(input.Cost)

	// Services never track stock: pin the sentinel level
	if product.IsService() {
		product.Stock = entity.ServiceStock
		product.MinStock = 0
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	details := fmt.Sprintf("Produto %s (%s) cadastrado", product.Name, product.SKU)
	s.audit.Record(ctx, userID, entity.AuditActionProductCreate, details, entity.AuditModuleCatalog, &product.ID)

	return product, nil
}

// GetProduct retrieves a product by ID
func (s *CatalogService) GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// GetProductBySKU retrieves a product by SKU
func (s *CatalogService) GetProductBySKU(ctx context.Context, sku string) (*entity.Product, error) {
	product, err := s.productRepo.GetBySKU(ctx, sku)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// GetProductByBarcode retrieves a product by barcode (for scanner lookups)
func (s *CatalogService) GetProductByBarcode(ctx context.Context, barcode string) (*entity.Product, error) {
	if barcode == "" {
		return nil, apperror.NewBadRequestError("Barcode is required")
	}
	product, err := s.productRepo.GetByBarcode(ctx, barcode)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// UpdateProduct updates a catalog entry. Exactly one audit entry is written
// per update: a stock movement entry when the stock level changed, otherwise
// a plain product update entry.
func (s *CatalogService) UpdateProduct(ctx context.Context, userID, id uuid.UUID, input *ProductInput) (*entity.Product, error) {
	if err := validateProductInput(input); err != nil {
		return nil, err
	}

	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}

	if input.SKU != product.SKU {
		existing, err := s.productRepo.GetBySKU(ctx, input.SKU)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != product.ID {
			return nil, apperror.NewConflictError(fmt.Sprintf("SKU %s already exists", input.SKU))
		}
	}

	previousStock := product.Stock

	product.SKU = input.SKU
	product.Barcode = input.Barcode
	product.Name = input.Name
	product.Category = input.Category
	product.Unit = input.Unit
	product.Stock = input.Stock
	product.MinStock = input.MinStock
	product.Type = input.Type
	product.SetPriceFromDecimal(input.Price)
	product.SetCostFromDecimal(input.Cost)

	if product.IsService() {
		product.Stock = entity.ServiceStock
		product.MinStock = 0
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	stockDelta := product.Stock - previousStock
	switch {
	case !product.IsService() && stockDelta > 0:
		details := fmt.Sprintf("Entrada de %d %s em %s (%s)", stockDelta, product.Unit, product.Name, product.SKU)
		s.audit.Record(ctx, userID, entity.AuditActionStockAdd, details, entity.AuditModuleStock, &product.ID)
	case !product.IsService() && stockDelta < 0:
		details := fmt.Sprintf("Saída de %d %s em %s (%s)", -stockDelta, product.Unit, product.Name, product.SKU)
		s.audit.Record(ctx, userID, entity.AuditActionStockRemove, details, entity.AuditModuleStock, &product.ID)
	default:
		details := fmt.Sprintf("Produto %s (%s) atualizado", product.Name, product.SKU)
		s.audit.Record(ctx, userID, entity.AuditActionProductUpdate, details, entity.AuditModuleCatalog, &product.ID)
	}

	return product, nil
}

// DeleteProduct soft-deletes a catalog entry. Historic sale and quote items
// keep their frozen copies of the product data.
func (s *CatalogService) DeleteProduct(ctx context.Context, userID, id uuid.UUID) error {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil {
		return apperror.NewNotFoundError("Product")
	}

	if err := s.productRepo.Delete(ctx, id); err != nil {
		return err
	}

	details := fmt.Sprintf("Produto %s (%s) removido", product.Name, product.SKU)
	s.audit.Record(ctx, userID, entity.AuditActionProductDelete, details, entity.AuditModuleCatalog, &product.ID)

	return nil
}

// ListProducts lists catalog entries with filtering
func (s *CatalogService) ListProducts(ctx context.Context, params *repository.ProductFilterParams) (*pagination.PaginatedResult[entity.Product], error) {
	products, total, err := s.productRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(products, pag), nil
}

// ListServices returns every service-type catalog entry
func (s *CatalogService) ListServices(ctx context.Context) ([]entity.Product, error) {
	products, err := s.productRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	services := make([]entity.Product, 0)
	for _, product := range products {
		if product.Type == enum.ProductTypeService {
			services = append(services, product)
		}
	}
	return services, nil
}

// GetLowStock returns products at or below their minimum stock level
func (s *CatalogService) GetLowStock(ctx context.Context) ([]entity.Product, error) {
	return s.productRepo.GetLowStock(ctx)
}
