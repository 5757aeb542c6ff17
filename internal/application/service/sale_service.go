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
	"github.com/nexuspdv/pdv-api/pkg/utils"
)

// SaleService handles register transactions
type SaleService struct {
	saleRepo     repository.SaleRepository
	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository
	settings     *SettingsService
	audit        *AuditService
}

// NewSaleService creates a new sale service
func NewSaleService(
	saleRepo repository.SaleRepository,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
	settings *SettingsService,
	audit *AuditService,
) *SaleService {
	return &SaleService{
		saleRepo:     saleRepo,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		settings:     settings,
		audit:        audit,
	}
}

// SaleItemInput represents a cart line in a sale
type SaleItemInput struct {
	ProductID uuid.UUID
	Quantity  int
	Discount  float64 // Absolute discount for the line, as a decimal
}

// CommitSaleInput represents the commit sale input
type CommitSaleInput struct {
	UserID          uuid.UUID
	CustomerID      *uuid.UUID
	PaymentMethod   enum.PaymentMethod
	PaymentReceived float64
	Items           []SaleItemInput
}

// Commit finalizes a cart into a sale: freezes item data, enforces the
// discount limit, atomically deducts stock for product-type items and
// writes the sale with its audit entry. Stock already deducted is restored
// if persisting the sale fails.
func (s *SaleService) Commit(ctx context.Context, input *CommitSaleInput) (*entity.Sale, error) {
	if len(input.Items) == 0 {
		return nil, apperror.ErrEmptyCart
	}

	// Validate customer if provided
	if input.CustomerID != nil {
		customer, err := s.customerRepo.GetByID(ctx, *input.CustomerID)
		if err != nil {
			return nil, err
		}
		if customer == nil {
			return nil, apperror.NewNotFoundError("Customer")
		}
	}

	config, err := s.settings.Get(ctx)
	if err != nil {
		return nil, err
	}

	// Batch fetch all products in one query (prevents N+1)
	productIDs := make([]uuid.UUID, len(input.Items))
	for i, item := range input.Items {
		productIDs[i] = item.ProductID
	}

	products, err := s.productRepo.GetByIDs(ctx, productIDs)
	if err != nil {
		return nil, err
	}

	productMap := make(map[uuid.UUID]*entity.Product, len(products))
	for i := range products {
		productMap[products[i].ID] = &products[i]
	}

	saleItems := make([]entity.SaleItem, 0, len(input.Items))

	for _, item := range input.Items {
		product, exists := productMap[item.ProductID]
		if !exists {
			return nil, apperror.NewNotFoundError(fmt.Sprintf("Product %s", item.ProductID))
		}

		if item.Quantity <= 0 {
			return nil, apperror.NewValidationError([]apperror.FieldError{
				{Field: "quantity", Message: "Quantity must be positive"},
			})
		}
		if item.Discount < 0 {
			return nil, apperror.NewValidationError([]apperror.FieldError{
				{Field: "discount", Message: "Discount cannot be negative"},
			})
		}

		discountCents := int64(item.Discount*100 + 0.5)
		lineTotal := product.Price * int64(item.Quantity)

		// Enforce the configured per-line discount ceiling
		maxDiscount := lineTotal * int64(config.MaxDiscountPercent) / 100
		if discountCents > maxDiscount {
			return nil, apperror.ErrDiscountLimitExceeded
		}

		// Freeze the product data into the sale line
		saleItems = append(saleItems, entity.SaleItem{
			ProductID: product.ID,
			SKU:       product.SKU,
			Name:      product.Name,
			Category:  product.Category,
			Unit:      product.Unit,
			Type:      product.Type,
			Price:     product.Price,
			Cost:      product.Cost,
			Quantity:  item.Quantity,
			Discount:  discountCents,
		})
	}

	return s.commitFrozen(ctx, input.UserID, input.CustomerID, input.PaymentMethod, input.PaymentReceived, saleItems)
}

// commitFrozen writes a sale from already-frozen item data: it atomically
// deducts stock for product-type lines, persists the sale and records the
// audit entry. Quote conversion calls this directly so the prices locked
// at quote time are the ones billed, even after catalog edits.
func (s *SaleService) commitFrozen(
	ctx context.Context,
	userID uuid.UUID,
	customerID *uuid.UUID,
	paymentMethod enum.PaymentMethod,
	paymentReceived float64,
	saleItems []entity.SaleItem,
) (*entity.Sale, error) {
	var subtotal, discountTotal int64
	stockDecrements := make(map[uuid.UUID]int)
	itemNames := make(map[uuid.UUID]string, len(saleItems))

	for _, item := range saleItems {
		subtotal += item.Price * int64(item.Quantity)
		discountTotal += item.Discount
		itemNames[item.ProductID] = item.Name

		// Services never touch stock
		if item.Type == enum.ProductTypeProduct {
			stockDecrements[item.ProductID] += item.Quantity
		}
	}

	// Atomically decrement stock - this is race-condition safe.
	// If any product has insufficient stock, the entire operation fails.
	failedIDs, err := s.productRepo.AtomicDecrementBatch(ctx, stockDecrements)
	if err != nil {
		return nil, err
	}

	if len(failedIDs) > 0 {
		var failedNames []string
		for _, id := range failedIDs {
			failedNames = append(failedNames, itemNames[id])
		}
		return nil, apperror.NewUnprocessableError(fmt.Sprintf("Insufficient stock for: %v", failedNames))
	}

	total := subtotal - discountTotal
	if total < 0 {
		total = 0
	}

	receivedCents := int64(paymentReceived*100 + 0.5)
	change := receivedCents - total
	if change < 0 {
		change = 0
	}

	sale := &entity.Sale{
		ReceiptNo:       utils.GenerateReceiptNo(),
		UserID:          userID,
		CustomerID:      customerID,
		Subtotal:        subtotal,
		DiscountTotal:   discountTotal,
		Total:           total,
		PaymentMethod:   paymentMethod,
		PaymentReceived: receivedCents,
		Change:          change,
		Status:          enum.SaleStatusCompleted,
		Items:           saleItems,
	}

	if err := s.saleRepo.Create(ctx, sale); err != nil {
		// Stock was already decremented - restore it
		_ = s.productRepo.AtomicIncrementBatch(ctx, stockDecrements)
		return nil, err
	}

	details := fmt.Sprintf("Venda #%s realizada valor R$%.2f", utils.ShortID(sale.ID), sale.GetTotalDecimal())
	s.audit.Record(ctx, userID, entity.AuditActionSaleCreated, details, entity.AuditModulePOS, &sale.ID)

	return sale, nil
}

// GetSale retrieves a sale with its items
func (s *SaleService) GetSale(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	sale, err := s.saleRepo.GetWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Sale")
	}
	return sale, nil
}

// ListSales lists sales newest-first with filtering
func (s *SaleService) ListSales(ctx context.Context, params *repository.SaleFilterParams) (*pagination.PaginatedResult[entity.Sale], error) {
	sales, total, err := s.saleRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(sales, pag), nil
}

// Cancel voids a completed sale and restores stock for its product-type
// items. The sale record itself is kept for reporting.
func (s *SaleService) Cancel(ctx context.Context, userID, saleID uuid.UUID) error {
	sale, err := s.saleRepo.GetWithItems(ctx, saleID)
	if err != nil {
		return err
	}
	if sale == nil {
		return apperror.NewNotFoundError("Sale")
	}

	if sale.Status == enum.SaleStatusCancelled {
		return apperror.NewBadRequestError("Sale is already cancelled")
	}

	stockIncrements := make(map[uuid.UUID]int)
	for _, item := range sale.Items {
		if item.Type == enum.ProductTypeProduct {
			stockIncrements[item.ProductID] += item.Quantity
		}
	}

	if err := s.productRepo.AtomicIncrementBatch(ctx, stockIncrements); err != nil {
		return err
	}

	if err := s.saleRepo.UpdateStatus(ctx, saleID, enum.SaleStatusCancelled); err != nil {
		return err
	}

	details := fmt.Sprintf("Venda #%s cancelada valor R$%.2f", utils.ShortID(sale.ID), sale.GetTotalDecimal())
	s.audit.Record(ctx, userID, entity.AuditActionSaleCancelled, details, entity.AuditModulePOS, &sale.ID)

	return nil
}
