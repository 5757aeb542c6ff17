package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nexuspdv/pdv-api/internal/domain/entity"
	"github.com/nexuspdv/pdv-api/internal/domain/enum"
	"github.com/nexuspdv/pdv-api/internal/domain/repository"
	"github.com/nexuspdv/pdv-api/pkg/apperror"
	"github.com/nexuspdv/pdv-api/pkg/pagination"
	"github.com/nexuspdv/pdv-api/pkg/utils"
)

// QuoteService handles price quotes and their conversion into sales
type QuoteService struct {
	quoteRepo    repository.QuoteRepository
	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository
	sales        *SaleService
	audit        *AuditService
}

// NewQuoteService creates a new quote service
func NewQuoteService(
	quoteRepo repository.QuoteRepository,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
	sales *SaleService,
	audit *AuditService,
) *QuoteService {
	return &QuoteService{
		quoteRepo:    quoteRepo,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		sales:        sales,
		audit:        audit,
	}
}

// QuoteItemInput represents a cart line in a quote
type QuoteItemInput struct {
	ProductID uuid.UUID
	Quantity  int
}

// CreateQuoteInput represents the create quote input
type CreateQuoteInput struct {
	UserID     uuid.UUID
	CustomerID *uuid.UUID
	ExpiresAt  time.Time
	Notes      *string
	Items      []QuoteItemInput
}

// ConvertQuoteInput carries the payment details used when a quote becomes a sale
type ConvertQuoteInput struct {
	UserID          uuid.UUID
	PaymentMethod   enum.PaymentMethod
	PaymentReceived float64
}

// Create builds a quote from the current catalog, freezing product data
// into its items. Quotes never touch stock.
func (s *QuoteService) Create(ctx context.Context, input *CreateQuoteInput) (*entity.Quote, error) {
	if len(input.Items) == 0 {
		return nil, apperror.NewUnprocessableError("Quote must contain at least one item")
	}

	var customerName string
	if input.CustomerID != nil {
		customer, err := s.customerRepo.GetByID(ctx, *input.CustomerID)
		if err != nil {
			return nil, err
		}
		if customer == nil {
			return nil, apperror.NewNotFoundError("Customer")
		}
		customerName = customer.Name
	}

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

	var subtotal int64
	quoteItems := make([]entity.QuoteItem, 0, len(input.Items))

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

		subtotal += product.Price * int64(item.Quantity)

		quoteItems = append(quoteItems, entity.QuoteItem{
			ProductID: product.ID,
			SKU:       product.SKU,
			Name:      product.Name,
			Category:  product.Category,
			Unit:      product.Unit,
			Type:      product.Type,
			Price:     product.Price,
			Cost:      product.Cost,
			Quantity:  item.Quantity,
		})
	}

	expiresAt := input.ExpiresAt
	if expiresAt.IsZero() {
		expiresAt = time.Now().Add(7 * 24 * time.Hour)
	}

	quote := &entity.Quote{
		Reference:    utils.GenerateQuoteReference(),
		UserID:       input.UserID,
		CustomerID:   input.CustomerID,
		CustomerName: customerName,
		ExpiresAt:    expiresAt,
		Subtotal:     subtotal,
		Total:        subtotal,
		Status:       enum.QuoteStatusDraft,
		Notes:        input.Notes,
		Items:        quoteItems,
	}

	if err := s.quoteRepo.Create(ctx, quote); err != nil {
		return nil, err
	}

	details := fmt.Sprintf("Orçamento #%s criado valor R$%.2f", utils.ShortID(quote.ID), float64(quote.Total)/100)
	s.audit.Record(ctx, input.UserID, entity.AuditActionQuoteCreated, details, entity.AuditModuleQuotes, &quote.ID)

	return quote, nil
}

// GetQuote retrieves a quote with its items
func (s *QuoteService) GetQuote(ctx context.Context, id uuid.UUID) (*entity.Quote, error) {
	quote, err := s.quoteRepo.GetWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if quote == nil {
		return nil, apperror.NewNotFoundError("Quote")
	}
	return quote, nil
}

// ListQuotes lists quotes newest-first with filtering
func (s *QuoteService) ListQuotes(ctx context.Context, params *repository.QuoteFilterParams) (*pagination.PaginatedResult[entity.Quote], error) {
	quotes, total, err := s.quoteRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(quotes, pag), nil
}

// SetStatus moves a quote through its lifecycle, rejecting transitions the
// status table does not allow. Conversion must go through Convert.
func (s *QuoteService) SetStatus(ctx context.Context, userID, quoteID uuid.UUID, target enum.QuoteStatus) (*entity.Quote, error) {
	if target == enum.QuoteStatusConverted {
		return nil, apperror.NewBadRequestError("Conversion requires payment details")
	}

	quote, err := s.quoteRepo.GetWithItems(ctx, quoteID)
	if err != nil {
		return nil, err
	}
	if quote == nil {
		return nil, apperror.NewNotFoundError("Quote")
	}

	if !quote.Status.CanTransitionTo(target) {
		return nil, apperror.ErrInvalidStatusChange
	}

	if err := s.quoteRepo.UpdateStatus(ctx, quoteID, target); err != nil {
		return nil, err
	}
	quote.Status = target

	details := fmt.Sprintf("Orçamento #%s marcado como %s", utils.ShortID(quote.ID), target.String())
	s.audit.Record(ctx, userID, entity.AuditActionQuoteStatus, details, entity.AuditModuleQuotes, &quote.ID)

	return quote, nil
}

// Convert turns a quote into a sale billed at the prices frozen into the
// quote's items, regardless of catalog edits since. Stock is deducted for
// product-type lines and the quote is marked converted. If marking fails
// after the sale was committed, the sale is cancelled to restore stock.
func (s *QuoteService) Convert(ctx context.Context, quoteID uuid.UUID, input *ConvertQuoteInput) (*entity.Sale, error) {
	quote, err := s.quoteRepo.GetWithItems(ctx, quoteID)
	if err != nil {
		return nil, err
	}
	if quote == nil {
		return nil, apperror.NewNotFoundError("Quote")
	}

	if !quote.Status.CanTransitionTo(enum.QuoteStatusConverted) {
		return nil, apperror.ErrInvalidStatusChange
	}

	saleItems := make([]entity.SaleItem, 0, len(quote.Items))
	for _, item := range quote.Items {
		saleItems = append(saleItems, entity.SaleItem{
			ProductID: item.ProductID,
			SKU:       item.SKU,
			Name:      item.Name,
			Category:  item.Category,
			Unit:      item.Unit,
			Type:      item.Type,
			Price:     item.Price,
			Cost:      item.Cost,
			Quantity:  item.Quantity,
		})
	}

	sale, err := s.sales.commitFrozen(ctx, input.UserID, quote.CustomerID, input.PaymentMethod, input.PaymentReceived, saleItems)
	if err != nil {
		return nil, err
	}

	if err := s.quoteRepo.UpdateStatus(ctx, quoteID, enum.QuoteStatusConverted); err != nil {
		// The sale already went through; cancel it so stock is restored
		_ = s.sales.Cancel(ctx, input.UserID, sale.ID)
		return nil, err
	}

	details := fmt.Sprintf("Orçamento #%s convertido em venda #%s", utils.ShortID(quote.ID), utils.ShortID(sale.ID))
	s.audit.Record(ctx, input.UserID, entity.AuditActionQuoteStatus, details, entity.AuditModuleQuotes, &quote.ID)

	return sale, nil
}
