package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/nexuspdv/pdv-api/internal/domain/entity"
	"github.com/nexuspdv/pdv-api/internal/domain/enum"
	"github.com/nexuspdv/pdv-api/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type saleServiceFixture struct {
	service      *SaleService
	productRepo  *fakeProductRepo
	saleRepo     *fakeSaleRepo
	customerRepo *fakeCustomerRepo
	auditRepo    *fakeAuditRepo
}

func newSaleServiceFixture(maxDiscountPercent int, products ...*entity.Product) *saleServiceFixture {
	productRepo := newFakeProductRepo(products...)
	saleRepo := newFakeSaleRepo()
	customerRepo := newFakeCustomerRepo()
	auditRepo := newFakeAuditRepo()
	audit := NewAuditService(auditRepo)
	settings := NewSettingsService(newFakeSettingsRepo(&entity.StoreConfig{
		StoreName:          "Loja Teste",
		MaxDiscountPercent: maxDiscountPercent,
	}), audit)

	return &saleServiceFixture{
		service:      NewSaleService(saleRepo, productRepo, customerRepo, settings, audit),
		productRepo:  productRepo,
		saleRepo:     saleRepo,
		customerRepo: customerRepo,
		auditRepo:    auditRepo,
	}
}

func stockedProduct(sku string, priceCents, costCents int64, stock int) *entity.Product {
	return &entity.Product{
		ID:       uuid.New(),
		SKU:      sku,
		Name:     "Produto " + sku,
		Category: "Geral",
		Unit:     "UN",
		Price:    priceCents,
		Cost:     costCents,
		Stock:    stock,
		MinStock: 1,
		Type:     enum.ProductTypeProduct,
	}
}

func serviceEntry(sku string, priceCents int64) *entity.Product {
	return &entity.Product{
		ID:       uuid.New(),
		SKU:      sku,
		Name:     "Serviço " + sku,
		Category: "Serviços",
		Unit:     "UN",
		Price:    priceCents,
		Stock:    entity.ServiceStock,
		Type:     enum.ProductTypeService,
	}
}

func TestCommitSaleDeductsStockAndFreezesItems(t *testing.T) {
	product := stockedProduct("BEB001", 500, 250, 10)
	f := newSaleServiceFixture(10, product)

	sale, err := f.service.Commit(context.Background(), &CommitSaleInput{
		UserID:          uuid.New(),
		PaymentMethod:   enum.PaymentMethodCash,
		PaymentReceived: 20.00,
		Items: []SaleItemInput{
			{ProductID: product.ID, Quantity: 3},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, sale)

	assert.Equal(t, int64(1500), sale.Subtotal)
	assert.Equal(t, int64(1500), sale.Total)
	assert.Equal(t, int64(2000), sale.PaymentReceived)
	assert.Equal(t, int64(500), sale.Change)
	assert.Equal(t, enum.SaleStatusCompleted, sale.Status)
	assert.NotEmpty(t, sale.ReceiptNo)

	require.Len(t, sale.Items, 1)
	assert.Equal(t, product.SKU, sale.Items[0].SKU)
	assert.Equal(t, product.Name, sale.Items[0].Name)
	assert.Equal(t, int64(500), sale.Items[0].Price)
	assert.Equal(t, int64(250), sale.Items[0].Cost)

	assert.Equal(t, 7, f.productRepo.stockOf(product.ID))

	entries := f.auditRepo.byAction(entity.AuditActionSaleCreated)
	require.Len(t, entries, 1)
	assert.Equal(t, entity.AuditModulePOS, entries[0].Module)
	require.NotNil(t, entries[0].EntityID)
	assert.Equal(t, sale.ID, *entries[0].EntityID)
}

func TestCommitSaleEmptyCart(t *testing.T) {
	f := newSaleServiceFixture(10)

	_, err := f.service.Commit(context.Background(), &CommitSaleInput{
		UserID:        uuid.New(),
		PaymentMethod: enum.PaymentMethodCash,
	})
	assert.ErrorIs(t, err, apperror.ErrEmptyCart)
}

func TestCommitSaleServiceItemsLeaveStockUntouched(t *testing.T) {
	svc := serviceEntry("SRV001", 8000)
	f := newSaleServiceFixture(10, svc)

	sale, err := f.service.Commit(context.Background(), &CommitSaleInput{
		UserID:          uuid.New(),
		PaymentMethod:   enum.PaymentMethodPix,
		PaymentReceived: 80.00,
		Items: []SaleItemInput{
			{ProductID: svc.ID, Quantity: 1},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(8000), sale.Total)

	assert.Equal(t, entity.ServiceStock, f.productRepo.stockOf(svc.ID))
}

func TestCommitSaleInsufficientStock(t *testing.T) {
	product := stockedProduct("BEB001", 500, 250, 2)
	f := newSaleServiceFixture(10, product)

	_, err := f.service.Commit(context.Background(), &CommitSaleInput{
		UserID:          uuid.New(),
		PaymentMethod:   enum.PaymentMethodCash,
		PaymentReceived: 50.00,
		Items: []SaleItemInput{
			{ProductID: product.ID, Quantity: 3},
		},
	})
	require.Error(t, err)
	appErr := apperror.GetAppError(err)
	assert.Equal(t, 422, appErr.Code)
	assert.Contains(t, appErr.Message, product.Name)

	// Nothing moved, nothing was written
	assert.Equal(t, 2, f.productRepo.stockOf(product.ID))
	count, _ := f.saleRepo.Count(context.Background())
	assert.Zero(t, count)
	assert.Zero(t, f.auditRepo.count())
}

func TestCommitSaleDiscountAboveLimitRejected(t *testing.T) {
	product := stockedProduct("PAP001", 1000, 400, 10)
	f := newSaleServiceFixture(10, product)

	// Line total is 20.00, the 10% cap allows at most 2.00
	_, err := f.service.Commit(context.Background(), &CommitSaleInput{
		UserID:          uuid.New(),
		PaymentMethod:   enum.PaymentMethodCash,
		PaymentReceived: 20.00,
		Items: []SaleItemInput{
			{ProductID: product.ID, Quantity: 2, Discount: 2.01},
		},
	})
	assert.ErrorIs(t, err, apperror.ErrDiscountLimitExceeded)
	assert.Equal(t, 10, f.productRepo.stockOf(product.ID))
}

func TestCommitSaleDiscountAtLimitAccepted(t *testing.T) {
	product := stockedProduct("PAP001", 1000, 400, 10)
	f := newSaleServiceFixture(10, product)

	sale, err := f.service.Commit(context.Background(), &CommitSaleInput{
		UserID:          uuid.New(),
		PaymentMethod:   enum.PaymentMethodDebitCard,
		PaymentReceived: 18.00,
		Items: []SaleItemInput{
			{ProductID: product.ID, Quantity: 2, Discount: 2.00},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2000), sale.Subtotal)
	assert.Equal(t, int64(200), sale.DiscountTotal)
	assert.Equal(t, int64(1800), sale.Total)
}

func TestCommitSaleTotalNeverNegative(t *testing.T) {
	product := stockedProduct("PAP001", 1000, 400, 10)
	// A 100% limit allows discounting the full line value
	f := newSaleServiceFixture(100, product)

	sale, err := f.service.Commit(context.Background(), &CommitSaleInput{
		UserID:          uuid.New(),
		PaymentMethod:   enum.PaymentMethodCash,
		PaymentReceived: 0,
		Items: []SaleItemInput{
			{ProductID: product.ID, Quantity: 1, Discount: 10.00},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(0), sale.Total)
	assert.Equal(t, int64(0), sale.Change)
}

func TestCommitSaleUnknownCustomer(t *testing.T) {
	product := stockedProduct("BEB001", 500, 250, 10)
	f := newSaleServiceFixture(10, product)

	missing := uuid.New()
	_, err := f.service.Commit(context.Background(), &CommitSaleInput{
		UserID:     uuid.New(),
		CustomerID: &missing,
		Items: []SaleItemInput{
			{ProductID: product.ID, Quantity: 1},
		},
	})
	require.Error(t, err)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)
}

func TestCommitSaleRestoresStockWhenPersistFails(t *testing.T) {
	product := stockedProduct("BEB001", 500, 250, 10)
	f := newSaleServiceFixture(10, product)
	f.saleRepo.failCreate = true

	_, err := f.service.Commit(context.Background(), &CommitSaleInput{
		UserID:          uuid.New(),
		PaymentMethod:   enum.PaymentMethodCash,
		PaymentReceived: 10.00,
		Items: []SaleItemInput{
			{ProductID: product.ID, Quantity: 4},
		},
	})
	require.Error(t, err)
	assert.Equal(t, 10, f.productRepo.stockOf(product.ID))
}

func TestCancelSaleRestoresStock(t *testing.T) {
	product := stockedProduct("BEB001", 500, 250, 10)
	svc := serviceEntry("SRV001", 8000)
	f := newSaleServiceFixture(10, product, svc)
	userID := uuid.New()

	sale, err := f.service.Commit(context.Background(), &CommitSaleInput{
		UserID:          userID,
		PaymentMethod:   enum.PaymentMethodCash,
		PaymentReceived: 100.00,
		Items: []SaleItemInput{
			{ProductID: product.ID, Quantity: 5},
			{ProductID: svc.ID, Quantity: 1},
		},
	})
	require.NoError(t, err)
	require.Equal(t, 5, f.productRepo.stockOf(product.ID))

	require.NoError(t, f.service.Cancel(context.Background(), userID, sale.ID))

	assert.Equal(t, 10, f.productRepo.stockOf(product.ID))
	assert.Equal(t, entity.ServiceStock, f.productRepo.stockOf(svc.ID))

	cancelled, err := f.service.GetSale(context.Background(), sale.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.SaleStatusCancelled, cancelled.Status)

	entries := f.auditRepo.byAction(entity.AuditActionSaleCancelled)
	require.Len(t, entries, 1)
}

func TestCancelSaleTwiceRejected(t *testing.T) {
	product := stockedProduct("BEB001", 500, 250, 10)
	f := newSaleServiceFixture(10, product)
	userID := uuid.New()

	sale, err := f.service.Commit(context.Background(), &CommitSaleInput{
		UserID:          userID,
		PaymentMethod:   enum.PaymentMethodCash,
		PaymentReceived: 5.00,
		Items: []SaleItemInput{
			{ProductID: product.ID, Quantity: 1},
		},
	})
	require.NoError(t, err)

	require.NoError(t, f.service.Cancel(context.Background(), userID, sale.ID))
	err = f.service.Cancel(context.Background(), userID, sale.ID)
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)

	// Stock restored exactly once
	assert.Equal(t, 10, f.productRepo.stockOf(product.ID))
}
