package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/nexuspdv/pdv-api/internal/domain/entity"
	"github.com/nexuspdv/pdv-api/internal/domain/enum"
	"github.com/nexuspdv/pdv-api/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type quoteServiceFixture struct {
	service     *QuoteService
	quoteRepo   *fakeQuoteRepo
	productRepo *fakeProductRepo
	saleRepo    *fakeSaleRepo
	auditRepo   *fakeAuditRepo
}

func newQuoteServiceFixture(products ...*entity.Product) *quoteServiceFixture {
	productRepo := newFakeProductRepo(products...)
	quoteRepo := newFakeQuoteRepo()
	saleRepo := newFakeSaleRepo()
	customerRepo := newFakeCustomerRepo()
	auditRepo := newFakeAuditRepo()
	audit := NewAuditService(auditRepo)
	settings := NewSettingsService(newFakeSettingsRepo(&entity.StoreConfig{
		StoreName:          "Loja Teste",
		MaxDiscountPercent: 10,
	}), audit)
	sales := NewSaleService(saleRepo, productRepo, customerRepo, settings, audit)

	return &quoteServiceFixture{
		service:     NewQuoteService(quoteRepo, productRepo, customerRepo, sales, audit),
		quoteRepo:   quoteRepo,
		productRepo: productRepo,
		saleRepo:    saleRepo,
		auditRepo:   auditRepo,
	}
}

func TestCreateQuoteFreezesItemsWithoutTouchingStock(t *testing.T) {
	svc := serviceEntry("SRV002", 15000)
	product := stockedProduct("PAP001", 1300, 700, 30)
	f := newQuoteServiceFixture(svc, product)

	quote, err := f.service.Create(context.Background(), &CreateQuoteInput{
		UserID: uuid.New(),
		Items: []QuoteItemInput{
			{ProductID: svc.ID, Quantity: 1},
			{ProductID: product.ID, Quantity: 2},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(17600), quote.Subtotal)
	assert.Equal(t, int64(17600), quote.Total)
	assert.Equal(t, enum.QuoteStatusDraft, quote.Status)
	assert.NotEmpty(t, quote.Reference)
	assert.False(t, quote.ExpiresAt.IsZero())
	require.Len(t, quote.Items, 2)

	// Quotes never move stock
	assert.Equal(t, 30, f.productRepo.stockOf(product.ID))

	entries := f.auditRepo.byAction(entity.AuditActionQuoteCreated)
	require.Len(t, entries, 1)
	assert.Equal(t, entity.AuditModuleQuotes, entries[0].Module)
}

func TestCreateQuoteWithoutItemsRejected(t *testing.T) {
	f := newQuoteServiceFixture()

	_, err := f.service.Create(context.Background(), &CreateQuoteInput{UserID: uuid.New()})
	require.Error(t, err)
	assert.Equal(t, 422, apperror.GetAppError(err).Code)
}

func TestCreateQuoteDefaultsExpiryToOneWeek(t *testing.T) {
	product := stockedProduct("PAP001", 1300, 700, 30)
	f := newQuoteServiceFixture(product)

	quote, err := f.service.Create(context.Background(), &CreateQuoteInput{
		UserID: uuid.New(),
		Items:  []QuoteItemInput{{ProductID: product.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	expected := time.Now().Add(7 * 24 * time.Hour)
	assert.WithinDuration(t, expected, quote.ExpiresAt, time.Minute)
}

func TestSetStatusRejectsDirectConversion(t *testing.T) {
	product := stockedProduct("PAP001", 1300, 700, 30)
	f := newQuoteServiceFixture(product)

	quote, err := f.service.Create(context.Background(), &CreateQuoteInput{
		UserID: uuid.New(),
		Items:  []QuoteItemInput{{ProductID: product.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	_, err = f.service.SetStatus(context.Background(), uuid.New(), quote.ID, enum.QuoteStatusConverted)
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)
	assert.Contains(t, apperror.GetAppError(err).Message, "payment")
}

func TestSetStatusFollowsTransitionTable(t *testing.T) {
	product := stockedProduct("PAP001", 1300, 700, 30)
	f := newQuoteServiceFixture(product)
	userID := uuid.New()

	quote, err := f.service.Create(context.Background(), &CreateQuoteInput{
		UserID: userID,
		Items:  []QuoteItemInput{{ProductID: product.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	// DRAFT -> SENT -> REJECTED is legal
	_, err = f.service.SetStatus(context.Background(), userID, quote.ID, enum.QuoteStatusSent)
	require.NoError(t, err)
	_, err = f.service.SetStatus(context.Background(), userID, quote.ID, enum.QuoteStatusRejected)
	require.NoError(t, err)

	// REJECTED is terminal
	_, err = f.service.SetStatus(context.Background(), userID, quote.ID, enum.QuoteStatusAccepted)
	assert.ErrorIs(t, err, apperror.ErrInvalidStatusChange)
}

func TestConvertQuoteCommitsSaleAndDeductsStock(t *testing.T) {
	svc := serviceEntry("SRV002", 15000)
	product := stockedProduct("PAP001", 1300, 700, 30)
	f := newQuoteServiceFixture(svc, product)
	userID := uuid.New()

	quote, err := f.service.Create(context.Background(), &CreateQuoteInput{
		UserID: userID,
		Items: []QuoteItemInput{
			{ProductID: svc.ID, Quantity: 1},
			{ProductID: product.ID, Quantity: 2},
		},
	})
	require.NoError(t, err)

	sale, err := f.service.Convert(context.Background(), quote.ID, &ConvertQuoteInput{
		UserID:          userID,
		PaymentMethod:   enum.PaymentMethodPix,
		PaymentReceived: 176.00,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(17600), sale.Total)
	assert.Equal(t, enum.SaleStatusCompleted, sale.Status)
	assert.Equal(t, 28, f.productRepo.stockOf(product.ID))
	assert.Equal(t, entity.ServiceStock, f.productRepo.stockOf(svc.ID))

	converted, err := f.service.GetQuote(context.Background(), quote.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.QuoteStatusConverted, converted.Status)
}

func TestConvertQuoteBillsFrozenPricesAfterCatalogEdit(t *testing.T) {
	product := stockedProduct("PAP001", 1300, 700, 30)
	f := newQuoteServiceFixture(product)
	userID := uuid.New()

	quote, err := f.service.Create(context.Background(), &CreateQuoteInput{
		UserID: userID,
		Items:  []QuoteItemInput{{ProductID: product.ID, Quantity: 2}},
	})
	require.NoError(t, err)
	require.Equal(t, int64(2600), quote.Total)

	// Price goes up between quoting and converting
	repriced, err := f.productRepo.GetByID(context.Background(), product.ID)
	require.NoError(t, err)
	repriced.Price = 2000
	require.NoError(t, f.productRepo.Update(context.Background(), repriced))

	sale, err := f.service.Convert(context.Background(), quote.ID, &ConvertQuoteInput{
		UserID:          userID,
		PaymentMethod:   enum.PaymentMethodCash,
		PaymentReceived: 26.00,
	})
	require.NoError(t, err)

	// The customer pays what was quoted, not the new catalog price
	assert.Equal(t, quote.Total, sale.Total)
	require.Len(t, sale.Items, 1)
	assert.Equal(t, int64(1300), sale.Items[0].Price)
	assert.Equal(t, 28, f.productRepo.stockOf(product.ID))
}

func TestConvertQuoteFromTerminalStatusRejected(t *testing.T) {
	product := stockedProduct("PAP001", 1300, 700, 30)
	f := newQuoteServiceFixture(product)
	userID := uuid.New()

	quote, err := f.service.Create(context.Background(), &CreateQuoteInput{
		UserID: userID,
		Items:  []QuoteItemInput{{ProductID: product.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	_, err = f.service.SetStatus(context.Background(), userID, quote.ID, enum.QuoteStatusRejected)
	require.NoError(t, err)

	_, err = f.service.Convert(context.Background(), quote.ID, &ConvertQuoteInput{
		UserID:          userID,
		PaymentMethod:   enum.PaymentMethodCash,
		PaymentReceived: 13.00,
	})
	assert.ErrorIs(t, err, apperror.ErrInvalidStatusChange)
	assert.Equal(t, 30, f.productRepo.stockOf(product.ID))
}

func TestConvertQuoteCancelsSaleWhenMarkingFails(t *testing.T) {
	product := stockedProduct("PAP001", 1300, 700, 30)
	f := newQuoteServiceFixture(product)
	userID := uuid.New()

	quote, err := f.service.Create(context.Background(), &CreateQuoteInput{
		UserID: userID,
		Items:  []QuoteItemInput{{ProductID: product.ID, Quantity: 5}},
	})
	require.NoError(t, err)

	f.quoteRepo.failUpdateStatus = true
	_, err = f.service.Convert(context.Background(), quote.ID, &ConvertQuoteInput{
		UserID:          userID,
		PaymentMethod:   enum.PaymentMethodCash,
		PaymentReceived: 65.00,
	})
	require.Error(t, err)

	// The committed sale was cancelled, so stock is back where it started
	assert.Equal(t, 30, f.productRepo.stockOf(product.ID))
	sales, _ := f.saleRepo.ListAll(context.Background())
	require.Len(t, sales, 1)
	assert.Equal(t, enum.SaleStatusCancelled, sales[0].Status)
}

func TestConvertQuoteFailsWhenStockRanOut(t *testing.T) {
	product := stockedProduct("PAP001", 1300, 700, 3)
	f := newQuoteServiceFixture(product)
	userID := uuid.New()

	quote, err := f.service.Create(context.Background(), &CreateQuoteInput{
		UserID: userID,
		Items:  []QuoteItemInput{{ProductID: product.ID, Quantity: 5}},
	})
	require.NoError(t, err)

	_, err = f.service.Convert(context.Background(), quote.ID, &ConvertQuoteInput{
		UserID:          userID,
		PaymentMethod:   enum.PaymentMethodCash,
		PaymentReceived: 65.00,
	})
	require.Error(t, err)
	assert.Equal(t, 422, apperror.GetAppError(err).Code)

	// Quote stays convertible for when stock returns
	unchanged, err := f.service.GetQuote(context.Background(), quote.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.QuoteStatusDraft, unchanged.Status)
	assert.Equal(t, 3, f.productRepo.stockOf(product.ID))
}
