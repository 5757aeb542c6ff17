package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/nexuspdv/pdv-api/internal/domain/entity"
	"github.com/nexuspdv/pdv-api/internal/domain/enum"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeKPIsCountsCancelledSales(t *testing.T) {
	product := stockedProduct("BEB001", 500, 250, 100)
	f := newSaleServiceFixture(10, product)
	userID := uuid.New()

	first, err := f.service.Commit(context.Background(), &CommitSaleInput{
		UserID:          userID,
		PaymentMethod:   enum.PaymentMethodCash,
		PaymentReceived: 10.00,
		Items:           []SaleItemInput{{ProductID: product.ID, Quantity: 2}},
	})
	require.NoError(t, err)

	_, err = f.service.Commit(context.Background(), &CommitSaleInput{
		UserID:          userID,
		PaymentMethod:   enum.PaymentMethodPix,
		PaymentReceived: 15.00,
		Items:           []SaleItemInput{{ProductID: product.ID, Quantity: 3}},
	})
	require.NoError(t, err)

	require.NoError(t, f.service.Cancel(context.Background(), userID, first.ID))

	metrics := NewMetricsService(f.saleRepo, f.productRepo, f.customerRepo, newFakeQuoteRepo())
	kpis, err := metrics.ComputeKPIs(context.Background())
	require.NoError(t, err)

	// Both sales count, the cancelled one included
	assert.Equal(t, int64(2), kpis.TotalSales)
	assert.InDelta(t, 25.00, kpis.TotalRevenue, 0.001)
	// Profit per unit is 2.50, five units across both sales
	assert.InDelta(t, 12.50, kpis.TotalProfit, 0.001)
}

func TestComputeKPIsLowStockCount(t *testing.T) {
	low := stockedProduct("A", 100, 50, 2)
	low.MinStock = 5
	healthy := stockedProduct("B", 100, 50, 50)
	healthy.MinStock = 5
	svc := serviceEntry("SRV001", 8000)

	metrics := NewMetricsService(newFakeSaleRepo(), newFakeProductRepo(low, healthy, svc), newFakeCustomerRepo(), newFakeQuoteRepo())
	kpis, err := metrics.ComputeKPIs(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(1), kpis.LowStockCount)
	assert.Zero(t, kpis.TotalSales)
	assert.Zero(t, kpis.TotalRevenue)
}

func TestDashboardStatsCountersAndSeries(t *testing.T) {
	product := stockedProduct("BEB001", 500, 250, 100)
	paper := stockedProduct("PAP001", 1300, 700, 50)
	paper.Category = "Papelaria"
	f := newSaleServiceFixture(10, product, paper)
	userID := uuid.New()

	_, err := f.service.Commit(context.Background(), &CommitSaleInput{
		UserID:          userID,
		PaymentMethod:   enum.PaymentMethodCash,
		PaymentReceived: 50.00,
		Items: []SaleItemInput{
			{ProductID: product.ID, Quantity: 2},
			{ProductID: paper.ID, Quantity: 3},
		},
	})
	require.NoError(t, err)

	customerRepo := newFakeCustomerRepo(&entity.Customer{Name: "Cliente Balcão"})
	metrics := NewMetricsService(f.saleRepo, f.productRepo, customerRepo, newFakeQuoteRepo())

	stats, err := metrics.GetDashboardStats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(2), stats.TotalProducts)
	assert.Equal(t, int64(1), stats.TotalCustomers)
	assert.Zero(t, stats.TotalQuotes)

	// Seven-day window, one point per day
	require.Len(t, stats.DailySalesData, 7)
	today := stats.DailySalesData[6]
	assert.InDelta(t, 49.00, today.Revenue, 0.001)

	// Categories sorted by amount, largest first
	require.Len(t, stats.CategorySalesData, 2)
	assert.Equal(t, "Papelaria", stats.CategorySalesData[0].Category)
	assert.InDelta(t, 39.00, stats.CategorySalesData[0].Amount, 0.001)
	assert.Equal(t, "Geral", stats.CategorySalesData[1].Category)
	assert.InDelta(t, 10.00, stats.CategorySalesData[1].Amount, 0.001)
}
