package service

import (
	"context"
	"sort"
	"time"

	"github.com/nexuspdv/pdv-api/internal/domain/repository"
)

// MetricsService computes store KPIs and dashboard series from sales history
type MetricsService struct {
	saleRepo     repository.SaleRepository
	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository
	quoteRepo    repository.QuoteRepository
}

// NewMetricsService creates a new metrics service
func NewMetricsService(
	saleRepo repository.SaleRepository,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
	quoteRepo repository.QuoteRepository,
) *MetricsService {
	return &MetricsService{
		saleRepo:     saleRepo,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		quoteRepo:    quoteRepo,
	}
}

// KPIMetrics represents the headline store indicators. Every recorded sale
// counts, cancelled ones included: the history is the source of truth.
type KPIMetrics struct {
	TotalSales    int64   `json:"total_sales"`
	TotalRevenue  float64 `json:"total_revenue"`
	TotalProfit   float64 `json:"total_profit"`
	LowStockCount int64   `json:"low_stock_count"`
}

// DailySalesPoint represents a daily sales data point
type DailySalesPoint struct {
	Date    string  `json:"date"`
	Revenue float64 `json:"revenue"`
	Profit  float64 `json:"profit"`
}

// CategorySalesPoint represents sales by category
type CategorySalesPoint struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
}

// DashboardStats bundles the KPIs with counters and chart series
type DashboardStats struct {
	KPIMetrics
	TotalProducts     int64                `json:"total_products"`
	TotalCustomers    int64                `json:"total_customers"`
	TotalQuotes       int64                `json:"total_quotes"`
	DailySalesData    []DailySalesPoint    `json:"daily_sales_data"`
	CategorySalesData []CategorySalesPoint `json:"category_sales_data"`
}

// ComputeKPIs derives the headline indicators from the full sales history
// and the current catalog
func (s *MetricsService) ComputeKPIs(ctx context.Context) (*KPIMetrics, error) {
	sales, err := s.saleRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	var totalRevenue, totalProfit int64
	for _, sale := range sales {
		totalRevenue += sale.Total

		var saleCost int64
		for _, item := range sale.Items {
			saleCost += item.Cost * int64(item.Quantity)
		}
		totalProfit += sale.Total - saleCost
	}

	lowStock, err := s.productRepo.GetLowStock(ctx)
	if err != nil {
		return nil, err
	}

	return &KPIMetrics{
		TotalSales:    int64(len(sales)),
		TotalRevenue:  float64(totalRevenue) / 100,
		TotalProfit:   float64(totalProfit) / 100,
		LowStockCount: int64(len(lowStock)),
	}, nil
}

// GetDashboardStats returns the KPIs plus entity counters and the last-7-days
// and per-category sales series
func (s *MetricsService) GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
	kpis, err := s.ComputeKPIs(ctx)
	if err != nil {
		return nil, err
	}

	stats := &DashboardStats{KPIMetrics: *kpis}

	if stats.TotalProducts, err = s.productRepo.Count(ctx); err != nil {
		return nil, err
	}
	if stats.TotalCustomers, err = s.customerRepo.Count(ctx); err != nil {
		return nil, err
	}
	if stats.TotalQuotes, err = s.quoteRepo.Count(ctx); err != nil {
		return nil, err
	}

	now := time.Now()
	weekAgo := now.AddDate(0, 0, -6)
	startOfWindow := time.Date(weekAgo.Year(), weekAgo.Month(), weekAgo.Day(), 0, 0, 0, 0, weekAgo.Location())

	sales, err := s.saleRepo.ListSince(ctx, startOfWindow)
	if err != nil {
		return nil, err
	}

	type dayBucket struct {
		revenue int64
		profit  int64
	}
	days := make(map[string]*dayBucket, 7)
	categories := make(map[string]int64)

	for _, sale := range sales {
		key := sale.CreatedAt.Format("2006-01-02")
		bucket := days[key]
		if bucket == nil {
			bucket = &dayBucket{}
			days[key] = bucket
		}

		var saleCost int64
		for _, item := range sale.Items {
			saleCost += item.Cost * int64(item.Quantity)
			categories[item.Category] += item.LineTotal()
		}
		bucket.revenue += sale.Total
		bucket.profit += sale.Total - saleCost
	}

	stats.DailySalesData = make([]DailySalesPoint, 0, 7)
	for i := 6; i >= 0; i-- {
		date := now.AddDate(0, 0, -i)
		point := DailySalesPoint{Date: date.Format("Jan 02")}
		if bucket := days[date.Format("2006-01-02")]; bucket != nil {
			point.Revenue = float64(bucket.revenue) / 100
			point.Profit = float64(bucket.profit) / 100
		}
		stats.DailySalesData = append(stats.DailySalesData, point)
	}

	stats.CategorySalesData = make([]CategorySalesPoint, 0, len(categories))
	for category, amount := range categories {
		stats.CategorySalesData = append(stats.CategorySalesData, CategorySalesPoint{
			Category: category,
			Amount:   float64(amount) / 100,
		})
	}
	sort.Slice(stats.CategorySalesData, func(i, j int) bool {
		return stats.CategorySalesData[i].Amount > stats.CategorySalesData[j].Amount
	})

	return stats, nil
}
