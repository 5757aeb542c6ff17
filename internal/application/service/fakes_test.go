package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/nexuspdv/pdv-api/internal/domain/entity"
	"github.com/nexuspdv/pdv-api/internal/domain/enum"
	"github.com/nexuspdv/pdv-api/internal/domain/repository"
	"github.com/nexuspdv/pdv-api/pkg/pagination"
)

// In-memory repository fakes shared by the service tests.

type fakeProductRepo struct {
	mu       sync.Mutex
	products map[uuid.UUID]*entity.Product
}

func newFakeProductRepo(products ...*entity.Product) *fakeProductRepo {
	repo := &fakeProductRepo{products: make(map[uuid.UUID]*entity.Product)}
	for _, p := range products {
		if p.ID == uuid.Nil {
			p.ID = uuid.New()
		}
		copied := *p
		repo.products[p.ID] = &copied
	}
	return repo
}

func (r *fakeProductRepo) Create(ctx context.Context, product *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	product.CreatedAt = time.Now()
	copied := *product
	r.products[product.ID] = &copied
	return nil
}

func (r *fakeProductRepo) CreateBatch(ctx context.Context, products []entity.Product) error {
	for i := range products {
		if err := r.Create(ctx, &products[i]); err != nil {
			return err
		}
	}
	return nil
}

func (r *fakeProductRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	product, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	copied := *product
	return &copied, nil
}

func (r *fakeProductRepo) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []entity.Product
	for _, id := range ids {
		if product, ok := r.products[id]; ok {
			result = append(result, *product)
		}
	}
	return result, nil
}

func (r *fakeProductRepo) GetBySKU(ctx context.Context, sku string) (*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, product := range r.products {
		if product.SKU == sku {
			copied := *product
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) GetByBarcode(ctx context.Context, barcode string) (*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, product := range r.products {
		if product.Barcode == barcode {
			copied := *product
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) Update(ctx context.Context, product *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[product.ID]; !ok {
		return errors.New("product not found")
	}
	copied := *product
	r.products[product.ID] = &copied
	return nil
}

func (r *fakeProductRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.products, id)
	return nil
}

func (r *fakeProductRepo) List(ctx context.Context, params *repository.ProductFilterParams) ([]entity.Product, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []entity.Product
	for _, product := range r.products {
		if params.Type != nil && product.Type != *params.Type {
			continue
		}
		if params.Category != "" && product.Category != params.Category {
			continue
		}
		if params.Search != "" && !strings.Contains(strings.ToLower(product.Name), strings.ToLower(params.Search)) &&
			product.SKU != params.Search && product.Barcode != params.Search {
			continue
		}
		if params.LowStock && !product.IsLowStock() {
			continue
		}
		result = append(result, *product)
	}
	return result, int64(len(result)), nil
}

func (r *fakeProductRepo) ListAll(ctx context.Context) ([]entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []entity.Product
	for _, product := range r.products {
		result = append(result, *product)
	}
	return result, nil
}

func (r *fakeProductRepo) GetLowStock(ctx context.Context) ([]entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []entity.Product
	for _, product := range r.products {
		if product.IsLowStock() {
			result = append(result, *product)
		}
	}
	return result, nil
}

func (r *fakeProductRepo) Count(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.products)), nil
}

func (r *fakeProductRepo) AtomicAdjustStock(ctx context.Context, id uuid.UUID, delta int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	product, ok := r.products[id]
	if !ok {
		return false, nil
	}
	if product.Stock+delta < 0 {
		return false, nil
	}
	product.Stock += delta
	return true, nil
}

func (r *fakeProductRepo) AtomicDecrementBatch(ctx context.Context, decrements map[uuid.UUID]int) ([]uuid.UUID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var failedIDs []uuid.UUID
	for id, qty := range decrements {
		product, ok := r.products[id]
		if !ok || product.Stock-qty < 0 {
			failedIDs = append(failedIDs, id)
		}
	}
	if len(failedIDs) > 0 {
		return failedIDs, nil
	}
	for id, qty := range decrements {
		r.products[id].Stock -= qty
	}
	return nil, nil
}

func (r *fakeProductRepo) AtomicIncrementBatch(ctx context.Context, increments map[uuid.UUID]int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, qty := range increments {
		if product, ok := r.products[id]; ok {
			product.Stock += qty
		}
	}
	return nil
}

func (r *fakeProductRepo) stockOf(id uuid.UUID) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if product, ok := r.products[id]; ok {
		return product.Stock
	}
	return -1
}

type fakeSaleRepo struct {
	mu         sync.Mutex
	sales      []*entity.Sale
	failCreate bool
}

func newFakeSaleRepo() *fakeSaleRepo {
	return &fakeSaleRepo{}
}

func (r *fakeSaleRepo) Create(ctx context.Context, sale *entity.Sale) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failCreate {
		return errors.New("sale insert failed")
	}
	if sale.ID == uuid.Nil {
		sale.ID = uuid.New()
	}
	if sale.CreatedAt.IsZero() {
		sale.CreatedAt = time.Now()
	}
	for i := range sale.Items {
		if sale.Items[i].ID == uuid.Nil {
			sale.Items[i].ID = uuid.New()
		}
		sale.Items[i].SaleID = sale.ID
	}
	copied := *sale
	r.sales = append(r.sales, &copied)
	return nil
}

func (r *fakeSaleRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	return r.GetWithItems(ctx, id)
}

func (r *fakeSaleRepo) GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, sale := range r.sales {
		if sale.ID == id {
			copied := *sale
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeSaleRepo) List(ctx context.Context, params *repository.SaleFilterParams) ([]entity.Sale, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []entity.Sale
	for _, sale := range r.sales {
		if params.Status != nil && sale.Status != *params.Status {
			continue
		}
		if params.CustomerID != nil && (sale.CustomerID == nil || *sale.CustomerID != *params.CustomerID) {
			continue
		}
		result = append(result, *sale)
	}
	return result, int64(len(result)), nil
}

func (r *fakeSaleRepo) ListAll(ctx context.Context) ([]entity.Sale, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]entity.Sale, 0, len(r.sales))
	for _, sale := range r.sales {
		result = append(result, *sale)
	}
	return result, nil
}

func (r *fakeSaleRepo) ListSince(ctx context.Context, since time.Time) ([]entity.Sale, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []entity.Sale
	for _, sale := range r.sales {
		if !sale.CreatedAt.Before(since) {
			result = append(result, *sale)
		}
	}
	return result, nil
}

func (r *fakeSaleRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.SaleStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, sale := range r.sales {
		if sale.ID == id {
			sale.Status = status
			return nil
		}
	}
	return errors.New("sale not found")
}

func (r *fakeSaleRepo) Count(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.sales)), nil
}

type fakeQuoteRepo struct {
	mu               sync.Mutex
	quotes           []*entity.Quote
	failUpdateStatus bool
}

func newFakeQuoteRepo() *fakeQuoteRepo {
	return &fakeQuoteRepo{}
}

func (r *fakeQuoteRepo) Create(ctx context.Context, quote *entity.Quote) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if quote.ID == uuid.Nil {
		quote.ID = uuid.New()
	}
	if quote.CreatedAt.IsZero() {
		quote.CreatedAt = time.Now()
	}
	for i := range quote.Items {
		if quote.Items[i].ID == uuid.Nil {
			quote.Items[i].ID = uuid.New()
		}
		quote.Items[i].QuoteID = quote.ID
	}
	copied := *quote
	r.quotes = append(r.quotes, &copied)
	return nil
}

func (r *fakeQuoteRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Quote, error) {
	return r.GetWithItems(ctx, id)
}

func (r *fakeQuoteRepo) GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Quote, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, quote := range r.quotes {
		if quote.ID == id {
			copied := *quote
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeQuoteRepo) List(ctx context.Context, params *repository.QuoteFilterParams) ([]entity.Quote, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []entity.Quote
	for _, quote := range r.quotes {
		if params.Status != nil && quote.Status != *params.Status {
			continue
		}
		result = append(result, *quote)
	}
	return result, int64(len(result)), nil
}

func (r *fakeQuoteRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.QuoteStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failUpdateStatus {
		return errors.New("quote update failed")
	}
	for _, quote := range r.quotes {
		if quote.ID == id {
			quote.Status = status
			return nil
		}
	}
	return errors.New("quote not found")
}

func (r *fakeQuoteRepo) Count(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.quotes)), nil
}

type fakeCustomerRepo struct {
	mu        sync.Mutex
	customers map[uuid.UUID]*entity.Customer
}

func newFakeCustomerRepo(customers ...*entity.Customer) *fakeCustomerRepo {
	repo := &fakeCustomerRepo{customers: make(map[uuid.UUID]*entity.Customer)}
	for _, c := range customers {
		if c.ID == uuid.Nil {
			c.ID = uuid.New()
		}
		copied := *c
		repo.customers[c.ID] = &copied
	}
	return repo
}

func (r *fakeCustomerRepo) Create(ctx context.Context, customer *entity.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if customer.ID == uuid.Nil {
		customer.ID = uuid.New()
	}
	copied := *customer
	r.customers[customer.ID] = &copied
	return nil
}

func (r *fakeCustomerRepo) CreateBatch(ctx context.Context, customers []entity.Customer) error {
	for i := range customers {
		if err := r.Create(ctx, &customers[i]); err != nil {
			return err
		}
	}
	return nil
}

func (r *fakeCustomerRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	customer, ok := r.customers[id]
	if !ok {
		return nil, nil
	}
	copied := *customer
	return &copied, nil
}

func (r *fakeCustomerRepo) Update(ctx context.Context, customer *entity.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *customer
	r.customers[customer.ID] = &copied
	return nil
}

func (r *fakeCustomerRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.customers, id)
	return nil
}

func (r *fakeCustomerRepo) List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Customer, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []entity.Customer
	for _, customer := range r.customers {
		if search != "" && !strings.Contains(strings.ToLower(customer.Name), strings.ToLower(search)) {
			continue
		}
		result = append(result, *customer)
	}
	return result, int64(len(result)), nil
}

func (r *fakeCustomerRepo) Count(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.customers)), nil
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*entity.User
}

func newFakeUserRepo(users ...*entity.User) *fakeUserRepo {
	repo := &fakeUserRepo{users: make(map[uuid.UUID]*entity.User)}
	for _, u := range users {
		if u.ID == uuid.Nil {
			u.ID = uuid.New()
		}
		copied := *u
		repo.users[u.ID] = &copied
	}
	return repo
}

func (r *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) CreateBatch(ctx context.Context, users []entity.User) error {
	for i := range users {
		if err := r.Create(ctx, &users[i]); err != nil {
			return err
		}
	}
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Update(ctx context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) List(ctx context.Context) ([]entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []entity.User
	for _, user := range r.users {
		result = append(result, *user)
	}
	return result, nil
}

func (r *fakeUserRepo) Count(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.users)), nil
}

type fakeAuditRepo struct {
	mu      sync.Mutex
	entries []entity.AuditLog
}

func newFakeAuditRepo() *fakeAuditRepo {
	return &fakeAuditRepo{}
}

func (r *fakeAuditRepo) Create(ctx context.Context, log *entity.AuditLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if log.ID == uuid.Nil {
		log.ID = uuid.New()
	}
	log.CreatedAt = time.Now()
	r.entries = append(r.entries, *log)
	return nil
}

func (r *fakeAuditRepo) List(ctx context.Context, params *repository.AuditFilterParams) ([]entity.AuditLog, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []entity.AuditLog
	// Newest-first, like the real repository
	for i := len(r.entries) - 1; i >= 0; i-- {
		entry := r.entries[i]
		if params.Action != "" && entry.Action != params.Action {
			continue
		}
		if params.Module != "" && entry.Module != params.Module {
			continue
		}
		if params.UserID != nil && entry.UserID != *params.UserID {
			continue
		}
		result = append(result, entry)
	}
	return result, int64(len(result)), nil
}

func (r *fakeAuditRepo) ListByEntity(ctx context.Context, entityID uuid.UUID) ([]entity.AuditLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []entity.AuditLog
	for i := len(r.entries) - 1; i >= 0; i-- {
		entry := r.entries[i]
		if entry.EntityID != nil && *entry.EntityID == entityID {
			result = append(result, entry)
		}
	}
	return result, nil
}

func (r *fakeAuditRepo) byAction(action string) []entity.AuditLog {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []entity.AuditLog
	for _, entry := range r.entries {
		if entry.Action == action {
			result = append(result, entry)
		}
	}
	return result
}

func (r *fakeAuditRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

type fakeSettingsRepo struct {
	mu     sync.Mutex
	config *entity.StoreConfig
}

func newFakeSettingsRepo(config *entity.StoreConfig) *fakeSettingsRepo {
	return &fakeSettingsRepo{config: config}
}

func (r *fakeSettingsRepo) Get(ctx context.Context) (*entity.StoreConfig, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.config == nil {
		return nil, nil
	}
	copied := *r.config
	return &copied, nil
}

func (r *fakeSettingsRepo) Save(ctx context.Context, config *entity.StoreConfig) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if config.ID == uuid.Nil {
		config.ID = uuid.New()
	}
	copied := *config
	r.config = &copied
	return nil
}
