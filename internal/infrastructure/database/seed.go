package database

import (
	"log"
	"time"

	"github.com/nexuspdv/pdv-api/internal/domain/entity"
	"github.com/nexuspdv/pdv-api/internal/domain/enum"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type seedProduct struct {
	SKU      string
	Barcode  string
	Name     string
	Category string
	Price    int64 // cents
	Cost     int64 // cents
	Stock    int
	MinStock int
	Unit     string
	Type     enum.ProductType
}

var seedCatalog = []seedProduct{
	// Products
	{"BEB001", "789000101", "Coca-Cola 350ml", "Bebidas", 500, 250, 100, 20, "UN", enum.ProductTypeProduct},
	{"BEB002", "789000102", "Água Mineral 500ml", "Bebidas", 300, 80, 150, 30, "UN", enum.ProductTypeProduct},
	{"BEB003", "789000103", "Suco de Laranja Natural", "Bebidas", 800, 300, 50, 10, "UN", enum.ProductTypeProduct},
	{"SNK001", "789000104", "Batata Chips Original", "Snacks", 750, 400, 40, 10, "PCT", enum.ProductTypeProduct},
	{"SNK002", "789000105", "Chocolate Barra Ao Leite", "Snacks", 600, 320, 80, 15, "UN", enum.ProductTypeProduct},
	{"ELE001", "789000106", "Cabo USB-C 1m", "Eletrônicos", 2500, 800, 25, 5, "UN", enum.ProductTypeProduct},
	{"ELE002", "789000107", "Fone de Ouvido Básico", "Eletrônicos", 3500, 1200, 15, 3, "UN", enum.ProductTypeProduct},
	{"ELE003", "789000108", "Carregador Parede Fast", "Eletrônicos", 5000, 2000, 10, 2, "UN", enum.ProductTypeProduct},
	{"LIM001", "789000109", "Detergente Neutro", "Limpeza", 250, 120, 60, 10, "UN", enum.ProductTypeProduct},
	{"LIM002", "789000110", "Sabão em Pó 1kg", "Limpeza", 1200, 750, 30, 5, "CX", enum.ProductTypeProduct},
	{"PAP001", "789000111", "Papel A4 Resma 500", "Papelaria", 2800, 1800, 100, 20, "PCT", enum.ProductTypeProduct},
	{"PAP002", "789000112", "Caneta Esferográfica Azul", "Papelaria", 150, 30, 200, 50, "UN", enum.ProductTypeProduct},
	{"ALI001", "789000113", "Arroz Branco 5kg", "Alimentos", 2200, 1600, 40, 10, "PCT", enum.ProductTypeProduct},
	{"ALI002", "789000114", "Feijão Carioca 1kg", "Alimentos", 850, 500, 50, 10, "PCT", enum.ProductTypeProduct},
	{"ALI003", "789000115", "Macarrão Espaguete", "Alimentos", 400, 200, 60, 15, "PCT", enum.ProductTypeProduct},
	{"ALI004", "789000116", "Óleo de Soja 900ml", "Alimentos", 700, 450, 35, 8, "UN", enum.ProductTypeProduct},
	{"HIG001", "789000117", "Sabonete Hidratante", "Higiene", 200, 90, 80, 20, "UN", enum.ProductTypeProduct},
	{"HIG002", "789000118", "Shampoo 350ml", "Higiene", 1500, 800, 25, 5, "UN", enum.ProductTypeProduct},
	{"HIG003", "789000119", "Creme Dental", "Higiene", 450, 220, 60, 15, "UN", enum.ProductTypeProduct},
	{"UTI001", "789000120", "Pilha AA (Pack 4)", "Utilidades", 1200, 600, 30, 5, "PCT", enum.ProductTypeProduct},

	// Services
	{"SRV001", "", "Instalação de Software", "Informática", 8000, 0, entity.ServiceStock, 0, "SERV", enum.ProductTypeService},
	{"SRV002", "", "Formatação Computador", "Informática", 12000, 0, entity.ServiceStock, 0, "SERV", enum.ProductTypeService},
	{"SRV003", "", "Configuração de Rede", "Informática", 15000, 0, entity.ServiceStock, 0, "SERV", enum.ProductTypeService},
	{"SRV004", "", "Troca de Tela Celular (Mão de Obra)", "Manutenção", 10000, 0, entity.ServiceStock, 0, "SERV", enum.ProductTypeService},
	{"SRV005", "", "Limpeza Interna PC", "Manutenção", 5000, 500, entity.ServiceStock, 0, "SERV", enum.ProductTypeService},
	{"SRV006", "", "Entrega Expressa", "Logística", 1500, 1000, entity.ServiceStock, 0, "SERV", enum.ProductTypeService},
	{"SRV007", "", "Embrulho para Presente", "Extra", 500, 100, entity.ServiceStock, 0, "SERV", enum.ProductTypeService},
	{"SRV008", "", "Consultoria Técnica (Hora)", "Consultoria", 20000, 0, entity.ServiceStock, 0, "SERV", enum.ProductTypeService},
	{"SRV009", "", "Garantia Estendida 1 Ano", "Seguros", 4500, 2000, entity.ServiceStock, 0, "SERV", enum.ProductTypeService},
	{"SRV010", "", "Recarga Cartucho", "Manutenção", 3000, 500, entity.ServiceStock, 0, "SERV", enum.ProductTypeService},
}

type seedUser struct {
	Name   string
	Email  string
	Role   enum.Role
	Avatar string
}

var seedUsers = []seedUser{
	{"Administrador", "admin@pdv.com", enum.RoleAdmin, "https://picsum.photos/100/100?random=1"},
	{"Gerente Loja", "gerente@pdv.com", enum.RoleManager, "https://picsum.photos/100/100?random=2"},
	{"Operador Caixa", "caixa@pdv.com", enum.RoleCashier, "https://picsum.photos/100/100?random=3"},
	{"Estoquista", "estoque@pdv.com", enum.RoleStockKeeper, "https://picsum.photos/100/100?random=4"},
}

// SeedDefaultData seeds each table when it is empty: store configuration,
// demo users, the initial catalog, walk-in customers and one draft quote
func SeedDefaultData(db *gorm.DB) error {
	log.Println("Seeding default data...")

	if err := seedStoreConfig(db); err != nil {
		return err
	}
	if err := seedDefaultUsers(db); err != nil {
		return err
	}
	if err := seedProducts(db); err != nil {
		return err
	}
	if err := seedCustomers(db); err != nil {
		return err
	}
	if err := seedQuotes(db); err != nil {
		return err
	}

	log.Println("Default data seeding completed")
	return nil
}

func seedStoreConfig(db *gorm.DB) error {
	var count int64
	if err := db.Model(&entity.StoreConfig{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	config := entity.StoreConfig{
		StoreName:          entity.DefaultStoreName,
		MaxDiscountPercent: entity.DefaultMaxDiscountPercent,
	}
	return db.Create(&config).Error
}

func seedDefaultUsers(db *gorm.DB) error {
	var count int64
	if err := db.Model(&entity.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	defaultPassword := viper.GetString("SEED_USER_PASSWORD")
	if defaultPassword == "" {
		defaultPassword = "mudar@123"
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(defaultPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	users := make([]entity.User, 0, len(seedUsers))
	for _, su := range seedUsers {
		avatar := su.Avatar
		users = append(users, entity.User{
			Name:     su.Name,
			Email:    su.Email,
			Password: string(hashed),
			Role:     su.Role,
			Avatar:   &avatar,
		})
	}
	return db.Create(&users).Error
}

func seedProducts(db *gorm.DB) error {
	var count int64
	if err := db.Model(&entity.Product{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	products := make([]entity.Product, 0, len(seedCatalog))
	for _, sp := range seedCatalog {
		products = append(products, entity.Product{
			SKU:      sp.SKU,
			Barcode:  sp.Barcode,
			Name:     sp.Name,
			Category: sp.Category,
			Price:    sp.Price,
			Cost:     sp.Cost,
			Stock:    sp.Stock,
			MinStock: sp.MinStock,
			Unit:     sp.Unit,
			Type:     sp.Type,
		})
	}
	return db.Create(&products).Error
}

func seedCustomers(db *gorm.DB) error {
	var count int64
	if err := db.Model(&entity.Customer{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	str := func(s string) *string { return &s }

	customers := []entity.Customer{
		{Name: "Cliente Balcão"},
		{Name: "João da Silva", Email: str("joao@email.com"), Phone: str("11999998888"), Document: str("123.456.789-00")},
		{Name: "Empresa ABC Ltda", Email: str("contato@abc.com"), Phone: str("1133334444"), Document: str("12.345.678/0001-90")},
	}
	return db.Create(&customers).Error
}

// seedQuotes creates one draft quote referencing the seeded catalog so a
// fresh install has something to show on the quotes screen
func seedQuotes(db *gorm.DB) error {
	var count int64
	if err := db.Model(&entity.Quote{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	var manager entity.User
	if err := db.First(&manager, "email = ?", "gerente@pdv.com").Error; err != nil {
		log.Printf("Warning: skipping quote seed, manager user missing: %v", err)
		return nil
	}

	var customer entity.Customer
	if err := db.First(&customer, "name = ?", "João da Silva").Error; err != nil {
		log.Printf("Warning: skipping quote seed, customer missing: %v", err)
		return nil
	}

	var formatting, paper entity.Product
	if err := db.First(&formatting, "sku = ?", "SRV002").Error; err != nil {
		log.Printf("Warning: skipping quote seed, product missing: %v", err)
		return nil
	}
	if err := db.First(&paper, "sku = ?", "PAP001").Error; err != nil {
		log.Printf("Warning: skipping quote seed, product missing: %v", err)
		return nil
	}

	notes := "Aguardando aprovação do cliente por WhatsApp"
	subtotal := formatting.Price + paper.Price*2

	quote := entity.Quote{
		Reference:    "ORC-INICIAL1",
		UserID:       manager.ID,
		CustomerID:   &customer.ID,
		CustomerName: customer.Name,
		ExpiresAt:    time.Now().Add(7 * 24 * time.Hour),
		Subtotal:     subtotal,
		Total:        subtotal,
		Status:       enum.QuoteStatusDraft,
		Notes:        &notes,
		Items: []entity.QuoteItem{
			{
				ProductID: formatting.ID,
				SKU:       formatting.SKU,
				Name:      formatting.Name,
				Category:  formatting.Category,
				Unit:      formatting.Unit,
				Type:      formatting.Type,
				Price:     formatting.Price,
				Cost:      formatting.Cost,
				Quantity:  1,
			},
			{
				ProductID: paper.ID,
				SKU:       paper.SKU,
				Name:      paper.Name,
				Category:  paper.Category,
				Unit:      paper.Unit,
				Type:      paper.Type,
				Price:     paper.Price,
				Cost:      paper.Cost,
				Quantity:  2,
			},
		},
	}
	return db.Create(&quote).Error
}
