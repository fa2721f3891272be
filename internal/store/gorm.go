package store

import (
	"context"

	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/postgres" // PostgreSQL dialect
	_ "github.com/jinzhu/gorm/dialects/sqlite"   // SQLite dialect (mattn/go-sqlite3)

	"logisnap/internal/models"
)

// gormStore persists through gorm. Driver is "sqlite3" or "postgres",
// selected by configuration.
type gormStore struct {
	db     *gorm.DB
	policy ReceivingPolicy
}

// OpenGorm opens the database, runs migrations, and returns a Store.
func OpenGorm(driver, dsn string, policy ReceivingPolicy) (Store, error) {
	db, err := gorm.Open(driver, dsn)
	if err != nil {
		return nil, err
	}

	db.AutoMigrate(
		&models.Product{},
		&models.Location{},
		&models.InventoryItem{},
		&models.InboundOrder{},
		&models.InboundItem{},
		&models.BillingRule{},
		&models.Invoice{},
	)
	if err := db.Error; err != nil {
		db.Close()
		return nil, err
	}

	return &gormStore{db: db, policy: policy}, nil
}

func (s *gormStore) ListProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := s.db.Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (s *gormStore) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	var p models.Product
	if err := s.db.Where("id = ?", id).First(&p).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (s *gormStore) CreateProduct(ctx context.Context, p *models.Product) error {
	if err := prepareProduct(p); err != nil {
		return err
	}

	var count int
	if err := s.db.Model(&models.Product{}).Where("sku = ?", p.SKU).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrDuplicateSKU
	}
	return s.db.Create(p).Error
}

func (s *gormStore) ListLocations(ctx context.Context) ([]models.Location, error) {
	var locations []models.Location
	if err := s.db.Find(&locations).Error; err != nil {
		return nil, err
	}
	return locations, nil
}

// ListInventory returns inventory rows joined with product and location for
// display. Dangling references stay nil rather than failing the listing.
func (s *gormStore) ListInventory(ctx context.Context) ([]models.InventoryItem, error) {
	var items []models.InventoryItem
	if err := s.db.Find(&items).Error; err != nil {
		return nil, err
	}

	products, err := s.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	locations, err := s.ListLocations(ctx)
	if err != nil {
		return nil, err
	}

	byProduct := make(map[string]*models.Product, len(products))
	for i := range products {
		byProduct[products[i].ID] = &products[i]
	}
	byLocation := make(map[string]*models.Location, len(locations))
	for i := range locations {
		byLocation[locations[i].ID] = &locations[i]
	}

	for i := range items {
		items[i].Product = byProduct[items[i].ProductID]
		items[i].Location = byLocation[items[i].LocationID]
	}
	return items, nil
}

func (s *gormStore) ListInboundOrders(ctx context.Context) ([]models.InboundOrder, error) {
	var orders []models.InboundOrder
	if err := s.db.Preload("Items").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *gormStore) GetInboundOrder(ctx context.Context, id string) (*models.InboundOrder, error) {
	var order models.InboundOrder
	if err := s.db.Preload("Items").Where("id = ?", id).First(&order).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

func (s *gormStore) ReceiveInboundItem(ctx context.Context, orderID, itemID string, qty int) (*models.InboundOrder, error) {
	order, err := s.GetInboundOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := applyReceipt(order, itemID, qty, s.policy); err != nil {
		return nil, err
	}

	tx := s.db.Begin()
	for i := range order.Items {
		if order.Items[i].ID != itemID {
			continue
		}
		if err := tx.Model(&models.InboundItem{}).
			Where("id = ?", itemID).
			Update("received_qty", order.Items[i].ReceivedQty).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
	}
	if err := tx.Model(&models.InboundOrder{}).
		Where("id = ?", orderID).
		Update("status", order.Status).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return order, nil
}

func (s *gormStore) ListBillingRules(ctx context.Context) ([]models.BillingRule, error) {
	var rules []models.BillingRule
	if err := s.db.Find(&rules).Error; err != nil {
		return nil, err
	}
	return rules, nil
}

func (s *gormStore) CreateBillingRule(ctx context.Context, r *models.BillingRule) error {
	if err := prepareBillingRule(r); err != nil {
		return err
	}
	return s.db.Create(r).Error
}

func (s *gormStore) ListInvoices(ctx context.Context) ([]models.Invoice, error) {
	var invoices []models.Invoice
	if err := s.db.Find(&invoices).Error; err != nil {
		return nil, err
	}
	return invoices, nil
}

func (s *gormStore) Close() error {
	return s.db.Close()
}
