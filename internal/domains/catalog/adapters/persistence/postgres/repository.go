package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Apurer/go-gin-backoffice/internal/domains/catalog/domain"
	"github.com/Apurer/go-gin-backoffice/internal/domains/catalog/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists products in PostgreSQL using GORM.
type Repository struct {
	db       *gorm.DB
	rowLocks bool
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithRowLocks returns a repository whose reads take FOR UPDATE locks. Only meaningful inside a transaction.
func (r *Repository) WithRowLocks() *Repository {
	return &Repository{db: r.db, rowLocks: true}
}

type productRecord struct {
	ID          int64           `gorm:"primaryKey;column:id"`
	Name        string          `gorm:"column:name"`
	Price       decimal.Decimal `gorm:"column:price;type:numeric(12,2)"`
	Cost        decimal.Decimal `gorm:"column:cost;type:numeric(12,2)"`
	Description string          `gorm:"column:description"`
	InStock     int64           `gorm:"column:in_stock"`
	ImageURL    string          `gorm:"column:image_url"`
	CreatedAt   time.Time       `gorm:"column:created_at"`
	UpdatedAt   time.Time       `gorm:"column:updated_at"`
}

func (productRecord) TableName() string { return "products" }

// Save inserts a new product when ID is zero, otherwise rewrites its descriptive columns.
func (r *Repository) Save(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if product == nil {
		return nil, errors.New("product is nil")
	}
	if err := product.Validate(); err != nil {
		return nil, err
	}
	record := toRecord(product)
	if record.ID == 0 {
		if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
			return nil, err
		}
		return record.toDomain(), nil
	}
	result := r.db.WithContext(ctx).Model(&productRecord{}).Where("id = ?", record.ID).Updates(map[string]any{
		"name":        record.Name,
		"price":       record.Price,
		"cost":        record.Cost,
		"description": record.Description,
		"image_url":   record.ImageURL,
	})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ports.ErrNotFound
	}
	return r.GetByID(ctx, record.ID)
}

// Update writes only the set columns in a single UPDATE.
func (r *Repository) Update(ctx context.Context, id int64, changes ports.ProductChanges) (*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	columns := map[string]any{}
	if changes.Name != nil {
		columns["name"] = *changes.Name
	}
	if changes.Price != nil {
		columns["price"] = *changes.Price
	}
	if changes.Cost != nil {
		columns["cost"] = *changes.Cost
	}
	if changes.Description != nil {
		columns["description"] = *changes.Description
	}
	if changes.InStock != nil {
		columns["in_stock"] = *changes.InStock
	}
	if changes.ImageURL != nil {
		columns["image_url"] = *changes.ImageURL
	}
	if len(columns) == 0 {
		return r.GetByID(ctx, id)
	}
	columns["updated_at"] = time.Now().UTC()
	result := r.db.WithContext(ctx).Model(&productRecord{}).Where("id = ?", id).Updates(columns)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ports.ErrNotFound
	}
	return r.GetByID(ctx, id)
}

// GetByID fetches a product by identifier.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	query := r.db.WithContext(ctx)
	if r.rowLocks {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var record productRecord
	if err := query.First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *Repository) Exists(ctx context.Context, id int64) (bool, error) {
	if err := r.ensureDB(); err != nil {
		return false, err
	}
	var count int64
	if err := r.db.WithContext(ctx).Model(&productRecord{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Delete removes a product; order lines referencing it keep their snapshot with a null product.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Delete(&productRecord{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

// List returns all products ordered by identifier.
func (r *Repository) List(ctx context.Context) ([]*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []productRecord
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&records).Error; err != nil {
		return nil, err
	}
	products := make([]*domain.Product, 0, len(records))
	for i := range records {
		products = append(products, records[i].toDomain())
	}
	return products, nil
}

// AdjustStock applies delta with a single conditional UPDATE so the stock can never drop below zero.
func (r *Repository) AdjustStock(ctx context.Context, id int64, delta int64) (*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	result := r.db.WithContext(ctx).Model(&productRecord{}).
		Where("id = ? AND in_stock + ? >= 0", id, delta).
		Update("in_stock", gorm.Expr("in_stock + ?", delta))
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		exists, err := r.Exists(ctx, id)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, ports.ErrNotFound
		}
		return nil, ports.ErrInsufficientStock
	}
	return r.GetByID(ctx, id)
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres product repository not configured")
	}
	return nil
}

func toRecord(product *domain.Product) productRecord {
	return productRecord{
		ID:          product.ID,
		Name:        product.Name,
		Price:       product.Price,
		Cost:        product.Cost,
		Description: product.Description,
		InStock:     product.InStock,
		ImageURL:    product.ImageURL,
	}
}

func (r productRecord) toDomain() *domain.Product {
	return &domain.Product{
		ID:          r.ID,
		Name:        r.Name,
		Price:       r.Price,
		Cost:        r.Cost,
		Description: r.Description,
		InStock:     r.InStock,
		ImageURL:    r.ImageURL,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}
