package ports

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/Apurer/go-gin-backoffice/internal/domains/catalog/domain"
)

var (
	ErrNotFound          = errors.New("product not found")
	ErrInsufficientStock = errors.New("insufficient stock")
)

// ProductChanges lists already validated column values; nil fields are not written.
type ProductChanges struct {
	Name        *string
	Price       *decimal.Decimal
	Cost        *decimal.Decimal
	Description *string
	InStock     *int64
	ImageURL    *string
}

// Empty reports whether no field is set.
func (c ProductChanges) Empty() bool {
	return c.Name == nil && c.Price == nil && c.Cost == nil &&
		c.Description == nil && c.InStock == nil && c.ImageURL == nil
}

// Repository persists products and exposes the stock operations orders depend on.
type Repository interface {
	// Save inserts a product when its ID is zero. For an existing ID it rewrites the
	// descriptive fields; the stock column is left to Update and AdjustStock.
	Save(ctx context.Context, product *domain.Product) (*domain.Product, error)
	// Update writes only the fields set in changes, so concurrent stock movements survive.
	Update(ctx context.Context, id int64, changes ProductChanges) (*domain.Product, error)
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	Exists(ctx context.Context, id int64) (bool, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]*domain.Product, error)
	// AdjustStock atomically adds delta to the stock of a product. A delta that would
	// leave the stock below zero fails with ErrInsufficientStock and changes nothing.
	AdjustStock(ctx context.Context, id int64, delta int64) (*domain.Product, error)
}
