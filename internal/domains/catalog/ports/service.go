package ports

import (
	"context"
	"io"

	"github.com/shopspring/decimal"

	"github.com/Apurer/go-gin-backoffice/internal/domains/catalog/domain"
)

// ImageUpload is a product picture received from a client.
type ImageUpload struct {
	Filename string
	Content  io.Reader
}

// ProductInput carries optional product fields; nil fields are left untouched on update.
type ProductInput struct {
	Name        *string
	Price       *decimal.Decimal
	Cost        *decimal.Decimal
	Description *string
	InStock     *int64
	Image       *ImageUpload
}

// Service exposes catalog management use cases to adapters.
type Service interface {
	ListProducts(ctx context.Context) ([]*domain.Product, error)
	GetProduct(ctx context.Context, id int64) (*domain.Product, error)
	CreateProduct(ctx context.Context, input ProductInput) (*domain.Product, error)
	UpdateProduct(ctx context.Context, id int64, input ProductInput) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id int64) error
}
