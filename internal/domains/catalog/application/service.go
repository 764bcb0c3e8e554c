package application

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/Apurer/go-gin-backoffice/internal/domains/catalog/domain"
	"github.com/Apurer/go-gin-backoffice/internal/domains/catalog/ports"
)

// ErrImagesUnavailable is returned when a picture is uploaded but no image store is wired.
var ErrImagesUnavailable = errors.New("product image storage not configured")

// Service orchestrates catalog management use cases.
type Service struct {
	repo   ports.Repository
	images ports.ImageStore
}

// Option configures optional collaborators.
type Option func(*Service)

// WithImageStore enables product picture uploads.
func WithImageStore(store ports.ImageStore) Option {
	return func(s *Service) {
		s.images = store
	}
}

func NewService(repo ports.Repository, opts ...Option) *Service {
	s := &Service{repo: repo}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) ListProducts(ctx context.Context) ([]*domain.Product, error) {
	return s.repo.List(ctx)
}

func (s *Service) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	return s.repo.GetByID(ctx, id)
}

// CreateProduct requires a name; price, cost and stock default to zero.
func (s *Service) CreateProduct(ctx context.Context, input ports.ProductInput) (*domain.Product, error) {
	name := ""
	if input.Name != nil {
		name = *input.Name
	}
	product, err := domain.NewProduct(name, decimal.Zero, decimal.Zero, 0)
	if err != nil {
		return nil, mapError(err)
	}
	if err := applyInput(product, input); err != nil {
		return nil, mapError(err)
	}
	if input.Image != nil {
		url, err := s.storeImage(ctx, input.Image)
		if err != nil {
			return nil, err
		}
		product.ImageURL = url
	}
	saved, err := s.repo.Save(ctx, product)
	if err != nil {
		s.discardImage(ctx, product.ImageURL)
		return nil, mapError(err)
	}
	return saved, nil
}

// UpdateProduct validates the provided fields against the stored product and writes
// only those fields back. Stock moved by orders after the read is preserved.
func (s *Service) UpdateProduct(ctx context.Context, id int64, input ports.ProductInput) (*domain.Product, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	previousImage := product.ImageURL
	if err := applyInput(product, input); err != nil {
		return nil, mapError(err)
	}
	changes := changesFrom(product, input)
	if input.Image != nil {
		url, err := s.storeImage(ctx, input.Image)
		if err != nil {
			return nil, err
		}
		changes.ImageURL = &url
	}
	if changes.Empty() {
		return product, nil
	}
	updated, err := s.repo.Update(ctx, id, changes)
	if err != nil {
		if changes.ImageURL != nil {
			s.discardImage(ctx, *changes.ImageURL)
		}
		return nil, mapError(err)
	}
	if changes.ImageURL != nil {
		s.discardImage(ctx, previousImage)
	}
	return updated, nil
}

// DeleteProduct removes the product and its picture.
func (s *Service) DeleteProduct(ctx context.Context, id int64) error {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.discardImage(ctx, product.ImageURL)
	return nil
}

func (s *Service) storeImage(ctx context.Context, upload *ports.ImageUpload) (string, error) {
	ext, err := domain.ImageExtension(upload.Filename)
	if err != nil {
		return "", mapError(err)
	}
	if s.images == nil {
		return "", ErrImagesUnavailable
	}
	return s.images.Put(ctx, ext, upload.Content)
}

// discardImage is best effort: a leftover file never fails the request.
func (s *Service) discardImage(ctx context.Context, url string) {
	if s.images == nil || url == "" {
		return
	}
	_ = s.images.Remove(ctx, url)
}

func applyInput(target *domain.Product, input ports.ProductInput) error {
	if input.Name != nil {
		if err := target.Rename(*input.Name); err != nil {
			return err
		}
	}
	if input.Price != nil || input.Cost != nil {
		price, cost := target.Price, target.Cost
		if input.Price != nil {
			price = *input.Price
		}
		if input.Cost != nil {
			cost = *input.Cost
		}
		if err := target.Reprice(price, cost); err != nil {
			return err
		}
	}
	if input.Description != nil {
		target.Description = *input.Description
	}
	if input.InStock != nil {
		if err := target.Restock(*input.InStock); err != nil {
			return err
		}
	}
	return target.Validate()
}

// changesFrom picks the normalized values of the fields the caller sent.
func changesFrom(product *domain.Product, input ports.ProductInput) ports.ProductChanges {
	var changes ports.ProductChanges
	if input.Name != nil {
		changes.Name = &product.Name
	}
	if input.Price != nil {
		changes.Price = &product.Price
	}
	if input.Cost != nil {
		changes.Cost = &product.Cost
	}
	if input.Description != nil {
		changes.Description = &product.Description
	}
	if input.InStock != nil {
		changes.InStock = &product.InStock
	}
	return changes
}

var _ ports.Service = (*Service)(nil)
