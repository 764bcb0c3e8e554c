package domain

import (
	"errors"
	"path/filepath"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrEmptyName     = errors.New("product name is required")
	ErrNegativePrice = errors.New("price must be greater or equal to zero")
	ErrNegativeCost  = errors.New("cost must be greater or equal to zero")
	ErrNegativeStock = errors.New("stock must be greater or equal to zero")

	// ErrUnsupportedImage rejects pictures that are not PNG or JPEG files.
	ErrUnsupportedImage = errors.New("allowed image formats: PNG, JPG, JPEG")
)

var imageExtensions = map[string]bool{".png": true, ".jpg": true, ".jpeg": true}

// ImageExtension returns the lower-cased extension of an accepted picture file name.
func ImageExtension(filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(strings.TrimSpace(filename)))
	if !imageExtensions[ext] {
		return "", ErrUnsupportedImage
	}
	return ext, nil
}

// Product is a catalog item that orders draw stock from.
type Product struct {
	ID          int64
	Name        string
	Price       decimal.Decimal
	Cost        decimal.Decimal
	Description string
	InStock     int64
	ImageURL    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewProduct validates and builds a product ready to be persisted.
func NewProduct(name string, price, cost decimal.Decimal, stock int64) (*Product, error) {
	p := &Product{Price: price, Cost: cost, InStock: stock}
	if err := p.Rename(name); err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Rename trims and sets the product name.
func (p *Product) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	p.Name = name
	return nil
}

// Reprice replaces the unit price and cost. Existing order lines keep their snapshots.
func (p *Product) Reprice(price, cost decimal.Decimal) error {
	if price.IsNegative() {
		return ErrNegativePrice
	}
	if cost.IsNegative() {
		return ErrNegativeCost
	}
	p.Price = price
	p.Cost = cost
	return nil
}

// Restock sets the absolute stock level.
func (p *Product) Restock(stock int64) error {
	if stock < 0 {
		return ErrNegativeStock
	}
	p.InStock = stock
	return nil
}

// Validate re-applies invariants before persistence.
func (p *Product) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrEmptyName
	}
	if p.Price.IsNegative() {
		return ErrNegativePrice
	}
	if p.Cost.IsNegative() {
		return ErrNegativeCost
	}
	if p.InStock < 0 {
		return ErrNegativeStock
	}
	return nil
}
