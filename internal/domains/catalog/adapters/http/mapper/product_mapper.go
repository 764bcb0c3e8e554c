package mapper

import (
	"github.com/shopspring/decimal"

	"github.com/Apurer/go-gin-backoffice/internal/domains/catalog/domain"
	"github.com/Apurer/go-gin-backoffice/internal/domains/catalog/ports"
)

// Product is the HTTP representation of a catalog product.
type Product struct {
	ID          int64  `json:"id"`
	Name        string `json:"Name"`
	Price       string `json:"Price"`
	Costs       string `json:"Costs"`
	Description string `json:"Description"`
	ImageURL    string `json:"ImageURL"`
	InStock     int64  `json:"InStock"`
}

// ProductMutation captures inbound create/update payloads, JSON or form encoded, while
// preserving field presence. Prices accept numbers and numeric strings. The picture is
// uploaded as the Image file part of a multipart form; ImageURL is derived from it.
type ProductMutation struct {
	Name        *string          `json:"Name" form:"Name"`
	Price       *decimal.Decimal `json:"Price" form:"Price"`
	Costs       *decimal.Decimal `json:"Costs" form:"Costs"`
	Description *string          `json:"Description" form:"Description"`
	InStock     *int64           `json:"InStock" form:"InStock"`
}

// ToProductInput maps a mutation payload onto the service input.
func ToProductInput(m ProductMutation) ports.ProductInput {
	return ports.ProductInput{
		Name:        m.Name,
		Price:       m.Price,
		Cost:        m.Costs,
		Description: m.Description,
		InStock:     m.InStock,
	}
}

// FromDomainProduct converts a domain product to the transport representation.
func FromDomainProduct(p *domain.Product) *Product {
	if p == nil {
		return nil
	}
	return &Product{
		ID:          p.ID,
		Name:        p.Name,
		Price:       Money(p.Price),
		Costs:       Money(p.Cost),
		Description: p.Description,
		ImageURL:    p.ImageURL,
		InStock:     p.InStock,
	}
}

// FromDomainProducts converts a product list, never returning nil.
func FromDomainProducts(list []*domain.Product) []*Product {
	out := make([]*Product, 0, len(list))
	for _, p := range list {
		out = append(out, FromDomainProduct(p))
	}
	return out
}

// Money renders an amount with two decimals, the way the client displays it.
func Money(d decimal.Decimal) string {
	return d.StringFixed(2)
}
