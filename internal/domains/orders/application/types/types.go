package types

import (
	"time"

	catalogdomain "github.com/Apurer/go-gin-backoffice/internal/domains/catalog/domain"
	customerdomain "github.com/Apurer/go-gin-backoffice/internal/domains/customers/domain"
	"github.com/Apurer/go-gin-backoffice/internal/domains/orders/domain"
)

// CartItem is a raw cart entry as received from the client. ProductKey is parsed by the service.
type CartItem struct {
	ProductKey string
	Quantity   int64
}

// PlaceOrderInput describes a checkout request.
type PlaceOrderInput struct {
	CustomerID     int64
	DueDate        *time.Time
	Cart           []CartItem
	IdempotencyKey string
}

// UpdateStatusInput carries the raw status token requested by the client.
type UpdateStatusInput struct {
	OrderID int64
	Status  string
}

// LineDetail pairs an order line with the current product, nil when the product was deleted.
type LineDetail struct {
	domain.Line
	Product *catalogdomain.Product
}

// OrderDetail is an order with its customer and lines resolved.
type OrderDetail struct {
	Order    *domain.Order
	Customer *customerdomain.Customer
	Lines    []LineDetail
}
