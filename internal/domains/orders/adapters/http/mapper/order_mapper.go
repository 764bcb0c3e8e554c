package mapper

import (
	"bytes"
	"encoding/json"
	"errors"
	"sort"
	"strconv"
	"strings"
	"time"

	catalogmapper "github.com/Apurer/go-gin-backoffice/internal/domains/catalog/adapters/http/mapper"
	customermapper "github.com/Apurer/go-gin-backoffice/internal/domains/customers/adapters/http/mapper"
	"github.com/Apurer/go-gin-backoffice/internal/domains/orders/application/types"
	"github.com/Apurer/go-gin-backoffice/internal/domains/orders/domain"
)

var (
	ErrQuantityNotInteger = errors.New("quantity must be an integer")
	ErrCartMissing        = errors.New("cart_data is required")
	ErrDueDateFormat      = errors.New("due_date must be an ISO 8601 date or timestamp")
)

var dueDateLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02T15:04", "2006-01-02"}

// Order is the summary representation used by list, update and cancel responses.
type Order struct {
	ID          int64      `json:"id"`
	Customer    *int64     `json:"Customer"`
	OrderDate   time.Time  `json:"OrderDate"`
	DueDate     *time.Time `json:"DueDate"`
	OrderStatus string     `json:"OrderStatus"`
	OrderTotal  string     `json:"OrderTotal"`
	OrderCosts  string     `json:"OrderCosts"`
}

// OrderItem is a line with its product resolved; Product is null once the product is deleted.
type OrderItem struct {
	ID       int64                  `json:"id"`
	Product  *catalogmapper.Product `json:"Product"`
	Quantity int64                  `json:"Quantity"`
	Price    string                 `json:"Price"`
	Costs    string                 `json:"Costs"`
	Subtotal string                 `json:"Subtotal"`
}

// OrderDetail is the full order returned by get_order.
type OrderDetail struct {
	ID          int64                    `json:"id"`
	Customer    *customermapper.Customer `json:"Customer"`
	OrderDate   time.Time                `json:"OrderDate"`
	DueDate     *time.Time               `json:"DueDate"`
	OrderStatus string                   `json:"OrderStatus"`
	OrderTotal  string                   `json:"OrderTotal"`
	OrderCosts  string                   `json:"OrderCosts"`
	OrderItems  []OrderItem              `json:"OrderItems"`
}

func FromDomainOrder(o *domain.Order) *Order {
	if o == nil {
		return nil
	}
	return &Order{
		ID:          o.ID,
		Customer:    o.CustomerID,
		OrderDate:   o.OrderDate,
		DueDate:     o.DueDate,
		OrderStatus: string(o.Status),
		OrderTotal:  catalogmapper.Money(o.Total),
		OrderCosts:  catalogmapper.Money(o.Costs),
	}
}

func FromDomainOrders(list []*domain.Order) []*Order {
	out := make([]*Order, 0, len(list))
	for _, o := range list {
		out = append(out, FromDomainOrder(o))
	}
	return out
}

// FromOrderDetail converts a resolved order into its transport representation.
func FromOrderDetail(d *types.OrderDetail) *OrderDetail {
	if d == nil || d.Order == nil {
		return nil
	}
	o := d.Order
	items := make([]OrderItem, 0, len(d.Lines))
	for _, line := range d.Lines {
		items = append(items, OrderItem{
			ID:       line.ID,
			Product:  catalogmapper.FromDomainProduct(line.Product),
			Quantity: line.Quantity,
			Price:    catalogmapper.Money(line.Price),
			Costs:    catalogmapper.Money(line.Cost),
			Subtotal: catalogmapper.Money(line.Subtotal()),
		})
	}
	return &OrderDetail{
		ID:          o.ID,
		Customer:    customermapper.FromDomainCustomer(d.Customer),
		OrderDate:   o.OrderDate,
		DueDate:     o.DueDate,
		OrderStatus: string(o.Status),
		OrderTotal:  catalogmapper.Money(o.Total),
		OrderCosts:  catalogmapper.Money(o.Costs),
		OrderItems:  items,
	}
}

// ToCart converts the raw cart_data object into cart items ordered by key.
// Keys are passed through untouched; the service decides whether they name a product.
func ToCart(raw map[string]json.RawMessage) ([]types.CartItem, error) {
	if raw == nil {
		return nil, ErrCartMissing
	}
	keys := make([]string, 0, len(raw))
	for key := range raw {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	cart := make([]types.CartItem, 0, len(keys))
	for _, key := range keys {
		qty, err := ParseInteger(raw[key])
		if err != nil {
			return nil, ErrQuantityNotInteger
		}
		cart = append(cart, types.CartItem{ProductKey: key, Quantity: qty})
	}
	return cart, nil
}

// ParseInteger accepts a JSON integer or a string holding one.
func ParseInteger(raw json.RawMessage) (int64, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return 0, strconv.ErrSyntax
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0, err
		}
		return strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	}
	return strconv.ParseInt(string(raw), 10, 64)
}

// ParseDueDate accepts RFC 3339 timestamps and plain dates. Empty means no due date.
func ParseDueDate(value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	for _, layout := range dueDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			utc := t.UTC()
			return &utc, nil
		}
	}
	return nil, ErrDueDateFormat
}
