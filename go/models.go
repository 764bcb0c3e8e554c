package backofficeserver

import (
	"encoding/json"
	"errors"
	"strconv"

	cataloghttpmapper "github.com/Apurer/go-gin-backoffice/internal/domains/catalog/adapters/http/mapper"
	customerhttpmapper "github.com/Apurer/go-gin-backoffice/internal/domains/customers/adapters/http/mapper"
	orderhttpmapper "github.com/Apurer/go-gin-backoffice/internal/domains/orders/adapters/http/mapper"
)

var errInvalidID = errors.New("must be a positive integer")

// ID is an identifier sent either as a JSON number or as a numeric string.
type ID int64

func (id *ID) UnmarshalJSON(data []byte) error {
	v, err := orderhttpmapper.ParseInteger(data)
	if err != nil || v <= 0 {
		return errInvalidID
	}
	*id = ID(v)
	return nil
}

func (id ID) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatInt(int64(id), 10)), nil
}

// LoginRequest is the body of POST /auth/login/.
type LoginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

// TokenResponse carries the issued access token.
type TokenResponse struct {
	Token string `json:"token"`
}

// CreateOrderRequest is the checkout body. cart_data maps product id to quantity.
type CreateOrderRequest struct {
	CustomerID *ID                        `json:"customer_id"`
	DueDate    string                     `json:"due_date"`
	CartData   map[string]json.RawMessage `json:"cart_data"`
}

type CreateOrderResponse struct {
	OrderID int64 `json:"order_id"`
}

type UpdateOrderRequest struct {
	OrderID *ID    `json:"order_id"`
	Status  string `json:"status"`
}

type DeleteOrderRequest struct {
	OrderID *ID `json:"order_id"`
}

// ProductsResponse wraps the product list.
type ProductsResponse struct {
	Products []*cataloghttpmapper.Product `json:"products"`
}

type ProductResponse struct {
	Product *cataloghttpmapper.Product `json:"product"`
}

type CreateProductResponse struct {
	ProductID int64 `json:"product_id"`
}

type UpdateProductRequest struct {
	ID *ID `json:"id" form:"product_id"`
	cataloghttpmapper.ProductMutation
}

type DeleteProductRequest struct {
	ProductID *ID `json:"product_id" form:"product_id"`
}

type CreateCustomerResponse struct {
	CustomerID int64 `json:"customer_id"`
}

type UpdateCustomerRequest struct {
	ID *ID `json:"id" form:"customer_id"`
	customerhttpmapper.CustomerMutation
}

type DeleteCustomerRequest struct {
	CustomerID *ID `json:"customer_id" form:"customer_id"`
}

// DashboardResponse is the main dashboard payload.
type DashboardResponse struct {
	CurrentMonthProfits    string `json:"current_month_profits"`
	PercentageChange       string `json:"percentage_change"`
	ProductsCount          int    `json:"products_count"`
	NewProductsCount       int    `json:"new_products_count"`
	NewProductsPercentage  string `json:"new_products_percentage"`
	InStockProductsCount   int64  `json:"in_stock_products_count"`
	CustomersCount         int    `json:"customers_count"`
	NewCustomersCount      int    `json:"new_customers_count"`
	NewCustomersPercentage string `json:"new_customers_percentage"`
}
