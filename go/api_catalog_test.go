package backofficeserver

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	customerhttpmapper "github.com/Apurer/go-gin-backoffice/internal/domains/customers/adapters/http/mapper"
)

func TestProductLifecycle(t *testing.T) {
	s := newTestServer(t)

	rec, env := s.do(http.MethodPost, "/api/v1/products/create_product/", map[string]any{
		"Name": "Lamp", "Price": "12.5", "Costs": 7, "Description": "desk lamp", "InStock": 4,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	productID := decodeData[CreateProductResponse](t, env).ProductID
	require.NotZero(t, productID)

	rec, env = s.do(http.MethodGet, "/api/v1/products/get_product/?product_id="+key(productID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	got := decodeData[ProductResponse](t, env).Product
	require.NotNil(t, got)
	assert.Equal(t, "Lamp", got.Name)
	assert.Equal(t, "12.50", got.Price)
	assert.Equal(t, "7.00", got.Costs)
	assert.Equal(t, int64(4), got.InStock)

	rec, env = s.do(http.MethodPut, "/api/v1/products/update_product/", map[string]any{"id": key(productID), "InStock": 9})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	updated := decodeData[ProductResponse](t, env).Product
	assert.Equal(t, int64(9), updated.InStock)
	assert.Equal(t, "Lamp", updated.Name)

	rec, env = s.do(http.MethodGet, "/api/v1/products/get_products/", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeData[ProductsResponse](t, env).Products, 1)

	rec, _ = s.do(http.MethodDelete, "/api/v1/products/delete_product/", map[string]any{"product_id": productID})
	require.Equal(t, http.StatusOK, rec.Code)
	rec, _ = s.do(http.MethodGet, "/api/v1/products/get_product/?product_id="+key(productID), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProductValidation(t *testing.T) {
	s := newTestServer(t)
	existing := s.seedProduct("Lamp", "1.00", "0.50", 1)

	tests := []struct {
		name   string
		method string
		path   string
		body   map[string]any
		status int
		field  string
	}{
		{"missing name", http.MethodPost, "/api/v1/products/create_product/", map[string]any{"Price": 1}, http.StatusBadRequest, "Name"},
		{"negative price", http.MethodPost, "/api/v1/products/create_product/", map[string]any{"Name": "x", "Price": -1}, http.StatusBadRequest, "Price"},
		{"negative cost", http.MethodPut, "/api/v1/products/update_product/", map[string]any{"id": existing, "Costs": "-2"}, http.StatusBadRequest, "Costs"},
		{"negative stock", http.MethodPut, "/api/v1/products/update_product/", map[string]any{"id": existing, "InStock": -1}, http.StatusBadRequest, "InStock"},
		{"missing id", http.MethodPut, "/api/v1/products/update_product/", map[string]any{"Name": "y"}, http.StatusBadRequest, "id"},
		{"unknown product", http.MethodPut, "/api/v1/products/update_product/", map[string]any{"id": 999, "Name": "y"}, http.StatusNotFound, ""},
		{"delete unknown", http.MethodDelete, "/api/v1/products/delete_product/", map[string]any{"product_id": 999}, http.StatusNotFound, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, env := s.do(tt.method, tt.path, tt.body)
			require.Equal(t, tt.status, rec.Code, rec.Body.String())
			if tt.field != "" {
				assert.Contains(t, env.Errors, tt.field)
			}
		})
	}
}

func TestCustomerLifecycle(t *testing.T) {
	s := newTestServer(t)

	rec, env := s.do(http.MethodPost, "/api/v1/customers/create_customer/", map[string]any{"Name": "Grace", "Email": "grace@example.com"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	customerID := decodeData[CreateCustomerResponse](t, env).CustomerID

	rec, env = s.do(http.MethodPut, "/api/v1/customers/update_customer/", map[string]any{"id": customerID, "Phone": "+100"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	updated := decodeData[customerhttpmapper.Customer](t, env)
	require.NotNil(t, updated.Phone)
	assert.Equal(t, "+100", *updated.Phone)
	require.NotNil(t, updated.Email)
	assert.Nil(t, updated.Address)

	rec, env = s.do(http.MethodGet, "/api/v1/customers/get_customers/", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeData[[]customerhttpmapper.Customer](t, env), 1)

	rec, env = s.do(http.MethodGet, "/api/v1/customers/get_customer/?customer_id="+key(customerID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Grace", decodeData[customerhttpmapper.Customer](t, env).Name)

	rec, _ = s.do(http.MethodDelete, "/api/v1/customers/delete_customer/", map[string]any{"customer_id": customerID})
	require.Equal(t, http.StatusOK, rec.Code)
	rec, _ = s.do(http.MethodGet, "/api/v1/customers/get_customer/?customer_id="+key(customerID), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCustomerValidation(t *testing.T) {
	s := newTestServer(t)

	rec, env := s.do(http.MethodPost, "/api/v1/customers/create_customer/", map[string]any{"Name": "Grace", "Email": "nope"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, env.Errors, "Email")

	rec, env = s.do(http.MethodPost, "/api/v1/customers/create_customer/", map[string]any{"Email": "a@b.c"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, env.Errors, "Name")

	rec, env = s.do(http.MethodGet, "/api/v1/customers/get_customer/", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, env.Errors, "customer_id")
}

func TestMainDashboard(t *testing.T) {
	s := newTestServer(t)
	s.seedProduct("Lamp", "1.00", "0.50", 3)
	s.seedProduct("Chair", "1.00", "0.50", 0)
	s.seedCustomer("Ada")

	rec, env := s.do(http.MethodGet, "/api/v1/dashboard/main_dashboard/", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	stats := decodeData[DashboardResponse](t, env)
	assert.Equal(t, 2, stats.ProductsCount)
	assert.Equal(t, 2, stats.NewProductsCount)
	assert.Equal(t, int64(3), stats.InStockProductsCount)
	assert.Equal(t, 1, stats.CustomersCount)
	assert.Equal(t, "0.00", stats.CurrentMonthProfits)
}
