package backofficeserver

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	authmemory "github.com/Apurer/go-gin-backoffice/internal/domains/auth/adapters/memory"
	authapp "github.com/Apurer/go-gin-backoffice/internal/domains/auth/application"
	catalogmemory "github.com/Apurer/go-gin-backoffice/internal/domains/catalog/adapters/memory"
	catalogstorage "github.com/Apurer/go-gin-backoffice/internal/domains/catalog/adapters/storage"
	catalogapp "github.com/Apurer/go-gin-backoffice/internal/domains/catalog/application"
	catalogdomain "github.com/Apurer/go-gin-backoffice/internal/domains/catalog/domain"
	customermemory "github.com/Apurer/go-gin-backoffice/internal/domains/customers/adapters/memory"
	customerapp "github.com/Apurer/go-gin-backoffice/internal/domains/customers/application"
	customerdomain "github.com/Apurer/go-gin-backoffice/internal/domains/customers/domain"
	dashboardapp "github.com/Apurer/go-gin-backoffice/internal/domains/dashboard/application"
	ordermemory "github.com/Apurer/go-gin-backoffice/internal/domains/orders/adapters/memory"
	orderworkflows "github.com/Apurer/go-gin-backoffice/internal/domains/orders/adapters/workflows"
	ordersapp "github.com/Apurer/go-gin-backoffice/internal/domains/orders/application"
)

const (
	testLogin    = "admin"
	testPassword = "s3cret"
)

type testServer struct {
	t         *testing.T
	router    *gin.Engine
	token     string
	products  *catalogmemory.Repository
	customers *customermemory.Repository
	orders    *ordermemory.Repository
	media     afero.Fs
}

type envelope struct {
	Status  string            `json:"status"`
	Message *string           `json:"message"`
	Data    json.RawMessage   `json:"data"`
	Errors  map[string]string `json:"errors"`
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctx := context.Background()

	products := catalogmemory.NewRepository()
	customers := customermemory.NewRepository()
	orders := ordermemory.NewRepository()
	uow := ordermemory.NewUnitOfWork(orders, products, customers, ordermemory.NewIdempotencyStore())
	orderService := ordersapp.NewService(uow, uow.Stores())

	tokens := authapp.NewTokenManager("handler-test-secret", time.Hour)
	authService := authapp.NewService(authmemory.NewRepository(), tokens)
	_, err := authService.EnsureUser(ctx, testLogin, testPassword)
	require.NoError(t, err)
	token, err := authService.Login(ctx, testLogin, testPassword)
	require.NoError(t, err)

	media := afero.NewMemMapFs()
	images := catalogstorage.NewImageStore(media, "/media")

	handlers := ApiHandleFunctions{
		AuthAPI:      NewAuthAPI(authService),
		OrdersAPI:    NewOrdersAPI(orderService, orderworkflows.NewInlineOrderWorkflows(orderService)),
		ProductsAPI:  NewProductsAPI(catalogapp.NewService(products, catalogapp.WithImageStore(images))),
		CustomersAPI: NewCustomersAPI(customerapp.NewService(customers)),
		DashboardAPI: NewDashboardAPI(dashboardapp.NewService(orders, products, customers)),
	}
	router := NewRouter(handlers, RouterOptions{Verifier: tokens, Media: images.FileSystem(), MediaPath: images.BaseURL()})
	return &testServer{t: t, router: router, token: token, products: products, customers: customers, orders: orders, media: media}
}

func (s *testServer) seedProduct(name, price, cost string, stock int64) int64 {
	s.t.Helper()
	product, err := catalogdomain.NewProduct(name, decimal.RequireFromString(price), decimal.RequireFromString(cost), stock)
	require.NoError(s.t, err)
	saved, err := s.products.Save(context.Background(), product)
	require.NoError(s.t, err)
	return saved.ID
}

func (s *testServer) seedCustomer(name string) int64 {
	s.t.Helper()
	customer, err := customerdomain.NewCustomer(name)
	require.NoError(s.t, err)
	saved, err := s.customers.Save(context.Background(), customer)
	require.NoError(s.t, err)
	return saved.ID
}

func (s *testServer) stock(id int64) int64 {
	s.t.Helper()
	product, err := s.products.GetByID(context.Background(), id)
	require.NoError(s.t, err)
	return product.InStock
}

func (s *testServer) do(method, path string, body any, headers ...string) (*httptest.ResponseRecorder, envelope) {
	s.t.Helper()
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(s.t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	var env envelope
	if rec.Body.Len() > 0 {
		require.NoError(s.t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	}
	return rec, env
}

func decodeData[T any](t *testing.T, env envelope) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(env.Data, &out))
	return out
}

func message(env envelope) string {
	if env.Message == nil {
		return ""
	}
	return *env.Message
}
