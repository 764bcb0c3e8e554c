package backofficeserver

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	authports "github.com/Apurer/go-gin-backoffice/internal/domains/auth/ports"
	"github.com/Apurer/go-gin-backoffice/internal/shared/response"
)

// Route is the information for every URI.
type Route struct {
	// Name is the name of this Route.
	Name string
	// Method is the string for the HTTP method. ex) GET, POST etc..
	Method string
	// Pattern is the pattern of the URI.
	Pattern string
	// HandlerFunc is the handler function of this route.
	HandlerFunc gin.HandlerFunc
	// Public routes skip the access gate.
	Public bool
}

// ApiHandleFunctions groups the handlers of every API section.
type ApiHandleFunctions struct {
	AuthAPI      AuthAPI
	OrdersAPI    OrdersAPI
	ProductsAPI  ProductsAPI
	CustomersAPI CustomersAPI
	DashboardAPI DashboardAPI
}

// RouterOptions carries the cross-cutting dependencies of the router.
type RouterOptions struct {
	Verifier   authports.TokenVerifier
	Logger     *slog.Logger
	Middleware []gin.HandlerFunc
	Metrics    http.Handler
	// Media serves uploaded product images under MediaPath without a token.
	Media     http.FileSystem
	MediaPath string
}

// NewRouter returns a new router.
func NewRouter(handleFunctions ApiHandleFunctions, opts RouterOptions) *gin.Engine {
	return NewRouterWithGinEngine(gin.New(), handleFunctions, opts)
}

// NewRouterWithGinEngine adds the API routes to an existing engine.
func NewRouterWithGinEngine(router *gin.Engine, handleFunctions ApiHandleFunctions, opts RouterOptions) *gin.Engine {
	if opts.Logger != nil {
		SetLogger(opts.Logger)
	}
	router.Use(gin.Recovery(), RequestID())
	if opts.Logger != nil {
		router.Use(RequestLogger(opts.Logger))
	}
	router.Use(opts.Middleware...)

	router.GET("/healthz", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"ok": true})
	})
	if opts.Metrics != nil {
		router.GET("/metrics", gin.WrapH(opts.Metrics))
	}
	if opts.Media != nil && opts.MediaPath != "" {
		router.StaticFS(opts.MediaPath, opts.Media)
	}

	gate := RequireToken(opts.Verifier, authports.TokenKindAccess)
	for _, route := range getRoutes(handleFunctions) {
		handlers := []gin.HandlerFunc{route.HandlerFunc}
		if !route.Public {
			handlers = append([]gin.HandlerFunc{gate}, handlers...)
		}
		router.Handle(route.Method, route.Pattern, handlers...)
	}
	return router
}

func getRoutes(h ApiHandleFunctions) []Route {
	return []Route{
		{"Login", http.MethodPost, "/api/v1/auth/login/", h.AuthAPI.Login, true},

		{"GetOrders", http.MethodGet, "/api/v1/orders/get_orders/", h.OrdersAPI.GetOrders, false},
		{"GetOrder", http.MethodGet, "/api/v1/orders/get_order/", h.OrdersAPI.GetOrder, false},
		{"CreateOrder", http.MethodPost, "/api/v1/orders/create_order/", h.OrdersAPI.CreateOrder, false},
		{"UpdateOrder", http.MethodPut, "/api/v1/orders/update_order/", h.OrdersAPI.UpdateOrder, false},
		{"DeleteOrder", http.MethodDelete, "/api/v1/orders/delete_order/", h.OrdersAPI.DeleteOrder, false},

		{"GetProducts", http.MethodGet, "/api/v1/products/get_products/", h.ProductsAPI.GetProducts, false},
		{"GetProduct", http.MethodGet, "/api/v1/products/get_product/", h.ProductsAPI.GetProduct, false},
		{"CreateProduct", http.MethodPost, "/api/v1/products/create_product/", h.ProductsAPI.CreateProduct, false},
		{"UpdateProduct", http.MethodPut, "/api/v1/products/update_product/", h.ProductsAPI.UpdateProduct, false},
		{"DeleteProduct", http.MethodDelete, "/api/v1/products/delete_product/", h.ProductsAPI.DeleteProduct, false},

		{"GetCustomers", http.MethodGet, "/api/v1/customers/get_customers/", h.CustomersAPI.GetCustomers, false},
		{"GetCustomer", http.MethodGet, "/api/v1/customers/get_customer/", h.CustomersAPI.GetCustomer, false},
		{"CreateCustomer", http.MethodPost, "/api/v1/customers/create_customer/", h.CustomersAPI.CreateCustomer, false},
		{"UpdateCustomer", http.MethodPut, "/api/v1/customers/update_customer/", h.CustomersAPI.UpdateCustomer, false},
		{"DeleteCustomer", http.MethodDelete, "/api/v1/customers/delete_customer/", h.CustomersAPI.DeleteCustomer, false},

		{"MainDashboard", http.MethodGet, "/api/v1/dashboard/main_dashboard/", h.DashboardAPI.MainDashboard, false},
	}
}
