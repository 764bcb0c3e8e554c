//go:build pact
// +build pact

package provider_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pact-foundation/pact-go/v2/models"
	pactprovider "github.com/pact-foundation/pact-go/v2/provider"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	backofficeserver "github.com/Apurer/go-gin-backoffice/go"
	"github.com/Apurer/go-gin-backoffice/internal/app/backend"
	authapp "github.com/Apurer/go-gin-backoffice/internal/domains/auth/application"
	authports "github.com/Apurer/go-gin-backoffice/internal/domains/auth/ports"
	catalogapp "github.com/Apurer/go-gin-backoffice/internal/domains/catalog/application"
	catalogdomain "github.com/Apurer/go-gin-backoffice/internal/domains/catalog/domain"
	customerapp "github.com/Apurer/go-gin-backoffice/internal/domains/customers/application"
	customerdomain "github.com/Apurer/go-gin-backoffice/internal/domains/customers/domain"
	dashboardapp "github.com/Apurer/go-gin-backoffice/internal/domains/dashboard/application"
	orderworkflows "github.com/Apurer/go-gin-backoffice/internal/domains/orders/adapters/workflows"
	ordersapp "github.com/Apurer/go-gin-backoffice/internal/domains/orders/application"
	pacttest "github.com/Apurer/go-gin-backoffice/test/pact"
)

func TestBackofficeProviderPact(t *testing.T) {
	gin.SetMode(gin.TestMode)

	app := newContractProviderApp(t)
	pactFile := filepath.ToSlash(pacttest.PactFile(t))
	if _, err := os.Stat(pactFile); errors.Is(err, os.ErrNotExist) {
		t.Fatalf("pact file not found at %s - run the pact consumer tests first", pactFile)
	} else {
		require.NoError(t, err)
	}

	verifier := pactprovider.NewVerifier()
	stateHandlers := models.StateHandlers{
		pacttest.StateProductExists: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.reset(t)
			if setup {
				app.seedProduct(t)
			}
			return nil, nil
		},
		pacttest.StateProductMissing: func(bool, models.ProviderState) (models.ProviderStateResponse, error) {
			app.reset(t)
			return nil, nil
		},
		pacttest.StateCheckoutReady: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.reset(t)
			if setup {
				app.seedProduct(t)
				app.seedCustomer(t)
			}
			return nil, nil
		},
		pacttest.StateOrdersBaseline: func(bool, models.ProviderState) (models.ProviderStateResponse, error) {
			app.reset(t)
			return nil, nil
		},
	}

	err := verifier.VerifyProvider(t, pactprovider.VerifyRequest{
		ProviderBaseURL: app.server.URL,
		Provider:        pacttest.ProviderName,
		PactFiles:       []string{pactFile},
		StateHandlers:   stateHandlers,
		BeforeEach: func() error {
			app.reset(t)
			return nil
		},
	})
	require.NoError(t, err)
}

// staticVerifier admits the fixed token recorded by the consumer contract.
type staticVerifier struct{}

func (staticVerifier) Verify(token, kind string) (*authports.Claims, error) {
	if token != pacttest.AccessToken || kind != authports.TokenKindAccess {
		return nil, authapp.ErrUnauthorized
	}
	return &authports.Claims{UserID: 1, Kind: kind, ExpiresAt: time.Now().Add(time.Hour)}, nil
}

// contractProviderApp rebuilds an in-memory backend per provider state so seeded ids start at 1.
type contractProviderApp struct {
	mu      sync.RWMutex
	repos   *backend.Repositories
	handler http.Handler
	server  *httptest.Server
}

func newContractProviderApp(t testing.TB) *contractProviderApp {
	t.Helper()
	app := &contractProviderApp{}
	app.reset(t)
	app.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		app.mu.RLock()
		handler := app.handler
		app.mu.RUnlock()
		handler.ServeHTTP(w, r)
	}))
	t.Cleanup(app.server.Close)
	return app
}

func (a *contractProviderApp) reset(t testing.TB) {
	t.Helper()
	repos := backend.Memory()
	orderService := ordersapp.NewService(repos.UnitOfWork, repos.Reader)
	tokens := authapp.NewTokenManager("pact-provider-secret", time.Hour)

	handlers := backofficeserver.ApiHandleFunctions{
		AuthAPI:      backofficeserver.NewAuthAPI(authapp.NewService(repos.Users, tokens)),
		OrdersAPI:    backofficeserver.NewOrdersAPI(orderService, orderworkflows.NewInlineOrderWorkflows(orderService)),
		ProductsAPI:  backofficeserver.NewProductsAPI(catalogapp.NewService(repos.Products)),
		CustomersAPI: backofficeserver.NewCustomersAPI(customerapp.NewService(repos.Customers)),
		DashboardAPI: backofficeserver.NewDashboardAPI(dashboardapp.NewService(repos.Orders, repos.Products, repos.Customers)),
	}
	router := backofficeserver.NewRouter(handlers, backofficeserver.RouterOptions{Verifier: staticVerifier{}})

	a.mu.Lock()
	a.repos = repos
	a.handler = router
	a.mu.Unlock()
}

func (a *contractProviderApp) seedProduct(t testing.TB) {
	t.Helper()
	product, err := catalogdomain.NewProduct(
		pacttest.ExampleProductName,
		decimal.RequireFromString(pacttest.ExampleProductPrice),
		decimal.RequireFromString(pacttest.ExampleProductCosts),
		pacttest.ExampleStock,
	)
	require.NoError(t, err)
	a.mu.RLock()
	defer a.mu.RUnlock()
	saved, err := a.repos.Products.Save(context.Background(), product)
	require.NoError(t, err)
	require.Equal(t, pacttest.ExistingProductID, saved.ID)
}

func (a *contractProviderApp) seedCustomer(t testing.TB) {
	t.Helper()
	customer, err := customerdomain.NewCustomer(pacttest.ExampleCustomerName)
	require.NoError(t, err)
	a.mu.RLock()
	defer a.mu.RUnlock()
	saved, err := a.repos.Customers.Save(context.Background(), customer)
	require.NoError(t, err)
	require.Equal(t, pacttest.ExistingCustomerID, saved.ID)
}
