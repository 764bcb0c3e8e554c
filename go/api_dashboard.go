package backofficeserver

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	dashboardapp "github.com/Apurer/go-gin-backoffice/internal/domains/dashboard/application"
	"github.com/Apurer/go-gin-backoffice/internal/shared/response"
)

// DashboardService computes the main dashboard.
type DashboardService interface {
	MainDashboard(ctx context.Context) (*dashboardapp.Stats, error)
}

type DashboardAPI struct {
	service DashboardService
}

func NewDashboardAPI(service DashboardService) DashboardAPI {
	return DashboardAPI{service: service}
}

// Get /api/v1/dashboard/main_dashboard/
func (api *DashboardAPI) MainDashboard(c *gin.Context) {
	stats, err := api.service.MainDashboard(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, DashboardResponse{
		CurrentMonthProfits:    stats.CurrentMonthProfits.StringFixed(2),
		PercentageChange:       stats.PercentageChange.StringFixed(2),
		ProductsCount:          stats.ProductsCount,
		NewProductsCount:       stats.NewProductsCount,
		NewProductsPercentage:  stats.NewProductsPercentage.StringFixed(2),
		InStockProductsCount:   stats.InStockProductsCount,
		CustomersCount:         stats.CustomersCount,
		NewCustomersCount:      stats.NewCustomersCount,
		NewCustomersPercentage: stats.NewCustomersPercentage.StringFixed(2),
	})
}
