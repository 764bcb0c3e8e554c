package ports

import (
	"context"

	"github.com/Apurer/go-gin-backoffice/internal/domains/orders/application/types"
	"github.com/Apurer/go-gin-backoffice/internal/domains/orders/domain"
)

// Service defines the order workflow use cases exposed to adapters.
type Service interface {
	PlaceOrder(ctx context.Context, input types.PlaceOrderInput) (int64, error)
	UpdateStatus(ctx context.Context, input types.UpdateStatusInput) (*domain.Order, error)
	CancelOrder(ctx context.Context, id int64) (*domain.Order, error)
	ListOrders(ctx context.Context, listType string) ([]*domain.Order, error)
	GetOrder(ctx context.Context, id int64) (*types.OrderDetail, error)
}
