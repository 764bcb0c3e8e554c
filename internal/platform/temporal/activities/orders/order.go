package orders

import (
	"context"
	"errors"
	"strings"

	"go.temporal.io/sdk/activity"

	"github.com/Apurer/go-gin-backoffice/internal/domains/orders/application/types"
	"github.com/Apurer/go-gin-backoffice/internal/domains/orders/ports"
)

const (
	// PlaceOrderActivityName runs checkout against the order workflow service.
	PlaceOrderActivityName = "orders.activities.PlaceOrder"
)

// Activities groups activities that operate on the orders bounded context.
type Activities struct {
	service ports.Service
}

// NewActivities wires the order service into the Temporal activities bundle.
func NewActivities(service ports.Service) *Activities {
	return &Activities{service: service}
}

// PlaceOrder runs checkout. When the caller sent no idempotency key, one is derived from the
// workflow execution so a retried attempt replays the first committed order.
func (a *Activities) PlaceOrder(ctx context.Context, input types.PlaceOrderInput) (int64, error) {
	logger := activity.GetLogger(ctx)
	if a == nil || a.service == nil {
		logger.Error("place order activity not initialized", "customerId", input.CustomerID)
		return 0, errors.New("place order activity not initialized")
	}
	if strings.TrimSpace(input.IdempotencyKey) == "" {
		input.IdempotencyKey = "workflow:" + activity.GetInfo(ctx).WorkflowExecution.ID
	}
	logger.Info("PlaceOrder activity started", "customerId", input.CustomerID, "attempt", activity.GetInfo(ctx).Attempt)
	id, err := a.service.PlaceOrder(ctx, input)
	if err != nil {
		logger.Error("PlaceOrder activity failed", "customerId", input.CustomerID, "error", err)
		return 0, EncodeError(err)
	}
	logger.Info("PlaceOrder activity completed", "orderId", id)
	return id, nil
}
