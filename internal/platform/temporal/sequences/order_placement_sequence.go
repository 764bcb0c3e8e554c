package sequences

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"github.com/Apurer/go-gin-backoffice/internal/domains/orders/application/types"
	orderactivities "github.com/Apurer/go-gin-backoffice/internal/platform/temporal/activities/orders"
)

// RunOrderPlacementSequence executes the checkout activity with a retry policy for transient failures.
func RunOrderPlacementSequence(ctx workflow.Context, input types.PlaceOrderInput) (int64, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("order placement sequence started", "customerId", input.CustomerID)
	options := workflow.ActivityOptions{
		StartToCloseTimeout: time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    2 * time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    10 * time.Second,
			MaximumAttempts:    5,
		},
	}

	var orderID int64
	err := workflow.ExecuteActivity(workflow.WithActivityOptions(ctx, options), orderactivities.PlaceOrderActivityName, input).Get(ctx, &orderID)
	if err != nil {
		logger.Error("order placement sequence failed", "customerId", input.CustomerID, "error", err)
		return 0, err
	}
	logger.Info("order placement sequence completed", "orderId", orderID)
	return orderID, nil
}
