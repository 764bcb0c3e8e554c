package workflows

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/mocks"

	"github.com/Apurer/go-gin-backoffice/internal/domains/orders/application/types"
	"github.com/Apurer/go-gin-backoffice/internal/domains/orders/ports"
	orderworkflows "github.com/Apurer/go-gin-backoffice/internal/platform/temporal/workflows/orders"
)

type stubService struct {
	ports.Service
	got types.PlaceOrderInput
}

func (s *stubService) PlaceOrder(_ context.Context, input types.PlaceOrderInput) (int64, error) {
	s.got = input
	return 5, nil
}

func TestInlineOrderWorkflows_DelegatesToService(t *testing.T) {
	svc := &stubService{}
	id, err := NewInlineOrderWorkflows(svc).PlaceOrder(context.Background(), types.PlaceOrderInput{CustomerID: 3})
	require.NoError(t, err)
	assert.Equal(t, int64(5), id)
	assert.Equal(t, int64(3), svc.got.CustomerID)
}

func TestInlineOrderWorkflows_Unconfigured(t *testing.T) {
	var o *InlineOrderWorkflows
	_, err := o.PlaceOrder(context.Background(), types.PlaceOrderInput{})
	require.Error(t, err)
}

func TestBuildPlacementWorkflowID(t *testing.T) {
	a := buildPlacementWorkflowID(types.PlaceOrderInput{IdempotencyKey: "k1"}, "trace")
	b := buildPlacementWorkflowID(types.PlaceOrderInput{IdempotencyKey: " k1 "}, "other")
	assert.Equal(t, a, b)
	assert.True(t, strings.HasPrefix(a, "order-placement-idem-"))

	c := buildPlacementWorkflowID(types.PlaceOrderInput{CustomerID: 9}, "trace")
	assert.True(t, strings.HasPrefix(c, "order-placement-9-"))
	assert.NotEqual(t, a, c)
}

func TestTemporalOrderWorkflows_StartsRegisteredWorkflowName(t *testing.T) {
	temporalClient := mocks.NewClient(t)
	run := mocks.NewWorkflowRun(t)
	input := types.PlaceOrderInput{CustomerID: 4, IdempotencyKey: "checkout-1"}

	temporalClient.On("ExecuteWorkflow",
		mock.Anything,
		mock.MatchedBy(func(opts client.StartWorkflowOptions) bool {
			return opts.TaskQueue == orderworkflows.PlacementTaskQueue && strings.HasPrefix(opts.ID, "order-placement-idem-")
		}),
		orderworkflows.PlacementWorkflowName,
		mock.MatchedBy(func(in orderworkflows.PlacementWorkflowInput) bool { return in.Command.CustomerID == 4 }),
	).Return(run, nil).Once()
	run.On("Get", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		*(args.Get(1).(*int64)) = 77
	}).Return(nil).Once()

	id, err := NewTemporalOrderWorkflows(temporalClient).PlaceOrder(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, int64(77), id)
}
