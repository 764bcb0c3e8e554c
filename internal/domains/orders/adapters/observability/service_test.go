package observability

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	otelcodes "go.opentelemetry.io/otel/codes"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/Apurer/go-gin-backoffice/internal/domains/orders/application/types"
	"github.com/Apurer/go-gin-backoffice/internal/domains/orders/domain"
)

type fakeService struct {
	placeErr error
}

func (f fakeService) PlaceOrder(context.Context, types.PlaceOrderInput) (int64, error) {
	if f.placeErr != nil {
		return 0, f.placeErr
	}
	return 11, nil
}

func (fakeService) UpdateStatus(_ context.Context, input types.UpdateStatusInput) (*domain.Order, error) {
	return &domain.Order{ID: input.OrderID, Status: domain.Status(input.Status)}, nil
}

func (fakeService) CancelOrder(_ context.Context, id int64) (*domain.Order, error) {
	return &domain.Order{ID: id, Status: domain.StatusCancelled, Lines: []domain.Line{{Quantity: 1}, {Quantity: 2}}}, nil
}

func (fakeService) ListOrders(context.Context, string) ([]*domain.Order, error) {
	return []*domain.Order{{ID: 1}}, nil
}

func (fakeService) GetOrder(_ context.Context, id int64) (*types.OrderDetail, error) {
	return &types.OrderDetail{Order: &domain.Order{ID: id}}, nil
}

func TestPlaceOrder_RecordsSpanAndCounter(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	svc := New(fakeService{}, WithTracer(tp.Tracer("test")), WithMeter(mp.Meter("test")))
	id, err := svc.PlaceOrder(context.Background(), types.PlaceOrderInput{CustomerID: 1})
	require.NoError(t, err)
	require.Equal(t, int64(11), id)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	require.Equal(t, "Service.PlaceOrder", spans[0].Name())

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	require.Equal(t, int64(1), counterValue(t, rm, "orders.service.placed"))
}

func TestCancelOrder_CountsRestockedLines(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	svc := New(fakeService{}, WithMeter(mp.Meter("test")))
	_, err := svc.CancelOrder(context.Background(), 3)
	require.NoError(t, err)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	require.Equal(t, int64(1), counterValue(t, rm, "orders.service.cancelled"))
	require.Equal(t, int64(2), counterValue(t, rm, "orders.service.lines_restocked"))
}

func TestPlaceOrder_ErrorMarksSpan(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	boom := errors.New("boom")

	svc := New(fakeService{placeErr: boom}, WithTracer(tp.Tracer("test")))
	_, err := svc.PlaceOrder(context.Background(), types.PlaceOrderInput{})
	require.ErrorIs(t, err, boom)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	require.Equal(t, otelcodes.Error, spans[0].Status().Code)
}

func counterValue(t *testing.T, rm metricdata.ResourceMetrics, name string) int64 {
	t.Helper()
	for _, scope := range rm.ScopeMetrics {
		for _, m := range scope.Metrics {
			if m.Name != name {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			require.True(t, ok)
			var total int64
			for _, dp := range sum.DataPoints {
				total += dp.Value
			}
			return total
		}
	}
	t.Fatalf("metric %s not found", name)
	return 0
}
