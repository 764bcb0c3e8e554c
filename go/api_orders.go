package backofficeserver

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	orderhttpmapper "github.com/Apurer/go-gin-backoffice/internal/domains/orders/adapters/http/mapper"
	ordertypes "github.com/Apurer/go-gin-backoffice/internal/domains/orders/application/types"
	orderports "github.com/Apurer/go-gin-backoffice/internal/domains/orders/ports"
	apierrors "github.com/Apurer/go-gin-backoffice/internal/shared/errors"
	"github.com/Apurer/go-gin-backoffice/internal/shared/response"
)

// IdempotencyKeyHeader makes checkout retry-safe when present.
const IdempotencyKeyHeader = "Idempotency-Key"

// OrdersAPI wires HTTP transport with the order workflow service and checkout orchestration.
type OrdersAPI struct {
	service   orderports.Service
	workflows orderports.WorkflowOrchestrator
}

// NewOrdersAPI creates an OrdersAPI. A nil orchestrator makes checkout call the service directly.
func NewOrdersAPI(service orderports.Service, workflows orderports.WorkflowOrchestrator) OrdersAPI {
	return OrdersAPI{service: service, workflows: workflows}
}

// Get /api/v1/orders/get_orders/
// Lists orders of the requested type
func (api *OrdersAPI) GetOrders(c *gin.Context) {
	listType, ok := c.GetQuery("type")
	if !ok {
		respondProblem(c, apierrors.ErrValidation.WithField("type", "type is required"))
		return
	}
	orders, err := api.service.ListOrders(c.Request.Context(), listType)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, orderhttpmapper.FromDomainOrders(orders))
}

// Get /api/v1/orders/get_order/
// Returns an order with its lines, products and customer
func (api *OrdersAPI) GetOrder(c *gin.Context) {
	id, ok := parseIDQuery(c, "order_id")
	if !ok {
		return
	}
	detail, err := api.service.GetOrder(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, orderhttpmapper.FromOrderDetail(detail))
}

// Post /api/v1/orders/create_order/
// Places an order from a cart
func (api *OrdersAPI) CreateOrder(c *gin.Context) {
	var payload CreateOrderRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBodyError(c, "customer_id", err)
		return
	}
	if payload.CustomerID == nil {
		respondProblem(c, apierrors.ErrValidation.WithField("customer_id", "customer_id is required"))
		return
	}
	dueDate, err := orderhttpmapper.ParseDueDate(payload.DueDate)
	if err != nil {
		respondProblem(c, apierrors.ErrValidation.WithField("due_date", err.Error()))
		return
	}
	cart, err := orderhttpmapper.ToCart(payload.CartData)
	if err != nil {
		respondProblem(c, badCartError(err))
		return
	}
	input := ordertypes.PlaceOrderInput{
		CustomerID:     int64(*payload.CustomerID),
		DueDate:        dueDate,
		Cart:           cart,
		IdempotencyKey: strings.TrimSpace(c.GetHeader(IdempotencyKeyHeader)),
	}
	orderID, err := api.placeOrder(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, CreateOrderResponse{OrderID: orderID})
}

func (api *OrdersAPI) placeOrder(ctx context.Context, input ordertypes.PlaceOrderInput) (int64, error) {
	if api.workflows != nil {
		return api.workflows.PlaceOrder(ctx, input)
	}
	return api.service.PlaceOrder(ctx, input)
}

// Put /api/v1/orders/update_order/
// Moves an order between in_progress, packed and completed
func (api *OrdersAPI) UpdateOrder(c *gin.Context) {
	var payload UpdateOrderRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBodyError(c, "order_id", err)
		return
	}
	if payload.OrderID == nil {
		respondProblem(c, apierrors.ErrValidation.WithField("order_id", "order_id is required"))
		return
	}
	updated, err := api.service.UpdateStatus(c.Request.Context(), ordertypes.UpdateStatusInput{
		OrderID: int64(*payload.OrderID),
		Status:  payload.Status,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, orderhttpmapper.FromDomainOrder(updated))
}

// Delete /api/v1/orders/delete_order/
// Cancels an order and returns its stock
func (api *OrdersAPI) DeleteOrder(c *gin.Context) {
	var payload DeleteOrderRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBodyError(c, "order_id", err)
		return
	}
	if payload.OrderID == nil {
		respondProblem(c, apierrors.ErrValidation.WithField("order_id", "order_id is required"))
		return
	}
	cancelled, err := api.service.CancelOrder(c.Request.Context(), int64(*payload.OrderID))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, orderhttpmapper.FromDomainOrder(cancelled))
}

func parseIDQuery(c *gin.Context, name string) (int64, bool) {
	value, present := c.GetQuery(name)
	if !present {
		respondProblem(c, apierrors.ErrValidation.WithField(name, name+" is required"))
		return 0, false
	}
	id, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil || id <= 0 {
		respondProblem(c, apierrors.ErrValidation.WithField(name, errInvalidID.Error()))
		return 0, false
	}
	return id, true
}

// requireID checks an identifier bound from a body. Form values bypass ID.UnmarshalJSON, so the sign is checked here.
func requireID(c *gin.Context, field string, id *ID) (int64, bool) {
	if id == nil {
		respondProblem(c, apierrors.ErrValidation.WithField(field, field+" is required"))
		return 0, false
	}
	if *id <= 0 {
		respondProblem(c, apierrors.ErrValidation.WithField(field, errInvalidID.Error()))
		return 0, false
	}
	return int64(*id), true
}

// updateIDField names the identifier of an update body: id for JSON, formField for forms.
func updateIDField(c *gin.Context, formField string) string {
	if c.ContentType() == binding.MIMEJSON {
		return "id"
	}
	return formField
}

// deleteTarget reads the identifier from the query string, falling back to a JSON body.
func deleteTarget(c *gin.Context, field string, payload any, bound func() *ID) (int64, bool) {
	if _, present := c.GetQuery(field); present {
		return parseIDQuery(c, field)
	}
	if err := c.ShouldBindJSON(payload); err != nil {
		respondBodyError(c, field, err)
		return 0, false
	}
	return requireID(c, field, bound())
}

// respondBodyError reports a body that failed to decode. A bad identifier is attributed to idField.
func respondBodyError(c *gin.Context, idField string, err error) {
	if errors.Is(err, errInvalidID) {
		respondBindError(c, idField, err)
		return
	}
	respondBindError(c, "", err)
}
