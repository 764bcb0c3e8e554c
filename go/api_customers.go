package backofficeserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	customerhttpmapper "github.com/Apurer/go-gin-backoffice/internal/domains/customers/adapters/http/mapper"
	customerports "github.com/Apurer/go-gin-backoffice/internal/domains/customers/ports"
	"github.com/Apurer/go-gin-backoffice/internal/shared/response"
)

// CustomersAPI exposes customer management.
type CustomersAPI struct {
	service customerports.Service
}

func NewCustomersAPI(service customerports.Service) CustomersAPI {
	return CustomersAPI{service: service}
}

// Get /api/v1/customers/get_customers/
func (api *CustomersAPI) GetCustomers(c *gin.Context) {
	customers, err := api.service.ListCustomers(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, customerhttpmapper.FromDomainCustomers(customers))
}

// Get /api/v1/customers/get_customer/
func (api *CustomersAPI) GetCustomer(c *gin.Context) {
	id, ok := parseIDQuery(c, "customer_id")
	if !ok {
		return
	}
	customer, err := api.service.GetCustomer(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, customerhttpmapper.FromDomainCustomer(customer))
}

// Post /api/v1/customers/create_customer/
func (api *CustomersAPI) CreateCustomer(c *gin.Context) {
	var payload customerhttpmapper.CustomerMutation
	if err := c.ShouldBind(&payload); err != nil {
		respondBindError(c, "", err)
		return
	}
	created, err := api.service.CreateCustomer(c.Request.Context(), customerhttpmapper.ToCustomerInput(payload))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, CreateCustomerResponse{CustomerID: created.ID})
}

// Put /api/v1/customers/update_customer/
// Form bodies name the customer with customer_id
func (api *CustomersAPI) UpdateCustomer(c *gin.Context) {
	var payload UpdateCustomerRequest
	if err := c.ShouldBind(&payload); err != nil {
		respondBodyError(c, "id", err)
		return
	}
	id, ok := requireID(c, updateIDField(c, "customer_id"), payload.ID)
	if !ok {
		return
	}
	updated, err := api.service.UpdateCustomer(c.Request.Context(), id, customerhttpmapper.ToCustomerInput(payload.CustomerMutation))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, customerhttpmapper.FromDomainCustomer(updated))
}

// Delete /api/v1/customers/delete_customer/
// Orders keep existing with a null customer
func (api *CustomersAPI) DeleteCustomer(c *gin.Context) {
	var payload DeleteCustomerRequest
	id, ok := deleteTarget(c, "customer_id", &payload, func() *ID { return payload.CustomerID })
	if !ok {
		return
	}
	if err := api.service.DeleteCustomer(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, nil)
}
