package handler

import (
	"context"

	"github.com/antaeus/billing/internal/domain/billing"
	"github.com/antaeus/billing/internal/domain/shared"
	"github.com/antaeus/billing/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// CustomerQueries reads customers. *appbilling.CustomerService implements it.
type CustomerQueries interface {
	Fetch(ctx context.Context, id int64) (billing.Customer, error)
	FetchAll(ctx context.Context, filter shared.Filter) (shared.Paginated[billing.Customer], error)
}

// CustomerHandler serves customer reads
type CustomerHandler struct {
	BaseHandler
	customers CustomerQueries
}

// NewCustomerHandler creates a new CustomerHandler
func NewCustomerHandler(customers CustomerQueries) *CustomerHandler {
	return &CustomerHandler{customers: customers}
}

// RegisterRoutes mounts /customers
func (h *CustomerHandler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/customers")
	g.GET("", h.List)
	g.GET("/:id", h.Get)
}

// List godoc
// @ID           listCustomers
// @Summary      List customers
// @Description  Retrieve a paginated list of customers
// @Tags         customers
// @Produce      json
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(1000)
// @Param        order_by query string false "Order by field" Enums(id, currency, created_at, updated_at) default(id)
// @Param        order_dir query string false "Order direction" Enums(asc, desc) default(asc)
// @Success      200 {object} dto.Response{data=[]dto.CustomerResponse,meta=dto.Meta}
// @Failure      400 {object} dto.Response
// @Failure      500 {object} dto.Response
// @Router       /rest/v1/customers [get]
func (h *CustomerHandler) List(c *gin.Context) {
	filter, ok := h.listFilter(c)
	if !ok {
		return
	}
	page, err := h.customers.FetchAll(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, dto.ToCustomerResponses(page.Items), page.Total, page.Page, page.PageSize)
}

// Get godoc
// @ID           getCustomerById
// @Summary      Get customer by ID
// @Description  Retrieve a single customer by its ID
// @Tags         customers
// @Produce      json
// @Param        id path int true "Customer ID" minimum(1)
// @Success      200 {object} dto.Response{data=dto.CustomerResponse}
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      500 {object} dto.Response
// @Router       /rest/v1/customers/{id} [get]
func (h *CustomerHandler) Get(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	customer, err := h.customers.Fetch(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.ToCustomerResponse(customer))
}
