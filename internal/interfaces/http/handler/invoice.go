package handler

import (
	"context"

	"github.com/antaeus/billing/internal/domain/billing"
	"github.com/antaeus/billing/internal/domain/shared"
	"github.com/antaeus/billing/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// InvoiceQueries reads invoices. *appbilling.InvoiceService implements it.
type InvoiceQueries interface {
	Fetch(ctx context.Context, id int64) (billing.Invoice, error)
	FetchAll(ctx context.Context, filter shared.Filter) (shared.Paginated[billing.Invoice], error)
}

// InvoiceHandler serves invoice reads
type InvoiceHandler struct {
	BaseHandler
	invoices InvoiceQueries
}

// NewInvoiceHandler creates a new InvoiceHandler
func NewInvoiceHandler(invoices InvoiceQueries) *InvoiceHandler {
	return &InvoiceHandler{invoices: invoices}
}

// RegisterRoutes mounts /invoices
func (h *InvoiceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/invoices")
	g.GET("", h.List)
	g.GET("/:id", h.Get)
}

// List godoc
// @ID           listInvoices
// @Summary      List invoices
// @Description  Retrieve a paginated list of invoices
// @Tags         invoices
// @Produce      json
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(1000)
// @Param        order_by query string false "Order by field" Enums(id, customer_id, amount, currency, status, created_at, updated_at) default(id)
// @Param        order_dir query string false "Order direction" Enums(asc, desc) default(asc)
// @Success      200 {object} dto.Response{data=[]dto.InvoiceResponse,meta=dto.Meta}
// @Failure      400 {object} dto.Response
// @Failure      500 {object} dto.Response
// @Router       /rest/v1/invoices [get]
func (h *InvoiceHandler) List(c *gin.Context) {
	filter, ok := h.listFilter(c)
	if !ok {
		return
	}
	page, err := h.invoices.FetchAll(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, dto.ToInvoiceResponses(page.Items), page.Total, page.Page, page.PageSize)
}

// Get godoc
// @ID           getInvoiceById
// @Summary      Get invoice by ID
// @Description  Retrieve a single invoice by its ID
// @Tags         invoices
// @Produce      json
// @Param        id path int true "Invoice ID" minimum(1)
// @Success      200 {object} dto.Response{data=dto.InvoiceResponse}
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      500 {object} dto.Response
// @Router       /rest/v1/invoices/{id} [get]
func (h *InvoiceHandler) Get(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	invoice, err := h.invoices.Fetch(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.ToInvoiceResponse(invoice))
}
