package handler

import (
	"errors"
	"net/http"

	appbilling "github.com/antaeus/billing/internal/application/billing"
	"github.com/antaeus/billing/internal/infrastructure/scheduler"
	"github.com/antaeus/billing/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// JobTrigger starts a billing job in the background.
// *scheduler.BillingScheduler implements it.
type JobTrigger interface {
	Trigger(job string) error
}

// BillingHandler starts billing runs
type BillingHandler struct {
	BaseHandler
	jobs JobTrigger
}

// NewBillingHandler creates a new BillingHandler
func NewBillingHandler(jobs JobTrigger) *BillingHandler {
	return &BillingHandler{jobs: jobs}
}

// RegisterRoutes mounts the billing commands
func (h *BillingHandler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/billing")
	g.POST("", h.Charge)
	g.POST("/overdue", h.Overdue)
}

// Charge godoc
// @ID           chargeInvoices
// @Summary      Charge pending invoices
// @Description  Start charging every PENDING invoice in the background. Returns as soon as the run is scheduled.
// @Tags         billing
// @Produce      json
// @Success      202 {string} string "accepted"
// @Failure      409 {object} dto.Response
// @Failure      503 {object} dto.Response
// @Router       /rest/v1/billing [post]
func (h *BillingHandler) Charge(c *gin.Context) {
	h.start(c, appbilling.OperationCharge)
}

// Overdue godoc
// @ID           markInvoicesOverdue
// @Summary      Mark pending invoices overdue
// @Description  Start moving every PENDING invoice to OVERDUE in the background. Returns as soon as the run is scheduled.
// @Tags         billing
// @Produce      json
// @Success      202 {string} string "accepted"
// @Failure      409 {object} dto.Response
// @Failure      503 {object} dto.Response
// @Router       /rest/v1/billing/overdue [post]
func (h *BillingHandler) Overdue(c *gin.Context) {
	h.start(c, appbilling.OperationOverdue)
}

func (h *BillingHandler) start(c *gin.Context, job string) {
	err := h.jobs.Trigger(job)
	switch {
	case err == nil:
		c.JSON(http.StatusAccepted, "accepted")
	case errors.Is(err, scheduler.ErrJobAlreadyRunning):
		h.ErrorWithCode(c, dto.ErrCodeBillingRunInProgress, "A "+job+" run is already in progress")
	case errors.Is(err, scheduler.ErrSchedulerNotRunning):
		h.ErrorWithCode(c, dto.ErrCodeUnavailable, "Billing is shutting down")
	default:
		h.HandleError(c, err)
	}
}
