package handler

import (
	"errors"
	"net/http"
	"testing"

	"github.com/antaeus/billing/internal/domain/billing"
	"github.com/antaeus/billing/internal/domain/shared"
	"github.com/antaeus/billing/internal/interfaces/http/dto"
	"github.com/antaeus/billing/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBaseHandler_HandleError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"invoice not found", billing.ErrInvoiceNotFound, http.StatusNotFound, dto.ErrCodeInvoiceNotFound},
		{"customer not found", billing.ErrCustomerNotFound, http.StatusNotFound, dto.ErrCodeCustomerNotFound},
		{"invalid state", shared.ErrInvalidState, http.StatusUnprocessableEntity, dto.ErrCodeInvalidState},
		{"conflict", shared.ErrConflict, http.StatusConflict, dto.ErrCodeConflict},
		{"unknown domain code", shared.NewDomainError("SOMETHING_ELSE", "odd"), http.StatusInternalServerError, "SOMETHING_ELSE"},
		{"plain error", errors.New("db down"), http.StatusInternalServerError, dto.ErrCodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &BaseHandler{}
			engine := gin.New()
			engine.Use(middleware.RequestID())
			engine.GET("/x", func(c *gin.Context) { h.HandleError(c, tt.err) })

			w := doRequest(engine, http.MethodGet, "/x")
			assertStatus(t, w, tt.wantStatus)

			resp := decodeResponse(t, w)
			assert.False(t, resp.Success)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.wantCode, resp.Error.Code)
			assert.NotEmpty(t, resp.Error.RequestID)
		})
	}
}

func TestBaseHandler_HandleErrorHidesInternalMessage(t *testing.T) {
	h := &BaseHandler{}
	engine := gin.New()
	engine.GET("/x", func(c *gin.Context) { h.HandleError(c, errors.New("password=hunter2")) })

	w := doRequest(engine, http.MethodGet, "/x")
	assert.NotContains(t, w.Body.String(), "hunter2")
}
