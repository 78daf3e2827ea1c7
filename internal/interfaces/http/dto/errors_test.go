package dto

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		code string
		want int
	}{
		{ErrCodeInvoiceNotFound, http.StatusNotFound},
		{ErrCodeCustomerNotFound, http.StatusNotFound},
		{ErrCodeBillingRunInProgress, http.StatusConflict},
		{ErrCodeInvalidInput, http.StatusBadRequest},
		{ErrCodeInvalidState, http.StatusUnprocessableEntity},
		{ErrCodeUnavailable, http.StatusServiceUnavailable},
		{"SOMETHING_ELSE", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, GetHTTPStatus(tt.code))
		})
	}
}

func TestNormalizeErrorCode(t *testing.T) {
	assert.Equal(t, ErrCodeInvoiceNotFound, NormalizeErrorCode("INVOICE_NOT_FOUND"))
	assert.Equal(t, ErrCodeCustomerNotFound, NormalizeErrorCode("CUSTOMER_NOT_FOUND"))
	assert.Equal(t, ErrCodeConflict, NormalizeErrorCode("CONFLICT"))
	assert.Equal(t, ErrCodeInternal, NormalizeErrorCode(ErrCodeInternal))
	assert.Equal(t, "UNKNOWN_THING", NormalizeErrorCode("UNKNOWN_THING"))
}

func TestEveryMappedCodeHasStatus(t *testing.T) {
	for domainCode, apiCode := range DomainErrorCodeMapping {
		_, ok := ErrorCodeHTTPStatus[apiCode]
		assert.True(t, ok, "%s maps to %s which has no HTTP status", domainCode, apiCode)
	}
}

func TestNewSuccessResponseWithMeta(t *testing.T) {
	resp := NewSuccessResponseWithMeta([]int{1, 2}, 21, 2, 10)
	assert.True(t, resp.Success)
	assert.Equal(t, &Meta{Total: 21, Page: 2, PageSize: 10, TotalPages: 3}, resp.Meta)

	resp = NewSuccessResponseWithMeta(nil, 5, 1, 0)
	assert.Equal(t, 0, resp.Meta.TotalPages)
}

func TestNewErrorResponseWithRequestID(t *testing.T) {
	resp := NewErrorResponseWithRequestID(ErrCodeNotFound, "missing", "req-1")
	assert.False(t, resp.Success)
	assert.Equal(t, &ErrorInfo{Code: ErrCodeNotFound, Message: "missing", RequestID: "req-1"}, resp.Error)
}
