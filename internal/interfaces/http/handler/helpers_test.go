package handler

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/antaeus/billing/internal/domain/billing"
	"github.com/antaeus/billing/internal/domain/shared"
	"github.com/antaeus/billing/internal/domain/shared/valueobject"
	"github.com/antaeus/billing/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// MockJobTrigger is a mock implementation of JobTrigger
type MockJobTrigger struct {
	mock.Mock
}

func (m *MockJobTrigger) Trigger(job string) error {
	return m.Called(job).Error(0)
}

// MockInvoiceQueries is a mock implementation of InvoiceQueries
type MockInvoiceQueries struct {
	mock.Mock
}

func (m *MockInvoiceQueries) Fetch(ctx context.Context, id int64) (billing.Invoice, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(billing.Invoice), args.Error(1)
}

func (m *MockInvoiceQueries) FetchAll(ctx context.Context, filter shared.Filter) (shared.Paginated[billing.Invoice], error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(shared.Paginated[billing.Invoice]), args.Error(1)
}

// MockCustomerQueries is a mock implementation of CustomerQueries
type MockCustomerQueries struct {
	mock.Mock
}

func (m *MockCustomerQueries) Fetch(ctx context.Context, id int64) (billing.Customer, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(billing.Customer), args.Error(1)
}

func (m *MockCustomerQueries) FetchAll(ctx context.Context, filter shared.Filter) (shared.Paginated[billing.Customer], error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(shared.Paginated[billing.Customer]), args.Error(1)
}

type routes interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

func newTestEngine(h routes) *gin.Engine {
	engine := gin.New()
	h.RegisterRoutes(engine.Group("/rest/v1"))
	return engine
}

func doRequest(engine *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(method, path, nil))
	return w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) dto.Response {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func testInvoice(t *testing.T, id int64, amount string, status billing.InvoiceStatus) billing.Invoice {
	t.Helper()
	money, err := valueobject.NewMoneyFromString(amount, valueobject.EUR)
	require.NoError(t, err)
	inv, err := billing.NewInvoice(id, 1, money, status)
	require.NoError(t, err)
	return inv
}

func assertStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	require.Equal(t, want, w.Code, "body: %s", w.Body.String())
}

