package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/antaeus/billing/internal/domain/billing"
	"github.com/antaeus/billing/internal/infrastructure/telemetry"
	"go.opentelemetry.io/otel/trace"
)

const chargePath = "/v1/charges"

// HTTPProvider charges invoices through a REST payment provider.
//
// Responses map onto the billing.PaymentProvider contract:
//   - 200 returns the provider's charged flag
//   - 402 is a decline
//   - 404 is an unknown customer
//   - 409 and 422 are a currency mismatch
//   - 5xx and transport failures are network errors
//
// Anything else is returned as an unclassified error.
type HTTPProvider struct {
	config     *HTTPProviderConfig
	httpClient *http.Client
}

// NewHTTPProvider creates a new HTTP payment provider
func NewHTTPProvider(config *HTTPProviderConfig) (*HTTPProvider, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &HTTPProvider{
		config: config,
		httpClient: &http.Client{
			Timeout: config.timeout(),
		},
	}, nil
}

// Charge asks the provider to debit the invoice amount from the customer
func (p *HTTPProvider) Charge(ctx context.Context, invoice billing.Invoice) (bool, error) {
	ctx, span := telemetry.StartSpan(ctx, "PaymentProvider.Charge",
		telemetry.WithSpanKind(trace.SpanKindClient),
		telemetry.WithAttribute(telemetry.SpanAttrInvoiceID, invoice.ID),
		telemetry.WithAttribute(telemetry.SpanAttrCustomerID, invoice.CustomerID),
	)
	defer span.End()

	charged, err := p.charge(ctx, invoice)
	if err != nil {
		telemetry.RecordError(span, err)
		return false, err
	}
	telemetry.SetOK(span)
	return charged, nil
}

func (p *HTTPProvider) charge(ctx context.Context, invoice billing.Invoice) (bool, error) {
	body, err := json.Marshal(chargeRequest{
		InvoiceID:  invoice.ID,
		CustomerID: invoice.CustomerID,
		Amount:     invoice.Amount.StringFixed(2),
		Currency:   invoice.Amount.Currency().String(),
	})
	if err != nil {
		return false, fmt.Errorf("payment: failed to marshal request: %w", err)
	}

	url := strings.TrimRight(p.config.BaseURL, "/") + chargePath
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return false, fmt.Errorf("payment: failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if p.config.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+p.config.APIKey)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return false, classifyTransportError(ctx, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return false, &billing.NetworkError{Cause: fmt.Errorf("read response: %w", err)}
	}

	return p.interpret(invoice, resp.StatusCode, respBody)
}

func (p *HTTPProvider) interpret(invoice billing.Invoice, status int, body []byte) (bool, error) {
	if status == http.StatusOK {
		var result chargeResponse
		if err := json.Unmarshal(body, &result); err != nil {
			return false, fmt.Errorf("payment: failed to parse response: %w", err)
		}
		return result.Charged, nil
	}

	var errResp errorResponse
	_ = json.Unmarshal(body, &errResp)

	switch {
	case status == http.StatusPaymentRequired || errResp.Code == codeInsufficientFunds:
		return false, nil
	case status == http.StatusNotFound || errResp.Code == codeCustomerNotFound:
		return false, &billing.CustomerNotFoundError{CustomerID: invoice.CustomerID}
	case status == http.StatusConflict || status == http.StatusUnprocessableEntity || errResp.Code == codeCurrencyMismatch:
		return false, &billing.CurrencyMismatchError{InvoiceID: invoice.ID, CustomerID: invoice.CustomerID}
	case status >= http.StatusInternalServerError:
		return false, &billing.NetworkError{Cause: fmt.Errorf("provider returned HTTP %d", status)}
	}

	if errResp.Code != "" {
		return false, fmt.Errorf("payment: unexpected response HTTP %d: %s - %s", status, errResp.Code, errResp.Message)
	}
	return false, fmt.Errorf("payment: unexpected response HTTP %d", status)
}

// classifyTransportError reports dial, TLS and timeout failures as network errors.
// Cancellation of the caller's context stays unclassified.
func classifyTransportError(ctx context.Context, err error) error {
	if ctx.Err() != nil && !errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("payment: request aborted: %w", ctx.Err())
	}
	return &billing.NetworkError{Cause: err}
}

var _ billing.PaymentProvider = (*HTTPProvider)(nil)
