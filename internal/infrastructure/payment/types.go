package payment

// chargeRequest is the body of POST /v1/charges
type chargeRequest struct {
	InvoiceID  int64  `json:"invoice_id"`
	CustomerID int64  `json:"customer_id"`
	Amount     string `json:"amount"`
	Currency   string `json:"currency"`
}

// chargeResponse is returned with 200 OK
type chargeResponse struct {
	Charged  bool   `json:"charged"`
	ChargeID string `json:"charge_id,omitempty"`
}

// errorResponse is returned with non-2xx statuses
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Provider error codes
const (
	codeInsufficientFunds = "INSUFFICIENT_FUNDS"
	codeCustomerNotFound  = "CUSTOMER_NOT_FOUND"
	codeCurrencyMismatch  = "CURRENCY_MISMATCH"
)
