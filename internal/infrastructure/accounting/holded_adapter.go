package accounting

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/flamenca/backend/internal/domain/billing"
)

// maxResponseSize is the maximum allowed response size from the Holded API (10MB)
const maxResponseSize = 10 * 1024 * 1024

// HoldedAdapter implements the AccountingGateway interface against the Holded
// invoicing API. In simulated mode no HTTP calls are made and document IDs
// are fabricated with a test prefix.
type HoldedAdapter struct {
	config     *HoldedConfig
	httpClient *http.Client
	now        func() time.Time
}

// Interface assertion
var _ billing.AccountingGateway = (*HoldedAdapter)(nil)

// NewHoldedAdapter creates a new Holded adapter with the given configuration
func NewHoldedAdapter(config *HoldedConfig) (*HoldedAdapter, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &HoldedAdapter{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		now: time.Now,
	}, nil
}

// Simulated reports whether the gateway fabricates documents locally
func (a *HoldedAdapter) Simulated() bool {
	return a.config.Mode == ModeSimulated
}

// ---------------------------------------------------------------------------
// Contacts
// ---------------------------------------------------------------------------

// holdedContact mirrors the Holded contact payload
type holdedContact struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
	Type  string `json:"type"`
}

// FindContactByEmail returns the contact with the given email. The API has no
// email filter, so the contact list is scanned.
func (a *HoldedAdapter) FindContactByEmail(ctx context.Context, email string) (*billing.Contact, error) {
	if email == "" {
		return nil, billing.ErrContactNotFound
	}
	if a.Simulated() {
		return nil, billing.ErrContactNotFound
	}

	body, err := a.doRequest(ctx, http.MethodGet, "contacts", nil)
	if err != nil {
		return nil, err
	}

	var contacts []holdedContact
	if err := json.Unmarshal(body, &contacts); err != nil {
		return nil, fmt.Errorf("%w: %v", billing.ErrAccountingInvalidResponse, err)
	}

	for _, c := range contacts {
		if strings.EqualFold(c.Email, email) {
			return &billing.Contact{
				ExternalID: c.ID,
				Name:       c.Name,
				Email:      c.Email,
				Phone:      c.Phone,
			}, nil
		}
	}
	return nil, billing.ErrContactNotFound
}

// CreateContact creates a new customer contact
func (a *HoldedAdapter) CreateContact(ctx context.Context, contact *billing.Contact) (*billing.Contact, error) {
	if a.Simulated() {
		created := *contact
		created.ExternalID = fmt.Sprintf("test_customer_%d", a.now().UnixMilli())
		return &created, nil
	}

	payload, err := json.Marshal(holdedContact{
		Name:  contact.Name,
		Email: contact.Email,
		Phone: contact.Phone,
		Type:  "customer",
	})
	if err != nil {
		return nil, fmt.Errorf("holded: failed to encode contact: %w", err)
	}

	body, err := a.doRequest(ctx, http.MethodPost, "contacts", payload)
	if err != nil {
		return nil, err
	}

	var created holdedContact
	if err := json.Unmarshal(body, &created); err != nil {
		return nil, fmt.Errorf("%w: %v", billing.ErrAccountingInvalidResponse, err)
	}
	if created.ID == "" {
		return nil, billing.ErrAccountingInvalidResponse
	}

	result := *contact
	result.ExternalID = created.ID
	return &result, nil
}

// ---------------------------------------------------------------------------
// Invoices
// ---------------------------------------------------------------------------

// holdedInvoiceItem is one line of the invoice document payload
type holdedInvoiceItem struct {
	Name     string  `json:"name"`
	Units    int     `json:"units"`
	Subtotal float64 `json:"subtotal"`
}

// holdedInvoiceRequest is the document creation payload
type holdedInvoiceRequest struct {
	ContactID string              `json:"contactId"`
	Date      int64               `json:"date"`
	Notes     string              `json:"notes,omitempty"`
	Items     []holdedInvoiceItem `json:"items"`
}

// holdedInvoiceResponse is the created document as reported by the API
type holdedInvoiceResponse struct {
	Status      int    `json:"status"`
	ID          string `json:"id"`
	InvoiceNum  string `json:"invoiceNum"`
	Description string `json:"info,omitempty"`
}

// CreateInvoice creates an invoice document. In simulated mode the document
// is fabricated locally with a test-prefixed ID and no API call is made.
func (a *HoldedAdapter) CreateInvoice(ctx context.Context, req *billing.InvoiceRequest) (*billing.InvoiceDocument, error) {
	total := invoiceTotal(req)

	if a.Simulated() {
		id := fmt.Sprintf("test_invoice_%d", a.now().UnixMilli())
		return &billing.InvoiceDocument{
			ExternalID: id,
			Number:     id,
			Total:      total,
			Simulated:  true,
		}, nil
	}

	date := req.Date
	if date.IsZero() {
		date = a.now()
	}

	payload := holdedInvoiceRequest{
		ContactID: req.ContactID,
		Date:      date.Unix(),
		Notes:     req.Notes,
	}
	for _, line := range req.Lines {
		subtotal, _ := line.UnitPrice.Float64()
		payload.Items = append(payload.Items, holdedInvoiceItem{
			Name:     line.Name,
			Units:    line.Units,
			Subtotal: subtotal,
		})
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("holded: failed to encode invoice: %w", err)
	}

	respBody, err := a.doRequest(ctx, http.MethodPost, "documents/invoice", body)
	if err != nil {
		return nil, err
	}

	var created holdedInvoiceResponse
	if err := json.Unmarshal(respBody, &created); err != nil {
		return nil, fmt.Errorf("%w: %v", billing.ErrAccountingInvalidResponse, err)
	}
	if created.ID == "" {
		return nil, billing.ErrAccountingInvalidResponse
	}

	return &billing.InvoiceDocument{
		ExternalID: created.ID,
		Number:     created.InvoiceNum,
		Total:      total,
		Simulated:  false,
	}, nil
}

// invoiceTotal sums the line totals of a request
func invoiceTotal(req *billing.InvoiceRequest) (total decimal.Decimal) {
	for _, line := range req.Lines {
		total = total.Add(line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Units))))
	}
	return total
}

// ---------------------------------------------------------------------------
// HTTP plumbing
// ---------------------------------------------------------------------------

// doRequest executes one API request. The API key travels in the "key" header.
func (a *HoldedAdapter) doRequest(ctx context.Context, method, resource string, payload []byte) ([]byte, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.config.APIURL(resource), reader)
	if err != nil {
		return nil, fmt.Errorf("holded: failed to create request: %w", err)
	}
	req.Header.Set("key", a.config.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", billing.ErrAccountingUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("holded: failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("%w: HTTP %d: %s", billing.ErrAccountingRequestFailed, resp.StatusCode, truncate(string(body), 200))
	}

	return body, nil
}

// truncate shortens s to at most n runes for error messages
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
