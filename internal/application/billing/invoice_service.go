package billing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/flamenca/backend/internal/domain/billing"
	"github.com/flamenca/backend/internal/domain/ordering"
	"github.com/flamenca/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// InvoiceService creates accounting invoices for orders. Creation is
// idempotent per order: a second request for the same order returns the
// existing invoice instead of issuing a new document.
type InvoiceService struct {
	invoiceRepo billing.InvoiceRepository
	orderRepo   ordering.OrderRepository
	gateway     billing.AccountingGateway
	logger      *zap.Logger
}

// NewInvoiceService creates a new invoice service
func NewInvoiceService(
	invoiceRepo billing.InvoiceRepository,
	orderRepo ordering.OrderRepository,
	gateway billing.AccountingGateway,
	logger *zap.Logger,
) *InvoiceService {
	return &InvoiceService{
		invoiceRepo: invoiceRepo,
		orderRepo:   orderRepo,
		gateway:     gateway,
		logger:      logger,
	}
}

// CreateForOrder creates an invoice in the accounting system for the given
// order. The contact is resolved by customer email and created when missing.
// The external document is created before the local record is written, so a
// storage failure after a successful external call surfaces as an error with
// the external document already issued.
func (s *InvoiceService) CreateForOrder(ctx context.Context, input CreateInvoiceInput) (*InvoiceInfo, error) {
	existing, err := s.invoiceRepo.FindByOrderID(ctx, input.OrderID)
	if err == nil {
		s.logger.Info("Invoice already exists for order",
			zap.String("order_id", input.OrderID.String()),
			zap.String("invoice_id", existing.ID.String()))
		info := toInvoiceInfo(existing)
		info.AlreadyExisted = true
		return &info, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	order, err := s.orderRepo.FindByID(ctx, input.OrderID)
	if err != nil {
		return nil, err
	}
	if len(order.Items) == 0 {
		return nil, shared.NewDomainError("EMPTY_ORDER", "Cannot invoice an order with no items")
	}

	email := input.CustomerEmail
	if email == "" {
		email = order.CustomerEmail
	}

	contactID, err := s.resolveContact(ctx, order, email)
	if err != nil {
		return nil, err
	}

	lines := make([]billing.InvoiceLine, len(order.Items))
	for i, item := range order.Items {
		lines[i] = billing.InvoiceLine{
			Name:      item.ProductName,
			Units:     item.Quantity,
			UnitPrice: item.UnitPrice,
		}
	}

	notes := input.Notes
	if notes == "" {
		notes = fmt.Sprintf("Pedido %s - Flamenca Store", order.Number)
	}

	document, err := s.gateway.CreateInvoice(ctx, &billing.InvoiceRequest{
		ContactID: contactID,
		Date:      time.Now(),
		Notes:     notes,
		Lines:     lines,
	})
	if err != nil {
		s.logger.Error("Failed to create accounting invoice",
			zap.String("order_id", order.ID.String()),
			zap.Error(err))
		return nil, err
	}

	invoice, err := billing.NewInvoice(order.ID, document.ExternalID, contactID, document.Number, order.Total, document.Simulated)
	if err != nil {
		return nil, err
	}
	invoice.CustomerName = order.CustomerName
	invoice.CustomerEmail = email

	if err := s.invoiceRepo.Save(ctx, invoice); err != nil {
		// A concurrent request won the unique constraint race; return its
		// invoice rather than failing.
		if errors.Is(err, shared.ErrAlreadyExists) {
			winner, findErr := s.invoiceRepo.FindByOrderID(ctx, input.OrderID)
			if findErr == nil {
				info := toInvoiceInfo(winner)
				info.AlreadyExisted = true
				return &info, nil
			}
		}
		s.logger.Error("Failed to save invoice after external document was created",
			zap.String("order_id", order.ID.String()),
			zap.String("external_invoice_id", document.ExternalID),
			zap.Error(err))
		return nil, err
	}

	s.logger.Info("Invoice created",
		zap.String("invoice_id", invoice.ID.String()),
		zap.String("order_id", order.ID.String()),
		zap.String("external_invoice_id", document.ExternalID),
		zap.Bool("simulated", document.Simulated))

	info := toInvoiceInfo(invoice)
	return &info, nil
}

// Get returns an invoice by ID
func (s *InvoiceService) Get(ctx context.Context, id uuid.UUID) (*InvoiceInfo, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	info := toInvoiceInfo(invoice)
	return &info, nil
}

// GetByOrder returns the invoice for an order
func (s *InvoiceService) GetByOrder(ctx context.Context, orderID uuid.UUID) (*InvoiceInfo, error) {
	invoice, err := s.invoiceRepo.FindByOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	info := toInvoiceInfo(invoice)
	return &info, nil
}

// List returns invoices matching the filter
func (s *InvoiceService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[InvoiceInfo], error) {
	invoices, err := s.invoiceRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.invoiceRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	infos := make([]InvoiceInfo, len(invoices))
	for i, inv := range invoices {
		infos[i] = toInvoiceInfo(&inv)
	}
	return shared.NewPaginated(infos, total, filter.Page, filter.PageSize), nil
}

// MarkPaid marks an invoice as paid
func (s *InvoiceService) MarkPaid(ctx context.Context, id uuid.UUID) (*InvoiceInfo, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := invoice.MarkPaid(); err != nil {
		return nil, err
	}
	if err := s.invoiceRepo.Save(ctx, invoice); err != nil {
		return nil, err
	}
	info := toInvoiceInfo(invoice)
	return &info, nil
}

// resolveContact finds the accounting contact for the order's customer,
// creating one when no contact matches the email
func (s *InvoiceService) resolveContact(ctx context.Context, order *ordering.Order, email string) (string, error) {
	if email != "" {
		contact, err := s.gateway.FindContactByEmail(ctx, email)
		if err == nil {
			return contact.ExternalID, nil
		}
		if !errors.Is(err, billing.ErrContactNotFound) {
			return "", err
		}
	}

	created, err := s.gateway.CreateContact(ctx, &billing.Contact{
		Name:  order.CustomerName,
		Email: email,
		Phone: order.CustomerPhone,
	})
	if err != nil {
		s.logger.Error("Failed to create accounting contact",
			zap.String("order_id", order.ID.String()),
			zap.Error(err))
		return "", err
	}
	return created.ExternalID, nil
}

func toInvoiceInfo(inv *billing.Invoice) InvoiceInfo {
	return InvoiceInfo{
		ID:                inv.ID,
		OrderID:           inv.OrderID,
		ExternalInvoiceID: inv.ExternalInvoiceID,
		ExternalContactID: inv.ExternalContactID,
		Number:            inv.Number,
		Status:            inv.Status,
		Total:             inv.Total,
		Currency:          inv.Currency,
		CustomerName:      inv.CustomerName,
		CustomerEmail:     inv.CustomerEmail,
		IssuedAt:          inv.IssuedAt,
		Simulated:         inv.Simulated,
	}
}
