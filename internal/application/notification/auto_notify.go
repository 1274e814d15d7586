package notification

import (
	"context"
	"fmt"
	"strings"

	"github.com/flamenca/backend/internal/domain/identity"
	"github.com/flamenca/backend/internal/domain/notification"
	"github.com/flamenca/backend/internal/domain/workforce"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Event payloads for automatic notifications. Each event type has a fixed
// channel routing: new orders, critical stock, incidents, payment issues and
// password resets go by SMS; low stock goes by WhatsApp; clock in and clock
// out try WhatsApp first and fall back to SMS.

// PasswordResetEvent notifies an employee of their temporary password
type PasswordResetEvent struct {
	EmployeeID    uuid.UUID
	EmployeeName  string
	EmployeePhone string
	TempPassword  string
}

// NewOrderEvent notifies staff about a newly received order
type NewOrderEvent struct {
	OrderNumber  string
	CustomerName string
	Total        string
	ItemNames    []string
}

// StockEvent reports products at or below a stock threshold
type StockEvent struct {
	Products []StockEventProduct
}

// StockEventProduct is one product in a stock alert
type StockEventProduct struct {
	Name  string
	Stock int
}

// ClockEvent reports an employee clocking in or out
type ClockEvent struct {
	EmployeeName string
	Time         string
	Location     string
	ClockIn      bool
}

// IncidentEvent reports a newly created incident
type IncidentEvent struct {
	Title      string
	Priority   string
	ReportedBy string
}

// PaymentIssueEvent reports a payment problem on an order
type PaymentIssueEvent struct {
	OrderNumber  string
	CustomerName string
	IssueType    string
	Amount       string
}

// AutoNotifyService sends automatic notifications for business events,
// driven by the admin's notification settings. Delivery failures never
// propagate to the caller; the triggering operation must not fail because
// a notification could not be sent.
type AutoNotifyService struct {
	dispatcher    *Dispatcher
	settingsRepo  notification.SettingsRepository
	timeEntryRepo workforce.TimeEntryRepository
	userRepo      identity.UserRepository
	logger        *zap.Logger
}

// NewAutoNotifyService creates a new auto-notify service
func NewAutoNotifyService(
	dispatcher *Dispatcher,
	settingsRepo notification.SettingsRepository,
	timeEntryRepo workforce.TimeEntryRepository,
	userRepo identity.UserRepository,
	logger *zap.Logger,
) *AutoNotifyService {
	return &AutoNotifyService{
		dispatcher:    dispatcher,
		settingsRepo:  settingsRepo,
		timeEntryRepo: timeEntryRepo,
		userRepo:      userRepo,
		logger:        logger,
	}
}

// NotifyPasswordReset sends the temporary password to the employee by SMS.
// The admin's SMS toggle gates this like every other SMS notification.
func (s *AutoNotifyService) NotifyPasswordReset(ctx context.Context, event PasswordResetEvent) bool {
	settings, err := s.adminSettings(ctx)
	if err != nil {
		return false
	}
	if !settings.SMSEnabled || event.EmployeePhone == "" {
		return false
	}

	body := fmt.Sprintf("¡Hola %s! Tu contraseña temporal es: %s. Por favor, cámbiala en tu próximo inicio de sesión. - Flamenca Store",
		event.EmployeeName, event.TempPassword)

	return s.trySend(ctx, &event.EmployeeID, notification.ChannelSMS, notification.TypePasswordReset, event.EmployeePhone, body)
}

// NotifyNewOrder sends an SMS to the admin and to every employee currently
// clocked in. Returns true when at least one notification went out.
func (s *AutoNotifyService) NotifyNewOrder(ctx context.Context, event NewOrderEvent) bool {
	settings, err := s.adminSettings(ctx)
	if err != nil {
		return false
	}
	if !settings.ChannelEnabled(notification.ChannelSMS) {
		return false
	}

	base := fmt.Sprintf("🛍️ NUEVO PEDIDO #%s\nCliente: %s\nTotal: %s€\nProductos: %s",
		event.OrderNumber, event.CustomerName, event.Total, summarizeItems(event.ItemNames))

	sent := 0

	adminBody := fmt.Sprintf("👑 [ADMIN] %s\n\nFlamenca Store", base)
	if s.trySend(ctx, &settings.UserID, notification.ChannelSMS, notification.TypeNewOrder, settings.SMSPhone, adminBody) {
		sent++
	}

	employeeBody := fmt.Sprintf("👷 [EMPLEADO] %s\n\nFlamenca Store", base)
	for _, employee := range s.clockedInEmployees(ctx) {
		if employee.Phone == "" {
			continue
		}
		id := employee.ID
		if s.trySend(ctx, &id, notification.ChannelSMS, notification.TypeNewOrder, employee.Phone, employeeBody) {
			sent++
		}
	}

	return sent > 0
}

// NotifyLowStock sends a WhatsApp alert listing the products running low
func (s *AutoNotifyService) NotifyLowStock(ctx context.Context, event StockEvent) bool {
	settings, err := s.adminSettings(ctx)
	if err != nil {
		return false
	}
	if !settings.ChannelEnabled(notification.ChannelWhatsApp) {
		return false
	}

	lines := make([]string, len(event.Products))
	for i, p := range event.Products {
		lines[i] = fmt.Sprintf("• %s: %d unidades", p.Name, p.Stock)
	}
	body := fmt.Sprintf("⚠️ STOCK BAJO\n\n%s\n\nRevisa el inventario en Flamenca Store", strings.Join(lines, "\n"))

	return s.trySend(ctx, &settings.UserID, notification.ChannelWhatsApp, notification.TypeLowStock, settings.WhatsAppPhone, body)
}

// NotifyCriticalStock sends an SMS alert for products at critical stock
func (s *AutoNotifyService) NotifyCriticalStock(ctx context.Context, event StockEvent) bool {
	settings, err := s.adminSettings(ctx)
	if err != nil {
		return false
	}
	if !settings.ChannelEnabled(notification.ChannelSMS) {
		return false
	}

	parts := make([]string, len(event.Products))
	for i, p := range event.Products {
		parts[i] = fmt.Sprintf("%s (%d)", p.Name, p.Stock)
	}
	body := fmt.Sprintf("🚨 STOCK CRÍTICO: %s - Flamenca Store", strings.Join(parts, ", "))

	return s.trySend(ctx, &settings.UserID, notification.ChannelSMS, notification.TypeCriticalStock, settings.SMSPhone, body)
}

// NotifyClockEvent reports a clock in or clock out to the admin. WhatsApp is
// tried first when enabled and SMS serves as fallback.
func (s *AutoNotifyService) NotifyClockEvent(ctx context.Context, event ClockEvent) bool {
	settings, err := s.adminSettings(ctx)
	if err != nil {
		return false
	}

	action, emoji := "SALIDA", "🚪"
	typ := notification.TypeCheckOut
	if event.ClockIn {
		action, emoji = "ENTRADA", "✅"
		typ = notification.TypeCheckIn
	}

	body := fmt.Sprintf("%s FICHAJE %s\n\nEmpleado: %s\nHora: %s\nUbicación: %s\n\nFlamenca Store",
		emoji, action, event.EmployeeName, event.Time, event.Location)

	if settings.ChannelEnabled(notification.ChannelWhatsApp) {
		if s.trySend(ctx, &settings.UserID, notification.ChannelWhatsApp, typ, settings.WhatsAppPhone, body) {
			return true
		}
		s.logger.Warn("WhatsApp clock notification failed, trying SMS fallback")
	}

	if settings.ChannelEnabled(notification.ChannelSMS) {
		return s.trySend(ctx, &settings.UserID, notification.ChannelSMS, typ, settings.SMSPhone, body)
	}

	return false
}

// NotifyIncident sends an SMS about a reported incident
func (s *AutoNotifyService) NotifyIncident(ctx context.Context, event IncidentEvent) bool {
	settings, err := s.adminSettings(ctx)
	if err != nil {
		return false
	}
	if !settings.ChannelEnabled(notification.ChannelSMS) {
		return false
	}

	emoji := "ℹ️"
	switch event.Priority {
	case "high", "urgent":
		emoji = "🚨"
	case "medium":
		emoji = "⚠️"
	}

	body := fmt.Sprintf("%s INCIDENCIA %s\n\nTítulo: %s\nReportado por: %s\n\nFlamenca Store",
		emoji, strings.ToUpper(event.Priority), event.Title, event.ReportedBy)

	return s.trySend(ctx, &settings.UserID, notification.ChannelSMS, notification.TypeIncident, settings.SMSPhone, body)
}

// NotifyPaymentIssue sends an SMS about a payment problem on an order
func (s *AutoNotifyService) NotifyPaymentIssue(ctx context.Context, event PaymentIssueEvent) bool {
	settings, err := s.adminSettings(ctx)
	if err != nil {
		return false
	}
	if !settings.ChannelEnabled(notification.ChannelSMS) {
		return false
	}

	body := fmt.Sprintf("💳 PROBLEMA DE PAGO\n\nPedido: #%s\nCliente: %s\nProblema: %s\nImporte: %s€\n\nFlamenca Store",
		event.OrderNumber, event.CustomerName, event.IssueType, event.Amount)

	return s.trySend(ctx, &settings.UserID, notification.ChannelSMS, notification.TypePaymentIssue, settings.SMSPhone, body)
}

// adminSettings loads the notification settings of the first admin user
func (s *AutoNotifyService) adminSettings(ctx context.Context) (*notification.Settings, error) {
	settings, err := s.settingsRepo.FindAdminSettings(ctx)
	if err != nil {
		s.logger.Warn("Admin notification settings not found", zap.Error(err))
		return nil, err
	}
	return settings, nil
}

// clockedInEmployees returns the users with an open time entry
func (s *AutoNotifyService) clockedInEmployees(ctx context.Context) []*identity.User {
	entries, err := s.timeEntryRepo.FindOpen(ctx)
	if err != nil {
		s.logger.Warn("Failed to load open time entries", zap.Error(err))
		return nil
	}

	var users []*identity.User
	for _, entry := range entries {
		user, err := s.userRepo.FindByID(ctx, entry.EmployeeID)
		if err != nil {
			s.logger.Warn("Clocked-in employee not found",
				zap.String("employee_id", entry.EmployeeID.String()),
				zap.Error(err))
			continue
		}
		users = append(users, user)
	}
	return users
}

// trySend dispatches one notification and reports success. Errors are logged
// and swallowed.
func (s *AutoNotifyService) trySend(ctx context.Context, userID *uuid.UUID, channel notification.Channel, typ notification.Type, recipient, body string) bool {
	_, err := s.dispatcher.Send(ctx, SendInput{
		UserID:    userID,
		Channel:   channel,
		Type:      typ,
		Recipient: recipient,
		Body:      body,
	})
	if err != nil {
		s.logger.Warn("Automatic notification failed",
			zap.String("type", typ.String()),
			zap.String("channel", channel.String()),
			zap.Error(err))
		return false
	}
	return true
}

// summarizeItems shows the first two item names and counts the rest
func summarizeItems(names []string) string {
	if len(names) <= 2 {
		return strings.Join(names, ", ")
	}
	return fmt.Sprintf("%s y %d más", strings.Join(names[:2], ", "), len(names)-2)
}
