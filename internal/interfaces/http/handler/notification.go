package handler

import (
	appnotification "github.com/flamenca/backend/internal/application/notification"
	"github.com/flamenca/backend/internal/domain/notification"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// NotificationHandler handles notification HTTP requests
type NotificationHandler struct {
	BaseHandler
	dispatcher      *appnotification.Dispatcher
	settingsService *appnotification.SettingsService
	templateService *appnotification.TemplateService
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(
	dispatcher *appnotification.Dispatcher,
	settingsService *appnotification.SettingsService,
	templateService *appnotification.TemplateService,
) *NotificationHandler {
	return &NotificationHandler{
		dispatcher:      dispatcher,
		settingsService: settingsService,
		templateService: templateService,
	}
}

// SendNotificationRequest is the send notification request body
type SendNotificationRequest struct {
	UserID    *uuid.UUID `json:"user_id"`
	Channel   string     `json:"channel" binding:"required,oneof=sms whatsapp email"`
	Type      string     `json:"type" binding:"required"`
	Recipient string     `json:"recipient" binding:"required"`
	Subject   string     `json:"subject"`
	Body      string     `json:"body" binding:"required"`
}

// SendTemplateRequest is the templated send request body
type SendTemplateRequest struct {
	UserID    *uuid.UUID        `json:"user_id"`
	Channel   string            `json:"channel" binding:"required,oneof=sms whatsapp email"`
	Type      string            `json:"type" binding:"required"`
	Recipient string            `json:"recipient" binding:"required"`
	Variables map[string]string `json:"variables"`
}

// SettingsRequest is the notification settings update body
type SettingsRequest struct {
	SMSEnabled      bool   `json:"sms_enabled"`
	WhatsAppEnabled bool   `json:"whatsapp_enabled"`
	EmailEnabled    bool   `json:"email_enabled"`
	SMSPhone        string `json:"sms_phone"`
	WhatsAppPhone   string `json:"whatsapp_phone"`
	EmailAddress    string `json:"email_address"`
}

// TemplateRequest is the template create and update body
type TemplateRequest struct {
	Name    string `json:"name" binding:"required"`
	Type    string `json:"type" binding:"required"`
	Channel string `json:"channel" binding:"required,oneof=sms whatsapp email"`
	Subject string `json:"subject"`
	Body    string `json:"body" binding:"required"`
}

// Send godoc
// @Summary  Send a notification
// @Tags     notifications
// @Router   /notifications [post]
func (h *NotificationHandler) Send(c *gin.Context) {
	var req SendNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.dispatcher.Send(c.Request.Context(), appnotification.SendInput{
		UserID:    req.UserID,
		Channel:   notification.Channel(req.Channel),
		Type:      notification.Type(req.Type),
		Recipient: req.Recipient,
		Subject:   req.Subject,
		Body:      req.Body,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, gin.H{
		"delivery_id":         result.DeliveryID,
		"status":              result.Status,
		"provider_message_id": result.ProviderMessageID,
		"simulated":           result.Simulated,
	})
}

// SendTemplate godoc
// @Summary  Send a notification from a stored template
// @Tags     notifications
// @Router   /notifications/template [post]
func (h *NotificationHandler) SendTemplate(c *gin.Context) {
	var req SendTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.dispatcher.SendTemplate(c.Request.Context(), appnotification.SendTemplateInput{
		UserID:    req.UserID,
		Channel:   notification.Channel(req.Channel),
		Type:      notification.Type(req.Type),
		Recipient: req.Recipient,
		Variables: req.Variables,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, gin.H{
		"delivery_id":         result.DeliveryID,
		"status":              result.Status,
		"provider_message_id": result.ProviderMessageID,
		"simulated":           result.Simulated,
	})
}

// ListDeliveries godoc
// @Summary  List notification deliveries
// @Tags     notifications
// @Router   /notifications/deliveries [get]
func (h *NotificationHandler) ListDeliveries(c *gin.Context) {
	filter := parseFilter(c)
	if channel := c.Query("channel"); channel != "" {
		filter.Filters["channel"] = channel
	}
	if status := c.Query("status"); status != "" {
		filter.Filters["status"] = status
	}

	result, err := h.dispatcher.ListDeliveries(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// GetDelivery godoc
// @Summary  Get a notification delivery
// @Tags     notifications
// @Router   /notifications/deliveries/{id} [get]
func (h *NotificationHandler) GetDelivery(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid delivery ID")
		return
	}

	info, err := h.dispatcher.GetDelivery(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, info)
}

// GetSettings godoc
// @Summary  Get the caller's notification settings
// @Tags     notifications
// @Router   /notifications/settings [get]
func (h *NotificationHandler) GetSettings(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	settings, err := h.settingsService.Get(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, settings)
}

// UpdateSettings godoc
// @Summary  Update the caller's notification settings
// @Tags     notifications
// @Router   /notifications/settings [put]
func (h *NotificationHandler) UpdateSettings(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req SettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	settings, err := h.settingsService.Update(c.Request.Context(), appnotification.SettingsInput{
		UserID:          userID,
		SMSEnabled:      req.SMSEnabled,
		WhatsAppEnabled: req.WhatsAppEnabled,
		EmailEnabled:    req.EmailEnabled,
		SMSPhone:        req.SMSPhone,
		WhatsAppPhone:   req.WhatsAppPhone,
		EmailAddress:    req.EmailAddress,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, settings)
}

// CreateTemplate godoc
// @Summary  Create a notification template
// @Tags     notifications
// @Router   /notifications/templates [post]
func (h *NotificationHandler) CreateTemplate(c *gin.Context) {
	var req TemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	template, err := h.templateService.Create(c.Request.Context(), toTemplateInput(req))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, template)
}

// UpdateTemplate godoc
// @Summary  Update a notification template
// @Tags     notifications
// @Router   /notifications/templates/{id} [put]
func (h *NotificationHandler) UpdateTemplate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid template ID")
		return
	}

	var req TemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	template, err := h.templateService.Update(c.Request.Context(), id, toTemplateInput(req))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, template)
}

// ListTemplates godoc
// @Summary  List notification templates
// @Tags     notifications
// @Router   /notifications/templates [get]
func (h *NotificationHandler) ListTemplates(c *gin.Context) {
	templates, err := h.templateService.List(c.Request.Context(), parseFilter(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, templates)
}

// GetTemplate godoc
// @Summary  Get a notification template
// @Tags     notifications
// @Router   /notifications/templates/{id} [get]
func (h *NotificationHandler) GetTemplate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid template ID")
		return
	}

	template, err := h.templateService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, template)
}

// DeleteTemplate godoc
// @Summary  Delete a notification template
// @Tags     notifications
// @Router   /notifications/templates/{id} [delete]
func (h *NotificationHandler) DeleteTemplate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid template ID")
		return
	}

	if err := h.templateService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

func toTemplateInput(req TemplateRequest) appnotification.TemplateInput {
	return appnotification.TemplateInput{
		Name:    req.Name,
		Type:    notification.Type(req.Type),
		Channel: notification.Channel(req.Channel),
		Subject: req.Subject,
		Body:    req.Body,
	}
}
