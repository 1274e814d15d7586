package notification

import (
	"context"

	"github.com/flamenca/backend/internal/domain/notification"
	"github.com/flamenca/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Dispatcher routes notifications to the sender for their channel and keeps
// a delivery log of every attempt. The recipient is validated and the pending
// delivery row written before any provider call is made.
type Dispatcher struct {
	senders      map[notification.Channel]notification.Sender
	deliveryRepo notification.DeliveryRepository
	templateRepo notification.TemplateRepository
	logger       *zap.Logger
}

// NewDispatcher creates a dispatcher for the given senders
func NewDispatcher(
	senders []notification.Sender,
	deliveryRepo notification.DeliveryRepository,
	templateRepo notification.TemplateRepository,
	logger *zap.Logger,
) *Dispatcher {
	byChannel := make(map[notification.Channel]notification.Sender, len(senders))
	for _, s := range senders {
		byChannel[s.Channel()] = s
	}
	return &Dispatcher{
		senders:      byChannel,
		deliveryRepo: deliveryRepo,
		templateRepo: templateRepo,
		logger:       logger,
	}
}

// Send validates, records and delivers a single notification
func (d *Dispatcher) Send(ctx context.Context, input SendInput) (*SendResult, error) {
	msg := &notification.Message{
		Channel:   input.Channel,
		Type:      input.Type,
		Recipient: input.Recipient,
		Subject:   input.Subject,
		Body:      input.Body,
	}

	delivery, err := notification.NewDelivery(input.UserID, msg)
	if err != nil {
		d.logger.Warn("Rejected invalid notification",
			zap.String("channel", input.Channel.String()),
			zap.Error(err))
		return nil, err
	}

	sender, ok := d.senders[input.Channel]
	if !ok {
		return nil, shared.NewDomainError("CHANNEL_NOT_CONFIGURED", "No sender configured for channel "+input.Channel.String())
	}

	if err := d.deliveryRepo.Save(ctx, delivery); err != nil {
		d.logger.Error("Failed to record pending delivery", zap.Error(err))
		return nil, err
	}

	result, err := sender.Send(ctx, msg)
	if err != nil {
		delivery.MarkFailed(err.Error())
		if saveErr := d.deliveryRepo.Save(ctx, delivery); saveErr != nil {
			d.logger.Error("Failed to record failed delivery", zap.Error(saveErr))
		}
		d.logger.Warn("Notification send failed",
			zap.String("delivery_id", delivery.ID.String()),
			zap.String("channel", input.Channel.String()),
			zap.Error(err))
		return &SendResult{
			DeliveryID: delivery.ID,
			Status:     notification.DeliveryStatusFailed,
		}, err
	}

	delivery.MarkSent(result.ProviderMessageID, result.Simulated)
	if err := d.deliveryRepo.Save(ctx, delivery); err != nil {
		d.logger.Error("Failed to record sent delivery", zap.Error(err))
	}

	d.logger.Info("Notification sent",
		zap.String("delivery_id", delivery.ID.String()),
		zap.String("channel", input.Channel.String()),
		zap.String("type", input.Type.String()),
		zap.Bool("simulated", result.Simulated))

	return &SendResult{
		DeliveryID:        delivery.ID,
		Status:            notification.DeliveryStatusSent,
		ProviderMessageID: result.ProviderMessageID,
		Simulated:         result.Simulated,
	}, nil
}

// SendTemplate renders the stored template for the type and channel and sends
// the result. Missing template variables stay visible in the delivered text.
func (d *Dispatcher) SendTemplate(ctx context.Context, input SendTemplateInput) (*SendResult, error) {
	template, err := d.templateRepo.FindByTypeAndChannel(ctx, input.Type, input.Channel)
	if err != nil {
		return nil, shared.NewDomainError("TEMPLATE_NOT_FOUND", "No template for type "+input.Type.String()+" on channel "+input.Channel.String())
	}

	subject, body := template.RenderWith(input.Variables)
	return d.Send(ctx, SendInput{
		UserID:    input.UserID,
		Channel:   input.Channel,
		Type:      input.Type,
		Recipient: input.Recipient,
		Subject:   subject,
		Body:      body,
	})
}

// ListDeliveries returns recorded deliveries matching the filter
func (d *Dispatcher) ListDeliveries(ctx context.Context, filter shared.Filter) (*shared.Paginated[DeliveryInfo], error) {
	deliveries, err := d.deliveryRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := d.deliveryRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	infos := make([]DeliveryInfo, len(deliveries))
	for i, del := range deliveries {
		infos[i] = toDeliveryInfo(&del)
	}
	return shared.NewPaginated(infos, total, filter.Page, filter.PageSize), nil
}

// GetDelivery returns a single recorded delivery
func (d *Dispatcher) GetDelivery(ctx context.Context, id uuid.UUID) (*DeliveryInfo, error) {
	delivery, err := d.deliveryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	info := toDeliveryInfo(delivery)
	return &info, nil
}

func toDeliveryInfo(d *notification.Delivery) DeliveryInfo {
	return DeliveryInfo{
		ID:                d.ID,
		UserID:            d.UserID,
		Channel:           d.Channel,
		Type:              d.Type,
		Recipient:         d.Recipient,
		Subject:           d.Subject,
		Body:              d.Body,
		Status:            d.Status,
		ProviderMessageID: d.ProviderMessageID,
		ErrorMessage:      d.ErrorMessage,
		Simulated:         d.Simulated,
		SentAt:            d.SentAt,
		CreatedAt:         d.CreatedAt,
	}
}
