package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/shri-jewellery/storefront/internal/events"
	"github.com/shri-jewellery/storefront/internal/integration"
	"github.com/shri-jewellery/storefront/internal/observability"
)

// NotificationService sends best-effort email and SMS messages for domain events.
// Nothing it does can fail the operation that triggered it.
type NotificationService struct {
	dispatcher events.Dispatcher
	email      integration.EmailSender
	sms        integration.SMSSender
	metrics    *observability.Metrics
	logger     *zap.Logger
}

// NotificationDependencies bundles the outbound channels.
type NotificationDependencies struct {
	Dispatcher events.Dispatcher
	Email      integration.EmailSender
	SMS        integration.SMSSender
	Metrics    *observability.Metrics
	Logger     *zap.Logger
}

// NewNotificationService creates the service.
func NewNotificationService(deps NotificationDependencies) *NotificationService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationService{
		dispatcher: deps.Dispatcher,
		email:      deps.Email,
		sms:        deps.SMS,
		metrics:    deps.Metrics,
		logger:     logger,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventOrderCreated, n.handleOrderCreated)
	n.dispatcher.Subscribe(events.EventOrderDelivered, n.handleOrderDelivered)
	n.dispatcher.Subscribe(events.EventOTPIssued, n.handleOTPIssued)
}

// SendEmail delivers an email and reports success. Errors and panics are absorbed.
func (n *NotificationService) SendEmail(ctx context.Context, to, subject, body string) (ok bool) {
	if n.email == nil {
		return false
	}
	defer n.absorb("email", to, &ok)
	err := n.email.SendEmail(ctx, to, subject, body)
	return n.report("email", to, err)
}

// SendSMS delivers a text message and reports success. Errors and panics are absorbed.
func (n *NotificationService) SendSMS(ctx context.Context, to, body string) (ok bool) {
	if n.sms == nil {
		return false
	}
	defer n.absorb("sms", to, &ok)
	err := n.sms.SendSMS(ctx, to, body)
	return n.report("sms", to, err)
}

func (n *NotificationService) report(channel, to string, err error) bool {
	if errors.Is(err, integration.ErrDisabled) {
		n.logger.Debug("notification channel disabled", zap.String("channel", channel))
		return false
	}
	if err != nil {
		n.logger.Info("notification not delivered",
			zap.String("channel", channel),
			zap.String("to", to),
			zap.Error(err))
		n.metrics.RecordNotification(channel, false)
		return false
	}
	n.metrics.RecordNotification(channel, true)
	return true
}

func (n *NotificationService) absorb(channel, to string, ok *bool) {
	if r := recover(); r != nil {
		n.logger.Error("notification panic", zap.String("channel", channel), zap.String("to", to), zap.Any("panic", r))
		n.metrics.RecordNotification(channel, false)
		*ok = false
	}
}

func (n *NotificationService) handleOrderCreated(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.OrderCreatedPayload)
	if !ok {
		return fmt.Errorf("unexpected payload %T", event.Payload)
	}
	n.logger.Info("OrderCreated", zap.String("order_id", event.Subject))
	if payload.Email != "" {
		n.SendEmail(ctx, payload.Email,
			fmt.Sprintf("Order %s Confirmed", event.Subject),
			fmt.Sprintf("Thank you %s! Your order %s is confirmed.", payload.Name, event.Subject))
	}
	if payload.Phone != "" {
		n.SendSMS(ctx, payload.Phone,
			fmt.Sprintf("Order %s confirmed. Thank you for shopping with us!", event.Subject))
	}
	return nil
}

func (n *NotificationService) handleOrderDelivered(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.OrderDeliveredPayload)
	if !ok {
		return fmt.Errorf("unexpected payload %T", event.Payload)
	}
	n.logger.Info("OrderDelivered", zap.String("order_id", event.Subject))
	if payload.Phone != "" {
		n.SendSMS(ctx, payload.Phone,
			fmt.Sprintf("Order %s has been delivered. Thank you for shopping with us!", event.Subject))
	}
	return nil
}

func (n *NotificationService) handleOTPIssued(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.OTPIssuedPayload)
	if !ok {
		return fmt.Errorf("unexpected payload %T", event.Payload)
	}
	n.SendSMS(ctx, payload.Phone, fmt.Sprintf("Your Shri Jewellery login code is %s.", payload.Code))
	return nil
}
