package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shri-jewellery/storefront/internal/domain"
	"github.com/shri-jewellery/storefront/internal/events"
	"github.com/shri-jewellery/storefront/internal/repository"
	apperrors "github.com/shri-jewellery/storefront/pkg/util/errorutil"
)

// maxOrderIDAttempts bounds regeneration after an id collision.
const maxOrderIDAttempts = 5

func nowUTC() time.Time {
	return time.Now().UTC()
}

// OrderService coordinates the order lifecycle.
type OrderService struct {
	orders     repository.OrderRepository
	dispatcher events.Dispatcher
	random     io.Reader
	clock      func() time.Time
	logger     *zap.Logger
}

// OrderDependencies bundles requirements for the order service.
type OrderDependencies struct {
	OrderRepo  repository.OrderRepository
	Dispatcher events.Dispatcher
	// Random feeds order id generation; crypto/rand when nil.
	Random io.Reader
	Clock  func() time.Time
	Logger *zap.Logger
}

// OrderCreateInput describes an order creation payload. Email and Phone are optional.
type OrderCreateInput struct {
	Name    string
	Email   string
	Phone   string
	Address string
	Items   []domain.OrderItem
}

// NewOrderService constructs the service.
func NewOrderService(deps OrderDependencies) *OrderService {
	clock := deps.Clock
	if clock == nil {
		clock = nowUTC
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrderService{
		orders:     deps.OrderRepo,
		dispatcher: deps.Dispatcher,
		random:     defaultRandom(deps.Random),
		clock:      clock,
		logger:     logger,
	}
}

// CreateOrder persists a Confirmed order, then fires best-effort notifications.
func (s *OrderService) CreateOrder(ctx context.Context, input OrderCreateInput) (*domain.Order, error) {
	order := &domain.Order{
		Name:      strings.TrimSpace(input.Name),
		Email:     strings.TrimSpace(input.Email),
		Phone:     strings.TrimSpace(input.Phone),
		Address:   strings.TrimSpace(input.Address),
		Items:     append([]domain.OrderItem{}, input.Items...),
		Status:    domain.OrderStatusConfirmed,
		CreatedAt: s.clock().UTC(),
	}

	missing := make([]string, 0, 2)
	if order.Name == "" {
		missing = append(missing, "name")
	}
	if order.Address == "" {
		missing = append(missing, "address")
	}
	if len(missing) > 0 {
		return nil, apperrors.NewValidationError("missing required order fields", map[string]any{"fields": missing})
	}

	if err := s.insertWithFreshID(ctx, order); err != nil {
		return nil, err
	}

	s.publish(ctx, events.Event{
		Type:    events.EventOrderCreated,
		Subject: order.ID,
		Payload: events.OrderCreatedPayload{
			Name:  order.Name,
			Email: order.Email,
			Phone: order.Phone,
			Total: order.Total(),
		},
	})
	return order, nil
}

func (s *OrderService) insertWithFreshID(ctx context.Context, order *domain.Order) error {
	for attempt := 0; attempt < maxOrderIDAttempts; attempt++ {
		id, err := generateOrderID(s.random)
		if err != nil {
			return apperrors.NewInternalError(err)
		}
		order.ID = id
		err = s.orders.Create(ctx, order)
		if errors.Is(err, repository.ErrDuplicateID) {
			s.logger.Warn("order id collision; regenerating", zap.String("order_id", id))
			continue
		}
		return err
	}
	return apperrors.NewInternalError(errors.New("could not allocate a unique order id"))
}

// GetOrder returns the full order record.
func (s *OrderService) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, mapOrderErr(err, id)
	}
	return order, nil
}

// GetStatus returns only the lifecycle status.
func (s *OrderService) GetStatus(ctx context.Context, id string) (domain.OrderStatus, error) {
	order, err := s.GetOrder(ctx, id)
	if err != nil {
		return "", err
	}
	return order.Status, nil
}

// MarkDelivered moves the order to Delivered. Repeated calls re-confirm Delivered.
func (s *OrderService) MarkDelivered(ctx context.Context, id string) (domain.OrderStatus, error) {
	order, changed, err := s.orders.MarkDelivered(ctx, id)
	if err != nil {
		return "", mapOrderErr(err, id)
	}
	if changed {
		s.publish(ctx, events.Event{
			Type:    events.EventOrderDelivered,
			Subject: order.ID,
			Payload: events.OrderDeliveredPayload{
				Name:  order.Name,
				Email: order.Email,
				Phone: order.Phone,
			},
		})
	}
	return order.Status, nil
}

func (s *OrderService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	event.ID = uuid.NewString()
	event.Timestamp = s.clock().UTC()
	_ = s.dispatcher.Publish(ctx, event)
}

func mapOrderErr(err error, id string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.NewNotFound("order", map[string]any{"order_id": id})
	}
	return err
}
