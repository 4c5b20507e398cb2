package handlers

import (
	"net/url"

	"github.com/gofiber/fiber/v2"

	"github.com/shri-jewellery/storefront/internal/api/dto"
	"github.com/shri-jewellery/storefront/internal/service"
	apperrors "github.com/shri-jewellery/storefront/pkg/util/errorutil"
)

// OrdersHandler manages order endpoints.
type OrdersHandler struct {
	service *service.OrderService
}

// NewOrdersHandler constructs handler.
func NewOrdersHandler(orderService *service.OrderService) *OrdersHandler {
	return &OrdersHandler{service: orderService}
}

// CreateOrder POST /api/order.
func (h *OrdersHandler) CreateOrder(c *fiber.Ctx) error {
	var req dto.CreateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	order, err := h.service.CreateOrder(c.UserContext(), service.OrderCreateInput{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
		Items:   req.DomainItems(),
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.CreateOrderResponse{
		OrderID:  order.ID,
		TrackURL: TrackURL(order.ID),
	})
}

// GetOrder GET /api/order/:id.
func (h *OrdersHandler) GetOrder(c *fiber.Ctx) error {
	order, err := h.service.GetOrder(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewOrderResponse(order))
}

// GetStatus GET /api/order/:id/status.
func (h *OrdersHandler) GetStatus(c *fiber.Ctx) error {
	id := c.Params("id")
	status, err := h.service.GetStatus(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(dto.OrderStatusResponse{OrderID: id, Status: status})
}

// MarkDelivered POST /api/order/:id/mark_delivered.
func (h *OrdersHandler) MarkDelivered(c *fiber.Ctx) error {
	status, err := h.service.MarkDelivered(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.MarkDeliveredResponse{OK: true, Status: status})
}

// TrackURL is the tracking page link for an order.
func TrackURL(orderID string) string {
	return "/track?" + url.Values{"order_id": {orderID}}.Encode()
}
