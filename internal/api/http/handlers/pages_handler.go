package handlers

import (
	"errors"
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/shri-jewellery/storefront/internal/api/dto"
	"github.com/shri-jewellery/storefront/internal/auth"
	"github.com/shri-jewellery/storefront/internal/service"
	apperrors "github.com/shri-jewellery/storefront/pkg/util/errorutil"
)

// Page paths used in redirects.
const (
	HomePath  = "/"
	LoginPath = "/login"
)

// PagesHandler serves the browser entry points as JSON views; markup is rendered client side.
type PagesHandler struct {
	auth    *service.AuthService
	catalog *service.CatalogService
	orders  *service.OrderService
}

// NewPagesHandler constructs handler.
func NewPagesHandler(authService *service.AuthService, catalog *service.CatalogService, orders *service.OrderService) *PagesHandler {
	return &PagesHandler{auth: authService, catalog: catalog, orders: orders}
}

// Home GET /. Mounted behind auth.RequireUser.
func (h *PagesHandler) Home(c *fiber.Ctx) error {
	user, _ := auth.UserFromContext(c)
	products := h.catalog.ListProducts(c.UserContext())
	items := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		items = append(items, dto.NewProductResponse(p))
	}
	return c.JSON(fiber.Map{"page": "home", "user": user, "products": items})
}

// Login GET /login.
func (h *PagesHandler) Login(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"page": "login", "send_otp": "/api/send-otp", "verify_otp": "/api/verify-otp"})
}

// Logout GET /logout.
func (h *PagesHandler) Logout(c *fiber.Ctx) error {
	if err := h.auth.Logout(c.UserContext(), auth.SessionIDFromContext(c)); err != nil {
		return err
	}
	return c.Redirect(LoginPath, fiber.StatusFound)
}

// OrderConfirmed GET /order/:id. Unknown orders send the browser home.
func (h *PagesHandler) OrderConfirmed(c *fiber.Ctx) error {
	order, err := h.orders.GetOrder(c.UserContext(), c.Params("id"))
	if err != nil {
		if isNotFound(err) {
			return c.Redirect(HomePath, fiber.StatusFound)
		}
		return err
	}
	return c.JSON(fiber.Map{"page": "order_confirmed", "order": dto.NewOrderResponse(order)})
}

// Track GET /track?order_id=.
func (h *PagesHandler) Track(c *fiber.Ctx) error {
	orderID := strings.TrimSpace(c.Query("order_id"))
	view := fiber.Map{"page": "track", "order_id": orderID}
	if orderID != "" {
		view["status_url"] = "/api/order/" + url.PathEscape(orderID) + "/status"
	}
	return c.JSON(view)
}

func isNotFound(err error) bool {
	var de *apperrors.DomainError
	return errors.As(err, &de) && de.Code == apperrors.CodeNotFound
}
