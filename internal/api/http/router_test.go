package http

import (
	"context"
	"encoding/json"
	"io"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/shri-jewellery/storefront/internal/api/http/handlers"
	"github.com/shri-jewellery/storefront/internal/auth"
	"github.com/shri-jewellery/storefront/internal/config"
	"github.com/shri-jewellery/storefront/internal/events"
	"github.com/shri-jewellery/storefront/internal/integration"
	"github.com/shri-jewellery/storefront/internal/observability"
	"github.com/shri-jewellery/storefront/internal/repository"
	"github.com/shri-jewellery/storefront/internal/service"
)

const productsFixture = "../../../data/products.json"

type client struct {
	t      *testing.T
	app    *fiber.App
	cookie *stdhttp.Cookie
}

func newTestClient(t *testing.T) *client {
	t.Helper()
	ctx := context.Background()
	logger := zap.NewNop()
	metrics := observability.NewMetrics()

	products, err := repository.NewProductRepository(ctx, repository.NewJSONProductSource(productsFixture))
	require.NoError(t, err)

	dispatcher := events.NewInMemoryDispatcher(logger)
	service.NewNotificationService(service.NotificationDependencies{
		Dispatcher: dispatcher,
		Email:      integration.NewEmailSender(config.MailConfig{}),
		SMS:        integration.NewSMSSender(config.SMSConfig{}),
		Metrics:    metrics,
		Logger:     logger,
	}).RegisterHandlers()

	catalog := service.NewCatalogService(products)
	authService := service.NewAuthService(service.AuthDependencies{
		SessionRepo: repository.NewMemorySessionRepository(),
		Dispatcher:  dispatcher,
		OTPCost:     bcrypt.MinCost,
	})
	orders := service.NewOrderService(service.OrderDependencies{
		OrderRepo:  repository.NewMemoryOrderRepository(),
		Dispatcher: dispatcher,
		Logger:     logger,
	})
	images := service.NewImageService(integration.NewImageSearcher(config.ImagesConfig{}), logger)
	chat := service.NewChatService(integration.NewTextGenerator(config.ChatConfig{}), logger)

	app := fiber.New()
	RegisterMiddlewares(app, logger, metrics, 5*time.Second)
	RegisterRoutes(app, RouteConfig{
		Health:    handlers.NewHealthHandler("storefront", "test", nil, nil),
		Metrics:   handlers.NewMetricsHandler(metrics),
		Pages:     handlers.NewPagesHandler(authService, catalog, orders),
		Catalog:   handlers.NewCatalogHandler(catalog),
		Auth:      handlers.NewAuthHandler(authService),
		Orders:    handlers.NewOrdersHandler(orders),
		Assistant: handlers.NewAssistantHandler(images, chat),
		Sessions:  auth.NewSessionMiddleware(auth.NewTokenManager("test-secret", time.Hour), "session", false, logger),
		Users:     authService,
	})
	return &client{t: t, app: app}
}

// do sends a request and keeps the session cookie like a browser would.
func (c *client) do(method, target string, payload any) (*stdhttp.Response, map[string]any) {
	c.t.Helper()
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(c.t, err)
		body = strings.NewReader(string(raw))
	}
	req := httptest.NewRequest(method, target, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.cookie != nil {
		req.AddCookie(c.cookie)
	}
	resp, err := c.app.Test(req, -1)
	require.NoError(c.t, err)
	for _, ck := range resp.Cookies() {
		if ck.Name == "session" {
			c.cookie = ck
		}
	}

	raw, err := io.ReadAll(resp.Body)
	require.NoError(c.t, err)
	var decoded map[string]any
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(c.t, json.Unmarshal(raw, &decoded))
	}
	return resp, decoded
}

func errorCode(body map[string]any) string {
	errObj, _ := body["error"].(map[string]any)
	code, _ := errObj["code"].(string)
	return code
}

func TestHealthProbes(t *testing.T) {
	c := newTestClient(t)

	resp, body := c.do(stdhttp.MethodGet, "/health/live", nil)
	assert.Equal(t, stdhttp.StatusOK, resp.StatusCode)
	assert.Equal(t, "alive", body["status"])
	assert.NotEmpty(t, resp.Header.Get(RequestIDHeader))

	resp, body = c.do(stdhttp.MethodGet, "/health/ready", nil)
	assert.Equal(t, stdhttp.StatusOK, resp.StatusCode)
	deps := body["dependencies"].(map[string]any)
	assert.Equal(t, "disabled", deps["postgres"])
	assert.Equal(t, "disabled", deps["redis"])
}

func TestLoginFlow(t *testing.T) {
	c := newTestClient(t)

	resp, _ := c.do(stdhttp.MethodGet, "/", nil)
	assert.Equal(t, stdhttp.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))
	require.NotNil(t, c.cookie)

	resp, body := c.do(stdhttp.MethodPost, "/api/send-otp", map[string]string{"phone": "12345"})
	assert.Equal(t, stdhttp.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION_FAILED", errorCode(body))

	resp, body = c.do(stdhttp.MethodPost, "/api/send-otp", map[string]string{"phone": "9019231931"})
	require.Equal(t, stdhttp.StatusOK, resp.StatusCode)
	code, _ := body["mock_otp"].(string)
	require.Len(t, code, 6)

	wrong := "123456"
	if code == wrong {
		wrong = "654321"
	}
	resp, body = c.do(stdhttp.MethodPost, "/api/verify-otp", map[string]string{"phone": "9019231931", "otp": wrong})
	assert.Equal(t, stdhttp.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_OTP", errorCode(body))

	resp, body = c.do(stdhttp.MethodPost, "/api/verify-otp", map[string]string{"phone": "9019231931", "otp": code + "\u0000" + code})
	assert.Equal(t, stdhttp.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_OTP", errorCode(body))

	resp, body = c.do(stdhttp.MethodPost, "/api/verify-otp", map[string]string{"phone": "9019231931", "otp": code})
	require.Equal(t, stdhttp.StatusOK, resp.StatusCode)
	assert.Equal(t, "Login successful", body["message"])

	resp, body = c.do(stdhttp.MethodGet, "/", nil)
	require.Equal(t, stdhttp.StatusOK, resp.StatusCode)
	assert.Equal(t, "9019231931", body["user"].(map[string]any)["phone"])
	assert.NotEmpty(t, body["products"])

	resp, _ = c.do(stdhttp.MethodGet, "/logout", nil)
	assert.Equal(t, stdhttp.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))

	resp, _ = c.do(stdhttp.MethodGet, "/", nil)
	assert.Equal(t, stdhttp.StatusFound, resp.StatusCode)
}

func TestOrderLifecycle(t *testing.T) {
	c := newTestClient(t)

	resp, body := c.do(stdhttp.MethodPost, "/api/order", map[string]any{
		"name":    "Asha",
		"email":   "asha@example.com",
		"phone":   "9019231931",
		"address": "Chinya, Mandya",
		"items":   []map[string]any{{"id": "g-ring-w", "grams": 5, "qty": 1, "price": 32500}},
	})
	require.Equal(t, stdhttp.StatusCreated, resp.StatusCode)
	orderID := body["order_id"].(string)
	assert.Len(t, orderID, 10)
	assert.Equal(t, "/track?order_id="+orderID, body["track_url"])

	resp, body = c.do(stdhttp.MethodGet, "/api/order/"+orderID, nil)
	require.Equal(t, stdhttp.StatusOK, resp.StatusCode)
	assert.Equal(t, "Asha", body["name"])
	assert.EqualValues(t, 32500, body["total"])
	_, err := time.Parse(time.RFC3339, body["created_at"].(string))
	assert.NoError(t, err)

	resp, body = c.do(stdhttp.MethodGet, "/api/order/"+orderID+"/status", nil)
	require.Equal(t, stdhttp.StatusOK, resp.StatusCode)
	assert.Equal(t, "Confirmed", body["status"])
	assert.Equal(t, orderID, body["order_id"])

	for i := 0; i < 2; i++ {
		resp, body = c.do(stdhttp.MethodPost, "/api/order/"+orderID+"/mark_delivered", nil)
		require.Equal(t, stdhttp.StatusOK, resp.StatusCode)
		assert.Equal(t, true, body["ok"])
		assert.Equal(t, "Delivered", body["status"])
	}

	resp, body = c.do(stdhttp.MethodGet, "/order/"+orderID, nil)
	require.Equal(t, stdhttp.StatusOK, resp.StatusCode)
	assert.Equal(t, "order_confirmed", body["page"])

	resp, body = c.do(stdhttp.MethodGet, "/track?order_id="+orderID, nil)
	require.Equal(t, stdhttp.StatusOK, resp.StatusCode)
	assert.Equal(t, "/api/order/"+orderID+"/status", body["status_url"])
}

func TestOrderValidationAndNotFound(t *testing.T) {
	c := newTestClient(t)

	resp, body := c.do(stdhttp.MethodPost, "/api/order", map[string]any{"email": "x@example.com"})
	assert.Equal(t, stdhttp.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION_FAILED", errorCode(body))

	for _, target := range []string{"/api/order/MISSING000", "/api/order/MISSING000/status"} {
		resp, body = c.do(stdhttp.MethodGet, target, nil)
		assert.Equal(t, stdhttp.StatusNotFound, resp.StatusCode, target)
		assert.Equal(t, "NOT_FOUND", errorCode(body))
	}
	resp, _ = c.do(stdhttp.MethodPost, "/api/order/MISSING000/mark_delivered", nil)
	assert.Equal(t, stdhttp.StatusNotFound, resp.StatusCode)

	resp, _ = c.do(stdhttp.MethodGet, "/order/MISSING000", nil)
	assert.Equal(t, stdhttp.StatusFound, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))
}

func TestCatalogEndpoints(t *testing.T) {
	c := newTestClient(t)

	req := httptest.NewRequest(stdhttp.MethodGet, "/api/products", nil)
	resp, err := c.app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, stdhttp.StatusOK, resp.StatusCode)
	var products []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&products))
	require.NotEmpty(t, products)
	assert.Equal(t, "g-ring-w", products[0]["id"])

	resp2, body := c.do(stdhttp.MethodGet, "/api/products/g-ring-w", nil)
	require.Equal(t, stdhttp.StatusOK, resp2.StatusCode)
	assert.EqualValues(t, 5, body["min_grams"])
	assert.EqualValues(t, 32500, body["min_price"])

	resp2, _ = c.do(stdhttp.MethodGet, "/api/products/nope", nil)
	assert.Equal(t, stdhttp.StatusNotFound, resp2.StatusCode)
}

func TestAssistantEndpoints(t *testing.T) {
	c := newTestClient(t)

	resp, body := c.do(stdhttp.MethodGet, "/api/unsplash?q=gold+ring", nil)
	require.Equal(t, stdhttp.StatusOK, resp.StatusCode)
	assert.Equal(t, "https://source.unsplash.com/500x500/?jewelry,gold,ring", body["url"])

	resp, _ = c.do(stdhttp.MethodGet, "/api/unsplash?q=%20", nil)
	assert.Equal(t, stdhttp.StatusBadRequest, resp.StatusCode)

	resp, body = c.do(stdhttp.MethodPost, "/api/chat", map[string]string{"message": "What is the delivery time?"})
	require.Equal(t, stdhttp.StatusOK, resp.StatusCode)
	assert.Contains(t, body["reply"], "3-7 business days")

	resp, body = c.do(stdhttp.MethodPost, "/api/chat", map[string]string{"message": ""})
	require.Equal(t, stdhttp.StatusOK, resp.StatusCode)
	assert.Equal(t, "Please ask me something about our jewelry collection!", body["reply"])
}

func TestUnknownRouteUsesErrorEnvelope(t *testing.T) {
	c := newTestClient(t)

	resp, body := c.do(stdhttp.MethodGet, "/nope", nil)
	assert.Equal(t, stdhttp.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", errorCode(body))

	_, metrics := c.do(stdhttp.MethodGet, "/metrics", nil)
	assert.NotEmpty(t, metrics["requests"])
}

func TestRequestIDIsEchoed(t *testing.T) {
	c := newTestClient(t)

	req := httptest.NewRequest(stdhttp.MethodGet, "/health/live", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	resp, err := c.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, "abc-123", resp.Header.Get(RequestIDHeader))
}
