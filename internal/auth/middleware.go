package auth

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shri-jewellery/storefront/internal/domain"
)

const (
	sessionIDKey = "session_id"
	userKey      = "session_user"
)

// SessionMiddleware binds each request to a browser session id carried in a signed cookie.
type SessionMiddleware struct {
	tokens     *TokenManager
	cookieName string
	secure     bool
	logger     *zap.Logger
}

// NewSessionMiddleware constructs middleware.
func NewSessionMiddleware(tokens *TokenManager, cookieName string, secure bool, logger *zap.Logger) *SessionMiddleware {
	return &SessionMiddleware{tokens: tokens, cookieName: cookieName, secure: secure, logger: logger}
}

// Handle resolves the session id, issuing a fresh cookie for new or tampered sessions.
func (m *SessionMiddleware) Handle(c *fiber.Ctx) error {
	if raw := c.Cookies(m.cookieName); raw != "" {
		if claims, err := m.tokens.ParseToken(raw); err == nil {
			c.Locals(sessionIDKey, claims.SessionID)
			return c.Next()
		}
		m.logger.Debug("discarding invalid session cookie")
	}

	sessionID := uuid.NewString()
	token, expiresAt, err := m.tokens.GenerateToken(sessionID)
	if err != nil {
		return err
	}
	c.Cookie(&fiber.Cookie{
		Name:     m.cookieName,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HTTPOnly: true,
		Secure:   m.secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	c.Locals(sessionIDKey, sessionID)
	return c.Next()
}

// SessionIDFromContext returns the session id bound by SessionMiddleware.
func SessionIDFromContext(c *fiber.Ctx) string {
	id, _ := c.Locals(sessionIDKey).(string)
	return id
}

// UserLookup resolves the logged-in identity of a session.
type UserLookup interface {
	CurrentUser(ctx context.Context, sessionID string) (*domain.SessionUser, error)
}

// RequireUser redirects anonymous sessions to loginPath instead of failing the request.
func RequireUser(users UserLookup, loginPath string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := users.CurrentUser(c.UserContext(), SessionIDFromContext(c))
		if err != nil {
			return err
		}
		if user == nil {
			return c.Redirect(loginPath, fiber.StatusFound)
		}
		c.Locals(userKey, user)
		return c.Next()
	}
}

// UserFromContext returns the identity stored by RequireUser.
func UserFromContext(c *fiber.Ctx) (*domain.SessionUser, bool) {
	user, ok := c.Locals(userKey).(*domain.SessionUser)
	return user, ok && user != nil
}

