package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/shri-jewellery/storefront/internal/api/dto"
	"github.com/shri-jewellery/storefront/internal/auth"
	"github.com/shri-jewellery/storefront/internal/service"
	apperrors "github.com/shri-jewellery/storefront/pkg/util/errorutil"
)

// AuthHandler exposes the OTP login endpoints.
type AuthHandler struct {
	service *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{service: authService}
}

// SendOTP POST /api/send-otp.
func (h *AuthHandler) SendOTP(c *fiber.Ctx) error {
	var req dto.SendOTPRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	code, err := h.service.RequestOTP(c.UserContext(), auth.SessionIDFromContext(c), req.Phone)
	if err != nil {
		return err
	}
	return c.JSON(dto.SendOTPResponse{MockOTP: code})
}

// VerifyOTP POST /api/verify-otp.
func (h *AuthHandler) VerifyOTP(c *fiber.Ctx) error {
	var req dto.VerifyOTPRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if _, err := h.service.VerifyOTP(c.UserContext(), auth.SessionIDFromContext(c), req.Phone, req.OTP); err != nil {
		return err
	}
	return c.JSON(dto.VerifyOTPResponse{Message: "Login successful"})
}
