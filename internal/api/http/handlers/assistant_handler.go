package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/shri-jewellery/storefront/internal/api/dto"
	"github.com/shri-jewellery/storefront/internal/service"
	apperrors "github.com/shri-jewellery/storefront/pkg/util/errorutil"
)

// AssistantHandler serves the image lookup proxy and the chat helper.
// Neither endpoint surfaces upstream failures.
type AssistantHandler struct {
	images *service.ImageService
	chat   *service.ChatService
}

// NewAssistantHandler constructs handler.
func NewAssistantHandler(images *service.ImageService, chat *service.ChatService) *AssistantHandler {
	return &AssistantHandler{images: images, chat: chat}
}

// LookupImage GET /api/unsplash?q=.
func (h *AssistantHandler) LookupImage(c *fiber.Ctx) error {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		return apperrors.NewValidationError("missing q", nil)
	}
	return c.JSON(dto.ImageResponse{URL: h.images.Lookup(c.UserContext(), q)})
}

// Chat POST /api/chat. Malformed bodies are treated as an empty message.
func (h *AssistantHandler) Chat(c *fiber.Ctx) error {
	var req dto.ChatRequest
	_ = c.BodyParser(&req)
	return c.JSON(dto.ChatResponse{Reply: h.chat.Reply(c.UserContext(), req.Message)})
}
