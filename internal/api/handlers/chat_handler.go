package handlers

import (
	"veye-site/internal/dto"
	"veye-site/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type ChatHandler struct {
	chatService *service.ChatService
	logger      *zap.Logger
}

func NewChatHandler(chatService *service.ChatService, logger *zap.Logger) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
		logger:      logger,
	}
}

// Chat godoc
// @Summary Ask the site assistant
// @Description Answers a visitor message from the knowledge document. Always responds 200 with JSON; other methods get a handoff reply.
// @Tags chat
// @Accept json
// @Produce json
// @Param request body dto.ChatRequest true "Visitor message"
// @Success 200 {object} dto.ChatResponse
// @Router /api/chat [post]
func (h *ChatHandler) Chat(c *fiber.Ctx) error {
	if c.Method() != fiber.MethodPost {
		return c.JSON(h.chatService.MethodNotAllowed())
	}

	var req dto.ChatRequest
	if err := c.BodyParser(&req); err != nil {
		// An unreadable body is treated as an empty message.
		h.logger.Debug("Unreadable chat body", zap.String("request_id", requestID(c)), zap.Error(err))
	}

	resp := h.chatService.Reply(c.UserContext(), req.Message)

	h.logger.Info("Chat reply",
		zap.String("request_id", requestID(c)),
		zap.Bool("handoff", resp.IsHandoff),
		zap.String("href", resp.Href),
	)

	return c.JSON(resp)
}

// RateLimited keeps the widget contract: a 200 handoff reply instead of 429.
func (h *ChatHandler) RateLimited(c *fiber.Ctx) error {
	h.logger.Warn("Chat rate limit reached", zap.String("ip", c.IP()))
	return c.JSON(h.chatService.RateLimited())
}
