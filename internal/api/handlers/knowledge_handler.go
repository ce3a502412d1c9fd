package handlers

import (
	"veye-site/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type KnowledgeHandler struct {
	chatService *service.ChatService
	logger      *zap.Logger
}

func NewKnowledgeHandler(chatService *service.ChatService, logger *zap.Logger) *KnowledgeHandler {
	return &KnowledgeHandler{
		chatService: chatService,
		logger:      logger,
	}
}

// Health godoc
// @Summary Knowledge document health
// @Description Reports the version of the knowledge document being served
// @Tags knowledge
// @Produce json
// @Success 200 {object} dto.KnowledgeHealthResponse
// @Failure 500 {object} map[string]interface{}
// @Router /api/knowledge-health [get]
func (h *KnowledgeHandler) Health(c *fiber.Ctx) error {
	health, err := h.chatService.KnowledgeHealth(c.UserContext())
	if err != nil {
		h.logger.Error("Knowledge health check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"ok":    false,
			"error": err.Error(),
		})
	}
	return c.JSON(health)
}
