package handlers

import (
	"errors"

	"veye-site/internal/dto"
	"veye-site/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type ContactHandler struct {
	contactService *service.ContactService
	logger         *zap.Logger
}

func NewContactHandler(contactService *service.ContactService, logger *zap.Logger) *ContactHandler {
	return &ContactHandler{
		contactService: contactService,
		logger:         logger,
	}
}

// Submit godoc
// @Summary Submit a Start a Conversation lead
// @Description Validates the lead and emails it to the team
// @Tags contact
// @Accept json
// @Produce json
// @Param request body dto.ContactRequest true "Lead"
// @Success 200 {object} dto.ContactResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 502 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /api/contact [post]
func (h *ContactHandler) Submit(c *fiber.Ctx) error {
	if c.Method() != fiber.MethodPost {
		return c.Status(fiber.StatusMethodNotAllowed).JSON(fiber.Map{
			"error": "Method not allowed",
		})
	}

	var req dto.ContactRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	resp, err := h.contactService.Submit(c.UserContext(), &req)
	if err != nil {
		var verr *service.ValidationError
		switch {
		case errors.As(err, &verr):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error":  "Missing required fields",
				"fields": verr.Fields,
			})
		case errors.Is(err, service.ErrMailerNotConfigured):
			h.logger.Error("Contact form submitted but mailer is not configured", zap.String("request_id", requestID(c)))
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"error": "Contact form is not configured",
			})
		case errors.Is(err, service.ErrMailSend):
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
				"error": "Email send failed",
			})
		}
		h.logger.Error("Contact submission failed", zap.String("request_id", requestID(c)), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Contact submission failed",
		})
	}

	return c.JSON(resp)
}
