package handlers

import (
	"errors"

	"veye-site/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type LeadHandler struct {
	contactService *service.ContactService
	logger         *zap.Logger
}

func NewLeadHandler(contactService *service.ContactService, logger *zap.Logger) *LeadHandler {
	return &LeadHandler{
		contactService: contactService,
		logger:         logger,
	}
}

// ListLeads godoc
// @Summary List leads
// @Description Stored contact submissions, newest first
// @Tags admin
// @Produce json
// @Security Bearer
// @Param limit query int false "Limit" default(50)
// @Param offset query int false "Offset" default(0)
// @Success 200 {object} dto.LeadListResponse
// @Failure 401 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /api/v1/admin/leads [get]
func (h *LeadHandler) ListLeads(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 0)
	offset := c.QueryInt("offset", 0)

	resp, err := h.contactService.ListLeads(c.UserContext(), limit, offset)
	if err != nil {
		if errors.Is(err, service.ErrLeadStoreDisabled) {
			return storageDisabled(c)
		}
		h.logger.Error("Failed to list leads", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list leads",
		})
	}

	return c.JSON(resp)
}
