package handlers

import "github.com/gofiber/fiber/v2"

// requestID returns the id set by the requestid middleware, if any.
func requestID(c *fiber.Ctx) string {
	id, _ := c.Locals("requestid").(string)
	return id
}
