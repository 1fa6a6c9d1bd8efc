package response

import (
	"github.com/gofiber/fiber/v2"
)

// Body is the uniform response envelope: {success, message?, count?, data?}.
type Body struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Count   *int        `json:"count,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// Success sends a 200 OK response in the standard envelope.
func Success(c *fiber.Ctx, message string, data interface{}) error {
	return c.Status(fiber.StatusOK).JSON(Body{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// SuccessCreated sends a 201 Created response in the standard envelope.
func SuccessCreated(c *fiber.Ctx, message string, data interface{}) error {
	return c.Status(fiber.StatusCreated).JSON(Body{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// SuccessList sends a 200 OK response carrying a collection plus its count.
func SuccessList(c *fiber.Ctx, message string, data interface{}, count int) error {
	return c.Status(fiber.StatusOK).JSON(Body{
		Success: true,
		Message: message,
		Count:   &count,
		Data:    data,
	})
}

// Error sends an error response in the standard envelope. The message is the
// client-facing text; internal causes are logged by the caller, never sent.
func Error(c *fiber.Ctx, message string, statusCode int) error {
	return c.Status(statusCode).JSON(Body{
		Success: false,
		Message: message,
	})
}

// Unauthorized sends 401 in the same envelope as other errors, for use by the
// auth middleware so every failure looks the same to clients.
func Unauthorized(c *fiber.Ctx, message string) error {
	return Error(c, message, fiber.StatusUnauthorized)
}
