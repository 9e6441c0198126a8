package messageValidator

import (
	"kmatch/middleware"

	"github.com/gofiber/fiber/v2"
)

type SendMessageRequest struct {
	SenderProfileID    string `json:"senderProfileId"`
	RecipientProfileID string `json:"recipientProfileId"`
	Message            string `json:"message"`
}

// SendMessage validator middleware
func SendMessage() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(SendMessageRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.SenderProfileID == "" {
			errors["senderProfileId"] = "senderProfileId is required!"
		}
		if reqData.RecipientProfileID == "" {
			errors["recipientProfileId"] = "recipientProfileId is required!"
		}
		if reqData.Message == "" {
			errors["message"] = "message is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedSendMessage", reqData)
		return c.Next()
	}
}
