package messageRoutes

import (
	messageController "kmatch/controllers/message"
	messageValidator "kmatch/validators/message"

	"github.com/gofiber/fiber/v2"
)

func SetupMessageRoutes(app *fiber.App, ctl *messageController.Controller) {
	api := app.Group("/api")

	api.Post("/messages", messageValidator.SendMessage(), ctl.Send)
	api.Get("/messages", ctl.List)
}
