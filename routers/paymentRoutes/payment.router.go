package paymentRoutes

import (
	paymentController "kmatch/controllers/payment"
	paymentValidator "kmatch/validators/payment"

	"github.com/gofiber/fiber/v2"
)

func SetupPaymentRoutes(app *fiber.App, ctl *paymentController.Controller) {
	api := app.Group("/api")

	api.Post("/payment/initiate", paymentValidator.Initiate(), ctl.Initiate)
	api.Post("/payment/verify", paymentValidator.Verify(), ctl.Verify)
}
