package interestRoutes

import (
	interestController "kmatch/controllers/interest"
	interestValidator "kmatch/validators/interest"

	"github.com/gofiber/fiber/v2"
)

func SetupInterestRoutes(app *fiber.App, ctl *interestController.Controller) {
	api := app.Group("/api")

	api.Post("/send-interest", interestValidator.SendInterest(), ctl.SendInterest)
	api.Delete("/remove-interest", interestValidator.RemoveInterest(), ctl.RemoveInterest)
	api.Delete("/remove-all-interests", interestValidator.RemoveAllInterests(), ctl.RemoveAllInterests)
	api.Post("/pass-profile", interestValidator.PassProfile(), ctl.PassProfile)
	api.Get("/interested-profiles", ctl.ListInterested)
	api.Get("/passed-profiles", ctl.ListPassed)
}
