package profileRoutes

import (
	profileController "kmatch/controllers/profile"
	profileValidator "kmatch/validators/profile"

	"github.com/gofiber/fiber/v2"
)

func SetupProfileRoutes(app *fiber.App, ctl *profileController.Controller) {
	api := app.Group("/api")

	api.Get("/profiles", ctl.ListProfiles)
	api.Get("/profiles/:id", ctl.GetProfileByID)
	api.Get("/user-profile", ctl.GetUserProfile)
	api.Put("/update-profile", profileValidator.UpdateProfile(), ctl.UpdateProfile)
	api.Get("/recent-matches", ctl.RecentMatches)
	api.Get("/user/stats", ctl.UserStats)
}
