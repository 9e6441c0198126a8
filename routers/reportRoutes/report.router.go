package reportRoutes

import (
	reportController "kmatch/controllers/report"
	reportValidator "kmatch/validators/report"

	"github.com/gofiber/fiber/v2"
)

func SetupReportRoutes(app *fiber.App, ctl *reportController.Controller) {
	api := app.Group("/api")

	api.Post("/report-profile", reportValidator.SubmitReport(), ctl.Submit)
	api.Get("/reports", ctl.List)
}
