package authRoutes

import (
	authController "kmatch/controllers/auth"
	"kmatch/middleware"
	authValidator "kmatch/validators/auth"
	profileValidator "kmatch/validators/profile"

	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoutes(app *fiber.App, ctl *authController.Controller) {
	api := app.Group("/api")

	api.Post("/send-email-otp", authValidator.SendEmailOTP(), ctl.SendEmailOTP)
	api.Post("/verify-email-otp", authValidator.VerifyEmailOTP(), ctl.VerifyEmailOTP)
	api.Post("/create-profile", profileValidator.CreateProfile(), ctl.CreateProfile)
	api.Post("/login", authValidator.Login(), ctl.Login)
	api.Get("/me", middleware.JWTMiddleware, ctl.Me)
}
