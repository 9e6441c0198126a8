package main

import (
	"log"

	"kmatch/config"
	authController "kmatch/controllers/auth"
	interestController "kmatch/controllers/interest"
	messageController "kmatch/controllers/message"
	paymentController "kmatch/controllers/payment"
	profileController "kmatch/controllers/profile"
	reportController "kmatch/controllers/report"
	"kmatch/database"
	authRoutes "kmatch/routers/authRoutes"
	interestRoutes "kmatch/routers/interestRoutes"
	messageRoutes "kmatch/routers/messageRoutes"
	paymentRoutes "kmatch/routers/paymentRoutes"
	profileRoutes "kmatch/routers/profileRoutes"
	reportRoutes "kmatch/routers/reportRoutes"
	"kmatch/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadConfig()

	db := database.ConnectDb()

	mailer := utils.NewSMTPMailer(
		config.AppConfig.SMTPHost,
		config.AppConfig.SMTPPort,
		config.AppConfig.EmailSender,
		config.AppConfig.Password,
	)
	gateway := utils.NewRazorpayClient(
		config.AppConfig.RazorpayKeyID,
		config.AppConfig.RazorpaySecret,
		config.AppConfig.RazorpayApiURL,
	)

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE",        // Allowed HTTP methods
		AllowHeaders: "Content-Type,Authorization", // Allowed headers
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	authRoutes.SetupAuthRoutes(app, authController.New(db, mailer))
	profileRoutes.SetupProfileRoutes(app, profileController.New(db))
	interestRoutes.SetupInterestRoutes(app, interestController.New(db))
	paymentRoutes.SetupPaymentRoutes(app, paymentController.New(db, gateway))
	reportRoutes.SetupReportRoutes(app, reportController.New(db))
	messageRoutes.SetupMessageRoutes(app, messageController.New(db))

	scheduler := utils.NewReminderScheduler(db, mailer)
	scheduler.Start()
	defer scheduler.Stop()

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
