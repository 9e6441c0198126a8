package paymentValidator

import (
	"strings"

	"kmatch/middleware"
	"kmatch/models"

	"github.com/gofiber/fiber/v2"
)

type InitiateRequest struct {
	Plan   string `json:"plan"`
	Price  int    `json:"price"`
	UserID string `json:"userId"`
}

// Initiate validator middleware
func Initiate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(InitiateRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.UserID == "" {
			errors["userId"] = "userId is required!"
		}

		plan := strings.ToLower(reqData.Plan)
		if plan == "" {
			errors["plan"] = "plan is required!"
		} else if plan != models.TierPremium && plan != models.TierPremiumPlus {
			errors["plan"] = "Invalid plan specified!"
		}

		if reqData.Price <= 0 {
			errors["price"] = "Invalid price value!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		reqData.Plan = plan
		c.Locals("validatedInitiate", reqData)
		return c.Next()
	}
}

type VerifyRequest struct {
	RazorpayOrderID   string `json:"razorpay_order_id"`
	RazorpayPaymentID string `json:"razorpay_payment_id"`
	RazorpaySignature string `json:"razorpay_signature"`
	PaymentID         uint   `json:"paymentId"`
}

// Verify validator middleware
func Verify() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(VerifyRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.RazorpayOrderID == "" {
			errors["razorpay_order_id"] = "razorpay_order_id is required!"
		}
		if reqData.RazorpayPaymentID == "" {
			errors["razorpay_payment_id"] = "razorpay_payment_id is required!"
		}
		if reqData.RazorpaySignature == "" {
			errors["razorpay_signature"] = "razorpay_signature is required!"
		}
		if reqData.PaymentID == 0 {
			errors["paymentId"] = "paymentId is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedVerify", reqData)
		return c.Next()
	}
}
