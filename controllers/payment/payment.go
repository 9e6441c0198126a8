package paymentController

import (
	"encoding/json"
	"log"
	"time"

	"kmatch/middleware"
	"kmatch/models"
	"kmatch/utils"
	paymentValidator "kmatch/validators/payment"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Plan durations in days.
const (
	premiumDays     = 90
	premiumPlusDays = 180
)

// Controller drives the two-step checkout: initiate an order with the
// gateway, then verify the signed completion and upgrade the subscription.
type Controller struct {
	DB      *gorm.DB
	Gateway utils.PaymentGateway
}

func New(db *gorm.DB, gateway utils.PaymentGateway) *Controller {
	return &Controller{DB: db, Gateway: gateway}
}

// Initiate creates a gateway order for the requested plan and records it
// locally in the created state.
func (ctl *Controller) Initiate(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedInitiate").(*paymentValidator.InitiateRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var profile models.Profile
	if err := ctl.DB.Where("profile_id = ?", reqData.UserID).First(&profile).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	receipt := "rcpt_" + uuid.NewString()
	order, err := ctl.Gateway.CreateOrder(reqData.Price*100, "INR", receipt)
	if err != nil {
		log.Printf("Error creating gateway order for %s: %v", reqData.UserID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create payment order!", nil)
	}

	paymentOrder := models.PaymentOrder{
		UserID:          profile.ID,
		Plan:            reqData.Plan,
		Price:           uint(reqData.Price),
		RazorpayOrderID: order.ID,
		Status:          models.PaymentCreated,
	}
	if err := ctl.DB.Create(&paymentOrder).Error; err != nil {
		log.Printf("Error storing payment order for %s: %v", reqData.UserID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create payment order!", nil)
	}

	log.Printf("Payment order %d initiated for %s (%s)", paymentOrder.ID, reqData.UserID, reqData.Plan)
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Payment order created successfully.", fiber.Map{
		"paymentId": paymentOrder.ID,
		"orderId":   order.ID,
		"amount":    order.Amount,
		"currency":  order.Currency,
		"plan":      reqData.Plan,
	})
}

// Verify checks the gateway signature over "orderId|paymentId". A bad
// signature leaves the order and the subscription completely untouched; a
// good one marks the order paid and installs the new subscription period.
func (ctl *Controller) Verify(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedVerify").(*paymentValidator.VerifyRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var order models.PaymentOrder
	if err := ctl.DB.First(&order, reqData.PaymentID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Payment order not found!", nil)
	}

	if order.RazorpayOrderID != reqData.RazorpayOrderID {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Order mismatch!", nil)
	}

	// An order moves out of the created state exactly once; replaying the
	// verification must not append another subscription period.
	if order.Status != models.PaymentCreated {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Payment already processed!", nil)
	}

	if !ctl.Gateway.VerifySignature(reqData.RazorpayOrderID, reqData.RazorpayPaymentID, reqData.RazorpaySignature) {
		log.Printf("Invalid signature on payment order %d", order.ID)
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid payment signature!", nil)
	}

	var profile models.Profile
	if err := ctl.DB.First(&profile, order.UserID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	now := time.Now()
	days := premiumDays
	if order.Plan == models.TierPremiumPlus {
		days = premiumPlusDays
	}
	expiry := now.Add(time.Duration(days) * 24 * time.Hour)

	period := models.SubscriptionPeriod{
		Type:           order.Plan,
		StartDate:      now,
		ExpiryDate:     expiry,
		PaymentOrderID: order.ID,
		Status:         models.SubscriptionActive,
		UpgradedAt:     now,
	}

	var history []models.SubscriptionPeriod
	if len(profile.SubscriptionHistory) > 0 {
		if err := json.Unmarshal(profile.SubscriptionHistory, &history); err != nil {
			log.Printf("Error decoding subscription history for %s: %v", profile.ProfileID, err)
			history = nil
		}
	}
	history = append(history, period)
	historyJSON, err := json.Marshal(history)
	if err != nil {
		log.Printf("Error encoding subscription history for %s: %v", profile.ProfileID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to verify payment!", nil)
	}

	err = ctl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&order).Updates(map[string]interface{}{
			"razorpay_payment_id": reqData.RazorpayPaymentID,
			"razorpay_signature":  reqData.RazorpaySignature,
			"status":              models.PaymentPaid,
		}).Error; err != nil {
			return err
		}
		return tx.Model(&profile).Updates(map[string]interface{}{
			"subscription_current": order.Plan,
			"sub_start_date":       now,
			"sub_expiry_date":      expiry,
			"sub_payment_order_id": order.ID,
			"sub_reminder_sent":    false,
			"subscription_history": historyJSON,
		}).Error
	})
	if err != nil {
		log.Printf("Error completing payment order %d: %v", order.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to verify payment!", nil)
	}

	log.Printf("Payment order %d verified; %s upgraded to %s", order.ID, profile.ProfileID, order.Plan)
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Payment verified successfully.", fiber.Map{
		"paymentId": order.ID,
		"plan":      order.Plan,
		"subscription": fiber.Map{
			"current":    order.Plan,
			"startDate":  now,
			"expiryDate": expiry,
		},
	})
}
