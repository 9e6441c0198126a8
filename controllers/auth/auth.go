package authController

import (
	"encoding/json"
	"errors"
	"log"
	"strings"
	"time"

	"kmatch/config"
	"kmatch/middleware"
	"kmatch/models"
	"kmatch/utils"
	authValidator "kmatch/validators/auth"
	profileValidator "kmatch/validators/profile"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Controller handles OTP challenges, profile completion and login.
type Controller struct {
	DB     *gorm.DB
	Mailer utils.Mailer
}

func New(db *gorm.DB, mailer utils.Mailer) *Controller {
	return &Controller{DB: db, Mailer: mailer}
}

// SendEmailOTP stores a fresh 6-digit challenge against the (lower-cased)
// email, upserting a minimal profile when none exists, then mails the code.
// A re-issue never resets the verified flag.
func (ctl *Controller) SendEmailOTP(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedSendOTP").(*authValidator.SendOTPRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	email := strings.ToLower(reqData.Email)
	otp := utils.GenerateOTP()
	expiresAt := time.Now().Add(10 * time.Minute)

	var profile models.Profile
	err := ctl.DB.Where("email = ?", email).First(&profile).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		profile = models.Profile{
			Email:        email,
			OTPCode:      otp,
			OTPExpiresAt: &expiresAt,
		}
		if err := ctl.DB.Create(&profile).Error; err != nil {
			log.Printf("Error storing OTP for %s: %v", email, err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to store OTP!", nil)
		}
	case err != nil:
		log.Printf("Error looking up %s: %v", email, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to store OTP!", nil)
	default:
		updates := map[string]interface{}{
			"otp_code":       otp,
			"otp_expires_at": expiresAt,
		}
		if err := ctl.DB.Model(&profile).Updates(updates).Error; err != nil {
			log.Printf("Error storing OTP for %s: %v", email, err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to store OTP!", nil)
		}
	}

	// The stored code stays valid even when delivery fails; the caller may
	// simply request another one.
	if err := utils.SendOTPEmail(ctl.Mailer, otp, email); err != nil {
		log.Printf("Error sending OTP to %s: %v", email, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to send OTP!", nil)
	}

	log.Printf("OTP stored and sent for %s", email)
	return middleware.JsonResponse(c, fiber.StatusOK, true, "OTP sent successfully.", nil)
}

// VerifyEmailOTP marks the profile verified when the supplied code matches the
// stored challenge and the expiry instant has not passed. Exactly-at-expiry is
// accepted; verification state then persists across later re-issues.
func (ctl *Controller) VerifyEmailOTP(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedVerifyOTP").(*authValidator.VerifyOTPRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	email := strings.ToLower(reqData.Email)

	var profile models.Profile
	if err := ctl.DB.Where("email = ?", email).First(&profile).Error; err != nil {
		log.Printf("User not found for email: %s", email)
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	if profile.OTPCode == "" || profile.OTPExpiresAt == nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "No OTP found!", nil)
	}

	if profile.OTPCode != reqData.OTP {
		log.Printf("OTP mismatch for email: %s", email)
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid OTP!", nil)
	}

	if time.Now().After(*profile.OTPExpiresAt) {
		log.Printf("OTP expired for email: %s", email)
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Expired OTP!", nil)
	}

	if err := ctl.DB.Model(&profile).Update("otp_verified", true).Error; err != nil {
		log.Printf("Error verifying OTP for %s: %v", email, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to verify OTP!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "OTP verified successfully.", nil)
}

// CreateProfile completes a signup: it fully replaces profile fields on the
// record keyed by the (verified) email, assigning the external identifier
// exactly once. Subscription history already on the record is preserved.
func (ctl *Controller) CreateProfile(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedCreateProfile").(*profileValidator.CreateProfileRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	email := strings.ToLower(reqData.PersonalInfo.Email)

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reqData.Credentials.Password), config.AppConfig.SaltRound)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
	}

	now := time.Now()

	var existing models.Profile
	err = ctl.DB.Where("email = ?", email).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// The OTP request is what seeds the minimal record, so a missing
		// record means this email was never challenged.
		log.Printf("Email never challenged: %s", email)
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Email not verified!", nil)
	}
	if err != nil {
		log.Printf("Error looking up %s: %v", email, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create profile!", nil)
	}

	if !existing.OTPVerified {
		log.Printf("Email not verified for %s", email)
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Email not verified!", nil)
	}

	profileID := existing.ProfileID
	if profileID == "" {
		profileID = utils.NewProfileID()
	}

	current := models.TierFree
	if reqData.Subscription != nil && reqData.Subscription.Current != "" {
		current = reqData.Subscription.Current
	} else if existing.SubscriptionCurrent != "" {
		current = existing.SubscriptionCurrent
	}

	updates := map[string]interface{}{
		"profile_id":           profileID,
		"name":                 reqData.PersonalInfo.Name,
		"email":                email,
		"gender":               reqData.PersonalInfo.Gender,
		"looking_for":          reqData.PersonalInfo.LookingFor,
		"mobile":               reqData.PersonalInfo.Mobile,
		"date_of_birth":        reqData.Demographics.DateOfBirth,
		"height":               reqData.Demographics.Height,
		"marital_status":       reqData.Demographics.MaritalStatus,
		"religion":             reqData.Demographics.Religion,
		"community":            reqData.Demographics.Community,
		"mother_tongue":        reqData.Demographics.MotherTongue,
		"horoscope":            reqData.Demographics.Horoscope,
		"education":            reqData.ProfessionalInfo.Education,
		"occupation":           reqData.ProfessionalInfo.Occupation,
		"income":               reqData.ProfessionalInfo.Income,
		"city":                 reqData.Location.City,
		"state":                reqData.Location.State,
		"password":             string(hashedPassword),
		"remember_me":          reqData.Credentials.RememberMe,
		"subscription_current": current,
		"last_active":          now,
		"profile_created_at":   now,
		"app_version":          reqData.AppVersion,
	}

	if err := ctl.DB.Model(&models.Profile{}).Where("email = ?", email).Updates(updates).Error; err != nil {
		log.Printf("Error updating profile for %s: %v", email, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create profile!", nil)
	}

	log.Printf("Profile created: %s (%s)", profileID, email)
	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Profile created successfully.", fiber.Map{
		"profileId":    profileID,
		"email":        email,
		"subscription": current,
	})
}

// Login authenticates against the stored bcrypt hash and refreshes the
// last-active timestamps. The response carries the profile payload plus a JWT.
func (ctl *Controller) Login(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedLogin").(*authValidator.LoginRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	email := strings.ToLower(reqData.Email)

	var profile models.Profile
	if err := ctl.DB.Where("email = ?", email).First(&profile).Error; err != nil {
		log.Printf("User not found for email: %s", email)
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	if !profile.OTPVerified {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Email not verified!", nil)
	}

	if profile.Password == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "No password set for this account!", nil)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(profile.Password), []byte(reqData.Password)); err != nil {
		log.Printf("Invalid password for %s", email)
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid password!", nil)
	}

	now := time.Now()
	if err := ctl.DB.Model(&profile).Updates(map[string]interface{}{
		"last_active": now,
		"last_login":  now,
	}).Error; err != nil {
		log.Printf("Error saving last login time: %v", err)
	}
	profile.LastActive = now

	token, err := middleware.GenerateJWT(profile.ProfileID, profile.Name, profile.Email)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to generate token!", nil)
	}

	log.Printf("Login successful for %s", email)
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Login successful.", fiber.Map{
		"user":  UserData(&profile),
		"token": token,
	})
}

// Me returns the caller's own profile, resolved from the JWT.
func (ctl *Controller) Me(c *fiber.Ctx) error {
	profileID, ok := c.Locals("profileId").(string)
	if !ok || profileID == "" {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var profile models.Profile
	if err := ctl.DB.Where("profile_id = ?", profileID).First(&profile).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Profile retrieved successfully.", fiber.Map{
		"user": UserData(&profile),
	})
}

// UserData shapes the full profile payload returned by login and /api/me.
func UserData(profile *models.Profile) fiber.Map {
	history := json.RawMessage("[]")
	if len(profile.SubscriptionHistory) > 0 {
		history = json.RawMessage(profile.SubscriptionHistory)
	}

	return fiber.Map{
		"profileId":     profile.ProfileID,
		"name":          profile.Name,
		"email":         profile.Email,
		"mobile":        profile.Mobile,
		"gender":        profile.Gender,
		"lookingFor":    profile.LookingFor,
		"lastActive":    profile.LastActive,
		"dateOfBirth":   profile.DateOfBirth,
		"height":        profile.Height,
		"maritalStatus": profile.MaritalStatus,
		"religion":      profile.Religion,
		"community":     profile.Community,
		"motherTongue":  profile.MotherTongue,
		"education":     profile.Education,
		"occupation":    profile.Occupation,
		"income":        profile.Income,
		"city":          profile.City,
		"state":         profile.State,
		"subscription": fiber.Map{
			"current": profile.SubscriptionCurrent,
			"details": fiber.Map{
				"startDate":  profile.SubStartDate,
				"expiryDate": profile.SubExpiryDate,
				"paymentId":  profile.SubPaymentOrderID,
				"autoRenew":  profile.SubAutoRenew,
			},
			"history": history,
		},
		"profileCreatedAt": profile.ProfileCreatedAt,
		"appVersion":       profile.AppVersion,
	}
}
