package profileController

import (
	"log"
	"strconv"
	"strings"
	"time"

	"kmatch/middleware"
	"kmatch/models"
	"kmatch/utils"
	profileValidator "kmatch/validators/profile"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Controller serves the browse, detail and update surface of the directory.
type Controller struct {
	DB *gorm.DB
}

func New(db *gorm.DB) *Controller {
	return &Controller{DB: db}
}

// profileCard is the summary shape used by listings and match feeds.
func profileCard(p *models.Profile, now time.Time) fiber.Map {
	image := p.ProfileImage
	if image == "" {
		image = utils.DefaultProfileImage
	}
	return fiber.Map{
		"profileId":    p.ProfileID,
		"name":         p.Name,
		"age":          utils.AgeFromDOB(p.DateOfBirth, now),
		"gender":       p.Gender,
		"religion":     p.Religion,
		"community":    p.Community,
		"motherTongue": p.MotherTongue,
		"occupation":   p.Occupation,
		"city":         p.City,
		"state":        p.State,
		"image":        image,
		"subscription": p.SubscriptionCurrent,
	}
}

// ListProfiles returns verified profiles as summary cards, newest first.
// Supports page/limit query params (defaults 1/20).
func (ctl *Controller) ListProfiles(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	var profiles []models.Profile
	query := ctl.DB.Where("otp_verified = ?", true).
		Order("profile_created_at desc")

	if gender := c.Query("gender"); gender != "" {
		query = query.Where("gender = ?", gender)
	}
	if exclude := c.Query("excludeProfileId"); exclude != "" {
		query = query.Where("profile_id <> ?", exclude)
	}

	var total int64
	if err := query.Model(&models.Profile{}).Count(&total).Error; err != nil {
		log.Printf("Error counting profiles: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch profiles!", nil)
	}

	if err := query.Offset((page - 1) * limit).Limit(limit).Find(&profiles).Error; err != nil {
		log.Printf("Error fetching profiles: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch profiles!", nil)
	}

	now := time.Now()
	cards := make([]fiber.Map, 0, len(profiles))
	for i := range profiles {
		cards = append(cards, profileCard(&profiles[i], now))
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Profiles fetched successfully.", fiber.Map{
		"profiles": cards,
		"total":    total,
		"page":     page,
		"limit":    limit,
	})
}

// GetProfileByID returns the public detail view and bumps the view counter.
func (ctl *Controller) GetProfileByID(c *fiber.Ctx) error {
	profileID := c.Params("id")

	var profile models.Profile
	if err := ctl.DB.Where("profile_id = ?", profileID).First(&profile).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Profile not found!", nil)
	}

	if err := ctl.DB.Model(&profile).
		UpdateColumn("profile_views", gorm.Expr("profile_views + ?", 1)).Error; err != nil {
		log.Printf("Error incrementing views for %s: %v", profileID, err)
	}

	now := time.Now()
	detail := profileCard(&profile, now)
	detail["about"] = profile.About
	detail["hobbies"] = profile.Hobbies
	detail["height"] = profile.Height
	detail["maritalStatus"] = profile.MaritalStatus
	detail["education"] = profile.Education
	detail["income"] = profile.Income
	detail["fatherName"] = profile.FatherName
	detail["motherName"] = profile.MotherName
	detail["siblings"] = profile.Siblings
	detail["horoscope"] = profile.Horoscope
	detail["lastActive"] = profile.LastActive
	detail["profileViews"] = profile.ProfileViews + 1

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Profile fetched successfully.", fiber.Map{
		"profile": detail,
	})
}

// GetUserProfile looks up a single profile by profileId or email.
func (ctl *Controller) GetUserProfile(c *fiber.Ctx) error {
	profileID := c.Query("profileId")
	email := strings.ToLower(c.Query("email"))
	if profileID == "" && email == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Profile ID or email is required!", nil)
	}

	query := ctl.DB
	if profileID != "" {
		query = query.Where("profile_id = ?", profileID)
	} else {
		query = query.Where("email = ?", email)
	}

	var profile models.Profile
	if err := query.First(&profile).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User profile not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "User profile fetched successfully.", fiber.Map{
		"profile": profile,
	})
}

// UpdateProfile applies a partial update: only the fields present in the
// payload touch the record, everything else keeps its stored value.
func (ctl *Controller) UpdateProfile(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedUpdateProfile").(*profileValidator.UpdateProfileRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var profile models.Profile
	if err := ctl.DB.Where("profile_id = ?", reqData.ProfileID).First(&profile).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Profile not found!", nil)
	}

	data := reqData.UpdatedData
	updates := map[string]interface{}{}
	if data.Name != nil {
		updates["name"] = *data.Name
	}
	if data.Height != nil {
		updates["height"] = *data.Height
	}
	if data.Profession != nil {
		updates["occupation"] = *data.Profession
	}
	if data.Education != nil {
		updates["education"] = *data.Education
	}
	if data.Religion != nil {
		updates["religion"] = *data.Religion
	}
	if data.Caste != nil {
		updates["community"] = *data.Caste
	}
	if data.Language != nil {
		updates["mother_tongue"] = *data.Language
	}
	if data.Hobbies != nil {
		updates["hobbies"] = *data.Hobbies
	}
	if data.Family != nil {
		if data.Family.Father != nil {
			updates["father_name"] = *data.Family.Father
		}
		if data.Family.Mother != nil {
			updates["mother_name"] = *data.Family.Mother
		}
	}

	if len(updates) == 0 {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Nothing to update.", fiber.Map{
			"profileId": profile.ProfileID,
		})
	}

	if err := ctl.DB.Model(&profile).Updates(updates).Error; err != nil {
		log.Printf("Error updating profile %s: %v", reqData.ProfileID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update profile!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Profile updated successfully.", fiber.Map{
		"profileId": profile.ProfileID,
		"updated":   updates,
	})
}

// RecentMatches returns the six newest verified profiles of the opposite
// gender, excluding the requester.
func (ctl *Controller) RecentMatches(c *fiber.Ctx) error {
	profileID := c.Query("profileId")
	if profileID == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Profile ID is required!", nil)
	}

	var me models.Profile
	if err := ctl.DB.Where("profile_id = ?", profileID).First(&me).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User profile not found!", nil)
	}

	oppositeGender := "female"
	if me.Gender == "female" {
		oppositeGender = "male"
	}
	if g := c.Query("gender"); g != "" {
		oppositeGender = g
	}

	var matches []models.Profile
	if err := ctl.DB.Where("gender = ? AND otp_verified = ? AND profile_id <> ?", oppositeGender, true, profileID).
		Order("profile_created_at desc").
		Limit(6).
		Find(&matches).Error; err != nil {
		log.Printf("Error fetching recent matches for %s: %v", profileID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch recent matches!", nil)
	}

	now := time.Now()
	cards := make([]fiber.Map, 0, len(matches))
	for i := range matches {
		cards = append(cards, profileCard(&matches[i], now))
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Recent matches fetched successfully.", fiber.Map{
		"matches": cards,
	})
}

// UserStats aggregates the dashboard counters for one profile.
func (ctl *Controller) UserStats(c *fiber.Ctx) error {
	profileID := c.Query("profileId")
	if profileID == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Profile ID is required!", nil)
	}

	var profile models.Profile
	if err := ctl.DB.Where("profile_id = ?", profileID).First(&profile).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User profile not found!", nil)
	}

	var interestsSent, interestsReceived, passed, messages int64
	ctl.DB.Model(&models.InterestEntry{}).
		Where("user_profile_id = ? AND kind = ?", profileID, models.InterestKindInterested).
		Count(&interestsSent)
	ctl.DB.Model(&models.InterestEntry{}).
		Where("target_profile_id = ? AND kind = ?", profileID, models.InterestKindInterested).
		Count(&interestsReceived)
	ctl.DB.Model(&models.InterestEntry{}).
		Where("user_profile_id = ? AND kind = ?", profileID, models.InterestKindPassed).
		Count(&passed)
	ctl.DB.Model(&models.Message{}).
		Where("recipient_profile_id = ?", profileID).
		Count(&messages)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "User stats fetched successfully.", fiber.Map{
		"profileViews":      profile.ProfileViews,
		"interestsSent":     interestsSent,
		"interestsReceived": interestsReceived,
		"passedProfiles":    passed,
		"messages":          messages,
		"subscription":      profile.SubscriptionCurrent,
	})
}
