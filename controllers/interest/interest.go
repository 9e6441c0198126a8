package interestController

import (
	"log"
	"time"

	"kmatch/middleware"
	"kmatch/models"
	"kmatch/utils"
	interestValidator "kmatch/validators/interest"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Controller maintains the interested/passed sets between profiles.
type Controller struct {
	DB *gorm.DB
}

func New(db *gorm.DB) *Controller {
	return &Controller{DB: db}
}

// SendInterest records an interested mark. Re-sending against the same target
// is a no-op thanks to the composite unique index.
func (ctl *Controller) SendInterest(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedSendInterest").(*interestValidator.SendInterestRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var target models.Profile
	if err := ctl.DB.Where("profile_id = ? AND otp_verified = ?", reqData.InterestedProfileID, true).
		First(&target).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Interested profile not found!", nil)
	}

	entry := models.InterestEntry{
		UserProfileID:   reqData.UserProfileID,
		TargetProfileID: reqData.InterestedProfileID,
		Kind:            models.InterestKindInterested,
	}
	if err := ctl.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&entry).Error; err != nil {
		log.Printf("Error recording interest %s -> %s: %v", reqData.UserProfileID, reqData.InterestedProfileID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to send interest!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Interest sent successfully.", nil)
}

// RemoveInterest deletes one interested mark; removing one that was never
// recorded is reported as not found.
func (ctl *Controller) RemoveInterest(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedSendInterest").(*interestValidator.SendInterestRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	result := ctl.DB.Where("user_profile_id = ? AND target_profile_id = ? AND kind = ?",
		reqData.UserProfileID, reqData.InterestedProfileID, models.InterestKindInterested).
		Delete(&models.InterestEntry{})
	if result.Error != nil {
		log.Printf("Error removing interest %s -> %s: %v", reqData.UserProfileID, reqData.InterestedProfileID, result.Error)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to remove interest!", nil)
	}
	if result.RowsAffected == 0 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Interest not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Interest removed successfully.", nil)
}

// RemoveAllInterests clears the caller's entire interested set. An already
// empty set still succeeds.
func (ctl *Controller) RemoveAllInterests(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedRemoveAll").(*interestValidator.RemoveAllInterestsRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	result := ctl.DB.Where("user_profile_id = ? AND kind = ?",
		reqData.UserProfileID, models.InterestKindInterested).
		Delete(&models.InterestEntry{})
	if result.Error != nil {
		log.Printf("Error removing all interests for %s: %v", reqData.UserProfileID, result.Error)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to remove interests!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "All interests removed successfully.", fiber.Map{
		"removed": result.RowsAffected,
	})
}

// PassProfile records a passed mark. A profile may sit in both the interested
// and passed sets at once; neither operation clears the other.
func (ctl *Controller) PassProfile(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedPassProfile").(*interestValidator.PassProfileRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var target models.Profile
	if err := ctl.DB.Where("profile_id = ?", reqData.PassedProfileID).First(&target).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Passed profile not found!", nil)
	}

	entry := models.InterestEntry{
		UserProfileID:   reqData.UserProfileID,
		TargetProfileID: reqData.PassedProfileID,
		Kind:            models.InterestKindPassed,
	}
	if err := ctl.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&entry).Error; err != nil {
		log.Printf("Error recording pass %s -> %s: %v", reqData.UserProfileID, reqData.PassedProfileID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to pass profile!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Profile passed successfully.", nil)
}

// listTargets resolves one side of the ledger into summary cards, skipping
// unverified or since-deleted targets.
func (ctl *Controller) listTargets(profileID, kind string) ([]fiber.Map, error) {
	var entries []models.InterestEntry
	if err := ctl.DB.Where("user_profile_id = ? AND kind = ?", profileID, kind).
		Order("created_at desc").
		Find(&entries).Error; err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.TargetProfileID)
	}

	cards := make([]fiber.Map, 0, len(ids))
	if len(ids) == 0 {
		return cards, nil
	}

	var profiles []models.Profile
	if err := ctl.DB.Where("profile_id IN ? AND otp_verified = ?", ids, true).
		Find(&profiles).Error; err != nil {
		return nil, err
	}

	byID := make(map[string]*models.Profile, len(profiles))
	for i := range profiles {
		byID[profiles[i].ProfileID] = &profiles[i]
	}

	now := time.Now()
	for _, id := range ids {
		p, found := byID[id]
		if !found {
			continue
		}
		image := p.ProfileImage
		if image == "" {
			image = utils.DefaultProfileImage
		}
		cards = append(cards, fiber.Map{
			"profileId":  p.ProfileID,
			"name":       p.Name,
			"age":        utils.AgeFromDOB(p.DateOfBirth, now),
			"occupation": p.Occupation,
			"city":       p.City,
			"state":      p.State,
			"community":  p.Community,
			"income":     p.Income,
			"horoscope":  p.Horoscope,
			"image":      image,
		})
	}
	return cards, nil
}

// ListInterested returns summary cards for every profile the caller has
// marked interested.
func (ctl *Controller) ListInterested(c *fiber.Ctx) error {
	profileID := c.Query("profileId")
	if profileID == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Profile ID is required!", nil)
	}

	cards, err := ctl.listTargets(profileID, models.InterestKindInterested)
	if err != nil {
		log.Printf("Error fetching interested profiles for %s: %v", profileID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch interested profiles!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Interested profiles fetched successfully.", fiber.Map{
		"profiles": cards,
	})
}

// ListPassed returns summary cards for every profile the caller has passed.
func (ctl *Controller) ListPassed(c *fiber.Ctx) error {
	profileID := c.Query("profileId")
	if profileID == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Profile ID is required!", nil)
	}

	cards, err := ctl.listTargets(profileID, models.InterestKindPassed)
	if err != nil {
		log.Printf("Error fetching passed profiles for %s: %v", profileID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch passed profiles!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Passed profiles fetched successfully.", fiber.Map{
		"profiles": cards,
	})
}
