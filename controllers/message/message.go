package messageController

import (
	"log"

	"kmatch/middleware"
	"kmatch/models"
	messageValidator "kmatch/validators/message"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Controller stores and lists direct messages between profiles.
type Controller struct {
	DB *gorm.DB
}

func New(db *gorm.DB) *Controller {
	return &Controller{DB: db}
}

// Send stores one message after checking both ends exist.
func (ctl *Controller) Send(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedSendMessage").(*messageValidator.SendMessageRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var recipient models.Profile
	if err := ctl.DB.Where("profile_id = ?", reqData.RecipientProfileID).First(&recipient).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Recipient profile not found!", nil)
	}

	message := models.Message{
		SenderProfileID:    reqData.SenderProfileID,
		RecipientProfileID: reqData.RecipientProfileID,
		Body:               reqData.Message,
	}
	if err := ctl.DB.Create(&message).Error; err != nil {
		log.Printf("Error storing message %s -> %s: %v", reqData.SenderProfileID, reqData.RecipientProfileID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to send message!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Message sent successfully.", fiber.Map{
		"messageId": message.ID,
	})
}

// List returns the conversation between two profiles, oldest first. With only
// profileId given it returns everything sent to or from that profile.
func (ctl *Controller) List(c *fiber.Ctx) error {
	profileID := c.Query("profileId")
	if profileID == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Profile ID is required!", nil)
	}

	query := ctl.DB.Model(&models.Message{})
	if withID := c.Query("withProfileId"); withID != "" {
		query = query.Where(
			"(sender_profile_id = ? AND recipient_profile_id = ?) OR (sender_profile_id = ? AND recipient_profile_id = ?)",
			profileID, withID, withID, profileID)
	} else {
		query = query.Where("sender_profile_id = ? OR recipient_profile_id = ?", profileID, profileID)
	}

	var messages []models.Message
	if err := query.Order("created_at asc").Find(&messages).Error; err != nil {
		log.Printf("Error fetching messages for %s: %v", profileID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch messages!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Messages fetched successfully.", fiber.Map{
		"messages": messages,
	})
}
