package interestValidator

import (
	"kmatch/middleware"

	"github.com/gofiber/fiber/v2"
)

type SendInterestRequest struct {
	UserProfileID       string `json:"userProfileId"`
	InterestedProfileID string `json:"interestedProfileId"`
}

// SendInterest validator middleware
func SendInterest() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(SendInterestRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.UserProfileID == "" {
			errors["userProfileId"] = "userProfileId is required!"
		}
		if reqData.InterestedProfileID == "" {
			errors["interestedProfileId"] = "interestedProfileId is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedSendInterest", reqData)
		return c.Next()
	}
}

// RemoveInterest validator middleware, same body as SendInterest
func RemoveInterest() fiber.Handler {
	return SendInterest()
}

type RemoveAllInterestsRequest struct {
	UserProfileID string `json:"userProfileId"`
}

// RemoveAllInterests validator middleware
func RemoveAllInterests() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(RemoveAllInterestsRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if reqData.UserProfileID == "" {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"userProfileId": "userProfileId is required!",
			})
		}

		c.Locals("validatedRemoveAll", reqData)
		return c.Next()
	}
}

type PassProfileRequest struct {
	UserProfileID   string `json:"userProfileId"`
	PassedProfileID string `json:"passedProfileId"`
}

// PassProfile validator middleware
func PassProfile() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(PassProfileRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.UserProfileID == "" {
			errors["userProfileId"] = "userProfileId is required!"
		}
		if reqData.PassedProfileID == "" {
			errors["passedProfileId"] = "passedProfileId is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedPassProfile", reqData)
		return c.Next()
	}
}
