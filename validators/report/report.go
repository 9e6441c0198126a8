package reportValidator

import (
	"strings"

	"kmatch/middleware"
	"kmatch/models"

	"github.com/gofiber/fiber/v2"
)

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}

type SubmitReportRequest struct {
	ReportingUserID   string `json:"reportingUserId"`
	ReportedProfileID string `json:"reportedProfileId"`
	Reason            string `json:"reason"`
	Category          string `json:"category"`
	Message           string `json:"message"`
}

// SubmitReport validator middleware
func SubmitReport() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(SubmitReportRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.ReportingUserID == "" {
			errors["reportingUserId"] = "reportingUserId is required!"
		}
		if reqData.ReportedProfileID == "" {
			errors["reportedProfileId"] = "reportedProfileId is required!"
		}
		if reqData.Message == "" {
			errors["message"] = "message is required!"
		}

		if reqData.Reason == "" {
			errors["reason"] = "reason is required!"
		} else if !contains(models.ReportReasons, reqData.Reason) {
			errors["reason"] = "Invalid reason. Must be one of: " + strings.Join(models.ReportReasons, ", ")
		}

		if reqData.Category == "" {
			errors["category"] = "category is required!"
		} else if !contains(models.ReportCategories, reqData.Category) {
			errors["category"] = "Invalid category. Must be one of: " + strings.Join(models.ReportCategories, ", ")
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedSubmitReport", reqData)
		return c.Next()
	}
}
