package reportController

import (
	"log"
	"strconv"

	"kmatch/middleware"
	"kmatch/models"
	reportValidator "kmatch/validators/report"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Controller collects abuse reports. Reports are append-only; duplicates by
// the same reporter are allowed.
type Controller struct {
	DB *gorm.DB
}

func New(db *gorm.DB) *Controller {
	return &Controller{DB: db}
}

// Submit records a report against an existing profile.
func (ctl *Controller) Submit(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedSubmitReport").(*reportValidator.SubmitReportRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var target models.Profile
	if err := ctl.DB.Where("profile_id = ?", reqData.ReportedProfileID).First(&target).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Reported profile not found!", nil)
	}

	report := models.Report{
		ReportingUserID:   reqData.ReportingUserID,
		ReportedProfileID: reqData.ReportedProfileID,
		Reason:            reqData.Reason,
		Category:          reqData.Category,
		Message:           reqData.Message,
	}
	if err := ctl.DB.Create(&report).Error; err != nil {
		log.Printf("Error storing report against %s: %v", reqData.ReportedProfileID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to submit report!", nil)
	}

	log.Printf("Report %d submitted against %s (%s/%s)", report.ID, reqData.ReportedProfileID, reqData.Reason, reqData.Category)
	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Report submitted successfully.", fiber.Map{
		"reportId": report.ID,
	})
}

// List returns reports newest first, optionally filtered by reported profile,
// paginated with page/limit query params.
func (ctl *Controller) List(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	query := ctl.DB.Model(&models.Report{})
	if profileID := c.Query("profileId"); profileID != "" {
		query = query.Where("reported_profile_id = ?", profileID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		log.Printf("Error counting reports: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch reports!", nil)
	}

	var reports []models.Report
	if err := query.Order("created_at desc").
		Offset((page - 1) * limit).Limit(limit).
		Find(&reports).Error; err != nil {
		log.Printf("Error fetching reports: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch reports!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Reports fetched successfully.", fiber.Map{
		"reports": reports,
		"total":   total,
		"page":    page,
		"limit":   limit,
	})
}
