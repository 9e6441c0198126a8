package reportController

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"kmatch/models"
	reportValidator "kmatch/validators/report"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Profile{}, &models.Report{}))

	ctl := New(db)
	app := fiber.New()
	app.Post("/api/report-profile", reportValidator.SubmitReport(), ctl.Submit)
	app.Get("/api/reports", ctl.List)
	return app, db
}

func postJSON(t *testing.T, app *fiber.App, path string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp, decoded
}

func validReport() map[string]string {
	return map[string]string{
		"reportingUserId":   "KM1",
		"reportedProfileId": "KM2",
		"reason":            "fake-profile",
		"category":          "profile",
		"message":           "Photos belong to someone else.",
	}
}

func seedTarget(t *testing.T, db *gorm.DB) {
	t.Helper()
	require.NoError(t, db.Create(&models.Profile{
		ProfileID: "KM2", Email: "km2@example.com", OTPVerified: true,
	}).Error)
}

func TestSubmitReport(t *testing.T) {
	app, db := newTestApp(t)
	seedTarget(t, db)

	resp, body := postJSON(t, app, "/api/report-profile", validReport())
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.NotNil(t, body["data"].(map[string]interface{})["reportId"])
}

func TestSubmitReportInvalidEnums(t *testing.T) {
	app, db := newTestApp(t)
	seedTarget(t, db)

	report := validReport()
	report["reason"] = "rude"
	resp, body := postJSON(t, app, "/api/report-profile", report)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	errs := body["data"].(map[string]interface{})
	assert.Contains(t, errs, "reason")

	report = validReport()
	report["category"] = "video"
	resp, body = postJSON(t, app, "/api/report-profile", report)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	errs = body["data"].(map[string]interface{})
	assert.Contains(t, errs, "category")
}

func TestSubmitReportUnknownTarget(t *testing.T) {
	app, _ := newTestApp(t)

	resp, _ := postJSON(t, app, "/api/report-profile", validReport())
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDuplicateReportsAllowed(t *testing.T) {
	app, db := newTestApp(t)
	seedTarget(t, db)

	for i := 0; i < 3; i++ {
		resp, _ := postJSON(t, app, "/api/report-profile", validReport())
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	var count int64
	db.Model(&models.Report{}).Where("reported_profile_id = ?", "KM2").Count(&count)
	assert.EqualValues(t, 3, count)
}

func TestListReportsFilteredByProfile(t *testing.T) {
	app, db := newTestApp(t)
	seedTarget(t, db)
	require.NoError(t, db.Create(&models.Profile{
		ProfileID: "KM3", Email: "km3@example.com", OTPVerified: true,
	}).Error)

	postJSON(t, app, "/api/report-profile", validReport())
	other := validReport()
	other["reportedProfileId"] = "KM3"
	postJSON(t, app, "/api/report-profile", other)

	req := httptest.NewRequest(http.MethodGet, "/api/reports?profileId=KM2", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	data := body["data"].(map[string]interface{})
	assert.EqualValues(t, 1, data["total"])
	reports := data["reports"].([]interface{})
	require.Len(t, reports, 1)
	assert.Equal(t, "KM2", reports[0].(map[string]interface{})["reportedProfileId"])
}
