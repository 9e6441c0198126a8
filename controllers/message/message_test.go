package messageController

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"kmatch/models"
	messageValidator "kmatch/validators/message"

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
	require.NoError(t, db.AutoMigrate(&models.Profile{}, &models.Message{}))

	ctl := New(db)
	app := fiber.New()
	app.Post("/api/messages", messageValidator.SendMessage(), ctl.Send)
	app.Get("/api/messages", ctl.List)
	return app, db
}

func send(t *testing.T, app *fiber.App, from, to, text string) *http.Response {
	t.Helper()
	payload, err := json.Marshal(map[string]string{
		"senderProfileId":    from,
		"recipientProfileId": to,
		"message":            text,
	})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/messages", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestSendAndListConversation(t *testing.T) {
	app, db := newTestApp(t)
	for _, id := range []string{"KM1", "KM2", "KM3"} {
		require.NoError(t, db.Create(&models.Profile{
			ProfileID: id, Email: id + "@example.com", OTPVerified: true,
		}).Error)
	}

	require.Equal(t, http.StatusCreated, send(t, app, "KM1", "KM2", "Hello!").StatusCode)
	require.Equal(t, http.StatusCreated, send(t, app, "KM2", "KM1", "Hi there.").StatusCode)
	require.Equal(t, http.StatusCreated, send(t, app, "KM3", "KM1", "Unrelated.").StatusCode)

	req := httptest.NewRequest(http.MethodGet, "/api/messages?profileId=KM1&withProfileId=KM2", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	messages := body["data"].(map[string]interface{})["messages"].([]interface{})
	require.Len(t, messages, 2)
	assert.Equal(t, "Hello!", messages[0].(map[string]interface{})["message"])
	assert.Equal(t, "Hi there.", messages[1].(map[string]interface{})["message"])
}

func TestSendToUnknownRecipient(t *testing.T) {
	app, db := newTestApp(t)
	require.NoError(t, db.Create(&models.Profile{
		ProfileID: "KM1", Email: "km1@example.com", OTPVerified: true,
	}).Error)

	resp := send(t, app, "KM1", "KM404", "Hello?")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
