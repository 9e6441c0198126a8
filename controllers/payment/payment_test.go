package paymentController

import (
	"bytes"
	"crypto/hmac"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"kmatch/models"
	"kmatch/utils"
	paymentValidator "kmatch/validators/payment"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const testSecret = "test-gateway-secret"

// fakeGateway mints deterministic order ids and verifies signatures with the
// same HMAC scheme the real gateway uses.
type fakeGateway struct {
	orders int
	fail   bool
}

func (g *fakeGateway) CreateOrder(amountPaise int, currency, receipt string) (*utils.CheckoutOrder, error) {
	if g.fail {
		return nil, fmt.Errorf("gateway down")
	}
	g.orders++
	return &utils.CheckoutOrder{
		ID:       fmt.Sprintf("order_test_%d", g.orders),
		Amount:   amountPaise,
		Currency: currency,
		Receipt:  receipt,
		Status:   "created",
	}, nil
}

func (g *fakeGateway) VerifySignature(orderID, paymentID, signature string) bool {
	expected := utils.SignCheckout(orderID, paymentID, testSecret)
	return hmac.Equal([]byte(expected), []byte(signature))
}

func newTestApp(t *testing.T) (*fiber.App, *gorm.DB, *fakeGateway) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Profile{}, &models.PaymentOrder{}))

	gateway := &fakeGateway{}
	ctl := New(db, gateway)
	app := fiber.New()
	app.Post("/api/payment/initiate", paymentValidator.Initiate(), ctl.Initiate)
	app.Post("/api/payment/verify", paymentValidator.Verify(), ctl.Verify)
	return app, db, gateway
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

func seedUser(t *testing.T, db *gorm.DB) models.Profile {
	t.Helper()
	profile := models.Profile{
		ProfileID:   "KM1700000000000",
		Email:       "asha@example.com",
		Name:        "Asha Rao",
		OTPVerified: true,
	}
	require.NoError(t, db.Create(&profile).Error)
	return profile
}

func TestInitiateRejectsInvalidPlan(t *testing.T) {
	app, db, _ := newTestApp(t)
	seedUser(t, db)

	resp, _ := postJSON(t, app, "/api/payment/initiate", map[string]interface{}{
		"plan": "gold", "price": 999, "userId": "KM1700000000000",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	resp, _ = postJSON(t, app, "/api/payment/initiate", map[string]interface{}{
		"plan": "premium", "price": 0, "userId": "KM1700000000000",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestInitiateCreatesOrder(t *testing.T) {
	app, db, _ := newTestApp(t)
	seedUser(t, db)

	resp, body := postJSON(t, app, "/api/payment/initiate", map[string]interface{}{
		"plan": "premium", "price": 999, "userId": "KM1700000000000",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	data := body["data"].(map[string]interface{})
	assert.Equal(t, "order_test_1", data["orderId"])
	assert.EqualValues(t, 99900, data["amount"]) // rupees converted to paise

	var order models.PaymentOrder
	require.NoError(t, db.First(&order).Error)
	assert.Equal(t, models.PaymentCreated, order.Status)
	assert.Equal(t, "premium", order.Plan)
}

func TestInitiateUnknownUser(t *testing.T) {
	app, _, _ := newTestApp(t)

	resp, _ := postJSON(t, app, "/api/payment/initiate", map[string]interface{}{
		"plan": "premium", "price": 999, "userId": "KM404",
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestVerifyTamperedSignatureIsNoOp(t *testing.T) {
	app, db, _ := newTestApp(t)
	seedUser(t, db)

	_, body := postJSON(t, app, "/api/payment/initiate", map[string]interface{}{
		"plan": "premium", "price": 999, "userId": "KM1700000000000",
	})
	data := body["data"].(map[string]interface{})
	paymentID := uint(data["paymentId"].(float64))
	orderID := data["orderId"].(string)

	resp, _ := postJSON(t, app, "/api/payment/verify", map[string]interface{}{
		"razorpay_order_id":   orderID,
		"razorpay_payment_id": "pay_abc",
		"razorpay_signature":  "deadbeef",
		"paymentId":           paymentID,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var order models.PaymentOrder
	require.NoError(t, db.First(&order, paymentID).Error)
	assert.Equal(t, models.PaymentCreated, order.Status)

	var profile models.Profile
	require.NoError(t, db.Where("profile_id = ?", "KM1700000000000").First(&profile).Error)
	assert.Equal(t, models.TierFree, profile.SubscriptionCurrent)
	assert.Nil(t, profile.SubExpiryDate)
}

func TestVerifyUpgradesSubscription(t *testing.T) {
	app, db, _ := newTestApp(t)
	seedUser(t, db)

	_, body := postJSON(t, app, "/api/payment/initiate", map[string]interface{}{
		"plan": "premium", "price": 999, "userId": "KM1700000000000",
	})
	data := body["data"].(map[string]interface{})
	paymentID := uint(data["paymentId"].(float64))
	orderID := data["orderId"].(string)

	signature := utils.SignCheckout(orderID, "pay_abc", testSecret)
	resp, _ := postJSON(t, app, "/api/payment/verify", map[string]interface{}{
		"razorpay_order_id":   orderID,
		"razorpay_payment_id": "pay_abc",
		"razorpay_signature":  signature,
		"paymentId":           paymentID,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var order models.PaymentOrder
	require.NoError(t, db.First(&order, paymentID).Error)
	assert.Equal(t, models.PaymentPaid, order.Status)
	assert.Equal(t, "pay_abc", order.RazorpayPaymentID)

	var profile models.Profile
	require.NoError(t, db.Where("profile_id = ?", "KM1700000000000").First(&profile).Error)
	assert.Equal(t, models.TierPremium, profile.SubscriptionCurrent)
	require.NotNil(t, profile.SubExpiryDate)
	assert.WithinDuration(t, time.Now().Add(90*24*time.Hour), *profile.SubExpiryDate, 5*time.Second)

	var history []models.SubscriptionPeriod
	require.NoError(t, json.Unmarshal(profile.SubscriptionHistory, &history))
	require.Len(t, history, 1)
	assert.Equal(t, models.TierPremium, history[0].Type)
	assert.Equal(t, models.SubscriptionActive, history[0].Status)
}

func TestVerifyReplayDoesNotDuplicateHistory(t *testing.T) {
	app, db, _ := newTestApp(t)
	seedUser(t, db)

	_, body := postJSON(t, app, "/api/payment/initiate", map[string]interface{}{
		"plan": "premium", "price": 999, "userId": "KM1700000000000",
	})
	data := body["data"].(map[string]interface{})
	paymentID := uint(data["paymentId"].(float64))
	orderID := data["orderId"].(string)

	payload := map[string]interface{}{
		"razorpay_order_id":   orderID,
		"razorpay_payment_id": "pay_abc",
		"razorpay_signature":  utils.SignCheckout(orderID, "pay_abc", testSecret),
		"paymentId":           paymentID,
	}
	resp, _ := postJSON(t, app, "/api/payment/verify", payload)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// A replay with the same valid signature is rejected and appends nothing.
	resp, _ = postJSON(t, app, "/api/payment/verify", payload)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var profile models.Profile
	require.NoError(t, db.Where("profile_id = ?", "KM1700000000000").First(&profile).Error)
	var history []models.SubscriptionPeriod
	require.NoError(t, json.Unmarshal(profile.SubscriptionHistory, &history))
	assert.Len(t, history, 1)
}

func TestVerifyPremiumPlusDuration(t *testing.T) {
	app, db, _ := newTestApp(t)
	seedUser(t, db)

	_, body := postJSON(t, app, "/api/payment/initiate", map[string]interface{}{
		"plan": "premium_plus", "price": 1999, "userId": "KM1700000000000",
	})
	data := body["data"].(map[string]interface{})
	paymentID := uint(data["paymentId"].(float64))
	orderID := data["orderId"].(string)

	signature := utils.SignCheckout(orderID, "pay_xyz", testSecret)
	resp, _ := postJSON(t, app, "/api/payment/verify", map[string]interface{}{
		"razorpay_order_id":   orderID,
		"razorpay_payment_id": "pay_xyz",
		"razorpay_signature":  signature,
		"paymentId":           paymentID,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var profile models.Profile
	require.NoError(t, db.Where("profile_id = ?", "KM1700000000000").First(&profile).Error)
	assert.Equal(t, models.TierPremiumPlus, profile.SubscriptionCurrent)
	require.NotNil(t, profile.SubExpiryDate)
	assert.WithinDuration(t, time.Now().Add(180*24*time.Hour), *profile.SubExpiryDate, 5*time.Second)
}

func TestVerifyOrderMismatch(t *testing.T) {
	app, db, _ := newTestApp(t)
	seedUser(t, db)

	_, body := postJSON(t, app, "/api/payment/initiate", map[string]interface{}{
		"plan": "premium", "price": 999, "userId": "KM1700000000000",
	})
	paymentID := uint(body["data"].(map[string]interface{})["paymentId"].(float64))

	resp, _ := postJSON(t, app, "/api/payment/verify", map[string]interface{}{
		"razorpay_order_id":   "order_other",
		"razorpay_payment_id": "pay_abc",
		"razorpay_signature":  utils.SignCheckout("order_other", "pay_abc", testSecret),
		"paymentId":           paymentID,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestVerifyUnknownOrder(t *testing.T) {
	app, _, _ := newTestApp(t)

	resp, _ := postJSON(t, app, "/api/payment/verify", map[string]interface{}{
		"razorpay_order_id":   "order_test_1",
		"razorpay_payment_id": "pay_abc",
		"razorpay_signature":  "sig",
		"paymentId":           42,
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
