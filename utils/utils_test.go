package utils

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"kmatch/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func TestGenerateOTP(t *testing.T) {
	for i := 0; i < 100; i++ {
		assert.Regexp(t, `^\d{6}$`, GenerateOTP())
	}
}

func TestNewProfileID(t *testing.T) {
	id := NewProfileID()
	assert.True(t, strings.HasPrefix(id, "KM"))
	assert.Regexp(t, `^KM\d{13}$`, id)
}

func TestAgeFromDOB(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	// Year subtraction only; the birthday not having happened yet this
	// year does not reduce the result.
	assert.Equal(t, 24, AgeFromDOB("2000-06-15", now))
	assert.Equal(t, 24, AgeFromDOB("2000-01-01", now))
	assert.Equal(t, 0, AgeFromDOB("", now))
	assert.Equal(t, 0, AgeFromDOB("not-a-date", now))
	assert.Equal(t, 24, AgeFromDOB("2000-06-15T00:00:00Z", now))
}

func TestSignCheckout(t *testing.T) {
	sig := SignCheckout("order_abc", "pay_xyz", "secret")
	assert.Len(t, sig, 64)
	assert.Equal(t, sig, SignCheckout("order_abc", "pay_xyz", "secret"))
	assert.NotEqual(t, sig, SignCheckout("order_abc", "pay_xyz", "other"))
	assert.NotEqual(t, sig, SignCheckout("order_abd", "pay_xyz", "secret"))
}

type recordingMailer struct {
	sent []string
}

func (m *recordingMailer) Send(to []string, subject, htmlBody string) error {
	m.sent = append(m.sent, to[0])
	return nil
}

func TestProcessExpiringSubscriptions(t *testing.T) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Profile{}))

	soon := time.Now().Add(24 * time.Hour)
	far := time.Now().Add(30 * 24 * time.Hour)

	profiles := []models.Profile{
		{ProfileID: "KM1", Email: "soon@example.com", SubscriptionCurrent: models.TierPremium, SubExpiryDate: &soon},
		{ProfileID: "KM2", Email: "far@example.com", SubscriptionCurrent: models.TierPremium, SubExpiryDate: &far},
		{ProfileID: "KM3", Email: "free@example.com", SubscriptionCurrent: models.TierFree},
		{ProfileID: "KM4", Email: "done@example.com", SubscriptionCurrent: models.TierPremiumPlus, SubExpiryDate: &soon, SubReminderSent: true},
	}
	for i := range profiles {
		require.NoError(t, db.Create(&profiles[i]).Error)
	}

	mailer := &recordingMailer{}
	scheduler := NewReminderScheduler(db, mailer)
	scheduler.ProcessExpiringSubscriptions()

	assert.Equal(t, []string{"soon@example.com"}, mailer.sent)

	// The reminder is sent once; a second sweep finds nothing.
	var reminded models.Profile
	require.NoError(t, db.Where("profile_id = ?", "KM1").First(&reminded).Error)
	assert.True(t, reminded.SubReminderSent)
	// Tier and expiry are never touched by the sweep.
	assert.Equal(t, models.TierPremium, reminded.SubscriptionCurrent)

	mailer.sent = nil
	scheduler.ProcessExpiringSubscriptions()
	assert.Empty(t, mailer.sent)
}
