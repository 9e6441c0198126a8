package utils

import (
	"log"
	"time"

	"kmatch/models"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// ReminderScheduler mails holders of paid subscriptions expiring within two
// days. It never transitions subscription state: an expired period stays
// current until a later upgrade overwrites it.
type ReminderScheduler struct {
	db     *gorm.DB
	mailer Mailer
	cron   *cron.Cron
}

func NewReminderScheduler(db *gorm.DB, mailer Mailer) *ReminderScheduler {
	return &ReminderScheduler{db: db, mailer: mailer, cron: cron.New()}
}

// Start schedules the daily reminder run at 9 AM.
func (s *ReminderScheduler) Start() {
	s.cron.AddFunc("0 9 * * *", func() {
		log.Println("[SUBSCRIPTION-SCHEDULER] Running daily expiry reminder check...")
		s.ProcessExpiringSubscriptions()
	})
	s.cron.Start()
	log.Println("[SUBSCRIPTION-SCHEDULER] Subscription reminder scheduler started")
}

func (s *ReminderScheduler) Stop() {
	s.cron.Stop()
}

// ProcessExpiringSubscriptions sends one reminder email per profile whose paid
// subscription expires in the next two days.
func (s *ReminderScheduler) ProcessExpiringSubscriptions() {
	now := time.Now()
	twoDaysFromNow := now.AddDate(0, 0, 2)

	var expiring []models.Profile
	if err := s.db.
		Where("subscription_current <> ? AND sub_reminder_sent = false AND sub_expiry_date IS NOT NULL", models.TierFree).
		Where("sub_expiry_date BETWEEN ? AND ?", now, twoDaysFromNow).
		Find(&expiring).Error; err != nil {
		log.Printf("[SUBSCRIPTION-SCHEDULER] Error fetching expiring subscriptions: %v", err)
		return
	}

	log.Printf("[SUBSCRIPTION-SCHEDULER] Found %d subscriptions expiring soon", len(expiring))

	for _, profile := range expiring {
		SendSubscriptionExpiryReminder(s.mailer, profile.Email, profile.Name, profile.SubscriptionCurrent, profile.SubExpiryDate)

		if err := s.db.Model(&profile).Update("sub_reminder_sent", true).Error; err != nil {
			log.Printf("[SUBSCRIPTION-SCHEDULER] Error flagging reminder for %s: %v", profile.ProfileID, err)
			continue
		}
		log.Printf("[SUBSCRIPTION-SCHEDULER] Sent expiry reminder to %s", profile.Email)
	}
}
