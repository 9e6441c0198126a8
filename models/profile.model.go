package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Subscription tiers
const (
	TierFree        = "free"
	TierPremium     = "premium"
	TierPremiumPlus = "premium_plus"
)

// Subscription period statuses
const (
	SubscriptionActive    = "active"
	SubscriptionExpired   = "expired"
	SubscriptionCancelled = "cancelled"
)

// Profile is one matrimony listing. It starts as a minimal record holding only
// an email and an OTP challenge, and is filled in once on profile completion.
type Profile struct {
	gorm.Model
	ProfileID string `gorm:"uniqueIndex" json:"profileId"`

	// Personal info
	Name         string    `gorm:"default:''" json:"name"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	Gender       string    `gorm:"default:''" json:"gender"` // male / female
	LookingFor   string    `gorm:"default:''" json:"lookingFor"`
	Mobile       string    `gorm:"default:''" json:"mobile"`
	Hobbies      string    `gorm:"default:''" json:"hobbies"`
	About        string    `gorm:"default:''" json:"about"`
	ProfileImage string    `gorm:"default:''" json:"profileImage"`
	LastActive   time.Time `gorm:"default:NULL" json:"lastActive"`
	LastLogin    time.Time `gorm:"default:NULL" json:"lastLogin"`

	// Demographics
	DateOfBirth   string `gorm:"default:''" json:"dateOfBirth"` // YYYY-MM-DD
	Height        string `gorm:"default:''" json:"height"`
	MaritalStatus string `gorm:"default:''" json:"maritalStatus"`
	Religion      string `gorm:"default:''" json:"religion"`
	Community     string `gorm:"default:''" json:"community"`
	MotherTongue  string `gorm:"default:''" json:"motherTongue"`
	Horoscope     bool   `gorm:"default:false" json:"horoscope"`

	// Professional info
	Education  string `gorm:"default:''" json:"education"`
	Occupation string `gorm:"default:''" json:"occupation"`
	Income     string `gorm:"default:''" json:"income"`

	// Location
	City  string `gorm:"default:''" json:"city"`
	State string `gorm:"default:''" json:"state"`

	// Family
	FatherName string `gorm:"default:''" json:"fatherName"`
	MotherName string `gorm:"default:''" json:"motherName"`
	Siblings   string `gorm:"default:''" json:"siblings"`

	// Credentials
	Password   string `gorm:"default:''" json:"-"`
	RememberMe bool   `gorm:"default:false" json:"rememberMe"`

	// Subscription state. History is append-only; the current period fields are
	// overwritten on each upgrade.
	SubscriptionCurrent string         `gorm:"default:'free'" json:"subscriptionCurrent"`
	SubStartDate        *time.Time     `json:"subscriptionStartDate"`
	SubExpiryDate       *time.Time     `json:"subscriptionExpiryDate"`
	SubPaymentOrderID   *uint          `json:"subscriptionPaymentOrderId"`
	SubAutoRenew        bool           `gorm:"default:false" json:"subscriptionAutoRenew"`
	SubReminderSent     bool           `gorm:"default:false" json:"-"`
	SubscriptionHistory datatypes.JSON `json:"subscriptionHistory"`

	// OTP challenge
	OTPCode      string     `gorm:"size:6" json:"-"`
	OTPExpiresAt *time.Time `json:"-"`
	OTPVerified  bool       `gorm:"default:false" json:"verified"`

	ProfileViews     uint      `gorm:"default:0" json:"profileViews"`
	ProfileCreatedAt time.Time `gorm:"default:NULL" json:"profileCreatedAt"`
	AppVersion       string    `gorm:"default:''" json:"appVersion"`
}

// SubscriptionPeriod is one entry of Profile.SubscriptionHistory.
type SubscriptionPeriod struct {
	Type           string    `json:"type"`
	StartDate      time.Time `json:"startDate"`
	ExpiryDate     time.Time `json:"expiryDate"`
	PaymentOrderID uint      `json:"paymentOrderId"`
	Status         string    `json:"status"`
	UpgradedAt     time.Time `json:"upgradedAt"`
}
