package models

import "gorm.io/gorm"

// Valid report reasons and categories
var (
	ReportReasons    = []string{"spam", "inappropriate-content", "fake-profile", "harassment", "other"}
	ReportCategories = []string{"message", "profile", "behaviour", "photos"}
)

// Report is one user-submitted complaint against a profile. Immutable once
// created; the same reporter may report the same target any number of times.
type Report struct {
	gorm.Model
	ReportingUserID   string `gorm:"not null" json:"reportingUserId"`
	ReportedProfileID string `gorm:"not null;index" json:"reportedProfileId"`
	Reason            string `gorm:"not null" json:"reason"`
	Category          string `gorm:"not null" json:"category"`
	Message           string `gorm:"not null" json:"message"`
}
