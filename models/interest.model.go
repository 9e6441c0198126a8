package models

import "time"

// Interest entry kinds
const (
	InterestKindInterested = "interested"
	InterestKindPassed     = "passed"
)

// InterestEntry is one (owner, target, kind) signal. The unique index gives
// set semantics: re-sending an interest is an insert that conflicts and does
// nothing. Entries are hard-deleted so a removed interest can be re-sent,
// which is why this model does not embed gorm.Model.
type InterestEntry struct {
	ID              uint      `gorm:"primarykey" json:"id"`
	CreatedAt       time.Time `json:"createdAt"`
	UserProfileID   string    `gorm:"not null;uniqueIndex:idx_interest_owner_target_kind,priority:1" json:"userProfileId"`
	TargetProfileID string    `gorm:"not null;uniqueIndex:idx_interest_owner_target_kind,priority:2;index" json:"targetProfileId"`
	Kind            string    `gorm:"not null;size:16;uniqueIndex:idx_interest_owner_target_kind,priority:3" json:"kind"`
}
