package models

import "gorm.io/gorm"

// Message is one note sent from one profile to another.
type Message struct {
	gorm.Model
	SenderProfileID    string `gorm:"not null;index" json:"senderProfileId"`
	RecipientProfileID string `gorm:"not null;index" json:"recipientProfileId"`
	Body               string `gorm:"not null" json:"message"`
}
