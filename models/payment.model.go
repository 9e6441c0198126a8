package models

import "gorm.io/gorm"

// Payment order statuses. Status only advances created -> paid (or failed)
// after signature verification.
const (
	PaymentCreated = "created"
	PaymentPaid    = "paid"
	PaymentFailed  = "failed"
)

// PaymentOrder is one checkout attempt against the payment gateway.
type PaymentOrder struct {
	gorm.Model
	UserID            uint   `gorm:"not null;index" json:"userId"`
	Plan              string `gorm:"not null" json:"plan"`
	Price             uint   `gorm:"not null" json:"price"`
	RazorpayOrderID   string `gorm:"index" json:"razorpayOrderId"`
	RazorpayPaymentID string `json:"razorpayPaymentId"`
	RazorpaySignature string `json:"razorpaySignature"`
	Status            string `gorm:"not null;default:'created'" json:"status"`
}
