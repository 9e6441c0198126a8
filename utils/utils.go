package utils

import (
	"fmt"
	"math/rand"
	"time"
)

// DefaultProfileImage is served for profiles without an uploaded photo.
const DefaultProfileImage = "https://images.unsplash.com/photo-1472099645785-5658abf4ff4e?ixlib=rb-4.0.3&auto=format&fit=crop&w=300&q=80"

// GenerateOTP generates a 6-digit OTP
func GenerateOTP() string {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	otp := ""
	for i := 0; i < 6; i++ {
		otp += fmt.Sprintf("%d", rng.Intn(10))
	}
	return otp
}

// NewProfileID derives a profile identifier from the creation instant.
func NewProfileID() string {
	return fmt.Sprintf("KM%d", time.Now().UnixMilli())
}

// AgeFromDOB computes age as currentYear - birthYear. This is deliberately
// whole-year subtraction, not calendar-accurate: a birth date of 2000-06-15
// queried on 2024-01-01 yields 24. Returns 0 when the date cannot be parsed.
func AgeFromDOB(dob string, now time.Time) int {
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, dob); err == nil {
			return now.Year() - t.Year()
		}
	}
	return 0
}
