package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	OtpTTL         = 10 * time.Minute
	OtpMaxAttempts = 3
	OtpCodeLength  = 6
)

// OTP purposes.
const (
	PurposeVerifyEmail   = "verify_email"
	PurposeVerifyPhone   = "verify_phone"
	PurposeLogin         = "login"
	PurposeResetPassword = "reset_password"
	PurposeListing       = "listing"
)

// OtpRequestModel is a pending challenge for an email or a phone. Sending a new code for the
// same identifier deletes older rows, so at most one is live.
type OtpRequestModel struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Email       *string    `gorm:"size:255;index" json:"email"`
	Phone       *string    `gorm:"size:32;index" json:"phone"`
	CodeHash    string     `gorm:"size:128;not null" json:"-"`
	Purpose     string     `gorm:"size:40;not null" json:"purpose"`
	ExpiresAt   time.Time  `gorm:"not null;index" json:"expiresAt"`
	Attempts    int        `gorm:"not null" json:"attemptCount"`
	MaxAttempts int        `gorm:"not null" json:"maxAttempts"`
	ConsumedAt  *time.Time `json:"consumedAt"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"createdAt"`
}

func (OtpRequestModel) TableName() string { return "otp_requests" }

func (o *OtpRequestModel) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}
