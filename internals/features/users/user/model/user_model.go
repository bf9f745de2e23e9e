package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserModel is an account. Email and phone are both optional but at least one is set.
// PasswordHash is nil for OTP-only accounts.
type UserModel struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Email           *string    `gorm:"size:255;uniqueIndex" json:"email"`
	Phone           *string    `gorm:"size:32;uniqueIndex" json:"phone"`
	Name            string     `gorm:"size:150" json:"name"`
	PasswordHash    *string    `gorm:"column:password_hash" json:"-"`
	EmailVerifiedAt *time.Time `json:"emailVerifiedAt"`
	PhoneVerifiedAt *time.Time `json:"phoneVerifiedAt"`
	ActiveRoleID    *uuid.UUID `gorm:"type:uuid;index" json:"activeRoleId"`
	IsActive        bool       `gorm:"not null" json:"isActive"`
	LastLoginAt     *time.Time `json:"lastLoginAt"`
	CreatedAt       time.Time  `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt       time.Time  `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (UserModel) TableName() string {
	return "users"
}

func (u *UserModel) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

func (u *UserModel) EmailValue() string {
	if u.Email == nil {
		return ""
	}
	return *u.Email
}

func (u *UserModel) PhoneValue() string {
	if u.Phone == nil {
		return ""
	}
	return *u.Phone
}

// NormalizeEmail lowercases and trims; returns nil for blank input.
func NormalizeEmail(s string) *string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return nil
	}
	return &s
}

// NormalizePhone drops spaces and dashes; returns nil for blank input.
func NormalizePhone(s string) *string {
	s = strings.NewReplacer(" ", "", "-", "", "(", "", ")", "").Replace(strings.TrimSpace(s))
	if s == "" {
		return nil
	}
	return &s
}
