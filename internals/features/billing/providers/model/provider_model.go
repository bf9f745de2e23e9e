package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	ModeSandbox = "sandbox"
	ModeLive    = "live"
)

// Credentials is the per-mode key pair shared by payment and notification providers.
type Credentials struct {
	Mode          string `gorm:"size:10;not null;default:'sandbox'"`
	SandboxKey    string `gorm:"type:text"`
	SandboxSecret string `gorm:"type:text"`
	LiveKey       string `gorm:"type:text"`
	LiveSecret    string `gorm:"type:text"`
	WebhookSecret string `gorm:"type:text"`
}

// Active returns the key pair of the current mode.
func (c Credentials) Active() (key, secret string) {
	if c.Mode == ModeLive {
		return c.LiveKey, c.LiveSecret
	}
	return c.SandboxKey, c.SandboxSecret
}

// PaymentProviderModel holds one row per gateway name.
type PaymentProviderModel struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Provider    string         `gorm:"size:40;not null;uniqueIndex"`
	DisplayName string         `gorm:"size:100"`
	IsEnabled   bool           `gorm:"not null;default:false"`
	Credentials Credentials    `gorm:"embedded"`
	Settings    datatypes.JSON
	UpdatedBy   *uuid.UUID     `gorm:"type:uuid"`
	CreatedAt   time.Time      `gorm:"autoCreateTime"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime"`
}

func (PaymentProviderModel) TableName() string { return "payment_providers" }

func (m *PaymentProviderModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// NotificationProviderModel holds one row per SMS/email/WhatsApp provider name.
type NotificationProviderModel struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Provider    string         `gorm:"size:40;not null;uniqueIndex"`
	Channel     string         `gorm:"size:20;not null"`
	DisplayName string         `gorm:"size:100"`
	SenderID    string         `gorm:"size:120"`
	IsEnabled   bool           `gorm:"not null;default:false"`
	Credentials Credentials    `gorm:"embedded"`
	Settings    datatypes.JSON
	UpdatedBy   *uuid.UUID     `gorm:"type:uuid"`
	CreatedAt   time.Time      `gorm:"autoCreateTime"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime"`
}

func (NotificationProviderModel) TableName() string { return "notification_providers" }

func (m *NotificationProviderModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
