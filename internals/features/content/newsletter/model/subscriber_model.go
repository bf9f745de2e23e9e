package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NewsletterSubscriberModel struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Email          string     `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Name           string     `gorm:"size:150" json:"name"`
	Source         string     `gorm:"size:60;not null;default:'website'" json:"source"`
	IsActive       bool       `gorm:"not null;default:true" json:"isActive"`
	SubscribedAt   time.Time  `gorm:"not null" json:"subscribedAt"`
	UnsubscribedAt *time.Time `json:"unsubscribedAt"`
	CreatedAt      time.Time  `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt      time.Time  `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (NewsletterSubscriberModel) TableName() string { return "newsletter_subscribers" }

func (m *NewsletterSubscriberModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.SubscribedAt.IsZero() {
		m.SubscribedAt = time.Now()
	}
	return nil
}
