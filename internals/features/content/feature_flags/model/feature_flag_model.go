package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FeatureFlagModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"size:100;not null;uniqueIndex" json:"name"`
	Description string    `gorm:"size:500" json:"description"`
	IsEnabled   bool      `gorm:"not null;default:false" json:"isEnabled"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (FeatureFlagModel) TableName() string { return "feature_flags" }

func (m *FeatureFlagModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
