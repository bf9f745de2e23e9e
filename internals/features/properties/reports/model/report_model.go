package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	propertyModel "estatehub_backend/internals/features/properties/properties/model"
)

const (
	ReportPending   = "pending"
	ReportReviewing = "reviewing"
	ReportResolved  = "resolved"
	ReportDismissed = "dismissed"
)

var ReportReasons = []string{"spam", "fraud", "wrong_info", "duplicate", "unavailable", "offensive", "other"}

type ReportModel struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	PropertyID  uuid.UUID  `gorm:"type:uuid;not null;index" json:"propertyId"`
	UserID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"userId"`
	Reason      string     `gorm:"size:40;not null" json:"reason"`
	Description string     `gorm:"type:text" json:"description"`
	Status      string     `gorm:"size:20;not null;index" json:"status"`
	Resolution  string     `gorm:"type:text" json:"resolution"`
	ReviewedBy  *uuid.UUID `gorm:"type:uuid" json:"reviewedBy"`
	ReviewedAt  *time.Time `json:"reviewedAt"`
	CreatedAt   time.Time  `gorm:"autoCreateTime;index" json:"createdAt"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updatedAt"`

	Property *propertyModel.PropertyModel `gorm:"foreignKey:PropertyID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

func (ReportModel) TableName() string { return "reports" }

func (m *ReportModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.Status == "" {
		m.Status = ReportPending
	}
	return nil
}
