package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	propertyModel "estatehub_backend/internals/features/properties/properties/model"
)

// PropertyImageModel belongs to one property. Unapproved images are hidden from the public gallery.
type PropertyImageModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	PropertyID   uuid.UUID `gorm:"type:uuid;not null;index" json:"propertyId"`
	URL          string    `gorm:"size:1000;not null" json:"url"`
	Caption      string    `gorm:"size:300" json:"caption"`
	DisplayOrder int       `gorm:"not null" json:"displayOrder"`
	IsPrimary    bool      `gorm:"not null" json:"isPrimary"`
	IsApproved   bool      `gorm:"not null;index" json:"isApproved"`
	IsVideo      bool      `gorm:"not null" json:"isVideo"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updatedAt"`

	Property *propertyModel.PropertyModel `gorm:"foreignKey:PropertyID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

func (PropertyImageModel) TableName() string { return "property_images" }

func (m *PropertyImageModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
