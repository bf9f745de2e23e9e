package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	propertyModel "estatehub_backend/internals/features/properties/properties/model"
)

type ShortlistModel struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_shortlists_user_property" json:"userId"`
	PropertyID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_shortlists_user_property" json:"propertyId"`
	Notes      string    `gorm:"type:text" json:"notes"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"createdAt"`

	Property *propertyModel.PropertyModel `gorm:"foreignKey:PropertyID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

func (ShortlistModel) TableName() string { return "shortlists" }

func (m *ShortlistModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
