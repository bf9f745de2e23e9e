package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	propertyModel "estatehub_backend/internals/features/properties/properties/model"
)

const (
	EnquiryNew       = "new"
	EnquiryPending   = "pending"
	EnquiryContacted = "contacted"
	EnquiryClosed    = "closed"
)

// EnquiryModel is a prospect's message about a property. UserID is set when the sender was signed in.
type EnquiryModel struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	PropertyID uuid.UUID  `gorm:"type:uuid;not null;index" json:"propertyId"`
	UserID     *uuid.UUID `gorm:"type:uuid;index" json:"userId"`
	Name       string     `gorm:"size:120;not null" json:"name"`
	Email      string     `gorm:"size:255;not null" json:"email"`
	Phone      string     `gorm:"size:30;not null" json:"phone"`
	Message    string     `gorm:"type:text" json:"message"`
	Status     string     `gorm:"size:20;not null;index" json:"status"`
	Notes      string     `gorm:"type:text" json:"notes"`
	CreatedAt  time.Time  `gorm:"autoCreateTime;index" json:"createdAt"`
	UpdatedAt  time.Time  `gorm:"autoUpdateTime" json:"updatedAt"`

	Property *propertyModel.PropertyModel `gorm:"foreignKey:PropertyID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

func (EnquiryModel) TableName() string { return "enquiries" }

func (m *EnquiryModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.Status == "" {
		m.Status = EnquiryNew
	}
	return nil
}
