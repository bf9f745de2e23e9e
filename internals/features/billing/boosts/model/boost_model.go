package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	propertyModel "estatehub_backend/internals/features/properties/properties/model"
)

const (
	BoostFeatured = "featured"
	BoostPremium  = "premium"
)

const (
	StatusPendingPayment  = "pending_payment"
	StatusPendingApproval = "pending_approval"
	StatusApproved        = "approved"
	StatusRejected        = "rejected"
	StatusExpired         = "expired"
	StatusCancelled       = "cancelled"
)

// BoostDuration is the window an approved boost stays live.
const BoostDuration = 7 * 24 * time.Hour

// ListingBoostModel is a paid promotion of one property.
// Status: pending_payment → pending_approval → approved|rejected, plus expired and cancelled.
type ListingBoostModel struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	PropertyID   uuid.UUID  `gorm:"type:uuid;not null;index" json:"propertyId"`
	UserID       uuid.UUID  `gorm:"type:uuid;not null;index" json:"userId"`
	BoostType    string     `gorm:"size:20;not null" json:"boostType"`
	Status       string     `gorm:"size:20;not null;index" json:"status"`
	IsActive     bool       `gorm:"not null;default:false" json:"isActive"`
	Amount       float64    `gorm:"not null" json:"amount"`
	Currency     string     `gorm:"size:3;not null;default:'INR'" json:"currency"`
	DurationDays int        `gorm:"not null;default:7" json:"durationDays"`
	PaymentID    *uuid.UUID `gorm:"type:uuid" json:"paymentId"`
	StartDate    *time.Time `json:"startDate"`
	EndDate      *time.Time `gorm:"index" json:"endDate"`
	AdminNotes   string     `gorm:"type:text" json:"adminNotes"`
	ReviewedBy   *uuid.UUID `gorm:"type:uuid" json:"reviewedBy"`
	ReviewedAt   *time.Time `json:"reviewedAt"`
	CreatedAt    time.Time  `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time  `gorm:"autoUpdateTime" json:"updatedAt"`

	Property *propertyModel.PropertyModel `gorm:"foreignKey:PropertyID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

func (ListingBoostModel) TableName() string { return "listing_boosts" }

func (m *ListingBoostModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// PropertyFlagColumn is the properties column a boost type switches on.
func PropertyFlagColumn(boostType string) string {
	if boostType == BoostPremium {
		return "is_premium"
	}
	return "is_featured"
}
