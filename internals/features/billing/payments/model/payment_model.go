package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	boostModel "estatehub_backend/internals/features/billing/boosts/model"
	propertyModel "estatehub_backend/internals/features/properties/properties/model"
)

const (
	PaymentPending   = "pending"
	PaymentCompleted = "completed"
	PaymentFailed    = "failed"
	PaymentRefunded  = "refunded"
)

const (
	ProviderDemo     = "demo"
	ProviderMidtrans = "midtrans"
)

type PaymentModel struct {
	ID             uuid.UUID         `gorm:"type:uuid;primaryKey" json:"id"`
	UserID         uuid.UUID         `gorm:"type:uuid;not null;index" json:"userId"`
	PropertyID     *uuid.UUID        `gorm:"type:uuid;index" json:"propertyId"`
	BoostID        *uuid.UUID        `gorm:"type:uuid;index" json:"boostId"`
	OrderID        string            `gorm:"size:64;not null;uniqueIndex" json:"orderId"`
	Amount         float64           `gorm:"not null" json:"amount"`
	Currency       string            `gorm:"size:3;not null;default:'INR'" json:"currency"`
	Status         string            `gorm:"size:20;not null;index" json:"status"`
	Provider       string            `gorm:"size:40;not null" json:"provider"`
	Description    string            `gorm:"size:250" json:"description"`
	SnapToken      string            `gorm:"size:120" json:"snapToken,omitempty"`
	RedirectURL    string            `gorm:"size:500" json:"redirectUrl,omitempty"`
	GatewayRef     string            `gorm:"size:120" json:"gatewayRef"`
	PaymentType    string            `gorm:"size:40" json:"paymentType"`
	GatewayPayload datatypes.JSONMap `json:"-"`
	Notes          string            `gorm:"type:text" json:"notes"`
	PaidAt         *time.Time        `json:"paidAt"`
	FailedAt       *time.Time        `json:"failedAt"`
	RefundedAt     *time.Time        `json:"refundedAt"`
	CreatedAt      time.Time         `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt      time.Time         `gorm:"autoUpdateTime" json:"updatedAt"`

	Property *propertyModel.PropertyModel  `gorm:"foreignKey:PropertyID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"-"`
	Boost    *boostModel.ListingBoostModel `gorm:"foreignKey:BoostID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"-"`
}

func (PaymentModel) TableName() string { return "payments" }

func (m *PaymentModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// SetStatus moves the payment to status and stamps the matching timestamp.
func (m *PaymentModel) SetStatus(status string, at time.Time) {
	m.Status = status
	switch status {
	case PaymentCompleted:
		if m.PaidAt == nil {
			m.PaidAt = &at
		}
	case PaymentFailed:
		m.FailedAt = &at
	case PaymentRefunded:
		m.RefundedAt = &at
	}
}
