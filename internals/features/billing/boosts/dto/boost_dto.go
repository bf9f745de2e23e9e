package dto

import (
	"time"

	"github.com/google/uuid"

	"estatehub_backend/internals/features/billing/boosts/model"
	paymentModel "estatehub_backend/internals/features/billing/payments/model"
)

type BoostPlan struct {
	Type         string  `json:"type"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	Price        float64 `json:"price"`
	Currency     string  `json:"currency"`
	DurationDays int     `json:"durationDays"`
}

type CreateBoostRequest struct {
	PropertyID uuid.UUID `json:"propertyId" validate:"required"`
	BoostType  string    `json:"boostType" validate:"required,oneof=featured premium"`
}

type CreateBoostResponse struct {
	Boost       model.ListingBoostModel   `json:"boost"`
	Payment     paymentModel.PaymentModel `json:"payment"`
	DemoMode    bool                      `json:"demoMode"`
	SnapToken   string                    `json:"snapToken,omitempty"`
	RedirectURL string                    `json:"redirectUrl,omitempty"`
	ClientKey   string                    `json:"clientKey,omitempty"`
	Message     string                    `json:"message"`
}

// PaymentCallbackRequest identifies the payment by id or gateway order id.
type PaymentCallbackRequest struct {
	PaymentID *uuid.UUID `json:"paymentId"`
	OrderID   string     `json:"orderId"`
}

type CallbackResponse struct {
	Boost   *model.ListingBoostModel  `json:"boost"`
	Payment paymentModel.PaymentModel `json:"payment"`
}

type ReviewBoostRequest struct {
	Notes string `json:"notes" validate:"max=2000"`
}

// BoostRow is a boost joined with its property and owner for listings.
type BoostRow struct {
	model.ListingBoostModel
	PropertyTitle string     `json:"propertyTitle"`
	PropertyCity  string     `json:"propertyCity"`
	UserName      string     `json:"userName"`
	UserEmail     *string    `json:"userEmail"`
	PaymentStatus *string    `json:"paymentStatus"`
	PaidAt        *time.Time `json:"paidAt"`
}

const BoostRowSelect = `listing_boosts.*,
	properties.title AS property_title,
	properties.city AS property_city,
	users.name AS user_name,
	users.email AS user_email,
	payments.status AS payment_status,
	payments.paid_at AS paid_at`

// Notification is the subset of a gateway notification the webhook reads.
type Notification struct {
	OrderID           string `json:"order_id"`
	StatusCode        string `json:"status_code"`
	GrossAmount       string `json:"gross_amount"`
	SignatureKey      string `json:"signature_key"`
	TransactionStatus string `json:"transaction_status"`
	FraudStatus       string `json:"fraud_status"`
	TransactionID     string `json:"transaction_id"`
	PaymentType       string `json:"payment_type"`
}
