package dto

import (
	"estatehub_backend/internals/features/billing/payments/model"
)

type UpdatePaymentStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending completed failed refunded"`
	Notes  string `json:"notes" validate:"max=2000"`
}

// PaymentRow is a payment joined with its payer and property.
type PaymentRow struct {
	model.PaymentModel
	UserName      string  `json:"userName"`
	UserEmail     *string `json:"userEmail"`
	PropertyTitle *string `json:"propertyTitle"`
	BoostType     *string `json:"boostType"`
	BoostStatus   *string `json:"boostStatus"`
}

const PaymentRowSelect = `payments.*,
	users.name AS user_name,
	users.email AS user_email,
	properties.title AS property_title,
	listing_boosts.boost_type AS boost_type,
	listing_boosts.status AS boost_status`

type PaymentSummary struct {
	Status string  `json:"status"`
	Count  int64   `json:"count"`
	Amount float64 `json:"amount"`
}
