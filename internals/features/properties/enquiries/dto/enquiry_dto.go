package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"estatehub_backend/internals/features/properties/enquiries/model"
)

type CreateEnquiryRequest struct {
	PropertyID uuid.UUID `json:"propertyId" validate:"required"`
	Name       string    `json:"name" validate:"max=120"`
	Email      string    `json:"email" validate:"omitempty,email,max=255"`
	Phone      string    `json:"phone" validate:"max=30"`
	Message    string    `json:"message" validate:"max=5000"`
}

func (r *CreateEnquiryRequest) ToModel(userID *uuid.UUID) model.EnquiryModel {
	return model.EnquiryModel{
		PropertyID: r.PropertyID,
		UserID:     userID,
		Name:       strings.TrimSpace(r.Name),
		Email:      strings.ToLower(strings.TrimSpace(r.Email)),
		Phone:      strings.TrimSpace(r.Phone),
		Message:    strings.TrimSpace(r.Message),
		Status:     model.EnquiryNew,
	}
}

type UpdateEnquiryRequest struct {
	Status *string `json:"status" validate:"omitempty,oneof=new pending contacted closed"`
	Notes  *string `json:"notes" validate:"omitempty,max=5000"`
}

func (r *UpdateEnquiryRequest) Apply(m *model.EnquiryModel) {
	if r.Status != nil {
		m.Status = *r.Status
	}
	if r.Notes != nil {
		m.Notes = strings.TrimSpace(*r.Notes)
	}
}

// EnquiryRow is an enquiry joined with the property it is about.
type EnquiryRow struct {
	ID            uuid.UUID  `json:"id"`
	PropertyID    uuid.UUID  `json:"propertyId"`
	PropertyTitle string     `json:"propertyTitle"`
	PropertyCity  string     `json:"propertyCity"`
	OwnerID       uuid.UUID  `json:"ownerId"`
	UserID        *uuid.UUID `json:"userId"`
	Name          string     `json:"name"`
	Email         string     `json:"email"`
	Phone         string     `json:"phone"`
	Message       string     `json:"message"`
	Status        string     `json:"status"`
	Notes         string     `json:"notes"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

const EnquiryRowSelect = `enquiries.id, enquiries.property_id, properties.title AS property_title,
properties.city AS property_city, properties.owner_id, enquiries.user_id, enquiries.name, enquiries.email,
enquiries.phone, enquiries.message, enquiries.status, enquiries.notes, enquiries.created_at, enquiries.updated_at`
