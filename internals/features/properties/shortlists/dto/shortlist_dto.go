package dto

import (
	"time"

	"github.com/google/uuid"

	propertyDTO "estatehub_backend/internals/features/properties/properties/dto"
)

type CreateShortlistRequest struct {
	PropertyID uuid.UUID `json:"propertyId" validate:"required"`
	Notes      string    `json:"notes" validate:"max=2000"`
}

type ShortlistResponse struct {
	ID         uuid.UUID                     `json:"id"`
	PropertyID uuid.UUID                     `json:"propertyId"`
	Notes      string                        `json:"notes"`
	CreatedAt  time.Time                     `json:"createdAt"`
	Property   *propertyDTO.PropertyResponse `json:"property"`
}

type ShortlistCheckResponse struct {
	Shortlisted bool       `json:"shortlisted"`
	ID          *uuid.UUID `json:"id"`
}
