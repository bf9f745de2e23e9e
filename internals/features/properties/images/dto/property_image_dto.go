package dto

import (
	"strings"

	"github.com/google/uuid"

	"estatehub_backend/internals/features/properties/images/model"
)

type CreateImageRequest struct {
	URL          string `json:"url" validate:"required,max=1000"`
	Caption      string `json:"caption" validate:"max=300"`
	DisplayOrder *int   `json:"displayOrder" validate:"omitempty,gte=0"`
	IsPrimary    bool   `json:"isPrimary"`
	IsVideo      bool   `json:"isVideo"`
}

func (r *CreateImageRequest) ToModel(propertyID uuid.UUID, order int, approved bool) model.PropertyImageModel {
	return model.PropertyImageModel{
		PropertyID:   propertyID,
		URL:          strings.TrimSpace(r.URL),
		Caption:      strings.TrimSpace(r.Caption),
		DisplayOrder: order,
		IsPrimary:    r.IsPrimary,
		IsApproved:   approved,
		IsVideo:      r.IsVideo,
	}
}

type UpdateImageRequest struct {
	Caption      *string `json:"caption" validate:"omitempty,max=300"`
	DisplayOrder *int    `json:"displayOrder" validate:"omitempty,gte=0"`
	IsPrimary    *bool   `json:"isPrimary"`
}

func (r *UpdateImageRequest) Apply(m *model.PropertyImageModel) {
	if r.Caption != nil {
		m.Caption = strings.TrimSpace(*r.Caption)
	}
	if r.DisplayOrder != nil {
		m.DisplayOrder = *r.DisplayOrder
	}
	if r.IsPrimary != nil {
		m.IsPrimary = *r.IsPrimary
	}
}

type ReorderImagesRequest struct {
	ImageIDs []uuid.UUID `json:"imageIds" validate:"required,min=1"`
}

type ApproveImageRequest struct {
	IsApproved *bool `json:"isApproved"`
}
