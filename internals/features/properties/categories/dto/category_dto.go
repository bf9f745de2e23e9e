package dto

import (
	"strings"

	"github.com/google/uuid"

	"estatehub_backend/internals/features/properties/categories/model"
)

type CreateCategoryRequest struct {
	Name         string     `json:"name" validate:"required,min=2,max=120"`
	Description  string     `json:"description" validate:"max=2000"`
	Icon         string     `json:"icon" validate:"max=120"`
	ParentID     *uuid.UUID `json:"parentId"`
	Segment      string     `json:"segment" validate:"omitempty,oneof=rent buy commercial"`
	SupportsRent *bool      `json:"supportsRent"`
	SupportsSale *bool      `json:"supportsSale"`
	IsCommercial *bool      `json:"isCommercial"`
	DisplayOrder int        `json:"displayOrder" validate:"gte=0"`
	IsActive     *bool      `json:"isActive"`
}

// ToModel applies segment defaults: rent supports rent, buy supports sale, commercial both.
func (r *CreateCategoryRequest) ToModel() model.PropertyCategoryModel {
	m := model.PropertyCategoryModel{
		Name:         strings.TrimSpace(r.Name),
		Description:  strings.TrimSpace(r.Description),
		Icon:         strings.TrimSpace(r.Icon),
		ParentID:     r.ParentID,
		Segment:      r.Segment,
		DisplayOrder: r.DisplayOrder,
		IsActive:     true,
	}
	switch m.Segment {
	case "rent":
		m.SupportsRent = true
	case "buy":
		m.SupportsSale = true
	case "commercial":
		m.SupportsRent, m.SupportsSale, m.IsCommercial = true, true, true
	}
	if r.SupportsRent != nil {
		m.SupportsRent = *r.SupportsRent
	}
	if r.SupportsSale != nil {
		m.SupportsSale = *r.SupportsSale
	}
	if r.IsCommercial != nil {
		m.IsCommercial = *r.IsCommercial
	}
	if r.IsActive != nil {
		m.IsActive = *r.IsActive
	}
	return m
}

type UpdateCategoryRequest struct {
	Name         *string `json:"name" validate:"omitempty,min=2,max=120"`
	Description  *string `json:"description" validate:"omitempty,max=2000"`
	Icon         *string `json:"icon" validate:"omitempty,max=120"`
	SupportsRent *bool   `json:"supportsRent"`
	SupportsSale *bool   `json:"supportsSale"`
	IsCommercial *bool   `json:"isCommercial"`
	DisplayOrder *int    `json:"displayOrder" validate:"omitempty,gte=0"`
	IsActive     *bool   `json:"isActive"`
}

// Apply reports whether the name changed, which means the slug must be recomputed.
func (r *UpdateCategoryRequest) Apply(m *model.PropertyCategoryModel) (renamed bool) {
	if r.Name != nil {
		name := strings.TrimSpace(*r.Name)
		renamed = name != m.Name
		m.Name = name
	}
	if r.Description != nil {
		m.Description = strings.TrimSpace(*r.Description)
	}
	if r.Icon != nil {
		m.Icon = strings.TrimSpace(*r.Icon)
	}
	if r.SupportsRent != nil {
		m.SupportsRent = *r.SupportsRent
	}
	if r.SupportsSale != nil {
		m.SupportsSale = *r.SupportsSale
	}
	if r.IsCommercial != nil {
		m.IsCommercial = *r.IsCommercial
	}
	if r.DisplayOrder != nil {
		m.DisplayOrder = *r.DisplayOrder
	}
	if r.IsActive != nil {
		m.IsActive = *r.IsActive
	}
	return renamed
}
