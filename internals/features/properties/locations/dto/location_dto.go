package dto

import (
	"strings"

	"github.com/google/uuid"

	"estatehub_backend/internals/features/properties/locations/model"
)

type CreateCityRequest struct {
	Name      string `json:"name" validate:"required,min=2,max=120"`
	State     string `json:"state" validate:"required,min=2,max=120"`
	IsActive  *bool  `json:"isActive"`
	IsPopular bool   `json:"isPopular"`
}

func (r *CreateCityRequest) ToModel() model.CityModel {
	m := model.CityModel{
		Name:      strings.TrimSpace(r.Name),
		State:     strings.TrimSpace(r.State),
		IsActive:  true,
		IsPopular: r.IsPopular,
	}
	if r.IsActive != nil {
		m.IsActive = *r.IsActive
	}
	return m
}

type UpdateCityRequest struct {
	Name      *string `json:"name" validate:"omitempty,min=2,max=120"`
	State     *string `json:"state" validate:"omitempty,min=2,max=120"`
	IsActive  *bool   `json:"isActive"`
	IsPopular *bool   `json:"isPopular"`
}

func (r *UpdateCityRequest) Apply(m *model.CityModel) (renamed bool) {
	if r.Name != nil {
		name := strings.TrimSpace(*r.Name)
		renamed = name != m.Name
		m.Name = name
	}
	if r.State != nil {
		m.State = strings.TrimSpace(*r.State)
	}
	if r.IsActive != nil {
		m.IsActive = *r.IsActive
	}
	if r.IsPopular != nil {
		m.IsPopular = *r.IsPopular
	}
	return renamed
}

type CreateLocalityRequest struct {
	CityID   uuid.UUID `json:"cityId" validate:"required"`
	Name     string    `json:"name" validate:"required,min=2,max=120"`
	Pincode  string    `json:"pincode" validate:"omitempty,max=12"`
	IsActive *bool     `json:"isActive"`
}

func (r *CreateLocalityRequest) ToModel() model.LocalityModel {
	m := model.LocalityModel{
		CityID:   r.CityID,
		Name:     strings.TrimSpace(r.Name),
		Pincode:  strings.TrimSpace(r.Pincode),
		IsActive: true,
	}
	if r.IsActive != nil {
		m.IsActive = *r.IsActive
	}
	return m
}

type UpdateLocalityRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=2,max=120"`
	Pincode  *string `json:"pincode" validate:"omitempty,max=12"`
	IsActive *bool   `json:"isActive"`
}

func (r *UpdateLocalityRequest) Apply(m *model.LocalityModel) (renamed bool) {
	if r.Name != nil {
		name := strings.TrimSpace(*r.Name)
		renamed = name != m.Name
		m.Name = name
	}
	if r.Pincode != nil {
		m.Pincode = strings.TrimSpace(*r.Pincode)
	}
	if r.IsActive != nil {
		m.IsActive = *r.IsActive
	}
	return renamed
}

type CityWithLocalities struct {
	model.CityModel
	Localities []model.LocalityModel `json:"localities"`
}
