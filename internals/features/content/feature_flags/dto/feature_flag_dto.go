package dto

import (
	"strings"
	"time"

	"estatehub_backend/internals/features/content/feature_flags/model"
)

type CreateFeatureFlagRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=100"`
	Description string `json:"description" validate:"max=500"`
	IsEnabled   bool   `json:"isEnabled"`
}

func (r *CreateFeatureFlagRequest) ToModel() model.FeatureFlagModel {
	return model.FeatureFlagModel{
		Name:        NormalizeName(r.Name),
		Description: strings.TrimSpace(r.Description),
		IsEnabled:   r.IsEnabled,
	}
}

// NormalizeName lowercases and joins words with underscores: "Boost Payments" → "boost_payments".
func NormalizeName(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), "_")
}

type UpdateFeatureFlagRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=2,max=100"`
	Description *string `json:"description" validate:"omitempty,max=500"`
	IsEnabled   *bool   `json:"isEnabled"`
}

func (r *UpdateFeatureFlagRequest) Apply(m *model.FeatureFlagModel) {
	if r.Name != nil {
		m.Name = NormalizeName(*r.Name)
	}
	if r.Description != nil {
		m.Description = strings.TrimSpace(*r.Description)
	}
	if r.IsEnabled != nil {
		m.IsEnabled = *r.IsEnabled
	}
	m.UpdatedAt = time.Now()
}
