package dto

import (
	"strings"
	"time"

	"gorm.io/datatypes"

	"estatehub_backend/internals/features/billing/providers/model"
	helper "estatehub_backend/internals/helpers"
)

// MaskedCredentials never carries a secret; only its last four characters and presence.
type MaskedCredentials struct {
	Mode              string `json:"mode"`
	SandboxKeyHint    string `json:"sandboxKeyHint"`
	HasSandboxKey     bool   `json:"hasSandboxKey"`
	SandboxSecretHint string `json:"sandboxSecretHint"`
	HasSandboxSecret  bool   `json:"hasSandboxSecret"`
	LiveKeyHint       string `json:"liveKeyHint"`
	HasLiveKey        bool   `json:"hasLiveKey"`
	LiveSecretHint    string `json:"liveSecretHint"`
	HasLiveSecret     bool   `json:"hasLiveSecret"`
	WebhookSecretHint string `json:"webhookSecretHint"`
	HasWebhookSecret  bool   `json:"hasWebhookSecret"`
}

func Mask(c model.Credentials) MaskedCredentials {
	mode := c.Mode
	if mode == "" {
		mode = model.ModeSandbox
	}
	return MaskedCredentials{
		Mode:              mode,
		SandboxKeyHint:    helper.MaskSecret(c.SandboxKey),
		HasSandboxKey:     strings.TrimSpace(c.SandboxKey) != "",
		SandboxSecretHint: helper.MaskSecret(c.SandboxSecret),
		HasSandboxSecret:  strings.TrimSpace(c.SandboxSecret) != "",
		LiveKeyHint:       helper.MaskSecret(c.LiveKey),
		HasLiveKey:        strings.TrimSpace(c.LiveKey) != "",
		LiveSecretHint:    helper.MaskSecret(c.LiveSecret),
		HasLiveSecret:     strings.TrimSpace(c.LiveSecret) != "",
		WebhookSecretHint: helper.MaskSecret(c.WebhookSecret),
		HasWebhookSecret:  strings.TrimSpace(c.WebhookSecret) != "",
	}
}

// UpdateCredentials only replaces a stored secret when the field is non-empty.
type UpdateCredentials struct {
	Mode          *string `json:"mode" validate:"omitempty,oneof=sandbox live"`
	SandboxKey    *string `json:"sandboxKey" validate:"omitempty,max=500"`
	SandboxSecret *string `json:"sandboxSecret" validate:"omitempty,max=500"`
	LiveKey       *string `json:"liveKey" validate:"omitempty,max=500"`
	LiveSecret    *string `json:"liveSecret" validate:"omitempty,max=500"`
	WebhookSecret *string `json:"webhookSecret" validate:"omitempty,max=500"`
}

func (u UpdateCredentials) Merge(c *model.Credentials) {
	if u.Mode != nil {
		c.Mode = *u.Mode
	}
	if c.Mode == "" {
		c.Mode = model.ModeSandbox
	}
	c.SandboxKey = helper.MergeSecret(c.SandboxKey, u.SandboxKey)
	c.SandboxSecret = helper.MergeSecret(c.SandboxSecret, u.SandboxSecret)
	c.LiveKey = helper.MergeSecret(c.LiveKey, u.LiveKey)
	c.LiveSecret = helper.MergeSecret(c.LiveSecret, u.LiveSecret)
	c.WebhookSecret = helper.MergeSecret(c.WebhookSecret, u.WebhookSecret)
}

type UpdatePaymentProviderRequest struct {
	UpdateCredentials
	DisplayName *string         `json:"displayName" validate:"omitempty,max=100"`
	IsEnabled   *bool           `json:"isEnabled"`
	Settings    *datatypes.JSON `json:"settings"`
}

type UpdateNotificationProviderRequest struct {
	UpdateCredentials
	Channel     *string         `json:"channel" validate:"omitempty,oneof=sms email whatsapp"`
	DisplayName *string         `json:"displayName" validate:"omitempty,max=100"`
	SenderID    *string         `json:"senderId" validate:"omitempty,max=120"`
	IsEnabled   *bool           `json:"isEnabled"`
	Settings    *datatypes.JSON `json:"settings"`
}

type PaymentProviderResponse struct {
	Provider    string         `json:"provider"`
	DisplayName string         `json:"displayName"`
	IsEnabled   bool           `json:"isEnabled"`
	Configured  bool           `json:"configured"`
	Settings    datatypes.JSON `json:"settings"`
	MaskedCredentials
	UpdatedAt *time.Time `json:"updatedAt"`
}

func FromPaymentProvider(m model.PaymentProviderModel) PaymentProviderResponse {
	_, secret := m.Credentials.Active()
	out := PaymentProviderResponse{
		Provider:          m.Provider,
		DisplayName:       m.DisplayName,
		IsEnabled:         m.IsEnabled,
		Configured:        secret != "",
		Settings:          m.Settings,
		MaskedCredentials: Mask(m.Credentials),
	}
	if !m.UpdatedAt.IsZero() {
		t := m.UpdatedAt
		out.UpdatedAt = &t
	}
	return out
}

type NotificationProviderResponse struct {
	Provider    string         `json:"provider"`
	Channel     string         `json:"channel"`
	DisplayName string         `json:"displayName"`
	SenderID    string         `json:"senderId"`
	IsEnabled   bool           `json:"isEnabled"`
	Configured  bool           `json:"configured"`
	Settings    datatypes.JSON `json:"settings"`
	MaskedCredentials
	UpdatedAt *time.Time `json:"updatedAt"`
}

func FromNotificationProvider(m model.NotificationProviderModel) NotificationProviderResponse {
	key, _ := m.Credentials.Active()
	out := NotificationProviderResponse{
		Provider:          m.Provider,
		Channel:           m.Channel,
		DisplayName:       m.DisplayName,
		SenderID:          m.SenderID,
		IsEnabled:         m.IsEnabled,
		Configured:        key != "",
		Settings:          m.Settings,
		MaskedCredentials: Mask(m.Credentials),
	}
	if !m.UpdatedAt.IsZero() {
		t := m.UpdatedAt
		out.UpdatedAt = &t
	}
	return out
}
