package service

import (
	"context"
	"errors"
	"maps"
	"slices"
	"strings"

	"gorm.io/gorm"

	"estatehub_backend/internals/features/billing/providers/model"
)

var ErrUnknownProvider = errors.New("Unknown provider")

// KnownPaymentProviders lists the gateways that can be configured, with their display names.
var KnownPaymentProviders = map[string]string{
	"midtrans": "Midtrans",
	"razorpay": "Razorpay",
	"stripe":   "Stripe",
}

// KnownNotificationProviders maps provider name to its channel.
var KnownNotificationProviders = map[string]string{
	"msg91":    "sms",
	"twilio":   "sms",
	"sendgrid": "email",
	"smtp":     "email",
	"gupshup":  "whatsapp",
}

func normalize(name string) string { return strings.ToLower(strings.TrimSpace(name)) }

// PaymentProvider loads the row for name. A known provider that was never saved yields an
// unsaved, disabled row.
func PaymentProvider(ctx context.Context, db *gorm.DB, name string) (model.PaymentProviderModel, error) {
	name = normalize(name)
	display, ok := KnownPaymentProviders[name]
	if !ok {
		return model.PaymentProviderModel{}, ErrUnknownProvider
	}
	var m model.PaymentProviderModel
	err := db.WithContext(ctx).Where("provider = ?", name).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.PaymentProviderModel{
			Provider:    name,
			DisplayName: display,
			Credentials: model.Credentials{Mode: model.ModeSandbox},
		}, nil
	}
	return m, err
}

// PaymentProviders returns every known gateway, saved or not, ordered by name.
func PaymentProviders(ctx context.Context, db *gorm.DB) ([]model.PaymentProviderModel, error) {
	var rows []model.PaymentProviderModel
	if err := db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, err
	}
	byName := make(map[string]model.PaymentProviderModel, len(rows))
	for _, r := range rows {
		byName[r.Provider] = r
	}
	out := make([]model.PaymentProviderModel, 0, len(KnownPaymentProviders))
	for _, name := range slices.Sorted(maps.Keys(KnownPaymentProviders)) {
		if r, ok := byName[name]; ok {
			out = append(out, r)
			continue
		}
		out = append(out, model.PaymentProviderModel{
			Provider:    name,
			DisplayName: KnownPaymentProviders[name],
			Credentials: model.Credentials{Mode: model.ModeSandbox},
		})
	}
	return out, nil
}

func SavePaymentProvider(ctx context.Context, db *gorm.DB, m *model.PaymentProviderModel) error {
	return db.WithContext(ctx).Save(m).Error
}

func NotificationProvider(ctx context.Context, db *gorm.DB, name string) (model.NotificationProviderModel, error) {
	name = normalize(name)
	channel, ok := KnownNotificationProviders[name]
	if !ok {
		return model.NotificationProviderModel{}, ErrUnknownProvider
	}
	var m model.NotificationProviderModel
	err := db.WithContext(ctx).Where("provider = ?", name).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.NotificationProviderModel{
			Provider:    name,
			Channel:     channel,
			DisplayName: name,
			Credentials: model.Credentials{Mode: model.ModeSandbox},
		}, nil
	}
	return m, err
}

func NotificationProviders(ctx context.Context, db *gorm.DB) ([]model.NotificationProviderModel, error) {
	var rows []model.NotificationProviderModel
	if err := db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, err
	}
	byName := make(map[string]model.NotificationProviderModel, len(rows))
	for _, r := range rows {
		byName[r.Provider] = r
	}
	out := make([]model.NotificationProviderModel, 0, len(KnownNotificationProviders))
	for _, name := range slices.Sorted(maps.Keys(KnownNotificationProviders)) {
		if r, ok := byName[name]; ok {
			out = append(out, r)
			continue
		}
		out = append(out, model.NotificationProviderModel{
			Provider:    name,
			Channel:     KnownNotificationProviders[name],
			DisplayName: name,
			Credentials: model.Credentials{Mode: model.ModeSandbox},
		})
	}
	return out, nil
}

func SaveNotificationProvider(ctx context.Context, db *gorm.DB, m *model.NotificationProviderModel) error {
	return db.WithContext(ctx).Save(m).Error
}

// EnabledPaymentCredentials returns the active credentials of name when the provider is
// enabled and has a secret for its mode.
func EnabledPaymentCredentials(ctx context.Context, db *gorm.DB, name string) (model.Credentials, bool) {
	m, err := PaymentProvider(ctx, db, name)
	if err != nil || !m.IsEnabled {
		return model.Credentials{}, false
	}
	if _, secret := m.Credentials.Active(); secret == "" {
		return model.Credentials{}, false
	}
	return m.Credentials, true
}
