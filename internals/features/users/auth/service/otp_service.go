// internals/features/users/auth/service/otp_service.go
package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"gorm.io/gorm"

	"estatehub_backend/internals/features/users/auth/model"
	userModel "estatehub_backend/internals/features/users/user/model"
	helpersAuth "estatehub_backend/internals/helpers/auth"
	"estatehub_backend/internals/metrics"
)

var (
	ErrOtpNotFound        = errors.New("OTP expired or not found")
	ErrOtpTooManyAttempts = errors.New("Too many attempts")
	ErrOtpInvalid         = errors.New("Invalid OTP")
	ErrOtpNoIdentifier    = errors.New("Email or phone is required")
	ErrOtpWrongPurpose    = errors.New("OTP was issued for a different purpose")
)

// OtpTarget identifies who the code was sent to. Email wins when both are set.
type OtpTarget struct {
	Email *string
	Phone *string
}

func NewOtpTarget(email, phone string) (OtpTarget, error) {
	t := OtpTarget{
		Email: userModel.NormalizeEmail(email),
		Phone: userModel.NormalizePhone(phone),
	}
	if t.Email == nil && t.Phone == nil {
		return t, ErrOtpNoIdentifier
	}
	return t, nil
}

// Key is the identifier mixed into the code hash.
func (t OtpTarget) Key() string {
	if t.Email != nil {
		return "email:" + *t.Email
	}
	if t.Phone != nil {
		return "phone:" + *t.Phone
	}
	return ""
}

func (t OtpTarget) scope(db *gorm.DB) *gorm.DB {
	if t.Email != nil {
		return db.Where("email = ?", *t.Email)
	}
	return db.Where("phone = ?", *t.Phone)
}

// now is swapped in tests.
var now = time.Now

func generateCode() (string, error) {
	max := big.NewInt(1_000_000)
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// IssueOTP deletes every earlier code for the identifier and stores a fresh one.
// The plain code is returned so the caller can deliver it.
func IssueOTP(ctx context.Context, db *gorm.DB, target OtpTarget, purpose string) (string, model.OtpRequestModel, error) {
	if target.Key() == "" {
		return "", model.OtpRequestModel{}, ErrOtpNoIdentifier
	}
	if purpose == "" {
		purpose = model.PurposeVerifyEmail
		if target.Email == nil {
			purpose = model.PurposeVerifyPhone
		}
	}

	code, err := generateCode()
	if err != nil {
		return "", model.OtpRequestModel{}, err
	}

	row := model.OtpRequestModel{
		Email:       target.Email,
		Phone:       target.Phone,
		CodeHash:    helpersAuth.HashOTP(target.Key(), code),
		Purpose:     purpose,
		ExpiresAt:   now().Add(model.OtpTTL),
		Attempts:    0,
		MaxAttempts: model.OtpMaxAttempts,
	}

	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := target.scope(tx).Delete(&model.OtpRequestModel{}).Error; err != nil {
			return err
		}
		return tx.Create(&row).Error
	})
	if err != nil {
		return "", model.OtpRequestModel{}, err
	}
	metrics.OtpIssued.WithLabelValues(purpose).Inc()
	return code, row, nil
}

// VerifyOTP checks code against the latest unconsumed row for the identifier.
// A wrong code burns an attempt; once the cap is reached even the right code is refused.
// The read-then-increment is not locked, so concurrent verifies can overrun the cap.
func VerifyOTP(ctx context.Context, db *gorm.DB, target OtpTarget, code string) (*model.OtpRequestModel, error) {
	return VerifyOTPFor(ctx, db, target, code, "")
}

// VerifyOTPFor is VerifyOTP restricted to one purpose. A row issued for another purpose is
// left untouched: no attempt is burned and it is not consumed.
func VerifyOTPFor(ctx context.Context, db *gorm.DB, target OtpTarget, code, purpose string) (*model.OtpRequestModel, error) {
	if target.Key() == "" {
		return nil, ErrOtpNoIdentifier
	}

	var row model.OtpRequestModel
	err := target.scope(db.WithContext(ctx)).
		Where("consumed_at IS NULL").
		Order("created_at DESC").
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		metrics.OtpVerifications.WithLabelValues("not_found").Inc()
		return nil, ErrOtpNotFound
	}
	if err != nil {
		return nil, err
	}
	if !row.ExpiresAt.After(now()) {
		metrics.OtpVerifications.WithLabelValues("expired").Inc()
		return nil, ErrOtpNotFound
	}
	if row.Attempts >= row.MaxAttempts {
		metrics.OtpVerifications.WithLabelValues("locked").Inc()
		return nil, ErrOtpTooManyAttempts
	}
	if purpose != "" && row.Purpose != purpose {
		metrics.OtpVerifications.WithLabelValues("wrong_purpose").Inc()
		return nil, ErrOtpWrongPurpose
	}

	if !helpersAuth.OTPMatches(row.CodeHash, target.Key(), code) {
		if err := db.WithContext(ctx).Model(&model.OtpRequestModel{}).
			Where("id = ?", row.ID).
			Update("attempts", row.Attempts+1).Error; err != nil {
			return nil, err
		}
		metrics.OtpVerifications.WithLabelValues("invalid").Inc()
		return nil, ErrOtpInvalid
	}

	consumed := now()
	if err := db.WithContext(ctx).Model(&model.OtpRequestModel{}).
		Where("id = ?", row.ID).
		Update("consumed_at", consumed).Error; err != nil {
		return nil, err
	}
	row.ConsumedAt = &consumed
	metrics.OtpVerifications.WithLabelValues("ok").Inc()
	return &row, nil
}

// PurgeOTPs deletes rows that are consumed or expired before the cutoff.
func PurgeOTPs(ctx context.Context, db *gorm.DB, cutoff time.Time) (int64, error) {
	res := db.WithContext(ctx).
		Where("consumed_at IS NOT NULL OR expires_at < ?", cutoff).
		Delete(&model.OtpRequestModel{})
	return res.RowsAffected, res.Error
}
