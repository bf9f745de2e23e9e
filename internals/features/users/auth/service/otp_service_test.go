package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"estatehub_backend/internals/features/users/auth/model"
	"estatehub_backend/internals/testutil"
)

func wrongCode(code string) string {
	if code == "000000" {
		return "111111"
	}
	return "000000"
}

func TestOTPSingleUse(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	target, err := NewOtpTarget("Buyer@Example.com ", "")
	require.NoError(t, err)
	assert.Equal(t, "email:buyer@example.com", target.Key())

	code, row, err := IssueOTP(ctx, db, target, "")
	require.NoError(t, err)
	assert.Len(t, code, model.OtpCodeLength)
	assert.Equal(t, model.PurposeVerifyEmail, row.Purpose)
	assert.NotEqual(t, code, row.CodeHash)

	got, err := VerifyOTP(ctx, db, target, code)
	require.NoError(t, err)
	assert.NotNil(t, got.ConsumedAt)

	_, err = VerifyOTP(ctx, db, target, code)
	assert.ErrorIs(t, err, ErrOtpNotFound)
}

func TestOTPReissueInvalidatesOlderCode(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	target, _ := NewOtpTarget("", "+91 98765 43210")

	first, _, err := IssueOTP(ctx, db, target, "")
	require.NoError(t, err)
	second, row, err := IssueOTP(ctx, db, target, "")
	require.NoError(t, err)
	assert.Equal(t, model.PurposeVerifyPhone, row.Purpose)

	var n int64
	require.NoError(t, db.Model(&model.OtpRequestModel{}).Count(&n).Error)
	assert.EqualValues(t, 1, n)

	if first != second {
		_, err = VerifyOTP(ctx, db, target, first)
		assert.ErrorIs(t, err, ErrOtpInvalid)
	}
	_, err = VerifyOTP(ctx, db, target, second)
	assert.NoError(t, err)
}

func TestOTPLocksAfterMaxAttempts(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	target, _ := NewOtpTarget("lock@example.com", "")

	code, _, err := IssueOTP(ctx, db, target, model.PurposeLogin)
	require.NoError(t, err)

	for i := 0; i < model.OtpMaxAttempts; i++ {
		_, err = VerifyOTP(ctx, db, target, wrongCode(code))
		assert.ErrorIs(t, err, ErrOtpInvalid)
	}
	_, err = VerifyOTP(ctx, db, target, code)
	assert.ErrorIs(t, err, ErrOtpTooManyAttempts)
}

func TestOTPExpiry(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	target, _ := NewOtpTarget("late@example.com", "")

	code, _, err := IssueOTP(ctx, db, target, "")
	require.NoError(t, err)

	now = func() time.Time { return time.Now().Add(model.OtpTTL + time.Second) }
	t.Cleanup(func() { now = time.Now })

	_, err = VerifyOTP(ctx, db, target, code)
	assert.ErrorIs(t, err, ErrOtpNotFound)

	purged, err := PurgeOTPs(ctx, db, time.Now().Add(model.OtpTTL+time.Minute))
	require.NoError(t, err)
	assert.EqualValues(t, 1, purged)
}

func TestOTPForPurposeLeavesOtherCodesUsable(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	target, _ := NewOtpTarget("owner@example.com", "")

	code, _, err := IssueOTP(ctx, db, target, model.PurposeVerifyEmail)
	require.NoError(t, err)

	_, err = VerifyOTPFor(ctx, db, target, code, model.PurposeResetPassword)
	assert.ErrorIs(t, err, ErrOtpWrongPurpose)

	var row model.OtpRequestModel
	require.NoError(t, db.Where("email = ?", "owner@example.com").First(&row).Error)
	assert.Nil(t, row.ConsumedAt)
	assert.Zero(t, row.Attempts)

	got, err := VerifyOTPFor(ctx, db, target, code, model.PurposeVerifyEmail)
	require.NoError(t, err)
	assert.Equal(t, model.PurposeVerifyEmail, got.Purpose)
}

func TestOTPNeedsIdentifier(t *testing.T) {
	_, err := NewOtpTarget(" ", "")
	assert.ErrorIs(t, err, ErrOtpNoIdentifier)
}
