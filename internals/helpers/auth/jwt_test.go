package helper

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"estatehub_backend/internals/configs"
)

func withSecret(t *testing.T, s string) {
	prev := configs.JWTSecret
	configs.JWTSecret = s
	t.Cleanup(func() { configs.JWTSecret = prev })
}

func TestIssueAndParseToken(t *testing.T) {
	withSecret(t, "unit-secret")
	role := uuid.New()
	sub := TokenSubject{ID: uuid.New(), Email: "a@b.co", ActiveRoleID: &role}

	tok, err := IssueToken(sub)
	require.NoError(t, err)

	claims, id, err := ParseToken(tok)
	require.NoError(t, err)
	assert.Equal(t, sub.ID, id)
	assert.Equal(t, "a@b.co", claims.Email)
	assert.Equal(t, role.String(), claims.ActiveRoleID)
	assert.WithinDuration(t, time.Now().Add(AccessTokenTTL), claims.ExpiresAt.Time, time.Minute)
}

func TestParseTokenRejects(t *testing.T) {
	withSecret(t, "unit-secret")
	sub := TokenSubject{ID: uuid.New()}

	expired, err := issueAt(sub, time.Now().Add(-AccessTokenTTL-time.Hour))
	require.NoError(t, err)
	_, _, err = ParseToken(expired)
	assert.Error(t, err)

	good, err := IssueToken(sub)
	require.NoError(t, err)
	configs.JWTSecret = "other-secret"
	_, _, err = ParseToken(good)
	assert.Error(t, err)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"id": sub.ID.String()})
	raw, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, _, err = ParseToken(raw)
	assert.Error(t, err)
}

func TestIssueTokenWithoutSecret(t *testing.T) {
	withSecret(t, "")
	_, err := IssueToken(TokenSubject{ID: uuid.New()})
	assert.ErrorIs(t, err, ErrMissingSecret)
}

func TestPasswordAndOTPHashing(t *testing.T) {
	withSecret(t, "unit-secret")
	hash, err := HashPassword("hunter22")
	require.NoError(t, err)
	assert.True(t, CheckPassword(hash, "hunter22"))
	assert.False(t, CheckPassword(hash, "hunter23"))
	assert.False(t, CheckPassword("", "hunter22"))

	h := HashOTP("email:a@b.co", "123456")
	assert.True(t, OTPMatches(h, "email:a@b.co", "123456"))
	assert.False(t, OTPMatches(h, "email:a@b.co", "654321"))
	assert.False(t, OTPMatches(h, "phone:999", "123456"))
}
