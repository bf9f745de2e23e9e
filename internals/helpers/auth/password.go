package helper

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"

	"golang.org/x/crypto/bcrypt"

	"estatehub_backend/internals/configs"
)

const BcryptCost = 10

func HashPassword(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), BcryptCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func CheckPassword(hash, plain string) bool {
	if hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// HashOTP keys the code with the JWT secret so stored hashes are useless without it.
func HashOTP(identifier, code string) string {
	m := hmac.New(sha256.New, []byte(configs.JWTSecret))
	_, _ = m.Write([]byte(identifier))
	_, _ = m.Write([]byte{0})
	_, _ = m.Write([]byte(code))
	return hex.EncodeToString(m.Sum(nil))
}

// OTPMatches compares in constant time.
func OTPMatches(storedHash, identifier, code string) bool {
	return hmac.Equal([]byte(storedHash), []byte(HashOTP(identifier, code)))
}
