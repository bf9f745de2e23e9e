package model

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// TokenBlacklist holds sha256 hashes of access tokens revoked by logout until they expire.
type TokenBlacklist struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	TokenHash string    `gorm:"size:64;not null;uniqueIndex" json:"-"`
	ExpiredAt time.Time `gorm:"index" json:"expiredAt"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (TokenBlacklist) TableName() string {
	return "token_blacklist"
}

func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
