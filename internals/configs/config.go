package configs

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"estatehub_backend/internals/logger"

	"go.uber.org/zap"
)

var (
	AppEnv           string
	JWTSecret        string
	UploadDir        string
	UploadBaseURL    string
	PublicBaseURL    string
	OtpExposeCode    bool
	DisableRateLimit bool
)

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		logger.L().Info("no .env file found, using system environment")
	} else {
		logger.L().Info(".env file loaded")
	}

	AppEnv = GetEnv("APP_ENV", "development")
	JWTSecret = GetEnv("JWT_SECRET")
	UploadDir = GetEnv("UPLOAD_DIR", "uploads")
	UploadBaseURL = strings.TrimRight(GetEnv("UPLOAD_BASE_URL", "/api/upload"), "/")
	PublicBaseURL = strings.TrimRight(GetEnv("PUBLIC_BASE_URL"), "/")
	OtpExposeCode = GetEnvBool("OTP_EXPOSE_CODE", true)
	DisableRateLimit = GetEnvBool("RATE_LIMIT_DISABLED", false)

	if JWTSecret == "" {
		logger.L().Warn("JWT_SECRET is not set")
	} else {
		logger.L().Info("JWT_SECRET loaded")
	}
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if !exists && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

func GetEnvBool(key string, defaultValue bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(v) == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		logger.L().Warn("invalid boolean env", zap.String("key", key), zap.String("value", v))
		return defaultValue
	}
	return b
}

func GetEnvInt(key string, defaultValue int) int {
	v, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(v) == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		logger.L().Warn("invalid integer env", zap.String("key", key), zap.String("value", v))
		return defaultValue
	}
	return n
}

func GetEnvFloat(key string, defaultValue float64) float64 {
	v, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(v) == "" {
		return defaultValue
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return defaultValue
	}
	return f
}
