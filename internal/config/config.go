package config

import (
	"os"
	"strconv"
	"strings"
)

// Config collects every environment knob in one place. godotenv has
// already loaded .env by the time Load runs.
type Config struct {
	Port string

	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string
	DBSSLMode  string

	RedisAddr string

	JWTSecret            string
	AccessTokenHours     int
	RefreshTokenDays     int
	ResetTokenHours      int
	SuperadminEmail      string
	SuperadminPassword   string
	FrontendURL          string
	CORSOrigins          []string
	MaxFileSizeBytes     int64
	StorageDriver        string // "local" or "oss"
	UploadDir            string
	OSSEndpoint          string
	OSSAccessKeyID       string
	OSSAccessKeySecret   string
	OSSBucket            string
	SMTPHost             string
	SMTPPort             string
	SMTPUser             string
	SMTPPassword         string
	SMTPFrom             string
	RateLimitRequests    int
	RateLimitWindowSecs  int
	AuthRateLimitReqs    int
	AuthRateWindowSecs   int
	StatsCacheTTLSeconds int
}

func Load() Config {
	return Config{
		Port: getEnv("PORT", "3000"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "postgres"),
		DBName:     getEnv("DB_NAME", "formacao"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		RedisAddr: getEnv("REDIS_ADDR", "localhost:6379"),

		JWTSecret:          getEnv("JWT_SECRET", "change-me"),
		AccessTokenHours:   getEnvInt("ACCESS_TOKEN_HOURS", 24),
		RefreshTokenDays:   getEnvInt("REFRESH_TOKEN_DAYS", 7),
		ResetTokenHours:    getEnvInt("RESET_TOKEN_HOURS", 1),
		SuperadminEmail:    getEnv("SUPERADMIN_EMAIL", ""),
		SuperadminPassword: getEnv("SUPERADMIN_PASSWORD", ""),
		FrontendURL:        getEnv("FRONTEND_URL", "http://localhost:3001"),
		CORSOrigins:        splitCSV(getEnv("CORS_ORIGINS", "*")),

		// 500MB default, same ceiling the upload handlers enforce
		MaxFileSizeBytes: getEnvInt64("MAX_FILE_SIZE", 500*1024*1024),

		StorageDriver:      getEnv("STORAGE_DRIVER", "local"),
		UploadDir:          getEnv("UPLOAD_DIR", "uploads"),
		OSSEndpoint:        getEnv("OSS_ENDPOINT", ""),
		OSSAccessKeyID:     getEnv("OSS_ACCESS_KEY_ID", ""),
		OSSAccessKeySecret: getEnv("OSS_ACCESS_KEY_SECRET", ""),
		OSSBucket:          getEnv("OSS_BUCKET", ""),

		SMTPHost:     getEnv("SMTP_HOST", ""),
		SMTPPort:     getEnv("SMTP_PORT", "587"),
		SMTPUser:     getEnv("SMTP_USER", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		SMTPFrom:     getEnv("SMTP_FROM", ""),

		RateLimitRequests:    getEnvInt("RATE_LIMIT_REQUESTS", 100),
		RateLimitWindowSecs:  getEnvInt("RATE_LIMIT_WINDOW", 60),
		AuthRateLimitReqs:    getEnvInt("AUTH_RATE_LIMIT_REQUESTS", 10),
		AuthRateWindowSecs:   getEnvInt("AUTH_RATE_LIMIT_WINDOW", 60),
		StatsCacheTTLSeconds: getEnvInt("STATS_CACHE_TTL", 60),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
