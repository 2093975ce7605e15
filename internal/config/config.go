package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// JWT
	JWTSecret        string
	JWTAccessExpiry  time.Duration
	JWTRefreshExpiry time.Duration

	// One-time RBM bootstrap
	BootstrapSecret string

	// Object storage (S3-compatible)
	StorageEndpoint  string
	StorageAccessKey string
	StorageSecretKey string
	StorageBucket    string
	StorageRegion    string
	StorageUseSSL    bool
	SignedURLExpiry  time.Duration

	// Redis (optional, YouTube response cache)
	RedisURL        string
	YouTubeCacheTTL time.Duration

	// YouTube Data API
	YouTubeAPIKey    string
	YouTubeChannelID string

	// Server
	Port        string
	CORSOrigins string
}

func Load() *Config {
	// Load .env file if present; real deployments set env vars directly.
	godotenv.Load()

	return &Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "fieldforce_db"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		JWTSecret:        getEnv("JWT_SECRET", ""),
		JWTAccessExpiry:  parseDuration(getEnv("JWT_ACCESS_EXPIRY", "15m"), 15*time.Minute),
		JWTRefreshExpiry: parseDuration(getEnv("JWT_REFRESH_EXPIRY", "168h"), 168*time.Hour),

		BootstrapSecret: getEnv("BOOTSTRAP_RBM_SECRET", ""),

		StorageEndpoint:  getEnv("STORAGE_ENDPOINT", "s3.amazonaws.com"),
		StorageAccessKey: getEnv("STORAGE_ACCESS_KEY", ""),
		StorageSecretKey: getEnv("STORAGE_SECRET_KEY", ""),
		StorageBucket:    getEnv("STORAGE_BUCKET", "fieldforce-uploads"),
		StorageRegion:    getEnv("STORAGE_REGION", "ap-south-1"),
		StorageUseSSL:    getEnv("STORAGE_USE_SSL", "true") == "true",
		SignedURLExpiry:  parseDuration(getEnv("SIGNED_URL_EXPIRY", "1h"), time.Hour),

		RedisURL:        getEnv("REDIS_URL", ""),
		YouTubeCacheTTL: parseDuration(getEnv("YOUTUBE_CACHE_TTL", "15m"), 15*time.Minute),

		YouTubeAPIKey:    getEnv("YOUTUBE_API_KEY", ""),
		YouTubeChannelID: getEnv("YOUTUBE_CHANNEL_ID", ""),

		Port:        getEnv("PORT", "8080"),
		CORSOrigins: getEnv("CORS_ORIGINS", "*"),
	}
}

func (c *Config) DSN() string {
	return "host=" + c.DBHost +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" port=" + c.DBPort +
		" sslmode=" + c.DBSSLMode +
		" TimeZone=UTC"
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return d
}
