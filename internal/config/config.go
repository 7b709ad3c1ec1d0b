package config

import (
	"fmt"
	"github.com/joho/godotenv"
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for the application.
type Config struct {
	// Environment
	RunMode  string // Set via flag, not env
	AppName  string
	AppDebug bool

	// MongoDB
	MongoURI    string
	MongoDbName string

	// Redis
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// JWT
	JwtSecret string
	JwtTTL    time.Duration

	// Server
	ApiPort string

	// AWS S3 (media storage)
	AwsAccessKeyID     string
	AwsSecretAccessKey string
	AwsRegion          string
	AwsS3Bucket        string
	MediaBaseURL       string

	// Upload limits
	MaxUploadSizeMB   int // transport-wide ceiling, enforced before validation
	ImageMaxSizeMB    int
	DocumentMaxSizeMB int
	ThumbMaxDimension int

	// Listing defaults
	PageSize         int
	FeaturedLimit    int
	FeaturedCacheTTL time.Duration
	BulkCreateMax    int

	// Orphaned media sweep
	OrphanSweepInterval time.Duration
	OrphanMinAge        time.Duration

	// Rate Limiting Defaults
	RateLimitBucketSize int
	RateLimitRefillRate int // tokens per second
}

// Load configuration from environment variables.
// RunMode needs to be passed in as it comes from command-line flags.
func Load(runMode string) (*Config, error) {
	// Load .env file, ignoring errors if it doesn't exist
	godotenv.Load()

	cfg := &Config{
		RunMode: runMode, // Set from flag
	}

	var err error

	// Helper function to get env var or default
	getEnv := func(key, defaultValue string) string {
		if value, exists := os.LookupEnv(key); exists {
			return value
		}
		return defaultValue
	}

	// Helper function to get required env var
	getRequiredEnv := func(key string) (string, error) {
		value, exists := os.LookupEnv(key)
		if !exists {
			return "", fmt.Errorf("missing required environment variable: %s", key)
		}
		return value, nil
	}

	// Load basic string values
	cfg.MongoURI, err = getRequiredEnv("MONGO_URI")
	if err != nil {
		return nil, err
	}
	cfg.MongoDbName = getEnv("MONGO_DB_NAME", "rental")
	cfg.RedisAddr = getEnv("REDIS_ADDR", "localhost:6379")
	cfg.RedisPassword = getEnv("REDIS_PASSWORD", "")
	cfg.JwtSecret, err = getRequiredEnv("JWT_SECRET")
	if err != nil {
		return nil, err
	}
	cfg.ApiPort = getEnv("API_PORT", "8080")
	cfg.AwsAccessKeyID = getEnv("AWS_ACCESS_KEY_ID", "")
	cfg.AwsSecretAccessKey = getEnv("AWS_SECRET_ACCESS_KEY", "")
	cfg.AwsRegion = getEnv("AWS_REGION", "")
	cfg.AwsS3Bucket = getEnv("AWS_S3_BUCKET", "")
	cfg.MediaBaseURL = getEnv("MEDIA_BASE_URL", "")
	cfg.AppName = getEnv("APP_NAME", "Rental")
	cfg.AppDebug = getEnv("APP_DEBUG", "false") == "true"

	// Load numeric and time duration values with defaults and parsing
	cfg.RedisDB, err = strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	jwtTTLSeconds, err := strconv.ParseInt(getEnv("JWT_TTL_SECONDS", "86400"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_TTL_SECONDS: %w", err)
	}
	cfg.JwtTTL = time.Duration(jwtTTLSeconds) * time.Second

	cfg.MaxUploadSizeMB, err = strconv.Atoi(getEnv("MAX_UPLOAD_SIZE_MB", "20"))
	if err != nil {
		return nil, fmt.Errorf("invalid MAX_UPLOAD_SIZE_MB: %w", err)
	}

	cfg.ImageMaxSizeMB, err = strconv.Atoi(getEnv("IMAGE_MAX_SIZE_MB", "10"))
	if err != nil {
		return nil, fmt.Errorf("invalid IMAGE_MAX_SIZE_MB: %w", err)
	}

	cfg.DocumentMaxSizeMB, err = strconv.Atoi(getEnv("DOCUMENT_MAX_SIZE_MB", "10"))
	if err != nil {
		return nil, fmt.Errorf("invalid DOCUMENT_MAX_SIZE_MB: %w", err)
	}

	cfg.ThumbMaxDimension, err = strconv.Atoi(getEnv("THUMB_MAX_DIMENSION", "640"))
	if err != nil {
		return nil, fmt.Errorf("invalid THUMB_MAX_DIMENSION: %w", err)
	}

	cfg.PageSize, err = strconv.Atoi(getEnv("PAGE_SIZE", "12"))
	if err != nil {
		return nil, fmt.Errorf("invalid PAGE_SIZE: %w", err)
	}

	cfg.FeaturedLimit, err = strconv.Atoi(getEnv("FEATURED_LIMIT", "10"))
	if err != nil {
		return nil, fmt.Errorf("invalid FEATURED_LIMIT: %w", err)
	}

	featuredCacheTTLSeconds, err := strconv.ParseInt(getEnv("FEATURED_CACHE_TTL_SECONDS", "60"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid FEATURED_CACHE_TTL_SECONDS: %w", err)
	}
	cfg.FeaturedCacheTTL = time.Duration(featuredCacheTTLSeconds) * time.Second

	cfg.BulkCreateMax, err = strconv.Atoi(getEnv("BULK_CREATE_MAX", "50"))
	if err != nil {
		return nil, fmt.Errorf("invalid BULK_CREATE_MAX: %w", err)
	}

	orphanSweepIntervalSeconds, err := strconv.ParseInt(getEnv("ORPHAN_SWEEP_INTERVAL_SECONDS", "86400"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid ORPHAN_SWEEP_INTERVAL_SECONDS: %w", err)
	}
	cfg.OrphanSweepInterval = time.Duration(orphanSweepIntervalSeconds) * time.Second

	orphanMinAgeSeconds, err := strconv.ParseInt(getEnv("ORPHAN_MIN_AGE_SECONDS", "86400"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid ORPHAN_MIN_AGE_SECONDS: %w", err)
	}
	cfg.OrphanMinAge = time.Duration(orphanMinAgeSeconds) * time.Second

	// Rate Limiting
	cfg.RateLimitBucketSize, err = strconv.Atoi(getEnv("RATE_LIMIT_BUCKET_SIZE", "20"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_BUCKET_SIZE: %w", err)
	}
	cfg.RateLimitRefillRate, err = strconv.Atoi(getEnv("RATE_LIMIT_REFILL_RATE", "10"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_REFILL_RATE: %w", err)
	}

	return cfg, nil
}
