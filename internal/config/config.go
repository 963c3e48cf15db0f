package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultJWTSecret     = "dev-access-token-secret"
	defaultRefreshSecret = "dev-refresh-token-secret"
)

// Config holds all process configuration.
type Config struct {
	Env  string
	Port int

	DatabaseURL string
	DBMaxConns  int32

	JWT JWTConfig

	BcryptCost int
	LogLevel   string

	Redis     RedisConfig
	RateLimit RateLimitConfig
	Minio     MinioConfig

	TokenCleanupInterval time.Duration

	CORSOrigins []string
	// TrustedProxies lists CIDR ranges whose X-Forwarded-For is believed.
	TrustedProxies []string
}

// JWTConfig holds the access and refresh token settings. The two kinds use
// independent secrets.
type JWTConfig struct {
	AccessSecret  string
	AccessTTL     time.Duration
	RefreshSecret string
	RefreshTTL    time.Duration
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type RateLimitConfig struct {
	Max    int
	Window time.Duration
}

type MinioConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Bucket    string
}

// IsProduction reports whether the process runs with APP_ENV=production.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Load reads an optional .env file and then the environment.
func Load() (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	cfg := &Config{
		Env:         getEnv("APP_ENV", "development"),
		Port:        getEnvAsInt("PORT", 3333),
		DatabaseURL: getEnv("DATABASE_URL", ""),
		DBMaxConns:  int32(getEnvAsInt("DB_MAX_CONNS", 20)),
		JWT: JWTConfig{
			AccessSecret:  getEnv("JWT_SECRET", defaultJWTSecret),
			AccessTTL:     getEnvAsDuration("JWT_EXPIRES_IN", 15*time.Minute),
			RefreshSecret: getEnv("REFRESH_TOKEN_SECRET", defaultRefreshSecret),
			RefreshTTL:    getEnvAsDuration("REFRESH_TOKEN_EXPIRES_IN", 7*24*time.Hour),
		},
		BcryptCost: getEnvAsInt("BCRYPT_COST", 10),
		LogLevel:   getEnv("LOG_LEVEL", "info"),
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		RateLimit: RateLimitConfig{
			Max:    getEnvAsInt("RATE_LIMIT_MAX", 100),
			Window: getEnvAsDuration("RATE_LIMIT_WINDOW", 15*time.Minute),
		},
		Minio: MinioConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", "localhost:9000"),
			AccessKey: getEnv("MINIO_ACCESS_KEY", "minioadmin"),
			SecretKey: getEnv("MINIO_SECRET_KEY", "minioadmin"),
			UseSSL:    getEnvAsBool("MINIO_USE_SSL", false),
			Bucket:    getEnv("MINIO_BUCKET", "resumes"),
		},
		TokenCleanupInterval: getEnvAsDuration("TOKEN_CLEANUP_INTERVAL", time.Hour),
		CORSOrigins:          getEnvAsList("CORS_ORIGINS", []string{"http://localhost:3000"}),
		TrustedProxies:       getEnvAsList("TRUSTED_PROXIES", nil),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks required values and refuses development secrets in production.
func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return errors.New("DATABASE_URL environment variable is required")
	}
	if c.JWT.AccessSecret == c.JWT.RefreshSecret {
		return errors.New("JWT_SECRET and REFRESH_TOKEN_SECRET must differ")
	}
	if c.IsProduction() && (c.JWT.AccessSecret == defaultJWTSecret || c.JWT.RefreshSecret == defaultRefreshSecret) {
		return errors.New("JWT_SECRET and REFRESH_TOKEN_SECRET must be set in production")
	}
	if c.JWT.AccessTTL <= 0 || c.JWT.RefreshTTL <= 0 {
		return errors.New("token lifetimes must be positive")
	}
	if c.BcryptCost < 4 || c.BcryptCost > 31 {
		return errors.New("BCRYPT_COST must be between 4 and 31")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, err := strconv.Atoi(getEnv(key, "")); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value, err := strconv.ParseBool(getEnv(key, "")); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue
	}
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, err := ParseDuration(getEnv(key, "")); err == nil {
		return value
	}
	return defaultValue
}

// ParseDuration accepts everything time.ParseDuration does plus a whole-day
// suffix ("7d").
func ParseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if days, ok := strings.CutSuffix(s, "d"); ok {
		n, err := strconv.Atoi(days)
		if err != nil {
			return 0, err
		}
		return time.Duration(n) * 24 * time.Hour, nil
	}
	return time.ParseDuration(s)
}
