package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration
type Config struct {
	Server    ServerConfig
	MongoDB   MongoDBConfig
	Identity  IdentityConfig
	Session   SessionConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
}

type ServerConfig struct {
	Port         string
	Host         string
	Environment  string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// MongoDBConfig carries both access modes to the document store. URI is the
// privileged server credential; PublicURI is the restricted client credential
// subject to the store's declarative rules. At least one must be set.
type MongoDBConfig struct {
	URI       string
	PublicURI string
	Database  string
	Timeout   time.Duration
}

// IdentityConfig points at the remote identity service used for
// password-grant sign-in and token verification.
type IdentityConfig struct {
	BaseURL string
	APIKey  string
	// Issuer enables local OIDC verification of id tokens; when empty the
	// provider's lookup endpoint is called instead.
	Issuer   string
	ClientID string
}

type SessionConfig struct {
	Secret string
	TTL    time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type RateLimitConfig struct {
	Enabled       bool
	RPS           float64
	Burst         int
	UseRedis      bool
	WindowSeconds int
}

// LoadConfig loads configuration from environment variables and .env file
func LoadConfig() (*Config, error) {
	_ = godotenv.Load(".env")

	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", "5001")
	viper.SetDefault("SERVER_HOST", "0.0.0.0")
	viper.SetDefault("SERVER_ENVIRONMENT", "development")
	viper.SetDefault("MONGODB_DATABASE", "vbrlandscap")
	viper.SetDefault("MONGODB_TIMEOUT", 10)
	viper.SetDefault("SESSION_TTL_HOURS", 120) // 5 days
	viper.SetDefault("RATE_LIMIT_RPS", 10.0)
	viper.SetDefault("RATE_LIMIT_BURST", 20)
	viper.SetDefault("RATE_LIMIT_WINDOW_SECONDS", 60)

	cfg := &Config{
		Server: ServerConfig{
			Port:         viper.GetString("SERVER_PORT"),
			Host:         viper.GetString("SERVER_HOST"),
			Environment:  viper.GetString("SERVER_ENVIRONMENT"),
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		MongoDB: MongoDBConfig{
			URI:       os.Getenv("MONGODB_URI"),
			PublicURI: os.Getenv("MONGODB_PUBLIC_URI"),
			Database:  viper.GetString("MONGODB_DATABASE"),
			Timeout:   time.Duration(viper.GetInt("MONGODB_TIMEOUT")) * time.Second,
		},
		Identity: IdentityConfig{
			BaseURL:  viper.GetString("IDENTITY_BASE_URL"),
			APIKey:   os.Getenv("IDENTITY_API_KEY"),
			Issuer:   viper.GetString("IDENTITY_ISSUER"),
			ClientID: viper.GetString("IDENTITY_CLIENT_ID"),
		},
		Session: SessionConfig{
			Secret: os.Getenv("SESSION_SECRET"),
			TTL:    time.Duration(viper.GetInt("SESSION_TTL_HOURS")) * time.Hour,
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       0,
		},
		RateLimit: RateLimitConfig{
			Enabled:       viper.GetBool("RATE_LIMIT_ENABLED"),
			RPS:           viper.GetFloat64("RATE_LIMIT_RPS"),
			Burst:         viper.GetInt("RATE_LIMIT_BURST"),
			UseRedis:      viper.GetBool("RATE_LIMIT_USE_REDIS"),
			WindowSeconds: viper.GetInt("RATE_LIMIT_WINDOW_SECONDS"),
		},
	}

	if cfg.MongoDB.URI == "" && cfg.MongoDB.PublicURI == "" {
		return nil, fmt.Errorf("document store not configured: set MONGODB_URI (server credential) or MONGODB_PUBLIC_URI (client credential)")
	}

	return cfg, nil
}

// IsProduction reports whether the service runs with production hardening
// (secure cookies, strict transport).
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}
