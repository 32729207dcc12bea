package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	AppMode     string
	AppName     string
	Port        string
	MarketAPI   MarketAPIConfig
	Database    DatabaseConfig
	Session     SessionConfig
	Cookie      CookieConfig
	Log         LogConfig
	Redis       RedisConfig
	BidBounds   BidBoundsConfig
	FrontendURL string
}

// MarketAPIConfig points at the marketplace REST backend
type MarketAPIConfig struct {
	BaseURL string
	Timeout time.Duration
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

// SessionConfig holds portal session settings
type SessionConfig struct {
	Secret          string
	TTLHours        int
	PendingRoleMins int
	PurgeSchedule   string
}

// CookieConfig holds cookie configuration
type CookieConfig struct {
	Name     string
	Secure   bool
	SameSite string
	Domain   string
}

// LogConfig holds stdout and Fluent Bit logging settings
type LogConfig struct {
	Level         string
	FluentEnabled bool
	FluentHost    string
	FluentPort    int
	FluentLevel   string
}

// RedisConfig enables the listing cache when URL is set
type RedisConfig struct {
	URL string
	TTL time.Duration
}

// BidBoundsConfig holds the accepted bid range as fractions of the asking price
type BidBoundsConfig struct {
	MinPercent float64
	MaxPercent float64
}

// Global config instance
var AppConfig *Config

// Load reads configuration from .env file and environment variables
func Load() (*Config, error) {
	// Load .env file (ignore error if file doesn't exist in production)
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	appMode := strings.TrimSpace(getEnv("APP_MODE", "dev"))
	if appMode != "dev" && appMode != "prod" {
		return nil, fmt.Errorf("invalid APP_MODE: '%s' (must be 'dev' or 'prod')", appMode)
	}

	config := &Config{
		AppMode:     appMode,
		AppName:     getEnv("APP_NAME", "rentwise-portal"),
		Port:        getEnv("PORT", "3000"),
		MarketAPI:   loadMarketAPIConfig(),
		Database:    loadDatabaseConfig(appMode),
		Session:     loadSessionConfig(appMode),
		Cookie:      loadCookieConfig(appMode),
		Log:         loadLogConfig(appMode),
		Redis:       loadRedisConfig(),
		BidBounds:   loadBidBoundsConfig(),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:5173"),
	}

	if config.MarketAPI.BaseURL == "" {
		return nil, fmt.Errorf("MARKET_API_URL is required")
	}
	if config.IsProd() && config.Session.Secret == "default_session_secret" {
		return nil, fmt.Errorf("PROD_SESSION_SECRET must be set in prod mode")
	}
	if config.BidBounds.MinPercent <= 0 || config.BidBounds.MinPercent > config.BidBounds.MaxPercent {
		return nil, fmt.Errorf("invalid bid bounds: min %.2f, max %.2f",
			config.BidBounds.MinPercent, config.BidBounds.MaxPercent)
	}

	AppConfig = config
	return config, nil
}

func loadMarketAPIConfig() MarketAPIConfig {
	timeoutSecs := getEnvAsInt("MARKET_API_TIMEOUT_SECONDS", 15)
	return MarketAPIConfig{
		BaseURL: strings.TrimRight(getEnv("MARKET_API_URL", "http://localhost:8000/api"), "/"),
		Timeout: time.Duration(timeoutSecs) * time.Second,
	}
}

// loadDatabaseConfig loads database config based on mode
func loadDatabaseConfig(mode string) DatabaseConfig {
	prefix := modePrefix(mode)

	return DatabaseConfig{
		Host:     getEnv(prefix+"DB_HOST", "localhost"),
		Port:     getEnv(prefix+"DB_PORT", "3306"),
		User:     getEnv(prefix+"DB_USER", "root"),
		Password: getEnv(prefix+"DB_PASS", ""),
		DBName:   getEnv(prefix+"DB_NAME", "rentwise_portal"),
	}
}

func loadSessionConfig(mode string) SessionConfig {
	prefix := modePrefix(mode)

	return SessionConfig{
		Secret:          getEnv(prefix+"SESSION_SECRET", "default_session_secret"),
		TTLHours:        getEnvAsInt("SESSION_TTL_HOURS", 12),
		PendingRoleMins: getEnvAsInt("PENDING_ROLE_MINUTES", 30),
		PurgeSchedule:   getEnv("SESSION_PURGE_SCHEDULE", "@every 30m"),
	}
}

// loadCookieConfig loads cookie config based on mode
func loadCookieConfig(mode string) CookieConfig {
	prefix := modePrefix(mode)

	secure, _ := strconv.ParseBool(getEnv(prefix+"COOKIE_SECURE", "false"))

	return CookieConfig{
		Name:     getEnv("COOKIE_NAME", "rw_session"),
		Secure:   secure,
		SameSite: getEnv("COOKIE_SAMESITE", "lax"),
		Domain:   getEnv("COOKIE_DOMAIN", ""),
	}
}

func loadLogConfig(mode string) LogConfig {
	defaultLevel := "debug"
	if mode == "prod" {
		defaultLevel = "info"
	}

	cfg := LogConfig{
		Level:         getEnv("STDOUT_LOG_LEVEL", defaultLevel),
		FluentEnabled: getEnvAsBool("FLUENTBIT_ENABLED", false),
		FluentHost:    getEnv("FLUENTBIT_HOST", ""),
		FluentPort:    getEnvAsInt("FLUENTBIT_PORT", 24224),
		FluentLevel:   getEnv("FLUENTBIT_LOG_LEVEL", "info"),
	}
	if cfg.FluentEnabled && cfg.FluentHost == "" {
		log.Println("Warning: FLUENTBIT_ENABLED is true, but FLUENTBIT_HOST is not set. Disabling Fluent Bit.")
		cfg.FluentEnabled = false
	}
	return cfg
}

func loadRedisConfig() RedisConfig {
	return RedisConfig{
		URL: getEnv("REDIS_URL", ""),
		TTL: time.Duration(getEnvAsInt("LISTING_CACHE_SECONDS", 30)) * time.Second,
	}
}

func loadBidBoundsConfig() BidBoundsConfig {
	return BidBoundsConfig{
		MinPercent: getEnvAsFloat("BID_MIN_PERCENT", 0.70),
		MaxPercent: getEnvAsFloat("BID_MAX_PERCENT", 1.00),
	}
}

func modePrefix(mode string) string {
	if mode == "prod" {
		return "PROD_"
	}
	return "DEV_"
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: %s=%q is not an integer, using %d", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		log.Printf("Warning: %s=%q is not a number, using %.2f", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Printf("Warning: %s=%q is not a bool, using %t", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}

// IsDev returns true if running in development mode
func (c *Config) IsDev() bool {
	return c.AppMode == "dev"
}

// IsProd returns true if running in production mode
func (c *Config) IsProd() bool {
	return c.AppMode == "prod"
}

// GetAllowedOrigins returns allowed origins for CORS
func (c *Config) GetAllowedOrigins() string {
	origins := getEnv("ALLOWED_ORIGINS", "")
	if origins == "" {
		if c.IsDev() {
			return "*"
		}
		return c.FrontendURL
	}
	return origins
}

// SessionTTL returns the lifetime of a portal session
func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.Session.TTLHours) * time.Hour
}

// PendingRoleTTL returns how long a role picked before sign-up stays usable
func (c *Config) PendingRoleTTL() time.Duration {
	return time.Duration(c.Session.PendingRoleMins) * time.Minute
}
