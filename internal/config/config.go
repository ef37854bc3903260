package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Magento  MagentoConfig
	LLM      LLMConfig
	JWT      JWTConfig
	Slack    SlackConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	CORSOrigins  []string
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string //nolint:gosec // G117: DB connection config
	DBName   string
	SSLMode  string
	MaxConns int
}

// RedisConfig holds Redis connection settings.
type RedisConfig struct {
	Addr     string
	Password string //nolint:gosec // G117: Redis connection config
	DB       int
}

// MagentoConfig holds the commerce platform REST API settings.
type MagentoConfig struct {
	BaseURL     string
	AccessToken string //nolint:gosec // G117: API token config
	StoreView   string
	Timeout     time.Duration
	VerifyTLS   bool
}

// LLMConfig holds settings for the OpenAI-compatible chat completion endpoint.
type LLMConfig struct {
	BaseURL     string
	APIKey      string //nolint:gosec // G117: API key config
	Model       string
	Temperature float64
	MaxTurns    int
	Timeout     time.Duration
}

// JWTConfig holds operator authentication settings.
type JWTConfig struct {
	Secret        string //nolint:gosec // G117: JWT signing secret config
	AccessTTL     time.Duration
	AdminUser     string
	AdminPassHash string // bcrypt hash of the operator password
}

// SlackConfig holds the optional operator notification channel. Notifications
// are disabled when BotToken is empty.
type SlackConfig struct {
	BotToken  string
	ChannelID string
}

// Load reads configuration from environment variables. Defaults are safe for
// local development only. In production, sensitive values (JWT secret,
// Magento token, DB password) must be set explicitly.
func Load() (*Config, error) {
	dbPort, err := getEnvInt("AIFC_DB_PORT", 5432)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	dbMaxConns, err := getEnvInt("AIFC_DB_MAX_CONNS", 25)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	redisDB, err := getEnvInt("AIFC_REDIS_DB", 0)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	readTimeout, err := getEnvDuration("AIFC_SERVER_READ_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	writeTimeout, err := getEnvDuration("AIFC_SERVER_WRITE_TIMEOUT", 120*time.Second)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	magentoTimeout, err := getEnvDuration("AIFC_MAGENTO_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	magentoVerifyTLS, err := getEnvBool("AIFC_MAGENTO_VERIFY_TLS", true)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	llmTemperature, err := getEnvFloat("AIFC_LLM_TEMPERATURE", 0.1)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	llmMaxTurns, err := getEnvInt("AIFC_LLM_MAX_TURNS", 12)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	llmTimeout, err := getEnvDuration("AIFC_LLM_TIMEOUT", 60*time.Second)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	accessTTL, err := getEnvDuration("AIFC_JWT_ACCESS_TTL", 12*time.Hour)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Addr:         getEnv("AIFC_SERVER_ADDR", ":8080"),
			ReadTimeout:  readTimeout,
			WriteTimeout: writeTimeout,
			CORSOrigins:  getEnvList("AIFC_CORS_ORIGINS", []string{"http://localhost:5173"}),
		},
		Database: DatabaseConfig{
			Host:     getEnv("AIFC_DB_HOST", "localhost"),
			Port:     dbPort,
			User:     getEnv("AIFC_DB_USER", "aifastcommerce"),
			Password: getEnv("AIFC_DB_PASSWORD", ""),
			DBName:   getEnv("AIFC_DB_NAME", "aifastcommerce_dev"),
			SSLMode:  getEnv("AIFC_DB_SSLMODE", "disable"),
			MaxConns: dbMaxConns,
		},
		Redis: RedisConfig{
			Addr:     getEnv("AIFC_REDIS_ADDR", "localhost:6379"),
			Password: getEnv("AIFC_REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		Magento: MagentoConfig{
			BaseURL:     getEnv("AIFC_MAGENTO_BASE_URL", ""),
			AccessToken: getEnv("AIFC_MAGENTO_ACCESS_TOKEN", ""),
			StoreView:   getEnv("AIFC_MAGENTO_STORE_VIEW", "default"),
			Timeout:     magentoTimeout,
			VerifyTLS:   magentoVerifyTLS,
		},
		LLM: LLMConfig{
			BaseURL:     getEnv("AIFC_LLM_BASE_URL", ""),
			APIKey:      getEnv("AIFC_LLM_API_KEY", ""),
			Model:       getEnv("AIFC_LLM_MODEL", "gpt-4o-mini"),
			Temperature: llmTemperature,
			MaxTurns:    llmMaxTurns,
			Timeout:     llmTimeout,
		},
		JWT: JWTConfig{
			Secret:        getEnv("AIFC_JWT_SECRET", ""),
			AccessTTL:     accessTTL,
			AdminUser:     getEnv("AIFC_ADMIN_USER", "admin"),
			AdminPassHash: getEnv("AIFC_ADMIN_PASS_HASH", ""),
		},
		Slack: SlackConfig{
			BotToken:  getEnv("AIFC_SLACK_BOT_TOKEN", ""),
			ChannelID: getEnv("AIFC_SLACK_CHANNEL_ID", ""),
		},
	}

	err = cfg.validate()
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	return cfg, nil
}

// validate checks required fields and value bounds.
func (c *Config) validate() error {
	if c.JWT.Secret == "" {
		return errors.New("AIFC_JWT_SECRET is required")
	}
	if len(c.JWT.Secret) < 32 {
		return errors.New("AIFC_JWT_SECRET must be at least 32 characters")
	}
	if c.JWT.AdminPassHash == "" {
		return errors.New("AIFC_ADMIN_PASS_HASH is required")
	}
	if c.Magento.BaseURL == "" {
		return errors.New("AIFC_MAGENTO_BASE_URL is required")
	}
	if c.LLM.APIKey == "" {
		return errors.New("AIFC_LLM_API_KEY is required")
	}

	if !c.Magento.VerifyTLS {
		log.Warn().Msg("AIFC_MAGENTO_VERIFY_TLS=false is insecure for production")
	}

	if c.Database.Port < 1 || c.Database.Port > 65535 {
		return fmt.Errorf("AIFC_DB_PORT must be 1-65535, got %d", c.Database.Port)
	}
	if c.Database.MaxConns < 1 {
		return fmt.Errorf("AIFC_DB_MAX_CONNS must be >= 1, got %d", c.Database.MaxConns)
	}
	if c.Server.ReadTimeout <= 0 {
		return fmt.Errorf("AIFC_SERVER_READ_TIMEOUT must be positive, got %s", c.Server.ReadTimeout)
	}
	if c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("AIFC_SERVER_WRITE_TIMEOUT must be positive, got %s", c.Server.WriteTimeout)
	}
	if c.JWT.AccessTTL <= 0 {
		return fmt.Errorf("AIFC_JWT_ACCESS_TTL must be positive, got %s", c.JWT.AccessTTL)
	}
	if c.LLM.MaxTurns < 1 {
		return fmt.Errorf("AIFC_LLM_MAX_TURNS must be >= 1, got %d", c.LLM.MaxTurns)
	}
	if c.LLM.Temperature < 0 || c.LLM.Temperature > 2 {
		return fmt.Errorf("AIFC_LLM_TEMPERATURE must be in [0,2], got %g", c.LLM.Temperature)
	}

	return nil
}

// DSN returns the PostgreSQL connection string.
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("parsing %s=%q as int: %w", key, v, err)
	}
	return n, nil
}

func getEnvFloat(key string, fallback float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing %s=%q as float: %w", key, v, err)
	}
	return f, nil
}

func getEnvBool(key string, fallback bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("parsing %s=%q as bool: %w", key, v, err)
	}
	return b, nil
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("parsing %s=%q as duration: %w", key, v, err)
	}
	return d, nil
}

func getEnvList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parts := strings.Split(v, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}
