package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the storefront.
type Config struct {
	App      AppConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	Logger   LoggerConfig
	Session  SessionConfig
	Mail     MailConfig
	SMS      SMSConfig
	Images   ImagesConfig
	Chat     ChatConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
	SecretKey             string
	ProductsPath          string
}

// PostgresConfig holds DB connection values. An empty DSN keeps the catalog on the JSON dataset.
type PostgresConfig struct {
	DSN            string
	MaxConns       int32
	MinConns       int32
	RunMigrations  bool
	ConnMaxIdleSec int32
	ConnMaxLifeSec int32
}

// RedisConfig holds Redis connection values. An empty Addr keeps sessions in memory.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// SessionConfig defines browser session parameters.
type SessionConfig struct {
	CookieName string
	TTL        time.Duration
	OTPCost    int
}

// MailConfig holds SMTP settings. Email is disabled unless Server and DefaultSender are set.
type MailConfig struct {
	Server        string
	Port          int
	UseTLS        bool
	Username      string
	Password      string
	DefaultSender string
	Timeout       time.Duration
}

// Enabled reports whether the email channel is configured.
func (m MailConfig) Enabled() bool {
	return m.Server != "" && m.DefaultSender != ""
}

// SMSConfig holds Twilio settings.
type SMSConfig struct {
	AccountSID  string
	AuthToken   string
	FromNumber  string
	CountryCode string
	BaseURL     string
	Timeout     time.Duration
}

// Enabled reports whether the SMS channel is configured.
func (s SMSConfig) Enabled() bool {
	return s.AccountSID != "" && s.AuthToken != "" && s.FromNumber != ""
}

// ImagesConfig holds the Unsplash search settings.
type ImagesConfig struct {
	AccessKey string
	BaseURL   string
	Timeout   time.Duration
}

// ChatConfig holds text generation settings.
type ChatConfig struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "shri-jewellery-storefront"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "5000"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
			SecretKey:             getEnv("SECRET_KEY", "dev-secret"),
			ProductsPath:          getEnv("PRODUCTS_PATH", "data/products.json"),
		},
		Postgres: PostgresConfig{
			DSN:            os.Getenv("POSTGRES_DSN"),
			MaxConns:       int32(getEnvAsInt("POSTGRES_MAX_CONNS", 10)),
			MinConns:       int32(getEnvAsInt("POSTGRES_MIN_CONNS", 2)),
			RunMigrations:  getEnvAsBool("POSTGRES_RUN_MIGRATIONS", true),
			ConnMaxIdleSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_IDLE_SECONDS", 30)),
			ConnMaxLifeSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_LIFE_SECONDS", 300)),
		},
		Redis: RedisConfig{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Session: SessionConfig{
			CookieName: getEnv("SESSION_COOKIE_NAME", "session"),
			TTL:        getEnvAsDuration("SESSION_TTL", 24*time.Hour),
			OTPCost:    getEnvAsInt("SESSION_OTP_BCRYPT_COST", 10),
		},
		Mail: MailConfig{
			Server:        os.Getenv("MAIL_SERVER"),
			Port:          getEnvAsInt("MAIL_PORT", 587),
			UseTLS:        getEnvAsBool("MAIL_USE_TLS", true),
			Username:      os.Getenv("MAIL_USERNAME"),
			Password:      os.Getenv("MAIL_PASSWORD"),
			DefaultSender: os.Getenv("MAIL_DEFAULT_SENDER"),
			Timeout:       getEnvAsDuration("MAIL_TIMEOUT", 5*time.Second),
		},
		SMS: SMSConfig{
			AccountSID:  os.Getenv("TWILIO_ACCOUNT_SID"),
			AuthToken:   os.Getenv("TWILIO_AUTH_TOKEN"),
			FromNumber:  os.Getenv("TWILIO_FROM_NUMBER"),
			CountryCode: getEnv("SMS_DEFAULT_COUNTRY_CODE", "91"),
			BaseURL:     getEnv("TWILIO_BASE_URL", "https://api.twilio.com"),
			Timeout:     getEnvAsDuration("TWILIO_TIMEOUT", 5*time.Second),
		},
		Images: ImagesConfig{
			AccessKey: os.Getenv("UNSPLASH_ACCESS_KEY"),
			BaseURL:   getEnv("UNSPLASH_BASE_URL", "https://api.unsplash.com"),
			Timeout:   getEnvAsDuration("UNSPLASH_TIMEOUT", 5*time.Second),
		},
		Chat: ChatConfig{
			APIKey:  os.Getenv("GEMINI_API_KEY"),
			Model:   getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
			BaseURL: getEnv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com"),
			Timeout: getEnvAsDuration("GEMINI_TIMEOUT", 10*time.Second),
		},
	}

	return cfg, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(val)
	if err != nil || parsed <= 0 {
		return fallback
	}
	return parsed
}
