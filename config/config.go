package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	JWTSecret         string `mapstructure:"JWT_SECRET"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Session storage.
	SessionStore      string `mapstructure:"SESSION_STORE"` // "redis" or "memory"
	SessionTTLMinutes int    `mapstructure:"SESSION_TTL_MINUTES"`

	// Redis configuration.
	RedisAddr      string `mapstructure:"REDIS_ADDR"`
	RedisPassword  string `mapstructure:"REDIS_PASSWORD"`
	RedisSessionDB int    `mapstructure:"REDIS_SESSION_DB"`

	// MongoDB, used for booking history. Empty disables the history trail.
	DatabaseURL string `mapstructure:"DATABASE_URL"`

	// Google Calendar integration.
	GoogleCredentialsFile  string `mapstructure:"GOOGLE_CREDENTIALS_FILE"`
	GoogleTokenFile        string `mapstructure:"GOOGLE_TOKEN_FILE"`
	CalendarID             string `mapstructure:"CALENDAR_ID"`
	CalendarTimeZone       string `mapstructure:"CALENDAR_TIMEZONE"`
	CalendarTimeoutSeconds int    `mapstructure:"CALENDAR_TIMEOUT_SECONDS"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("SESSION_STORE", "redis")
	viper.SetDefault("SESSION_TTL_MINUTES", 30)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_SESSION_DB", 0)
	viper.SetDefault("DATABASE_URL", "")
	viper.SetDefault("GOOGLE_CREDENTIALS_FILE", "credentials.json")
	viper.SetDefault("GOOGLE_TOKEN_FILE", "token.json")
	viper.SetDefault("CALENDAR_ID", "primary")
	viper.SetDefault("CALENDAR_TIMEZONE", "Asia/Kolkata")
	viper.SetDefault("CALENDAR_TIMEOUT_SECONDS", 15)

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}

// SessionTTL returns the configured session lifetime.
func SessionTTL() time.Duration {
	return time.Duration(AppConfig.SessionTTLMinutes) * time.Minute
}

// CalendarTimeout returns the bound on a single calendar API call.
func CalendarTimeout() time.Duration {
	return time.Duration(AppConfig.CalendarTimeoutSeconds) * time.Second
}
