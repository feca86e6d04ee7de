package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	DatabaseURL       string `mapstructure:"DATABASE_URL"`
	DatabaseName      string `mapstructure:"DATABASE_NAME"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Redis configuration.
	RedisAddr       string `mapstructure:"REDIS_ADDR"`
	RedisPassword   string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB    int    `mapstructure:"REDIS_CACHE_DB"`
	RedisPrefsDB    int    `mapstructure:"REDIS_PREFS_DB"`
	RedisQueueDB    int    `mapstructure:"REDIS_QUEUE_DB"`
	CandidateTTLMin int    `mapstructure:"CANDIDATE_TTL_MINUTES"`

	// Days of participant availability kept; 0 disables pruning.
	AvailabilityRetentionDays int `mapstructure:"AVAILABILITY_RETENTION_DAYS"`

	// Timeline defaults.
	DefaultMinHour  int    `mapstructure:"DEFAULT_MIN_HOUR"`
	DefaultMaxHour  int    `mapstructure:"DEFAULT_MAX_HOUR"`
	HourStep        int    `mapstructure:"HOUR_STEP"`
	DefaultDuration int    `mapstructure:"DEFAULT_DURATION"`
	DefaultTimezone string `mapstructure:"DEFAULT_TIMEZONE"`

	// Terminal timeline.
	TUIScenario string `mapstructure:"TUI_SCENARIO"`
	TUIDate     string `mapstructure:"TUI_DATE"`
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

	SetDefaults()

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

// SetDefaults registers the default value of every key with viper.
func SetDefaults() {
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 600)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_PREFS_DB", 1)
	viper.SetDefault("REDIS_QUEUE_DB", 2)
	viper.SetDefault("AVAILABILITY_RETENTION_DAYS", 30)
	viper.SetDefault("CANDIDATE_TTL_MINUTES", 24*60)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("DATABASE_NAME", "slotline")
	viper.SetDefault("DEFAULT_MIN_HOUR", 0)
	viper.SetDefault("DEFAULT_MAX_HOUR", 24)
	viper.SetDefault("HOUR_STEP", 2)
	viper.SetDefault("DEFAULT_DURATION", 60)
	viper.SetDefault("DEFAULT_TIMEZONE", "UTC")
	viper.SetDefault("TUI_SCENARIO", "")
	viper.SetDefault("TUI_DATE", "")
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}

// CandidateTTL is how long an untouched candidate set survives in the cache.
func CandidateTTL() time.Duration {
	if AppConfig.CandidateTTLMin <= 0 {
		return 24 * time.Hour
	}
	return time.Duration(AppConfig.CandidateTTLMin) * time.Minute
}
