package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Source    SourceConfig    `mapstructure:"source"`
	Lookup    LookupConfig    `mapstructure:"lookup"`
	Cache     CacheConfig     `mapstructure:"cache"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
	Catalog   CatalogConfig   `mapstructure:"catalog"`
	Matching  MatchingConfig  `mapstructure:"matching"`
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// SourceConfig describes where cost of living pages are fetched from
type SourceConfig struct {
	BaseURL               string            `mapstructure:"base_url"`
	UserAgent             string            `mapstructure:"user_agent"`
	Timeout               time.Duration     `mapstructure:"timeout"`
	TableClass            string            `mapstructure:"table_class"`
	RequestsPerSecond     float64           `mapstructure:"requests_per_second"`
	Burst                 int               `mapstructure:"burst"`
	MaxAttempts           int               `mapstructure:"max_attempts"`
	CitySlugs             map[string]string `mapstructure:"city_slugs"`
	CountrySuffixedCities []string          `mapstructure:"country_suffixed_cities"`
}

// LookupConfig holds defaults applied to lookup requests
type LookupConfig struct {
	DefaultCity    string `mapstructure:"default_city"`
	DefaultCountry string `mapstructure:"default_country"`
}

// CacheConfig holds cache-related configuration
type CacheConfig struct {
	Type string        `mapstructure:"type"` // only "memory" for now
	TTL  time.Duration `mapstructure:"ttl"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	PerIP int `mapstructure:"per_ip"` // requests per minute, 0 disables
}

// CatalogConfig points at an alternative catalog file
type CatalogConfig struct {
	Path string `mapstructure:"path"`
}

// MatchingConfig holds matching engine settings
type MatchingConfig struct {
	EnableDebugLogging bool `mapstructure:"enable_debug_logging"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	return LoadFile("")
}

// LoadFile loads configuration from an explicit file when path is non-empty,
// otherwise from the default search paths
func LoadFile(path string) (*Config, error) {
	if err := loadEnvFile(); err != nil {
		return nil, fmt.Errorf("error reading .env file: %w", err)
	}

	v := viper.New()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/costlens/")
	}

	// Environment variable settings
	v.SetEnvPrefix("COSTLENS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || path != "" {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// loadEnvFile loads variables from ./.env when present. Variables already set
// in the environment are left untouched.
func loadEnvFile() error {
	err := godotenv.Load()
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:*"})

	// Source defaults
	v.SetDefault("source.base_url", "https://www.numbeo.com/cost-of-living/in")
	v.SetDefault("source.user_agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64)")
	v.SetDefault("source.timeout", "10s")
	v.SetDefault("source.table_class", "data_wide_table")
	v.SetDefault("source.requests_per_second", 1.0)
	v.SetDefault("source.burst", 5)
	v.SetDefault("source.max_attempts", 3)
	v.SetDefault("source.city_slugs", map[string]string{"lucknow": "Lucknow-Lakhnau"})
	v.SetDefault("source.country_suffixed_cities", []string{"imphal"})

	// Lookup defaults
	v.SetDefault("lookup.default_city", "Imphal")
	v.SetDefault("lookup.default_country", "India")

	// Cache defaults
	v.SetDefault("cache.type", "memory")
	v.SetDefault("cache.ttl", "24h")

	// Rate limit defaults
	v.SetDefault("ratelimit.per_ip", 60)

	// Catalog defaults (empty path = built-in catalog)
	v.SetDefault("catalog.path", "")

	// Matching defaults
	v.SetDefault("matching.enable_debug_logging", false)
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Server.Port == "" {
		return fmt.Errorf("server port is required (set COSTLENS_SERVER_PORT)")
	}

	if config.Source.BaseURL == "" {
		return fmt.Errorf("source base URL is required (set COSTLENS_SOURCE_BASE_URL)")
	}

	if config.Source.MaxAttempts < 1 {
		return fmt.Errorf("source max_attempts must be at least 1, got: %d", config.Source.MaxAttempts)
	}

	if config.Cache.Type != "memory" {
		return fmt.Errorf("cache type must be 'memory', got: %s", config.Cache.Type)
	}

	if config.Cache.TTL < 0 {
		return fmt.Errorf("cache ttl must not be negative, got: %s", config.Cache.TTL)
	}

	if config.RateLimit.PerIP < 0 {
		return fmt.Errorf("ratelimit per_ip must not be negative, got: %d", config.RateLimit.PerIP)
	}

	return nil
}
