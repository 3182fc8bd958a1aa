// Package config loads the service configuration from defaults, an optional .env file
// and environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds the full application configuration.
//
// Example ENV:
//
//	SERVER_PORT=8080
//	REDIS_HOST=localhost
//	REDIS_PORT=6379
//	YAHOO_TIMEOUT=30s
//	YAHOO_MAX_CONCURRENCY=1
//	TRENDING_REGION=JP
type Config struct {
	Server ServerConfig
	Redis  RedisConfig
	Yahoo  YahooConfig
	Market MarketConfig
	Warmup WarmupConfig
	Log    LogConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port               string   // TCP port to listen on (e.g., "8080")
	CORSAllowedOrigins []string // "*" allows every origin
}

// RedisConfig defines connection details for the cache backend.
type RedisConfig struct {
	Host      string
	Port      int
	Password  string
	DB        int
	KeyPrefix string        // prepended to every cache key; empty for none
	OpTimeout time.Duration // per-command timeout; a hung Redis degrades to a cache miss after this
}

// Addr returns host:port.
func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// YahooConfig configures the upstream market data client.
type YahooConfig struct {
	BaseURL           string
	Timeout           time.Duration
	MaxConcurrency    int // in-flight upstream requests
	RequestsPerMinute int // 0 disables rate limiting
	UserAgent         string
	CookieURL         string // issues the session cookie for the crumb handshake
}

// MarketConfig holds aggregator settings.
type MarketConfig struct {
	TrendingRegion string
}

// WarmupConfig configures the cache warmup command.
type WarmupConfig struct {
	Symbols []string
	Timeout time.Duration
}

// LogConfig selects the slog handler.
type LogConfig struct {
	Level  string // debug|info|warn|error
	Format string // json|text
}

// Load reads the configuration.
//
// Precedence (from lowest to highest):
//  1. Defaults set in this function.
//  2. Values from envFile (if non-empty and present).
//  3. Environment variables.
func Load(envFile string) (Config, error) {
	v := viper.New()

	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("REDIS_KEY_PREFIX", "")
	v.SetDefault("REDIS_OP_TIMEOUT", 200*time.Millisecond)

	v.SetDefault("YAHOO_BASE_URL", "https://query2.finance.yahoo.com")
	v.SetDefault("YAHOO_TIMEOUT", 30*time.Second)
	v.SetDefault("YAHOO_MAX_CONCURRENCY", 1)
	v.SetDefault("YAHOO_REQUESTS_PER_MINUTE", 60)
	v.SetDefault("YAHOO_USER_AGENT", "Mozilla/5.0 (compatible; marketdata-backend/1.0)")
	v.SetDefault("YAHOO_COOKIE_URL", "https://fc.yahoo.com")

	v.SetDefault("TRENDING_REGION", "JP")

	v.SetDefault("WARMUP_SYMBOLS", "7203.T,6758.T,9984.T,8306.T,6861.T")
	v.SetDefault("WARMUP_TIMEOUT", 5*time.Minute)

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	if envFile != "" {
		v.SetConfigFile(envFile)
		v.SetConfigType("env")
		// a missing .env is not an error (common outside local dev)
		if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("read %s: %w", envFile, err)
		}
	}

	v.AutomaticEnv()

	cfg := Config{
		Server: ServerConfig{
			Port:               v.GetString("SERVER_PORT"),
			CORSAllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		},
		Redis: RedisConfig{
			Host:      v.GetString("REDIS_HOST"),
			Port:      v.GetInt("REDIS_PORT"),
			Password:  v.GetString("REDIS_PASSWORD"),
			DB:        v.GetInt("REDIS_DB"),
			KeyPrefix: v.GetString("REDIS_KEY_PREFIX"),
			OpTimeout: v.GetDuration("REDIS_OP_TIMEOUT"),
		},
		Yahoo: YahooConfig{
			BaseURL:           strings.TrimRight(v.GetString("YAHOO_BASE_URL"), "/"),
			Timeout:           v.GetDuration("YAHOO_TIMEOUT"),
			MaxConcurrency:    v.GetInt("YAHOO_MAX_CONCURRENCY"),
			RequestsPerMinute: v.GetInt("YAHOO_REQUESTS_PER_MINUTE"),
			UserAgent:         v.GetString("YAHOO_USER_AGENT"),
			CookieURL:         v.GetString("YAHOO_COOKIE_URL"),
		},
		Market: MarketConfig{
			TrendingRegion: v.GetString("TRENDING_REGION"),
		},
		Warmup: WarmupConfig{
			Symbols: splitList(v.GetString("WARMUP_SYMBOLS")),
			Timeout: v.GetDuration("WARMUP_TIMEOUT"),
		},
		Log: LogConfig{
			Level:  strings.ToLower(v.GetString("LOG_LEVEL")),
			Format: strings.ToLower(v.GetString("LOG_FORMAT")),
		},
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports every invalid field at once.
func (c Config) Validate() error {
	var errs []error

	if c.Server.Port == "" {
		errs = append(errs, errors.New("SERVER_PORT is required"))
	}
	if c.Redis.Host == "" {
		errs = append(errs, errors.New("REDIS_HOST is required"))
	}
	if c.Redis.Port <= 0 {
		errs = append(errs, fmt.Errorf("REDIS_PORT must be positive, got %d", c.Redis.Port))
	}
	if c.Redis.OpTimeout <= 0 {
		errs = append(errs, fmt.Errorf("REDIS_OP_TIMEOUT must be positive, got %s", c.Redis.OpTimeout))
	}
	if c.Yahoo.BaseURL == "" {
		errs = append(errs, errors.New("YAHOO_BASE_URL is required"))
	}
	if c.Yahoo.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("YAHOO_TIMEOUT must be positive, got %s", c.Yahoo.Timeout))
	}
	if c.Yahoo.MaxConcurrency <= 0 {
		errs = append(errs, fmt.Errorf("YAHOO_MAX_CONCURRENCY must be positive, got %d", c.Yahoo.MaxConcurrency))
	}
	if c.Yahoo.RequestsPerMinute < 0 {
		errs = append(errs, fmt.Errorf("YAHOO_REQUESTS_PER_MINUTE must not be negative, got %d", c.Yahoo.RequestsPerMinute))
	}
	if c.Market.TrendingRegion == "" {
		errs = append(errs, errors.New("TRENDING_REGION is required"))
	}
	if c.Warmup.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("WARMUP_TIMEOUT must be positive, got %s", c.Warmup.Timeout))
	}
	switch c.Log.Format {
	case "json", "text":
	default:
		errs = append(errs, fmt.Errorf("LOG_FORMAT must be json or text, got %q", c.Log.Format))
	}

	return errors.Join(errs...)
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
