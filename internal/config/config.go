package config

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const upstreamPathsPrefix = "upstream_paths_"

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
	Upstream  UpstreamConfig
	Cache     CacheConfig
	Search    SearchConfig
	Tracing   TracingConfig
	Metrics   MetricsConfig
}

type AppConfig struct {
	Name    string
	Env     string
	Port    string
	Debug   bool
	Version string
}

type DatabaseConfig struct {
	Enabled  bool
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
	Timezone string
}

type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

type RateLimitConfig struct {
	Requests int
	Duration int
}

// UpstreamConfig describes the loyalty API
type UpstreamConfig struct {
	BaseURL  string
	Timeout  time.Duration
	PageSize int
	MaxPages int
	// Paths overrides the candidate paths of a resource, keyed by resource name
	Paths map[string][]string
}

// CacheConfig configures the snapshot cache. Without a Redis address snapshots
// are kept in process memory.
type CacheConfig struct {
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	Prefix        string
	TTL           time.Duration
}

type SearchConfig struct {
	Debounce time.Duration
}

type TracingConfig struct {
	Enabled  bool
	Endpoint string
}

type MetricsConfig struct {
	Enabled bool
}

func Load() *Config {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables: %v", err)
	}

	// Set defaults
	viper.SetDefault("APP_NAME", "loyalty-admin")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("APP_DEBUG", true)
	viper.SetDefault("APP_VERSION", "dev")
	viper.SetDefault("DB_ENABLED", true)
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_NAME", "loyalty_admin")
	viper.SetDefault("DB_USER", "postgres")
	viper.SetDefault("DB_PASSWORD", "postgres")
	viper.SetDefault("DB_SSL_MODE", "disable")
	viper.SetDefault("DB_TIMEZONE", "Asia/Kolkata")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("CORS_ALLOWED_HEADERS", []string{})
	viper.SetDefault("RATE_LIMIT_REQUESTS", 100)
	viper.SetDefault("RATE_LIMIT_DURATION", 60)
	viper.SetDefault("UPSTREAM_BASE_URL", "http://localhost:5000/api")
	viper.SetDefault("UPSTREAM_TIMEOUT_SECONDS", 15)
	viper.SetDefault("UPSTREAM_PAGE_SIZE", 100)
	viper.SetDefault("UPSTREAM_MAX_PAGES", 50)
	viper.SetDefault("REDIS_ADDR", "")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("CACHE_PREFIX", "loyalty-admin:")
	viper.SetDefault("CACHE_TTL_SECONDS", 30)
	viper.SetDefault("SEARCH_DEBOUNCE_MS", 300)
	viper.SetDefault("TRACING_ENABLED", false)
	viper.SetDefault("JAEGER_ENDPOINT", "http://localhost:14268/api/traces")
	viper.SetDefault("METRICS_ENABLED", true)

	return &Config{
		App: AppConfig{
			Name:    viper.GetString("APP_NAME"),
			Env:     viper.GetString("APP_ENV"),
			Port:    viper.GetString("APP_PORT"),
			Debug:   viper.GetBool("APP_DEBUG"),
			Version: viper.GetString("APP_VERSION"),
		},
		Database: DatabaseConfig{
			Enabled:  viper.GetBool("DB_ENABLED"),
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			SSLMode:  viper.GetString("DB_SSL_MODE"),
			Timezone: viper.GetString("DB_TIMEZONE"),
		},
		CORS: CORSConfig{
			AllowedOrigins: viper.GetStringSlice("CORS_ALLOWED_ORIGINS"),
			AllowedMethods: viper.GetStringSlice("CORS_ALLOWED_METHODS"),
			AllowedHeaders: viper.GetStringSlice("CORS_ALLOWED_HEADERS"),
		},
		RateLimit: RateLimitConfig{
			Requests: viper.GetInt("RATE_LIMIT_REQUESTS"),
			Duration: viper.GetInt("RATE_LIMIT_DURATION"),
		},
		Upstream: UpstreamConfig{
			BaseURL:  viper.GetString("UPSTREAM_BASE_URL"),
			Timeout:  time.Duration(viper.GetInt("UPSTREAM_TIMEOUT_SECONDS")) * time.Second,
			PageSize: viper.GetInt("UPSTREAM_PAGE_SIZE"),
			MaxPages: viper.GetInt("UPSTREAM_MAX_PAGES"),
			Paths:    upstreamPaths(append(viper.AllKeys(), envKeys()...)),
		},
		Cache: CacheConfig{
			RedisAddr:     viper.GetString("REDIS_ADDR"),
			RedisPassword: viper.GetString("REDIS_PASSWORD"),
			RedisDB:       viper.GetInt("REDIS_DB"),
			Prefix:        viper.GetString("CACHE_PREFIX"),
			TTL:           time.Duration(viper.GetInt("CACHE_TTL_SECONDS")) * time.Second,
		},
		Search: SearchConfig{
			Debounce: time.Duration(viper.GetInt("SEARCH_DEBOUNCE_MS")) * time.Millisecond,
		},
		Tracing: TracingConfig{
			Enabled:  viper.GetBool("TRACING_ENABLED"),
			Endpoint: viper.GetString("JAEGER_ENDPOINT"),
		},
		Metrics: MetricsConfig{
			Enabled: viper.GetBool("METRICS_ENABLED"),
		},
	}
}

func envKeys() []string {
	var keys []string
	for _, kv := range os.Environ() {
		if name, _, ok := strings.Cut(kv, "="); ok {
			keys = append(keys, strings.ToLower(name))
		}
	}
	return keys
}

// upstreamPaths collects UPSTREAM_PATHS_<RESOURCE>=/a,/b overrides. DAILY_REWARDS
// names the resource "daily-rewards".
func upstreamPaths(keys []string) map[string][]string {
	paths := map[string][]string{}
	for _, key := range keys {
		key = strings.ToLower(key)
		if !strings.HasPrefix(key, upstreamPathsPrefix) {
			continue
		}
		name := strings.ReplaceAll(strings.TrimPrefix(key, upstreamPathsPrefix), "_", "-")
		var list []string
		for _, p := range strings.Split(viper.GetString(key), ",") {
			if p = strings.TrimSpace(p); p != "" {
				list = append(list, p)
			}
		}
		if name != "" && len(list) > 0 {
			paths[name] = list
		}
	}
	return paths
}

func (c *DatabaseConfig) DSN() string {
	return "host=" + c.Host +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.Name +
		" port=" + c.Port +
		" sslmode=" + c.SSLMode +
		" TimeZone=" + c.Timezone
}
