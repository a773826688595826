package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Env       Environment     `mapstructure:"-"`
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Storage   StorageConfig   `mapstructure:"storage"`
	Log       LogConfig       `mapstructure:"log"`
	Scaling   ScalingConfig   `mapstructure:"scaling"`
	Shopping  ShoppingConfig  `mapstructure:"shopping"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
}

type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            string        `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	AllowedOrigins  []string      `mapstructure:"allowed_origins"`
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return s.Host + ":" + s.Port
}

type DatabaseConfig struct {
	// Driver is "postgres" or "sqlite".
	Driver          string        `mapstructure:"driver"`
	Host            string        `mapstructure:"host"`
	Port            string        `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	Name            string        `mapstructure:"name"`
	SSLMode         string        `mapstructure:"ssl_mode"`
	Path            string        `mapstructure:"path"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// DSN returns the postgres connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode,
	)
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	// URL takes precedence over Host and Port when set.
	URL string `mapstructure:"url"`
}

// Configured reports whether any redis address was given.
func (r RedisConfig) Configured() bool {
	return r.URL != "" || r.Host != ""
}

type StorageConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	Bucket       string        `mapstructure:"bucket"`
	Region       string        `mapstructure:"region"`
	Endpoint     string        `mapstructure:"endpoint"`
	UsePathStyle bool          `mapstructure:"use_path_style"`
	PresignTTL   time.Duration `mapstructure:"presign_ttl"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ScalingConfig bounds the factor a recipe may be scaled by.
type ScalingConfig struct {
	MinFactor float64 `mapstructure:"min_factor"`
	MaxFactor float64 `mapstructure:"max_factor"`
}

type ShoppingConfig struct {
	NormalizeUnits bool          `mapstructure:"normalize_units"`
	CacheTTL       time.Duration `mapstructure:"cache_ttl"`
}

type RateLimitConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Requests int           `mapstructure:"requests"`
	Window   time.Duration `mapstructure:"window"`
}

// envBindings keeps the variable names used by the deployment scripts.
var envBindings = map[string]string{
	"server.host":              "SERVER_HOST",
	"server.port":              "SERVER_PORT",
	"database.driver":          "DB_DRIVER",
	"database.host":            "DB_HOST",
	"database.port":            "DB_PORT",
	"database.user":            "DB_USER",
	"database.password":        "DB_PASSWORD",
	"database.name":            "DB_NAME",
	"database.ssl_mode":        "DB_SSL_MODE",
	"database.path":            "DB_PATH",
	"redis.host":               "REDIS_HOST",
	"redis.port":               "REDIS_PORT",
	"redis.password":           "REDIS_PASSWORD",
	"redis.url":                "REDIS_URL",
	"storage.enabled":          "STORAGE_ENABLED",
	"storage.bucket":           "S3_BUCKET_NAME",
	"storage.region":           "AWS_REGION",
	"storage.endpoint":         "S3_ENDPOINT",
	"log.level":                "LOG_LEVEL",
	"log.format":               "LOG_FORMAT",
	"rate_limit.enabled":       "RATE_LIMIT_ENABLED",
	"rate_limit.requests":      "RATE_LIMIT_REQUESTS",
	"rate_limit.window":        "RATE_LIMIT_WINDOW",
	"shopping.normalize_units": "SHOPPING_NORMALIZE_UNITS",
}

func setDefaults(v *viper.Viper, env Environment) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.shutdown_timeout", "10s")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:5173"})

	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "")
	v.SetDefault("database.name", "mise")
	v.SetDefault("database.ssl_mode", "disable")
	v.SetDefault("database.path", "mise.db")
	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.max_idle_conns", 25)
	v.SetDefault("database.conn_max_lifetime", "5m")

	v.SetDefault("redis.host", "")
	v.SetDefault("redis.port", "6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.url", "")

	v.SetDefault("storage.enabled", false)
	v.SetDefault("storage.bucket", "mise-shopping-lists")
	v.SetDefault("storage.region", "us-east-1")
	v.SetDefault("storage.endpoint", "")
	v.SetDefault("storage.use_path_style", false)
	v.SetDefault("storage.presign_ttl", "15m")

	v.SetDefault("log.level", "info")
	if env.IsLocal() {
		v.SetDefault("log.format", "console")
	} else {
		v.SetDefault("log.format", "json")
	}

	v.SetDefault("scaling.min_factor", 0.1)
	v.SetDefault("scaling.max_factor", 10.0)

	v.SetDefault("shopping.normalize_units", false)
	v.SetDefault("shopping.cache_ttl", "1h")

	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.requests", 30)
	v.SetDefault("rate_limit.window", "1m")
}

// LoadConfig reads configuration from an optional .env file, the process
// environment and Docker secrets, then validates it.
func LoadConfig() (*Config, error) {
	// a missing .env file is not an error
	_ = godotenv.Load()

	env := GetEnvironment()
	v := viper.New()
	setDefaults(v, env)

	v.SetEnvPrefix("MISE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, name := range envBindings {
		if err := v.BindEnv(key, "MISE_"+strings.ToUpper(strings.ReplaceAll(key, ".", "_")), name); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", name, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.Env = env

	if cfg.Database.Password == "" {
		cfg.Database.Password = readSecret("db_password")
	}
	if cfg.Redis.Password == "" {
		cfg.Redis.Password = readSecret("redis_password")
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	if data, err := os.ReadFile(filepath.Join(secretsDir, name)); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}
