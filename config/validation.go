package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is every problem found in one configuration.
type ValidationErrors []ValidationError

func (errs ValidationErrors) Error() string {
	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "\n")
}

// Has reports whether field failed validation.
func (errs ValidationErrors) Has(field string) bool {
	for _, e := range errs {
		if e.Field == field {
			return true
		}
	}
	return false
}

// ValidateConfig checks the configuration for the environment it was loaded in.
func ValidateConfig(cfg *Config) error {
	var errs ValidationErrors
	add := func(field, msg string) {
		errs = append(errs, ValidationError{Field: field, Message: msg})
	}

	if cfg.Server.Port == "" {
		add("server.port", "is required")
	}

	switch cfg.Database.Driver {
	case "postgres":
		if cfg.Database.Host == "" {
			add("database.host", "is required for postgres")
		}
		if cfg.Database.Name == "" {
			add("database.name", "is required for postgres")
		}
		if cfg.Database.User == "" {
			add("database.user", "is required for postgres")
		}
		if cfg.Database.Password == "" && !cfg.Env.IsLocal() {
			add("database.password", "db_password secret or DB_PASSWORD is required")
		}
	case "sqlite":
		if cfg.Database.Path == "" {
			add("database.path", "is required for sqlite")
		}
		if cfg.Env.IsProduction() {
			add("database.driver", "sqlite is not supported in production")
		}
	default:
		add("database.driver", fmt.Sprintf("unknown driver %q", cfg.Database.Driver))
	}

	if cfg.Scaling.MinFactor <= 0 {
		add("scaling.min_factor", "must be positive")
	}
	if cfg.Scaling.MaxFactor < cfg.Scaling.MinFactor {
		add("scaling.max_factor", "must not be below scaling.min_factor")
	}

	if cfg.Storage.Enabled {
		if cfg.Storage.Bucket == "" {
			add("storage.bucket", "is required when storage is enabled")
		}
		if cfg.Storage.PresignTTL <= 0 {
			add("storage.presign_ttl", "must be positive")
		}
	}

	if cfg.RateLimit.Enabled {
		if cfg.RateLimit.Requests <= 0 {
			add("rate_limit.requests", "must be positive")
		}
		if cfg.RateLimit.Window <= 0 {
			add("rate_limit.window", "must be positive")
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
