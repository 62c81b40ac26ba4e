package config

import (
	"fmt"
	"strings"
)

// ValidateConfig checks the configuration for the current environment.
// Development tolerates the built-in fallbacks; production does not.
func ValidateConfig(cfg *Config) error {
	var errors []string

	if cfg.DBHost == "" {
		errors = append(errors, "DB_HOST is required")
	}
	if cfg.DBName == "" {
		errors = append(errors, "DB_NAME is required")
	}
	if cfg.JWTSecret == "" {
		errors = append(errors, "JWT_SECRET is required")
	}

	if IsProduction() {
		if cfg.JWTSecret == "dev-secret" {
			errors = append(errors, "jwt_secret secret is required in production")
		}
		if cfg.DBPassword == "" || cfg.DBPassword == "postgres" {
			errors = append(errors, "db_password secret is required in production")
		}
		if cfg.DBSSLMode == "disable" {
			errors = append(errors, "DB_SSL_MODE must not be disable in production")
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("%s", strings.Join(errors, "; "))
	}
	return nil
}
