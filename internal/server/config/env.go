package config

import (
	"os"
	"time"
)

// parseEnv overlays Config fields from environment variables. A .env file,
// if present, is loaded into the environment by the entrypoint (godotenv)
// before this runs.
//
// Recognized variables: ADDRESS, DATABASE_DSN, SECRET_KEY,
// TOKEN_VALIDITY (time.ParseDuration format, e.g. "168h"), CORS_ORIGIN.
func parseEnv(config *Config) {
	if v := os.Getenv("ADDRESS"); v != "" {
		config.Addr = v
	}
	if v := os.Getenv("DATABASE_DSN"); v != "" {
		config.DatabaseDSN = v
	}
	if v := os.Getenv("SECRET_KEY"); v != "" {
		config.SecretKey = v
	}
	if v := os.Getenv("TOKEN_VALIDITY"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			config.TokenValidityDuration = d
		}
	}
	if v := os.Getenv("CORS_ORIGIN"); v != "" {
		config.CORSOrigin = v
	}
}
