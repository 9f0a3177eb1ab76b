package config

import (
	"os"
	"strings"
)

// parseEnv overlays HTTP_ADDRESS, DATABASE_DSN and SECRET_KEY. Blank
// variables are ignored.
func parseEnv(config *Config) {
	if v := getEnv("HTTP_ADDRESS"); v != "" {
		config.EndpointAddrHTTP = v
	}
	if v := getEnv("DATABASE_DSN"); v != "" {
		config.DatabaseDSN = v
	}
	if v := getEnv("SECRET_KEY"); v != "" {
		config.SecretKey = v
	}
}

func getEnv(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}
