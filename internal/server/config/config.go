// Package config handles configuration for the PantryKeeper server,
// including defaults, JSON overlay, environment variables and command-line flags.
package config

import "time"

// Config holds runtime settings for the PantryKeeper server.
//
// Fields:
//   - EndpointAddrHTTP: bind address for the HTTP API.
//   - DatabaseDSN: postgres:// URL (pgx) or SQLite file/URI (modernc).
//   - SecretKey: HMAC secret for signing access tokens (HS256). Do not use the default in prod.
//   - AccessTokenValidityDuration: lifetime of issued access tokens.
//   - BcryptCost: work factor for password hashes.
//   - AdminUsersRequireAuth: guard GET /api/admin/users with a bearer token.
//   - AllowedOrigins: browser origins allowed by CORS.
//   - LogLevel: debug, info, warn or error.
type Config struct {
	EndpointAddrHTTP            string
	DatabaseDSN                 string
	SecretKey                   string
	AccessTokenValidityDuration time.Duration
	BcryptCost                  int
	AdminUsersRequireAuth       bool
	AllowedOrigins              []string
	LogLevel                    string
}

// LoadDefaults populates Config with development defaults.
// NOTE: SecretKey is insecure for production and must be overridden.
func (c *Config) LoadDefaults() {
	c.EndpointAddrHTTP = ":8000"
	c.DatabaseDSN = "file:pantrykeeper.db"
	c.SecretKey = "secretKey"
	c.AccessTokenValidityDuration = 60 * time.Minute
	c.BcryptCost = 10
	c.AdminUsersRequireAuth = false
	c.AllowedOrigins = []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	c.LogLevel = "info"
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file, the environment and finally command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
