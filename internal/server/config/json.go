package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/pantrykeeper/internal/flagx"
	"github.com/dmitrijs2005/pantrykeeper/internal/timex"
)

// JsonConfig is the on-disk shape of the configuration file. Durations use
// timex.Duration so both "60m" and integer nanoseconds are accepted.
//
// Pointer fields distinguish "absent" from "false"/"0", so a partial file
// only overrides the keys it actually names.
type JsonConfig struct {
	EndpointAddrHTTP            string          `json:"endpoint_addr_http"`
	DatabaseDSN                 string          `json:"database_dsn"`
	SecretKey                   string          `json:"secret_key"`
	AccessTokenValidityDuration *timex.Duration `json:"access_token_validity_duration"`
	BcryptCost                  *int            `json:"bcrypt_cost"`
	AdminUsersRequireAuth       *bool           `json:"admin_users_require_auth"`
	AllowedOrigins              []string        `json:"allowed_origins"`
	LogLevel                    string          `json:"log_level"`
}

// parseJson overlays values from the file named by -c/-config onto config.
// Nothing happens when no file is given; an unreadable file or invalid JSON
// panics, since the server cannot start with a half-read configuration.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()

	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	if c.EndpointAddrHTTP != "" {
		config.EndpointAddrHTTP = c.EndpointAddrHTTP
	}
	if c.DatabaseDSN != "" {
		config.DatabaseDSN = c.DatabaseDSN
	}
	if c.SecretKey != "" {
		config.SecretKey = c.SecretKey
	}
	if c.AccessTokenValidityDuration != nil {
		config.AccessTokenValidityDuration = c.AccessTokenValidityDuration.Duration
	}
	if c.BcryptCost != nil {
		config.BcryptCost = *c.BcryptCost
	}
	if c.AdminUsersRequireAuth != nil {
		config.AdminUsersRequireAuth = *c.AdminUsersRequireAuth
	}
	if c.AllowedOrigins != nil {
		config.AllowedOrigins = c.AllowedOrigins
	}
	if c.LogLevel != "" {
		config.LogLevel = c.LogLevel
	}
}
