package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertDefaults(t *testing.T, c *Config) {
	t.Helper()
	assert.Equal(t, ":8000", c.EndpointAddrHTTP)
	assert.Equal(t, "file:pantrykeeper.db", c.DatabaseDSN)
	assert.Equal(t, "secretKey", c.SecretKey)
	assert.Equal(t, 60*time.Minute, c.AccessTokenValidityDuration)
	assert.Equal(t, 10, c.BcryptCost)
	assert.False(t, c.AdminUsersRequireAuth)
	assert.Equal(t, []string{"http://localhost:3000", "http://127.0.0.1:3000"}, c.AllowedOrigins)
	assert.Equal(t, "info", c.LogLevel)
}

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()
	assertDefaults(t, &c)
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"testbin"}

	t.Setenv("HTTP_ADDRESS", "")
	t.Setenv("DATABASE_DSN", "")
	t.Setenv("SECRET_KEY", "")

	c := LoadConfig()
	require.NotNil(t, c, "LoadConfig must not return nil")
	assertDefaults(t, c)
}

func TestLoadConfig_FlagsOverrideEnvironment(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"testbin", "-s", "from-flag"}

	t.Setenv("SECRET_KEY", "from-env")
	t.Setenv("DATABASE_DSN", "postgres://pantry@db/pantry")

	c := LoadConfig()
	assert.Equal(t, "from-flag", c.SecretKey)
	assert.Equal(t, "postgres://pantry@db/pantry", c.DatabaseDSN)
}

func TestLoadConfig_SubMinuteJSONDurationSurvivesFlags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"access_token_validity_duration": "90s"}`), 0o600))

	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"testbin", "-c", path}

	c := LoadConfig()
	assert.Equal(t, 90*time.Second, c.AccessTokenValidityDuration)
	assert.Equal(t, []string{"http://localhost:3000", "http://127.0.0.1:3000"}, c.AllowedOrigins)
}
