package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfigYAML = `
env:
  serviceName: storefront
  log:
    level: info
http:
  port: 9090
  timeouts:
    readTimeout: 3s
database:
  driver: sqlite
  sqlite:
    dsn: "file::memory:"
jwt:
  secret: ""
  issuer: storefront
  audience: clients
product:
  enforceOwnership: false
`

func writeTestConfig(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.yaml"), []byte(testConfigYAML), 0o600))

	return dir
}

func TestLoadWithEnv_ReadsYAMLAndEnvOverrides(t *testing.T) {
	t.Chdir(writeTestConfig(t))
	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("PRODUCT_ENFORCEOWNERSHIP", "true")

	cfg, err := LoadWithEnv[Config]("app")
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, 3*time.Second, cfg.HTTP.Timeouts.ReadTimeout)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "from-env", cfg.JWT.Secret)
	assert.Equal(t, "storefront", cfg.JWT.Issuer)
	assert.Equal(t, "clients", cfg.JWT.Audience)
	require.NotNil(t, cfg.Product)
	assert.True(t, cfg.Product.EnforceOwnership)
}

func TestLoadWithEnv_MissingFile(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := LoadWithEnv[Config]("missing")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "missing.yaml not found")
}

func TestConfig_Normalize(t *testing.T) {
	t.Run("defaults body size and driver", func(t *testing.T) {
		cfg := &Config{}
		cfg.Database.Driver = "SQLite "
		cfg.Database.SQLite.DSN = "file::memory:"

		require.NoError(t, cfg.normalize())
		assert.Equal(t, DriverSQLite, cfg.Database.Driver)
		assert.Equal(t, defaultMaxRequestBodySize, cfg.HTTP.MaxRequestBodySize)
	})

	t.Run("rejects unknown driver", func(t *testing.T) {
		cfg := &Config{}
		cfg.Database.Driver = "oracle"

		err := cfg.normalize()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported database driver")
	})

	t.Run("sqlite requires dsn", func(t *testing.T) {
		cfg := &Config{}
		cfg.Database.Driver = DriverSQLite

		assert.Error(t, cfg.normalize())
	})

	t.Run("postgres requires section", func(t *testing.T) {
		cfg := &Config{}

		assert.Error(t, cfg.normalize())
	})
}

func TestLoadDotEnv_MissingFileIsIgnored(t *testing.T) {
	t.Chdir(t.TempDir())

	assert.NoError(t, loadDotEnv(".env"))
}

func TestLoadDotEnv_DoesNotOverrideExistingEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("STOREFRONT_TEST_KEY=from-file\n"), 0o600))
	t.Setenv("STOREFRONT_TEST_KEY", "from-env")

	require.NoError(t, loadDotEnv(".env"))
	assert.Equal(t, "from-env", os.Getenv("STOREFRONT_TEST_KEY"))
}
