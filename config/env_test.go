package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDatabaseDSNFollowsDriver(t *testing.T) {
	Set("DATABASE_DSN", "")
	t.Cleanup(func() { Set("DB_DRIVER", defaultDatabaseDriver) })

	Set("DB_DRIVER", "postgres")
	assert.Equal(t, "postgres", DatabaseDriver())
	assert.Equal(t, defaultPostgresDSN, DatabaseDSN())

	Set("DB_DRIVER", "oracle")
	assert.Equal(t, defaultDatabaseDriver, DatabaseDriver())
	assert.Equal(t, defaultSQLiteDSN, DatabaseDSN())
}

func TestDatabaseDSNOverride(t *testing.T) {
	Set("DATABASE_DSN", "file::memory:")
	t.Cleanup(func() { Set("DATABASE_DSN", "") })

	assert.Equal(t, "file::memory:", DatabaseDSN())
}

func TestDurations(t *testing.T) {
	Set("JWT_TTL", "15m")
	t.Cleanup(func() { Set("JWT_TTL", "1h") })

	assert.Equal(t, 15*time.Minute, JWTTTL())

	Set("JWT_TTL", "garbage")
	assert.Equal(t, time.Hour, JWTTTL())
}

func TestCORSOriginsSplit(t *testing.T) {
	Set("CORS_ORIGINS", "https://a.example, https://b.example ,")
	t.Cleanup(func() { Set("CORS_ORIGINS", "*") })

	assert.Equal(t, []string{"https://a.example", "https://b.example"}, CORSOrigins())
}

func TestTrustedProxiesSplit(t *testing.T) {
	assert.Empty(t, TrustedProxies())

	Set("TRUSTED_PROXIES", " 10.0.0.0/8, ,192.0.2.1")
	t.Cleanup(func() { Set("TRUSTED_PROXIES", "") })
	assert.Equal(t, []string{"10.0.0.0/8", "192.0.2.1"}, TrustedProxies())
}

func TestMergeDotEnvFile(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envPath, []byte("APP_NAME=from-dotenv\n"), 0o644))

	require.NoError(t, loadFromFiles(filepath.Join(dir, "missing.json"), envPath))
	t.Cleanup(func() { Set("APP_NAME", "bilemo") })

	assert.Equal(t, "from-dotenv", Get("app_name", ""))
}
