package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigReadsTomlAndEnv(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "config"), 0o755))
	toml := `
ServicePort = 9090
LogLevel = "debug"
StorageDriver = "memory"
CatalogCacheTTL = "5m"
HistoryMaxLimit = 50
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config", "test.toml"), []byte(toml), 0o644))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	t.Setenv("CONFIG_NAME", "test")
	t.Setenv("JWT_KEY", "from-env")

	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.ServicePort)
	assert.Equal(t, "0.0.0.0", cfg.ServiceHost)
	assert.Equal(t, StorageDriverMemory, cfg.StorageDriver)
	assert.Equal(t, 5*time.Minute, cfg.CatalogCacheTTL)
	assert.Equal(t, 24*time.Hour, cfg.JwtTTL)
	assert.Equal(t, "from-env", cfg.JwtKey)
	assert.Equal(t, 20, cfg.HistoryDefaultLimit)
	assert.Equal(t, 50, cfg.HistoryMaxLimit)
}

func TestApplyLogLevel(t *testing.T) {
	t.Cleanup(func() { logrus.SetLevel(logrus.InfoLevel) })

	(&Config{LogLevel: "warn"}).ApplyLogLevel()
	assert.Equal(t, logrus.WarnLevel, logrus.GetLevel())

	(&Config{LogLevel: "loud"}).ApplyLogLevel()
	assert.Equal(t, logrus.InfoLevel, logrus.GetLevel())
}
