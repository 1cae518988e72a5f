package cmd_test

import (
	"os"
	"path/filepath"
	"testing"

	"parceldelivery/cmd"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("STRIPE_SECRET_KEY", "sk_test")
}

func TestLoadConfig(t *testing.T) {
	missing := filepath.Join(t.TempDir(), ".env")

	t.Run("should apply defaults without env file", func(t *testing.T) {
		setRequired(t)

		cfg, err := cmd.LoadConfig(missing, nil)

		require.NoError(t, err)
		assert.Equal(t, "8080", cfg.HTTPPort)
		assert.Equal(t, "disable", cfg.DBSslMode)
		assert.Equal(t, "json", cfg.LogFormat)
		assert.Empty(t, cfg.KafkaBrokers)
	})

	t.Run("should let flags override environment", func(t *testing.T) {
		setRequired(t)
		t.Setenv("HTTP_PORT", "9000")
		t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092")

		cfg, err := cmd.LoadConfig(missing, []string{"--http-port=9100", "--log-format=text"})

		require.NoError(t, err)
		assert.Equal(t, "9100", cfg.HTTPPort)
		assert.Equal(t, "text", cfg.LogFormat)
		assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
	})

	t.Run("should read env file without overriding the environment", func(t *testing.T) {
		setRequired(t)
		t.Setenv("DB_NAME", "from_env")
		path := filepath.Join(t.TempDir(), ".env")
		require.NoError(t, os.WriteFile(path, []byte("DB_NAME=from_file\nDB_HOST=db.internal\n"), 0o600))
		t.Cleanup(func() { _ = os.Unsetenv("DB_HOST") })

		cfg, err := cmd.LoadConfig(path, nil)

		require.NoError(t, err)
		assert.Equal(t, "from_env", cfg.DBName)
		assert.Equal(t, "db.internal", cfg.DBHost)
	})

	t.Run("should require secrets", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "")
		t.Setenv("STRIPE_SECRET_KEY", "")

		_, err := cmd.LoadConfig(missing, nil)

		require.ErrorContains(t, err, "JWT_SECRET")
		require.ErrorContains(t, err, "STRIPE_SECRET_KEY")
	})

	t.Run("should reject unknown log format", func(t *testing.T) {
		setRequired(t)

		_, err := cmd.LoadConfig(missing, []string{"--log-format=xml"})

		require.ErrorContains(t, err, "LOG_FORMAT")
	})
}
