package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"saledash/internal/config"
	"saledash/internal/query"
)

func TestLoadEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("SALEDASH_TEST_KEY=from-dotenv\n"), 0o600))
	t.Setenv("SALEDASH_TEST_KEY", "")
	require.NoError(t, os.Unsetenv("SALEDASH_TEST_KEY"))

	LoadEnvFile(path)
	assert.Equal(t, "from-dotenv", os.Getenv("SALEDASH_TEST_KEY"))

	// missing files are ignored
	LoadEnvFile(filepath.Join(t.TempDir(), "missing.env"))
}

func TestSetupLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := SetupLogger("warn", &buf)

	logger.InfoContext(context.Background(), "hidden")
	logger.WarnContext(context.Background(), "shown")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.True(t, strings.Contains(out, "shown"))
}

func TestLoadAndValidateConfig(t *testing.T) {
	t.Setenv("PORT", "not-a-port")
	_, err := LoadAndValidateConfig()
	require.Error(t, err)

	t.Setenv("PORT", "5001")
	cfg, err := LoadAndValidateConfig()
	require.NoError(t, err)
	assert.Equal(t, "5001", cfg.Port)
}

func TestBootstrapMemory(t *testing.T) {
	cfg := config.Load()
	cfg.DataBackend = "memory"
	cfg.AMQPURL = ""

	app, err := Bootstrap(context.Background(), cfg, SetupLogger("error", &bytes.Buffer{}))
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })

	require.NotNil(t, app.Seeder)
	require.NotNil(t, app.Reports)

	stats, err := app.Reports.Statistics(context.Background(), "")
	require.NoError(t, err)
	assert.Zero(t, stats.SoldItems+stats.NotSoldItems)

	n, err := app.Backend.Store.Count(context.Background(), query.Filter{})
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestBootstrapRejectsUnknownBackend(t *testing.T) {
	cfg := config.Load()
	cfg.DataBackend = "sheets"
	_, err := Bootstrap(context.Background(), cfg, SetupLogger("error", &bytes.Buffer{}))
	require.Error(t, err)
}
