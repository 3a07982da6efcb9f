package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tankroute/config"
)

// clearEnv blanks every TANKROUTE_* variable for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		config.EnvTerrainFile, config.EnvTileSize, config.EnvHost, config.EnvPort, config.EnvDebug,
	} {
		t.Setenv(k, "")
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := config.FromEnv()
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
	assert.Equal(t, "localhost:8080", cfg.Addr())
	assert.NoError(t, cfg.Validate())
}

func TestFromEnv_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv(config.EnvTerrainFile, "maps/hills.txt")
	t.Setenv(config.EnvTileSize, "16")
	t.Setenv(config.EnvHost, "0.0.0.0")
	t.Setenv(config.EnvPort, " 9090 ")
	t.Setenv(config.EnvDebug, "true")

	cfg, err := config.FromEnv()
	require.NoError(t, err)
	assert.Equal(t, config.Config{
		TerrainFile: "maps/hills.txt",
		TileSize:    16,
		Host:        "0.0.0.0",
		Port:        9090,
		Debug:       true,
	}, cfg)
	assert.Len(t, cfg.TerrainOptions(), 1)
}

func TestFromEnv_Invalid(t *testing.T) {
	cases := []struct {
		name, key, value string
	}{
		{"tile size text", config.EnvTileSize, "big"},
		{"tile size zero", config.EnvTileSize, "0"},
		{"port negative", config.EnvPort, "-1"},
		{"port too large", config.EnvPort, "70000"},
		{"debug", config.EnvDebug, "sometimes"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tc.key, tc.value)

			_, err := config.FromEnv()
			assert.ErrorIs(t, err, config.ErrInvalidConfig)
		})
	}
}

func TestValidate(t *testing.T) {
	cfg := config.Default()
	cfg.Port = 0
	assert.ErrorIs(t, cfg.Validate(), config.ErrInvalidConfig)

	cfg = config.Default()
	cfg.TileSize = -4
	assert.ErrorIs(t, cfg.Validate(), config.ErrInvalidConfig)

	cfg = config.Default()
	cfg.TerrainFile = ""
	assert.ErrorIs(t, cfg.Validate(), config.ErrInvalidConfig)
}

func TestLoadDotEnv(t *testing.T) {
	clearEnv(t)
	require.NoError(t, config.LoadDotEnv(filepath.Join(t.TempDir(), "missing.env")))

	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("TANKROUTE_PORT=7070\nTANKROUTE_TILE_SIZE=24\n"), 0o600))

	// godotenv never overrides variables that are already set, and
	// clearEnv set them to "", so unset them first.
	require.NoError(t, os.Unsetenv(config.EnvPort))
	require.NoError(t, os.Unsetenv(config.EnvTileSize))

	require.NoError(t, config.LoadDotEnv(path))
	t.Cleanup(func() {
		os.Unsetenv(config.EnvPort)
		os.Unsetenv(config.EnvTileSize)
	})

	cfg, err := config.FromEnv()
	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.Port)
	assert.Equal(t, 24, cfg.TileSize)
}
