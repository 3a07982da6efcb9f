// Package config resolves runtime settings for the tankroute command from
// the environment, optionally seeded by a .env file.
//
// Precedence, lowest first: built-in defaults, .env, process environment,
// command-line flags (applied by the caller).
package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/katalvlaran/tankroute/terrain"
)

// ErrInvalidConfig indicates an environment value that cannot be used.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Environment variable names.
const (
	EnvTerrainFile = "TANKROUTE_TERRAIN_FILE"
	EnvTileSize    = "TANKROUTE_TILE_SIZE"
	EnvHost        = "TANKROUTE_HOST"
	EnvPort        = "TANKROUTE_PORT"
	EnvDebug       = "TANKROUTE_DEBUG"
)

// Config holds everything the command needs to start.
type Config struct {
	TerrainFile string
	TileSize    int
	Host        string
	Port        int
	Debug       bool
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		TerrainFile: "assets/terrain.txt",
		TileSize:    terrain.DefaultTileSize,
		Host:        "localhost",
		Port:        8080,
		Debug:       false,
	}
}

// LoadDotEnv loads variables from the given files (".env" when none are
// given) without overriding ones already set. A missing file is not an
// error.
func LoadDotEnv(paths ...string) error {
	if err := godotenv.Load(paths...); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("config: loading .env: %w", err)
	}
	log.Println("Loaded environment variables from .env file")
	return nil
}

// FromEnv overlays TANKROUTE_* variables on Default. Empty variables keep
// their default.
func FromEnv() (Config, error) {
	cfg := Default()

	if v := os.Getenv(EnvTerrainFile); v != "" {
		cfg.TerrainFile = v
	}
	if v := os.Getenv(EnvHost); v != "" {
		cfg.Host = v
	}
	if v := os.Getenv(EnvTileSize); v != "" {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil || n <= 0 {
			return cfg, fmt.Errorf("%w: %s=%q must be a positive integer", ErrInvalidConfig, EnvTileSize, v)
		}
		cfg.TileSize = n
	}
	if v := os.Getenv(EnvPort); v != "" {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil || n < 1 || n > 65535 {
			return cfg, fmt.Errorf("%w: %s=%q must be a port number", ErrInvalidConfig, EnvPort, v)
		}
		cfg.Port = n
	}
	if v := os.Getenv(EnvDebug); v != "" {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return cfg, fmt.Errorf("%w: %s=%q must be a boolean", ErrInvalidConfig, EnvDebug, v)
		}
		cfg.Debug = b
	}

	return cfg, nil
}

// Validate checks values that may have been overridden after FromEnv.
func (c Config) Validate() error {
	switch {
	case c.TileSize <= 0:
		return fmt.Errorf("%w: tile size %d", ErrInvalidConfig, c.TileSize)
	case c.Port < 1 || c.Port > 65535:
		return fmt.Errorf("%w: port %d", ErrInvalidConfig, c.Port)
	case c.TerrainFile == "":
		return fmt.Errorf("%w: empty terrain file", ErrInvalidConfig)
	}
	return nil
}

// Addr returns host:port for the HTTP listener.
func (c Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// TerrainOptions converts the settings into terrain construction options.
func (c Config) TerrainOptions() []terrain.Option {
	return []terrain.Option{terrain.WithTileSize(c.TileSize)}
}
