// Package config resolves runtime settings. The storage root is injected
// into the store at startup rather than baked into it; it comes from an
// optional .env file, the environment, or a flag, in that order of
// increasing precedence.
package config

import (
	"os"

	"github.com/joho/godotenv"
)

// EnvDataDir names the environment variable selecting the data directory.
const EnvDataDir = "BUDGET_DATA_DIR"

const defaultDataDir = "data"

// Config holds the resolved settings.
type Config struct {
	DataDir string
}

// Load reads .env if present, then the environment. A missing .env file
// is not an error.
func Load() Config {
	_ = godotenv.Load()

	dir := os.Getenv(EnvDataDir)
	if dir == "" {
		dir = defaultDataDir
	}
	return Config{DataDir: dir}
}
