package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variables that override the configuration file
const (
	EnvInputDir   = "BFTY_INPUT_DIR"
	EnvOutputDir  = "BFTY_OUTPUT_DIR"
	EnvWorkers    = "BFTY_WORKERS"
	EnvSQLitePath = "BFTY_SQLITE_PATH"
)

// LoadEnvFile loads variables from a .env file into the process
// environment. An empty path tries ./.env and ignores a missing file.
func LoadEnvFile(path string) error {
	if path == "" {
		if _, err := os.Stat(".env"); err != nil {
			return nil
		}
		return godotenv.Load()
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides configuration values from the environment.
func ApplyEnv(c *ConfigData) error {
	if v, ok := os.LookupEnv(EnvInputDir); ok && v != "" {
		c.InputDir = v
	}
	if v, ok := os.LookupEnv(EnvOutputDir); ok && v != "" {
		c.Output.Dir = v
	}
	if v, ok := os.LookupEnv(EnvSQLitePath); ok && v != "" {
		c.Output.SQLitePath = v
	}
	if v, ok := os.LookupEnv(EnvWorkers); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q: %v", ErrInvalid, EnvWorkers, v, err)
		}
		c.Pipeline.Workers = n
	}
	return nil
}
