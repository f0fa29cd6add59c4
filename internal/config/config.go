// Package config reads runtime settings from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/samdwyer/dungeongen/internal/telemetry"
)

// Environment variables read by Load.
const (
	EnvAddr     = "DUNGEONGEN_ADDR"
	EnvSeed     = "DUNGEONGEN_SEED"
	EnvPreset   = "DUNGEONGEN_PRESET"
	EnvMaxSteps = "DUNGEONGEN_MAX_STEPS"
	EnvTimeout  = "DUNGEONGEN_TIMEOUT"
	EnvAPIKey   = "HONEYCOMB_DUNGEONGEN_API_KEY"
	EnvDataset  = "HONEYCOMB_DUNGEONGEN_DATASET"
)

const (
	// DefaultAddr is the HTTP listen address used when none is configured.
	DefaultAddr = ":3000"
	// DefaultTimeout bounds one generation request served over HTTP.
	DefaultTimeout = 10 * time.Second
)

// Config holds process configuration options.
type Config struct {
	// Addr is the HTTP listen address.
	Addr string
	// Seed for random number generation. A seed of 0 means a seed is
	// derived from the current time.
	Seed int64
	// Preset names the preset used when a request does not pick one.
	Preset string
	// MaxSteps caps separation steps per room; 0 keeps the default.
	MaxSteps int
	// Timeout bounds each HTTP generation request.
	Timeout time.Duration

	Telemetry telemetry.Config
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		Addr:    DefaultAddr,
		Preset:  "reference",
		Timeout: DefaultTimeout,
		Telemetry: telemetry.Config{
			Endpoint: telemetry.DefaultEndpoint,
		},
	}
}

// LoadDotEnv loads the given .env files (".env" when none are named) into
// the process environment. Variables already set are not overridden.
func LoadDotEnv(filenames ...string) error {
	return godotenv.Load(filenames...)
}

// Load builds a Config from the process environment.
func Load() (Config, error) {
	return FromLookup(os.LookupEnv)
}

// FromLookup builds a Config reading variables through lookup.
func FromLookup(lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()

	if v, ok := lookup(EnvAddr); ok && v != "" {
		cfg.Addr = v
	}
	if v, ok := lookup(EnvPreset); ok && v != "" {
		cfg.Preset = v
	}
	if v, ok := lookup(EnvSeed); ok && v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return cfg, fmt.Errorf("config: %s: %w", EnvSeed, err)
		}
		cfg.Seed = seed
	}
	if v, ok := lookup(EnvMaxSteps); ok && v != "" {
		steps, err := strconv.Atoi(v)
		if err != nil {
			return cfg, fmt.Errorf("config: %s: %w", EnvMaxSteps, err)
		}
		if steps < 0 {
			return cfg, fmt.Errorf("config: %s must not be negative, got %d", EnvMaxSteps, steps)
		}
		cfg.MaxSteps = steps
	}
	if v, ok := lookup(EnvTimeout); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return cfg, fmt.Errorf("config: %s: %w", EnvTimeout, err)
		}
		if d <= 0 {
			return cfg, fmt.Errorf("config: %s must be positive, got %s", EnvTimeout, d)
		}
		cfg.Timeout = d
	}
	if v, ok := lookup(EnvAPIKey); ok {
		cfg.Telemetry.APIKey = v
	}
	if v, ok := lookup(EnvDataset); ok {
		cfg.Telemetry.Dataset = v
	}

	return cfg, nil
}

// FromDotEnv builds a Config from the variables in a .env file only,
// ignoring the process environment.
func FromDotEnv(filename string) (Config, error) {
	vars, err := godotenv.Read(filename)
	if err != nil {
		return Config{}, err
	}
	return FromLookup(func(key string) (string, bool) {
		v, ok := vars[key]
		return v, ok
	})
}
