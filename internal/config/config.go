// Package config loads arena generator settings from .env files and the environment.
package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/joho/godotenv"

	"github.com/samdwyer/bulletarena/internal/telemetry"
	"github.com/samdwyer/bulletarena/internal/world"
)

// Store backends.
const (
	StoreJSON     = "json"
	StorePostgres = "postgres"
)

const (
	defaultStoreFile   = "levels.json"
	defaultDatabaseURL = "host=localhost user=arena password=arena dbname=bulletarena sslmode=disable"
	honeycombEndpoint  = "https://api.honeycomb.io"
	defaultDataset     = "bulletarena"
)

// Config holds generator configuration options.
type Config struct {
	// Seed for random number generation. Used for reproducible arena generation.
	// A seed of 0 means a random seed will be generated.
	Seed int64
	// SeedPhrase, when set, is hashed into the seed and takes precedence over Seed.
	SeedPhrase string

	Params    world.Params
	Store     StoreConfig
	Telemetry telemetry.Config
}

// StoreConfig selects where generated levels are saved.
type StoreConfig struct {
	Type        string // StoreJSON or StorePostgres
	Path        string // JSON file path
	DatabaseURL string // PostgreSQL connection string
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		Params: world.DefaultParams(),
		Store: StoreConfig{
			Type:        StoreJSON,
			Path:        defaultStoreFile,
			DatabaseURL: defaultDatabaseURL,
		},
	}
}

// Load reads .env files (defaulting to ./.env) into the process environment
// and builds a Config from it. A missing .env file is not an error.
func Load(envFiles ...string) (Config, error) {
	if err := godotenv.Load(envFiles...); err != nil {
		// Not fatal - env vars might be set directly
		log.Printf("Note: .env file not loaded: %v", err)
	}
	return FromEnv(os.Getenv)
}

// ReadFile builds a Config from a single .env file without touching the
// process environment.
func ReadFile(path string) (Config, error) {
	vars, err := godotenv.Read(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read env file %s: %w", path, err)
	}
	return FromEnv(func(key string) string { return vars[key] })
}

// FromEnv builds a Config from the given lookup, starting from Default.
func FromEnv(getenv func(string) string) (Config, error) {
	cfg := Default()
	p := &cfg.Params

	ints := []struct {
		key string
		dst *int
	}{
		{"ARENA_WIDTH", &p.Width},
		{"ARENA_HEIGHT", &p.Height},
		{"ARENA_ROOMS", &p.RoomCount},
		{"ARENA_PLACEMENT_ATTEMPTS", &p.MaxPlacementAttempts},
	}
	for _, v := range ints {
		if err := parseInt(getenv, v.key, v.dst); err != nil {
			return Config{}, err
		}
	}

	if raw := getenv("ARENA_SEED"); raw != "" {
		seed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return Config{}, fmt.Errorf("invalid ARENA_SEED %q: %w", raw, err)
		}
		cfg.Seed = seed
	}
	cfg.SeedPhrase = getenv("ARENA_SEED_PHRASE")

	for key, dst := range map[string]*world.Size{
		"ARENA_ROOM_MIN": &p.MinRoomSize,
		"ARENA_ROOM_MAX": &p.MaxRoomSize,
	} {
		raw := getenv(key)
		if raw == "" {
			continue
		}
		size, err := ParseSize(raw)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s: %w", key, err)
		}
		*dst = size
	}

	if raw := getenv("ARENA_WIDEN"); raw != "" {
		widen, err := strconv.ParseBool(raw)
		if err != nil {
			return Config{}, fmt.Errorf("invalid ARENA_WIDEN %q: %w", raw, err)
		}
		p.Widen = widen
	}

	if v := getenv("ARENA_STORE"); v != "" {
		cfg.Store.Type = strings.ToLower(v)
	}
	if v := getenv("ARENA_STORE_FILE"); v != "" {
		cfg.Store.Path = v
	}
	if v := getenv("DATABASE_URL"); v != "" {
		cfg.Store.DatabaseURL = v
	}
	if cfg.Store.Type != StoreJSON && cfg.Store.Type != StorePostgres {
		return Config{}, fmt.Errorf("unknown ARENA_STORE %q", cfg.Store.Type)
	}

	cfg.Telemetry = telemetryFromEnv(getenv)
	return cfg, nil
}

// telemetryFromEnv prefers an explicit OTLP endpoint and falls back to
// Honeycomb when only an API key is present.
func telemetryFromEnv(getenv func(string) string) telemetry.Config {
	tc := telemetry.Config{
		Endpoint:    getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
		Environment: getenv("ARENA_ENV"),
	}

	apiKey := getenv("HONEYCOMB_API_KEY")
	if apiKey == "" {
		return tc
	}
	if tc.Endpoint == "" {
		tc.Endpoint = honeycombEndpoint
	}
	dataset := getenv("HONEYCOMB_DATASET")
	if dataset == "" {
		dataset = defaultDataset
	}
	tc.Headers = map[string]string{
		"x-honeycomb-team":    apiKey,
		"x-honeycomb-dataset": dataset,
	}
	return tc
}

// ResolveSeed returns the seed to generate with: the hashed phrase if one is
// set, otherwise Seed, otherwise a time-based seed.
func (c Config) ResolveSeed() int64 {
	if c.SeedPhrase != "" {
		return SeedFromPhrase(c.SeedPhrase)
	}
	if c.Seed != 0 {
		return c.Seed
	}
	return time.Now().UnixNano()
}

// SeedFromPhrase hashes a human-friendly phrase into a non-zero seed.
func SeedFromPhrase(phrase string) int64 {
	seed := int64(xxhash.Sum64String(phrase))
	if seed == 0 {
		seed = 1
	}
	return seed
}

// ParseSize parses "WxH" (e.g. "5x7") into a world.Size.
func ParseSize(s string) (world.Size, error) {
	w, h, ok := strings.Cut(strings.ToLower(strings.TrimSpace(s)), "x")
	if !ok {
		return world.Size{}, fmt.Errorf("size %q is not in WxH form", s)
	}
	width, err := strconv.Atoi(w)
	if err != nil {
		return world.Size{}, fmt.Errorf("invalid width in %q: %w", s, err)
	}
	height, err := strconv.Atoi(h)
	if err != nil {
		return world.Size{}, fmt.Errorf("invalid height in %q: %w", s, err)
	}
	return world.Size{W: width, H: height}, nil
}

func parseInt(getenv func(string) string, key string, dst *int) error {
	raw := getenv(key)
	if raw == "" {
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	*dst = v
	return nil
}
