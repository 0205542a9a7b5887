package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

var defaultAllowedOrigins = []string{
	"http://localhost:8080",
	"http://127.0.0.1:8080",
	"http://localhost:5173",
	"http://localhost:3000",
}

type Config struct {
	Port               string
	GinMode            string // "debug" or "release"
	AllowedOrigins     []string
	SeedDemoData       bool
	StaticDir          string
	LogLevel           slog.Level
	LogFormat          string // "text" or "json"
	RateLimitPerMinute int
}

// Load reads configuration from the environment, after merging in an
// optional .env file. Command-line flags in args override both.
func Load(args []string) (Config, error) {
	flags := pflag.NewFlagSet("mentionmates", pflag.ContinueOnError)
	envFile := flags.String("env-file", ".env", "dotenv file to load before reading the environment")
	port := flags.String("port", "", "HTTP port (overrides PORT)")
	seed := flags.String("seed", "", "load demo creators at startup: true or false (overrides SEED_DEMO_DATA)")
	if err := flags.Parse(args); err != nil {
		return Config{}, err
	}

	// Variables already set in the environment win over the file.
	if err := godotenv.Load(*envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("loading %s: %w", *envFile, err)
	}

	cfg := Config{
		Port:           getEnv("PORT", "8080"),
		GinMode:        getEnv("GIN_MODE", "debug"),
		AllowedOrigins: getList("CORS_ALLOWED_ORIGINS", defaultAllowedOrigins),
		StaticDir:      getEnv("STATIC_DIR", ""),
		LogFormat:      getEnv("LOG_FORMAT", "text"),
	}

	var err error
	if cfg.SeedDemoData, err = getBool("SEED_DEMO_DATA", true); err != nil {
		return Config{}, err
	}
	if cfg.RateLimitPerMinute, err = getInt("RATE_LIMIT_PER_MINUTE", 0); err != nil {
		return Config{}, err
	}
	if err := cfg.LogLevel.UnmarshalText([]byte(getEnv("LOG_LEVEL", "info"))); err != nil {
		return Config{}, fmt.Errorf("LOG_LEVEL: %w", err)
	}

	if *port != "" {
		cfg.Port = *port
	}
	if *seed != "" {
		if cfg.SeedDemoData, err = strconv.ParseBool(*seed); err != nil {
			return Config{}, fmt.Errorf("--seed: %w", err)
		}
	}

	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return Config{}, fmt.Errorf("LOG_FORMAT must be text or json, got %q", cfg.LogFormat)
	}
	if cfg.RateLimitPerMinute < 0 {
		return Config{}, fmt.Errorf("RATE_LIMIT_PER_MINUTE must not be negative, got %d", cfg.RateLimitPerMinute)
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return strings.TrimSpace(v)
	}
	return fallback
}

func getBool(key string, fallback bool) (bool, error) {
	v := getEnv(key, "")
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}
	return b, nil
}

func getInt(key string, fallback int) (int, error) {
	v := getEnv(key, "")
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

// getList splits a comma separated variable, ignoring blank entries.
func getList(key string, fallback []string) []string {
	v := getEnv(key, "")
	if v == "" {
		return fallback
	}
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
