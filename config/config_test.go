package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"testing"
)

// clearEnv blanks every variable Load reads so the host environment does not
// leak into a test.
func clearEnv(t *testing.T) {
	for _, key := range []string{
		"PORT", "GIN_MODE", "CORS_ALLOWED_ORIGINS", "SEED_DEMO_DATA",
		"STATIC_DIR", "LOG_LEVEL", "LOG_FORMAT", "RATE_LIMIT_PER_MINUTE",
	} {
		t.Setenv(key, "")
	}
}

func noEnvFile(t *testing.T) string {
	return "--env-file=" + filepath.Join(t.TempDir(), "missing.env")
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load([]string{noEnvFile(t)})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.GinMode != "debug" {
		t.Errorf("GinMode = %q, want debug", cfg.GinMode)
	}
	if !cfg.SeedDemoData {
		t.Error("SeedDemoData should default to true")
	}
	if cfg.LogLevel != slog.LevelInfo || cfg.LogFormat != "text" {
		t.Errorf("log settings = %v/%q", cfg.LogLevel, cfg.LogFormat)
	}
	if cfg.RateLimitPerMinute != 0 {
		t.Errorf("RateLimitPerMinute = %d, want 0", cfg.RateLimitPerMinute)
	}
	if !slices.Equal(cfg.AllowedOrigins, defaultAllowedOrigins) {
		t.Errorf("AllowedOrigins = %v", cfg.AllowedOrigins)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("GIN_MODE", "release")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, ,https://b.example")
	t.Setenv("SEED_DEMO_DATA", "false")
	t.Setenv("STATIC_DIR", "/srv/www")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "120")

	cfg, err := Load([]string{noEnvFile(t)})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := Config{
		Port:               "9000",
		GinMode:            "release",
		AllowedOrigins:     []string{"https://a.example", "https://b.example"},
		SeedDemoData:       false,
		StaticDir:          "/srv/www",
		LogLevel:           slog.LevelDebug,
		LogFormat:          "json",
		RateLimitPerMinute: 120,
	}
	if cfg.Port != want.Port || cfg.GinMode != want.GinMode || cfg.SeedDemoData != want.SeedDemoData ||
		cfg.StaticDir != want.StaticDir || cfg.LogLevel != want.LogLevel || cfg.LogFormat != want.LogFormat ||
		cfg.RateLimitPerMinute != want.RateLimitPerMinute || !slices.Equal(cfg.AllowedOrigins, want.AllowedOrigins) {
		t.Errorf("Load() = %+v, want %+v", cfg, want)
	}
}

func TestFlagsOverrideEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("SEED_DEMO_DATA", "true")

	cfg, err := Load([]string{noEnvFile(t), "--port", "7070", "--seed=false"})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "7070" {
		t.Errorf("Port = %q, want 7070", cfg.Port)
	}
	if cfg.SeedDemoData {
		t.Error("--seed=false should disable seeding")
	}
}

func TestLoadEnvFile(t *testing.T) {
	clearEnv(t)
	os.Unsetenv("PORT")
	os.Unsetenv("STATIC_DIR")

	path := filepath.Join(t.TempDir(), "test.env")
	if err := os.WriteFile(path, []byte("PORT=6060\nSTATIC_DIR=./public\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		os.Unsetenv("PORT")
		os.Unsetenv("STATIC_DIR")
	})

	cfg, err := Load([]string{"--env-file", path})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "6060" || cfg.StaticDir != "./public" {
		t.Errorf("env file not applied: %+v", cfg)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	cases := map[string][2]string{
		"bool":       {"SEED_DEMO_DATA", "maybe"},
		"int":        {"RATE_LIMIT_PER_MINUTE", "lots"},
		"negative":   {"RATE_LIMIT_PER_MINUTE", "-1"},
		"log level":  {"LOG_LEVEL", "chatty"},
		"log format": {"LOG_FORMAT", "xml"},
	}
	for name, kv := range cases {
		t.Run(name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(kv[0], kv[1])
			if _, err := Load([]string{noEnvFile(t)}); err == nil {
				t.Errorf("expected an error for %s=%q", kv[0], kv[1])
			}
		})
	}

	clearEnv(t)
	if _, err := Load([]string{noEnvFile(t), "--seed=sometimes"}); err == nil {
		t.Error("expected an error for --seed=sometimes")
	}
}
